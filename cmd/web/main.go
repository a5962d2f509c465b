package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/chsharoze/sharoze-iftikhar-iwh-i-practicum/internal/adapters/crm/hubspot"
	"github.com/chsharoze/sharoze-iftikhar-iwh-i-practicum/internal/config"
	"github.com/chsharoze/sharoze-iftikhar-iwh-i-practicum/internal/platform/logger"
	"github.com/chsharoze/sharoze-iftikhar-iwh-i-practicum/internal/router"
	"github.com/chsharoze/sharoze-iftikhar-iwh-i-practicum/internal/web"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		port    int
		envFile string
	)

	cmd := &cobra.Command{
		Use:           "web",
		Short:         "Lista y crea registros del custom object de HubSpot",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := config.LoadDotEnv(envFile, 8); err != nil {
				return fmt.Errorf("load env file: %w", err)
			}

			cfg, err := config.Load()
			if err != nil {
				// Sin config no hay logger armado; el de env alcanza para dejar rastro.
				bootLog := logger.NewFromEnv()
				bootLog.Error("config load failed", map[string]any{"err": err})
				_ = bootLog.Sync()
				return err
			}
			if cmd.Flags().Changed("port") {
				cfg.Server.Port = port
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return run(ctx, cfg)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", config.DefaultPort, "puerto HTTP (pisa PORT)")
	cmd.Flags().StringVar(&envFile, "env-file", "", "ruta a un .env (default: busca .env hacia arriba)")

	return cmd
}

func run(ctx context.Context, cfg *config.Config) error {
	log := logger.New(logger.Options{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		App:    cfg.Log.App,
	})
	defer func() { _ = log.Sync() }()

	repo, err := hubspot.NewClient(hubspot.Config{
		BaseURL:     cfg.HubSpot.BaseURL,
		AccessToken: cfg.HubSpot.AccessToken,
		ObjectType:  cfg.HubSpot.ObjectType,
		Timeout:     cfg.HubSpot.Timeout,
	}, log)
	if err != nil {
		return err
	}

	view, err := web.NewRenderer()
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr: cfg.Server.Addr(),
		Handler: router.NewRouter(router.Options{
			Repo:     repo,
			Renderer: view,
			Logger:   log,
			AppTitle: cfg.AppTitle,
		}),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info(fmt.Sprintf("Listening on http://localhost:%d", cfg.Server.Port), map[string]any{
			"object_type": cfg.HubSpot.ObjectType,
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
