package router

import (
	"net/http"

	"github.com/chsharoze/sharoze-iftikhar-iwh-i-practicum/internal/domain/records"
	"github.com/chsharoze/sharoze-iftikhar-iwh-i-practicum/internal/middleware"
	"github.com/chsharoze/sharoze-iftikhar-iwh-i-practicum/internal/platform/logger"
	"github.com/chsharoze/sharoze-iftikhar-iwh-i-practicum/internal/web"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

type Options struct {
	// Repo es el CRM remoto (HubSpot en producción, fake en tests).
	Repo     records.Repository
	Renderer records.Renderer
	Logger   logger.Logger
	AppTitle string
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.NewNop()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.Recover(log))
	r.Use(middleware.SecurityHeaders)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Handle("/css/*", web.Static())

	recordsSvc := records.NewService(opts.Repo)
	records.RegisterRoutes(r, recordsSvc, opts.Renderer, records.HandlerOptions{
		AppTitle: opts.AppTitle,
		Logger:   log,
	})

	return r
}
