// Package config arma la configuración desde variables de entorno.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/chsharoze/sharoze-iftikhar-iwh-i-practicum/internal/platform/logger"
)

const (
	DefaultPort            = 3000
	DefaultHubSpotBaseURL  = "https://api.hubapi.com"
	DefaultHubSpotTimeout  = 15 * time.Second
	DefaultShutdownTimeout = 10 * time.Second
	DefaultAppTitle        = "Integrating With HubSpot I Practicum"
	DefaultAppName         = "pets-web"
)

type Config struct {
	Server  Server
	HubSpot HubSpot
	Log     Log

	AppTitle string
}

type Server struct {
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// Addr devuelve ":<port>".
func (s Server) Addr() string {
	return ":" + strconv.Itoa(s.Port)
}

type HubSpot struct {
	BaseURL     string
	AccessToken string
	ObjectType  string
	Timeout     time.Duration
}

type Log struct {
	Level  logger.Level
	Format logger.Format
	App    string
}

// Load lee el env. PRIVATE_APP_ACCESS_TOKEN y CUSTOM_OBJECT_TYPE son obligatorios.
func Load() (*Config, error) {
	port, err := getPort("PORT", DefaultPort)
	if err != nil {
		return nil, err
	}
	readTimeout, err := getDuration("SERVER_READ_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}
	writeTimeout, err := getDuration("SERVER_WRITE_TIMEOUT", 30*time.Second)
	if err != nil {
		return nil, err
	}
	shutdownTimeout, err := getDuration("SHUTDOWN_TIMEOUT", DefaultShutdownTimeout)
	if err != nil {
		return nil, err
	}
	hubspotTimeout, err := getDuration("HUBSPOT_TIMEOUT", DefaultHubSpotTimeout)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: Server{
			Port:            port,
			ReadTimeout:     readTimeout,
			WriteTimeout:    writeTimeout,
			ShutdownTimeout: shutdownTimeout,
		},
		HubSpot: HubSpot{
			BaseURL:     getEnv("HUBSPOT_BASE_URL", DefaultHubSpotBaseURL),
			AccessToken: strings.TrimSpace(os.Getenv("PRIVATE_APP_ACCESS_TOKEN")),
			ObjectType:  strings.TrimSpace(os.Getenv("CUSTOM_OBJECT_TYPE")),
			Timeout:     hubspotTimeout,
		},
		Log: Log{
			Level:  logger.ParseLevel(os.Getenv("LOG_LEVEL")),
			Format: logger.ParseFormat(os.Getenv("LOG_FORMAT")),
			App:    getEnv("APP_NAME", DefaultAppName),
		},
		AppTitle: getEnv("APP_TITLE", DefaultAppTitle),
	}

	if cfg.HubSpot.AccessToken == "" {
		return nil, errors.New("Missing PRIVATE_APP_ACCESS_TOKEN in .env")
	}
	if cfg.HubSpot.ObjectType == "" {
		return nil, errors.New("Missing CUSTOM_OBJECT_TYPE in .env")
	}
	return cfg, nil
}

func getEnv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getPort(key string, def int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	p, err := strconv.Atoi(v)
	if err != nil || p <= 0 || p > 65535 {
		return 0, fmt.Errorf("invalid %s %q", key, v)
	}
	return p, nil
}

// getDuration acepta "15s", "500ms" o un entero en milisegundos.
func getDuration(key string, def time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	if d, err := time.ParseDuration(v); err == nil && d > 0 {
		return d, nil
	}
	if ms, err := strconv.Atoi(v); err == nil && ms > 0 {
		return time.Duration(ms) * time.Millisecond, nil
	}
	return 0, fmt.Errorf("invalid %s %q", key, v)
}
