package app

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"github.com/shandysiswandi/gofindway/internal/findway"
	"github.com/shandysiswandi/gofindway/internal/pkg/pkgconfig"
	"github.com/shandysiswandi/gofindway/internal/pkg/pkgrouter"
	"github.com/shandysiswandi/gofindway/internal/pkg/pkguid"
)

var defaults = map[string]any{
	"app.tz":                  "UTC",
	"app.server.address.http": ":8080",
}

// ConfigPath resolves the config file location the same way for every
// entrypoint.
func ConfigPath(path string) string {
	if path != "" {
		return path
	}
	if os.Getenv("LOCAL") == "true" {
		return "./config/config.yaml"
	}
	return "/config/config.yaml"
}

// LoadConfig reads the config file at path layered over the app and module
// defaults.
func LoadConfig(path string) (pkgconfig.Config, error) {
	return pkgconfig.NewViper(path, defaults, findway.Defaults)
}

func (a *App) initConfig() {
	cfg, err := LoadConfig(ConfigPath(a.configPath))
	if err != nil {
		slog.Error("failed to init config", "error", err)
		os.Exit(1)
	}

	//nolint:errcheck,gosec // ignore error
	os.Setenv("TZ", cfg.GetString("app.tz"))

	a.config = cfg
}

func (a *App) initHTTPServer() {
	a.uuid = pkguid.NewUUID()
	a.router = pkgrouter.NewRouter(a.uuid)
	a.router.Handle("/metrics", promhttp.Handler())

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodOptions,
		},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	a.httpServer = &http.Server{
		Addr:              a.config.GetString("app.server.address.http"),
		Handler:           corsHandler.Handler(a.router),
		ReadHeaderTimeout: 10 * time.Second,
	}
}

func (a *App) initClosers() {
	if a.closerFn == nil {
		a.closerFn = map[string]func(context.Context) error{}
	}
	a.closerFn["Config"] = func(context.Context) error {
		return a.config.Close()
	}
}
