package app

import (
	"context"
	"net/http"

	"github.com/shandysiswandi/gofindway/internal/pkg/pkgconfig"
	"github.com/shandysiswandi/gofindway/internal/pkg/pkglog"
	"github.com/shandysiswandi/gofindway/internal/pkg/pkgrouter"
	"github.com/shandysiswandi/gofindway/internal/pkg/pkguid"
)

type App struct {
	configPath string
	config     pkgconfig.Config
	uuid       pkguid.StringID
	router     *pkgrouter.Router
	httpServer *http.Server
	closerFn   map[string]func(context.Context) error
}

// New builds the HTTP application. An empty configPath falls back to
// /config/config.yaml, or ./config/config.yaml when LOCAL=true.
func New(configPath string) *App {
	app := &App{configPath: configPath}
	pkglog.InitLogging()
	app.initConfig()
	app.initHTTPServer()
	app.initModules()
	app.initClosers()
	return app
}

// Handler exposes the routed handler without the listener, for tests.
func (a *App) Handler() http.Handler {
	return a.httpServer.Handler
}
