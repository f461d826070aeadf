package app

import (
	"context"
	"log/slog"
	"os"

	"github.com/shandysiswandi/gofindway/internal/findway"
)

func (a *App) initModules() {
	if a.config.GetBool("modules.findway.enabled") {
		closer, err := findway.New(findway.Dependency{
			Config: a.config,
			Router: a.router,
		})
		if err != nil {
			slog.Error("failed to init module findway", "error", err)
			os.Exit(1)
		}

		if a.closerFn == nil {
			a.closerFn = map[string]func(context.Context) error{}
		}
		a.closerFn["FindWay"] = closer
	}
}
