package app

import (
	"context"
	"log/slog"
	"os"

	"github.com/shandysiswandi/goboxplot/internal/boxplot"
)

func (a *App) initModules() {
	if a.config.GetBool("modules.boxplot.enabled") {
		closer, err := boxplot.New(boxplot.Dependency{
			Config:    a.config,
			Router:    a.router,
			Goroutine: a.goroutine,
			Context:   a.ctx,
			SessionID: a.uuid,
			TableID:   a.snowflake,
		})
		if err != nil {
			slog.Error("failed to init module boxplot", "error", err)
			os.Exit(1)
		}
		if closer != nil {
			if a.moduleCloserFn == nil {
				a.moduleCloserFn = map[string]func(context.Context) error{}
			}
			a.moduleCloserFn["Boxplot"] = closer
		}
	}
}
