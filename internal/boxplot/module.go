package boxplot

import (
	"context"
	"log/slog"
	"time"

	"github.com/shandysiswandi/goboxplot/internal/boxplot/chart"
	"github.com/shandysiswandi/goboxplot/internal/boxplot/event"
	"github.com/shandysiswandi/goboxplot/internal/boxplot/inbound"
	"github.com/shandysiswandi/goboxplot/internal/boxplot/session"
	"github.com/shandysiswandi/goboxplot/internal/boxplot/usecase"
	"github.com/shandysiswandi/goboxplot/internal/pkg/pkgconfig"
	"github.com/shandysiswandi/goboxplot/internal/pkg/pkgrouter"
	"github.com/shandysiswandi/goboxplot/internal/pkg/pkgroutine"
	"github.com/shandysiswandi/goboxplot/internal/pkg/pkguid"
)

type Dependency struct {
	Config    pkgconfig.Config
	Goroutine *pkgroutine.Manager
	Router    *pkgrouter.Router
	Context   context.Context
	SessionID pkguid.StringID
	TableID   pkguid.NumberID
}

// New wires the boxplot module and starts the idle session sweeper, which runs
// until dep.Context ends. The returned closer ends every live session.
func New(dep Dependency) (func(context.Context) error, error) {
	if dep.Context == nil {
		dep.Context = context.Background()
	}
	if dep.SessionID == nil {
		dep.SessionID = pkguid.NewUUID()
	}
	if dep.TableID == nil {
		sf, err := pkguid.NewSnowflake()
		if err != nil {
			return nil, err
		}
		dep.TableID = sf
	}

	pageSize := int(pkgconfig.IntOr(dep.Config, "modules.boxplot.page_size", usecase.DefaultPageSize))

	uc := usecase.New(usecase.Dependency{
		Config: usecase.Config{
			PageSize: pageSize,
			ChartSize: chart.Size{
				Width:  int(pkgconfig.IntOr(dep.Config, "modules.boxplot.chart.width", int64(chart.DefaultSize.Width))),
				Height: int(pkgconfig.IntOr(dep.Config, "modules.boxplot.chart.height", int64(chart.DefaultSize.Height))),
			},
		},
		ID: dep.TableID,
	})

	registry := event.NewRegistry[*session.Store]()
	uc.Register(registry)

	idleSeconds := pkgconfig.IntOr(dep.Config, "modules.boxplot.session_idle_seconds", int64(session.DefaultIdleTTL/time.Second))
	sessions := session.NewManager(session.Dependency{
		Config: session.Config{
			MaxSessions: int(pkgconfig.IntOr(dep.Config, "modules.boxplot.max_sessions", session.DefaultMaxSessions)),
			IdleTTL:     time.Duration(idleSeconds) * time.Second,
		},
		Registry: registry,
		Runner:   dep.Goroutine,
		ID:       dep.SessionID,
	})

	if err := dep.Goroutine.Go(dep.Context, sessions.Run); err != nil {
		return nil, err
	}

	inbound.RegisterHTTPEndpoint(dep.Router, uc, sessions, inbound.Config{
		MaxUploadBytes: pkgconfig.IntOr(dep.Config, "modules.boxplot.max_upload_bytes", inbound.DefaultMaxUploadBytes),
		PageSize:       pageSize,
	})

	slog.InfoContext(dep.Context, "boxplot module ready", "page_size", pageSize, "session_idle_seconds", idleSeconds, "events", registry.Names())

	return sessions.Close, nil
}
