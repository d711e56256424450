package inbound

import (
	"context"
	"net/http"

	"github.com/shandysiswandi/goboxplot/internal/boxplot/entity"
	"github.com/shandysiswandi/goboxplot/internal/boxplot/session"
	"github.com/shandysiswandi/goboxplot/internal/boxplot/usecase"
	"github.com/shandysiswandi/goboxplot/internal/pkg/pkgrouter"
)

type uc interface {
	Upload(ctx context.Context, sess usecase.Dispatcher, files []entity.UploadedFile) (usecase.UploadResult, error)
	Chart(ctx context.Context, sess usecase.Dispatcher, in usecase.ChartInput) (*usecase.ChartResult, error)
	TablePage(ctx context.Context, sess usecase.Dispatcher, in usecase.PageInput) (usecase.PageResult, error)
	Export(ctx context.Context, sess usecase.Dispatcher, format usecase.ExportFormat) (usecase.ExportResult, error)
}

type sessions interface {
	Resume(ctx context.Context, id string) (*session.Session, error)
	End(ctx context.Context, id string) error
}

type Config struct {
	MaxUploadBytes int64
	PageSize       int
}

func RegisterHTTPEndpoint(r *pkgrouter.Router, uc uc, sm sessions, cfg Config) {
	if cfg.MaxUploadBytes < 1 {
		cfg.MaxUploadBytes = DefaultMaxUploadBytes
	}
	if cfg.PageSize < 1 {
		cfg.PageSize = usecase.DefaultPageSize
	}

	end := &HTTPEndpoint{uc: uc, cfg: cfg}
	withSession := middlewareSession(sm)

	r.GET("/", end.Index)

	r.POST("/upload", end.Upload, withSession)
	r.POST("/chart", end.Chart, withSession)
	r.GET("/chart/image", end.ChartImage, withSession) // ?x=&y=&title=&format=
	r.GET("/table", end.Table, withSession)            // ?id=&page=&page_size=
	r.GET("/table/export", end.Export, withSession)    // ?format=csv|xlsx

	r.Handle(http.MethodDelete, "/session", endSession(sm))
}
