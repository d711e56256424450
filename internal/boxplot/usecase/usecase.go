package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path"
	"strings"

	"github.com/shandysiswandi/goboxplot/internal/boxplot/chart"
	"github.com/shandysiswandi/goboxplot/internal/boxplot/decode"
	"github.com/shandysiswandi/goboxplot/internal/boxplot/entity"
	"github.com/shandysiswandi/goboxplot/internal/boxplot/event"
	"github.com/shandysiswandi/goboxplot/internal/boxplot/session"
	"github.com/shandysiswandi/goboxplot/internal/pkg/pkgerror"
	"github.com/shandysiswandi/goboxplot/internal/pkg/pkguid"
)

// DefaultPageSize is the table preview page size.
const DefaultPageSize = 10

// maxPageSize caps page_size on table page requests.
const maxPageSize = 100

var (
	errUnknownTable  = errors.New("table is not part of the latest upload")
	errNoFiles       = errors.New("at least one file is required")
	errUnknownExport = errors.New("export format must be csv or xlsx")
)

// Dispatcher runs a named event on one session. *session.Session satisfies it.
type Dispatcher interface {
	Dispatch(ctx context.Context, name string, payload any) (any, error)
}

type Config struct {
	PageSize  int
	ChartSize chart.Size
}

type Dependency struct {
	Config Config
	ID     pkguid.NumberID
}

type Usecase struct {
	id        pkguid.NumberID
	pageSize  int
	chartSize chart.Size
}

func New(dep Dependency) *Usecase {
	pageSize := dep.Config.PageSize
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}

	return &Usecase{
		id:        dep.ID,
		pageSize:  pageSize,
		chartSize: dep.Config.ChartSize,
	}
}

// Register binds the session event handlers.
func (u *Usecase) Register(reg *event.Registry[*session.Store]) {
	reg.On(EventUploadData, u.onUpload)
	reg.On(EventSubmitChart, u.onChart)
	reg.On(EventTablePage, u.onTablePage)
	reg.On(EventTableExport, u.onExport)
}

// Upload decodes every file in order. A failing file only affects its own result.
func (u *Usecase) Upload(ctx context.Context, sess Dispatcher, files []entity.UploadedFile) (UploadResult, error) {
	if len(files) == 0 {
		return UploadResult{}, pkgerror.NewInvalidInputMsg(errNoFiles, errNoFiles.Error())
	}

	resp, err := sess.Dispatch(ctx, EventUploadData, files)
	if err != nil {
		return UploadResult{}, normalizeErr(err)
	}

	return UploadResult{Files: resp.([]entity.FileResult), PageSize: u.pageSize}, nil
}

// Chart builds the box plot. A nil result means the trigger never fired: no update.
func (u *Usecase) Chart(ctx context.Context, sess Dispatcher, in ChartInput) (*ChartResult, error) {
	if in.Format == "" {
		in.Format = entity.ChartFormatSVG
	}

	resp, err := sess.Dispatch(ctx, EventSubmitChart, in)
	if err != nil {
		return nil, normalizeErr(err)
	}

	result, _ := resp.(*ChartResult)
	return result, nil
}

// TablePage returns one page of the current table, or of the latest batch's table with in.TableID.
func (u *Usecase) TablePage(ctx context.Context, sess Dispatcher, in PageInput) (PageResult, error) {
	if in.Page < 1 {
		in.Page = 1
	}
	if in.PageSize < 1 {
		in.PageSize = u.pageSize
	}
	in.PageSize = min(in.PageSize, maxPageSize)

	resp, err := sess.Dispatch(ctx, EventTablePage, in)
	if err != nil {
		return PageResult{}, normalizeErr(err)
	}

	return resp.(PageResult), nil
}

// Export re-encodes the stored table.
func (u *Usecase) Export(ctx context.Context, sess Dispatcher, format ExportFormat) (ExportResult, error) {
	if format != ExportCSV && format != ExportXLSX {
		return ExportResult{}, pkgerror.NewInvalidInputMsg(errUnknownExport, errUnknownExport.Error())
	}

	resp, err := sess.Dispatch(ctx, EventTableExport, format)
	if err != nil {
		return ExportResult{}, normalizeErr(err)
	}

	return resp.(ExportResult), nil
}

func (u *Usecase) onUpload(ctx context.Context, store *session.Store, payload any) (any, error) {
	files, ok := payload.([]entity.UploadedFile)
	if !ok {
		return nil, fmt.Errorf("upload-data: unexpected payload %T", payload)
	}

	results := make([]entity.FileResult, 0, len(files))
	tables := make([]*entity.ParsedTable, 0, len(files))
	for _, file := range files {
		result := entity.FileResult{
			Filename:     file.Filename,
			LastModified: file.LastModified,
		}

		table, err := decode.Decode(file)
		if err != nil {
			slog.WarnContext(ctx, "failed to decode uploaded file", "filename", file.Filename, "error", err)
			result.Status = entity.FileStatusError
			result.Err = err.Error()
			results = append(results, result)
			continue
		}

		if u.id != nil {
			table.ID = u.id.Generate()
		}
		tables = append(tables, table)

		slog.InfoContext(ctx, "stored uploaded table",
			"filename", file.Filename,
			"table_id", table.ID,
			"columns", len(table.Columns),
			"rows", len(table.Rows),
		)

		result.Status = entity.FileStatusOK
		result.Table = table
		results = append(results, result)
	}

	store.Set(tables...)

	return results, nil
}

func (u *Usecase) onChart(ctx context.Context, store *session.Store, payload any) (any, error) {
	in, ok := payload.(ChartInput)
	if !ok {
		return nil, fmt.Errorf("submit-chart: unexpected payload %T", payload)
	}

	if !in.Request.Fired() {
		return nil, nil
	}

	table, _ := store.Get()
	c, err := chart.Draw(table, in.Request, in.Format, u.chartSize)
	if err != nil {
		var ierr *chart.InputError
		if errors.As(err, &ierr) || errors.Is(err, chart.ErrUnknownFormat) {
			slog.InfoContext(ctx, "chart request rejected", "x", in.Request.XColumn, "y", in.Request.YColumn, "error", err)
			return nil, pkgerror.NewInvalidInputMsg(err, err.Error())
		}
		slog.ErrorContext(ctx, "failed to render chart", "format", in.Format, "error", err)
		return nil, err
	}

	return &ChartResult{Chart: c, TableID: table.ID, Filename: table.Filename}, nil
}

func (u *Usecase) onTablePage(_ context.Context, store *session.Store, payload any) (any, error) {
	in, ok := payload.(PageInput)
	if !ok {
		return nil, fmt.Errorf("table-page: unexpected payload %T", payload)
	}

	table, ok := store.Get()
	if !ok {
		return nil, pkgerror.NewBusiness(chart.ErrNoTable.Error(), pkgerror.CodeNotFound)
	}
	if in.TableID != 0 {
		if table, ok = store.Lookup(in.TableID); !ok {
			return nil, pkgerror.NewBusiness(errUnknownTable.Error(), pkgerror.CodeNotFound)
		}
	}

	return PageResult{
		TableID:  table.ID,
		Filename: table.Filename,
		Columns:  table.Columns,
		Rows:     table.Page(in.Page, in.PageSize),
		Page:     in.Page,
		PageSize: in.PageSize,
		Total:    len(table.Rows),
	}, nil
}

func (u *Usecase) onExport(_ context.Context, store *session.Store, payload any) (any, error) {
	format, ok := payload.(ExportFormat)
	if !ok {
		return nil, fmt.Errorf("table-export: unexpected payload %T", payload)
	}

	table, ok := store.Get()
	if !ok {
		return nil, pkgerror.NewBusiness(chart.ErrNoTable.Error(), pkgerror.CodeNotFound)
	}

	var (
		body        []byte
		contentType string
		err         error
	)
	switch format {
	case ExportXLSX:
		body, err = decode.EncodeXLSX(table)
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		body, err = decode.EncodeCSV(table)
		contentType = "text/csv; charset=utf-8"
	}
	if err != nil {
		return nil, err
	}

	return ExportResult{
		Filename:    exportName(table.Filename, format),
		ContentType: contentType,
		Body:        body,
	}, nil
}

func exportName(filename string, format ExportFormat) string {
	base := strings.TrimSuffix(path.Base(filename), path.Ext(filename))
	if base == "" || base == "." || base == "/" {
		base = "table"
	}
	return base + "." + string(format)
}

func normalizeErr(err error) error {
	var perr *pkgerror.Error
	if errors.As(err, &perr) {
		return perr
	}
	if errors.Is(err, event.ErrLoopClosed) {
		return pkgerror.NewBusiness("session has ended", pkgerror.CodeNotFound)
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return pkgerror.NewBusiness("request canceled", pkgerror.CodeTimeout)
	}
	return pkgerror.NewServer(err)
}
