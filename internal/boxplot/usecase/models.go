package usecase

import (
	"github.com/shandysiswandi/goboxplot/internal/boxplot/entity"
)

// Event names handled by every session loop.
const (
	EventUploadData  = "upload-data"
	EventSubmitChart = "submit-chart"
	EventTablePage   = "table-page"
	EventTableExport = "table-export"
)

// ExportFormat is the encoding of a table download.
type ExportFormat string

const (
	ExportCSV  ExportFormat = "csv"
	ExportXLSX ExportFormat = "xlsx"
)

type UploadResult struct {
	Files    []entity.FileResult
	PageSize int
}

type ChartInput struct {
	Request entity.ChartRequest
	Format  entity.ChartFormat
}

type ChartResult struct {
	Chart    entity.Chart
	TableID  int64
	Filename string
}

type PageInput struct {
	TableID  int64
	Page     int
	PageSize int
}

type PageResult struct {
	TableID  int64
	Filename string
	Columns  []string
	Rows     []entity.Row
	Page     int
	PageSize int
	Total    int
}

type ExportResult struct {
	Filename    string
	ContentType string
	Body        []byte
}
