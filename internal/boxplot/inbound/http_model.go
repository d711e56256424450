package inbound

import (
	"strconv"
	"time"

	"github.com/shandysiswandi/goboxplot/internal/boxplot/entity"
)

type UploadResponse struct {
	Files []FileResponse `json:"files"`
}

func (UploadResponse) Message() string {
	return "upload processed"
}

// FileResponse is the outcome of one uploaded file: a table preview or an error panel.
type FileResponse struct {
	Filename       string            `json:"filename"`
	LastModified   int64             `json:"last_modified"`
	LastModifiedAt string            `json:"last_modified_at,omitempty"`
	Status         entity.FileStatus `json:"status"`
	Error          string            `json:"error,omitempty"`
	Table          *TablePreview     `json:"table,omitempty"`
}

type TablePreview struct {
	ID       string       `json:"id"`
	Columns  []string     `json:"columns"`
	Rows     []entity.Row `json:"rows"`
	Total    int          `json:"total"`
	PageSize int          `json:"page_size"`
}

type ChartRequest struct {
	NClicks int    `json:"n_clicks"`
	X       string `json:"x"`
	Y       string `json:"y"`
	Title   string `json:"title"`
}

type ChartResponse struct {
	TableID  string          `json:"table_id"`
	Filename string          `json:"filename"`
	Title    string          `json:"title"`
	XColumn  string          `json:"x"`
	YColumn  string          `json:"y"`
	Groups   []GroupResponse `json:"groups"`
	SVG      string          `json:"svg"`
}

func (ChartResponse) Message() string {
	return "chart created"
}

type GroupResponse struct {
	Name         string    `json:"name"`
	Count        int       `json:"count"`
	Values       []float64 `json:"values"`
	Min          float64   `json:"min"`
	Q1           float64   `json:"q1"`
	Median       float64   `json:"median"`
	Q3           float64   `json:"q3"`
	Max          float64   `json:"max"`
	LowerWhisker float64   `json:"lower_whisker"`
	UpperWhisker float64   `json:"upper_whisker"`
	Outliers     []float64 `json:"outliers"`
}

type TableResponse struct {
	TableID  string       `json:"table_id"`
	Filename string       `json:"filename"`
	Columns  []string     `json:"columns"`
	Rows     []entity.Row `json:"rows"`
	page     int
	pageSize int
	total    int
}

func (r TableResponse) Meta() map[string]any {
	return map[string]any{
		"page":      r.page,
		"page_size": r.pageSize,
		"total":     r.total,
	}
}

func toFileResponse(f entity.FileResult, pageSize int) FileResponse {
	resp := FileResponse{
		Filename:     f.Filename,
		LastModified: f.LastModified,
		Status:       f.Status,
		Error:        f.Err,
	}
	if f.LastModified > 0 {
		resp.LastModifiedAt = time.Unix(f.LastModified, 0).Format(time.DateTime)
	}
	if f.Table != nil {
		resp.Table = &TablePreview{
			ID:       formatID(f.Table.ID),
			Columns:  f.Table.Columns,
			Rows:     f.Table.Page(1, pageSize),
			Total:    len(f.Table.Rows),
			PageSize: pageSize,
		}
	}
	return resp
}

func toGroupResponse(g entity.BoxGroup) GroupResponse {
	outliers := g.Outliers
	if outliers == nil {
		outliers = []float64{}
	}
	return GroupResponse{
		Name:         g.Name,
		Count:        len(g.Values),
		Values:       g.Values,
		Min:          g.Min,
		Q1:           g.Q1,
		Median:       g.Median,
		Q3:           g.Q3,
		Max:          g.Max,
		LowerWhisker: g.LowerWhisker,
		UpperWhisker: g.UpperWhisker,
		Outliers:     outliers,
	}
}

// formatID keeps snowflake ids exact in JavaScript clients.
func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}

