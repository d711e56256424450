package inbound

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/shandysiswandi/goboxplot/internal/boxplot/entity"
	"github.com/shandysiswandi/goboxplot/internal/boxplot/usecase"
	"github.com/shandysiswandi/goboxplot/internal/pkg/pkgerror"
	"github.com/shandysiswandi/goboxplot/internal/pkg/pkgrouter"
)

type HTTPEndpoint struct {
	uc  uc
	cfg Config
}

func (h *HTTPEndpoint) Index(ctx context.Context, r *http.Request) (any, error) {
	body, err := renderIndex(indexData{PageSize: h.cfg.PageSize, MaxUploadBytes: h.cfg.MaxUploadBytes})
	if err != nil {
		return nil, pkgerror.NewServer(err)
	}

	return &pkgrouter.Raw{ContentType: "text/html; charset=utf-8", Body: body}, nil
}

func (h *HTTPEndpoint) Upload(ctx context.Context, r *http.Request) (any, error) {
	sess, err := requireSession(ctx)
	if err != nil {
		return nil, err
	}

	files, err := extractFiles(r, h.cfg.MaxUploadBytes)
	if err != nil {
		return nil, err
	}

	result, err := h.uc.Upload(ctx, sess, files)
	if err != nil {
		return nil, err
	}

	resp := UploadResponse{Files: make([]FileResponse, 0, len(result.Files))}
	for _, f := range result.Files {
		resp.Files = append(resp.Files, toFileResponse(f, result.PageSize))
	}

	return resp, nil
}

func (h *HTTPEndpoint) Chart(ctx context.Context, r *http.Request) (any, error) {
	sess, err := requireSession(ctx)
	if err != nil {
		return nil, err
	}

	var req ChartRequest
	if err := decodeJSON(r, &req); err != nil {
		return nil, err
	}

	result, err := h.uc.Chart(ctx, sess, usecase.ChartInput{
		Request: entity.ChartRequest{
			NClicks: req.NClicks,
			XColumn: req.X,
			YColumn: req.Y,
			Title:   req.Title,
		},
		Format: entity.ChartFormatSVG,
	})
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, nil
	}

	plot := result.Chart.Plot
	resp := ChartResponse{
		TableID:  formatID(result.TableID),
		Filename: result.Filename,
		Title:    plot.Title,
		XColumn:  plot.XColumn,
		YColumn:  plot.YColumn,
		Groups:   make([]GroupResponse, 0, len(plot.Groups)),
		SVG:      string(result.Chart.Body),
	}
	for _, g := range plot.Groups {
		resp.Groups = append(resp.Groups, toGroupResponse(g))
	}

	return resp, nil
}

func (h *HTTPEndpoint) ChartImage(ctx context.Context, r *http.Request) (any, error) {
	sess, err := requireSession(ctx)
	if err != nil {
		return nil, err
	}

	query := r.URL.Query()
	format := entity.ChartFormat(strings.ToLower(strings.TrimSpace(query.Get("format"))))
	if format == "" {
		format = entity.ChartFormatSVG
	}

	result, err := h.uc.Chart(ctx, sess, usecase.ChartInput{
		Request: entity.ChartRequest{
			NClicks: 1,
			XColumn: query.Get("x"),
			YColumn: query.Get("y"),
			Title:   query.Get("title"),
		},
		Format: format,
	})
	if err != nil {
		return nil, err
	}

	return &pkgrouter.Raw{ContentType: format.ContentType(), Body: result.Chart.Body}, nil
}

func (h *HTTPEndpoint) Table(ctx context.Context, r *http.Request) (any, error) {
	sess, err := requireSession(ctx)
	if err != nil {
		return nil, err
	}

	query := r.URL.Query()
	page, pageSize, err := parsePagination(query.Get("page"), query.Get("page_size"), h.cfg.PageSize)
	if err != nil {
		return nil, err
	}

	tableID, err := parseTableID(query.Get("id"))
	if err != nil {
		return nil, err
	}

	result, err := h.uc.TablePage(ctx, sess, usecase.PageInput{TableID: tableID, Page: page, PageSize: pageSize})
	if err != nil {
		return nil, err
	}

	return TableResponse{
		TableID:  formatID(result.TableID),
		Filename: result.Filename,
		Columns:  result.Columns,
		Rows:     result.Rows,
		page:     result.Page,
		pageSize: result.PageSize,
		total:    result.Total,
	}, nil
}

func (h *HTTPEndpoint) Export(ctx context.Context, r *http.Request) (any, error) {
	sess, err := requireSession(ctx)
	if err != nil {
		return nil, err
	}

	format := usecase.ExportFormat(strings.ToLower(strings.TrimSpace(r.URL.Query().Get("format"))))
	if format == "" {
		format = usecase.ExportCSV
	}

	result, err := h.uc.Export(ctx, sess, format)
	if err != nil {
		return nil, err
	}

	return &pkgrouter.Raw{ContentType: result.ContentType, Filename: result.Filename, Body: result.Body}, nil
}

func requireSession(ctx context.Context) (usecase.Dispatcher, error) {
	sess := sessionFrom(ctx)
	if sess == nil {
		return nil, pkgerror.NewServer(errors.New("request has no session"))
	}
	return sess, nil
}

func decodeJSON(r *http.Request, v any) error {
	if r.Body == nil {
		return pkgerror.NewInvalidInput(errors.New("empty request body"))
	}

	dec := json.NewDecoder(io.LimitReader(r.Body, 64<<10))
	if err := dec.Decode(v); err != nil {
		return pkgerror.NewInvalidFormat()
	}
	return nil
}

// parseTableID reads the id query parameter. Empty means the current table.
func parseTableID(raw string) (int64, error) {
	if raw == "" {
		return 0, nil
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		return 0, pkgerror.NewInvalidInput(errors.New("invalid id"))
	}
	return id, nil
}

func parsePagination(pageRaw, sizeRaw string, defaultSize int) (int, int, error) {
	page := 1
	pageSize := defaultSize

	if pageRaw != "" {
		value, err := strconv.Atoi(pageRaw)
		if err != nil || value < 1 {
			return 0, 0, pkgerror.NewInvalidInput(errors.New("invalid page"))
		}
		page = value
	}

	if sizeRaw != "" {
		value, err := strconv.Atoi(sizeRaw)
		if err != nil || value < 1 {
			return 0, 0, pkgerror.NewInvalidInput(errors.New("invalid page_size"))
		}
		pageSize = value
	}

	return page, pageSize, nil
}
