package chart

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/shandysiswandi/goboxplot/internal/boxplot/entity"
)

var ErrUnknownFormat = errors.New("unknown chart format")

// Size is the rendered chart size in pixels.
type Size struct {
	Width  int
	Height int
}

// DefaultSize is used when a configured dimension is not positive.
var DefaultSize = Size{Width: 960, Height: 540}

func (s Size) orDefault() Size {
	if s.Width < 1 {
		s.Width = DefaultSize.Width
	}
	if s.Height < 1 {
		s.Height = DefaultSize.Height
	}
	return s
}

// Renderer draws a computed box plot.
type Renderer interface {
	Render(w io.Writer, plot entity.BoxPlot) error
}

// NewRenderer returns the renderer for format.
func NewRenderer(format entity.ChartFormat, size Size) (Renderer, error) {
	size = size.orDefault()

	switch format {
	case entity.ChartFormatSVG:
		return newImageRenderer(svgProvider, size, true), nil
	case entity.ChartFormatPNG:
		return newImageRenderer(pngProvider, size, false), nil
	case entity.ChartFormatHTML:
		return &htmlRenderer{size: size}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// Draw builds and renders a chart in one step.
func Draw(table *entity.ParsedTable, req entity.ChartRequest, format entity.ChartFormat, size Size) (entity.Chart, error) {
	renderer, err := NewRenderer(format, size)
	if err != nil {
		return entity.Chart{}, err
	}

	plot, err := Build(table, req)
	if err != nil {
		return entity.Chart{}, err
	}

	var buf bytes.Buffer
	if err := renderer.Render(&buf, plot); err != nil {
		return entity.Chart{}, fmt.Errorf("render %s chart: %w", format, err)
	}

	return entity.Chart{Plot: plot, Format: format, Body: buf.Bytes()}, nil
}

// valueRange returns the padded [min, max] of every value drawn.
func valueRange(plot entity.BoxPlot) (float64, float64) {
	lo, hi := plot.Groups[0].Min, plot.Groups[0].Max
	for _, g := range plot.Groups[1:] {
		lo = min(lo, g.Min)
		hi = max(hi, g.Max)
	}

	pad := (hi - lo) * 0.05
	if pad == 0 {
		pad = 1
	}
	return lo - pad, hi + pad
}
