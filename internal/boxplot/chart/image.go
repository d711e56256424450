package chart

import (
	"html"
	"io"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/shandysiswandi/goboxplot/internal/boxplot/entity"
)

var (
	svgProvider gochart.RendererProvider = gochart.SVG
	pngProvider gochart.RendererProvider = gochart.PNG
)

// boxHalfWidth is half a box width in category units (categories sit at 1, 2, ...).
const boxHalfWidth = 0.3

var palette = []drawing.Color{
	gochart.ColorBlue,
	gochart.ColorGreen,
	gochart.ColorRed,
	gochart.ColorOrange,
	gochart.ColorCyan,
	gochart.ColorAlternateGray,
}

type imageRenderer struct {
	provider gochart.RendererProvider
	size     Size
	// markup is set for SVG output, where go-chart writes text nodes unescaped.
	markup bool
}

func newImageRenderer(provider gochart.RendererProvider, size Size, markup bool) *imageRenderer {
	return &imageRenderer{provider: provider, size: size, markup: markup}
}

func (r *imageRenderer) text(s string) string {
	if r.markup {
		return html.EscapeString(s)
	}
	return s
}

func (r *imageRenderer) Render(w io.Writer, plot entity.BoxPlot) error {
	lo, hi := valueRange(plot)
	edge := float64(len(plot.Groups)) + 0.5

	// go-chart spans the x range over the ticks, so blank ticks pin the outer edges.
	ticks := make([]gochart.Tick, 0, len(plot.Groups)+2)
	ticks = append(ticks, gochart.Tick{Value: 0.5})
	series := make([]gochart.Series, 0, len(plot.Groups)*6)
	for i, g := range plot.Groups {
		x := float64(i + 1)
		ticks = append(ticks, gochart.Tick{Value: x, Label: r.text(g.Name)})
		series = append(series, boxSeries(x, g, palette[i%len(palette)])...)
	}
	ticks = append(ticks, gochart.Tick{Value: edge})

	ch := gochart.Chart{
		Title:      r.text(plot.Title),
		Width:      r.size.Width,
		Height:     r.size.Height,
		Background: gochart.Style{Padding: gochart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		XAxis: gochart.XAxis{
			Name:  r.text(plot.XColumn),
			Ticks: ticks,
			Range: &gochart.ContinuousRange{Min: 0.5, Max: edge},
		},
		YAxis: gochart.YAxis{
			Name:  r.text(plot.YColumn),
			Range: &gochart.ContinuousRange{Min: lo, Max: hi},
		},
		Series: series,
	}

	return ch.Render(r.provider, w)
}

// boxSeries draws one group as line segments: box, median, whiskers with caps, outlier dots.
func boxSeries(x float64, g entity.BoxGroup, col drawing.Color) []gochart.Series {
	line := gochart.Style{StrokeColor: col, StrokeWidth: 2}
	segment := func(xs, ys []float64) gochart.Series {
		return gochart.ContinuousSeries{Name: g.Name, XValues: xs, YValues: ys, Style: line}
	}

	left, right := x-boxHalfWidth, x+boxHalfWidth
	capL, capR := x-boxHalfWidth/2, x+boxHalfWidth/2

	series := []gochart.Series{
		segment([]float64{left, right, right, left, left}, []float64{g.Q1, g.Q1, g.Q3, g.Q3, g.Q1}),
		segment([]float64{left, right}, []float64{g.Median, g.Median}),
		segment([]float64{x, x}, []float64{g.Q1, g.LowerWhisker}),
		segment([]float64{x, x}, []float64{g.Q3, g.UpperWhisker}),
		segment([]float64{capL, capR}, []float64{g.LowerWhisker, g.LowerWhisker}),
		segment([]float64{capL, capR}, []float64{g.UpperWhisker, g.UpperWhisker}),
	}

	if len(g.Outliers) > 0 {
		xs := make([]float64, len(g.Outliers))
		for i := range xs {
			xs[i] = x
		}
		series = append(series, gochart.ContinuousSeries{
			Name:    g.Name + " outliers",
			XValues: xs,
			YValues: g.Outliers,
			Style: gochart.Style{
				StrokeColor: drawing.ColorTransparent,
				DotColor:    col,
				DotWidth:    4,
			},
		})
	}

	return series
}
