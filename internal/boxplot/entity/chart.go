package entity

// ChartRequest is built from the current field values each time the user submits.
type ChartRequest struct {
	// NClicks is the submit counter; only "fired at least once" matters.
	NClicks int
	XColumn string
	YColumn string
	Title   string
}

// Fired reports whether the submit trigger has ever fired.
func (r ChartRequest) Fired() bool {
	return r.NClicks > 0
}

// BoxGroup is the summary of one X category.
type BoxGroup struct {
	Name   string
	Values []float64

	Min          float64
	Q1           float64
	Median       float64
	Q3           float64
	Max          float64
	LowerWhisker float64
	UpperWhisker float64
	Outliers     []float64
}

// BoxPlot is the chart model shared by every renderer.
type BoxPlot struct {
	Title   string
	XColumn string
	YColumn string
	Groups  []BoxGroup
}

// ChartFormat selects a renderer output.
type ChartFormat string

const (
	ChartFormatSVG  ChartFormat = "svg"
	ChartFormatPNG  ChartFormat = "png"
	ChartFormatHTML ChartFormat = "html"
)

// ContentType is the MIME type of the rendered format.
func (f ChartFormat) ContentType() string {
	switch f {
	case ChartFormatPNG:
		return "image/png"
	case ChartFormatHTML:
		return "text/html; charset=utf-8"
	default:
		return "image/svg+xml"
	}
}

// Chart is a computed box plot plus its rendering.
type Chart struct {
	Plot   BoxPlot
	Format ChartFormat
	Body   []byte
}
