package chart

import (
	"io"
	"strconv"
	"strings"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/shandysiswandi/goboxplot/internal/boxplot/entity"
)

// htmlChartID is fixed so the same plot always renders the same page.
const htmlChartID = "boxplot"

// go-echarts writes the options JSON into a script block unescaped, so a closing
// tag in user text is broken up with a zero width space.
var scriptText = strings.NewReplacer("</", "<\u200b/", "<!--", "<\u200b!--")

type htmlRenderer struct {
	size Size
}

func (r *htmlRenderer) Render(w io.Writer, plot entity.BoxPlot) error {
	names := make([]string, 0, len(plot.Groups))
	boxes := make([]opts.BoxPlotData, 0, len(plot.Groups))
	var outliers []opts.ScatterData

	for i, g := range plot.Groups {
		name := scriptText.Replace(g.Name)
		names = append(names, name)
		boxes = append(boxes, opts.BoxPlotData{
			Name:  name,
			Value: []float64{g.LowerWhisker, g.Q1, g.Median, g.Q3, g.UpperWhisker},
		})
		for _, v := range g.Outliers {
			outliers = append(outliers, opts.ScatterData{Value: []any{i, v}})
		}
	}

	lo, hi := valueRange(plot)

	box := charts.NewBoxPlot()
	box.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: pageTitle(plot),
			ChartID:   htmlChartID,
			Width:     strconv.Itoa(r.size.Width) + "px",
			Height:    strconv.Itoa(r.size.Height) + "px",
		}),
		charts.WithTitleOpts(opts.Title{Title: scriptText.Replace(plot.Title)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(false)}),
		charts.WithXAxisOpts(opts.XAxis{Name: scriptText.Replace(plot.XColumn), Type: "category"}),
		charts.WithYAxisOpts(opts.YAxis{Name: scriptText.Replace(plot.YColumn), Min: lo, Max: hi}),
	)
	box.SetXAxis(names).AddSeries(scriptText.Replace(plot.YColumn), boxes)

	if len(outliers) > 0 {
		scatter := charts.NewScatter()
		scatter.SetXAxis(names).AddSeries("outliers", outliers)
		box.Overlap(scatter)
	}

	return box.Render(w)
}

func pageTitle(plot entity.BoxPlot) string {
	if plot.Title != "" {
		return plot.Title
	}
	return "Boxplot"
}
