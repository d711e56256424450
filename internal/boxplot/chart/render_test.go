package chart

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shandysiswandi/goboxplot/internal/boxplot/entity"
)

func TestDrawIsIdempotent(t *testing.T) {
	req := entity.ChartRequest{NClicks: 3, XColumn: "cat", YColumn: "val", Title: "Scores"}

	for _, format := range []entity.ChartFormat{entity.ChartFormatSVG, entity.ChartFormatPNG} {
		t.Run(string(format), func(t *testing.T) {
			first, err := Draw(sampleTable(), req, format, Size{Width: 400, Height: 300})
			require.NoError(t, err)
			second, err := Draw(sampleTable(), req, format, Size{Width: 400, Height: 300})
			require.NoError(t, err)

			assert.NotEmpty(t, first.Body)
			assert.Equal(t, first.Body, second.Body)
			assert.Equal(t, format, first.Format)
		})
	}
}

func TestDrawSVG(t *testing.T) {
	got, err := Draw(sampleTable(), entity.ChartRequest{XColumn: "cat", YColumn: "val", Title: "Scores"}, entity.ChartFormatSVG, Size{})
	require.NoError(t, err)

	assert.True(t, bytes.HasPrefix(bytes.TrimSpace(got.Body), []byte("<svg")))
	assert.Contains(t, string(got.Body), "Scores")
	assert.Len(t, got.Plot.Groups, 2)
}

func TestDrawUntitled(t *testing.T) {
	got, err := Draw(sampleTable(), entity.ChartRequest{XColumn: "cat", YColumn: "val"}, entity.ChartFormatSVG, Size{})
	require.NoError(t, err)
	assert.Empty(t, got.Plot.Title)
	assert.NotEmpty(t, got.Body)
}

func TestDrawWithOutliers(t *testing.T) {
	table := &entity.ParsedTable{Columns: []string{"g", "v"}}
	for _, v := range []string{"1", "2", "3", "4", "5", "6", "7", "8", "100"} {
		table.Rows = append(table.Rows, entity.Row{"g": "only", "v": v})
	}
	req := entity.ChartRequest{XColumn: "g", YColumn: "v"}

	for _, format := range []entity.ChartFormat{entity.ChartFormatSVG, entity.ChartFormatHTML} {
		got, err := Draw(table, req, format, Size{})
		require.NoError(t, err, format)
		assert.Equal(t, []float64{100}, got.Plot.Groups[0].Outliers)
	}
}

func TestDrawSingleGroup(t *testing.T) {
	table := &entity.ParsedTable{
		Columns: []string{"c", "v"},
		Rows:    []entity.Row{{"c": "only", "v": "1"}},
	}
	req := entity.ChartRequest{XColumn: "c", YColumn: "v", Title: "One"}

	for _, format := range []entity.ChartFormat{entity.ChartFormatSVG, entity.ChartFormatPNG, entity.ChartFormatHTML} {
		t.Run(string(format), func(t *testing.T) {
			got, err := Draw(table, req, format, Size{})
			require.NoError(t, err)
			assert.NotEmpty(t, got.Body)
			require.Len(t, got.Plot.Groups, 1)
			assert.Equal(t, 1.0, got.Plot.Groups[0].Median)
		})
	}
}

func TestDrawEscapesText(t *testing.T) {
	table := &entity.ParsedTable{
		Columns: []string{"<i>c</i>", "v"},
		Rows: []entity.Row{
			{"<i>c</i>": "<b>x</b>", "v": "1"},
			{"<i>c</i>": "a&b", "v": "2"},
		},
	}
	req := entity.ChartRequest{XColumn: "<i>c</i>", YColumn: "v", Title: "<img src=x onerror=alert(1)>"}

	t.Run("svg", func(t *testing.T) {
		got, err := Draw(table, req, entity.ChartFormatSVG, Size{})
		require.NoError(t, err)

		body := string(got.Body)
		assert.NotContains(t, body, "<img")
		assert.NotContains(t, body, "<b>")
		assert.NotContains(t, body, "<i>")
		assert.Contains(t, body, "&lt;img src=x onerror=alert(1)&gt;")
		assert.Contains(t, body, "&lt;b&gt;x&lt;/b&gt;")
		assert.Contains(t, body, "a&amp;b")
		assert.Equal(t, "<b>x</b>", got.Plot.Groups[0].Name)
	})

	t.Run("html", func(t *testing.T) {
		req := req
		req.Title = "</script><img src=x onerror=alert(1)>"

		got, err := Draw(table, req, entity.ChartFormatHTML, Size{})
		require.NoError(t, err)
		assert.NotContains(t, string(got.Body), "</script><img")
	})
}

func TestDrawHTML(t *testing.T) {
	got, err := Draw(sampleTable(), entity.ChartRequest{XColumn: "cat", YColumn: "val", Title: "Scores"}, entity.ChartFormatHTML, Size{})
	require.NoError(t, err)

	body := string(got.Body)
	assert.Contains(t, body, htmlChartID)
	assert.Contains(t, body, "Scores")
	assert.Contains(t, body, "boxplot")
}

func TestDrawErrors(t *testing.T) {
	_, err := Draw(sampleTable(), entity.ChartRequest{XColumn: "cat", YColumn: "val"}, "gif", Size{})
	assert.ErrorIs(t, err, ErrUnknownFormat)

	_, err = Draw(nil, entity.ChartRequest{XColumn: "cat", YColumn: "val"}, entity.ChartFormatSVG, Size{})
	var ierr *InputError
	assert.ErrorAs(t, err, &ierr)
}

func TestSizeDefaults(t *testing.T) {
	assert.Equal(t, DefaultSize, Size{}.orDefault())
	assert.Equal(t, Size{Width: 10, Height: DefaultSize.Height}, Size{Width: 10}.orDefault())
}
