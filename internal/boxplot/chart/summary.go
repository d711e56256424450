package chart

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/montanaflynn/stats"

	"github.com/shandysiswandi/goboxplot/internal/boxplot/entity"
)

var (
	ErrNoTable       = errors.New("no data uploaded yet")
	ErrColumnUnset   = errors.New("x and y columns are required")
	ErrUnknownColumn = errors.New("column not found in table")
	ErrNotNumeric    = errors.New("y column has non-numeric values")
	ErrNoValues      = errors.New("y column has no values")
)

// whiskerReach is the Tukey fence factor.
const whiskerReach = 1.5

// InputError is a chart request that cannot be built from the stored table.
type InputError struct {
	Column string
	Err    error
}

func (e *InputError) Error() string {
	if e.Column == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %q", e.Err, e.Column)
}

func (e *InputError) Unwrap() error {
	return e.Err
}

// Build groups table rows by req.XColumn and summarizes req.YColumn per group.
func Build(table *entity.ParsedTable, req entity.ChartRequest) (entity.BoxPlot, error) {
	if table == nil {
		return entity.BoxPlot{}, &InputError{Err: ErrNoTable}
	}
	if req.XColumn == "" || req.YColumn == "" {
		return entity.BoxPlot{}, &InputError{Err: ErrColumnUnset}
	}
	for _, col := range []string{req.XColumn, req.YColumn} {
		if !table.HasColumn(col) {
			return entity.BoxPlot{}, &InputError{Column: col, Err: ErrUnknownColumn}
		}
	}

	var (
		order  []string
		values = make(map[string][]float64)
	)
	for i, row := range table.Rows {
		cell := strings.TrimSpace(row[req.YColumn])
		if cell == "" {
			continue
		}

		v, err := parseNumber(cell)
		if err != nil {
			return entity.BoxPlot{}, &InputError{
				Column: req.YColumn,
				Err:    fmt.Errorf("%w (row %d: %q)", ErrNotNumeric, i+1, row[req.YColumn]),
			}
		}

		name := row[req.XColumn]
		if _, ok := values[name]; !ok {
			order = append(order, name)
		}
		values[name] = append(values[name], v)
	}

	if len(order) == 0 {
		return entity.BoxPlot{}, &InputError{Column: req.YColumn, Err: ErrNoValues}
	}

	plot := entity.BoxPlot{
		Title:   req.Title,
		XColumn: req.XColumn,
		YColumn: req.YColumn,
		Groups:  make([]entity.BoxGroup, 0, len(order)),
	}
	for _, name := range order {
		group, err := Summarize(name, values[name])
		if err != nil {
			return entity.BoxPlot{}, err
		}
		plot.Groups = append(plot.Groups, group)
	}

	return plot, nil
}

// Summarize computes the five number summary, whiskers and outliers of values.
// values keeps its order in the returned group.
func Summarize(name string, values []float64) (entity.BoxGroup, error) {
	data := stats.Float64Data(values)

	minV, err := stats.Min(data)
	if err != nil {
		return entity.BoxGroup{}, err
	}
	maxV, err := stats.Max(data)
	if err != nil {
		return entity.BoxGroup{}, err
	}
	median, err := stats.Median(data)
	if err != nil {
		return entity.BoxGroup{}, err
	}

	q1, q3 := median, median
	if len(values) > 1 {
		q, err := stats.Quartile(data)
		if err != nil {
			return entity.BoxGroup{}, err
		}
		q1, q3 = q.Q1, q.Q3
	}

	iqr := q3 - q1
	lowFence := q1 - whiskerReach*iqr
	highFence := q3 + whiskerReach*iqr

	group := entity.BoxGroup{
		Name:         name,
		Values:       values,
		Min:          minV,
		Q1:           q1,
		Median:       median,
		Q3:           q3,
		Max:          maxV,
		LowerWhisker: q1,
		UpperWhisker: q3,
	}
	for _, v := range values {
		switch {
		case v < lowFence || v > highFence:
			group.Outliers = append(group.Outliers, v)
		case v < group.LowerWhisker:
			group.LowerWhisker = v
		case v > group.UpperWhisker:
			group.UpperWhisker = v
		}
	}

	return group, nil
}

func parseNumber(cell string) (float64, error) {
	v, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, ErrNotNumeric
	}
	return v, nil
}
