// Package timeseries provides a multi-series time chart component.
package timeseries

import (
	"time"

	"charm.land/lipgloss/v2"
	tslc "github.com/NimbleMarkets/ntcharts/v2/linechart/timeserieslinechart"

	"github.com/MESH-Research/invenio-stats-dashboard-sub001/internal/stats"
	"github.com/MESH-Research/invenio-stats-dashboard-sub001/internal/ui/charts"
)

// Styles holds the visual styles for the chart.
type Styles struct {
	Axis  lipgloss.Style
	Label lipgloss.Style
}

// DefaultStyles returns sensible default styles.
func DefaultStyles() Styles {
	return Styles{
		Axis:  lipgloss.NewStyle(),
		Label: lipgloss.NewStyle(),
	}
}

// Line pairs a data series with its plotting style.
type Line struct {
	Series stats.DataSeries
	Style  lipgloss.Style
}

// FromSeries builds lines from series, cycling colors from a palette.
func FromSeries(series []stats.DataSeries, palette []string) []Line {
	lines := make([]Line, 0, len(series))
	for i, s := range series {
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(stats.ColorFor(i, palette)))
		lines = append(lines, Line{Series: s, Style: style})
	}
	return lines
}

// Model holds the chart state.
type Model struct {
	styles       Styles
	width        int
	height       int
	lines        []Line
	yFormatter   func(int, float64) string
	xSteps       int
	ySteps       int
	emptyMessage string
}

// Option is a functional option for configuring the chart.
type Option func(*Model)

// New creates a new chart model.
func New(opts ...Option) Model {
	m := Model{
		styles:     DefaultStyles(),
		xSteps:     3,
		ySteps:     2,
		yFormatter: func(int, float64) string { return "" },
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// WithStyles sets custom styles for the chart.
func WithStyles(s Styles) Option {
	return func(m *Model) { m.styles = s }
}

// WithSize sets the dimensions of the chart.
func WithSize(w, h int) Option {
	return func(m *Model) { m.width, m.height = w, h }
}

// WithLines sets the data to display.
func WithLines(lines ...Line) Option {
	return func(m *Model) { m.lines = lines }
}

// WithYFormatter sets the Y-axis label formatter.
func WithYFormatter(formatter func(int, float64) string) Option {
	return func(m *Model) { m.yFormatter = formatter }
}

// WithXYSteps sets the number of label steps for X and Y axes.
func WithXYSteps(xSteps, ySteps int) Option {
	return func(m *Model) { m.xSteps, m.ySteps = xSteps, ySteps }
}

// WithEmptyMessage sets the message to display when there's no data.
func WithEmptyMessage(msg string) Option {
	return func(m *Model) { m.emptyMessage = msg }
}

// SetStyles updates the chart styles.
func (m *Model) SetStyles(s Styles) {
	m.styles = s
}

// SetSize updates the chart dimensions.
func (m *Model) SetSize(w, h int) {
	m.width = w
	m.height = h
}

// SetLines updates the data.
func (m *Model) SetLines(lines ...Line) {
	m.lines = lines
}

// SetYFormatter updates the Y-axis label formatter.
func (m *Model) SetYFormatter(formatter func(int, float64) string) {
	m.yFormatter = formatter
}

// Width returns the current width.
func (m Model) Width() int {
	return m.width
}

// Height returns the current height.
func (m Model) Height() int {
	return m.height
}

// View renders the chart to a string.
func (m Model) View() string {
	if m.width < 1 || m.height < 1 {
		return ""
	}

	minTime, maxTime, maxValue, hasData := m.bounds()
	if !hasData {
		return charts.RenderCentered(m.width, m.height, m.emptyMessage)
	}
	if !maxTime.After(minTime) {
		maxTime = minTime.Add(24 * time.Hour)
	}

	layout := charts.TimeLabelLayout(minTime, maxTime)
	chart := tslc.New(m.width, m.height,
		tslc.WithXYSteps(m.xSteps, m.ySteps),
		tslc.WithXLabelFormatter(func(_ int, v float64) string {
			return time.Unix(int64(v), 0).UTC().Format(layout)
		}),
		tslc.WithYLabelFormatter(m.yFormatter),
		tslc.WithAxesStyles(m.styles.Axis, m.styles.Label),
		tslc.WithTimeRange(minTime, maxTime),
		tslc.WithYRange(0, maxValue),
	)
	chart.AutoMinX = false
	chart.AutoMaxX = false
	chart.AutoMinY = false
	chart.AutoMaxY = false

	for i, line := range m.lines {
		if i == 0 {
			chart.SetStyle(line.Style)
		} else {
			chart.SetDataSetStyle(line.Series.ID, line.Style)
		}
		for _, p := range line.Series.Data {
			point := tslc.TimePoint{Time: p.Time, Value: p.Value}
			if i == 0 {
				chart.Push(point)
			} else {
				chart.PushDataSet(line.Series.ID, point)
			}
		}
	}

	chart.DrawBrailleAll()
	return chart.View()
}

// bounds scans all lines for the plotted time and value ranges.
func (m Model) bounds() (minTime, maxTime time.Time, maxValue float64, hasData bool) {
	maxValue = 1.0
	for _, line := range m.lines {
		for _, p := range line.Series.Data {
			if !hasData || p.Time.Before(minTime) {
				minTime = p.Time
			}
			if !hasData || p.Time.After(maxTime) {
				maxTime = p.Time
			}
			maxValue = max(maxValue, p.Value)
			hasData = true
		}
	}
	return minTime, maxTime, maxValue, hasData
}
