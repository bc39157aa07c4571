package views

import (
	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/MESH-Research/invenio-stats-dashboard-sub001/internal/stats"
	"github.com/MESH-Research/invenio-stats-dashboard-sub001/internal/ui/components/timeseries"
	"github.com/MESH-Research/invenio-stats-dashboard-sub001/internal/ui/format"
	"github.com/MESH-Research/invenio-stats-dashboard-sub001/internal/ui/theme"
)

const smoothingWindow = 7

// overviewTotal is one headline number with its display unit.
type overviewTotal struct {
	label string
	value float64
	vt    stats.ValueType
}

// Overview shows community-wide totals and the cumulative record trend.
type Overview struct {
	width  int
	height int
	styles Styles

	model     stats.Model
	dateRange stats.DateRange
	basis     stats.Basis
	smoothed  bool

	totals        []overviewTotal
	chart         timeseries.Model
	growthRate    float64
	growthDefined bool
	hasGrowth     bool

	keyBasis  key.Binding
	keySmooth key.Binding
}

// NewOverview creates the overview view.
func NewOverview() *Overview {
	return &Overview{
		dateRange: stats.DateRange{},
		basis:     stats.BasisAdded,
		chart: timeseries.New(
			timeseries.WithEmptyMessage("no data for the selected range"),
		),
		keyBasis: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "basis"),
		),
		keySmooth: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "smooth"),
		),
	}
}

// Init implements View.
func (v *Overview) Init() tea.Cmd {
	return nil
}

// Update implements View.
func (v *Overview) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case ModelMsg:
		v.model = msg.Model
		v.rebuild()
	case RangeMsg:
		v.dateRange = msg.Range
		v.rebuild()
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, v.keyBasis):
			v.basis = nextBasis(v.basis)
			v.rebuild()
		case key.Matches(msg, v.keySmooth):
			v.smoothed = !v.smoothed
			v.rebuild()
		}
	}
	return v, nil
}

// rebuild recomputes totals and the chart from the current model and range.
func (v *Overview) rebuild() {
	snap := stats.Selector{Domain: stats.DomainRecords, Cadence: stats.CadenceSnapshot, Basis: v.basis}
	usage := stats.Selector{Domain: stats.DomainUsage, Cadence: stats.CadenceSnapshot}

	v.totals = []overviewTotal{
		{label: "Records", value: v.rollup(snap, stats.MetricRecords), vt: stats.ValueNumber},
		{label: "Uploaders", value: v.rollup(snap, stats.MetricUploaders), vt: stats.ValueNumber},
		{label: "Files", value: v.rollup(snap, stats.MetricFileCount), vt: stats.ValueNumber},
		{label: "Data", value: v.rollup(snap, stats.MetricDataVolume), vt: stats.ValueFilesize},
		{label: "Views", value: v.rollup(usage, stats.MetricViews), vt: stats.ValueNumber},
		{label: "Downloads", value: v.rollup(usage, stats.MetricDownloads), vt: stats.ValueNumber},
	}

	delta := stats.Selector{Domain: stats.DomainRecords, Cadence: stats.CadenceDelta, Basis: v.basis}
	series := v.seriesFor(delta, stats.MetricRecords)
	v.hasGrowth = false
	if len(series) > 0 {
		if rates := stats.GrowthRate(series[0]); len(rates.Data) > 0 {
			last := rates.Data[len(rates.Data)-1]
			v.growthRate = last.Rate
			v.growthDefined = last.Defined
			v.hasGrowth = true
		}
		if v.smoothed {
			for i, s := range series {
				series[i] = stats.MovingAverage(s, smoothingWindow)
			}
		}
	}

	v.chart.SetLines(timeseries.FromSeries(series, theme.ChartPalette)...)
	v.chart.SetYFormatter(func(_ int, val float64) string {
		return format.ShortNumber(int64(val))
	})
}

func (v *Overview) rollup(sel stats.Selector, metric stats.Metric) float64 {
	picker, ok := stats.PickSeries(sel, stats.CategoryGlobal, metric)
	if !ok {
		return 0
	}
	return stats.SnapshotRollup(v.model.Blocks, picker, v.dateRange)
}

func (v *Overview) seriesFor(sel stats.Selector, metric stats.Metric) []stats.DataSeries {
	picker, ok := stats.PickSeries(sel, stats.CategoryGlobal, metric)
	if !ok {
		return nil
	}
	return stats.FilterSeries(v.model.Merged(picker), v.dateRange)
}

// View implements View.
func (v *Overview) View() string {
	if v.width < 1 || v.height < 1 {
		return ""
	}

	title := v.styles.Title.Render("Overview") +
		v.styles.Muted.Render("  "+format.RangeLabel(v.dateRange)+"  basis: "+v.basis.String())
	if v.hasGrowth {
		style := v.styles.MetricValue
		switch {
		case v.growthDefined && v.growthRate > 0:
			style = v.styles.Success
		case v.growthDefined && v.growthRate < 0:
			style = v.styles.Failure
		}
		title += v.styles.Muted.Render("  daily growth: ") + style.Render(format.Rate(v.growthRate, v.growthDefined))
	}
	if v.smoothed {
		title += v.styles.Muted.Render("  (7-day average)")
	}

	boxes := v.renderTotals()
	chartHeight := max(v.height-lipgloss.Height(title)-lipgloss.Height(boxes)-1, 3)
	v.chart.SetSize(max(v.width-2, 10), chartHeight)

	return v.styles.BoxPadding.Render(lipgloss.JoinVertical(
		lipgloss.Left,
		title,
		boxes,
		v.chart.View(),
	))
}

func (v *Overview) renderTotals() string {
	if len(v.totals) == 0 {
		return v.styles.Muted.Render("waiting for data")
	}

	boxes := make([]string, 0, len(v.totals))
	for _, t := range v.totals {
		content := v.styles.MetricLabel.Render(t.label) + "\n" +
			v.styles.MetricValue.Render(format.Value(t.value, t.vt))
		boxes = append(boxes, v.styles.BorderStyle.Padding(0, 1).Render(content))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, boxes...)
}

// Name implements View.
func (v *Overview) Name() string {
	return "Overview"
}

// ShortHelp implements View.
func (v *Overview) ShortHelp() []key.Binding {
	return []key.Binding{v.keyBasis, v.keySmooth}
}

// SetSize implements View.
func (v *Overview) SetSize(width, height int) View {
	v.width = width
	v.height = height
	return v
}

// SetStyles implements View.
func (v *Overview) SetStyles(styles Styles) View {
	v.styles = styles
	v.chart.SetStyles(timeseries.Styles{Axis: styles.ChartAxis, Label: styles.ChartLabel})
	return v
}

// nextBasis cycles through the record accounting bases.
func nextBasis(b stats.Basis) stats.Basis {
	for i, basis := range stats.AllBases {
		if basis == b {
			return stats.AllBases[(i+1)%len(stats.AllBases)]
		}
	}
	return stats.BasisAdded
}
