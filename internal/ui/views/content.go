package views

import (
	"fmt"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/MESH-Research/invenio-stats-dashboard-sub001/internal/stats"
	"github.com/MESH-Research/invenio-stats-dashboard-sub001/internal/ui/components/breakdown"
	"github.com/MESH-Research/invenio-stats-dashboard-sub001/internal/ui/components/timeseries"
	"github.com/MESH-Research/invenio-stats-dashboard-sub001/internal/ui/format"
	"github.com/MESH-Research/invenio-stats-dashboard-sub001/internal/ui/theme"
)

var contentPageSizes = []int{5, 10, 15}

// otherDominanceThreshold is the Other-bucket share (percent) above which the
// remainder is kept off the trend chart and called out in the title instead.
const otherDominanceThreshold = 50

// Content explores record breakdowns by dimension.
type Content struct {
	width  int
	height int
	styles Styles

	model     stats.Model
	dateRange stats.DateRange
	basis     stats.Basis
	metric    stats.Metric

	categories []stats.Category
	catIndex   int
	sizeIndex  int

	table     breakdown.Model
	chart     timeseries.Model
	chartNote string

	keyNextCat  key.Binding
	keyPrevCat  key.Binding
	keyMetric   key.Binding
	keyBasis    key.Binding
	keyPageSize key.Binding
}

// NewContent creates the content breakdown view.
func NewContent() *Content {
	return &Content{
		basis:  stats.BasisAdded,
		metric: stats.MetricRecords,
		table:  breakdown.New(),
		chart: timeseries.New(
			timeseries.WithEmptyMessage("no data for the selected range"),
		),
		keyNextCat: key.NewBinding(
			key.WithKeys("l", "right"),
			key.WithHelp("l", "next dimension"),
		),
		keyPrevCat: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("h", "prev dimension"),
		),
		keyMetric: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "metric"),
		),
		keyBasis: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "basis"),
		),
		keyPageSize: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "page size"),
		),
	}
}

// Init implements View.
func (v *Content) Init() tea.Cmd {
	return nil
}

// Update implements View.
func (v *Content) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case ModelMsg:
		v.model = msg.Model
		v.rebuild()
	case RangeMsg:
		v.dateRange = msg.Range
		v.rebuild()
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, v.keyNextCat):
			v.moveCategory(1)
		case key.Matches(msg, v.keyPrevCat):
			v.moveCategory(-1)
		case key.Matches(msg, v.keyMetric):
			if v.metric == stats.MetricRecords {
				v.metric = stats.MetricParents
			} else {
				v.metric = stats.MetricRecords
			}
			v.rebuild()
		case key.Matches(msg, v.keyBasis):
			v.basis = nextBasis(v.basis)
			v.rebuild()
		case key.Matches(msg, v.keyPageSize):
			v.sizeIndex = (v.sizeIndex + 1) % len(contentPageSizes)
			v.rebuild()
		}
	}
	return v, nil
}

func (v *Content) moveCategory(delta int) {
	if len(v.categories) == 0 {
		return
	}
	v.catIndex = (v.catIndex + delta + len(v.categories)) % len(v.categories)
	v.rebuild()
}

func (v *Content) category() (stats.Category, bool) {
	if v.catIndex < 0 || v.catIndex >= len(v.categories) {
		return stats.CategoryGlobal, false
	}
	return v.categories[v.catIndex], true
}

func (v *Content) pageSize() int {
	return contentPageSizes[v.sizeIndex]
}

// rebuild recomputes the available dimensions, bucket table and trend chart.
func (v *Content) rebuild() {
	sel := stats.Selector{Domain: stats.DomainRecords, Cadence: stats.CadenceSnapshot, Basis: v.basis}

	prev, _ := v.category()
	v.categories = stats.AvailableBreakdowns(v.model.Blocks, sel, v.dateRange)
	v.catIndex = indexOfCategory(v.categories, prev)

	cat, ok := v.category()
	if !ok {
		v.table.SetResult(stats.BucketResult{}, stats.ValueNumber)
		v.chart.SetLines()
		v.chartNote = ""
		return
	}

	picker, ok := stats.PickSeries(sel, cat, v.metric)
	if !ok {
		v.table.SetResult(stats.BucketResult{}, stats.ValueNumber)
		v.chart.SetLines()
		v.chartNote = ""
		return
	}
	latest := stats.LatestSeries(v.model.Merged(picker), v.dateRange)
	result := stats.Bucketize(latest, v.pageSize(), cat.SearchField(), theme.ChartPalette)
	v.table.SetResult(result, stats.ValueNumber)
	v.table.SetTitle(fmt.Sprintf("%s by %s", v.metric.String(), cat.Label()))

	v.rebuildChart(cat, result)
}

// rebuildChart plots the period activity of the bucketed members, keeping
// the colors assigned by the bucketizer.
func (v *Content) rebuildChart(cat stats.Category, result stats.BucketResult) {
	sel := stats.Selector{Domain: stats.DomainRecords, Cadence: stats.CadenceDelta, Basis: v.basis}
	picker, ok := stats.PickSeries(sel, cat, v.metric)
	if !ok {
		v.chart.SetLines()
		v.chartNote = ""
		return
	}
	deltas := stats.FilterSeries(v.model.Merged(picker), v.dateRange)
	byID := make(map[string]stats.DataSeries, len(deltas))
	for _, s := range deltas {
		byID[s.ID] = s
	}

	entries, note := result.ChartEntries(otherDominanceThreshold)
	v.chartNote = note

	lines := make([]timeseries.Line, 0, len(entries))
	for _, entry := range entries {
		s, ok := byID[entry.ID]
		if !ok {
			continue
		}
		lines = append(lines, timeseries.Line{
			Series: s,
			Style:  lipgloss.NewStyle().Foreground(lipgloss.Color(entry.Color)),
		})
	}
	v.chart.SetLines(lines...)
	v.chart.SetYFormatter(func(_ int, val float64) string {
		return format.ShortNumber(int64(val))
	})
}

// View implements View.
func (v *Content) View() string {
	if v.width < 1 || v.height < 1 {
		return ""
	}

	cat, ok := v.category()
	dimension := "none"
	if ok {
		dimension = cat.Label()
	}
	title := v.styles.Title.Render("Content") +
		v.styles.Muted.Render(fmt.Sprintf("  %s  dimension: %s  basis: %s  top %d",
			format.RangeLabel(v.dateRange), dimension, v.basis.String(), v.pageSize()))
	if v.chartNote != "" {
		title += v.styles.Muted.Render("  " + v.chartNote)
	}

	bodyHeight := max(v.height-lipgloss.Height(title)-1, 3)
	tableWidth := max(v.width/2-2, 20)
	chartWidth := max(v.width-tableWidth-4, 10)

	v.table.SetSize(tableWidth, bodyHeight)
	v.chart.SetSize(chartWidth, bodyHeight)

	body := lipgloss.JoinHorizontal(lipgloss.Top, v.table.View(), "  ", v.chart.View())
	return v.styles.BoxPadding.Render(lipgloss.JoinVertical(lipgloss.Left, title, body))
}

// Name implements View.
func (v *Content) Name() string {
	return "Content"
}

// ShortHelp implements View.
func (v *Content) ShortHelp() []key.Binding {
	return []key.Binding{v.keyPrevCat, v.keyNextCat, v.keyMetric, v.keyBasis, v.keyPageSize}
}

// SetSize implements View.
func (v *Content) SetSize(width, height int) View {
	v.width = width
	v.height = height
	return v
}

// SetStyles implements View.
func (v *Content) SetStyles(styles Styles) View {
	v.styles = styles
	v.chart.SetStyles(timeseries.Styles{Axis: styles.ChartAxis, Label: styles.ChartLabel})
	v.table.SetStyles(breakdown.Styles{
		Title: styles.Title,
		Row:   styles.Text,
		Value: styles.MetricValue,
		Muted: styles.Muted,
	})
	return v
}

// indexOfCategory keeps the selection stable across data refreshes.
func indexOfCategory(categories []stats.Category, want stats.Category) int {
	for i, c := range categories {
		if c == want {
			return i
		}
	}
	return 0
}
