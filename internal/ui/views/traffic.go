package views

import (
	"context"
	"fmt"
	"time"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/MESH-Research/invenio-stats-dashboard-sub001/internal/invenio"
	"github.com/MESH-Research/invenio-stats-dashboard-sub001/internal/stats"
	"github.com/MESH-Research/invenio-stats-dashboard-sub001/internal/ui/components/breakdown"
	"github.com/MESH-Research/invenio-stats-dashboard-sub001/internal/ui/components/records"
	"github.com/MESH-Research/invenio-stats-dashboard-sub001/internal/ui/components/timeseries"
	"github.com/MESH-Research/invenio-stats-dashboard-sub001/internal/ui/format"
	"github.com/MESH-Research/invenio-stats-dashboard-sub001/internal/ui/theme"
)

const trafficPageSize = 10

// topRecordsMsg delivers one page of the most active records.
type topRecordsMsg struct {
	sort invenio.RecordSort
	page invenio.RecordPage
}

// Traffic shows usage trends, audience breakdowns and the busiest records.
type Traffic struct {
	width  int
	height int
	styles Styles

	client      *invenio.Client
	communityID string

	model     stats.Model
	dateRange stats.DateRange
	downloads bool

	growthRate    float64
	growthDefined bool
	hasGrowth     bool

	categories []stats.Category
	catIndex   int

	chart          timeseries.Model
	table          breakdown.Model
	mostViewed     records.Model
	mostDownloaded records.Model

	keyNextCat key.Binding
	keyPrevCat key.Binding
	keyMode    key.Binding
}

// NewTraffic creates the traffic view. The client may be nil in tests; the
// top-record tables then stay empty.
func NewTraffic(client *invenio.Client, communityID string) *Traffic {
	return &Traffic{
		client:      client,
		communityID: communityID,
		table:       breakdown.New(),
		chart: timeseries.New(
			timeseries.WithEmptyMessage("no usage data for the selected range"),
		),
		mostViewed:     records.New(records.WithTitle("Most viewed")),
		mostDownloaded: records.New(records.WithTitle("Most downloaded")),
		keyNextCat: key.NewBinding(
			key.WithKeys("l", "right"),
			key.WithHelp("l", "next dimension"),
		),
		keyPrevCat: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("h", "prev dimension"),
		),
		keyMode: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "views/downloads"),
		),
	}
}

// Init implements View.
func (v *Traffic) Init() tea.Cmd {
	return v.fetchTopRecords()
}

// fetchTopRecords loads both record tables in one batch.
func (v *Traffic) fetchTopRecords() tea.Cmd {
	if v.client == nil {
		return nil
	}
	return tea.Batch(
		v.fetchSorted(invenio.SortMostViewed),
		v.fetchSorted(invenio.SortMostDownloaded),
	)
}

func (v *Traffic) fetchSorted(sort invenio.RecordSort) tea.Cmd {
	client, communityID, dateRange := v.client, v.communityID, v.dateRange
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		page, err := client.TopRecords(ctx, invenio.TopRecordsQuery{
			CommunityID: communityID,
			Sort:        sort,
			PageSize:    trafficPageSize,
			Range:       dateRange,
		})
		if err != nil {
			return FetchErrorMsg{Err: err}
		}
		return topRecordsMsg{sort: sort, page: page}
	}
}

// Update implements View.
func (v *Traffic) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case ModelMsg:
		v.model = msg.Model
		v.rebuild()
	case RangeMsg:
		v.dateRange = msg.Range
		v.rebuild()
		return v, v.fetchTopRecords()
	case RefreshMsg:
		return v, v.fetchTopRecords()
	case topRecordsMsg:
		if msg.sort == invenio.SortMostDownloaded {
			v.mostDownloaded.SetPage(msg.page)
		} else {
			v.mostViewed.SetPage(msg.page)
		}
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, v.keyNextCat):
			v.moveCategory(1)
		case key.Matches(msg, v.keyPrevCat):
			v.moveCategory(-1)
		case key.Matches(msg, v.keyMode):
			v.downloads = !v.downloads
			v.rebuild()
		}
	}
	return v, nil
}

func (v *Traffic) moveCategory(delta int) {
	if len(v.categories) == 0 {
		return
	}
	v.catIndex = (v.catIndex + delta + len(v.categories)) % len(v.categories)
	v.rebuild()
}

func (v *Traffic) category() (stats.Category, bool) {
	if v.catIndex < 0 || v.catIndex >= len(v.categories) {
		return stats.CategoryGlobal, false
	}
	return v.categories[v.catIndex], true
}

// rebuild recomputes the usage chart and the audience breakdown.
func (v *Traffic) rebuild() {
	deltaSel := stats.Selector{Domain: stats.DomainUsage, Cadence: stats.CadenceDelta}

	lines := make([]timeseries.Line, 0, 2)
	v.hasGrowth = false
	for i, metric := range []stats.Metric{stats.MetricViews, stats.MetricDownloads} {
		picker, ok := stats.PickSeries(deltaSel, stats.CategoryGlobal, metric)
		if !ok {
			continue
		}
		series := stats.FilterSeries(v.model.Merged(picker), v.dateRange)
		if metric == stats.MetricViews && len(series) > 0 {
			if rates := stats.GrowthRate(series[0]); len(rates.Data) > 0 {
				last := rates.Data[len(rates.Data)-1]
				v.growthRate = last.Rate
				v.growthDefined = last.Defined
				v.hasGrowth = true
			}
		}
		for _, s := range series {
			// Both global series share the "global" id; rename so the chart
			// keeps them as separate datasets.
			s.ID = metric.String()
			s.Name = metric.String()
			lines = append(lines, timeseries.Line{
				Series: s,
				Style:  lipgloss.NewStyle().Foreground(lipgloss.Color(stats.ColorFor(i, theme.ChartPalette))),
			})
		}
	}
	v.chart.SetLines(lines...)
	v.chart.SetYFormatter(func(_ int, val float64) string {
		return format.ShortNumber(int64(val))
	})

	snapSel := stats.Selector{Domain: stats.DomainUsage, Cadence: stats.CadenceSnapshot}

	prev, _ := v.category()
	v.categories = stats.AvailableBreakdowns(v.model.Blocks, snapSel, v.dateRange)
	v.catIndex = indexOfCategory(v.categories, prev)

	cat, ok := v.category()
	if !ok {
		v.table.SetResult(stats.BucketResult{}, stats.ValueNumber)
		return
	}

	metric := stats.MetricViews
	if v.downloads {
		metric = stats.MetricDownloads
	}

	// Split dimensions carry separate by-view and by-download member sets;
	// the rest are addressed through the regular dispatch.
	picker, split := stats.PickByView(cat)
	if v.downloads {
		picker, split = stats.PickByDownload(cat)
	}
	if !split {
		var pickOK bool
		picker, pickOK = stats.PickSeries(snapSel, cat, metric)
		if !pickOK {
			v.table.SetResult(stats.BucketResult{}, stats.ValueNumber)
			return
		}
	}

	latest := stats.LatestSeries(v.model.Merged(picker), v.dateRange)
	result := stats.Bucketize(latest, trafficPageSize, cat.SearchField(), theme.ChartPalette)
	v.table.SetResult(result, stats.ValueNumber)
	v.table.SetTitle(fmt.Sprintf("%s by %s", metric.String(), cat.Label()))
}

// View implements View.
func (v *Traffic) View() string {
	if v.width < 1 || v.height < 1 {
		return ""
	}

	mode := "views"
	if v.downloads {
		mode = "downloads"
	}
	title := v.styles.Title.Render("Traffic") +
		v.styles.Muted.Render(fmt.Sprintf("  %s  mode: %s", format.RangeLabel(v.dateRange), mode))
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

	bodyHeight := max(v.height-lipgloss.Height(title)-1, 6)
	chartHeight := max(bodyHeight/2, 3)
	panelHeight := max(bodyHeight-chartHeight, 3)
	panelWidth := max(v.width/3-2, 20)

	v.chart.SetSize(max(v.width-2, 10), chartHeight)
	v.table.SetSize(panelWidth, panelHeight)
	v.mostViewed.SetSize(panelWidth, panelHeight)
	v.mostDownloaded.SetSize(panelWidth, panelHeight)

	panels := lipgloss.JoinHorizontal(
		lipgloss.Top,
		v.table.View(), "  ",
		v.mostViewed.View(), "  ",
		v.mostDownloaded.View(),
	)

	return v.styles.BoxPadding.Render(lipgloss.JoinVertical(
		lipgloss.Left,
		title,
		v.chart.View(),
		panels,
	))
}

// Name implements View.
func (v *Traffic) Name() string {
	return "Traffic"
}

// ShortHelp implements View.
func (v *Traffic) ShortHelp() []key.Binding {
	return []key.Binding{v.keyPrevCat, v.keyNextCat, v.keyMode}
}

// SetSize implements View.
func (v *Traffic) SetSize(width, height int) View {
	v.width = width
	v.height = height
	return v
}

// SetStyles implements View.
func (v *Traffic) SetStyles(styles Styles) View {
	v.styles = styles
	v.chart.SetStyles(timeseries.Styles{Axis: styles.ChartAxis, Label: styles.ChartLabel})
	tableStyles := breakdown.Styles{
		Title: styles.Title,
		Row:   styles.Text,
		Value: styles.MetricValue,
		Muted: styles.Muted,
	}
	v.table.SetStyles(tableStyles)
	recordStyles := records.Styles{
		Title:    styles.Title,
		Header:   styles.TableHeader,
		Row:      styles.Text,
		Selected: styles.Text,
		Muted:    styles.Muted,
	}
	v.mostViewed.SetStyles(recordStyles)
	v.mostDownloaded.SetStyles(recordStyles)
	return v
}
