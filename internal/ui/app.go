// Package ui renders the Bubble Tea application UI.
package ui

import (
	"context"
	"time"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/MESH-Research/invenio-stats-dashboard-sub001/internal/invenio"
	"github.com/MESH-Research/invenio-stats-dashboard-sub001/internal/stats"
	"github.com/MESH-Research/invenio-stats-dashboard-sub001/internal/ui/components/navbar"
	"github.com/MESH-Research/invenio-stats-dashboard-sub001/internal/ui/components/statbar"
	"github.com/MESH-Research/invenio-stats-dashboard-sub001/internal/ui/theme"
	"github.com/MESH-Research/invenio-stats-dashboard-sub001/internal/ui/views"
)

// refreshInterval is how often the model is re-fetched in the background.
const refreshInterval = 5 * time.Minute

// tickMsg triggers a periodic background refresh.
type tickMsg time.Time

// modelLoadedMsg carries a freshly loaded statistics model.
type modelLoadedMsg struct {
	model     stats.Model
	fetchedAt time.Time
}

// rangePresets builds the selectable date ranges relative to now: all time,
// this year, last 12 months, last 30 days.
func rangePresets(now time.Time) []stats.DateRange {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return []stats.DateRange{
		{},
		{Start: time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, time.UTC), End: today},
		{Start: today.AddDate(-1, 0, 0), End: today},
		{Start: today.AddDate(0, 0, -30), End: today},
	}
}

// App is the main application model.
type App struct {
	keys       KeyMap
	width      int
	height     int
	ready      bool
	activeView int
	views      []views.View
	statbar    statbar.Model
	navbar     navbar.Model
	styles     theme.Styles

	service    *invenio.Service
	presets    []stats.DateRange
	rangeIndex int
	fetchError error
}

// New creates a new App instance.
func New(service *invenio.Service) App {
	styles := theme.NewStyles()

	viewList := []views.View{
		views.NewOverview(),
		views.NewContent(),
		views.NewTraffic(service.Client(), service.CommunityID()),
		views.NewInspector(),
	}

	viewStyles := views.Styles{
		Text:        styles.ViewText,
		Muted:       styles.ViewMuted,
		Title:       styles.ViewTitle,
		MetricLabel: styles.MetricLabel,
		MetricValue: styles.MetricValue,
		TableHeader: styles.TableHeader,
		BoxPadding:  styles.BoxPadding,
		BorderStyle: styles.BorderStyle,
		ChartAxis:   styles.ChartAxis,
		ChartLabel:  styles.ChartLabel,
		Success:     styles.Success,
		Failure:     styles.Failure,
	}
	for i := range viewList {
		viewList[i] = viewList[i].SetStyles(viewStyles)
	}

	navViews := make([]navbar.ViewInfo, len(viewList))
	for i, v := range viewList {
		navViews[i] = navbar.ViewInfo{Name: v.Name()}
	}

	return App{
		keys:       DefaultKeyMap(),
		activeView: 0,
		views:      viewList,
		statbar: statbar.New(
			statbar.WithStyles(statbar.Styles{
				Bar:   styles.StatBar,
				Label: styles.StatLabel,
				Value: styles.StatValue,
			}),
		),
		navbar: navbar.New(
			navbar.WithStyles(navbar.Styles{
				Bar:    styles.NavBar,
				Key:    styles.NavKey,
				Item:   styles.NavItem,
				Active: styles.NavItem.Bold(true),
				Quit:   styles.NavQuit,
			}),
			navbar.WithViews(navViews),
		),
		styles:  styles,
		service: service,
		presets: rangePresets(time.Now().UTC()),
	}
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return tea.Batch(
		a.views[a.activeView].Init(),
		a.loadCmd(false),
		tickCmd(),
	)
}

// tickCmd schedules the next background refresh.
func tickCmd() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// loadCmd loads the statistics model, optionally bypassing the cache.
func (a App) loadCmd(force bool) tea.Cmd {
	service := a.service
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		load := service.Load
		if force {
			load = service.Refresh
		}
		model, fetchedAt, err := load(ctx)
		if err != nil {
			return views.FetchErrorMsg{Err: err}
		}
		return modelLoadedMsg{model: model, fetchedAt: fetchedAt}
	}
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tickMsg:
		cmds = append(cmds, a.loadCmd(false), tickCmd())

	case modelLoadedMsg:
		a.fetchError = nil
		updatedBar, cmd := a.statbar.Update(statbar.UpdateMsg{Data: summaryData(msg.model, msg.fetchedAt)})
		a.statbar = updatedBar
		cmds = append(cmds, cmd)
		cmds = append(cmds, a.broadcast(views.ModelMsg{Model: msg.model, FetchedAt: msg.fetchedAt})...)

	case views.FetchErrorMsg:
		a.fetchError = msg.Err

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, a.keys.Quit):
			return a, tea.Quit

		case key.Matches(msg, a.keys.View1):
			a.switchView(0, &cmds)
		case key.Matches(msg, a.keys.View2):
			a.switchView(1, &cmds)
		case key.Matches(msg, a.keys.View3):
			a.switchView(2, &cmds)
		case key.Matches(msg, a.keys.View4):
			a.switchView(3, &cmds)
		case key.Matches(msg, a.keys.Tab):
			a.switchView((a.activeView+1)%len(a.views), &cmds)
		case key.Matches(msg, a.keys.ShiftTab):
			a.switchView((a.activeView-1+len(a.views))%len(a.views), &cmds)

		case key.Matches(msg, a.keys.Refresh):
			a.fetchError = nil
			cmds = append(cmds, a.loadCmd(true))
			updatedView, cmd := a.views[a.activeView].Update(views.RefreshMsg{})
			a.views[a.activeView] = updatedView
			cmds = append(cmds, cmd)

		case key.Matches(msg, a.keys.Range):
			a.rangeIndex = (a.rangeIndex + 1) % len(a.presets)
			cmds = append(cmds, a.broadcast(views.RangeMsg{Range: a.presets[a.rangeIndex]})...)

		default:
			updatedView, cmd := a.views[a.activeView].Update(msg)
			a.views[a.activeView] = updatedView
			cmds = append(cmds, cmd)
		}

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true

		a.statbar.SetWidth(msg.Width)
		a.navbar.SetWidth(msg.Width)

		contentHeight := msg.Height - a.statbar.Height() - a.navbar.Height()
		for i := range a.views {
			a.views[i] = a.views[i].SetSize(msg.Width, contentHeight)
		}

	default:
		updatedView, cmd := a.views[a.activeView].Update(msg)
		a.views[a.activeView] = updatedView
		cmds = append(cmds, cmd)
	}

	return a, tea.Batch(cmds...)
}

// switchView activates a view and runs its Init command.
func (a *App) switchView(index int, cmds *[]tea.Cmd) {
	if index < 0 || index >= len(a.views) {
		return
	}
	a.activeView = index
	a.navbar.SetActive(index)
	*cmds = append(*cmds, a.views[a.activeView].Init())
}

// broadcast delivers a message to every view, active or not.
func (a *App) broadcast(msg tea.Msg) []tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(a.views))
	for i := range a.views {
		updatedView, cmd := a.views[i].Update(msg)
		a.views[i] = updatedView
		cmds = append(cmds, cmd)
	}
	return cmds
}

// summaryData computes the all-time running totals for the summary bar.
func summaryData(model stats.Model, fetchedAt time.Time) statbar.Data {
	all := stats.DateRange{}
	records := stats.Selector{Domain: stats.DomainRecords, Cadence: stats.CadenceSnapshot, Basis: stats.BasisAdded}
	usage := stats.Selector{Domain: stats.DomainUsage, Cadence: stats.CadenceSnapshot}

	total := func(sel stats.Selector, metric stats.Metric) int64 {
		picker, ok := stats.PickSeries(sel, stats.CategoryGlobal, metric)
		if !ok {
			return 0
		}
		return int64(stats.SnapshotRollup(model.Blocks, picker, all))
	}

	return statbar.Data{
		Records:    total(records, stats.MetricRecords),
		Files:      total(records, stats.MetricFileCount),
		DataVolume: total(records, stats.MetricDataVolume),
		Views:      total(usage, stats.MetricViews),
		Downloads:  total(usage, stats.MetricDownloads),
		FetchedAt:  fetchedAt,
	}
}

// View implements tea.Model.
func (a App) View() tea.View {
	var v tea.View
	v.AltScreen = true

	if !a.ready {
		v.SetContent("Initializing...")
		return v
	}

	content := a.views[a.activeView].View()
	if a.fetchError != nil {
		banner := a.styles.ErrorTitle.Render("fetch failed: ") +
			a.styles.ViewMuted.Render(a.fetchError.Error())
		content = lipgloss.JoinVertical(lipgloss.Left, a.styles.ErrorBorder.Padding(0, 1).Render(banner), content)
	}

	v.SetContent(lipgloss.JoinVertical(
		lipgloss.Left,
		a.statbar.View(),
		content,
		a.navbar.View(),
	))

	return v
}
