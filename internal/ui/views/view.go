// Package views contains the dashboard screens.
package views

import (
	"time"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/MESH-Research/invenio-stats-dashboard-sub001/internal/stats"
)

// Styles holds the view-related styles from the theme.
type Styles struct {
	Text        lipgloss.Style
	Muted       lipgloss.Style
	Title       lipgloss.Style
	MetricLabel lipgloss.Style
	MetricValue lipgloss.Style
	TableHeader lipgloss.Style
	BoxPadding  lipgloss.Style
	BorderStyle lipgloss.Style
	ChartAxis   lipgloss.Style
	ChartLabel  lipgloss.Style
	Success     lipgloss.Style
	Failure     lipgloss.Style
}

// View defines the interface that all views must implement.
type View interface {
	// Init returns an initial command for the view
	Init() tea.Cmd

	// Update handles messages and returns the updated view and any commands
	Update(msg tea.Msg) (View, tea.Cmd)

	// View renders the view as a string
	View() string

	// Name returns the display name for this view (shown in navbar)
	Name() string

	// ShortHelp returns keybindings to show in the help line
	ShortHelp() []key.Binding

	// SetSize updates the view dimensions
	SetSize(width, height int) View

	// SetStyles updates the view styles
	SetStyles(styles Styles) View
}

// ModelMsg carries freshly normalized statistics to every view.
type ModelMsg struct {
	Model     stats.Model
	FetchedAt time.Time
	FromCache bool
}

// RangeMsg carries the active date range to every view.
type RangeMsg struct {
	Range stats.DateRange
}

// RefreshMsg asks a view to re-fetch any data it owns.
type RefreshMsg struct{}

// FetchErrorMsg reports a failed fetch from the repository API.
type FetchErrorMsg struct {
	Err error
}
