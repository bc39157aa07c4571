// Package statbar renders the top summary bar with community-wide totals.
package statbar

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/MESH-Research/invenio-stats-dashboard-sub001/internal/ui/format"
)

// Data holds the community-wide running totals.
type Data struct {
	Records    int64
	Files      int64
	DataVolume int64
	Views      int64
	Downloads  int64
	FetchedAt  time.Time
}

// UpdateMsg is sent when the totals should be updated.
type UpdateMsg struct {
	Data Data
}

// Styles holds the styles needed by the summary bar.
type Styles struct {
	Bar   lipgloss.Style
	Label lipgloss.Style
	Value lipgloss.Style
}

// DefaultStyles returns default styles for the summary bar.
func DefaultStyles() Styles {
	return Styles{
		Bar:   lipgloss.NewStyle().Padding(0, 1),
		Label: lipgloss.NewStyle().Faint(true),
		Value: lipgloss.NewStyle().Bold(true),
	}
}

// Model defines state for the summary bar component.
type Model struct {
	styles Styles
	data   Data
	width  int
}

// Option is used to set options in New.
type Option func(*Model)

// New creates a new summary bar model.
func New(opts ...Option) Model {
	m := Model{
		styles: DefaultStyles(),
	}

	for _, opt := range opts {
		opt(&m)
	}

	return m
}

// WithStyles sets the styles.
func WithStyles(s Styles) Option {
	return func(m *Model) {
		m.styles = s
	}
}

// WithWidth sets the width.
func WithWidth(w int) Option {
	return func(m *Model) {
		m.width = w
	}
}

// SetStyles sets the styles.
func (m *Model) SetStyles(s Styles) {
	m.styles = s
}

// SetWidth sets the width.
func (m *Model) SetWidth(w int) {
	m.width = w
}

// SetData sets the totals.
func (m *Model) SetData(d Data) {
	m.data = d
}

// Data returns the current totals.
func (m Model) Data() Data {
	return m.data
}

// Height returns the height of the summary bar (always 1).
func (m Model) Height() int {
	return 1
}

// Init returns an initial command.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case UpdateMsg:
		m.data = msg.Data
	}
	return m, nil
}

// View renders the summary bar.
func (m Model) View() string {
	if m.width <= 0 {
		return ""
	}

	barStyle := m.styles.Bar.Width(m.width)

	items := []string{
		m.styles.Label.Render("Records: ") + m.styles.Value.Render(format.ShortNumber(m.data.Records)),
		m.styles.Label.Render("Files: ") + m.styles.Value.Render(format.ShortNumber(m.data.Files)),
		m.styles.Label.Render("Size: ") + m.styles.Value.Render(format.Bytes(m.data.DataVolume)),
		m.styles.Label.Render("Views: ") + m.styles.Value.Render(format.ShortNumber(m.data.Views)),
		m.styles.Label.Render("Downloads: ") + m.styles.Value.Render(format.ShortNumber(m.data.Downloads)),
	}
	if !m.data.FetchedAt.IsZero() {
		items = append(items, m.styles.Label.Render("As of: ")+m.styles.Value.Render(m.data.FetchedAt.UTC().Format("15:04:05")))
	}

	contentWidth := max(m.width-barStyle.GetHorizontalPadding(), 0)
	content := ansi.Truncate(strings.Join(items, "  "), contentWidth, "")
	return barStyle.Render(content)
}
