// Package breakdown renders a Top-N bucket table with share bars.
package breakdown

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/MESH-Research/invenio-stats-dashboard-sub001/internal/mathutil"
	"github.com/MESH-Research/invenio-stats-dashboard-sub001/internal/stats"
	"github.com/MESH-Research/invenio-stats-dashboard-sub001/internal/ui/format"
)

const (
	swatch   = "●"
	barRune  = "█"
	barWidth = 12
)

// Styles holds the styles needed by the breakdown table.
type Styles struct {
	Title lipgloss.Style
	Row   lipgloss.Style
	Value lipgloss.Style
	Muted lipgloss.Style
}

// DefaultStyles returns default styles for the breakdown table.
func DefaultStyles() Styles {
	return Styles{
		Title: lipgloss.NewStyle().Bold(true),
		Row:   lipgloss.NewStyle(),
		Value: lipgloss.NewStyle().Bold(true),
		Muted: lipgloss.NewStyle().Faint(true),
	}
}

// Model defines state for the breakdown table component.
type Model struct {
	styles    Styles
	width     int
	height    int
	title     string
	result    stats.BucketResult
	valueType stats.ValueType
}

// Option is used to set options in New.
type Option func(*Model)

// New creates a new breakdown table model.
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

// WithSize sets the dimensions.
func WithSize(w, h int) Option {
	return func(m *Model) {
		m.width, m.height = w, h
	}
}

// WithTitle sets the table title.
func WithTitle(title string) Option {
	return func(m *Model) {
		m.title = title
	}
}

// SetStyles sets the styles.
func (m *Model) SetStyles(s Styles) {
	m.styles = s
}

// SetSize sets the dimensions.
func (m *Model) SetSize(w, h int) {
	m.width = w
	m.height = h
}

// SetTitle sets the table title.
func (m *Model) SetTitle(title string) {
	m.title = title
}

// SetResult sets the bucketed data to display.
func (m *Model) SetResult(result stats.BucketResult, vt stats.ValueType) {
	m.result = result
	m.valueType = vt
}

// Init returns an initial command.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m Model) Update(_ tea.Msg) (Model, tea.Cmd) {
	return m, nil
}

// View renders the breakdown table.
func (m Model) View() string {
	if m.width < 1 || m.height < 1 {
		return ""
	}

	lines := make([]string, 0, m.height)
	if m.title != "" {
		lines = append(lines, ansi.Truncate(m.styles.Title.Render(m.title), m.width, ""))
	}

	if m.result.Total == 0 {
		lines = append(lines, m.styles.Muted.Render("no data"))
		return m.fill(lines)
	}

	rows := m.result.Entries
	if m.result.Other != nil {
		rows = append(rows[:len(rows):len(rows)], *m.result.Other)
	}

	for _, entry := range rows {
		if len(lines) >= m.height {
			break
		}
		lines = append(lines, m.renderRow(entry))
	}

	return m.fill(lines)
}

func (m Model) renderRow(entry stats.BucketEntry) string {
	dot := lipgloss.NewStyle().Foreground(lipgloss.Color(entry.Color)).Render(swatch)
	value := m.styles.Value.Render(format.Value(entry.Value, m.valueType))
	pct := m.styles.Muted.Render(format.Percent(entry.Percentage))
	bar := m.renderBar(entry)

	tail := " " + value + " " + pct + " " + bar
	nameWidth := mathutil.Clamp(m.width-2-lipgloss.Width(tail), 0, m.width)
	name := ansi.Truncate(entry.Name, nameWidth, "…")
	name += strings.Repeat(" ", max(nameWidth-lipgloss.Width(name), 0))

	style := m.styles.Row
	if entry.ID == stats.OtherID {
		style = m.styles.Muted
	}
	return dot + " " + style.Render(name) + tail
}

func (m Model) renderBar(entry stats.BucketEntry) string {
	filled := mathutil.Clamp(int(entry.Percentage)*barWidth/100, 0, barWidth)
	if filled == 0 && entry.Value > 0 {
		filled = 1
	}
	bar := strings.Repeat(barRune, filled) + strings.Repeat(" ", barWidth-filled)
	return lipgloss.NewStyle().Foreground(lipgloss.Color(entry.Color)).Render(bar)
}

func (m Model) fill(lines []string) string {
	for len(lines) < m.height {
		lines = append(lines, "")
	}
	return strings.Join(lines[:m.height], "\n")
}
