// Package records renders a table of the most active records.
package records

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/MESH-Research/invenio-stats-dashboard-sub001/internal/invenio"
	"github.com/MESH-Research/invenio-stats-dashboard-sub001/internal/mathutil"
	"github.com/MESH-Research/invenio-stats-dashboard-sub001/internal/ui/format"
)

const countColWidth = 7

// Styles holds the styles needed by the records table.
type Styles struct {
	Title    lipgloss.Style
	Header   lipgloss.Style
	Row      lipgloss.Style
	Selected lipgloss.Style
	Muted    lipgloss.Style
}

// DefaultStyles returns default styles for the records table.
func DefaultStyles() Styles {
	return Styles{
		Title:    lipgloss.NewStyle().Bold(true),
		Header:   lipgloss.NewStyle().Bold(true),
		Row:      lipgloss.NewStyle(),
		Selected: lipgloss.NewStyle().Reverse(true),
		Muted:    lipgloss.NewStyle().Faint(true),
	}
}

// Model defines state for the records table component.
type Model struct {
	styles   Styles
	width    int
	height   int
	title    string
	rows     []invenio.RecordSummary
	total    int
	selected int
}

// Option is used to set options in New.
type Option func(*Model)

// New creates a new records table model.
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
	m.clampSelection()
}

// SetTitle sets the table title.
func (m *Model) SetTitle(title string) {
	m.title = title
}

// SetPage sets the records to display.
func (m *Model) SetPage(page invenio.RecordPage) {
	m.rows = page.Records
	m.total = page.Total
	m.clampSelection()
}

// Selected returns the currently selected record, if any.
func (m Model) Selected() (invenio.RecordSummary, bool) {
	if m.selected < 0 || m.selected >= len(m.rows) {
		return invenio.RecordSummary{}, false
	}
	return m.rows[m.selected], true
}

// MoveUp moves the selection up one row.
func (m *Model) MoveUp() {
	m.selected--
	m.clampSelection()
}

// MoveDown moves the selection down one row.
func (m *Model) MoveDown() {
	m.selected++
	m.clampSelection()
}

func (m *Model) clampSelection() {
	m.selected = mathutil.Clamp(m.selected, 0, max(len(m.rows)-1, 0))
}

// Init returns an initial command.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m Model) Update(_ tea.Msg) (Model, tea.Cmd) {
	return m, nil
}

// View renders the records table.
func (m Model) View() string {
	if m.width < 1 || m.height < 1 {
		return ""
	}

	lines := make([]string, 0, m.height)
	if m.title != "" {
		title := m.title
		if m.total > 0 {
			title = fmt.Sprintf("%s (%s)", m.title, format.Number(int64(m.total)))
		}
		lines = append(lines, ansi.Truncate(m.styles.Title.Render(title), m.width, ""))
	}

	titleWidth := max(m.width-2*countColWidth-2, 4)
	header := pad(m.styles.Header.Render("Title"), titleWidth) +
		" " + padLeft(m.styles.Header.Render("Views"), countColWidth) +
		" " + padLeft(m.styles.Header.Render("DLs"), countColWidth)
	lines = append(lines, header)

	if len(m.rows) == 0 {
		lines = append(lines, m.styles.Muted.Render("no records"))
	}

	for i, row := range m.rows {
		if len(lines) >= m.height {
			break
		}
		style := m.styles.Row
		if i == m.selected {
			style = m.styles.Selected
		}
		title := ansi.Truncate(row.Title, titleWidth, "…")
		line := pad(style.Render(title), titleWidth) +
			" " + padLeft(format.ShortNumber(int64(row.Views)), countColWidth) +
			" " + padLeft(format.ShortNumber(int64(row.Downloads)), countColWidth)
		lines = append(lines, line)
	}

	for len(lines) < m.height {
		lines = append(lines, "")
	}
	return strings.Join(lines[:m.height], "\n")
}

func pad(s string, width int) string {
	gap := width - lipgloss.Width(s)
	if gap <= 0 {
		return s
	}
	return s + strings.Repeat(" ", gap)
}

func padLeft(s string, width int) string {
	gap := width - lipgloss.Width(s)
	if gap <= 0 {
		return s
	}
	return strings.Repeat(" ", gap) + s
}
