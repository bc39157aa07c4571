package views

import (
	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/MESH-Research/invenio-stats-dashboard-sub001/internal/stats"
	"github.com/MESH-Research/invenio-stats-dashboard-sub001/internal/ui/components/jsonview"
	"github.com/MESH-Research/invenio-stats-dashboard-sub001/internal/ui/format"
)

// Inspector shows the normalized statistics document as scrollable JSON.
type Inspector struct {
	width  int
	height int
	styles Styles

	dateRange stats.DateRange
	json      jsonview.Model

	keyUp     key.Binding
	keyDown   key.Binding
	keyLeft   key.Binding
	keyRight  key.Binding
	keyTop    key.Binding
	keyBottom key.Binding
	keyPgUp   key.Binding
	keyPgDown key.Binding
}

// NewInspector creates the inspector view.
func NewInspector() *Inspector {
	return &Inspector{
		json: jsonview.New(),
		keyUp: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k", "up"),
		),
		keyDown: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j", "down"),
		),
		keyLeft: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("h", "left"),
		),
		keyRight: key.NewBinding(
			key.WithKeys("l", "right"),
			key.WithHelp("l", "right"),
		),
		keyTop: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "top"),
		),
		keyBottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "bottom"),
		),
		keyPgUp: key.NewBinding(
			key.WithKeys("pgup", "ctrl+u"),
			key.WithHelp("pgup", "page up"),
		),
		keyPgDown: key.NewBinding(
			key.WithKeys("pgdown", "ctrl+d"),
			key.WithHelp("pgdn", "page down"),
		),
	}
}

// Init implements View.
func (v *Inspector) Init() tea.Cmd {
	return nil
}

// Update implements View.
func (v *Inspector) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case ModelMsg:
		v.json.SetValue(msg.Model)
	case RangeMsg:
		v.dateRange = msg.Range
	case tea.KeyMsg:
		page := max(v.height-2, 1)
		switch {
		case key.Matches(msg, v.keyUp):
			v.json.ScrollY(-1)
		case key.Matches(msg, v.keyDown):
			v.json.ScrollY(1)
		case key.Matches(msg, v.keyLeft):
			v.json.ScrollX(-4)
		case key.Matches(msg, v.keyRight):
			v.json.ScrollX(4)
		case key.Matches(msg, v.keyTop):
			v.json.ScrollTop()
		case key.Matches(msg, v.keyBottom):
			v.json.ScrollBottom()
		case key.Matches(msg, v.keyPgUp):
			v.json.ScrollY(-page)
		case key.Matches(msg, v.keyPgDown):
			v.json.ScrollY(page)
		}
	}
	return v, nil
}

// View implements View.
func (v *Inspector) View() string {
	if v.width < 1 || v.height < 1 {
		return ""
	}

	title := v.styles.Title.Render("Inspector") +
		v.styles.Muted.Render("  "+format.RangeLabel(v.dateRange))

	v.json.SetSize(max(v.width-2, 10), max(v.height-lipgloss.Height(title)-1, 3))

	return v.styles.BoxPadding.Render(lipgloss.JoinVertical(
		lipgloss.Left,
		title,
		v.json.View(),
	))
}

// Name implements View.
func (v *Inspector) Name() string {
	return "Inspector"
}

// ShortHelp implements View.
func (v *Inspector) ShortHelp() []key.Binding {
	return []key.Binding{v.keyUp, v.keyDown, v.keyTop, v.keyBottom}
}

// SetSize implements View.
func (v *Inspector) SetSize(width, height int) View {
	v.width = width
	v.height = height
	return v
}

// SetStyles implements View.
func (v *Inspector) SetStyles(styles Styles) View {
	v.styles = styles
	v.json.SetStyles(jsonview.Styles{
		Text:        styles.Text,
		Key:         styles.Title,
		String:      styles.Text,
		Number:      styles.MetricValue,
		Bool:        styles.MetricValue,
		Null:        styles.Muted,
		Punctuation: styles.Muted,
	})
	return v
}
