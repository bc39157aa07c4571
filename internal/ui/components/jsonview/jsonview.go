// Package jsonview renders syntax-highlighted, scrollable JSON content.
package jsonview

import (
	"encoding/json"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/charmbracelet/x/ansi"

	"github.com/MESH-Research/invenio-stats-dashboard-sub001/internal/mathutil"
)

// Styles holds styles for JSON tokens.
type Styles struct {
	Text        lipgloss.Style
	Key         lipgloss.Style
	String      lipgloss.Style
	Number      lipgloss.Style
	Bool        lipgloss.Style
	Null        lipgloss.Style
	Punctuation lipgloss.Style
}

// DefaultStyles returns default styles.
func DefaultStyles() Styles {
	return Styles{
		Text:        lipgloss.NewStyle(),
		Key:         lipgloss.NewStyle(),
		String:      lipgloss.NewStyle(),
		Number:      lipgloss.NewStyle(),
		Bool:        lipgloss.NewStyle(),
		Null:        lipgloss.NewStyle(),
		Punctuation: lipgloss.NewStyle(),
	}
}

// Model is the JSON view component state.
type Model struct {
	styles Styles
	width  int
	height int

	lines    []string
	tokens   [][]chroma.Token
	maxWidth int
	yOffset  int
	xOffset  int
}

// Option is used to set options in New.
type Option func(*Model)

// New creates a new JSON view model.
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
func WithSize(width, height int) Option {
	return func(m *Model) {
		m.width = width
		m.height = height
	}
}

// SetStyles sets the styles.
func (m *Model) SetStyles(s Styles) {
	m.styles = s
}

// SetSize sets the dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.clampOffsets()
}

// LineCount returns the number of lines.
func (m Model) LineCount() int {
	return len(m.lines)
}

// SetValue formats and tokenizes a JSON-serializable value.
func (m *Model) SetValue(value any) {
	m.lines = nil
	m.tokens = nil
	m.maxWidth = 0
	m.yOffset = 0
	m.xOffset = 0

	if value == nil {
		return
	}

	b, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		m.lines = []string{"{}"}
		return
	}

	jsonText := string(b)
	m.lines = strings.Split(jsonText, "\n")
	m.tokens = tokenizeJSONLines(jsonText)
	if len(m.tokens) != len(m.lines) {
		m.tokens = nil
	}

	for _, line := range m.lines {
		if len(line) > m.maxWidth {
			m.maxWidth = len(line)
		}
	}
}

// ScrollY scrolls vertically by delta lines.
func (m *Model) ScrollY(delta int) {
	m.yOffset += delta
	m.clampOffsets()
}

// ScrollX scrolls horizontally by delta columns.
func (m *Model) ScrollX(delta int) {
	m.xOffset += delta
	m.clampOffsets()
}

// ScrollTop resets the viewport to the beginning.
func (m *Model) ScrollTop() {
	m.yOffset = 0
	m.xOffset = 0
}

// ScrollBottom jumps the viewport to the last page.
func (m *Model) ScrollBottom() {
	m.yOffset = len(m.lines)
	m.clampOffsets()
}

func (m *Model) clampOffsets() {
	m.yOffset = mathutil.Clamp(m.yOffset, 0, max(len(m.lines)-m.height, 0))
	m.xOffset = mathutil.Clamp(m.xOffset, 0, max(m.maxWidth-m.width, 0))
}

// Init returns an initial command.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m Model) Update(_ tea.Msg) (Model, tea.Cmd) {
	return m, nil
}

// View renders the visible region of the JSON document.
func (m Model) View() string {
	if m.width < 1 || m.height < 1 {
		return ""
	}

	out := make([]string, 0, m.height)
	for row := range m.height {
		out = append(out, m.renderLine(m.yOffset+row))
	}
	return strings.Join(out, "\n")
}

func (m Model) renderLine(index int) string {
	if index < 0 || index >= len(m.lines) {
		return strings.Repeat(" ", m.width)
	}
	if len(m.tokens) == len(m.lines) {
		return m.renderTokens(m.tokens[index])
	}

	cut := ansi.Cut(m.lines[index], m.xOffset, m.xOffset+m.width)
	if cutWidth := lipgloss.Width(cut); cutWidth < m.width {
		cut += strings.Repeat(" ", m.width-cutWidth)
	}
	return m.styles.Text.Render(cut)
}

func (m Model) renderTokens(tokens []chroma.Token) string {
	end := m.xOffset + m.width
	var builder strings.Builder
	col := 0

	for _, token := range tokens {
		if token.Type == chroma.EOFType {
			break
		}

		tokenWidth := lipgloss.Width(token.Value)
		if tokenWidth == 0 {
			continue
		}

		tokenStart := col
		tokenEnd := col + tokenWidth

		if tokenEnd > m.xOffset && tokenStart < end {
			start := mathutil.Clamp(m.xOffset-tokenStart, 0, tokenWidth)
			stop := mathutil.Clamp(end-tokenStart, 0, tokenWidth)
			segment := ansi.Cut(token.Value, start, stop)
			if segment != "" {
				builder.WriteString(m.styleForToken(token).Render(segment))
			}
		}

		col = tokenEnd
		if col >= end {
			break
		}
	}

	rendered := builder.String()
	if renderedWidth := lipgloss.Width(rendered); renderedWidth < m.width {
		rendered += strings.Repeat(" ", m.width-renderedWidth)
	}
	return rendered
}

func (m Model) styleForToken(token chroma.Token) lipgloss.Style {
	switch {
	case token.Type == chroma.NameTag:
		return m.styles.Key
	case token.Type.InSubCategory(chroma.LiteralString):
		return m.styles.String
	case token.Type.InSubCategory(chroma.LiteralNumber):
		return m.styles.Number
	case token.Type.InCategory(chroma.Keyword):
		if token.Value == "null" {
			return m.styles.Null
		}
		return m.styles.Bool
	case token.Type == chroma.Punctuation:
		return m.styles.Punctuation
	default:
		return m.styles.Text
	}
}

func tokenizeJSONLines(jsonText string) [][]chroma.Token {
	if jsonLexer == nil {
		return nil
	}

	iterator, err := jsonLexer.Tokenise(nil, jsonText)
	if err != nil {
		return nil
	}

	lines := [][]chroma.Token{{}}
	for _, token := range iterator.Tokens() {
		if token.Type == chroma.EOFType {
			break
		}
		if token.Value == "" {
			continue
		}

		parts := strings.Split(token.Value, "\n")
		for i, part := range parts {
			if i > 0 {
				lines = append(lines, []chroma.Token{})
			}
			if part == "" {
				continue
			}
			lines[len(lines)-1] = append(lines[len(lines)-1], chroma.Token{Type: token.Type, Value: part})
		}
	}

	return lines
}

var jsonLexer = func() chroma.Lexer {
	lexer := lexers.Get("json")
	if lexer == nil {
		return nil
	}
	return chroma.Coalesce(lexer)
}()
