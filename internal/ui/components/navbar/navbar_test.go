package navbar

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
)

func TestViewNamesRendered(t *testing.T) {
	t.Parallel()

	m := New(
		WithWidth(80),
		WithViews([]ViewInfo{{Name: "Overview"}, {Name: "Content"}, {Name: "Traffic"}}),
	)

	output := ansi.Strip(m.View())
	for _, want := range []string{"1", "Overview", "2", "Content", "3", "Traffic"} {
		if !strings.Contains(output, want) {
			t.Fatalf("expected %q in navbar output, got %q", want, output)
		}
	}
}

func TestHintsRendered(t *testing.T) {
	t.Parallel()

	m := New(
		WithWidth(80),
		WithViews([]ViewInfo{{Name: "Overview"}}),
	)

	output := ansi.Strip(m.View())
	for _, want := range []string{"r", "refresh", "q", "quit"} {
		if !strings.Contains(output, want) {
			t.Fatalf("expected %q in navbar output, got %q", want, output)
		}
	}
}

func TestSetActiveChangesRendering(t *testing.T) {
	t.Parallel()

	m := New(
		WithWidth(80),
		WithViews([]ViewInfo{{Name: "Overview"}, {Name: "Content"}}),
	)

	before := m.View()
	m.SetActive(1)
	after := m.View()

	if before == after {
		t.Fatal("expected active view change to alter rendering")
	}
}
