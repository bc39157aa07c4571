// Package charts provides shared helpers for chart rendering.
package charts

import (
	"strings"
	"time"

	"charm.land/lipgloss/v2"
)

// TimeLabelLayout picks a time.Format layout appropriate for the span
// between the first and last plotted points. Multi-year spans label by
// month and year, shorter spans by month and day.
func TimeLabelLayout(minTime, maxTime time.Time) string {
	if minTime.UTC().Year() != maxTime.UTC().Year() {
		return "Jan 2006"
	}
	return "Jan 2"
}

// RenderCentered centers content within a given width and height.
// Handles multi-line content by centering vertically and horizontally.
func RenderCentered(width, height int, value string) string {
	if height < 1 {
		return ""
	}
	lines := make([]string, height)
	for i := range lines {
		lines[i] = strings.Repeat(" ", width)
	}
	if width <= 0 {
		return strings.Join(lines, "\n")
	}

	contentLines := strings.Split(value, "\n")
	startLine := max((height-len(contentLines))/2, 0)

	maxWidthStyle := lipgloss.NewStyle()
	for i, contentLine := range contentLines {
		lineIdx := startLine + i
		if lineIdx >= height {
			break
		}
		trimmed := maxWidthStyle.MaxWidth(width).Render(contentLine)
		pad := max((width-lipgloss.Width(trimmed))/2, 0)
		lines[lineIdx] = strings.Repeat(" ", pad) + trimmed
	}

	return strings.Join(lines, "\n")
}
