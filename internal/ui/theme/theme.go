// Package theme defines the adaptive color scheme and derived styles.
package theme

import (
	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/compat"
)

// Theme defines all colors used throughout the UI.
type Theme struct {
	// Base colors
	Primary compat.CompleteAdaptiveColor

	// Text colors
	Text      compat.CompleteAdaptiveColor
	TextMuted compat.CompleteAdaptiveColor

	// Background colors
	StatBarBg compat.CompleteAdaptiveColor

	// Border colors
	Border compat.AdaptiveColor

	// Accent colors
	Success compat.AdaptiveColor
	Error   compat.AdaptiveColor

	// Stat bar text
	StatBarText compat.CompleteAdaptiveColor
}

// DefaultTheme is the adaptive color scheme used by default.
// Use Open Color palette when possible to define colors: https://yeun.github.io/open-color/
var DefaultTheme = Theme{
	Primary: compat.CompleteAdaptiveColor{
		Light: compat.CompleteColor{TrueColor: lipgloss.Color("#1971C2"), ANSI256: lipgloss.Color("26"), ANSI: lipgloss.Color("4")},
		Dark:  compat.CompleteColor{TrueColor: lipgloss.Color("#4DABF7"), ANSI256: lipgloss.Color("75"), ANSI: lipgloss.Color("12")},
	},

	// Text
	Text: compat.CompleteAdaptiveColor{
		Light: compat.CompleteColor{TrueColor: lipgloss.Color("#212529"), ANSI256: lipgloss.Color("0"), ANSI: lipgloss.Color("0")},
		Dark:  compat.CompleteColor{TrueColor: lipgloss.Color("#F8F9FA"), ANSI256: lipgloss.Color("15"), ANSI: lipgloss.Color("15")},
	},
	TextMuted: compat.CompleteAdaptiveColor{
		Light: compat.CompleteColor{TrueColor: lipgloss.Color("#868E96"), ANSI256: lipgloss.Color("240"), ANSI: lipgloss.Color("8")},
		Dark:  compat.CompleteColor{TrueColor: lipgloss.Color("#ADB5BD"), ANSI256: lipgloss.Color("250"), ANSI: lipgloss.Color("7")},
	},

	// Backgrounds
	StatBarBg: compat.CompleteAdaptiveColor{
		Light: compat.CompleteColor{TrueColor: lipgloss.Color("#1864AB"), ANSI256: lipgloss.Color("25"), ANSI: lipgloss.Color("4")},
		Dark:  compat.CompleteColor{TrueColor: lipgloss.Color("#339AF0"), ANSI256: lipgloss.Color("33"), ANSI: lipgloss.Color("12")},
	},

	// Borders
	Border: compat.AdaptiveColor{
		Light: lipgloss.Color("#DEE2E6"), // gray-3
		Dark:  lipgloss.Color("#495057"), // gray-7
	},

	// Accents
	Success: compat.AdaptiveColor{
		Light: lipgloss.Color("#2F9E44"), // green-8
		Dark:  lipgloss.Color("#69DB7C"), // green-4
	},
	Error: compat.AdaptiveColor{
		Light: lipgloss.Color("#E03131"), // red-8
		Dark:  lipgloss.Color("#FF6B6B"), // red-5
	},

	// Stat bar
	StatBarText: compat.CompleteAdaptiveColor{
		Light: compat.CompleteColor{TrueColor: lipgloss.Color("#f8f9fa"), ANSI256: lipgloss.Color("255"), ANSI: lipgloss.Color("15")},
		Dark:  compat.CompleteColor{TrueColor: lipgloss.Color("#f8f9fa"), ANSI256: lipgloss.Color("255"), ANSI: lipgloss.Color("15")},
	},
}

// ChartPalette is the series color cycle for breakdown widgets, from Open
// Color. The bucketizer assigns these by member position.
var ChartPalette = []string{
	"#4DABF7", // blue-4
	"#F783AC", // pink-4
	"#69DB7C", // green-4
	"#FFD43B", // yellow-4
	"#B197FC", // violet-4
	"#FFA94D", // orange-4
	"#3BC9DB", // cyan-4
	"#FF8787", // red-4
	"#A9E34B", // lime-4
	"#E599F7", // grape-4
}

// Styles holds all lipgloss styles derived from a theme.
type Styles struct {
	// Stat bar
	StatBar   lipgloss.Style
	StatLabel lipgloss.Style
	StatValue lipgloss.Style

	// Navbar
	NavBar  lipgloss.Style
	NavItem lipgloss.Style
	NavKey  lipgloss.Style
	NavQuit lipgloss.Style

	// Content
	ViewTitle lipgloss.Style
	ViewText  lipgloss.Style
	ViewMuted lipgloss.Style

	// Widget metric boxes
	MetricLabel lipgloss.Style
	MetricValue lipgloss.Style

	// Table
	TableHeader lipgloss.Style

	// Layout helpers
	BoxPadding  lipgloss.Style
	BorderStyle lipgloss.Style

	// Charts
	ChartAxis  lipgloss.Style
	ChartLabel lipgloss.Style

	// Accents
	Success lipgloss.Style
	Failure lipgloss.Style

	// Errors
	ErrorTitle  lipgloss.Style
	ErrorBorder lipgloss.Style
}

// NewStyles creates a Styles instance from the default adaptive theme.
func NewStyles() Styles {
	t := DefaultTheme
	return Styles{
		StatBar: lipgloss.NewStyle().
			Foreground(t.StatBarText).
			Background(t.StatBarBg),

		StatLabel: lipgloss.NewStyle().
			Foreground(t.StatBarText).
			Background(t.StatBarBg),

		StatValue: lipgloss.NewStyle().
			Foreground(t.StatBarText).
			Background(t.StatBarBg).
			Bold(true),

		NavBar: lipgloss.NewStyle().
			Padding(0, 1),

		NavItem: lipgloss.NewStyle().
			Foreground(t.TextMuted).
			PaddingRight(1),

		NavKey: lipgloss.NewStyle().
			Foreground(t.Text).
			Background(t.Border).
			Padding(0, 1),

		NavQuit: lipgloss.NewStyle().
			Foreground(t.TextMuted).
			PaddingRight(1),

		ViewTitle: lipgloss.NewStyle().
			Foreground(t.Primary).
			Bold(true),

		ViewText: lipgloss.NewStyle().
			Foreground(t.Text),

		ViewMuted: lipgloss.NewStyle().
			Foreground(t.TextMuted),

		MetricLabel: lipgloss.NewStyle().
			Foreground(t.TextMuted),

		MetricValue: lipgloss.NewStyle().
			Foreground(t.Text).
			Bold(true),

		TableHeader: lipgloss.NewStyle().
			Foreground(t.Text).
			Bold(true),

		BoxPadding: lipgloss.NewStyle().
			Padding(0, 1),

		BorderStyle: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Border),

		ChartAxis: lipgloss.NewStyle().
			Foreground(t.Border),

		ChartLabel: lipgloss.NewStyle().
			Foreground(t.TextMuted),

		Success: lipgloss.NewStyle().
			Foreground(t.Success),

		Failure: lipgloss.NewStyle().
			Foreground(t.Error),

		ErrorTitle: lipgloss.NewStyle().
			Foreground(t.Error).
			Bold(true),

		ErrorBorder: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Error),
	}
}
