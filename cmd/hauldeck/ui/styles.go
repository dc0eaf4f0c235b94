// Package ui provides the visual styling and page models for the hauldeck
// interactive dashboard, with light/dark mode support.
package ui

import (
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"hauldeck/internal/trip"
)

var (
	// Light mode colors (default)
	LightBackground = lipgloss.Color("#f4f5f6")
	LightForeground = lipgloss.Color("#14233a")
	LightPrimary    = lipgloss.Color("#1d4e89") // Highway-sign blue
	LightAccent     = lipgloss.Color("#f08a24") // Amber cab light
	LightSecondary  = lipgloss.Color("#e1e4e8")
	LightMuted      = lipgloss.Color("#8a93a0")
	LightBorder     = lipgloss.Color("#d4d9df")
	LightCard       = lipgloss.Color("#ffffff")

	// Dark mode colors
	DarkBackground = lipgloss.Color("#10161f")
	DarkForeground = lipgloss.Color("#e8ebef")
	DarkPrimary    = lipgloss.Color("#6aa8e0")
	DarkAccent     = lipgloss.Color("#f0a54a")
	DarkSecondary  = lipgloss.Color("#1c2634")
	DarkMuted      = lipgloss.Color("#5d6875")
	DarkBorder     = lipgloss.Color("#2a3645")
	DarkCard       = lipgloss.Color("#17202c")

	// Semantic colors (same in both modes)
	Destructive = lipgloss.Color("#e53935")
	Good        = lipgloss.Color("#43a047")
	Caution     = lipgloss.Color("#FFC107")
	Notice      = lipgloss.Color("#2196F3")

	// Duty-status row colors, matching the paper log sheet convention:
	// off duty grey, sleeper blue, driving green, on-duty yellow.
	DutyOffDuty = lipgloss.Color("#9e9e9e")
	DutySleeper = lipgloss.Color("#42a5f5")
	DutyDriving = lipgloss.Color("#66bb6a")
	DutyOnDuty  = lipgloss.Color("#ffca28")

	// Segment-type colors
	SegDriving = lipgloss.Color("#66bb6a")
	SegRest    = lipgloss.Color("#ab47bc")
	SegFuel    = lipgloss.Color("#ffa726")
	SegPickup  = lipgloss.Color("#42a5f5")
	SegDropoff = lipgloss.Color("#ef5350")
	SegBreak   = lipgloss.Color("#ffee58")
)

// Theme holds the current color scheme
type Theme struct {
	Background lipgloss.Color
	Foreground lipgloss.Color
	Primary    lipgloss.Color
	Accent     lipgloss.Color
	Secondary  lipgloss.Color
	Muted      lipgloss.Color
	Border     lipgloss.Color
	Card       lipgloss.Color
	IsDark     bool
}

// LightTheme returns the light mode theme
func LightTheme() Theme {
	return Theme{
		Background: LightBackground,
		Foreground: LightForeground,
		Primary:    LightPrimary,
		Accent:     LightAccent,
		Secondary:  LightSecondary,
		Muted:      LightMuted,
		Border:     LightBorder,
		Card:       LightCard,
		IsDark:     false,
	}
}

// DarkTheme returns the dark mode theme
func DarkTheme() Theme {
	return Theme{
		Background: DarkBackground,
		Foreground: DarkForeground,
		Primary:    DarkPrimary,
		Accent:     DarkAccent,
		Secondary:  DarkSecondary,
		Muted:      DarkMuted,
		Border:     DarkBorder,
		Card:       DarkCard,
		IsDark:     true,
	}
}

// ThemeFor resolves a configured theme name; "" auto-detects.
func ThemeFor(name string) Theme {
	switch name {
	case "dark":
		return DarkTheme()
	case "light":
		return LightTheme()
	default:
		return DetectTheme()
	}
}

// DetectTheme auto-detects based on terminal hints or returns light mode.
func DetectTheme() Theme {
	// COLORFGBG is usually "foreground;background"; low background indexes
	// mean a dark terminal.
	if colorTerm := os.Getenv("COLORFGBG"); colorTerm != "" {
		parts := strings.Split(colorTerm, ";")
		if len(parts) == 2 {
			if bgIdx, err := strconv.Atoi(parts[1]); err == nil {
				if (bgIdx >= 0 && bgIdx <= 6) || bgIdx == 8 {
					return DarkTheme()
				}
			}
		}
	}

	if os.Getenv("HAULDECK_DARK_MODE") == "1" {
		return DarkTheme()
	}

	return LightTheme()
}

// Styles holds all the styled components
type Styles struct {
	Theme Theme

	// Layout
	App     lipgloss.Style
	Header  lipgloss.Style
	Footer  lipgloss.Style
	Content lipgloss.Style
	Card    lipgloss.Style

	// Text
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Body     lipgloss.Style
	Muted    lipgloss.Style
	Bold     lipgloss.Style

	// Form
	FieldLabel    lipgloss.Style
	FieldError    lipgloss.Style
	FieldFocus    lipgloss.Style
	Suggestion    lipgloss.Style
	SuggestionSel lipgloss.Style

	// Status
	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style

	// Components
	Spinner lipgloss.Style
	Divider lipgloss.Style
	Badge   lipgloss.Style
	Tab     lipgloss.Style
	TabSel  lipgloss.Style
}

// NewStyles creates a new Styles instance with the given theme
func NewStyles(theme Theme) Styles {
	return Styles{
		Theme: theme,

		App: lipgloss.NewStyle().
			Background(theme.Background).
			Foreground(theme.Foreground),

		Header: lipgloss.NewStyle().
			Background(theme.Primary).
			Foreground(lipgloss.Color("#ffffff")).
			Padding(0, 2).
			Bold(true),

		Footer: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Padding(0, 2),

		Content: lipgloss.NewStyle().
			Padding(1, 2),

		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, 1),

		Title: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true).
			MarginBottom(1),

		Subtitle: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Italic(true),

		Body: lipgloss.NewStyle().
			Foreground(theme.Foreground),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Bold: lipgloss.NewStyle().
			Foreground(theme.Foreground).
			Bold(true),

		FieldLabel: lipgloss.NewStyle().
			Foreground(theme.Foreground).
			Bold(true),

		FieldError: lipgloss.NewStyle().
			Foreground(Destructive),

		FieldFocus: lipgloss.NewStyle().
			Foreground(theme.Accent).
			Bold(true),

		Suggestion: lipgloss.NewStyle().
			Foreground(theme.Muted).
			PaddingLeft(4),

		SuggestionSel: lipgloss.NewStyle().
			Foreground(theme.Accent).
			Bold(true).
			PaddingLeft(2),

		Success: lipgloss.NewStyle().
			Foreground(Good).
			Bold(true),

		Error: lipgloss.NewStyle().
			Foreground(Destructive).
			Bold(true),

		Warning: lipgloss.NewStyle().
			Foreground(Caution).
			Bold(true),

		Info: lipgloss.NewStyle().
			Foreground(Notice),

		Spinner: lipgloss.NewStyle().
			Foreground(theme.Accent),

		Divider: lipgloss.NewStyle().
			Foreground(theme.Border),

		Badge: lipgloss.NewStyle().
			Background(theme.Accent).
			Foreground(lipgloss.Color("#ffffff")).
			Padding(0, 1).
			Bold(true),

		Tab: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Padding(0, 2),

		TabSel: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true).
			Underline(true).
			Padding(0, 2),
	}
}

// DefaultStyles returns styles with the auto-detected theme
func DefaultStyles() Styles {
	return NewStyles(DetectTheme())
}

// DutyColor returns the shade used for one duty-status row of the log grid.
func DutyColor(s trip.DutyStatus) lipgloss.Color {
	switch s {
	case trip.StatusOffDuty:
		return DutyOffDuty
	case trip.StatusSleeperBerth:
		return DutySleeper
	case trip.StatusDriving:
		return DutyDriving
	case trip.StatusOnDuty:
		return DutyOnDuty
	default:
		return DutyOffDuty
	}
}

// SegmentColor returns the accent color for a route segment type.
func SegmentColor(t trip.SegmentType) lipgloss.Color {
	switch t {
	case trip.SegmentDriving:
		return SegDriving
	case trip.SegmentRest:
		return SegRest
	case trip.SegmentFuel:
		return SegFuel
	case trip.SegmentPickup:
		return SegPickup
	case trip.SegmentDropoff:
		return SegDropoff
	case trip.SegmentBreak:
		return SegBreak
	default:
		return LightMuted
	}
}

// RenderDivider returns a horizontal divider
func (s Styles) RenderDivider(width int) string {
	return s.Divider.Render(strings.Repeat("─", width))
}
