package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"hauldeck/internal/hos"
	"hauldeck/internal/trip"
)

// RenderSegments renders the route legs in backend order, one card per
// segment with its type icon, route, duration and distance.
func RenderSegments(segments []trip.RouteSegment, styles Styles) string {
	if len(segments) == 0 {
		return styles.Muted.Render("No route segments.")
	}

	var sb strings.Builder
	sb.WriteString(styles.Title.Render("Route Segments"))
	sb.WriteString("\n")

	for _, seg := range segments {
		accent := lipgloss.NewStyle().Foreground(SegmentColor(seg.Type)).Bold(true)

		route := seg.StartLocation
		if seg.EndLocation != seg.StartLocation {
			route += " -> " + seg.EndLocation
		}

		right := hos.FormatDuration(seg.DurationHours)
		if seg.DistanceMiles > 0 {
			right += fmt.Sprintf("  %.0f mi", seg.DistanceMiles)
		}

		line := fmt.Sprintf("%s %s  %s",
			seg.Type.Icon(),
			accent.Render(titleCase(string(seg.Type))),
			styles.Muted.Render(route))
		sb.WriteString(styles.Card.BorderForeground(SegmentColor(seg.Type)).Render(
			line + "\n" + styles.Bold.Render(right)))
		sb.WriteString("\n")
	}

	return sb.String()
}

// titleCase capitalizes a segment type for display, mapping underscores to
// spaces.
func titleCase(s string) string {
	s = strings.ReplaceAll(s, "_", " ")
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
