package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"hauldeck/internal/hos"
	"hauldeck/internal/trip"
)

// LogSheetInfo carries the header fields printed on every daily log sheet.
type LogSheetInfo struct {
	DriverName  string
	CarrierName string
	TruckNumber string
}

// RenderLogSheet draws one DOT-style daily log: the sheet header, the
// 24-hour grid with the four duty rows, per-row totals, the remarks list
// and any coverage warnings from the grid builder.
func RenderLogSheet(day trip.DailyLog, info LogSheetInfo, styles Styles) string {
	grid := hos.Build(day.Entries)

	var sb strings.Builder

	sb.WriteString(styles.Title.Render("DRIVER'S DAILY LOG — " + day.Date))
	sb.WriteString("\n")
	sb.WriteString(styles.Muted.Render("U.S. Department of Transportation (one calendar day, 24 hours)"))
	sb.WriteString("\n\n")

	sb.WriteString(fmt.Sprintf("%s %s    %s %s    %s %s    %s %.0f\n\n",
		styles.Bold.Render("Driver:"), info.DriverName,
		styles.Bold.Render("Carrier:"), info.CarrierName,
		styles.Bold.Render("Truck:"), info.TruckNumber,
		styles.Bold.Render("Total Miles:"), day.TotalMiles))

	sb.WriteString(renderHourRuler(styles))
	for _, status := range trip.DutyStatuses {
		sb.WriteString(renderDutyRow(status, grid, day.TotalFor(status), styles))
	}
	sb.WriteString("\n")

	sb.WriteString(styles.Bold.Render("REMARKS"))
	sb.WriteString("\n")
	if len(day.Entries) == 0 {
		sb.WriteString(styles.Muted.Render("  (no entries)"))
		sb.WriteString("\n")
	}
	for _, e := range day.Entries {
		line := fmt.Sprintf("  %s  %s — %s", hos.FormatClock(e.StartTime), e.Status.Label(), e.Location)
		if e.Remarks != "" {
			line += " (" + e.Remarks + ")"
		}
		sb.WriteString(styles.Body.Render(line))
		sb.WriteString("\n")
	}

	for _, w := range grid.Warnings {
		sb.WriteString(styles.Warning.Render("  ⚠ " + w))
		sb.WriteString("\n")
	}

	return sb.String()
}

// renderHourRuler prints the Mid/Noon hour scale above the grid.
func renderHourRuler(styles Styles) string {
	labelWidth := 22
	var sb strings.Builder
	sb.WriteString(strings.Repeat(" ", labelWidth))
	for h := 0; h < hos.HoursPerDay; h++ {
		switch h {
		case 0:
			sb.WriteString(styles.Muted.Render("M "))
		case 12:
			sb.WriteString(styles.Muted.Render("N "))
		default:
			sb.WriteString(styles.Muted.Render(fmt.Sprintf("%-2d", h%12)))
		}
	}
	sb.WriteString(styles.Muted.Render(" TOTAL"))
	sb.WriteString("\n")
	return sb.String()
}

// renderDutyRow shades the hour cells matching one duty status.
func renderDutyRow(status trip.DutyStatus, grid hos.Grid, total float64, styles Styles) string {
	shade := lipgloss.NewStyle().Foreground(DutyColor(status))

	var sb strings.Builder
	sb.WriteString(styles.FieldLabel.Width(22).Render(status.Label()))
	for h := 0; h < hos.HoursPerDay; h++ {
		if grid.Covered(h) && grid.Hours[h] == status {
			sb.WriteString(shade.Render("██"))
		} else {
			sb.WriteString(styles.Divider.Render("··"))
		}
	}
	sb.WriteString(styles.Bold.Render(fmt.Sprintf(" %5.1f", total)))
	sb.WriteString("\n")
	return sb.String()
}
