// Package hos builds the 24-hour duty grid a DOT daily log sheet is drawn
// from. The backend owns the log entries; this package only buckets them
// into hours and reports where the data does not cover the day cleanly.
package hos

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"hauldeck/internal/trip"
)

// HoursPerDay is the number of buckets on a log sheet.
const HoursPerDay = 24

// Grid maps each hour of the day to the duty status shaded in that column.
// An empty status means no entry covered that hour.
type Grid struct {
	// Hours[h] is the status for the bucket [h, h+1). Index of the matched
	// entry is kept alongside for remark lookups; -1 when uncovered.
	Hours [HoursPerDay]trip.DutyStatus
	Entry [HoursPerDay]int
	// Warnings describe uncovered hours and overlapping entries. The grid
	// policy is first-match-wins in entry order; overlaps are reported, not
	// reconciled.
	Warnings []string
}

// Covered reports whether any entry maps to the given hour bucket.
func (g Grid) Covered(hour int) bool {
	return hour >= 0 && hour < HoursPerDay && g.Entry[hour] >= 0
}

// StartHour extracts the integer hour from a wall-clock "HH:MM[:SS]" string.
// Malformed input yields an error; callers surface it as a grid warning.
func StartHour(clock string) (int, error) {
	h, _, err := splitClock(clock)
	return h, err
}

func splitClock(clock string) (hour, minute int, err error) {
	parts := strings.Split(clock, ":")
	if len(parts) < 2 {
		return 0, 0, fmt.Errorf("hos: malformed time %q", clock)
	}
	hour, err = strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 24 {
		return 0, 0, fmt.Errorf("hos: malformed hour in %q", clock)
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("hos: malformed minute in %q", clock)
	}
	return hour, minute, nil
}

// FormatClock re-renders a wall-clock string as zero-padded "HH:MM".
// Unparseable input comes back unchanged.
func FormatClock(clock string) string {
	h, m, err := splitClock(clock)
	if err != nil {
		return clock
	}
	return fmt.Sprintf("%02d:%02d", h, m)
}

// Build buckets the entries of one daily log into the 24 hour columns.
// Bucket h maps to the first entry (in entry order) whose
// [startHour, endHour) integer-hour range contains h. Uncovered hours and
// overlapping entries become warnings rather than being silently masked.
func Build(entries []trip.LogEntry) Grid {
	var g Grid
	for i := range g.Entry {
		g.Entry[i] = -1
	}

	type span struct{ start, end int }
	spans := make([]span, len(entries))
	for i, e := range entries {
		start, err := StartHour(e.StartTime)
		if err != nil {
			g.Warnings = append(g.Warnings, err.Error())
			spans[i] = span{-1, -1}
			continue
		}
		end, err := StartHour(e.EndTime)
		if err != nil {
			g.Warnings = append(g.Warnings, err.Error())
			spans[i] = span{-1, -1}
			continue
		}
		spans[i] = span{start, end}
	}

	for h := 0; h < HoursPerDay; h++ {
		for i, sp := range spans {
			if sp.start < 0 {
				continue
			}
			if h >= sp.start && h < sp.end {
				if g.Entry[h] == -1 {
					g.Entry[h] = i
					g.Hours[h] = entries[i].Status
				} else if g.Entry[h] != i {
					g.Warnings = append(g.Warnings, fmt.Sprintf(
						"hour %02d:00 covered by both entry %d (%s) and entry %d (%s)",
						h, g.Entry[h]+1, entries[g.Entry[h]].Status.Label(), i+1, entries[i].Status.Label()))
				}
			}
		}
	}

	var uncovered []string
	for h := 0; h < HoursPerDay; h++ {
		if g.Entry[h] == -1 {
			uncovered = append(uncovered, fmt.Sprintf("%02d:00", h))
		}
	}
	if len(uncovered) > 0 {
		g.Warnings = append(g.Warnings, "no duty status recorded for "+strings.Join(uncovered, ", "))
	}

	return g
}

// FormatDuration renders fractional hours as an "Xh Ym" breakdown.
func FormatDuration(hours float64) string {
	whole := int(math.Floor(hours))
	minutes := int(math.Round((hours - float64(whole)) * 60))
	if minutes == 60 {
		whole++
		minutes = 0
	}
	switch {
	case whole == 0:
		return fmt.Sprintf("%dm", minutes)
	case minutes == 0:
		return fmt.Sprintf("%dh", whole)
	default:
		return fmt.Sprintf("%dh %dm", whole, minutes)
	}
}
