package hos

import (
	"strings"
	"testing"

	"hauldeck/internal/trip"
)

func entry(start, end string, status trip.DutyStatus) trip.LogEntry {
	return trip.LogEntry{StartTime: start, EndTime: end, Status: status}
}

func TestBuildBucketsByStartHour(t *testing.T) {
	g := Build([]trip.LogEntry{
		entry("08:00", "12:00", trip.StatusDriving),
		entry("12:00", "13:00", trip.StatusOffDuty),
	})

	for h := 8; h < 12; h++ {
		if !g.Covered(h) || g.Hours[h] != trip.StatusDriving {
			t.Fatalf("hour %d: want driving, got %q (covered=%v)", h, g.Hours[h], g.Covered(h))
		}
	}
	if !g.Covered(12) || g.Hours[12] != trip.StatusOffDuty {
		t.Fatalf("hour 12: want off_duty, got %q", g.Hours[12])
	}
	if g.Covered(13) {
		t.Fatal("hour 13 should be uncovered, end hour is exclusive")
	}
	if g.Covered(7) {
		t.Fatal("hour 7 should be uncovered")
	}
}

func TestBuildFirstMatchWinsAndReportsOverlap(t *testing.T) {
	g := Build([]trip.LogEntry{
		entry("06:00", "10:00", trip.StatusDriving),
		entry("09:00", "11:00", trip.StatusOnDuty),
	})

	if g.Hours[9] != trip.StatusDriving {
		t.Fatalf("hour 9: first entry should win, got %q", g.Hours[9])
	}
	if g.Hours[10] != trip.StatusOnDuty {
		t.Fatalf("hour 10: want on_duty, got %q", g.Hours[10])
	}

	found := false
	for _, w := range g.Warnings {
		if strings.Contains(w, "09:00 covered by both") {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected overlap warning, got %v", g.Warnings)
	}
}

func TestBuildReportsUncoveredHours(t *testing.T) {
	g := Build([]trip.LogEntry{
		entry("00:00", "22:00", trip.StatusOffDuty),
	})

	var gap string
	for _, w := range g.Warnings {
		if strings.HasPrefix(w, "no duty status recorded for ") {
			gap = w
		}
	}
	if gap == "" {
		t.Fatalf("expected uncovered warning, got %v", g.Warnings)
	}
	if !strings.Contains(gap, "22:00") || !strings.Contains(gap, "23:00") {
		t.Fatalf("uncovered warning should list 22:00 and 23:00: %q", gap)
	}
}

func TestBuildFullDayHasNoWarnings(t *testing.T) {
	g := Build([]trip.LogEntry{
		entry("00:00", "06:00", trip.StatusSleeperBerth),
		entry("06:00", "17:00", trip.StatusDriving),
		entry("17:00", "24:00", trip.StatusOffDuty),
	})
	if len(g.Warnings) != 0 {
		t.Fatalf("clean day should produce no warnings, got %v", g.Warnings)
	}
}

func TestBuildMalformedTime(t *testing.T) {
	g := Build([]trip.LogEntry{
		entry("late", "12:00", trip.StatusDriving),
	})
	if len(g.Warnings) == 0 {
		t.Fatal("malformed start time should produce a warning")
	}
	for h := 0; h < HoursPerDay; h++ {
		if g.Covered(h) {
			t.Fatalf("hour %d covered by a malformed entry", h)
		}
	}
}

func TestStartHour(t *testing.T) {
	if h, err := StartHour("08:30"); err != nil || h != 8 {
		t.Fatalf("got %d, %v", h, err)
	}
	if h, err := StartHour("23:59:59"); err != nil || h != 23 {
		t.Fatalf("got %d, %v", h, err)
	}
	if _, err := StartHour("25:00"); err == nil {
		t.Fatal("expected error for hour 25")
	}
	if _, err := StartHour("noon"); err == nil {
		t.Fatal("expected error for non-numeric time")
	}
}

func TestFormatClock(t *testing.T) {
	if got := FormatClock("8:5"); got != "08:05" {
		t.Fatalf("got %q", got)
	}
	if got := FormatClock("14:30:00"); got != "14:30" {
		t.Fatalf("got %q", got)
	}
	if got := FormatClock("bogus"); got != "bogus" {
		t.Fatalf("unparseable input should pass through, got %q", got)
	}
}

func TestFormatDuration(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0.5, "30m"},
		{1, "1h"},
		{9.75, "9h 45m"},
		{1.999, "2h"},
		{0, "0m"},
	}
	for _, tc := range cases {
		if got := FormatDuration(tc.in); got != tc.want {
			t.Fatalf("FormatDuration(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
