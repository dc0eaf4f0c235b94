package ui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"hauldeck/internal/geocode"
	"hauldeck/internal/trip"
)

func testTrip() *trip.Trip {
	return &trip.Trip{
		ID:                "t-100",
		CurrentLocation:   "Denver, CO",
		CurrentLat:        39.739236,
		CurrentLng:        -104.9903,
		PickupLocation:    "Chicago, IL",
		PickupLat:         41.878114,
		PickupLng:         -87.629798,
		DropoffLocation:   "Houston, TX",
		DropoffLat:        29.760427,
		DropoffLng:        -95.369803,
		CurrentCycleHours: 12.5,
		DriverName:        "R. Alvarez",
		CarrierName:       "Bluegrass Freight",
		TruckNumber:       "TX-2041",
		CreatedAt:         "2026-08-20",
		Segments: []trip.RouteSegment{
			{ID: 1, StartLocation: "Denver, CO", EndLocation: "Chicago, IL",
				DistanceMiles: 1003.4, DurationHours: 18.25, Type: trip.SegmentDriving, Order: 1},
			{ID: 2, StartLocation: "Chicago, IL", EndLocation: "Chicago, IL",
				DurationHours: 1, Type: trip.SegmentPickup, Order: 2},
			{ID: 3, StartLocation: "I-80 Exit 284", EndLocation: "I-80 Exit 284",
				DurationHours: 0.5, Type: trip.SegmentFuel, Order: 3},
		},
		DailyLogs: []trip.DailyLog{
			{
				ID: 7, Date: "2026-08-20", TotalMiles: 550,
				TotalHoursOffDuty: 13, TotalHoursDriving: 11,
				Entries: []trip.LogEntry{
					{StartTime: "00:00", EndTime: "08:00", Status: trip.StatusOffDuty, Location: "Denver, CO"},
					{StartTime: "08:00", EndTime: "19:00", Status: trip.StatusDriving, Location: "I-76 E", Remarks: "En route"},
					{StartTime: "19:00", EndTime: "24:00", Status: trip.StatusOffDuty, Location: "Lincoln, NE"},
				},
			},
		},
	}
}

func TestRenderSegments(t *testing.T) {
	view := RenderSegments(testTrip().Segments, DefaultStyles())
	for _, want := range []string{"Driving", "Pickup", "Fuel", "Denver, CO -> Chicago, IL", "18h 15m", "1003 mi"} {
		if !strings.Contains(view, want) {
			t.Fatalf("segments view missing %q:\n%s", want, view)
		}
	}
	if empty := RenderSegments(nil, DefaultStyles()); !strings.Contains(empty, "No route segments") {
		t.Fatalf("unexpected empty view %q", empty)
	}
}

func TestRenderLogSheet(t *testing.T) {
	tr := testTrip()
	info := LogSheetInfo{DriverName: tr.DriverName, CarrierName: tr.CarrierName, TruckNumber: tr.TruckNumber}
	view := RenderLogSheet(tr.DailyLogs[0], info, DefaultStyles())

	for _, want := range []string{
		"DRIVER'S DAILY LOG", "2026-08-20", "R. Alvarez", "Bluegrass Freight", "TX-2041",
		"REMARKS", "08:00", "Driving", "En route", "Lincoln, NE",
	} {
		if !strings.Contains(view, want) {
			t.Fatalf("log sheet missing %q:\n%s", want, view)
		}
	}
	// A fully covered day renders without warnings.
	if strings.Contains(view, "no duty status recorded") {
		t.Fatalf("unexpected coverage warning:\n%s", view)
	}
}

func TestRenderLogSheetSurfacesGaps(t *testing.T) {
	day := trip.DailyLog{
		Date: "2026-08-21",
		Entries: []trip.LogEntry{
			{StartTime: "08:00", EndTime: "12:00", Status: trip.StatusDriving, Location: "I-80"},
		},
	}
	view := RenderLogSheet(day, LogSheetInfo{}, DefaultStyles())
	if !strings.Contains(view, "no duty status recorded") {
		t.Fatalf("expected coverage warning:\n%s", view)
	}
}

func TestRenderRouteMap(t *testing.T) {
	view := RenderRouteMap(testTrip(), DefaultStyles())
	for _, want := range []string{"Route Map", "Denver, CO", "Chicago, IL", "Houston, TX", "1003 mi", "Fuel Stops", "Planned Stops"} {
		if !strings.Contains(view, want) {
			t.Fatalf("map view missing %q:\n%s", want, view)
		}
	}
	// Distinct coordinates produce a drawn path between the markers.
	if !strings.Contains(view, "·") {
		t.Fatalf("expected a connecting path on the canvas:\n%s", view)
	}
}

func TestRenderRouteMapDegenerateCoords(t *testing.T) {
	tr := testTrip()
	tr.PickupLat, tr.PickupLng = tr.CurrentLat, tr.CurrentLng
	tr.DropoffLat, tr.DropoffLng = tr.CurrentLat, tr.CurrentLng
	// Identical points must not panic or divide by zero.
	if view := RenderRouteMap(tr, DefaultStyles()); !strings.Contains(view, "Route Map") {
		t.Fatal("expected map header")
	}
}

func TestSimpleTable(t *testing.T) {
	table := NewSimpleTable("Trips", "Route", "Miles").AlignRight(1)
	table.AddRow("Denver -> Chicago", "1003")
	view := table.View(DefaultStyles())
	if !strings.Contains(view, "Trips") || !strings.Contains(view, "1003") {
		t.Fatalf("unexpected table view:\n%s", view)
	}

	empty := NewSimpleTable("Empty", "A")
	if got := empty.View(DefaultStyles()); got != "" {
		t.Fatalf("empty table should render nothing, got %q", got)
	}
}

func TestListPageModelStates(t *testing.T) {
	m := NewListPageModel(DefaultStyles())
	m.SetSize(100, 30)

	if !strings.Contains(m.View(), "Loading trips") {
		t.Fatal("expected loading state")
	}

	m.SetError("Unable to connect to server.")
	view := m.View()
	if !strings.Contains(view, "Unable to connect") || !strings.Contains(view, "r to retry") {
		t.Fatalf("expected error state with retry hint:\n%s", view)
	}

	m.SetTrips(nil, nil)
	if !strings.Contains(m.View(), "No trips yet") {
		t.Fatal("expected empty state")
	}

	m.SetTrips([]trip.Trip{*testTrip()}, map[string]bool{"t-100": true})
	view = m.View()
	if !strings.Contains(view, "Chicago, IL") || !strings.Contains(view, "Houston, TX") {
		t.Fatalf("expected trip card:\n%s", view)
	}
	if !strings.Contains(view, "★") {
		t.Fatalf("expected recently-viewed marker:\n%s", view)
	}
	if !strings.Contains(view, "12.5/70") {
		t.Fatalf("expected cycle hours on card:\n%s", view)
	}

	got, ok := m.Selected()
	if !ok || got.ID != "t-100" {
		t.Fatalf("Selected = %+v, %v", got, ok)
	}
}

func TestTripPageModelTabs(t *testing.T) {
	m := NewTripPageModel(DefaultStyles())
	m.SetSize(100, 40)
	m.SetTrip(testTrip())

	view := m.View()
	if !strings.Contains(view, "Overview") || !strings.Contains(view, "R. Alvarez") {
		t.Fatalf("expected overview tab:\n%s", view)
	}
	if !strings.Contains(view, "12.5 / 70") {
		t.Fatalf("expected cycle hours in overview:\n%s", view)
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("3")})
	if !strings.Contains(m.View(), "Route Segments") {
		t.Fatal("expected segments tab after pressing 3")
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("4")})
	if !strings.Contains(m.View(), "DRIVER'S DAILY LOG") {
		t.Fatal("expected daily logs tab after pressing 4")
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if !strings.Contains(m.View(), "R. Alvarez") {
		t.Fatal("tab should wrap back to overview")
	}
}

func TestTripPageModelErrorState(t *testing.T) {
	m := NewTripPageModel(DefaultStyles())
	m.SetError("Resource not found")
	if !strings.Contains(m.View(), "Resource not found") {
		t.Fatal("expected error message")
	}
}

func typeString(t *testing.T, m FormPageModel, s string) (FormPageModel, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, r := range s {
		m, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m, cmd
}

// drainMsgs executes a command tree and flattens the messages it produces.
func drainMsgs(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, drainMsgs(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func findSearchTick(t *testing.T, cmd tea.Cmd) searchTickMsg {
	t.Helper()
	for _, msg := range drainMsgs(cmd) {
		if tick, ok := msg.(searchTickMsg); ok {
			return tick
		}
	}
	t.Fatal("no searchTickMsg produced")
	return searchTickMsg{}
}

func TestFormValidationRequiredFields(t *testing.T) {
	m := NewFormPageModel(DefaultStyles(), nil)

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	if cmd != nil {
		t.Fatal("empty form must not submit")
	}
	if !strings.Contains(m.View(), "This field is required") {
		t.Fatal("expected required-field errors")
	}
}

// formWithCycleHours fills the three location fields and types value into
// the cycle-hours field.
func formWithCycleHours(t *testing.T, value string) FormPageModel {
	t.Helper()
	m := NewFormPageModel(DefaultStyles(), nil)
	for _, loc := range []string{"Denver", "Chicago", "Houston"} {
		m, _ = typeString(t, m, loc)
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	}
	m, _ = typeString(t, m, value)
	return m
}

func TestFormValidationCycleHoursRange(t *testing.T) {
	m := formWithCycleHours(t, "99")
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	if !strings.Contains(m.View(), "Must be between 0 and 70") {
		t.Fatalf("expected range error:\n%s", m.View())
	}
}

func TestFormValidationCycleHoursNumeric(t *testing.T) {
	m := formWithCycleHours(t, "abc")
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	if !strings.Contains(m.View(), "Must be a number") {
		t.Fatalf("expected numeric error:\n%s", m.View())
	}
}

func TestFormSubmitBuildsDraft(t *testing.T) {
	m := NewFormPageModel(DefaultStyles(), nil)

	fields := []string{"Denver, CO", "Chicago, IL", "Houston, TX", "12.5", "R. Alvarez", "Bluegrass Freight", "TX-2041"}
	for i, val := range fields {
		m, _ = typeString(t, m, val)
		if i < len(fields)-1 {
			m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
		}
	}

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	if cmd == nil {
		t.Fatal("complete form should submit")
	}
	msg, ok := cmd().(SubmitMsg)
	if !ok {
		t.Fatalf("expected SubmitMsg, got %T", cmd())
	}
	d := msg.Draft
	if d.CurrentLocation != "Denver, CO" || d.PickupLocation != "Chicago, IL" ||
		d.DropoffLocation != "Houston, TX" {
		t.Fatalf("locations wrong: %+v", d)
	}
	if d.CurrentCycleHours != 12.5 || d.DriverName != "R. Alvarez" ||
		d.CarrierName != "Bluegrass Freight" || d.TruckNumber != "TX-2041" {
		t.Fatalf("details wrong: %+v", d)
	}
}

func TestFormAutocompleteFlow(t *testing.T) {
	var searchedQuery string
	search := func(field, seq int, query string) tea.Cmd {
		searchedQuery = query
		return func() tea.Msg {
			return SuggestionsMsg{
				Field: field,
				Seq:   seq,
				Candidates: []geocode.Candidate{
					{DisplayName: "Denver, Colorado, USA", Lat: "39.7392364", Lon: "-104.9848623"},
					{DisplayName: "Denver City, Texas, USA", Lat: "32.9645", Lon: "-102.8288"},
				},
			}
		}
	}
	m := NewFormPageModel(DefaultStyles(), search)

	// Three characters arm the debounce.
	m, cmd := typeString(t, m, "den")
	tick := findSearchTick(t, cmd)

	// The tick carries the current sequence and triggers the search.
	m, cmd = m.Update(tick)
	if cmd == nil {
		t.Fatal("current tick should run the search")
	}
	if searchedQuery != "den" {
		t.Fatalf("searched %q", searchedQuery)
	}

	m, _ = m.Update(cmd().(SuggestionsMsg))
	if !m.SuggestionsOpen() {
		t.Fatal("suggestions should be open")
	}
	if !strings.Contains(m.View(), "Denver, Colorado, USA") {
		t.Fatal("expected suggestions in view")
	}

	// Pick the second candidate.
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.SuggestionsOpen() {
		t.Fatal("picking should close the dropdown")
	}

	d := m.buildDraft()
	if d.CurrentLocation != "Denver City, Texas, USA" {
		t.Fatalf("picked name not applied: %q", d.CurrentLocation)
	}
	if d.CurrentLat != 32.9645 || d.CurrentLng != -102.8288 {
		t.Fatalf("picked coords not applied: %v, %v", d.CurrentLat, d.CurrentLng)
	}
}

func TestFormStaleTickIsIgnored(t *testing.T) {
	searched := 0
	search := func(field, seq int, query string) tea.Cmd {
		searched++
		return nil
	}
	m := NewFormPageModel(DefaultStyles(), search)

	m, cmd := typeString(t, m, "den")
	stale := findSearchTick(t, cmd)

	// Another keystroke bumps the sequence before the tick lands.
	m, _ = typeString(t, m, "v")

	m, _ = m.Update(stale)
	if searched != 0 {
		t.Fatal("stale tick must not trigger a search")
	}
}

func TestFormShortQueryDoesNotSearch(t *testing.T) {
	m := NewFormPageModel(DefaultStyles(), nil)
	m, cmd := typeString(t, m, "de")
	for _, msg := range drainMsgs(cmd) {
		if _, ok := msg.(searchTickMsg); ok {
			t.Fatal("two characters must not arm the debounce")
		}
	}
}

func TestFormReset(t *testing.T) {
	m := NewFormPageModel(DefaultStyles(), nil)
	m, _ = typeString(t, m, "Denver")
	m.Reset()
	if got := m.buildDraft().CurrentLocation; got != "" {
		t.Fatalf("reset left %q behind", got)
	}
}

func TestBannerLifecycle(t *testing.T) {
	b := NewBanner(5*time.Millisecond, DefaultStyles())

	cmd := b.Success("Trip planned: 5 segments, 1003 mi, 19h 45m")
	if !strings.Contains(b.View(), "Trip planned") {
		t.Fatal("expected success banner")
	}

	// The tick from the armed timer dismisses it.
	b.Update(cmd())
	if b.View() != "" {
		t.Fatal("success banner should auto-dismiss")
	}

	b.Error("Validation errors:\ndriver_name: This field is required.")
	view := b.View()
	if !strings.Contains(view, "driver_name") {
		t.Fatal("expected error banner")
	}

	// Errors outlive stale success timers and only Clear removes them.
	b.Update(bannerExpiredMsg{gen: 1})
	if b.View() == "" {
		t.Fatal("stale timer must not dismiss an error banner")
	}
	b.Clear()
	if b.View() != "" {
		t.Fatal("Clear should remove the banner")
	}
}

func TestThemeFor(t *testing.T) {
	if !ThemeFor("dark").IsDark {
		t.Fatal("dark theme expected")
	}
	if ThemeFor("light").IsDark {
		t.Fatal("light theme expected")
	}
}

func TestHelpToggle(t *testing.T) {
	h := NewHelpModel(DefaultStyles())
	h.SetSize(100, 30)
	if h.Visible() {
		t.Fatal("help starts hidden")
	}
	h.Toggle()
	if !h.Visible() {
		t.Fatal("help should show after toggle")
	}
	if !strings.Contains(h.View(), "hauldeck") {
		t.Fatal("expected help content")
	}
	h.Toggle()
	if h.Visible() {
		t.Fatal("help should hide after second toggle")
	}
}

func TestDutyAndSegmentColors(t *testing.T) {
	if DutyColor(trip.StatusDriving) != DutyDriving {
		t.Fatal("driving color mismatch")
	}
	if DutyColor(trip.DutyStatus("bogus")) != DutyOffDuty {
		t.Fatal("unknown status should fall back to off-duty grey")
	}
	if SegmentColor(trip.SegmentFuel) != SegFuel {
		t.Fatal("fuel color mismatch")
	}
}
