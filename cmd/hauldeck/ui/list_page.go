package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"hauldeck/internal/hos"
	"hauldeck/internal/trip"
)

// tripItem adapts one trip to the list component. recent marks trips in
// the local recently-viewed cache.
type tripItem struct {
	trip   trip.Trip
	recent bool
}

func (i tripItem) Title() string {
	title := fmt.Sprintf("%s → %s", i.trip.PickupLocation, i.trip.DropoffLocation)
	if i.recent {
		title = "★ " + title
	}
	return title
}

func (i tripItem) Description() string {
	days := "day"
	if len(i.trip.DailyLogs) != 1 {
		days = "days"
	}
	return fmt.Sprintf("%s · %s · from %s · %.0f mi · %s · %.1f/70 hrs · %d %s",
		i.trip.DriverName,
		i.trip.TruckNumber,
		i.trip.CurrentLocation,
		i.trip.TotalDistance(),
		hos.FormatDuration(i.trip.TotalDuration()),
		i.trip.CurrentCycleHours,
		len(i.trip.DailyLogs),
		days)
}

func (i tripItem) FilterValue() string {
	return i.trip.CurrentLocation + " " + i.trip.PickupLocation + " " +
		i.trip.DropoffLocation + " " + i.trip.DriverName
}

// ListPageModel shows the saved trips with their route aggregates.
type ListPageModel struct {
	list    list.Model
	spinner spinner.Model
	styles  Styles

	loading bool
	errMsg  string
	width   int
	height  int
}

// NewListPageModel creates the trip list page in its loading state.
func NewListPageModel(styles Styles) ListPageModel {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.
		Foreground(styles.Theme.Accent).
		BorderForeground(styles.Theme.Accent)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.
		Foreground(styles.Theme.Muted).
		BorderForeground(styles.Theme.Accent)

	l := list.New(nil, delegate, 80, 20)
	l.Title = "Trips"
	l.Styles.Title = styles.Title
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Spinner

	return ListPageModel{
		list:    l,
		spinner: sp,
		styles:  styles,
		loading: true,
		width:   80,
		height:  20,
	}
}

// Init starts the loading spinner.
func (m ListPageModel) Init() tea.Cmd {
	return m.spinner.Tick
}

// SetSize updates the page dimensions.
func (m *ListPageModel) SetSize(w, h int) {
	m.width = w
	m.height = h
	m.list.SetSize(w, h-4)
}

// SetLoading flips the page back into its loading state.
func (m *ListPageModel) SetLoading() tea.Cmd {
	m.loading = true
	m.errMsg = ""
	return m.spinner.Tick
}

// SetTrips replaces the listing and clears loading/error state. recentIDs
// marks which trips get the recently-viewed star.
func (m *ListPageModel) SetTrips(trips []trip.Trip, recentIDs map[string]bool) {
	items := make([]list.Item, len(trips))
	for i, t := range trips {
		items[i] = tripItem{trip: t, recent: recentIDs[t.ID]}
	}
	m.list.SetItems(items)
	m.loading = false
	m.errMsg = ""
}

// SetError shows a load failure with the retry hint.
func (m *ListPageModel) SetError(msg string) {
	m.loading = false
	m.errMsg = msg
}

// Selected returns the highlighted trip, if any.
func (m ListPageModel) Selected() (trip.Trip, bool) {
	item, ok := m.list.SelectedItem().(tripItem)
	if !ok {
		return trip.Trip{}, false
	}
	return item.trip, true
}

// Update handles spinner ticks and list navigation.
func (m ListPageModel) Update(msg tea.Msg) (ListPageModel, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	if m.loading {
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)
	}

	m.list, cmd = m.list.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// View renders the page.
func (m ListPageModel) View() string {
	if m.loading {
		return m.styles.Content.Render(m.spinner.View() + " Loading trips...")
	}
	if m.errMsg != "" {
		return m.styles.Content.Render(
			m.styles.Error.Render(m.errMsg) + "\n\n" +
				m.styles.Muted.Render("Press r to retry, n to plan a new trip."))
	}
	if len(m.list.Items()) == 0 {
		return m.styles.Content.Render(
			m.styles.Muted.Render("No trips yet.") + "\n\n" +
				m.styles.Body.Render("Press n to plan your first trip."))
	}
	return m.styles.Content.Render(m.list.View())
}
