package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"hauldeck/internal/hos"
	"hauldeck/internal/trip"
)

// Trip detail tabs.
const (
	tabOverview = iota
	tabMap
	tabSegments
	tabLogs
	tabCount
)

var tabNames = [tabCount]string{"Overview", "Map", "Segments", "Daily Logs"}

// TripPageModel shows one planned trip across its detail tabs.
type TripPageModel struct {
	viewport viewport.Model
	spinner  spinner.Model
	styles   Styles

	trip    *trip.Trip
	tab     int
	loading bool
	errMsg  string
	width   int
	height  int
}

// NewTripPageModel creates the trip detail page in its loading state.
func NewTripPageModel(styles Styles) TripPageModel {
	vp := viewport.New(80, 20)
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Spinner
	return TripPageModel{
		viewport: vp,
		spinner:  sp,
		styles:   styles,
		loading:  true,
		width:    80,
		height:   24,
	}
}

// Init starts the loading spinner.
func (m TripPageModel) Init() tea.Cmd {
	return m.spinner.Tick
}

// SetSize updates the viewport dimensions.
func (m *TripPageModel) SetSize(w, h int) {
	m.width = w
	m.height = h
	m.viewport.Width = w
	m.viewport.Height = h - 6 // header, tab row, footer
	m.refresh()
}

// SetLoading flips the page back into its loading state.
func (m *TripPageModel) SetLoading() tea.Cmd {
	m.loading = true
	m.errMsg = ""
	m.trip = nil
	return m.spinner.Tick
}

// SetTrip installs a loaded trip and resets to the overview tab.
func (m *TripPageModel) SetTrip(t *trip.Trip) {
	m.trip = t
	m.tab = tabOverview
	m.loading = false
	m.errMsg = ""
	m.refresh()
	m.viewport.GotoTop()
}

// SetError shows a load failure.
func (m *TripPageModel) SetError(msg string) {
	m.loading = false
	m.errMsg = msg
}

// Trip returns the currently displayed trip, if loaded.
func (m TripPageModel) Trip() *trip.Trip {
	return m.trip
}

// Update handles tab switching, scrolling and spinner ticks.
func (m TripPageModel) Update(msg tea.Msg) (TripPageModel, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case spinner.TickMsg:
		if m.loading {
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "tab", "right", "l":
			m.tab = (m.tab + 1) % tabCount
			m.refresh()
			m.viewport.GotoTop()
			return m, nil
		case "shift+tab", "left", "h":
			m.tab = (m.tab + tabCount - 1) % tabCount
			m.refresh()
			m.viewport.GotoTop()
			return m, nil
		case "1", "2", "3", "4":
			m.tab = int(msg.String()[0] - '1')
			m.refresh()
			m.viewport.GotoTop()
			return m, nil
		}
	}

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

// refresh re-renders the active tab into the viewport.
func (m *TripPageModel) refresh() {
	if m.trip == nil {
		return
	}
	switch m.tab {
	case tabOverview:
		m.viewport.SetContent(m.renderOverview())
	case tabMap:
		m.viewport.SetContent(RenderRouteMap(m.trip, m.styles))
	case tabSegments:
		m.viewport.SetContent(RenderSegments(m.trip.Segments, m.styles))
	case tabLogs:
		m.viewport.SetContent(m.renderLogs())
	}
}

func (m *TripPageModel) renderOverview() string {
	t := m.trip
	var sb strings.Builder

	sb.WriteString(m.styles.Title.Render(fmt.Sprintf("%s → %s", t.PickupLocation, t.DropoffLocation)))
	sb.WriteString("\n")

	details := NewSimpleTable("", "", "")
	details.AddRow("Driver", t.DriverName)
	details.AddRow("Carrier", t.CarrierName)
	details.AddRow("Truck", t.TruckNumber)
	details.AddRow("Cycle Hours Used", fmt.Sprintf("%.1f / 70", t.CurrentCycleHours))
	details.AddRow("Created", t.CreatedAt)
	sb.WriteString(details.View(m.styles))
	sb.WriteString("\n")

	sb.WriteString(m.styles.Bold.Render("Route"))
	sb.WriteString("\n")
	sb.WriteString(m.styles.Body.Render(fmt.Sprintf("  %s %s", m.styles.Info.Render("C"), t.CurrentLocation)))
	sb.WriteString("\n")
	sb.WriteString(m.styles.Body.Render(fmt.Sprintf("  %s %s", m.styles.Success.Render("P"), t.PickupLocation)))
	sb.WriteString("\n")
	sb.WriteString(m.styles.Body.Render(fmt.Sprintf("  %s %s", m.styles.Error.Render("D"), t.DropoffLocation)))
	sb.WriteString("\n\n")

	stats := NewSimpleTable("", "Distance", "Duration", "Segments", "Log Days").AlignRight(0, 1, 2, 3)
	stats.AddRow(
		fmt.Sprintf("%.0f mi", t.TotalDistance()),
		hos.FormatDuration(t.TotalDuration()),
		fmt.Sprintf("%d", len(t.Segments)),
		fmt.Sprintf("%d", len(t.DailyLogs)))
	sb.WriteString(stats.View(m.styles))

	return sb.String()
}

func (m *TripPageModel) renderLogs() string {
	t := m.trip
	if len(t.DailyLogs) == 0 {
		return m.styles.Muted.Render("No daily logs.")
	}
	info := LogSheetInfo{
		DriverName:  t.DriverName,
		CarrierName: t.CarrierName,
		TruckNumber: t.TruckNumber,
	}
	sheets := make([]string, 0, len(t.DailyLogs))
	for _, day := range t.DailyLogs {
		sheets = append(sheets, RenderLogSheet(day, info, m.styles))
	}
	return strings.Join(sheets, "\n"+m.styles.RenderDivider(min(m.width-4, 80))+"\n\n")
}

// View renders the page with its tab row.
func (m TripPageModel) View() string {
	if m.loading {
		return m.styles.Content.Render(m.spinner.View() + " Loading trip...")
	}
	if m.errMsg != "" {
		return m.styles.Content.Render(
			m.styles.Error.Render(m.errMsg) + "\n\n" +
				m.styles.Muted.Render("Press esc to go back, r to retry."))
	}
	if m.trip == nil {
		return m.styles.Content.Render(m.styles.Muted.Render("No trip selected."))
	}

	tabs := make([]string, tabCount)
	for i, name := range tabNames {
		label := fmt.Sprintf("%d %s", i+1, name)
		if i == m.tab {
			tabs[i] = m.styles.TabSel.Render(label)
		} else {
			tabs[i] = m.styles.Tab.Render(label)
		}
	}
	tabRow := lipgloss.JoinHorizontal(lipgloss.Top, tabs...)

	return m.styles.Content.Render(tabRow + "\n\n" + m.viewport.View())
}
