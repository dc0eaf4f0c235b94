package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"hauldeck/cmd/hauldeck/ui"
	"hauldeck/internal/api"
	"hauldeck/internal/cache"
	"hauldeck/internal/config"
	"hauldeck/internal/hos"
)

// view identifies which page owns the screen.
type view int

const (
	viewList view = iota
	viewForm
	viewTrip
)

// App is the root bubbletea model: a small state machine over the trip
// list, the planning form and the trip detail page.
type App struct {
	cfg    config.Config
	client tripAPI
	geo    geocoder
	store  *cache.Store
	log    *zap.Logger
	styles ui.Styles

	view   view
	list   ui.ListPageModel
	form   ui.FormPageModel
	trip   ui.TripPageModel
	banner ui.Banner
	help   ui.HelpModel

	// Request tokens. A response whose token no longer matches is from a
	// superseded request and is dropped.
	listToken   uuid.UUID
	tripToken   uuid.UUID
	createToken uuid.UUID

	// tripID is the trip the detail view is showing or loading, kept so r
	// can retry after a failed load.
	tripID string

	width  int
	height int
}

// NewApp wires the root model from its dependencies.
func NewApp(cfg config.Config, client tripAPI, geo geocoder, store *cache.Store, log *zap.Logger) *App {
	if log == nil {
		log = zap.NewNop()
	}
	styles := ui.NewStyles(ui.ThemeFor(cfg.Theme))

	a := &App{
		cfg:    cfg,
		client: client,
		geo:    geo,
		store:  store,
		log:    log,
		styles: styles,
		view:   viewList,
		list:   ui.NewListPageModel(styles),
		trip:   ui.NewTripPageModel(styles),
		banner: ui.NewBanner(cfg.SuccessBanner, styles),
		help:   ui.NewHelpModel(styles),
	}
	a.form = ui.NewFormPageModel(styles, func(field, seq int, query string) tea.Cmd {
		return searchLocationsCmd(a.geo, field, seq, query)
	})
	return a
}

// Init loads the trip list and, when a last-viewed trip is cached, starts
// restoring it in parallel.
func (a *App) Init() tea.Cmd {
	cmds := []tea.Cmd{a.list.Init(), a.reloadList()}
	if last := a.store.LastViewed(); last != "" {
		a.tripToken = uuid.New()
		cmds = append(cmds, loadTripCmd(a.client, a.tripToken, last, true))
	}
	return tea.Batch(cmds...)
}

func (a *App) reloadList() tea.Cmd {
	a.listToken = uuid.New()
	return tea.Batch(a.list.SetLoading(), loadTripsCmd(a.client, a.listToken))
}

func (a *App) openTrip(id string) tea.Cmd {
	a.banner.Clear()
	a.view = viewTrip
	a.tripToken = uuid.New()
	a.createToken = uuid.New()
	a.tripID = id
	a.store.SaveLastViewed(id)
	return tea.Batch(a.trip.SetLoading(), loadTripCmd(a.client, a.tripToken, id, false))
}

func (a *App) openForm() tea.Cmd {
	a.banner.Clear()
	a.view = viewForm
	a.createToken = uuid.New()
	a.form.Reset()
	a.form.Prefill(a.store.Preferences())
	return a.form.Init()
}

func (a *App) backToList() {
	a.banner.Clear()
	a.view = viewList
	a.createToken = uuid.New()
}

// Update routes messages to the active page and handles the transitions.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	a.banner.Update(msg)

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		inner := msg.Height - 4 // header and footer rows
		a.list.SetSize(msg.Width, inner)
		a.form.SetSize(msg.Width, inner)
		a.trip.SetSize(msg.Width, inner)
		a.help.SetSize(msg.Width, inner)
		return a, nil

	case tea.KeyMsg:
		if cmd, handled := a.handleKey(msg); handled {
			return a, cmd
		}

	case tripsLoadedMsg:
		if msg.token != a.listToken {
			return a, nil
		}
		if msg.err != nil {
			a.log.Warn("trip list load failed", zap.Error(msg.err))
			a.list.SetError(msg.err.Error())
			return a, nil
		}
		recentIDs := make(map[string]bool)
		for _, r := range a.store.Recent() {
			recentIDs[r.ID] = true
		}
		a.list.SetTrips(msg.trips, recentIDs)
		return a, nil

	case tripLoadedMsg:
		return a, a.handleTripLoaded(msg)

	case tripCreatedMsg:
		return a, a.handleTripCreated(msg)

	case ui.SubmitMsg:
		a.createToken = uuid.New()
		cmd := a.form.SetSubmitting(true)
		return a, tea.Batch(cmd, createTripCmd(a.client, a.createToken, msg.Draft))
	}

	return a, a.routeToPage(msg)
}

// handleKey processes the global keys and the per-view transitions.
// Unhandled keys fall through to the active page.
func (a *App) handleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	key := msg.String()

	if key == "ctrl+c" {
		return tea.Quit, true
	}

	// Banners are explicitly dismissible; esc eats one before anything else
	// unless the form is using esc to close its dropdown.
	if key == "esc" && a.banner.Showing() {
		if a.view != viewForm || !a.form.SuggestionsOpen() {
			a.banner.Clear()
			return nil, true
		}
	}

	if a.help.Visible() {
		switch key {
		case "?", "esc", "q":
			a.help.Toggle()
			return nil, true
		}
		var cmd tea.Cmd
		a.help, cmd = a.help.Update(msg)
		return cmd, true
	}

	// The form needs every printable key for typing.
	if a.view != viewForm {
		switch key {
		case "?":
			a.help.Toggle()
			return nil, true
		case "q":
			return tea.Quit, true
		}
	}

	switch a.view {
	case viewList:
		switch key {
		case "enter":
			if t, ok := a.list.Selected(); ok {
				return a.openTrip(t.ID), true
			}
		case "n":
			return a.openForm(), true
		case "r":
			return a.reloadList(), true
		}

	case viewForm:
		if key == "esc" && !a.form.SuggestionsOpen() {
			a.backToList()
			return nil, true
		}

	case viewTrip:
		switch key {
		case "esc":
			a.backToList()
			return nil, true
		case "n":
			return a.openForm(), true
		case "r":
			// tripID survives a failed load, so retry works from the
			// error state too.
			if a.tripID != "" {
				return a.openTrip(a.tripID), true
			}
		}
	}

	return a.routeToPage(msg), true
}

func (a *App) handleTripLoaded(msg tripLoadedMsg) tea.Cmd {
	if msg.token != a.tripToken {
		return nil
	}

	if msg.err != nil {
		if msg.restore {
			// Startup restore fails without bothering the user. A trip the
			// backend no longer knows is also dropped from the cache.
			a.log.Info("last-viewed restore failed", zap.String("id", msg.id), zap.Error(msg.err))
			if api.IsNotFound(msg.err) {
				a.store.RemoveRecent(msg.id)
				a.store.SaveLastViewed("")
			}
			return nil
		}
		if api.IsNotFound(msg.err) {
			a.store.RemoveRecent(msg.id)
		}
		a.trip.SetError(msg.err.Error())
		return nil
	}

	a.trip.SetTrip(msg.trip)
	a.store.SaveRecent(cache.ProjectTrip(msg.trip))
	if msg.restore {
		a.view = viewTrip
		a.tripID = msg.id
	}
	return nil
}

func (a *App) handleTripCreated(msg tripCreatedMsg) tea.Cmd {
	if msg.token != a.createToken {
		// The user left the form before the response landed. The screen
		// stays put, but a successfully created trip still enters the
		// cache; last-viewed is not touched, the user never opened it.
		if msg.err == nil && msg.trip != nil {
			a.log.Info("superseded trip create finished", zap.String("id", msg.trip.ID))
			a.store.SaveRecent(cache.ProjectTrip(msg.trip))
			a.store.AddRecentValue(cache.KindDrivers, msg.trip.DriverName)
			a.store.AddRecentValue(cache.KindTrucks, msg.trip.TruckNumber)
			a.store.AddRecentValue(cache.KindCarriers, msg.trip.CarrierName)
		}
		return nil
	}

	if msg.err != nil {
		a.log.Warn("trip create failed", zap.Error(msg.err))
		a.banner.Error(msg.err.Error())
		return a.form.SetSubmitting(false)
	}

	t := msg.trip
	a.store.SaveRecent(cache.ProjectTrip(t))
	a.store.SaveLastViewed(t.ID)
	a.store.AddRecentValue(cache.KindDrivers, t.DriverName)
	a.store.AddRecentValue(cache.KindTrucks, t.TruckNumber)
	a.store.AddRecentValue(cache.KindCarriers, t.CarrierName)

	a.view = viewTrip
	a.tripToken = uuid.New()
	a.tripID = t.ID
	a.trip.SetTrip(t)

	banner := a.banner.Success(fmt.Sprintf("Trip planned: %d segments, %.0f mi, %s",
		len(t.Segments), t.TotalDistance(), hos.FormatDuration(t.TotalDuration())))

	// The list is refreshed in the background so it is current on return.
	return tea.Batch(banner, a.reloadList())
}

// routeToPage forwards a message to whichever page owns the screen.
func (a *App) routeToPage(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch a.view {
	case viewList:
		a.list, cmd = a.list.Update(msg)
	case viewForm:
		a.form, cmd = a.form.Update(msg)
	case viewTrip:
		a.trip, cmd = a.trip.Update(msg)
	}
	return cmd
}

// View composes header, banner, active page and footer.
func (a *App) View() string {
	if a.help.Visible() {
		return a.help.View()
	}

	header := a.styles.Header.Render("HAULDECK") + " " +
		a.styles.Subtitle.Render(a.headerTitle())

	body := ""
	switch a.view {
	case viewList:
		body = a.list.View()
	case viewForm:
		body = a.form.View()
	case viewTrip:
		body = a.trip.View()
	}

	parts := []string{header}
	if b := a.banner.View(); b != "" {
		parts = append(parts, b)
	}
	parts = append(parts, body, a.styles.Footer.Render(a.footerHint()))

	out := ""
	for i, p := range parts {
		if i > 0 {
			out += "\n"
		}
		out += p
	}
	return out
}

func (a *App) headerTitle() string {
	switch a.view {
	case viewForm:
		return "Plan a Trip"
	case viewTrip:
		if t := a.trip.Trip(); t != nil {
			return t.PickupLocation + " → " + t.DropoffLocation
		}
		return "Trip"
	default:
		return "Trips"
	}
}

func (a *App) footerHint() string {
	switch a.view {
	case viewForm:
		return "tab fields · ctrl+s submit · esc back"
	case viewTrip:
		return "1-4 tabs · r refresh · n new trip · esc back · ? help"
	default:
		return "enter open · n new trip · r reload · ? help · q quit"
	}
}
