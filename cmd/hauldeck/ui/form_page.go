package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"hauldeck/internal/cache"
	"hauldeck/internal/geo"
	"hauldeck/internal/geocode"
	"hauldeck/internal/trip"
)

// Form field indices. The three location fields come first; they are the
// only ones wired to autocomplete.
const (
	fieldCurrent = iota
	fieldPickup
	fieldDropoff
	fieldCycleHours
	fieldDriver
	fieldCarrier
	fieldTruck
	fieldCount
)

var fieldLabels = [fieldCount]string{
	"Current Location",
	"Pickup Location",
	"Dropoff Location",
	"Current Cycle Hours (0-70)",
	"Driver Name",
	"Carrier Name",
	"Truck Number",
}

// SearchFunc performs an autocomplete lookup and delivers a SuggestionsMsg.
type SearchFunc func(field, seq int, query string) tea.Cmd

// SuggestionsMsg carries autocomplete results back to the form. Stale
// sequences are discarded.
type SuggestionsMsg struct {
	Field      int
	Seq        int
	Candidates []geocode.Candidate
}

// SubmitMsg is emitted when the form validates and the draft is ready to
// send.
type SubmitMsg struct {
	Draft trip.Draft
}

// pickedCoord records the geocoder candidate chosen for a location field.
type pickedCoord struct {
	lat, lng float64
	set      bool
}

// FormPageModel is the trip planning form: three geocoded locations, the
// cycle hours and the driver/carrier/truck details.
type FormPageModel struct {
	inputs  [fieldCount]textinput.Model
	focus   int
	deb     typeDebouncer
	search  SearchFunc
	spinner spinner.Model
	styles  Styles

	suggestions []geocode.Candidate
	sugField    int
	sugSel      int

	coords     [3]pickedCoord
	fieldErrs  [fieldCount]string
	submitting bool
	width      int
	height     int
}

// NewFormPageModel creates an empty planning form.
func NewFormPageModel(styles Styles, search SearchFunc) FormPageModel {
	m := FormPageModel{
		deb:      newTypeDebouncer(DefaultSearchDelay),
		search:   search,
		styles:   styles,
		sugField: -1,
		width:    80,
		height:   24,
	}

	for i := range m.inputs {
		in := textinput.New()
		in.Prompt = "> "
		in.PromptStyle = styles.Muted
		in.TextStyle = styles.Body
		in.CharLimit = 120
		in.Width = 48
		m.inputs[i] = in
	}
	m.inputs[fieldCycleHours].CharLimit = 5
	m.inputs[fieldCycleHours].Width = 8
	m.inputs[fieldCurrent].Focus()
	m.inputs[fieldCurrent].PromptStyle = styles.FieldFocus

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Spinner
	m.spinner = sp

	return m
}

// Init returns nil; the spinner only runs while submitting.
func (m FormPageModel) Init() tea.Cmd {
	return textinput.Blink
}

// SetSize updates the page dimensions.
func (m *FormPageModel) SetSize(w, h int) {
	m.width = w
	m.height = h
}

// Prefill seeds the detail fields from saved preferences: the default
// carrier is filled in, the most recent driver and truck become
// placeholders.
func (m *FormPageModel) Prefill(prefs cache.Preferences) {
	if prefs.DefaultCarrier != "" && m.inputs[fieldCarrier].Value() == "" {
		m.inputs[fieldCarrier].SetValue(prefs.DefaultCarrier)
	}
	if len(prefs.RecentDriverNames) > 0 {
		m.inputs[fieldDriver].Placeholder = prefs.RecentDriverNames[0]
	}
	if len(prefs.RecentTruckNumbers) > 0 {
		m.inputs[fieldTruck].Placeholder = prefs.RecentTruckNumbers[0]
	}
}

// Reset clears every field, error and pending search.
func (m *FormPageModel) Reset() {
	for i := range m.inputs {
		m.inputs[i].SetValue("")
		m.inputs[i].Blur()
		m.inputs[i].PromptStyle = m.styles.Muted
		m.fieldErrs[i] = ""
	}
	m.coords = [3]pickedCoord{}
	m.closeSuggestions()
	m.deb.Reset()
	m.submitting = false
	m.setFocus(fieldCurrent)
}

// SetSubmitting flips the form in or out of its in-flight state.
func (m *FormPageModel) SetSubmitting(on bool) tea.Cmd {
	m.submitting = on
	if on {
		return m.spinner.Tick
	}
	return nil
}

func (m *FormPageModel) setFocus(i int) {
	m.inputs[m.focus].Blur()
	m.inputs[m.focus].PromptStyle = m.styles.Muted
	m.focus = i
	m.inputs[i].Focus()
	m.inputs[i].PromptStyle = m.styles.FieldFocus
	m.closeSuggestions()
}

// SuggestionsOpen reports whether the autocomplete dropdown is showing,
// so the shell knows whether esc closes it or leaves the form.
func (m FormPageModel) SuggestionsOpen() bool {
	return len(m.suggestions) > 0
}

func (m *FormPageModel) closeSuggestions() {
	m.suggestions = nil
	m.sugField = -1
	m.sugSel = 0
}

func isLocationField(i int) bool {
	return i >= fieldCurrent && i <= fieldDropoff
}

// Update handles keystrokes, debounce ticks and autocomplete results.
func (m FormPageModel) Update(msg tea.Msg) (FormPageModel, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case spinner.TickMsg:
		if m.submitting {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil

	case searchTickMsg:
		if !m.deb.Current(msg.seq) {
			return m, nil
		}
		query := strings.TrimSpace(m.inputs[msg.field].Value())
		if len(query) < MinQueryLength || m.search == nil {
			return m, nil
		}
		return m, m.search(msg.field, msg.seq, query)

	case SuggestionsMsg:
		// A result from an earlier keystroke, or for a field no longer
		// focused, is dropped.
		if !m.deb.Current(msg.Seq) || msg.Field != m.focus {
			return m, nil
		}
		m.suggestions = msg.Candidates
		m.sugField = msg.Field
		m.sugSel = 0
		return m, nil

	case tea.KeyMsg:
		if m.submitting {
			return m, nil
		}
		switch msg.String() {
		case "tab", "shift+tab":
			next := m.focus + 1
			if msg.String() == "shift+tab" {
				next = m.focus - 1
			}
			m.setFocus((next + fieldCount) % fieldCount)
			return m, nil

		case "up":
			if len(m.suggestions) > 0 {
				if m.sugSel > 0 {
					m.sugSel--
				}
				return m, nil
			}
			if m.focus > 0 {
				m.setFocus(m.focus - 1)
			}
			return m, nil

		case "down":
			if len(m.suggestions) > 0 {
				if m.sugSel < len(m.suggestions)-1 {
					m.sugSel++
				}
				return m, nil
			}
			if m.focus < fieldCount-1 {
				m.setFocus(m.focus + 1)
			}
			return m, nil

		case "esc":
			if len(m.suggestions) > 0 {
				m.closeSuggestions()
				return m, nil
			}
			// Otherwise the shell handles esc (back to list).
			return m, nil

		case "enter":
			if len(m.suggestions) > 0 {
				m.pickSuggestion()
				return m, nil
			}
			if m.focus < fieldCount-1 {
				m.setFocus(m.focus + 1)
				return m, nil
			}
			return m.submit()

		case "ctrl+s":
			return m.submit()
		}
	}

	var cmd tea.Cmd
	before := m.inputs[m.focus].Value()
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	cmds = append(cmds, cmd)

	if m.inputs[m.focus].Value() != before {
		m.fieldErrs[m.focus] = ""
		if isLocationField(m.focus) {
			// Typing invalidates any previously picked candidate.
			m.coords[m.focus] = pickedCoord{}
			m.closeSuggestions()
			if len(strings.TrimSpace(m.inputs[m.focus].Value())) >= MinQueryLength {
				cmds = append(cmds, m.deb.Touch(m.focus))
			} else {
				m.deb.Reset()
			}
		}
	}

	return m, tea.Batch(cmds...)
}

// pickSuggestion applies the highlighted candidate to the focused field.
func (m *FormPageModel) pickSuggestion() {
	c := m.suggestions[m.sugSel]
	m.inputs[m.sugField].SetValue(c.DisplayName)
	m.inputs[m.sugField].CursorEnd()
	if lat, lng, err := c.LatLng(); err == nil {
		m.coords[m.sugField] = pickedCoord{
			lat: geo.RoundCoord(lat),
			lng: geo.RoundCoord(lng),
			set: true,
		}
	}
	m.deb.Reset()
	m.closeSuggestions()
}

// submit validates the form and emits the draft, or surfaces field errors.
func (m FormPageModel) submit() (FormPageModel, tea.Cmd) {
	if !m.validate() {
		return m, nil
	}
	draft := m.buildDraft()
	return m, func() tea.Msg { return SubmitMsg{Draft: draft} }
}

func (m *FormPageModel) validate() bool {
	ok := true
	required := []int{fieldCurrent, fieldPickup, fieldDropoff, fieldDriver, fieldCarrier, fieldTruck}
	for _, i := range required {
		if strings.TrimSpace(m.inputs[i].Value()) == "" {
			m.fieldErrs[i] = "This field is required"
			ok = false
		}
	}

	raw := strings.TrimSpace(m.inputs[fieldCycleHours].Value())
	if raw == "" {
		m.fieldErrs[fieldCycleHours] = "This field is required"
		ok = false
	} else if hours, err := strconv.ParseFloat(raw, 64); err != nil {
		m.fieldErrs[fieldCycleHours] = "Must be a number"
		ok = false
	} else if hours < 0 || hours > 70 {
		m.fieldErrs[fieldCycleHours] = "Must be between 0 and 70"
		ok = false
	}

	if !ok {
		for _, i := range required {
			if m.fieldErrs[i] != "" {
				m.setFocus(i)
				break
			}
		}
	}
	return ok
}

func (m FormPageModel) buildDraft() trip.Draft {
	hours, _ := strconv.ParseFloat(strings.TrimSpace(m.inputs[fieldCycleHours].Value()), 64)
	return trip.Draft{
		CurrentLocation:   strings.TrimSpace(m.inputs[fieldCurrent].Value()),
		CurrentLat:        m.coords[fieldCurrent].lat,
		CurrentLng:        m.coords[fieldCurrent].lng,
		PickupLocation:    strings.TrimSpace(m.inputs[fieldPickup].Value()),
		PickupLat:         m.coords[fieldPickup].lat,
		PickupLng:         m.coords[fieldPickup].lng,
		DropoffLocation:   strings.TrimSpace(m.inputs[fieldDropoff].Value()),
		DropoffLat:        m.coords[fieldDropoff].lat,
		DropoffLng:        m.coords[fieldDropoff].lng,
		CurrentCycleHours: hours,
		DriverName:        strings.TrimSpace(m.inputs[fieldDriver].Value()),
		CarrierName:       strings.TrimSpace(m.inputs[fieldCarrier].Value()),
		TruckNumber:       strings.TrimSpace(m.inputs[fieldTruck].Value()),
	}
}

// View renders the form.
func (m FormPageModel) View() string {
	var sb strings.Builder
	sb.WriteString(m.styles.Title.Render("Plan a Trip"))
	sb.WriteString("\n")

	for i := 0; i < fieldCount; i++ {
		sb.WriteString(m.styles.FieldLabel.Render(fieldLabels[i]))
		if isLocationField(i) && m.coords[i].set {
			sb.WriteString(m.styles.Success.Render("  ✓"))
		}
		sb.WriteString("\n")
		sb.WriteString(m.inputs[i].View())
		sb.WriteString("\n")
		if m.fieldErrs[i] != "" {
			sb.WriteString(m.styles.FieldError.Render("  " + m.fieldErrs[i]))
			sb.WriteString("\n")
		}
		if i == m.focus && m.sugField == i {
			for s, c := range m.suggestions {
				style := m.styles.Suggestion
				prefix := "  "
				if s == m.sugSel {
					style = m.styles.SuggestionSel
					prefix = "▸ "
				}
				sb.WriteString(style.Render(prefix + c.DisplayName))
				sb.WriteString("\n")
			}
		}
	}

	for _, w := range geo.ValidateDraftCoords(m.buildDraft()) {
		sb.WriteString(m.styles.Warning.Render("  " + w))
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	if m.submitting {
		sb.WriteString(m.spinner.View() + " Planning route...")
	} else {
		sb.WriteString(m.styles.Muted.Render(
			fmt.Sprintf("tab next field · enter %s · esc back",
				submitHint(m.focus))))
	}

	return m.styles.Content.Render(sb.String())
}

func submitHint(focus int) string {
	if focus == fieldCount-1 {
		return "submit"
	}
	return "next (ctrl+s submit)"
}
