package ui

import (
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
)

const helpMarkdown = `# hauldeck

Plan property-carrying trips and review the generated Hours-of-Service
daily logs.

## Global keys

| Key | Action |
|-----|--------|
| ` + "`?`" + ` | Toggle this help |
| ` + "`q` / `ctrl+c`" + ` | Quit |
| ` + "`esc`" + ` | Back / close |

## Trip list

| Key | Action |
|-----|--------|
| ` + "`↑` / `↓`" + ` | Move selection |
| ` + "`enter`" + ` | Open trip |
| ` + "`n`" + ` | Plan a new trip |
| ` + "`r`" + ` | Reload the list |

## Planning form

| Key | Action |
|-----|--------|
| ` + "`tab` / `shift+tab`" + ` | Next / previous field |
| ` + "`↑` / `↓`" + ` | Navigate suggestions |
| ` + "`enter`" + ` | Pick suggestion / next field / submit |
| ` + "`ctrl+s`" + ` | Submit from any field |

Location fields suggest places after three characters. Picking a
suggestion records its coordinates; the backend geocodes free-text
locations itself if you skip the picker.

## Trip detail

| Key | Action |
|-----|--------|
| ` + "`1`–`4`, `tab`" + ` | Switch tab (Overview, Map, Segments, Daily Logs) |
| ` + "`j` / `k`, `pgup` / `pgdn`" + ` | Scroll |
| ` + "`r`" + ` | Refresh the trip |
`

// HelpModel is the markdown help overlay.
type HelpModel struct {
	viewport viewport.Model
	styles   Styles
	visible  bool
	rendered string
	width    int
	height   int
}

// NewHelpModel creates the hidden help overlay.
func NewHelpModel(styles Styles) HelpModel {
	return HelpModel{
		viewport: viewport.New(80, 20),
		styles:   styles,
		width:    80,
		height:   24,
	}
}

// Visible reports whether the overlay is showing.
func (m HelpModel) Visible() bool {
	return m.visible
}

// Toggle shows or hides the overlay, rendering the markdown on first show
// at the current width.
func (m *HelpModel) Toggle() {
	m.visible = !m.visible
	if m.visible {
		m.render()
		m.viewport.GotoTop()
	}
}

// SetSize updates overlay dimensions and re-renders if visible.
func (m *HelpModel) SetSize(w, h int) {
	m.width = w
	m.height = h
	m.viewport.Width = w
	m.viewport.Height = h - 3
	if m.visible {
		m.render()
	}
}

func (m *HelpModel) render() {
	wrap := m.width - 4
	if wrap < 20 {
		wrap = 20
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(wrap),
	)
	if err != nil {
		m.rendered = helpMarkdown
	} else if out, rerr := renderer.Render(helpMarkdown); rerr == nil {
		m.rendered = out
	} else {
		m.rendered = helpMarkdown
	}
	m.viewport.SetContent(m.rendered)
}

// Update handles scrolling while visible.
func (m HelpModel) Update(msg tea.Msg) (HelpModel, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the overlay.
func (m HelpModel) View() string {
	return m.viewport.View() + "\n" + m.styles.Footer.Render("? or esc to close · j/k to scroll")
}
