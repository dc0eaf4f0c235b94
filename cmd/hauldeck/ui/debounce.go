package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// DefaultSearchDelay is how long typing must pause before an autocomplete
// search fires.
const DefaultSearchDelay = 300 * time.Millisecond

// MinQueryLength is the shortest query worth sending to the geocoder.
const MinQueryLength = 3

// searchTickMsg fires when a debounce window elapses. It carries the
// sequence number current when the window was armed.
type searchTickMsg struct {
	field int
	seq   int
}

// typeDebouncer coalesces keystrokes into one search per pause. Every
// keystroke bumps the sequence; a tick whose sequence is stale is ignored,
// so only the last pause triggers a search. This is the message-driven
// equivalent of a timer debouncer, safe inside the bubbletea loop.
type typeDebouncer struct {
	seq   int
	delay time.Duration
}

func newTypeDebouncer(delay time.Duration) typeDebouncer {
	if delay <= 0 {
		delay = DefaultSearchDelay
	}
	return typeDebouncer{delay: delay}
}

// Touch registers a keystroke for a field and returns the command that
// will fire after the pause.
func (d *typeDebouncer) Touch(field int) tea.Cmd {
	d.seq++
	seq := d.seq
	return tea.Tick(d.delay, func(time.Time) tea.Msg {
		return searchTickMsg{field: field, seq: seq}
	})
}

// Current reports whether a tick is still the latest keystroke.
func (d *typeDebouncer) Current(seq int) bool {
	return seq == d.seq
}

// Reset invalidates any armed tick.
func (d *typeDebouncer) Reset() {
	d.seq++
}
