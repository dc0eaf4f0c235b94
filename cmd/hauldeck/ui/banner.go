package ui

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// bannerExpiredMsg fires when a success banner's display window elapses.
// The generation guards against a timer from an earlier banner dismissing
// a newer one.
type bannerExpiredMsg struct {
	gen int
}

// Banner is the transient status line above the page content. Success
// banners dismiss themselves after a fixed window; error banners stay
// until the next view transition clears them.
type Banner struct {
	text    string
	isError bool
	gen     int
	ttl     time.Duration
	styles  Styles
}

// NewBanner creates an empty banner with the given auto-dismiss window.
func NewBanner(ttl time.Duration, styles Styles) Banner {
	if ttl <= 0 {
		ttl = 6 * time.Second
	}
	return Banner{ttl: ttl, styles: styles}
}

// Success shows a success banner and arms its dismissal timer.
func (b *Banner) Success(text string) tea.Cmd {
	b.text = text
	b.isError = false
	b.gen++
	gen := b.gen
	return tea.Tick(b.ttl, func(time.Time) tea.Msg {
		return bannerExpiredMsg{gen: gen}
	})
}

// Error shows an error banner. It persists until Clear.
func (b *Banner) Error(text string) {
	b.text = text
	b.isError = true
	b.gen++
}

// Showing reports whether anything is on display.
func (b Banner) Showing() bool {
	return b.text != ""
}

// Clear removes whatever is showing.
func (b *Banner) Clear() {
	b.text = ""
	b.gen++
}

// Update consumes expiry ticks.
func (b *Banner) Update(msg tea.Msg) {
	if expired, ok := msg.(bannerExpiredMsg); ok {
		if expired.gen == b.gen && !b.isError {
			b.text = ""
		}
	}
}

// View renders the banner, empty string when nothing is showing.
// Multi-line errors (validation messages) render line by line.
func (b Banner) View() string {
	if b.text == "" {
		return ""
	}
	style := b.styles.Success
	if b.isError {
		style = b.styles.Error
	}
	lines := strings.Split(b.text, "\n")
	for i, line := range lines {
		lines[i] = style.Render(line)
	}
	return strings.Join(lines, "\n")
}
