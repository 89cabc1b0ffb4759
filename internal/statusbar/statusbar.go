// internal/statusbar/statusbar.go
package statusbar

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"

	"github.com/arlem/hardkey/internal/types"
)

// Config defines the appearance and behavior of the status bar.
type Config struct {
	StyleDefault   tcell.Style // Default background/foreground
	StyleActive    tcell.Style // Style for armed modifier indicators
	StyleMessage   tcell.Style // Style for temporary messages
	MessageTimeout time.Duration
}

// DefaultConfig provides sensible defaults.
func DefaultConfig() Config {
	return Config{
		StyleDefault:   tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorBlue),
		StyleActive:    tcell.StyleDefault.Foreground(tcell.ColorYellow).Background(tcell.ColorBlue).Bold(true),
		StyleMessage:   tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlue).Bold(true),
		MessageTimeout: 4 * time.Second,
	}
}

// StatusBar renders the engine's mode snapshot as a status line.
type StatusBar struct {
	config Config
	mu     sync.RWMutex

	snapshot        types.Snapshot
	tempMessage     string
	tempMessageTime time.Time
}

// New creates a new StatusBar with the given configuration.
func New(config Config) *StatusBar {
	return &StatusBar{
		config: config,
	}
}

// SetSnapshot updates the displayed mode snapshot.
func (sb *StatusBar) SetSnapshot(snap types.Snapshot) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.snapshot = snap
}

// SetTemporaryMessage displays a message for a configured duration.
func (sb *StatusBar) SetTemporaryMessage(format string, args ...interface{}) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.tempMessage = fmt.Sprintf(format, args...)
	sb.tempMessageTime = time.Now()
}

// indicatorText builds the mode portion of the status line, e.g.
// "SHIFT:latch CAPS SYM".
func indicatorText(snap types.Snapshot) string {
	var parts []string
	for _, m := range []struct {
		name  string
		state types.DisplayState
	}{
		{"SHIFT", snap.Shift},
		{"CTRL", snap.Ctrl},
		{"ALT", snap.Alt},
	} {
		if m.state != types.DisplayOff {
			parts = append(parts, fmt.Sprintf("%s:%s", m.name, m.state))
		}
	}
	if snap.CapsLock {
		parts = append(parts, "CAPS")
	}
	if snap.SymbolMode {
		parts = append(parts, "SYM")
	}
	if snap.NavMode {
		parts = append(parts, "NAV")
	}
	if len(parts) == 0 {
		return "--"
	}
	return strings.Join(parts, " ")
}

// Draw renders the status bar onto the given row of the screen.
func (sb *StatusBar) Draw(screen tcell.Screen, y, width int) {
	sb.mu.RLock()
	snap := sb.snapshot
	message := sb.tempMessage
	messageTime := sb.tempMessageTime
	sb.mu.RUnlock()

	// Clear the row first.
	for x := 0; x < width; x++ {
		screen.SetContent(x, y, ' ', nil, sb.config.StyleDefault)
	}

	text := indicatorText(snap)
	style := sb.config.StyleDefault
	if snap.CapsLock || snap.SymbolMode || snap.NavMode {
		style = sb.config.StyleActive
	}
	drawText(screen, 0, y, width, text, style)

	// Temporary messages overlay the right side until they expire.
	if message != "" && time.Since(messageTime) < sb.config.MessageTimeout {
		msgWidth := uniseg.StringWidth(message)
		x := width - msgWidth
		if x < 0 {
			x = 0
		}
		drawText(screen, x, y, width, message, sb.config.StyleMessage)
	}
}

// drawText writes text cell by cell, respecting grapheme cluster widths.
func drawText(screen tcell.Screen, x, y, maxWidth int, text string, style tcell.Style) {
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		if x >= maxWidth {
			break
		}
		runes := g.Runes()
		screen.SetContent(x, y, runes[0], runes[1:], style)
		x += g.Width()
	}
}
