// internal/surface/clipboard.go
package surface

import (
	"github.com/atotto/clipboard"

	"github.com/arlem/hardkey/internal/logger"
)

// Clipboard backs the copy/cut/paste named actions. With system enabled it
// talks to the OS clipboard and falls back to the internal register when
// that fails (headless environments); otherwise it is purely internal.
type Clipboard struct {
	system   bool
	register string
}

// NewClipboard creates a clipboard, optionally bridged to the system one.
func NewClipboard(system bool) *Clipboard {
	return &Clipboard{system: system}
}

// Write stores text.
func (c *Clipboard) Write(text string) {
	c.register = text
	if c.system {
		if err := clipboard.WriteAll(text); err != nil {
			logger.Debugf("Clipboard: system write failed, using register: %v", err)
		}
	}
}

// Read returns the stored text.
func (c *Clipboard) Read() string {
	if c.system {
		if text, err := clipboard.ReadAll(); err == nil {
			return text
		}
	}
	return c.register
}
