// Package multitap implements per-key variant cycling for compact layouts:
// repeated taps on the same key within the repeat window replace the
// previously committed variant with the next one in cyclic order. A tap on
// a different key, or window expiry, finalizes the cycle.
package multitap

import (
	"strings"
	"time"

	"github.com/rivo/uniseg"

	"github.com/arlem/hardkey/internal/keyev"
	"github.com/arlem/hardkey/internal/logger"
	"github.com/arlem/hardkey/internal/sched"
)

// Tap is the edit a tap produces: retract the previous variant's clusters
// (zero at cycle start) and commit Text, as one indivisible replacement.
type Tap struct {
	Text    string
	Retract int
}

// Cycler owns the single in-flight cycle. Only one key cycles at a time; a
// tap elsewhere finalizes the previous cycle before anything else happens.
type Cycler struct {
	scheduler sched.Scheduler
	window    time.Duration

	active    bool
	code      keyev.Code
	index     int
	variants  []string
	upper     bool
	committed string
	token     sched.Token

	// contextDirty records that a modifier transition happened mid-cycle;
	// only then does the next tap re-capture its case. The decay of a
	// one-shot this cycle's own first tap consumed is not a context change.
	contextDirty bool

	// gen invalidates window-expiry callbacks that were already delivered
	// to the event loop when a newer tap superseded them.
	gen uint64
}

// NewCycler creates a cycler with the given repeat window.
func NewCycler(scheduler sched.Scheduler, window time.Duration) *Cycler {
	return &Cycler{
		scheduler: scheduler,
		window:    window,
	}
}

// OnTap starts or advances a cycle for a key-down and returns the edit to
// apply. The case captured at cycle start holds for every later tap until a
// modifier transition reported via NoteModifierChange re-captures it from
// upper.
func (c *Cycler) OnTap(code keyev.Code, variants []string, upper bool) Tap {
	c.gen++
	if c.active && c.code == code {
		c.scheduler.Cancel(c.token)
		c.token = 0
		c.index = (c.index + 1) % len(variants)
		c.variants = variants
		if c.contextDirty {
			c.upper = upper
		}
		c.contextDirty = false
		retract := uniseg.GraphemeClusterCount(c.committed)
		c.committed = c.applyCase(variants[c.index])
		logger.Debugf("MultiTap: %v advanced to variant %d (%q)", code, c.index, c.committed)
		return Tap{Text: c.committed, Retract: retract}
	}

	// A different key's cycle is still open: finalize it first.
	c.Finalize()

	c.active = true
	c.code = code
	c.index = 0
	c.variants = variants
	c.upper = upper
	c.contextDirty = false
	c.committed = c.applyCase(variants[0])
	logger.Debugf("MultiTap: %v started cycle (%q)", code, c.committed)
	return Tap{Text: c.committed, Retract: 0}
}

// NoteModifierChange marks the open cycle's case stale. The next tap reads
// the then-current case instead of the one captured at cycle start.
func (c *Cycler) NoteModifierChange() {
	if c.active {
		c.contextDirty = true
	}
}

// OnRelease starts the repeat window for the cycling key. The window runs
// release-to-press: expiry finalizes the cycle and the committed variant
// stands.
func (c *Cycler) OnRelease(code keyev.Code) {
	if !c.active || c.code != code {
		return
	}
	c.scheduler.Cancel(c.token)
	gen := c.gen
	c.token = c.scheduler.Schedule(c.window, func() {
		c.expire(gen)
	})
}

// expire is the window-timer callback. A wall-clock timer can fire and land
// on the event loop just before a tap supersedes it; the generation check
// keeps that late delivery from closing the newer cycle.
func (c *Cycler) expire(gen uint64) {
	if !c.active || c.gen != gen {
		return
	}
	logger.Debugf("MultiTap: %v window expired", c.code)
	c.Finalize()
}

// NoteOtherKey finalizes the open cycle when a different key goes down.
func (c *Cycler) NoteOtherKey(code keyev.Code) {
	if c.active && c.code != code {
		c.Finalize()
	}
}

// Finalize closes the cycle; the committed variant stands. Idempotent.
func (c *Cycler) Finalize() {
	if !c.active {
		return
	}
	c.scheduler.Cancel(c.token)
	c.token = 0
	c.active = false
	c.committed = ""
	c.variants = nil
}

// Active reports whether a cycle is open.
func (c *Cycler) Active() bool {
	return c.active
}

// ActiveCode returns the cycling key while a cycle is open.
func (c *Cycler) ActiveCode() keyev.Code {
	return c.code
}

func (c *Cycler) applyCase(s string) string {
	if c.upper {
		return strings.ToUpper(s)
	}
	return s
}
