// internal/engine/navmode.go
package engine

import (
	"github.com/arlem/hardkey/internal/event"
	"github.com/arlem/hardkey/internal/logger"
	"github.com/arlem/hardkey/internal/modifier"
)

// Navigation mode is derived state: it is active exactly while the Ctrl
// latch it created is armed. Entry happens when a Ctrl double-tap promotes
// to Latch with no editable surface focused; exit happens on Back, on a
// Ctrl tap, or when a genuinely editable surface gains focus. The router
// owns both the tracker and the mode, and applies every exit through
// exitNav within the same event that clears the latch, which is what keeps
// the Active ⇒ Latch invariant unbreakable.

func (e *Engine) enterNav() {
	e.navActive = true
	e.ctrl.SetLatchSource(modifier.SourceNav)
	logger.Infof("Engine: navigation mode entered")
	e.events.Dispatch(event.TypeNavModeChanged, event.NavModeData{Active: true})
	e.emitSnapshot()
}

// exitNav leaves navigation mode. hide additionally asks the host to hide
// any transient input surface, which the Ctrl-tap exit path requests.
func (e *Engine) exitNav(hide bool) {
	e.navActive = false
	// The Ctrl-tap path has already disarmed the latch through the tracker;
	// the Back and focus paths disarm it here. Either way the latch and the
	// mode change inside one serialized event.
	if e.ctrl.Mode() == modifier.Latch && e.ctrl.LatchSource() == modifier.SourceNav {
		e.ctrl.DisarmLatch()
	}
	logger.Infof("Engine: navigation mode exited")
	e.events.Dispatch(event.TypeNavModeChanged, event.NavModeData{Active: false})
	if hide {
		e.events.Dispatch(event.TypeHideRequested, event.HideRequestedData{})
	}
	e.emitSnapshot()
}
