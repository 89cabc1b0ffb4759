// cmd/hardkey/app.go
package main

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/arlem/hardkey/internal/config"
	"github.com/arlem/hardkey/internal/engine"
	"github.com/arlem/hardkey/internal/event"
	"github.com/arlem/hardkey/internal/keyev"
	"github.com/arlem/hardkey/internal/keymap"
	"github.com/arlem/hardkey/internal/logger"
	"github.com/arlem/hardkey/internal/sched"
	"github.com/arlem/hardkey/internal/statusbar"
	"github.com/arlem/hardkey/internal/surface"
	"github.com/arlem/hardkey/internal/types"
)

// heldKeyUpDelay simulates holding a key past the long-press threshold when
// hold mode is armed, since terminals never deliver key-up events.
const heldKeyUpDelay = 650 * time.Millisecond

// app is the interactive harness: it decodes terminal keys into physical
// down/up pairs, drives the engine, and draws the buffer plus the snapshot
// status line. Function keys stand in for the modifier keys a terminal
// cannot report as separate transitions:
//
//	F2 = tap Shift   F3 = tap Ctrl   F4 = tap Alt   F5 = Sym toggle
//	F6 = toggle the editable-focus signal
//	F7 = arm hold mode: the next key is held past the long-press threshold
type app struct {
	screen tcell.Screen
	eng    *engine.Engine
	buf    *surface.Buffer
	status *statusbar.StatusBar
	events *event.Manager

	posted   chan sched.Callback
	tcellEvs chan tcell.Event
	quit     chan struct{}

	holdArmed bool
	focused   bool
}

func newApp(cfg *config.Config, layout *keymap.Layout) (*app, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize screen: %w", err)
	}

	a := &app{
		screen:   screen,
		posted:   make(chan sched.Callback, 64),
		tcellEvs: make(chan tcell.Event, 16),
		quit:     make(chan struct{}),
	}

	a.events = event.NewManager()
	a.buf = surface.NewBuffer(surface.NewClipboard(cfg.Engine.SystemClipboard))
	a.status = statusbar.New(statusbar.DefaultConfig())

	a.eng = engine.New(engine.Config{
		Surface:          a.buf,
		Layout:           layout,
		Scheduler:        sched.NewWall(a.post),
		Events:           a.events,
		LongPressTimeout: cfg.Engine.LongPressTimeout(),
		DoubleTapWindow:  cfg.Engine.DoubleTapWindow(),
		MultiTapWindow:   cfg.Engine.MultiTapWindow(),
	})
	// The harness is an editor, so the engine starts with editable focus;
	// F6 drops it to experiment with navigation mode.
	a.focused = true
	a.eng.SetEditableFocused(true)

	a.events.Subscribe(event.TypeSnapshotUpdated, func(e event.Event) bool {
		if data, ok := e.Data.(event.SnapshotData); ok {
			a.status.SetSnapshot(data.Snapshot)
		}
		return false
	})
	a.events.Subscribe(event.TypeNavModeChanged, func(e event.Event) bool {
		if data, ok := e.Data.(event.NavModeData); ok && data.Active {
			a.status.SetTemporaryMessage("nav mode: ijkl to move, Esc or Ctrl tap to leave")
		}
		return false
	})

	return a, nil
}

// post enqueues a fired timer callback onto the serialized event loop.
func (a *app) post(fn sched.Callback) {
	select {
	case a.posted <- fn:
	case <-a.quit:
	}
}

// Run drives the single logical thread: terminal events and timer
// callbacks are interleaved through one select so all engine state is
// mutated serially.
func (a *app) Run() error {
	defer a.screen.Fini()

	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case a.tcellEvs <- ev:
			case <-a.quit:
				return
			}
		}
	}()

	a.draw()
	for {
		select {
		case fn := <-a.posted:
			fn()
			a.applySynthetic()
			a.draw()
		case ev := <-a.tcellEvs:
			switch tev := ev.(type) {
			case *tcell.EventResize:
				a.screen.Sync()
				a.draw()
			case *tcell.EventKey:
				if tev.Key() == tcell.KeyCtrlC {
					close(a.quit)
					return nil
				}
				a.handleTerminalKey(tev)
				a.applySynthetic()
				a.draw()
			}
		}
	}
}

// handleTerminalKey translates one terminal key into physical down/up
// pairs for the engine.
func (a *app) handleTerminalKey(tev *tcell.EventKey) {
	now := time.Now()

	switch tev.Key() {
	case tcell.KeyF2:
		a.tap(keyev.CodeShift, now)
		return
	case tcell.KeyF3:
		a.tap(keyev.CodeCtrl, now)
		return
	case tcell.KeyF4:
		a.tap(keyev.CodeAlt, now)
		return
	case tcell.KeyF5:
		a.tap(keyev.CodeSym, now)
		return
	case tcell.KeyF6:
		a.focused = !a.focused
		a.eng.SetEditableFocused(a.focused)
		a.status.SetTemporaryMessage("editable focus: %v", a.focused)
		return
	case tcell.KeyF7:
		a.holdArmed = true
		a.status.SetTemporaryMessage("hold armed: next key is held %v", heldKeyUpDelay)
		return
	}

	code, mods := translateKey(tev)
	if code == keyev.CodeNone {
		return
	}

	res := a.eng.HandleKey(keyev.Down(code, mods, now))
	if !res.Consumed {
		a.applyDefault(code)
	}
	if a.holdArmed {
		// Simulate the key staying down past the threshold; the up event
		// arrives through the serialized loop like any other work.
		a.holdArmed = false
		upCode := code
		time.AfterFunc(heldKeyUpDelay, func() {
			a.post(func() {
				a.eng.HandleKey(keyev.Up(upCode, 0, time.Now()))
			})
		})
		return
	}
	a.eng.HandleKey(keyev.Up(code, mods, now))
}

// applyDefault is the host-side fallback for key-downs the engine declined:
// the editing the surrounding application would normally perform itself.
func (a *app) applyDefault(code keyev.Code) {
	switch code {
	case keyev.CodeEnter:
		a.buf.InsertText("\n")
	case keyev.CodeTab:
		a.buf.InsertText("\t")
	case keyev.CodeBackspace:
		a.buf.DeleteBefore(1)
	case keyev.CodeDelete:
		if !a.buf.DeleteSelection() {
			before := a.buf.CursorPos()
			a.buf.MoveCursor(types.DirRight)
			if a.buf.CursorPos() != before {
				a.buf.DeleteBefore(1)
			}
		}
	case keyev.CodeUp:
		a.buf.MoveCursor(types.DirUp)
	case keyev.CodeDown:
		a.buf.MoveCursor(types.DirDown)
	case keyev.CodeLeft:
		a.buf.MoveCursor(types.DirLeft)
	case keyev.CodeRight:
		a.buf.MoveCursor(types.DirRight)
	case keyev.CodePageUp:
		a.buf.MoveCursor(types.DirPageUp)
	case keyev.CodePageDown:
		a.buf.MoveCursor(types.DirPageDown)
	case keyev.CodeHome:
		a.buf.MoveCursor(types.DirHome)
	case keyev.CodeEnd:
		a.buf.MoveCursor(types.DirEnd)
	}
}

// tap sends an immediate down/up pair for a mode key.
func (a *app) tap(code keyev.Code, now time.Time) {
	a.eng.HandleKey(keyev.Down(code, 0, now))
	a.eng.HandleKey(keyev.Up(code, 0, now))
}

// applySynthetic interprets forwarded synthetic keys as cursor movement,
// standing in for the host UI that would normally receive them.
func (a *app) applySynthetic() {
	for _, sk := range a.buf.SyntheticKeys() {
		if !sk.Down {
			continue
		}
		switch sk.Code {
		case keyev.CodeUp:
			a.buf.MoveCursor(types.DirUp)
		case keyev.CodeDown:
			a.buf.MoveCursor(types.DirDown)
		case keyev.CodeLeft:
			a.buf.MoveCursor(types.DirLeft)
		case keyev.CodeRight:
			a.buf.MoveCursor(types.DirRight)
		case keyev.CodePageUp:
			a.buf.MoveCursor(types.DirPageUp)
		case keyev.CodePageDown:
			a.buf.MoveCursor(types.DirPageDown)
		default:
			logger.Debugf("App: synthetic key %v not interpreted", sk.Code)
		}
	}
	a.buf.ClearSyntheticKeys()
}

// translateKey maps a tcell event to a physical key code plus hardware
// modifier flags.
func translateKey(tev *tcell.EventKey) (keyev.Code, keyev.Mod) {
	var mods keyev.Mod
	if tev.Modifiers()&tcell.ModShift != 0 {
		mods = mods.With(keyev.ModShift)
	}
	if tev.Modifiers()&tcell.ModCtrl != 0 {
		mods = mods.With(keyev.ModCtrl)
	}
	if tev.Modifiers()&tcell.ModAlt != 0 {
		mods = mods.With(keyev.ModAlt)
	}

	switch tev.Key() {
	case tcell.KeyRune:
		r := tev.Rune()
		if r >= 'A' && r <= 'Z' {
			mods = mods.With(keyev.ModShift)
			r = r - 'A' + 'a'
		}
		return keyev.CodeByName(string(r)), mods
	case tcell.KeyEnter:
		return keyev.CodeEnter, mods
	case tcell.KeyTab:
		return keyev.CodeTab, mods
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return keyev.CodeBackspace, mods
	case tcell.KeyDelete:
		return keyev.CodeDelete, mods
	case tcell.KeyEscape:
		return keyev.CodeBack, mods
	case tcell.KeyUp:
		return keyev.CodeUp, mods
	case tcell.KeyDown:
		return keyev.CodeDown, mods
	case tcell.KeyLeft:
		return keyev.CodeLeft, mods
	case tcell.KeyRight:
		return keyev.CodeRight, mods
	case tcell.KeyPgUp:
		return keyev.CodePageUp, mods
	case tcell.KeyPgDn:
		return keyev.CodePageDown, mods
	case tcell.KeyHome:
		return keyev.CodeHome, mods
	case tcell.KeyEnd:
		return keyev.CodeEnd, mods
	default:
		return keyev.CodeNone, mods
	}
}

// draw renders the buffer and the status line.
func (a *app) draw() {
	a.screen.Clear()
	width, height := a.screen.Size()
	if height < 2 {
		return
	}

	style := tcell.StyleDefault
	for i, line := range a.buf.Lines() {
		if i >= height-1 {
			break
		}
		x := 0
		for _, r := range line {
			if x >= width {
				break
			}
			a.screen.SetContent(x, i, r, nil, style)
			x++
		}
	}

	cursor := a.buf.CursorPos()
	cx := 0
	if cursor.Line < len(a.buf.Lines()) {
		line := a.buf.Lines()[cursor.Line]
		if cursor.Col <= len(line) {
			cx = len([]rune(line[:cursor.Col]))
		} else {
			cx = len([]rune(line))
		}
	}
	a.screen.ShowCursor(cx, cursor.Line)
	a.status.Draw(a.screen, height-1, width)
	a.screen.Show()
}
