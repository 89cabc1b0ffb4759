// Package longpress resolves dual-mapped keys: the base character is
// committed the instant the key goes down (typing must feel instantaneous),
// and if the key is still held when the threshold timer fires, the base is
// retracted and the alternate committed in its place.
//
// Per-key transient state lives in an arena of slots indexed by key-code,
// each with an explicit tagged state, so cancellation is a single lookup and
// a stale timer can never fire against a reused slot.
package longpress

import (
	"time"

	"github.com/rivo/uniseg"

	"github.com/arlem/hardkey/internal/keyev"
	"github.com/arlem/hardkey/internal/logger"
	"github.com/arlem/hardkey/internal/sched"
)

// State tags a per-key slot.
type State int

const (
	// Idle means no long-press is in flight for the key.
	Idle State = iota
	// Awaiting means the base text is committed and the threshold timer is
	// pending.
	Awaiting
	// Fired means the alternate replaced the base; the key's release must
	// not re-trigger normal key-up handling.
	Fired
)

// FireFunc retracts the already-committed base text (retract clusters) and
// commits the alternate in its place. It runs on the engine's logical
// thread as an ordinary serialized event.
type FireFunc func(code keyev.Code, retract int, alternate string)

type slot struct {
	state State
	token sched.Token
	base  string
	alt   string
}

// Resolver owns the slot arena and the threshold timers.
type Resolver struct {
	scheduler sched.Scheduler
	threshold time.Duration
	onFire    FireFunc
	slots     map[keyev.Code]*slot
}

// NewResolver creates a resolver. onFire must not be nil.
func NewResolver(scheduler sched.Scheduler, threshold time.Duration, onFire FireFunc) *Resolver {
	if onFire == nil {
		panic("longpress.NewResolver: nil FireFunc")
	}
	return &Resolver{
		scheduler: scheduler,
		threshold: threshold,
		onFire:    onFire,
		slots:     make(map[keyev.Code]*slot),
	}
}

// Begin starts a long-press cycle for a key whose base text has just been
// committed. Any pending timer for the same key-code is cancelled first, so
// a prior cycle can never fire against this one.
func (r *Resolver) Begin(code keyev.Code, base, alternate string) {
	r.reset(code)

	s := &slot{state: Awaiting, base: base, alt: alternate}
	r.slots[code] = s
	s.token = r.scheduler.Schedule(r.threshold, func() {
		r.fire(code, s)
	})
	logger.Debugf("LongPress: armed %v (base=%q alt=%q)", code, base, alternate)
}

// fire is the threshold callback: retract the base, commit the alternate.
// A wall-clock timer can fire and sit on the event loop while its press is
// released and the key pressed again; the slot-identity check keeps that
// late delivery from firing against the new press.
func (r *Resolver) fire(code keyev.Code, armed *slot) {
	s, ok := r.slots[code]
	if !ok || s != armed || s.state != Awaiting {
		return
	}
	s.state = Fired
	retract := uniseg.GraphemeClusterCount(s.base)
	logger.Debugf("LongPress: fired %v, retracting %d cluster(s)", code, retract)
	r.onFire(code, retract, s.alt)
}

// OnRelease finalizes the key's slot. Released before the threshold, the
// committed base stands and the timer is cancelled. Released after firing,
// the return value tells the router to suppress normal key-up handling for
// this press.
func (r *Resolver) OnRelease(code keyev.Code) (suppressKeyUp bool) {
	s, ok := r.slots[code]
	if !ok {
		return false
	}
	fired := s.state == Fired
	r.reset(code)
	return fired
}

// Pending reports whether the key has a threshold timer in flight.
func (r *Resolver) Pending(code keyev.Code) bool {
	s, ok := r.slots[code]
	return ok && s.state == Awaiting
}

// PendingCount returns the number of keys with timers in flight.
func (r *Resolver) PendingCount() int {
	n := 0
	for _, s := range r.slots {
		if s.state == Awaiting {
			n++
		}
	}
	return n
}

// reset cancels any timer and drops the slot back to Idle.
func (r *Resolver) reset(code keyev.Code) {
	s, ok := r.slots[code]
	if !ok {
		return
	}
	if s.state == Awaiting {
		r.scheduler.Cancel(s.token)
	}
	delete(r.slots, code)
}
