// Package sched provides single-shot deferred callbacks for the routing
// engine. All engine state is mutated on one logical thread, so callbacks
// must be delivered on that same thread: the wall-clock implementation hands
// fired callbacks to a host-supplied post function that enqueues them onto
// the host's serialized event loop, and the manual implementation (used in
// tests) runs them inline from Advance.
//
// Cancellation is explicit and mandatory for per-key timers: a token is
// cancelled before the per-key state it guards is reused, so a stale timer
// can never fire against a later key cycle.
package sched

import "time"

// Callback is a deferred piece of work.
type Callback func()

// Token identifies a scheduled callback for cancellation. The zero Token is
// never issued and cancels nothing.
type Token uint64

// Scheduler schedules and cancels single-shot callbacks.
type Scheduler interface {
	// Schedule runs fn after d on the engine's logical thread.
	Schedule(d time.Duration, fn Callback) Token

	// Cancel drops a pending callback. Cancelling an already-fired or
	// unknown token is a no-op.
	Cancel(t Token)
}
