// internal/sched/wall.go
package sched

import (
	"sync"
	"time"
)

// Wall is a Scheduler backed by real timers. Fired callbacks are not run on
// the timer goroutine; they are handed to the post function, which must
// enqueue them onto the host's single event loop so engine state is only
// ever touched serially.
//
// Cancel can only stop a timer that has not fired yet. A callback already
// handed to post is beyond its reach, so consumers that reuse per-key state
// across presses must recognize and drop the late delivery themselves.
type Wall struct {
	post func(Callback)

	mu     sync.Mutex
	next   Token
	timers map[Token]*time.Timer
}

// NewWall creates a wall-clock scheduler. post must not be nil.
func NewWall(post func(Callback)) *Wall {
	if post == nil {
		panic("sched.NewWall: nil post function")
	}
	return &Wall{
		post:   post,
		timers: make(map[Token]*time.Timer),
	}
}

// Schedule registers fn to be posted to the event loop after d.
func (w *Wall) Schedule(d time.Duration, fn Callback) Token {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.next++
	token := w.next
	w.timers[token] = time.AfterFunc(d, func() {
		w.mu.Lock()
		_, live := w.timers[token]
		delete(w.timers, token)
		w.mu.Unlock()
		// A Cancel that raced the timer firing wins: the callback is dropped
		// if the token was already removed.
		if live {
			w.post(fn)
		}
	})
	return token
}

// Cancel stops a pending timer.
func (w *Wall) Cancel(t Token) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if timer, ok := w.timers[t]; ok {
		timer.Stop()
		delete(w.timers, t)
	}
}
