// internal/sched/manual.go
package sched

import (
	"container/heap"
	"time"
)

// Manual is a Scheduler driven by an explicit clock. Advance moves time
// forward and fires due callbacks inline, in deadline order, with insertion
// order breaking ties. Tests use it to make every timing window exact.
type Manual struct {
	now     time.Time
	seq     uint64
	next    Token
	pending entryHeap
	byToken map[Token]*entry
}

type entry struct {
	deadline  time.Time
	seq       uint64
	token     Token
	fn        Callback
	cancelled bool
	index     int
}

// NewManual creates a manual scheduler starting at the given instant.
func NewManual(start time.Time) *Manual {
	return &Manual{
		now:     start,
		byToken: make(map[Token]*entry),
	}
}

// Now returns the scheduler's current instant.
func (m *Manual) Now() time.Time {
	return m.now
}

// Schedule registers fn to fire once the clock reaches now+d.
func (m *Manual) Schedule(d time.Duration, fn Callback) Token {
	m.next++
	m.seq++
	e := &entry{
		deadline: m.now.Add(d),
		seq:      m.seq,
		token:    m.next,
		fn:       fn,
	}
	heap.Push(&m.pending, e)
	m.byToken[e.token] = e
	return e.token
}

// Cancel drops a pending callback.
func (m *Manual) Cancel(t Token) {
	if e, ok := m.byToken[t]; ok {
		e.cancelled = true
		delete(m.byToken, t)
	}
}

// Advance moves the clock forward by d, firing due callbacks in order.
// Each callback observes the clock at its own deadline, and callbacks may
// schedule or cancel further work.
func (m *Manual) Advance(d time.Duration) {
	m.AdvanceTo(m.now.Add(d))
}

// AdvanceTo moves the clock to t, firing due callbacks in order.
func (m *Manual) AdvanceTo(t time.Time) {
	for len(m.pending) > 0 {
		e := m.pending[0]
		if e.deadline.After(t) {
			break
		}
		heap.Pop(&m.pending)
		if e.cancelled {
			continue
		}
		delete(m.byToken, e.token)
		if e.deadline.After(m.now) {
			m.now = e.deadline
		}
		e.fn()
	}
	if t.After(m.now) {
		m.now = t
	}
}

// PendingCount returns the number of callbacks still scheduled. Cancelled
// entries are not counted.
func (m *Manual) PendingCount() int {
	return len(m.byToken)
}

// entryHeap orders entries by deadline, then by scheduling order.
type entryHeap []*entry

func (h entryHeap) Len() int { return len(h) }

func (h entryHeap) Less(i, j int) bool {
	if h[i].deadline.Equal(h[j].deadline) {
		return h[i].seq < h[j].seq
	}
	return h[i].deadline.Before(h[j].deadline)
}

func (h entryHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *entryHeap) Push(x any) {
	e := x.(*entry)
	e.index = len(*h)
	*h = append(*h, e)
}

func (h *entryHeap) Pop() any {
	old := *h
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return e
}
