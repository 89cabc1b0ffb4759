// internal/sched/manual_test.go
package sched

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testStart = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func TestManualFiresInDeadlineOrder(t *testing.T) {
	m := NewManual(testStart)

	var fired []string
	m.Schedule(300*time.Millisecond, func() { fired = append(fired, "late") })
	m.Schedule(100*time.Millisecond, func() { fired = append(fired, "early") })
	m.Schedule(200*time.Millisecond, func() { fired = append(fired, "mid") })

	m.Advance(time.Second)

	assert.Equal(t, []string{"early", "mid", "late"}, fired)
	assert.Equal(t, 0, m.PendingCount())
}

func TestManualBreaksTiesByInsertionOrder(t *testing.T) {
	m := NewManual(testStart)

	var fired []int
	for i := 0; i < 5; i++ {
		i := i
		m.Schedule(50*time.Millisecond, func() { fired = append(fired, i) })
	}
	m.Advance(50 * time.Millisecond)

	assert.Equal(t, []int{0, 1, 2, 3, 4}, fired)
}

func TestManualCancelledEntryNeverFires(t *testing.T) {
	m := NewManual(testStart)

	fired := false
	tok := m.Schedule(100*time.Millisecond, func() { fired = true })
	require.Equal(t, 1, m.PendingCount())

	m.Cancel(tok)
	assert.Equal(t, 0, m.PendingCount())

	m.Advance(time.Second)
	assert.False(t, fired)
}

func TestManualDoesNotFireBeforeDeadline(t *testing.T) {
	m := NewManual(testStart)

	fired := false
	m.Schedule(500*time.Millisecond, func() { fired = true })

	m.Advance(499 * time.Millisecond)
	assert.False(t, fired)
	assert.Equal(t, 1, m.PendingCount())

	m.Advance(1 * time.Millisecond)
	assert.True(t, fired)
}

func TestManualCallbackObservesItsOwnDeadline(t *testing.T) {
	m := NewManual(testStart)

	var at time.Time
	m.Schedule(200*time.Millisecond, func() { at = m.Now() })
	m.Advance(time.Second)

	assert.Equal(t, testStart.Add(200*time.Millisecond), at)
	assert.Equal(t, testStart.Add(time.Second), m.Now())
}

func TestManualCallbackMaySchedule(t *testing.T) {
	m := NewManual(testStart)

	var fired []string
	m.Schedule(100*time.Millisecond, func() {
		fired = append(fired, "first")
		m.Schedule(100*time.Millisecond, func() { fired = append(fired, "chained") })
	})

	m.Advance(150 * time.Millisecond)
	assert.Equal(t, []string{"first"}, fired)

	m.Advance(100 * time.Millisecond)
	assert.Equal(t, []string{"first", "chained"}, fired)
}

func TestManualCallbackMayCancelSibling(t *testing.T) {
	m := NewManual(testStart)

	var victim Token
	victimFired := false
	m.Schedule(100*time.Millisecond, func() { m.Cancel(victim) })
	victim = m.Schedule(200*time.Millisecond, func() { victimFired = true })

	m.Advance(time.Second)
	assert.False(t, victimFired)
	assert.Equal(t, 0, m.PendingCount())
}

func TestWallRequiresPostFunc(t *testing.T) {
	assert.Panics(t, func() { NewWall(nil) })
}
