// internal/modifier/tracker_test.go
package modifier

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arlem/hardkey/internal/types"
)

const window = 500 * time.Millisecond

var t0 = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func at(d time.Duration) time.Time { return t0.Add(d) }

// tap presses and releases at the given instant.
func tap(tr *Tracker, when time.Time) Effect {
	eff := tr.OnPress(when)
	tr.OnRelease(when.Add(10 * time.Millisecond))
	return eff
}

func TestTapArmsOneShot(t *testing.T) {
	tr := NewTracker(Shift, window)

	eff := tap(tr, t0)
	assert.True(t, eff.Changed)
	assert.False(t, eff.Promoted)
	assert.Equal(t, OneShot, tr.Mode())
	assert.False(t, tr.Held())
}

func TestDoubleTapPromotesToLatch(t *testing.T) {
	tr := NewTracker(Ctrl, window)

	tap(tr, t0)
	eff := tr.OnPress(at(200 * time.Millisecond))

	assert.True(t, eff.Promoted)
	assert.Equal(t, Latch, tr.Mode())
	assert.False(t, tr.CapsLock(), "caps is a Shift-only effect")
}

func TestShiftDoubleTapSetsCapsLock(t *testing.T) {
	tr := NewTracker(Shift, window)

	tap(tr, t0)
	eff := tr.OnPress(at(200 * time.Millisecond))

	assert.True(t, eff.Promoted)
	assert.True(t, eff.CapsToggled)
	assert.Equal(t, Latch, tr.Mode())
	assert.True(t, tr.CapsLock())
}

func TestSlowSecondTapArmsFreshOneShot(t *testing.T) {
	tr := NewTracker(Shift, window)

	tap(tr, t0)
	// Past the window the tap reads as a fresh first tap: no promotion,
	// a one-shot armed as if the first had never happened.
	eff := tap(tr, at(2*time.Second))

	assert.True(t, eff.Changed)
	assert.False(t, eff.Promoted)
	assert.Equal(t, OneShot, tr.Mode())

	// And the fresh arm's release qualifies: a quick third tap promotes.
	eff = tr.OnPress(at(2*time.Second + 200*time.Millisecond))
	assert.True(t, eff.Promoted)
}

func TestTapWhileLatchedDisarms(t *testing.T) {
	tr := NewTracker(Shift, window)
	tap(tr, t0)
	tr.OnPress(at(100 * time.Millisecond))
	require.Equal(t, Latch, tr.Mode())
	tr.OnRelease(at(150 * time.Millisecond))

	eff := tr.OnPress(at(300 * time.Millisecond))
	assert.True(t, eff.Disarmed)
	assert.True(t, eff.CapsToggled)
	assert.Equal(t, Off, tr.Mode())
	assert.False(t, tr.CapsLock())
}

func TestDisarmReleaseDoesNotQualifyForPromotion(t *testing.T) {
	tr := NewTracker(Shift, window)
	tap(tr, t0)
	tap(tr, at(100*time.Millisecond)) // promote, caps on
	require.Equal(t, Latch, tr.Mode())

	tap(tr, at(300*time.Millisecond)) // disarm, caps off
	require.Equal(t, Off, tr.Mode())

	// The next press follows quickly, but the disarming release must not
	// count toward a fresh double-tap: caps would flicker back on.
	eff := tr.OnPress(at(400 * time.Millisecond))
	assert.False(t, eff.Promoted)
	assert.Equal(t, OneShot, tr.Mode())
	assert.False(t, tr.CapsLock())
}

func TestConsumeOneShot(t *testing.T) {
	tr := NewTracker(Shift, window)
	tap(tr, t0)

	assert.True(t, tr.ConsumeOneShot())
	assert.Equal(t, Off, tr.Mode())
	assert.False(t, tr.ConsumeOneShot(), "already consumed")
}

func TestLatchIsNeverConsumed(t *testing.T) {
	tr := NewTracker(Ctrl, window)
	tap(tr, t0)
	tap(tr, at(100*time.Millisecond))
	require.Equal(t, Latch, tr.Mode())

	assert.False(t, tr.ConsumeOneShot())
	assert.Equal(t, Latch, tr.Mode())
}

func TestConsumedOneShotReleaseDoesNotQualify(t *testing.T) {
	tr := NewTracker(Shift, window)

	// Press, use the one-shot mid-hold, then release: the release comes
	// from an Off state and must not feed a later promotion.
	tr.OnPress(t0)
	tr.ConsumeOneShot()
	tr.OnRelease(at(50 * time.Millisecond))

	eff := tr.OnPress(at(100 * time.Millisecond))
	assert.False(t, eff.Promoted)
	assert.Equal(t, OneShot, tr.Mode())
}

func TestDisarmLatch(t *testing.T) {
	tr := NewTracker(Shift, window)
	tap(tr, t0)
	tap(tr, at(100*time.Millisecond))
	require.Equal(t, Latch, tr.Mode())

	assert.True(t, tr.DisarmLatch())
	assert.Equal(t, Off, tr.Mode())
	assert.False(t, tr.CapsLock())
	assert.False(t, tr.DisarmLatch(), "nothing left to disarm")
}

func TestLatchSourceTag(t *testing.T) {
	tr := NewTracker(Ctrl, window)
	tap(tr, t0)
	tap(tr, at(100*time.Millisecond))

	assert.Equal(t, SourceUser, tr.LatchSource())
	tr.SetLatchSource(SourceNav)
	assert.Equal(t, SourceNav, tr.LatchSource())

	// Disarming resets ownership.
	tr.DisarmLatch()
	assert.Equal(t, SourceUser, tr.LatchSource())
}

func TestAutoRepeatPressesIgnored(t *testing.T) {
	tr := NewTracker(Shift, window)

	eff := tr.OnPress(t0)
	require.True(t, eff.Changed)
	for i := 1; i <= 3; i++ {
		eff = tr.OnPress(at(time.Duration(i) * 30 * time.Millisecond))
		assert.Equal(t, Effect{}, eff)
	}
	assert.Equal(t, OneShot, tr.Mode())
}

func TestEffectiveActive(t *testing.T) {
	tr := NewTracker(Ctrl, window)

	assert.False(t, tr.EffectiveActive(false))
	assert.True(t, tr.EffectiveActive(true), "hardware flag alone activates")

	tr.OnPress(t0)
	assert.True(t, tr.EffectiveActive(false), "physically held")
	tr.OnRelease(at(10 * time.Millisecond))
	assert.True(t, tr.EffectiveActive(false), "one-shot armed")

	tr.ConsumeOneShot()
	assert.False(t, tr.EffectiveActive(false))
}

func TestDisplayState(t *testing.T) {
	tr := NewTracker(Shift, window)
	assert.Equal(t, types.DisplayOff, tr.DisplayState())

	tr.OnPress(t0)
	assert.Equal(t, types.DisplayPhysical, tr.DisplayState())
	tr.OnRelease(at(10 * time.Millisecond))
	assert.Equal(t, types.DisplayOneShot, tr.DisplayState())

	tr.OnPress(at(100 * time.Millisecond))
	tr.OnRelease(at(120 * time.Millisecond))
	assert.Equal(t, types.DisplayLatch, tr.DisplayState())
}
