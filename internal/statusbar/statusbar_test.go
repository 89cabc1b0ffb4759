// internal/statusbar/statusbar_test.go
package statusbar

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arlem/hardkey/internal/types"
)

func TestIndicatorText(t *testing.T) {
	cases := []struct {
		name string
		snap types.Snapshot
		want string
	}{
		{"all off", types.Snapshot{}, "--"},
		{"shift one-shot", types.Snapshot{Shift: types.DisplayOneShot}, "SHIFT:one-shot"},
		{"caps and latch", types.Snapshot{Shift: types.DisplayLatch, CapsLock: true}, "SHIFT:latch CAPS"},
		{"nav with ctrl latch", types.Snapshot{Ctrl: types.DisplayLatch, NavMode: true}, "CTRL:latch NAV"},
		{"symbol only", types.Snapshot{SymbolMode: true}, "SYM"},
		{
			"everything",
			types.Snapshot{
				Shift:      types.DisplayPhysical,
				Ctrl:       types.DisplayLatch,
				Alt:        types.DisplayOneShot,
				CapsLock:   true,
				SymbolMode: true,
				NavMode:    true,
			},
			"SHIFT:held CTRL:latch ALT:one-shot CAPS SYM NAV",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, indicatorText(tc.snap))
		})
	}
}

func TestDrawRendersIndicators(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	defer screen.Fini()
	screen.SetSize(40, 2)

	sb := New(DefaultConfig())
	sb.SetSnapshot(types.Snapshot{NavMode: true, Ctrl: types.DisplayLatch})
	sb.Draw(screen, 1, 40)
	screen.Show()

	cells, w, _ := screen.GetContents()
	var row []rune
	for x := 0; x < w; x++ {
		row = append(row, cells[w+x].Runes...)
	}
	assert.Contains(t, string(row), "CTRL:latch NAV")
}

func TestTemporaryMessageOverlay(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	defer screen.Fini()
	screen.SetSize(40, 1)

	sb := New(DefaultConfig())
	sb.SetTemporaryMessage("layout %s", "loaded")
	sb.Draw(screen, 0, 40)
	screen.Show()

	cells, w, _ := screen.GetContents()
	var row []rune
	for x := 0; x < w; x++ {
		row = append(row, cells[x].Runes...)
	}
	assert.Contains(t, string(row), "layout loaded")
}
