// internal/config/config_test.go
package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngineConfigClampsLongPress(t *testing.T) {
	cases := []struct {
		name string
		ms   int
		want time.Duration
	}{
		{"default range", 500, 500 * time.Millisecond},
		{"below minimum", 10, MinLongPressTimeout},
		{"at minimum", 50, MinLongPressTimeout},
		{"above maximum", 5000, MaxLongPressTimeout},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := EngineConfig{LongPressMs: tc.ms}
			assert.Equal(t, tc.want, e.LongPressTimeout())
		})
	}
}

func TestValidateResetsNonPositiveTimings(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Engine.LongPressMs = 0
	cfg.Engine.DoubleTapMs = -100
	cfg.Engine.MultiTapMs = 0

	cfg.validate()

	assert.Equal(t, DefaultLongPressTimeout, cfg.Engine.LongPressTimeout())
	assert.Equal(t, DefaultDoubleTapWindow, cfg.Engine.DoubleTapWindow())
	assert.Equal(t, DefaultMultiTapWindow, cfg.Engine.MultiTapWindow())
}

func TestLoadFromFileMergesOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[engine]\nlong_press_ms = 300\n"), 0o644))

	cfg := NewDefaultConfig()
	require.NoError(t, loadFromFile(path, cfg))

	assert.Equal(t, 300*time.Millisecond, cfg.Engine.LongPressTimeout())
	assert.True(t, cfg.Engine.SystemClipboard, "keys absent from the file keep their defaults")
	assert.Equal(t, DefaultDoubleTapWindow, cfg.Engine.DoubleTapWindow())
}

func TestLoadFromFileMissingFileKeepsDefaults(t *testing.T) {
	cfg := NewDefaultConfig()
	require.NoError(t, loadFromFile(filepath.Join(t.TempDir(), "nope.toml"), cfg))
	assert.Equal(t, NewDefaultConfig(), cfg)
}

func TestLoadFromFileBadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[engine"), 0o644))
	assert.Error(t, loadFromFile(path, NewDefaultConfig()))
}

func TestResolveLayoutPathFindsConventionalFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, DefaultLayoutFileName)
	require.NoError(t, os.WriteFile(path, []byte("[alt]\n"), 0o644))

	cfg := NewDefaultConfig()
	resolveLayoutPath(cfg, dir)
	assert.Equal(t, path, cfg.Keymap.LayoutPath)
}

func TestResolveLayoutPathKeepsExplicitSetting(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, DefaultLayoutFileName), []byte("[alt]\n"), 0o644))

	cfg := NewDefaultConfig()
	cfg.Keymap.LayoutPath = "custom.toml"
	resolveLayoutPath(cfg, dir)
	assert.Equal(t, "custom.toml", cfg.Keymap.LayoutPath)
}

func TestResolveLayoutPathWithoutFileLeavesDefault(t *testing.T) {
	cfg := NewDefaultConfig()
	resolveLayoutPath(cfg, t.TempDir())
	assert.Empty(t, cfg.Keymap.LayoutPath, "absent file keeps the compiled-in layout")
}

func TestDefaultConfigValues(t *testing.T) {
	cfg := NewDefaultConfig()

	assert.Equal(t, DefaultLongPressTimeout, cfg.Engine.LongPressTimeout())
	assert.Equal(t, DefaultDoubleTapWindow, cfg.Engine.DoubleTapWindow())
	assert.Equal(t, DefaultMultiTapWindow, cfg.Engine.MultiTapWindow())
	assert.True(t, cfg.Engine.SystemClipboard)
}
