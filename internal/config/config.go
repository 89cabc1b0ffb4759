// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/arlem/hardkey/internal/logger"
)

// Config holds the application's combined configuration.
type Config struct {
	Logger logger.Config `toml:"logger"` // Logger config under [logger] table
	Engine EngineConfig  `toml:"engine"` // Timing and behavior settings
	Keymap KeymapConfig  `toml:"keymap"` // Layout table location
}

// EngineConfig holds the timing knobs for the routing engine. Durations are
// expressed in milliseconds in the TOML file.
type EngineConfig struct {
	LongPressMs     int  `toml:"long_press_ms"`
	DoubleTapMs     int  `toml:"double_tap_ms"`
	MultiTapMs      int  `toml:"multi_tap_ms"`
	SystemClipboard bool `toml:"system_clipboard"`
}

// KeymapConfig holds layout-table settings.
type KeymapConfig struct {
	LayoutPath string `toml:"layout_path"` // Empty means the compiled-in default layout
}

var (
	loadedConfig *Config
	loadOnce     sync.Once
	loadErr      error
)

// NewDefaultConfig creates a Config struct with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Logger: logger.NewConfig(),
		Engine: EngineConfig{
			LongPressMs:     int(DefaultLongPressTimeout / time.Millisecond),
			DoubleTapMs:     int(DefaultDoubleTapWindow / time.Millisecond),
			MultiTapMs:      int(DefaultMultiTapWindow / time.Millisecond),
			SystemClipboard: SystemClipboard,
		},
	}
}

// LongPressTimeout returns the configured threshold clamped to the
// supported range.
func (e EngineConfig) LongPressTimeout() time.Duration {
	d := time.Duration(e.LongPressMs) * time.Millisecond
	if d < MinLongPressTimeout {
		return MinLongPressTimeout
	}
	if d > MaxLongPressTimeout {
		return MaxLongPressTimeout
	}
	return d
}

// DoubleTapWindow returns the configured modifier double-tap window.
func (e EngineConfig) DoubleTapWindow() time.Duration {
	return time.Duration(e.DoubleTapMs) * time.Millisecond
}

// MultiTapWindow returns the configured multi-tap repeat window.
func (e EngineConfig) MultiTapWindow() time.Duration {
	return time.Duration(e.MultiTapMs) * time.Millisecond
}

// loadFromFile merges settings from a TOML file over cfg. Decoding over the
// defaults-populated struct means only keys present in the file override
// anything; a missing file leaves cfg untouched.
func loadFromFile(filePath string, cfg *Config) error {
	_, err := os.Stat(filePath)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("error checking config file '%s': %w", filePath, err)
	}

	metadata, err := toml.DecodeFile(filePath, cfg)
	if err != nil {
		return fmt.Errorf("failed to parse config file '%s': %w", filePath, err)
	}
	if len(metadata.Undecoded()) > 0 {
		logger.Warnf("Config file '%s': Unrecognized keys: %v", filePath, metadata.Undecoded())
	}
	return nil
}

// validate checks config values and resets invalid ones to defaults.
func (c *Config) validate() {
	defaults := NewDefaultConfig()

	if c.Engine.LongPressMs <= 0 {
		c.Engine.LongPressMs = defaults.Engine.LongPressMs
	}
	if c.Engine.DoubleTapMs <= 0 {
		c.Engine.DoubleTapMs = defaults.Engine.DoubleTapMs
	}
	if c.Engine.MultiTapMs <= 0 {
		c.Engine.MultiTapMs = defaults.Engine.MultiTapMs
	}
	if c.Logger.LogLevel == "" {
		c.Logger.LogLevel = defaults.Logger.LogLevel
	}
}

// resolveLayoutPath fills in the conventional layout file beside the config
// file when no layout is configured and the file exists. An explicit
// setting, from file or flag, always wins.
func resolveLayoutPath(cfg *Config, baseDir string) {
	if cfg.Keymap.LayoutPath != "" || baseDir == "" {
		return
	}
	candidate := filepath.Join(baseDir, DefaultLayoutFileName)
	if _, err := os.Stat(candidate); err == nil {
		cfg.Keymap.LayoutPath = candidate
	}
}

// LoadConfig orchestrates loading defaults, file, applying flags, and
// validation. It should be called only once, typically from main.
func LoadConfig(configFilePath string, flags *Flags) (*Config, error) {
	loadOnce.Do(func() {
		cfg := NewDefaultConfig()

		var baseDir string
		if configDir, err := os.UserConfigDir(); err == nil {
			baseDir = filepath.Join(configDir, ConfigDirName)
		}

		effectivePath := configFilePath
		if effectivePath == "" && baseDir != "" {
			effectivePath = filepath.Join(baseDir, DefaultConfigFileName)
		}

		if effectivePath != "" {
			if err := loadFromFile(effectivePath, cfg); err != nil {
				loadErr = err
			}
		}

		if flags != nil {
			flags.ApplyOverrides(cfg)
		}
		resolveLayoutPath(cfg, baseDir)

		cfg.validate()
		loadedConfig = cfg
	})

	return loadedConfig, loadErr
}

// Get returns the loaded application configuration. Panics if LoadConfig
// wasn't called.
func Get() *Config {
	if loadedConfig == nil {
		panic("config.Get() called before config.LoadConfig()")
	}
	return loadedConfig
}
