package config

import "time"

// Base application details
const AppName = "hardkey"
const ConfigDirName = "hardkey"
const DefaultConfigFileName = "config.toml"
const DefaultLayoutFileName = "layout.toml"
const DefaultLogFileName = "hardkey.log"

// Input timing behavior. The long-press threshold is configurable but
// clamped; the windows default to the values the engine was tuned with.
const (
	DefaultLongPressTimeout = 500 * time.Millisecond
	MinLongPressTimeout     = 50 * time.Millisecond
	MaxLongPressTimeout     = 1000 * time.Millisecond

	DefaultDoubleTapWindow = 500 * time.Millisecond
	DefaultMultiTapWindow  = 800 * time.Millisecond
)

// Clipboard
const SystemClipboard = true
