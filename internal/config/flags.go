// internal/config/flags.go
package config

import (
	"flag"
	"fmt"
)

// Flags holds values parsed from command-line flags.
// Pointers distinguish unset flags from zero-value flags.
type Flags struct {
	ConfigFilePath *string
	LayoutPath     *string
	LogLevel       *string
	LogFilePath    *string
	LongPressMs    *int
	DoubleTapMs    *int
	MultiTapMs     *int
	SystemClip     *bool
}

// DefineFlags sets up the command-line flags.
func (f *Flags) DefineFlags() {
	f.ConfigFilePath = flag.String("config", "", fmt.Sprintf("Path to TOML configuration file (default ~/.config/%s/%s)", ConfigDirName, DefaultConfigFileName))
	f.LayoutPath = flag.String("layout", "", "Path to TOML layout tables - Overrides config file")
	f.LogLevel = flag.String("loglevel", "", "Log level (debug, info, warn, error) - Overrides config file")
	f.LogFilePath = flag.String("logfile", "", "Path to write log file (use '-' for stderr) - Overrides config file")
	f.LongPressMs = flag.Int("longpress", 0, "Long-press threshold in ms - Overrides config file")
	f.DoubleTapMs = flag.Int("doubletap", 0, "Modifier double-tap window in ms - Overrides config file")
	f.MultiTapMs = flag.Int("multitap", 0, "Multi-tap repeat window in ms - Overrides config file")
	f.SystemClip = flag.Bool("system-clipboard", true, "Use the system clipboard for copy/cut/paste")
}

// ParseFlags parses the defined command-line flags.
// It returns the remaining non-flag arguments.
func (f *Flags) ParseFlags() []string {
	f.DefineFlags()
	flag.Parse()
	return flag.Args()
}

// ApplyOverrides updates the Config struct with values from flags *if*
// they were set.
func (f *Flags) ApplyOverrides(cfg *Config) {
	flag.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "layout":
			if f.LayoutPath != nil && *f.LayoutPath != "" {
				cfg.Keymap.LayoutPath = *f.LayoutPath
			}
		case "loglevel":
			if f.LogLevel != nil && *f.LogLevel != "" {
				cfg.Logger.LogLevel = *f.LogLevel
			}
		case "logfile":
			if f.LogFilePath != nil {
				cfg.Logger.LogFilePath = *f.LogFilePath
			}
		case "longpress":
			if f.LongPressMs != nil && *f.LongPressMs > 0 {
				cfg.Engine.LongPressMs = *f.LongPressMs
			}
		case "doubletap":
			if f.DoubleTapMs != nil && *f.DoubleTapMs > 0 {
				cfg.Engine.DoubleTapMs = *f.DoubleTapMs
			}
		case "multitap":
			if f.MultiTapMs != nil && *f.MultiTapMs > 0 {
				cfg.Engine.MultiTapMs = *f.MultiTapMs
			}
		case "system-clipboard":
			if f.SystemClip != nil {
				cfg.Engine.SystemClipboard = *f.SystemClip
			}
		}
	})
}
