// cmd/hardkey/main.go
package main

import (
	stlog "log" // Standard log for fatal errors before the logger is ready
	"os"
	"path/filepath"

	"github.com/arlem/hardkey/internal/config"
	"github.com/arlem/hardkey/internal/keymap"
	"github.com/arlem/hardkey/internal/logger"
)

func main() {
	// --- Flag & config loading ---
	flags := &config.Flags{}
	flags.ParseFlags()

	cfg, err := config.LoadConfig(*flags.ConfigFilePath, flags)
	if err != nil {
		stlog.Fatalf("Failed to load configuration: %v", err)
	}

	// --- Logger initialization ---
	// Stderr is the screen once the terminal UI takes over, so an
	// unconfigured log lands in the config directory instead. "-" forces
	// stderr.
	logWriter := os.Stderr
	logPath := cfg.Logger.LogFilePath
	if logPath == "" {
		if configDir, err := os.UserConfigDir(); err == nil {
			logPath = filepath.Join(configDir, config.ConfigDirName, config.DefaultLogFileName)
		}
	}
	if logPath != "" && logPath != "-" {
		_ = os.MkdirAll(filepath.Dir(logPath), 0o755)
		logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil && cfg.Logger.LogFilePath != "" {
			stlog.Fatalf("Failed to open log file '%s': %v", logPath, err)
		}
		if err == nil {
			defer logFile.Close()
			logWriter = logFile
		}
	}
	logger.Init(cfg.Logger.Level(), logWriter)
	logger.Infof("Starting %s...", config.AppName)

	// --- Layout tables ---
	layout := keymap.DefaultLayout()
	if cfg.Keymap.LayoutPath != "" {
		loaded, err := keymap.LoadLayoutFromFile(cfg.Keymap.LayoutPath)
		if err != nil {
			logger.Warnf("Failed to load layout '%s', using default: %v", cfg.Keymap.LayoutPath, err)
		} else {
			layout = loaded
		}
	}

	// --- Create and run the harness ---
	app, err := newApp(cfg, layout)
	if err != nil {
		logger.Errorf("Error initializing application: %v", err)
		os.Exit(1)
	}

	if err := app.Run(); err != nil {
		logger.Errorf("Application exited with error: %v", err)
		os.Exit(1)
	}

	logger.Infof("%s finished.", config.AppName)
}
