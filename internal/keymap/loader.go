// internal/keymap/loader.go
package keymap

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/arlem/hardkey/internal/keyev"
	"github.com/arlem/hardkey/internal/logger"
)

// tomlLayout represents the structure of a layout file. Tables are keyed by
// key name ("a", "enter", "right"); Ctrl values name either a command
// ("copy") or a synthetic key ("pageup").
type tomlLayout struct {
	Name     string              `toml:"name"`
	Alt      map[string]string   `toml:"alt"`
	Symbol   map[string]string   `toml:"symbol"`
	Ctrl     map[string]string   `toml:"ctrl"`
	MultiTap map[string][]string `toml:"multitap"`
}

// LoadLayoutFromFile parses a TOML layout file into a Layout. Unknown key
// names and unparseable entries are skipped with a warning, never fatal: the
// engine must run with whatever tables it is handed, partial tables
// included.
func LoadLayoutFromFile(filePath string) (*Layout, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read layout file '%s': %w", filePath, err)
	}

	var tl tomlLayout
	metadata, err := toml.Decode(string(data), &tl)
	if err != nil {
		return nil, fmt.Errorf("failed to parse TOML layout file '%s': %w", filePath, err)
	}
	if len(metadata.Undecoded()) > 0 {
		logger.Warnf("Layout file '%s': Unrecognized keys: %v", filePath, metadata.Undecoded())
	}

	layout := NewLayout()

	for name, out := range tl.Alt {
		code := keyev.CodeByName(name)
		if code == keyev.CodeNone {
			logger.Warnf("Layout '%s': unknown key name '%s' in [alt], skipping", filePath, name)
			continue
		}
		layout.Alt[code] = out
	}

	for name, out := range tl.Symbol {
		code := keyev.CodeByName(name)
		if code == keyev.CodeNone {
			logger.Warnf("Layout '%s': unknown key name '%s' in [symbol], skipping", filePath, name)
			continue
		}
		layout.Symbol[code] = out
	}

	for name, value := range tl.Ctrl {
		code := keyev.CodeByName(name)
		if code == keyev.CodeNone {
			logger.Warnf("Layout '%s': unknown key name '%s' in [ctrl], skipping", filePath, name)
			continue
		}
		binding, err := parseCtrlValue(value)
		if err != nil {
			logger.Warnf("Layout '%s': key '%s': %v, skipping", filePath, name, err)
			continue
		}
		layout.Ctrl[code] = binding
	}

	for name, variants := range tl.MultiTap {
		code := keyev.CodeByName(name)
		if code == keyev.CodeNone {
			logger.Warnf("Layout '%s': unknown key name '%s' in [multitap], skipping", filePath, name)
			continue
		}
		if len(variants) == 0 {
			continue
		}
		layout.MultiTap[code] = variants
	}

	logger.Debugf("Loaded layout '%s' from '%s' (alt=%d symbol=%d ctrl=%d multitap=%d)",
		tl.Name, filePath, len(layout.Alt), len(layout.Symbol), len(layout.Ctrl), len(layout.MultiTap))
	return layout, nil
}

// parseCtrlValue resolves a Ctrl-layer value: command names take precedence
// over key names, so "copy" is always the command even if a host defines a
// key of the same name.
func parseCtrlValue(value string) (CtrlBinding, error) {
	if cmd := CommandByName(value); cmd != CmdNone {
		return CtrlBinding{Command: cmd}, nil
	}
	if code := keyev.CodeByName(value); code != keyev.CodeNone {
		return CtrlBinding{Key: code}, nil
	}
	return CtrlBinding{}, fmt.Errorf("'%s' is neither a command nor a key name", value)
}
