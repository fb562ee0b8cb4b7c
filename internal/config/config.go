// Package config loads the trainer's configuration from a JSONC file,
// merged with built-in defaults and CLI overrides.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tailscale/hujson"
)

// Config holds all configuration options.
type Config struct {
	VocabFile    string `json:"vocab_file"`
	StateFile    string `json:"state_file"`
	LogFile      string `json:"log_file,omitempty"`
	ExportFile   string `json:"export_file,omitempty"`
	RowsPerSlide int    `json:"rows_per_slide,omitempty"`
}

// FileName is the default config file name, looked up in the working
// directory.
const FileName = ".vocab.json"

var (
	ErrConfigFileNotFound = errors.New("config file not found")
	errConfigInvalid      = errors.New("invalid config file")
	errVocabFileEmpty     = errors.New("vocab_file cannot be empty")
	errStateFileEmpty     = errors.New("state_file cannot be empty")
)

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		VocabFile:    "words.tsv",
		StateFile:    "flashcards_state.json",
		LogFile:      "vocab.log",
		ExportFile:   "words_deck.md",
		RowsPerSlide: 5,
	}
}

// Load resolves configuration with the following precedence (highest
// wins): defaults, project config file (.vocab.json if present, or the
// explicit configPath which then must exist), CLI overrides. Returns
// the resolved config and the path of the loaded file, if any.
func Load(workDir, configPath string, overrides Config) (Config, string, error) {
	cfg := Default()

	fileCfg, source, err := loadFile(workDir, configPath)
	if err != nil {
		return Config{}, "", err
	}

	cfg = merge(cfg, fileCfg)
	cfg = merge(cfg, overrides)

	validateErr := validate(cfg)
	if validateErr != nil {
		return Config{}, "", validateErr
	}

	return cfg, source, nil
}

func loadFile(workDir, configPath string) (Config, string, error) {
	var cfgFile string

	var mustExist bool

	if configPath != "" {
		cfgFile = configPath
		if !filepath.IsAbs(cfgFile) {
			cfgFile = filepath.Join(workDir, cfgFile)
		}

		mustExist = true
	} else {
		cfgFile = filepath.Join(workDir, FileName)
	}

	data, err := os.ReadFile(cfgFile) //nolint:gosec // path is intentionally user-controlled
	if err != nil {
		if mustExist {
			return Config{}, "", fmt.Errorf("%w: %s", ErrConfigFileNotFound, configPath)
		}

		return Config{}, "", nil
	}

	cfg, explicitEmpty, parseErr := parse(data)
	if parseErr != nil {
		return Config{}, "", fmt.Errorf("%w %s: %w", errConfigInvalid, cfgFile, parseErr)
	}

	if explicitEmpty["vocab_file"] {
		return Config{}, "", fmt.Errorf("%w %s: %w", errConfigInvalid, cfgFile, errVocabFileEmpty)
	}

	if explicitEmpty["state_file"] {
		return Config{}, "", fmt.Errorf("%w %s: %w", errConfigInvalid, cfgFile, errStateFileEmpty)
	}

	return cfg, cfgFile, nil
}

func parse(data []byte) (Config, map[string]bool, error) {
	// Standardize JSONC to JSON
	standardized, err := hujson.Standardize(data)
	if err != nil {
		return Config{}, nil, fmt.Errorf("invalid JSONC: %w", err)
	}

	var cfg Config

	unmarshalErr := json.Unmarshal(standardized, &cfg)
	if unmarshalErr != nil {
		return Config{}, nil, fmt.Errorf("invalid JSON: %w", unmarshalErr)
	}

	// Check which fields were explicitly set to empty
	var raw map[string]any

	_ = json.Unmarshal(standardized, &raw)

	explicitEmpty := make(map[string]bool)

	for _, field := range []string{"vocab_file", "state_file"} {
		if val, exists := raw[field]; exists {
			if str, ok := val.(string); ok && str == "" {
				explicitEmpty[field] = true
			}
		}
	}

	return cfg, explicitEmpty, nil
}

func merge(base, overlay Config) Config {
	if overlay.VocabFile != "" {
		base.VocabFile = overlay.VocabFile
	}

	if overlay.StateFile != "" {
		base.StateFile = overlay.StateFile
	}

	if overlay.LogFile != "" {
		base.LogFile = overlay.LogFile
	}

	if overlay.ExportFile != "" {
		base.ExportFile = overlay.ExportFile
	}

	if overlay.RowsPerSlide != 0 {
		base.RowsPerSlide = overlay.RowsPerSlide
	}

	return base
}

func validate(cfg Config) error {
	if cfg.VocabFile == "" {
		return errVocabFileEmpty
	}

	if cfg.StateFile == "" {
		return errStateFileEmpty
	}

	return nil
}
