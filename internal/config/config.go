// Package config loads yomiscan settings from TOML files and
// environment variables.
//
// Settings merge in increasing precedence: built-in defaults, the
// config file, then YOMISCAN_-prefixed environment variables. Command
// line flags are applied last by the caller.
package config

import (
	"bytes"
	"fmt"
	"os"
	"strconv"

	"github.com/pelletier/go-toml/v2"
)

// ScanConfig controls how text is extracted from a document.
type ScanConfig struct {
	// Length is the default number of characters to scan when no
	// length is given on the command line. Zero means scan to the
	// end of the document.
	Length int `toml:"length"`

	// PreserveWhitespace disables whitespace collapsing for every
	// node, regardless of computed white-space values.
	PreserveWhitespace bool `toml:"preserve_whitespace"`

	// LayoutContent controls whether newlines implied by layout
	// (block boundaries, <br>, out-of-flow elements) appear in the
	// extracted text.
	LayoutContent bool `toml:"layout_content"`

	// MaxGraphemes truncates the extracted text to at most this many
	// grapheme clusters. Zero means no limit.
	MaxGraphemes int `toml:"max_graphemes"`
}

// WatchConfig controls watch mode.
type WatchConfig struct {
	// DebounceMS is how long to wait after a file change before
	// re-extracting, in milliseconds.
	DebounceMS int `toml:"debounce_ms"`
}

// Config is the full yomiscan configuration.
type Config struct {
	Scan  ScanConfig  `toml:"scan"`
	Watch WatchConfig `toml:"watch"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Scan: ScanConfig{
			LayoutContent: true,
		},
		Watch: WatchConfig{
			DebounceMS: 100,
		},
	}
}

// Load reads the configuration file at path on top of the defaults.
// A missing file is not an error; the defaults are returned.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config file %s: %w", path, err)
	}

	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return cfg, &ParseError{Path: path, Err: err}
	}

	return cfg, nil
}

// envVars maps environment variable names to config fields.
// Kept here so ApplyEnv and documentation stay in sync.
const (
	envLength             = "YOMISCAN_LENGTH"
	envPreserveWhitespace = "YOMISCAN_PRESERVE_WHITESPACE"
	envLayoutContent      = "YOMISCAN_LAYOUT_CONTENT"
	envMaxGraphemes       = "YOMISCAN_MAX_GRAPHEMES"
	envWatchDebounceMS    = "YOMISCAN_WATCH_DEBOUNCE_MS"
)

// ApplyEnv overrides cfg from environment variables. The lookup
// function is os.LookupEnv in production and a map lookup in tests.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(envLength); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parsing %s: %w", envLength, err)
		}
		c.Scan.Length = n
	}
	if v, ok := lookup(envPreserveWhitespace); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("parsing %s: %w", envPreserveWhitespace, err)
		}
		c.Scan.PreserveWhitespace = b
	}
	if v, ok := lookup(envLayoutContent); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("parsing %s: %w", envLayoutContent, err)
		}
		c.Scan.LayoutContent = b
	}
	if v, ok := lookup(envMaxGraphemes); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parsing %s: %w", envMaxGraphemes, err)
		}
		c.Scan.MaxGraphemes = n
	}
	if v, ok := lookup(envWatchDebounceMS); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parsing %s: %w", envWatchDebounceMS, err)
		}
		c.Watch.DebounceMS = n
	}
	return nil
}
