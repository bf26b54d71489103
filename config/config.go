// Package config loads unitconverter settings from a TOML file with
// environment overrides.
//
// The category and unit schema is fixed and not configurable; this package
// only covers presentation, history backing, the optional display sink and
// logging.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
)

// maxPrecision is the largest decimal count accepted for result text.
const maxPrecision = 15

type Config struct {
	// Precision is the number of decimals in result text; -1 selects the
	// shortest representation that round-trips.
	Precision int `toml:"precision"`

	History HistoryConfig `toml:"history"`
	Display DisplayConfig `toml:"display"`
	Log     LogConfig     `toml:"log"`

	// envErrs holds environment values that could not be parsed; Validate
	// reports them.
	envErrs []error
}

type HistoryConfig struct {
	// Backend is "memory" or "sqlite". Both are discarded when the session ends.
	Backend string `toml:"backend"`
}

type DisplayConfig struct {
	// UDPAddr receives every accepted conversion when set.
	UDPAddr string `toml:"udp_addr"`
}

type LogConfig struct {
	Level string `toml:"level"`
	// File receives log output; empty discards it while the TUI owns the terminal.
	File string `toml:"file"`
}

func Default() *Config {
	return &Config{
		Precision: -1,
		History: HistoryConfig{
			Backend: BackendMemory,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// DefaultPath returns ~/.unitconverter/config.toml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".unitconverter", "config.toml"), nil
}

// Load reads path on top of the defaults. A missing file is not an error.
// Environment overrides are applied last, then the result is validated.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := LoadTOML(cfg, path); err != nil {
				return nil, err
			}
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("stat config: %w", err)
		}
	}
	cfg.ApplyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func LoadTOML(cfg *Config, path string) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return fmt.Errorf("unknown config keys in %s: %s", path, strings.Join(keys, ", "))
	}
	return nil
}

func (c *Config) ApplyEnvOverrides() {
	// UNITCONV_PRECISION
	if p := os.Getenv("UNITCONV_PRECISION"); p != "" {
		if n, err := strconv.Atoi(p); err == nil {
			c.Precision = n
		} else {
			c.envErrs = append(c.envErrs, fmt.Errorf("UNITCONV_PRECISION: %w", err))
		}
	}

	// UNITCONV_HISTORY_BACKEND
	if backend := os.Getenv("UNITCONV_HISTORY_BACKEND"); backend != "" {
		c.History.Backend = strings.ToLower(backend)
	}

	// UNITCONV_DISPLAY_ADDR
	if addr := os.Getenv("UNITCONV_DISPLAY_ADDR"); addr != "" {
		c.Display.UDPAddr = addr
	}

	// UNITCONV_LOG_LEVEL
	if level := os.Getenv("UNITCONV_LOG_LEVEL"); level != "" {
		c.Log.Level = level
	}

	// UNITCONV_LOG_FILE
	if file := os.Getenv("UNITCONV_LOG_FILE"); file != "" {
		c.Log.File = file
	}
}

func (c *Config) Validate() error {
	errs := append([]error(nil), c.envErrs...)
	if c.Precision < -1 || c.Precision > maxPrecision {
		errs = append(errs, fmt.Errorf("precision must be between -1 and %d, got %d", maxPrecision, c.Precision))
	}
	switch c.History.Backend {
	case BackendMemory, BackendSQLite:
	default:
		errs = append(errs, fmt.Errorf("history.backend must be %q or %q, got %q", BackendMemory, BackendSQLite, c.History.Backend))
	}
	if c.Display.UDPAddr != "" {
		if _, _, err := net.SplitHostPort(c.Display.UDPAddr); err != nil {
			errs = append(errs, fmt.Errorf("display.udp_addr: %w", err))
		}
	}
	if _, err := c.LogLevel(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func (c *Config) LogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return slog.LevelInfo, fmt.Errorf("log.level: %w", err)
	}
	return level, nil
}

// NewLogger builds the slog logger described by the log section. The
// returned closer releases the log file, if one was opened.
func (c *Config) NewLogger(fallback io.Writer) (*slog.Logger, io.Closer, error) {
	level, err := c.LogLevel()
	if err != nil {
		return nil, nil, err
	}
	var (
		w      = fallback
		closer io.Closer = nopCloser{}
	)
	if c.Log.File != "" {
		f, err := os.OpenFile(c.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		w, closer = f, f
	}
	if w == nil {
		w = io.Discard
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})), closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
