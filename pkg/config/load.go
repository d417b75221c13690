package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
)

// appName is the directory under the XDG config home.
const appName = "timebrush"

// Load reads configuration from the standard config path.
// Search order:
//  1. $XDG_CONFIG_HOME/timebrush/config.toml
//  2. ~/.config/timebrush/config.toml
//
// If no file exists, returns DefaultConfig() with environment overrides
// applied.
func Load() (*Config, error) {
	for _, p := range configSearchPaths() {
		if _, err := os.Stat(p); err == nil {
			return LoadFromFile(p)
		}
	}
	cfg := DefaultConfig()
	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFromFile reads configuration from a specific file path. A missing
// file yields the defaults.
func LoadFromFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg := DefaultConfig()
			if err := applyEnvOverrides(cfg); err != nil {
				return nil, err
			}
			return cfg, nil
		}
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	cfg, err := LoadFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// LoadFromReader decodes TOML over the defaults and applies environment
// overrides.
func LoadFromReader(r io.Reader) (*Config, error) {
	cfg := DefaultConfig()
	md, err := toml.NewDecoder(r).Decode(cfg)
	if err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("decode config: unknown key %q", undecoded[0].String())
	}
	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		General: GeneralConfig{
			LogLevel: "info",
		},
		Widget: WidgetConfig{
			Width:    500,
			Height:   500,
			Debounce: Duration{1000 * time.Millisecond},
		},
		Data: DataConfig{
			Bucket:          "none",
			Aggregate:       "sum",
			Retention:       Duration{24 * time.Hour},
			MaxPoints:       10000,
			RefreshInterval: Duration{5 * time.Second},
		},
		Style: StyleConfig{
			Preset: "default",
		},
		Image: ImageConfig{
			Protocol: "auto",
		},
	}
}

// applyEnvOverrides checks TIMEBRUSH_* environment variables and overrides
// config values.
func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("TIMEBRUSH_DATA"); v != "" {
		cfg.Data.Path = v
	}
	if v := os.Getenv("TIMEBRUSH_BUCKET"); v != "" {
		cfg.Data.Bucket = v
	}
	if v := os.Getenv("TIMEBRUSH_PROTOCOL"); v != "" {
		cfg.Image.Protocol = v
	}
	if v := os.Getenv("TIMEBRUSH_STYLE"); v != "" {
		cfg.Style.Preset = v
	}
	if v := os.Getenv("TIMEBRUSH_LOG_LEVEL"); v != "" {
		cfg.General.LogLevel = v
	}
	if v := os.Getenv("TIMEBRUSH_DEBOUNCE"); v != "" {
		var d Duration
		if err := d.UnmarshalText([]byte(v)); err != nil {
			return fmt.Errorf("TIMEBRUSH_DEBOUNCE: %w", err)
		}
		cfg.Widget.Debounce = d
	}
	if v := os.Getenv("TIMEBRUSH_WIDTH"); v != "" {
		w, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("TIMEBRUSH_WIDTH: %w", err)
		}
		cfg.Widget.Width = w
	}
	return nil
}

// configSearchPaths returns the ordered list of config file paths to try.
func configSearchPaths() []string {
	home, _ := os.UserHomeDir()
	var paths []string

	xdg := xdgConfigHome(home)
	paths = append(paths, filepath.Join(xdg, appName, "config.toml"))

	// If XDG_CONFIG_HOME was explicitly set, also try the fallback default.
	defaultXDG := filepath.Join(home, ".config")
	if xdg != defaultXDG {
		paths = append(paths, filepath.Join(defaultXDG, appName, "config.toml"))
	}

	return paths
}

// xdgConfigHome returns XDG_CONFIG_HOME or ~/.config as fallback.
func xdgConfigHome(home string) string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return v
	}
	return filepath.Join(home, ".config")
}
