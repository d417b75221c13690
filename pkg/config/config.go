package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gitlab.com/tinyland/lab/timebrush/pkg/data"
)

// Config is the top-level configuration.
type Config struct {
	General GeneralConfig `toml:"general"`
	Widget  WidgetConfig  `toml:"widget"`
	Data    DataConfig    `toml:"data"`
	Style   StyleConfig   `toml:"style"`
	Image   ImageConfig   `toml:"image"`
}

// GeneralConfig holds logging settings.
type GeneralConfig struct {
	LogLevel string `toml:"log_level"`
	LogFile  string `toml:"log_file"`
}

// WidgetConfig sizes and times the brushing widget.
type WidgetConfig struct {
	Width    float64  `toml:"width"`
	Height   float64  `toml:"height"`
	Debounce Duration `toml:"debounce"`
	// Location names the IANA zone for axis labels; "" or "Local" is the
	// system zone.
	Location string `toml:"location"`
}

// DataConfig describes where observations come from and how they are
// bucketed before reaching the widget.
type DataConfig struct {
	Path            string   `toml:"path"`
	Format          string   `toml:"format"`
	Bucket          string   `toml:"bucket"`
	Aggregate       string   `toml:"aggregate"`
	Retention       Duration `toml:"retention"`
	MaxPoints       int      `toml:"max_points"`
	RefreshInterval Duration `toml:"refresh_interval"`
}

// StyleConfig holds surface colors as hex strings. Preset selects a named
// palette; non-empty colors override it.
type StyleConfig struct {
	Preset       string  `toml:"preset"`
	Background   string  `toml:"background"`
	Bar          string  `toml:"bar"`
	Axis         string  `toml:"axis"`
	Text         string  `toml:"text"`
	Brush        string  `toml:"brush"`
	BrushOpacity float64 `toml:"brush_opacity"`
	Grip         string  `toml:"grip"`
}

// ImageConfig controls inline previews.
type ImageConfig struct {
	// Protocol is auto, kitty, iterm2, sixel, halfblocks or none.
	Protocol string `toml:"protocol"`
	// Cols and Rows bound the preview in cells; 0 uses the terminal size.
	Cols int `toml:"cols"`
	Rows int `toml:"rows"`
}

var validProtocols = map[string]bool{
	"auto": true, "kitty": true, "iterm2": true, "sixel": true, "halfblocks": true, "none": true,
}

var validLogLevels = map[string]bool{
	"debug": true, "info": true, "warn": true, "error": true,
}

// Validate reports every invalid setting.
func (c *Config) Validate() error {
	var errs []error
	if !validLogLevels[strings.ToLower(c.General.LogLevel)] {
		errs = append(errs, fmt.Errorf("general.log_level: unknown level %q", c.General.LogLevel))
	}
	if c.Widget.Width < 0 || c.Widget.Height < 0 {
		errs = append(errs, errors.New("widget: dimensions must not be negative"))
	}
	if _, err := c.Location(); err != nil {
		errs = append(errs, fmt.Errorf("widget.location: %w", err))
	}
	if c.Data.Format != "" {
		if _, err := data.ParseFormat(c.Data.Format); err != nil {
			errs = append(errs, fmt.Errorf("data.format: %w", err))
		}
	}
	if _, err := data.ParseInterval(c.Data.Bucket); err != nil {
		errs = append(errs, fmt.Errorf("data.bucket: %w", err))
	}
	if _, err := data.ParseAggregation(c.Data.Aggregate); err != nil {
		errs = append(errs, fmt.Errorf("data.aggregate: %w", err))
	}
	if c.Data.MaxPoints < 0 {
		errs = append(errs, errors.New("data.max_points: must not be negative"))
	}
	if _, ok := stylePresets[c.Style.Preset]; !ok {
		errs = append(errs, fmt.Errorf("style.preset: unknown preset %q", c.Style.Preset))
	}
	if c.Style.BrushOpacity < 0 || c.Style.BrushOpacity > 1 {
		errs = append(errs, fmt.Errorf("style.brush_opacity: %v not in [0, 1]", c.Style.BrushOpacity))
	}
	if !validProtocols[strings.ToLower(c.Image.Protocol)] {
		errs = append(errs, fmt.Errorf("image.protocol: unknown protocol %q", c.Image.Protocol))
	}
	return errors.Join(errs...)
}

// Location resolves Widget.Location.
func (c *Config) Location() (*time.Location, error) {
	switch c.Widget.Location {
	case "", "Local", "local":
		return time.Local, nil
	}
	return time.LoadLocation(c.Widget.Location)
}

// FeedConfig maps the data settings onto a live feed configuration.
func (c *Config) FeedConfig() data.FeedConfig {
	return data.FeedConfig{
		Retention: c.Data.Retention.Duration,
		MaxPoints: c.Data.MaxPoints,
	}
}

// ResolvedStyle returns the preset palette with explicit colors applied.
func (c *Config) ResolvedStyle() StyleConfig {
	s := StylePreset(c.Style.Preset)
	override := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	override(&s.Background, c.Style.Background)
	override(&s.Bar, c.Style.Bar)
	override(&s.Axis, c.Style.Axis)
	override(&s.Text, c.Style.Text)
	override(&s.Brush, c.Style.Brush)
	override(&s.Grip, c.Style.Grip)
	if c.Style.BrushOpacity > 0 {
		s.BrushOpacity = c.Style.BrushOpacity
	}
	return s
}
