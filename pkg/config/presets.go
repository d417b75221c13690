package config

import "sort"

// stylePresets are the built-in palettes. Grips default to lightgray in
// every palette.
var stylePresets = map[string]StyleConfig{
	"default": {
		Preset:       "default",
		Background:   "#ffffff",
		Bar:          "#4682b4",
		Axis:         "#333333",
		Text:         "#333333",
		Brush:        "#777777",
		BrushOpacity: 0.3,
		Grip:         "#d3d3d3",
	},
	"dark": {
		Preset:       "dark",
		Background:   "#1e1e2e",
		Bar:          "#89b4fa",
		Axis:         "#a6adc8",
		Text:         "#cdd6f4",
		Brush:        "#f5e0dc",
		BrushOpacity: 0.25,
		Grip:         "#d3d3d3",
	},
	"mono": {
		Preset:       "mono",
		Background:   "#ffffff",
		Bar:          "#000000",
		Axis:         "#000000",
		Text:         "#000000",
		Brush:        "#000000",
		BrushOpacity: 0.15,
		Grip:         "#d3d3d3",
	},
}

// StylePreset returns the palette for a named preset. If the name is not
// recognized, the "default" palette is returned.
func StylePreset(name string) StyleConfig {
	if s, ok := stylePresets[name]; ok {
		return s
	}
	return stylePresets["default"]
}

// StylePresetNames lists the built-in palettes in sorted order.
func StylePresetNames() []string {
	names := make([]string, 0, len(stylePresets))
	for name := range stylePresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
