package main

import (
	"gitlab.com/tinyland/lab/timebrush/pkg/components"
	"gitlab.com/tinyland/lab/timebrush/pkg/config"
	"gitlab.com/tinyland/lab/timebrush/pkg/render"
)

// renderStyle maps configured colors onto the SVG/PNG surfaces.
func renderStyle(sc config.StyleConfig) render.Style {
	st := render.DefaultStyle()
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&st.Background, sc.Background)
	set(&st.Bar, sc.Bar)
	set(&st.Axis, sc.Axis)
	set(&st.Text, sc.Text)
	set(&st.Brush, sc.Brush)
	set(&st.Grip, sc.Grip)
	if sc.BrushOpacity > 0 {
		st.BrushOpacity = sc.BrushOpacity
	}
	return st
}

// sceneStyle maps configured colors onto terminal cells. The terminal
// background stays untouched.
func sceneStyle(sc config.StyleConfig, p components.Palette) components.SceneStyle {
	st := components.DefaultSceneStyle()
	st.Palette = p
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&st.Bar, sc.Bar)
	set(&st.Brush, sc.Brush)
	set(&st.Grip, sc.Grip)
	set(&st.Axis, sc.Axis)
	return st
}
