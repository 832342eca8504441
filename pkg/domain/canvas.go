package domain

import "image/color"

// Canvas is the drawing surface the grid and its organisms paint on.
//
// Every call completes before the next begins; callers never draw
// concurrently. A nil fill colour means "outline only".
type Canvas interface {
	// Size reports the surface dimensions.
	Size() (width, height float64)
	// DrawRectangle outlines r with a border of the given width and optionally fills it.
	DrawRectangle(r Rect, borderWidth float64, border, fill color.Color)
	// DrawLine strokes a straight line of the given width.
	DrawLine(from, to Point, width float64, c color.Color)
	// DrawCircle strokes a circle outline and optionally fills it.
	DrawCircle(center Point, radius, width float64, stroke, fill color.Color)
	// DrawDot paints a filled disc.
	DrawDot(center Point, diameter float64, c color.Color)
	// WriteText draws text with its baseline starting at the given point.
	WriteText(at Point, text string, c color.Color)
	// SetAutoRefresh toggles whether draws become visible immediately.
	SetAutoRefresh(enabled bool)
	// Refresh publishes all pending draws.
	Refresh()
}
