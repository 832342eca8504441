// Package canvas implements domain.Canvas over an in-memory RGBA image.
//
// Callers draw in bottom-left, y-up coordinates; the raster stores rows
// top-down, so every shape is flipped on the way in. Draws land on a back
// buffer and become visible in Frame on Refresh, or immediately while auto
// refresh is on.
package canvas

import (
	"image"
	"image/color"
	"image/draw"
	"math"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"evolve/pkg/domain"
)

// circleSegments is the polygon resolution used for discs and rings.
const circleSegments = 48

// Raster is a double-buffered domain.Canvas.
type Raster struct {
	mu    sync.Mutex
	back  *image.RGBA
	front *image.RGBA
	auto  bool
	face  font.Face
	// version counts refreshes so viewers can skip unchanged frames.
	version uint64
}

// NewRaster allocates a width x height canvas with auto refresh enabled.
func NewRaster(width, height int) *Raster {
	bounds := image.Rect(0, 0, width, height)
	return &Raster{
		back:  image.NewRGBA(bounds),
		front: image.NewRGBA(bounds),
		auto:  true,
		face:  basicfont.Face7x13,
	}
}

// Size implements domain.Canvas.
func (r *Raster) Size() (float64, float64) {
	b := r.back.Bounds()
	return float64(b.Dx()), float64(b.Dy())
}

// Frame returns a copy of the last published frame.
func (r *Raster) Frame() *image.RGBA {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := image.NewRGBA(r.front.Bounds())
	copy(out.Pix, r.front.Pix)
	return out
}

// SetAutoRefresh implements domain.Canvas. Re-enabling publishes pending draws.
func (r *Raster) SetAutoRefresh(enabled bool) {
	r.mu.Lock()
	r.auto = enabled
	r.mu.Unlock()
	if enabled {
		r.Refresh()
	}
}

// Refresh implements domain.Canvas.
func (r *Raster) Refresh() {
	r.mu.Lock()
	copy(r.front.Pix, r.back.Pix)
	r.version++
	r.mu.Unlock()
}

// Version returns the number of frames published so far.
func (r *Raster) Version() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.version
}

func (r *Raster) drawn() {
	r.mu.Lock()
	auto := r.auto
	r.mu.Unlock()
	if auto {
		r.Refresh()
	}
}

// DrawRectangle implements domain.Canvas. The border is painted inside r.
func (r *Raster) DrawRectangle(rect domain.Rect, borderWidth float64, border, fill color.Color) {
	outer := r.pixelRect(rect)
	if fill != nil {
		draw.Draw(r.back, outer, image.NewUniform(fill), image.Point{}, draw.Over)
	}
	if border != nil && borderWidth > 0 {
		bw := int(math.Round(borderWidth))
		src := image.NewUniform(border)
		for _, band := range []image.Rectangle{
			image.Rect(outer.Min.X, outer.Min.Y, outer.Max.X, outer.Min.Y+bw),
			image.Rect(outer.Min.X, outer.Max.Y-bw, outer.Max.X, outer.Max.Y),
			image.Rect(outer.Min.X, outer.Min.Y, outer.Min.X+bw, outer.Max.Y),
			image.Rect(outer.Max.X-bw, outer.Min.Y, outer.Max.X, outer.Max.Y),
		} {
			draw.Draw(r.back, band.Intersect(outer), src, image.Point{}, draw.Over)
		}
	}
	r.drawn()
}

// DrawLine implements domain.Canvas. Lines are stroked as quads so any width
// is honoured; widths below one pixel draw a hairline.
func (r *Raster) DrawLine(from, to domain.Point, width float64, c color.Color) {
	if c == nil {
		return
	}
	width = math.Max(width, 1)
	dx, dy := to.X-from.X, to.Y-from.Y
	length := math.Hypot(dx, dy)
	if length == 0 {
		r.DrawDot(from, width, c)
		return
	}
	nx, ny := -dy/length*width/2, dx/length*width/2
	r.fill(c, [][]domain.Point{{
		{X: from.X + nx, Y: from.Y + ny},
		{X: to.X + nx, Y: to.Y + ny},
		{X: to.X - nx, Y: to.Y - ny},
		{X: from.X - nx, Y: from.Y - ny},
	}})
	r.drawn()
}

// DrawCircle implements domain.Canvas.
func (r *Raster) DrawCircle(center domain.Point, radius, width float64, stroke, fill color.Color) {
	if radius <= 0 {
		return
	}
	if fill != nil {
		r.fill(fill, [][]domain.Point{circlePath(center, radius, false)})
	}
	if stroke != nil {
		width = math.Max(width, 1)
		inner := math.Max(radius-width, 0)
		r.fill(stroke, [][]domain.Point{
			circlePath(center, radius, false),
			circlePath(center, inner, true),
		})
	}
	r.drawn()
}

// DrawDot implements domain.Canvas.
func (r *Raster) DrawDot(center domain.Point, diameter float64, c color.Color) {
	if c == nil || diameter <= 0 {
		return
	}
	r.fill(c, [][]domain.Point{circlePath(center, diameter/2, false)})
	r.drawn()
}

// WriteText implements domain.Canvas using the 7x13 bitmap face.
func (r *Raster) WriteText(at domain.Point, text string, c color.Color) {
	if c == nil || text == "" {
		return
	}
	p := r.toPixel(at)
	d := &font.Drawer{
		Dst:  r.back,
		Src:  image.NewUniform(c),
		Face: r.face,
		Dot:  fixed.Point26_6{X: fixed.I(int(math.Round(p.X))), Y: fixed.I(int(math.Round(p.Y)))},
	}
	d.DrawString(text)
	r.drawn()
}

// toPixel flips a y-up point into raster space.
func (r *Raster) toPixel(p domain.Point) domain.Point {
	return domain.Point{X: p.X, Y: float64(r.back.Bounds().Dy()) - p.Y}
}

func (r *Raster) pixelRect(rect domain.Rect) image.Rectangle {
	h := float64(r.back.Bounds().Dy())
	return image.Rect(
		int(math.Round(rect.Left)),
		int(math.Round(h-rect.Top())),
		int(math.Round(rect.Right())),
		int(math.Round(h-rect.Bottom)),
	).Intersect(r.back.Bounds())
}

// fill rasterises the closed paths with the non-zero rule; opposite winding
// cuts holes.
func (r *Raster) fill(c color.Color, paths [][]domain.Point) {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, path := range paths {
		for _, p := range path {
			q := r.toPixel(p)
			minX, maxX = math.Min(minX, q.X), math.Max(maxX, q.X)
			minY, maxY = math.Min(minY, q.Y), math.Max(maxY, q.Y)
		}
	}
	box := image.Rect(int(math.Floor(minX)), int(math.Floor(minY)), int(math.Ceil(maxX)), int(math.Ceil(maxY))).
		Intersect(r.back.Bounds())
	if box.Empty() {
		return
	}
	z := vector.NewRasterizer(box.Dx(), box.Dy())
	ox, oy := float64(box.Min.X), float64(box.Min.Y)
	for _, path := range paths {
		for i, p := range path {
			q := r.toPixel(p)
			x, y := float32(q.X-ox), float32(q.Y-oy)
			if i == 0 {
				z.MoveTo(x, y)
			} else {
				z.LineTo(x, y)
			}
		}
		z.ClosePath()
	}
	z.Draw(r.back, box, image.NewUniform(c), image.Point{})
}

func circlePath(center domain.Point, radius float64, reverse bool) []domain.Point {
	pts := make([]domain.Point, circleSegments)
	for i := range pts {
		a := 2 * math.Pi * float64(i) / circleSegments
		if reverse {
			a = -a
		}
		pts[i] = domain.Point{X: center.X + radius*math.Cos(a), Y: center.Y + radius*math.Sin(a)}
	}
	return pts
}
