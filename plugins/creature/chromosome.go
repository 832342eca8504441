package creature

import "image/color"

// Chromosome is one 32-bit gene word. Its bit fields describe a segment shape
// and how the next chromosome's segments bud from its end.
type Chromosome uint32

// Gene layout.
const (
	branchAngleMask   = 0x0000003F
	lengthMask        = 0x000007C0
	lengthShift       = 6
	symmetryMask      = 0x00003000
	symmetryShift     = 12
	branchCountMask   = 0x00030000
	branchCountShift  = 16
	shapeMask         = 0x000C0000
	shapeShift        = 18
	lineWidthMask     = 0x00300000
	lineWidthShift    = 20
	lineColorMask     = 0x07000000
	lineColorShift    = 24
	fillColorMask     = 0x70000000
	fillColorShift    = 28
	preventTerminated = 0x00010000
)

// Symmetry selects how branches are laid out.
type Symmetry uint8

const (
	// SymmetryStraight chains branches one after another along the heading.
	SymmetryStraight Symmetry = iota
	// SymmetrySameHanded fans branches to the side the parent turned to.
	SymmetrySameHanded
	// SymmetryOppositeHanded fans branches to the other side.
	SymmetryOppositeHanded
	// SymmetryBilateral fans branches to both sides.
	SymmetryBilateral
)

// Shape is the primitive a segment draws.
type Shape uint8

const (
	ShapeLine Shape = iota
	ShapeDot
	ShapeCircle
	ShapeFilledCircle
)

// palette is indexed by the three-bit colour genes.
var palette = [8]color.RGBA{
	{R: 0xa5, G: 0x2a, B: 0x2a, A: 0xff}, // brown
	{R: 0xff, A: 0xff},                   // red
	{R: 0xff, G: 0xa5, A: 0xff},          // orange
	{R: 0xff, G: 0xff, A: 0xff},          // yellow
	{G: 0xff, A: 0xff},                   // green
	{B: 0xff, A: 0xff},                   // blue
	{R: 0xa0, G: 0x20, B: 0xf0, A: 0xff}, // purple
	{R: 0xff, G: 0xff, B: 0xff, A: 0xff}, // white
}

// BranchAngle is the turn, in degrees, between successive branches.
func (c Chromosome) BranchAngle() float64 { return float64(c & branchAngleMask) }

// Length is the line length or the dot/circle diameter in pixels.
func (c Chromosome) Length() int { return int(c&lengthMask) >> lengthShift }

// Symmetry decodes the branch layout.
func (c Chromosome) Symmetry() Symmetry { return Symmetry((c & symmetryMask) >> symmetryShift) }

// BranchCount is the number of branches per side. Zero terminates growth.
func (c Chromosome) BranchCount() int { return int(c&branchCountMask) >> branchCountShift }

// Terminated reports whether growth stops at this chromosome.
func (c Chromosome) Terminated() bool { return c.BranchCount() == 0 }

// Shape decodes the drawn primitive.
func (c Chromosome) Shape() Shape { return Shape((c & shapeMask) >> shapeShift) }

// LineWidth is the stroke width, 1..4 pixels: one plus the shifted field, so
// the zero field still strokes a visible line.
func (c Chromosome) LineWidth() float64 { return 1 + float64((c&lineWidthMask)>>lineWidthShift) }

// LineColor is the stroke colour.
func (c Chromosome) LineColor() color.RGBA { return palette[(c&lineColorMask)>>lineColorShift] }

// FillColor is the fill colour of filled circles.
func (c Chromosome) FillColor() color.RGBA { return palette[(c&fillColorMask)>>fillColorShift] }

// radius is half the length, truncated.
func (c Chromosome) radius() float64 { return float64(c.Length() >> 1) }
