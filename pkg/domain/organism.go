package domain

// Organism is a procedurally generated entity placed in a grid cell.
//
// The core never inspects an organism; it only asks it to render and to
// breed. Implementations must be pointer types so identity comparison with ==
// is well defined.
type Organism interface {
	// MutatedChild returns a new organism derived from the receiver. It never
	// fails, and changing the child never changes the parent.
	MutatedChild() Organism
	// Render draws the organism inside region. It returns false, leaving the
	// canvas untouched, when the organism does not fit or is structurally invalid.
	Render(c Canvas, region Rect) bool
}

// Generator constructs fresh random organisms.
type Generator interface {
	Random() Organism
}

// GeneratorFunc adapts a function to the Generator interface.
type GeneratorFunc func() Organism

// Random calls f.
func (f GeneratorFunc) Random() Organism { return f() }
