package creature

import (
	"math"

	"evolve/pkg/domain"
)

// pen is a turtle position: a point, a heading in degrees (90 is up) and the
// side branches turn towards.
type pen struct {
	at      domain.Point
	heading float64
	right   bool
}

func (p pen) forward(d float64) pen {
	rad := p.heading * math.Pi / 180
	p.at = domain.Point{X: p.at.X + d*math.Cos(rad), Y: p.at.Y + d*math.Sin(rad)}
	return p
}

// turn rotates towards the pen's handedness: clockwise when right-handed.
func (p pen) turn(degrees float64) pen {
	if p.right {
		p.heading -= degrees
	} else {
		p.heading += degrees
	}
	return p
}
