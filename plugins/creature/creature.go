// Package creature implements procedurally grown organisms: a four-word
// genome drives a turtle pen that buds segments from segments, up to four
// levels deep.
//
// Creatures only depend on the public contracts in pkg/domain.
package creature

import (
	"math/rand/v2"
	"time"

	"evolve/pkg/domain"
)

// Creature is a domain.Organism. Its genome is immutable.
type Creature struct {
	genes Genotype
	rng   *rand.Rand
}

// Genes returns the creature's genome.
func (c *Creature) Genes() Genotype { return c.genes }

// MutatedChild implements domain.Organism.
func (c *Creature) MutatedChild() domain.Organism {
	return &Creature{genes: c.genes.Mutated(c.rng), rng: c.rng}
}

// Render implements domain.Organism. The whole phenotype is laid out and
// checked first; the canvas is only touched once every segment fits.
func (c *Creature) Render(canvas domain.Canvas, region domain.Rect) bool {
	segs, ok := c.genes.grow(region)
	if !ok {
		return false
	}
	for _, s := range segs {
		s.draw(canvas)
	}
	return true
}

// Factory creates random creatures from one seeded source. It is a
// domain.Generator.
type Factory struct {
	rng *rand.Rand
}

// NewFactory seeds a factory. A zero seed picks one from the clock.
func NewFactory(seed uint64) *Factory {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &Factory{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Random implements domain.Generator.
func (f *Factory) Random() domain.Organism {
	return f.New(RandomGenotype(f.rng))
}

// New wraps an explicit genome.
func (f *Factory) New(g Genotype) *Creature {
	return &Creature{genes: g, rng: f.rng}
}
