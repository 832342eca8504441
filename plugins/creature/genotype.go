package creature

import "math/rand/v2"

const (
	// ChromosomeCount bounds the depth of the segment tree.
	ChromosomeCount = 4
	// maxMutations is the upper bound of bit flips per generation.
	maxMutations = 2
)

// Genotype is the full genome of a creature.
type Genotype [ChromosomeCount]Chromosome

// RandomGenotype draws every chromosome uniformly. Each carries at least one
// branch so random creatures never terminate at the first chromosome.
func RandomGenotype(rng *rand.Rand) Genotype {
	var g Genotype
	for i := range g {
		g[i] = Chromosome(rng.Uint32()) | preventTerminated
	}
	return g
}

// Mutated returns a copy of g with one or two random single-bit flips.
func (g Genotype) Mutated(rng *rand.Rand) Genotype {
	child := g
	for range 1 + rng.IntN(maxMutations) {
		child[rng.IntN(ChromosomeCount)] ^= 1 << rng.IntN(32)
	}
	return child
}
