package creature

import "evolve/pkg/domain"

// maxSegmentsPerChromosome caps the phenotype; a chromosome that would emit
// more segments kills the creature.
const maxSegmentsPerChromosome = 32

// segment is one shape placed by chromosome gene, starting at start.
type segment struct {
	gene  Chromosome
	start pen
}

// buds returns the start positions of the segments this chromosome grows from
// the end of a parent segment.
func (c Chromosome) buds(from pen) []pen {
	if c.Terminated() {
		return nil
	}
	n := c.BranchCount()
	var out []pen
	sym := c.Symmetry()
	if sym == SymmetryStraight {
		p := from
		for range n {
			out = append(out, p)
			p = p.forward(float64(c.Length()))
		}
		return out
	}
	if sym&SymmetrySameHanded != 0 {
		p := from
		for range n {
			p = p.turn(c.BranchAngle())
			out = append(out, p)
		}
	}
	if sym&SymmetryOppositeHanded != 0 {
		p := from
		p.right = !p.right
		for range n {
			p = p.turn(c.BranchAngle())
			out = append(out, p)
		}
	}
	return out
}

// trace walks one segment from start and reports where it ends and whether it
// stays strictly inside region. Dots and circles test their centre against the
// region shrunk by their radius.
func (c Chromosome) trace(start pen, region domain.Rect) (pen, bool) {
	if c.Shape() == ShapeLine {
		end := start.forward(float64(c.Length()))
		return end, region.ContainsStrict(end.at)
	}
	r := c.radius()
	centre := start.forward(r)
	if !region.Inset(r).ContainsStrict(centre.at) {
		return centre, false
	}
	return centre.forward(r), true
}

// grow lays out the phenotype inside region. It fails when the first
// chromosome grows nothing, a chromosome exceeds the segment cap, or any
// segment leaves the region.
func (g Genotype) grow(region domain.Rect) ([]segment, bool) {
	var starts [ChromosomeCount][]pen
	origin := pen{at: region.Center(), heading: 90, right: true}
	starts[0] = g[0].buds(origin)

	var segs []segment
	for i := range ChromosomeCount {
		if len(starts[i]) > maxSegmentsPerChromosome {
			return nil, false
		}
		if len(starts[i]) == 0 {
			if i == 0 {
				return nil, false
			}
			break
		}
		for _, start := range starts[i] {
			end, ok := g[i].trace(start, region)
			if !ok {
				return nil, false
			}
			segs = append(segs, segment{gene: g[i], start: start})
			if i < ChromosomeCount-1 {
				starts[i+1] = append(starts[i+1], g[i+1].buds(end)...)
			}
		}
	}
	return segs, true
}

func (s segment) draw(c domain.Canvas) {
	g := s.gene
	switch g.Shape() {
	case ShapeLine:
		c.DrawLine(s.start.at, s.start.forward(float64(g.Length())).at, g.LineWidth(), g.LineColor())
	case ShapeDot:
		c.DrawDot(s.start.forward(g.radius()).at, float64(g.Length()), g.LineColor())
	case ShapeCircle:
		c.DrawCircle(s.start.forward(g.radius()).at, g.radius(), g.LineWidth(), g.LineColor(), nil)
	case ShapeFilledCircle:
		c.DrawCircle(s.start.forward(g.radius()).at, g.radius(), g.LineWidth(), g.LineColor(), g.FillColor())
	}
}
