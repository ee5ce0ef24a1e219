package textmaze

import (
	"fmt"
	"github.com/spakin/disjoint"
)

// Checks that g is a perfect maze: every wall is consistent between the two
// cells sharing it, no outer wall is open, and the open walls form a
// spanning tree, so that exactly one route joins any two cells. Returns an
// error wrapping ErrNotPerfect describing the first problem found.
func Validate(g *Grid) error {
	for i := range g.cells {
		p := g.point(i)
		c := &(g.cells[i])
		for _, d := range Directions {
			n, ok := g.Step(p, d)
			if !ok {
				if !c.Walls[d] {
					return fmt.Errorf("%w: outer %s wall of %s is open",
						ErrNotPerfect, d, p)
				}
				continue
			}
			if c.Walls[d] != g.cells[g.index(n)].Walls[d.Opposite()] {
				return fmt.Errorf("%w: wall between %s and %s is one-sided",
					ErrNotPerfect, p, n)
			}
		}
	}

	// Each cell starts in its own set. Joining two cells already in the same
	// set means the open walls contain a cycle.
	sets := make([]*disjoint.Element, len(g.cells))
	for i := range sets {
		sets[i] = disjoint.NewElement()
	}
	components := len(g.cells)
	for i := range g.cells {
		p := g.point(i)
		for _, d := range [2]Direction{Right, Down} {
			if !g.IsOpen(p, d) {
				continue
			}
			n, _ := g.Step(p, d)
			j := g.index(n)
			if sets[i].Find() == sets[j].Find() {
				return fmt.Errorf("%w: opening between %s and %s closes a "+
					"cycle", ErrNotPerfect, p, n)
			}
			disjoint.Union(sets[i], sets[j])
			components--
		}
	}
	if components != 1 {
		return fmt.Errorf("%w: %d disconnected regions", ErrNotPerfect,
			components)
	}
	return nil
}
