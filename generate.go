package textmaze

import (
	"errors"
	"fmt"
	"github.com/sirupsen/logrus"
	"math/rand"
	"time"
)

// Returns a new random source. If the given seed is not positive, a new seed
// will be selected based on the current time in nanoseconds.
func NewRand(seed int64) *rand.Rand {
	if seed <= 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// Generates a rows x cols maze using rng. A nil rng is replaced with a
// time-seeded one.
func Generate(rows, cols int, rng *rand.Rand) (*Grid, error) {
	toReturn, e := NewGrid(rows, cols)
	if e != nil {
		return nil, e
	}
	if rng == nil {
		rng = NewRand(0)
	}
	Carve(toReturn, rng)
	return toReturn, nil
}

// Carves a spanning tree into g using a randomized depth-first search from
// (0, 0), with an explicit stack rather than recursion. All of g's walls are
// restored before carving starts. Exactly Len()-1 walls are opened.
func Carve(g *Grid, rng *rand.Rand) {
	for i := range g.cells {
		g.cells[i].reset()
	}
	stack := make([]int, 0, len(g.cells))
	g.cells[0].Visited = true
	stack = append(stack, 0)
	unvisited := make([]Point, 0, 4)

	for len(stack) != 0 {
		currentIndex := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		current := g.point(currentIndex)

		unvisited = unvisited[:0]
		for _, n := range g.Neighbors(current) {
			if !g.cells[g.index(n)].Visited {
				unvisited = append(unvisited, n)
			}
		}
		// A cell with no unvisited neighbors is finished, and isn't pushed
		// again.
		if len(unvisited) == 0 {
			continue
		}

		next := unvisited[rng.Intn(len(unvisited))]
		e := g.OpenWall(current, next)
		if e != nil {
			panic(fmt.Sprintf("Internal error carving maze: %s", e))
		}
		nextIndex := g.index(next)
		g.cells[nextIndex].Visited = true
		// Keep current below next so its remaining branches are resumed
		// after next's are exhausted.
		stack = append(stack, currentIndex, nextIndex)
	}
}

// Generates count independent rows x cols mazes and saves them to s under
// ids 1 through count. A maze that fails to save is logged and skipped; the
// rest of the batch continues. Returns the ids that were saved, along with
// every error encountered.
func GenerateBatch(s Store, count, rows, cols int, rng *rand.Rand) ([]int,
	error) {
	if count < 1 {
		return nil, fmt.Errorf("%w: maze count must be positive, got %d",
			ErrInvalidDimension, count)
	}
	if (rows < 1) || (cols < 1) {
		return nil, fmt.Errorf("%w: %d rows, %d columns", ErrInvalidDimension,
			rows, cols)
	}
	if rng == nil {
		rng = NewRand(0)
	}
	saved := make([]int, 0, count)
	var errs []error
	for id := 1; id <= count; id++ {
		g, e := Generate(rows, cols, rng)
		if e == nil {
			e = SaveMaze(s, id, g)
		}
		if e != nil {
			Log.WithFields(logrus.Fields{
				"maze_id": id,
			}).Errorf("Failed generating maze: %s", e)
			errs = append(errs, fmt.Errorf("maze %d: %w", id, e))
			continue
		}
		Log.WithFields(logrus.Fields{
			"maze_id": id,
			"rows":    rows,
			"cols":    cols,
		}).Debug("Maze generated")
		saved = append(saved, id)
	}
	return saved, errors.Join(errs...)
}
