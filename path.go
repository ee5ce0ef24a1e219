package textmaze

import (
	"fmt"
)

// A sequence of cell positions, running from the exit back to the entry.
type Path []Point

// Returns true if each consecutive pair of points in p is joined by an open
// wall in g.
func (p Path) IsConnected(g *Grid) bool {
	for i := 1; i < len(p); i++ {
		d, ok := directionBetween(p[i-1], p[i])
		if !ok || !g.IsOpen(p[i-1], d) {
			return false
		}
	}
	return true
}

// Searches g for a path from entry to exit, moving only through open walls.
// Fails with ErrOutOfBounds if either endpoint is outside the grid, or
// ErrPathNotFound if exit can't be reached from entry.
//
// The search is a backtracking depth-first search: it inspects the top of
// the stack, steps into the first unvisited open neighbor in the order
// left, right, up, down, and pops only when the top cell has none left.
// Each cell is visited at most once. The visited flags of g are overwritten.
func FindPath(g *Grid, entry, exit Point) (Path, error) {
	if !g.Contains(entry) {
		return nil, fmt.Errorf("%w: entry %s in %dx%d grid", ErrOutOfBounds,
			entry, g.rows, g.cols)
	}
	if !g.Contains(exit) {
		return nil, fmt.Errorf("%w: exit %s in %dx%d grid", ErrOutOfBounds,
			exit, g.rows, g.cols)
	}
	g.ResetVisited()
	// The index of the cell through which each cell was first reached, or -1
	// if it hasn't been reached (or is the entry).
	parentIndices := make([]int, len(g.cells))
	for i := range parentIndices {
		parentIndices[i] = -1
	}
	entryIndex := g.index(entry)
	exitIndex := g.index(exit)

	dfsStack := make([]int, 0, len(g.cells)/2+1)
	g.cells[entryIndex].Visited = true
	dfsStack = append(dfsStack, entryIndex)

	found := false
	for len(dfsStack) != 0 {
		currentIndex := dfsStack[len(dfsStack)-1]
		if currentIndex == exitIndex {
			found = true
			break
		}
		current := g.point(currentIndex)
		moved := false
		for _, d := range Directions {
			if g.cells[currentIndex].Walls[d] {
				continue
			}
			next, ok := g.Step(current, d)
			if !ok {
				continue
			}
			nextIndex := g.index(next)
			if g.cells[nextIndex].Visited {
				continue
			}
			g.cells[nextIndex].Visited = true
			parentIndices[nextIndex] = currentIndex
			dfsStack = append(dfsStack, nextIndex)
			moved = true
			break
		}
		if !moved {
			dfsStack = dfsStack[:len(dfsStack)-1]
		}
	}
	if !found {
		return nil, fmt.Errorf("%w: from %s to %s", ErrPathNotFound, entry,
			exit)
	}
	return tracePath(g, parentIndices, entryIndex, exitIndex)
}

// Follows parentIndices from exitIndex back to entryIndex, returning the
// positions visited, exit first and entry last. Fails with ErrCorruptPath
// if the chain ends, or loops, before reaching the entry.
func tracePath(g *Grid, parentIndices []int, entryIndex,
	exitIndex int) (Path, error) {
	toReturn := make(Path, 0, 16)
	index := exitIndex
	for index != entryIndex {
		// A path can't be longer than the grid, so anything longer must be a
		// cycle in the chain.
		if len(toReturn) >= len(parentIndices) {
			return nil, fmt.Errorf("%w: predecessor chain from %s loops",
				ErrCorruptPath, g.point(exitIndex))
		}
		toReturn = append(toReturn, g.point(index))
		parent := parentIndices[index]
		if (parent < 0) || (parent >= len(parentIndices)) {
			return nil, fmt.Errorf("%w: chain breaks at %s before reaching "+
				"entry %s", ErrCorruptPath, g.point(index),
				g.point(entryIndex))
		}
		index = parent
	}
	toReturn = append(toReturn, g.point(entryIndex))
	return toReturn, nil
}
