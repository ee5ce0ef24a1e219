// Package textmaze generates perfect rectangular mazes by randomized
// depth-first carving, stores them as line-oriented text files, and finds
// paths through stored mazes using a backtracking depth-first search.
//
// A maze is a Grid: a flat, row-major buffer of cells, each with four wall
// flags. Coordinates are given as Points, where X is the column and Y is the
// row, matching the x= and y= fields of the maze file format.
package textmaze

import (
	"fmt"
)

// Identifies one of a cell's four sides. The order is the order in which the
// path finder scans a cell's neighbors, and also the order in which wall
// flags are written to maze files.
type Direction uint8

const (
	Left Direction = iota
	Right
	Up
	Down
)

// All four directions, in scan order.
var Directions = [4]Direction{Left, Right, Up, Down}

func (d Direction) String() string {
	switch d {
	case Left:
		return "left"
	case Right:
		return "right"
	case Up:
		return "up"
	case Down:
		return "down"
	}
	return fmt.Sprintf("Unknown direction: %d", uint8(d))
}

// Returns the direction facing back across the same wall.
func (d Direction) Opposite() Direction {
	switch d {
	case Left:
		return Right
	case Right:
		return Left
	case Up:
		return Down
	}
	return Up
}

// Returns the column and row offsets for a single step in this direction.
func (d Direction) delta() (int, int) {
	switch d {
	case Left:
		return -1, 0
	case Right:
		return 1, 0
	case Up:
		return 0, -1
	}
	return 0, 1
}

// A cell position. X is the column and Y is the row.
type Point struct {
	X int
	Y int
}

func (p Point) String() string {
	return fmt.Sprintf("(%d, %d)", p.X, p.Y)
}

// A single cell of the grid.
type Cell struct {
	// Whether each of the cell's walls is present, indexed by Direction. An
	// entry is true if the wall is there.
	Walls [4]bool
	// Used during carving and path search.
	Visited bool
}

// Returns true if the cell has a wall on the given side.
func (c *Cell) HasWall(d Direction) bool {
	return c.Walls[d]
}

// Returns the number of the cell's walls that are present.
func (c *Cell) WallCount() int {
	toReturn := 0
	for _, w := range c.Walls {
		if w {
			toReturn++
		}
	}
	return toReturn
}

// Sets every wall and clears the visited flag.
func (c *Cell) reset() {
	for i := range c.Walls {
		c.Walls[i] = true
	}
	c.Visited = false
}

// A rectangular maze of rows x cols cells, stored in a single row-major
// buffer. Create using NewGrid.
type Grid struct {
	rows  int
	cols  int
	cells []Cell
}

// The largest number of cells a grid may hold.
const MaxCells = 1 << 24

// Returns a new grid with every cell fully walled and unvisited. Fails with
// ErrInvalidDimension if either dimension is not positive, or if the grid
// would hold more than MaxCells cells.
func NewGrid(rows, cols int) (*Grid, error) {
	if (rows < 1) || (cols < 1) {
		return nil, fmt.Errorf("%w: %d rows, %d columns", ErrInvalidDimension,
			rows, cols)
	}
	// Dividing avoids overflowing rows*cols.
	if rows > MaxCells/cols {
		return nil, fmt.Errorf("%w: %dx%d is more than %d cells",
			ErrInvalidDimension, rows, cols, MaxCells)
	}
	cellCount := rows * cols
	toReturn := &Grid{
		rows:  rows,
		cols:  cols,
		cells: make([]Cell, cellCount),
	}
	for i := range toReturn.cells {
		toReturn.cells[i].reset()
	}
	return toReturn, nil
}

// Returns the number of rows in the grid.
func (g *Grid) Rows() int {
	return g.rows
}

// Returns the number of columns in the grid.
func (g *Grid) Cols() int {
	return g.cols
}

// Returns the total number of cells.
func (g *Grid) Len() int {
	return len(g.cells)
}

// Returns true if p lies within [0, cols) x [0, rows).
func (g *Grid) Contains(p Point) bool {
	return (p.X >= 0) && (p.Y >= 0) && (p.X < g.cols) && (p.Y < g.rows)
}

// Returns the index of p in the cell buffer. p must be in bounds.
func (g *Grid) index(p Point) int {
	return p.Y*g.cols + p.X
}

// Returns the coordinates of the cell at the given buffer index.
func (g *Grid) point(index int) Point {
	return Point{X: index % g.cols, Y: index / g.cols}
}

// Returns the cell at p, or nil if p is out of bounds.
func (g *Grid) Cell(p Point) *Cell {
	if !g.Contains(p) {
		return nil
	}
	return &(g.cells[g.index(p)])
}

// Returns the position one step from p in direction d, and false if that
// position would fall outside the grid. There is no wraparound.
func (g *Grid) Step(p Point, d Direction) (Point, bool) {
	dx, dy := d.delta()
	toReturn := Point{X: p.X + dx, Y: p.Y + dy}
	if !g.Contains(toReturn) {
		return toReturn, false
	}
	return toReturn, true
}

// Returns the in-bounds cells adjacent to p, in the order up, down, left,
// right.
func (g *Grid) Neighbors(p Point) []Point {
	toReturn := make([]Point, 0, 4)
	for _, d := range [4]Direction{Up, Down, Left, Right} {
		n, ok := g.Step(p, d)
		if ok {
			toReturn = append(toReturn, n)
		}
	}
	return toReturn
}

// Returns the direction of b as seen from a, and false if the two are not
// grid-adjacent.
func directionBetween(a, b Point) (Direction, bool) {
	dx := b.X - a.X
	dy := b.Y - a.Y
	switch {
	case (dx == -1) && (dy == 0):
		return Left, true
	case (dx == 1) && (dy == 0):
		return Right, true
	case (dx == 0) && (dy == -1):
		return Up, true
	case (dx == 0) && (dy == 1):
		return Down, true
	}
	return 0, false
}

// Clears the wall between a and b on both sides. Fails with ErrOutOfBounds
// if either cell is outside the grid, or ErrNotAdjacent if they don't share
// a wall.
func (g *Grid) OpenWall(a, b Point) error {
	if !g.Contains(a) || !g.Contains(b) {
		return fmt.Errorf("%w: opening wall between %s and %s",
			ErrOutOfBounds, a, b)
	}
	d, ok := directionBetween(a, b)
	if !ok {
		return fmt.Errorf("%w: %s and %s", ErrNotAdjacent, a, b)
	}
	g.cells[g.index(a)].Walls[d] = false
	g.cells[g.index(b)].Walls[d.Opposite()] = false
	return nil
}

// Returns true if there is a passage from p in direction d: the wall on that
// side of p is open and the neighbor exists.
func (g *Grid) IsOpen(p Point, d Direction) bool {
	c := g.Cell(p)
	if (c == nil) || c.Walls[d] {
		return false
	}
	_, ok := g.Step(p, d)
	return ok
}

// Returns the number of open walls between pairs of cells in the grid. Only
// right and down walls are counted, so a passage counts once.
func (g *Grid) OpenWallCount() int {
	toReturn := 0
	for i := range g.cells {
		p := g.point(i)
		if g.IsOpen(p, Right) {
			toReturn++
		}
		if g.IsOpen(p, Down) {
			toReturn++
		}
	}
	return toReturn
}

// Clears the visited flag on every cell.
func (g *Grid) ResetVisited() {
	for i := range g.cells {
		g.cells[i].Visited = false
	}
}
