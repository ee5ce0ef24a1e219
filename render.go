package textmaze

import (
	"fmt"
	"github.com/yalue/image_utils"
	"image"
	"image/color"
	"image/png"
	"io"
	"strings"
)

// The number of pixels across, in a square cell. Must be at least 5.
const cellPixels = 9

// The size of the entry and exit arrows, in pixels.
const arrowLength = 16

// Determines how a cell's interior is drawn.
type cellState uint8

const (
	stateNormal cellState = iota
	stateOnPath
	stateEntry
	stateExit
)

func (s cellState) String() string {
	switch s {
	case stateNormal:
		return "normal"
	case stateOnPath:
		return "onPath"
	case stateEntry:
		return "entry"
	case stateExit:
		return "exit"
	}
	return fmt.Sprintf("Unknown cellState: %d", uint8(s))
}

var (
	pathColor  = color.RGBA{R: 230, G: 20, B: 20, A: 255}
	entryColor = color.RGBA{R: 40, G: 180, B: 70, A: 255}
	exitColor  = color.RGBA{R: 100, G: 120, B: 255, A: 255}
)

// Satisfies the image.Image interface, drawing a Grid with an optional path.
type gridImage struct {
	g      *Grid
	states []cellState
}

// Returns an image of g, with each cell in p highlighted. The last point of
// p is drawn as the entry and the first as the exit. p may be nil.
func NewImage(g *Grid, p Path) image.Image {
	toReturn := &gridImage{
		g:      g,
		states: make([]cellState, len(g.cells)),
	}
	for _, pt := range p {
		if g.Contains(pt) {
			toReturn.states[g.index(pt)] = stateOnPath
		}
	}
	if len(p) != 0 {
		if g.Contains(p[0]) {
			toReturn.states[g.index(p[0])] = stateExit
		}
		if g.Contains(p[len(p)-1]) {
			toReturn.states[g.index(p[len(p)-1])] = stateEntry
		}
	}
	return toReturn
}

func (m *gridImage) ColorModel() color.Model {
	return color.RGBAModel
}

func (m *gridImage) Bounds() image.Rectangle {
	return image.Rect(0, 0, m.g.cols*cellPixels, m.g.rows*cellPixels)
}

// Returns false only if both walls adjacent to the corner are clear. The
// corner is given by the two walls meeting at it.
func cornerSet(c *Cell, a, b Direction) bool {
	return c.Walls[a] || c.Walls[b]
}

func (m *gridImage) At(x, y int) color.Color {
	bounds := m.Bounds()
	if (x < 0) || (y < 0) || (x >= bounds.Max.X) || (y >= bounds.Max.Y) {
		return color.Transparent
	}
	index := (y/cellPixels)*m.g.cols + (x / cellPixels)
	c := &(m.g.cells[index])
	x = x % cellPixels
	y = y % cellPixels
	last := cellPixels - 1

	wall := false
	switch {
	case (x == 0) && (y == 0):
		wall = cornerSet(c, Left, Up)
	case (x == last) && (y == 0):
		wall = cornerSet(c, Up, Right)
	case (x == last) && (y == last):
		wall = cornerSet(c, Right, Down)
	case (x == 0) && (y == last):
		wall = cornerSet(c, Down, Left)
	case x == 0:
		wall = c.Walls[Left]
	case x == last:
		wall = c.Walls[Right]
	case y == 0:
		wall = c.Walls[Up]
	case y == last:
		wall = c.Walls[Down]
	default:
		// Highlighted cells are colored more than two pixels from an edge.
		if (x > 1) && (x < last-1) && (y > 1) && (y < last-1) {
			switch m.states[index] {
			case stateOnPath:
				return pathColor
			case stateEntry:
				return entryColor
			case stateExit:
				return exitColor
			}
		}
	}
	if wall {
		return color.Black
	}
	return color.White
}

// Returns the solid arrow image_utils draws for direction d.
func arrowForDirection(d Direction, fill color.Color) image.Image {
	switch d {
	case Left:
		return image_utils.LeftArrow(fill)
	case Up:
		return image_utils.UpArrow(fill)
	case Down:
		return image_utils.DownArrow(fill)
	}
	return image_utils.RightArrow(fill)
}

// Returns an arrowLength-square marker pointing in direction d: an arrow in
// the outline color with a white arrow of half the size centered on it.
func endpointMarker(d Direction, outline color.Color) image.Image {
	inset := arrowLength / 4
	marker := image_utils.NewCompositeImage()
	layers := []struct {
		fill   color.Color
		size   int
		origin image.Point
	}{
		{outline, arrowLength, image.Pt(0, 0)},
		{color.White, arrowLength / 2, image.Pt(inset, inset)},
	}
	for _, l := range layers {
		arrow := image_utils.ResizeImage(arrowForDirection(d, l.fill), l.size,
			l.size)
		marker.AddImage(arrow, l.origin)
	}
	return image_utils.ToRGBA(marker)
}

// Draws g with p highlighted, framed by a margin holding an arrow pointing
// right at the entry's row on the left and an arrow pointing left at the
// exit's row on the right.
func drawDecorations(g *Grid, p Path, entry, exit Point) (*image.RGBA,
	error) {
	margin := arrowLength + 2
	framed := image_utils.AddImageBorder(NewImage(g, p), color.White, margin)
	decorated := image_utils.NewCompositeImage()
	e := decorated.AddImage(image_utils.ToRGBA(framed), image.Pt(0, 0))
	if e != nil {
		return nil, fmt.Errorf("Error setting base maze image: %w", e)
	}
	halfCell := cellPixels / 2
	halfArrow := arrowLength / 2

	entryY := margin + entry.Y*cellPixels + halfCell - halfArrow
	e = decorated.AddImage(endpointMarker(Right, entryColor),
		image.Pt(1, entryY))
	if e != nil {
		return nil, fmt.Errorf("Error adding entry arrow: %w", e)
	}

	exitY := margin + exit.Y*cellPixels + halfCell - halfArrow
	exitX := margin + g.cols*cellPixels + 1
	e = decorated.AddImage(endpointMarker(Left, exitColor),
		image.Pt(exitX, exitY))
	if e != nil {
		return nil, fmt.Errorf("Error adding exit arrow: %w", e)
	}
	return image_utils.ToRGBA(decorated), nil
}

// Writes a PNG image of g to w, highlighting p and marking entry and exit.
// p may be nil, in which case only the endpoints are marked.
func RenderPNG(w io.Writer, g *Grid, p Path, entry, exit Point) error {
	if !g.Contains(entry) || !g.Contains(exit) {
		return fmt.Errorf("%w: rendering %s to %s", ErrOutOfBounds, entry,
			exit)
	}
	if len(p) == 0 {
		p = Path{exit, entry}
	}
	pic, e := drawDecorations(g, p, entry, exit)
	if e != nil {
		return e
	}
	e = png.Encode(w, pic)
	if e != nil {
		return fmt.Errorf("%w: encoding PNG: %w", ErrIO, e)
	}
	return nil
}

// Returns an ASCII drawing of the grid, one text row per cell row plus one
// per row of walls below it.
func (g *Grid) String() string {
	var b strings.Builder
	b.WriteString("+")
	for col := 0; col < g.cols; col++ {
		if g.cells[col].Walls[Up] {
			b.WriteString("---+")
		} else {
			b.WriteString("   +")
		}
	}
	b.WriteString("\n")

	for row := 0; row < g.rows; row++ {
		rowStart := row * g.cols
		if g.cells[rowStart].Walls[Left] {
			b.WriteString("|")
		} else {
			b.WriteString(" ")
		}
		for col := 0; col < g.cols; col++ {
			if g.cells[rowStart+col].Walls[Right] {
				b.WriteString("   |")
			} else {
				b.WriteString("    ")
			}
		}
		b.WriteString("\n+")
		for col := 0; col < g.cols; col++ {
			if g.cells[rowStart+col].Walls[Down] {
				b.WriteString("---+")
			} else {
				b.WriteString("   +")
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}
