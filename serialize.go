package textmaze

import (
	"bufio"
	"bytes"
	"fmt"
	"github.com/sirupsen/logrus"
	"github.com/zyedidia/generic/mapset"
	"io"
	"strconv"
	"strings"
)

// Describes what was recovered from while decoding a maze file.
type LoadReport struct {
	// Lines that were skipped, in file order.
	Skipped []*ParseError
	// Cells that no valid line described. They keep all four walls.
	Missing []Point
}

// Returns true if every cell was loaded from a valid line.
func (r *LoadReport) Clean() bool {
	return (len(r.Skipped) == 0) && (len(r.Missing) == 0)
}

func boolDigit(b bool) int {
	if b {
		return 1
	}
	return 0
}

// Writes g as a header line with the row and column counts, followed by one
// line per cell in row-major order.
func Encode(w io.Writer, g *Grid) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%d %d\n", g.rows, g.cols)
	for i := range g.cells {
		p := g.point(i)
		c := &(g.cells[i])
		fmt.Fprintf(bw, "x=%d y=%d l=%d r=%d u=%d d=%d\n", p.X, p.Y,
			boolDigit(c.Walls[Left]), boolDigit(c.Walls[Right]),
			boolDigit(c.Walls[Up]), boolDigit(c.Walls[Down]))
	}
	e := bw.Flush()
	if e != nil {
		return fmt.Errorf("%w: writing maze: %w", ErrIO, e)
	}
	return nil
}

// Parses the "<rows> <cols>" header line.
func parseHeader(text string) (int, int, error) {
	fields := strings.Fields(text)
	if len(fields) != 2 {
		return 0, 0, fmt.Errorf("%w: bad header %q", ErrParse, text)
	}
	rows, e := strconv.Atoi(fields[0])
	if e != nil {
		return 0, 0, fmt.Errorf("%w: bad row count %q", ErrParse, fields[0])
	}
	cols, e := strconv.Atoi(fields[1])
	if e != nil {
		return 0, 0, fmt.Errorf("%w: bad column count %q", ErrParse,
			fields[1])
	}
	return rows, cols, nil
}

// Parses a single "x=<col> y=<row> l= r= u= d=" cell line. The six fields
// may appear in any order, but each must appear exactly once. Returns a
// reason string rather than an error, since the caller builds the
// ParseError.
func parseCellLine(text string) (Point, [4]bool, string) {
	var p Point
	var walls [4]bool
	fields := strings.Fields(text)
	if len(fields) != 6 {
		return p, walls, fmt.Sprintf("expected 6 fields, got %d", len(fields))
	}
	seen := 0
	for _, f := range fields {
		key, value, ok := strings.Cut(f, "=")
		if !ok {
			return p, walls, fmt.Sprintf("field %q is not key=value", f)
		}
		n, e := strconv.Atoi(value)
		if e != nil {
			return p, walls, fmt.Sprintf("field %q is not an integer", f)
		}
		var bit int
		var wall Direction
		isWall := true
		switch key {
		case "x":
			bit, isWall = 0, false
			p.X = n
		case "y":
			bit, isWall = 1, false
			p.Y = n
		case "l":
			bit, wall = 2, Left
		case "r":
			bit, wall = 3, Right
		case "u":
			bit, wall = 4, Up
		case "d":
			bit, wall = 5, Down
		default:
			return p, walls, fmt.Sprintf("unknown field %q", key)
		}
		if (seen & (1 << bit)) != 0 {
			return p, walls, fmt.Sprintf("field %q repeated", key)
		}
		seen |= 1 << bit
		if !isWall {
			continue
		}
		if (n != 0) && (n != 1) {
			return p, walls, fmt.Sprintf("wall flag %q must be 0 or 1", f)
		}
		walls[wall] = n == 1
	}
	return p, walls, ""
}

// The longest line that is parsed. Longer lines are skipped while loading a
// maze and rejected while loading a path.
const maxLineLength = 4096

// Reads newline-terminated lines while holding at most maxLineLength bytes of
// any one line in memory.
type lineReader struct {
	r      *bufio.Reader
	number int
}

func newLineReader(r io.Reader) *lineReader {
	return &lineReader{r: bufio.NewReader(r)}
}

// Returns the next line without its line ending. If the line was longer than
// maxLineLength, tooLong is set and text holds only its start. Returns io.EOF
// once no lines remain.
func (l *lineReader) next() (text string, tooLong bool, e error) {
	var line []byte
	read := false
	for {
		chunk, readErr := l.r.ReadSlice('\n')
		if len(chunk) != 0 {
			read = true
		}
		if !tooLong {
			line = append(line, chunk...)
			if len(bytes.TrimRight(line, "\r\n")) > maxLineLength {
				tooLong = true
				line = line[:maxLineLength]
			}
		}
		if readErr == bufio.ErrBufferFull {
			continue
		}
		if readErr == io.EOF {
			if !read {
				return "", false, io.EOF
			}
			break
		}
		if readErr != nil {
			return "", false, readErr
		}
		break
	}
	l.number++
	return string(bytes.TrimRight(line, "\r\n")), tooLong, nil
}

// Reads a maze written by Encode. After the header, exactly rows*cols lines
// are read, and each line's flags are assigned to the cell named by its own
// coordinates, so line order does not matter. A line that is malformed, too
// long, out of bounds, or repeats an earlier line's coordinates is logged and
// skipped; the rest of the maze still loads. Wall symmetry is not checked
// here.
//
// An error is returned only if the header is missing or invalid, or if the
// underlying reader fails. The returned report lists anything that was
// skipped.
func Decode(r io.Reader) (*Grid, *LoadReport, error) {
	report := &LoadReport{}
	lines := newLineReader(r)

	header, tooLong, e := lines.next()
	if e == io.EOF {
		return nil, report, fmt.Errorf("%w: missing header", ErrParse)
	}
	if e != nil {
		return nil, report, fmt.Errorf("%w: reading header: %w", ErrIO, e)
	}
	if tooLong {
		return nil, report, fmt.Errorf("%w: header longer than %d bytes",
			ErrParse, maxLineLength)
	}
	rows, cols, e := parseHeader(header)
	if e != nil {
		return nil, report, e
	}
	toReturn, e := NewGrid(rows, cols)
	if e != nil {
		return nil, report, e
	}

	loaded := mapset.New[int]()
	skip := func(text, reason string, fields logrus.Fields) {
		pe := &ParseError{Line: lines.number, Text: text, Reason: reason}
		report.Skipped = append(report.Skipped, pe)
		if fields == nil {
			fields = logrus.Fields{}
		}
		fields["line"] = lines.number
		Log.WithFields(fields).Warnf("Skipping maze line: %s", reason)
	}

	for remaining := toReturn.Len(); remaining > 0; remaining-- {
		text, tooLong, e := lines.next()
		if e == io.EOF {
			break
		}
		if e != nil {
			return nil, report, fmt.Errorf("%w: reading maze: %w", ErrIO, e)
		}
		if tooLong {
			skip(text, fmt.Sprintf("line longer than %d bytes", maxLineLength),
				nil)
			continue
		}
		p, walls, reason := parseCellLine(text)
		if reason != "" {
			skip(text, reason, nil)
			continue
		}
		where := logrus.Fields{"x": p.X, "y": p.Y}
		if !toReturn.Contains(p) {
			skip(text, fmt.Sprintf("coordinates x=%d y=%d outside %dx%d grid",
				p.X, p.Y, rows, cols), where)
			continue
		}
		index := toReturn.index(p)
		if loaded.Has(index) {
			skip(text, fmt.Sprintf("duplicate coordinates x=%d y=%d", p.X,
				p.Y), where)
			continue
		}
		loaded.Put(index)
		c := &(toReturn.cells[index])
		c.Walls = walls
		c.Visited = false
	}

	if loaded.Size() != toReturn.Len() {
		for i := range toReturn.cells {
			if !loaded.Has(i) {
				report.Missing = append(report.Missing, toReturn.point(i))
			}
		}
		Log.WithFields(logrus.Fields{
			"missing": len(report.Missing),
		}).Warn("Maze file did not describe every cell")
	}
	return toReturn, report, nil
}

// Writes p with one "<x> <y>" line per cell, in path order.
func EncodePath(w io.Writer, p Path) error {
	bw := bufio.NewWriter(w)
	for _, pt := range p {
		fmt.Fprintf(bw, "%d %d\n", pt.X, pt.Y)
	}
	e := bw.Flush()
	if e != nil {
		return fmt.Errorf("%w: writing path: %w", ErrIO, e)
	}
	return nil
}

// Reads a path written by EncodePath. Unlike Decode, any malformed line is
// an error.
func DecodePath(r io.Reader) (Path, error) {
	var toReturn Path
	lines := newLineReader(r)
	for {
		text, tooLong, e := lines.next()
		if e == io.EOF {
			break
		}
		if e != nil {
			return nil, fmt.Errorf("%w: reading path: %w", ErrIO, e)
		}
		if tooLong {
			return nil, &ParseError{Line: lines.number, Text: text,
				Reason: fmt.Sprintf("line longer than %d bytes", maxLineLength)}
		}
		fields := strings.Fields(text)
		if len(fields) == 0 {
			continue
		}
		if len(fields) != 2 {
			return nil, &ParseError{Line: lines.number, Text: text,
				Reason: "expected \"<x> <y>\""}
		}
		x, e1 := strconv.Atoi(fields[0])
		y, e2 := strconv.Atoi(fields[1])
		if (e1 != nil) || (e2 != nil) {
			return nil, &ParseError{Line: lines.number, Text: text,
				Reason: "coordinates must be integers"}
		}
		toReturn = append(toReturn, Point{X: x, Y: y})
	}
	return toReturn, nil
}
