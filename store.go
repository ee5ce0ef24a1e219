package textmaze

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Storage for maze and path files, addressed by maze id.
type Store interface {
	// Opens the maze with the given id for reading.
	OpenForRead(id int) (io.ReadCloser, error)
	// Creates or truncates the maze with the given id.
	OpenForWrite(id int) (io.WriteCloser, error)
	// Creates or truncates the path file for the given maze and endpoints.
	OpenPathForWrite(id int, entry, exit Point) (io.WriteCloser, error)
}

// A Store keeping each maze and path in its own file under a directory.
// Mazes are named maze_<id>.txt, and paths are named
// maze_<id>_path_<entryX>_<entryY>_<exitX>_<exitY>.txt.
type FileStore struct {
	dir string
}

// Returns a FileStore rooted at dir, creating the directory if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		dir = "."
	}
	e := os.MkdirAll(dir, 0755)
	if e != nil {
		return nil, fmt.Errorf("%w: creating store directory %s: %w", ErrIO,
			dir, e)
	}
	return &FileStore{dir: dir}, nil
}

// Returns the store's directory.
func (s *FileStore) Dir() string {
	return s.dir
}

// Returns the file path used for the maze with the given id.
func (s *FileStore) MazeFile(id int) string {
	return filepath.Join(s.dir, fmt.Sprintf("maze_%d.txt", id))
}

// Returns the file path used for a path through the given maze.
func (s *FileStore) PathFile(id int, entry, exit Point) string {
	return filepath.Join(s.dir, fmt.Sprintf("maze_%d_path_%d_%d_%d_%d.txt",
		id, entry.X, entry.Y, exit.X, exit.Y))
}

func checkID(id int) error {
	if id < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidID, id)
	}
	return nil
}

func (s *FileStore) OpenForRead(id int) (io.ReadCloser, error) {
	if e := checkID(id); e != nil {
		return nil, e
	}
	name := s.MazeFile(id)
	f, e := os.Open(name)
	if e != nil {
		return nil, fmt.Errorf("%w: opening %s: %w", ErrIO, name, e)
	}
	return f, nil
}

func (s *FileStore) OpenForWrite(id int) (io.WriteCloser, error) {
	if e := checkID(id); e != nil {
		return nil, e
	}
	return create(s.MazeFile(id))
}

func (s *FileStore) OpenPathForWrite(id int, entry, exit Point) (
	io.WriteCloser, error) {
	if e := checkID(id); e != nil {
		return nil, e
	}
	return create(s.PathFile(id, entry, exit))
}

func create(name string) (io.WriteCloser, error) {
	f, e := os.Create(name)
	if e != nil {
		return nil, fmt.Errorf("%w: creating %s: %w", ErrIO, name, e)
	}
	return f, nil
}

// Writes g to s under the given id. The file is closed on every path, and a
// failure to close is reported.
func SaveMaze(s Store, id int, g *Grid) (e error) {
	w, e := s.OpenForWrite(id)
	if e != nil {
		return e
	}
	defer func() {
		closeErr := w.Close()
		if (closeErr != nil) && (e == nil) {
			e = fmt.Errorf("%w: closing maze %d: %w", ErrIO, id, closeErr)
		}
	}()
	return Encode(w, g)
}

// Loads the maze with the given id from s. See Decode for how malformed
// lines are handled.
func LoadMaze(s Store, id int) (*Grid, *LoadReport, error) {
	r, e := s.OpenForRead(id)
	if e != nil {
		return nil, nil, e
	}
	defer r.Close()
	g, report, e := Decode(r)
	if e != nil {
		return nil, report, fmt.Errorf("loading maze %d: %w", id, e)
	}
	return g, report, nil
}

// Writes p to the path file for the given maze and endpoints.
func SavePath(s Store, id int, entry, exit Point, p Path) (e error) {
	w, e := s.OpenPathForWrite(id, entry, exit)
	if e != nil {
		return e
	}
	defer func() {
		closeErr := w.Close()
		if (closeErr != nil) && (e == nil) {
			e = fmt.Errorf("%w: closing path for maze %d: %w", ErrIO, id,
				closeErr)
		}
	}()
	return EncodePath(w, p)
}

// Loads maze id from s, searches it from entry to exit, and writes the path
// that was found. If no path exists, ErrPathNotFound is returned and no
// path file is created.
func SolveStored(s Store, id int, entry, exit Point) (Path, error) {
	g, _, e := LoadMaze(s, id)
	if e != nil {
		return nil, e
	}
	toReturn, e := FindPath(g, entry, exit)
	if e != nil {
		return nil, fmt.Errorf("maze %d: %w", id, e)
	}
	e = SavePath(s, id, entry, exit, toReturn)
	if e != nil {
		return nil, e
	}
	return toReturn, nil
}
