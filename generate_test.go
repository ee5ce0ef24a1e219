package textmaze

import (
	"bytes"
	"errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"io"
	"math/rand"
	"testing"
)

func TestGenerate(t *testing.T) {
	t.Run("Spanning tree for many seeds and sizes", func(t *testing.T) {
		sizes := [][2]int{{1, 1}, {1, 7}, {7, 1}, {2, 2}, {5, 8}, {20, 13}}
		for seed := int64(1); seed <= 20; seed++ {
			for _, size := range sizes {
				g, e := Generate(size[0], size[1],
					rand.New(rand.NewSource(seed)))
				require.NoError(t, e)
				assert.Equal(t, g.Len()-1, g.OpenWallCount(),
					"seed %d, size %v", seed, size)
				assert.NoError(t, Validate(g), "seed %d, size %v", seed, size)
			}
		}
	})

	t.Run("Single cell keeps all walls", func(t *testing.T) {
		g, e := Generate(1, 1, rand.New(rand.NewSource(3)))
		require.NoError(t, e)
		assert.Equal(t, 4, g.Cell(Point{0, 0}).WallCount())
	})

	t.Run("2x2 always has 3 open walls and is solvable", func(t *testing.T) {
		for seed := int64(1); seed <= 50; seed++ {
			g, e := Generate(2, 2, rand.New(rand.NewSource(seed)))
			require.NoError(t, e)
			assert.Equal(t, 3, g.OpenWallCount())
			p, e := FindPath(g, Point{0, 0}, Point{1, 1})
			require.NoError(t, e, "seed %d", seed)
			assert.Equal(t, Point{1, 1}, p[0])
			assert.Equal(t, Point{0, 0}, p[len(p)-1])
		}
	})

	t.Run("Same seed gives same maze", func(t *testing.T) {
		a, e := Generate(9, 11, rand.New(rand.NewSource(42)))
		require.NoError(t, e)
		b, e := Generate(9, 11, rand.New(rand.NewSource(42)))
		require.NoError(t, e)
		assert.Equal(t, a.String(), b.String())
	})

	t.Run("Nil source still generates", func(t *testing.T) {
		g, e := Generate(4, 4, nil)
		require.NoError(t, e)
		assert.NoError(t, Validate(g))
	})

	t.Run("Invalid dimensions", func(t *testing.T) {
		_, e := Generate(0, 4, rand.New(rand.NewSource(1)))
		assert.ErrorIs(t, e, ErrInvalidDimension)
	})

	t.Run("Carve restores walls before carving", func(t *testing.T) {
		g, e := Generate(6, 6, rand.New(rand.NewSource(5)))
		require.NoError(t, e)
		Carve(g, rand.New(rand.NewSource(6)))
		assert.Equal(t, g.Len()-1, g.OpenWallCount())
		assert.NoError(t, Validate(g))
	})
}

// A Store keeping files in memory, optionally failing writes for some ids.
type memoryStore struct {
	mazes  map[int]*bytes.Buffer
	paths  map[string]*bytes.Buffer
	failOn map[int]bool
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		mazes:  make(map[int]*bytes.Buffer),
		paths:  make(map[string]*bytes.Buffer),
		failOn: make(map[int]bool),
	}
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error {
	return nil
}

func (s *memoryStore) OpenForRead(id int) (io.ReadCloser, error) {
	b, ok := s.mazes[id]
	if !ok {
		return nil, ErrIO
	}
	return io.NopCloser(bytes.NewReader(b.Bytes())), nil
}

func (s *memoryStore) OpenForWrite(id int) (io.WriteCloser, error) {
	if s.failOn[id] {
		return nil, errors.Join(ErrIO, errors.New("disk full"))
	}
	b := &bytes.Buffer{}
	s.mazes[id] = b
	return nopWriteCloser{b}, nil
}

func (s *memoryStore) OpenPathForWrite(id int, entry, exit Point) (
	io.WriteCloser, error) {
	b := &bytes.Buffer{}
	s.paths[entry.String()+exit.String()] = b
	return nopWriteCloser{b}, nil
}

func TestGenerateBatch(t *testing.T) {
	t.Run("Saves every maze", func(t *testing.T) {
		s := newMemoryStore()
		saved, e := GenerateBatch(s, 4, 3, 5, rand.New(rand.NewSource(1)))
		require.NoError(t, e)
		assert.Equal(t, []int{1, 2, 3, 4}, saved)
		for id := 1; id <= 4; id++ {
			g, report, e := LoadMaze(s, id)
			require.NoError(t, e)
			assert.True(t, report.Clean())
			assert.NoError(t, Validate(g))
		}
	})

	t.Run("A failed maze does not stop the batch", func(t *testing.T) {
		s := newMemoryStore()
		s.failOn[2] = true
		saved, e := GenerateBatch(s, 3, 2, 2, rand.New(rand.NewSource(1)))
		assert.ErrorIs(t, e, ErrIO)
		assert.Equal(t, []int{1, 3}, saved)
	})

	t.Run("Invalid count or dimensions", func(t *testing.T) {
		s := newMemoryStore()
		_, e := GenerateBatch(s, 0, 2, 2, nil)
		assert.ErrorIs(t, e, ErrInvalidDimension)
		_, e = GenerateBatch(s, 2, 2, -1, nil)
		assert.ErrorIs(t, e, ErrInvalidDimension)
		assert.Empty(t, s.mazes)
	})
}
