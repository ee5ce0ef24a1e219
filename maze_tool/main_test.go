package main

import (
	"bytes"
	"fmt"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yalue/textmaze"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func runTool(t *testing.T, input string, args ...string) (int, string) {
	var out bytes.Buffer
	code := run(append(args, "-log_level", "error"), strings.NewReader(input),
		&out)
	return code, out.String()
}

func TestGenerateAndSolve(t *testing.T) {
	dir := t.TempDir()
	code, out := runTool(t, "", "-mode", "generate", "-dir", dir,
		"-count", "3", "-rows", "4", "-cols", "5", "-seed", "7", "-validate")
	require.Equal(t, 0, code, out)
	assert.Contains(t, out, "All mazes are generated.")
	for id := 1; id <= 3; id++ {
		assert.FileExists(t, filepath.Join(dir, fmt.Sprintf("maze_%d.txt", id)))
	}

	code, out = runTool(t, "", "-mode", "solve", "-dir", dir, "-maze_id", "2",
		"-entry_x", "0", "-entry_y", "0", "-exit_x", "4", "-exit_y", "3")
	require.Equal(t, 0, code, out)
	pathFile := filepath.Join(dir, "maze_2_path_0_0_4_3.txt")
	assert.Contains(t, out, pathFile)
	f, e := os.Open(pathFile)
	require.NoError(t, e)
	defer f.Close()
	p, e := textmaze.DecodePath(f)
	require.NoError(t, e)
	assert.Equal(t, textmaze.Point{X: 4, Y: 3}, p[0])
	assert.Equal(t, textmaze.Point{X: 0, Y: 0}, p[len(p)-1])
}

// Wraps a store so that writing one maze fails and reading another returns
// a maze that is not perfect.
type faultyStore struct {
	textmaze.Store
	failWrite   int
	corruptRead int
}

func (s *faultyStore) OpenForWrite(id int) (io.WriteCloser, error) {
	if id == s.failWrite {
		return nil, fmt.Errorf("%w: disk full", textmaze.ErrIO)
	}
	return s.Store.OpenForWrite(id)
}

func (s *faultyStore) OpenForRead(id int) (io.ReadCloser, error) {
	if id == s.corruptRead {
		return io.NopCloser(strings.NewReader("1 2\n" +
			"x=0 y=0 l=1 r=1 u=1 d=1\n" +
			"x=1 y=0 l=1 r=1 u=1 d=1\n")), nil
	}
	return s.Store.OpenForRead(id)
}

func TestGenerateReportsAllFailures(t *testing.T) {
	fileStore, e := textmaze.NewFileStore(t.TempDir())
	require.NoError(t, e)
	store := &faultyStore{Store: fileStore, failWrite: 2, corruptRead: 1}
	o := &options{count: 3, rows: 1, cols: 2, seed: 5, validate: true}
	quiet := logrus.New()
	quiet.SetOutput(io.Discard)
	previous := textmaze.SetLogger(quiet)
	t.Cleanup(func() {
		textmaze.SetLogger(previous)
	})
	var out bytes.Buffer
	assert.Equal(t, 1, runGenerate(o, store, &out))
	assert.Contains(t, out.String(), "Generated 2 of 3 mazes")
	assert.Contains(t, out.String(), "disk full")
	assert.Contains(t, out.String(), "Maze 1 failed validation")
	assert.NotContains(t, out.String(), "Maze 3 failed validation")
	assert.NotContains(t, out.String(), "All mazes are generated.")
	g, _, e := textmaze.LoadMaze(fileStore, 3)
	require.NoError(t, e)
	assert.NoError(t, textmaze.Validate(g))
}

func TestSolveNoPath(t *testing.T) {
	dir := t.TempDir()
	store, e := textmaze.NewFileStore(dir)
	require.NoError(t, e)
	g, e := textmaze.NewGrid(2, 2)
	require.NoError(t, e)
	require.NoError(t, textmaze.SaveMaze(store, 1, g))

	code, out := runTool(t, "", "-mode", "solve", "-dir", dir, "-maze_id", "1",
		"-entry_x", "0", "-entry_y", "0", "-exit_x", "1", "-exit_y", "1")
	assert.Equal(t, 1, code)
	assert.Contains(t, out, "No path found.")
	assert.NoFileExists(t, store.PathFile(1, textmaze.Point{},
		textmaze.Point{X: 1, Y: 1}))
}

func TestSolveOutOfBounds(t *testing.T) {
	dir := t.TempDir()
	code, _ := runTool(t, "", "-dir", dir, "-count", "1", "-rows", "2",
		"-cols", "2")
	require.Equal(t, 0, code)
	code, out := runTool(t, "", "-mode", "solve", "-dir", dir, "-maze_id", "1",
		"-entry_x", "0", "-entry_y", "0", "-exit_x", "5", "-exit_y", "0")
	assert.Equal(t, 1, code)
	assert.Contains(t, out, "out of bounds")
}

func TestInteractive(t *testing.T) {
	t.Run("Prompts for missing values", func(t *testing.T) {
		dir := t.TempDir()
		code, out := runTool(t, "abc\n0\n2\n3\n3\n", "-interactive", "-dir",
			dir)
		require.Equal(t, 0, code, out)
		assert.Contains(t, out, "Enter the number of mazes (K): ")
		assert.Contains(t, out, "Please enter an integer of at least 1.")
		assert.FileExists(t, filepath.Join(dir, "maze_2.txt"))
		assert.NoFileExists(t, filepath.Join(dir, "maze_3.txt"))
	})

	t.Run("Input ends early", func(t *testing.T) {
		code, _ := runTool(t, "2\n", "-interactive", "-dir", t.TempDir())
		assert.Equal(t, 1, code)
	})

	t.Run("Missing values without prompting", func(t *testing.T) {
		code, out := runTool(t, "", "-dir", t.TempDir(), "-count", "1")
		assert.Equal(t, 1, code)
		assert.Contains(t, out, "number of rows")
	})
}

func TestRenderText(t *testing.T) {
	dir := t.TempDir()
	code, _ := runTool(t, "", "-dir", dir, "-count", "1", "-rows", "2",
		"-cols", "3", "-seed", "1")
	require.Equal(t, 0, code)
	code, out := runTool(t, "", "-mode", "render", "-dir", dir, "-maze_id",
		"1", "-entry_x", "0", "-entry_y", "0", "-exit_x", "2", "-exit_y", "1")
	require.Equal(t, 0, code, out)
	assert.True(t, strings.HasPrefix(out, "+---+---+---+\n"))
}

func TestRenderPNGFile(t *testing.T) {
	dir := t.TempDir()
	code, _ := runTool(t, "", "-dir", dir, "-count", "1", "-rows", "3",
		"-cols", "3", "-seed", "2")
	require.Equal(t, 0, code)
	outFile := filepath.Join(dir, "maze.png")
	code, out := runTool(t, "", "-mode", "render", "-dir", dir, "-maze_id",
		"1", "-entry_x", "0", "-entry_y", "0", "-exit_x", "2", "-exit_y", "2",
		"-show_path", "-output_file", outFile)
	require.Equal(t, 0, code, out)
	assert.FileExists(t, outFile)
}

func TestUnknownMode(t *testing.T) {
	code, out := runTool(t, "", "-mode", "bogus", "-dir", t.TempDir())
	assert.Equal(t, 1, code)
	assert.Contains(t, out, "unknown mode")
}

func TestGetEnvWithDefault(t *testing.T) {
	t.Setenv("MAZE_TEST_VALUE", "here")
	assert.Equal(t, "here", getEnvWithDefault("MAZE_TEST_VALUE", "x"))
	assert.Equal(t, "x", getEnvWithDefault("MAZE_TEST_UNSET_VALUE", "x"))

	t.Setenv("MAZE_TEST_SEED", "1234")
	assert.Equal(t, int64(1234), getEnvAsInt64WithDefault("MAZE_TEST_SEED",
		-1))
	t.Setenv("MAZE_TEST_SEED", "twelve")
	assert.Equal(t, int64(-1), getEnvAsInt64WithDefault("MAZE_TEST_SEED",
		-1))
}
