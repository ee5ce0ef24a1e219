// This defines an executable for generating mazes, finding paths through
// them, and drawing them.
//
// Mazes are saved as maze_<id>.txt under -dir. Paths are saved as
// maze_<id>_path_<entryX>_<entryY>_<exitX>_<exitY>.txt.
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	log "github.com/sirupsen/logrus"
	"github.com/yalue/textmaze"
	"io"
	"os"
	"strconv"
	"strings"
)

// Asks for integers on an input stream, re-asking after invalid answers.
type prompter struct {
	in  *bufio.Reader
	out io.Writer
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	return &prompter{
		in:  bufio.NewReader(in),
		out: out,
	}
}

// Prints the question and reads integers until one at least min is given.
// Fails only if the input ends.
func (p *prompter) askInt(question string, min int) (int, error) {
	for {
		fmt.Fprintf(p.out, "%s: ", question)
		line, e := p.in.ReadString('\n')
		line = strings.TrimSpace(line)
		if line != "" {
			value, convErr := strconv.Atoi(line)
			if (convErr == nil) && (value >= min) {
				return value, nil
			}
			fmt.Fprintf(p.out, "Please enter an integer of at least %d.\n",
				min)
		}
		if e != nil {
			return 0, fmt.Errorf("reading answer to %q: %w", question, e)
		}
	}
}

// The command-line settings for one invocation.
type options struct {
	mode        string
	dir         string
	count       int
	rows        int
	cols        int
	seed        int64
	mazeID      int
	entryX      int
	entryY      int
	exitX       int
	exitY       int
	outFilename string
	showPath    bool
	validate    bool
	interactive bool
	logLevel    string
}

func parseOptions(args []string, cfg config) (*options, error) {
	var o options
	flags := flag.NewFlagSet("maze_tool", flag.ContinueOnError)
	flags.StringVar(&o.mode, "mode", "generate",
		"One of \"generate\", \"solve\" or \"render\".")
	flags.StringVar(&o.dir, "dir", cfg.Dir,
		"The directory holding maze and path files.")
	flags.IntVar(&o.count, "count", 0,
		"The number of mazes to generate.")
	flags.IntVar(&o.rows, "rows", 0,
		"The height of each generated maze, in cells.")
	flags.IntVar(&o.cols, "cols", 0,
		"The width of each generated maze, in cells.")
	flags.Int64Var(&o.seed, "seed", cfg.Seed,
		"If positive, specifies the random seed to use.")
	flags.IntVar(&o.mazeID, "maze_id", 0,
		"The id of the maze to solve or render.")
	flags.IntVar(&o.entryX, "entry_x", -1, "The entry cell's column.")
	flags.IntVar(&o.entryY, "entry_y", -1, "The entry cell's row.")
	flags.IntVar(&o.exitX, "exit_x", -1, "The exit cell's column.")
	flags.IntVar(&o.exitY, "exit_y", -1, "The exit cell's row.")
	flags.StringVar(&o.outFilename, "output_file", "",
		"In render mode, the .png file to write. If empty, the maze is "+
			"printed as text.")
	flags.BoolVar(&o.showPath, "show_path", false,
		"In render mode, find and highlight the path from entry to exit.")
	flags.BoolVar(&o.validate, "validate", false,
		"In generate mode, check that each saved maze is perfect.")
	flags.BoolVar(&o.interactive, "interactive", false,
		"Prompt on stdin for any value not given on the command line.")
	flags.StringVar(&o.logLevel, "log_level", cfg.LogLevel,
		"The logging level (debug, info, warn, error).")
	e := flags.Parse(args)
	if e != nil {
		return nil, e
	}
	return &o, nil
}

// Fills in missing values by prompting, if interactive mode is on.
// Otherwise, fails if any required value is missing.
func (o *options) complete(p *prompter) error {
	type question struct {
		value *int
		name  string
		min   int
	}
	var questions []question
	switch o.mode {
	case "generate":
		questions = []question{
			{&o.count, "number of mazes (K)", 1},
			{&o.rows, "number of rows (M)", 1},
			{&o.cols, "number of columns (N)", 1},
		}
	case "solve", "render":
		questions = []question{
			{&o.mazeID, "maze ID", 1},
			{&o.entryX, "entry X (column)", 0},
			{&o.entryY, "entry Y (row)", 0},
			{&o.exitX, "exit X (column)", 0},
			{&o.exitY, "exit Y (row)", 0},
		}
	default:
		return fmt.Errorf("unknown mode %q", o.mode)
	}
	for _, q := range questions {
		if *q.value >= q.min {
			continue
		}
		if !o.interactive {
			return fmt.Errorf("missing or invalid value: %s", q.name)
		}
		v, e := p.askInt("Enter the "+q.name, q.min)
		if e != nil {
			return e
		}
		*q.value = v
	}
	return nil
}

func (o *options) entry() textmaze.Point {
	return textmaze.Point{X: o.entryX, Y: o.entryY}
}

func (o *options) exit() textmaze.Point {
	return textmaze.Point{X: o.exitX, Y: o.exitY}
}

func runGenerate(o *options, store textmaze.Store, out io.Writer) int {
	rng := textmaze.NewRand(o.seed)
	saved, e := textmaze.GenerateBatch(store, o.count, o.rows, o.cols, rng)
	failed := false
	if e != nil {
		fmt.Fprintf(out, "Generated %d of %d mazes: %s\n", len(saved),
			o.count, e)
		failed = true
	}
	if o.validate {
		for _, id := range saved {
			g, _, checkErr := textmaze.LoadMaze(store, id)
			if checkErr == nil {
				checkErr = textmaze.Validate(g)
			}
			if checkErr != nil {
				fmt.Fprintf(out, "Maze %d failed validation: %s\n", id,
					checkErr)
				failed = true
			}
		}
	}
	if failed {
		return 1
	}
	fmt.Fprintf(out, "All mazes are generated.\n")
	return 0
}

func runSolve(o *options, store *textmaze.FileStore, out io.Writer) int {
	p, e := textmaze.SolveStored(store, o.mazeID, o.entry(), o.exit())
	if errors.Is(e, textmaze.ErrPathNotFound) {
		fmt.Fprintf(out, "No path found.\n")
		return 1
	}
	if e != nil {
		fmt.Fprintf(out, "Error finding path: %s\n", e)
		return 1
	}
	fmt.Fprintf(out, "Path of %d cells written to %s\n", len(p),
		store.PathFile(o.mazeID, o.entry(), o.exit()))
	return 0
}

func runRender(o *options, store *textmaze.FileStore, out io.Writer) int {
	g, _, e := textmaze.LoadMaze(store, o.mazeID)
	if e != nil {
		fmt.Fprintf(out, "Error loading maze %d: %s\n", o.mazeID, e)
		return 1
	}
	var p textmaze.Path
	if o.showPath {
		p, e = textmaze.FindPath(g, o.entry(), o.exit())
		if errors.Is(e, textmaze.ErrPathNotFound) {
			fmt.Fprintf(out, "No path found.\n")
		} else if e != nil {
			fmt.Fprintf(out, "Error finding path: %s\n", e)
			return 1
		}
	}
	if o.outFilename == "" {
		fmt.Fprint(out, g.String())
		return 0
	}
	f, e := os.Create(o.outFilename)
	if e != nil {
		fmt.Fprintf(out, "Error creating output file %s: %s\n",
			o.outFilename, e)
		return 1
	}
	defer f.Close()
	e = textmaze.RenderPNG(f, g, p, o.entry(), o.exit())
	if e != nil {
		fmt.Fprintf(out, "Error writing image to %s: %s\n", o.outFilename, e)
		return 1
	}
	fmt.Fprintf(out, "Image %s written OK.\n", o.outFilename)
	return 0
}

func run(args []string, in io.Reader, out io.Writer) int {
	cfg := loadConfig()
	o, e := parseOptions(args, cfg)
	if e != nil {
		fmt.Fprintln(out, "Invalid or missing argument.")
		fmt.Fprintln(out, "Run with -help for more information.")
		return 1
	}
	level, e := log.ParseLevel(o.logLevel)
	if e != nil {
		fmt.Fprintf(out, "Invalid log level %q\n", o.logLevel)
		return 1
	}
	log.SetLevel(level)
	textmaze.SetLogger(log.StandardLogger())

	e = o.complete(newPrompter(in, out))
	if e != nil {
		fmt.Fprintf(out, "%s\n", e)
		fmt.Fprintln(out, "Run with -help for more information.")
		return 1
	}
	store, e := textmaze.NewFileStore(o.dir)
	if e != nil {
		fmt.Fprintf(out, "%s\n", e)
		return 1
	}
	log.WithFields(log.Fields{
		"mode": o.mode,
		"dir":  store.Dir(),
	}).Debug("Starting")

	switch o.mode {
	case "generate":
		return runGenerate(o, store, out)
	case "solve":
		return runSolve(o, store, out)
	}
	return runRender(o, store, out)
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout))
}
