package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/carlmjohnson/versioninfo"
	"github.com/iancoleman/strcase"
	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"
	"github.com/urfave/cli/v2"

	"github.com/pdok/zcurve/bench"
	"github.com/pdok/zcurve/config"
	"github.com/pdok/zcurve/dispatch"
	"github.com/pdok/zcurve/lookup"
	"github.com/pdok/zcurve/svg"
	"github.com/pdok/zcurve/zcurve"
)

const CONFIG string = `config`
const DEGREE string = `degree`
const VARIANT string = `variant`
const THREADS string = `threads`
const TABLES string = `tables`
const VECTORBACKEND string = `vector-backend`

const SVG string = `svg`
const SVGSTYLE string = `svg-style`
const WKT string = `wkt`
const ITERATIONS string = `iterations`
const PAUSE string = `pause`
const COMPARE string = `compare`
const MODE string = `mode`
const INDEX string = `index`
const X string = `x`
const Y string = `y`
const BUNDLE string = `bundle`

const envPrefix = `ZCURVE_`
const wktPreviewWidth = 120

func envVars(flag string) []string {
	return []string{envPrefix + strcase.ToScreamingSnake(flag)}
}

//nolint:funlen
func main() {
	app := cli.NewApp()
	app.Name = "zcurve"
	app.Usage = "Computes Z-order (Morton) curves with a range of interchangeable algorithms"
	app.Version = versioninfo.Short()

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    CONFIG,
			Aliases: []string{"c"},
			Usage:   "YAML or JSON config file. Flags override its values",
			EnvVars: envVars(CONFIG),
		},
		&cli.UintFlag{
			Name:    DEGREE,
			Aliases: []string{"d"},
			Usage:   "Degree of the Z-curve, 1 to 16. The grid has 2^degree points per side",
			EnvVars: envVars(DEGREE),
		},
		&cli.StringFlag{
			Name:    VARIANT,
			Aliases: []string{"V"},
			Usage:   "Name or id of the implementation to use. See the variants command. Defaults to id 0",
			EnvVars: envVars(VARIANT),
		},
		&cli.IntFlag{
			Name:    THREADS,
			Aliases: []string{"t"},
			Usage:   "Number of workers of the parallel implementation, 1 to 8",
			Value:   3,
			EnvVars: envVars(THREADS),
		},
		&cli.StringFlag{
			Name:    TABLES,
			Usage:   "Directory or file with lookup table artifacts (see the tables command). Built at startup when not given",
			EnvVars: envVars(TABLES),
		},
		&cli.StringFlag{
			Name:    VECTORBACKEND,
			Usage:   "Backend of the vectorized implementations: detect, scalar or lanes",
			Value:   "detect",
			EnvVars: envVars(VECTORBACKEND),
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:  "run",
			Usage: "Generate the full curve",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    SVG,
					Aliases: []string{"s"},
					Usage:   "Save the curve to this file. An SVG image, or WKT when the name ends in .wkt. Without this flag the curve is saved only when the config sets svg.save, to svg.filename",
					EnvVars: envVars(SVG),
				},
				&cli.StringFlag{
					Name:    SVGSTYLE,
					Usage:   "How to draw the curve: path or line",
					Value:   "path",
					EnvVars: envVars(SVGSTYLE),
				},
				&cli.BoolFlag{
					Name:    WKT,
					Usage:   "Print a preview of the curve as WKT",
					EnvVars: envVars(WKT),
				},
			},
			Action: runFullCurve,
		},
		{
			Name:      "decode",
			Usage:     "Calculate the coordinates of the point at an index",
			ArgsUsage: "<index>",
			Action:    runDecode,
		},
		{
			Name:      "encode",
			Usage:     "Calculate the index of the point at coordinates",
			ArgsUsage: "<x> <y>",
			Action:    runEncode,
		},
		{
			Name:   "variants",
			Usage:  "List the implementations per mode with their ids",
			Action: listVariants,
		},
		{
			Name:  "bench",
			Usage: "Measure the runtime of an implementation",
			Flags: []cli.Flag{
				&cli.UintFlag{
					Name:    ITERATIONS,
					Aliases: []string{"n"},
					Usage:   "Number of repetitions, 1 to 1000000",
					Value:   bench.DefaultIterations,
					EnvVars: envVars(ITERATIONS),
				},
				&cli.DurationFlag{
					Name:    PAUSE,
					Usage:   "Pause between two repetitions",
					EnvVars: envVars(PAUSE),
				},
				&cli.BoolFlag{
					Name:    COMPARE,
					Usage:   "Measure every implementation of the mode and rank them",
					EnvVars: envVars(COMPARE),
				},
				&cli.StringFlag{
					Name:    MODE,
					Aliases: []string{"m"},
					Usage:   "full-curve, decode or encode",
					Value:   dispatch.FullCurve.String(),
					EnvVars: envVars(MODE),
				},
				&cli.Uint64Flag{
					Name:    INDEX,
					Aliases: []string{"i"},
					Usage:   "Index to decode",
				},
				&cli.Uint64Flag{
					Name:  X,
					Usage: "x-coordinate to encode",
				},
				&cli.Uint64Flag{
					Name:  Y,
					Usage: "y-coordinate to encode",
				},
			},
			Action: runBench,
		},
		{
			Name:      "tables",
			Usage:     "Generate the lookup tables and save them as artifacts",
			ArgsUsage: "<dir>",
			Flags: []cli.Flag{
				&cli.BoolFlag{
					Name:  BUNDLE,
					Usage: "Write all tables into one file (" + lookup.SetFileName + ") instead of one file per table",
				},
			},
			Action: generateTables,
		},
	}

	err := app.Run(os.Args)
	if err != nil {
		log.Fatal(err)
	}
}

// loadConfig merges defaults, the config file and the flags that were set.
func loadConfig(c *cli.Context) (config.Config, error) {
	var (
		cfg config.Config
		err error
	)
	if path := c.String(CONFIG); path != "" {
		cfg, err = config.Load(path)
	} else {
		cfg, err = config.Default()
	}
	if err != nil {
		return cfg, err
	}
	if c.IsSet(DEGREE) {
		cfg.Degree = c.Uint(DEGREE)
	}
	if c.IsSet(VARIANT) {
		cfg.Variant = c.String(VARIANT)
	}
	if c.IsSet(THREADS) {
		cfg.Threads = c.Int(THREADS)
	}
	if c.IsSet(TABLES) {
		cfg.Tables = c.String(TABLES)
	}
	if c.IsSet(VECTORBACKEND) {
		cfg.VectorBackend = c.String(VECTORBACKEND)
	}
	if c.IsSet(SVG) {
		cfg.SVG.Filename = c.String(SVG)
		cfg.SVG.Save = true
	}
	if c.IsSet(SVGSTYLE) {
		cfg.SVG.Style = c.String(SVGSTYLE)
	}
	if c.IsSet(ITERATIONS) {
		cfg.Bench.Iterations = c.Uint(ITERATIONS)
	}
	if c.IsSet(PAUSE) {
		cfg.Bench.PauseSeconds = c.Duration(PAUSE).Seconds()
	}
	return cfg, nil
}

func newDispatcher(cfg config.Config) (*dispatch.Dispatcher, error) {
	backend, err := cfg.Backend()
	if err != nil {
		return nil, err
	}
	opts := []dispatch.Option{dispatch.WithBackend(backend), dispatch.WithThreads(cfg.Threads)}
	if cfg.Tables != "" {
		tables, err := lookup.Load(cfg.Tables)
		if err != nil {
			return nil, fmt.Errorf("error loading lookup tables: %w", err)
		}
		opts = append(opts, dispatch.WithTables(tables))
	}
	return dispatch.New(opts...)
}

// setup loads and validates the config and builds the dispatcher from it.
func setup(c *cli.Context) (config.Config, *dispatch.Dispatcher, error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return cfg, nil, err
	}
	if err = cfg.Validate(); err != nil {
		return cfg, nil, err
	}
	d, err := newDispatcher(cfg)
	return cfg, d, err
}

func runFullCurve(c *cli.Context) error {
	cfg, d, err := setup(c)
	if err != nil {
		return err
	}
	req := dispatch.Request{Mode: dispatch.FullCurve, Variant: cfg.Variant, Degree: cfg.Degree}
	variant, err := d.Resolve(req.Mode, req.Variant)
	if err != nil {
		return err
	}
	buf, err := zcurve.NewBuffer(cfg.Degree)
	if err != nil {
		return err
	}

	fmt.Printf("You have chosen version: %s\n", variant)
	if err = d.Generate(req, buf); err != nil {
		return err
	}
	fmt.Println("Finished generating zcurve!")

	opts := svg.Options{
		Scale:       cfg.SVG.Scale,
		Offset:      cfg.SVG.Offset,
		Style:       svg.Style(cfg.SVG.Style),
		StrokeScale: 1,
	}
	if c.Bool(WKT) {
		preview, err := svg.Preview(cfg.Degree, buf, opts, wktPreviewWidth)
		if err != nil {
			return err
		}
		fmt.Println(preview)
	}
	if path, ok := cfg.SVGOutput(); ok {
		log.Printf("saving curve to %s", path)
		if err = svg.Save(path, cfg.Degree, buf, opts); err != nil {
			return err
		}
		log.Println("done")
	}
	return nil
}

func parseUint(s, what string) (uint64, error) {
	v, err := strconv.ParseUint(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", what, s, err)
	}
	return v, nil
}

func runDecode(c *cli.Context) error {
	if c.Args().Len() != 1 {
		return cli.ShowSubcommandHelp(c)
	}
	idx, err := parseUint(c.Args().Get(0), "index")
	if err != nil {
		return err
	}
	cfg, d, err := setup(c)
	if err != nil {
		return err
	}
	result, err := d.Run(dispatch.Request{Mode: dispatch.Decode, Variant: cfg.Variant, Degree: cfg.Degree, Index: idx}, zcurve.Buffer{})
	if err != nil {
		return err
	}
	fmt.Printf("%s: Index %d for degree %d at: (%d, %d)\n", result.Variant, idx, cfg.Degree, result.Point.X, result.Point.Y)
	return nil
}

func runEncode(c *cli.Context) error {
	if c.Args().Len() != 2 {
		return cli.ShowSubcommandHelp(c)
	}
	x, err := parseUint(c.Args().Get(0), "x-coordinate")
	if err != nil {
		return err
	}
	y, err := parseUint(c.Args().Get(1), "y-coordinate")
	if err != nil {
		return err
	}
	cfg, d, err := setup(c)
	if err != nil {
		return err
	}
	result, err := d.Run(dispatch.Request{Mode: dispatch.Encode, Variant: cfg.Variant, Degree: cfg.Degree, X: x, Y: y}, zcurve.Buffer{})
	if err != nil {
		return err
	}
	fmt.Printf("%s: Position (%d, %d) for degree %d at index: %d\n", result.Variant, x, y, cfg.Degree, result.Index)
	return nil
}

var modeDescriptions = map[dispatch.Mode]string{
	dispatch.FullCurve: "Computes every point of the curve, in index order. Used by run and by bench without --mode.",
	dispatch.Decode:    "Computes the coordinates of a single index. Used by decode and by bench --mode decode.",
	dispatch.Encode:    "Computes the index of a single pair of coordinates. Used by encode and by bench --mode encode.",
}

func listVariants(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	d, err := newDispatcher(cfg)
	if err != nil {
		return err
	}
	fmt.Println("Available implementations:")
	for _, mode := range dispatch.Modes {
		fmt.Printf("Mode: %s\n", mode)
		fmt.Println(indent.String(wordwrap.String(modeDescriptions[mode], 72), 4))
		var lines strings.Builder
		for _, e := range d.Variants(mode) {
			fmt.Fprintf(&lines, "%-20s : %d  (%s)\n", e.Variant, e.ID, e.Variant.Alias())
		}
		fmt.Print(indent.String(lines.String(), 8))
	}
	return nil
}

func runBench(c *cli.Context) error {
	cfg, d, err := setup(c)
	if err != nil {
		return err
	}
	mode, err := dispatch.ParseMode(c.String(MODE))
	if err != nil {
		return err
	}
	req := dispatch.Request{
		Mode:    mode,
		Variant: cfg.Variant,
		Degree:  cfg.Degree,
		Index:   c.Uint64(INDEX),
		X:       c.Uint64(X),
		Y:       c.Uint64(Y),
	}
	var buf zcurve.Buffer
	if mode == dispatch.FullCurve {
		if buf, err = zcurve.NewBuffer(cfg.Degree); err != nil {
			return err
		}
	}
	pause := time.Duration(cfg.Bench.PauseSeconds * float64(time.Second))
	runner := bench.NewRunner(d, cfg.Bench.Iterations, pause)

	if c.Bool(COMPARE) {
		log.Printf("=== start benchmarking %d implementations ===", len(d.Variants(mode)))
		results, err := runner.Compare(req, buf)
		if err != nil {
			return err
		}
		log.Println("=== done benchmarking ===")
		fmt.Printf("Run %s, mode %s, degree %d, %d iterations\n", results[0].RunID, mode, cfg.Degree, cfg.Bench.Iterations)
		for i, r := range results {
			fmt.Printf("%2d. %-20s mean %-14v min %-14v max %v\n", i+1, r.Variant, r.Mean, r.Min, r.Max)
		}
		return nil
	}

	variant, err := d.Resolve(mode, req.Variant)
	if err != nil {
		return err
	}
	fmt.Printf("Running implementation: %s\n", variant)
	result, err := runner.Run(req, buf)
	if err != nil {
		return err
	}
	switch mode {
	case dispatch.Decode:
		fmt.Printf("Index %d for degree %d at: (%d, %d)\n", req.Index, req.Degree, result.Last.Point.X, result.Last.Point.Y)
	case dispatch.Encode:
		fmt.Printf("Position (%d, %d) for degree %d at index: %d\n", req.X, req.Y, req.Degree, result.Last.Index)
	}
	if result.Iterations == 1 {
		fmt.Printf("One repetition takes %f seconds\n", result.Total.Seconds())
	} else {
		fmt.Println(result)
	}
	return nil
}

func generateTables(c *cli.Context) error {
	if c.Args().Len() != 1 {
		return cli.ShowSubcommandHelp(c)
	}
	dir := c.Args().Get(0)

	log.Println("=== start generating lookup tables ===")
	set, err := lookup.NewSet()
	if err != nil {
		return err
	}
	if c.Bool(BUNDLE) {
		if err = os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
		path := filepath.Join(dir, lookup.SetFileName)
		if err = lookup.SaveSet(path, set); err != nil {
			return err
		}
		log.Printf("  wrote %s", path)
	} else {
		paths, err := lookup.SaveDir(dir, set)
		if err != nil {
			return err
		}
		for _, p := range paths {
			log.Printf("  wrote %s", p)
		}
	}
	log.Println("=== done generating lookup tables ===")
	return nil
}
