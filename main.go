// Command shadow imports and exports WebXR camera pose animations, moving
// them between the recorder's JSON interchange format and a keyframed scene
// document.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/jameskane05/shadow/internal/clip"
	"github.com/jameskane05/shadow/internal/exporter"
	"github.com/jameskane05/shadow/internal/importer"
	"github.com/jameskane05/shadow/internal/pipeline"
	"github.com/jameskane05/shadow/internal/report"
	"github.com/jameskane05/shadow/internal/runlog"
	"github.com/jameskane05/shadow/internal/scene"
	"github.com/jameskane05/shadow/internal/version"
)

const defaultRunLog = "shadow.db"

func main() {
	log.SetFlags(0)
	flag.Usage = printUsage
	flag.Parse()

	if flag.NArg() < 1 {
		printUsage()
		os.Exit(2)
	}

	command := flag.Arg(0)
	args := flag.Args()[1:]

	var err error
	switch command {
	case "import":
		err = runImport(args)
	case "export":
		err = runExport(args)
	case "plot":
		err = runPlot(args)
	case "runs":
		err = runRuns(args)
	case "version":
		fmt.Printf("shadow version %s (%s, built %s)\n", version.Version, version.GitSHA, version.BuildTime)
	case "help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(2)
	}
	if err != nil {
		log.Printf("Error: %v", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`shadow - WebXR camera animation importer/exporter

Usage: shadow <command> [options]

Commands:
  import     Import a recorded animation JSON file into a scene document
  export     Export a scene document's camera animation to JSON
  plot       Render a recorded animation's camera path (HTML and/or PNG)
  runs       List recorded import/export runs
  version    Show shadow version
  help       Show this help message

Run 'shadow <command> -h' for command options.`)
}

func runImport(args []string) error {
	defaults := importer.DefaultOptions()

	fs := flag.NewFlagSet("import", flag.ExitOnError)
	in := fs.String("in", "", "Animation JSON file to import (required)")
	scenePath := fs.String("scene", "scene.json", "Scene document to create or update")
	optionsPath := fs.String("options", "", "Options JSON file overlaying the defaults")
	scale := fs.Float64("scale", defaults.ScaleFactor, "Position scale factor")
	coords := fs.String("coords", defaults.CoordinateSystem, "Coordinate system: HOST or WEBXR")
	deltas := fs.Bool("deltas", defaults.ApplyDeltas, "Apply poses as deltas relative to the target's starting pose")
	fps := fs.Float64("fps", defaults.FrameRate, "Target keyframe rate")
	create := fs.Bool("create-camera", defaults.CreateCamera, "Create a new camera for the animation")
	useActive := fs.Bool("use-active-camera", defaults.UseExistingCamera, "Apply the animation to the scene's active camera")
	dbPath := fs.String("db", defaultRunLog, "Run log database path (empty disables logging)")
	fs.Parse(args)

	if *in == "" {
		return fmt.Errorf("import requires -in <animation.json>")
	}

	opts := defaults
	if *optionsPath != "" {
		var err error
		if opts, err = importer.LoadOptions(*optionsPath); err != nil {
			return err
		}
	}
	// Explicit flags win over the options file.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "scale":
			opts.ScaleFactor = *scale
		case "coords":
			opts.CoordinateSystem = *coords
		case "deltas":
			opts.ApplyDeltas = *deltas
		case "fps":
			opts.FrameRate = *fps
		case "create-camera":
			opts.CreateCamera = *create
		case "use-active-camera":
			opts.UseExistingCamera = *useActive
		}
	})
	if err := opts.Validate(); err != nil {
		return err
	}

	data, err := os.ReadFile(*in)
	if err != nil {
		return fmt.Errorf("failed to read animation file: %w", err)
	}

	sc, err := loadOrCreateScene(*scenePath)
	if err != nil {
		return err
	}

	res, err := importer.Run(sc, data, filepath.Base(*in), opts)
	if err != nil {
		return err
	}
	if res.Status == pipeline.StatusFinished {
		if err := sc.Save(*scenePath); err != nil {
			return err
		}
	}
	recordRun(*dbPath, runlog.KindImport, filepath.Base(*in), data, res)

	log.Printf("%s", res.Message)
	if res.Status == pipeline.StatusCancelled {
		os.Exit(1)
	}
	return nil
}

func runExport(args []string) error {
	defaults := exporter.DefaultOptions()

	fs := flag.NewFlagSet("export", flag.ExitOnError)
	out := fs.String("out", "", "Animation JSON file to write (required)")
	scenePath := fs.String("scene", "scene.json", "Scene document to export from")
	optionsPath := fs.String("options", "", "Options JSON file overlaying the defaults")
	scale := fs.Float64("scale", defaults.ScaleFactor, "Position scale factor (inverse of import)")
	coords := fs.String("coords", defaults.CoordinateSystem, "Coordinate system: WEBXR or HOST")
	sampleMode := fs.String("sample-mode", defaults.SampleMode, "Sampling: KEYFRAMES, ALL_FRAMES or CUSTOM_RATE")
	stride := fs.Int("sample-rate", defaults.CustomSampleRate, "Frame stride for CUSTOM_RATE sampling")
	noPosition := fs.Bool("no-position", false, "Omit position data from the export")
	selected := fs.Bool("selected", false, "Export the first selected camera instead of the active one")
	refSpace := fs.String("reference-space", defaults.ReferenceSpaceType, "WebXR reference space type metadata")
	dbPath := fs.String("db", defaultRunLog, "Run log database path (empty disables logging)")
	fs.Parse(args)

	if *out == "" {
		return fmt.Errorf("export requires -out <animation.json>")
	}

	opts := defaults
	if *optionsPath != "" {
		var err error
		if opts, err = exporter.LoadOptions(*optionsPath); err != nil {
			return err
		}
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "scale":
			opts.ScaleFactor = *scale
		case "coords":
			opts.CoordinateSystem = *coords
		case "sample-mode":
			opts.SampleMode = *sampleMode
		case "sample-rate":
			opts.CustomSampleRate = *stride
		case "no-position":
			opts.ExportPosition = !*noPosition
		case "selected":
			opts.ExportActiveCamera = !*selected
		case "reference-space":
			opts.ReferenceSpaceType = *refSpace
		}
	})
	if err := opts.Validate(); err != nil {
		return err
	}

	sc, err := scene.Load(*scenePath)
	if err != nil {
		return err
	}

	res, data, err := exporter.Run(sc, opts)
	if err != nil {
		return err
	}
	if res.Status == pipeline.StatusFinished {
		if err := os.WriteFile(*out, data, 0644); err != nil {
			return fmt.Errorf("failed to write animation file: %w", err)
		}
	}
	recordRun(*dbPath, runlog.KindExport, filepath.Base(*out), data, res)

	log.Printf("%s", res.Message)
	if res.Status == pipeline.StatusCancelled {
		os.Exit(1)
	}
	return nil
}

func runPlot(args []string) error {
	fs := flag.NewFlagSet("plot", flag.ExitOnError)
	in := fs.String("in", "", "Animation JSON file to plot (required)")
	htmlPath := fs.String("html", "", "Write an interactive HTML chart page here")
	pngPath := fs.String("png", "", "Write a static PNG path plot here")
	fs.Parse(args)

	if *in == "" {
		return fmt.Errorf("plot requires -in <animation.json>")
	}
	if *htmlPath == "" && *pngPath == "" {
		return fmt.Errorf("plot requires -html and/or -png output paths")
	}

	data, err := os.ReadFile(*in)
	if err != nil {
		return fmt.Errorf("failed to read animation file: %w", err)
	}
	c, err := clip.Decode(data)
	if err != nil {
		return err
	}

	title := filepath.Base(*in)
	if *htmlPath != "" {
		f, err := os.Create(*htmlPath)
		if err != nil {
			return fmt.Errorf("failed to create HTML file: %w", err)
		}
		defer f.Close()
		if err := report.RenderHTML(c, title, f); err != nil {
			return err
		}
		log.Printf("Wrote %s", *htmlPath)
	}
	if *pngPath != "" {
		if err := report.WritePNG(c, title, *pngPath); err != nil {
			return err
		}
		log.Printf("Wrote %s", *pngPath)
	}
	return nil
}

func runRuns(args []string) error {
	fs := flag.NewFlagSet("runs", flag.ExitOnError)
	dbPath := fs.String("db", defaultRunLog, "Run log database path")
	limit := fs.Int("limit", 20, "Maximum number of runs to list")
	fs.Parse(args)

	db, err := runlog.Open(*dbPath, nil)
	if err != nil {
		return err
	}
	defer db.Close()

	runs, err := db.List(*limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		log.Printf("No runs recorded in %s", *dbPath)
		return nil
	}
	for _, r := range runs {
		fmt.Printf("%s  %-7s %-9s %-30s frames=%-5d duration=%.2fs  %s\n",
			r.CreatedAt.Format("2006-01-02 15:04:05"), r.Kind, r.Status, r.Source, r.Frames, r.DurationSeconds, r.Message)
	}
	return nil
}

// loadOrCreateScene opens an existing scene document or starts a fresh one
// when the file does not exist yet.
func loadOrCreateScene(path string) (*scene.Scene, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return scene.New(), nil
	}
	return scene.Load(path)
}

// recordRun best-effort logs a run to the sqlite history. Failures are
// reported but never fail the conversion itself.
func recordRun(dbPath, kind, source string, data []byte, res pipeline.Result) {
	if dbPath == "" {
		return
	}
	db, err := runlog.Open(dbPath, nil)
	if err != nil {
		log.Printf("warning: failed to open run log: %v", err)
		return
	}
	defer db.Close()

	run := runlog.Run{
		Kind:    kind,
		Source:  source,
		Status:  res.Status.String(),
		Message: res.Message,
	}
	if c, err := clip.Decode(data); err == nil {
		run.Frames = len(c.Frames)
		run.DurationSeconds = c.Duration()
		run.ReferenceSpace = c.ReferenceSpaceType
	}
	if _, err := db.Record(run); err != nil {
		log.Printf("warning: failed to record run: %v", err)
	}
}
