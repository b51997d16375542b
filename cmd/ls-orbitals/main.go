// Command ls-orbitals is a terminal UI for exploring hydrogen atom orbitals.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"math/rand"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/litescript/ls-orbitals/internal/colormap"
	"github.com/litescript/ls-orbitals/internal/export"
	"github.com/litescript/ls-orbitals/internal/logging"
	"github.com/litescript/ls-orbitals/internal/orbital"
	"github.com/litescript/ls-orbitals/internal/render"
	"github.com/litescript/ls-orbitals/internal/state"
	"github.com/litescript/ls-orbitals/internal/ui"
)

// CLI flags for headless mode
var (
	pngPath     string
	pointCount  int
	pointsPath  string
	seed        int64
	summaryMode bool
	previewMode bool
)

const (
	minSize    = 1
	maxSize    = 4096
	maxPoints  = 1_000_000
	defaultN   = 2
	defaultL   = 1
	defaultDim = 256
)

func main() {
	n := flag.Int("n", defaultN, "Principal quantum number (n >= 1)")
	l := flag.Int("l", defaultL, "Azimuthal quantum number (0 <= l < n)")
	m := flag.Int("m", 0, "Magnetic quantum number (|m| <= l)")
	modeName := flag.String("mode", "volume", "Renderer: volume (3d) or slice (2d)")
	width := flag.Int("width", defaultDim, "Image width in pixels (headless)")
	height := flag.Int("height", defaultDim, "Image height in pixels (headless)")
	scale := flag.Float64("scale", render.DefaultSliceScale, "Slice scale in pixels per Bohr radius")
	planeName := flag.String("plane", "meridional", "Slice plane: equatorial (xy) or meridional (xz)")
	paletteName := flag.String("palette", "fire", "Color palette: fire or gray")
	rotX := flag.Float64("rot-x", render.DefaultVolumeParams().RotationX, "Volume rotation about X (radians)")
	rotY := flag.Float64("rot-y", render.DefaultVolumeParams().RotationY, "Volume rotation about Y (radians)")
	rotZ := flag.Float64("rot-z", 0, "Volume rotation about Z (radians)")
	clipX := flag.Float64("clip-x", 0, "Volume clip fraction along X (0..1)")
	clipY := flag.Float64("clip-y", 0, "Volume clip fraction along Y (0..1)")
	clipZ := flag.Float64("clip-z", 0, "Volume clip fraction along Z (0..1)")
	colorScale := flag.Float64("color-scale", 1, "Volume brightness multiplier")
	samples := flag.Int("samples", render.DefaultSamples, "Volume samples per ray")
	worldScale := flag.Float64("world-scale", 1, "Volume world units per Bohr radius")
	logLevel := flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	logFile := flag.String("log-file", "", "Write TUI logs to file")
	flag.StringVar(&pngPath, "png", "", "Render one frame to a PNG file")
	flag.IntVar(&pointCount, "points", 0, "Sample N points from the probability density")
	flag.StringVar(&pointsPath, "points-out", "-", "Point cloud JSON destination (use - for stdout)")
	flag.Int64Var(&seed, "seed", 1, "Random seed for point sampling")
	flag.BoolVar(&summaryMode, "summary", false, "Print frame statistics instead of TUI")
	flag.BoolVar(&previewMode, "preview", false, "Print the frame as half-block text")
	flag.Parse()

	// Clamp sizes
	*width = clampInt(*width, minSize, maxSize)
	*height = clampInt(*height, minSize, maxSize)
	pointCount = clampInt(pointCount, 0, maxPoints)

	logger := logging.New(logging.ParseLevel(*logLevel))

	q := orbital.QuantumState{N: *n, L: *l, M: *m}
	if err := q.Validate(); err != nil {
		fatal(err)
	}
	mode, err := render.ParseMode(*modeName)
	if err != nil {
		fatal(err)
	}
	plane, err := render.ParsePlane(*planeName)
	if err != nil {
		fatal(err)
	}
	palette, err := colormap.ParsePalette(*paletteName)
	if err != nil {
		fatal(err)
	}

	key := render.Key{
		Mode:   mode,
		State:  q,
		Width:  *width,
		Height: *height,
		Slice:  render.SliceParams{Scale: *scale, Plane: plane, Palette: palette},
		Volume: render.VolumeParams{
			RotationX:  *rotX,
			RotationY:  *rotY,
			RotationZ:  *rotZ,
			ClipX:      *clipX,
			ClipY:      *clipY,
			ClipZ:      *clipZ,
			ColorScale: *colorScale,
			Samples:    *samples,
			WorldScale: *worldScale,
			Palette:    palette,
		},
	}
	if err := key.Volume.Validate(); err != nil {
		fatal(err)
	}

	// Headless mode: no TUI
	headless := pngPath != "" || pointCount > 0 || summaryMode || previewMode
	if headless {
		if err := checkStdout(pointCount, pointsPath, summaryMode, previewMode); err != nil {
			fatal(err)
		}
		if err := runHeadless(key, logger); err != nil {
			fatal(err)
		}
		return
	}

	// The alternate screen owns the terminal, so logs go to a file or nowhere.
	uiLogger := logging.Discard()
	if *logFile != "" {
		f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fatal(fmt.Errorf("open log file: %w", err))
		}
		defer f.Close()
		logger.SetOutput(f)
		uiLogger = logger
	}

	stateCfg := state.DefaultConfig()
	stateCfg.Initial = q
	stateCfg.Mode = mode
	stateCfg.Slice = key.Slice
	stateCfg.Volume = key.Volume
	if q.N > stateCfg.MaxN {
		stateCfg.MaxN = q.N
	}
	stateMgr := state.NewManager(stateCfg)

	model := ui.New(stateMgr, uiLogger)
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		os.Exit(1)
	}
}

// runHeadless handles all headless modes without starting the TUI.
func runHeadless(key render.Key, logger *logging.Logger) error {
	log := logger.Named("headless")

	if pointCount > 0 {
		if err := writePoints(key.State, log); err != nil {
			return err
		}
	}

	if pngPath == "" && !summaryMode && !previewMode {
		return nil
	}

	if previewMode && pngPath == "" && !summaryMode {
		// Size the preview to the terminal: one cell is two pixel rows.
		if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 && h > 2 {
			key.Width = clampInt(w, minSize, maxSize)
			key.Height = clampInt(2*(h-2), minSize, maxSize)
		}
	}

	start := time.Now()
	buf, err := render.Render(key)
	if err != nil {
		return fmt.Errorf("render %s: %w", key.State.Label(), err)
	}
	elapsed := time.Since(start)
	log.Debug("rendered %s %s %dx%d in %v", key.Mode, key.State, key.Width, key.Height, elapsed)

	if pngPath != "" {
		if err := export.SavePNG(pngPath, buf); err != nil {
			return fmt.Errorf("save PNG: %w", err)
		}
		log.Info("wrote %s", pngPath)
	}

	if summaryMode {
		export.WriteSummary(os.Stdout, key, buf, elapsed)
	}

	if previewMode {
		if summaryMode {
			fmt.Println()
		}
		fmt.Println(export.HalfBlocks(buf))
	}
	return nil
}

func writePoints(q orbital.QuantumState, log *logging.Logger) error {
	rng := rand.New(rand.NewSource(seed))
	pts, err := orbital.Sample(q, pointCount, rng)
	if err != nil {
		return fmt.Errorf("sample points: %w", err)
	}
	cloud := export.NewPointCloud(q, seed, pts, time.Now().UTC())

	var w io.Writer = os.Stdout
	if pointsPath != "-" {
		f, err := os.Create(pointsPath)
		if err != nil {
			return fmt.Errorf("create points file: %w", err)
		}
		defer f.Close()
		w = f
	}
	if err := cloud.WriteJSON(w); err != nil {
		return fmt.Errorf("write points JSON: %w", err)
	}
	log.Debug("sampled %d points for %s (seed %d)", len(pts), q.Label(), seed)
	return nil
}

// checkStdout rejects output combinations that would interleave the point
// cloud JSON with the text summary or preview on stdout.
func checkStdout(points int, path string, summary, preview bool) error {
	if points <= 0 || path != "-" || (!summary && !preview) {
		return nil
	}
	return errors.New("-points writes JSON to stdout; use -points-out FILE together with -summary or -preview")
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
