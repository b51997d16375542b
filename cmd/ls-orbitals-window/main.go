// Command ls-orbitals-window shows hydrogen orbitals in a desktop window.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/litescript/ls-orbitals/internal/logging"
	"github.com/litescript/ls-orbitals/internal/orbital"
	"github.com/litescript/ls-orbitals/internal/render"
	"github.com/litescript/ls-orbitals/internal/state"
	"github.com/litescript/ls-orbitals/internal/version"
	"github.com/litescript/ls-orbitals/internal/viewer"
)

const (
	minSize = 32
	maxSize = 1024
)

func main() {
	n := flag.Int("n", 2, "Principal quantum number")
	l := flag.Int("l", 1, "Azimuthal quantum number")
	m := flag.Int("m", 0, "Magnetic quantum number")
	size := flag.Int("size", 256, "Render size in pixels (square)")
	zoom := flag.Int("zoom", 2, "Window pixels per render pixel")
	modeName := flag.String("mode", "volume", "Renderer (volume, slice)")
	logLevel := flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	flag.Parse()

	if *size < minSize {
		*size = minSize
	} else if *size > maxSize {
		*size = maxSize
	}
	if *zoom < 1 {
		*zoom = 1
	}

	logger := logging.New(logging.ParseLevel(*logLevel))

	mode, err := render.ParseMode(*modeName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
	q := orbital.QuantumState{N: *n, L: *l, M: *m}
	if err := q.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	cfg := state.DefaultConfig()
	cfg.Initial = q
	cfg.Mode = mode
	if q.N > cfg.MaxN {
		cfg.MaxN = q.N
	}
	mgr := state.NewManager(cfg)
	mgr.SetSize(*size, *size)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	worker := viewer.NewWorker(logger)
	go worker.Run(ctx)

	game := newGame(ctx, mgr, worker, *size)
	ebiten.SetWindowTitle(fmt.Sprintf("ls-orbitals %s v%s", q.Label(), version.Version))
	ebiten.SetWindowSize(*size**zoom, *size**zoom)
	ebiten.SetTPS(60)

	logger.Info("window viewer %dx%d, %s", *size, *size, q)
	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
