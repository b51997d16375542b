package main

import (
	"context"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/litescript/ls-orbitals/internal/render"
	"github.com/litescript/ls-orbitals/internal/state"
	"github.com/litescript/ls-orbitals/internal/viewer"
)

// heldKeys are polled with key repeat; everything else arrives as typed
// characters.
var heldKeys = map[ebiten.Key]string{
	ebiten.KeyArrowUp:    "up",
	ebiten.KeyArrowDown:  "down",
	ebiten.KeyArrowLeft:  "left",
	ebiten.KeyArrowRight: "right",
	ebiten.KeyEscape:     "escape",
}

type game struct {
	ctx    context.Context
	mgr    *state.Manager
	worker *viewer.Worker
	size   int

	img   *ebiten.Image
	dirty bool
	help  bool
}

func newGame(ctx context.Context, mgr *state.Manager, worker *viewer.Worker, size int) *game {
	return &game{
		ctx:    ctx,
		mgr:    mgr,
		worker: worker,
		size:   size,
		img:    ebiten.NewImage(size, size),
		help:   true,
	}
}

func (g *game) Update() error {
	var names []string
	for key, name := range heldKeys {
		if viewer.Repeats(inpututil.KeyPressDuration(key)) {
			names = append(names, name)
		}
	}
	for _, r := range ebiten.AppendInputChars(nil) {
		if r == 'h' {
			g.help = !g.help
			continue
		}
		names = append(names, string(r))
	}

	fresh, quit := g.worker.Tick(g.ctx, g.mgr, names)
	if quit {
		return ebiten.Termination
	}
	if fresh {
		g.dirty = true
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	snap := g.mgr.Snapshot()
	if g.dirty && snap.Frame != nil {
		g.img.WritePixels(snap.Frame.RGBA())
		g.dirty = false
	}
	screen.DrawImage(g.img, nil)
	ebitenutil.DebugPrint(screen, statusText(snap, g.help))
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.size, g.size
}

func statusText(snap state.Snapshot, help bool) string {
	s := fmt.Sprintf("%s %s  %s", snap.State.Label(), snap.State, snap.Mode)
	if snap.Rendering {
		s += "  rendering..."
	} else if snap.LastDuration > 0 {
		s += fmt.Sprintf("  %dms", snap.LastDuration.Milliseconds())
	}
	if snap.LastError != nil {
		s += "\nerror: " + snap.LastError.Error()
	}
	if snap.Mode == render.ModeSlice {
		s += fmt.Sprintf("\n%s plane", snap.Slice.Plane)
	} else {
		v := snap.Volume
		s += fmt.Sprintf("\nclip %.2f %.2f %.2f  x%.2f", v.ClipX, v.ClipY, v.ClipZ, v.ColorScale)
	}
	if help {
		s += "\narrows/wasd rotate, z/Z roll, x/y/c clip\nn/l/m orbital (shift: down), +/- bright\nv mode, p plane, g palette, r reset, h help, q quit"
	}
	return s
}
