package render

import (
	"fmt"

	"github.com/litescript/ls-orbitals/internal/orbital"
)

// Mode selects the renderer.
type Mode int

const (
	ModeVolume Mode = iota
	ModeSlice
)

func (m Mode) String() string {
	switch m {
	case ModeVolume:
		return "volume"
	case ModeSlice:
		return "slice"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Toggle returns the other mode.
func (m Mode) Toggle() Mode {
	if m == ModeSlice {
		return ModeVolume
	}
	return ModeSlice
}

// ParseMode parses "volume" or "slice".
func ParseMode(s string) (Mode, error) {
	switch s {
	case "", "volume", "3d":
		return ModeVolume, nil
	case "slice", "2d":
		return ModeSlice, nil
	default:
		return ModeVolume, fmt.Errorf("unknown mode %q (want volume or slice)", s)
	}
}

// Key fully determines one render. Two equal keys produce byte-identical
// buffers, so callers can skip a render whose key matches the last one.
type Key struct {
	Mode   Mode
	State  orbital.QuantumState
	Width  int
	Height int
	Slice  SliceParams
	Volume VolumeParams
}

// Render dispatches k to the slice or volume renderer.
func Render(k Key) (*PixelBuffer, error) {
	switch k.Mode {
	case ModeSlice:
		return RenderSlice(k.State, k.Width, k.Height, k.Slice)
	case ModeVolume:
		return RenderVolume(k.State, k.Width, k.Height, k.Volume)
	default:
		return nil, fmt.Errorf("unknown render mode %v", k.Mode)
	}
}
