// Package export writes rendered orbitals and sampled point clouds to
// files and terminals.
package export

import (
	"fmt"
	"image/png"
	"io"
	"os"

	"github.com/litescript/ls-orbitals/internal/render"
)

// WritePNG encodes buf as a PNG image.
func WritePNG(w io.Writer, buf *render.PixelBuffer) error {
	if buf == nil {
		return fmt.Errorf("write png: nil buffer")
	}
	return png.Encode(w, buf.NRGBA())
}

// SavePNG writes buf to path, replacing any existing file.
func SavePNG(path string, buf *render.PixelBuffer) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("save png: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("save png: %w", cerr)
		}
	}()
	return WritePNG(f, buf)
}
