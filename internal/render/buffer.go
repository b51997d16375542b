// Package render turns hydrogen orbitals into BGRA pixel buffers, either as a
// planar cross-section heatmap or as a ray-marched volume.
package render

import (
	"errors"
	"fmt"
	"image"

	"github.com/litescript/ls-orbitals/internal/colormap"
)

// BytesPerPixel is the size of one BGRA pixel.
const BytesPerPixel = 4

// ErrInvalidDimensions is returned for non-positive image sizes or scales.
var ErrInvalidDimensions = errors.New("invalid dimensions")

// PixelBuffer is a row-major, top-to-bottom image with interleaved
// B, G, R, A bytes. len(Pix) is always Width*Height*4.
//
// A buffer returned by a render call belongs to the caller.
type PixelBuffer struct {
	Width  int
	Height int
	Pix    []byte
}

// NewPixelBuffer allocates a zeroed buffer.
func NewPixelBuffer(width, height int) *PixelBuffer {
	return &PixelBuffer{
		Width:  width,
		Height: height,
		Pix:    make([]byte, width*height*BytesPerPixel),
	}
}

// Offset returns the index of the blue byte of pixel (x, y).
func (b *PixelBuffer) Offset(x, y int) int {
	return (y*b.Width + x) * BytesPerPixel
}

// Set writes an opaque pixel.
func (b *PixelBuffer) Set(x, y int, c colormap.RGB) {
	i := b.Offset(x, y)
	b.Pix[i+0] = c.B
	b.Pix[i+1] = c.G
	b.Pix[i+2] = c.R
	b.Pix[i+3] = 255
}

// At returns the color of pixel (x, y), ignoring alpha.
func (b *PixelBuffer) At(x, y int) colormap.RGB {
	i := b.Offset(x, y)
	return colormap.RGB{R: b.Pix[i+2], G: b.Pix[i+1], B: b.Pix[i+0]}
}

// Brightness returns the channel sum of pixel (x, y), 0..765.
func (b *PixelBuffer) Brightness(x, y int) int {
	i := b.Offset(x, y)
	return int(b.Pix[i]) + int(b.Pix[i+1]) + int(b.Pix[i+2])
}

// RGBA returns a copy of the pixels in R, G, B, A order, the layout
// image.RGBA and most GPU upload paths expect. All pixels are opaque, so
// premultiplication does not change anything.
func (b *PixelBuffer) RGBA() []byte {
	out := make([]byte, len(b.Pix))
	for i := 0; i < len(b.Pix); i += BytesPerPixel {
		out[i+0] = b.Pix[i+2]
		out[i+1] = b.Pix[i+1]
		out[i+2] = b.Pix[i+0]
		out[i+3] = b.Pix[i+3]
	}
	return out
}

// NRGBA converts the buffer to an image for encoding.
func (b *PixelBuffer) NRGBA() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, b.Width, b.Height))
	copy(img.Pix, b.RGBA())
	return img
}

func checkDimensions(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	return nil
}
