package export

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/litescript/ls-orbitals/internal/colormap"
	"github.com/litescript/ls-orbitals/internal/render"
)

// UpperHalfBlock draws two vertically stacked pixels in one terminal cell:
// the foreground is the upper pixel, the background the lower one.
const UpperHalfBlock = "▀"

// Hex returns the #rrggbb form of c.
func Hex(c colormap.RGB) string {
	return colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}.Hex()
}

// HalfBlocks renders buf as ceil(Height/2) lines of Width cells. An odd last
// row is paired with black. Runs of identical cells share one style.
func HalfBlocks(buf *render.PixelBuffer) string {
	if buf == nil || buf.Width == 0 || buf.Height == 0 {
		return ""
	}

	var sb strings.Builder
	for y := 0; y < buf.Height; y += 2 {
		if y > 0 {
			sb.WriteByte('\n')
		}
		x := 0
		for x < buf.Width {
			top, bottom := cellColors(buf, x, y)
			run := 1
			for x+run < buf.Width {
				t, b := cellColors(buf, x+run, y)
				if t != top || b != bottom {
					break
				}
				run++
			}
			style := lipgloss.NewStyle().
				Foreground(lipgloss.Color(Hex(top))).
				Background(lipgloss.Color(Hex(bottom)))
			sb.WriteString(style.Render(strings.Repeat(UpperHalfBlock, run)))
			x += run
		}
	}
	return sb.String()
}

func cellColors(buf *render.PixelBuffer, x, y int) (top, bottom colormap.RGB) {
	top = buf.At(x, y)
	if y+1 < buf.Height {
		bottom = buf.At(x, y+1)
	}
	return top, bottom
}
