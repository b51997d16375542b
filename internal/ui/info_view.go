package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-orbitals/internal/colormap"
	"github.com/litescript/ls-orbitals/internal/export"
	"github.com/litescript/ls-orbitals/internal/orbital"
	"github.com/litescript/ls-orbitals/internal/render"
	"github.com/litescript/ls-orbitals/internal/state"
)

// SparklineWidth is the fixed width of the radial probability sparkline.
const SparklineWidth = 48

// sparklineBlocks are the Unicode block characters for sparkline (0 = lowest, 7 = highest).
var sparklineBlocks = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// InfoViewModel describes the current orbital and recent renders.
type InfoViewModel struct {
	width    int
	height   int
	snapshot state.Snapshot
}

// NewInfoViewModel creates a new info view.
func NewInfoViewModel() InfoViewModel {
	return InfoViewModel{}
}

// SetSize updates the viewport size.
func (m InfoViewModel) SetSize(width, height int) InfoViewModel {
	m.width = width
	m.height = height
	return m
}

// UpdateData updates with a new state snapshot.
func (m InfoViewModel) UpdateData(snapshot state.Snapshot) InfoViewModel {
	m.snapshot = snapshot
	return m
}

// View renders the info panel.
func (m InfoViewModel) View() string {
	titleStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#FF8C00")).Bold(true)
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Width(18)
	valueStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("252"))

	q := m.snapshot.State
	row := func(label, value string) string {
		return "  " + labelStyle.Render(label) + valueStyle.Render(value) + "\n"
	}

	var b strings.Builder
	b.WriteString("  " + titleStyle.Render("Orbital "+q.Label()) + "\n\n")
	b.WriteString(row("Quantum numbers", q.String()))
	b.WriteString(row("Energy", fmt.Sprintf("%.4f eV", q.Energy())))
	b.WriteString(row("Radial nodes", fmt.Sprintf("%d", q.RadialNodes())))
	b.WriteString(row("Angular nodes", fmt.Sprintf("%d", q.AngularNodes())))
	b.WriteString(row("Harmonic norm", fmt.Sprintf("%.5f", orbital.HarmonicNorm(q.L, q.M))))

	extent := render.ExtentPerN * float64(q.N)
	samples := radialProbability(q, extent, SparklineWidth)
	b.WriteString(row("Most probable r", fmt.Sprintf("%.2f a₀", peakRadius(samples, extent))))
	b.WriteString("\n  " + labelStyle.Render("r²R² (0.."+fmt.Sprintf("%.0f", extent)+" a₀)") +
		renderSparkline(samples) + "\n")

	b.WriteString("\n  " + titleStyle.Render("Recent renders") + "\n")
	b.WriteString(m.renderHistory(5))

	return b.String()
}

func (m InfoViewModel) renderHistory(n int) string {
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	errStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#E84A27"))

	hist := m.snapshot.History
	if len(hist) == 0 {
		return "  " + dimStyle.Render("none yet") + "\n"
	}
	if len(hist) > n {
		hist = hist[len(hist)-n:]
	}

	var b strings.Builder
	for i := len(hist) - 1; i >= 0; i-- {
		r := hist[i]
		line := fmt.Sprintf("%s  %-6s %-4s %4dx%-4d %8s",
			r.At.Format("15:04:05"), r.Mode, r.State.Label(), r.Width, r.Height, r.Duration.Round(time.Millisecond))
		if r.Err != nil {
			b.WriteString("  " + errStyle.Render(line+"  "+r.Err.Error()) + "\n")
		} else {
			b.WriteString("  " + dimStyle.Render(line) + "\n")
		}
	}
	return b.String()
}

// radialProbability samples r²R² at width bucket centers over [0, extent].
func radialProbability(q orbital.QuantumState, extent float64, width int) []float64 {
	if width <= 0 || q.Validate() != nil {
		return nil
	}
	out := make([]float64, width)
	for i := range out {
		r := (float64(i) + 0.5) / float64(width) * extent
		out[i] = orbital.RadialProbability(q.N, q.L, r)
	}
	return out
}

// peakRadius returns the bucket-center radius of the largest sample.
func peakRadius(samples []float64, extent float64) float64 {
	if len(samples) == 0 {
		return 0
	}
	best := 0
	for i, v := range samples {
		if v > samples[best] {
			best = i
		}
	}
	return (float64(best) + 0.5) / float64(len(samples)) * extent
}

// renderSparkline renders samples normalized to their maximum, colored
// with the fire palette.
func renderSparkline(samples []float64) string {
	max := 0.0
	for _, v := range samples {
		if v > max {
			max = v
		}
	}

	var sb strings.Builder
	for _, v := range samples {
		t := 0.0
		if max > 0 {
			t = v / max
		}
		blockIdx := int(t * 7.0)
		if blockIdx > 7 {
			blockIdx = 7
		}
		if blockIdx < 0 {
			blockIdx = 0
		}

		// Keep the lowest blocks visible on a black background
		color := export.Hex(colormap.Fire.At(0.25 + 0.75*t))
		sb.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(string(sparklineBlocks[blockIdx])))
	}
	return sb.String()
}
