package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-orbitals/internal/export"
	"github.com/litescript/ls-orbitals/internal/render"
	"github.com/litescript/ls-orbitals/internal/state"
)

// OrbitViewModel shows the latest rendered frame as half-block cells.
type OrbitViewModel struct {
	width    int
	height   int
	snapshot state.Snapshot
	animTick int

	// cached half-block text of the current frame
	frame *render.PixelBuffer
	cells string
}

// NewOrbitViewModel creates a new orbit view.
func NewOrbitViewModel() OrbitViewModel {
	return OrbitViewModel{}
}

// SetSize updates the viewport size.
func (m OrbitViewModel) SetSize(width, height int) OrbitViewModel {
	m.width = width
	m.height = height
	return m
}

// SetAnimTick updates the animation tick for shimmer effects.
func (m OrbitViewModel) SetAnimTick(tick int) OrbitViewModel {
	m.animTick = tick
	return m
}

// UpdateData updates with a new state snapshot. The half-block text is
// rebuilt only when the frame changes.
func (m OrbitViewModel) UpdateData(snapshot state.Snapshot) OrbitViewModel {
	m.snapshot = snapshot
	if snapshot.Frame != m.frame {
		m.frame = snapshot.Frame
		m.cells = indent(export.HalfBlocks(snapshot.Frame), strings.Repeat(" ", sideMargin))
	}
	return m
}

// View renders the status line and the frame.
func (m OrbitViewModel) View() string {
	status := m.renderStatusLine()
	if m.frame == nil {
		return status + "\n\n  " + renderShimmerText("Rendering orbital...", m.animTick)
	}
	return status + "\n" + m.cells
}

func (m OrbitViewModel) renderStatusLine() string {
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#FF8C00")).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	staleStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Italic(true)

	s := m.snapshot
	line := "  " + labelStyle.Render(s.State.Label()) + " " + dimStyle.Render(s.State.String())

	switch s.Mode {
	case render.ModeVolume:
		v := s.Volume
		line += dimStyle.Render(fmt.Sprintf("  rot %+.2f %+.2f %+.2f  clip %.2f %.2f %.2f  ×%.2f  %s",
			v.RotationX, v.RotationY, v.RotationZ, v.ClipX, v.ClipY, v.ClipZ, v.ColorScale, v.Palette))
	case render.ModeSlice:
		line += dimStyle.Render(fmt.Sprintf("  %s plane  scale %.0f  %s", s.Slice.Plane, s.Slice.Scale, s.Slice.Palette))
	}

	if s.Stale && s.Frame != nil {
		line += staleStyle.Render("  (updating)")
	}
	return line
}

func indent(text, prefix string) string {
	if text == "" {
		return ""
	}
	return prefix + strings.ReplaceAll(text, "\n", "\n"+prefix)
}
