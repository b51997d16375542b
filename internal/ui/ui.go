// Package ui provides the terminal user interface using Bubble Tea.
package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/litescript/ls-orbitals/internal/logging"
	"github.com/litescript/ls-orbitals/internal/render"
	"github.com/litescript/ls-orbitals/internal/state"
	"github.com/litescript/ls-orbitals/internal/version"
)

// ViewMode represents the current UI view.
type ViewMode int

const (
	ViewVolume ViewMode = iota
	ViewSlice
	ViewInfo
)

// Layout: logo (4) + tabs (1) + blank (1) above the content, footer (1)
// below it. The orbit view spends one content line on its status line.
const (
	headerLines = 6
	footerLines = 1
	statusLines = 1
	sideMargin  = 2
)

// Msg types for Bubble Tea
type (
	// AnimTickMsg triggers fast animation updates.
	AnimTickMsg time.Time

	// renderDoneMsg carries a finished render back to the UI goroutine.
	renderDoneMsg struct {
		id       uuid.UUID
		buf      *render.PixelBuffer
		err      error
		duration time.Duration
	}
)

// Model is the root Bubble Tea model.
type Model struct {
	// Dependencies
	state  *state.Manager
	logger *logging.Logger

	// UI state
	viewMode ViewMode
	width    int
	height   int
	ready    bool
	animTick int // Animation tick for spinner and shimmer effects

	// Sub-models
	orbitView OrbitViewModel
	infoView  InfoViewModel

	// Data snapshot (refreshed after every state change)
	snapshot state.Snapshot
}

// New creates a new root UI model.
func New(stateMgr *state.Manager, logger *logging.Logger) Model {
	if logger == nil {
		logger = logging.Discard()
	}
	view := ViewVolume
	if stateMgr.Mode() == render.ModeSlice {
		view = ViewSlice
	}
	return Model{
		state:     stateMgr,
		logger:    logger.Named("ui"),
		viewMode:  view,
		orbitView: NewOrbitViewModel(),
		infoView:  NewInfoViewModel(),
		snapshot:  stateMgr.Snapshot(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return animTickCmd()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch key := msg.String(); key {
		case "q", "ctrl+c":
			return m, tea.Quit

		case "1":
			m.setView(ViewVolume)
		case "2":
			m.setView(ViewSlice)
		case "3", "i":
			m.setView(ViewInfo)
		case "tab":
			// Cycle through views
			m.setView((m.viewMode + 1) % 3)

		default:
			action, ok := state.KeyActions[key]
			if !ok {
				break
			}
			m.state.Apply(action)
			if action == state.ActionToggleMode && m.viewMode != ViewInfo {
				m.viewMode = viewForMode(m.state.Mode())
			}
			m.logger.Debug("key %q -> %s, now %s", key, action, m.state.Quantum())
		}
		cmds = append(cmds, m.startRender())

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

		w, h := imageSize(msg.Width, msg.Height)
		m.state.SetSize(w, h)
		m.orbitView = m.orbitView.SetSize(msg.Width, msg.Height-headerLines-footerLines)
		m.infoView = m.infoView.SetSize(msg.Width, msg.Height-headerLines-footerLines)
		cmds = append(cmds, m.startRender())

	case AnimTickMsg:
		cmds = append(cmds, animTickCmd())
		m.animTick++
		m.orbitView = m.orbitView.SetAnimTick(m.animTick)

	case renderDoneMsg:
		if m.state.CompleteRender(msg.id, msg.buf, msg.err) {
			if msg.err != nil {
				m.logger.Error("render failed: %v", msg.err)
			} else {
				m.logger.Debug("render %s done in %v", msg.id, msg.duration)
			}
		} else {
			m.logger.Debug("dropping stale render %s", msg.id)
		}
		// Pick up anything that changed while the render was running
		cmds = append(cmds, m.startRender())
	}

	m.refresh()
	return m, tea.Batch(cmds...)
}

// setView switches views; the image views also select the renderer.
func (m *Model) setView(v ViewMode) {
	m.viewMode = v
	switch v {
	case ViewVolume:
		m.state.SetMode(render.ModeVolume)
	case ViewSlice:
		m.state.SetMode(render.ModeSlice)
	}
}

func viewForMode(mode render.Mode) ViewMode {
	if mode == render.ModeSlice {
		return ViewSlice
	}
	return ViewVolume
}

// refresh pushes a fresh snapshot into the sub-models.
func (m *Model) refresh() {
	m.snapshot = m.state.Snapshot()
	m.orbitView = m.orbitView.UpdateData(m.snapshot)
	m.infoView = m.infoView.UpdateData(m.snapshot)
}

// startRender returns a command rendering the current state in the
// background, or nil if a render is already running or nothing changed.
// Renders are coalesced: state changes made while one runs are picked up
// when it finishes.
func (m Model) startRender() tea.Cmd {
	if m.state.Rendering() {
		return nil
	}
	req, ok := m.state.BeginRender()
	if !ok {
		return nil
	}
	return renderCmd(req)
}

func renderCmd(req state.RenderRequest) tea.Cmd {
	return func() tea.Msg {
		buf, err := render.Render(req.Key)
		return renderDoneMsg{
			id:       req.ID,
			buf:      buf,
			err:      err,
			duration: time.Since(req.Started),
		}
	}
}

// imageSize returns the pixel size of the image area for a terminal of the
// given size. Every cell shows two pixels stacked vertically.
func imageSize(cols, rows int) (int, int) {
	w := cols - 2*sideMargin
	h := 2 * (rows - headerLines - footerLines - statusLines)
	if w < 1 {
		w = 1
	}
	if h < 2 {
		h = 2
	}
	return w, h
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	var content string
	switch m.viewMode {
	case ViewVolume, ViewSlice:
		content = m.orbitView.View()
	case ViewInfo:
		content = m.infoView.View()
	}

	return m.renderFrame(content)
}

func (m Model) renderFrame(content string) string {
	header := m.renderHeader()
	footer := m.renderFooter()

	return header + content + "\n" + footer
}

func (m Model) renderHeader() string {
	return m.renderLogo() + m.renderTabs() + "\n\n"
}

func (m Model) renderLogo() string {
	logo := []string{
		`  ╻  ┏━┓   ┏━┓┏━┓┏┓ ╻╺┳╸┏━┓╻  ┏━┓`,
		`  ┃  ┗━┓╺━╸┃ ┃┣┳┛┣┻┓┃ ┃ ┣━┫┃  ┗━┓`,
		`  ┗━╸┗━┛   ┗━┛╹┗╸┗━┛╹ ╹ ╹ ╹┗━╸┗━┛`,
	}

	var b strings.Builder

	// Render each line with a horizontal truecolor gradient
	for row, line := range logo {
		runes := []rune(line)
		lineLen := len(runes)

		for col, r := range runes {
			color := gradientColor(col, row, lineLen, len(logo))
			style := lipgloss.NewStyle().Foreground(lipgloss.Color(color))
			b.WriteString(style.Render(string(r)))
		}
		b.WriteString("\n")
	}

	muted := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	b.WriteString(muted.Render(fmt.Sprintf("  Hydrogen orbitals · v%s", version.Version)))
	b.WriteString("\n")

	return b.String()
}

// gradientColor returns a hex color for a position in the logo gradient:
// deep purple -> red -> orange -> yellow, the hot half of the fire palette.
func gradientColor(col, row, width, height int) string {
	xRatio := float64(col) / float64(width)
	yRatio := float64(row) / float64(height)

	var r, g, b float64

	if xRatio < 0.33 {
		// Purple to red
		t := xRatio / 0.33
		r = 120 + t*(220-120)
		g = 40 + t*(40-40)
		b = 200 + t*(60-200)
	} else if xRatio < 0.66 {
		// Red to orange
		t := (xRatio - 0.33) / 0.33
		r = 220 + t*(255-220)
		g = 40 + t*(140-40)
		b = 60 + t*(0-60)
	} else {
		// Orange to yellow
		t := (xRatio - 0.66) / 0.34
		r = 255
		g = 140 + t*(230-140)
		b = 0
	}

	// Vertical fade: brighter at top, darker toward bottom
	brightnessFactor := 1.0 - (yRatio * 0.4)
	r *= brightnessFactor
	g *= brightnessFactor
	b *= brightnessFactor

	return fmt.Sprintf("#%02X%02X%02X", clampByte(r), clampByte(g), clampByte(b))
}

func clampByte(v float64) int {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return int(v)
}

func (m Model) renderTabs() string {
	tabs := []string{"[1] Volume", "[2] Slice", "[3] Info"}
	activeStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#FF8C00")).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))

	var parts []string
	for i, tab := range tabs {
		if ViewMode(i) == m.viewMode {
			parts = append(parts, activeStyle.Render("▶ "+tab))
		} else {
			parts = append(parts, dimStyle.Render("  "+tab))
		}
	}
	return "  " + strings.Join(parts, "  ")
}

func (m Model) renderFooter() string {
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	errorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#E84A27"))
	accentStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#FF8C00"))

	// Animated spinner frames
	spinnerFrames := []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
	spinner := spinnerFrames[m.animTick%len(spinnerFrames)]

	var status string
	switch {
	case m.snapshot.LastError != nil:
		status = errorStyle.Render("ERROR: " + m.snapshot.LastError.Error())
	case m.snapshot.Rendering:
		status = accentStyle.Render(spinner) + dimStyle.Render(" rendering")
	case m.snapshot.Frame != nil:
		status = accentStyle.Render("●") + dimStyle.Render(fmt.Sprintf(" %s in %s (avg %s)",
			m.snapshot.FrameKey.Mode,
			m.snapshot.LastDuration.Round(time.Millisecond),
			averageDuration(m.snapshot.History).Round(time.Millisecond)))
	default:
		status = accentStyle.Render(spinner) + dimStyle.Render(" waiting for first frame")
	}

	// View-specific help hints
	var help string
	switch m.viewMode {
	case ViewVolume:
		help = dimStyle.Render("wasd/arrows: rotate | z/Z: roll | x/y/c: clip | +/-: bright | n/l/m: orbital | g: palette | r: reset")
	case ViewSlice:
		help = dimStyle.Render("p: plane | n/l/m: orbital (shift: down) | g: palette")
	default:
		help = dimStyle.Render("n/l/m: orbital (shift: down) | tab: switch view | q: quit")
	}

	return "  " + status + "  " + dimStyle.Render("|") + "  " + help
}

// averageDuration returns the mean render time of successful renders.
func averageDuration(history []state.RenderRecord) time.Duration {
	var total time.Duration
	n := 0
	for _, r := range history {
		if r.Err == nil {
			total += r.Duration
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return total / time.Duration(n)
}

func animTickCmd() tea.Cmd {
	return tea.Tick(80*time.Millisecond, func(t time.Time) tea.Msg {
		return AnimTickMsg(t)
	})
}

// renderShimmerText renders text with a subtle moving shine effect.
func renderShimmerText(text string, tick int) string {
	runes := []rune(text)
	textLen := len(runes)
	if textLen == 0 {
		return ""
	}

	// Shimmer sweeps smoothly across
	pos := tick % (textLen + 8)

	var result strings.Builder
	for i, r := range runes {
		dist := i - pos + 4
		if dist < 0 {
			dist = -dist
		}

		// Dim ember base with a warm highlight
		var r8, g8, b8 int
		switch {
		case dist <= 1:
			r8, g8, b8 = 255, 200, 120
		case dist <= 3:
			r8, g8, b8 = 210, 130, 80
		case dist <= 5:
			r8, g8, b8 = 160, 90, 70
		default:
			r8, g8, b8 = 110, 60, 70
		}

		hexColor := fmt.Sprintf("#%02X%02X%02X", r8, g8, b8)
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(hexColor))
		result.WriteString(style.Render(string(r)))
	}

	return result.String()
}
