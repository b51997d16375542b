// Package state provides thread-safe state management for the application.
package state

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/litescript/ls-orbitals/internal/orbital"
	"github.com/litescript/ls-orbitals/internal/render"
)

// Axis names one of the three clip / rotation axes.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	default:
		return fmt.Sprintf("Axis(%d)", int(a))
	}
}

// Color scale bounds.
const (
	MinColorScale = 0.01
	MaxColorScale = 100.0
)

// RenderRequest identifies one render handed to a worker.
type RenderRequest struct {
	ID      uuid.UUID
	Key     render.Key
	Started time.Time
}

// RenderRecord is one entry of the render history.
type RenderRecord struct {
	ID       uuid.UUID
	Mode     render.Mode
	State    orbital.QuantumState
	Width    int
	Height   int
	Duration time.Duration
	At       time.Time
	Err      error
}

// Manager handles all shared application state with thread-safe access.
type Manager struct {
	mu sync.RWMutex

	// What to render
	quantum orbital.QuantumState
	mode    render.Mode
	slice   render.SliceParams
	volume  render.VolumeParams
	width   int
	height  int

	// Latest finished frame
	frame        *render.PixelBuffer
	frameKey     render.Key
	lastError    error
	lastDuration time.Duration

	// In-flight request, nil when idle
	pending *RenderRequest

	// Render history (ring buffer)
	history      []RenderRecord
	maxHistory   int
	historyWrite int

	// Configuration
	maxN        int
	rotateStep  float64
	clipStep    float64
	colorFactor float64
}

// Config holds configuration for the state manager.
type Config struct {
	Initial     orbital.QuantumState
	Mode        render.Mode
	Slice       render.SliceParams
	Volume      render.VolumeParams
	MaxN        int
	MaxHistory  int
	RotateStep  float64
	ClipStep    float64
	ColorFactor float64
}

// DefaultConfig returns sensible default configuration.
func DefaultConfig() Config {
	return Config{
		Initial:     orbital.QuantumState{N: 2, L: 1, M: 0},
		Mode:        render.ModeVolume,
		Slice:       render.DefaultSliceParams(),
		Volume:      render.DefaultVolumeParams(),
		MaxN:        7,
		MaxHistory:  32,
		RotateStep:  0.1,  // radians per key press
		ClipStep:    0.05, // fraction per key press
		ColorFactor: 1.25,
	}
}

// NewManager creates a new state manager. An invalid initial state falls
// back to the ground state.
func NewManager(cfg Config) *Manager {
	def := DefaultConfig()
	if cfg.MaxN <= 0 {
		cfg.MaxN = def.MaxN
	}
	if cfg.MaxHistory <= 0 {
		cfg.MaxHistory = def.MaxHistory
	}
	if cfg.RotateStep <= 0 {
		cfg.RotateStep = def.RotateStep
	}
	if cfg.ClipStep <= 0 {
		cfg.ClipStep = def.ClipStep
	}
	if cfg.ColorFactor <= 1 {
		cfg.ColorFactor = def.ColorFactor
	}
	if cfg.Slice.Scale <= 0 {
		cfg.Slice.Scale = render.DefaultSliceScale
	}
	if cfg.Volume.Validate() != nil {
		cfg.Volume = def.Volume
	}
	q := cfg.Initial
	if q.Validate() != nil || q.N > cfg.MaxN {
		q = orbital.GroundState
	}

	return &Manager{
		quantum:     q,
		mode:        cfg.Mode,
		slice:       cfg.Slice,
		volume:      cfg.Volume,
		history:     make([]RenderRecord, 0, cfg.MaxHistory),
		maxHistory:  cfg.MaxHistory,
		maxN:        cfg.MaxN,
		rotateStep:  cfg.RotateStep,
		clipStep:    cfg.ClipStep,
		colorFactor: cfg.ColorFactor,
	}
}

// Quantum returns the current quantum numbers.
func (m *Manager) Quantum() orbital.QuantumState {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.quantum
}

// SetQuantum replaces the quantum numbers. Invalid triples are rejected and
// leave the state untouched.
func (m *Manager) SetQuantum(q orbital.QuantumState) error {
	if err := q.Validate(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if q.N > m.maxN {
		return fmt.Errorf("%w: n=%d exceeds maximum %d", orbital.ErrInvalidQuantumState, q.N, m.maxN)
	}
	m.quantum = q
	return nil
}

// StepN moves n by delta within [1, MaxN], lowering l and |m| as needed.
// It reports whether anything changed.
func (m *Manager) StepN(delta int) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	q := m.quantum
	q.N = clampInt(q.N+delta, 1, m.maxN)
	q.L = clampInt(q.L, 0, q.N-1)
	q.M = clampInt(q.M, -q.L, q.L)
	return m.setLocked(q)
}

// StepL moves l by delta within [0, n-1], lowering |m| as needed.
func (m *Manager) StepL(delta int) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	q := m.quantum
	q.L = clampInt(q.L+delta, 0, q.N-1)
	q.M = clampInt(q.M, -q.L, q.L)
	return m.setLocked(q)
}

// StepM moves m by delta within [-l, l].
func (m *Manager) StepM(delta int) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	q := m.quantum
	q.M = clampInt(q.M+delta, -q.L, q.L)
	return m.setLocked(q)
}

func (m *Manager) setLocked(q orbital.QuantumState) bool {
	if q == m.quantum {
		return false
	}
	m.quantum = q
	return true
}

// Mode returns the active renderer.
func (m *Manager) Mode() render.Mode {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.mode
}

// SetMode selects the renderer.
func (m *Manager) SetMode(mode render.Mode) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.mode = mode
}

// SetSize sets the render target size in pixels. Non-positive sizes are
// stored as-is; BeginRender refuses them.
func (m *Manager) SetSize(width, height int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.width = width
	m.height = height
}

// Rotate adds the given angles (radians) to the volume rotation.
func (m *Manager) Rotate(dx, dy, dz float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.volume.RotationX = wrapAngle(m.volume.RotationX + dx)
	m.volume.RotationY = wrapAngle(m.volume.RotationY + dy)
	m.volume.RotationZ = wrapAngle(m.volume.RotationZ + dz)
}

// AdjustClip moves one clip fraction by delta within [0, 1].
func (m *Manager) AdjustClip(axis Axis, delta float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	switch axis {
	case AxisX:
		m.volume.ClipX = clampFloat(m.volume.ClipX+delta, 0, 1)
	case AxisY:
		m.volume.ClipY = clampFloat(m.volume.ClipY+delta, 0, 1)
	case AxisZ:
		m.volume.ClipZ = clampFloat(m.volume.ClipZ+delta, 0, 1)
	}
}

// ScaleColor multiplies the volume color scale by factor, clamped to
// [MinColorScale, MaxColorScale].
func (m *Manager) ScaleColor(factor float64) {
	if !(factor > 0) {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.volume.ColorScale = clampFloat(m.volume.ColorScale*factor, MinColorScale, MaxColorScale)
}

// TogglePlane switches the slice plane.
func (m *Manager) TogglePlane() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slice.Plane = m.slice.Plane.Toggle()
}

// CyclePalette advances both renderers to the next palette.
func (m *Manager) CyclePalette() {
	m.mu.Lock()
	defer m.mu.Unlock()
	next := m.volume.Palette.Next()
	m.volume.Palette = next
	m.slice.Palette = next
}

// ResetView restores rotation, clipping and color scale. Quantum numbers,
// palette and plane are kept.
func (m *Manager) ResetView() {
	m.mu.Lock()
	defer m.mu.Unlock()
	def := render.DefaultVolumeParams()
	def.Palette = m.volume.Palette
	def.Samples = m.volume.Samples
	def.WorldScale = m.volume.WorldScale
	m.volume = def
}

// Key returns the render key for the current state.
func (m *Manager) Key() render.Key {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.keyLocked()
}

// keyLocked leaves the parameters of the inactive renderer zero, so that
// adjusting them does not trigger a render.
func (m *Manager) keyLocked() render.Key {
	k := render.Key{
		Mode:   m.mode,
		State:  m.quantum,
		Width:  m.width,
		Height: m.height,
	}
	if m.mode == render.ModeSlice {
		k.Slice = m.slice
	} else {
		k.Volume = m.volume
	}
	return k
}

// NeedsRender reports whether the current state differs from both the
// displayed frame and the frame being rendered.
func (m *Manager) NeedsRender() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.needsRenderLocked(m.keyLocked())
}

func (m *Manager) needsRenderLocked(key render.Key) bool {
	if key.Width <= 0 || key.Height <= 0 {
		return false
	}
	if m.pending != nil {
		return m.pending.Key != key
	}
	return m.frame == nil || m.frameKey != key
}

// BeginRender registers a render of the current state and returns its
// request. It returns false if nothing needs rendering. A new request
// supersedes any in-flight one; the older result will be discarded.
func (m *Manager) BeginRender() (RenderRequest, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := m.keyLocked()
	if !m.needsRenderLocked(key) {
		return RenderRequest{}, false
	}
	req := RenderRequest{
		ID:      uuid.New(),
		Key:     key,
		Started: time.Now(),
	}
	m.pending = &req
	return req, true
}

// CompleteRender stores the result of a request. Results of superseded
// requests are dropped and false is returned.
func (m *Manager) CompleteRender(id uuid.UUID, buf *render.PixelBuffer, err error) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.pending == nil || m.pending.ID != id {
		return false
	}
	req := *m.pending
	m.pending = nil

	now := time.Now()
	m.lastDuration = now.Sub(req.Started)
	m.lastError = err
	if err == nil {
		m.frame = buf
		m.frameKey = req.Key
	}

	m.addRecord(RenderRecord{
		ID:       req.ID,
		Mode:     req.Key.Mode,
		State:    req.Key.State,
		Width:    req.Key.Width,
		Height:   req.Key.Height,
		Duration: m.lastDuration,
		At:       now,
		Err:      err,
	})
	return true
}

// Rendering reports whether a request is in flight.
func (m *Manager) Rendering() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.pending != nil
}

// addRecord adds a record to the ring buffer.
func (m *Manager) addRecord(r RenderRecord) {
	if len(m.history) < m.maxHistory {
		m.history = append(m.history, r)
	} else {
		m.history[m.historyWrite] = r
		m.historyWrite = (m.historyWrite + 1) % m.maxHistory
	}
}

// getHistoryOrdered returns records oldest first.
func (m *Manager) getHistoryOrdered() []RenderRecord {
	if len(m.history) == 0 {
		return nil
	}
	if len(m.history) < m.maxHistory {
		result := make([]RenderRecord, len(m.history))
		copy(result, m.history)
		return result
	}
	result := make([]RenderRecord, m.maxHistory)
	for i := 0; i < m.maxHistory; i++ {
		result[i] = m.history[(m.historyWrite+i)%m.maxHistory]
	}
	return result
}

// RecentRenders returns the last n history records.
func (m *Manager) RecentRenders(n int) []RenderRecord {
	m.mu.RLock()
	defer m.mu.RUnlock()

	all := m.getHistoryOrdered()
	if len(all) <= n {
		return all
	}
	return all[len(all)-n:]
}

// Snapshot represents an immutable snapshot of current state. Frame is
// shared and must not be written to.
type Snapshot struct {
	State        orbital.QuantumState
	Mode         render.Mode
	Slice        render.SliceParams
	Volume       render.VolumeParams
	Width        int
	Height       int
	Frame        *render.PixelBuffer
	FrameKey     render.Key
	Stale        bool
	Rendering    bool
	LastError    error
	LastDuration time.Duration
	History      []RenderRecord
}

// Snapshot returns a consistent snapshot of current state.
func (m *Manager) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	key := m.keyLocked()
	return Snapshot{
		State:        m.quantum,
		Mode:         m.mode,
		Slice:        m.slice,
		Volume:       m.volume,
		Width:        m.width,
		Height:       m.height,
		Frame:        m.frame,
		FrameKey:     m.frameKey,
		Stale:        m.frame == nil || m.frameKey != key,
		Rendering:    m.pending != nil,
		LastError:    m.lastError,
		LastDuration: m.lastDuration,
		History:      m.getHistoryOrdered(),
	}
}

// RotateStep returns the configured rotation increment.
func (m *Manager) RotateStep() float64 { return m.rotateStep }

// ClipStep returns the configured clip increment.
func (m *Manager) ClipStep() float64 { return m.clipStep }

// ColorFactor returns the configured color scale multiplier.
func (m *Manager) ColorFactor() float64 { return m.colorFactor }

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampFloat(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// wrapAngle keeps an angle in (-π, π].
func wrapAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a > math.Pi {
		a -= 2 * math.Pi
	} else if a <= -math.Pi {
		a += 2 * math.Pi
	}
	return a
}
