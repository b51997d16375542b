package state

import (
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/google/uuid"

	"github.com/litescript/ls-orbitals/internal/colormap"
	"github.com/litescript/ls-orbitals/internal/orbital"
	"github.com/litescript/ls-orbitals/internal/render"
)

func TestNewManager(t *testing.T) {
	cfg := DefaultConfig()
	m := NewManager(cfg)

	if m == nil {
		t.Fatal("NewManager returned nil")
	}
	if got := m.Quantum(); got != cfg.Initial {
		t.Errorf("Quantum = %v, want %v", got, cfg.Initial)
	}
	if m.Mode() != render.ModeVolume {
		t.Errorf("Mode = %v, want volume", m.Mode())
	}
	if m.NeedsRender() {
		t.Error("NeedsRender should be false before a size is set")
	}
}

func TestNewManager_InvalidInitialFallsBack(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Initial = orbital.QuantumState{N: 1, L: 1, M: 0}
	m := NewManager(cfg)
	if got := m.Quantum(); got != orbital.GroundState {
		t.Errorf("Quantum = %v, want ground state", got)
	}
}

func TestManager_SetQuantum(t *testing.T) {
	m := NewManager(DefaultConfig())

	if err := m.SetQuantum(orbital.QuantumState{N: 3, L: 2, M: -2}); err != nil {
		t.Fatalf("SetQuantum: %v", err)
	}
	before := m.Quantum()

	bad := []orbital.QuantumState{
		{N: 0, L: 0, M: 0},
		{N: 2, L: 2, M: 0},
		{N: 3, L: 1, M: 2},
		{N: 8, L: 0, M: 0}, // above MaxN
	}
	for _, q := range bad {
		if err := m.SetQuantum(q); !errors.Is(err, orbital.ErrInvalidQuantumState) {
			t.Errorf("SetQuantum(%v) err = %v, want ErrInvalidQuantumState", q, err)
		}
	}
	if got := m.Quantum(); got != before {
		t.Errorf("rejected updates changed state to %v", got)
	}
}

func TestManager_StepKeepsStateValid(t *testing.T) {
	m := NewManager(DefaultConfig())
	if err := m.SetQuantum(orbital.QuantumState{N: 4, L: 3, M: 3}); err != nil {
		t.Fatal(err)
	}

	if !m.StepN(-1) {
		t.Fatal("StepN(-1) reported no change")
	}
	if got, want := m.Quantum(), (orbital.QuantumState{N: 3, L: 2, M: 2}); got != want {
		t.Errorf("after StepN(-1): %v, want %v", got, want)
	}

	m.StepL(-2)
	if got, want := m.Quantum(), (orbital.QuantumState{N: 3, L: 0, M: 0}); got != want {
		t.Errorf("after StepL(-2): %v, want %v", got, want)
	}

	if m.StepM(1) {
		t.Error("StepM(1) with l=0 should not change anything")
	}

	for i := 0; i < 10; i++ {
		m.StepN(-1)
	}
	if got := m.Quantum(); got != orbital.GroundState {
		t.Errorf("n floor: %v, want ground state", got)
	}
	for i := 0; i < 20; i++ {
		m.StepN(1)
	}
	if got := m.Quantum().N; got != DefaultConfig().MaxN {
		t.Errorf("n ceiling: %d, want %d", got, DefaultConfig().MaxN)
	}

	// Random walk never leaves the valid set.
	steps := []func(int) bool{m.StepN, m.StepL, m.StepM}
	for i := 0; i < 200; i++ {
		steps[i%3]((i*7)%5 - 2)
		if err := m.Quantum().Validate(); err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
	}
}

func TestManager_ViewAdjustments(t *testing.T) {
	m := NewManager(DefaultConfig())
	start := m.Snapshot().Volume

	m.Rotate(0.1, -0.2, 0.3)
	v := m.Snapshot().Volume
	if math.Abs(v.RotationX-(start.RotationX+0.1)) > 1e-12 ||
		math.Abs(v.RotationY-(start.RotationY-0.2)) > 1e-12 ||
		math.Abs(v.RotationZ-0.3) > 1e-12 {
		t.Errorf("rotation = (%v,%v,%v)", v.RotationX, v.RotationY, v.RotationZ)
	}

	m.Rotate(0, 0, 4*math.Pi)
	if v := m.Snapshot().Volume; v.RotationZ <= -math.Pi || v.RotationZ > math.Pi {
		t.Errorf("rotation z %v not wrapped", v.RotationZ)
	}

	for i := 0; i < 30; i++ {
		m.AdjustClip(AxisY, 0.05)
	}
	if got := m.Snapshot().Volume.ClipY; got != 1 {
		t.Errorf("ClipY = %v, want clamped to 1", got)
	}
	m.AdjustClip(AxisX, -0.5)
	if got := m.Snapshot().Volume.ClipX; got != 0 {
		t.Errorf("ClipX = %v, want clamped to 0", got)
	}

	for i := 0; i < 100; i++ {
		m.ScaleColor(2)
	}
	if got := m.Snapshot().Volume.ColorScale; got != MaxColorScale {
		t.Errorf("ColorScale = %v, want %v", got, MaxColorScale)
	}
	m.ScaleColor(0)
	m.ScaleColor(math.NaN())
	if got := m.Snapshot().Volume.ColorScale; got != MaxColorScale {
		t.Errorf("invalid factors changed ColorScale to %v", got)
	}

	m.ResetView()
	v = m.Snapshot().Volume
	def := render.DefaultVolumeParams()
	if v.RotationX != def.RotationX || v.ClipY != 0 || v.ColorScale != 1 {
		t.Errorf("ResetView left %+v", v)
	}
}

func TestManager_PaletteAndPlane(t *testing.T) {
	m := NewManager(DefaultConfig())
	m.CyclePalette()
	snap := m.Snapshot()
	if snap.Volume.Palette != colormap.PaletteGray || snap.Slice.Palette != colormap.PaletteGray {
		t.Errorf("palettes = %v/%v, want gray", snap.Volume.Palette, snap.Slice.Palette)
	}
	m.ResetView()
	if got := m.Snapshot().Volume.Palette; got != colormap.PaletteGray {
		t.Errorf("ResetView changed palette to %v", got)
	}

	m.TogglePlane()
	if got := m.Snapshot().Slice.Plane; got != render.PlaneMeridional {
		t.Errorf("Plane = %v, want meridional", got)
	}
}

func TestManager_RenderLifecycle(t *testing.T) {
	m := NewManager(DefaultConfig())
	m.SetSize(16, 8)

	if !m.NeedsRender() {
		t.Fatal("NeedsRender should be true with no frame")
	}
	req, ok := m.BeginRender()
	if !ok {
		t.Fatal("BeginRender returned false")
	}
	if req.ID == uuid.Nil {
		t.Error("request ID is nil")
	}
	if m.NeedsRender() {
		t.Error("in-flight render of the same key should satisfy NeedsRender")
	}
	if _, ok := m.BeginRender(); ok {
		t.Error("second BeginRender for same key should be coalesced")
	}

	buf, err := render.Render(req.Key)
	if err != nil {
		t.Fatal(err)
	}
	if !m.CompleteRender(req.ID, buf, nil) {
		t.Fatal("CompleteRender rejected current request")
	}

	snap := m.Snapshot()
	if snap.Frame != buf || snap.Stale || snap.Rendering {
		t.Errorf("snapshot after render: frame=%p stale=%v rendering=%v", snap.Frame, snap.Stale, snap.Rendering)
	}
	if m.NeedsRender() {
		t.Error("NeedsRender true right after completing a render")
	}
	if len(snap.History) != 1 || snap.History[0].ID != req.ID {
		t.Errorf("history = %+v", snap.History)
	}

	m.Apply(ActionRotateLeft)
	if !m.NeedsRender() || !m.Snapshot().Stale {
		t.Error("changing rotation should require a render")
	}
}

func TestManager_StaleResultDropped(t *testing.T) {
	m := NewManager(DefaultConfig())
	m.SetSize(8, 8)

	old, _ := m.BeginRender()
	m.StepN(1)
	latest, ok := m.BeginRender()
	if !ok {
		t.Fatal("state change during render should allow a new request")
	}

	if m.CompleteRender(old.ID, render.NewPixelBuffer(8, 8), nil) {
		t.Error("superseded request was accepted")
	}
	if m.Snapshot().Frame != nil {
		t.Error("superseded result became the frame")
	}

	buf := render.NewPixelBuffer(8, 8)
	if !m.CompleteRender(latest.ID, buf, nil) {
		t.Fatal("latest request rejected")
	}
	if m.Snapshot().FrameKey != latest.Key {
		t.Error("frame key does not match latest request")
	}
	if m.CompleteRender(latest.ID, buf, nil) {
		t.Error("completing twice should be rejected")
	}
}

func TestManager_RenderError(t *testing.T) {
	m := NewManager(DefaultConfig())
	m.SetSize(8, 8)
	req, _ := m.BeginRender()

	renderErr := errors.New("boom")
	if !m.CompleteRender(req.ID, nil, renderErr) {
		t.Fatal("CompleteRender rejected current request")
	}
	snap := m.Snapshot()
	if snap.LastError != renderErr {
		t.Errorf("LastError = %v", snap.LastError)
	}
	if snap.Frame != nil {
		t.Error("failed render should not set a frame")
	}
	if !m.NeedsRender() {
		t.Error("failed render should be retried")
	}
}

func TestManager_HistoryRingBuffer(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxHistory = 3
	m := NewManager(cfg)
	m.SetSize(4, 4)

	var ids []uuid.UUID
	for i := 0; i < 5; i++ {
		m.Rotate(0.01, 0, 0)
		req, ok := m.BeginRender()
		if !ok {
			t.Fatalf("render %d not started", i)
		}
		m.CompleteRender(req.ID, render.NewPixelBuffer(4, 4), nil)
		ids = append(ids, req.ID)
	}

	hist := m.Snapshot().History
	if len(hist) != 3 {
		t.Fatalf("len(history) = %d, want 3", len(hist))
	}
	for i, rec := range hist {
		if rec.ID != ids[i+2] {
			t.Errorf("history[%d] = %v, want %v", i, rec.ID, ids[i+2])
		}
	}
	if recent := m.RecentRenders(2); len(recent) != 2 || recent[1].ID != ids[4] {
		t.Errorf("RecentRenders(2) = %+v", recent)
	}
}

func TestManager_ApplyActions(t *testing.T) {
	m := NewManager(DefaultConfig())

	m.Apply(KeyActions["n"])
	if got := m.Quantum().N; got != 3 {
		t.Errorf("n after 'n' = %d, want 3", got)
	}
	m.Apply(KeyActions["M"])
	if got := m.Quantum().M; got != -1 {
		t.Errorf("m after 'M' = %d, want -1", got)
	}
	m.Apply(KeyActions["x"])
	if got := m.Snapshot().Volume.ClipX; math.Abs(got-m.ClipStep()) > 1e-12 {
		t.Errorf("ClipX after 'x' = %v", got)
	}
	m.Apply(KeyActions["X"])
	if got := m.Snapshot().Volume.ClipX; got != 0 {
		t.Errorf("ClipX after 'X' = %v, want 0", got)
	}
	m.Apply(KeyActions["v"])
	if m.Mode() != render.ModeSlice {
		t.Error("'v' should toggle to slice mode")
	}
	m.Apply(ActionNone)

	for key, a := range KeyActions {
		if a.String() == "unknown" {
			t.Errorf("key %q maps to unnamed action %d", key, a)
		}
	}
}

func TestManager_ConcurrentAccess(t *testing.T) {
	m := NewManager(DefaultConfig())
	m.SetSize(4, 4)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				m.Apply(Action(1 + (i+j)%int(ActionResetView)))
				if req, ok := m.BeginRender(); ok {
					m.CompleteRender(req.ID, render.NewPixelBuffer(4, 4), nil)
				}
				_ = m.Snapshot()
			}
		}(i)
	}
	wg.Wait()

	if err := m.Quantum().Validate(); err != nil {
		t.Errorf("state invalid after concurrent use: %v", err)
	}
}
