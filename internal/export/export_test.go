package export

import (
	"bytes"
	"encoding/json"
	"image/png"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/litescript/ls-orbitals/internal/colormap"
	"github.com/litescript/ls-orbitals/internal/orbital"
	"github.com/litescript/ls-orbitals/internal/render"
)

func testBuffer() *render.PixelBuffer {
	buf := render.NewPixelBuffer(4, 3)
	for y := 0; y < 3; y++ {
		for x := 0; x < 4; x++ {
			buf.Set(x, y, colormap.RGB{})
		}
	}
	buf.Set(1, 0, colormap.RGB{R: 200, G: 100, B: 50})
	buf.Set(3, 2, colormap.RGB{R: 255, G: 255, B: 255})
	return buf
}

func TestWritePNG_RoundTrip(t *testing.T) {
	buf := testBuffer()
	var out bytes.Buffer
	if err := WritePNG(&out, buf); err != nil {
		t.Fatalf("WritePNG: %v", err)
	}
	img, err := png.Decode(&out)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 4 || b.Dy() != 3 {
		t.Fatalf("bounds = %v", b)
	}
	r, g, b, a := img.At(1, 0).RGBA()
	if r>>8 != 200 || g>>8 != 100 || b>>8 != 50 || a>>8 != 255 {
		t.Errorf("pixel (1,0) = %d %d %d %d", r>>8, g>>8, b>>8, a>>8)
	}

	if err := WritePNG(&out, nil); err == nil {
		t.Error("nil buffer should fail")
	}
}

func TestSavePNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orbital.png")
	if err := SavePNG(path, testBuffer()); err != nil {
		t.Fatalf("SavePNG: %v", err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if _, err := png.Decode(f); err != nil {
		t.Errorf("saved file is not a PNG: %v", err)
	}

	if err := SavePNG(filepath.Join(t.TempDir(), "missing", "x.png"), testBuffer()); err == nil {
		t.Error("SavePNG into a missing directory should fail")
	}
}

func TestPointCloud_WriteJSON(t *testing.T) {
	q := orbital.QuantumState{N: 2, L: 1, M: 1}
	pts, err := orbital.Sample(q, 25, rand.New(rand.NewSource(7)))
	if err != nil {
		t.Fatal(err)
	}
	at := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	pc := NewPointCloud(q, 7, pts, at)

	if pc.RunID == uuid.Nil {
		t.Error("RunID not set")
	}
	if other := NewPointCloud(q, 7, pts, at); other.RunID == pc.RunID {
		t.Error("two runs share an id")
	}

	var out bytes.Buffer
	if err := pc.WriteJSON(&out); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(out.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	for _, field := range []string{"run_id", "generated_at", "n", "l", "m", "label", "seed", "count", "points"} {
		if _, ok := decoded[field]; !ok {
			t.Errorf("missing field %q", field)
		}
	}
	if decoded["label"] != "2p" {
		t.Errorf("label = %v, want 2p", decoded["label"])
	}
	points, _ := decoded["points"].([]interface{})
	if len(points) != 25 || decoded["count"] != float64(25) {
		t.Errorf("points = %d, count = %v, want 25", len(points), decoded["count"])
	}
	first, _ := points[0].(map[string]interface{})
	if first["x"] != pts[0].X || first["density"] != pts[0].Density {
		t.Errorf("first point = %v, want %+v", first, pts[0])
	}
}

func TestStats(t *testing.T) {
	st := Stats(testBuffer())
	if st.Pixels != 12 || st.Lit != 2 || st.Saturated != 1 || st.Peak != 765 {
		t.Errorf("Stats = %+v", st)
	}
	if got := st.LitFraction(); got != 2.0/12 {
		t.Errorf("LitFraction = %v", got)
	}
	if (Stats(nil) != FrameStats{}) {
		t.Error("Stats(nil) should be zero")
	}
}

func TestWriteSummary(t *testing.T) {
	key := render.Key{
		Mode:   render.ModeVolume,
		State:  orbital.QuantumState{N: 3, L: 2, M: -1},
		Volume: render.DefaultVolumeParams(),
	}

	var out bytes.Buffer
	WriteSummary(&out, key, nil, 0)
	s := out.String()
	for _, want := range []string{"3d", "(n=3, l=2, m=-1)", "-1.5111 eV", "Radial nodes", "Angular nodes"} {
		if !strings.Contains(s, want) {
			t.Errorf("summary missing %q:\n%s", want, s)
		}
	}
	if strings.Contains(s, "Render time") {
		t.Error("summary without frame should not report render stats")
	}

	out.Reset()
	WriteSummary(&out, key, testBuffer(), 1500*time.Millisecond)
	s = out.String()
	for _, want := range []string{"volume 4x3", "Rotation", "Lit pixels", "16.7%", "1.5s"} {
		if !strings.Contains(s, want) {
			t.Errorf("summary missing %q:\n%s", want, s)
		}
	}
}

func TestHex(t *testing.T) {
	tests := []struct {
		in   colormap.RGB
		want string
	}{
		{colormap.RGB{}, "#000000"},
		{colormap.RGB{R: 255, G: 255, B: 255}, "#ffffff"},
		{colormap.RGB{R: 204, G: 0, B: 0}, "#cc0000"},
	}
	for _, tt := range tests {
		if got := Hex(tt.in); got != tt.want {
			t.Errorf("Hex(%+v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestHalfBlocks(t *testing.T) {
	out := HalfBlocks(testBuffer())
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2 (3 rows paired)", len(lines))
	}
	if got := strings.Count(out, UpperHalfBlock); got != 8 {
		t.Errorf("got %d cells, want 8", got)
	}
	if HalfBlocks(nil) != "" {
		t.Error("nil buffer should render empty")
	}
}
