package export

import (
	"encoding/json"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/litescript/ls-orbitals/internal/orbital"
)

// PointCloud is the JSON-serializable result of one sampler run.
type PointCloud struct {
	RunID       uuid.UUID     `json:"run_id"`
	GeneratedAt time.Time     `json:"generated_at"`
	N           int           `json:"n"`
	L           int           `json:"l"`
	M           int           `json:"m"`
	Label       string        `json:"label"`
	Seed        int64         `json:"seed"`
	Count       int           `json:"count"`
	Points      []PointExport `json:"points"`
}

// PointExport is a JSON-friendly sample point.
type PointExport struct {
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Z       float64 `json:"z"`
	Density float64 `json:"density"`
}

// NewPointCloud wraps sampler output for export under a fresh run id.
func NewPointCloud(q orbital.QuantumState, seed int64, points []orbital.Point, generatedAt time.Time) *PointCloud {
	pc := &PointCloud{
		RunID:       uuid.New(),
		GeneratedAt: generatedAt,
		N:           q.N,
		L:           q.L,
		M:           q.M,
		Label:       q.Label(),
		Seed:        seed,
		Count:       len(points),
		Points:      make([]PointExport, len(points)),
	}
	for i, p := range points {
		pc.Points[i] = PointExport{X: p.X, Y: p.Y, Z: p.Z, Density: p.Density}
	}
	return pc
}

// WriteJSON writes the point cloud as indented JSON.
func (pc *PointCloud) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(pc)
}
