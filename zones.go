package zonecalc

import (
	"fmt"
	"math"
	"strings"
)

// Model selects which anchor the five bands are computed from.
type Model int

const (
	// ModelThresholdHR derives bands as percentages of threshold HR,
	// clipped by MaxHR at the top. Recommended when a threshold test exists.
	ModelThresholdHR Model = iota
	// ModelMaxHR derives bands as percentages of MaxHR.
	ModelMaxHR
)

// ParseModel maps the CLI/pipeline token to a model.
func ParseModel(s string) (Model, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "lthr":
		return ModelThresholdHR, nil
	case "max":
		return ModelMaxHR, nil
	default:
		return 0, fmt.Errorf("unsupported model %q (expected lthr|max)", s)
	}
}

func (m Model) String() string {
	if m == ModelMaxHR {
		return "max"
	}
	return "lthr"
}

// ZoneBand is one of the five training-intensity bands, Z1 lowest.
// Bounds are real-valued; round only for display.
type ZoneBand struct {
	Label string  `json:"zone"`
	Low   float64 `json:"low_bpm"`
	High  float64 `json:"high_bpm"`
}

// DisplayBounds rounds the band to whole bpm for tables and CSV export.
func (b ZoneBand) DisplayBounds() (int, int) {
	return int(math.Round(b.Low)), int(math.Round(b.High))
}

// ComputeZones builds the five contiguous bands for the given anchors and
// model. Both anchors must be positive regardless of model.
func ComputeZones(a Anchors, model Model) ([]ZoneBand, error) {
	if a.MaxHeartRate <= 0 || a.ThresholdHeartRate <= 0 {
		return nil, &InvalidAnchorError{MaxHeartRate: a.MaxHeartRate, ThresholdHeartRate: a.ThresholdHeartRate}
	}

	m := float64(a.MaxHeartRate)
	t := float64(a.ThresholdHeartRate)
	switch model {
	case ModelMaxHR:
		return []ZoneBand{
			{Label: "Z1", Low: 0.55 * m, High: 0.70 * m},
			{Label: "Z2", Low: 0.70 * m, High: 0.80 * m},
			{Label: "Z3", Low: 0.80 * m, High: 0.87 * m},
			{Label: "Z4", Low: 0.87 * m, High: 0.92 * m},
			{Label: "Z5", Low: 0.92 * m, High: m},
		}, nil
	default:
		// Z5 tops out at max(1.15T, M); 1.15T > T keeps the band from
		// inverting even when MaxHR sits below the threshold anchor.
		return []ZoneBand{
			{Label: "Z1", Low: 0, High: 0.85 * t},
			{Label: "Z2", Low: 0.85 * t, High: 0.89 * t},
			{Label: "Z3", Low: 0.89 * t, High: 0.94 * t},
			{Label: "Z4", Low: 0.94 * t, High: t},
			{Label: "Z5", Low: t, High: math.Max(1.15*t, m)},
		}, nil
	}
}

// ClassifyHeartRate places a sample into its band using the real-valued
// bounds: [low, high) for Z1..Z4, and anything at or above the Z5 low bound
// is Z5. Samples below the Z1 low bound return "".
func ClassifyHeartRate(bands []ZoneBand, hr float64) string {
	if len(bands) == 0 || hr < bands[0].Low {
		return ""
	}
	last := len(bands) - 1
	for _, b := range bands[:last] {
		if hr >= b.Low && hr < b.High {
			return b.Label
		}
	}
	if hr >= bands[last].Low {
		return bands[last].Label
	}
	return ""
}
