package zonecalc

import "math"

// Anchors are the two reference heart rates the zone models hang off.
type Anchors struct {
	MaxHeartRate       int `json:"max_hr_bpm"`
	ThresholdHeartRate int `json:"threshold_hr_bpm"`
}

// Overrides carries user-supplied anchor values; zero means "detect".
type Overrides struct {
	MaxHeartRate       int
	ThresholdHeartRate int
}

// Detection describes how the threshold anchor was obtained. Deltas holds
// the raw lap-to-lap HR rises (Deltas[0] is defined as 0) for diagnostics.
type Detection struct {
	Deltas     []float64 `json:"deltas,omitempty"`
	Index      int       `json:"deflection_index"`
	Deflection bool      `json:"deflection"`
	Fallback   bool      `json:"fallback"`
	Overridden bool      `json:"overridden"`
}

// ResolveAnchors derives MaxHR and threshold HR from the normalized lap
// sequence, honoring overrides. The threshold heuristic takes the first
// lap-to-lap rise that more than halves relative to the immediately
// preceding rise (a Conconi-style deflection); monotone or noisy profiles
// with no qualifying rise fall back to 90% of MaxHR. First match wins even
// if a sharper deflection occurs later.
func ResolveAnchors(records []LapRecord, ov Overrides) (Anchors, Detection) {
	det := Detection{Index: -1}

	maxHR := ov.MaxHeartRate
	if maxHR <= 0 {
		peak := 0.0
		for _, r := range records {
			if r.HeartRate > peak {
				peak = r.HeartRate
			}
		}
		maxHR = int(math.Round(peak))
	}

	if len(records) > 0 {
		det.Deltas = make([]float64, len(records))
		for i := 1; i < len(records); i++ {
			det.Deltas[i] = records[i].HeartRate - records[i-1].HeartRate
		}
	}

	if ov.ThresholdHeartRate > 0 {
		det.Overridden = true
		return Anchors{MaxHeartRate: maxHR, ThresholdHeartRate: ov.ThresholdHeartRate}, det
	}

	for i := 2; i < len(det.Deltas); i++ {
		if det.Deltas[i] > 0 && det.Deltas[i-1] > 0 && det.Deltas[i] < 0.5*det.Deltas[i-1] {
			det.Index = i
			det.Deflection = true
			thr := int(math.Round(records[i].HeartRate))
			return Anchors{MaxHeartRate: maxHR, ThresholdHeartRate: thr}, det
		}
	}

	det.Fallback = true
	thr := int(math.Round(0.9 * float64(maxHR)))
	return Anchors{MaxHeartRate: maxHR, ThresholdHeartRate: thr}, det
}
