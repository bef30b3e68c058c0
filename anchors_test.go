package zonecalc

import "testing"

func lapsFromHR(hr ...float64) []LapRecord {
	records := make([]LapRecord, len(hr))
	for i, v := range hr {
		records[i] = LapRecord{Lap: i + 1, ElapsedSeconds: 190, HeartRate: v}
	}
	return records
}

func TestResolveAnchorsProgressiveTestFallsBack(t *testing.T) {
	// Rises 15,10,7,7,5,4: no rise ever more than halves relative to the
	// previous one, so the deflection scan finds nothing.
	records := lapsFromHR(134, 149, 159, 166, 173, 178, 182)
	anchors, det := ResolveAnchors(records, Overrides{})
	if anchors.MaxHeartRate != 182 {
		t.Errorf("max HR = %d, want 182", anchors.MaxHeartRate)
	}
	if det.Deflection || !det.Fallback {
		t.Fatalf("detection = %+v, want fallback", det)
	}
	// round(0.9*182) = round(163.8)
	if anchors.ThresholdHeartRate != 164 {
		t.Errorf("threshold = %d, want 164", anchors.ThresholdHeartRate)
	}
}

func TestResolveAnchorsHalvingIsStrict(t *testing.T) {
	// Rises 11,9,6,3: the last rise equals exactly half the prior one,
	// which does not qualify (strictly less than).
	records := lapsFromHR(120, 131, 140, 146, 149)
	anchors, det := ResolveAnchors(records, Overrides{})
	if det.Deflection {
		t.Fatalf("detection = %+v, want no deflection", det)
	}
	if anchors.ThresholdHeartRate != 134 { // round(0.9*149)
		t.Errorf("threshold = %d, want 134", anchors.ThresholdHeartRate)
	}
}

func TestResolveAnchorsFirstDeflectionWins(t *testing.T) {
	// Rises 20,20,5,1: index 3 is the first rise under half its
	// predecessor; the sharper drop at index 4 is never reached.
	records := lapsFromHR(100, 120, 140, 145, 146)
	anchors, det := ResolveAnchors(records, Overrides{})
	if !det.Deflection || det.Index != 3 {
		t.Fatalf("detection = %+v, want deflection at index 3", det)
	}
	if anchors.ThresholdHeartRate != 145 {
		t.Errorf("threshold = %d, want 145", anchors.ThresholdHeartRate)
	}
	if det.Fallback {
		t.Error("fallback should not be set when a deflection matched")
	}
}

func TestResolveAnchorsNoisyEarlyLapsMatchEarly(t *testing.T) {
	// A noisy early rise that more than halves triggers a spurious match
	// before the real deflection. Preserved behavior, not a defect.
	records := lapsFromHR(100, 110, 112, 120, 140, 150, 151)
	anchors, det := ResolveAnchors(records, Overrides{})
	if !det.Deflection || det.Index != 2 {
		t.Fatalf("detection = %+v, want first match at index 2", det)
	}
	if anchors.ThresholdHeartRate != 112 {
		t.Errorf("threshold = %d, want 112", anchors.ThresholdHeartRate)
	}
}

func TestResolveAnchorsTooFewRecords(t *testing.T) {
	records := lapsFromHR(140, 150)
	anchors, det := ResolveAnchors(records, Overrides{})
	if !det.Fallback {
		t.Fatalf("detection = %+v, want fallback", det)
	}
	if anchors.ThresholdHeartRate != 135 {
		t.Errorf("threshold = %d, want 135", anchors.ThresholdHeartRate)
	}
}

func TestResolveAnchorsOverrides(t *testing.T) {
	records := lapsFromHR(100, 120, 140, 145, 146)
	anchors, det := ResolveAnchors(records, Overrides{MaxHeartRate: 200, ThresholdHeartRate: 170})
	if anchors.MaxHeartRate != 200 || anchors.ThresholdHeartRate != 170 {
		t.Errorf("anchors = %+v, want overrides honored", anchors)
	}
	if !det.Overridden || det.Deflection || det.Fallback {
		t.Errorf("detection = %+v, want overridden only", det)
	}
	if len(det.Deltas) != len(records) {
		t.Errorf("deltas length = %d, want %d (diagnostics kept)", len(det.Deltas), len(records))
	}
}

func TestResolveAnchorsEmptyInput(t *testing.T) {
	anchors, det := ResolveAnchors(nil, Overrides{})
	if anchors.MaxHeartRate != 0 {
		t.Errorf("max HR = %d, want 0", anchors.MaxHeartRate)
	}
	if !det.Fallback {
		t.Errorf("detection = %+v, want fallback", det)
	}
}

func TestResolveAnchorsDeterministic(t *testing.T) {
	records := lapsFromHR(134, 149, 159, 166, 173, 178, 182)
	a1, _ := ResolveAnchors(records, Overrides{})
	a2, _ := ResolveAnchors(records, Overrides{})
	if a1 != a2 {
		t.Errorf("anchors differ across runs: %+v vs %+v", a1, a2)
	}
}
