package ingest

import (
	"math"
	"os"
	"testing"
	"time"

	"github.com/tormoder/fit"

	zonecalc "zone-calc"
)

func TestResolveLapHRPrefersEndOfLapSample(t *testing.T) {
	base := time.Date(2024, 3, 9, 10, 0, 0, 0, time.UTC)
	samples := []hrSample{
		{ts: base.Add(30 * time.Second), hr: 120},
		{ts: base.Add(60 * time.Second), hr: 134},
		{ts: base.Add(90 * time.Second), hr: 150},
	}
	lap := &fit.LapMsg{
		Timestamp:    base.Add(65 * time.Second),
		MaxHeartRate: 160,
		AvgHeartRate: 140,
	}
	hr, ok := resolveLapHR(lap, samples)
	if !ok || hr != 134 {
		t.Errorf("resolveLapHR() = %v,%v, want 134 from end-of-lap sample", hr, ok)
	}
}

func TestResolveLapHRFallsBackToLapFields(t *testing.T) {
	lap := &fit.LapMsg{
		MaxHeartRate: 160,
		AvgHeartRate: 140,
	}
	hr, ok := resolveLapHR(lap, nil)
	if !ok || hr != 160 {
		t.Errorf("resolveLapHR() = %v,%v, want lap max 160", hr, ok)
	}

	lap.MaxHeartRate = math.MaxUint8 // invalid marker
	hr, ok = resolveLapHR(lap, nil)
	if !ok || hr != 140 {
		t.Errorf("resolveLapHR() = %v,%v, want lap avg 140", hr, ok)
	}
}

func TestResolveLapHRFallsBackToLastKnownSample(t *testing.T) {
	base := time.Date(2024, 3, 9, 10, 0, 0, 0, time.UTC)
	samples := []hrSample{
		{ts: base.Add(30 * time.Second), hr: 128},
	}
	lap := &fit.LapMsg{
		Timestamp: base.Add(10 * time.Second), // before any sample
	}
	hr, ok := resolveLapHR(lap, samples)
	if !ok || hr != 128 {
		t.Errorf("resolveLapHR() = %v,%v, want last known 128", hr, ok)
	}
}

func TestResolveLapHRUndefined(t *testing.T) {
	if hr, ok := resolveLapHR(&fit.LapMsg{}, nil); ok {
		t.Errorf("resolveLapHR() = %v,%v, want undefined", hr, ok)
	}
}

func TestCollectHRSamplesSortsAndFilters(t *testing.T) {
	base := time.Date(2024, 3, 9, 10, 0, 0, 0, time.UTC)
	records := []*fit.RecordMsg{
		{Timestamp: base.Add(60 * time.Second), HeartRate: 140},
		nil,
		{Timestamp: base.Add(30 * time.Second), HeartRate: 120},
		{Timestamp: base.Add(45 * time.Second), HeartRate: math.MaxUint8},
		{HeartRate: 150}, // no timestamp
	}
	samples := collectHRSamples(records)
	if len(samples) != 2 {
		t.Fatalf("got %d samples, want 2", len(samples))
	}
	if samples[0].hr != 120 || samples[1].hr != 140 {
		t.Errorf("samples = %v, want sorted by time", samples)
	}
}

func TestReadFITFileOnRealActivity(t *testing.T) {
	path := os.Getenv("ZONECALC_TEST_FIT")
	if path == "" {
		t.Skip("set ZONECALC_TEST_FIT to a lap-bearing activity file")
	}
	table, err := ReadFITFile(path)
	if err != nil {
		t.Fatalf("ReadFITFile() error: %v", err)
	}
	records, err := zonecalc.Normalize(table)
	if err != nil {
		t.Fatalf("Normalize() error: %v", err)
	}
	if len(records) == 0 {
		t.Fatal("expected at least one lap")
	}
}
