package ingest

import (
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/tormoder/fit"

	zonecalc "zone-calc"
)

type hrSample struct {
	ts time.Time
	hr float64
}

// ReadFITFile decodes a FIT activity and reduces it to the Lap/Time_sec/HR
// column contract. Decoding itself is the library's problem; this layer only
// extracts one row per lap.
func ReadFITFile(path string) (zonecalc.RawTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open FIT file: %w", err)
	}
	defer f.Close()
	return ReadFIT(f, filepath.Base(path))
}

// ReadFIT decodes a FIT activity stream. It fails with NoLapDataError when
// the activity carries no lap messages; an unparseable stream surfaces the
// decoder's error.
func ReadFIT(r io.Reader, source string) (zonecalc.RawTable, error) {
	decoded, err := fit.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode FIT file: %w", err)
	}
	activity, err := decoded.Activity()
	if err != nil {
		return nil, fmt.Errorf("activity FIT expected: %w", err)
	}
	if len(activity.Laps) == 0 {
		return nil, &zonecalc.NoLapDataError{Source: source}
	}

	samples := collectHRSamples(activity.Records)

	table := zonecalc.RawTable{
		zonecalc.ColLap:     make([]string, 0, len(activity.Laps)),
		zonecalc.ColTimeSec: make([]string, 0, len(activity.Laps)),
		zonecalc.ColHR:      make([]string, 0, len(activity.Laps)),
	}
	for i, lap := range activity.Laps {
		if lap == nil {
			continue
		}
		elapsed := lap.GetTotalTimerTimeScaled()
		if !(elapsed > 0) {
			elapsed = lap.GetTotalElapsedTimeScaled()
		}
		if !(elapsed > 0) {
			elapsed = 0
		}

		hrCell := ""
		if hr, ok := resolveLapHR(lap, samples); ok {
			hrCell = strconv.Itoa(int(math.Round(hr)))
		}

		table[zonecalc.ColLap] = append(table[zonecalc.ColLap], strconv.Itoa(i+1))
		table[zonecalc.ColTimeSec] = append(table[zonecalc.ColTimeSec], strconv.FormatFloat(elapsed, 'f', -1, 64))
		table[zonecalc.ColHR] = append(table[zonecalc.ColHR], hrCell)
	}
	return table, nil
}

func collectHRSamples(records []*fit.RecordMsg) []hrSample {
	samples := make([]hrSample, 0, len(records))
	for _, rec := range records {
		if rec == nil || !validHR(rec.HeartRate) {
			continue
		}
		ts := validTimeOrZero(rec.Timestamp)
		if ts.IsZero() {
			continue
		}
		samples = append(samples, hrSample{ts: ts, hr: float64(rec.HeartRate)})
	}
	sort.Slice(samples, func(i, j int) bool {
		return samples[i].ts.Before(samples[j].ts)
	})
	return samples
}

// resolveLapHR picks the lap's heart rate by trying, in order: the record
// sample at the end of the lap, the lap's max HR, the lap's average HR, and
// finally the last known instantaneous sample in the file.
func resolveLapHR(lap *fit.LapMsg, samples []hrSample) (float64, bool) {
	if end := validTimeOrZero(lap.Timestamp); !end.IsZero() {
		if hr, ok := sampleAtOrBefore(samples, end); ok {
			return hr, true
		}
	}
	if validHR(lap.MaxHeartRate) {
		return float64(lap.MaxHeartRate), true
	}
	if validHR(lap.AvgHeartRate) {
		return float64(lap.AvgHeartRate), true
	}
	if len(samples) > 0 {
		return samples[len(samples)-1].hr, true
	}
	return 0, false
}

func sampleAtOrBefore(samples []hrSample, ts time.Time) (float64, bool) {
	i := sort.Search(len(samples), func(i int) bool {
		return samples[i].ts.After(ts)
	})
	if i == 0 {
		return 0, false
	}
	return samples[i-1].hr, true
}

func validHR(v uint8) bool {
	return v > 0 && v != math.MaxUint8
}

func validTimeOrZero(t time.Time) time.Time {
	if t.IsZero() || fit.IsBaseTime(t) {
		return time.Time{}
	}
	return t
}
