package zonecalc

import (
	"sort"
	"strconv"
	"strings"
)

// Column names accepted in a raw submission.
const (
	ColLap     = "Lap"
	ColTime    = "Time"
	ColHR      = "HR"
	ColTimeSec = "Time_sec"
	ColRPE     = "RPE"
)

// RawTable maps a column name to its raw cell values, one per lap row,
// as parsed from delimited text or extracted from a decoded lap source.
type RawTable map[string][]string

// LapRecord is one normalized entry per completed lap of a progressive test.
type LapRecord struct {
	Lap             int     `json:"lap"`
	ElapsedSeconds  float64 `json:"elapsed_s"`
	HeartRate       float64 `json:"hr_bpm"`
	PerceivedEffort int     `json:"rpe,omitempty"`
}

// Normalize validates a raw submission and produces the lap-ordered record
// sequence the calculator runs on. The whole submission is rejected on the
// first cell that cannot be coerced; there are no partial results.
func Normalize(table RawTable) ([]LapRecord, error) {
	_, haveSeconds := table[ColTimeSec]

	missing := make([]string, 0, 3)
	if _, ok := table[ColLap]; !ok {
		missing = append(missing, ColLap)
	}
	if _, ok := table[ColTime]; !ok && !haveSeconds {
		missing = append(missing, ColTime)
	}
	if _, ok := table[ColHR]; !ok {
		missing = append(missing, ColHR)
	}
	if len(missing) > 0 {
		return nil, &MissingColumnError{Columns: missing}
	}

	cell := func(col string, i int) string {
		values := table[col]
		if i >= len(values) {
			return ""
		}
		return strings.TrimSpace(values[i])
	}

	n := len(table[ColLap])
	records := make([]LapRecord, 0, n)
	for i := 0; i < n; i++ {
		lap, err := strconv.Atoi(cell(ColLap, i))
		if err != nil {
			return nil, &TypeMismatchError{Column: ColLap, Row: i + 1, Value: cell(ColLap, i)}
		}

		hr, err := strconv.ParseFloat(cell(ColHR, i), 64)
		if err != nil {
			return nil, &TypeMismatchError{Column: ColHR, Row: i + 1, Value: cell(ColHR, i)}
		}

		var elapsed float64
		if haveSeconds {
			elapsed, err = strconv.ParseFloat(cell(ColTimeSec, i), 64)
			if err != nil || elapsed < 0 {
				return nil, &TypeMismatchError{Column: ColTimeSec, Row: i + 1, Value: cell(ColTimeSec, i)}
			}
		} else {
			elapsed, err = ParseClock(cell(ColTime, i))
			if err != nil {
				return nil, err
			}
		}

		rec := LapRecord{Lap: lap, ElapsedSeconds: elapsed, HeartRate: hr}
		if _, ok := table[ColRPE]; ok {
			// Advisory only; an unparseable RPE cell is dropped, not fatal.
			if rpe, err := strconv.Atoi(cell(ColRPE, i)); err == nil {
				rec.PerceivedEffort = rpe
			}
		}
		records = append(records, rec)
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Lap < records[j].Lap
	})
	for i := 1; i < len(records); i++ {
		if records[i].Lap == records[i-1].Lap {
			return nil, &DuplicateLapError{Lap: records[i].Lap}
		}
	}
	return records, nil
}

// ParseClock converts a clock string to seconds. Two colon-separated
// components are minutes:seconds, three are hours:minutes:seconds; any
// other component count fails.
func ParseClock(s string) (float64, error) {
	parts := strings.Split(s, ":")
	values := make([]float64, len(parts))
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil || v < 0 {
			return 0, &TimeFormatError{Value: s}
		}
		values[i] = v
	}
	switch len(values) {
	case 2:
		return values[0]*60 + values[1], nil
	case 3:
		return values[0]*3600 + values[1]*60 + values[2], nil
	default:
		return 0, &TimeFormatError{Value: s}
	}
}
