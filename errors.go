package zonecalc

import (
	"fmt"
	"strings"
)

// MissingColumnError names every required column absent from a submission.
type MissingColumnError struct {
	Columns []string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("missing required column(s): %s", strings.Join(e.Columns, ", "))
}

// TypeMismatchError reports a cell that could not be coerced to its column
// type. Row is 1-based and counts data rows, not the header.
type TypeMismatchError struct {
	Column string
	Row    int
	Value  string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("column %s, row %d: cannot interpret %q", e.Column, e.Row, e.Value)
}

// TimeFormatError reports a Time cell that is not m:s or h:m:s.
type TimeFormatError struct {
	Value string
}

func (e *TimeFormatError) Error() string {
	return fmt.Sprintf("time %q: expected m:s or h:m:s", e.Value)
}

// DuplicateLapError reports a lap number that occurs more than once.
type DuplicateLapError struct {
	Lap int
}

func (e *DuplicateLapError) Error() string {
	return fmt.Sprintf("duplicate lap %d", e.Lap)
}

// InvalidAnchorError reports a non-positive anchor after overrides applied.
type InvalidAnchorError struct {
	MaxHeartRate       int
	ThresholdHeartRate int
}

func (e *InvalidAnchorError) Error() string {
	return fmt.Sprintf("invalid anchors: max HR %d bpm, threshold HR %d bpm (both must be positive)", e.MaxHeartRate, e.ThresholdHeartRate)
}

// NoLapDataError reports a decoded source that contains no lap boundaries.
// It is distinct from an empty-but-valid delimited table.
type NoLapDataError struct {
	Source string
}

func (e *NoLapDataError) Error() string {
	return fmt.Sprintf("%s: no lap data found", e.Source)
}
