package pipeline

import zonecalc "zone-calc"

// Options configures one zone-calculation submission.
type Options struct {
	InputPath string
	OutDir    string
	Model     string // lthr|max
	MaxHR     int    // anchor override, 0 = detect
	LTHR      int    // anchor override, 0 = detect
	Format    string // lap table artifact: csv|parquet
	Overwrite bool
}

// Submission is the full computed result for one input, written to
// result.json and reused by the CLI for on-screen rendering.
type Submission struct {
	Source    string               `json:"source"`
	Model     string               `json:"model"`
	Anchors   zonecalc.Anchors     `json:"anchors"`
	Detection zonecalc.Detection   `json:"detection"`
	Laps      []zonecalc.LapRecord `json:"laps"`
	Zones     []zonecalc.ZoneBand  `json:"zones"`
}

// Result returns generated output paths.
type Result struct {
	OutputDir   string `json:"output_dir"`
	LapsPath    string `json:"laps_path"`
	ZonesPath   string `json:"zones_path"`
	ResultPath  string `json:"result_path"`
	SummaryPath string `json:"summary_path"`
}
