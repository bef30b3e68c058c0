// Package pipeline orchestrates one submission: ingest a lap source,
// normalize it, resolve anchors, compute the five zones, and write the
// downloadable artifacts.
package pipeline

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	zonecalc "zone-calc"
	"zone-calc/ingest"
	"zone-calc/report"
)

// Evaluate ingests one input and computes anchors and zones. It touches the
// filesystem only to read the input; artifact writing is Run's job.
func Evaluate(opts Options) (*Submission, error) {
	if strings.TrimSpace(opts.InputPath) == "" {
		return nil, fmt.Errorf("input path is required")
	}
	model, err := zonecalc.ParseModel(opts.Model)
	if err != nil {
		return nil, err
	}

	var table zonecalc.RawTable
	if strings.EqualFold(filepath.Ext(opts.InputPath), ".fit") {
		table, err = ingest.ReadFITFile(opts.InputPath)
	} else {
		table, err = ingest.ReadDelimitedFile(opts.InputPath)
	}
	if err != nil {
		return nil, err
	}

	records, err := zonecalc.Normalize(table)
	if err != nil {
		return nil, fmt.Errorf("normalize lap table: %w", err)
	}
	anchors, det := zonecalc.ResolveAnchors(records, zonecalc.Overrides{
		MaxHeartRate:       opts.MaxHR,
		ThresholdHeartRate: opts.LTHR,
	})
	bands, err := zonecalc.ComputeZones(anchors, model)
	if err != nil {
		return nil, fmt.Errorf("compute zones: %w", err)
	}

	return &Submission{
		Source:    filepath.Base(opts.InputPath),
		Model:     model.String(),
		Anchors:   anchors,
		Detection: det,
		Laps:      records,
		Zones:     bands,
	}, nil
}

// Run executes the full pipeline and writes all artifacts.
func Run(opts Options) (*Result, error) {
	if strings.TrimSpace(opts.OutDir) == "" {
		return nil, fmt.Errorf("output directory is required")
	}
	format := strings.ToLower(strings.TrimSpace(opts.Format))
	if format == "" {
		format = "csv"
	}
	if format != "csv" && format != "parquet" {
		return nil, fmt.Errorf("unsupported format %q (expected csv|parquet)", format)
	}

	sub, err := Evaluate(opts)
	if err != nil {
		return nil, err
	}
	model, _ := zonecalc.ParseModel(sub.Model)

	if err := prepareOutDir(opts.OutDir, opts.Overwrite); err != nil {
		return nil, err
	}

	lapsPath := filepath.Join(opts.OutDir, "laps."+format)
	switch format {
	case "csv":
		err = writeLapsCSV(lapsPath, sub.Laps, sub.Zones)
	case "parquet":
		err = writeLapsParquet(lapsPath, sub.Laps, sub.Zones)
	}
	if err != nil {
		return nil, fmt.Errorf("write lap table: %w", err)
	}

	zonesPath := filepath.Join(opts.OutDir, "zones.csv")
	if err := writeZonesCSV(zonesPath, sub.Zones); err != nil {
		return nil, fmt.Errorf("write zones.csv: %w", err)
	}

	resultPath := filepath.Join(opts.OutDir, "result.json")
	if err := writeJSON(resultPath, sub); err != nil {
		return nil, fmt.Errorf("write result.json: %w", err)
	}

	summaryPath := filepath.Join(opts.OutDir, "summary.md")
	summary := report.BuildSummary(sub.Laps, sub.Anchors, sub.Detection, model, sub.Zones)
	if err := os.WriteFile(summaryPath, []byte(summary), 0o644); err != nil {
		return nil, fmt.Errorf("write summary.md: %w", err)
	}

	return &Result{
		OutputDir:   opts.OutDir,
		LapsPath:    lapsPath,
		ZonesPath:   zonesPath,
		ResultPath:  resultPath,
		SummaryPath: summaryPath,
	}, nil
}

func prepareOutDir(dir string, overwrite bool) error {
	entries, err := os.ReadDir(dir)
	if err == nil && len(entries) > 0 && !overwrite {
		return fmt.Errorf("output directory %s is not empty (use overwrite)", dir)
	}
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("inspect output directory: %w", err)
	}
	return os.MkdirAll(dir, 0o755)
}

// writeZonesCSV writes the band table with the same columns the original
// calculator exported.
func writeZonesCSV(path string, bands []zonecalc.ZoneBand) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"Zone", "Low bpm", "High bpm"}); err != nil {
		return err
	}
	for _, band := range bands {
		lo, hi := band.DisplayBounds()
		if err := w.Write([]string{band.Label, strconv.Itoa(lo), strconv.Itoa(hi)}); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func writeLapsCSV(path string, records []zonecalc.LapRecord, bands []zonecalc.ZoneBand) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"lap", "elapsed_s", "hr_bpm", "rpe", "zone"}); err != nil {
		return err
	}
	for _, r := range records {
		rpe := ""
		if r.PerceivedEffort > 0 {
			rpe = strconv.Itoa(r.PerceivedEffort)
		}
		row := []string{
			strconv.Itoa(r.Lap),
			strconv.FormatFloat(r.ElapsedSeconds, 'f', -1, 64),
			strconv.FormatFloat(r.HeartRate, 'f', -1, 64),
			rpe,
			zonecalc.ClassifyHeartRate(bands, r.HeartRate),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
