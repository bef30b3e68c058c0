package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	zonecalc "zone-calc"
	"zone-calc/pipeline"
	"zone-calc/report"
)

func main() {
	var (
		input     = flag.String("input", "", "Path to lap data: .csv, .tab/.tsv, or .fit")
		outDir    = flag.String("out", "", "Write zones.csv, laps, result.json and summary.md to this directory")
		model     = flag.String("model", "lthr", "Zone model: lthr|max")
		maxHR     = flag.Int("max", 0, "Max HR override in bpm (0 = detect from data)")
		lthr      = flag.Int("lthr", 0, "Threshold HR override in bpm (0 = detect from data)")
		format    = flag.String("format", "csv", "Lap table artifact format: csv|parquet")
		jsonOut   = flag.Bool("json", false, "Emit the full submission as JSON instead of a report")
		overwrite = flag.Bool("overwrite", true, "Allow writing into non-empty output directories")
	)
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s --input laps.csv [--out outdir] [--model lthr|max] [--max 182] [--lthr 164]\n", filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}
	flag.Parse()

	if *input == "" {
		flag.Usage()
		os.Exit(2)
	}

	opts := pipeline.Options{
		InputPath: *input,
		OutDir:    *outDir,
		Model:     *model,
		MaxHR:     *maxHR,
		LTHR:      *lthr,
		Format:    *format,
		Overwrite: *overwrite,
	}

	sub, err := pipeline.Evaluate(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "zonecalc failed: %v\n", err)
		os.Exit(1)
	}

	if *jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(sub); err != nil {
			fmt.Fprintf(os.Stderr, "json encode failed: %v\n", err)
			os.Exit(1)
		}
		return
	}

	parsedModel, _ := zonecalc.ParseModel(sub.Model)
	fmt.Println(report.RenderZoneTable(sub.Zones))
	if profile := report.RenderProfile(sub.Laps); profile != "" {
		fmt.Println(profile)
	}
	fmt.Println(report.BuildSummary(sub.Laps, sub.Anchors, sub.Detection, parsedModel, sub.Zones))

	if *outDir != "" {
		result, err := pipeline.Run(opts)
		if err != nil {
			fmt.Fprintf(os.Stderr, "zonecalc failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Output dir:   %s\n", result.OutputDir)
		fmt.Printf("zones.csv:    %s\n", result.ZonesPath)
		fmt.Printf("lap table:    %s\n", result.LapsPath)
		fmt.Printf("result.json:  %s\n", result.ResultPath)
		fmt.Printf("summary.md:   %s\n", result.SummaryPath)
	}
}
