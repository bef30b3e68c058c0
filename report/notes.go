package report

import (
	"fmt"
	"strings"

	zonecalc "zone-calc"
)

var zonePurposes = map[zonecalc.Model][]string{
	zonecalc.ModelThresholdHR: {
		"Z1 Recovery (<85% LTHR): very easy",
		"Z2 Endurance (85-89% LTHR): aerobic base",
		"Z3 Sub-Threshold (89-94% LTHR): sweet-spot, ~40 min efforts",
		"Z4 Threshold (94-100% LTHR): raise the lactate threshold",
		"Z5 Sprint (>100% LTHR): max bursts",
	},
	zonecalc.ModelMaxHR: {
		"Z1 Recovery (55-70% MaxHR): very easy",
		"Z2 Endurance (70-80% MaxHR): aerobic base",
		"Z3 High Aerobic (80-87% MaxHR): long tempo",
		"Z4 Threshold (87-92% MaxHR): near the lactate threshold",
		"Z5 Sprint (>92% MaxHR): max bursts",
	},
}

// BuildSummary turns a completed submission into the markdown summary the
// pipeline writes and the CLI prints.
func BuildSummary(records []zonecalc.LapRecord, anchors zonecalc.Anchors, det zonecalc.Detection, model zonecalc.Model, bands []zonecalc.ZoneBand) string {
	var b strings.Builder

	b.WriteString("# Five-zone heart-rate calculation\n\n")
	fmt.Fprintf(&b, "Anchors: MaxHR %d bpm | LTHR %d bpm (%s)\n", anchors.MaxHeartRate, anchors.ThresholdHeartRate, thresholdSource(det))
	fmt.Fprintf(&b, "Model: %s\n\n", modelRationale(model))

	b.WriteString("## Zones\n\n")
	b.WriteString("| Zone | Low bpm | High bpm |\n|------|---------|----------|\n")
	for _, band := range bands {
		lo, hi := band.DisplayBounds()
		fmt.Fprintf(&b, "| %s | %d | %d |\n", band.Label, lo, hi)
	}
	b.WriteByte('\n')
	for _, line := range zonePurposes[model] {
		fmt.Fprintf(&b, "- %s\n", line)
	}

	if len(records) > 0 {
		b.WriteString("\n## Laps\n\n")
		b.WriteString("| Lap | Time s | HR bpm | RPE | Zone |\n|-----|--------|--------|-----|------|\n")
		for _, r := range records {
			zone := zonecalc.ClassifyHeartRate(bands, r.HeartRate)
			if zone == "" {
				zone = "-"
			}
			rpe := "-"
			if r.PerceivedEffort > 0 {
				rpe = fmt.Sprintf("%d", r.PerceivedEffort)
			}
			fmt.Fprintf(&b, "| %d | %.0f | %.0f | %s | %s |\n", r.Lap, r.ElapsedSeconds, r.HeartRate, rpe, zone)
		}
	}

	if len(det.Deltas) > 1 && !det.Overridden {
		b.WriteString("\n## Detection\n\n")
		rises := make([]string, 0, len(det.Deltas)-1)
		for _, d := range det.Deltas[1:] {
			rises = append(rises, fmt.Sprintf("%+.0f", d))
		}
		fmt.Fprintf(&b, "Lap-to-lap HR change: %s\n", strings.Join(rises, ", "))
		if det.Deflection {
			fmt.Fprintf(&b, "Deflection found at lap %d: the rise there fell to under half the preceding rise.\n", records[det.Index].Lap)
		} else {
			b.WriteString("No deflection found; threshold set to 90% of MaxHR. A longer or harder final lap usually sharpens detection.\n")
		}
	}

	return strings.TrimSpace(b.String()) + "\n"
}

func thresholdSource(det zonecalc.Detection) string {
	switch {
	case det.Overridden:
		return "user override"
	case det.Deflection:
		return "detected deflection"
	default:
		return "fallback, 90% of MaxHR"
	}
}

func modelRationale(model zonecalc.Model) string {
	if model == zonecalc.ModelMaxHR {
		return "% MaxHR. Simple fallback when no threshold test is available."
	}
	return "% LTHR (recommended). Personalised and stable across modalities."
}
