// Package report renders the zone table, the lap profile chart, and the
// summary text an athlete reads after a submission.
package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	zonecalc "zone-calc"
)

// Zone colors carried over from the original band overlays.
var zonePalette = map[string]lipgloss.Color{
	"Z1": lipgloss.Color("#8ecae6"),
	"Z2": lipgloss.Color("#94d2bd"),
	"Z3": lipgloss.Color("#ffd166"),
	"Z4": lipgloss.Color("#f8961e"),
	"Z5": lipgloss.Color("#ef476f"),
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	headerStyle = lipgloss.NewStyle().Bold(true).Underline(true)
)

// RenderZoneTable renders the five bands with display-rounded bounds.
func RenderZoneTable(bands []zonecalc.ZoneBand) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("%-5s %8s %9s", "Zone", "Low bpm", "High bpm")))
	b.WriteByte('\n')
	for _, band := range bands {
		lo, hi := band.DisplayBounds()
		label := lipgloss.NewStyle().Bold(true).Foreground(zonePalette[band.Label]).Render(band.Label)
		fmt.Fprintf(&b, "%s    %8d %9d\n", label, lo, hi)
	}
	return b.String()
}

// RenderProfile plots the per-lap heart rate line.
func RenderProfile(records []zonecalc.LapRecord) string {
	if len(records) == 0 {
		return ""
	}
	series := make([]float64, len(records))
	for i, r := range records {
		series[i] = r.HeartRate
	}
	graph := asciigraph.Plot(series,
		asciigraph.Height(10),
		asciigraph.Width(4*len(series)),
		asciigraph.Precision(0),
	)
	return titleStyle.Render("Heart-rate profile (bpm by lap)") + "\n" + graph + "\n"
}
