package ingest

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	zonecalc "zone-calc"
)

func TestReadDelimitedComma(t *testing.T) {
	input := "Lap,Time,HR\n1,0:03:10,134\n2,0:03:20,149\n"
	table, err := ReadDelimited(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadDelimited() error: %v", err)
	}
	if got := table[zonecalc.ColHR]; len(got) != 2 || got[0] != "134" || got[1] != "149" {
		t.Errorf("HR column = %v", got)
	}
	if got := table[zonecalc.ColTime]; got[1] != "0:03:20" {
		t.Errorf("Time column = %v", got)
	}
}

func TestReadDelimitedSniffsTab(t *testing.T) {
	input := "Lap\tTime\tHR\n1\t3:10\t134\n"
	table, err := ReadDelimited(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadDelimited() error: %v", err)
	}
	if got := table[zonecalc.ColLap]; len(got) != 1 || got[0] != "1" {
		t.Errorf("Lap column = %v", got)
	}
}

func TestReadDelimitedFileExtensionForcesTab(t *testing.T) {
	path := filepath.Join(t.TempDir(), "laps.tsv")
	if err := os.WriteFile(path, []byte("Lap\tTime\tHR\n1\t3:10\t134\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	table, err := ReadDelimitedFile(path)
	if err != nil {
		t.Fatalf("ReadDelimitedFile() error: %v", err)
	}
	if got := table[zonecalc.ColHR]; len(got) != 1 || got[0] != "134" {
		t.Errorf("HR column = %v", got)
	}
}

func TestReadDelimitedHeaderOnly(t *testing.T) {
	table, err := ReadDelimited(strings.NewReader("Lap,Time,HR\n"))
	if err != nil {
		t.Fatalf("ReadDelimited() error: %v", err)
	}
	if len(table[zonecalc.ColLap]) != 0 {
		t.Errorf("Lap column = %v, want empty", table[zonecalc.ColLap])
	}
}

func TestReadDelimitedEmptyInput(t *testing.T) {
	if _, err := ReadDelimited(strings.NewReader("")); err == nil {
		t.Error("expected error for empty input")
	}
}

func TestReadDelimitedRaggedRow(t *testing.T) {
	if _, err := ReadDelimited(strings.NewReader("Lap,Time,HR\n1,3:10\n")); err == nil {
		t.Error("expected error for ragged row")
	}
}
