// Package ingest turns supported input sources into the raw column table
// the normalizer consumes: delimited text pasted or saved by the athlete,
// and decoded FIT lap summaries.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	zonecalc "zone-calc"
)

// ReadDelimited parses comma- or tab-separated text with a header row.
// The delimiter is inferred from the first line: a tab anywhere in it
// selects TSV, otherwise CSV.
func ReadDelimited(r io.Reader) (zonecalc.RawTable, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	text := string(data)
	first, _, _ := strings.Cut(text, "\n")
	delim := ','
	if strings.ContainsRune(first, '\t') {
		delim = '\t'
	}
	return parseDelimited(strings.NewReader(text), delim)
}

// ReadDelimitedFile parses a delimited file, forcing TSV for .tab/.tsv
// extensions and sniffing the first line otherwise.
func ReadDelimitedFile(path string) (zonecalc.RawTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input file: %w", err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".tab", ".tsv":
		return parseDelimited(f, '\t')
	default:
		return ReadDelimited(f)
	}
}

func parseDelimited(r io.Reader, delim rune) (zonecalc.RawTable, error) {
	cr := csv.NewReader(r)
	cr.Comma = delim
	cr.TrimLeadingSpace = true

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse delimited input: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("delimited input has no header row")
	}

	header := rows[0]
	table := make(zonecalc.RawTable, len(header))
	for _, name := range header {
		table[strings.TrimSpace(name)] = make([]string, 0, len(rows)-1)
	}
	for _, row := range rows[1:] {
		for i, name := range header {
			col := strings.TrimSpace(name)
			table[col] = append(table[col], row[i])
		}
	}
	return table, nil
}
