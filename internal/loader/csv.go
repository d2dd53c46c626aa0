package loader

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/serieslab/inspector/internal/series"
	"github.com/serieslab/inspector/pkg/timeutil"
)

// LoadCSV reads a CSV file with a header row. The first column is the
// index (numbers or RFC 3339 timestamps); every other column becomes
// one series named "<base>/<header>". Empty cells skip the point for
// that column only.
func LoadCSV(r io.Reader, baseName string) ([]Loaded, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading csv header: %w", err)
	}
	if len(header) < 2 {
		return nil, fmt.Errorf("csv needs an index column and at least one value column")
	}

	cols := len(header) - 1
	indexes := make([][]float64, cols)
	values := make([][]float64, cols)

	var kind series.Kind
	kindSet := false
	line := 1
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading csv line %d: %w", line+1, err)
		}
		line++
		if len(record) != len(header) {
			return nil, fmt.Errorf("csv line %d: %d fields, header has %d", line, len(record), len(header))
		}

		x, rowKind, err := parseIndexCell(record[0])
		if err != nil {
			return nil, fmt.Errorf("csv line %d: %w", line, err)
		}
		if !kindSet {
			kind, kindSet = rowKind, true
		} else if rowKind != kind {
			return nil, fmt.Errorf("csv line %d: index kind changed mid-file", line)
		}

		for c := 0; c < cols; c++ {
			cell := record[c+1]
			if cell == "" {
				continue
			}
			y, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, fmt.Errorf("csv line %d column %s: %w", line, header[c+1], err)
			}
			indexes[c] = append(indexes[c], x)
			values[c] = append(values[c], y)
		}
	}

	var out []Loaded
	for c := 0; c < cols; c++ {
		if len(indexes[c]) == 0 {
			continue
		}
		s, err := series.FromDomain(kind, indexes[c], values[c])
		if err != nil {
			return nil, fmt.Errorf("column %s: %w", header[c+1], err)
		}
		out = append(out, Loaded{
			Series:   s,
			Name:     baseName + "/" + header[c+1],
			Metadata: map[string]string{"file": baseName, "column": header[c+1]},
		})
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no data rows in csv")
	}
	return out, nil
}

func parseIndexCell(cell string) (float64, series.Kind, error) {
	if f, err := strconv.ParseFloat(cell, 64); err == nil {
		return f, series.KindNumber, nil
	}
	if t, err := time.Parse(time.RFC3339, cell); err == nil {
		return timeutil.ToDomain(t), series.KindTime, nil
	}
	return 0, series.KindNumber, fmt.Errorf("index cell %q is neither a number nor a timestamp", cell)
}
