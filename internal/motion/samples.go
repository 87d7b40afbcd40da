package motion

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ReadSamples parses recorded accelerometer samples from CSV. Each row is
// either "t_ms,z" or "t_ms,x,y,z". A header row and '#' comments are skipped.
func ReadSamples(r io.Reader) ([]Sample, error) {
	cr := csv.NewReader(r)
	cr.Comment = '#'
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	var samples []Sample
	for row := 1; ; row++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return samples, nil
		}
		if err != nil {
			return nil, fmt.Errorf("read samples: %w", err)
		}
		if row == 1 && len(rec) > 0 && strings.HasPrefix(strings.TrimSpace(rec[0]), "t") {
			continue
		}

		s, err := parseSampleRow(rec)
		if err != nil {
			return nil, fmt.Errorf("sample row %d: %w", row, err)
		}
		samples = append(samples, s)
	}
}

func parseSampleRow(rec []string) (Sample, error) {
	vals := make([]float64, len(rec))
	for i, field := range rec {
		v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
		if err != nil {
			return Sample{}, fmt.Errorf("column %d: %w", i+1, err)
		}
		vals[i] = v
	}

	switch len(vals) {
	case 2:
		return Sample{AtMs: int64(vals[0]), Z: vals[1]}, nil
	case 4:
		return Sample{AtMs: int64(vals[0]), X: vals[1], Y: vals[2], Z: vals[3]}, nil
	default:
		return Sample{}, fmt.Errorf("want 2 or 4 columns, got %d", len(vals))
	}
}
