package telemetry

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// ErrEmptySource indicates that no usable telemetry rows survived parsing.
var ErrEmptySource = errors.New("telemetry: no usable rows in source")

// Load parses combined race telemetry from r. Each row is
// `car,timestamp,fraction`; a header row is detected and skipped.
//
// Parsing is deliberately lenient: rows with a missing field, a non-numeric
// or negative timestamp, or a non-numeric fraction are skipped and reported
// as warnings. A car whose rows all fail validation is excluded with a
// CarExcluded warning. Only a source with zero surviving rows is an error.
func Load(r io.Reader, source string) (*Set, []Warning, error) {
	set := &Set{cars: make(map[CarID][]Sample)}
	var warnings []Warning

	rd := csv.NewReader(r)
	rd.FieldsPerRecord = -1
	rd.TrimLeadingSpace = true

	seen := make(map[CarID]bool)
	line := 0
	for {
		rec, err := rd.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			warnings = append(warnings, Warning{
				Kind: MalformedRecord, Source: source, Line: line,
				Reason: err.Error(),
			})
			continue
		}
		if line == 1 && looksLikeHeader(rec) {
			continue
		}
		if len(rec) < 3 {
			warnings = append(warnings, Warning{
				Kind: MalformedRecord, Source: source, Line: line,
				Reason: fmt.Sprintf("want 3 fields, got %d", len(rec)),
			})
			continue
		}
		id := CarID(strings.TrimSpace(rec[0]))
		if id == "" {
			warnings = append(warnings, Warning{
				Kind: MalformedRecord, Source: source, Line: line,
				Reason: "empty car id",
			})
			continue
		}
		if !seen[id] {
			seen[id] = true
			set.order = append(set.order, id)
		}
		sample, reason := parseSample(rec[1], rec[2])
		if reason != "" {
			warnings = append(warnings, Warning{
				Kind: MalformedRecord, Car: id, Source: source, Line: line,
				Reason: reason,
			})
			continue
		}
		set.cars[id] = append(set.cars[id], sample)
	}

	warnings = append(warnings, set.finalize(source)...)
	if set.Len() == 0 {
		return nil, warnings, fmt.Errorf("%s: %w", source, ErrEmptySource)
	}
	return set, warnings, nil
}

// LoadDir reads one CSV file per car from dir, the layout the recorded races
// ship in: `<car>.csv` holding `timestamp,fraction` rows. The car id is the
// file name without extension.
func LoadDir(dir string) (*Set, []Warning, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, nil, err
	}

	set := &Set{cars: make(map[CarID][]Sample)}
	var warnings []Warning
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".csv") {
			continue
		}
		id := CarID(strings.TrimSuffix(e.Name(), filepath.Ext(e.Name())))
		path := filepath.Join(dir, e.Name())
		samples, ws, err := loadCarFile(path, id)
		if err != nil {
			return nil, warnings, err
		}
		warnings = append(warnings, ws...)
		set.order = append(set.order, id)
		set.cars[id] = samples
	}

	warnings = append(warnings, set.finalize(dir)...)
	if set.Len() == 0 {
		return nil, warnings, fmt.Errorf("%s: %w", dir, ErrEmptySource)
	}
	return set, warnings, nil
}

func loadCarFile(path string, id CarID) ([]Sample, []Warning, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	rd := csv.NewReader(f)
	rd.FieldsPerRecord = -1
	rd.TrimLeadingSpace = true

	var samples []Sample
	var warnings []Warning
	line := 0
	for {
		rec, err := rd.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			warnings = append(warnings, Warning{
				Kind: MalformedRecord, Car: id, Source: path, Line: line,
				Reason: err.Error(),
			})
			continue
		}
		if line == 1 && looksLikeHeader(rec) {
			continue
		}
		if len(rec) < 2 {
			warnings = append(warnings, Warning{
				Kind: MalformedRecord, Car: id, Source: path, Line: line,
				Reason: fmt.Sprintf("want 2 fields, got %d", len(rec)),
			})
			continue
		}
		sample, reason := parseSample(rec[0], rec[1])
		if reason != "" {
			warnings = append(warnings, Warning{
				Kind: MalformedRecord, Car: id, Source: path, Line: line,
				Reason: reason,
			})
			continue
		}
		samples = append(samples, sample)
	}
	return samples, warnings, nil
}

func parseSample(tsField, fracField string) (Sample, string) {
	ts, err := strconv.ParseFloat(strings.TrimSpace(tsField), 64)
	if err != nil {
		return Sample{}, fmt.Sprintf("bad timestamp %q", tsField)
	}
	if ts < 0 {
		return Sample{}, fmt.Sprintf("negative timestamp %g", ts)
	}
	frac, err := strconv.ParseFloat(strings.TrimSpace(fracField), 64)
	if err != nil {
		return Sample{}, fmt.Sprintf("bad fraction %q", fracField)
	}
	return Sample{Timestamp: ts, Fraction: mod1(frac)}, ""
}

// finalize sorts each car's samples (stable, so input order breaks timestamp
// ties), collapses duplicate timestamps with a last-wins policy, and drops
// cars left without samples.
func (s *Set) finalize(source string) []Warning {
	var warnings []Warning
	kept := s.order[:0]
	for _, id := range s.order {
		samples := s.cars[id]
		if len(samples) == 0 {
			delete(s.cars, id)
			warnings = append(warnings, Warning{
				Kind: CarExcluded, Car: id, Source: source,
				Reason: "no usable samples",
			})
			continue
		}
		sort.SliceStable(samples, func(i, j int) bool {
			return samples[i].Timestamp < samples[j].Timestamp
		})
		s.cars[id] = dedup(samples)
		kept = append(kept, id)
	}
	s.order = kept
	return warnings
}

// dedup keeps the last sample of each run of equal timestamps. The input
// must already be sorted.
func dedup(samples []Sample) []Sample {
	out := samples[:0]
	for i, smp := range samples {
		if i+1 < len(samples) && samples[i+1].Timestamp == smp.Timestamp {
			continue
		}
		out = append(out, smp)
	}
	return out
}

func looksLikeHeader(rec []string) bool {
	for _, field := range rec {
		if _, err := strconv.ParseFloat(strings.TrimSpace(field), 64); err == nil {
			return false
		}
	}
	return len(rec) > 1
}
