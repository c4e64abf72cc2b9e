// internal/eval/dataset.go
package eval

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"math/rand"
	"sort"
	"strings"

	"mitoseqfix-core/fasta"
)

// UnknownDamageType labels rows with no damage_type value.
const UnknownDamageType = "unknown"

// ErrMissingColumn is returned when a required CSV column is absent.
var ErrMissingColumn = errors.New("missing CSV column")

// Sample is one labelled dataset row.
type Sample struct {
	Row        int // 1-based data row (header excluded)
	Damaged    string
	Clean      string
	DamageType string
}

// ReadCSV parses a dataset with header columns damaged, clean and optionally
// damage_type, in any order. Extra columns are ignored.
func ReadCSV(r io.Reader) ([]Sample, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: empty dataset", ErrMissingColumn)
	}
	if err != nil {
		return nil, fmt.Errorf("read CSV header: %w", err)
	}
	col := map[string]int{}
	for i, h := range header {
		col[strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))] = i
	}
	damagedIdx, ok := col["damaged"]
	if !ok {
		return nil, fmt.Errorf("%w: damaged", ErrMissingColumn)
	}
	cleanIdx, ok := col["clean"]
	if !ok {
		return nil, fmt.Errorf("%w: clean", ErrMissingColumn)
	}
	typeIdx, hasType := col["damage_type"]

	field := func(rec []string, i int) string {
		if i < len(rec) {
			return rec[i]
		}
		return ""
	}

	var out []Sample
	for row := 1; ; row++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read CSV row %d: %w", row, err)
		}
		s := Sample{
			Row:        row,
			Damaged:    field(rec, damagedIdx),
			Clean:      field(rec, cleanIdx),
			DamageType: UnknownDamageType,
		}
		if hasType {
			if dt := strings.TrimSpace(field(rec, typeIdx)); dt != "" {
				s.DamageType = dt
			}
		}
		out = append(out, s)
	}
	return out, nil
}

// LoadCSV reads a dataset from path ("-" for stdin, gzip accepted).
func LoadCSV(path string) ([]Sample, error) {
	rc, err := fasta.Open(path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return ReadCSV(rc)
}

// Subsample returns round(frac*len(samples)) rows chosen with a seeded
// shuffle, at least one when samples is non-empty. frac <= 0 or >= 1 keeps
// every row. Rows keep their dataset order.
func Subsample(samples []Sample, frac float64, seed int64) []Sample {
	if frac <= 0 || frac >= 1 || len(samples) == 0 {
		return samples
	}
	k := int(math.Round(frac * float64(len(samples))))
	k = max(k, 1)
	idx := rand.New(rand.NewSource(seed)).Perm(len(samples))[:k]
	sort.Ints(idx)
	out := make([]Sample, k)
	for i, j := range idx {
		out[i] = samples[j]
	}
	return out
}
