// internal/output/result.go
package output

import (
	"unicode/utf8"

	"mitoseqfix-core/alphabet"
	"mitoseqfix-core/score"
	"mitoseqfix/pkg/api"
)

// Result is one repaired sequence ready for presentation.
type Result struct {
	ID       string // FASTA record ID, empty for raw input
	Header   string // full FASTA header, empty for raw input
	Input    string // raw input, for the alignment view
	InputLen int    // characters read
	Repaired string
	Changes  int  // positions where the raw input and the repair differ
	Damaged  bool // input carried lowercase or N markers
}

// NewResult describes the repair of input into repaired.
func NewResult(id, header, input, repaired string) Result {
	return Result{
		ID:       id,
		Header:   header,
		Input:    input,
		InputLen: utf8.RuneCountInString(input),
		Repaired: repaired,
		Changes:  score.Changes(input, repaired),
		Damaged:  alphabet.HasDamage(input),
	}
}

// ToAPI converts a Result to the stable wire schema (v1).
func ToAPI(r Result) api.RepairV1 {
	damaged := r.Damaged
	return api.RepairV1{
		Repaired:  r.Repaired,
		Success:   true,
		InputLen:  r.InputLen,
		OutputLen: utf8.RuneCountInString(r.Repaired),
		Changes:   r.Changes,
		ID:        r.ID,
		Damaged:   &damaged,
	}
}
