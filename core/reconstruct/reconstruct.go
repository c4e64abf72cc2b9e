// core/reconstruct/reconstruct.go
package reconstruct

import (
	"errors"
	"fmt"

	"mitoseqfix-core/alphabet"
	"mitoseqfix-core/window"
)

var (
	// ErrLengthMismatch is matched by *LengthMismatchError.
	ErrLengthMismatch = errors.New("reconstruction length mismatch")
	// ErrOutOfOrder is returned when windows are not added in plan order.
	ErrOutOfOrder = errors.New("window out of order")
)

// LengthMismatchError carries the expected and merged lengths.
type LengthMismatchError struct {
	Expected int
	Actual   int
}

func (e *LengthMismatchError) Error() string {
	return fmt.Sprintf("%s: expected %d codes, got %d", ErrLengthMismatch, e.Expected, e.Actual)
}

func (e *LengthMismatchError) Is(target error) bool { return target == ErrLengthMismatch }

// Merger stitches trimmed window predictions into one sequence.
// On overlap the earlier window wins: each window after the first drops
// its first min(overlap, len) codes and appends the rest.
type Merger struct {
	n       int
	overlap int
	out     []alphabet.Code
	next    int // windows accepted so far
	lastEnd int // exclusive end of the last accepted window
	lastPos int
}

// NewMerger prepares a merger for a sequence of n codes.
func NewMerger(n, overlap int) *Merger {
	return &Merger{n: n, overlap: overlap, out: make([]alphabet.Code, 0, n), lastPos: -1}
}

// Add appends one trimmed prediction. Windows must arrive in ascending Start.
func (m *Merger) Add(d window.Descriptor, trimmed []alphabet.Code) error {
	if len(trimmed) != d.Length {
		return fmt.Errorf("%w: window at %d has %d codes, descriptor says %d", ErrOutOfOrder, d.Start, len(trimmed), d.Length)
	}
	if d.Start <= m.lastPos || d.End() > m.n {
		return fmt.Errorf("%w: window at %d after window at %d (sequence length %d)", ErrOutOfOrder, d.Start, m.lastPos, m.n)
	}
	if m.next > 0 && d.Start > m.lastEnd {
		return fmt.Errorf("%w: gap between %d and %d", ErrOutOfOrder, m.lastEnd, d.Start)
	}

	tail := trimmed
	if m.next > 0 {
		tail = trimmed[min(m.overlap, len(trimmed)):]
	}
	m.out = append(m.out, tail...)
	m.next++
	m.lastPos = d.Start
	m.lastEnd = max(m.lastEnd, d.End())
	return nil
}

// Len is the number of codes merged so far.
func (m *Merger) Len() int { return len(m.out) }

// Result returns the merged sequence, or a *LengthMismatchError when it
// does not hold exactly n codes. The result is never truncated or padded.
func (m *Merger) Result() ([]alphabet.Code, error) {
	if m.n < 1 {
		return nil, window.ErrEmptySequence
	}
	if len(m.out) != m.n {
		return nil, &LengthMismatchError{Expected: m.n, Actual: len(m.out)}
	}
	return m.out, nil
}

// Reconstruct merges trimmed predictions (one per descriptor, same order).
func Reconstruct(n, overlap int, descs []window.Descriptor, trimmed [][]alphabet.Code) ([]alphabet.Code, error) {
	if n < 1 {
		return nil, window.ErrEmptySequence
	}
	if len(descs) != len(trimmed) {
		return nil, fmt.Errorf("%w: %d descriptors, %d predictions", ErrOutOfOrder, len(descs), len(trimmed))
	}
	if len(descs) == 1 {
		if len(trimmed[0]) != n {
			return nil, &LengthMismatchError{Expected: n, Actual: len(trimmed[0])}
		}
		return trimmed[0], nil
	}
	m := NewMerger(n, overlap)
	for i, d := range descs {
		if err := m.Add(d, trimmed[i]); err != nil {
			return nil, err
		}
	}
	return m.Result()
}
