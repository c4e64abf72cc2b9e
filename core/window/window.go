// core/window/window.go
package window

import (
	"errors"
	"fmt"

	"mitoseqfix-core/alphabet"
)

// Defaults used by every entry point.
const (
	DefaultSize    = 1024
	DefaultOverlap = 256
)

var (
	// ErrInvalidWindowConfig is returned when overlap >= size (step <= 0).
	ErrInvalidWindowConfig = errors.New("invalid window config")
	// ErrEmptySequence is returned for zero-length input.
	ErrEmptySequence = errors.New("empty sequence")
)

// Config is the fixed window width and the overlap between neighbours.
type Config struct {
	Size    int
	Overlap int
}

// DefaultConfig returns the 1024/256 window.
func DefaultConfig() Config {
	return Config{Size: DefaultSize, Overlap: DefaultOverlap}
}

// Step is the offset between consecutive window starts.
func (c Config) Step() int { return c.Size - c.Overlap }

// Validate requires Size >= 1 and 0 <= Overlap < Size.
func (c Config) Validate() error {
	if c.Size < 1 {
		return fmt.Errorf("%w: window size %d must be >= 1", ErrInvalidWindowConfig, c.Size)
	}
	if c.Overlap < 0 {
		return fmt.Errorf("%w: overlap %d must be >= 0", ErrInvalidWindowConfig, c.Overlap)
	}
	if c.Overlap >= c.Size {
		return fmt.Errorf("%w: overlap %d must be < window size %d", ErrInvalidWindowConfig, c.Overlap, c.Size)
	}
	return nil
}

// Descriptor is one window of the encoded sequence.
// Length+PadLength always equals the window size.
type Descriptor struct {
	Start     int
	Length    int
	PadLength int
}

// End is the exclusive end of the real (unpadded) region.
func (d Descriptor) End() int { return d.Start + d.Length }

// Size is the full padded width.
func (d Descriptor) Size() int { return d.Length + d.PadLength }

// Window copies the descriptor's slice of codes and pads it with N up to
// the full width.
func (d Descriptor) Window(codes []alphabet.Code) []alphabet.Code {
	w := make([]alphabet.Code, d.Size())
	n := copy(w, codes[d.Start:d.End()])
	for i := n; i < len(w); i++ {
		w[i] = alphabet.Pad
	}
	return w
}

// Trim drops the padding region from a full-width prediction.
func (d Descriptor) Trim(pred []alphabet.Code) ([]alphabet.Code, error) {
	if len(pred) != d.Size() {
		return nil, fmt.Errorf("window at %d: prediction has %d codes, want %d", d.Start, len(pred), d.Size())
	}
	return pred[:d.Length], nil
}

// Plan splits a sequence of length n into fixed-width windows.
// Windows start at 0, step, 2*step, ... while start < n; the last one is
// padded rather than shifted, so no position is skipped.
func Plan(n int, cfg Config) ([]Descriptor, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if n < 1 {
		return nil, ErrEmptySequence
	}
	if n <= cfg.Size {
		return []Descriptor{{Start: 0, Length: n, PadLength: cfg.Size - n}}, nil
	}

	step := cfg.Step()
	out := make([]Descriptor, 0, Count(n, cfg))
	for start := 0; start < n; start += step {
		length := min(cfg.Size, n-start)
		out = append(out, Descriptor{Start: start, Length: length, PadLength: cfg.Size - length})
	}
	return out, nil
}

// Count returns how many windows Plan produces for n (0 for n < 1).
// cfg must be valid.
func Count(n int, cfg Config) int {
	if n < 1 {
		return 0
	}
	if n <= cfg.Size {
		return 1
	}
	step := cfg.Step()
	return (n + step - 1) / step
}
