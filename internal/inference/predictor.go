// internal/inference/predictor.go
package inference

import (
	"context"
	"errors"
	"fmt"

	"mitoseqfix-core/alphabet"
)

// ErrResponseInvalid reports model output that breaks the window contract.
var ErrResponseInvalid = errors.New("response invalid")

// Predictor is the minimal capability the pipeline needs from a model.
// Implementations must be safe for concurrent use.
type Predictor interface {
	Predict(ctx context.Context, window []alphabet.Code) ([]alphabet.Code, error)
}

// PredictorFunc adapts a function to Predictor.
type PredictorFunc func(ctx context.Context, window []alphabet.Code) ([]alphabet.Code, error)

func (f PredictorFunc) Predict(ctx context.Context, window []alphabet.Code) ([]alphabet.Code, error) {
	return f(ctx, window)
}

// checkOutput enforces the fixed-width, valid-code contract on model output.
func checkOutput(in, out []alphabet.Code) error {
	if len(out) != len(in) {
		return fmt.Errorf("%w: got %d codes for a %d-code window", ErrResponseInvalid, len(out), len(in))
	}
	for i, c := range out {
		if c >= alphabet.Size {
			return fmt.Errorf("%w: %w: %d at position %d", ErrResponseInvalid, alphabet.ErrInvalidCode, c, i)
		}
	}
	return nil
}

// Identity echoes every window. It stands in for a model in dry runs and
// tests: the repaired sequence is the normalised input.
type Identity struct{}

func (Identity) Predict(ctx context.Context, window []alphabet.Code) ([]alphabet.Code, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return append([]alphabet.Code(nil), window...), nil
}
