// internal/inference/command.go
package inference

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/google/shlex"

	"mitoseqfix-core/alphabet"
)

// Command runs an external model process once per window. The window is
// written to stdin as one line of space-separated codes; the process must
// print the predicted codes the same way on stdout.
type Command struct {
	name string
	args []string
}

// NewCommand parses a shell-style command line ("python3 predict.py --cpu").
func NewCommand(cmdline string) (*Command, error) {
	argv, err := shlex.Split(cmdline)
	if err != nil {
		return nil, fmt.Errorf("inference command %q: %w", cmdline, err)
	}
	if len(argv) == 0 {
		return nil, errors.New("inference command is empty")
	}
	return &Command{name: argv[0], args: argv[1:]}, nil
}

func (c *Command) Predict(ctx context.Context, window []alphabet.Code) ([]alphabet.Code, error) {
	var stdin, stdout, stderr bytes.Buffer
	for i, code := range window {
		if i > 0 {
			stdin.WriteByte(' ')
		}
		stdin.WriteString(strconv.Itoa(int(code)))
	}
	stdin.WriteByte('\n')

	cmd := exec.CommandContext(ctx, c.name, c.args...)
	cmd.Stdin = &stdin
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return nil, fmt.Errorf("model command %s: %w: %s", c.name, err, msg)
		}
		return nil, fmt.Errorf("model command %s: %w", c.name, err)
	}

	fields := strings.Fields(stdout.String())
	vals := make([]int, len(fields))
	for i, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("%w: model command output field %d: %q", ErrResponseInvalid, i, f)
		}
		vals[i] = v
	}
	pred, err := alphabet.FromInts(vals)
	if err != nil {
		return nil, errors.Join(ErrResponseInvalid, err)
	}
	if err := checkOutput(window, pred); err != nil {
		return nil, err
	}
	return pred, nil
}
