// internal/writers/registry.go
package writers

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"mitoseqfix/internal/output"
)

// ResultWriter writes one repaired sequence in a given format.
// Writers for streaming formats keep per-stream state in the returned closure.
type ResultWriter func(r output.Result) error

// ResultFactory binds a format to an output stream.
type ResultFactory func(w io.Writer) ResultWriter

// Format names.
const (
	FormatText   = "text"
	FormatFASTA  = "fasta"
	FormatJSONL  = "jsonl"
	FormatPretty = "pretty"
)

var resultWriters = map[string]ResultFactory{}

// Register adds (or replaces) the factory for format.
func Register(format string, f ResultFactory) { resultWriters[format] = f }

// Lookup returns the factory for format.
func Lookup(format string) (ResultFactory, error) {
	f, ok := resultWriters[format]
	if !ok {
		return nil, fmt.Errorf("unknown output format %q (want one of %v)", format, Formats())
	}
	return f, nil
}

// Formats lists registered format names, sorted.
func Formats() []string {
	out := make([]string, 0, len(resultWriters))
	for k := range resultWriters {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func init() {
	Register(FormatText, func(w io.Writer) ResultWriter {
		return func(r output.Result) error { return output.WriteText(w, r) }
	})
	Register(FormatFASTA, func(w io.Writer) ResultWriter {
		return func(r output.Result) error { return output.WriteFASTA(w, r) }
	})
	Register(FormatPretty, func(w io.Writer) ResultWriter {
		return func(r output.Result) error { return output.WritePretty(w, r) }
	})
	Register(FormatJSONL, func(w io.Writer) ResultWriter {
		enc := json.NewEncoder(w)
		return func(r output.Result) error { return output.EncodeJSONLine(enc, r) }
	})
}
