// internal/output/json.go
package output

import (
	"encoding/json"
	"io"
)

// EncodeJSONLine writes r as one JSON line (v1 schema).
func EncodeJSONLine(enc *json.Encoder, r Result) error {
	return enc.Encode(ToAPI(r))
}

// EncodePretty writes v as indented JSON to w.
func EncodePretty(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
