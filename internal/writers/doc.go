// Package writers turns repaired sequences into serialized output streams.
//
// Writers own presentation (plain text, FASTA, JSONL); the pipeline stays
// orchestration-only. JSONL goes through pkg/api (v1) for a stable wire format.
package writers
