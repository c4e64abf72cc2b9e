// core/fasta/reader.go
package fasta

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
)

// Record is one parsed FASTA entry.
// Header is the full header line without '>'; ID is its first word.
type Record struct {
	ID     string
	Header string
	Seq    []byte
}

// Read parses FASTA from r and calls emit once per record, in file order.
// Sequence lines are concatenated with surrounding whitespace removed.
// Sequence data before the first header is emitted as a record with an
// empty ID. Cancellation is checked between lines.
func Read(ctx context.Context, r io.Reader, emit func(Record) error) error {
	sc := bufio.NewScanner(r)
	const maxLine = 64 * 1024 * 1024 // allow very long single-line sequences (64 MiB)
	buf := make([]byte, 64*1024)
	sc.Buffer(buf, maxLine)

	var (
		rec    Record
		seq    = make([]byte, 0, 1<<16)
		opened bool
	)

	flush := func() error {
		if !opened && len(seq) == 0 {
			return nil
		}
		rec.Seq = append([]byte(nil), seq...)
		return emit(rec)
	}

	for sc.Scan() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		line := sc.Bytes()
		if len(line) == 0 {
			continue
		}
		if line[0] == '>' {
			if err := flush(); err != nil {
				return err
			}
			seq = seq[:0]
			hdr := bytes.TrimSpace(line[1:])
			rec = Record{ID: parseHeaderID(hdr), Header: string(hdr)}
			opened = true
			continue
		}
		seq = append(seq, bytes.TrimSpace(line)...)
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("fasta scan: %w", err)
	}
	return flush()
}

// ReadPath opens path (gzip and "-" aware) and parses it with Read.
func ReadPath(ctx context.Context, path string, emit func(Record) error) error {
	rc, err := Open(path)
	if err != nil {
		return err
	}
	defer func() { _ = rc.Close() }()
	return Read(ctx, rc, emit)
}

func parseHeaderID(hdr []byte) string {
	if i := bytes.IndexAny(hdr, " \t"); i >= 0 {
		return string(hdr[:i])
	}
	return string(hdr)
}
