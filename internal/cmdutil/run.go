// internal/cmdutil/run.go
package cmdutil

import (
	"context"
	"fmt"
	"io"
	"strings"

	"mitoseqfix-core/fasta"
	"mitoseqfix/internal/logger"
	"mitoseqfix/internal/output"
)

// Repairer is the part of pipeline.Repairer the commands need.
type Repairer interface {
	Repair(ctx context.Context, text string) (string, error)
}

// RepairText repairs one raw sequence. Surrounding whitespace is dropped
// first; ok is false when nothing remains.
func RepairText(ctx context.Context, rep Repairer, text string) (res output.Result, ok bool, err error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return output.Result{}, false, nil
	}
	repaired, err := rep.Repair(ctx, text)
	if err != nil {
		return output.Result{}, false, err
	}
	return output.NewResult("", "", text, repaired), true, nil
}

// RepairStream repairs every FASTA record in r in file order and passes each
// result to send. Empty records are passed through empty and logged.
// It returns the number of results sent and the first error encountered.
func RepairStream(ctx context.Context, r io.Reader, rep Repairer, send func(output.Result) error) (int, error) {
	log := logger.FromContext(ctx)
	total := 0
	err := fasta.Read(ctx, r, func(rec fasta.Record) error {
		var res output.Result
		if len(rec.Seq) == 0 {
			log.Warn("empty FASTA record", "id", rec.ID)
			res = output.NewResult(rec.ID, rec.Header, "", "")
		} else {
			repaired, err := rep.Repair(ctx, string(rec.Seq))
			if err != nil {
				if rec.ID == "" {
					return err
				}
				return fmt.Errorf("record %s: %w", rec.ID, err)
			}
			res = output.NewResult(rec.ID, rec.Header, string(rec.Seq), repaired)
		}
		if err := send(res); err != nil {
			return err
		}
		total++
		return nil
	})
	return total, err
}
