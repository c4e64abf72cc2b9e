// internal/output/fasta.go
package output

import (
	"bufio"
	"io"
)

// FASTAWidth is the line width of FASTA sequence output.
const FASTAWidth = 60

// WriteFASTA writes r as one FASTA record, keeping the input header.
func WriteFASTA(w io.Writer, r Result) error {
	bw, ok := w.(*bufio.Writer)
	if !ok {
		bw = bufio.NewWriter(w)
		defer func() { _ = bw.Flush() }()
	}
	hdr := r.Header
	if hdr == "" {
		hdr = r.ID
	}
	if hdr == "" {
		hdr = "repaired"
	}
	bw.WriteByte('>')
	bw.WriteString(hdr)
	bw.WriteByte('\n')
	for i := 0; i < len(r.Repaired); i += FASTAWidth {
		bw.WriteString(r.Repaired[i:min(i+FASTAWidth, len(r.Repaired))])
		bw.WriteByte('\n')
	}
	if len(r.Repaired) == 0 {
		bw.WriteByte('\n')
	}
	return bwErr(bw)
}

// bwErr reports a sticky write error without forcing a flush.
func bwErr(bw *bufio.Writer) error {
	_, err := bw.Write(nil)
	return err
}
