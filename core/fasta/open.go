// core/fasta/open.go
package fasta

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"io"
	"os"
)

// Stdin is read when the path is "-".
var Stdin io.Reader = os.Stdin

var gzipMagic = []byte{0x1f, 0x8b}

// source is an opened sequence or dataset file. Closing it releases the
// decompressor, if any, and then the file.
type source struct {
	io.Reader
	gz   *gzip.Reader
	file io.Closer
}

func (s *source) Close() error {
	var err error
	if s.gz != nil {
		err = s.gz.Close()
	}
	if s.file != nil {
		if ferr := s.file.Close(); err == nil {
			err = ferr
		}
	}
	return err
}

// Open opens a FASTA file or evaluation CSV for reading. "-" reads Stdin.
// Gzipped content is unpacked transparently whatever the file name; a .gz
// name on plain text is read as is.
func Open(path string) (io.ReadCloser, error) {
	src := &source{}
	var raw io.Reader = Stdin
	if path != "-" {
		fh, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		src.file, raw = fh, fh
	}
	br := bufio.NewReader(raw)
	src.Reader = br
	if head, _ := br.Peek(len(gzipMagic)); !bytes.Equal(head, gzipMagic) {
		return src, nil
	}
	gz, err := gzip.NewReader(br)
	if err != nil {
		_ = src.Close()
		return nil, err
	}
	src.gz, src.Reader = gz, gz
	return src, nil
}
