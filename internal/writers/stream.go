// internal/writers/stream.go
package writers

import (
	"bufio"
	"errors"
	"io"
	"sync"
	"syscall"

	"mitoseqfix/internal/output"
)

// 64 KiB buffered writers are pooled across streams.
var bwPool = sync.Pool{
	New: func() any {
		return bufio.NewWriterSize(io.Discard, 64<<10)
	},
}

// IsBrokenPipe reports whether err is a broken or closed pipe,
// as happens when a consumer like `head` exits early.
func IsBrokenPipe(err error) bool {
	return err != nil && (errors.Is(err, syscall.EPIPE) || errors.Is(err, io.ErrClosedPipe))
}

// Start runs a writer goroutine for values of type T. The caller closes the
// returned channel and then receives exactly one value from done.
// Broken-pipe errors are reported as nil.
func Start[T any](out io.Writer, bufSize int, bind func(io.Writer) func(T) error) (chan<- T, <-chan error) {
	if bufSize <= 0 {
		bufSize = 64
	}
	in := make(chan T, bufSize)
	done := make(chan error, 1)

	go func() {
		bw := bwPool.Get().(*bufio.Writer)
		bw.Reset(out)
		defer func() {
			bw.Reset(io.Discard)
			bwPool.Put(bw)
		}()

		write := bind(bw)
		var werr error
		for v := range in {
			if werr != nil {
				continue // drain so senders never block
			}
			werr = write(v)
		}
		if werr == nil {
			werr = bw.Flush()
		}
		if IsBrokenPipe(werr) {
			werr = nil
		}
		done <- werr
	}()

	return in, done
}

// StartResultWriter starts a buffered result stream in the given format.
func StartResultWriter(out io.Writer, format string, bufSize int) (chan<- output.Result, <-chan error, error) {
	f, err := Lookup(format)
	if err != nil {
		return nil, nil, err
	}
	in, done := Start(out, bufSize, func(w io.Writer) func(output.Result) error {
		return f(w)
	})
	return in, done, nil
}
