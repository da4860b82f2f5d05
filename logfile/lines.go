package logfile

import (
	"bufio"
	"errors"
	"fmt"
	"github.com/klauspost/compress/gzip"
	"io"
	"iter"
	"os"
	"strings"
)

const readBufferSize = 64 * 1024

// Lines returns a single-pass sequence of the lines in the log file, with
// surrounding whitespace removed. Compressed files are decompressed while
// reading. Lines of any length are yielded whole.
//
// The file is opened when iteration starts and closed once the sequence is
// exhausted, an error is yielded or the consumer stops early. An open or read
// failure is yielded once as a non-nil error and ends the sequence.
func Lines(d Descriptor) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		f, err := os.Open(d.Path)
		if err != nil {
			yield("", fmt.Errorf("unable to open log file %s: %w", d.Path, err))
			return
		}
		defer f.Close()

		var r io.Reader = f
		if d.IsCompressed() {
			gz, err := gzip.NewReader(f)
			if err != nil {
				yield("", fmt.Errorf("unable to decompress log file %s: %w", d.Path, err))
				return
			}
			defer gz.Close()
			r = gz
		}

		reader := bufio.NewReaderSize(r, readBufferSize)
		for {
			line, err := reader.ReadString('\n')
			// A final line without a trailing newline arrives together with io.EOF.
			if len(line) > 0 {
				if !yield(strings.TrimSpace(line), nil) {
					return
				}
			}
			if err != nil {
				if !errors.Is(err, io.EOF) {
					yield("", fmt.Errorf("unable to read log file %s: %w", d.Path, err))
				}
				return
			}
		}
	}
}
