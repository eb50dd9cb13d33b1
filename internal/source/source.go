// internal/source/source.go
package source

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
)

// Source produces a lazy sequence of text lines, scanner style:
//
//	for src.Scan() {
//	    line := src.Text()
//	}
//	err := src.Err()
//
// Two providers exist: standard input and a named file, picked once at
// startup. Gzip-compressed files are decompressed on the fly.
type Source interface {
	Scan() bool
	Text() string
	Err() error
	Close() error
}

// Flow lines are normally well under 4KB, but records with full BGP
// communities / MPLS stacks can run long; allow up to 1MB per line.
const maxLineBytes = 1 << 20

// LineSource adapts any reader into a Source. Closing releases the
// underlying file handles (gzip reader before file) when there are any.
type LineSource struct {
	sc      *bufio.Scanner
	closers []io.Closer
}

// FromReader wraps an arbitrary reader. Nothing is closed on Close.
func FromReader(r io.Reader) *LineSource {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), maxLineBytes)
	return &LineSource{sc: sc}
}

// Stdin returns the standard-input provider.
func Stdin() *LineSource {
	return FromReader(os.Stdin)
}

// OpenFile returns a provider over the named file. Paths ending in .gz
// are read through a gzip decompressor.
func OpenFile(path string) (*LineSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input %s: %w", path, err)
	}

	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("gzip input %s: %w", path, err)
		}
		src := FromReader(gz)
		src.closers = []io.Closer{gz, f}
		return src, nil
	}

	src := FromReader(f)
	src.closers = []io.Closer{f}
	return src, nil
}

// Open picks the provider for the configured input path: "", "-" and
// "/dev/stdin" select standard input, anything else is a file path.
func Open(path string) (Source, error) {
	switch path {
	case "", "-", "/dev/stdin":
		return Stdin(), nil
	}
	return OpenFile(path)
}

func (s *LineSource) Scan() bool {
	return s.sc.Scan()
}

func (s *LineSource) Text() string {
	return s.sc.Text()
}

func (s *LineSource) Err() error {
	return s.sc.Err()
}

func (s *LineSource) Close() error {
	var firstErr error
	for _, c := range s.closers {
		if err := c.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
