package source

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/gabriel-vasile/mimetype"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/ulikunitz/xz"
)

const sniffLen = 3072

// Compression identifies how a log is encoded on disk
type Compression string

const (
	CompressionNone Compression = "none"
	CompressionGzip Compression = "gzip"
	CompressionZstd Compression = "zstd"
	CompressionXZ   Compression = "xz"
)

type multiCloser struct {
	io.Reader
	closers []func() error
}

func (m *multiCloser) Close() error {
	var errs []error
	for _, c := range m.closers {
		if err := c(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Detect sniffs the leading bytes of a log to find its compression
func Detect(head []byte) Compression {
	mt := mimetype.Detect(head)
	switch {
	case mt.Is("application/gzip"):
		return CompressionGzip
	case mt.Is("application/zstd"):
		return CompressionZstd
	case mt.Is("application/x-xz"):
		return CompressionXZ
	default:
		return CompressionNone
	}
}

// Decompress wraps rc so reads return the plain log content. Closing the
// result closes rc.
func Decompress(rc io.ReadCloser) (io.ReadCloser, Compression, error) {
	br := bufio.NewReaderSize(rc, sniffLen+1024)
	head, err := br.Peek(sniffLen)
	if err != nil && !errors.Is(err, io.EOF) {
		rc.Close()
		return nil, CompressionNone, fmt.Errorf("failed to read log header: %w", err)
	}

	c := Detect(head)
	out := &multiCloser{closers: []func() error{rc.Close}}

	switch c {
	case CompressionGzip:
		zr, err := gzip.NewReader(br)
		if err != nil {
			rc.Close()
			return nil, c, fmt.Errorf("failed to open gzip stream: %w", err)
		}
		out.Reader = zr
		out.closers = append([]func() error{zr.Close}, out.closers...)
	case CompressionZstd:
		zr, err := zstd.NewReader(br)
		if err != nil {
			rc.Close()
			return nil, c, fmt.Errorf("failed to open zstd stream: %w", err)
		}
		out.Reader = zr
		out.closers = append([]func() error{func() error { zr.Close(); return nil }}, out.closers...)
	case CompressionXZ:
		xr, err := xz.NewReader(br)
		if err != nil {
			rc.Close()
			return nil, c, fmt.Errorf("failed to open xz stream: %w", err)
		}
		out.Reader = xr
	default:
		out.Reader = br
	}

	return out, c, nil
}
