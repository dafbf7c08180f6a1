// Package source resolves log locations to readers and loads their lines.
package source

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/vietdv277/irsstat/pkg/provider"
)

// maxLineLen bounds a single log line
const maxLineLen = 1 << 20

// Opener dispatches locations to the source that understands their scheme
type Opener struct {
	Local  provider.LogSource
	Remote map[string]provider.LogSource // keyed by scheme, e.g. "s3"
}

// NewOpener returns an Opener reading local files only
func NewOpener() *Opener {
	return &Opener{
		Local:  FileSource{},
		Remote: make(map[string]provider.LogSource),
	}
}

// Register adds a source for a URL scheme
func (o *Opener) Register(scheme string, src provider.LogSource) {
	o.Remote[scheme] = src
}

// Scheme returns the URL scheme of a location, or "" for local paths
func Scheme(location string) string {
	scheme, _, ok := strings.Cut(location, "://")
	if !ok {
		return ""
	}
	return scheme
}

// Open returns a reader over the decompressed content at location
func (o *Opener) Open(ctx context.Context, location string) (io.ReadCloser, error) {
	src := o.Local
	if scheme := Scheme(location); scheme != "" {
		var ok bool
		if src, ok = o.Remote[scheme]; !ok {
			return nil, fmt.Errorf("%w: %s", provider.ErrUnsupportedScheme, scheme)
		}
	}

	rc, err := src.Open(ctx, location)
	if err != nil {
		return nil, err
	}

	plain, c, err := Decompress(rc)
	if err != nil {
		return nil, err
	}
	slog.Debug("opened log", "location", location, "compression", c)
	return plain, nil
}

// ReadLines loads every line of the log at location into memory
func (o *Opener) ReadLines(ctx context.Context, location string) ([]string, error) {
	rc, err := o.Open(ctx, location)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	lines, err := ReadLines(rc)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", location, err)
	}
	return lines, nil
}

// ReadLines reads all lines from r without their terminators
func ReadLines(r io.Reader) ([]string, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), maxLineLen)

	var lines []string
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}
