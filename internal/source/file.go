package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/vietdv277/irsstat/pkg/provider"
)

// Stdin is the location that reads from standard input
const Stdin = "-"

// FileSource opens logs from the local filesystem
type FileSource struct{}

// Open implements provider.LogSource
func (FileSource) Open(_ context.Context, location string) (io.ReadCloser, error) {
	if location == Stdin {
		return io.NopCloser(os.Stdin), nil
	}

	f, err := os.Open(location)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", provider.ErrNotFound, location)
		}
		return nil, err
	}
	return f, nil
}
