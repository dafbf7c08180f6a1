package provider

import (
	"context"
	"errors"
	"io"
)

// Common errors
var (
	ErrNotFound          = errors.New("log not found")
	ErrNotConfigured     = errors.New("provider not configured")
	ErrUnsupportedScheme = errors.New("unsupported location scheme")
	ErrInvalidLocation   = errors.New("invalid location")
)

// LogSource opens simulation logs by location
type LogSource interface {
	// Open returns a reader over the raw, possibly compressed, log content.
	// The caller must close it.
	Open(ctx context.Context, location string) (io.ReadCloser, error)
}

// LogSink stores a finished output artifact at a location
type LogSink interface {
	// Put uploads the content read from r to location
	Put(ctx context.Context, location string, r io.Reader) error
}
