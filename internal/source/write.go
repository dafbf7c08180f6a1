package source

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/vietdv277/irsstat/internal/output"
	"github.com/vietdv277/irsstat/pkg/provider"
)

// Write stores the content produced by write at location. Local files are
// replaced atomically; remote locations are uploaded once write succeeds.
func (o *Opener) Write(ctx context.Context, location string, write func(w io.Writer) error) error {
	scheme := Scheme(location)
	if scheme == "" {
		return output.WriteFile(location, write)
	}

	sink, ok := o.Remote[scheme].(provider.LogSink)
	if !ok {
		return fmt.Errorf("%w: cannot write to %s", provider.ErrUnsupportedScheme, scheme)
	}

	var buf bytes.Buffer
	if err := write(&buf); err != nil {
		return err
	}
	return sink.Put(ctx, location, bytes.NewReader(buf.Bytes()))
}
