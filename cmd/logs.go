package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/vietdv277/irsstat/internal/aggregate"
	"github.com/vietdv277/irsstat/internal/aws"
	"github.com/vietdv277/irsstat/internal/config"
	"github.com/vietdv277/irsstat/internal/source"
)

// newOpener returns an opener for local files, adding S3 when any of the
// locations needs it
func newOpener(ctx context.Context, cfg *config.Config, locations ...string) (*source.Opener, error) {
	o := source.NewOpener()
	for _, loc := range locations {
		if !aws.IsS3Location(loc) {
			continue
		}
		client, err := aws.NewClient(
			ctx,
			aws.WithProfile(cfg.AWS.Profile),
			aws.WithRegion(cfg.AWS.Region),
			aws.WithEndpoint(cfg.AWS.Endpoint),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create AWS client: %w", err)
		}
		o.Register("s3", aws.NewS3Source(client))
		break
	}
	return o, nil
}

// loadBuckets reads and parses a whole simulation log
func loadBuckets(ctx context.Context, o *source.Opener, location, format string) (*aggregate.Buckets, error) {
	f, err := aggregate.ParseFormat(format)
	if err != nil {
		return nil, err
	}

	lines, err := o.ReadLines(ctx, location)
	if err != nil {
		return nil, err
	}

	b, err := aggregate.ParseLogFormat(lines, f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", location, err)
	}

	slog.Info("parsed log", "location", location, "events", b.Total(), "scenarios", len(b.Scenarios()))
	return b, nil
}

// storeWith sends rendered charts through o so s3:// outputs are uploaded
func storeWith(ctx context.Context, o *source.Opener) func(string, func(io.Writer) error) error {
	return func(path string, write func(io.Writer) error) error {
		return o.Write(ctx, path, write)
	}
}
