package aws

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/vietdv277/irsstat/pkg/provider"
)

// S3Scheme is the location prefix handled by S3Source
const S3Scheme = "s3://"

// S3Location is a parsed s3://bucket/key location
type S3Location struct {
	Bucket string
	Key    string
}

func (l S3Location) String() string {
	return S3Scheme + l.Bucket + "/" + l.Key
}

// ParseS3Location splits an s3://bucket/key location
func ParseS3Location(location string) (S3Location, error) {
	rest, ok := strings.CutPrefix(location, S3Scheme)
	if !ok {
		return S3Location{}, fmt.Errorf("%w: %q has no %s prefix", provider.ErrInvalidLocation, location, S3Scheme)
	}
	bucket, key, ok := strings.Cut(rest, "/")
	if !ok || bucket == "" || key == "" {
		return S3Location{}, fmt.Errorf("%w: %q must be %sbucket/key", provider.ErrInvalidLocation, location, S3Scheme)
	}
	return S3Location{Bucket: bucket, Key: key}, nil
}

// IsS3Location reports whether location uses the s3:// scheme
func IsS3Location(location string) bool {
	return strings.HasPrefix(location, S3Scheme)
}

// S3Source reads logs from and writes outputs to S3
type S3Source struct {
	client *s3.Client
}

// NewS3Source creates an S3 backed log source
func NewS3Source(client *Client) *S3Source {
	return &S3Source{client: client.S3}
}

// Open implements provider.LogSource
func (s *S3Source) Open(ctx context.Context, location string) (io.ReadCloser, error) {
	loc, err := ParseS3Location(location)
	if err != nil {
		return nil, err
	}

	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: awssdk.String(loc.Bucket),
		Key:    awssdk.String(loc.Key),
	})
	if err != nil {
		var nsk *s3types.NoSuchKey
		if errors.As(err, &nsk) {
			return nil, fmt.Errorf("%w: %s", provider.ErrNotFound, loc)
		}
		return nil, fmt.Errorf("failed to get %s: %w", loc, err)
	}

	return out.Body, nil
}

// Put implements provider.LogSink
func (s *S3Source) Put(ctx context.Context, location string, r io.Reader) error {
	loc, err := ParseS3Location(location)
	if err != nil {
		return err
	}

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: awssdk.String(loc.Bucket),
		Key:    awssdk.String(loc.Key),
		Body:   r,
	})
	if err != nil {
		return fmt.Errorf("failed to put %s: %w", loc, err)
	}
	return nil
}
