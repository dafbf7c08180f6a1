package aws

import (
	"context"
	"fmt"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sts"
)

// Client holds the S3 client used for simulation results and the STS
// client used to check credentials
type Client struct {
	S3       *s3.Client
	STS      *sts.Client
	profile  string
	region   string
	endpoint string
}

// ClientOption allows customizing the AWS Client
type ClientOption func(*Client)

// WithProfile sets the AWS profile for the client
func WithProfile(profile string) ClientOption {
	return func(c *Client) {
		c.profile = profile
	}
}

// WithRegion sets the AWS region for the client
func WithRegion(region string) ClientOption {
	return func(c *Client) {
		c.region = region
	}
}

// WithEndpoint points S3 at a compatible store such as MinIO on a lab
// cluster. Requests use path-style addressing.
func WithEndpoint(endpoint string) ClientOption {
	return func(c *Client) {
		c.endpoint = endpoint
	}
}

// NewClient creates a new AWS Client with the given options
func NewClient(ctx context.Context, opts ...ClientOption) (*Client, error) {
	c := &Client{}

	for _, opt := range opts {
		opt(c)
	}

	var configOpts []func(*config.LoadOptions) error

	if c.profile != "" {
		configOpts = append(configOpts, config.WithSharedConfigProfile(c.profile))
	}

	if c.region != "" {
		configOpts = append(configOpts, config.WithRegion(c.region))
	}

	cfg, err := config.LoadDefaultConfig(ctx, configOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS SDK config: %w", err)
	}

	c.S3 = s3.NewFromConfig(cfg, c.s3Options)
	c.STS = sts.NewFromConfig(cfg)

	return c, nil
}

func (c *Client) s3Options(o *s3.Options) {
	if c.endpoint == "" {
		return
	}
	o.BaseEndpoint = awssdk.String(c.endpoint)
	o.UsePathStyle = true
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
