package publishing

import (
	"bytes"
	"context"
	"fmt"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/kcz17/loganalyzer/config"
	"github.com/rs/zerolog/log"
	"path"
	"strings"
	"time"
)

const (
	reportContentType = "text/html; charset=utf-8"
	uploadTimeout     = 30 * time.Second
)

// Publisher copies a rendered report to a remote location.
type Publisher interface {
	Publish(ctx context.Context, name string, content []byte) error
}

// New returns an S3 publisher if one is configured and a no-op otherwise.
func New(ctx context.Context, publish config.Publish) (Publisher, error) {
	if publish.S3 == nil {
		return NewNoopPublisher(), nil
	}
	return NewS3Publisher(ctx, *publish.S3)
}

// noopPublisher keeps reports local.
type noopPublisher struct{}

func NewNoopPublisher() *noopPublisher {
	return &noopPublisher{}
}

func (*noopPublisher) Publish(context.Context, string, []byte) error {
	return nil
}

// objectPutter is the part of *s3.Client used for publishing.
type objectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type S3Publisher struct {
	client objectPutter
	bucket string
	prefix string
}

func NewS3Publisher(ctx context.Context, cfg config.S3) (*S3Publisher, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if cfg.Region != "" {
		opts = append(opts, awsconfig.WithRegion(cfg.Region))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	if cfg.Endpoint != "" {
		awsCfg.BaseEndpoint = aws.String(cfg.Endpoint)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.Endpoint != ""
	})
	return newS3Publisher(client, cfg.Bucket, cfg.Prefix), nil
}

func newS3Publisher(client objectPutter, bucket, prefix string) *S3Publisher {
	return &S3Publisher{
		client: client,
		bucket: bucket,
		prefix: strings.Trim(prefix, "/"),
	}
}

// Key returns the object key a report named name is uploaded to.
func (p *S3Publisher) Key(name string) string {
	if p.prefix == "" {
		return name
	}
	return path.Join(p.prefix, name)
}

func (p *S3Publisher) Publish(ctx context.Context, name string, content []byte) error {
	ctx, cancel := context.WithTimeout(ctx, uploadTimeout)
	defer cancel()

	key := p.Key(name)
	_, err := p.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(p.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(content),
		ContentLength: aws.Int64(int64(len(content))),
		ContentType:   aws.String(reportContentType),
	})
	if err != nil {
		return fmt.Errorf("unable to upload report to s3://%s/%s: %w", p.bucket, key, err)
	}

	log.Info().Str("bucket", p.bucket).Str("key", key).Msg("report published")
	return nil
}
