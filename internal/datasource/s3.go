package datasource

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/vinrisk/vinrisk/pkg/inventory"
)

// S3Options holds configuration for an S3 CSV source.
type S3Options struct {
	Bucket       string
	Key          string
	Region       string
	Endpoint     string
	AccessKey    string
	SecretKey    string
	UsePathStyle bool
}

// S3CSV reads a CSV object from AWS S3 (or S3-compatible stores like MinIO).
type S3CSV struct {
	client *s3.Client
	bucket string
	key    string
}

// NewS3CSV creates an S3-backed Source.
func NewS3CSV(ctx context.Context, opts S3Options) (*S3CSV, error) {
	var loadOpts []func(*awsconfig.LoadOptions) error
	if opts.Region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(opts.Region))
	}
	if opts.AccessKey != "" && opts.SecretKey != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKey, opts.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	var s3Opts []func(*s3.Options)
	if opts.Endpoint != "" {
		s3Opts = append(s3Opts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(opts.Endpoint)
			o.UsePathStyle = true
		})
	} else if opts.UsePathStyle {
		s3Opts = append(s3Opts, func(o *s3.Options) { o.UsePathStyle = true })
	}

	client := s3.NewFromConfig(awsCfg, s3Opts...)
	return &S3CSV{client: client, bucket: opts.Bucket, key: opts.Key}, nil
}

// Describe returns the object URL.
func (s *S3CSV) Describe() string { return "s3://" + s.bucket + "/" + s.key }

// Rows fetches and parses the object.
func (s *S3CSV) Rows(ctx context.Context) ([]inventory.Row, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key),
	})
	if err != nil {
		return nil, unavailable(s.Describe(), fmt.Errorf("s3 get %s: %w", s.key, err))
	}
	defer out.Body.Close()

	rows, err := ParseCSV(out.Body)
	if err != nil {
		return nil, unavailable(s.Describe(), err)
	}
	return rows, nil
}

// Close is a no-op; the S3 client holds no connections that need releasing.
func (s *S3CSV) Close() error { return nil }
