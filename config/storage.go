package config

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Config holds the S3 client and the two meal image buckets
type S3Config struct {
	Client          *s3.Client
	ImageBucket     string
	ThumbnailBucket string
}

// NewS3Config initializes the S3 client using environment or shared AWS config
func NewS3Config(ctx context.Context, cfg *Config) (*S3Config, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.S3Region),
	)
	if err != nil {
		return nil, err
	}

	return &S3Config{
		Client:          s3.NewFromConfig(awsCfg),
		ImageBucket:     cfg.ImageBucket,
		ThumbnailBucket: cfg.ThumbnailBucket,
	}, nil
}

// SetupBucketPolicies applies public-read policies to both buckets so the
// returned object URLs resolve without signing.
func (s *S3Config) SetupBucketPolicies(ctx context.Context) error {
	for _, bucket := range []string{s.ImageBucket, s.ThumbnailBucket} {
		policy := `{
		"Version": "2012-10-17",
		"Statement": [
			{
				"Sid": "PublicReadGetObject",
				"Effect": "Allow",
				"Principal": "*",
				"Action": "s3:GetObject",
				"Resource": "arn:aws:s3:::` + bucket + `/*"
			}
		]
	}`
		_, err := s.Client.PutBucketPolicy(ctx, &s3.PutBucketPolicyInput{
			Bucket: aws.String(bucket),
			Policy: aws.String(policy),
		})
		if err != nil {
			return err
		}
	}
	return nil
}
