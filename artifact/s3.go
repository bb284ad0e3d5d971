package artifact

import (
	"bytes"
	"context"
	"fmt"

	"github.com/SaiNageswarS/report-boot/schema"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// objectPutter is the part of *s3.Client used by S3Sink.
type objectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type S3Sink struct {
	client objectPutter
	bucket string
	prefix string
}

// NewS3Sink uses the default AWS credential chain.
func NewS3Sink(ctx context.Context, bucket, prefix string) (*S3Sink, error) {
	if bucket == "" {
		return nil, fmt.Errorf("s3_bucket required when enabling the s3 sink")
	}
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return &S3Sink{client: s3.NewFromConfig(cfg), bucket: bucket, prefix: prefix}, nil
}

func (s *S3Sink) Name() string {
	return "s3"
}

func (s *S3Sink) Save(ctx context.Context, artifact *schema.BinaryArtifact) (string, error) {
	key := keyFor(s.prefix, artifact.Name)
	input := &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(artifact.Data),
		ACL:    types.ObjectCannedACLPrivate,
		Metadata: map[string]string{
			"format": string(artifact.Format),
		},
	}
	if artifact.ContentType != "" {
		input.ContentType = aws.String(artifact.ContentType)
	}

	if _, err := s.client.PutObject(ctx, input); err != nil {
		return "", err
	}
	return fmt.Sprintf("s3://%s/%s", s.bucket, key), nil
}
