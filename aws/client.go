// Package aws stores avatars in an S3 compatible bucket
package aws

import (
	appconfig "bitwise74/contacts-api/config"
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
)

type S3Client struct {
	C        *s3.Client
	Uploader *manager.Uploader
	Bucket   *string
	// Objects are served from <PublicURL>/<key>
	PublicURL string
}

// NewS3 connects to the configured bucket and makes sure it exists
func NewS3(ctx context.Context, c appconfig.AWS) (*S3Client, error) {
	cfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(c.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			c.AccessKey,
			c.SecretAccessKey,
			"",
		)),
	)
	if err != nil {
		return nil, err
	}

	bucket := aws.String(c.Bucket)

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		// R2, MinIO and friends
		if c.Endpoint != "" {
			o.BaseEndpoint = aws.String(c.Endpoint)
			o.UsePathStyle = true
		}
	})

	_, err = client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: bucket,
	})
	if err != nil {
		var apiErr smithy.APIError

		if errors.As(err, &apiErr) {
			if apiErr.ErrorCode() == "NotFound" {
				return nil, fmt.Errorf("bucket '%s' does not exist", c.Bucket)
			}
		}

		return nil, fmt.Errorf("failed to check if bucket exists, %w", err)
	}

	return &S3Client{
		C:         client,
		Uploader:  manager.NewUploader(client),
		Bucket:    bucket,
		PublicURL: publicURL(c),
	}, nil
}

func publicURL(c appconfig.AWS) string {
	switch {
	case c.PublicURL != "":
		return strings.TrimSuffix(c.PublicURL, "/")
	case c.Endpoint != "":
		return strings.TrimSuffix(c.Endpoint, "/") + "/" + c.Bucket
	default:
		return fmt.Sprintf("https://%s.s3.%s.amazonaws.com", c.Bucket, c.Region)
	}
}

// ObjectURL is the public address of key
func (s *S3Client) ObjectURL(key string) string {
	return s.PublicURL + "/" + strings.TrimPrefix(key, "/")
}

// PutAvatar uploads an avatar, replacing whatever was stored under key
func (s *S3Client) PutAvatar(ctx context.Context, key, contentType string, body []byte) (string, error) {
	_, err := s.Uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:        s.Bucket,
		Key:           aws.String(key),
		Body:          bytes.NewReader(body),
		ContentLength: aws.Int64(int64(len(body))),
		ContentType:   aws.String(contentType),
		// Keys are reused, clients refetch through the ?v= query
		CacheControl: aws.String("public, max-age=31536000"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload avatar to s3, %w", err)
	}

	return s.ObjectURL(key), nil
}
