package imagestore

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/ghuser/stocktrack/pkg/logger"
)

// S3Store uploads images to an S3 bucket and returns CloudFront URLs.
// Used in production where API instances share no filesystem.
type S3Store struct {
	client        *s3.Client
	bucket        string
	cloudFrontURL string
	log           logger.Logger
}

// NewS3Store builds an S3-backed store using the default AWS credential chain.
func NewS3Store(ctx context.Context, bucket, region, cloudFrontURL string, log logger.Logger) (*S3Store, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}
	return &S3Store{
		client:        s3.NewFromConfig(cfg),
		bucket:        bucket,
		cloudFrontURL: strings.TrimSuffix(cloudFrontURL, "/"),
		log:           log,
	}, nil
}

// Save uploads the image under locations/ and returns the CloudFront URL.
func (s *S3Store) Save(ctx context.Context, data []byte, contentType string) (string, error) {
	key := "locations/" + objectName(extForContentType(contentType))
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      &s.bucket,
		Key:         &key,
		Body:        bytes.NewReader(data),
		ContentType: &contentType,
	})
	if err != nil {
		return "", fmt.Errorf("upload image to S3: %w", err)
	}
	return s.cloudFrontURL + "/" + key, nil
}

// Delete removes the object behind imageURL from the bucket. URLs outside the
// configured CloudFront distribution are ignored.
func (s *S3Store) Delete(ctx context.Context, imageURL string) error {
	key, ok := strings.CutPrefix(imageURL, s.cloudFrontURL+"/")
	if !ok || key == "" {
		return nil
	}
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: &s.bucket,
		Key:    &key,
	})
	if err != nil {
		return fmt.Errorf("delete image from S3: %w", err)
	}
	return nil
}
