package storage

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
)

// S3Config holds the settings for an S3 or S3-compatible provider.
type S3Config struct {
	Bucket        string
	Region        string
	Endpoint      string
	AccessKey     string
	SecretKey     string
	PublicBaseURL string
}

// S3Client implements Provider for Amazon S3 and compatible services
type S3Client struct {
	client   *s3.S3
	uploader *s3manager.Uploader
	cfg      S3Config
}

// NewS3Client creates a new S3 client
func NewS3Client(cfg S3Config) (*S3Client, error) {
	awsConfig := &aws.Config{
		Region: aws.String(cfg.Region),
	}

	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		awsConfig.Credentials = credentials.NewStaticCredentials(
			cfg.AccessKey,
			cfg.SecretKey,
			"",
		)
	}

	// Custom endpoint for S3-compatible services
	if cfg.Endpoint != "" {
		awsConfig.Endpoint = aws.String(cfg.Endpoint)
		awsConfig.S3ForcePathStyle = aws.Bool(true)
	}

	sess, err := session.NewSession(awsConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %v", err)
	}

	return &S3Client{
		client:   s3.New(sess),
		uploader: s3manager.NewUploader(sess),
		cfg:      cfg,
	}, nil
}

// Upload uploads data to S3 and returns the retrieval URL
func (s *S3Client) Upload(key string, data []byte, contentType string) (string, error) {
	input := &s3.PutObjectInput{
		Bucket: aws.String(s.cfg.Bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(data),
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	if _, err := s.client.PutObject(input); err != nil {
		return "", NewStorageError("s3", "UPLOAD_FAILED", err.Error(), key)
	}

	return s.GetURL(key)
}

// UploadStream uploads data from a stream to S3 and returns the retrieval URL
func (s *S3Client) UploadStream(key string, reader io.Reader, size int64, contentType string) (string, error) {
	input := &s3manager.UploadInput{
		Bucket: aws.String(s.cfg.Bucket),
		Key:    aws.String(key),
		Body:   reader,
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	if _, err := s.uploader.Upload(input); err != nil {
		return "", NewStorageError("s3", "UPLOAD_STREAM_FAILED", err.Error(), key)
	}

	return s.GetURL(key)
}

// Delete deletes an object from S3
func (s *S3Client) Delete(key string) error {
	_, err := s.client.DeleteObject(&s3.DeleteObjectInput{
		Bucket: aws.String(s.cfg.Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return NewStorageError("s3", "DELETE_FAILED", err.Error(), key)
	}

	return nil
}

// Exists checks whether an object exists in S3
func (s *S3Client) Exists(key string) (bool, error) {
	_, err := s.client.HeadObject(&s3.HeadObjectInput{
		Bucket: aws.String(s.cfg.Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if aerr, ok := err.(awserr.Error); ok {
			if aerr.Code() == "NotFound" || aerr.Code() == s3.ErrCodeNoSuchKey {
				return false, nil
			}
		}
		return false, NewStorageError("s3", "HEAD_FAILED", err.Error(), key)
	}

	return true, nil
}

// GetURL returns the public retrieval URL for a key
func (s *S3Client) GetURL(key string) (string, error) {
	if s.cfg.PublicBaseURL != "" {
		return strings.TrimRight(s.cfg.PublicBaseURL, "/") + "/" + key, nil
	}
	if s.cfg.Endpoint != "" {
		return fmt.Sprintf("%s/%s/%s", strings.TrimRight(s.cfg.Endpoint, "/"), s.cfg.Bucket, key), nil
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.cfg.Bucket, s.cfg.Region, key), nil
}

// Name returns the provider name
func (s *S3Client) Name() string {
	return "s3"
}

// HealthCheck verifies the bucket is reachable
func (s *S3Client) HealthCheck() error {
	_, err := s.client.HeadBucket(&s3.HeadBucketInput{
		Bucket: aws.String(s.cfg.Bucket),
	})
	if err != nil {
		return NewStorageError("s3", "HEALTH_CHECK_FAILED", err.Error(), "")
	}
	return nil
}
