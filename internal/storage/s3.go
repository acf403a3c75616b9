// Package storage manages recording objects in S3. Uploads land in a
// private uploads/ prefix via presigned URLs and are promoted to the public
// shared/ prefix once the client confirms the upload.
package storage

import (
	"context"
	"fmt"
	"path"
	"sort"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"voicelinks/internal/models"
)

const (
	uploadPrefix = "uploads/"
	sharedPrefix = "shared/"

	// Presigned upload URLs stay valid long enough for a slow connection
	// to push a few minutes of audio.
	presignExpiry = 15 * time.Minute
)

// S3Storage wraps the S3 client for recording uploads and listings.
type S3Storage struct {
	client  *s3.Client
	presign *s3.PresignClient
	bucket  string
	region  string
}

// New creates recording storage using the default AWS credential chain.
func New(ctx context.Context, bucket, region string) (*S3Storage, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(cfg)
	return &S3Storage{
		client:  client,
		presign: s3.NewPresignClient(client),
		bucket:  bucket,
		region:  region,
	}, nil
}

// Bucket returns the configured bucket name.
func (s *S3Storage) Bucket() string { return s.bucket }

// Region returns the configured region.
func (s *S3Storage) Region() string { return s.region }

// PresignUpload returns a presigned PUT URL for an upload and the object key
// it targets. The filename must already be sanitized.
func (s *S3Storage) PresignUpload(ctx context.Context, filename, contentType string) (string, string, error) {
	if contentType == "" {
		contentType = "audio/webm"
	}
	key := uploadPrefix + filename

	req, err := s.presign.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, s3.WithPresignExpires(presignExpiry))
	if err != nil {
		return "", "", fmt.Errorf("failed to presign upload: %w", err)
	}

	return req.URL, key, nil
}

// MoveToShared copies an uploaded object into the public shared/ prefix,
// deletes the original, and returns the shareable URL. The bucket policy
// makes shared/ publicly readable.
func (s *S3Storage) MoveToShared(ctx context.Context, filename string) (string, error) {
	sourceKey := uploadPrefix + filename
	destKey := sharedPrefix + filename

	_, err := s.client.CopyObject(ctx, &s3.CopyObjectInput{
		Bucket:     aws.String(s.bucket),
		CopySource: aws.String(s.bucket + "/" + sourceKey),
		Key:        aws.String(destKey),
	})
	if err != nil {
		return "", fmt.Errorf("failed to copy to shared: %w", err)
	}

	_, err = s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(sourceKey),
	})
	if err != nil {
		return "", fmt.Errorf("failed to delete upload: %w", err)
	}

	return s.ObjectURL(destKey), nil
}

// ListRecordings returns the shared recordings, most recent first.
func (s *S3Storage) ListRecordings(ctx context.Context) ([]models.Recording, error) {
	out, err := s.client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(sharedPrefix),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list recordings: %w", err)
	}

	recordings := make([]models.Recording, 0, len(out.Contents))
	for _, obj := range out.Contents {
		key := aws.ToString(obj.Key)
		if key == sharedPrefix {
			continue
		}
		recordings = append(recordings, models.Recording{
			Filename:     path.Base(key),
			Key:          key,
			Size:         aws.ToInt64(obj.Size),
			LastModified: aws.ToTime(obj.LastModified),
			URL:          s.ObjectURL(key),
		})
	}

	sort.Slice(recordings, func(i, j int) bool {
		return recordings[i].LastModified.After(recordings[j].LastModified)
	})
	return recordings, nil
}

// Delete removes a recording from the shared prefix.
func (s *S3Storage) Delete(ctx context.Context, filename string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(sharedPrefix + filename),
	})
	if err != nil {
		return fmt.Errorf("failed to delete recording: %w", err)
	}
	return nil
}

// ObjectURL builds the public URL for an object key.
func (s *S3Storage) ObjectURL(key string) string {
	return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.bucket, key)
}
