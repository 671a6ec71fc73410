package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/johnquangdev/meeting-scribe/errors"
	"github.com/johnquangdev/meeting-scribe/pkg/config"
)

// Staged audio must stay fetchable long enough for the transcription
// provider to download it.
const stagingURLExpiry = time.Hour

// MinIOClient wraps MinIO operations
type MinIOClient struct {
	client    *minio.Client
	bucket    string
	publicURL string // Public URL when MinIO sits behind a reverse proxy
}

// NewMinIOClient creates a new MinIO client
func NewMinIOClient(cfg *config.StorageConfig) (*MinIOClient, error) {
	minioClient, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	client := &MinIOClient{
		client:    minioClient,
		bucket:    cfg.BucketName,
		publicURL: cfg.PublicURL,
	}

	ctx := context.Background()
	if err := client.ensureBucketWithPolicy(ctx); err != nil {
		return nil, fmt.Errorf("failed to initialize bucket: %w", err)
	}

	return client, nil
}

// ensureBucketWithPolicy ensures the bucket exists and allows public reads.
// The transcription provider downloads staged audio over plain GET, so the
// objects must be readable without credentials.
func (m *MinIOClient) ensureBucketWithPolicy(ctx context.Context) error {
	exists, err := m.client.BucketExists(ctx, m.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}

	if !exists {
		err = m.client.MakeBucket(ctx, m.bucket, minio.MakeBucketOptions{})
		if err != nil {
			return fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	policy := fmt.Sprintf(`{
		"Version": "2012-10-17",
		"Statement": [
			{
				"Effect": "Allow",
				"Principal": {"AWS": ["*"]},
				"Action": ["s3:GetObject"],
				"Resource": ["arn:aws:s3:::%s/*"]
			}
		]
	}`, m.bucket)

	err = m.client.SetBucketPolicy(ctx, m.bucket, policy)
	if err != nil {
		return fmt.Errorf("failed to set bucket policy: %w", err)
	}

	return nil
}

// Stage uploads audio under a unique staging key and returns the object
// name together with a presigned download URL.
func (m *MinIOClient) Stage(ctx context.Context, data []byte, ext string) (string, string, error) {
	objectName := fmt.Sprintf("staging/audio-%s.%s", uuid.New().String(), strings.TrimPrefix(ext, "."))

	err := m.uploadFile(ctx, objectName, bytes.NewReader(data), int64(len(data)), contentTypeFor(ext))
	if err != nil {
		return "", "", errors.ErrStorageFailed("stage audio", err)
	}

	url, err := m.getFileURL(ctx, objectName, stagingURLExpiry)
	if err != nil {
		return "", "", errors.ErrStorageFailed("presign audio", err)
	}

	return objectName, url, nil
}

// Remove deletes a staged object
func (m *MinIOClient) Remove(ctx context.Context, objectName string) error {
	err := m.client.RemoveObject(ctx, m.bucket, objectName, minio.RemoveObjectOptions{})
	if err != nil {
		return errors.ErrStorageFailed("remove object", err)
	}
	return nil
}

// uploadFile uploads a file to MinIO
func (m *MinIOClient) uploadFile(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) error {
	_, err := m.client.PutObject(ctx, m.bucket, objectName, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("failed to upload file: %w", err)
	}

	return nil
}

// getFileURL gets a presigned URL for accessing a file
func (m *MinIOClient) getFileURL(ctx context.Context, objectName string, expiry time.Duration) (string, error) {
	url, err := m.client.PresignedGetObject(ctx, m.bucket, objectName, expiry, nil)
	if err != nil {
		return "", fmt.Errorf("failed to generate presigned URL: %w", err)
	}

	// When MinIO is behind a reverse proxy, swap the internal endpoint for
	// the public one while keeping path and signature query intact.
	if m.publicURL != "" {
		urlStr := url.String()
		bucketPos := len(url.Scheme) + 3 + len(url.Host) // "https://" + host
		if bucketPos < len(urlStr) {
			pathAndQuery := urlStr[bucketPos:] // /bucket/object?query
			return m.publicURL + pathAndQuery, nil
		}
	}

	return url.String(), nil
}

// ListFiles lists all files in the bucket under a prefix
func (m *MinIOClient) ListFiles(ctx context.Context, prefix string) ([]string, error) {
	var files []string

	objectCh := m.client.ListObjects(ctx, m.bucket, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	})

	for object := range objectCh {
		if object.Err != nil {
			return nil, fmt.Errorf("error listing objects: %w", object.Err)
		}
		files = append(files, object.Key)
	}

	return files, nil
}

// GetBucketInfo returns information about the bucket and connection
func (m *MinIOClient) GetBucketInfo(ctx context.Context) (map[string]interface{}, error) {
	exists, err := m.client.BucketExists(ctx, m.bucket)
	if err != nil {
		return nil, errors.ErrStorageFailed("check bucket", err)
	}

	info := map[string]interface{}{
		"bucket":        m.bucket,
		"bucket_exists": exists,
		"endpoint":      m.client.EndpointURL().String(),
	}

	if exists {
		files, err := m.ListFiles(ctx, "")
		if err != nil {
			info["error"] = err.Error()
		} else {
			info["total_files"] = len(files)
		}
	}

	return info, nil
}

func contentTypeFor(ext string) string {
	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "mp3":
		return "audio/mpeg"
	case "wav":
		return "audio/wav"
	case "m4a":
		return "audio/mp4"
	case "flac":
		return "audio/flac"
	default:
		return "application/octet-stream"
	}
}
