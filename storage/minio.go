package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"PortfolioFM/apperr"
	"PortfolioFM/config"
	"PortfolioFM/logger"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// metadataFilenameKey carries the original filename on the stored object.
// MinIO canonicalizes user metadata keys, so reads go through ObjectInfo.UserMetadata["Filename"].
const metadataFilenameKey = "Filename"

// BlobInfo describes a stored blob.
type BlobInfo struct {
	Filename    string
	ContentType string
	Size        int64
}

// BlobStore stores opaque binary payloads (audio, PDF) keyed by generated
// identifiers. Downloads are streamed; uploads are buffered by the caller.
type BlobStore interface {
	Upload(ctx context.Context, filename string, data []byte, contentType string) (string, error)
	OpenDownloadStream(ctx context.Context, blobID string) (io.ReadCloser, BlobInfo, error)
	Delete(ctx context.Context, blobID string) error
	Ping(ctx context.Context) error
}

// MinioBlobStore implements BlobStore on a MinIO bucket.
type MinioBlobStore struct {
	client *minio.Client
	bucket string
}

// NewMinioBlobStore connects to MinIO and ensures the bucket exists.
func NewMinioBlobStore(cfg *config.Config) (*MinioBlobStore, error) {
	client, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessKey, cfg.MinioSecretKey, ""),
		Secure: cfg.MinioUseSSL,
		Region: cfg.MinioRegion,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	exists, err := client.BucketExists(ctx, cfg.MinioBucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.MinioBucket, minio.MakeBucketOptions{Region: cfg.MinioRegion}); err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
		logger.Info("[NewMinioBlobStore] created bucket", logger.String("bucket", cfg.MinioBucket))
	}

	return &MinioBlobStore{client: client, bucket: cfg.MinioBucket}, nil
}

// Upload stores data under a generated identifier and returns it.
func (s *MinioBlobStore) Upload(ctx context.Context, filename string, data []byte, contentType string) (string, error) {
	blobID := uuid.NewString()
	_, err := s.client.PutObject(ctx, s.bucket, blobID, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType:  contentType,
		UserMetadata: map[string]string{metadataFilenameKey: filename},
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload blob %s: %w", blobID, err)
	}
	logger.Info("[Upload] stored blob",
		logger.String("blob_id", blobID),
		logger.String("filename", filename),
		logger.Int("size", len(data)))
	return blobID, nil
}

// OpenDownloadStream opens a streamed read of the blob. The caller must
// close the returned reader.
func (s *MinioBlobStore) OpenDownloadStream(ctx context.Context, blobID string) (io.ReadCloser, BlobInfo, error) {
	// Stat first so a missing key fails before any bytes are streamed.
	stat, err := s.client.StatObject(ctx, s.bucket, blobID, minio.StatObjectOptions{})
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, BlobInfo{}, apperr.Newf(apperr.NotFound, "blob '%s' not found", blobID)
		}
		return nil, BlobInfo{}, fmt.Errorf("failed to stat blob %s: %w", blobID, err)
	}

	object, err := s.client.GetObject(ctx, s.bucket, blobID, minio.GetObjectOptions{})
	if err != nil {
		return nil, BlobInfo{}, fmt.Errorf("failed to open blob %s: %w", blobID, err)
	}

	info := BlobInfo{
		Filename:    stat.UserMetadata[metadataFilenameKey],
		ContentType: stat.ContentType,
		Size:        stat.Size,
	}
	return object, info, nil
}

// Delete removes the blob. Deleting a missing blob is not an error at the
// store level; MinIO removal is idempotent.
func (s *MinioBlobStore) Delete(ctx context.Context, blobID string) error {
	if err := s.client.RemoveObject(ctx, s.bucket, blobID, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to delete blob %s: %w", blobID, err)
	}
	logger.Info("[Delete] removed blob", logger.String("blob_id", blobID))
	return nil
}

// Ping probes store reachability for the health check.
func (s *MinioBlobStore) Ping(ctx context.Context) error {
	if _, err := s.client.BucketExists(ctx, s.bucket); err != nil {
		return apperr.Wrap(apperr.Unavailable, "blob store unreachable", err)
	}
	return nil
}
