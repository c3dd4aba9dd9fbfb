package services

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

const archiveBucket = "trader-imports"

// ArchiveService keeps the raw bytes of every CSV upload so a failed or
// disputed import can be replayed later. Archival is best-effort; callers
// log failures and carry on with the import.
type ArchiveService interface {
	ArchiveUpload(ctx context.Context, branchID, filename string, data []byte) (string, error)
	EnsureBucketExists(ctx context.Context) error
}

type minioArchive struct {
	client *minio.Client
}

func NewMinioArchiveService(endpoint, accessKey, secretKey string, useSSL bool) (ArchiveService, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, err
	}
	return &minioArchive{client: client}, nil
}

func (m *minioArchive) ArchiveUpload(ctx context.Context, branchID, filename string, data []byte) (string, error) {
	objectName := fmt.Sprintf("imports/%s/%s-%s", branchID, time.Now().UTC().Format("20060102T150405"), filename)
	_, err := m.client.PutObject(ctx, archiveBucket, objectName, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: "text/csv",
	})
	if err != nil {
		return "", err
	}
	return objectName, nil
}

func (m *minioArchive) EnsureBucketExists(ctx context.Context) error {
	found, err := m.client.BucketExists(ctx, archiveBucket)
	if err != nil {
		return err
	}
	if !found {
		return m.client.MakeBucket(ctx, archiveBucket, minio.MakeBucketOptions{})
	}
	return nil
}
