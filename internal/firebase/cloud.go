package firebase

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/url"
	"os"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/storage"
	"github.com/google/uuid"
)

// ReportStore uploads shared report snapshots to Cloud Storage so they can
// be fetched without authentication via their download token.
type ReportStore struct {
	*storage.Client
}

func defaultBucketName() string {
	return os.Getenv("STORAGE_BUCKET")
}

// NewReportStore creates a Cloud Storage client from a Firebase app.
func NewReportStore(ctx context.Context, app *firebase.App) (*ReportStore, error) {
	client, err := app.Storage(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage client: %w", err)
	}

	return &ReportStore{
		Client: client,
	}, nil
}

// UploadShareSnapshot stores a JSON report snapshot under shares/{token}.json
// and returns a tokenized download URL for it.
func (s *ReportStore) UploadShareSnapshot(ctx context.Context, shareToken string, data []byte) (string, error) {
	if shareToken == "" {
		return "", fmt.Errorf("share token cannot be empty")
	}
	if len(data) == 0 {
		return "", fmt.Errorf("snapshot data cannot be empty")
	}

	bucketName := defaultBucketName()
	if bucketName == "" {
		return "", fmt.Errorf("STORAGE_BUCKET is not configured")
	}

	bucket, err := s.Bucket(bucketName)
	if err != nil {
		return "", fmt.Errorf("failed to get storage bucket '%s': %w", bucketName, err)
	}

	path := fmt.Sprintf("shares/%s.json", shareToken)
	object := bucket.Object(path)
	writer := object.NewWriter(ctx)

	writer.ObjectAttrs.ContentType = "application/json"
	downloadToken := uuid.New().String()
	writer.ObjectAttrs.Metadata = map[string]string{
		"firebaseStorageDownloadTokens": downloadToken,
	}

	if _, err := io.Copy(writer, bytes.NewReader(data)); err != nil {
		writer.Close()
		return "", fmt.Errorf("failed to upload snapshot: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize snapshot upload: %w", err)
	}

	link := fmt.Sprintf("https://firebasestorage.googleapis.com/v0/b/%s/o/%s?alt=media&token=%s",
		bucketName, url.PathEscape(path), downloadToken)
	return link, nil
}
