// Package gcsuploader archives raw statements in Cloud Storage and reads
// them back by gs:// URI.
package gcsuploader

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

const (
	uploadTimeout = 2 * time.Minute
	archivePrefix = "statements"
)

// Client wraps a storage client. It satisfies pipeline.StatementFetcher.
type Client struct {
	storage *storage.Client
	// MaxBytes bounds FetchStatement reads. Zero means unbounded.
	MaxBytes int64
}

// NewClient creates a Client. Without options Application Default
// Credentials are used.
func NewClient(ctx context.Context, opts ...option.ClientOption) (*Client, error) {
	sc, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("NewClient: creating storage client: %w", err)
	}
	return &Client{storage: sc}, nil
}

// Close releases the underlying storage client.
func (c *Client) Close() error {
	return c.storage.Close()
}

// UploadFile uploads a local file under the given object name.
func (c *Client) UploadFile(ctx context.Context, bucketName, objectName, filePath string) (string, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("UploadFile: open file %q: %w", filePath, err)
	}
	defer f.Close()

	return c.upload(ctx, bucketName, objectName, contentTypeFor(filePath), f)
}

// UploadBytes writes data under the given object name and returns its gs:// URI.
func (c *Client) UploadBytes(ctx context.Context, bucketName, objectName, contentType string, data []byte) (string, error) {
	return c.upload(ctx, bucketName, objectName, contentType, bytes.NewReader(data))
}

// ArchiveStatement stores a statement document keyed by its checksum.
// Identical documents land on the same object.
func (c *Client) ArchiveStatement(ctx context.Context, bucketName, checksum string, data []byte) (string, error) {
	return c.UploadBytes(ctx, bucketName, ArchiveObjectName(checksum), "application/json", data)
}

func (c *Client) upload(ctx context.Context, bucketName, objectName, contentType string, r io.Reader) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, uploadTimeout)
	defer cancel()

	w := c.storage.Bucket(bucketName).Object(objectName).NewWriter(ctx)
	w.ContentType = contentType

	if _, err := io.Copy(w, r); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("upload: copy to GCS writer: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("upload: finalize %s/%s: %w", bucketName, objectName, err)
	}
	return BuildGCSURI(bucketName, objectName), nil
}

// FetchStatement downloads the object at a gs:// URI.
func (c *Client) FetchStatement(ctx context.Context, gcsURI string) ([]byte, error) {
	bucketName, objectPath, err := ParseGCSURI(gcsURI)
	if err != nil {
		return nil, fmt.Errorf("FetchStatement: %w", err)
	}

	rc, err := c.storage.Bucket(bucketName).Object(objectPath).NewReader(ctx)
	if err != nil {
		return nil, fmt.Errorf("FetchStatement: reading object %s/%s: %w", bucketName, objectPath, err)
	}
	defer rc.Close()

	var src io.Reader = rc
	if c.MaxBytes > 0 {
		src = io.LimitReader(rc, c.MaxBytes+1)
	}
	data, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("FetchStatement: reading bytes: %w", err)
	}
	if c.MaxBytes > 0 && int64(len(data)) > c.MaxBytes {
		return nil, fmt.Errorf("FetchStatement: object %s exceeds %d bytes", gcsURI, c.MaxBytes)
	}
	return data, nil
}

// ParseGCSURI splits gs://bucket/path/to/object into bucket and object path.
func ParseGCSURI(gcsURI string) (bucket, object string, err error) {
	if !strings.HasPrefix(gcsURI, "gs://") {
		return "", "", fmt.Errorf("invalid GCS URI: %s", gcsURI)
	}
	parts := strings.SplitN(strings.TrimPrefix(gcsURI, "gs://"), "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("invalid GCS URI (no object path): %s", gcsURI)
	}
	return parts[0], parts[1], nil
}

// BuildGCSURI is the inverse of ParseGCSURI.
func BuildGCSURI(bucket, object string) string {
	return "gs://" + bucket + "/" + object
}

// ExtractFilename returns the last path element of a GCS URI.
// e.g., "gs://bucket/folder/file.json" → "file.json"
func ExtractFilename(uri string) string {
	trimmed := strings.TrimPrefix(uri, "gs://")
	parts := strings.SplitN(trimmed, "/", 2)
	if len(parts) < 2 {
		return trimmed
	}
	return path.Base(parts[1])
}

// ArchiveObjectName is the object path used for an archived statement.
func ArchiveObjectName(checksum string) string {
	return path.Join(archivePrefix, checksum+".json")
}

func contentTypeFor(filePath string) string {
	switch strings.ToLower(path.Ext(filePath)) {
	case ".json":
		return "application/json"
	case ".pdf":
		return "application/pdf"
	default:
		return "application/octet-stream"
	}
}
