package storage

import (
	"context"
	"fmt"
	"io"

	gcs "cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

// GCS stores objects in a Google Cloud Storage bucket.
type GCS struct {
	client     *gcs.Client
	bucket     string
	publicRead bool
}

// NewGCSClient creates a Google Cloud Storage client. If credsPath is empty, ADC is used.
func NewGCSClient(ctx context.Context, credsPath string) (*gcs.Client, error) {
	if credsPath == "" {
		return gcs.NewClient(ctx)
	}
	return gcs.NewClient(ctx, option.WithCredentialsFile(credsPath))
}

// NewGCS returns a GCS store. With publicRead every object is written with the
// publicRead ACL so its storage.googleapis.com URL resolves for anyone; turn it
// off for buckets with uniform bucket-level access, which reject object ACLs.
func NewGCS(client *gcs.Client, bucket string, publicRead bool) *GCS {
	return &GCS{client: client, bucket: bucket, publicRead: publicRead}
}

// Upload streams r into bucket/objectPath and returns the public URL.
func (g *GCS) Upload(ctx context.Context, objectPath, contentType string, r io.Reader) (string, error) {
	wc := g.client.Bucket(g.bucket).Object(objectPath).NewWriter(ctx)
	wc.ContentType = contentType
	wc.ChunkSize = 0 // attachments are small, single request
	if g.publicRead {
		wc.PredefinedACL = "publicRead"
	}
	if _, err := io.Copy(wc, r); err != nil {
		_ = wc.Close()
		return "", err
	}
	if err := wc.Close(); err != nil {
		return "", err
	}
	return GCSPublicURL(g.bucket, objectPath), nil
}

func (g *GCS) Close() error {
	return g.client.Close()
}

// GCSPublicURL builds the public URL of an object.
func GCSPublicURL(bucket, objectPath string) string {
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", bucket, objectPath)
}
