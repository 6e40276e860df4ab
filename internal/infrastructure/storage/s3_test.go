package storage

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePutter struct {
	in   *s3.PutObjectInput
	body string
	err  error
}

func (f *fakePutter) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.in = in
	b, _ := io.ReadAll(in.Body)
	f.body = string(b)
	return &s3.PutObjectOutput{}, f.err
}

func TestS3_Upload(t *testing.T) {
	api := &fakePutter{}
	s := newS3(api, S3Config{Endpoint: "http://minio:9000/", Bucket: "market"})

	url, err := s.Upload(context.Background(), "attachments/u1/1-demo.mp4", "video/mp4", strings.NewReader("bytes"))
	require.NoError(t, err)

	assert.Equal(t, "http://minio:9000/market/attachments/u1/1-demo.mp4", url)
	assert.Equal(t, "market", aws.ToString(api.in.Bucket))
	assert.Equal(t, "attachments/u1/1-demo.mp4", aws.ToString(api.in.Key))
	assert.Equal(t, "video/mp4", aws.ToString(api.in.ContentType))
	assert.Equal(t, "bytes", api.body)
}

func TestS3_UploadError(t *testing.T) {
	s := newS3(&fakePutter{err: errors.New("access denied")}, S3Config{Bucket: "b", Region: "eu-west-1"})

	_, err := s.Upload(context.Background(), "k", "text/plain", strings.NewReader(""))
	assert.ErrorContains(t, err, "access denied")
}

func TestS3BaseURL(t *testing.T) {
	tests := []struct {
		name string
		cfg  S3Config
		want string
	}{
		{"custom endpoint", S3Config{Endpoint: "http://localhost:9000", Bucket: "b"}, "http://localhost:9000/b"},
		{"aws virtual hosted", S3Config{Region: "eu-west-1", Bucket: "b"}, "https://b.s3.eu-west-1.amazonaws.com"},
		{"aws path style", S3Config{Region: "us-east-1", Bucket: "b", UsePathStyle: true}, "https://s3.us-east-1.amazonaws.com/b"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, s3BaseURL(tt.cfg))
		})
	}
}
