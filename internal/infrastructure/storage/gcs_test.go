package storage

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeGCS accepts JSON API uploads and records the ACL each one asked for.
type fakeGCS struct {
	mu   sync.Mutex
	acls []string
	body string
}

func (f *fakeGCS) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost || !strings.Contains(r.URL.Path, "/b/market/o") {
		http.NotFound(w, r)
		return
	}
	b, _ := io.ReadAll(r.Body)
	f.mu.Lock()
	f.acls = append(f.acls, r.URL.Query().Get("predefinedAcl"))
	f.body = string(b)
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{
		"kind": "storage#object", "bucket": "market", "name": "attachments/u1/1-a.txt",
	})
}

func newFakeGCS(t *testing.T) *fakeGCS {
	t.Helper()
	f := &fakeGCS{}
	srv := httptest.NewServer(f)
	t.Cleanup(srv.Close)
	t.Setenv("STORAGE_EMULATOR_HOST", srv.URL)
	return f
}

func TestGCS_UploadPublicRead(t *testing.T) {
	f := newFakeGCS(t)
	ctx := context.Background()
	client, err := NewGCSClient(ctx, "")
	require.NoError(t, err)
	g := NewGCS(client, "market", true)
	t.Cleanup(func() { _ = g.Close() })

	url, err := g.Upload(ctx, "attachments/u1/1-a.txt", "text/plain", strings.NewReader("hello gcs"))
	require.NoError(t, err)

	assert.Equal(t, "https://storage.googleapis.com/market/attachments/u1/1-a.txt", url)
	require.Len(t, f.acls, 1)
	assert.Equal(t, "publicRead", f.acls[0])
	assert.Contains(t, f.body, "hello gcs")
}

func TestGCS_UploadUniformAccess(t *testing.T) {
	f := newFakeGCS(t)
	ctx := context.Background()
	client, err := NewGCSClient(ctx, "")
	require.NoError(t, err)
	g := NewGCS(client, "market", false)
	t.Cleanup(func() { _ = g.Close() })

	_, err = g.Upload(ctx, "attachments/u1/1-a.txt", "text/plain", strings.NewReader("x"))
	require.NoError(t, err)

	require.Len(t, f.acls, 1)
	assert.Empty(t, f.acls[0])
}
