package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newContext() (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("request_id", "req-1")
	return c, w
}

func TestSendSuccess(t *testing.T) {
	c, w := newContext()

	SendSuccess(c, 0, map[string]string{"id": "p1"}, "ok", map[string]int{"count": 1})

	assert.Equal(t, http.StatusOK, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "req-1", body["request_id"])
	assert.Equal(t, "p1", body["data"].(map[string]any)["id"])
	assert.Equal(t, float64(1), body["meta"].(map[string]any)["count"])
}

func TestSendError(t *testing.T) {
	c, w := newContext()

	SendError(c, http.StatusNotFound, "project not found", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.True(t, c.IsAborted())
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "project not found", body["message"])
	assert.NotContains(t, body, "data")
}

func TestSendError_DefaultStatus(t *testing.T) {
	c, w := newContext()

	SendError(c, 0, "bad", map[string]string{"title": "is required"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
