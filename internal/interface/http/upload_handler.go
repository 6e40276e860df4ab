package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-project-marketplace/internal/application"
	"github.com/oksasatya/go-project-marketplace/pkg/response"
)

// multipartOverhead is the room left for boundaries and part headers on top
// of the file size limit.
const multipartOverhead = 1 << 20

type UploadHandler struct {
	Svc    *application.UploadService
	Logger *logrus.Logger
}

func NewUploadHandler(svc *application.UploadService, logger *logrus.Logger) *UploadHandler {
	return &UploadHandler{Svc: svc, Logger: logger}
}

// Upload POST /api/uploads, multipart field "file".
func (h *UploadHandler) Upload(c *gin.Context) {
	var limit int64
	if h.Svc.MaxBytes > 0 {
		limit = h.Svc.MaxBytes + multipartOverhead
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
	}
	fh, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) || (limit > 0 && c.Request.ContentLength > limit) {
			writeError(c, h.Logger, application.ErrFileTooLarge)
			return
		}
		response.SendError(c, http.StatusBadRequest, "no file provided", nil)
		return
	}
	if h.Svc.MaxBytes > 0 && fh.Size > h.Svc.MaxBytes {
		writeError(c, h.Logger, application.ErrFileTooLarge)
		return
	}
	f, err := fh.Open()
	if err != nil {
		response.SendError(c, http.StatusBadRequest, "unreadable file", nil)
		return
	}
	defer f.Close()

	att, err := h.Svc.Upload(c.Request.Context(), userID(c), application.UploadInput{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Body:        f,
	})
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.SendSuccess(c, http.StatusCreated, att, "file uploaded", nil)
}
