package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-project-marketplace/internal/application"
	"github.com/oksasatya/go-project-marketplace/pkg/response"
	"github.com/oksasatya/go-project-marketplace/pkg/validation"
)

// writeError maps application errors onto the response status table.
// Anything unrecognised is logged and reported as a 500 without details.
func writeError(c *gin.Context, logger logrus.FieldLogger, err error) {
	switch {
	case errors.Is(err, application.ErrProjectNotFound),
		errors.Is(err, application.ErrUserNotFound):
		response.SendError(c, http.StatusNotFound, rootMessage(err), nil)
	case errors.Is(err, application.ErrForbidden):
		response.SendError(c, http.StatusForbidden, "forbidden", nil)
	case errors.Is(err, application.ErrValidation):
		response.SendError(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
	case errors.Is(err, application.ErrEmailTaken),
		errors.Is(err, application.ErrInvalidCurrentPassword),
		errors.Is(err, application.ErrCannotBuyOwnProject):
		response.SendError(c, http.StatusBadRequest, rootMessage(err), nil)
	case errors.Is(err, application.ErrInvalidCredentials):
		response.SendError(c, http.StatusUnauthorized, "invalid credentials", nil)
	case errors.Is(err, application.ErrFileTooLarge):
		response.SendError(c, http.StatusRequestEntityTooLarge, "file too large", nil)
	case errors.Is(err, application.ErrStorageUnavailable),
		errors.Is(err, application.ErrPaymentUnavailable):
		logger.WithError(err).WithField("path", c.FullPath()).Warn("upstream provider failed")
		response.SendError(c, http.StatusBadGateway, rootMessage(err), nil)
	default:
		logger.WithError(err).WithField("path", c.FullPath()).Error("request failed")
		response.SendError(c, http.StatusInternalServerError, "internal server error", nil)
	}
}

var sentinels = []error{
	application.ErrProjectNotFound,
	application.ErrUserNotFound,
	application.ErrEmailTaken,
	application.ErrInvalidCurrentPassword,
	application.ErrCannotBuyOwnProject,
	application.ErrStorageUnavailable,
	application.ErrPaymentUnavailable,
}

// rootMessage hides provider detail wrapped around a sentinel.
func rootMessage(err error) string {
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return err.Error()
}

func badRequest(c *gin.Context, err error) {
	response.SendError(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
}
