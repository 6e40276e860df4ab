package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-project-marketplace/internal/application"
	"github.com/oksasatya/go-project-marketplace/internal/interface/middleware"
	"github.com/oksasatya/go-project-marketplace/pkg/response"
)

type PurchaseHandler struct {
	Svc    *application.PurchaseService
	Users  ProfileLoader
	Logger *logrus.Logger
}

func NewPurchaseHandler(svc *application.PurchaseService, users ProfileLoader, logger *logrus.Logger) *PurchaseHandler {
	return &PurchaseHandler{Svc: svc, Users: users, Logger: logger}
}

type purchaseRequest struct {
	ProjectID string `json:"project_id" binding:"required"`
}

// Purchase POST /api/purchases {project_id}
func (h *PurchaseHandler) Purchase(c *gin.Context) {
	var req purchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	buyer, err := actingAuthor(c, h.Users)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	res, err := h.Svc.Purchase(c.Request.Context(), buyer, req.ProjectID, middleware.ClientIP(c))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, res, "payment intent created", nil)
}

// List GET /api/purchases
func (h *PurchaseHandler) List(c *gin.Context) {
	purchases, err := h.Svc.List(c.Request.Context(), userID(c))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, purchases, "purchases", gin.H{"count": len(purchases)})
}
