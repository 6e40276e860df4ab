package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-project-marketplace/internal/application"
	"github.com/oksasatya/go-project-marketplace/internal/domain/entity"
	"github.com/oksasatya/go-project-marketplace/internal/domain/listing"
	repo "github.com/oksasatya/go-project-marketplace/internal/domain/repository"
	"github.com/oksasatya/go-project-marketplace/pkg/response"
)

type ProjectHandler struct {
	Svc    *application.ProjectService
	Users  ProfileLoader
	Logger *logrus.Logger
}

func NewProjectHandler(svc *application.ProjectService, users ProfileLoader, logger *logrus.Logger) *ProjectHandler {
	return &ProjectHandler{Svc: svc, Users: users, Logger: logger}
}

func criteriaFromQuery(c *gin.Context, keyword string) listing.Criteria {
	return listing.ParseCriteria(keyword, c.Query("min_price"), c.Query("max_price"))
}

func listMeta(projects []entity.Project) gin.H {
	return gin.H{"count": len(projects)}
}

// List GET /api/projects?keyword=&min_price=&max_price=&mine=
func (h *ProjectHandler) List(c *gin.Context) {
	var scope repo.ProjectScope
	if mine, _ := strconv.ParseBool(c.Query("mine")); mine {
		scope.AuthorID = userID(c)
	}
	projects, err := h.Svc.List(c.Request.Context(), scope, criteriaFromQuery(c, c.Query("keyword")))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, projects, "projects", listMeta(projects))
}

// Search GET /api/projects/search?q=&min_price=&max_price=
func (h *ProjectHandler) Search(c *gin.Context) {
	q := c.Query("q")
	projects, err := h.Svc.Search(c.Request.Context(), q, criteriaFromQuery(c, ""))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, projects, "projects", listMeta(projects))
}

// Technologies GET /api/projects/technologies
func (h *ProjectHandler) Technologies(c *gin.Context) {
	techs, err := h.Svc.Technologies(c.Request.Context())
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, techs, "technologies", nil)
}

// Get GET /api/projects/:id
func (h *ProjectHandler) Get(c *gin.Context) {
	p, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, p, "project", nil)
}

// Create POST /api/projects
func (h *ProjectHandler) Create(c *gin.Context) {
	var in application.ProjectInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}
	author, err := actingAuthor(c, h.Users)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	p, err := h.Svc.Create(c.Request.Context(), author, in)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.SendSuccess(c, http.StatusCreated, p, "project created", nil)
}

// Update PUT /api/projects/:id
func (h *ProjectHandler) Update(c *gin.Context) {
	var patch application.ProjectPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		badRequest(c, err)
		return
	}
	p, err := h.Svc.Update(c.Request.Context(), userID(c), c.Param("id"), patch)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, p, "project updated", nil)
}

// Delete DELETE /api/projects/:id
func (h *ProjectHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), userID(c), c.Param("id")); err != nil {
		writeError(c, h.Logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
