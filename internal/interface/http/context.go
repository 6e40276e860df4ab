package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-project-marketplace/internal/application"
	"github.com/oksasatya/go-project-marketplace/internal/domain/entity"
	"github.com/oksasatya/go-project-marketplace/internal/interface/middleware"
)

// ProfileLoader resolves a user when the session does not carry name and email.
type ProfileLoader interface {
	GetProfile(ctx context.Context, userID string) (*entity.User, error)
}

func userID(c *gin.Context) string {
	return c.GetString(middleware.CtxUserID)
}

// actingAuthor builds the author view of the authenticated user.
func actingAuthor(c *gin.Context, users ProfileLoader) (entity.Author, error) {
	a := entity.Author{
		ID:    userID(c),
		Name:  c.GetString(middleware.CtxUserName),
		Email: c.GetString(middleware.CtxUserEmail),
	}
	if a.ID == "" {
		return entity.Author{}, application.ErrInvalidCredentials
	}
	if (a.Name == "" || a.Email == "") && users != nil {
		u, err := users.GetProfile(c.Request.Context(), a.ID)
		if err != nil {
			return entity.Author{}, err
		}
		return u.Author(), nil
	}
	return a, nil
}

func userView(u *entity.User) gin.H {
	return gin.H{
		"id":         u.ID,
		"email":      u.Email,
		"name":       u.Name,
		"avatar_url": u.AvatarURL,
		"created_at": u.CreatedAt,
		"updated_at": u.UpdatedAt,
	}
}
