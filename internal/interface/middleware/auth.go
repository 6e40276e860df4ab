package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/go-project-marketplace/pkg/helpers"
	"github.com/oksasatya/go-project-marketplace/pkg/response"
)

// Context keys set by Auth.
const (
	CtxUserID    = "userID"
	CtxUserName  = "userName"
	CtxUserEmail = "userEmail"
)

// Auth validates the access token (cookie or Bearer header) and, when rdb is
// set, requires the Redis session the token was issued for.
// It sets userID, userName, and userEmail in the Gin context on success.
func Auth(rdb *redis.Client, jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := accessToken(c)
		if token == "" {
			response.SendError(c, http.StatusUnauthorized, "missing access token", nil)
			return
		}
		claims, err := jwt.ParseAccessToken(token)
		if err != nil {
			response.SendError(c, http.StatusUnauthorized, "invalid access token", err.Error())
			return
		}
		c.Set(CtxUserID, claims.UserID)

		if rdb != nil {
			data, err := rdb.HGetAll(c.Request.Context(), helpers.KeySession(claims.UserID)).Result()
			if err != nil || len(data) == 0 || data["sid"] != claims.SessionID {
				response.SendError(c, http.StatusUnauthorized, "session not found", nil)
				return
			}
			c.Set(CtxUserName, data["name"])
			c.Set(CtxUserEmail, data["email"])
		}
		c.Next()
	}
}

func accessToken(c *gin.Context) string {
	if token, err := c.Cookie(helpers.AccessCookie); err == nil && token != "" {
		return token
	}
	h := c.GetHeader("Authorization")
	if len(h) > 7 && strings.EqualFold(h[:7], "bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}
