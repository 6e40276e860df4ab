package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-project-marketplace/internal/application"
	"github.com/oksasatya/go-project-marketplace/pkg/helpers"
	"github.com/oksasatya/go-project-marketplace/pkg/response"
)

type AuthHandler struct {
	Svc     *application.UserService
	Logger  *logrus.Logger
	Cookies *helpers.Manager
}

func NewAuthHandler(svc *application.UserService, logger *logrus.Logger, cookieDomain string, cookieSecure bool) *AuthHandler {
	return &AuthHandler{Svc: svc, Logger: logger, Cookies: helpers.NewCookie(cookieDomain, cookieSecure)}
}

type signupRequest struct {
	Name     string `json:"name" binding:"required,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,pwd"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// Signup POST /api/signup
func (h *AuthHandler) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	u, err := h.Svc.Signup(c.Request.Context(), application.SignupInput{Name: req.Name, Email: req.Email, Password: req.Password})
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.SendSuccess(c, http.StatusCreated, userView(u), "signup successful", nil)
}

// Login POST /api/login. Tokens go to cookies; the access token is also
// returned in meta for non-browser clients.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	u, pair, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	h.Cookies.SetPair(c, pair.AccessToken, pair.AccessTokenExpiry, pair.RefreshToken, pair.RefreshTokenExpiry)
	response.SendSuccess(c, http.StatusOK, userView(u), "login successful", tokenMeta(pair))
}

// Refresh POST /api/refresh, reading the refresh token from the cookie or the body.
func (h *AuthHandler) Refresh(c *gin.Context) {
	refresh, err := c.Cookie(helpers.RefreshCookie)
	if err != nil || refresh == "" {
		var req refreshRequest
		_ = c.ShouldBindJSON(&req)
		refresh = req.RefreshToken
	}
	if refresh == "" {
		response.SendError(c, http.StatusUnauthorized, "missing refresh token", nil)
		return
	}
	pair, err := h.Svc.Refresh(c.Request.Context(), refresh)
	if err != nil {
		response.SendError(c, http.StatusUnauthorized, "invalid refresh token", nil)
		return
	}
	h.Cookies.SetPair(c, pair.AccessToken, pair.AccessTokenExpiry, pair.RefreshToken, pair.RefreshTokenExpiry)
	response.SendSuccess[any](c, http.StatusOK, gin.H{"refreshed": true}, "token refreshed", tokenMeta(pair))
}

// Logout POST /api/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.Svc.Logout(c.Request.Context(), userID(c)); err != nil {
		h.Logger.WithError(err).WithField("user_id", userID(c)).Warn("drop session failed")
	}
	h.Cookies.Clear(c)
	response.SendSuccess[any](c, http.StatusOK, gin.H{"logged_out": true}, "logged out", nil)
}

func tokenMeta(pair application.TokenPair) gin.H {
	return gin.H{
		"access_token":       pair.AccessToken,
		"refresh_token":      pair.RefreshToken,
		"access_expires_at":  pair.AccessTokenExpiry,
		"refresh_expires_at": pair.RefreshTokenExpiry,
	}
}
