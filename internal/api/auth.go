package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/recipemagic/backend/internal/service"
	"github.com/recipemagic/backend/internal/types"
)

// AuthHandler serves the magic-link sign-in flow.
type AuthHandler struct {
	auth   service.IAuthService
	email  service.IEmailService
	logger *zap.Logger
}

func NewAuthHandler(auth service.IAuthService, email service.IEmailService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		auth:   auth,
		email:  email,
		logger: logger,
	}
}

func (h *AuthHandler) RegisterRoutes(router *gin.RouterGroup, authMW gin.HandlerFunc) {
	auth := router.Group("/auth")
	{
		auth.POST("/magic-link", h.RequestMagicLink)
		auth.GET("/verify", h.VerifyMagicLink)

		session := auth.Group("")
		session.Use(authMW)
		{
			session.GET("/session", h.Session)
			session.POST("/logout", h.Logout)
		}
	}
}

type MagicLinkRequest struct {
	Email string `json:"email" binding:"required"`
}

// RequestMagicLink creates a one-time token and emails the sign-in link.
// Every failure gets the same generic response: the caller learns nothing
// about whether the address exists or why sending failed.
func (h *AuthHandler) RequestMagicLink(c *gin.Context) {
	var req MagicLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email is required"})
		return
	}

	token, err := h.auth.RequestMagicLink(c.Request.Context(), req.Email)
	if err == nil {
		err = h.email.SendMagicLinkEmail(req.Email, token)
	}
	if err != nil {
		h.logger.Error("failed to send magic link", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not send magic link. Try again."})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"message": "Check your email for the magic link"})
}

// VerifyMagicLink consumes a sign-in token and returns a session token.
func (h *AuthHandler) VerifyMagicLink(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing token"})
		return
	}

	session, email, err := h.auth.VerifyMagicLink(c.Request.Context(), token)
	if errors.Is(err, service.ErrTokenNotFound) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired sign-in link"})
		return
	}
	if err != nil {
		h.logger.Error("magic link verification failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not complete sign-in. Try again."})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": session,
		"email": email,
	})
}

// Session returns the email of the current session.
func (h *AuthHandler) Session(c *gin.Context) {
	email := c.GetString("email")
	if email == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"email": email})
}

// Logout denylists the current session token.
func (h *AuthHandler) Logout(c *gin.Context) {
	claimsVal, exists := c.Get("token_claims")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	claims, ok := claimsVal.(*types.TokenClaims)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	if err := h.auth.Logout(c.Request.Context(), claims); err != nil {
		h.logger.Error("logout failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to sign out"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Signed out"})
}
