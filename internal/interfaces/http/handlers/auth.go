// internal/interfaces/http/handlers/auth.go
package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/your-org/seed-marketplace/internal/domain/user"
	"github.com/your-org/seed-marketplace/internal/interfaces/http/middleware"
)

// AuthService is the authentication collaborator
type AuthService interface {
	SignUp(ctx context.Context, sessionID string, req *user.SignUpRequest) (*user.AuthResponse, error)
	SignIn(ctx context.Context, sessionID string, req *user.SignInRequest) (*user.AuthResponse, error)
	SignOut(ctx context.Context, sessionID, token string) error
}

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authService AuthService
	logger      *logrus.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService AuthService, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logger,
	}
}

// SignUp handles user registration
func (h *AuthHandler) SignUp(c *gin.Context) {
	var req user.SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	sess := middleware.GetSession(c)
	response, err := h.authService.SignUp(c.Request.Context(), sess.ID, &req)
	if err != nil {
		c.JSON(authStatus(err), gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Signed up successfully",
		"data":    response,
	})
}

// SignIn handles user login
func (h *AuthHandler) SignIn(c *gin.Context) {
	var req user.SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	sess := middleware.GetSession(c)
	response, err := h.authService.SignIn(c.Request.Context(), sess.ID, &req)
	if err != nil {
		c.JSON(authStatus(err), gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Signed in successfully",
		"data":    response,
	})
}

// SignOut ends the session's sign-in and revokes the presented token
func (h *AuthHandler) SignOut(c *gin.Context) {
	sess := middleware.GetSession(c)
	if err := h.authService.SignOut(c.Request.Context(), sess.ID, middleware.BearerToken(c)); err != nil {
		h.logger.WithError(err).WithField("session_id", sess.ID).Error("sign out failed")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Signed out successfully",
	})
}

// Session reports who the current session is signed in as
func (h *AuthHandler) Session(c *gin.Context) {
	identity, signedIn := middleware.GetIdentity(c)

	data := gin.H{
		"signed_in": signedIn,
	}
	if signedIn {
		data["user"] = identity
	}

	c.JSON(http.StatusOK, gin.H{
		"data": data,
	})
}

func authStatus(err error) int {
	switch {
	case errors.Is(err, user.ErrEmailTaken):
		return http.StatusConflict
	case errors.Is(err, user.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case isValidationError(err):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
