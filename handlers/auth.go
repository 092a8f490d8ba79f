package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/folio-site/folio/backend/internal/tokens"
	"github.com/folio-site/folio/backend/internal/users"
	"github.com/folio-site/folio/backend/pkg/apierror"
	"github.com/folio-site/folio/backend/pkg/logger"
	"github.com/folio-site/folio/backend/pkg/metrics"
	"github.com/folio-site/folio/backend/pkg/middleware"
	"github.com/gin-gonic/gin"
)

// LoginRequest is the admin credential pair.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthHandler holds dependencies
type AuthHandler struct {
	usersSvc *users.Service
	secret   string
	ttl      time.Duration
}

func NewAuthHandler(u *users.Service, secret string, ttl time.Duration) *AuthHandler {
	return &AuthHandler{usersSvc: u, secret: secret, ttl: ttl}
}

// Register mounts /api/auth. auth guards the verify endpoint.
func (h *AuthHandler) Register(r gin.IRouter, auth gin.HandlerFunc) {
	a := r.Group("/api/auth")
	a.POST("/login", h.Login)
	a.GET("/verify", auth, h.Verify)
}

// Login exchanges username/password for a signed access token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierror.Respond(c, apierror.New(apierror.ErrValidation, "Invalid request body"))
		return
	}
	u, err := h.usersSvc.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, apierror.ErrInvalidCredentials) {
			metrics.LoginAttempts.WithLabelValues("rejected").Inc()
			logger.Warnf("login rejected for %q from %s", req.Username, c.ClientIP())
		} else {
			metrics.LoginAttempts.WithLabelValues("error").Inc()
		}
		apierror.Respond(c, err)
		return
	}
	token, err := tokens.GenerateAccessToken(h.secret, u, h.ttl)
	if err != nil {
		metrics.LoginAttempts.WithLabelValues("error").Inc()
		apierror.Respond(c, err)
		return
	}
	metrics.LoginAttempts.WithLabelValues("success").Inc()
	c.JSON(http.StatusOK, gin.H{"token": token})
}

// Verify reports the identity behind a still-valid token. A token whose
// subject no longer exists is rejected.
func (h *AuthHandler) Verify(c *gin.Context) {
	id, ok := middleware.IdentityFrom(c)
	if !ok {
		apierror.Respond(c, apierror.New(apierror.ErrUnauthenticated, "Token is not valid"))
		return
	}
	u, err := h.usersSvc.GetByID(c.Request.Context(), id.Subject)
	if err != nil {
		if errors.Is(err, apierror.ErrNotFound) {
			apierror.Respond(c, apierror.New(apierror.ErrUnauthenticated, "Token is not valid"))
			return
		}
		apierror.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"valid": true, "user": middleware.Identity{Subject: u.ID, Username: u.Username}})
}
