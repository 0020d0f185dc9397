// Package rest exposes the auth flow over HTTP. Every response uses the
// uniform JSON envelope: {"success":true,...} or
// {"success":false,"error":msg}; internal errors are logged and converted at
// this boundary, never leaked.
package rest

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/campdir/campdir/internal/logging"
	"github.com/campdir/campdir/internal/server/config"
	"github.com/campdir/campdir/internal/server/models"
)

// authService is the slice of the service layer the handlers need.
type authService interface {
	Register(ctx context.Context, name, email, password, role string) (*models.User, string, error)
	Login(ctx context.Context, email, password string) (*models.User, string, error)
	CurrentUser(ctx context.Context, id string) (*models.User, error)
	UpdateDetails(ctx context.Context, id, name, email string) (*models.User, error)
	UpdatePassword(ctx context.Context, id, currentPassword, newPassword string) (string, error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, plainToken, newPassword string) (*models.User, string, error)
}

// pinger is satisfied by *sql.DB; healthz uses it as a liveness probe.
type pinger interface {
	PingContext(ctx context.Context) error
}

type Handler struct {
	svc            authService
	db             pinger
	logger         logging.Logger
	jwtSecret      []byte
	production     bool
	cookieValidity time.Duration
}

func NewHandler(svc authService, db pinger, logger logging.Logger, cfg *config.Config) *Handler {
	return &Handler{
		svc:            svc,
		db:             db,
		logger:         logger,
		jwtSecret:      []byte(cfg.SecretKey),
		production:     cfg.IsProduction(),
		cookieValidity: cfg.CookieValidityDuration,
	}
}

type registerRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role" binding:"omitempty,oneof=user publisher"`
}

func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeBindError(c, err)
		return
	}

	_, token, err := h.svc.Register(c.Request.Context(), req.Name, req.Email, req.Password, req.Role)
	if err != nil {
		h.writeError(c, err)
		return
	}
	h.respondWithToken(c, token)
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeBindError(c, err)
		return
	}

	_, token, err := h.svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.writeError(c, err)
		return
	}
	h.respondWithToken(c, token)
}

func (h *Handler) Me(c *gin.Context) {
	user, err := h.svc.CurrentUser(c.Request.Context(), currentUserID(c))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": user})
}

// Logout instructs the client to discard the token by overwriting the cookie
// with a near-immediate expiry. The token itself stays valid until it
// expires; there is no server-side session state to revoke.
func (h *Handler) Logout(c *gin.Context) {
	c.SetCookie(tokenCookieName, "none", 10, "/", "", h.production, true)
	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{}})
}

type updateDetailsRequest struct {
	Name  string `json:"name"`
	Email string `json:"email" binding:"omitempty,email"`
}

func (h *Handler) UpdateDetails(c *gin.Context) {
	var req updateDetailsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeBindError(c, err)
		return
	}

	user, err := h.svc.UpdateDetails(c.Request.Context(), currentUserID(c), req.Name, req.Email)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": user})
}

type updatePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=6"`
}

func (h *Handler) UpdatePassword(c *gin.Context) {
	var req updatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeBindError(c, err)
		return
	}

	token, err := h.svc.UpdatePassword(c.Request.Context(), currentUserID(c), req.CurrentPassword, req.NewPassword)
	if err != nil {
		h.writeError(c, err)
		return
	}
	h.respondWithToken(c, token)
}

type forgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

func (h *Handler) ForgotPassword(c *gin.Context) {
	var req forgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeBindError(c, err)
		return
	}

	if err := h.svc.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": "Email sent"})
}

type resetPasswordRequest struct {
	Password string `json:"password" binding:"required,min=6"`
}

func (h *Handler) ResetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeBindError(c, err)
		return
	}

	_, token, err := h.svc.ResetPassword(c.Request.Context(), c.Param("resettoken"), req.Password)
	if err != nil {
		h.writeError(c, err)
		return
	}
	h.respondWithToken(c, token)
}

func (h *Handler) Healthz(c *gin.Context) {
	if err := h.db.PingContext(c.Request.Context()); err != nil {
		h.logger.Error(c.Request.Context(), "health check failed", "error", err.Error())
		c.JSON(http.StatusServiceUnavailable, gin.H{"success": false, "error": "database unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{}})
}
