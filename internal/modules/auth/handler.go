package auth

import (
	"context"
	"errors"
	"net/http"

	"juanride/internal/access"
	"juanride/internal/domain"
	"juanride/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterPublicRoutes registers the unauthenticated auth endpoints. The
// access check sits here behind optional auth: anonymous callers are
// evaluated as RoleNone, token holders as their token role.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.POST("/register", h.RegisterRenter)
	rg.POST("/register/owner", h.RegisterOwner)
	rg.POST("/login", h.Login)
	rg.POST("/access-check", h.AccessCheck)
}

// RegisterProtectedRoutes registers the endpoints that need a valid token.
func (h *Handler) RegisterProtectedRoutes(rg *gin.RouterGroup) {
	rg.GET("/profile", h.Profile)
	rg.PUT("/profile", h.UpdateProfile)
}

func (h *Handler) RegisterRenter(c *gin.Context) {
	h.register(c, h.service.RegisterRenter)
}

func (h *Handler) RegisterOwner(c *gin.Context) {
	h.register(c, h.service.RegisterOwner)
}

func (h *Handler) register(c *gin.Context, fn func(ctx context.Context, req RegisterRequest) (*domain.User, error)) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	u, err := fn(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrEmailTaken) {
			response.Error(c, http.StatusConflict, "EMAIL_TAKEN", "Email is already registered")
			return
		}
		response.Error(c, http.StatusInternalServerError, "REGISTER_ERROR", err.Error())
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"user": u})
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	res, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidCredentials):
			response.Error(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid email or password")
		case errors.Is(err, ErrUserDisabled):
			response.Error(c, http.StatusForbidden, "ACCOUNT_DISABLED", "Account is disabled")
		default:
			response.Error(c, http.StatusInternalServerError, "LOGIN_ERROR", err.Error())
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"user": res.User, "token": res.Token})
}

func (h *Handler) Profile(c *gin.Context) {
	userID := c.GetInt64("user_id")

	u, err := h.service.Profile(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "User not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "FETCH_ERROR", err.Error())
		return
	}

	response.Success(c, http.StatusOK, gin.H{"user": u})
}

func (h *Handler) UpdateProfile(c *gin.Context) {
	userID := c.GetInt64("user_id")

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	u, err := h.service.UpdateProfile(c.Request.Context(), userID, req)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "User not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "UPDATE_ERROR", err.Error())
		return
	}

	response.Success(c, http.StatusOK, gin.H{"user": u})
}

// AccessCheck evaluates the route access rules for the caller. Without a
// token the role context value is empty, which is RoleNone.
func (h *Handler) AccessCheck(c *gin.Context) {
	role := domain.UserRole(c.GetString("role"))

	var req AccessCheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	d := access.CanAccessRoute(req.Path, role)
	response.Success(c, http.StatusOK, gin.H{
		"path":    req.Path,
		"class":   access.Classify(req.Path),
		"allowed": d.Allowed,
		"reason":  d.Reason,
	})
}
