package support

import (
	"errors"
	"net/http"
	"strconv"

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

// RegisterRoutes registers ticket endpoints: user-facing under the
// protected group, triage under the admin group.
func (h *Handler) RegisterRoutes(rg, adminRG *gin.RouterGroup) {
	group := rg.Group("/support")
	{
		group.POST("/tickets", h.Create)
		group.GET("/tickets", h.ListMine)
	}

	admin := adminRG.Group("/support")
	{
		admin.GET("/tickets", h.ListOpen)
		admin.PUT("/tickets/:id/status", h.Advance)
	}
}

func (h *Handler) Create(c *gin.Context) {
	userID := c.GetInt64("user_id")

	var req CreateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	t, err := h.service.Create(c.Request.Context(), userID, req)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "CREATE_ERROR", err.Error())
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"ticket": t})
}

func (h *Handler) ListMine(c *gin.Context) {
	userID := c.GetInt64("user_id")

	items, err := h.service.ListForUser(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "FETCH_ERROR", err.Error())
		return
	}

	response.Success(c, http.StatusOK, gin.H{"tickets": items})
}

func (h *Handler) ListOpen(c *gin.Context) {
	items, err := h.service.ListOpen(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "FETCH_ERROR", err.Error())
		return
	}

	response.Success(c, http.StatusOK, gin.H{"tickets": items})
}

func (h *Handler) Advance(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid ticket ID")
		return
	}

	var req AdvanceTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	t, err := h.service.Advance(c.Request.Context(), id, domain.TicketStatus(req.Status))
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Ticket not found")
		case errors.Is(err, ErrInvalidTransition):
			response.Error(c, http.StatusConflict, "INVALID_TRANSITION", "Ticket status transition not allowed")
		default:
			response.Error(c, http.StatusInternalServerError, "UPDATE_ERROR", err.Error())
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"ticket": t})
}
