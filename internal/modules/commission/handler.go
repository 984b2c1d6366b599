package commission

import (
	"errors"
	"net/http"
	"strconv"

	"juanride/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the earnings view for owners and settlement
// endpoints for admins.
func (h *Handler) RegisterRoutes(ownerRG, adminRG *gin.RouterGroup) {
	ownerRG.GET("/commissions", h.ListMine)

	adminRG.GET("/commissions/booking/:booking_id", h.GetByBooking)
	adminRG.PUT("/commissions/:id/paid", h.MarkPaid)
}

func (h *Handler) ListMine(c *gin.Context) {
	ownerID := c.GetInt64("user_id")

	items, err := h.service.ListForOwner(c.Request.Context(), ownerID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "FETCH_ERROR", err.Error())
		return
	}

	response.Success(c, http.StatusOK, gin.H{"commissions": items})
}

func (h *Handler) GetByBooking(c *gin.Context) {
	bookingID, err := strconv.ParseInt(c.Param("booking_id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid booking ID")
		return
	}

	cm, err := h.service.GetByBooking(c.Request.Context(), bookingID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "No commission for this booking")
			return
		}
		response.Error(c, http.StatusInternalServerError, "FETCH_ERROR", err.Error())
		return
	}

	response.Success(c, http.StatusOK, gin.H{"commission": cm})
}

func (h *Handler) MarkPaid(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid commission ID")
		return
	}

	if err := h.service.MarkPaid(c.Request.Context(), id); err != nil {
		response.Error(c, http.StatusInternalServerError, "UPDATE_ERROR", err.Error())
		return
	}

	response.Success(c, http.StatusOK, gin.H{"commission_id": id, "status": "paid"})
}
