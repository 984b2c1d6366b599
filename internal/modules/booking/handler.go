package booking

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"juanride/internal/domain"
	"juanride/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers booking routes under the protected group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/bookings")
	{
		group.POST("", h.Create)
		group.GET("", h.ListMine)
		group.GET("/owner", h.ListForOwner)
		group.GET("/:id", h.Get)
		group.POST("/:id/confirm", h.Confirm)
		group.POST("/:id/pickup", h.ConfirmPickup)
		group.POST("/:id/return", h.ConfirmReturn)
		group.POST("/:id/cancel", h.Cancel)
	}
}

func (h *Handler) Create(c *gin.Context) {
	renterID := c.GetInt64("user_id")

	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if details := validationDetails(err); details != nil {
			response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid booking request", details)
			return
		}
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	b, err := h.service.Create(c.Request.Context(), renterID, req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"booking": ToBookingResponse(b)})
}

func (h *Handler) ListMine(c *gin.Context) {
	userID := c.GetInt64("user_id")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	items, err := h.service.ListForRenter(c.Request.Context(), userID, limit, offset)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "FETCH_ERROR", err.Error())
		return
	}

	response.Success(c, http.StatusOK, gin.H{"bookings": toResponses(items)})
}

func (h *Handler) ListForOwner(c *gin.Context) {
	userID := c.GetInt64("user_id")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	items, err := h.service.ListForOwner(c.Request.Context(), userID, limit, offset)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "FETCH_ERROR", err.Error())
		return
	}

	response.Success(c, http.StatusOK, gin.H{"bookings": toResponses(items)})
}

func (h *Handler) Get(c *gin.Context) {
	userID := c.GetInt64("user_id")
	role := domain.UserRole(c.GetString("role"))

	id, ok := h.bookingID(c)
	if !ok {
		return
	}

	b, err := h.service.Get(c.Request.Context(), id, userID, role)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"booking": ToBookingResponse(b)})
}

func (h *Handler) Confirm(c *gin.Context) {
	userID := c.GetInt64("user_id")
	role := domain.UserRole(c.GetString("role"))

	id, ok := h.bookingID(c)
	if !ok {
		return
	}

	b, err := h.service.Confirm(c.Request.Context(), id, userID, role)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"booking": ToBookingResponse(b)})
}

func (h *Handler) ConfirmPickup(c *gin.Context) {
	userID := c.GetInt64("user_id")

	id, ok := h.bookingID(c)
	if !ok {
		return
	}

	b, err := h.service.ConfirmPickup(c.Request.Context(), id, userID)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"booking": ToBookingResponse(b)})
}

func (h *Handler) ConfirmReturn(c *gin.Context) {
	userID := c.GetInt64("user_id")

	id, ok := h.bookingID(c)
	if !ok {
		return
	}

	var req struct {
		PaymentMethod string `json:"payment_method"`
	}
	_ = c.ShouldBindJSON(&req)

	b, err := h.service.ConfirmReturn(c.Request.Context(), id, userID, req.PaymentMethod)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"booking": ToBookingResponse(b)})
}

func (h *Handler) Cancel(c *gin.Context) {
	userID := c.GetInt64("user_id")
	role := domain.UserRole(c.GetString("role"))

	id, ok := h.bookingID(c)
	if !ok {
		return
	}

	var req CancelBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Cancellation reason is required")
		return
	}

	b, err := h.service.Cancel(c.Request.Context(), id, userID, role, req.Reason)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"booking": ToBookingResponse(b)})
}

func (h *Handler) bookingID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid booking ID")
		return 0, false
	}
	return id, true
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid booking dates")
	case errors.Is(err, ErrReasonRequired):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Cancellation reason is required")
	case errors.Is(err, ErrCancelTooLate):
		response.Error(c, http.StatusConflict, "CANCEL_WINDOW_CLOSED", "Too close to the rental start to cancel")
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Booking not found")
	case errors.Is(err, ErrVehicleNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Vehicle not found")
	case errors.Is(err, ErrNotBookable):
		response.Error(c, http.StatusConflict, "NOT_BOOKABLE", "Vehicle is not available for booking")
	case errors.Is(err, ErrNotAvailable):
		response.Error(c, http.StatusConflict, "DATE_CONFLICT", "Vehicle is already booked for these dates")
	case errors.Is(err, ErrOwnVehicle):
		response.Error(c, http.StatusBadRequest, "OWN_VEHICLE", "Owners cannot book their own vehicle")
	case errors.Is(err, ErrInvalidTransition):
		response.Error(c, http.StatusConflict, "INVALID_TRANSITION", "Booking status transition not allowed")
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Not allowed to act on this booking")
	default:
		response.Error(c, http.StatusInternalServerError, "BOOKING_ERROR", err.Error())
	}
}

// validationDetails turns binding errors into a field -> message map so the
// client can point at the offending inputs.
func validationDetails(err error) map[string]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	details := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			details[field] = "is required"
		case "min", "gt", "gte":
			details[field] = "is too small"
		default:
			details[field] = "is invalid"
		}
	}
	return details
}

func toResponses(items []domain.Booking) []*BookingResponse {
	out := make([]*BookingResponse, 0, len(items))
	for i := range items {
		out = append(out, ToBookingResponse(&items[i]))
	}
	return out
}
