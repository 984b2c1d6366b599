package review

import (
	"errors"
	"net/http"
	"strconv"

	"juanride/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

const maxImageSize = 10 << 20 // 10 MB

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterPublicRoutes exposes the per-vehicle review feed.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/vehicles/:id/reviews", h.ListForVehicle)
}

// RegisterProtectedRoutes exposes review creation for renters.
func (h *Handler) RegisterProtectedRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/reviews")
	{
		group.POST("", h.Create)
		group.POST("/images", h.UploadImage)
	}
}

func (h *Handler) Create(c *gin.Context) {
	renterID := c.GetInt64("user_id")

	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	rv, err := h.service.Create(c.Request.Context(), renterID, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidRating):
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Rating must be between 1 and 5")
		case errors.Is(err, ErrBookingNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Booking not found")
		case errors.Is(err, ErrNotYourBooking):
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "Booking belongs to another renter")
		case errors.Is(err, ErrBookingNotEnded):
			response.Error(c, http.StatusConflict, "BOOKING_NOT_COMPLETED", "Booking is not completed yet")
		case errors.Is(err, ErrAlreadyReviewed):
			response.Error(c, http.StatusConflict, "ALREADY_REVIEWED", "Booking has already been reviewed")
		default:
			response.Error(c, http.StatusInternalServerError, "REVIEW_ERROR", err.Error())
		}
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"review": rv})
}

func (h *Handler) ListForVehicle(c *gin.Context) {
	vehicleID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid vehicle ID")
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	items, err := h.service.ListForVehicle(c.Request.Context(), vehicleID, limit)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "FETCH_ERROR", err.Error())
		return
	}

	response.Success(c, http.StatusOK, gin.H{"reviews": items})
}

func (h *Handler) UploadImage(c *gin.Context) {
	renterID := c.GetInt64("user_id")

	file, err := c.FormFile("image")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Image file is required")
		return
	}
	if file.Size > maxImageSize {
		response.Error(c, http.StatusBadRequest, "FILE_TOO_LARGE", "Image must be under 10MB")
		return
	}

	f, err := file.Open()
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "UPLOAD_ERROR", err.Error())
		return
	}
	defer f.Close()

	url, err := h.service.UploadImage(c.Request.Context(), renterID, f, file.Header.Get("Content-Type"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "UPLOAD_ERROR", err.Error())
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"url": url})
}
