package catalog

import (
	"errors"
	"net/http"
	"strconv"

	"juanride/internal/domain"
	"juanride/internal/pkg/response"
	"juanride/internal/repository"

	"github.com/gin-gonic/gin"
)

const maxImageSize = 10 << 20 // 10 MB

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterPublicRoutes registers the browse endpoints.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/vehicles", h.Search)
	rg.GET("/vehicles/:id", h.Get)
}

// RegisterOwnerRoutes registers the listing management endpoints; the
// caller must wrap the group in owner-role middleware.
func (h *Handler) RegisterOwnerRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/vehicles")
	{
		group.POST("", h.Create)
		group.GET("", h.ListMine)
		group.PUT("/:id", h.Update)
		group.PUT("/:id/status", h.SetStatus)
		group.POST("/:id/images", h.UploadImage)
		group.POST("/:id/maintenance", h.ScheduleMaintenance)
		group.GET("/:id/maintenance", h.ListMaintenance)
	}
}

func (h *Handler) Search(c *gin.Context) {
	maxPrice, _ := strconv.ParseFloat(c.Query("max_price"), 64)
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	items, err := h.service.Search(c.Request.Context(), repository.SearchParams{
		Location: c.Query("location"),
		MaxPrice: maxPrice,
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "FETCH_ERROR", err.Error())
		return
	}

	response.Success(c, http.StatusOK, gin.H{"vehicles": items})
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := h.vehicleID(c)
	if !ok {
		return
	}

	v, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"vehicle": v})
}

func (h *Handler) Create(c *gin.Context) {
	ownerID := c.GetInt64("user_id")

	var req CreateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	v, err := h.service.Create(c.Request.Context(), ownerID, req)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "CREATE_ERROR", err.Error())
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"vehicle": v})
}

func (h *Handler) ListMine(c *gin.Context) {
	ownerID := c.GetInt64("user_id")

	items, err := h.service.ListForOwner(c.Request.Context(), ownerID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "FETCH_ERROR", err.Error())
		return
	}

	response.Success(c, http.StatusOK, gin.H{"vehicles": items})
}

func (h *Handler) Update(c *gin.Context) {
	ownerID := c.GetInt64("user_id")

	id, ok := h.vehicleID(c)
	if !ok {
		return
	}

	var req UpdateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	v, err := h.service.Update(c.Request.Context(), id, ownerID, req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"vehicle": v})
}

func (h *Handler) SetStatus(c *gin.Context) {
	ownerID := c.GetInt64("user_id")

	id, ok := h.vehicleID(c)
	if !ok {
		return
	}

	var req SetStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	v, err := h.service.SetStatus(c.Request.Context(), id, ownerID, domain.VehicleStatus(req.Status))
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"vehicle": v})
}

func (h *Handler) UploadImage(c *gin.Context) {
	ownerID := c.GetInt64("user_id")

	id, ok := h.vehicleID(c)
	if !ok {
		return
	}

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

	v, err := h.service.AddImage(c.Request.Context(), id, ownerID, f, file.Header.Get("Content-Type"))
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"vehicle": v})
}

func (h *Handler) ScheduleMaintenance(c *gin.Context) {
	ownerID := c.GetInt64("user_id")

	id, ok := h.vehicleID(c)
	if !ok {
		return
	}

	var req ScheduleMaintenanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	l, err := h.service.ScheduleMaintenance(c.Request.Context(), id, ownerID, req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"maintenance": l})
}

func (h *Handler) ListMaintenance(c *gin.Context) {
	ownerID := c.GetInt64("user_id")

	id, ok := h.vehicleID(c)
	if !ok {
		return
	}

	items, err := h.service.ListMaintenance(c.Request.Context(), id, ownerID)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"maintenance": items})
}

func (h *Handler) vehicleID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid vehicle ID")
		return 0, false
	}
	return id, true
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Vehicle not found")
	case errors.Is(err, ErrNotOwner):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Vehicle belongs to another owner")
	case errors.Is(err, ErrVehicleRented):
		response.Error(c, http.StatusConflict, "VEHICLE_RENTED", "Vehicle is currently rented")
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid vehicle status")
	case errors.Is(err, ErrInvalidWindow):
		response.Error(c, http.StatusBadRequest, "INVALID_WINDOW", "Maintenance window dates are invalid")
	case errors.Is(err, ErrWindowConflict):
		response.Error(c, http.StatusConflict, "WINDOW_CONFLICT", "Maintenance window overlaps an existing booking")
	default:
		response.Error(c, http.StatusInternalServerError, "CATALOG_ERROR", err.Error())
	}
}
