package favorite

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

// RegisterRoutes registers favorites under the renter group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/favorites")
	{
		group.GET("", h.List)
		group.POST("/:vehicle_id", h.Add)
		group.DELETE("/:vehicle_id", h.Remove)
	}
}

func (h *Handler) List(c *gin.Context) {
	userID := c.GetInt64("user_id")

	items, err := h.service.List(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "FETCH_ERROR", err.Error())
		return
	}

	response.Success(c, http.StatusOK, gin.H{"favorites": items})
}

func (h *Handler) Add(c *gin.Context) {
	userID := c.GetInt64("user_id")

	vehicleID, ok := h.vehicleID(c)
	if !ok {
		return
	}

	if err := h.service.Add(c.Request.Context(), userID, vehicleID); err != nil {
		if errors.Is(err, ErrVehicleNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Vehicle not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "FAVORITE_ERROR", err.Error())
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"favorited": true})
}

func (h *Handler) Remove(c *gin.Context) {
	userID := c.GetInt64("user_id")

	vehicleID, ok := h.vehicleID(c)
	if !ok {
		return
	}

	if err := h.service.Remove(c.Request.Context(), userID, vehicleID); err != nil {
		response.Error(c, http.StatusInternalServerError, "FAVORITE_ERROR", err.Error())
		return
	}

	response.Success(c, http.StatusOK, gin.H{"favorited": false})
}

func (h *Handler) vehicleID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("vehicle_id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid vehicle ID")
		return 0, false
	}
	return id, true
}
