package catalog

import (
	"errors"
	"net/http"
	"strconv"

	"hotelstay/internal/domain"
	"hotelstay/internal/pkg/response"
	"hotelstay/internal/repository"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the public room listing.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/rooms", h.ListRooms)
	rg.GET("/rooms/:id", h.GetRoom)
}

// RegisterStaffRoutes mounts inventory management.
func (h *Handler) RegisterStaffRoutes(rg *gin.RouterGroup) {
	rg.POST("/rooms", h.CreateRoom)
	rg.PUT("/rooms/:id", h.UpdateRoom)
	rg.PATCH("/rooms/:id/availability", h.SetAvailability)
	rg.DELETE("/rooms/:id", h.DeleteRoom)
}

func (h *Handler) ListRooms(c *gin.Context) {
	filters := repository.RoomFilters{
		RoomType: domain.RoomType(c.Query("room_type")),
	}
	if v := c.Query("min_capacity"); v != "" {
		filters.MinCapacity, _ = strconv.Atoi(v)
	}
	filters.OnlyAvailable = c.Query("only_available") == "true"

	rooms, err := h.service.ListRooms(c.Request.Context(), filters)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list rooms")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"rooms": rooms})
}

func (h *Handler) GetRoom(c *gin.Context) {
	id, ok := roomID(c)
	if !ok {
		return
	}

	room, err := h.service.GetRoom(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"room": room})
}

func (h *Handler) CreateRoom(c *gin.Context) {
	var req CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	room, err := h.service.CreateRoom(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"room": room})
}

func (h *Handler) UpdateRoom(c *gin.Context) {
	id, ok := roomID(c)
	if !ok {
		return
	}

	var req UpdateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	room, err := h.service.UpdateRoom(c.Request.Context(), id, req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"room": room})
}

func (h *Handler) SetAvailability(c *gin.Context) {
	id, ok := roomID(c)
	if !ok {
		return
	}

	var req SetAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.IsAvailable == nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "is_available is required")
		return
	}

	room, err := h.service.SetRoomAvailability(c.Request.Context(), id, *req.IsAvailable)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"room": room})
}

func (h *Handler) DeleteRoom(c *gin.Context) {
	id, ok := roomID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteRoom(c.Request.Context(), id); err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid room data")
	case errors.Is(err, ErrRoomNotFound):
		response.Error(c, http.StatusNotFound, "ROOM_NOT_FOUND", "Room not found")
	case errors.Is(err, ErrRoomHasActiveBookings):
		response.Error(c, http.StatusConflict, "ROOM_HAS_ACTIVE_BOOKINGS", "Room still has live reservations")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Operation failed")
	}
}

func roomID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid room ID")
		return 0, false
	}
	return id, true
}
