package reservation

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"hotelstay/internal/domain"
	"hotelstay/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts guest-accessible booking endpoints.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/bookings", h.CreateBooking)
	rg.GET("/bookings/:id", h.GetBooking)
	rg.PATCH("/bookings/:id/cancel", h.CancelBooking)
	rg.GET("/users/me/bookings", h.GetMyBookings)
}

// RegisterStaffRoutes mounts staff-only lifecycle endpoints.
func (h *Handler) RegisterStaffRoutes(rg *gin.RouterGroup) {
	rg.PATCH("/bookings/:id/confirm", h.ConfirmBooking)
	rg.PATCH("/bookings/:id/complete", h.CompleteBooking)
	rg.PATCH("/bookings/:id/payment", h.MarkBookingPaid)
	rg.GET("/rooms/:id/bookings", h.GetRoomCalendar)
}

func (h *Handler) CreateBooking(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	guestID := c.GetInt64("user_id")
	b, err := h.service.CreateBooking(c.Request.Context(), guestID, req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidRange):
			response.Error(c, http.StatusBadRequest, "INVALID_RANGE", "Check-in must precede check-out and not lie in the past")
		case errors.Is(err, ErrRoomNotFound):
			response.Error(c, http.StatusNotFound, "ROOM_NOT_FOUND", "Room not found")
		case errors.Is(err, ErrRoomUnavailable):
			response.Error(c, http.StatusConflict, "ROOM_UNAVAILABLE", "Room is not open for booking")
		case errors.Is(err, ErrBookingConflict):
			response.ErrorWithDetails(c, http.StatusConflict, "BOOKING_CONFLICT",
				"Room is already booked for the selected dates", gin.H{
					"room_id":   req.RoomID,
					"check_in":  req.CheckIn,
					"check_out": req.CheckOut,
				})
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create booking")
		}
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"booking": b})
}

func (h *Handler) GetBooking(c *gin.Context) {
	id, ok := bookingID(c)
	if !ok {
		return
	}

	b, err := h.service.GetBooking(c.Request.Context(), id,
		c.GetInt64("user_id"), domain.Role(c.GetString("role")))
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"booking": b})
}

func (h *Handler) CancelBooking(c *gin.Context) {
	id, ok := bookingID(c)
	if !ok {
		return
	}

	initiator := domain.InitiatorGuest
	if c.GetString("role") == string(domain.RoleStaff) {
		initiator = domain.InitiatorStaff
	}

	b, err := h.service.CancelBooking(c.Request.Context(), id, initiator, c.GetInt64("user_id"))
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"booking": b})
}

func (h *Handler) ConfirmBooking(c *gin.Context) {
	h.staffTransition(c, h.service.ConfirmBooking)
}

func (h *Handler) CompleteBooking(c *gin.Context) {
	h.staffTransition(c, h.service.CompleteBooking)
}

func (h *Handler) MarkBookingPaid(c *gin.Context) {
	h.staffTransition(c, h.service.MarkPaid)
}

func (h *Handler) GetMyBookings(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	bookings, err := h.service.ListGuestBookings(c.Request.Context(), c.GetInt64("user_id"), limit, offset)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load bookings")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"bookings": bookings})
}

func (h *Handler) GetRoomCalendar(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid room ID")
		return
	}

	bookings, err := h.service.RoomCalendar(c.Request.Context(), id)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load room calendar")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"bookings": bookings})
}

func (h *Handler) staffTransition(c *gin.Context, apply func(ctx context.Context, id int64) (*domain.Booking, error)) {
	id, ok := bookingID(c)
	if !ok {
		return
	}

	b, err := apply(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"booking": b})
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrBookingNotFound):
		response.Error(c, http.StatusNotFound, "BOOKING_NOT_FOUND", "Booking not found")
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "You do not own this booking")
	case errors.Is(err, domain.ErrInvalidTransition):
		response.Error(c, http.StatusConflict, "INVALID_TRANSITION", "Booking status does not allow this operation")
	case errors.Is(err, domain.ErrCancellationWindow):
		response.Error(c, http.StatusConflict, "CANCELLATION_WINDOW", "Bookings cannot be cancelled within 24 hours of check-in")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Operation failed")
	}
}

func bookingID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid booking ID")
		return 0, false
	}
	return id, true
}
