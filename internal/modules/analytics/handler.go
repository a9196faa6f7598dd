package analytics

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"hotelstay/internal/domain"
	"hotelstay/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

const dateLayout = "2006-01-02"

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the reporting endpoints; all of them are staff-only
// and the caller wires the role middleware.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/analytics/occupancy", h.GetOccupancyForecast)
	rg.GET("/analytics/revenue", h.GetRevenue)
	rg.GET("/analytics/popular-rooms", h.GetPopularRooms)
}

func (h *Handler) GetOccupancyForecast(c *gin.Context) {
	days, _ := strconv.Atoi(c.DefaultQuery("days", "7"))

	forecast, err := h.service.OccupancyForecast(c.Request.Context(), days)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to compute occupancy forecast")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"forecast": forecast})
}

func (h *Handler) GetRevenue(c *gin.Context) {
	start, err := time.Parse(dateLayout, c.Query("start"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "start must be YYYY-MM-DD")
		return
	}
	end, err := time.Parse(dateLayout, c.Query("end"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "end must be YYYY-MM-DD")
		return
	}

	report, err := h.service.RevenueForPeriod(c.Request.Context(), start, end, nil)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidRange) {
			response.Error(c, http.StatusBadRequest, "INVALID_RANGE", "start must not be after end")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to compute revenue")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"revenue": report})
}

func (h *Handler) GetPopularRooms(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	rooms, err := h.service.PopularRooms(c.Request.Context(), limit)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to rank rooms")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"rooms": rooms})
}
