package availability

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

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/availability", h.Search)
}

// Search handles GET /availability?check_in=2025-06-01&check_out=2025-06-05
// with optional min_capacity and room_type filters.
func (h *Handler) Search(c *gin.Context) {
	checkIn, err := time.Parse(dateLayout, c.Query("check_in"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "check_in must be YYYY-MM-DD")
		return
	}
	checkOut, err := time.Parse(dateLayout, c.Query("check_out"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "check_out must be YYYY-MM-DD")
		return
	}

	rng, err := domain.NewDateRange(checkIn, checkOut)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidRange) {
			response.Error(c, http.StatusBadRequest, "INVALID_RANGE", "check_in must precede check_out")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Search failed")
		return
	}

	filters := SearchFilters{RoomType: domain.RoomType(c.Query("room_type"))}
	if v := c.Query("min_capacity"); v != "" {
		filters.MinCapacity, _ = strconv.Atoi(v)
	}

	rooms, err := h.service.FindAvailable(c.Request.Context(), rng, filters)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Search failed")
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"check_in":  rng.Start.Format(dateLayout),
		"check_out": rng.End.Format(dateLayout),
		"rooms":     rooms,
	})
}
