package catalog

import "hotelstay/internal/domain"

type CreateRoomRequest struct {
	Number        string          `json:"number" binding:"required"`
	Description   string          `json:"description"`
	Capacity      int             `json:"capacity" binding:"required,gt=0"`
	PricePerNight float64         `json:"price_per_night" binding:"required,gt=0"`
	RoomType      domain.RoomType `json:"room_type" binding:"required"`
	Amenities     []string        `json:"amenities"`
}

type UpdateRoomRequest struct {
	Number        *string          `json:"number"`
	Description   *string          `json:"description"`
	Capacity      *int             `json:"capacity"`
	PricePerNight *float64         `json:"price_per_night"`
	RoomType      *domain.RoomType `json:"room_type"`
	Amenities     []string         `json:"amenities"`
}

type SetAvailabilityRequest struct {
	IsAvailable *bool `json:"is_available" binding:"required"`
}
