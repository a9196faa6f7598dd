package domain

import (
	"time"

	"gorm.io/datatypes"
)

type RoomType string

const (
	RoomStandard RoomType = "standard"
	RoomDeluxe   RoomType = "deluxe"
	RoomSuite    RoomType = "suite"
	RoomFamily   RoomType = "family"
)

// Room is a bookable hotel room. IsAvailable is the administrative flag
// toggled by staff; it is independent of booking-derived availability.
type Room struct {
	ID            int64          `json:"id"`
	Number        string         `json:"number" validate:"required"`
	Description   string         `json:"description,omitempty" gorm:"type:text"`
	Capacity      int            `json:"capacity" validate:"required,gt=0"`
	PricePerNight float64        `json:"price_per_night" validate:"required,gt=0"`
	RoomType      RoomType       `json:"room_type" validate:"required,oneof=standard deluxe suite family"`
	Amenities     datatypes.JSON `json:"amenities,omitempty"`
	IsAvailable   bool           `json:"is_available"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}
