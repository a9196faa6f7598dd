package reservation

import "time"

type CreateBookingRequest struct {
	RoomID          int64     `json:"room_id" binding:"required"`
	CheckIn         time.Time `json:"check_in" binding:"required"`
	CheckOut        time.Time `json:"check_out" binding:"required"`
	Adults          int       `json:"adults" binding:"required,gt=0"`
	Children        int       `json:"children" binding:"gte=0"`
	SpecialRequests string    `json:"special_requests"`
}
