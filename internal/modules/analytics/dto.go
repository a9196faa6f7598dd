package analytics

import "time"

// DayOccupancy is one calendar day of the occupancy report.
type DayOccupancy struct {
	Date      time.Time `json:"date"`
	Occupied  int       `json:"occupied"`
	Available int       `json:"available"`
	Rate      float64   `json:"rate"`
}

// RoomRanking is one row of the popular-rooms report.
type RoomRanking struct {
	RoomID       int64   `json:"room_id"`
	RoomNumber   string  `json:"room_number"`
	RoomType     string  `json:"room_type"`
	BookingCount int64   `json:"booking_count"`
	TotalRevenue float64 `json:"total_revenue"`
}

type RevenueReport struct {
	Start   time.Time `json:"start"`
	End     time.Time `json:"end"`
	Revenue float64   `json:"revenue"`
}
