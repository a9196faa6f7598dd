package analytics

import (
	"context"
	"fmt"
	"math"
	"time"

	"hotelstay/internal/domain"
	"hotelstay/internal/repository"
)

// BookingReader is the read-only slice of the booking store the reports
// need. Reads are not transactionally consistent with in-flight writes;
// the latest committed snapshot is enough for reporting.
type BookingReader interface {
	ListOverlapping(ctx context.Context, rng domain.DateRange, statuses []domain.BookingStatus) ([]domain.Booking, error)
	RevenueForPeriod(ctx context.Context, start, end time.Time, statuses []domain.BookingStatus) (float64, error)
	PopularRooms(ctx context.Context, limit int, statuses []domain.BookingStatus) ([]repository.PopularRoomRow, error)
}

type RoomCounter interface {
	Count(ctx context.Context) (int64, error)
}

type Service struct {
	bookings BookingReader
	rooms    RoomCounter
	cache    *Cache

	now func() time.Time
}

func NewService(bookings BookingReader, rooms RoomCounter, cache *Cache) *Service {
	return &Service{
		bookings: bookings,
		rooms:    rooms,
		cache:    cache,
		now:      time.Now,
	}
}

// WithClock overrides the service clock. Tests only.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// revenueStatuses is the default status set for revenue and popularity
// reports: bookings that produced or will produce money.
var revenueStatuses = []domain.BookingStatus{domain.BookingConfirmed, domain.BookingCompleted}

// OccupancyForDay computes one day of occupancy from an in-memory booking
// set. Only confirmed bookings hold a room for forecasting purposes, and a
// booking occupies check-in day through the day before check-out. Exported
// so every report shares one definition of "occupied".
func OccupancyForDay(roomsTotal int, bookings []domain.Booking, day time.Time) DayOccupancy {
	occupiedRooms := make(map[int64]bool)
	for _, b := range bookings {
		if b.Status != domain.BookingConfirmed {
			continue
		}
		if b.Range().ContainsDay(day) {
			occupiedRooms[b.RoomID] = true
		}
	}

	occupied := len(occupiedRooms)
	available := roomsTotal - occupied
	if available < 0 {
		available = 0
	}

	var rate float64
	if roomsTotal > 0 {
		rate = math.Round(float64(occupied)/float64(roomsTotal)*100*100) / 100
	}

	return DayOccupancy{
		Date:      domain.Day(day),
		Occupied:  occupied,
		Available: available,
		Rate:      rate,
	}
}

// OccupancyForecast reports occupancy for each of the next `days` days
// starting today. One window query feeds every day's computation.
func (s *Service) OccupancyForecast(ctx context.Context, days int) ([]DayOccupancy, error) {
	if days <= 0 || days > 365 {
		days = 7
	}

	today := domain.Day(s.now())
	key := fmt.Sprintf("analytics:forecast:%s:%d", today.Format("2006-01-02"), days)

	var cached []DayOccupancy
	if s.cache.Get(ctx, key, &cached) {
		return cached, nil
	}

	total, err := s.rooms.Count(ctx)
	if err != nil {
		return nil, err
	}

	window := domain.DateRange{Start: today, End: today.AddDate(0, 0, days)}
	bookings, err := s.bookings.ListOverlapping(ctx, window, []domain.BookingStatus{domain.BookingConfirmed})
	if err != nil {
		return nil, err
	}

	out := make([]DayOccupancy, 0, days)
	for i := 0; i < days; i++ {
		out = append(out, OccupancyForDay(int(total), bookings, today.AddDate(0, 0, i)))
	}

	s.cache.Set(ctx, key, out)
	return out, nil
}

// RevenueForPeriod sums booking revenue touching [start, end]. An empty
// status list defaults to confirmed+completed.
func (s *Service) RevenueForPeriod(ctx context.Context, start, end time.Time, statuses []domain.BookingStatus) (*RevenueReport, error) {
	start, end = domain.Day(start), domain.Day(end)
	if end.Before(start) {
		return nil, domain.ErrInvalidRange
	}
	if len(statuses) == 0 {
		statuses = revenueStatuses
	}

	revenue, err := s.bookings.RevenueForPeriod(ctx, start, end, statuses)
	if err != nil {
		return nil, err
	}

	return &RevenueReport{Start: start, End: end, Revenue: revenue}, nil
}

// PopularRooms ranks rooms by booking count (revenue breaks ties) over
// confirmed+completed bookings.
func (s *Service) PopularRooms(ctx context.Context, limit int) ([]RoomRanking, error) {
	if limit <= 0 || limit > 50 {
		limit = 10
	}

	key := fmt.Sprintf("analytics:popular:%d", limit)
	var cached []RoomRanking
	if s.cache.Get(ctx, key, &cached) {
		return cached, nil
	}

	rows, err := s.bookings.PopularRooms(ctx, limit, revenueStatuses)
	if err != nil {
		return nil, err
	}

	out := make([]RoomRanking, 0, len(rows))
	for _, r := range rows {
		out = append(out, RoomRanking{
			RoomID:       r.RoomID,
			RoomNumber:   r.RoomNumber,
			RoomType:     r.RoomType,
			BookingCount: r.BookingCount,
			TotalRevenue: r.TotalRevenue,
		})
	}

	s.cache.Set(ctx, key, out)
	return out, nil
}
