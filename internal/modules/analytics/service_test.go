package analytics

import (
	"context"
	"testing"
	"time"

	"hotelstay/internal/domain"
	"hotelstay/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockBookingReader struct {
	mock.Mock
}

func (m *MockBookingReader) ListOverlapping(ctx context.Context, rng domain.DateRange, statuses []domain.BookingStatus) ([]domain.Booking, error) {
	args := m.Called(ctx, rng, statuses)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingReader) RevenueForPeriod(ctx context.Context, start, end time.Time, statuses []domain.BookingStatus) (float64, error) {
	args := m.Called(ctx, start, end, statuses)
	return args.Get(0).(float64), args.Error(1)
}

func (m *MockBookingReader) PopularRooms(ctx context.Context, limit int, statuses []domain.BookingStatus) ([]repository.PopularRoomRow, error) {
	args := m.Called(ctx, limit, statuses)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.PopularRoomRow), args.Error(1)
}

type MockRoomCounter struct {
	mock.Mock
}

func (m *MockRoomCounter) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

var testNow = time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

func newTestService(bookings *MockBookingReader, rooms *MockRoomCounter) *Service {
	return NewService(bookings, rooms, nil).WithClock(func() time.Time { return testNow })
}

func TestOccupancyForDay_Boundaries(t *testing.T) {
	bookings := []domain.Booking{
		{RoomID: 1, Status: domain.BookingConfirmed, CheckIn: day(2025, 6, 1), CheckOut: day(2025, 6, 3)},
	}

	// occupies 06-01 and 06-02, not the checkout day
	assert.Equal(t, 1, OccupancyForDay(4, bookings, day(2025, 6, 1)).Occupied)
	assert.Equal(t, 1, OccupancyForDay(4, bookings, day(2025, 6, 2)).Occupied)
	assert.Equal(t, 0, OccupancyForDay(4, bookings, day(2025, 6, 3)).Occupied)
}

func TestOccupancyForDay_OnlyConfirmedCounts(t *testing.T) {
	bookings := []domain.Booking{
		{RoomID: 1, Status: domain.BookingConfirmed, CheckIn: day(2025, 6, 1), CheckOut: day(2025, 6, 5)},
		{RoomID: 2, Status: domain.BookingPending, CheckIn: day(2025, 6, 1), CheckOut: day(2025, 6, 5)},
		{RoomID: 3, Status: domain.BookingCancelled, CheckIn: day(2025, 6, 1), CheckOut: day(2025, 6, 5)},
	}

	d := OccupancyForDay(10, bookings, day(2025, 6, 2))
	assert.Equal(t, 1, d.Occupied)
	assert.Equal(t, 9, d.Available)
	assert.Equal(t, 10.0, d.Rate)
}

func TestOccupancyForDay_SameRoomCountedOnce(t *testing.T) {
	// back-to-back stays in one room on adjoining days must not double count
	bookings := []domain.Booking{
		{RoomID: 1, Status: domain.BookingConfirmed, CheckIn: day(2025, 6, 1), CheckOut: day(2025, 6, 2)},
		{RoomID: 1, Status: domain.BookingConfirmed, CheckIn: day(2025, 6, 2), CheckOut: day(2025, 6, 4)},
	}

	assert.Equal(t, 1, OccupancyForDay(2, bookings, day(2025, 6, 2)).Occupied)
}

func TestOccupancyForDay_FullHouseAndZeroRooms(t *testing.T) {
	bookings := []domain.Booking{
		{RoomID: 1, Status: domain.BookingConfirmed, CheckIn: day(2025, 6, 1), CheckOut: day(2025, 6, 3)},
		{RoomID: 2, Status: domain.BookingConfirmed, CheckIn: day(2025, 6, 1), CheckOut: day(2025, 6, 3)},
	}

	d := OccupancyForDay(2, bookings, day(2025, 6, 1))
	assert.Equal(t, 100.0, d.Rate)
	assert.Equal(t, 0, d.Available)

	// never divide by zero
	d = OccupancyForDay(0, bookings, day(2025, 6, 1))
	assert.Equal(t, 0.0, d.Rate)
}

func TestOccupancyForecast(t *testing.T) {
	mockBookings := new(MockBookingReader)
	mockRooms := new(MockRoomCounter)

	mockRooms.On("Count", mock.Anything).Return(int64(2), nil)
	mockBookings.On("ListOverlapping", mock.Anything,
		domain.DateRange{Start: day(2025, 6, 1), End: day(2025, 6, 4)},
		[]domain.BookingStatus{domain.BookingConfirmed},
	).Return([]domain.Booking{
		{RoomID: 1, Status: domain.BookingConfirmed, CheckIn: day(2025, 6, 1), CheckOut: day(2025, 6, 3)},
	}, nil)

	service := newTestService(mockBookings, mockRooms)

	forecast, err := service.OccupancyForecast(context.Background(), 3)
	assert.NoError(t, err)
	assert.Len(t, forecast, 3)

	assert.Equal(t, day(2025, 6, 1), forecast[0].Date)
	assert.Equal(t, 1, forecast[0].Occupied)
	assert.Equal(t, 50.0, forecast[0].Rate)
	assert.Equal(t, 1, forecast[1].Occupied)
	assert.Equal(t, 0, forecast[2].Occupied, "checkout day is free again")
}

func TestRevenueForPeriod_DefaultStatuses(t *testing.T) {
	mockBookings := new(MockBookingReader)

	mockBookings.On("RevenueForPeriod", mock.Anything, day(2025, 6, 1), day(2025, 6, 30),
		[]domain.BookingStatus{domain.BookingConfirmed, domain.BookingCompleted},
	).Return(42000.0, nil)

	service := newTestService(mockBookings, new(MockRoomCounter))

	report, err := service.RevenueForPeriod(context.Background(), day(2025, 6, 1), day(2025, 6, 30), nil)
	assert.NoError(t, err)
	assert.Equal(t, 42000.0, report.Revenue)
}

func TestRevenueForPeriod_InvalidPeriod(t *testing.T) {
	service := newTestService(new(MockBookingReader), new(MockRoomCounter))

	_, err := service.RevenueForPeriod(context.Background(), day(2025, 6, 30), day(2025, 6, 1), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidRange)
}

func TestPopularRooms(t *testing.T) {
	mockBookings := new(MockBookingReader)

	mockBookings.On("PopularRooms", mock.Anything, 2,
		[]domain.BookingStatus{domain.BookingConfirmed, domain.BookingCompleted},
	).Return([]repository.PopularRoomRow{
		{RoomID: 3, RoomNumber: "301", RoomType: "suite", BookingCount: 8, TotalRevenue: 96000},
		{RoomID: 1, RoomNumber: "101", RoomType: "standard", BookingCount: 8, TotalRevenue: 56000},
	}, nil)

	service := newTestService(mockBookings, new(MockRoomCounter))

	rooms, err := service.PopularRooms(context.Background(), 2)
	assert.NoError(t, err)
	assert.Len(t, rooms, 2)
	// equal counts ordered by revenue
	assert.Equal(t, int64(3), rooms[0].RoomID)
	assert.Equal(t, int64(1), rooms[1].RoomID)
}
