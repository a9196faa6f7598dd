package reservation

import (
	"context"
	"testing"
	"time"

	"hotelstay/internal/domain"
	"hotelstay/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	args := m.Called(ctx, b)
	if b != nil && args.Error(0) == nil {
		b.ID = 999 // simulate DB insert
	}
	return args.Error(0)
}

func (m *MockBookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) CountOverlapping(ctx context.Context, roomID int64, rng domain.DateRange, excludeID int64) (int64, error) {
	args := m.Called(ctx, roomID, rng, excludeID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBookingRepository) UpdateStatus(ctx context.Context, id int64, from, to domain.BookingStatus, cancelledAt *time.Time) error {
	args := m.Called(ctx, id, from, to, cancelledAt)
	return args.Error(0)
}

func (m *MockBookingRepository) UpdatePaymentStatus(ctx context.Context, id int64, status domain.PaymentStatus) (*domain.Booking, error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) ListByGuest(ctx context.Context, guestID int64, limit, offset int) ([]domain.Booking, error) {
	args := m.Called(ctx, guestID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) ListActiveByRoom(ctx context.Context, roomID int64, from time.Time) ([]domain.Booking, error) {
	args := m.Called(ctx, roomID, from)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

type MockRoomRepository struct {
	mock.Mock
}

func (m *MockRoomRepository) GetByID(ctx context.Context, id int64) (*domain.Room, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Room), args.Error(1)
}

type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) PublishBookingEvent(ctx context.Context, ev domain.BookingEvent) error {
	args := m.Called(ctx, ev)
	return args.Error(0)
}

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func newTestService(bookings *MockBookingRepository, rooms *MockRoomRepository, events *MockEventPublisher) *Service {
	var pub EventPublisher
	if events != nil {
		pub = events
	}
	return NewService(bookings, rooms, pub).WithClock(func() time.Time { return testNow })
}

func availableRoom() *domain.Room {
	return &domain.Room{
		ID:            10,
		Number:        "101",
		Capacity:      2,
		PricePerNight: 3500,
		RoomType:      domain.RoomStandard,
		IsAvailable:   true,
	}
}

func TestService_CreateBooking_Success(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockRooms := new(MockRoomRepository)
	mockEvents := new(MockEventPublisher)

	mockRooms.On("GetByID", mock.Anything, int64(10)).Return(availableRoom(), nil)
	mockBookings.On("CountOverlapping", mock.Anything, int64(10), mock.Anything, int64(0)).Return(int64(0), nil)
	mockBookings.On("Create", mock.Anything, mock.Anything).Return(nil)
	mockEvents.On("PublishBookingEvent", mock.Anything, mock.Anything).Return(nil)

	service := newTestService(mockBookings, mockRooms, mockEvents)

	b, err := service.CreateBooking(context.Background(), 42, CreateBookingRequest{
		RoomID:   10,
		CheckIn:  time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
		CheckOut: time.Date(2025, 7, 4, 0, 0, 0, 0, time.UTC),
		Adults:   2,
	})

	assert.NoError(t, err)
	assert.NotNil(t, b)
	assert.Equal(t, 10500.0, b.TotalPrice)
	assert.Equal(t, domain.BookingPending, b.Status)
	assert.Equal(t, domain.PaymentUnpaid, b.PaymentStatus)
	assert.Equal(t, int64(42), b.GuestID)
	assert.NotEmpty(t, b.Reference)
	mockEvents.AssertCalled(t, "PublishBookingEvent", mock.Anything, mock.Anything)
}

func TestService_CreateBooking_InvalidRange(t *testing.T) {
	service := newTestService(new(MockBookingRepository), new(MockRoomRepository), nil)

	_, err := service.CreateBooking(context.Background(), 42, CreateBookingRequest{
		RoomID:   10,
		CheckIn:  time.Date(2025, 7, 4, 0, 0, 0, 0, time.UTC),
		CheckOut: time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
		Adults:   1,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidRange)
}

func TestService_CreateBooking_PastCheckIn(t *testing.T) {
	service := newTestService(new(MockBookingRepository), new(MockRoomRepository), nil)

	_, err := service.CreateBooking(context.Background(), 42, CreateBookingRequest{
		RoomID:   10,
		CheckIn:  testNow.AddDate(0, 0, -2),
		CheckOut: testNow.AddDate(0, 0, 2),
		Adults:   1,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidRange)
}

func TestService_CreateBooking_RoomNotFound(t *testing.T) {
	mockRooms := new(MockRoomRepository)
	mockRooms.On("GetByID", mock.Anything, int64(77)).Return(nil, gorm.ErrRecordNotFound)

	service := newTestService(new(MockBookingRepository), mockRooms, nil)

	_, err := service.CreateBooking(context.Background(), 42, CreateBookingRequest{
		RoomID:   77,
		CheckIn:  time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
		CheckOut: time.Date(2025, 7, 2, 0, 0, 0, 0, time.UTC),
		Adults:   1,
	})
	assert.ErrorIs(t, err, ErrRoomNotFound)
}

func TestService_CreateBooking_RoomAdministrativelyDisabled(t *testing.T) {
	room := availableRoom()
	room.IsAvailable = false

	mockRooms := new(MockRoomRepository)
	mockRooms.On("GetByID", mock.Anything, int64(10)).Return(room, nil)

	service := newTestService(new(MockBookingRepository), mockRooms, nil)

	_, err := service.CreateBooking(context.Background(), 42, CreateBookingRequest{
		RoomID:   10,
		CheckIn:  time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
		CheckOut: time.Date(2025, 7, 2, 0, 0, 0, 0, time.UTC),
		Adults:   1,
	})
	assert.ErrorIs(t, err, ErrRoomUnavailable)
}

func TestService_CreateBooking_ConflictOnPrecheck(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockRooms := new(MockRoomRepository)

	mockRooms.On("GetByID", mock.Anything, int64(10)).Return(availableRoom(), nil)
	mockBookings.On("CountOverlapping", mock.Anything, int64(10), mock.Anything, int64(0)).Return(int64(1), nil)

	service := newTestService(mockBookings, mockRooms, nil)

	_, err := service.CreateBooking(context.Background(), 42, CreateBookingRequest{
		RoomID:   10,
		CheckIn:  time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
		CheckOut: time.Date(2025, 7, 4, 0, 0, 0, 0, time.UTC),
		Adults:   1,
	})
	assert.ErrorIs(t, err, ErrBookingConflict)
	mockBookings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestService_CreateBooking_ConflictAtInsert(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockRooms := new(MockRoomRepository)

	mockRooms.On("GetByID", mock.Anything, int64(10)).Return(availableRoom(), nil)
	// the pre-check saw nothing, but a concurrent create won the insert
	mockBookings.On("CountOverlapping", mock.Anything, int64(10), mock.Anything, int64(0)).Return(int64(0), nil)
	mockBookings.On("Create", mock.Anything, mock.Anything).Return(repository.ErrOverlappingBooking)

	service := newTestService(mockBookings, mockRooms, nil)

	_, err := service.CreateBooking(context.Background(), 42, CreateBookingRequest{
		RoomID:   10,
		CheckIn:  time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
		CheckOut: time.Date(2025, 7, 4, 0, 0, 0, 0, time.UTC),
		Adults:   1,
	})
	assert.ErrorIs(t, err, ErrBookingConflict)
}

func TestService_CancelBooking_GuestOutsideWindow(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockEvents := new(MockEventPublisher)

	booking := &domain.Booking{
		ID:      5,
		GuestID: 42,
		RoomID:  10,
		CheckIn: testNow.Add(72 * time.Hour),
		Status:  domain.BookingConfirmed,
	}
	mockBookings.On("GetByID", mock.Anything, int64(5)).Return(booking, nil)
	mockBookings.On("UpdateStatus", mock.Anything, int64(5), domain.BookingConfirmed, domain.BookingCancelled, mock.Anything).Return(nil)
	mockEvents.On("PublishBookingEvent", mock.Anything, mock.Anything).Return(nil)

	service := newTestService(mockBookings, new(MockRoomRepository), mockEvents)

	b, err := service.CancelBooking(context.Background(), 5, domain.InitiatorGuest, 42)
	assert.NoError(t, err)
	assert.Equal(t, domain.BookingCancelled, b.Status)
	assert.NotNil(t, b.CancelledAt)
}

func TestService_CancelBooking_GuestInsideWindow(t *testing.T) {
	mockBookings := new(MockBookingRepository)

	booking := &domain.Booking{
		ID:      5,
		GuestID: 42,
		CheckIn: testNow.Add(23 * time.Hour),
		Status:  domain.BookingConfirmed,
	}
	mockBookings.On("GetByID", mock.Anything, int64(5)).Return(booking, nil)

	service := newTestService(mockBookings, new(MockRoomRepository), nil)

	_, err := service.CancelBooking(context.Background(), 5, domain.InitiatorGuest, 42)
	assert.ErrorIs(t, err, domain.ErrCancellationWindow)
	mockBookings.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestService_CancelBooking_StaffInsideWindow(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockEvents := new(MockEventPublisher)

	booking := &domain.Booking{
		ID:      5,
		GuestID: 42,
		CheckIn: testNow.Add(2 * time.Hour),
		Status:  domain.BookingPending,
	}
	mockBookings.On("GetByID", mock.Anything, int64(5)).Return(booking, nil)
	mockBookings.On("UpdateStatus", mock.Anything, int64(5), domain.BookingPending, domain.BookingCancelled, mock.Anything).Return(nil)
	mockEvents.On("PublishBookingEvent", mock.Anything, mock.Anything).Return(nil)

	service := newTestService(mockBookings, new(MockRoomRepository), mockEvents)

	b, err := service.CancelBooking(context.Background(), 5, domain.InitiatorStaff, 1)
	assert.NoError(t, err)
	assert.Equal(t, domain.BookingCancelled, b.Status)
}

func TestService_CancelBooking_NotOwner(t *testing.T) {
	mockBookings := new(MockBookingRepository)

	booking := &domain.Booking{ID: 5, GuestID: 42, CheckIn: testNow.Add(72 * time.Hour), Status: domain.BookingPending}
	mockBookings.On("GetByID", mock.Anything, int64(5)).Return(booking, nil)

	service := newTestService(mockBookings, new(MockRoomRepository), nil)

	_, err := service.CancelBooking(context.Background(), 5, domain.InitiatorGuest, 99)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestService_ConfirmBooking_Success(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockEvents := new(MockEventPublisher)

	booking := &domain.Booking{ID: 7, GuestID: 42, Status: domain.BookingPending}
	mockBookings.On("GetByID", mock.Anything, int64(7)).Return(booking, nil)
	mockBookings.On("UpdateStatus", mock.Anything, int64(7), domain.BookingPending, domain.BookingConfirmed, mock.Anything).Return(nil)
	mockEvents.On("PublishBookingEvent", mock.Anything, mock.Anything).Return(nil)

	service := newTestService(mockBookings, new(MockRoomRepository), mockEvents)

	b, err := service.ConfirmBooking(context.Background(), 7)
	assert.NoError(t, err)
	assert.Equal(t, domain.BookingConfirmed, b.Status)
}

func TestService_ConfirmBooking_IllegalFromCancelled(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockBookings.On("GetByID", mock.Anything, int64(7)).Return(&domain.Booking{ID: 7, Status: domain.BookingCancelled}, nil)

	service := newTestService(mockBookings, new(MockRoomRepository), nil)

	_, err := service.ConfirmBooking(context.Background(), 7)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestService_ConfirmBooking_LostStatusRace(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockBookings.On("GetByID", mock.Anything, int64(7)).Return(&domain.Booking{ID: 7, Status: domain.BookingPending}, nil)
	mockBookings.On("UpdateStatus", mock.Anything, int64(7), domain.BookingPending, domain.BookingConfirmed, mock.Anything).
		Return(repository.ErrStatusChanged)

	service := newTestService(mockBookings, new(MockRoomRepository), nil)

	_, err := service.ConfirmBooking(context.Background(), 7)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestService_CompleteBooking_RequiresConfirmed(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockBookings.On("GetByID", mock.Anything, int64(7)).Return(&domain.Booking{ID: 7, Status: domain.BookingPending}, nil)

	service := newTestService(mockBookings, new(MockRoomRepository), nil)

	_, err := service.CompleteBooking(context.Background(), 7)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestService_MarkPaid_NotFound(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockBookings.On("UpdatePaymentStatus", mock.Anything, int64(404), domain.PaymentPaid).Return(nil, gorm.ErrRecordNotFound)

	service := newTestService(mockBookings, new(MockRoomRepository), nil)

	_, err := service.MarkPaid(context.Background(), 404)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestService_GetBooking_Ownership(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockBookings.On("GetByID", mock.Anything, int64(5)).Return(&domain.Booking{ID: 5, GuestID: 42}, nil)

	service := newTestService(mockBookings, new(MockRoomRepository), nil)

	_, err := service.GetBooking(context.Background(), 5, 42, domain.RoleGuest)
	assert.NoError(t, err)

	_, err = service.GetBooking(context.Background(), 5, 99, domain.RoleGuest)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = service.GetBooking(context.Background(), 5, 99, domain.RoleStaff)
	assert.NoError(t, err)
}
