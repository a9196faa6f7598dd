package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"hotelstay/internal/domain"
	"hotelstay/internal/pkg/validator"
	"hotelstay/internal/repository"

	"gorm.io/gorm"
)

type RoomRepository interface {
	Create(ctx context.Context, room *domain.Room) error
	GetByID(ctx context.Context, id int64) (*domain.Room, error)
	List(ctx context.Context, filters repository.RoomFilters) ([]domain.Room, error)
	Update(ctx context.Context, room *domain.Room) error
	SetAvailability(ctx context.Context, id int64, available bool) error
	Delete(ctx context.Context, id int64) error
}

// BookingGuard answers whether a room still holds live reservations.
type BookingGuard interface {
	HasActiveForRoom(ctx context.Context, roomID int64, after time.Time) (bool, error)
}

type Service struct {
	rooms    RoomRepository
	bookings BookingGuard

	now func() time.Time
}

func NewService(rooms RoomRepository, bookings BookingGuard) *Service {
	return &Service{rooms: rooms, bookings: bookings, now: time.Now}
}

// WithClock overrides the service clock. Tests only.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

func (s *Service) CreateRoom(ctx context.Context, req CreateRoomRequest) (*domain.Room, error) {
	amenities, err := json.Marshal(req.Amenities)
	if err != nil {
		return nil, err
	}

	room := &domain.Room{
		Number:        req.Number,
		Description:   req.Description,
		Capacity:      req.Capacity,
		PricePerNight: req.PricePerNight,
		RoomType:      req.RoomType,
		Amenities:     amenities,
		IsAvailable:   true,
	}

	if errs := validator.Validate(room); errs != nil {
		return nil, ErrValidation
	}

	if err := s.rooms.Create(ctx, room); err != nil {
		return nil, err
	}
	return room, nil
}

func (s *Service) GetRoom(ctx context.Context, id int64) (*domain.Room, error) {
	room, err := s.rooms.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	return room, nil
}

func (s *Service) ListRooms(ctx context.Context, filters repository.RoomFilters) ([]domain.Room, error) {
	return s.rooms.List(ctx, filters)
}

func (s *Service) UpdateRoom(ctx context.Context, id int64, req UpdateRoomRequest) (*domain.Room, error) {
	room, err := s.GetRoom(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Number != nil {
		room.Number = *req.Number
	}
	if req.Description != nil {
		room.Description = *req.Description
	}
	if req.Capacity != nil {
		room.Capacity = *req.Capacity
	}
	if req.PricePerNight != nil {
		room.PricePerNight = *req.PricePerNight
	}
	if req.RoomType != nil {
		room.RoomType = *req.RoomType
	}
	if req.Amenities != nil {
		amenities, err := json.Marshal(req.Amenities)
		if err != nil {
			return nil, err
		}
		room.Amenities = amenities
	}

	if errs := validator.Validate(room); errs != nil {
		return nil, ErrValidation
	}

	if err := s.rooms.Update(ctx, room); err != nil {
		return nil, err
	}
	return room, nil
}

func (s *Service) SetRoomAvailability(ctx context.Context, id int64, available bool) (*domain.Room, error) {
	if err := s.rooms.SetAvailability(ctx, id, available); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	return s.GetRoom(ctx, id)
}

// DeleteRoom refuses to remove a room while any pending or confirmed
// booking on it still checks out in the future — guests with live
// reservations keep their room.
func (s *Service) DeleteRoom(ctx context.Context, id int64) error {
	if _, err := s.GetRoom(ctx, id); err != nil {
		return err
	}

	live, err := s.bookings.HasActiveForRoom(ctx, id, s.now())
	if err != nil {
		return err
	}
	if live {
		return ErrRoomHasActiveBookings
	}

	if err := s.rooms.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRoomNotFound
		}
		return err
	}
	return nil
}
