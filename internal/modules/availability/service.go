package availability

import (
	"context"

	"hotelstay/internal/domain"
	"hotelstay/internal/repository"
)

// RoomLister supplies the administratively-available rooms matching filters.
type RoomLister interface {
	List(ctx context.Context, filters repository.RoomFilters) ([]domain.Room, error)
}

// ConflictFinder supplies the rooms already holding an active booking that
// intersects a range.
type ConflictFinder interface {
	OverlappingRoomIDs(ctx context.Context, rng domain.DateRange) ([]int64, error)
}

type Service struct {
	rooms    RoomLister
	bookings ConflictFinder
}

func NewService(rooms RoomLister, bookings ConflictFinder) *Service {
	return &Service{rooms: rooms, bookings: bookings}
}

// SearchFilters narrows the candidate rooms before conflict exclusion.
type SearchFilters struct {
	MinCapacity int
	RoomType    domain.RoomType
}

// FindAvailable returns every administratively-available room matching the
// filters with no active booking intersecting rng. Two round trips: the
// candidate rooms and the conflicting room ids; the subtraction happens
// here. Pure read, safe to call concurrently.
func (s *Service) FindAvailable(ctx context.Context, rng domain.DateRange, filters SearchFilters) ([]domain.Room, error) {
	rooms, err := s.rooms.List(ctx, repository.RoomFilters{
		MinCapacity:   filters.MinCapacity,
		RoomType:      filters.RoomType,
		OnlyAvailable: true,
	})
	if err != nil {
		return nil, err
	}
	if len(rooms) == 0 {
		return []domain.Room{}, nil
	}

	conflictIDs, err := s.bookings.OverlappingRoomIDs(ctx, rng)
	if err != nil {
		return nil, err
	}

	conflicting := make(map[int64]bool, len(conflictIDs))
	for _, id := range conflictIDs {
		conflicting[id] = true
	}

	out := make([]domain.Room, 0, len(rooms))
	for _, r := range rooms {
		if !conflicting[r.ID] {
			out = append(out, r)
		}
	}
	return out, nil
}
