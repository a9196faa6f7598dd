package repository

import (
	"context"

	"hotelstay/internal/domain"

	"gorm.io/gorm"
)

type RoomRepository struct {
	db *gorm.DB
}

func NewRoomRepository(db *gorm.DB) *RoomRepository {
	return &RoomRepository{db: db}
}

// RoomFilters narrows listings; zero values mean "no filter".
type RoomFilters struct {
	MinCapacity   int
	RoomType      domain.RoomType
	OnlyAvailable bool
}

func (r *RoomRepository) Create(ctx context.Context, room *domain.Room) error {
	return r.db.WithContext(ctx).Create(room).Error
}

func (r *RoomRepository) GetByID(ctx context.Context, id int64) (*domain.Room, error) {
	var room domain.Room
	tx := r.db.WithContext(ctx).First(&room, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &room, nil
}

func (r *RoomRepository) List(ctx context.Context, filters RoomFilters) ([]domain.Room, error) {
	q := r.db.WithContext(ctx).Model(&domain.Room{})
	if filters.MinCapacity > 0 {
		q = q.Where("capacity >= ?", filters.MinCapacity)
	}
	if filters.RoomType != "" {
		q = q.Where("room_type = ?", filters.RoomType)
	}
	if filters.OnlyAvailable {
		q = q.Where("is_available = ?", true)
	}

	var rooms []domain.Room
	if err := q.Order("number ASC").Find(&rooms).Error; err != nil {
		return nil, err
	}
	return rooms, nil
}

func (r *RoomRepository) Count(ctx context.Context) (int64, error) {
	var cnt int64
	err := r.db.WithContext(ctx).Model(&domain.Room{}).Count(&cnt).Error
	return cnt, err
}

func (r *RoomRepository) Update(ctx context.Context, room *domain.Room) error {
	tx := r.db.WithContext(ctx).Save(room)
	return tx.Error
}

func (r *RoomRepository) SetAvailability(ctx context.Context, id int64, available bool) error {
	tx := r.db.WithContext(ctx).
		Model(&domain.Room{}).
		Where("id = ?", id).
		Update("is_available", available)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *RoomRepository) Delete(ctx context.Context, id int64) error {
	tx := r.db.WithContext(ctx).Delete(&domain.Room{}, id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
