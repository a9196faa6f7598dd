package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"hotelstay/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrOverlappingBooking = errors.New("overlapping booking exists")
	// ErrStatusChanged means the row's status no longer matched the
	// expected one when a transition was applied (lost the race).
	ErrStatusChanged = errors.New("booking status changed concurrently")
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

type bookingModel struct {
	ID              int64      `gorm:"column:id;primaryKey"`
	Reference       string     `gorm:"column:reference;uniqueIndex"`
	RoomID          int64      `gorm:"column:room_id;index"`
	GuestID         int64      `gorm:"column:guest_id;index"`
	CheckIn         time.Time  `gorm:"column:check_in"`
	CheckOut        time.Time  `gorm:"column:check_out"`
	Adults          int        `gorm:"column:adults"`
	Children        int        `gorm:"column:children"`
	TotalPrice      float64    `gorm:"column:total_price"`
	SpecialRequests *string    `gorm:"column:special_requests"`
	Status          string     `gorm:"column:status;index"`
	PaymentStatus   string     `gorm:"column:payment_status"`
	CreatedAt       time.Time  `gorm:"column:created_at"`
	UpdatedAt       time.Time  `gorm:"column:updated_at"`
	CancelledAt     *time.Time `gorm:"column:cancelled_at"`
}

func (bookingModel) TableName() string { return "bookings" }

func toDomainBooking(m bookingModel) *domain.Booking {
	var requests string
	if m.SpecialRequests != nil {
		requests = *m.SpecialRequests
	}

	return &domain.Booking{
		ID:              m.ID,
		Reference:       m.Reference,
		RoomID:          m.RoomID,
		GuestID:         m.GuestID,
		CheckIn:         m.CheckIn,
		CheckOut:        m.CheckOut,
		Adults:          m.Adults,
		Children:        m.Children,
		TotalPrice:      m.TotalPrice,
		SpecialRequests: requests,
		Status:          domain.BookingStatus(m.Status),
		PaymentStatus:   domain.PaymentStatus(m.PaymentStatus),
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
		CancelledAt:     m.CancelledAt,
	}
}

func toBookingModel(b *domain.Booking) bookingModel {
	var requests *string
	if b.SpecialRequests != "" {
		v := b.SpecialRequests
		requests = &v
	}

	return bookingModel{
		ID:              b.ID,
		Reference:       b.Reference,
		RoomID:          b.RoomID,
		GuestID:         b.GuestID,
		CheckIn:         b.CheckIn,
		CheckOut:        b.CheckOut,
		Adults:          b.Adults,
		Children:        b.Children,
		TotalPrice:      b.TotalPrice,
		SpecialRequests: requests,
		Status:          string(b.Status),
		PaymentStatus:   string(b.PaymentStatus),
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
		CancelledAt:     b.CancelledAt,
	}
}

func activeStatusStrings() []string {
	out := make([]string, 0, len(domain.ActiveStatuses))
	for _, s := range domain.ActiveStatuses {
		out = append(out, string(s))
	}
	return out
}

// overlapCondition is the portable half-open interval intersection:
// [check_in, check_out) && [start, end) iff check_in < end AND start < check_out.
func overlapCondition(q *gorm.DB, rng domain.DateRange) *gorm.DB {
	return q.Where("check_in < ? AND ? < check_out", rng.End, rng.Start)
}

// createBusyRetries bounds how often a create retries sqlite lock
// contention before giving up.
const createBusyRetries = 10

// isBusy reports sqlite's transient write-lock contention. Postgres
// serializes concurrent creates on the room row lock and never returns it.
func isBusy(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "SQLITE_BUSY") || strings.Contains(msg, "database is locked")
}

// Create inserts the booking only if no active booking overlaps its range.
// Check and insert run in one transaction; on Postgres the room row is
// locked for the duration so concurrent creates for the same room
// serialize, and the bookings_no_overlap constraint backstops the check.
// On sqlite the losing writers of a concurrent create hit SQLITE_BUSY;
// the whole transaction is retried so they re-run the overlap check and
// come back as ErrOverlappingBooking, not an infrastructure failure.
func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	var m bookingModel

	for attempt := 0; ; attempt++ {
		m = toBookingModel(b)

		err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if tx.Dialector.Name() == "postgres" {
				var roomID int64
				lock := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
					Table("rooms").
					Select("id").
					Where("id = ?", m.RoomID).
					Scan(&roomID)
				if lock.Error != nil {
					return lock.Error
				}
			}

			var cnt int64
			q := overlapCondition(
				tx.Model(&bookingModel{}).
					Where("room_id = ?", m.RoomID).
					Where("status IN ?", activeStatusStrings()),
				domain.DateRange{Start: m.CheckIn, End: m.CheckOut},
			)
			if err := q.Count(&cnt).Error; err != nil {
				return err
			}
			if cnt > 0 {
				return ErrOverlappingBooking
			}

			return tx.Create(&m).Error
		})
		if err == nil {
			break
		}
		if isBusy(err) && attempt < createBusyRetries {
			time.Sleep(time.Duration(attempt+1) * 5 * time.Millisecond)
			continue
		}
		return err
	}

	*b = *toDomainBooking(m)
	return nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	var m bookingModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainBooking(m), nil
}

// CountOverlapping counts active bookings for roomID whose interval
// intersects rng. excludeID lets transition code re-validate a booking
// without flagging it against itself; 0 means no exclusion.
func (r *BookingRepository) CountOverlapping(ctx context.Context, roomID int64, rng domain.DateRange, excludeID int64) (int64, error) {
	q := overlapCondition(
		r.db.WithContext(ctx).
			Model(&bookingModel{}).
			Where("room_id = ?", roomID).
			Where("status IN ?", activeStatusStrings()),
		rng,
	)
	if excludeID > 0 {
		q = q.Where("id <> ?", excludeID)
	}

	var cnt int64
	if err := q.Count(&cnt).Error; err != nil {
		return 0, err
	}
	return cnt, nil
}

// OverlappingRoomIDs returns the distinct rooms holding an active booking
// that intersects rng.
func (r *BookingRepository) OverlappingRoomIDs(ctx context.Context, rng domain.DateRange) ([]int64, error) {
	var ids []int64
	q := overlapCondition(
		r.db.WithContext(ctx).
			Model(&bookingModel{}).
			Where("status IN ?", activeStatusStrings()),
		rng,
	).Distinct("room_id")
	if err := q.Pluck("room_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

// UpdateStatus applies a lifecycle transition with compare-and-swap on the
// current status, so concurrent transitions on the same booking cannot
// both win.
func (r *BookingRepository) UpdateStatus(ctx context.Context, id int64, from, to domain.BookingStatus, cancelledAt *time.Time) error {
	updates := map[string]interface{}{
		"status":     string(to),
		"updated_at": time.Now().UTC(),
	}
	if cancelledAt != nil {
		updates["cancelled_at"] = *cancelledAt
	}

	tx := r.db.WithContext(ctx).
		Model(&bookingModel{}).
		Where("id = ? AND status = ?", id, string(from)).
		Updates(updates)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrStatusChanged
	}
	return nil
}

func (r *BookingRepository) UpdatePaymentStatus(ctx context.Context, id int64, status domain.PaymentStatus) (*domain.Booking, error) {
	tx := r.db.WithContext(ctx).
		Model(&bookingModel{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"payment_status": string(status),
			"updated_at":     time.Now().UTC(),
		})
	if tx.Error != nil {
		return nil, tx.Error
	}
	if tx.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *BookingRepository) ListByGuest(ctx context.Context, guestID int64, limit, offset int) ([]domain.Booking, error) {
	var models []bookingModel
	tx := r.db.WithContext(ctx).
		Where("guest_id = ?", guestID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&models)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.Booking, 0, len(models))
	for _, m := range models {
		out = append(out, *toDomainBooking(m))
	}
	return out, nil
}

// ListActiveByRoom returns the room's active bookings ending after `from`,
// ordered by check-in. Front-desk busy calendar.
func (r *BookingRepository) ListActiveByRoom(ctx context.Context, roomID int64, from time.Time) ([]domain.Booking, error) {
	var models []bookingModel
	tx := r.db.WithContext(ctx).
		Where("room_id = ?", roomID).
		Where("status IN ?", activeStatusStrings()).
		Where("check_out > ?", from).
		Order("check_in ASC").
		Find(&models)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.Booking, 0, len(models))
	for _, m := range models {
		out = append(out, *toDomainBooking(m))
	}
	return out, nil
}

// HasActiveForRoom reports whether any active booking on the room is still
// live (checks out after `after`). Guards room deletion.
func (r *BookingRepository) HasActiveForRoom(ctx context.Context, roomID int64, after time.Time) (bool, error) {
	var cnt int64
	tx := r.db.WithContext(ctx).
		Model(&bookingModel{}).
		Where("room_id = ?", roomID).
		Where("status IN ?", activeStatusStrings()).
		Where("check_out > ?", after).
		Count(&cnt)
	if tx.Error != nil {
		return false, tx.Error
	}
	return cnt > 0, nil
}

// ListOverlapping returns bookings in the given statuses whose interval
// intersects rng. Analytics reads the window in one round trip and does
// day bucketing in memory.
func (r *BookingRepository) ListOverlapping(ctx context.Context, rng domain.DateRange, statuses []domain.BookingStatus) ([]domain.Booking, error) {
	ss := make([]string, 0, len(statuses))
	for _, s := range statuses {
		ss = append(ss, string(s))
	}

	var models []bookingModel
	q := overlapCondition(
		r.db.WithContext(ctx).
			Model(&bookingModel{}).
			Where("status IN ?", ss),
		rng,
	).Order("check_in ASC")
	if err := q.Find(&models).Error; err != nil {
		return nil, err
	}

	out := make([]domain.Booking, 0, len(models))
	for _, m := range models {
		out = append(out, *toDomainBooking(m))
	}
	return out, nil
}

// RevenueForPeriod sums total_price of bookings in the given statuses whose
// stay touches [start, end]: check-in inside it, check-out inside it, or
// the stay spanning the whole period.
func (r *BookingRepository) RevenueForPeriod(ctx context.Context, start, end time.Time, statuses []domain.BookingStatus) (float64, error) {
	ss := make([]string, 0, len(statuses))
	for _, s := range statuses {
		ss = append(ss, string(s))
	}

	var total float64
	q := `
SELECT COALESCE(SUM(total_price), 0)
FROM bookings
WHERE status IN ?
  AND check_in <= ?
  AND check_out >= ?
`
	tx := r.db.WithContext(ctx).Raw(q, ss, end, start).Scan(&total)
	if tx.Error != nil {
		return 0, tx.Error
	}
	return total, nil
}

type PopularRoomRow struct {
	RoomID       int64   `gorm:"column:room_id" json:"room_id"`
	RoomNumber   string  `gorm:"column:room_number" json:"room_number"`
	RoomType     string  `gorm:"column:room_type" json:"room_type"`
	BookingCount int64   `gorm:"column:booking_count" json:"booking_count"`
	TotalRevenue float64 `gorm:"column:total_revenue" json:"total_revenue"`
}

// PopularRooms ranks rooms by booking count, revenue breaking ties, room id
// keeping the order stable.
func (r *BookingRepository) PopularRooms(ctx context.Context, limit int, statuses []domain.BookingStatus) ([]PopularRoomRow, error) {
	ss := make([]string, 0, len(statuses))
	for _, s := range statuses {
		ss = append(ss, string(s))
	}

	var rows []PopularRoomRow
	q := `
SELECT b.room_id,
       r.number AS room_number,
       r.room_type,
       COUNT(1) AS booking_count,
       SUM(b.total_price) AS total_revenue
FROM bookings b
JOIN rooms r ON r.id = b.room_id
WHERE b.status IN ?
GROUP BY b.room_id, r.number, r.room_type
ORDER BY booking_count DESC, total_revenue DESC, b.room_id ASC
LIMIT ?
`
	tx := r.db.WithContext(ctx).Raw(q, ss, limit).Scan(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return rows, nil
}
