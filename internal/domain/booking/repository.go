package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const queryTimeout = 5 * time.Second

// Postgres SQLSTATE codes that mean a slot lost a booking race.
const (
	sqlStateExclusionViolation   = "23P01"
	sqlStateSerializationFailure = "40001"
)

type Repository interface {
	FindIntersecting(ctx context.Context, studioID string, from, to time.Time) ([]TimeSlot, error)
	CreateBooking(ctx context.Context, userID string, slots []TimeSlot) (*Booking, error)
	ListSlots(ctx context.Context, filter *SlotFilter) ([]TimeSlot, error)
}

// BookingRepository persists bookings and their time slots.
type BookingRepository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

// FindIntersecting returns the persisted slots for a studio that share any
// instant with [from, to), ordered by start time ascending. Slots that only
// touch the window at a boundary are excluded.
func (r *BookingRepository) FindIntersecting(ctx context.Context, studioID string, from, to time.Time) ([]TimeSlot, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	query := `
		SELECT * FROM time_slots
		WHERE studio_id = $1 AND start_time < $3 AND end_time > $2
		ORDER BY start_time ASC
	`
	var slots []TimeSlot
	err := r.db.SelectContext(ctx, &slots, query, studioID, from, to)
	return slots, err
}

// CreateBooking stores a booking and all of its slots in one serializable
// transaction: either every slot is persisted or none is. Overlaps are
// re-checked inside the transaction, and the time_slots exclusion
// constraint catches any race lost between that check and commit; both
// paths surface as an OverlappingSlotError.
func (r *BookingRepository) CreateBooking(ctx context.Context, userID string, slots []TimeSlot) (*Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	tx, err := r.db.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return nil, fmt.Errorf("%w: begin tx", ErrInternal)
	}
	defer tx.Rollback()

	booking := &Booking{
		UserID:    userID,
		CreatedAt: time.Now().UTC(),
	}

	err = tx.QueryRowContext(ctx, `
		INSERT INTO bookings (user_id, created_at)
		VALUES ($1, $2)
		RETURNING id
	`, booking.UserID, booking.CreatedAt).Scan(&booking.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: insert booking", ErrInternal)
	}

	for i := range slots {
		slot := &slots[i]

		var taken bool
		err = tx.QueryRowContext(ctx, `
			SELECT EXISTS(
				SELECT 1 FROM time_slots
				WHERE studio_id = $1 AND start_time < $3 AND end_time > $2
			)
		`, slot.StudioID, slot.StartTime, slot.EndTime).Scan(&taken)
		if err != nil {
			return nil, translateSlotError(err, slot)
		}
		if taken {
			return nil, &OverlappingSlotError{StudioID: slot.StudioID, Interval: slot.Interval()}
		}

		slot.BookingID = booking.ID
		slot.CreatedAt = booking.CreatedAt

		_, err = tx.ExecContext(ctx, `
			INSERT INTO time_slots (id, booking_id, studio_id, start_time, end_time, people_count, price, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`, slot.ID, slot.BookingID, slot.StudioID, slot.StartTime, slot.EndTime, slot.PeopleCount, slot.Price, slot.CreatedAt)
		if err != nil {
			return nil, translateSlotError(err, slot)
		}
	}

	if err := tx.Commit(); err != nil {
		// A serialization failure at commit means a concurrent booking won.
		last := &slots[len(slots)-1]
		return nil, translateSlotError(err, last)
	}

	booking.Slots = slots
	return booking, nil
}

// ListSlots returns persisted slots matching the filter, ordered by start
// time ascending.
func (r *BookingRepository) ListSlots(ctx context.Context, filter *SlotFilter) ([]TimeSlot, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var (
		conditions []string
		args       []interface{}
	)

	addArg := func(value interface{}) string {
		args = append(args, value)
		return "$" + strconv.Itoa(len(args))
	}

	query := `SELECT ts.* FROM time_slots ts`

	if filter.UserID != "" {
		query += ` JOIN bookings b ON b.id = ts.booking_id`
		conditions = append(conditions, "b.user_id = "+addArg(filter.UserID))
	}
	if len(filter.StudioIDs) > 0 {
		conditions = append(conditions, "ts.studio_id = ANY("+addArg(pq.Array(filter.StudioIDs))+")")
	}
	if !filter.StartDate.IsZero() {
		conditions = append(conditions, "ts.start_time >= "+addArg(filter.StartDate))
	}
	if !filter.EndDate.IsZero() {
		conditions = append(conditions, "ts.end_time <= "+addArg(filter.EndDate))
	}
	if filter.PeopleCount > 0 {
		conditions = append(conditions, "ts.people_count >= "+addArg(filter.PeopleCount))
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY ts.start_time ASC"

	if filter.Limit > 0 {
		query += " LIMIT " + addArg(filter.Limit)
		if filter.Page > 1 {
			query += " OFFSET " + addArg((filter.Page-1)*filter.Limit)
		}
	}

	var slots []TimeSlot
	err := r.db.SelectContext(ctx, &slots, query, args...)
	return slots, err
}

// translateSlotError maps storage-level conflict errors onto the same
// OverlappingSlotError a pre-check failure produces, so callers cannot
// tell a lost race from an ordinary conflict.
func translateSlotError(err error, slot *TimeSlot) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch string(pqErr.Code) {
		case sqlStateExclusionViolation, sqlStateSerializationFailure:
			return &OverlappingSlotError{StudioID: slot.StudioID, Interval: slot.Interval()}
		}
	}
	return fmt.Errorf("%w: persist booking slots: %v", ErrInternal, err)
}
