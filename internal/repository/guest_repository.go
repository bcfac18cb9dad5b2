package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/m3rciful/hotelbot/internal/logger"
	"github.com/m3rciful/hotelbot/internal/model"
	"log/slog"
)

// GuestRepository provides access to booking records and performs the
// atomic reservation write.
type GuestRepository struct {
	db *sqlx.DB
}

// NewGuestRepository creates a repository over the given connection pool.
func NewGuestRepository(db *sqlx.DB) *GuestRepository {
	return &GuestRepository{db: db}
}

// Reserve decrements the room's free-unit counter and inserts the guest
// record in one transaction. The decrement is conditional on
// quantity > 0 and status = 'available'; when it matches no row the
// room lost the race or ran out, the transaction is rolled back, and
// ErrRoomUnavailable is returned. Either both writes persist or neither
// does. Row-level write ordering in the database serializes concurrent
// reservations on the same room, so no in-process lock is needed here.
func (r *GuestRepository) Reserve(ctx context.Context, guest *model.Guest) (int64, error) {
	start := time.Now()

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("reserve room %d: begin: %w", guest.RoomID, err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx,
		`UPDATE rooms SET quantity = quantity - 1
		 WHERE room_id = $1 AND quantity > 0 AND status = 'available'`,
		guest.RoomID,
	)
	if err != nil {
		return 0, fmt.Errorf("reserve room %d: decrement: %w", guest.RoomID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("reserve room %d: rows affected: %w", guest.RoomID, err)
	}
	if affected == 0 {
		logger.SVCGuests.Info("room exhausted",
			slog.String("event", "reserve"),
			slog.String("status", "fail"),
			slog.Int64("room_id", guest.RoomID),
			slog.Int64("user_id", guest.UserID),
		)
		return 0, ErrRoomUnavailable
	}

	var guestID int64
	err = tx.QueryRowContext(ctx,
		`INSERT INTO guests (room_id, user_id, first_name, last_name, email, phone,
		                     check_in_date, check_out_date, comment, booking_date)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, now())
		 RETURNING guest_id`,
		guest.RoomID, guest.UserID, guest.FirstName, guest.LastName,
		guest.Email, guest.Phone, guest.CheckInDate, guest.CheckOutDate, guest.Comment,
	).Scan(&guestID)
	if err != nil {
		return 0, fmt.Errorf("reserve room %d: insert guest: %w", guest.RoomID, err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("reserve room %d: commit: %w", guest.RoomID, err)
	}

	logger.SVCGuests.Info("room reserved",
		slog.String("event", "reserve"),
		slog.String("status", "ok"),
		slog.Int64("room_id", guest.RoomID),
		slog.Int64("user_id", guest.UserID),
		slog.Int64("guest_id", guestID),
		slog.Duration("duration", logger.Took(start)),
	)
	return guestID, nil
}

// GetByID returns a booking record by id.
func (r *GuestRepository) GetByID(ctx context.Context, guestID int64) (*model.Guest, error) {
	var guest model.Guest
	err := r.db.GetContext(ctx, &guest, "SELECT * FROM guests WHERE guest_id = $1", guestID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get guest %d: %w", guestID, err)
	}
	return &guest, nil
}

// Create inserts a booking record directly, without touching room
// inventory. Used by the admin panel; the booking flow goes through
// Reserve instead.
func (r *GuestRepository) Create(ctx context.Context, guest *model.Guest) (int64, error) {
	var id int64
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO guests (room_id, user_id, first_name, last_name, email, phone,
		                     check_in_date, check_out_date, comment)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING guest_id`,
		guest.RoomID, guest.UserID, guest.FirstName, guest.LastName,
		guest.Email, guest.Phone, guest.CheckInDate, guest.CheckOutDate, guest.Comment,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("create guest: %w", err)
	}
	return id, nil
}

// ListAll returns every booking record, newest first.
func (r *GuestRepository) ListAll(ctx context.Context) ([]model.Guest, error) {
	var guests []model.Guest
	err := r.db.SelectContext(ctx, &guests, "SELECT * FROM guests ORDER BY booking_date DESC")
	if err != nil {
		return nil, fmt.Errorf("list guests: %w", err)
	}
	return guests, nil
}

// ListByUser returns the bookings made by one user, newest first.
func (r *GuestRepository) ListByUser(ctx context.Context, userID int64) ([]model.Guest, error) {
	var guests []model.Guest
	err := r.db.SelectContext(ctx, &guests,
		"SELECT * FROM guests WHERE user_id = $1 ORDER BY booking_date DESC", userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list guests of user %d: %w", userID, err)
	}
	return guests, nil
}

var guestColumns = map[string]string{
	"first_name": "first_name",
	"last_name":  "last_name",
	"email":      "email",
	"phone":      "phone",
	"comment":    "comment",
}

// UpdateField sets a single whitelisted column of a booking record.
func (r *GuestRepository) UpdateField(ctx context.Context, guestID int64, field, value string) error {
	column, ok := guestColumns[field]
	if !ok {
		return fmt.Errorf("update guest field %q: %w", field, ErrNotFound)
	}
	res, err := r.db.ExecContext(ctx,
		fmt.Sprintf("UPDATE guests SET %s = $1 WHERE guest_id = $2", column),
		value, guestID,
	)
	if err != nil {
		return fmt.Errorf("update guest %d: %w", guestID, err)
	}
	return requireRows(res)
}

// Delete removes a booking record. The room counter is deliberately not
// restored: cancellation compensation is out of scope, restocking goes
// through the admin room edit path.
func (r *GuestRepository) Delete(ctx context.Context, guestID int64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM guests WHERE guest_id = $1", guestID)
	if err != nil {
		return fmt.Errorf("delete guest %d: %w", guestID, err)
	}
	return requireRows(res)
}
