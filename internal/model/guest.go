package model

import "time"

// Guest is a completed booking record. Email, Phone and Comment are
// optional and stay NULL when the guest skipped them.
type Guest struct {
	ID           int64     `db:"guest_id"`
	RoomID       int64     `db:"room_id"`
	UserID       int64     `db:"user_id"`
	FirstName    string    `db:"first_name"`
	LastName     string    `db:"last_name"`
	Email        *string   `db:"email"`
	Phone        *string   `db:"phone"`
	CheckInDate  time.Time `db:"check_in_date"`
	CheckOutDate time.Time `db:"check_out_date"`
	Comment      *string   `db:"comment"`
	BookingDate  time.Time `db:"booking_date"`
}
