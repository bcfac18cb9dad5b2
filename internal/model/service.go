package model

import "time"

// GuestService statuses as stored in guest_services.status.
const (
	GuestServiceStatusPending   = "pending"
	GuestServiceStatusConfirmed = "confirmed"
	GuestServiceStatusCancelled = "cancelled"
)

// Service is an orderable add-on (breakfast, spa, transfer, ...).
type Service struct {
	ID           int64   `db:"service_id"`
	Name         string  `db:"name"`
	Price        float64 `db:"price"`
	ShortDesc    string  `db:"short_description"`
	DetailedDesc string  `db:"detailed_description"`
}

// GuestService is one service order line. A guest may order the same
// service repeatedly, so identity is (guest_id, service_id, order_date)
// with order_date carrying full timestamp precision.
type GuestService struct {
	GuestID   int64     `db:"guest_id"`
	ServiceID int64     `db:"service_id"`
	Quantity  int       `db:"quantity"`
	OrderDate time.Time `db:"order_date"`
	Status    string    `db:"status"`
}
