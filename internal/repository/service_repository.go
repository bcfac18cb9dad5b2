package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/m3rciful/hotelbot/internal/model"
)

// ServiceRepository provides access to the add-on service catalog and
// to guest service orders.
type ServiceRepository struct {
	db *sqlx.DB
}

// NewServiceRepository creates a repository over the given connection pool.
func NewServiceRepository(db *sqlx.DB) *ServiceRepository {
	return &ServiceRepository{db: db}
}

// List returns the whole service catalog.
func (r *ServiceRepository) List(ctx context.Context) ([]model.Service, error) {
	var services []model.Service
	if err := r.db.SelectContext(ctx, &services, "SELECT * FROM services ORDER BY service_id"); err != nil {
		return nil, fmt.Errorf("list services: %w", err)
	}
	return services, nil
}

// GetByID returns a service by id.
func (r *ServiceRepository) GetByID(ctx context.Context, serviceID int64) (*model.Service, error) {
	var service model.Service
	err := r.db.GetContext(ctx, &service, "SELECT * FROM services WHERE service_id = $1", serviceID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get service %d: %w", serviceID, err)
	}
	return &service, nil
}

// Create inserts a new catalog entry and returns its id.
func (r *ServiceRepository) Create(ctx context.Context, service *model.Service) (int64, error) {
	var id int64
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO services (name, price, short_description, detailed_description)
		 VALUES ($1, $2, $3, $4) RETURNING service_id`,
		service.Name, service.Price, service.ShortDesc, service.DetailedDesc,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("create service: %w", err)
	}
	return id, nil
}

var serviceColumns = map[string]string{
	"name":                 "name",
	"price":                "price",
	"short_description":    "short_description",
	"detailed_description": "detailed_description",
}

// UpdateField sets a single whitelisted column of a service.
func (r *ServiceRepository) UpdateField(ctx context.Context, serviceID int64, field, value string) error {
	column, ok := serviceColumns[field]
	if !ok {
		return fmt.Errorf("update service field %q: %w", field, ErrNotFound)
	}
	var arg any = value
	if column == "price" {
		price, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("update service %d: bad price %q: %w", serviceID, value, err)
		}
		arg = price
	}
	res, err := r.db.ExecContext(ctx,
		fmt.Sprintf("UPDATE services SET %s = $1 WHERE service_id = $2", column),
		arg, serviceID,
	)
	if err != nil {
		return fmt.Errorf("update service %d: %w", serviceID, err)
	}
	return requireRows(res)
}

// Delete removes a catalog entry.
func (r *ServiceRepository) Delete(ctx context.Context, serviceID int64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM services WHERE service_id = $1", serviceID)
	if err != nil {
		return fmt.Errorf("delete service %d: %w", serviceID, err)
	}
	return requireRows(res)
}

// CreateOrder records a new guest service order line. The full-precision
// order timestamp is part of the identity, so the same guest may order
// the same service again later.
func (r *ServiceRepository) CreateOrder(ctx context.Context, guestID, serviceID int64, quantity int) (time.Time, error) {
	var orderDate time.Time
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO guest_services (guest_id, service_id, quantity, order_date, status)
		 VALUES ($1, $2, $3, now(), 'pending')
		 RETURNING order_date`,
		guestID, serviceID, quantity,
	).Scan(&orderDate)
	if err != nil {
		return time.Time{}, fmt.Errorf("order service %d for guest %d: %w", serviceID, guestID, err)
	}
	return orderDate, nil
}

// ListAllOrders returns every order line, newest first.
func (r *ServiceRepository) ListAllOrders(ctx context.Context) ([]model.GuestService, error) {
	var orders []model.GuestService
	err := r.db.SelectContext(ctx, &orders, "SELECT * FROM guest_services ORDER BY order_date DESC")
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

// OrdersByGuest returns all order lines of a guest, newest first.
func (r *ServiceRepository) OrdersByGuest(ctx context.Context, guestID int64) ([]model.GuestService, error) {
	var orders []model.GuestService
	err := r.db.SelectContext(ctx, &orders,
		"SELECT * FROM guest_services WHERE guest_id = $1 ORDER BY order_date DESC", guestID,
	)
	if err != nil {
		return nil, fmt.Errorf("list orders of guest %d: %w", guestID, err)
	}
	return orders, nil
}

// UpdateOrderQuantity changes the quantity of one order line addressed
// by its composite identity.
func (r *ServiceRepository) UpdateOrderQuantity(ctx context.Context, guestID, serviceID int64, orderDate time.Time, quantity int) error {
	if quantity <= 0 {
		return fmt.Errorf("update order: quantity must be positive, got %d", quantity)
	}
	res, err := r.db.ExecContext(ctx,
		`UPDATE guest_services SET quantity = $1
		 WHERE guest_id = $2 AND service_id = $3 AND order_date = $4`,
		quantity, guestID, serviceID, orderDate,
	)
	if err != nil {
		return fmt.Errorf("update order (%d, %d, %s): %w", guestID, serviceID, orderDate, err)
	}
	return requireRows(res)
}

// DeleteOrder removes one order line addressed by its composite identity.
func (r *ServiceRepository) DeleteOrder(ctx context.Context, guestID, serviceID int64, orderDate time.Time) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM guest_services
		 WHERE guest_id = $1 AND service_id = $2 AND order_date = $3`,
		guestID, serviceID, orderDate,
	)
	if err != nil {
		return fmt.Errorf("delete order (%d, %d, %s): %w", guestID, serviceID, orderDate, err)
	}
	return requireRows(res)
}
