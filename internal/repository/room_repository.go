package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"github.com/jmoiron/sqlx"

	"github.com/m3rciful/hotelbot/internal/model"
)

// RoomRepository provides access to rooms and their images.
type RoomRepository struct {
	db *sqlx.DB
}

// NewRoomRepository creates a repository over the given connection pool.
func NewRoomRepository(db *sqlx.DB) *RoomRepository {
	return &RoomRepository{db: db}
}

// AvailableCategories returns the distinct categories that still have
// bookable units. The browser captures this list once at entry.
func (r *RoomRepository) AvailableCategories(ctx context.Context) ([]string, error) {
	var categories []string
	err := r.db.SelectContext(ctx, &categories,
		`SELECT DISTINCT category FROM rooms
		 WHERE status = 'available' AND quantity > 0
		 ORDER BY category`,
	)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

// AvailableByCategory returns available rooms in a category.
func (r *RoomRepository) AvailableByCategory(ctx context.Context, category string) ([]model.Room, error) {
	var rooms []model.Room
	err := r.db.SelectContext(ctx, &rooms,
		"SELECT * FROM rooms WHERE category = $1 AND status = 'available' ORDER BY room_id",
		category,
	)
	if err != nil {
		return nil, fmt.Errorf("list rooms in %q: %w", category, err)
	}
	return rooms, nil
}

// ListAll returns every room regardless of status.
func (r *RoomRepository) ListAll(ctx context.Context) ([]model.Room, error) {
	var rooms []model.Room
	err := r.db.SelectContext(ctx, &rooms, "SELECT * FROM rooms ORDER BY room_id")
	if err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}
	return rooms, nil
}

// GetByID returns a room by id.
func (r *RoomRepository) GetByID(ctx context.Context, roomID int64) (*model.Room, error) {
	var room model.Room
	err := r.db.GetContext(ctx, &room, "SELECT * FROM rooms WHERE room_id = $1", roomID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get room %d: %w", roomID, err)
	}
	return &room, nil
}

// Create inserts a new room and returns its id.
func (r *RoomRepository) Create(ctx context.Context, room *model.Room) (int64, error) {
	var id int64
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO rooms (category, description, price, quantity, status)
		 VALUES ($1, $2, $3, $4, $5) RETURNING room_id`,
		room.Category, room.Description, room.Price, room.Quantity, room.Status,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("create room: %w", err)
	}
	return id, nil
}

var roomColumns = map[string]string{
	"category":    "category",
	"description": "description",
	"price":       "price",
	"quantity":    "quantity",
	"status":      "status",
}

// UpdateField sets a single whitelisted column of a room. Numeric
// columns are parsed before the write so a malformed value never
// reaches the database.
func (r *RoomRepository) UpdateField(ctx context.Context, roomID int64, field, value string) error {
	column, ok := roomColumns[field]
	if !ok {
		return fmt.Errorf("update room field %q: %w", field, ErrNotFound)
	}

	var arg any = value
	switch column {
	case "price":
		price, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("update room %d: bad price %q: %w", roomID, value, err)
		}
		arg = price
	case "quantity":
		qty, err := strconv.Atoi(value)
		if err != nil || qty < 0 {
			return fmt.Errorf("update room %d: bad quantity %q", roomID, value)
		}
		arg = qty
	case "status":
		if value != model.RoomStatusAvailable && value != model.RoomStatusUnavailable {
			return fmt.Errorf("update room %d: bad status %q", roomID, value)
		}
	}

	res, err := r.db.ExecContext(ctx,
		fmt.Sprintf("UPDATE rooms SET %s = $1 WHERE room_id = $2", column),
		arg, roomID,
	)
	if err != nil {
		return fmt.Errorf("update room %d: %w", roomID, err)
	}
	return requireRows(res)
}

// Delete removes a room with its images.
func (r *RoomRepository) Delete(ctx context.Context, roomID int64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM rooms WHERE room_id = $1", roomID)
	if err != nil {
		return fmt.Errorf("delete room %d: %w", roomID, err)
	}
	return requireRows(res)
}

// Images returns all images of a room in insertion order.
func (r *RoomRepository) Images(ctx context.Context, roomID int64) ([]model.RoomImage, error) {
	var images []model.RoomImage
	err := r.db.SelectContext(ctx, &images,
		"SELECT * FROM room_images WHERE room_id = $1 ORDER BY image_id", roomID,
	)
	if err != nil {
		return nil, fmt.Errorf("list images of room %d: %w", roomID, err)
	}
	return images, nil
}

// ListAllImages returns every image across all rooms.
func (r *RoomRepository) ListAllImages(ctx context.Context) ([]model.RoomImage, error) {
	var images []model.RoomImage
	err := r.db.SelectContext(ctx, &images, "SELECT * FROM room_images ORDER BY image_id")
	if err != nil {
		return nil, fmt.Errorf("list images: %w", err)
	}
	return images, nil
}

// AddImage attaches an image URL to a room.
func (r *RoomRepository) AddImage(ctx context.Context, roomID int64, imageURL string) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO room_images (room_id, image_url) VALUES ($1, $2)", roomID, imageURL,
	)
	if err != nil {
		return fmt.Errorf("add image to room %d: %w", roomID, err)
	}
	return nil
}

// DeleteImage removes a single image by its id.
func (r *RoomRepository) DeleteImage(ctx context.Context, imageID int64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM room_images WHERE image_id = $1", imageID)
	if err != nil {
		return fmt.Errorf("delete image %d: %w", imageID, err)
	}
	return requireRows(res)
}
