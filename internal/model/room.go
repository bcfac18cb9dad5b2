package model

// Room statuses as stored in the rooms.status column.
const (
	RoomStatusAvailable   = "available"
	RoomStatusUnavailable = "unavailable"
)

// Room is a bookable inventory unit. Quantity is the number of free
// units left; it never drops below zero.
type Room struct {
	ID          int64   `db:"room_id"`
	Category    string  `db:"category"`
	Description string  `db:"description"`
	Price       float64 `db:"price"`
	Quantity    int     `db:"quantity"`
	Status      string  `db:"status"`
}

// RoomImage is one photo attached to a room. Rooms may have any number
// of images; the first inserted one is used as the album lead.
type RoomImage struct {
	ID       int64  `db:"image_id"`
	RoomID   int64  `db:"room_id"`
	ImageURL string `db:"image_url"`
}
