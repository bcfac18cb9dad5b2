package repository

import "errors"

var (
	// ErrNotFound is returned when an entity does not exist or a
	// mutation affects zero rows.
	ErrNotFound = errors.New("repository: not found")

	// ErrRoomUnavailable is returned by Reserve when the conditional
	// decrement matched no row: either the room ran out of free units
	// or it was switched to unavailable.
	ErrRoomUnavailable = errors.New("repository: room unavailable")
)
