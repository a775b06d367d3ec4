package room

import (
	"errors"
	"time"
)

var (
	ErrNotFound         = errors.New("room not found")
	ErrNoRoomsAvailable = errors.New("no rooms available for this room type")
	ErrTypeAlreadyUsed  = errors.New("room type already exists")
	ErrEmptyType        = errors.New("room type cannot be empty")
	ErrInvalidPrice     = errors.New("price must not be negative")
	ErrInvalidUnits     = errors.New("available rooms must not be negative")
)

// Room represents one bookable room type and its remaining capacity.
// AvailableRooms is only ever decremented by a successful reservation and
// incremented by a cancellation release; it never goes below zero.
type Room struct {
	ID             int64
	RoomType       string
	Price          float64
	AvailableRooms int
	CreatedAt      time.Time
}
