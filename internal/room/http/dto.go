package http

import (
	"time"

	"github.com/nekogravitycat/hotel-booking-backend/internal/room"
)

type CreateRoomRequest struct {
	RoomType       string  `json:"room_type" binding:"required"`
	Price          float64 `json:"price" binding:"omitempty,min=0"`
	AvailableRooms int     `json:"available_rooms" binding:"omitempty,min=0"`
}

type UpdateRoomRequest struct {
	RoomType       *string  `json:"room_type"`
	Price          *float64 `json:"price" binding:"omitempty,min=0"`
	AvailableRooms *int     `json:"available_rooms" binding:"omitempty,min=0"`
}

type RoomResponse struct {
	ID             int64     `json:"id"`
	RoomType       string    `json:"room_type"`
	Price          float64   `json:"price"`
	AvailableRooms int       `json:"available_rooms"`
	CreatedAt      time.Time `json:"created_at"`
}

func NewRoomResponse(r *room.Room) RoomResponse {
	return RoomResponse{
		ID:             r.ID,
		RoomType:       r.RoomType,
		Price:          r.Price,
		AvailableRooms: r.AvailableRooms,
		CreatedAt:      r.CreatedAt,
	}
}
