package room

import (
	"context"
	"errors"
	"log"
	"strings"
)

type CreateRequest struct {
	RoomType       string
	Price          float64
	AvailableRooms int
}

type UpdateRequest struct {
	RoomType       *string
	Price          *float64
	AvailableRooms *int
}

// Service is the inventory ledger. It is the only component that mutates
// available-unit counts.
type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Room, error)
	GetByID(ctx context.Context, id int64) (*Room, error)
	List(ctx context.Context) ([]*Room, error)
	Update(ctx context.Context, id int64, req UpdateRequest) (*Room, error)

	// Reserve atomically takes one unit of the given room type. An unknown
	// type falls back to the default room rather than failing, mirroring
	// the upstream booking flow; the substitution is logged because it can
	// route capacity to the wrong room type.
	Reserve(ctx context.Context, roomType string) (*Room, error)
	// Release returns one unit taken by a prior Reserve. Called exactly
	// once per cancelled booking.
	Release(ctx context.Context, id int64) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Room, error) {
	if strings.TrimSpace(req.RoomType) == "" {
		return nil, ErrEmptyType
	}
	if req.Price < 0 {
		return nil, ErrInvalidPrice
	}
	if req.AvailableRooms < 0 {
		return nil, ErrInvalidUnits
	}

	room := &Room{
		RoomType:       req.RoomType,
		Price:          req.Price,
		AvailableRooms: req.AvailableRooms,
	}

	if err := s.repo.Create(ctx, room); err != nil {
		return nil, err
	}
	return room, nil
}

func (s *service) GetByID(ctx context.Context, id int64) (*Room, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context) ([]*Room, error) {
	return s.repo.List(ctx)
}

func (s *service) Update(ctx context.Context, id int64, req UpdateRequest) (*Room, error) {
	room, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.RoomType != nil {
		if strings.TrimSpace(*req.RoomType) == "" {
			return nil, ErrEmptyType
		}
		room.RoomType = *req.RoomType
	}
	if req.Price != nil {
		if *req.Price < 0 {
			return nil, ErrInvalidPrice
		}
		room.Price = *req.Price
	}
	if req.AvailableRooms != nil {
		if *req.AvailableRooms < 0 {
			return nil, ErrInvalidUnits
		}
		room.AvailableRooms = *req.AvailableRooms
	}

	if err := s.repo.Update(ctx, room); err != nil {
		return nil, err
	}
	return room, nil
}

func (s *service) Reserve(ctx context.Context, roomType string) (*Room, error) {
	room, err := s.repo.GetByType(ctx, roomType)
	if errors.Is(err, ErrNotFound) {
		log.Printf("room: unknown room type %q, falling back to default room", roomType)
		room, err = s.repo.GetDefault(ctx)
	}
	if err != nil {
		return nil, err
	}

	ok, err := s.repo.TryDecrementAvailable(ctx, room.ID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNoRoomsAvailable
	}

	room.AvailableRooms--
	return room, nil
}

func (s *service) Release(ctx context.Context, id int64) error {
	return s.repo.IncrementAvailable(ctx, id)
}
