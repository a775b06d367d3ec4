package room

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, r *Room) error
	GetByID(ctx context.Context, id int64) (*Room, error)
	GetByType(ctx context.Context, roomType string) (*Room, error)
	// GetDefault returns the designated fallback room (lowest id).
	GetDefault(ctx context.Context) (*Room, error)
	List(ctx context.Context) ([]*Room, error)
	Update(ctx context.Context, r *Room) error

	// TryDecrementAvailable atomically decrements available_rooms if it is
	// still positive. Returns false when capacity is exhausted.
	TryDecrementAvailable(ctx context.Context, id int64) (bool, error)
	// IncrementAvailable returns one unit of capacity to the room.
	IncrementAvailable(ctx context.Context, id int64) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, room *Room) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.rooms").
		Columns("room_type", "price", "available_rooms").
		Values(room.RoomType, room.Price, room.AvailableRooms).
		Suffix("RETURNING room_id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create room query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&room.ID, &room.CreatedAt); err != nil {
		var e *pgconn.PgError
		if errors.As(err, &e) && e.Code == pgerrcode.UniqueViolation {
			return ErrTypeAlreadyUsed
		}
		return fmt.Errorf("create room failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id int64) (*Room, error) {
	return r.getOne(ctx, squirrel.Eq{"room_id": id})
}

func (r *pgxRepository) GetByType(ctx context.Context, roomType string) (*Room, error) {
	return r.getOne(ctx, squirrel.Eq{"room_type": roomType})
}

func (r *pgxRepository) GetDefault(ctx context.Context) (*Room, error) {
	return r.getOne(ctx, nil)
}

func (r *pgxRepository) getOne(ctx context.Context, where any) (*Room, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	builder := psql.Select("room_id", "room_type", "price", "available_rooms", "created_at").
		From("public.rooms").
		OrderBy("room_id ASC").
		Limit(1)
	if where != nil {
		builder = builder.Where(where)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get room query failed: %w", err)
	}

	var room Room
	if err := r.pool.QueryRow(ctx, query, args...).
		Scan(&room.ID, &room.RoomType, &room.Price, &room.AvailableRooms, &room.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get room failed: %w", err)
	}
	return &room, nil
}

func (r *pgxRepository) List(ctx context.Context) ([]*Room, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select("room_id", "room_type", "price", "available_rooms", "created_at").
		From("public.rooms").
		OrderBy("room_id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list rooms query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list rooms failed: %w", err)
	}
	defer rows.Close()

	var rooms []*Room
	for rows.Next() {
		var room Room
		if err := rows.Scan(&room.ID, &room.RoomType, &room.Price, &room.AvailableRooms, &room.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan room failed: %w", err)
		}
		rooms = append(rooms, &room)
	}

	return rooms, nil
}

func (r *pgxRepository) Update(ctx context.Context, room *Room) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.rooms").
		Set("room_type", room.RoomType).
		Set("price", room.Price).
		Set("available_rooms", room.AvailableRooms).
		Where(squirrel.Eq{"room_id": room.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update room query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		var e *pgconn.PgError
		if errors.As(err, &e) && e.Code == pgerrcode.UniqueViolation {
			return ErrTypeAlreadyUsed
		}
		return fmt.Errorf("update room failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) TryDecrementAvailable(ctx context.Context, id int64) (bool, error) {
	// Single conditional statement so the check and the decrement cannot be
	// interleaved by a concurrent reservation.
	const query = `
		UPDATE public.rooms
		SET available_rooms = available_rooms - 1
		WHERE room_id = $1 AND available_rooms > 0
	`

	ct, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return false, fmt.Errorf("decrement available rooms failed: %w", err)
	}
	return ct.RowsAffected() > 0, nil
}

func (r *pgxRepository) IncrementAvailable(ctx context.Context, id int64) error {
	const query = `
		UPDATE public.rooms
		SET available_rooms = available_rooms + 1
		WHERE room_id = $1
	`

	ct, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("increment available rooms failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
