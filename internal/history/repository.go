package history

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository is insert-only on the write side; the table is an audit ledger.
type Repository interface {
	Create(ctx context.Context, rec *CancellationRecord) error
	List(ctx context.Context, filter Filter) ([]*CancellationRecord, int, error)
	// CountByUser returns the number of cancellations recorded for a user.
	CountByUser(ctx context.Context, userID string) (int, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, rec *CancellationRecord) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.history").
		Columns("user_id", "booking_id").
		Values(rec.UserID, rec.BookingID).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create history query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&rec.ID, &rec.CreatedAt); err != nil {
		return fmt.Errorf("create history record failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*CancellationRecord, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select("id", "user_id", "booking_id", "created_at", "count(*) OVER() as total_count").
		From("public.history")

	if filter.UserID != "" {
		query = query.Where(squirrel.Eq{"user_id": filter.UserID})
	}

	query = query.OrderBy("created_at DESC")

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}
	offset := (filter.Page - 1) * filter.PageSize
	query = query.Limit(uint64(filter.PageSize)).Offset(uint64(offset))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list history query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list history failed: %w", err)
	}
	defer rows.Close()

	var records []*CancellationRecord
	var total int

	for rows.Next() {
		var rec CancellationRecord
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.BookingID, &rec.CreatedAt, &total); err != nil {
			return nil, 0, fmt.Errorf("scan history record failed: %w", err)
		}
		records = append(records, &rec)
	}

	return records, total, nil
}

func (r *pgxRepository) CountByUser(ctx context.Context, userID string) (int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select("count(*)").
		From("public.history").
		Where(squirrel.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count history query failed: %w", err)
	}

	var count int
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count history failed: %w", err)
	}
	return count, nil
}
