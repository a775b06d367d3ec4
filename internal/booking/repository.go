package booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nekogravitycat/hotel-booking-backend/internal/risk"
)

type Repository interface {
	Create(ctx context.Context, b *Booking) error
	GetByID(ctx context.Context, id string) (*Booking, error)
	List(ctx context.Context, filter Filter) ([]*Booking, int, error)

	// UpdateStatusIf transitions the booking from one status to another in
	// a single conditional statement. Returns false when the booking was
	// not in the expected status, so concurrent transitions on the same
	// booking resolve to exactly one winner.
	UpdateStatusIf(ctx context.Context, id string, from, to Status) (bool, error)

	// CountByUserAndStatus returns how many bookings the user has in the
	// given status, for the repeat-guest and prior-count features.
	CountByUserAndStatus(ctx context.Context, userID string, status Status) (int, error)

	Stats(ctx context.Context) (*Stats, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

var bookingColumns = []string{
	"b.booking_id", "b.user_id", "u.email", "u.full_name",
	"b.room_id", "r.room_type",
	"b.no_of_adults", "b.no_of_children", "b.no_of_weekend_nights", "b.no_of_week_nights",
	"b.type_of_meal_plan", "b.required_car_parking_space", "b.lead_time", "b.arrival_date",
	"b.market_segment_type", "b.repeated_guest",
	"b.no_of_previous_cancellations", "b.no_of_previous_bookings_not_cancelled",
	"b.avg_price_per_room", "b.no_of_special_requests",
	"b.cancellation_prediction", "b.status", "b.created_at", "b.updated_at",
}

func scanBooking(row pgx.Row, extra ...any) (*Booking, error) {
	var b Booking
	dest := []any{
		&b.ID, &b.UserID, &b.UserEmail, &b.UserName,
		&b.RoomID, &b.RoomType,
		&b.Adults, &b.Children, &b.WeekendNights, &b.WeekNights,
		&b.MealPlan, &b.Parking, &b.LeadTime, &b.ArrivalDate,
		&b.MarketSegment, &b.RepeatedGuest,
		&b.PriorCancellations, &b.PriorCompleted,
		&b.AvgPricePerRoom, &b.SpecialRequests,
		&b.CancellationPrediction, &b.Status, &b.CreatedAt, &b.UpdatedAt,
	}
	dest = append(dest, extra...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *pgxRepository) Create(ctx context.Context, b *Booking) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.bookings").
		Columns(
			"user_id", "room_id",
			"no_of_adults", "no_of_children", "no_of_weekend_nights", "no_of_week_nights",
			"type_of_meal_plan", "required_car_parking_space", "lead_time", "arrival_date",
			"market_segment_type", "repeated_guest",
			"no_of_previous_cancellations", "no_of_previous_bookings_not_cancelled",
			"avg_price_per_room", "no_of_special_requests",
			"cancellation_prediction", "status",
		).
		Values(
			b.UserID, b.RoomID,
			b.Adults, b.Children, b.WeekendNights, b.WeekNights,
			b.MealPlan, b.Parking, b.LeadTime, b.ArrivalDate,
			b.MarketSegment, b.RepeatedGuest,
			b.PriorCancellations, b.PriorCompleted,
			b.AvgPricePerRoom, b.SpecialRequests,
			b.CancellationPrediction, b.Status,
		).
		Suffix("RETURNING booking_id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create booking query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).
		Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return fmt.Errorf("create booking failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Booking, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(bookingColumns...).
		From("public.bookings b").
		Join("public.users u ON b.user_id = u.id").
		Join("public.rooms r ON b.room_id = r.room_id").
		Where(squirrel.Eq{"b.booking_id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get booking query failed: %w", err)
	}

	b, err := scanBooking(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get booking failed: %w", err)
	}
	return b, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Booking, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(append(bookingColumns, "count(*) OVER() as total_count")...).
		From("public.bookings b").
		Join("public.users u ON b.user_id = u.id").
		Join("public.rooms r ON b.room_id = r.room_id")

	if filter.UserID != "" {
		query = query.Where(squirrel.Eq{"b.user_id": filter.UserID})
	}
	if filter.Status != "" {
		query = query.Where(squirrel.Eq{"b.status": filter.Status})
	}
	if filter.RiskLevel != "" {
		query = riskLevelWhere(query, risk.Level(filter.RiskLevel))
	}

	query = query.OrderBy("b.created_at DESC")

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
		return nil, 0, fmt.Errorf("build list bookings query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list bookings failed: %w", err)
	}
	defer rows.Close()

	var bookings []*Booking
	var total int

	for rows.Next() {
		b, err := scanBooking(rows, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("scan booking failed: %w", err)
		}
		bookings = append(bookings, b)
	}

	return bookings, total, nil
}

// riskLevelWhere translates a risk tier into its probability band. The
// bands must match risk.ClassifyProbability.
func riskLevelWhere(query squirrel.SelectBuilder, level risk.Level) squirrel.SelectBuilder {
	switch level {
	case risk.LevelHigh:
		return query.Where(squirrel.GtOrEq{"b.cancellation_prediction": 0.7})
	case risk.LevelMedium:
		return query.
			Where(squirrel.GtOrEq{"b.cancellation_prediction": 0.4}).
			Where(squirrel.Lt{"b.cancellation_prediction": 0.7})
	case risk.LevelLow:
		return query.Where(squirrel.Lt{"b.cancellation_prediction": 0.4})
	case risk.LevelUnknown:
		return query.Where("b.cancellation_prediction IS NULL")
	}
	return query
}

func (r *pgxRepository) UpdateStatusIf(ctx context.Context, id string, from, to Status) (bool, error) {
	const query = `
		UPDATE public.bookings
		SET status = $1, updated_at = now()
		WHERE booking_id = $2 AND status = $3
	`

	ct, err := r.pool.Exec(ctx, query, to, id, from)
	if err != nil {
		return false, fmt.Errorf("update booking status failed: %w", err)
	}
	return ct.RowsAffected() > 0, nil
}

func (r *pgxRepository) CountByUserAndStatus(ctx context.Context, userID string, status Status) (int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select("count(*)").
		From("public.bookings").
		Where(squirrel.Eq{"user_id": userID, "status": status}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count bookings query failed: %w", err)
	}

	var count int
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count bookings failed: %w", err)
	}
	return count, nil
}

func (r *pgxRepository) Stats(ctx context.Context) (*Stats, error) {
	stats := &Stats{
		StatusCounts:   make(map[Status]int),
		RoomTypeCounts: make(map[string]int),
		MonthlyCounts:  make(map[int]int),
	}

	rows, err := r.pool.Query(ctx, `SELECT status, count(*) FROM public.bookings GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("status counts query failed: %w", err)
	}
	for rows.Next() {
		var status Status
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan status count failed: %w", err)
		}
		stats.StatusCounts[status] = count
	}
	rows.Close()

	if err := r.pool.QueryRow(ctx, `
		SELECT count(*) FROM public.bookings
		WHERE cancellation_prediction >= 0.7 AND status = 'Active'
	`).Scan(&stats.HighRiskActive); err != nil {
		return nil, fmt.Errorf("high risk count query failed: %w", err)
	}

	rows, err = r.pool.Query(ctx, `
		SELECT r.room_type, count(*)
		FROM public.bookings b
		JOIN public.rooms r ON b.room_id = r.room_id
		GROUP BY r.room_type
	`)
	if err != nil {
		return nil, fmt.Errorf("room type counts query failed: %w", err)
	}
	for rows.Next() {
		var roomType string
		var count int
		if err := rows.Scan(&roomType, &count); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan room type count failed: %w", err)
		}
		stats.RoomTypeCounts[roomType] = count
	}
	rows.Close()

	rows, err = r.pool.Query(ctx, `
		SELECT EXTRACT(MONTH FROM arrival_date)::int AS month, count(*)
		FROM public.bookings
		GROUP BY month
		ORDER BY month
	`)
	if err != nil {
		return nil, fmt.Errorf("monthly counts query failed: %w", err)
	}
	for rows.Next() {
		var month, count int
		if err := rows.Scan(&month, &count); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan monthly count failed: %w", err)
		}
		stats.MonthlyCounts[month] = count
	}
	rows.Close()

	return stats, nil
}
