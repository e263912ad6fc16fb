package repository

import (
	"context"
	"fmt"

	"cinex-backend/internal/data/entity"
	"cinex-backend/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BookingSeatRepository interface {
	FindByBookingID(ctx context.Context, bookingID uuid.UUID) ([]*entity.BookingSeat, error)

	// FindTakenSeatsByShow returns the seat labels held by non-cancelled
	// bookings for a show, sorted ascending.
	FindTakenSeatsByShow(ctx context.Context, showID uuid.UUID) ([]string, error)
}

type bookingSeatRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookingSeatRepository(db database.PgxIface, log *zap.Logger) BookingSeatRepository {
	return &bookingSeatRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking_seat")),
	}
}

func (r *bookingSeatRepository) FindByBookingID(ctx context.Context, bookingID uuid.UUID) ([]*entity.BookingSeat, error) {
	query := `
		SELECT id, booking_id, show_id, seat_number, cancelled, created_at
		FROM booking_seats
		WHERE booking_id = $1
		ORDER BY seat_number
	`

	rows, err := r.db.Query(ctx, query, bookingID)
	if err != nil {
		r.log.Error("Failed to find booking seats by booking ID",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
		)
		return nil, fmt.Errorf("find booking seats by booking ID %s: %w", bookingID.String(), err)
	}
	defer rows.Close()

	var seats []*entity.BookingSeat
	for rows.Next() {
		var bs entity.BookingSeat
		err := rows.Scan(
			&bs.ID,
			&bs.BookingID,
			&bs.ShowID,
			&bs.SeatNumber,
			&bs.Cancelled,
			&bs.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan booking seat row", zap.Error(err))
			return nil, fmt.Errorf("scan booking seat row: %w", err)
		}
		seats = append(seats, &bs)
	}

	return seats, rows.Err()
}

func (r *bookingSeatRepository) FindTakenSeatsByShow(ctx context.Context, showID uuid.UUID) ([]string, error) {
	query := `
		SELECT seat_number
		FROM booking_seats
		WHERE show_id = $1 AND NOT cancelled
		ORDER BY seat_number
	`

	rows, err := r.db.Query(ctx, query, showID)
	if err != nil {
		r.log.Error("Failed to find taken seats by show",
			zap.Error(err),
			zap.String("show_id", showID.String()),
		)
		return nil, fmt.Errorf("find taken seats by show %s: %w", showID.String(), err)
	}
	defer rows.Close()

	var seats []string
	for rows.Next() {
		var seat string
		if err := rows.Scan(&seat); err != nil {
			r.log.Error("Failed to scan seat row", zap.Error(err))
			return nil, fmt.Errorf("scan seat row: %w", err)
		}
		seats = append(seats, seat)
	}

	return seats, rows.Err()
}
