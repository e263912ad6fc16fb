package repository

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"cinex-backend/internal/data/entity"
	"cinex-backend/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

type BookingRepository interface {
	// ReserveSeats commits the booking and its seat rows as one
	// transaction, serialized per show. Returns ErrNotFound when the show
	// is absent and *SeatConflictError when any requested seat is held by
	// a non-cancelled booking.
	ReserveSeats(ctx context.Context, booking *entity.Booking, seats []string) error

	FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	FindByUserID(ctx context.Context, userID string) ([]*entity.Booking, error)

	// Cancel flips a confirmed booking to cancelled and releases its
	// seats. Returns ErrNotFound or ErrAlreadyCancelled.
	Cancel(ctx context.Context, id uuid.UUID) error
}

type bookingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookingRepository(db database.PgxIface, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

// uniqueViolation is the Postgres error code raised when the partial
// unique index on (show_id, seat_number) rejects a second active claim.
const uniqueViolation = "23505"

func (r *bookingRepository) ReserveSeats(ctx context.Context, booking *entity.Booking, seats []string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin reserve tx: %w", err)
	}
	defer tx.Rollback(ctx)

	// Lock the show row. This serializes concurrent reservations for the
	// same show so the availability read below cannot go stale before the
	// inserts commit. Doubles as the existence check.
	var showID uuid.UUID
	err = tx.QueryRow(ctx,
		`SELECT id FROM shows WHERE id = $1 FOR UPDATE`,
		booking.ShowID,
	).Scan(&showID)
	if err == pgx.ErrNoRows {
		return fmt.Errorf("show %s: %w", booking.ShowID.String(), ErrNotFound)
	}
	if err != nil {
		r.log.Error("Failed to lock show row",
			zap.Error(err),
			zap.String("show_id", booking.ShowID.String()),
		)
		return fmt.Errorf("lock show %s: %w", booking.ShowID.String(), err)
	}

	// Taken-seat set, read under the lock.
	rows, err := tx.Query(ctx,
		`SELECT seat_number FROM booking_seats WHERE show_id = $1 AND NOT cancelled`,
		booking.ShowID,
	)
	if err != nil {
		return fmt.Errorf("read taken seats for show %s: %w", booking.ShowID.String(), err)
	}

	taken := make(map[string]bool)
	for rows.Next() {
		var seat string
		if err := rows.Scan(&seat); err != nil {
			rows.Close()
			return fmt.Errorf("scan taken seat: %w", err)
		}
		taken[seat] = true
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("read taken seats for show %s: %w", booking.ShowID.String(), err)
	}

	var conflicts []string
	for _, seat := range seats {
		if taken[seat] {
			conflicts = append(conflicts, seat)
		}
	}
	if len(conflicts) > 0 {
		sort.Strings(conflicts)
		return &SeatConflictError{Seats: conflicts}
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO bookings (id, booking_ref, user_id, show_id, booking_date, total_amount, status, contact_email, contact_phone)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		booking.ID,
		booking.BookingRef,
		booking.UserID,
		booking.ShowID,
		booking.BookingDate,
		booking.TotalAmount,
		booking.Status,
		booking.ContactEmail,
		booking.ContactPhone,
	)
	if err != nil {
		r.log.Error("Failed to insert booking",
			zap.Error(err),
			zap.String("booking_ref", booking.BookingRef),
		)
		return fmt.Errorf("insert booking %s: %w", booking.BookingRef, err)
	}

	for _, seat := range seats {
		_, err = tx.Exec(ctx, `
			INSERT INTO booking_seats (id, booking_id, show_id, seat_number, cancelled, created_at)
			VALUES ($1, $2, $3, $4, FALSE, $5)`,
			uuid.New(),
			booking.ID,
			booking.ShowID,
			seat,
			booking.BookingDate,
		)
		if err != nil {
			// The unique index is the backstop if the row lock is ever
			// bypassed; surface it as the same conflict error.
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
				return &SeatConflictError{Seats: []string{seat}}
			}
			r.log.Error("Failed to insert booking seat",
				zap.Error(err),
				zap.String("booking_id", booking.ID.String()),
				zap.String("seat", seat),
			)
			return fmt.Errorf("insert seat %s for booking %s: %w", seat, booking.ID.String(), err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit reserve tx: %w", err)
	}

	return nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	query := `
		SELECT id, booking_ref, user_id, show_id, booking_date, total_amount, status, contact_email, contact_phone
		FROM bookings
		WHERE id = $1
	`

	var booking entity.Booking
	err := r.db.QueryRow(ctx, query, id).Scan(
		&booking.ID,
		&booking.BookingRef,
		&booking.UserID,
		&booking.ShowID,
		&booking.BookingDate,
		&booking.TotalAmount,
		&booking.Status,
		&booking.ContactEmail,
		&booking.ContactPhone,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by ID",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return nil, fmt.Errorf("find booking by ID %s: %w", id.String(), err)
	}

	return &booking, nil
}

func (r *bookingRepository) FindByUserID(ctx context.Context, userID string) ([]*entity.Booking, error) {
	query := `
		SELECT id, booking_ref, user_id, show_id, booking_date, total_amount, status, contact_email, contact_phone
		FROM bookings
		WHERE user_id = $1
		ORDER BY booking_date DESC, id
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		r.log.Error("Failed to find bookings by user ID",
			zap.Error(err),
			zap.String("user_id", userID),
		)
		return nil, fmt.Errorf("find bookings by user ID %s: %w", userID, err)
	}
	defer rows.Close()

	var bookings []*entity.Booking
	for rows.Next() {
		var booking entity.Booking
		err := rows.Scan(
			&booking.ID,
			&booking.BookingRef,
			&booking.UserID,
			&booking.ShowID,
			&booking.BookingDate,
			&booking.TotalAmount,
			&booking.Status,
			&booking.ContactEmail,
			&booking.ContactPhone,
		)
		if err != nil {
			r.log.Error("Failed to scan booking row", zap.Error(err))
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		bookings = append(bookings, &booking)
	}

	return bookings, rows.Err()
}

func (r *bookingRepository) Cancel(ctx context.Context, id uuid.UUID) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin cancel tx: %w", err)
	}
	defer tx.Rollback(ctx)

	// Conditional update keeps a concurrent duplicate cancel race-safe:
	// only one of two racing cancels can match status='confirmed'.
	tag, err := tx.Exec(ctx,
		`UPDATE bookings SET status = $2 WHERE id = $1 AND status = $3`,
		id, entity.BookingStatusCancelled, entity.BookingStatusConfirmed,
	)
	if err != nil {
		r.log.Error("Failed to cancel booking",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return fmt.Errorf("cancel booking %s: %w", id.String(), err)
	}

	if tag.RowsAffected() == 0 {
		var status entity.BookingStatus
		err := tx.QueryRow(ctx, `SELECT status FROM bookings WHERE id = $1`, id).Scan(&status)
		if err == pgx.ErrNoRows {
			return fmt.Errorf("booking %s: %w", id.String(), ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("check booking %s status: %w", id.String(), err)
		}
		return fmt.Errorf("booking %s: %w", id.String(), ErrAlreadyCancelled)
	}

	// Release the seats in the same transaction so availability reads see
	// the cancel and the freed seats together.
	_, err = tx.Exec(ctx,
		`UPDATE booking_seats SET cancelled = TRUE WHERE booking_id = $1`,
		id,
	)
	if err != nil {
		return fmt.Errorf("release seats for booking %s: %w", id.String(), err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit cancel tx: %w", err)
	}

	return nil
}
