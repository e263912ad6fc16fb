package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"cinex-backend/internal/data/entity"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// Stubs standing in for the pgx pool and transaction so the error
// translation paths of ReserveSeats can be driven without a database.

type stubRow struct {
	scan func(dest ...any) error
}

func (r stubRow) Scan(dest ...any) error { return r.scan(dest...) }

type emptyRows struct{}

func (emptyRows) Close()                                       {}
func (emptyRows) Err() error                                   { return nil }
func (emptyRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (emptyRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (emptyRows) Next() bool                                   { return false }
func (emptyRows) Scan(dest ...any) error                       { return pgx.ErrNoRows }
func (emptyRows) Values() ([]any, error)                       { return nil, nil }
func (emptyRows) RawValues() [][]byte                          { return nil }
func (emptyRows) Conn() *pgx.Conn                              { return nil }

// stubTx answers the show lock, returns an empty taken-seat set, and can
// fail the seat insert (the second Exec, after the booking insert).
type stubTx struct {
	showScanErr error
	seatInsErr  error

	execCalls  int
	committed  bool
	rolledBack bool
}

func (t *stubTx) Begin(_ context.Context) (pgx.Tx, error) { return t, nil }

func (t *stubTx) Commit(_ context.Context) error {
	t.committed = true
	return nil
}

func (t *stubTx) Rollback(_ context.Context) error {
	t.rolledBack = true
	return nil
}

func (t *stubTx) CopyFrom(_ context.Context, _ pgx.Identifier, _ []string, _ pgx.CopyFromSource) (int64, error) {
	return 0, nil
}

func (t *stubTx) SendBatch(_ context.Context, _ *pgx.Batch) pgx.BatchResults { return nil }

func (t *stubTx) LargeObjects() pgx.LargeObjects { return pgx.LargeObjects{} }

func (t *stubTx) Prepare(_ context.Context, _, _ string) (*pgconn.StatementDescription, error) {
	return nil, nil
}

func (t *stubTx) Exec(_ context.Context, _ string, _ ...any) (pgconn.CommandTag, error) {
	t.execCalls++
	if t.execCalls > 1 && t.seatInsErr != nil {
		return pgconn.CommandTag{}, t.seatInsErr
	}
	return pgconn.NewCommandTag("INSERT 0 1"), nil
}

func (t *stubTx) Query(_ context.Context, _ string, _ ...any) (pgx.Rows, error) {
	return emptyRows{}, nil
}

func (t *stubTx) QueryRow(_ context.Context, _ string, _ ...any) pgx.Row {
	if t.showScanErr != nil {
		return stubRow{scan: func(_ ...any) error { return t.showScanErr }}
	}
	return stubRow{scan: func(dest ...any) error {
		*(dest[0].(*uuid.UUID)) = uuid.New()
		return nil
	}}
}

func (t *stubTx) Conn() *pgx.Conn { return nil }

type stubDB struct {
	tx *stubTx
}

func (d *stubDB) Query(_ context.Context, _ string, _ ...any) (pgx.Rows, error) {
	return emptyRows{}, nil
}

func (d *stubDB) QueryRow(_ context.Context, _ string, _ ...any) pgx.Row {
	return stubRow{scan: func(_ ...any) error { return pgx.ErrNoRows }}
}

func (d *stubDB) Exec(_ context.Context, _ string, _ ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}

func (d *stubDB) Begin(_ context.Context) (pgx.Tx, error) { return d.tx, nil }

func (d *stubDB) Ping(_ context.Context) error { return nil }

func (d *stubDB) Close() {}

func testBooking() *entity.Booking {
	return &entity.Booking{
		ID:           uuid.New(),
		BookingRef:   "BK-20260314-193000-7C3F9A2B",
		ShowID:       uuid.New(),
		BookingDate:  time.Now(),
		TotalAmount:  2500,
		Status:       entity.BookingStatusConfirmed,
		ContactEmail: "guest@example.com",
		ContactPhone: "+94771234567",
	}
}

func TestReserveSeatsUniqueViolationIsSeatConflict(t *testing.T) {
	// The availability read sees nothing taken, but the seat insert trips
	// the partial unique index. The caller must see the same conflict
	// error as the in-transaction check would have produced.
	tx := &stubTx{seatInsErr: &pgconn.PgError{Code: "23505", ConstraintName: "booking_seats_show_seat_active"}}
	repo := NewBookingRepository(&stubDB{tx: tx}, zap.NewNop())

	err := repo.ReserveSeats(context.Background(), testBooking(), []string{"A2"})
	require.Error(t, err)

	var conflict *SeatConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, []string{"A2"}, conflict.Seats)

	assert.False(t, tx.committed)
	assert.True(t, tx.rolledBack)
}

func TestReserveSeatsOtherInsertErrorIsNotConflict(t *testing.T) {
	tx := &stubTx{seatInsErr: &pgconn.PgError{Code: "23503"}} // FK violation
	repo := NewBookingRepository(&stubDB{tx: tx}, zap.NewNop())

	err := repo.ReserveSeats(context.Background(), testBooking(), []string{"A2"})
	require.Error(t, err)

	var conflict *SeatConflictError
	assert.False(t, errors.As(err, &conflict))
	assert.False(t, tx.committed)
}

func TestReserveSeatsMissingShow(t *testing.T) {
	tx := &stubTx{showScanErr: pgx.ErrNoRows}
	repo := NewBookingRepository(&stubDB{tx: tx}, zap.NewNop())

	err := repo.ReserveSeats(context.Background(), testBooking(), []string{"A1"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.False(t, tx.committed)
	assert.Zero(t, tx.execCalls)
}

func TestReserveSeatsCommitsOnSuccess(t *testing.T) {
	tx := &stubTx{}
	repo := NewBookingRepository(&stubDB{tx: tx}, zap.NewNop())

	err := repo.ReserveSeats(context.Background(), testBooking(), []string{"A1", "A2"})
	require.NoError(t, err)

	assert.True(t, tx.committed)
	// one booking insert plus one insert per seat
	assert.Equal(t, 3, tx.execCalls)
}
