// Error values shared across repositories and services. Sentinels let the
// HTTP layer map failures to status codes with errors.Is/As instead of
// string matching.
package repository

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned when a referenced row (show, booking, movie,
// cinema) does not exist. Callers wrap it with the entity and ID.
var ErrNotFound = errors.New("not found")

// ErrAlreadyCancelled is returned when cancelling a booking whose status
// is already cancelled. Kept distinct from ErrNotFound so the API can
// report it separately.
var ErrAlreadyCancelled = errors.New("booking already cancelled")

// SeatConflictError reports seats that are already held by another
// non-cancelled booking for the same show. Seats is sorted so the
// message is deterministic.
type SeatConflictError struct {
	Seats []string
}

func (e *SeatConflictError) Error() string {
	return fmt.Sprintf("seats already booked: %s", strings.Join(e.Seats, ", "))
}
