package entity

import "github.com/google/uuid"

// BookingSeat pins one seat label to a booking. ShowID and Cancelled are
// denormalized from the parent booking so the database can enforce the
// partial unique index on (show_id, seat_number) for active seats.
type BookingSeat struct {
	BaseSimple
	BookingID  uuid.UUID `db:"booking_id"`
	ShowID     uuid.UUID `db:"show_id"`
	SeatNumber string    `db:"seat_number"`
	Cancelled  bool      `db:"cancelled"`
}
