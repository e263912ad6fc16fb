package entity

import (
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

type Booking struct {
	ID           uuid.UUID     `db:"id"`
	BookingRef   string        `db:"booking_ref"`
	UserID       *string       `db:"user_id"` // nil for anonymous contact-only bookings
	ShowID       uuid.UUID     `db:"show_id"`
	BookingDate  time.Time     `db:"booking_date"`
	TotalAmount  float64       `db:"total_amount"`
	Status       BookingStatus `db:"status"`
	ContactEmail string        `db:"contact_email"`
	ContactPhone string        `db:"contact_phone"`
}
