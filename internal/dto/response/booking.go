package response

import (
	"time"

	"cinex-backend/internal/data/entity"
)

type BookingResponse struct {
	ID           string               `json:"id"`
	BookingRef   string               `json:"booking_ref"`
	UserID       *string              `json:"user_id,omitempty"`
	ShowID       string               `json:"show_id"`
	MovieTitle   string               `json:"movie_title,omitempty"`
	CinemaName   string               `json:"cinema_name,omitempty"`
	ScreenName   string               `json:"screen_name,omitempty"`
	StartTime    string               `json:"start_time,omitempty"`
	SeatNumbers  []string             `json:"seat_numbers"`
	TotalAmount  float64              `json:"total_amount"`
	Status       entity.BookingStatus `json:"status"`
	ContactEmail string               `json:"contact_email"`
	ContactPhone string               `json:"contact_phone"`
	BookingDate  time.Time            `json:"booking_date"`
}

type BookedSeatsResponse struct {
	ShowID      string   `json:"show_id"`
	BookedSeats []string `json:"booked_seats"`
}
