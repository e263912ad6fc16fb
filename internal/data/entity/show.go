package entity

import (
	"time"

	"github.com/google/uuid"
)

type Show struct {
	Base
	MovieID     uuid.UUID `db:"movie_id"`
	CinemaID    uuid.UUID `db:"cinema_id"`
	ScreenName  string    `db:"screen_name"`
	ScreenType  *string   `db:"screen_type"`
	StartTime   time.Time `db:"start_time"`
	TicketPrice float64   `db:"ticket_price"`
}
