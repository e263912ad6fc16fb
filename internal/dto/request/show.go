package request

type ShowRequest struct {
	MovieID     string  `json:"movie_id" validate:"required,uuid4"`
	CinemaID    string  `json:"cinema_id" validate:"required,uuid4"`
	ScreenName  string  `json:"screen_name" validate:"required"`
	ScreenType  *string `json:"screen_type,omitempty"`
	StartTime   string  `json:"start_time" validate:"required"` // RFC 3339
	TicketPrice float64 `json:"ticket_price" validate:"required,gt=0"`
}
