package response

import (
	"time"

	"cinex-backend/internal/data/entity"
)

type ShowResponse struct {
	ID          string  `json:"id"`
	MovieID     string  `json:"movie_id"`
	CinemaID    string  `json:"cinema_id"`
	ScreenName  string  `json:"screen_name"`
	ScreenType  *string `json:"screen_type,omitempty"`
	StartTime   string  `json:"start_time"`
	TicketPrice float64 `json:"ticket_price"`

	// Filled on detail lookups
	MovieTitle string          `json:"movie_title,omitempty"`
	Cinema     *CinemaResponse `json:"cinema,omitempty"`
}

func ShowToResponse(show *entity.Show) ShowResponse {
	return ShowResponse{
		ID:          show.ID.String(),
		MovieID:     show.MovieID.String(),
		CinemaID:    show.CinemaID.String(),
		ScreenName:  show.ScreenName,
		ScreenType:  show.ScreenType,
		StartTime:   show.StartTime.Format(time.RFC3339),
		TicketPrice: show.TicketPrice,
	}
}
