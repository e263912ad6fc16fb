package response

import "cinex-backend/internal/data/entity"

type CinemaResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Location string `json:"location"`
}

func CinemaToResponse(cinema *entity.Cinema) CinemaResponse {
	return CinemaResponse{
		ID:       cinema.ID.String(),
		Name:     cinema.Name,
		Location: cinema.Location,
	}
}
