package response

import (
	"time"

	"cinex-backend/internal/data/entity"
)

type MovieResponse struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Description  *string  `json:"description,omitempty"`
	DurationMins int      `json:"duration_mins"`
	Language     *string  `json:"language,omitempty"`
	ReleaseDate  *string  `json:"release_date,omitempty"`
	Rating       *float64 `json:"rating,omitempty"`
	PosterURL    *string  `json:"poster_url,omitempty"`
	TrailerURL   *string  `json:"trailer_url,omitempty"`
	Genres       []string `json:"genres"`
}

func MovieToResponse(movie *entity.Movie, genres []string) MovieResponse {
	var releaseDate *string
	if movie.ReleaseDate != nil {
		formatted := movie.ReleaseDate.Format(time.DateOnly)
		releaseDate = &formatted
	}

	if genres == nil {
		genres = []string{}
	}

	return MovieResponse{
		ID:           movie.ID.String(),
		Title:        movie.Title,
		Description:  movie.Description,
		DurationMins: movie.DurationMins,
		Language:     movie.Language,
		ReleaseDate:  releaseDate,
		Rating:       movie.Rating,
		PosterURL:    movie.PosterURL,
		TrailerURL:   movie.TrailerURL,
		Genres:       genres,
	}
}
