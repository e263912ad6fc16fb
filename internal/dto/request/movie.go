package request

type MovieRequest struct {
	Title        string   `json:"title" validate:"required"`
	Description  *string  `json:"description,omitempty"`
	DurationMins int      `json:"duration_mins" validate:"required,min=1"`
	Language     *string  `json:"language,omitempty"`
	ReleaseDate  *string  `json:"release_date,omitempty"` // YYYY-MM-DD
	Rating       *float64 `json:"rating,omitempty"`
	PosterURL    *string  `json:"poster_url,omitempty"`
	TrailerURL   *string  `json:"trailer_url,omitempty"`
	Genres       []string `json:"genres" validate:"dive,required"`
}
