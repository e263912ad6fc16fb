package entity

import (
	"time"
)

type Movie struct {
	Base
	Title        string     `db:"title"`
	Description  *string    `db:"description"`
	DurationMins int        `db:"duration_mins"`
	Language     *string    `db:"language"`
	ReleaseDate  *time.Time `db:"release_date"`
	Rating       *float64   `db:"rating"`
	PosterURL    *string    `db:"poster_url"`
	TrailerURL   *string    `db:"trailer_url"`
}
