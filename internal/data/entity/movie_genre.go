package entity

import "github.com/google/uuid"

// MovieGenre is one (movie, genre) pair; a movie owns many.
type MovieGenre struct {
	MovieID uuid.UUID `db:"movie_id"`
	Genre   string    `db:"genre"`
}
