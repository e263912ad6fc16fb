package repository

import (
	"context"
	"fmt"

	"cinex-backend/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type MovieGenreRepository interface {
	FindByMovieID(ctx context.Context, movieID uuid.UUID) ([]string, error)

	// Replace swaps a movie's genre set: delete existing rows, insert the
	// new ones. Used by both create and update.
	Replace(ctx context.Context, movieID uuid.UUID, genres []string) error
}

type movieGenreRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewMovieGenreRepository(db database.PgxIface, log *zap.Logger) MovieGenreRepository {
	return &movieGenreRepository{
		db:  db,
		log: log.With(zap.String("repository", "movie_genre")),
	}
}

func (r *movieGenreRepository) FindByMovieID(ctx context.Context, movieID uuid.UUID) ([]string, error) {
	query := `
		SELECT genre
		FROM movie_genres
		WHERE movie_id = $1
		ORDER BY genre
	`

	rows, err := r.db.Query(ctx, query, movieID)
	if err != nil {
		r.log.Error("Failed to find genres by movie ID",
			zap.Error(err),
			zap.String("movie_id", movieID.String()),
		)
		return nil, fmt.Errorf("find genres by movie ID %s: %w", movieID.String(), err)
	}
	defer rows.Close()

	var genres []string
	for rows.Next() {
		var genre string
		if err := rows.Scan(&genre); err != nil {
			r.log.Error("Failed to scan genre row", zap.Error(err))
			return nil, fmt.Errorf("scan genre row: %w", err)
		}
		genres = append(genres, genre)
	}

	return genres, rows.Err()
}

func (r *movieGenreRepository) Replace(ctx context.Context, movieID uuid.UUID, genres []string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin genre replace tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM movie_genres WHERE movie_id = $1`, movieID); err != nil {
		r.log.Error("Failed to clear movie genres",
			zap.Error(err),
			zap.String("movie_id", movieID.String()),
		)
		return fmt.Errorf("clear genres for movie %s: %w", movieID.String(), err)
	}

	for _, genre := range genres {
		_, err := tx.Exec(ctx,
			`INSERT INTO movie_genres (movie_id, genre) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			movieID, genre,
		)
		if err != nil {
			r.log.Error("Failed to insert movie genre",
				zap.Error(err),
				zap.String("movie_id", movieID.String()),
				zap.String("genre", genre),
			)
			return fmt.Errorf("insert genre %q for movie %s: %w", genre, movieID.String(), err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit genre replace tx: %w", err)
	}

	return nil
}
