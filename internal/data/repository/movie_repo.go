package repository

import (
	"context"
	"fmt"

	"cinex-backend/internal/data/entity"
	"cinex-backend/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type MovieRepository interface {
	Create(ctx context.Context, movie *entity.Movie) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Movie, error)
	FindAll(ctx context.Context, limit, offset int, search, genre string) ([]*entity.Movie, error)
	CountAll(ctx context.Context, search, genre string) (int64, error)
	Update(ctx context.Context, movie *entity.Movie) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type movieRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewMovieRepository(db database.PgxIface, log *zap.Logger) MovieRepository {
	return &movieRepository{
		db:  db,
		log: log.With(zap.String("repository", "movie")),
	}
}

const movieColumns = `id, title, description, duration_mins, language, release_date, rating, poster_url, trailer_url, created_at, updated_at`

func (r *movieRepository) Create(ctx context.Context, movie *entity.Movie) error {
	query := `
		INSERT INTO movies (` + movieColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.db.Exec(ctx, query,
		movie.ID,
		movie.Title,
		movie.Description,
		movie.DurationMins,
		movie.Language,
		movie.ReleaseDate,
		movie.Rating,
		movie.PosterURL,
		movie.TrailerURL,
		movie.CreatedAt,
		movie.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create movie",
			zap.Error(err),
			zap.String("title", movie.Title),
		)
		return fmt.Errorf("create movie %q: %w", movie.Title, err)
	}

	return nil
}

func (r *movieRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Movie, error) {
	query := `SELECT ` + movieColumns + ` FROM movies WHERE id = $1`

	var movie entity.Movie
	err := r.db.QueryRow(ctx, query, id).Scan(
		&movie.ID,
		&movie.Title,
		&movie.Description,
		&movie.DurationMins,
		&movie.Language,
		&movie.ReleaseDate,
		&movie.Rating,
		&movie.PosterURL,
		&movie.TrailerURL,
		&movie.CreatedAt,
		&movie.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find movie by ID",
			zap.Error(err),
			zap.String("movie_id", id.String()),
		)
		return nil, fmt.Errorf("find movie by ID %s: %w", id.String(), err)
	}

	return &movie, nil
}

// FindAll applies optional case-insensitive title search and genre filter.
func (r *movieRepository) FindAll(ctx context.Context, limit, offset int, search, genre string) ([]*entity.Movie, error) {
	query := `
		SELECT DISTINCT m.id, m.title, m.description, m.duration_mins, m.language, m.release_date,
		       m.rating, m.poster_url, m.trailer_url, m.created_at, m.updated_at
		FROM movies m
	`
	args := []any{}
	where := ""

	if genre != "" {
		args = append(args, genre)
		query += fmt.Sprintf(" INNER JOIN movie_genres mg ON mg.movie_id = m.id AND mg.genre = $%d", len(args))
	}
	if search != "" {
		args = append(args, "%"+search+"%")
		where = fmt.Sprintf(" WHERE m.title ILIKE $%d", len(args))
	}

	args = append(args, limit, offset)
	query += where + fmt.Sprintf(" ORDER BY m.title LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to find movies",
			zap.Error(err),
			zap.String("search", search),
			zap.String("genre", genre),
		)
		return nil, fmt.Errorf("find movies: %w", err)
	}
	defer rows.Close()

	var movies []*entity.Movie
	for rows.Next() {
		var movie entity.Movie
		err := rows.Scan(
			&movie.ID,
			&movie.Title,
			&movie.Description,
			&movie.DurationMins,
			&movie.Language,
			&movie.ReleaseDate,
			&movie.Rating,
			&movie.PosterURL,
			&movie.TrailerURL,
			&movie.CreatedAt,
			&movie.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan movie row", zap.Error(err))
			return nil, fmt.Errorf("scan movie row: %w", err)
		}
		movies = append(movies, &movie)
	}

	return movies, rows.Err()
}

func (r *movieRepository) CountAll(ctx context.Context, search, genre string) (int64, error) {
	query := `SELECT COUNT(DISTINCT m.id) FROM movies m`
	args := []any{}

	if genre != "" {
		args = append(args, genre)
		query += fmt.Sprintf(" INNER JOIN movie_genres mg ON mg.movie_id = m.id AND mg.genre = $%d", len(args))
	}
	if search != "" {
		args = append(args, "%"+search+"%")
		query += fmt.Sprintf(" WHERE m.title ILIKE $%d", len(args))
	}

	var count int64
	if err := r.db.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		r.log.Error("Failed to count movies", zap.Error(err))
		return 0, fmt.Errorf("count movies: %w", err)
	}

	return count, nil
}

func (r *movieRepository) Update(ctx context.Context, movie *entity.Movie) error {
	query := `
		UPDATE movies
		SET title = $2, description = $3, duration_mins = $4, language = $5, release_date = $6,
		    rating = $7, poster_url = $8, trailer_url = $9, updated_at = $10
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		movie.ID,
		movie.Title,
		movie.Description,
		movie.DurationMins,
		movie.Language,
		movie.ReleaseDate,
		movie.Rating,
		movie.PosterURL,
		movie.TrailerURL,
		movie.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update movie",
			zap.Error(err),
			zap.String("movie_id", movie.ID.String()),
		)
		return fmt.Errorf("update movie %s: %w", movie.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("movie %s: %w", movie.ID.String(), ErrNotFound)
	}

	return nil
}

func (r *movieRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM movies WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete movie",
			zap.Error(err),
			zap.String("movie_id", id.String()),
		)
		return fmt.Errorf("delete movie %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("movie %s: %w", id.String(), ErrNotFound)
	}

	r.log.Info("Movie deleted", zap.String("movie_id", id.String()))
	return nil
}
