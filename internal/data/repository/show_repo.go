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

type ShowRepository interface {
	Create(ctx context.Context, show *entity.Show) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Show, error)
	FindByMovieID(ctx context.Context, movieID uuid.UUID) ([]*entity.Show, error)
	Update(ctx context.Context, show *entity.Show) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type showRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewShowRepository(db database.PgxIface, log *zap.Logger) ShowRepository {
	return &showRepository{
		db:  db,
		log: log.With(zap.String("repository", "show")),
	}
}

func (r *showRepository) Create(ctx context.Context, show *entity.Show) error {
	query := `
		INSERT INTO shows (id, movie_id, cinema_id, screen_name, screen_type, start_time, ticket_price, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.Exec(ctx, query,
		show.ID,
		show.MovieID,
		show.CinemaID,
		show.ScreenName,
		show.ScreenType,
		show.StartTime,
		show.TicketPrice,
		show.CreatedAt,
		show.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create show",
			zap.Error(err),
			zap.String("movie_id", show.MovieID.String()),
			zap.String("cinema_id", show.CinemaID.String()),
		)
		return fmt.Errorf("create show: %w", err)
	}

	return nil
}

func (r *showRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Show, error) {
	query := `
		SELECT id, movie_id, cinema_id, screen_name, screen_type, start_time, ticket_price, created_at, updated_at
		FROM shows
		WHERE id = $1
	`

	var show entity.Show
	err := r.db.QueryRow(ctx, query, id).Scan(
		&show.ID,
		&show.MovieID,
		&show.CinemaID,
		&show.ScreenName,
		&show.ScreenType,
		&show.StartTime,
		&show.TicketPrice,
		&show.CreatedAt,
		&show.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find show by ID",
			zap.Error(err),
			zap.String("show_id", id.String()),
		)
		return nil, fmt.Errorf("find show by ID %s: %w", id.String(), err)
	}

	return &show, nil
}

func (r *showRepository) FindByMovieID(ctx context.Context, movieID uuid.UUID) ([]*entity.Show, error) {
	query := `
		SELECT id, movie_id, cinema_id, screen_name, screen_type, start_time, ticket_price, created_at, updated_at
		FROM shows
		WHERE movie_id = $1
		ORDER BY start_time
	`

	rows, err := r.db.Query(ctx, query, movieID)
	if err != nil {
		r.log.Error("Failed to find shows by movie ID",
			zap.Error(err),
			zap.String("movie_id", movieID.String()),
		)
		return nil, fmt.Errorf("find shows by movie ID %s: %w", movieID.String(), err)
	}
	defer rows.Close()

	var shows []*entity.Show
	for rows.Next() {
		var show entity.Show
		err := rows.Scan(
			&show.ID,
			&show.MovieID,
			&show.CinemaID,
			&show.ScreenName,
			&show.ScreenType,
			&show.StartTime,
			&show.TicketPrice,
			&show.CreatedAt,
			&show.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan show row", zap.Error(err))
			return nil, fmt.Errorf("scan show row: %w", err)
		}
		shows = append(shows, &show)
	}

	return shows, rows.Err()
}

func (r *showRepository) Update(ctx context.Context, show *entity.Show) error {
	query := `
		UPDATE shows
		SET movie_id = $2, cinema_id = $3, screen_name = $4, screen_type = $5,
		    start_time = $6, ticket_price = $7, updated_at = $8
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		show.ID,
		show.MovieID,
		show.CinemaID,
		show.ScreenName,
		show.ScreenType,
		show.StartTime,
		show.TicketPrice,
		show.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update show",
			zap.Error(err),
			zap.String("show_id", show.ID.String()),
		)
		return fmt.Errorf("update show %s: %w", show.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("show %s: %w", show.ID.String(), ErrNotFound)
	}

	return nil
}

func (r *showRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM shows WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete show",
			zap.Error(err),
			zap.String("show_id", id.String()),
		)
		return fmt.Errorf("delete show %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("show %s: %w", id.String(), ErrNotFound)
	}

	return nil
}
