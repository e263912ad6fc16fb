package usecase

import (
	"context"
	"fmt"
	"time"

	"cinex-backend/internal/data/entity"
	"cinex-backend/internal/data/repository"
	"cinex-backend/internal/dto/request"
	"cinex-backend/internal/dto/response"
	"cinex-backend/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type MovieService interface {
	GetMovies(ctx context.Context, req *request.PaginatedRequest, search, genre string) (*response.PaginatedResponse[response.MovieResponse], error)
	GetMovieByID(ctx context.Context, movieID string) (*response.MovieResponse, error)
	CreateMovie(ctx context.Context, req *request.MovieRequest) (*response.MovieResponse, error)
	UpdateMovie(ctx context.Context, movieID string, req *request.MovieRequest) (*response.MovieResponse, error)
	DeleteMovie(ctx context.Context, movieID string) error
	GetMovieShows(ctx context.Context, movieID string) ([]response.ShowResponse, error)
}

type movieService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewMovieService(repo *repository.Repository, log *zap.Logger) MovieService {
	return &movieService{
		repo: repo,
		log:  log.With(zap.String("service", "movie")),
	}
}

func (s *movieService) GetMovies(ctx context.Context, req *request.PaginatedRequest, search, genre string) (*response.PaginatedResponse[response.MovieResponse], error) {
	limit := req.Limit()
	offset := req.Offset()

	movies, err := s.repo.Movie.FindAll(ctx, limit, offset, search, genre)
	if err != nil {
		s.log.Error("Failed to get movies",
			zap.Error(err),
			zap.Int("page", req.Page),
			zap.Int("per_page", req.PerPage),
		)
		return nil, fmt.Errorf("get movies: %w", err)
	}

	total, err := s.repo.Movie.CountAll(ctx, search, genre)
	if err != nil {
		s.log.Error("Failed to count movies", zap.Error(err))
		return nil, fmt.Errorf("count movies: %w", err)
	}

	movieResponses := make([]response.MovieResponse, len(movies))
	for i, movie := range movies {
		genres, err := s.repo.MovieGenre.FindByMovieID(ctx, movie.ID)
		if err != nil {
			s.log.Warn("Failed to get genres for movie",
				zap.Error(err),
				zap.String("movie_id", movie.ID.String()),
			)
		}
		movieResponses[i] = response.MovieToResponse(movie, genres)
	}

	s.log.Info("Movies retrieved",
		zap.Int("count", len(movies)),
		zap.Int64("total", total),
		zap.Int("page", req.Page),
	)

	return response.NewPaginatedResponse(movieResponses, req.Page, req.PerPage, total), nil
}

func (s *movieService) GetMovieByID(ctx context.Context, movieID string) (*response.MovieResponse, error) {
	id, err := uuid.Parse(movieID)
	if err != nil {
		return nil, fmt.Errorf("%w: movie ID %s: %v", ErrInvalidInput, movieID, err)
	}

	movie, err := s.repo.Movie.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get movie by ID: %w", err)
	}
	if movie == nil {
		return nil, fmt.Errorf("movie %s: %w", movieID, repository.ErrNotFound)
	}

	genres, err := s.repo.MovieGenre.FindByMovieID(ctx, movie.ID)
	if err != nil {
		s.log.Warn("Failed to get genres for movie",
			zap.Error(err),
			zap.String("movie_id", movieID),
		)
	}

	resp := response.MovieToResponse(movie, genres)
	return &resp, nil
}

func (s *movieService) CreateMovie(ctx context.Context, req *request.MovieRequest) (*response.MovieResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create movie validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: validation failed: %s", ErrInvalidInput, utils.FormatValidationErrors(errs))
	}

	releaseDate, err := parseReleaseDate(req.ReleaseDate)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	movie := &entity.Movie{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Title:        req.Title,
		Description:  req.Description,
		DurationMins: req.DurationMins,
		Language:     req.Language,
		ReleaseDate:  releaseDate,
		Rating:       req.Rating,
		PosterURL:    req.PosterURL,
		TrailerURL:   req.TrailerURL,
	}

	if err := s.repo.Movie.Create(ctx, movie); err != nil {
		return nil, fmt.Errorf("create movie: %w", err)
	}

	if len(req.Genres) > 0 {
		if err := s.repo.MovieGenre.Replace(ctx, movie.ID, req.Genres); err != nil {
			return nil, fmt.Errorf("set movie genres: %w", err)
		}
	}

	s.log.Info("Movie created",
		zap.String("movie_id", movie.ID.String()),
		zap.String("title", movie.Title),
	)

	resp := response.MovieToResponse(movie, req.Genres)
	return &resp, nil
}

func (s *movieService) UpdateMovie(ctx context.Context, movieID string, req *request.MovieRequest) (*response.MovieResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update movie validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: validation failed: %s", ErrInvalidInput, utils.FormatValidationErrors(errs))
	}

	id, err := uuid.Parse(movieID)
	if err != nil {
		return nil, fmt.Errorf("%w: movie ID %s: %v", ErrInvalidInput, movieID, err)
	}

	movie, err := s.repo.Movie.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get movie by ID: %w", err)
	}
	if movie == nil {
		return nil, fmt.Errorf("movie %s: %w", movieID, repository.ErrNotFound)
	}

	releaseDate, err := parseReleaseDate(req.ReleaseDate)
	if err != nil {
		return nil, err
	}

	movie.Title = req.Title
	movie.Description = req.Description
	movie.DurationMins = req.DurationMins
	movie.Language = req.Language
	movie.ReleaseDate = releaseDate
	movie.Rating = req.Rating
	movie.PosterURL = req.PosterURL
	movie.TrailerURL = req.TrailerURL
	movie.UpdatedAt = time.Now()

	if err := s.repo.Movie.Update(ctx, movie); err != nil {
		return nil, fmt.Errorf("update movie: %w", err)
	}

	// Genre set is replaced wholesale, mirroring the movie payload
	if err := s.repo.MovieGenre.Replace(ctx, movie.ID, req.Genres); err != nil {
		return nil, fmt.Errorf("replace movie genres: %w", err)
	}

	s.log.Info("Movie updated", zap.String("movie_id", movieID))

	resp := response.MovieToResponse(movie, req.Genres)
	return &resp, nil
}

func (s *movieService) DeleteMovie(ctx context.Context, movieID string) error {
	id, err := uuid.Parse(movieID)
	if err != nil {
		return fmt.Errorf("%w: movie ID %s: %v", ErrInvalidInput, movieID, err)
	}

	// Dependent genres, shows and bookings go via FK cascade
	if err := s.repo.Movie.Delete(ctx, id); err != nil {
		return err
	}

	return nil
}

func (s *movieService) GetMovieShows(ctx context.Context, movieID string) ([]response.ShowResponse, error) {
	id, err := uuid.Parse(movieID)
	if err != nil {
		return nil, fmt.Errorf("%w: movie ID %s: %v", ErrInvalidInput, movieID, err)
	}

	movie, err := s.repo.Movie.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get movie by ID: %w", err)
	}
	if movie == nil {
		return nil, fmt.Errorf("movie %s: %w", movieID, repository.ErrNotFound)
	}

	shows, err := s.repo.Show.FindByMovieID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get shows for movie: %w", err)
	}

	showResponses := make([]response.ShowResponse, len(shows))
	for i, show := range shows {
		showResponses[i] = response.ShowToResponse(show)
		showResponses[i].MovieTitle = movie.Title

		cinema, _ := s.repo.Cinema.FindByID(ctx, show.CinemaID)
		if cinema != nil {
			cinemaResp := response.CinemaToResponse(cinema)
			showResponses[i].Cinema = &cinemaResp
		}
	}

	return showResponses, nil
}

func parseReleaseDate(value *string) (*time.Time, error) {
	if value == nil || *value == "" {
		return nil, nil
	}

	parsed, err := time.Parse(time.DateOnly, *value)
	if err != nil {
		return nil, fmt.Errorf("%w: release date %q: %v", ErrInvalidInput, *value, err)
	}
	return &parsed, nil
}
