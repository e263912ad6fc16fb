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

type ShowService interface {
	GetShowByID(ctx context.Context, showID string) (*response.ShowResponse, error)
	CreateShow(ctx context.Context, req *request.ShowRequest) (*response.ShowResponse, error)
	UpdateShow(ctx context.Context, showID string, req *request.ShowRequest) (*response.ShowResponse, error)
	DeleteShow(ctx context.Context, showID string) error
}

type showService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewShowService(repo *repository.Repository, log *zap.Logger) ShowService {
	return &showService{
		repo: repo,
		log:  log.With(zap.String("service", "show")),
	}
}

func (s *showService) GetShowByID(ctx context.Context, showID string) (*response.ShowResponse, error) {
	id, err := uuid.Parse(showID)
	if err != nil {
		return nil, fmt.Errorf("%w: show ID %s: %v", ErrInvalidInput, showID, err)
	}

	show, err := s.repo.Show.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get show by ID: %w", err)
	}
	if show == nil {
		return nil, fmt.Errorf("show %s: %w", showID, repository.ErrNotFound)
	}

	resp := response.ShowToResponse(show)

	movie, _ := s.repo.Movie.FindByID(ctx, show.MovieID)
	if movie != nil {
		resp.MovieTitle = movie.Title
	}

	cinema, _ := s.repo.Cinema.FindByID(ctx, show.CinemaID)
	if cinema != nil {
		cinemaResp := response.CinemaToResponse(cinema)
		resp.Cinema = &cinemaResp
	}

	return &resp, nil
}

func (s *showService) CreateShow(ctx context.Context, req *request.ShowRequest) (*response.ShowResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create show validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: validation failed: %s", ErrInvalidInput, utils.FormatValidationErrors(errs))
	}

	show, err := s.showFromRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	show.Base = entity.Base{
		ID:        uuid.New(),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Show.Create(ctx, show); err != nil {
		return nil, fmt.Errorf("create show: %w", err)
	}

	s.log.Info("Show created",
		zap.String("show_id", show.ID.String()),
		zap.String("movie_id", show.MovieID.String()),
	)

	resp := response.ShowToResponse(show)
	return &resp, nil
}

func (s *showService) UpdateShow(ctx context.Context, showID string, req *request.ShowRequest) (*response.ShowResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update show validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: validation failed: %s", ErrInvalidInput, utils.FormatValidationErrors(errs))
	}

	id, err := uuid.Parse(showID)
	if err != nil {
		return nil, fmt.Errorf("%w: show ID %s: %v", ErrInvalidInput, showID, err)
	}

	existing, err := s.repo.Show.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get show by ID: %w", err)
	}
	if existing == nil {
		return nil, fmt.Errorf("show %s: %w", showID, repository.ErrNotFound)
	}

	show, err := s.showFromRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	show.Base = existing.Base
	show.UpdatedAt = time.Now()

	if err := s.repo.Show.Update(ctx, show); err != nil {
		return nil, fmt.Errorf("update show: %w", err)
	}

	s.log.Info("Show updated", zap.String("show_id", showID))

	resp := response.ShowToResponse(show)
	return &resp, nil
}

func (s *showService) DeleteShow(ctx context.Context, showID string) error {
	id, err := uuid.Parse(showID)
	if err != nil {
		return fmt.Errorf("%w: show ID %s: %v", ErrInvalidInput, showID, err)
	}

	return s.repo.Show.Delete(ctx, id)
}

// showFromRequest resolves and validates the referenced movie and cinema.
func (s *showService) showFromRequest(ctx context.Context, req *request.ShowRequest) (*entity.Show, error) {
	movieID, err := uuid.Parse(req.MovieID)
	if err != nil {
		return nil, fmt.Errorf("%w: movie ID %s: %v", ErrInvalidInput, req.MovieID, err)
	}

	cinemaID, err := uuid.Parse(req.CinemaID)
	if err != nil {
		return nil, fmt.Errorf("%w: cinema ID %s: %v", ErrInvalidInput, req.CinemaID, err)
	}

	startTime, err := time.Parse(time.RFC3339, req.StartTime)
	if err != nil {
		return nil, fmt.Errorf("%w: start time %q: %v", ErrInvalidInput, req.StartTime, err)
	}

	movie, err := s.repo.Movie.FindByID(ctx, movieID)
	if err != nil {
		return nil, fmt.Errorf("resolve movie: %w", err)
	}
	if movie == nil {
		return nil, fmt.Errorf("movie %s: %w", req.MovieID, repository.ErrNotFound)
	}

	cinema, err := s.repo.Cinema.FindByID(ctx, cinemaID)
	if err != nil {
		return nil, fmt.Errorf("resolve cinema: %w", err)
	}
	if cinema == nil {
		return nil, fmt.Errorf("cinema %s: %w", req.CinemaID, repository.ErrNotFound)
	}

	return &entity.Show{
		MovieID:     movieID,
		CinemaID:    cinemaID,
		ScreenName:  req.ScreenName,
		ScreenType:  req.ScreenType,
		StartTime:   startTime,
		TicketPrice: req.TicketPrice,
	}, nil
}
