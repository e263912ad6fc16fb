package usecase

import (
	"context"
	"fmt"

	"cinex-backend/internal/data/repository"
	"cinex-backend/internal/dto/response"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CinemaService interface {
	GetCinemas(ctx context.Context) ([]response.CinemaResponse, error)
	GetCinemaByID(ctx context.Context, cinemaID string) (*response.CinemaResponse, error)
}

type cinemaService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewCinemaService(repo *repository.Repository, log *zap.Logger) CinemaService {
	return &cinemaService{
		repo: repo,
		log:  log.With(zap.String("service", "cinema")),
	}
}

func (s *cinemaService) GetCinemas(ctx context.Context) ([]response.CinemaResponse, error) {
	cinemas, err := s.repo.Cinema.FindAll(ctx)
	if err != nil {
		s.log.Error("Failed to get cinemas", zap.Error(err))
		return nil, fmt.Errorf("get cinemas: %w", err)
	}

	cinemaResponses := make([]response.CinemaResponse, len(cinemas))
	for i, cinema := range cinemas {
		cinemaResponses[i] = response.CinemaToResponse(cinema)
	}

	return cinemaResponses, nil
}

func (s *cinemaService) GetCinemaByID(ctx context.Context, cinemaID string) (*response.CinemaResponse, error) {
	id, err := uuid.Parse(cinemaID)
	if err != nil {
		return nil, fmt.Errorf("%w: cinema ID %s: %v", ErrInvalidInput, cinemaID, err)
	}

	cinema, err := s.repo.Cinema.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get cinema by ID: %w", err)
	}
	if cinema == nil {
		return nil, fmt.Errorf("cinema %s: %w", cinemaID, repository.ErrNotFound)
	}

	resp := response.CinemaToResponse(cinema)
	return &resp, nil
}
