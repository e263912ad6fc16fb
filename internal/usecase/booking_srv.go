package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"cinex-backend/internal/data/entity"
	"cinex-backend/internal/data/repository"
	"cinex-backend/internal/dto/request"
	"cinex-backend/internal/dto/response"
	"cinex-backend/pkg/mailer"
	"cinex-backend/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BookingService coordinates seat reservation: it validates a requested
// seat set against a show's current state, commits the booking atomically
// through the repository, and owns the confirmed -> cancelled lifecycle.
type BookingService interface {
	CreateBooking(ctx context.Context, req *request.CreateBookingRequest) (*response.BookingResponse, error)
	GetBookedSeats(ctx context.Context, showID string) (*response.BookedSeatsResponse, error)
	CancelBooking(ctx context.Context, bookingID string) error
	GetUserBookings(ctx context.Context, userID string) ([]response.BookingResponse, error)
}

type bookingService struct {
	repo   *repository.Repository
	mailer mailer.Mailer
	log    *zap.Logger
}

func NewBookingService(repo *repository.Repository, m mailer.Mailer, log *zap.Logger) BookingService {
	return &bookingService{
		repo:   repo,
		mailer: m,
		log:    log.With(zap.String("service", "booking")),
	}
}

func (s *bookingService) CreateBooking(ctx context.Context, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	// Validate request before touching storage
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create booking validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: validation failed: %s", ErrInvalidInput, utils.FormatValidationErrors(errs))
	}

	showID, err := uuid.Parse(req.ShowID)
	if err != nil {
		return nil, fmt.Errorf("%w: show ID %s: %v", ErrInvalidInput, req.ShowID, err)
	}

	// Repeated labels within one request are treated as a single seat so
	// the caller is never conflicted against, or charged for, itself.
	seats := dedupeSeats(req.SeatNumbers)

	// Resolve show for existence check and response enrichment
	show, err := s.repo.Show.FindByID(ctx, showID)
	if err != nil {
		s.log.Error("Failed to resolve show", zap.Error(err), zap.String("show_id", req.ShowID))
		return nil, fmt.Errorf("resolve show: %w", err)
	}
	if show == nil {
		return nil, fmt.Errorf("show %s: %w", req.ShowID, repository.ErrNotFound)
	}

	// Materialize a minimal user record on first booking. Not an
	// authentication check; the ID arrives verified from the IdP.
	if req.UserID != nil {
		if err := s.ensureUser(ctx, *req.UserID, req.ContactEmail); err != nil {
			s.log.Error("Failed to materialize user",
				zap.Error(err),
				zap.String("user_id", *req.UserID),
			)
			return nil, fmt.Errorf("materialize user %s: %w", *req.UserID, err)
		}
	}

	booking := &entity.Booking{
		ID:           uuid.New(),
		BookingRef:   utils.GenerateBookingRef(),
		UserID:       req.UserID,
		ShowID:       showID,
		BookingDate:  time.Now(),
		TotalAmount:  req.TotalAmount,
		Status:       entity.BookingStatusConfirmed,
		ContactEmail: req.ContactEmail,
		ContactPhone: req.ContactPhone,
	}

	// Availability check and insert run as one serialized transaction in
	// the repository; a stale check here would just produce the same
	// conflict error from the store.
	if err := s.repo.Booking.ReserveSeats(ctx, booking, seats); err != nil {
		return nil, err
	}

	s.log.Info("Booking created",
		zap.String("booking_id", booking.ID.String()),
		zap.String("booking_ref", booking.BookingRef),
		zap.String("show_id", req.ShowID),
		zap.Int("seat_count", len(seats)),
		zap.Float64("total_amount", req.TotalAmount),
	)

	resp := s.buildBookingResponse(ctx, booking, show, seats)

	// Fire-and-forget confirmation, after commit and outside any lock.
	go s.sendConfirmation(booking, show, seats, resp.MovieTitle, resp.CinemaName)

	return resp, nil
}

func (s *bookingService) GetBookedSeats(ctx context.Context, showID string) (*response.BookedSeatsResponse, error) {
	id, err := uuid.Parse(showID)
	if err != nil {
		return nil, fmt.Errorf("%w: show ID %s: %v", ErrInvalidInput, showID, err)
	}

	show, err := s.repo.Show.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("resolve show: %w", err)
	}
	if show == nil {
		return nil, fmt.Errorf("show %s: %w", showID, repository.ErrNotFound)
	}

	seats, err := s.repo.BookingSeat.FindTakenSeatsByShow(ctx, id)
	if err != nil {
		s.log.Error("Failed to get taken seats", zap.Error(err), zap.String("show_id", showID))
		return nil, fmt.Errorf("get taken seats: %w", err)
	}

	if seats == nil {
		seats = []string{}
	}

	return &response.BookedSeatsResponse{
		ShowID:      showID,
		BookedSeats: seats,
	}, nil
}

func (s *bookingService) CancelBooking(ctx context.Context, bookingID string) error {
	id, err := uuid.Parse(bookingID)
	if err != nil {
		return fmt.Errorf("%w: booking ID %s: %v", ErrInvalidInput, bookingID, err)
	}

	if err := s.repo.Booking.Cancel(ctx, id); err != nil {
		return err
	}

	s.log.Info("Booking cancelled", zap.String("booking_id", bookingID))
	return nil
}

func (s *bookingService) GetUserBookings(ctx context.Context, userID string) ([]response.BookingResponse, error) {
	bookings, err := s.repo.Booking.FindByUserID(ctx, userID)
	if err != nil {
		s.log.Error("Failed to get user bookings", zap.Error(err), zap.String("user_id", userID))
		return nil, fmt.Errorf("get user bookings: %w", err)
	}

	responses := make([]response.BookingResponse, len(bookings))
	for i, booking := range bookings {
		bookingSeats, err := s.repo.BookingSeat.FindByBookingID(ctx, booking.ID)
		if err != nil {
			s.log.Error("Failed to get booking seats",
				zap.Error(err),
				zap.String("booking_id", booking.ID.String()),
			)
			return nil, fmt.Errorf("get seats for booking %s: %w", booking.ID.String(), err)
		}

		var seats []string
		for _, bs := range bookingSeats {
			seats = append(seats, bs.SeatNumber)
		}
		responses[i] = *s.buildBookingResponse(ctx, booking, nil, seats)
	}

	s.log.Info("User bookings retrieved",
		zap.String("user_id", userID),
		zap.Int("count", len(bookings)),
	)

	return responses, nil
}

// ==================== HELPERS ====================

// dedupeSeats returns the unique seat labels, sorted.
func dedupeSeats(seats []string) []string {
	seen := make(map[string]bool, len(seats))
	unique := make([]string, 0, len(seats))
	for _, seat := range seats {
		if !seen[seat] {
			seen[seat] = true
			unique = append(unique, seat)
		}
	}
	sort.Strings(unique)
	return unique
}

func (s *bookingService) ensureUser(ctx context.Context, userID, contactEmail string) error {
	user, err := s.repo.User.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if user != nil {
		return nil
	}

	firstName := contactEmail
	if at := strings.Index(contactEmail, "@"); at > 0 {
		firstName = contactEmail[:at]
	}

	return s.repo.User.Create(ctx, &entity.User{
		ID:        userID,
		FirstName: firstName,
		LastName:  "",
		Email:     contactEmail,
		Role:      entity.RoleCustomer,
		CreatedAt: time.Now(),
	})
}

// buildBookingResponse enriches a booking with show, movie and cinema
// details. Callers that already resolved the show pass it in; enrichment
// lookup failures are logged, not fatal.
func (s *bookingService) buildBookingResponse(ctx context.Context, booking *entity.Booking, show *entity.Show, seats []string) *response.BookingResponse {
	var movieTitle, cinemaName, screenName, startTime string

	if show == nil {
		var err error
		show, err = s.repo.Show.FindByID(ctx, booking.ShowID)
		if err != nil {
			s.log.Warn("Failed to resolve show for booking response",
				zap.Error(err),
				zap.String("booking_id", booking.ID.String()),
			)
		}
	}
	if show != nil {
		screenName = show.ScreenName
		startTime = show.StartTime.Format(time.RFC3339)

		movie, err := s.repo.Movie.FindByID(ctx, show.MovieID)
		if err != nil {
			s.log.Warn("Failed to resolve movie for booking response",
				zap.Error(err),
				zap.String("show_id", show.ID.String()),
			)
		}
		if movie != nil {
			movieTitle = movie.Title
		}

		cinema, err := s.repo.Cinema.FindByID(ctx, show.CinemaID)
		if err != nil {
			s.log.Warn("Failed to resolve cinema for booking response",
				zap.Error(err),
				zap.String("show_id", show.ID.String()),
			)
		}
		if cinema != nil {
			cinemaName = cinema.Name
		}
	}

	if seats == nil {
		seats = []string{}
	}

	return &response.BookingResponse{
		ID:           booking.ID.String(),
		BookingRef:   booking.BookingRef,
		UserID:       booking.UserID,
		ShowID:       booking.ShowID.String(),
		MovieTitle:   movieTitle,
		CinemaName:   cinemaName,
		ScreenName:   screenName,
		StartTime:    startTime,
		SeatNumbers:  seats,
		TotalAmount:  booking.TotalAmount,
		Status:       booking.Status,
		ContactEmail: booking.ContactEmail,
		ContactPhone: booking.ContactPhone,
		BookingDate:  booking.BookingDate,
	}
}

// sendConfirmation delivers the confirmation email. Errors are logged and
// swallowed; the booking already committed.
func (s *bookingService) sendConfirmation(booking *entity.Booking, show *entity.Show, seats []string, movieTitle, cinemaName string) {
	err := s.mailer.SendBookingConfirmation(mailer.BookingConfirmation{
		To:          booking.ContactEmail,
		MovieTitle:  movieTitle,
		CinemaName:  cinemaName,
		ScreenName:  show.ScreenName,
		StartTime:   show.StartTime,
		SeatNumbers: seats,
		BookingRef:  booking.BookingRef,
		TotalAmount: booking.TotalAmount,
	})
	if err != nil {
		s.log.Warn("Confirmation email failed",
			zap.Error(err),
			zap.String("booking_ref", booking.BookingRef),
		)
	}
}
