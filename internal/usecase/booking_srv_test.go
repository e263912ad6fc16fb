package usecase

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"cinex-backend/internal/data/entity"
	"cinex-backend/internal/data/repository"
	"cinex-backend/internal/dto/request"
	"cinex-backend/pkg/mailer"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// memStore backs the fake repositories. Its mutex plays the role of the
// database's per-show serialization: ReserveSeats holds it across the
// availability read and the insert, exactly like the SQL transaction.
type memStore struct {
	mu       sync.Mutex
	shows    map[uuid.UUID]*entity.Show
	movies   map[uuid.UUID]*entity.Movie
	cinemas  map[uuid.UUID]*entity.Cinema
	users    map[string]*entity.User
	bookings map[uuid.UUID]*entity.Booking
	seats    []*entity.BookingSeat
}

func newMemStore() *memStore {
	return &memStore{
		shows:    make(map[uuid.UUID]*entity.Show),
		movies:   make(map[uuid.UUID]*entity.Movie),
		cinemas:  make(map[uuid.UUID]*entity.Cinema),
		users:    make(map[string]*entity.User),
		bookings: make(map[uuid.UUID]*entity.Booking),
	}
}

// ---- fake repositories ----

type fakeShowRepo struct {
	store       *memStore
	findByIDCnt int
}

func (r *fakeShowRepo) Create(_ context.Context, show *entity.Show) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.shows[show.ID] = show
	return nil
}

func (r *fakeShowRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Show, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.findByIDCnt++
	return r.store.shows[id], nil
}

func (r *fakeShowRepo) FindByMovieID(_ context.Context, movieID uuid.UUID) ([]*entity.Show, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var shows []*entity.Show
	for _, show := range r.store.shows {
		if show.MovieID == movieID {
			shows = append(shows, show)
		}
	}
	return shows, nil
}

func (r *fakeShowRepo) Update(_ context.Context, show *entity.Show) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.shows[show.ID]; !ok {
		return repository.ErrNotFound
	}
	r.store.shows[show.ID] = show
	return nil
}

func (r *fakeShowRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.shows[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.store.shows, id)
	return nil
}

type fakeMovieRepo struct{ store *memStore }

func (r *fakeMovieRepo) Create(_ context.Context, movie *entity.Movie) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.movies[movie.ID] = movie
	return nil
}

func (r *fakeMovieRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Movie, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.store.movies[id], nil
}

func (r *fakeMovieRepo) FindAll(_ context.Context, _, _ int, _, _ string) ([]*entity.Movie, error) {
	return nil, nil
}

func (r *fakeMovieRepo) CountAll(_ context.Context, _, _ string) (int64, error) { return 0, nil }

func (r *fakeMovieRepo) Update(_ context.Context, _ *entity.Movie) error { return nil }

func (r *fakeMovieRepo) Delete(_ context.Context, _ uuid.UUID) error { return nil }

type fakeCinemaRepo struct{ store *memStore }

func (r *fakeCinemaRepo) FindAll(_ context.Context) ([]*entity.Cinema, error) { return nil, nil }

func (r *fakeCinemaRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Cinema, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.store.cinemas[id], nil
}

type fakeUserRepo struct{ store *memStore }

func (r *fakeUserRepo) FindByID(_ context.Context, id string) (*entity.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.store.users[id], nil
}

func (r *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.users[user.ID]; !ok {
		r.store.users[user.ID] = user
	}
	return nil
}

type fakeBookingRepo struct{ store *memStore }

func (r *fakeBookingRepo) ReserveSeats(_ context.Context, booking *entity.Booking, seats []string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.shows[booking.ShowID]; !ok {
		return repository.ErrNotFound
	}

	taken := make(map[string]bool)
	for _, bs := range r.store.seats {
		if bs.ShowID == booking.ShowID && !bs.Cancelled {
			taken[bs.SeatNumber] = true
		}
	}

	var conflicts []string
	for _, seat := range seats {
		if taken[seat] {
			conflicts = append(conflicts, seat)
		}
	}
	if len(conflicts) > 0 {
		sort.Strings(conflicts)
		return &repository.SeatConflictError{Seats: conflicts}
	}

	r.store.bookings[booking.ID] = booking
	for _, seat := range seats {
		r.store.seats = append(r.store.seats, &entity.BookingSeat{
			BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: booking.BookingDate},
			BookingID:  booking.ID,
			ShowID:     booking.ShowID,
			SeatNumber: seat,
		})
	}
	return nil
}

func (r *fakeBookingRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Booking, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.store.bookings[id], nil
}

func (r *fakeBookingRepo) FindByUserID(_ context.Context, userID string) ([]*entity.Booking, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var bookings []*entity.Booking
	for _, b := range r.store.bookings {
		if b.UserID != nil && *b.UserID == userID {
			bookings = append(bookings, b)
		}
	}
	sort.Slice(bookings, func(i, j int) bool {
		return bookings[i].BookingDate.After(bookings[j].BookingDate)
	})
	return bookings, nil
}

func (r *fakeBookingRepo) Cancel(_ context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	booking, ok := r.store.bookings[id]
	if !ok {
		return repository.ErrNotFound
	}
	if booking.Status == entity.BookingStatusCancelled {
		return repository.ErrAlreadyCancelled
	}

	booking.Status = entity.BookingStatusCancelled
	for _, bs := range r.store.seats {
		if bs.BookingID == id {
			bs.Cancelled = true
		}
	}
	return nil
}

type fakeBookingSeatRepo struct {
	store   *memStore
	findErr error
}

func (r *fakeBookingSeatRepo) FindByBookingID(_ context.Context, bookingID uuid.UUID) ([]*entity.BookingSeat, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var seats []*entity.BookingSeat
	for _, bs := range r.store.seats {
		if bs.BookingID == bookingID {
			seats = append(seats, bs)
		}
	}
	sort.Slice(seats, func(i, j int) bool { return seats[i].SeatNumber < seats[j].SeatNumber })
	return seats, nil
}

func (r *fakeBookingSeatRepo) FindTakenSeatsByShow(_ context.Context, showID uuid.UUID) ([]string, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var seats []string
	for _, bs := range r.store.seats {
		if bs.ShowID == showID && !bs.Cancelled {
			seats = append(seats, bs.SeatNumber)
		}
	}
	sort.Strings(seats)
	return seats, nil
}

// recordingMailer counts deliveries; sends a signal per call so tests can
// wait for the fire-and-forget goroutine.
type recordingMailer struct {
	mu    sync.Mutex
	sent  []mailer.BookingConfirmation
	calls chan mailer.BookingConfirmation
	err   error
}

func newRecordingMailer() *recordingMailer {
	return &recordingMailer{calls: make(chan mailer.BookingConfirmation, 16)}
}

func (m *recordingMailer) SendBookingConfirmation(data mailer.BookingConfirmation) error {
	m.mu.Lock()
	m.sent = append(m.sent, data)
	m.mu.Unlock()
	m.calls <- data
	return m.err
}

func (m *recordingMailer) waitForCall(t *testing.T) mailer.BookingConfirmation {
	t.Helper()
	select {
	case data := <-m.calls:
		return data
	case <-time.After(2 * time.Second):
		t.Fatal("confirmation email was never requested")
		return mailer.BookingConfirmation{}
	}
}

// ---- fixture ----

type bookingFixture struct {
	store    *memStore
	service  BookingService
	mailer   *recordingMailer
	showRepo *fakeShowRepo
	seatRepo *fakeBookingSeatRepo
	showID   uuid.UUID
}

func newBookingFixture(t *testing.T) *bookingFixture {
	t.Helper()

	store := newMemStore()

	movieID := uuid.New()
	cinemaID := uuid.New()
	showID := uuid.New()

	store.movies[movieID] = &entity.Movie{
		Base:         entity.Base{ID: movieID},
		Title:        "Dune: Part Two",
		DurationMins: 166,
	}
	store.cinemas[cinemaID] = &entity.Cinema{
		Base:     entity.Base{ID: cinemaID},
		Name:     "Scope Cinemas",
		Location: "Colombo 02",
	}
	store.shows[showID] = &entity.Show{
		Base:        entity.Base{ID: showID},
		MovieID:     movieID,
		CinemaID:    cinemaID,
		ScreenName:  "Screen 1",
		StartTime:   time.Now().Add(24 * time.Hour),
		TicketPrice: 2500,
	}

	showRepo := &fakeShowRepo{store: store}
	seatRepo := &fakeBookingSeatRepo{store: store}

	repo := &repository.Repository{
		User:        &fakeUserRepo{store: store},
		Movie:       &fakeMovieRepo{store: store},
		Cinema:      &fakeCinemaRepo{store: store},
		Show:        showRepo,
		Booking:     &fakeBookingRepo{store: store},
		BookingSeat: seatRepo,
	}

	m := newRecordingMailer()

	return &bookingFixture{
		store:    store,
		service:  NewBookingService(repo, m, zap.NewNop()),
		mailer:   m,
		showRepo: showRepo,
		seatRepo: seatRepo,
		showID:   showID,
	}
}

func (f *bookingFixture) createRequest(seats ...string) *request.CreateBookingRequest {
	return &request.CreateBookingRequest{
		ShowID:       f.showID.String(),
		SeatNumbers:  seats,
		ContactEmail: "guest@example.com",
		ContactPhone: "+94771234567",
		TotalAmount:  5000,
	}
}

// ---- tests ----

func TestCreateBookingSuccess(t *testing.T) {
	f := newBookingFixture(t)

	booking, err := f.service.CreateBooking(context.Background(), f.createRequest("A1", "A2"))
	require.NoError(t, err)

	assert.Equal(t, entity.BookingStatusConfirmed, booking.Status)
	assert.Equal(t, []string{"A1", "A2"}, booking.SeatNumbers)
	assert.Equal(t, "Dune: Part Two", booking.MovieTitle)
	assert.Equal(t, "Scope Cinemas", booking.CinemaName)
	assert.NotEmpty(t, booking.BookingRef)

	seats, err := f.service.GetBookedSeats(context.Background(), f.showID.String())
	require.NoError(t, err)
	assert.Equal(t, []string{"A1", "A2"}, seats.BookedSeats)
}

func TestCreateBookingShowNotFound(t *testing.T) {
	f := newBookingFixture(t)

	req := f.createRequest("A1")
	req.ShowID = uuid.New().String()

	_, err := f.service.CreateBooking(context.Background(), req)
	require.Error(t, err)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	// Nothing was written
	assert.Empty(t, f.store.bookings)
	assert.Empty(t, f.store.seats)
}

func TestCreateBookingEmptySeatsRejected(t *testing.T) {
	f := newBookingFixture(t)

	_, err := f.service.CreateBooking(context.Background(), f.createRequest())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Contains(t, err.Error(), "validation failed")
	assert.Empty(t, f.store.bookings)
}

func TestCreateBookingMissingContactRejected(t *testing.T) {
	f := newBookingFixture(t)

	req := f.createRequest("A1")
	req.ContactEmail = ""

	_, err := f.service.CreateBooking(context.Background(), req)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestCreateBookingMalformedShowIDIsInvalidInput(t *testing.T) {
	f := newBookingFixture(t)

	req := f.createRequest("A1")
	req.ShowID = "not-a-uuid"

	_, err := f.service.CreateBooking(context.Background(), req)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.NotErrorIs(t, err, repository.ErrNotFound)
}

func TestCancelBookingMalformedIDIsInvalidInput(t *testing.T) {
	f := newBookingFixture(t)

	err := f.service.CancelBooking(context.Background(), "nope")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCreateBookingDedupesRepeatedSeats(t *testing.T) {
	f := newBookingFixture(t)

	booking, err := f.service.CreateBooking(context.Background(), f.createRequest("B1", "B1", "B2"))
	require.NoError(t, err)

	// A label repeated in one request counts once
	assert.Equal(t, []string{"B1", "B2"}, booking.SeatNumbers)
	assert.Len(t, f.store.seats, 2)
}

func TestCreateBookingConflictReportsExactSeats(t *testing.T) {
	f := newBookingFixture(t)

	_, err := f.service.CreateBooking(context.Background(), f.createRequest("A1", "A2"))
	require.NoError(t, err)

	_, err = f.service.CreateBooking(context.Background(), f.createRequest("A2", "A3"))
	require.Error(t, err)

	var conflict *repository.SeatConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, []string{"A2"}, conflict.Seats)

	// The failed request must not claim its non-conflicting seats either
	seats, err := f.service.GetBookedSeats(context.Background(), f.showID.String())
	require.NoError(t, err)
	assert.Equal(t, []string{"A1", "A2"}, seats.BookedSeats)
}

func TestCreateBookingConcurrentOverlapSingleWinner(t *testing.T) {
	f := newBookingFixture(t)

	const workers = 8

	var wg sync.WaitGroup
	results := make(chan error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.service.CreateBooking(context.Background(), f.createRequest("C1", "C2"))
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var successes, conflicts int
	for err := range results {
		if err == nil {
			successes++
			continue
		}
		var conflict *repository.SeatConflictError
		require.ErrorAs(t, err, &conflict)
		conflicts++
	}

	assert.Equal(t, 1, successes)
	assert.Equal(t, workers-1, conflicts)

	seats, err := f.service.GetBookedSeats(context.Background(), f.showID.String())
	require.NoError(t, err)
	assert.Equal(t, []string{"C1", "C2"}, seats.BookedSeats)
}

func TestCancelBookingFreesSeats(t *testing.T) {
	f := newBookingFixture(t)

	// Mirrors the reservation walk: book, conflict, cancel, rebook.
	first, err := f.service.CreateBooking(context.Background(), f.createRequest("A1", "A2"))
	require.NoError(t, err)

	_, err = f.service.CreateBooking(context.Background(), f.createRequest("A2", "A3"))
	var conflict *repository.SeatConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, []string{"A2"}, conflict.Seats)

	require.NoError(t, f.service.CancelBooking(context.Background(), first.ID))

	seats, err := f.service.GetBookedSeats(context.Background(), f.showID.String())
	require.NoError(t, err)
	assert.Empty(t, seats.BookedSeats)

	_, err = f.service.CreateBooking(context.Background(), f.createRequest("A2", "A3"))
	require.NoError(t, err)
}

func TestCancelBookingTwiceIsDistinctError(t *testing.T) {
	f := newBookingFixture(t)

	booking, err := f.service.CreateBooking(context.Background(), f.createRequest("D1"))
	require.NoError(t, err)

	require.NoError(t, f.service.CancelBooking(context.Background(), booking.ID))

	err = f.service.CancelBooking(context.Background(), booking.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, repository.ErrAlreadyCancelled)
	assert.NotErrorIs(t, err, repository.ErrNotFound)
}

func TestCancelBookingNotFound(t *testing.T) {
	f := newBookingFixture(t)

	err := f.service.CancelBooking(context.Background(), uuid.New().String())
	require.Error(t, err)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestCreateBookingMaterializesUser(t *testing.T) {
	f := newBookingFixture(t)

	userID := "auth0|someone"
	req := f.createRequest("E1")
	req.UserID = &userID

	_, err := f.service.CreateBooking(context.Background(), req)
	require.NoError(t, err)

	user := f.store.users[userID]
	require.NotNil(t, user)
	assert.Equal(t, "guest", user.FirstName)
	assert.Equal(t, "guest@example.com", user.Email)
	assert.Equal(t, entity.RoleCustomer, user.Role)
}

func TestCreateBookingSendsConfirmation(t *testing.T) {
	f := newBookingFixture(t)

	booking, err := f.service.CreateBooking(context.Background(), f.createRequest("F1", "F2"))
	require.NoError(t, err)

	data := f.mailer.waitForCall(t)
	assert.Equal(t, "guest@example.com", data.To)
	assert.Equal(t, "Dune: Part Two", data.MovieTitle)
	assert.Equal(t, "Scope Cinemas", data.CinemaName)
	assert.Equal(t, "Screen 1", data.ScreenName)
	assert.Equal(t, []string{"F1", "F2"}, data.SeatNumbers)
	assert.Equal(t, booking.BookingRef, data.BookingRef)
	assert.Equal(t, 5000.0, data.TotalAmount)
}

func TestCreateBookingSurvivesMailerFailure(t *testing.T) {
	f := newBookingFixture(t)
	f.mailer.err = errors.New("smtp unreachable")

	booking, err := f.service.CreateBooking(context.Background(), f.createRequest("G1"))
	require.NoError(t, err)
	assert.Equal(t, entity.BookingStatusConfirmed, booking.Status)

	f.mailer.waitForCall(t)

	// Booking stays committed even though delivery failed
	seats, err := f.service.GetBookedSeats(context.Background(), f.showID.String())
	require.NoError(t, err)
	assert.Equal(t, []string{"G1"}, seats.BookedSeats)
}

func TestGetBookedSeatsShowNotFound(t *testing.T) {
	f := newBookingFixture(t)

	_, err := f.service.GetBookedSeats(context.Background(), uuid.New().String())
	require.Error(t, err)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestGetUserBookingsNewestFirst(t *testing.T) {
	f := newBookingFixture(t)

	userID := "auth0|returning"

	first := f.createRequest("H1")
	first.UserID = &userID
	_, err := f.service.CreateBooking(context.Background(), first)
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)

	second := f.createRequest("H2")
	second.UserID = &userID
	_, err = f.service.CreateBooking(context.Background(), second)
	require.NoError(t, err)

	bookings, err := f.service.GetUserBookings(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, bookings, 2)

	assert.Equal(t, []string{"H2"}, bookings[0].SeatNumbers)
	assert.Equal(t, []string{"H1"}, bookings[1].SeatNumbers)
	assert.Equal(t, "Dune: Part Two", bookings[0].MovieTitle)
	assert.Equal(t, "Scope Cinemas", bookings[0].CinemaName)
}

func TestGetUserBookingsSeatLookupFailureSurfaces(t *testing.T) {
	f := newBookingFixture(t)

	userID := "auth0|returning"
	req := f.createRequest("J1")
	req.UserID = &userID
	_, err := f.service.CreateBooking(context.Background(), req)
	require.NoError(t, err)

	f.seatRepo.findErr = errors.New("seat store unavailable")

	// A failing seat read must not degrade into bookings with empty seat
	// lists; the caller gets the error.
	bookings, err := f.service.GetUserBookings(context.Background(), userID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "seat store unavailable")
	assert.Nil(t, bookings)
}

func TestCreateBookingResolvesShowOnce(t *testing.T) {
	f := newBookingFixture(t)

	_, err := f.service.CreateBooking(context.Background(), f.createRequest("K1"))
	require.NoError(t, err)
	f.mailer.waitForCall(t)

	// The show resolved for the existence check is reused for response
	// enrichment and the confirmation email.
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	assert.Equal(t, 1, f.showRepo.findByIDCnt)
}
