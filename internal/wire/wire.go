package wire

import (
	"net/http"

	"cinex-backend/internal/adaptor"
	"cinex-backend/internal/data/repository"
	"cinex-backend/internal/usecase"
	"cinex-backend/pkg/mailer"
	"cinex-backend/pkg/middleware"
	"cinex-backend/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// App holds the wired dependencies
type App struct {
	Router *chi.Mux
}

// Wiring initializes services, handlers and routes
func Wiring(repo *repository.Repository, m mailer.Mailer, config *utils.Config, logger *zap.Logger) *App {
	service := usecase.NewService(repo, m, logger)
	handler := adaptor.NewHandler(service, logger)

	return &App{
		Router: setupRouter(handler, logger),
	}
}

func setupRouter(handler *adaptor.Handler, logger *zap.Logger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS())

	wireMovie(r, handler.Movie)
	wireCinema(r, handler.Cinema)
	wireShow(r, handler.Show, handler.Booking)
	wireBooking(r, handler.Booking)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
