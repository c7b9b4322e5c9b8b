package wire

import (
	"net/http"

	"room-booking/internal/adaptor"
	"room-booking/internal/usecase"
	"room-booking/pkg/middleware"
	"room-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// App holds what the server needs to run
type App struct {
	Router *chi.Mux
}

// Wiring builds handlers and routes. bookings serves the booking routes; pass
// the process view so reads come from its cache.
func Wiring(service *usecase.Service, bookings usecase.BookingService, config *utils.Config, logger *zap.Logger) *App {
	handler := adaptor.NewHandler(service, bookings, logger)

	return &App{
		Router: setupRouter(handler, config, logger),
	}
}

func setupRouter(handler *adaptor.Handler, config *utils.Config, logger *zap.Logger) *chi.Mux {
	r := chi.NewRouter()

	// Apply global middleware
	r.Use(chimw.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(corsHandler(config.App.CORSOrigins))

	// Apply routes
	wireRoom(r, handler.Room)
	wireBooking(r, handler.Booking)
	wireSuggestion(r, handler.Suggestion)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		utils.ResponseSuccess(w, "OK", map[string]string{"app": config.App.Name})
	})

	return r
}

// corsHandler allows browser clients on origins to call the API. No origins
// means any origin.
func corsHandler(origins []string) func(http.Handler) http.Handler {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return cors.Handler(cors.Options{
		AllowedOrigins:       origins,
		AllowedMethods:       []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:       []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders:       []string{"X-Request-Id"},
		MaxAge:               600,
		OptionsSuccessStatus: http.StatusNoContent,
	})
}
