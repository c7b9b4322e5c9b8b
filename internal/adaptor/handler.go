package adaptor

import (
	"errors"
	"net/http"

	"room-booking/internal/usecase"
	"room-booking/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Booking    *BookingHandler
	Room       *RoomHandler
	Suggestion *SuggestionHandler
}

// NewHandler builds the HTTP handlers. bookings is usually the process view
// wrapping service.Booking.
func NewHandler(service *usecase.Service, bookings usecase.BookingService, log *zap.Logger) *Handler {
	return &Handler{
		Booking:    NewBookingHandler(bookings, log),
		Room:       NewRoomHandler(service.Room, log),
		Suggestion: NewSuggestionHandler(service.Suggestion, log),
	}
}

// handleServiceError maps usecase errors to responses
func handleServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	var vErr *usecase.ValidationError

	switch {
	case errors.As(err, &vErr):
		log.Warn(operation+" validation failed",
			zap.Any("errors", vErr.FieldErrors),
			zap.String("operation", operation))
		utils.ResponseError(w, http.StatusBadRequest, "Validation failed", vErr.FieldErrors)

	case errors.Is(err, usecase.ErrNotFound):
		log.Warn(operation+" failed - not found",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseError(w, http.StatusNotFound, err.Error(), nil)

	case errors.Is(err, usecase.ErrInvalidTransition):
		log.Warn(operation+" failed - invalid state",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseError(w, http.StatusConflict, err.Error(), nil)

	case errors.Is(err, usecase.ErrSuggestionFailed):
		utils.ResponseError(w, http.StatusBadGateway, "Could not get room suggestions, try again later", nil)

	default:
		log.Error("Failed to "+operation,
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseError(w, http.StatusInternalServerError, "Internal server error", nil)
	}
}
