package usecase

import (
	"room-booking/internal/data/repository"

	"go.uber.org/zap"
)

type Service struct {
	Booking    BookingService
	Room       RoomService
	Suggestion SuggestionService
}

func NewService(repo *repository.Repository, suggester RoomSuggester, events EventPublisher, log *zap.Logger) *Service {
	return &Service{
		Booking:    NewBookingService(repo, events, nil, log),
		Room:       NewRoomService(repo.Room, log),
		Suggestion: NewSuggestionService(suggester, log),
	}
}
