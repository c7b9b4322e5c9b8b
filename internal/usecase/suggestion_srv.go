package usecase

import (
	"context"
	"strings"

	"room-booking/internal/data/entity"
	"room-booking/internal/dto/request"
	"room-booking/pkg/utils"

	"go.uber.org/zap"
)

const maxSuggestions = 3

// RoomSuggester is the hosted language model that proposes rooms for an event.
type RoomSuggester interface {
	Suggest(ctx context.Context, description string) ([]entity.SuggestedRoom, error)
}

type SuggestionService interface {
	SuggestRooms(ctx context.Context, req *request.SuggestRoomsRequest) ([]entity.SuggestedRoom, error)
}

type suggestionService struct {
	suggester RoomSuggester
	log       *zap.Logger
}

// NewSuggestionService accepts a nil suggester; every call then fails with
// ErrSuggestionFailed.
func NewSuggestionService(suggester RoomSuggester, log *zap.Logger) SuggestionService {
	return &suggestionService{
		suggester: suggester,
		log:       log.With(zap.String("service", "suggestion")),
	}
}

func (s *suggestionService) SuggestRooms(ctx context.Context, req *request.SuggestRoomsRequest) ([]entity.SuggestedRoom, error) {
	req.Description = strings.TrimSpace(req.Description)
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, newValidationError(errs)
	}

	if s.suggester == nil {
		s.log.Error("Suggestion requested but no AI collaborator is configured")
		return nil, ErrSuggestionFailed
	}

	rooms, err := s.suggester.Suggest(ctx, req.Description)
	if err != nil {
		// detail stays in the log, callers only see the generic error
		s.log.Error("AI room suggestion failed", zap.Error(err))
		return nil, ErrSuggestionFailed
	}

	if len(rooms) > maxSuggestions {
		rooms = rooms[:maxSuggestions]
	}
	if rooms == nil {
		rooms = []entity.SuggestedRoom{}
	}

	s.log.Info("AI room suggestions served", zap.Int("count", len(rooms)))
	return rooms, nil
}
