package adaptor

import (
	"encoding/json"
	"net/http"

	"room-booking/internal/dto/request"
	"room-booking/internal/dto/response"
	"room-booking/internal/usecase"
	"room-booking/pkg/utils"

	"go.uber.org/zap"
)

type SuggestionHandler struct {
	service usecase.SuggestionService
	log     *zap.Logger
}

func NewSuggestionHandler(service usecase.SuggestionService, log *zap.Logger) *SuggestionHandler {
	return &SuggestionHandler{
		service: service,
		log:     log.With(zap.String("handler", "suggestion")),
	}
}

// SuggestRooms handles POST /api/suggestions
func (h *SuggestionHandler) SuggestRooms(w http.ResponseWriter, r *http.Request) {
	var req request.SuggestRoomsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseError(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	rooms, err := h.service.SuggestRooms(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "suggest rooms")
		return
	}

	utils.ResponseSuccess(w, "success", response.SuggestionResponse{Rooms: rooms})
}
