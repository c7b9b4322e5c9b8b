package wire

import (
	"room-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireRoom(r chi.Router, roomHandler *adaptor.RoomHandler) {
	r.Get("/api/rooms", roomHandler.ListRooms)
	r.Get("/api/rooms/{id}", roomHandler.GetRoom)
}

func wireSuggestion(r chi.Router, suggestionHandler *adaptor.SuggestionHandler) {
	// POST /api/suggestions - Ask the AI for up to 3 rooms
	r.Post("/api/suggestions", suggestionHandler.SuggestRooms)
}
