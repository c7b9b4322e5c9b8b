package adaptor

import (
	"net/http"

	"room-booking/internal/data/repository"
	"room-booking/internal/dto/response"
	"room-booking/internal/usecase"
	"room-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type RoomHandler struct {
	service usecase.RoomService
	log     *zap.Logger
}

func NewRoomHandler(service usecase.RoomService, log *zap.Logger) *RoomHandler {
	return &RoomHandler{
		service: service,
		log:     log.With(zap.String("handler", "room")),
	}
}

// ListRooms handles GET /api/rooms?name=&min_capacity=&type=
func (h *RoomHandler) ListRooms(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := repository.RoomFilter{
		Name:        query.Get("name"),
		MinCapacity: utils.ParseInt(query.Get("min_capacity"), 0),
		Type:        query.Get("type"),
	}

	rooms, err := h.service.ListRooms(r.Context(), filter)
	if err != nil {
		handleServiceError(w, h.log, err, "list rooms")
		return
	}

	out := make([]response.RoomResponse, 0, len(rooms))
	for _, room := range rooms {
		out = append(out, response.RoomToResponse(room))
	}
	utils.ResponseSuccess(w, "success", out)
}

// GetRoom handles GET /api/rooms/{id}
func (h *RoomHandler) GetRoom(w http.ResponseWriter, r *http.Request) {
	room, err := h.service.GetRoom(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.log, err, "get room")
		return
	}

	utils.ResponseSuccess(w, "success", response.RoomToResponse(*room))
}
