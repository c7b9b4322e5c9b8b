package repository

import (
	"room-booking/internal/data/medium"
	"room-booking/internal/data/seed"
	"room-booking/internal/notify"

	"go.uber.org/zap"
)

type Repository struct {
	Booking BookingStore
	Room    RoomRepository
}

// NewRepository wires the repositories of one view of the store.
func NewRepository(m medium.Medium, n notify.Notifier, key, origin string, log *zap.Logger) *Repository {
	return &Repository{
		Booking: NewBookingStore(m, n, key, origin, log),
		Room:    NewRoomRepository(seed.Rooms(), log),
	}
}
