package repository

import (
	"context"
	"strings"

	"room-booking/internal/data/entity"

	"go.uber.org/zap"
)

type RoomFilter struct {
	Name        string
	MinCapacity int
	Type        string
}

// RoomRepository is the read-only room catalog.
type RoomRepository interface {
	FindAll(ctx context.Context, filter RoomFilter) ([]entity.Room, error)
	FindByID(ctx context.Context, id string) (*entity.Room, error)
}

type roomRepository struct {
	rooms []entity.Room
	log   *zap.Logger
}

// NewRoomRepository serves a fixed catalog. The slice is copied so callers
// cannot mutate it afterwards.
func NewRoomRepository(rooms []entity.Room, log *zap.Logger) RoomRepository {
	catalog := make([]entity.Room, len(rooms))
	for i, room := range rooms {
		catalog[i] = cloneRoom(room)
	}
	return &roomRepository{
		rooms: catalog,
		log:   log.With(zap.String("repository", "room")),
	}
}

func (r *roomRepository) FindAll(ctx context.Context, filter RoomFilter) ([]entity.Room, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	name := strings.ToLower(strings.TrimSpace(filter.Name))
	rooms := make([]entity.Room, 0, len(r.rooms))
	for _, room := range r.rooms {
		if name != "" && !strings.Contains(strings.ToLower(room.Name), name) {
			continue
		}
		if filter.MinCapacity > 0 && room.Capacity < filter.MinCapacity {
			continue
		}
		if filter.Type != "" && !strings.EqualFold(room.Type, filter.Type) {
			continue
		}
		rooms = append(rooms, cloneRoom(room))
	}

	r.log.Debug("Rooms listed",
		zap.String("name", filter.Name),
		zap.Int("min_capacity", filter.MinCapacity),
		zap.String("type", filter.Type),
		zap.Int("count", len(rooms)))

	return rooms, nil
}

// FindByID returns nil, nil when the id is not in the catalog.
func (r *roomRepository) FindByID(ctx context.Context, id string) (*entity.Room, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	for _, room := range r.rooms {
		if room.ID == id {
			found := cloneRoom(room)
			return &found, nil
		}
	}
	return nil, nil
}

func cloneRoom(room entity.Room) entity.Room {
	room.Amenities = append([]string(nil), room.Amenities...)
	return room
}
