package usecase

import (
	"context"
	"fmt"

	"room-booking/internal/data/entity"
	"room-booking/internal/data/repository"

	"go.uber.org/zap"
)

type RoomService interface {
	ListRooms(ctx context.Context, filter repository.RoomFilter) ([]entity.Room, error)
	GetRoom(ctx context.Context, id string) (*entity.Room, error)
}

type roomService struct {
	repo repository.RoomRepository
	log  *zap.Logger
}

func NewRoomService(repo repository.RoomRepository, log *zap.Logger) RoomService {
	return &roomService{
		repo: repo,
		log:  log.With(zap.String("service", "room")),
	}
}

func (s *roomService) ListRooms(ctx context.Context, filter repository.RoomFilter) ([]entity.Room, error) {
	rooms, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		s.log.Error("Failed to list rooms", zap.Error(err))
		return nil, fmt.Errorf("list rooms: %w", err)
	}
	return rooms, nil
}

func (s *roomService) GetRoom(ctx context.Context, id string) (*entity.Room, error) {
	room, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find room %s: %w", id, err)
	}
	if room == nil {
		return nil, fmt.Errorf("room %s: %w", id, ErrNotFound)
	}
	return room, nil
}
