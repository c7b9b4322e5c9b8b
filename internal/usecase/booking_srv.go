package usecase

import (
	"context"
	"fmt"
	"strings"

	"room-booking/internal/data/entity"
	"room-booking/internal/data/repository"
	"room-booking/internal/dto/request"
	"room-booking/pkg/utils"

	"go.uber.org/zap"
)

// Routing keys of lifecycle events.
const (
	EventBookingCreated   = "booking.created"
	EventBookingApproved  = "booking.approved"
	EventBookingRejected  = "booking.rejected"
	EventBookingCancelled = "booking.cancelled"
	EventBookingDeleted   = "booking.deleted"
)

// EventPublisher receives lifecycle events after the store accepted a change.
type EventPublisher interface {
	PublishJSON(ctx context.Context, key string, v any) error
}

// BookingService drives the booking request state machine:
//
//	create -> Pending
//	Pending -> Approved | Rejected      (admin decision)
//	Pending -> removed                  (owner cancels)
//	Approved | Rejected -> removed      (permanent delete)
//
// Every method may block on the store, so all of them take a context.
type BookingService interface {
	CreateBooking(ctx context.Context, req *request.CreateBookingRequest) (*entity.BookingRequest, error)
	ListBookings(ctx context.Context, status string) ([]entity.BookingRequest, error)
	GetBooking(ctx context.Context, id string) (*entity.BookingRequest, error)

	// Admin
	ApproveBooking(ctx context.Context, id string) (*entity.BookingRequest, error)
	RejectBooking(ctx context.Context, id string) (*entity.BookingRequest, error)
	DeleteBooking(ctx context.Context, id string) error

	// Owner
	CancelBooking(ctx context.Context, id string) error
}

type bookingService struct {
	repo   *repository.Repository
	events EventPublisher
	newID  func() string
	log    *zap.Logger
}

const maxIDAttempts = 5

// NewBookingService builds the lifecycle service. events may be nil; newID
// defaults to utils.GenerateBookingID.
func NewBookingService(repo *repository.Repository, events EventPublisher, newID func() string, log *zap.Logger) BookingService {
	if newID == nil {
		newID = utils.GenerateBookingID
	}
	return &bookingService{
		repo:   repo,
		events: events,
		newID:  newID,
		log:    log.With(zap.String("service", "booking")),
	}
}

func (s *bookingService) CreateBooking(ctx context.Context, req *request.CreateBookingRequest) (*entity.BookingRequest, error) {
	req.RoomID = strings.TrimSpace(req.RoomID)
	req.Purpose = strings.TrimSpace(req.Purpose)

	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create booking validation failed", zap.Any("errors", errs))
		return nil, newValidationError(errs)
	}
	// HH:MM compares correctly as text
	if req.EndTime <= req.StartTime {
		return nil, fieldError("endTime", "Must be after startTime")
	}

	room, err := s.repo.Room.FindByID(ctx, req.RoomID)
	if err != nil {
		return nil, fmt.Errorf("find room %s: %w", req.RoomID, err)
	}
	if room == nil {
		s.log.Warn("Create booking for unknown room", zap.String("room_id", req.RoomID))
		return nil, fieldError("roomId", "Unknown room")
	}

	id, err := s.uniqueID(ctx)
	if err != nil {
		return nil, err
	}

	booking := entity.NewBookingRequest(id, *room, req.Date, req.TimeRange(), req.Purpose)
	if err := s.repo.Booking.Append(ctx, booking); err != nil {
		s.log.Error("Failed to append booking", zap.Error(err), zap.String("booking_id", id))
		return nil, fmt.Errorf("create booking: %w", err)
	}

	s.log.Info("Booking created",
		zap.String("booking_id", booking.ID),
		zap.String("room_id", booking.RoomID),
		zap.String("date", booking.Date),
		zap.String("time", booking.Time),
	)
	s.publish(ctx, EventBookingCreated, booking)

	return &booking, nil
}

// ListBookings returns the collection in store order (newest first). An empty
// status returns every booking.
func (s *bookingService) ListBookings(ctx context.Context, status string) ([]entity.BookingRequest, error) {
	var want entity.BookingStatus
	if status = strings.TrimSpace(status); status != "" {
		parsed, err := entity.ParseBookingStatus(status)
		if err != nil {
			return nil, fieldError("status", "Must be one of: Pending, Approved, Rejected")
		}
		want = parsed
	}

	bookings, err := s.repo.Booking.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load bookings: %w", err)
	}
	return FilterBookings(bookings, want), nil
}

func (s *bookingService) GetBooking(ctx context.Context, id string) (*entity.BookingRequest, error) {
	return s.find(ctx, id)
}

func (s *bookingService) ApproveBooking(ctx context.Context, id string) (*entity.BookingRequest, error) {
	return s.decide(ctx, id, entity.BookingStatusApproved, EventBookingApproved)
}

func (s *bookingService) RejectBooking(ctx context.Context, id string) (*entity.BookingRequest, error) {
	return s.decide(ctx, id, entity.BookingStatusRejected, EventBookingRejected)
}

func (s *bookingService) CancelBooking(ctx context.Context, id string) error {
	booking, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	if booking.Status != entity.BookingStatusPending {
		s.log.Warn("Cancel rejected, booking already decided",
			zap.String("booking_id", id),
			zap.String("status", string(booking.Status)))
		return fmt.Errorf("%w: booking %s is %s and cannot be cancelled", ErrInvalidTransition, id, booking.Status)
	}

	if err := s.repo.Booking.Remove(ctx, id); err != nil {
		return fmt.Errorf("cancel booking %s: %w", id, err)
	}

	s.log.Info("Booking cancelled", zap.String("booking_id", id))
	s.publish(ctx, EventBookingCancelled, *booking)
	return nil
}

func (s *bookingService) DeleteBooking(ctx context.Context, id string) error {
	booking, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	if !booking.Status.IsDecided() {
		s.log.Warn("Delete rejected, booking still pending", zap.String("booking_id", id))
		return fmt.Errorf("%w: booking %s is %s and cannot be deleted", ErrInvalidTransition, id, booking.Status)
	}

	if err := s.repo.Booking.Remove(ctx, id); err != nil {
		return fmt.Errorf("delete booking %s: %w", id, err)
	}

	s.log.Info("Booking deleted", zap.String("booking_id", id), zap.String("status", string(booking.Status)))
	s.publish(ctx, EventBookingDeleted, *booking)
	return nil
}

func (s *bookingService) decide(ctx context.Context, id string, next entity.BookingStatus, event string) (*entity.BookingRequest, error) {
	booking, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if !booking.Status.CanTransitionTo(next) {
		s.log.Warn("Illegal status transition",
			zap.String("booking_id", id),
			zap.String("from", string(booking.Status)),
			zap.String("to", string(next)))
		return nil, fmt.Errorf("%w: booking %s is %s and cannot become %s", ErrInvalidTransition, id, booking.Status, next)
	}

	booking.Status = next
	if err := s.repo.Booking.Replace(ctx, *booking); err != nil {
		return nil, fmt.Errorf("update booking %s: %w", id, err)
	}

	s.log.Info("Booking status changed", zap.String("booking_id", id), zap.String("status", string(next)))
	s.publish(ctx, event, *booking)
	return booking, nil
}

func (s *bookingService) find(ctx context.Context, id string) (*entity.BookingRequest, error) {
	bookings, err := s.repo.Booking.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load bookings: %w", err)
	}
	for _, b := range bookings {
		if b.ID == id {
			found := b
			return &found, nil
		}
	}
	return nil, fmt.Errorf("booking %s: %w", id, ErrNotFound)
}

// uniqueID retries the generator if it returns an id already in the store.
func (s *bookingService) uniqueID(ctx context.Context) (string, error) {
	bookings, err := s.repo.Booking.Load(ctx)
	if err != nil {
		return "", fmt.Errorf("load bookings: %w", err)
	}
	taken := make(map[string]struct{}, len(bookings))
	for _, b := range bookings {
		taken[b.ID] = struct{}{}
	}

	for i := 0; i < maxIDAttempts; i++ {
		id := s.newID()
		if _, dup := taken[id]; !dup && id != "" {
			return id, nil
		}
	}
	return "", fmt.Errorf("generate booking id: %d attempts collided", maxIDAttempts)
}

func (s *bookingService) publish(ctx context.Context, key string, b entity.BookingRequest) {
	if s.events == nil {
		return
	}
	payload := map[string]any{
		"booking_id": b.ID,
		"room_id":    b.RoomID,
		"date":       b.Date,
		"time":       b.Time,
		"status":     b.Status,
		"origin":     s.repo.Booking.Origin(),
	}
	if err := s.events.PublishJSON(ctx, key, payload); err != nil {
		s.log.Warn("Failed to publish booking event", zap.String("event", key), zap.Error(err))
	}
}

// FilterBookings keeps the order of bookings; an empty status keeps everything.
func FilterBookings(bookings []entity.BookingRequest, status entity.BookingStatus) []entity.BookingRequest {
	out := make([]entity.BookingRequest, 0, len(bookings))
	for _, b := range bookings {
		if status == "" || b.Status == status {
			out = append(out, b)
		}
	}
	return out
}
