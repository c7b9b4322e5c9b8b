package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"room-booking/internal/data/entity"
	"room-booking/internal/data/medium"
	"room-booking/internal/data/seed"
	"room-booking/internal/notify"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

// ErrCorrupt marks a stored value that cannot be read back as a booking collection.
var ErrCorrupt = errors.New("stored bookings corrupt")

// BookingStore persists the whole booking collection under one key.
//
// Every mutation re-reads the collection before writing it back. A store
// serializes its own calls, but two stores sharing a medium are not
// coordinated: concurrent read-modify-write cycles are last-write-wins.
type BookingStore interface {
	Load(ctx context.Context) ([]entity.BookingRequest, error)
	Save(ctx context.Context, bookings []entity.BookingRequest) error
	Append(ctx context.Context, booking entity.BookingRequest) error
	Replace(ctx context.Context, booking entity.BookingRequest) error
	Remove(ctx context.Context, id string) error

	Key() string
	Origin() string
}

type bookingStore struct {
	medium   medium.Medium
	notifier notify.Notifier
	key      string
	origin   string
	mu       sync.Mutex
	log      *zap.Logger
}

// NewBookingStore builds the store of one view. origin identifies that view in
// change events; notifier may be nil when nobody needs to hear about writes.
func NewBookingStore(m medium.Medium, n notify.Notifier, key, origin string, log *zap.Logger) BookingStore {
	return &bookingStore{
		medium:   m,
		notifier: n,
		key:      key,
		origin:   origin,
		log:      log.With(zap.String("repository", "booking"), zap.String("origin", origin)),
	}
}

func (s *bookingStore) Key() string    { return s.key }
func (s *bookingStore) Origin() string { return s.origin }

func (s *bookingStore) Load(ctx context.Context) ([]entity.BookingRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

func (s *bookingStore) Save(ctx context.Context, bookings []entity.BookingRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(ctx, bookings)
}

// Append puts booking at the front: newest first.
func (s *bookingStore) Append(ctx context.Context, booking entity.BookingRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.load(ctx)
	if err != nil {
		return err
	}
	updated := make([]entity.BookingRequest, 0, len(current)+1)
	updated = append(updated, booking)
	updated = append(updated, current...)
	return s.save(ctx, updated)
}

// Replace swaps the record with the same id. Unknown ids are ignored.
func (s *bookingStore) Replace(ctx context.Context, booking entity.BookingRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.load(ctx)
	if err != nil {
		return err
	}
	replaced := false
	for i := range current {
		if current[i].SameAs(booking) {
			current[i] = booking
			replaced = true
		}
	}
	if !replaced {
		s.log.Debug("Replace skipped, booking not in store", zap.String("booking_id", booking.ID))
		return nil
	}
	return s.save(ctx, current)
}

func (s *bookingStore) Remove(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.load(ctx)
	if err != nil {
		return err
	}
	kept := make([]entity.BookingRequest, 0, len(current))
	for _, b := range current {
		if b.ID != id {
			kept = append(kept, b)
		}
	}
	return s.save(ctx, kept)
}

func (s *bookingStore) load(ctx context.Context) ([]entity.BookingRequest, error) {
	raw, found, err := s.medium.Get(ctx, s.key)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		s.log.Warn("Storage unavailable, serving seed bookings", zap.Error(err))
		return seed.Bookings(), nil
	}

	if !found {
		s.log.Info("Storage empty, initializing with seed bookings", zap.String("key", s.key))
		bookings := seed.Bookings()
		if err := s.save(ctx, bookings); err != nil {
			return nil, err
		}
		return seed.Bookings(), nil
	}

	bookings, err := decodeBookings(raw)
	if err != nil {
		s.log.Error("Failed to parse stored bookings, restoring seed data",
			zap.String("key", s.key),
			zap.Error(err))
		if err := s.save(ctx, seed.Bookings()); err != nil {
			return nil, err
		}
		return seed.Bookings(), nil
	}

	return bookings, nil
}

// save never reports medium failures: an unwritable medium turns writes into no-ops.
func (s *bookingStore) save(ctx context.Context, bookings []entity.BookingRequest) error {
	if bookings == nil {
		bookings = []entity.BookingRequest{}
	}
	payload, err := json.Marshal(bookings)
	if err != nil {
		return fmt.Errorf("encode bookings: %w", err)
	}

	if err := s.medium.Set(ctx, s.key, string(payload)); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		s.log.Warn("Storage unavailable, write skipped",
			zap.Int("bookings", len(bookings)),
			zap.Error(err))
		return nil
	}

	if s.notifier != nil {
		ev := notify.Event{Key: s.key, Origin: s.origin}
		if err := s.notifier.Publish(ctx, ev); err != nil {
			s.log.Warn("Failed to publish change event", zap.Error(err))
		}
	}
	return nil
}

func decodeBookings(raw string) ([]entity.BookingRequest, error) {
	if !gjson.Valid(raw) {
		return nil, fmt.Errorf("%w: invalid json", ErrCorrupt)
	}
	if !gjson.Parse(raw).IsArray() {
		return nil, fmt.Errorf("%w: not a list", ErrCorrupt)
	}

	var bookings []entity.BookingRequest
	if err := json.Unmarshal([]byte(raw), &bookings); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}

	seen := make(map[string]struct{}, len(bookings))
	for i, b := range bookings {
		if b.ID == "" {
			return nil, fmt.Errorf("%w: booking at index %d has no id", ErrCorrupt, i)
		}
		if b.Status == "" {
			return nil, fmt.Errorf("%w: booking %s has no status", ErrCorrupt, b.ID)
		}
		if _, dup := seen[b.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate booking id %s", ErrCorrupt, b.ID)
		}
		seen[b.ID] = struct{}{}
	}
	if bookings == nil {
		bookings = []entity.BookingRequest{}
	}
	return bookings, nil
}
