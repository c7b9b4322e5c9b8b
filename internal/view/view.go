// Package view keeps one process's in-memory copy of the booking collection
// and keeps it in step with writes made by other views of the same store.
package view

import (
	"context"
	"errors"
	"strings"
	"sync"

	"room-booking/internal/data/entity"
	"room-booking/internal/dto/request"
	"room-booking/internal/usecase"

	"go.uber.org/zap"
)

// View serves reads from its cached collection and sends writes through the
// lifecycle service. It satisfies usecase.BookingService so handlers do not
// care which one they are given.
type View struct {
	svc usecase.BookingService
	log *zap.Logger

	// refreshMu spans load and assign, so a slow refresh cannot overwrite a
	// newer one with older data.
	refreshMu sync.Mutex

	mu       sync.RWMutex
	bookings []entity.BookingRequest
	loaded   bool
}

var _ usecase.BookingService = (*View)(nil)

func NewView(svc usecase.BookingService, log *zap.Logger) *View {
	return &View{
		svc: svc,
		log: log.With(zap.String("component", "view")),
	}
}

// Refresh replaces the cached collection wholesale with the stored one.
func (v *View) Refresh(ctx context.Context) error {
	v.refreshMu.Lock()
	defer v.refreshMu.Unlock()

	bookings, err := v.svc.ListBookings(ctx, "")
	if err != nil {
		v.log.Error("Failed to refresh bookings", zap.Error(err))
		return err
	}

	v.mu.Lock()
	v.bookings = bookings
	v.loaded = true
	v.mu.Unlock()

	v.log.Debug("Bookings refreshed", zap.Int("count", len(bookings)))
	return nil
}

// Snapshot returns a copy of the cached collection.
func (v *View) Snapshot() []entity.BookingRequest {
	v.mu.RLock()
	defer v.mu.RUnlock()
	out := make([]entity.BookingRequest, len(v.bookings))
	copy(out, v.bookings)
	return out
}

func (v *View) ListBookings(ctx context.Context, status string) ([]entity.BookingRequest, error) {
	var want entity.BookingStatus
	if status = strings.TrimSpace(status); status != "" {
		parsed, err := entity.ParseBookingStatus(status)
		if err != nil {
			// the service owns the error shape for bad filters
			return v.svc.ListBookings(ctx, status)
		}
		want = parsed
	}

	v.mu.RLock()
	loaded := v.loaded
	v.mu.RUnlock()
	if !loaded {
		if err := v.Refresh(ctx); err != nil {
			return nil, err
		}
	}

	return usecase.FilterBookings(v.Snapshot(), want), nil
}

func (v *View) GetBooking(ctx context.Context, id string) (*entity.BookingRequest, error) {
	b, err := v.svc.GetBooking(ctx, id)
	if errors.Is(err, usecase.ErrNotFound) {
		v.afterWrite(ctx, err)
	}
	return b, err
}

func (v *View) CreateBooking(ctx context.Context, req *request.CreateBookingRequest) (*entity.BookingRequest, error) {
	b, err := v.svc.CreateBooking(ctx, req)
	v.afterWrite(ctx, err)
	return b, err
}

func (v *View) ApproveBooking(ctx context.Context, id string) (*entity.BookingRequest, error) {
	b, err := v.svc.ApproveBooking(ctx, id)
	v.afterWrite(ctx, err)
	return b, err
}

func (v *View) RejectBooking(ctx context.Context, id string) (*entity.BookingRequest, error) {
	b, err := v.svc.RejectBooking(ctx, id)
	v.afterWrite(ctx, err)
	return b, err
}

func (v *View) CancelBooking(ctx context.Context, id string) error {
	err := v.svc.CancelBooking(ctx, id)
	v.afterWrite(ctx, err)
	return err
}

func (v *View) DeleteBooking(ctx context.Context, id string) error {
	err := v.svc.DeleteBooking(ctx, id)
	v.afterWrite(ctx, err)
	return err
}

// afterWrite reloads after a change went through, and also after the service
// refused one because our copy was stale.
func (v *View) afterWrite(ctx context.Context, err error) {
	if err != nil && !errors.Is(err, usecase.ErrNotFound) && !errors.Is(err, usecase.ErrInvalidTransition) {
		return
	}
	if ctx.Err() != nil {
		ctx = context.WithoutCancel(ctx)
	}
	// Refresh logs its own failure; the caller already has its answer
	_ = v.Refresh(ctx)
}
