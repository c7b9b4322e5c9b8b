package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"room-booking/internal/data/entity"
	"room-booking/internal/data/medium"
	"room-booking/internal/data/repository"
	"room-booking/internal/dto/request"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testKey = "fbsalas_bookings"

type publishedEvent struct {
	key     string
	payload any
}

type fakePublisher struct {
	mu     sync.Mutex
	events []publishedEvent
	err    error
}

func (p *fakePublisher) PublishJSON(_ context.Context, key string, v any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, publishedEvent{key: key, payload: v})
	return p.err
}

func (p *fakePublisher) keys() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.events))
	for i, e := range p.events {
		out[i] = e.key
	}
	return out
}

func newTestBookingService(t *testing.T, m medium.Medium, origin string, events EventPublisher) BookingService {
	t.Helper()
	repo := repository.NewRepository(m, nil, testKey, origin, zap.NewNop())
	return NewBookingService(repo, events, nil, zap.NewNop())
}

func teamSync() *request.CreateBookingRequest {
	return &request.CreateBookingRequest{
		RoomID:    "1",
		Date:      "2024-09-01",
		StartTime: "09:00",
		EndTime:   "10:00",
		Purpose:   "Team sync",
	}
}

func TestCreateBooking_PrependsPendingRequest(t *testing.T) {
	ctx := context.Background()
	svc := newTestBookingService(t, medium.NewMemory(), "view-a", nil)

	initial, err := svc.ListBookings(ctx, "")
	require.NoError(t, err)
	require.Len(t, initial, 3)

	created, err := svc.CreateBooking(ctx, teamSync())
	require.NoError(t, err)
	assert.Equal(t, entity.BookingStatusPending, created.Status)
	assert.Equal(t, "Sala de Reuniões A", created.RoomName)
	assert.Equal(t, "09:00 - 10:00", created.Time)

	all, err := svc.ListBookings(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, *created, all[0])
}

func TestCreateBooking_IDsAreUnique(t *testing.T) {
	ctx := context.Background()
	svc := newTestBookingService(t, medium.NewMemory(), "view-a", nil)

	seen := map[string]struct{}{"b1": {}, "b2": {}, "b3": {}}
	for i := 0; i < 200; i++ {
		created, err := svc.CreateBooking(ctx, teamSync())
		require.NoError(t, err)
		assert.Equal(t, entity.BookingStatusPending, created.Status)

		_, dup := seen[created.ID]
		require.False(t, dup, "duplicate id %s", created.ID)
		seen[created.ID] = struct{}{}
	}
}

func TestCreateBooking_RegeneratesCollidingID(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewRepository(medium.NewMemory(), nil, testKey, "view-a", zap.NewNop())

	ids := []string{"b1", "b2", "fresh"}
	next := 0
	svc := NewBookingService(repo, nil, func() string {
		id := ids[next]
		next++
		return id
	}, zap.NewNop())

	created, err := svc.CreateBooking(ctx, teamSync())
	require.NoError(t, err)
	assert.Equal(t, "fresh", created.ID)
}

func TestCreateBooking_Validation(t *testing.T) {
	ctx := context.Background()
	svc := newTestBookingService(t, medium.NewMemory(), "view-a", nil)

	tests := []struct {
		name   string
		mutate func(r *request.CreateBookingRequest)
		field  string
	}{
		{"unknown room", func(r *request.CreateBookingRequest) { r.RoomID = "99" }, "roomId"},
		{"missing room", func(r *request.CreateBookingRequest) { r.RoomID = "  " }, "roomId"},
		{"bad date", func(r *request.CreateBookingRequest) { r.Date = "01/09/2024" }, "date"},
		{"bad start", func(r *request.CreateBookingRequest) { r.StartTime = "9h" }, "startTime"},
		{"bad end", func(r *request.CreateBookingRequest) { r.EndTime = "25:00" }, "endTime"},
		{"end before start", func(r *request.CreateBookingRequest) { r.EndTime = "08:30" }, "endTime"},
		{"purpose too short", func(r *request.CreateBookingRequest) { r.Purpose = " abc  " }, "purpose"},
		{"purpose too long", func(r *request.CreateBookingRequest) { r.Purpose = fmt.Sprintf("%0201d", 0) }, "purpose"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := teamSync()
			tt.mutate(req)

			_, err := svc.CreateBooking(ctx, req)

			var vErr *ValidationError
			require.True(t, errors.As(err, &vErr), "expected ValidationError, got %v", err)
			assert.Contains(t, vErr.FieldErrors, tt.field)
		})
	}

	all, err := svc.ListBookings(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 3, "rejected input must not be stored")
}

func TestListBookings_FilterByStatus(t *testing.T) {
	ctx := context.Background()
	svc := newTestBookingService(t, medium.NewMemory(), "view-a", nil)

	pending, err := svc.ListBookings(ctx, "Pending")
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "b2", pending[0].ID)

	// legacy names are accepted as filters too
	approved, err := svc.ListBookings(ctx, "Aprovada")
	require.NoError(t, err)
	require.Len(t, approved, 1)
	assert.Equal(t, "b1", approved[0].ID)

	_, err = svc.ListBookings(ctx, "Archived")
	var vErr *ValidationError
	assert.True(t, errors.As(err, &vErr))
}

func TestListBookings_EmptyCollection(t *testing.T) {
	ctx := context.Background()
	mem := medium.NewMemory()
	require.NoError(t, mem.Set(ctx, testKey, `[]`))
	svc := newTestBookingService(t, mem, "view-a", nil)

	all, err := svc.ListBookings(ctx, "")
	require.NoError(t, err)
	assert.NotNil(t, all)
	assert.Empty(t, all)
}

func TestApproveThenReject_Refused(t *testing.T) {
	ctx := context.Background()
	svc := newTestBookingService(t, medium.NewMemory(), "view-a", nil)

	created, err := svc.CreateBooking(ctx, teamSync())
	require.NoError(t, err)

	approved, err := svc.ApproveBooking(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.BookingStatusApproved, approved.Status)

	_, err = svc.RejectBooking(ctx, created.ID)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	stored, err := svc.GetBooking(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.BookingStatusApproved, stored.Status)
}

func TestDecisions_OnlyFromPending(t *testing.T) {
	ctx := context.Background()

	decide := map[string]func(BookingService, string) (*entity.BookingRequest, error){
		"approve": func(s BookingService, id string) (*entity.BookingRequest, error) { return s.ApproveBooking(ctx, id) },
		"reject":  func(s BookingService, id string) (*entity.BookingRequest, error) { return s.RejectBooking(ctx, id) },
	}

	for name, fn := range decide {
		for _, id := range []string{"b1", "b3"} {
			t.Run(name+" "+id, func(t *testing.T) {
				svc := newTestBookingService(t, medium.NewMemory(), "view-a", nil)
				before, err := svc.GetBooking(ctx, id)
				require.NoError(t, err)

				_, err = fn(svc, id)
				assert.ErrorIs(t, err, ErrInvalidTransition)

				after, err := svc.GetBooking(ctx, id)
				require.NoError(t, err)
				assert.Equal(t, before, after)
			})
		}
	}
}

func TestDecisions_UnknownID(t *testing.T) {
	ctx := context.Background()
	svc := newTestBookingService(t, medium.NewMemory(), "view-a", nil)

	_, err := svc.ApproveBooking(ctx, "ghost")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = svc.RejectBooking(ctx, "ghost")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, svc.CancelBooking(ctx, "ghost"), ErrNotFound)
	assert.ErrorIs(t, svc.DeleteBooking(ctx, "ghost"), ErrNotFound)
	_, err = svc.GetBooking(ctx, "ghost")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCancelBooking_RemovesPending(t *testing.T) {
	ctx := context.Background()
	svc := newTestBookingService(t, medium.NewMemory(), "view-a", nil)

	require.NoError(t, svc.CancelBooking(ctx, "b2"))

	all, err := svc.ListBookings(ctx, "")
	require.NoError(t, err)
	for _, b := range all {
		assert.NotEqual(t, "b2", b.ID)
	}
	assert.Len(t, all, 2)
}

func TestCancelBooking_DecidedStays(t *testing.T) {
	ctx := context.Background()
	svc := newTestBookingService(t, medium.NewMemory(), "view-a", nil)

	for _, id := range []string{"b1", "b3"} {
		assert.ErrorIs(t, svc.CancelBooking(ctx, id), ErrInvalidTransition)
		_, err := svc.GetBooking(ctx, id)
		assert.NoError(t, err)
	}
}

func TestDeleteBooking_Guard(t *testing.T) {
	ctx := context.Background()
	svc := newTestBookingService(t, medium.NewMemory(), "view-a", nil)

	assert.ErrorIs(t, svc.DeleteBooking(ctx, "b2"), ErrInvalidTransition)
	_, err := svc.GetBooking(ctx, "b2")
	require.NoError(t, err)

	require.NoError(t, svc.DeleteBooking(ctx, "b1"))
	require.NoError(t, svc.DeleteBooking(ctx, "b3"))

	all, err := svc.ListBookings(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "b2", all[0].ID)
}

func TestBookingService_UnavailableStorageNeverFails(t *testing.T) {
	ctx := context.Background()
	svc := newTestBookingService(t, medium.Unavailable{}, "view-a", nil)

	created, err := svc.CreateBooking(ctx, teamSync())
	require.NoError(t, err)
	assert.Equal(t, entity.BookingStatusPending, created.Status)

	// nothing was persisted, the seed is served again
	all, err := svc.ListBookings(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	approved, err := svc.ApproveBooking(ctx, "b2")
	require.NoError(t, err)
	assert.Equal(t, entity.BookingStatusApproved, approved.Status)
}

func TestBookingService_PublishesLifecycleEvents(t *testing.T) {
	ctx := context.Background()
	events := &fakePublisher{err: errors.New("broker down")}
	svc := newTestBookingService(t, medium.NewMemory(), "view-a", events)

	created, err := svc.CreateBooking(ctx, teamSync())
	require.NoError(t, err, "publish failures must not fail the operation")
	_, err = svc.ApproveBooking(ctx, created.ID)
	require.NoError(t, err)
	require.NoError(t, svc.DeleteBooking(ctx, created.ID))
	_, err = svc.RejectBooking(ctx, "b2")
	require.NoError(t, err)

	assert.Equal(t, []string{EventBookingCreated, EventBookingApproved, EventBookingDeleted, EventBookingRejected}, events.keys())

	payload := events.events[0].payload.(map[string]any)
	assert.Equal(t, created.ID, payload["booking_id"])
	assert.Equal(t, "view-a", payload["origin"])
}

// Two views decide the same booking. Done one after the other, the second
// view re-reads the store and is refused.
func TestTwoViews_SequentialDecisionIsRefused(t *testing.T) {
	ctx := context.Background()
	shared := medium.NewMemory()
	viewA := newTestBookingService(t, shared, "view-a", nil)
	viewB := newTestBookingService(t, shared, "view-b", nil)

	_, err := viewB.ListBookings(ctx, "")
	require.NoError(t, err)

	_, err = viewA.ApproveBooking(ctx, "b2")
	require.NoError(t, err)

	_, err = viewB.RejectBooking(ctx, "b2")
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

// interleavingMedium runs hook once, right before the first write goes through.
type interleavingMedium struct {
	medium.Medium
	once sync.Once
	hook func()
}

func (m *interleavingMedium) Set(ctx context.Context, key, value string) error {
	m.once.Do(m.hook)
	return m.Medium.Set(ctx, key, value)
}

// When both views read before either writes, there is no coordination: the
// write that commits last wins and the other decision is silently lost.
func TestTwoViews_InterleavedDecisionsLastWriteWins(t *testing.T) {
	ctx := context.Background()
	shared := medium.NewMemory()
	viewA := newTestBookingService(t, shared, "view-a", nil)

	_, err := viewA.ListBookings(ctx, "")
	require.NoError(t, err)

	var approveErr error
	interleaved := &interleavingMedium{
		Medium: shared,
		hook: func() {
			_, approveErr = viewA.ApproveBooking(ctx, "b2")
		},
	}
	viewB := newTestBookingService(t, interleaved, "view-b", nil)

	rejected, err := viewB.RejectBooking(ctx, "b2")
	require.NoError(t, err)
	require.NoError(t, approveErr)
	assert.Equal(t, entity.BookingStatusRejected, rejected.Status)

	final, err := viewA.GetBooking(ctx, "b2")
	require.NoError(t, err)
	assert.Equal(t, entity.BookingStatusRejected, final.Status, "view B saved last")
}
