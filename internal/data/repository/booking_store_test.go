package repository

import (
	"context"
	"testing"
	"time"

	"room-booking/internal/data/entity"
	"room-booking/internal/data/medium"
	"room-booking/internal/data/seed"
	"room-booking/internal/notify"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testKey = "fbsalas_bookings"

// countingMedium records how often the store writes.
type countingMedium struct {
	*medium.Memory
	sets int
}

func (c *countingMedium) Set(ctx context.Context, key, value string) error {
	c.sets++
	return c.Memory.Set(ctx, key, value)
}

func newTestStore(m medium.Medium, n notify.Notifier, origin string) BookingStore {
	return NewBookingStore(m, n, testKey, origin, zap.NewNop())
}

func TestBookingStore_LoadEmptyMediumSeedsAndPersists(t *testing.T) {
	mem := medium.NewMemory()
	store := newTestStore(mem, nil, "view-a")

	bookings, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, seed.Bookings(), bookings)

	raw, found, err := mem.Get(context.Background(), testKey)
	require.NoError(t, err)
	require.True(t, found)

	stored, err := decodeBookings(raw)
	require.NoError(t, err)
	assert.Equal(t, seed.Bookings(), stored)
}

func TestBookingStore_LoadUnavailableServesSeed(t *testing.T) {
	store := newTestStore(medium.Unavailable{}, nil, "view-a")

	bookings, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, seed.Bookings(), bookings)

	// writes degrade to no-ops
	require.NoError(t, store.Append(context.Background(), entity.BookingRequest{ID: "x", Status: entity.BookingStatusPending}))
	bookings, err = store.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, bookings, 3)
}

func TestBookingStore_LoadCorruptValueRestoresSeed(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"not json", `{{{not json`},
		{"object instead of list", `{"id":"b1"}`},
		{"null", `null`},
		{"unknown status", `[{"id":"b1","status":"Archived"}]`},
		{"missing id", `[{"roomId":"1","status":"Pending"}]`},
		{"missing status", `[{"id":"b1"}]`},
		{"duplicate ids", `[{"id":"b1","status":"Pending"},{"id":"b1","status":"Approved"}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			mem := medium.NewMemory()
			require.NoError(t, mem.Set(ctx, testKey, tt.raw))
			store := newTestStore(mem, nil, "view-a")

			bookings, err := store.Load(ctx)
			require.NoError(t, err)
			assert.Equal(t, seed.Bookings(), bookings)

			raw, _, err := mem.Get(ctx, testKey)
			require.NoError(t, err)
			repaired, err := decodeBookings(raw)
			require.NoError(t, err, "medium must hold a parseable value after recovery")
			assert.Equal(t, seed.Bookings(), repaired)
		})
	}
}

func TestBookingStore_EmptyCollectionIsNotCorrupt(t *testing.T) {
	ctx := context.Background()
	mem := medium.NewMemory()
	require.NoError(t, mem.Set(ctx, testKey, `[]`))
	store := newTestStore(mem, nil, "view-a")

	bookings, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, bookings)
	assert.NotNil(t, bookings)
}

func TestBookingStore_SaveLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(medium.NewMemory(), nil, "view-a")

	first, err := store.Load(ctx)
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, first))

	second, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	require.NoError(t, store.Save(ctx, second))
	third, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, second, third)
}

func TestBookingStore_SaveNilWritesEmptyList(t *testing.T) {
	ctx := context.Background()
	mem := medium.NewMemory()
	store := newTestStore(mem, nil, "view-a")

	require.NoError(t, store.Save(ctx, nil))

	raw, _, err := mem.Get(ctx, testKey)
	require.NoError(t, err)
	assert.Equal(t, `[]`, raw)
}

func TestBookingStore_AppendPrepends(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(medium.NewMemory(), nil, "view-a")

	newest := entity.BookingRequest{ID: "n1", RoomID: "1", Status: entity.BookingStatusPending}
	require.NoError(t, store.Append(ctx, newest))

	bookings, err := store.Load(ctx)
	require.NoError(t, err)
	require.Len(t, bookings, 4)
	assert.Equal(t, newest, bookings[0])
	assert.Equal(t, "b1", bookings[1].ID)
}

func TestBookingStore_Replace(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(medium.NewMemory(), nil, "view-a")

	bookings, err := store.Load(ctx)
	require.NoError(t, err)

	updated := bookings[1]
	updated.Status = entity.BookingStatusApproved
	require.NoError(t, store.Replace(ctx, updated))

	after, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, entity.BookingStatusApproved, after[1].Status)
	assert.Equal(t, []string{"b1", "b2", "b3"}, ids(after))
}

func TestBookingStore_ReplaceUnknownIsNoOp(t *testing.T) {
	ctx := context.Background()
	mem := &countingMedium{Memory: medium.NewMemory()}
	store := newTestStore(mem, nil, "view-a")

	_, err := store.Load(ctx)
	require.NoError(t, err)
	writes := mem.sets

	require.NoError(t, store.Replace(ctx, entity.BookingRequest{ID: "ghost", Status: entity.BookingStatusApproved}))
	assert.Equal(t, writes, mem.sets)

	after, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, seed.Bookings(), after)
}

func TestBookingStore_Remove(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(medium.NewMemory(), nil, "view-a")

	require.NoError(t, store.Remove(ctx, "b2"))

	after, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"b1", "b3"}, ids(after))
}

func TestBookingStore_PublishesChangeWithOrigin(t *testing.T) {
	ctx := context.Background()
	broker := notify.NewBroker()
	sub, err := broker.Subscribe(ctx, testKey)
	require.NoError(t, err)
	defer sub.Close()

	store := newTestStore(medium.NewMemory(), broker, "view-a")
	require.NoError(t, store.Save(ctx, seed.Bookings()))

	select {
	case ev := <-sub.Events():
		assert.Equal(t, notify.Event{Key: testKey, Origin: "view-a"}, ev)
	case <-time.After(time.Second):
		t.Fatal("expected change event")
	}
}

func TestBookingStore_UnavailableWriteDoesNotPublish(t *testing.T) {
	ctx := context.Background()
	broker := notify.NewBroker()
	sub, err := broker.Subscribe(ctx, testKey)
	require.NoError(t, err)
	defer sub.Close()

	store := newTestStore(medium.Unavailable{}, broker, "view-a")
	require.NoError(t, store.Save(ctx, seed.Bookings()))

	assert.Len(t, sub.Events(), 0)
}

// Two views share a medium without coordination. When both read before either
// writes, the second write silently discards the first one.
func TestBookingStore_ConcurrentViewsLastWriteWins(t *testing.T) {
	ctx := context.Background()
	mem := medium.NewMemory()
	viewA := newTestStore(mem, nil, "view-a")
	viewB := newTestStore(mem, nil, "view-b")

	snapshotA, err := viewA.Load(ctx)
	require.NoError(t, err)
	snapshotB, err := viewB.Load(ctx)
	require.NoError(t, err)

	snapshotA[1].Status = entity.BookingStatusApproved
	snapshotB[1].Status = entity.BookingStatusRejected

	require.NoError(t, viewA.Save(ctx, snapshotA))
	require.NoError(t, viewB.Save(ctx, snapshotB))

	final, err := viewA.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, entity.BookingStatusRejected, final[1].Status)

	// and the other way around
	require.NoError(t, viewB.Save(ctx, snapshotB))
	require.NoError(t, viewA.Save(ctx, snapshotA))

	final, err = viewB.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, entity.BookingStatusApproved, final[1].Status)
}

func ids(bookings []entity.BookingRequest) []string {
	out := make([]string, len(bookings))
	for i, b := range bookings {
		out[i] = b.ID
	}
	return out
}
