package entity

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookingStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from, to BookingStatus
		want     bool
	}{
		{BookingStatusPending, BookingStatusApproved, true},
		{BookingStatusPending, BookingStatusRejected, true},
		{BookingStatusPending, BookingStatusPending, false},
		{BookingStatusApproved, BookingStatusRejected, false},
		{BookingStatusApproved, BookingStatusPending, false},
		{BookingStatusRejected, BookingStatusApproved, false},
		{BookingStatusRejected, BookingStatusPending, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestBookingStatus_UnmarshalLegacyValues(t *testing.T) {
	raw := `[{"id":"b1","status":"Aprovada"},{"id":"b2","status":"Pendente"},{"id":"b3","status":"Rejeitada"},{"id":"b4","status":"Approved"}]`

	var bookings []BookingRequest
	require.NoError(t, json.Unmarshal([]byte(raw), &bookings))

	assert.Equal(t, BookingStatusApproved, bookings[0].Status)
	assert.Equal(t, BookingStatusPending, bookings[1].Status)
	assert.Equal(t, BookingStatusRejected, bookings[2].Status)
	assert.Equal(t, BookingStatusApproved, bookings[3].Status)
}

func TestBookingStatus_UnmarshalUnknown(t *testing.T) {
	var b BookingRequest
	err := json.Unmarshal([]byte(`{"id":"x","status":"Archived"}`), &b)
	assert.Error(t, err)
}

func TestNewBookingRequest(t *testing.T) {
	room := Room{ID: "1", Name: "Sala de Reuniões A"}

	b := NewBookingRequest("id-1", room, "2024-09-01", "09:00 - 10:00", "Team sync")

	assert.Equal(t, BookingStatusPending, b.Status)
	assert.Equal(t, "1", b.RoomID)
	assert.Equal(t, "Sala de Reuniões A", b.RoomName)
	assert.True(t, b.SameAs(BookingRequest{ID: "id-1", Status: BookingStatusApproved}))
}

func TestBookingRequest_WireFieldNames(t *testing.T) {
	b := BookingRequest{ID: "b1", RoomID: "1", RoomName: "A", Date: "2024-08-15", Time: "14:00 - 16:00", Purpose: "x", Status: BookingStatusPending}

	data, err := json.Marshal(b)
	require.NoError(t, err)

	assert.JSONEq(t, `{"id":"b1","roomId":"1","roomName":"A","date":"2024-08-15","time":"14:00 - 16:00","purpose":"x","status":"Pending"}`, string(data))
}
