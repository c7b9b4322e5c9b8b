package entity

import (
	"encoding/json"
	"fmt"
)

type BookingStatus string

const (
	BookingStatusPending  BookingStatus = "Pending"
	BookingStatusApproved BookingStatus = "Approved"
	BookingStatusRejected BookingStatus = "Rejected"
)

// legacy values written by the first version of the app
var legacyStatuses = map[string]BookingStatus{
	"Pendente":  BookingStatusPending,
	"Aprovada":  BookingStatusApproved,
	"Rejeitada": BookingStatusRejected,
}

// ParseBookingStatus accepts current and legacy status names.
func ParseBookingStatus(s string) (BookingStatus, error) {
	switch BookingStatus(s) {
	case BookingStatusPending, BookingStatusApproved, BookingStatusRejected:
		return BookingStatus(s), nil
	}
	if status, ok := legacyStatuses[s]; ok {
		return status, nil
	}
	return "", fmt.Errorf("unknown booking status %q", s)
}

func (s *BookingStatus) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("booking status: %w", err)
	}
	status, err := ParseBookingStatus(raw)
	if err != nil {
		return err
	}
	*s = status
	return nil
}

// CanTransitionTo reports whether an explicit status change is legal.
// Only a pending request can be decided; decided requests never change again.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	if s != BookingStatusPending {
		return false
	}
	return next == BookingStatusApproved || next == BookingStatusRejected
}

// IsDecided reports whether an admin already approved or rejected the request.
func (s BookingStatus) IsDecided() bool {
	return s == BookingStatusApproved || s == BookingStatusRejected
}

type BookingRequest struct {
	ID       string        `json:"id"`
	RoomID   string        `json:"roomId"`
	RoomName string        `json:"roomName"`
	Date     string        `json:"date"`
	Time     string        `json:"time"`
	Purpose  string        `json:"purpose"`
	Status   BookingStatus `json:"status"`
}

// NewBookingRequest builds a fresh pending request for room.
// RoomName is copied at creation and is not kept in sync with later renames.
func NewBookingRequest(id string, room Room, date, timeRange, purpose string) BookingRequest {
	return BookingRequest{
		ID:       id,
		RoomID:   room.ID,
		RoomName: room.Name,
		Date:     date,
		Time:     timeRange,
		Purpose:  purpose,
		Status:   BookingStatusPending,
	}
}

// SameAs compares identity only.
func (b BookingRequest) SameAs(other BookingRequest) bool {
	return b.ID == other.ID
}
