package response

import "room-booking/internal/data/entity"

// Booking actions a client may offer for the current status.
const (
	ActionApprove = "approve"
	ActionReject  = "reject"
	ActionCancel  = "cancel"
	ActionDelete  = "delete"
)

type BookingResponse struct {
	ID       string               `json:"id"`
	RoomID   string               `json:"roomId"`
	RoomName string               `json:"roomName"`
	Date     string               `json:"date"`
	Time     string               `json:"time"`
	Purpose  string               `json:"purpose"`
	Status   entity.BookingStatus `json:"status"`
	Actions  []string             `json:"actions"`
}

func BookingToResponse(b entity.BookingRequest) BookingResponse {
	return BookingResponse{
		ID:       b.ID,
		RoomID:   b.RoomID,
		RoomName: b.RoomName,
		Date:     b.Date,
		Time:     b.Time,
		Purpose:  b.Purpose,
		Status:   b.Status,
		Actions:  allowedActions(b.Status),
	}
}

func BookingsToResponse(bookings []entity.BookingRequest) []BookingResponse {
	out := make([]BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, BookingToResponse(b))
	}
	return out
}

func allowedActions(status entity.BookingStatus) []string {
	switch {
	case status == entity.BookingStatusPending:
		return []string{ActionApprove, ActionReject, ActionCancel}
	case status.IsDecided():
		return []string{ActionDelete}
	default:
		return []string{}
	}
}
