package request

import "fmt"

type CreateBookingRequest struct {
	RoomID    string `json:"roomId" validate:"required"`
	Date      string `json:"date" validate:"required,isodate"`
	StartTime string `json:"startTime" validate:"required,clock"`
	EndTime   string `json:"endTime" validate:"required,clock"`
	Purpose   string `json:"purpose" validate:"required,min=5,max=200"`
}

// TimeRange renders the stored "HH:MM - HH:MM" form.
func (r *CreateBookingRequest) TimeRange() string {
	return fmt.Sprintf("%s - %s", r.StartTime, r.EndTime)
}
