package response

import "room-booking/internal/data/entity"

type RoomResponse struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Capacity     int      `json:"capacity"`
	Amenities    []string `json:"amenities"`
	Floor        string   `json:"floor"`
	Type         string   `json:"type"`
	ImageURL     string   `json:"imageUrl"`
	ImageHint    string   `json:"imageHint"`
	AvailableNow bool     `json:"availableNow"`
	StatusText   string   `json:"statusText"`
}

func RoomToResponse(r entity.Room) RoomResponse {
	return RoomResponse{
		ID:           r.ID,
		Name:         r.Name,
		Capacity:     r.Capacity,
		Amenities:    r.Amenities,
		Floor:        r.Floor,
		Type:         r.Type,
		ImageURL:     r.ImageURL,
		ImageHint:    r.ImageHint,
		AvailableNow: r.AvailableNow,
		StatusText:   r.StatusText,
	}
}

type SuggestionResponse struct {
	Rooms []entity.SuggestedRoom `json:"rooms"`
}
