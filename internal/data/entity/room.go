package entity

type Room struct {
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

// SuggestedRoom is one entry returned by the AI suggestion collaborator.
type SuggestedRoom struct {
	Name         string `json:"name"`
	Capacity     int    `json:"capacity"`
	Availability string `json:"availability"`
}
