package request

type SuggestRoomsRequest struct {
	Description string `json:"description" validate:"required,min=10,max=500"`
}
