package entities

// Review represents a user review of a place
type Review struct {
	ID            ID     `json:"id"`
	Text          string `json:"text"`
	Rating        int    `json:"rating"`
	PlaceID       ID     `json:"place_id"`
	PlaceName     string `json:"place_name,omitempty"`
	UserID        ID     `json:"user_id"`
	UserFirstName string `json:"user_first_name,omitempty"`
}

// ReviewInput is the request body for creating or updating a review.
// Rating is forwarded as entered; range checks belong to the API.
type ReviewInput struct {
	Text    string `json:"text" validate:"required"`
	Rating  int    `json:"rating"`
	PlaceID string `json:"place_id,omitempty"`
	UserID  string `json:"user_id,omitempty"`
}
