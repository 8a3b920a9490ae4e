package entities

// Place represents a rental listing served by the HBnB API
type Place struct {
	ID             ID       `json:"id"`
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	Price          float64  `json:"price"`
	Latitude       float64  `json:"latitude"`
	Longitude      float64  `json:"longitude"`
	OwnerID        ID       `json:"owner_id"`
	OwnerFirstName string   `json:"owner_first_name,omitempty"`
	CityID         string   `json:"city_id,omitempty"`
	Amenities      []string `json:"amenities,omitempty"`
	Reviews        []string `json:"reviews,omitempty"`
}

// Location is the value matched by the location filter.
func (p Place) Location() string {
	return p.CityID
}

// PlaceInput is the request body for creating or updating a place
type PlaceInput struct {
	Title       string   `json:"title" validate:"required,max=100"`
	Description string   `json:"description" validate:"required"`
	Price       float64  `json:"price" validate:"gte=0"`
	Latitude    float64  `json:"latitude" validate:"gte=-90,lte=90"`
	Longitude   float64  `json:"longitude" validate:"gte=-180,lte=180"`
	OwnerID     string   `json:"owner_id" validate:"required"`
	CityID      string   `json:"city_id,omitempty"`
	Amenities   []string `json:"amenities,omitempty"`
}
