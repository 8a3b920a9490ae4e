package entities

// Amenity is a named feature that can be attached to a place
type Amenity struct {
	ID   ID     `json:"id"`
	Name string `json:"name"`
}
