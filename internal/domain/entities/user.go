package entities

// User represents an HBnB account. Password is write-only.
type User struct {
	ID        ID     `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Password  string `json:"password,omitempty"`
	IsAdmin   bool   `json:"is_admin,omitempty"`
}

// UserInput is the request body for creating or updating a user
type UserInput struct {
	FirstName       string `json:"first_name" validate:"required,max=50"`
	LastName        string `json:"last_name" validate:"required,max=50"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password,omitempty" validate:"required_without=ID"`
	ConfirmPassword string `json:"-" validate:"eqfield=Password"`
	// ID is set for updates only and is carried in the path.
	ID string `json:"-"`
}

// Credentials is the login request body
type Credentials struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResult is the login response body
type LoginResult struct {
	AccessToken string `json:"access_token"`
	UserID      ID     `json:"user_id"`
}
