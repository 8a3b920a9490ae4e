package entities

// NavKey identifies a navigation affordance
type NavKey string

const (
	NavLogin      NavKey = "login"
	NavAddListing NavKey = "add-listing"
	NavAddUser    NavKey = "add-user"
	NavMyAccount  NavKey = "my-account"
	NavLogout     NavKey = "logout"
)

// NavLink is a navigation affordance shown in the page header
type NavLink struct {
	Key    NavKey
	Label  string
	Href   string
	Method string
}
