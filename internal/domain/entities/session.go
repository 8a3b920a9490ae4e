package entities

// Session is the viewer's authentication state as carried by cookies.
// Token is only set when its claims decoded successfully.
type Session struct {
	Token     string
	SubjectID string
	IsAdmin   bool
}

// Authenticated reports whether a token is present
func (s Session) Authenticated() bool {
	return s.Token != ""
}

// CanEdit reports whether the viewer may be offered edit/delete affordances
// for a resource owned by ownerID. The API re-checks every mutation.
func (s Session) CanEdit(ownerID ID) bool {
	if !s.Authenticated() {
		return false
	}
	if s.IsAdmin {
		return true
	}
	return s.SubjectID != "" && s.SubjectID == ownerID.String()
}
