// Package claims reads the payload of compact session tokens issued by the
// HBnB API. Signatures are not verified: the API remains the only trust
// boundary and decoded claims only drive what the UI offers.
package claims

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the decoded, unverified payload of a session token.
type Claims struct {
	jwt.MapClaims
}

// Subject is the identity carried in the "sub" claim.
type Subject struct {
	ID      string
	IsAdmin bool
}

// segments decodes base64url token segments, padded or not.
var segments = jwt.NewParser(jwt.WithPaddingAllowed())

// Decode returns the claims in token's payload segment. Any malformed input
// yields (nil, false); Decode never panics and never returns an error.
func Decode(token string) (*Claims, bool) {
	parts := strings.Split(strings.TrimSpace(token), ".")
	if len(parts) != 3 || parts[1] == "" {
		return nil, false
	}

	raw, err := segments.DecodeSegment(parts[1])
	if err != nil || !utf8.Valid(raw) {
		return nil, false
	}

	var mc jwt.MapClaims
	if err := json.Unmarshal(raw, &mc); err != nil || mc == nil {
		return nil, false
	}

	return &Claims{MapClaims: mc}, true
}

// Subject returns the token subject. Both the object form
// {"id": ..., "is_admin": ...} and a plain string subject are accepted.
func (c *Claims) Subject() Subject {
	var sub Subject
	switch v := c.MapClaims["sub"].(type) {
	case string:
		sub.ID = v
	case map[string]interface{}:
		sub.ID = stringify(v["id"])
		sub.IsAdmin = truthy(v["is_admin"])
	}
	if !sub.IsAdmin {
		sub.IsAdmin = truthy(c.MapClaims["is_admin"])
	}
	return sub
}

// IsAdmin reports the admin flag carried by the token.
func (c *Claims) IsAdmin() bool {
	return c.Subject().IsAdmin
}

// ExpiresAt returns the "exp" claim when present and well formed.
func (c *Claims) ExpiresAt() (time.Time, bool) {
	exp, err := c.MapClaims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

func stringify(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprint(t)
	}
}

func truthy(v interface{}) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		return strings.EqualFold(t, "true")
	default:
		return false
	}
}
