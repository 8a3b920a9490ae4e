package entities

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ID is a resource identifier. The API serves UUID strings, but numeric ids
// are accepted and kept in their decimal form.
type ID string

// UnmarshalJSON accepts a JSON string, number or null.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id must be a string or number: %w", err)
	}
	*id = ID(n.String())
	return nil
}

// String returns the identifier text
func (id ID) String() string {
	return string(id)
}

// Empty reports whether the identifier is missing
func (id ID) Empty() bool {
	return id == ""
}
