package entities_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zatekoja/hbnb-web/internal/domain/entities"
)

func TestID_AcceptsStringsAndNumbers(t *testing.T) {
	var places []entities.Place
	err := json.Unmarshal([]byte(`[{"id":1,"price":150},{"id":"2b","price":300},{"id":null}]`), &places)
	require.NoError(t, err)

	require.Len(t, places, 3)
	assert.Equal(t, entities.ID("1"), places[0].ID)
	assert.Equal(t, entities.ID("2b"), places[1].ID)
	assert.True(t, places[2].ID.Empty())
}

func TestID_RejectsObjects(t *testing.T) {
	var p entities.Place
	assert.Error(t, json.Unmarshal([]byte(`{"id":{"x":1}}`), &p))
}

func TestSession_CanEdit(t *testing.T) {
	guest := entities.Session{}
	owner := entities.Session{Token: "t", SubjectID: "42"}
	other := entities.Session{Token: "t", SubjectID: "7"}
	admin := entities.Session{Token: "t", SubjectID: "7", IsAdmin: true}

	assert.False(t, guest.CanEdit("42"))
	assert.True(t, owner.CanEdit("42"))
	assert.False(t, other.CanEdit("42"))
	assert.True(t, admin.CanEdit("42"))
	assert.False(t, entities.Session{Token: "t"}.CanEdit(""))
}

func TestUser_PasswordNeverSerializedWhenEmpty(t *testing.T) {
	data, err := json.Marshal(entities.User{ID: "1", FirstName: "Ann"})
	require.NoError(t, err)
	assert.NotContains(t, string(data), "password")
}
