package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoxUpdateTriState(t *testing.T) {
	// Absent, null, and value must decode to three distinct states.
	var u BoxUpdate
	payload := `{"note": null, "location": "Line 3"}`
	require.NoError(t, json.Unmarshal([]byte(payload), &u))

	assert.False(t, u.Manager.Set, "absent field must not be marked set")

	assert.True(t, u.Note.Set)
	assert.False(t, u.Note.Valid, "explicit null must be set but not valid")
	assert.Nil(t, u.Note.Ptr())

	assert.True(t, u.Location.Set)
	assert.True(t, u.Location.Valid)
	assert.Equal(t, "Line 3", u.Location.Value)
	require.NotNil(t, u.Location.Ptr())
	assert.Equal(t, "Line 3", *u.Location.Ptr())
}

func TestOptStringEmptyValue(t *testing.T) {
	// An explicit empty string is present and valid, distinct from null.
	var u BoxUpdate
	require.NoError(t, json.Unmarshal([]byte(`{"note": ""}`), &u))

	assert.True(t, u.Note.Set)
	assert.True(t, u.Note.Valid)
	assert.Equal(t, "", u.Note.Value)
}

func TestOptStringRejectsNonString(t *testing.T) {
	var u BoxUpdate
	err := json.Unmarshal([]byte(`{"note": 42}`), &u)
	assert.Error(t, err)
}
