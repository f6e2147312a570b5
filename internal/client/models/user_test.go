package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	r, err := ParseRole("admin")
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, r)

	r, err = ParseRole(" USER ")
	require.NoError(t, err)
	assert.Equal(t, RoleUser, r)

	_, err = ParseRole("root")
	require.Error(t, err)
}

func TestParseStatus(t *testing.T) {
	s, err := ParseStatus("Inactive")
	require.NoError(t, err)
	assert.Equal(t, StatusInactive, s)

	_, err = ParseStatus("banned")
	require.Error(t, err)
}

func TestUser_DecodesBackendShape(t *testing.T) {
	raw := `{"id":"7","email":"ann@example.com","name":"Ann","role":"ADMIN","status":"active",
		"lastLogin":"2024-01-15 10:30","emailVerified":true,"enabled":true}`

	var u User
	require.NoError(t, json.Unmarshal([]byte(raw), &u))

	assert.Equal(t, "7", u.ID)
	assert.True(t, u.IsAdmin())
	assert.Equal(t, StatusActive, u.Status)
	assert.Equal(t, "2024-01-15 10:30", u.LastLogin)
	assert.True(t, u.EmailVerified)
}

func TestUserPage_Pages(t *testing.T) {
	assert.Equal(t, 1, UserPage{}.Pages())
	assert.Equal(t, 1, UserPage{Total: 10, Limit: 10}.Pages())
	assert.Equal(t, 3, UserPage{Total: 21, Limit: 10}.Pages())
}

func TestAnalytics_MaxCount(t *testing.T) {
	a := Analytics{UserActivity: []ActivityPoint{{Date: "d1", Count: 3}, {Date: "d2", Count: 9}, {Date: "d3", Count: 1}}}
	assert.Equal(t, 9, a.MaxCount())
	assert.Equal(t, 0, Analytics{}.MaxCount())
}

func TestUpdateFrom(t *testing.T) {
	u := User{ID: "1", Name: "Bob", Email: "bob@example.com", Role: RoleUser, Status: StatusInactive}
	assert.Equal(t, UserUpdate{Name: "Bob", Email: "bob@example.com", Role: RoleUser, Status: StatusInactive}, UpdateFrom(u))
}
