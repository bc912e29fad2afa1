package permissions_test

import (
	"hostmaster/permissions"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	data, err := permissions.Parse([]byte(`{
		"endpoints": [
			{"method": "POST", "path": "/v1/users/", "roles": ["admin"]},
			{"method": "POST", "path": "/v1/auth/login", "skip": true}
		]
	}`))
	require.NoError(t, err)

	users := data.FindPermissions("/v1/users", "POST")
	assert.True(t, users.Allows(permissions.RoleAdmin))
	assert.False(t, users.Allows(permissions.RoleClient))

	assert.True(t, data.FindPermissions("/v1/auth/login/", "POST").Skip)

	unlisted := data.FindPermissions("/v1/reviews", "GET")
	assert.False(t, unlisted.Skip)
	assert.True(t, unlisted.Allows(permissions.RoleClient))
}

func TestParse_Invalid(t *testing.T) {
	_, err := permissions.Parse([]byte(`{"endpoints": [{"method": "GET", "path": "/v1/x", "roles": ["root"]}]}`))
	assert.Error(t, err)

	_, err = permissions.Parse([]byte(`not json`))
	assert.Error(t, err)
}

func TestGet(t *testing.T) {
	data := permissions.Get()
	require.NotNil(t, data)

	booked := data.FindPermissions("/v1/rooms/booked", "GET")
	assert.True(t, booked.Allows(permissions.RoleEmployee))
	assert.False(t, booked.Allows(permissions.RoleClient))

	assert.True(t, data.FindPermissions("/v1/auth/register", "POST").Skip)
	assert.True(t, data.FindPermissions("/v1/rooms/available", "GET").Allows(permissions.RoleClient))
}
