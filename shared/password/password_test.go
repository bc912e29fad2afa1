package password_test

import (
	"hostmaster/shared/failure"
	"hostmaster/shared/password"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHash(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantCode int
	}{
		{name: "regular password", input: "s3cret-pass"},
		{name: "exactly the bcrypt limit", input: strings.Repeat("a", password.MaxLength)},
		{name: "empty", input: "", wantCode: http.StatusBadRequest},
		{name: "over the bcrypt limit", input: strings.Repeat("a", password.MaxLength+1), wantCode: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hashed, err := password.Hash(tt.input)

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
				assert.Empty(t, hashed)

				return
			}

			require.NoError(t, err)
			assert.NotEqual(t, tt.input, hashed)
			assert.NoError(t, password.Verify(tt.input, hashed))
		})
	}
}

func TestHash_Salted(t *testing.T) {
	first, err := password.Hash("same-password")
	require.NoError(t, err)

	second, err := password.Hash("same-password")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestVerify(t *testing.T) {
	hashed, err := password.Hash("correct horse")
	require.NoError(t, err)

	tests := []struct {
		name   string
		plain  string
		hashed string
	}{
		{name: "wrong password", plain: "battery staple", hashed: hashed},
		{name: "empty password", plain: "", hashed: hashed},
		{name: "empty hash", plain: "correct horse", hashed: ""},
		{name: "malformed hash", plain: "correct horse", hashed: "not-a-bcrypt-hash"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, password.Verify(tt.plain, tt.hashed), password.ErrInvalidPassword)
		})
	}
}
