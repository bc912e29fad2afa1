package jwt_test

import (
	"context"
	"hostmaster/config"
	"hostmaster/infras/jwt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newConfig() *config.Config {
	cfg := &config.Config{}
	cfg.App.Name = "hostmaster"
	cfg.JWT.AccessSecret = "access-secret"
	cfg.JWT.RefreshSecret = "refresh-secret"
	cfg.JWT.AccessExpireMin = 15
	cfg.JWT.RefreshExpireMin = 60

	return cfg
}

func TestService_GenerateAndValidate(t *testing.T) {
	ctx := context.Background()
	svc := jwt.New(newConfig())

	pair, err := svc.GenerateTokenPair(ctx, "alice", "alice@example.com", "client")
	require.NoError(t, err)
	assert.Equal(t, "Bearer", pair.TokenType)
	assert.Equal(t, int64(15*60), pair.ExpiresIn)

	claims, err := svc.ValidateToken(ctx, pair.AccessToken, jwt.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "client", claims.Role)
	assert.Equal(t, jwt.AccessToken, claims.Type)

	_, err = svc.ValidateToken(ctx, pair.AccessToken, jwt.RefreshToken)
	assert.ErrorIs(t, err, jwt.ErrInvalidToken)

	_, err = svc.ValidateToken(ctx, "not-a-token", jwt.AccessToken)
	assert.ErrorIs(t, err, jwt.ErrInvalidToken)
}

func TestService_RefreshTokenClaims(t *testing.T) {
	ctx := context.Background()
	svc := jwt.New(newConfig())

	pair, err := svc.GenerateTokenPair(ctx, "bob", "", "employee")
	require.NoError(t, err)

	claims, err := svc.ValidateToken(ctx, pair.RefreshToken, jwt.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, "bob", claims.Username)
	assert.Equal(t, "bob", claims.Subject)
	assert.Equal(t, "hostmaster", claims.Issuer)
	assert.NotEmpty(t, claims.ID)

	access, err := svc.ValidateToken(ctx, pair.AccessToken, jwt.AccessToken)
	require.NoError(t, err)
	assert.NotEqual(t, claims.ID, access.ID)
}

func TestService_ValidateTokenRejects(t *testing.T) {
	ctx := context.Background()

	expiredCfg := newConfig()
	expiredCfg.JWT.AccessExpireMin = -5

	expired, err := jwt.New(expiredCfg).GenerateTokenPair(ctx, "carl", "", "client")
	require.NoError(t, err)

	_, err = jwt.New(expiredCfg).ValidateToken(ctx, expired.AccessToken, jwt.AccessToken)
	assert.ErrorIs(t, err, jwt.ErrExpiredToken)

	otherIssuer := newConfig()
	otherIssuer.App.Name = "another-service"

	foreign, err := jwt.New(otherIssuer).GenerateTokenPair(ctx, "carl", "", "client")
	require.NoError(t, err)

	_, err = jwt.New(newConfig()).ValidateToken(ctx, foreign.AccessToken, jwt.AccessToken)
	assert.ErrorIs(t, err, jwt.ErrInvalidToken)

	_, err = jwt.New(newConfig()).ValidateToken(ctx, foreign.AccessToken, jwt.TokenType("session"))
	assert.Error(t, err)
}

func TestExtractTokenFromHeader(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		want    string
		wantErr bool
	}{
		{name: "bearer token", header: "Bearer abc.def", want: "abc.def"},
		{name: "empty header", header: "", wantErr: true},
		{name: "missing prefix", header: "Token abc", wantErr: true},
		{name: "scheme only", header: "Bearer ", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := jwt.ExtractTokenFromHeader(tt.header)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
		})
	}
}
