package jwt

//go:generate go run go.uber.org/mock/mockgen -source=./jwt.go -destination=./mocks/jwt_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"hostmaster/config"
	"hostmaster/shared/timezone"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
	ErrInvalidClaim = errors.New("invalid token claim")
)

type TokenType string

const (
	AccessToken  TokenType = "access"
	RefreshToken TokenType = "refresh"

	bearerPrefix = "Bearer "
	clockSkew    = 30 * time.Second
)

// Claims identify the actor of a request. The role is re-validated by the auth
// middleware, so a token minted before a role change keeps its old role until it expires.
type Claims struct {
	Username string    `json:"username"`
	Email    string    `json:"email,omitempty"`
	Role     string    `json:"role,omitempty"`
	Type     TokenType `json:"type"`
	jwt.RegisteredClaims
}

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
}

type JWT interface {
	GenerateTokenPair(ctx context.Context, username, email, role string) (*TokenPair, error)
	ValidateToken(ctx context.Context, tokenString string, tokenType TokenType) (*Claims, error)
}

type Service struct {
	config *config.Config
}

func New(cfg *config.Config) JWT {
	return &Service{
		config: cfg,
	}
}

func (s *Service) GenerateTokenPair(_ context.Context, username, email, role string) (*TokenPair, error) {
	now := timezone.Now()

	accessToken, err := s.sign(Claims{Username: username, Email: email, Role: role, Type: AccessToken}, now, s.config.JWT.AccessExpireMin)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, err := s.sign(Claims{Username: username, Email: email, Role: role, Type: RefreshToken}, now, s.config.JWT.RefreshExpireMin)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    strings.TrimSpace(bearerPrefix),
		ExpiresIn:    int64(s.config.JWT.AccessExpireMin) * int64(time.Minute/time.Second),
	}, nil
}

func (s *Service) ValidateToken(_ context.Context, tokenString string, tokenType TokenType) (*Claims, error) {
	secret, err := s.secret(tokenType)
	if err != nil {
		return nil, err
	}

	claims := &Claims{}

	_, err = jwt.ParseWithClaims(tokenString, claims,
		func(*jwt.Token) (any, error) { return secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.config.App.Name),
		jwt.WithLeeway(clockSkew),
		jwt.WithTimeFunc(timezone.Now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}

		return nil, ErrInvalidToken
	}

	if claims.Type != tokenType || claims.Username == "" {
		return nil, ErrInvalidClaim
	}

	return claims, nil
}

func (s *Service) sign(claims Claims, issuedAt time.Time, expireMin int) (string, error) {
	secret, err := s.secret(claims.Type)
	if err != nil {
		return "", err
	}

	claims.RegisteredClaims = jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Issuer:    s.config.App.Name,
		Subject:   claims.Username,
		IssuedAt:  jwt.NewNumericDate(issuedAt),
		NotBefore: jwt.NewNumericDate(issuedAt),
		ExpiresAt: jwt.NewNumericDate(issuedAt.Add(time.Duration(expireMin) * time.Minute)),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

func (s *Service) secret(tokenType TokenType) ([]byte, error) {
	switch tokenType {
	case AccessToken:
		return []byte(s.config.JWT.AccessSecret), nil
	case RefreshToken:
		return []byte(s.config.JWT.RefreshSecret), nil
	default:
		return nil, fmt.Errorf("unknown token type: %s", tokenType)
	}
}

// ExtractTokenFromHeader strips the Bearer scheme from an Authorization header.
func ExtractTokenFromHeader(authHeader string) (string, error) {
	if authHeader == "" {
		return "", errors.New("authorization header is required")
	}

	token, ok := strings.CutPrefix(authHeader, bearerPrefix)
	if !ok || strings.TrimSpace(token) == "" {
		return "", errors.New("authorization header must start with 'Bearer '")
	}

	return strings.TrimSpace(token), nil
}
