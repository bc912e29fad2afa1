package middleware

import (
	"context"
	"crypto/subtle"
	"errors"
	"hostmaster/config"
	"hostmaster/infras/jwt"
	"hostmaster/infras/otel"
	"hostmaster/permissions"
	"hostmaster/shared/constant"
	"hostmaster/shared/failure"
	"hostmaster/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type internalCallKey struct{}

type Auth interface {
	Auth(http.Handler) http.Handler
	APIKey(http.Handler) http.Handler
}

type Role interface {
	RBAC(http.Handler) http.Handler
}

type AuthRole interface {
	Auth
	Role
}

type authRoleImpl struct {
	jwtService jwt.JWT
	otel       otel.Otel
	permission *permissions.PermissionData
	cfg        *config.Config
}

func NewAuthRoleMiddleware(jwtService jwt.JWT, otel otel.Otel, permissions *permissions.PermissionData, cfg *config.Config) AuthRole {
	return &authRoleImpl{
		jwtService: jwtService,
		otel:       otel,
		permission: permissions,
		cfg:        cfg,
	}
}

var tokenErrorMessages = []struct {
	err     error
	message string
}{
	{jwt.ErrExpiredToken, "token has expired"},
	{jwt.ErrInvalidClaim, "invalid token claims"},
	{jwt.ErrInvalidToken, "invalid token"},
}

func tokenErrorMessage(err error) string {
	for _, candidate := range tokenErrorMessages {
		if errors.Is(err, candidate.err) {
			return candidate.message
		}
	}

	return "token validation failed"
}

func isInternalCall(ctx context.Context) bool {
	internal, _ := ctx.Value(internalCallKey{}).(bool)

	return internal
}

// route resolves the chi pattern of the request and its permission entry.
func (m *authRoleImpl) route(r *http.Request) (string, permissions.Permission) {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil || rctx.Routes == nil || m.permission == nil {
		return r.URL.Path, permissions.Permission{}
	}

	pattern := rctx.Routes.Find(chi.NewRouteContext(), r.Method, r.URL.Path)

	return pattern, m.permission.FindPermissions(pattern, r.Method)
}

func reject(w http.ResponseWriter, scope otel.Scope, err error) {
	scope.TraceIfError(err)
	scope.End()
	response.WithError(w, err)
}

// Auth validates the bearer access token and stores the caller in the request context.
// Internal calls and routes marked skip pass through unauthenticated.
func (m *authRoleImpl) Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, scope := m.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, "auth.middleware")

		pattern, permission := m.route(r)
		if isInternalCall(ctx) || permission.Skip {
			scope.End()
			next.ServeHTTP(w, r)

			return
		}

		scope.SetAttributes(map[string]any{
			"middleware.type": "auth",
			"http.route":      pattern,
			"http.method":     r.Method,
		})

		header := r.Header.Get(constant.RequestHeaderAuthorization)
		if header == "" {
			reject(w, scope, failure.Unauthorized("missing authorization header"))

			return
		}

		token, err := jwt.ExtractTokenFromHeader(header)
		if err != nil {
			reject(w, scope, failure.Unauthorized("invalid authorization header format"))

			return
		}

		claims, err := m.jwtService.ValidateToken(ctx, token, jwt.AccessToken)
		if err != nil {
			reject(w, scope, failure.Unauthorized(tokenErrorMessage(err)))

			return
		}

		role, err := permissions.ParseRole(claims.Role)
		if err != nil {
			log.Warn().Str("username", claims.Username).Str("role", claims.Role).Msg("access token carries an unknown role")
			reject(w, scope, failure.Unauthorized("invalid token claims"))

			return
		}

		scope.SetAttribute("user.role", role.String())
		scope.End()

		ctx = permissions.WithActor(r.Context(), permissions.Actor{Username: claims.Username, Role: role})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RBAC enforces the coarse per-route role list. Ownership and association checks live in the services.
// It must run after Auth.
func (m *authRoleImpl) RBAC(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, scope := m.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, "rbac.middleware")

		if isInternalCall(ctx) {
			scope.End()
			next.ServeHTTP(w, r)

			return
		}

		if m.permission == nil {
			reject(w, scope, failure.ForbiddenError)

			return
		}

		_, permission := m.route(r)
		if m.permission.Skip || permission.Skip {
			scope.End()
			next.ServeHTTP(w, r)

			return
		}

		actor, err := permissions.ActorFromContext(ctx)
		if err != nil {
			reject(w, scope, err)

			return
		}

		if !permission.Allows(actor.Role) {
			scope.SetAttributes(map[string]any{
				"user.role":     actor.Role.String(),
				"allowed_roles": len(permission.Roles),
			})
			reject(w, scope, failure.ForbiddenError)

			return
		}

		scope.End()
		next.ServeHTTP(w, r)
	})
}

// APIKey marks requests carrying the configured service key as internal calls.
// A request with a wrong key is refused; one without a key is treated as a client call.
func (m *authRoleImpl) APIKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, scope := m.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, "api_key.middleware")

		key := r.Header.Get(constant.RequestHeaderAPIKey)
		if key == "" {
			scope.SetAttribute("http.source", "client")
			scope.End()
			next.ServeHTTP(w, r)

			return
		}

		scope.SetAttribute("http.source", "internal")

		expected := m.cfg.App.APIKey
		if expected == "" || subtle.ConstantTimeCompare([]byte(key), []byte(expected)) != 1 {
			reject(w, scope, failure.ForbiddenError)

			return
		}

		scope.End()

		ctx := context.WithValue(r.Context(), internalCallKey{}, true)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
