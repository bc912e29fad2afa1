package constant

import "time"

type contextKey string

const (
	ContextKeyUsername contextKey = "username"
	ContextKeyUserRole contextKey = "user_role"
)

// Query string and path parameters.
const (
	RequestParamPage    = "page"
	RequestParamLimit   = "limit"
	RequestParamSortBy  = "sort_by"
	RequestParamSortDir = "sort_dir"

	RequestParamID        = "id"
	RequestParamUsername  = "username"
	RequestParamItemID    = "item_id"
	RequestParamProductID = "product_id"
)

const (
	DefaultValuePage  = 1
	DefaultValueLimit = 10
	MaxValueLimit     = 100
)

// Audit columns shared by every mutable table.
const (
	FieldModifiedAt = "modified_at"
	FieldModifiedBy = "modified_by"
)

// Postgres SQLSTATE codes that map to client errors.
const (
	PqErrorCodeUniqueViolation    = "23505"
	PqErrorCodeFkViolation        = "23503"
	PqErrorCodeExclusionViolation = "23P01"
	PqErrorCodeCheckViolation     = "23514"
)

const (
	DateFormat     = time.RFC3339
	DateOnlyFormat = time.DateOnly
)

// Tracer scope names.
const (
	OtelServiceScopeName    = "service"
	OtelRepositoryScopeName = "repository"
	OtelHandlerScopeName    = "handler"
	OtelEventScopeName      = "event"
	OtelExternalScopeName   = "external"
	OtelJobScopeName        = "job"

	OtelQueryAttributeKey = "query"
)

const (
	RequestHeaderAuthorization      = "Authorization"
	RequestHeaderUserAgent          = "User-Agent"
	RequestHeaderContentType        = "Content-Type"
	RequestHeaderAPIKey             = "X-API-Key"
	RequestHeaderRateLimit          = "X-RateLimit-Limit"
	RequestHeaderRateLimitRemaining = "X-RateLimit-Remaining"
	RequestHeaderRateLimitWindow    = "X-RateLimit-Window"
)

const (
	ContentTypeJSON = "application/json"
	ContentTypeHTML = "text/html; charset=UTF-8"
)

const (
	ResponseErrorPrepareShutdown      = "SERVER PREPARING TO SHUT DOWN"
	ResponseErrorUnhealthy            = "SERVER UNHEALTHY"
	ResponseErrorRequestLimitExceeded = "REQUEST LIMIT EXCEEDED"
	ResponseErrorInternal             = "internal server error"
)

// Asterix is the redis glob wildcard used for prefix invalidation.
const Asterix = "*"
