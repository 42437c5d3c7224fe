package types

// Gin context keys shared by middleware and handlers.
const (
	ContextAdminKey     = "admin"
	ContextRequestIDKey = "request_id"
)

const (
	RequestIDHeader = "X-Request-ID"
	TokenCookieName = "token"
)
