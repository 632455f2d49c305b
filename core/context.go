package core

import "context"

// Context keys for execution options
type contextKey string

const (
	suppressHeaderKey contextKey = "suppressHeader"
	skipSessionKey    contextKey = "skipSession"
)

// WithSuppressHeader sets whether the load header should be suppressed in the context.
// The MCP server uses it so nothing but protocol frames reach stdout or stderr.
func WithSuppressHeader(ctx context.Context) context.Context {
	return context.WithValue(ctx, suppressHeaderKey, true)
}

// shouldSuppressHeader returns whether the load header should be suppressed from context
func shouldSuppressHeader(ctx context.Context) bool {
	val := ctx.Value(suppressHeaderKey)
	if val == nil {
		return false // default: show headers
	}
	suppress, ok := val.(bool)
	return ok && suppress
}

// WithSkipSession sets whether the current session may stand in for a missing descriptor.
func WithSkipSession(ctx context.Context) context.Context {
	return context.WithValue(ctx, skipSessionKey, true)
}

// shouldSkipSession returns whether session fallback is disabled from context
func shouldSkipSession(ctx context.Context) bool {
	val := ctx.Value(skipSessionKey)
	if val == nil {
		return false // default: fall back to the open session
	}
	skip, ok := val.(bool)
	return ok && skip
}
