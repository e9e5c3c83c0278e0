package core

import "context"

// Context keys for ingestion options
type contextKey string

const suppressProgressKey contextKey = "suppressProgress"

// WithSuppressProgress hides the ingestion progress bar, for MCP mode and tests.
func WithSuppressProgress(ctx context.Context) context.Context {
	return context.WithValue(ctx, suppressProgressKey, true)
}

// shouldSuppressProgress returns whether the progress bar should stay hidden
func shouldSuppressProgress(ctx context.Context) bool {
	suppress, ok := ctx.Value(suppressProgressKey).(bool)
	return ok && suppress
}
