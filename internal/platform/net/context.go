// Package net provides request-scoped context values shared by transports
package net

import (
	"context"

	chimw "github.com/go-chi/chi/v5/middleware"
)

type ctxKey string

const keyEvent ctxKey = "github_event"

// WithRequestID stores reqID where chimw.GetReqID can find it
func WithRequestID(ctx context.Context, reqID string) context.Context {
	if reqID == "" {
		return ctx
	}
	return context.WithValue(ctx, chimw.RequestIDKey, reqID)
}

// RequestID returns the request id on the context if present
func RequestID(ctx context.Context) string { return chimw.GetReqID(ctx) }

// WithEvent annotates ctx with the GitHub event name of the delivery being served
func WithEvent(ctx context.Context, event string) context.Context {
	if event == "" {
		return ctx
	}
	return context.WithValue(ctx, keyEvent, event)
}

// Event returns the GitHub event name on the context if present
func Event(ctx context.Context) string {
	v, _ := ctx.Value(keyEvent).(string)
	return v
}
