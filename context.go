package mvc

import (
	"context"
	"net/http"
)

type contextKey[T any] struct{}

// withValue stores a typed value in the request context.
func withValue[T any](r *http.Request, val T) *http.Request {
	ctx := context.WithValue(r.Context(), contextKey[T]{}, val)
	return r.WithContext(ctx)
}

// valueOf retrieves a typed value stored by withValue.
func valueOf[T any](ctx context.Context) (T, bool) {
	val, ok := ctx.Value(contextKey[T]{}).(T)
	return val, ok
}
