package middleware

import (
	"context"
	"net/http"
	"strings"
)

type contextKey int

const dataClientKey contextKey = iota

// Negotiate decides once per request whether the client is data-oriented and
// stores the verdict in the context, so every handler and the error
// translator answer in the same mode for the whole request.
func Negotiate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := context.WithValue(r.Context(), dataClientKey, wantsData(r))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// IsDataClient reports the per-request negotiation verdict.
func IsDataClient(r *http.Request) bool {
	if v, ok := r.Context().Value(dataClientKey).(bool); ok {
		return v
	}
	return wantsData(r)
}

func wantsData(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json") ||
		strings.Contains(r.Header.Get("Content-Type"), "application/json") ||
		r.Header.Get("X-Requested-With") == "XMLHttpRequest"
}
