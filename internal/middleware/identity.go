package middleware

import (
	"context"
	"net/http"

	"github.com/studiobook/studiobook-api/internal/pkg/response"
)

type contextKey string

const UserIDKey contextKey = "user_id"

// Identity returns middleware that extracts the requester identity from
// the X-User-ID header. Authentication itself happens upstream (API
// gateway); this service only needs an opaque requester id to attribute
// bookings to.
func Identity() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID := r.Header.Get("X-User-ID")
			if userID == "" {
				response.Unauthorized(w, "Missing X-User-ID header")
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUserID extracts the requester id from context
func GetUserID(ctx context.Context) string {
	if id, ok := ctx.Value(UserIDKey).(string); ok {
		return id
	}
	return ""
}
