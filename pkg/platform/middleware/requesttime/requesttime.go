// Package requesttime stamps each request with a single "now" so every log
// line and computation within it agrees on the time.
package requesttime

import (
	"net/http"
	"time"

	"surveymatch/pkg/requestcontext"
)

// Middleware captures the current time at the start of the request.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := requestcontext.WithTime(r.Context(), time.Now())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
