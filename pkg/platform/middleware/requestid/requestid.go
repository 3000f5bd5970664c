// Package requestid tags every request with an id that is echoed in the
// X-Request-ID response header and attached to log lines.
package requestid

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"surveymatch/pkg/requestcontext"
)

// Header carries the request id in both directions.
const Header = "X-Request-ID"

const maxInboundLen = 128

// Middleware reuses a well-formed inbound X-Request-ID or mints a UUID.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(r.Header.Get(Header))
		if id == "" || len(id) > maxInboundLen || strings.ContainsAny(id, "\r\n") {
			id = uuid.NewString()
		}
		w.Header().Set(Header, id)
		next.ServeHTTP(w, r.WithContext(requestcontext.WithRequestID(r.Context(), id)))
	})
}
