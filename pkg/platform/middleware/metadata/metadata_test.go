package metadata

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"surveymatch/pkg/requestcontext"
)

func TestClientMetadata(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		remote  string
		want    string
	}{
		{"forwarded chain takes first hop", map[string]string{"X-Forwarded-For": "203.0.113.7, 10.0.0.1"}, "10.0.0.2:1234", "203.0.113.7"},
		{"real ip header", map[string]string{"X-Real-IP": " 198.51.100.3 "}, "10.0.0.2:1234", "198.51.100.3"},
		{"remote addr without port", nil, "192.0.2.1:5555", "192.0.2.1"},
		{"ipv6 remote addr", nil, "[::1]:5555", "[::1]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ip, ua string
			h := ClientMetadata(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				ip = requestcontext.ClientIP(r.Context())
				ua = requestcontext.UserAgent(r.Context())
			}))
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remote
			req.Header.Set("User-Agent", "survey-client/1.0")
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			h.ServeHTTP(httptest.NewRecorder(), req)
			assert.Equal(t, tt.want, ip)
			assert.Equal(t, "survey-client/1.0", ua)
		})
	}
}

func TestClientName(t *testing.T) {
	assert.Equal(t, "", ClientName(""))
	assert.Equal(t, "Chrome/120", ClientName("Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"))
	assert.True(t, strings.HasPrefix(ClientName("Mozilla/5.0 (compatible; Googlebot/2.1; +http://www.google.com/bot.html)"), "bot:"))
}
