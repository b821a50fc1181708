package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resolve(t *testing.T, trusted []string, remoteAddr string, headers map[string]string) string {
	t.Helper()
	prefixes, err := ParseTrustedProxies(trusted)
	require.NoError(t, err)

	var got string
	h := RealIP(prefixes)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = ClientIP(r)
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/reservations", nil)
	req.RemoteAddr = remoteAddr
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	h.ServeHTTP(httptest.NewRecorder(), req)
	return got
}

func TestClientIP_IgnoresForwardedHeadersFromUntrustedPeer(t *testing.T) {
	seen := map[string]struct{}{}
	for _, fwd := range []string{"192.0.2.1", "192.0.2.2", "192.0.2.3", "192.0.2.4", "192.0.2.5"} {
		ip := resolve(t, nil, "203.0.113.7:40000", map[string]string{
			"X-Forwarded-For": fwd,
			"X-Real-IP":       fwd,
		})
		seen[ip] = struct{}{}
	}
	assert.Equal(t, map[string]struct{}{"203.0.113.7": {}}, seen)
}

func TestClientIP_TrustedProxy(t *testing.T) {
	trusted := []string{"10.0.0.0/8", "172.16.0.1"}

	tests := []struct {
		name       string
		remoteAddr string
		headers    map[string]string
		want       string
	}{
		{"no headers", "10.0.0.5:1234", nil, "10.0.0.5"},
		{"forwarded for", "10.0.0.5:1234", map[string]string{"X-Forwarded-For": "192.0.2.1"}, "192.0.2.1"},
		{"spoofed leftmost hop", "10.0.0.5:1234", map[string]string{"X-Forwarded-For": "1.1.1.1, 198.51.100.4, 10.0.0.9"}, "198.51.100.4"},
		{"all hops trusted", "172.16.0.1:1234", map[string]string{"X-Forwarded-For": "10.0.0.7, 10.0.0.8"}, "10.0.0.7"},
		{"real ip", "172.16.0.1:1234", map[string]string{"X-Real-IP": "203.0.113.9"}, "203.0.113.9"},
		{"garbage header", "10.0.0.5:1234", map[string]string{"X-Forwarded-For": "not-an-ip"}, "10.0.0.5"},
		{"untrusted peer", "198.51.100.4:1234", map[string]string{"X-Forwarded-For": "192.0.2.1"}, "198.51.100.4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, resolve(t, trusted, tt.remoteAddr, tt.headers))
		})
	}
}

func TestClientIP_WithoutMiddlewareUsesRemoteAddr(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/reservations", nil)
	req.RemoteAddr = "198.51.100.4:51234"
	req.Header.Set("X-Forwarded-For", "192.0.2.1")
	assert.Equal(t, "198.51.100.4", ClientIP(req))
}

func TestParseTrustedProxies_Invalid(t *testing.T) {
	_, err := ParseTrustedProxies([]string{"10.0.0.0/33"})
	assert.Error(t, err)

	_, err = ParseTrustedProxies([]string{"proxy.local"})
	assert.Error(t, err)
}
