package middleware

import (
	"net"
	"net/http"

	"github.com/Await-d/maple-blog-sub003/internal/auth"
)

// ClientIP puts the caller's address into the request context. It runs
// after RealIP, so RemoteAddr is already the forwarded address when the
// request came through a proxy; a bare host:port from a direct
// connection gets its port stripped.
func ClientIP(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := r.RemoteAddr
		if host, _, err := net.SplitHostPort(ip); err == nil {
			ip = host
		}
		next.ServeHTTP(w, r.WithContext(auth.WithClientIP(r.Context(), ip)))
	})
}
