// Package middleware holds the request pipeline of the game endpoints.
package middleware

import (
	"io"
	"net"
	"net/http"
	"strings"
)

// Fail is the generic failure body the client understands.
const Fail = "-1"

func writeFail(w http.ResponseWriter, status int) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, Fail)
}

// ClientIP identifies the caller for rate limiting.
func ClientIP(r *http.Request) string {
	if xf := strings.TrimSpace(r.Header.Get("X-Forwarded-For")); xf != "" {
		parts := strings.Split(xf, ",")
		return strings.TrimSpace(parts[0])
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
