package middleware

import (
	"net/http"

	"github.com/zeromicro/go-zero/core/logx"
)

// UserAgent turns away anything but the game client, which sends an empty
// User-Agent header.
func UserAgent(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if ua := r.UserAgent(); ua != "" {
			logx.WithContext(r.Context()).Infof("rejected user agent %q on %s", ua, r.URL.Path)
			writeFail(w, http.StatusOK)
			return
		}
		next(w, r)
	}
}
