package middleware

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/zeromicro/go-zero/core/logx"
)

const RequestIDHeader = "X-Request-Id"

// RequestID tags every request with a fresh correlation id carried by all
// log lines written under its context.
func RequestID(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		w.Header().Set(RequestIDHeader, id)
		ctx := logx.ContextWithFields(r.Context(), logx.Field("request_id", id))
		next(w, r.WithContext(ctx))
	}
}
