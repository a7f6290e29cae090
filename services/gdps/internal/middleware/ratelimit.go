package middleware

import (
	"net/http"

	"github.com/zeromicro/go-zero/core/logx"

	"github.com/gdps-go/gdps/internal/ratelimit"
	"github.com/gdps-go/gdps/services/gdps/internal/svc"
)

// RateLimitMiddleware spends one unit of an action's budget per request,
// keyed by client address.
type RateLimitMiddleware struct {
	limiter ratelimit.Limiter
}

func NewRateLimitMiddleware(svcCtx *svc.ServiceContext) *RateLimitMiddleware {
	return &RateLimitMiddleware{limiter: svcCtx.Limiter}
}

// Handle gates next behind the budget of action. A limiter outage lets the
// request through.
func (m *RateLimitMiddleware) Handle(action ratelimit.Action) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			key := ClientIP(r)
			ok, err := m.limiter.Allow(r.Context(), action, key)
			if err != nil {
				logx.WithContext(r.Context()).Errorf("rate limit %s: %v", action, err)
			} else if !ok {
				logx.WithContext(r.Context()).Infof("rate limited: action=%s key=%s", action, key)
				writeFail(w, http.StatusOK)
				return
			}
			next(w, r)
		}
	}
}
