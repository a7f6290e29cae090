package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gdps-go/gdps/internal/analytics"
	"github.com/gdps-go/gdps/services/gdps/internal/svc"
)

const codeHeadLen = 8

// statusRecorder keeps the status and the first bytes of the body.
type statusRecorder struct {
	http.ResponseWriter
	status int
	head   []byte
}

func (s *statusRecorder) WriteHeader(status int) {
	if s.status == 0 {
		s.status = status
	}
	s.ResponseWriter.WriteHeader(status)
}

func (s *statusRecorder) Write(p []byte) (int, error) {
	if s.status == 0 {
		s.status = http.StatusOK
	}
	if room := codeHeadLen + 1 - len(s.head); room > 0 {
		s.head = append(s.head, p[:min(room, len(p))]...)
	}
	return s.ResponseWriter.Write(p)
}

// ActivityMiddleware reports every served request to the analytics stream.
type ActivityMiddleware struct {
	rec *analytics.Recorder
	now func() time.Time
}

func NewActivityMiddleware(svcCtx *svc.ServiceContext) *ActivityMiddleware {
	now := svcCtx.Now
	if now == nil {
		now = time.Now
	}
	return &ActivityMiddleware{rec: svcCtx.Activity, now: now}
}

func (m *ActivityMiddleware) Handle(next http.HandlerFunc) http.HandlerFunc {
	if m.rec == nil {
		return next
	}
	return func(w http.ResponseWriter, r *http.Request) {
		start := m.now()
		_ = r.ParseForm()
		sr := &statusRecorder{ResponseWriter: w}
		next(sr, r)

		account, _ := strconv.Atoi(r.PostFormValue("accountID"))
		m.rec.Record(analytics.Activity{
			At:        start,
			RequestID: w.Header().Get(RequestIDHeader),
			Endpoint:  r.URL.Path,
			AccountID: account,
			ClientIP:  ClientIP(r),
			Status:    sr.status,
			Code:      outcome(sr.status, sr.head),
			Millis:    m.now().Sub(start).Milliseconds(),
		})
	}
}

// outcome condenses a response into the client's failure code, or "ok".
func outcome(status int, head []byte) string {
	body := strings.TrimSpace(string(head))
	if n, err := strconv.Atoi(body); err == nil && n < 0 && len(body) <= codeHeadLen {
		return body
	}
	if status >= http.StatusMultipleChoices {
		return Fail
	}
	return "ok"
}
