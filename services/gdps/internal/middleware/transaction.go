package middleware

import (
	"bytes"
	"context"
	"net/http"
	"runtime/debug"

	"github.com/zeromicro/go-zero/core/logx"
	"gorm.io/gorm"

	"github.com/gdps-go/gdps/internal/db"
	"github.com/gdps-go/gdps/services/gdps/internal/svc"
)

type txStateKey struct{}

type txState struct{ rollback bool }

// Rollback marks the request transaction of ctx to be rolled back instead
// of committed. It is a no-op outside the transaction middleware.
func Rollback(ctx context.Context) {
	if st, ok := ctx.Value(txStateKey{}).(*txState); ok {
		st.rollback = true
	}
}

// bufferedWriter holds the response until the transaction outcome is known.
type bufferedWriter struct {
	w      http.ResponseWriter
	status int
	buf    bytes.Buffer
}

func (b *bufferedWriter) Header() http.Header { return b.w.Header() }

func (b *bufferedWriter) WriteHeader(status int) {
	if b.status == 0 {
		b.status = status
	}
}

func (b *bufferedWriter) Write(p []byte) (int, error) {
	if b.status == 0 {
		b.status = http.StatusOK
	}
	return b.buf.Write(p)
}

func (b *bufferedWriter) flush() {
	if b.status == 0 {
		b.status = http.StatusOK
	}
	b.w.WriteHeader(b.status)
	_, _ = b.w.Write(b.buf.Bytes())
}

// TransactionMiddleware runs each request inside one database transaction.
// The transaction commits when the handler answers 2xx without calling
// Rollback, and rolls back otherwise, including on panic. Index and
// leaderboard writes queued with db.AfterCommit run only after a commit.
type TransactionMiddleware struct {
	db *gorm.DB
}

func NewTransactionMiddleware(svcCtx *svc.ServiceContext) *TransactionMiddleware {
	return &TransactionMiddleware{db: svcCtx.DB}
}

func (m *TransactionMiddleware) Handle(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		logger := logx.WithContext(ctx)

		tx := m.db.WithContext(ctx).Begin()
		if tx.Error != nil {
			logger.Errorf("begin transaction: %v", tx.Error)
			writeFail(w, http.StatusInternalServerError)
			return
		}
		st := &txState{}
		ctx = context.WithValue(db.WithTx(ctx, tx), txStateKey{}, st)
		bw := &bufferedWriter{w: w}

		defer func() {
			if p := recover(); p != nil {
				tx.Rollback()
				logger.Errorf("panic serving %s: %v\n%s", r.URL.Path, p, debug.Stack())
				writeFail(w, http.StatusInternalServerError)
			}
		}()

		next(bw, r.WithContext(ctx))

		if st.rollback || bw.status >= http.StatusMultipleChoices {
			if err := tx.Rollback().Error; err != nil {
				logger.Errorf("rollback: %v", err)
			}
			bw.flush()
			return
		}
		if err := tx.Commit().Error; err != nil {
			logger.Errorf("commit: %v", err)
			writeFail(w, http.StatusInternalServerError)
			return
		}
		db.Committed(ctx)
		bw.flush()
	}
}
