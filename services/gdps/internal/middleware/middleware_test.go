package middleware

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/gdps-go/gdps/internal/analytics"
	"github.com/gdps-go/gdps/internal/db"
	"github.com/gdps-go/gdps/internal/ratelimit"
	"github.com/gdps-go/gdps/services/gdps/internal/svc"
)

type note struct {
	ID   int `gorm:"primaryKey"`
	Text string
}

func openDB(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := db.Open("file:" + filepath.Join(t.TempDir(), "mw.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := gdb.AutoMigrate(&note{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return gdb
}

func countNotes(t *testing.T, gdb *gorm.DB) int64 {
	t.Helper()
	var n int64
	if err := gdb.Model(&note{}).Count(&n).Error; err != nil {
		t.Fatal(err)
	}
	return n
}

func TestTransaction(t *testing.T) {
	tests := []struct {
		name       string
		after      func(w http.ResponseWriter, r *http.Request)
		wantStatus int
		wantBody   string
		wantRows   int64
	}{
		{
			name:       "commit",
			after:      func(w http.ResponseWriter, r *http.Request) { _, _ = io.WriteString(w, "1") },
			wantStatus: http.StatusOK,
			wantBody:   "1",
			wantRows:   1,
		},
		{
			name: "flagged",
			after: func(w http.ResponseWriter, r *http.Request) {
				Rollback(r.Context())
				_, _ = io.WriteString(w, "-2")
			},
			wantStatus: http.StatusOK,
			wantBody:   "-2",
		},
		{
			name: "error status",
			after: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
				_, _ = io.WriteString(w, Fail)
			},
			wantStatus: http.StatusInternalServerError,
			wantBody:   Fail,
		},
		{
			name:       "panic",
			after:      func(http.ResponseWriter, *http.Request) { panic("boom") },
			wantStatus: http.StatusInternalServerError,
			wantBody:   Fail,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gdb := openDB(t)
			m := NewTransactionMiddleware(&svc.ServiceContext{DB: gdb})
			h := m.Handle(func(w http.ResponseWriter, r *http.Request) {
				if _, ok := db.TxFrom(r.Context()); !ok {
					t.Error("handler ran without a transaction")
				}
				if err := db.Conn(r.Context(), gdb).Create(&note{Text: "x"}).Error; err != nil {
					t.Errorf("insert: %v", err)
				}
				tt.after(w, r)
			})

			rec := httptest.NewRecorder()
			h(rec, httptest.NewRequest(http.MethodPost, "/", nil))
			if rec.Code != tt.wantStatus || rec.Body.String() != tt.wantBody {
				t.Fatalf("got %d %q, want %d %q", rec.Code, rec.Body.String(), tt.wantStatus, tt.wantBody)
			}
			if n := countNotes(t, gdb); n != tt.wantRows {
				t.Fatalf("rows = %d, want %d", n, tt.wantRows)
			}
		})
	}
}

func TestRollbackOutsideTransaction(t *testing.T) {
	Rollback(context.Background())
}

func TestUserAgent(t *testing.T) {
	called := false
	h := UserAgent(func(w http.ResponseWriter, r *http.Request) { called = true })

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.Header.Set("User-Agent", "curl/8.0")
	rec := httptest.NewRecorder()
	h(rec, req)
	if called || rec.Body.String() != Fail || rec.Code != http.StatusOK {
		t.Fatalf("browser passed: called=%v body=%q", called, rec.Body.String())
	}

	h(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/", nil))
	if !called {
		t.Fatal("empty user agent rejected")
	}
}

func TestRequestID(t *testing.T) {
	var seen bool
	h := RequestID(func(w http.ResponseWriter, r *http.Request) { seen = true })
	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodPost, "/", nil))
	if !seen || len(rec.Header().Get(RequestIDHeader)) != 36 {
		t.Fatalf("request id = %q", rec.Header().Get(RequestIDHeader))
	}
}

func TestClientIP(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/", nil)
	r.RemoteAddr = "10.0.0.1:5555"
	if got := ClientIP(r); got != "10.0.0.1" {
		t.Fatalf("remote = %q", got)
	}
	r.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")
	if got := ClientIP(r); got != "203.0.113.9" {
		t.Fatalf("forwarded = %q", got)
	}
}

type stubLimiter struct {
	allow bool
	err   error
	keys  []string
}

func (s *stubLimiter) Allow(_ context.Context, _ ratelimit.Action, key string) (bool, error) {
	s.keys = append(s.keys, key)
	return s.allow, s.err
}

func TestRateLimit(t *testing.T) {
	tests := []struct {
		name    string
		limiter *stubLimiter
		pass    bool
	}{
		{"allowed", &stubLimiter{allow: true}, true},
		{"denied", &stubLimiter{}, false},
		{"limiter down", &stubLimiter{err: errors.New("redis down")}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewRateLimitMiddleware(&svc.ServiceContext{Limiter: tt.limiter})
			called := false
			h := m.Handle(ratelimit.Register)(func(w http.ResponseWriter, r *http.Request) { called = true })
			req := httptest.NewRequest(http.MethodPost, "/", nil)
			req.RemoteAddr = "192.0.2.7:1234"
			rec := httptest.NewRecorder()
			h(rec, req)
			if called != tt.pass {
				t.Fatalf("called = %v, want %v", called, tt.pass)
			}
			if !tt.pass && rec.Body.String() != Fail {
				t.Fatalf("body = %q", rec.Body.String())
			}
			if len(tt.limiter.keys) != 1 || tt.limiter.keys[0] != "192.0.2.7" {
				t.Fatalf("keys = %v", tt.limiter.keys)
			}
		})
	}
}

type captureSink struct {
	got chan analytics.Activity
}

func (c *captureSink) Publish(_ context.Context, a analytics.Activity) error {
	c.got <- a
	return nil
}

func (c *captureSink) Close() error { return nil }

func TestActivity(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		status   int
		wantCode string
	}{
		{"success", "1#2", http.StatusOK, "ok"},
		{"domain failure", "-3", http.StatusOK, "-3"},
		{"server error", "oops", http.StatusInternalServerError, Fail},
		{"long negative", "-123456789012", http.StatusOK, "ok"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sink := &captureSink{got: make(chan analytics.Activity, 1)}
			rec := analytics.NewRecorder(sink, 4)
			t.Cleanup(func() { _ = rec.Close() })

			m := NewActivityMiddleware(&svc.ServiceContext{Activity: rec})
			h := RequestID(m.Handle(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			}))
			req := httptest.NewRequest(http.MethodPost, "/database/likeGJItem211.php", strings.NewReader("accountID=42&itemID=3"))
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			rec2 := httptest.NewRecorder()
			h(rec2, req)

			if rec2.Body.String() != tt.body {
				t.Fatalf("body = %q", rec2.Body.String())
			}
			select {
			case a := <-sink.got:
				if a.Code != tt.wantCode || a.AccountID != 42 || a.Status != tt.status || a.Endpoint != "/database/likeGJItem211.php" {
					t.Fatalf("activity = %+v", a)
				}
				if a.RequestID != rec2.Header().Get(RequestIDHeader) {
					t.Fatalf("request id = %q", a.RequestID)
				}
			case <-time.After(time.Second):
				t.Fatal("no activity recorded")
			}
		})
	}
}

func TestActivityDisabled(t *testing.T) {
	called := false
	h := NewActivityMiddleware(&svc.ServiceContext{}).Handle(func(http.ResponseWriter, *http.Request) { called = true })
	h(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/", nil))
	if !called {
		t.Fatal("handler skipped")
	}
}
