package response

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gdps-go/gdps/internal/service"
)

func TestCodeOf(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		want   Code
		domain bool
	}{
		{"code", NoData, NoData, true},
		{"wrapped code", fmt.Errorf("parse: %w", Failed), Failed, true},
		{"username taken", &service.Error{Kind: service.UserUsernameExists}, -2, true},
		{"bad password", fmt.Errorf("login: %w", &service.Error{Kind: service.AuthPasswordMismatch}), -11, true},
		{"unmapped kind", &service.Error{Kind: service.LikesAlreadyLiked}, Failed, true},
		{"infrastructure", errors.New("connection refused"), Failed, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := CodeOf(tt.err)
			if got != tt.want || ok != tt.domain {
				t.Fatalf("CodeOf = %d, %v; want %d, %v", got, ok, tt.want, tt.domain)
			}
		})
	}
}

func TestWrite(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{"body", "1,1", nil, http.StatusOK, "1,1"},
		{"domain failure", "ignored", &service.Error{Kind: service.UserEmailExists}, http.StatusOK, "-3"},
		{"infrastructure failure", "", errors.New("disk full"), http.StatusInternalServerError, "-1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			Write(rec, httptest.NewRequest(http.MethodPost, "/x.php", nil), tt.body, tt.err)
			if rec.Code != tt.wantStatus || rec.Body.String() != tt.wantBody {
				t.Fatalf("got %d %q, want %d %q", rec.Code, rec.Body.String(), tt.wantStatus, tt.wantBody)
			}
			if ct := rec.Header().Get("Content-Type"); ct != "text/plain; charset=utf-8" {
				t.Fatalf("content type = %q", ct)
			}
		})
	}
}

func TestInvalid(t *testing.T) {
	rec := httptest.NewRecorder()
	Invalid(rec, httptest.NewRequest(http.MethodPost, "/x.php", nil), errors.New(`field "levelID" is not set`))
	if rec.Code != http.StatusOK || rec.Body.String() != "-1" {
		t.Fatalf("got %d %q", rec.Code, rec.Body.String())
	}
}
