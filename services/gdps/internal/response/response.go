// Package response renders game endpoint results as the client's plain text
// bodies.
package response

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/zeromicro/go-zero/core/logx"

	"github.com/gdps-go/gdps/internal/service"
	"github.com/gdps-go/gdps/services/gdps/internal/middleware"
)

// Code is a numeric failure body the client interprets.
type Code int

const (
	Failed Code = -1
	NoData Code = -2
)

func (c Code) Error() string { return "code " + strconv.Itoa(int(c)) }

// kindCodes lists the kinds the client tells apart. Every other kind is
// answered with Failed.
var kindCodes = map[service.Kind]Code{
	service.UserUsernameExists:   -2,
	service.UserEmailExists:      -3,
	service.UserInvalidUsername:  -4,
	service.UserInvalidPassword:  -5,
	service.UserInvalidEmail:     -6,
	service.AuthNotFound:         -11,
	service.AuthPasswordMismatch: -11,
	service.AuthNoPrivilege:      -12,
	service.SongsBlocked:         -2,
	service.SongsNotFound:        -1,
	service.SaveDataNotFound:     -2,
}

// CodeOf maps err onto the body sent for it. ok is false for infrastructure
// failures.
func CodeOf(err error) (c Code, ok bool) {
	if errors.As(err, &c) {
		return c, true
	}
	var e *service.Error
	if !errors.As(err, &e) {
		return Failed, false
	}
	if c, found := kindCodes[e.Kind]; found {
		return c, true
	}
	return Failed, true
}

// Write sends body, or the failure code for err. Any failure rolls back the
// request transaction.
func Write(w http.ResponseWriter, r *http.Request, body string, err error) {
	status := http.StatusOK
	if err != nil {
		middleware.Rollback(r.Context())
		code, ok := CodeOf(err)
		if ok {
			logx.WithContext(r.Context()).Infof("%s: %v", r.URL.Path, err)
		} else {
			logx.WithContext(r.Context()).Errorf("%s: %v", r.URL.Path, err)
			status = http.StatusInternalServerError
		}
		body = strconv.Itoa(int(code))
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

// Invalid answers a request whose form failed to parse.
func Invalid(w http.ResponseWriter, r *http.Request, err error) {
	Write(w, r, "", fmt.Errorf("invalid request: %v: %w", err, Failed))
}
