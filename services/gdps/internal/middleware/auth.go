package middleware

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/zeromicro/go-zero/core/logx"

	"github.com/gdps-go/gdps/internal/codec"
	dom "github.com/gdps-go/gdps/internal/ports"
	"github.com/gdps-go/gdps/internal/service"
	"github.com/gdps-go/gdps/services/gdps/internal/svc"
)

var (
	errNoCredentials  = errors.New("no credentials")
	errBadCredentials = errors.New("malformed credentials")
)

// AuthMiddleware resolves the accountID and gjp2 (or legacy gjp) form fields
// into the calling account.
type AuthMiddleware struct {
	auth *service.AuthService
}

func NewAuthMiddleware(svcCtx *svc.ServiceContext) *AuthMiddleware {
	return &AuthMiddleware{auth: svcCtx.Services.Auth}
}

// Handle requires valid credentials.
func (m *AuthMiddleware) Handle(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, err := m.authenticate(r)
		if err != nil {
			m.reject(w, r, err)
			return
		}
		next(w, r.WithContext(svc.WithUser(r.Context(), u)))
	}
}

// Identify attaches the caller when credentials are sent and lets anonymous
// requests through. Credentials that are sent must still be valid.
func (m *AuthMiddleware) Identify(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, err := m.authenticate(r)
		switch {
		case errors.Is(err, errNoCredentials):
			next(w, r)
		case err != nil:
			m.reject(w, r, err)
		default:
			next(w, r.WithContext(svc.WithUser(r.Context(), u)))
		}
	}
}

func (m *AuthMiddleware) reject(w http.ResponseWriter, r *http.Request, err error) {
	var kind *service.Error
	if errors.As(err, &kind) || errors.Is(err, errNoCredentials) || errors.Is(err, errBadCredentials) {
		logx.WithContext(r.Context()).Infof("authentication failed: %v", err)
		writeFail(w, http.StatusOK)
		return
	}
	logx.WithContext(r.Context()).Errorf("authenticate: %v", err)
	writeFail(w, http.StatusInternalServerError)
}

func (m *AuthMiddleware) authenticate(r *http.Request) (*dom.User, error) {
	raw := r.FormValue("accountID")
	if raw == "" || raw == "0" {
		return nil, errNoCredentials
	}
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return nil, errBadCredentials
	}
	secret, plain, err := credential(r)
	if err != nil {
		return nil, err
	}
	if plain {
		return m.auth.AuthenticatePassword(r.Context(), id, secret)
	}
	return m.auth.AuthenticateGJP2(r.Context(), id, secret)
}

// credential returns the secret the request carries: the GJP2 digest, or for
// legacy clients the unmasked password, in which case plain is set.
func credential(r *http.Request) (secret string, plain bool, err error) {
	if v := r.FormValue("gjp2"); v != "" {
		if !codec.IsGJP2(v) {
			return "", false, errBadCredentials
		}
		return v, false, nil
	}
	if v := r.FormValue("gjp"); v != "" {
		pw, err := codec.DecodeGJP(v)
		if err != nil || pw == "" {
			return "", false, errBadCredentials
		}
		return pw, true, nil
	}
	return "", false, errNoCredentials
}
