package service

import (
	"context"
	"errors"
	"regexp"
	"unicode/utf8"

	"github.com/zeromicro/go-zero/core/logx"
	"golang.org/x/crypto/bcrypt"

	"github.com/gdps-go/gdps/internal/codec"
	dom "github.com/gdps-go/gdps/internal/ports"
	"github.com/gdps-go/gdps/internal/privilege"
)

const (
	UsernameMinLen = 3
	UsernameMaxLen = 15
	PasswordMinLen = 6
	PasswordMaxLen = 20
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// AuthService owns registration and the versioned credential store.
type AuthService struct{ d *Deps }

// ValidateRegistration checks the registration length and format bounds.
func ValidateRegistration(username, password, email string) error {
	if n := utf8.RuneCountInString(username); n < UsernameMinLen || n > UsernameMaxLen {
		return fail(UserInvalidUsername)
	}
	if n := utf8.RuneCountInString(password); n < PasswordMinLen || n > PasswordMaxLen {
		return fail(UserInvalidPassword)
	}
	if !emailPattern.MatchString(email) {
		return fail(UserInvalidEmail)
	}
	return nil
}

// Register creates a user with default privileges and a GJP2 credential.
func (s *AuthService) Register(ctx context.Context, username, password, email string) (*dom.User, error) {
	if err := ValidateRegistration(username, password, email); err != nil {
		return nil, err
	}
	if exists, err := s.d.Users.UsernameExists(ctx, username); err != nil {
		return nil, err
	} else if exists {
		return nil, fail(UserUsernameExists)
	}
	if exists, err := s.d.Users.EmailExists(ctx, email); err != nil {
		return nil, err
	} else if exists {
		return nil, fail(UserEmailExists)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(codec.GJP2(password)), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	u := &dom.User{
		Username:        username,
		Email:           email,
		Privileges:      privilege.Default,
		SecondaryColour: 3,
		Icon:            1,
		Ship:            1,
		Ball:            1,
		Ufo:             1,
		Wave:            1,
		Robot:           1,
		Spider:          1,
		SwingCopter:     1,
		Jetpack:         1,
		Explosion:       1,
		CommentColour:   "0,0,0",
		RegisterTs:      s.d.Now(),
	}
	err = s.d.inTx(ctx, func(ctx context.Context) error {
		if err := s.d.Users.Create(ctx, u); err != nil {
			return err
		}
		return s.d.Credentials.Create(ctx, &dom.UserCredential{
			UserID:  u.ID,
			Version: dom.CredentialGJP2Bcrypt,
			Value:   string(hash),
		})
	})
	if err != nil {
		return nil, err
	}
	logx.WithContext(ctx).Infof("registered user %d (%s)", u.ID, u.Username)
	return u, nil
}

// Authenticate checks a plain password for username.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (*dom.User, error) {
	u, err := s.d.Users.FromUsername(ctx, username)
	if err != nil {
		return nil, orKind(err, AuthNotFound)
	}
	return u, s.verify(ctx, u, password, true)
}

// AuthenticateNameGJP2 checks a GJP2 digest for username.
func (s *AuthService) AuthenticateNameGJP2(ctx context.Context, username, gjp2 string) (*dom.User, error) {
	u, err := s.d.Users.FromUsername(ctx, username)
	if err != nil {
		return nil, orKind(err, AuthNotFound)
	}
	return u, s.verify(ctx, u, gjp2, false)
}

// AuthenticateGJP2 checks a GJP2 digest for the user with the given id.
func (s *AuthService) AuthenticateGJP2(ctx context.Context, userID int, gjp2 string) (*dom.User, error) {
	u, err := s.d.Users.FromID(ctx, userID)
	if err != nil {
		return nil, orKind(err, AuthNotFound)
	}
	return u, s.verify(ctx, u, gjp2, false)
}

// AuthenticatePassword checks a plain password for the user with the given
// id, migrating a PLAIN_BCRYPT credential on success.
func (s *AuthService) AuthenticatePassword(ctx context.Context, userID int, password string) (*dom.User, error) {
	u, err := s.d.Users.FromID(ctx, userID)
	if err != nil {
		return nil, orKind(err, AuthNotFound)
	}
	return u, s.verify(ctx, u, password, true)
}

// verify checks secret against the user's newest credential. plain tells
// whether secret is the raw password or already its GJP2 digest; only a raw
// password can satisfy a PLAIN_BCRYPT credential, which is then migrated.
func (s *AuthService) verify(ctx context.Context, u *dom.User, secret string, plain bool) error {
	cred, err := s.d.Credentials.FromUserID(ctx, u.ID)
	if err != nil {
		return orKind(err, AuthNotFound)
	}

	switch cred.Version {
	case dom.CredentialPlainBcrypt:
		if !plain {
			return fail(AuthUnsupportedVersion)
		}
		if err := compare(cred.Value, secret); err != nil {
			return err
		}
		if err := s.migrate(ctx, cred, codec.GJP2(secret)); err != nil {
			return err
		}
	case dom.CredentialGJP2Bcrypt:
		gjp2 := secret
		if plain {
			gjp2 = codec.GJP2(secret)
		}
		if !s.cached(ctx, cred.Value, gjp2) {
			if err := compare(cred.Value, gjp2); err != nil {
				return err
			}
			s.remember(ctx, cred.Value, gjp2)
		}
	default:
		return fail(AuthUnsupportedVersion)
	}

	if !u.Privileges.Has(privilege.UserAuthenticate) {
		return fail(AuthNoPrivilege)
	}
	return nil
}

func compare(hash, secret string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(secret))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return fail(AuthPasswordMismatch)
	}
	return err
}

// migrate replaces a PLAIN_BCRYPT credential with a GJP2_BCRYPT one inside
// the request transaction.
func (s *AuthService) migrate(ctx context.Context, old *dom.UserCredential, gjp2 string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(gjp2), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	err = s.d.inTx(ctx, func(ctx context.Context) error {
		if err := s.d.Credentials.Delete(ctx, old.ID); err != nil {
			return err
		}
		return s.d.Credentials.Create(ctx, &dom.UserCredential{
			UserID:  old.UserID,
			Version: dom.CredentialGJP2Bcrypt,
			Value:   string(hash),
		})
	})
	if err != nil {
		return err
	}
	logx.WithContext(ctx).Infof("migrated credential of user %d to %s", old.UserID, dom.CredentialGJP2Bcrypt)
	s.remember(ctx, string(hash), gjp2)
	return nil
}

func (s *AuthService) cached(ctx context.Context, hash, gjp2 string) bool {
	if s.d.Passwords == nil {
		return false
	}
	v, ok, err := s.d.Passwords.Get(ctx, hash)
	if err != nil {
		logx.WithContext(ctx).Errorf("password cache get: %v", err)
		return false
	}
	return ok && v == gjp2
}

func (s *AuthService) remember(ctx context.Context, hash, gjp2 string) {
	if s.d.Passwords == nil {
		return
	}
	if err := s.d.Passwords.Set(ctx, hash, gjp2); err != nil {
		logx.WithContext(ctx).Errorf("password cache set: %v", err)
	}
}

