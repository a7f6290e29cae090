package service

import (
	"context"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/gdps-go/gdps/internal/codec"
	dom "github.com/gdps-go/gdps/internal/ports"
	"github.com/gdps-go/gdps/internal/privilege"
)

func TestRegisterThenAuthenticate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u, err := f.Auth.Register(ctx, "Player", "secret1", "p@x.io")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	got, err := f.Auth.Authenticate(ctx, "Player", "secret1")
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if got.ID != u.ID {
		t.Fatalf("authenticated as %d, registered %d", got.ID, u.ID)
	}
	if _, err := f.Auth.AuthenticateGJP2(ctx, u.ID, codec.GJP2("secret1")); err != nil {
		t.Fatalf("gjp2: %v", err)
	}
	_, err = f.Auth.Authenticate(ctx, "Player", "secret2")
	wantKind(t, err, AuthPasswordMismatch)
	_, err = f.Auth.Authenticate(ctx, "Nobody", "secret1")
	wantKind(t, err, AuthNotFound)
}

func TestRegisterDuplicates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.register(t, "Player")
	_, err := f.Auth.Register(ctx, "Player", "secret1", "other@x.io")
	wantKind(t, err, UserUsernameExists)
	_, err = f.Auth.Register(ctx, "Other", "secret1", "Player@x.io")
	wantKind(t, err, UserEmailExists)
}

func TestRegistrationBounds(t *testing.T) {
	cases := []struct {
		name, username, password, email string
		want                            Kind
	}{
		{"username 3", "abc", "secret1", "a@x.io", ""},
		{"username 15", strings.Repeat("a", 15), "secret1", "a@x.io", ""},
		{"username 2", "ab", "secret1", "a@x.io", UserInvalidUsername},
		{"username 16", strings.Repeat("a", 16), "secret1", "a@x.io", UserInvalidUsername},
		{"password 6", "abc", "123456", "a@x.io", ""},
		{"password 20", "abc", strings.Repeat("p", 20), "a@x.io", ""},
		{"password 5", "abc", "12345", "a@x.io", UserInvalidPassword},
		{"password 21", "abc", strings.Repeat("p", 21), "a@x.io", UserInvalidPassword},
		{"email", "abc", "secret1", "not-an-email", UserInvalidEmail},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := ValidateRegistration(c.username, c.password, c.email)
			if KindOf(err) != c.want {
				t.Fatalf("err = %v, want %q", err, c.want)
			}
		})
	}
}

func TestPlainCredentialMigratesOnLogin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.register(t, "Legacy")
	f.plainCredential(t, u.ID, "secret1")

	_, err := f.Auth.AuthenticateGJP2(ctx, u.ID, codec.GJP2("secret1"))
	wantKind(t, err, AuthUnsupportedVersion)
	_, err = f.Auth.AuthenticatePassword(ctx, u.ID, "wrong1")
	wantKind(t, err, AuthPasswordMismatch)

	if _, err := f.Auth.Authenticate(ctx, "Legacy", "secret1"); err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	for _, c := range []struct {
		v    dom.CredentialVersion
		want int64
	}{{dom.CredentialPlainBcrypt, 0}, {dom.CredentialGJP2Bcrypt, 1}} {
		n, err := f.deps.Credentials.CountForUser(ctx, u.ID, c.v)
		if err != nil || n != c.want {
			t.Fatalf("%s credentials = %d, %v; want %d", c.v, n, err, c.want)
		}
	}

	cred, _ := f.deps.Credentials.FromUserID(ctx, u.ID)
	cached, ok, err := f.deps.Passwords.Get(ctx, cred.Value)
	if err != nil || !ok || cached != codec.GJP2("secret1") {
		t.Fatalf("password cache = %q, %v, %v", cached, ok, err)
	}
	if _, err := f.Auth.AuthenticateGJP2(ctx, u.ID, codec.GJP2("secret1")); err != nil {
		t.Fatalf("gjp2 after migration: %v", err)
	}
}

func TestAuthenticateRequiresPrivilege(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.register(t, "Banned")
	if _, err := f.Users.UpdatePrivileges(ctx, u.ID, u.Privileges.Without(privilege.UserAuthenticate)); err != nil {
		t.Fatal(err)
	}
	_, err := f.Auth.Authenticate(ctx, "Banned", "secret1")
	wantKind(t, err, AuthNoPrivilege)
}

func (f *fixture) plainCredential(t *testing.T, userID int, password string) {
	t.Helper()
	ctx := context.Background()
	old, err := f.deps.Credentials.FromUserID(ctx, userID)
	if err != nil {
		t.Fatal(err)
	}
	if err := f.deps.Credentials.Delete(ctx, old.ID); err != nil {
		t.Fatal(err)
	}
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	plain := &dom.UserCredential{UserID: userID, Version: dom.CredentialPlainBcrypt, Value: string(hash)}
	if err := f.deps.Credentials.Create(ctx, plain); err != nil {
		t.Fatal(err)
	}
}

func TestLegacyPasswordMigratesByID(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.register(t, "Oldclient")
	f.plainCredential(t, u.ID, "secret1")

	got, err := f.Auth.AuthenticatePassword(ctx, u.ID, "secret1")
	if err != nil {
		t.Fatalf("authenticate password: %v", err)
	}
	if got.ID != u.ID {
		t.Fatalf("user = %d, want %d", got.ID, u.ID)
	}
	cred, err := f.deps.Credentials.FromUserID(ctx, u.ID)
	if err != nil || cred.Version != dom.CredentialGJP2Bcrypt {
		t.Fatalf("credential after login = %+v, %v", cred, err)
	}
	if _, err := f.Auth.AuthenticatePassword(ctx, u.ID, "secret1"); err != nil {
		t.Fatalf("password after migration: %v", err)
	}
	if _, err := f.Auth.AuthenticateGJP2(ctx, u.ID, codec.GJP2("secret1")); err != nil {
		t.Fatalf("gjp2 after migration: %v", err)
	}
}
