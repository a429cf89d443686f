package auth

import (
	"context"
	"testing"
	"time"

	pkgauth "github.com/relooped/reloop-backend/pkg/auth"
	"github.com/relooped/reloop-backend/pkg/config"
	pkgerrors "github.com/relooped/reloop-backend/pkg/errors"
	"github.com/relooped/reloop-backend/pkg/store"
)

func testConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{
			Secret:            "test-secret",
			Issuer:            "reloop",
			ExpirationMinutes: 60,
		},
		Password: config.PasswordConfig{
			MinLength:        6,
			ArgonMemoryKB:    8 * 1024,
			ArgonTime:        1,
			ArgonParallelism: 1,
			ArgonSaltLen:     16,
			ArgonKeyLen:      32,
		},
	}
}

func newFixture(t *testing.T) (*store.Store, Service) {
	t.Helper()
	current := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	db := store.New(store.WithClock(func() time.Time {
		current = current.Add(time.Second)
		return current
	}))
	svc, err := NewService(db, testConfig())
	if err != nil {
		t.Fatalf("NewService failed: %v", err)
	}
	return db, svc
}

func TestRegisterAndLogin(t *testing.T) {
	_, svc := newFixture(t)
	ctx := context.Background()

	session, err := svc.Register(ctx, RegisterInput{
		Username: "ada",
		Email:    "ada@example.com",
		Password: "correct-horse",
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if session.Token == "" {
		t.Fatal("expected a session token")
	}
	if session.User.ID == 0 {
		t.Fatal("expected an assigned user id")
	}
	if session.User.PasswordHash == "" {
		t.Fatal("expected password hash to be stored")
	}
	if session.User.PasswordHash == "correct-horse" {
		t.Fatal("password must not be stored in the clear")
	}

	claims, err := pkgauth.ParseAccessToken(testConfig().JWT, session.Token)
	if err != nil {
		t.Fatalf("minted token failed to parse: %v", err)
	}
	if claims.UserID != session.User.ID {
		t.Fatalf("token user id %d != %d", claims.UserID, session.User.ID)
	}

	login, err := svc.Login(ctx, LoginInput{Username: "ada", Password: "correct-horse"})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if login.User.ID != session.User.ID {
		t.Fatalf("login resolved wrong user %d", login.User.ID)
	}
}

func TestRegisterShortPassword(t *testing.T) {
	_, svc := newFixture(t)

	_, err := svc.Register(context.Background(), RegisterInput{
		Username: "ada",
		Email:    "ada@example.com",
		Password: "short",
	})
	if appErr := pkgerrors.As(err); appErr == nil || appErr.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	_, svc := newFixture(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, RegisterInput{
		Username: "ada", Email: "ada@example.com", Password: "correct-horse",
	}); err != nil {
		t.Fatalf("first Register failed: %v", err)
	}

	_, err := svc.Register(ctx, RegisterInput{
		Username: "ADA", Email: "other@example.com", Password: "correct-horse",
	})
	if appErr := pkgerrors.As(err); appErr == nil || appErr.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict on duplicate username, got %v", err)
	}

	_, err = svc.Register(ctx, RegisterInput{
		Username: "grace", Email: "Ada@Example.com", Password: "correct-horse",
	})
	if appErr := pkgerrors.As(err); appErr == nil || appErr.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict on duplicate email, got %v", err)
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	_, svc := newFixture(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, RegisterInput{
		Username: "ada", Email: "ada@example.com", Password: "correct-horse",
	}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	_, err := svc.Login(ctx, LoginInput{Username: "ada", Password: "wrong"})
	if appErr := pkgerrors.As(err); appErr == nil || appErr.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized for bad password, got %v", err)
	}

	_, err = svc.Login(ctx, LoginInput{Username: "nobody", Password: "correct-horse"})
	if appErr := pkgerrors.As(err); appErr == nil || appErr.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized for unknown user, got %v", err)
	}
}

func TestMe(t *testing.T) {
	_, svc := newFixture(t)
	ctx := context.Background()

	session, err := svc.Register(ctx, RegisterInput{
		Username: "ada", Email: "ada@example.com", Password: "correct-horse",
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	user, err := svc.Me(ctx, session.User.ID)
	if err != nil {
		t.Fatalf("Me failed: %v", err)
	}
	if user.Username != "ada" {
		t.Fatalf("unexpected username %q", user.Username)
	}

	_, err = svc.Me(ctx, 999)
	if appErr := pkgerrors.As(err); appErr == nil || appErr.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestUpdateProfile(t *testing.T) {
	_, svc := newFixture(t)
	ctx := context.Background()

	first, err := svc.Register(ctx, RegisterInput{
		Username: "ada", Email: "ada@example.com", Password: "correct-horse",
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if _, err := svc.Register(ctx, RegisterInput{
		Username: "grace", Email: "grace@example.com", Password: "correct-horse",
	}); err != nil {
		t.Fatalf("second Register failed: %v", err)
	}

	updated, err := svc.UpdateProfile(ctx, first.User.ID, ProfileInput{
		Username: "ada-l", Email: "ada.l@example.com",
	})
	if err != nil {
		t.Fatalf("UpdateProfile failed: %v", err)
	}
	if updated.Username != "ada-l" || updated.Email != "ada.l@example.com" {
		t.Fatalf("profile not updated: %+v", updated)
	}

	// Keeping your own values is not a conflict.
	if _, err := svc.UpdateProfile(ctx, first.User.ID, ProfileInput{
		Username: "ada-l", Email: "ada.l@example.com",
	}); err != nil {
		t.Fatalf("no-op UpdateProfile failed: %v", err)
	}

	_, err = svc.UpdateProfile(ctx, first.User.ID, ProfileInput{
		Username: "grace", Email: "ada.l@example.com",
	})
	if appErr := pkgerrors.As(err); appErr == nil || appErr.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict on taken username, got %v", err)
	}
}
