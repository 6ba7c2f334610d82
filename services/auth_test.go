package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/XTHN9RF/Foodify-API/apperr"
	"github.com/XTHN9RF/Foodify-API/models"
)

func TestRegisterIssuesSession(t *testing.T) {
	e := newEnv(t)
	sess := e.register(t, "  Ann@Example.COM ")

	if sess.User.Email != "ann@example.com" {
		t.Errorf("Expected normalized email, got '%s'", sess.User.Email)
	}
	if sess.User.PasswordHash == "" || sess.User.PasswordHash == "s3cret" {
		t.Error("Password must be stored hashed")
	}
	if id, err := e.tokens.ValidateAccessToken(sess.AccessToken); err != nil || id != sess.User.ID {
		t.Errorf("Access token should resolve to user %d, got %d (%v)", sess.User.ID, id, err)
	}
	if id, err := e.tokens.ValidateRefreshToken(sess.RefreshToken); err != nil || id != sess.User.ID {
		t.Errorf("Refresh token should resolve to user %d, got %d (%v)", sess.User.ID, id, err)
	}
}

func TestRegisterValidation(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	e.register(t, "ann@example.com")

	cases := map[string]RegisterInput{
		"missing email":    {Name: "A", LastName: "B", Password: "p"},
		"missing name":     {Email: "b@example.com", LastName: "B", Password: "p"},
		"missing lastname": {Email: "b@example.com", Name: "A", Password: "p"},
		"missing password": {Email: "b@example.com", Name: "A", LastName: "B"},
		"bad email":        {Email: "not-an-email", Name: "A", LastName: "B", Password: "p"},
		"display name":     {Email: "Bob <b@example.com>", Name: "A", LastName: "B", Password: "p"},
		"duplicate email":  {Email: "ANN@example.com", Name: "A", LastName: "B", Password: "p"},
		"long password":    {Email: "c@example.com", Name: "A", LastName: "B", Password: strings.Repeat("p", 80)},
	}
	for name, in := range cases {
		_, err := e.auth.Register(ctx, in)
		if apperr.KindOf(err) != apperr.Validation {
			t.Errorf("%s: expected validation error, got %v", name, err)
		}
	}
}

func TestRegisterAcceptsLongestPassword(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	password := strings.Repeat("p", 72)

	if _, err := e.auth.Register(ctx, RegisterInput{
		Email: "ann@example.com", Name: "Ann", LastName: "Lee", Password: password,
	}); err != nil {
		t.Fatalf("Register with a 72 byte password failed: %v", err)
	}
	if _, err := e.auth.Login(ctx, "ann@example.com", password); err != nil {
		t.Errorf("Login with a 72 byte password failed: %v", err)
	}
}

func TestLogin(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	registered := e.register(t, "ann@example.com")

	sess, err := e.auth.Login(ctx, "ANN@example.com", "s3cret")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if sess.User.ID != registered.User.ID || sess.AccessToken == "" || sess.RefreshToken == "" {
		t.Errorf("Unexpected session %+v", sess)
	}

	_, wrongPassword := e.auth.Login(ctx, "ann@example.com", "nope")
	expectKind(t, wrongPassword, apperr.Forbidden)

	_, unknown := e.auth.Login(ctx, "ghost@example.com", "s3cret")
	expectKind(t, unknown, apperr.NotFound)

	if apperr.Message(wrongPassword) != apperr.Message(unknown) {
		t.Errorf("Unknown email and wrong password must read the same: %q vs %q",
			apperr.Message(wrongPassword), apperr.Message(unknown))
	}
}

func TestLoginInactiveUser(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	sess := e.register(t, "ann@example.com")

	sess.User.IsActive = false
	if err := e.store.UpdateUser(ctx, sess.User); err != nil {
		t.Fatal(err)
	}
	_, err := e.auth.Login(ctx, "ann@example.com", "s3cret")
	expectKind(t, err, apperr.Forbidden)

	_, err = e.auth.Refresh(ctx, sess.RefreshToken)
	expectKind(t, err, apperr.Forbidden)

	_, err = e.auth.Authenticate(ctx, sess.AccessToken)
	expectKind(t, err, apperr.Unauthenticated)
}

func TestRefresh(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	sess := e.register(t, "ann@example.com")

	access, err := e.auth.Refresh(ctx, sess.RefreshToken)
	if err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}
	if id, err := e.tokens.ValidateAccessToken(access); err != nil || id != sess.User.ID {
		t.Errorf("Refreshed access token should resolve to user %d, got %d (%v)", sess.User.ID, id, err)
	}

	_, err = e.auth.Refresh(ctx, "")
	expectKind(t, err, apperr.Forbidden)

	_, err = e.auth.Refresh(ctx, sess.AccessToken)
	expectKind(t, err, apperr.Forbidden)

	past := newTokens(t, func() time.Time { return time.Now().Add(-15 * 24 * time.Hour) })
	stale, _ := past.IssueRefreshToken(sess.User.ID)
	_, err = e.auth.Refresh(ctx, stale)
	expectKind(t, err, apperr.Forbidden)
	if !strings.Contains(apperr.Message(err), "expired") {
		t.Errorf("Expected expiry message, got %q", apperr.Message(err))
	}

	if err := e.store.DB().Delete(&models.User{}, sess.User.ID).Error; err != nil {
		t.Fatal(err)
	}
	_, err = e.auth.Refresh(ctx, sess.RefreshToken)
	expectKind(t, err, apperr.Forbidden)
}

func TestAuthenticate(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	sess := e.register(t, "ann@example.com")

	user, err := e.auth.Authenticate(ctx, sess.AccessToken)
	if err != nil || user.ID != sess.User.ID {
		t.Fatalf("Authenticate failed: %v", err)
	}

	_, err = e.auth.Authenticate(ctx, "")
	expectKind(t, err, apperr.Unauthenticated)

	_, err = e.auth.Authenticate(ctx, sess.RefreshToken)
	expectKind(t, err, apperr.Unauthenticated)
	if apperr.Message(err) != "Unauthenticated" {
		t.Errorf("Unexpected message %q", apperr.Message(err))
	}

	past := newTokens(t, func() time.Time { return time.Now().Add(-8 * 24 * time.Hour) })
	stale, _ := past.IssueAccessToken(sess.User.ID)
	_, err = e.auth.Authenticate(ctx, stale)
	expectKind(t, err, apperr.Unauthenticated)
	if apperr.Message(err) != "Unauthenticated, token has expired" {
		t.Errorf("Unexpected expiry message %q", apperr.Message(err))
	}
}
