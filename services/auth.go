package services

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/XTHN9RF/Foodify-API/apperr"
	"github.com/XTHN9RF/Foodify-API/auth"
	"github.com/XTHN9RF/Foodify-API/models"
	"github.com/XTHN9RF/Foodify-API/store"
)

const (
	msgBadCredentials = "Incorrect email or password"
	msgAccountOff     = "User account is disabled"
	msgTokenExpired   = "Unauthenticated, token has expired"
	msgUnauthed       = "Unauthenticated"
)

type RegisterInput struct {
	Email      string
	Name       string
	LastName   string
	Settlement string
	Password   string
}

// Session is what a successful register or login hands back to the client.
type Session struct {
	User         *models.User
	AccessToken  string
	RefreshToken string
}

type Auth struct {
	store  *store.Store
	tokens *auth.TokenService
}

func NewAuth(s *store.Store, tokens *auth.TokenService) *Auth {
	return &Auth{store: s, tokens: tokens}
}

// RefreshTTL is the lifetime the refresh cookie should carry.
func (a *Auth) RefreshTTL() time.Duration {
	return a.tokens.RefreshTTL()
}

// NormalizeEmail trims and lower-cases an address so lookups are case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (a *Auth) Register(ctx context.Context, in RegisterInput) (*Session, error) {
	email := NormalizeEmail(in.Email)
	name := strings.TrimSpace(in.Name)
	lastName := strings.TrimSpace(in.LastName)
	if email == "" || name == "" || lastName == "" || in.Password == "" {
		return nil, apperr.New(apperr.Validation, "email, name, last_name and password are required")
	}
	if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		return nil, apperr.New(apperr.Validation, "Enter a valid email address")
	}

	if _, err := a.store.UserByEmail(ctx, email); err == nil {
		return nil, apperr.New(apperr.Validation, "User with this email already exists")
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	hash, err := hashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	user := &models.User{
		Email:        email,
		Name:         name,
		LastName:     lastName,
		Settlement:   strings.TrimSpace(in.Settlement),
		PasswordHash: hash,
		IsActive:     true,
	}
	if err := a.store.CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, apperr.Wrap(apperr.Validation, "User with this email already exists", err)
		}
		return nil, err
	}
	return a.session(user)
}

// Login fails with NotFound for an unknown email and Forbidden for a wrong
// password. Both carry the same message.
func (a *Auth) Login(ctx context.Context, email, password string) (*Session, error) {
	user, err := a.store.UserByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		return nil, lookupErr(err, msgBadCredentials)
	}
	if !auth.CheckPassword(user.PasswordHash, password) {
		return nil, apperr.New(apperr.Forbidden, msgBadCredentials)
	}
	if !user.IsActive {
		return nil, apperr.New(apperr.Forbidden, msgAccountOff)
	}
	return a.session(user)
}

// Refresh exchanges a refresh token for a new access token. The refresh token
// itself is not rotated.
func (a *Auth) Refresh(ctx context.Context, refreshToken string) (string, error) {
	if refreshToken == "" {
		return "", apperr.New(apperr.Forbidden, "Refresh token is missing")
	}
	userID, err := a.tokens.ValidateRefreshToken(refreshToken)
	switch {
	case errors.Is(err, auth.ErrTokenExpired):
		return "", apperr.Wrap(apperr.Forbidden, "Refresh token has expired", err)
	case err != nil:
		return "", apperr.Wrap(apperr.Forbidden, "Invalid refresh token", err)
	}

	user, err := a.store.UserByID(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return "", apperr.Wrap(apperr.Forbidden, "User no longer exists", err)
	}
	if err != nil {
		return "", err
	}
	if !user.IsActive {
		return "", apperr.New(apperr.Forbidden, msgAccountOff)
	}
	return a.tokens.IssueAccessToken(user.ID)
}

// Authenticate resolves an access token to an active user.
func (a *Auth) Authenticate(ctx context.Context, accessToken string) (*models.User, error) {
	if accessToken == "" {
		return nil, apperr.New(apperr.Unauthenticated, msgUnauthed)
	}
	userID, err := a.tokens.ValidateAccessToken(accessToken)
	switch {
	case errors.Is(err, auth.ErrTokenExpired):
		return nil, apperr.Wrap(apperr.Unauthenticated, msgTokenExpired, err)
	case err != nil:
		return nil, apperr.Wrap(apperr.Unauthenticated, msgUnauthed, err)
	}

	user, err := a.store.UserByID(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, apperr.Wrap(apperr.Unauthenticated, msgUnauthed, err)
	}
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, apperr.New(apperr.Unauthenticated, msgUnauthed)
	}
	return user, nil
}

func (a *Auth) session(user *models.User) (*Session, error) {
	access, err := a.tokens.IssueAccessToken(user.ID)
	if err != nil {
		return nil, err
	}
	refresh, err := a.tokens.IssueRefreshToken(user.ID)
	if err != nil {
		return nil, err
	}
	return &Session{User: user, AccessToken: access, RefreshToken: refresh}, nil
}
