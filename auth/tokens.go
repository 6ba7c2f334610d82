package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	DefaultAccessTTL  = 7 * 24 * time.Hour
	DefaultRefreshTTL = 14 * 24 * time.Hour
)

var (
	ErrTokenExpired = errors.New("token has expired")
	ErrTokenInvalid = errors.New("token is invalid")
)

// Claims is the token payload: user id plus issued-at and expires-at.
type Claims struct {
	UserID uint `json:"user_id"`
	jwt.RegisteredClaims
}

type TokenConfig struct {
	AccessKeys  *KeySet
	RefreshKeys *KeySet
	AccessTTL   time.Duration
	RefreshTTL  time.Duration
	// Now defaults to time.Now.
	Now func() time.Time
}

// TokenService issues and validates stateless access and refresh tokens.
// The two kinds use independent key sets, so one kind never validates as the other.
type TokenService struct {
	access     *KeySet
	refresh    *KeySet
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

func NewTokenService(cfg TokenConfig) (*TokenService, error) {
	if cfg.AccessKeys == nil || cfg.RefreshKeys == nil {
		return nil, errors.New("access and refresh key sets are required")
	}
	s := &TokenService{
		access:     cfg.AccessKeys,
		refresh:    cfg.RefreshKeys,
		accessTTL:  cfg.AccessTTL,
		refreshTTL: cfg.RefreshTTL,
		now:        cfg.Now,
	}
	if s.accessTTL <= 0 {
		s.accessTTL = DefaultAccessTTL
	}
	if s.refreshTTL <= 0 {
		s.refreshTTL = DefaultRefreshTTL
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s, nil
}

func (s *TokenService) AccessTTL() time.Duration  { return s.accessTTL }
func (s *TokenService) RefreshTTL() time.Duration { return s.refreshTTL }

func (s *TokenService) IssueAccessToken(userID uint) (string, error) {
	return s.issue(s.access, s.accessTTL, userID)
}

func (s *TokenService) IssueRefreshToken(userID uint) (string, error) {
	return s.issue(s.refresh, s.refreshTTL, userID)
}

// ValidateAccessToken returns the user id, ErrTokenExpired or ErrTokenInvalid.
func (s *TokenService) ValidateAccessToken(token string) (uint, error) {
	return s.validate(s.access, token)
}

func (s *TokenService) ValidateRefreshToken(token string) (uint, error) {
	return s.validate(s.refresh, token)
}

func (s *TokenService) issue(keys *KeySet, ttl time.Duration, userID uint) (string, error) {
	issuedAt := s.now()
	claims := &Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(ttl)),
		},
	}

	key := keys.Current()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	token.Header["kid"] = key.ID

	signed, err := token.SignedString(key.Secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

func (s *TokenService) validate(keys *KeySet, tokenString string) (uint, error) {
	if tokenString == "" {
		return 0, ErrTokenInvalid
	}

	// Signature first, time claims second: a forged token is Invalid even
	// when its exp is in the past.
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		kid, _ := t.Header["kid"].(string)
		secret, ok := keys.lookup(kid)
		if !ok {
			return nil, fmt.Errorf("unknown key id %q", kid)
		}
		return secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)
	if err != nil || !token.Valid {
		return 0, ErrTokenInvalid
	}

	validator := jwt.NewValidator(jwt.WithTimeFunc(s.now), jwt.WithExpirationRequired(), jwt.WithIssuedAt())
	if err := validator.Validate(claims); err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return 0, ErrTokenExpired
		}
		return 0, ErrTokenInvalid
	}

	if claims.UserID == 0 {
		return 0, ErrTokenInvalid
	}
	return claims.UserID, nil
}
