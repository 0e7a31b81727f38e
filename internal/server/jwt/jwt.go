package jwt

import (
	"errors"
	"fmt"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/carlosmsv/Auto-Ninjas-Auth/internal/models"
)

const (
	// AccessTTLLogin is the lifetime of an access token issued at login.
	AccessTTLLogin = 2 * time.Hour
	// AccessTTLRefresh is the lifetime of an access token minted from a refresh token.
	AccessTTLRefresh = time.Hour
	// RefreshTTL is the lifetime of a refresh token.
	RefreshTTL = 7 * 24 * time.Hour
)

// Verification failure kinds. Every error returned by VerifyAccess and
// VerifyRefresh wraps exactly one of them.
var (
	ErrTokenExpired      = errors.New("token expired")
	ErrTokenMalformed    = errors.New("token malformed")
	ErrTokenBadSignature = errors.New("token signature invalid")
)

// Claims represents JWT claims
type Claims struct {
	Username string      `json:"username"`
	Role     models.Role `json:"role"`
	gojwt.RegisteredClaims
}

// Service signs and verifies access and refresh tokens.
// The two token classes use distinct secrets so one can never pass for the other.
type Service struct {
	now           func() time.Time
	accessSecret  []byte
	refreshSecret []byte
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the time source used for issuing and validating tokens.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// NewService creates a new JWT service
func NewService(accessSecret, refreshSecret string, opts ...Option) (*Service, error) {
	if accessSecret == "" || refreshSecret == "" {
		return nil, errors.New("jwt: signing secrets must not be empty")
	}
	if accessSecret == refreshSecret {
		return nil, errors.New("jwt: access and refresh secrets must differ")
	}

	s := &Service{
		now:           time.Now,
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// IssueAccess signs an access token valid for ttl.
func (s *Service) IssueAccess(username string, role models.Role, ttl time.Duration) (string, time.Time, error) {
	return s.issue(s.accessSecret, username, role, ttl)
}

// IssueRefresh signs a refresh token valid for ttl.
func (s *Service) IssueRefresh(username string, role models.Role, ttl time.Duration) (string, time.Time, error) {
	return s.issue(s.refreshSecret, username, role, ttl)
}

// VerifyAccess validates and parses an access token
func (s *Service) VerifyAccess(token string) (*Claims, error) {
	return s.verify(s.accessSecret, token)
}

// VerifyRefresh validates and parses a refresh token
func (s *Service) VerifyRefresh(token string) (*Claims, error) {
	return s.verify(s.refreshSecret, token)
}

func (s *Service) issue(secret []byte, username string, role models.Role, ttl time.Duration) (string, time.Time, error) {
	now := s.now()
	expiresAt := now.Add(ttl)

	claims := Claims{
		Username: username,
		Role:     role,
		RegisteredClaims: gojwt.RegisteredClaims{
			ID:        uuid.NewString(),
			ExpiresAt: gojwt.NewNumericDate(expiresAt),
			IssuedAt:  gojwt.NewNumericDate(now),
		},
	}

	token := gojwt.NewWithClaims(gojwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, expiresAt, nil
}

func (s *Service) verify(secret []byte, tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := gojwt.ParseWithClaims(tokenString, claims,
		func(*gojwt.Token) (any, error) {
			return secret, nil
		},
		gojwt.WithValidMethods([]string{gojwt.SigningMethodHS256.Alg()}),
		gojwt.WithExpirationRequired(),
		gojwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, classify(err)
	}
	if !token.Valid {
		return nil, ErrTokenMalformed
	}
	if claims.Username == "" {
		return nil, fmt.Errorf("%w: missing username claim", ErrTokenMalformed)
	}

	return claims, nil
}

// classify maps library errors onto the three verification kinds.
func classify(err error) error {
	switch {
	case errors.Is(err, gojwt.ErrTokenExpired):
		return fmt.Errorf("%w: %v", ErrTokenExpired, err)
	case errors.Is(err, gojwt.ErrTokenSignatureInvalid),
		errors.Is(err, gojwt.ErrTokenUnverifiable):
		return fmt.Errorf("%w: %v", ErrTokenBadSignature, err)
	default:
		return fmt.Errorf("%w: %v", ErrTokenMalformed, err)
	}
}

// Kind returns a short label of a verification error for logs and metrics.
func Kind(err error) string {
	switch {
	case errors.Is(err, ErrTokenExpired):
		return "expired"
	case errors.Is(err, ErrTokenBadSignature):
		return "bad_signature"
	case errors.Is(err, ErrTokenMalformed):
		return "malformed"
	default:
		return "unknown"
	}
}
