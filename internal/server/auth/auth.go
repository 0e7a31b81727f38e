// Package auth implements both authentication schemes and the authorization
// gate over a shared credential directory.
package auth

import (
	"context"
	"log/slog"
	"time"

	"github.com/carlosmsv/Auto-Ninjas-Auth/internal/models"
	"github.com/carlosmsv/Auto-Ninjas-Auth/internal/server/jwt"
)

// PasswordHasher hashes new passwords and verifies candidates against stored ones.
type PasswordHasher interface {
	Hash(ctx context.Context, password string) (models.Password, error)
	Verify(ctx context.Context, candidate string, stored models.Password) (bool, error)
}

// TokenService issues and verifies access and refresh tokens.
type TokenService interface {
	IssueAccess(username string, role models.Role, ttl time.Duration) (string, time.Time, error)
	IssueRefresh(username string, role models.Role, ttl time.Duration) (string, time.Time, error)
	VerifyAccess(token string) (*jwt.Claims, error)
	VerifyRefresh(token string) (*jwt.Claims, error)
}

// Recorder receives the outcome of every auth flow.
type Recorder interface {
	ObserveAuth(flow, outcome string)
}

// Flow names reported to the Recorder.
const (
	FlowLegacy    = "legacy"
	FlowRegister  = "register"
	FlowLogin     = "login"
	FlowRefresh   = "refresh"
	FlowLogout    = "logout"
	FlowAuthorize = "authorize"
)

// OutcomeOK is reported for successful flows. Failures report the error kind
// or, for token verification, the verification failure kind.
const OutcomeOK = "ok"

// Identity is the result of a successful authentication
type Identity struct {
	Username string      `json:"username"`
	Role     models.Role `json:"role"`
}

// Option configures the components of this package.
type Option func(*options)

type options struct {
	recorder Recorder
}

// WithRecorder reports flow outcomes to r.
func WithRecorder(r Recorder) Option {
	return func(o *options) {
		o.recorder = r
	}
}

type nopRecorder struct{}

func (nopRecorder) ObserveAuth(string, string) {}

func buildOptions(opts []Option) options {
	o := options{recorder: nopRecorder{}}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// outcome converts the error returned by a flow into a Recorder label
func outcome(err error) string {
	if err == nil {
		return OutcomeOK
	}
	return KindOf(err).String()
}

func orDefault(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.Default()
	}
	return logger
}
