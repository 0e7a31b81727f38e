package auth

import (
	"context"
	"errors"
	"log/slog"

	"github.com/carlosmsv/Auto-Ninjas-Auth/internal/models"
	"github.com/carlosmsv/Auto-Ninjas-Auth/internal/server/jwt"
	"github.com/carlosmsv/Auto-Ninjas-Auth/internal/server/storage"
	"github.com/carlosmsv/Auto-Ninjas-Auth/internal/validation"
)

// Gate guards the vehicle list of a user behind an access token.
// Order of checks: token, then user lookup, then request payload.
type Gate struct {
	logger   *slog.Logger
	users    storage.UserStorage
	tokens   TokenService
	recorder Recorder
}

// NewGate creates a new authorization gate
func NewGate(logger *slog.Logger, users storage.UserStorage, tokens TokenService, opts ...Option) *Gate {
	o := buildOptions(opts)
	return &Gate{
		logger:   orDefault(logger),
		users:    users,
		tokens:   tokens,
		recorder: o.recorder,
	}
}

// Authorize verifies an access token and returns its claims.
// Every verification failure is reported to the caller as Forbidden.
func (g *Gate) Authorize(ctx context.Context, accessToken string) (*jwt.Claims, error) {
	claims, err := g.tokens.VerifyAccess(accessToken)
	if err != nil {
		kind := jwt.Kind(err)
		g.logger.WarnContext(ctx, "access token rejected", slog.String("reason", kind))
		g.recorder.ObserveAuth(FlowAuthorize, kind)
		return nil, newError(KindForbidden, "Invalid or expired token", err)
	}

	g.recorder.ObserveAuth(FlowAuthorize, OutcomeOK)
	return claims, nil
}

// ListVehicles returns the username and formatted vehicles of the token's subject
func (g *Gate) ListVehicles(ctx context.Context, accessToken string) (string, []string, error) {
	user, err := g.subject(ctx, accessToken)
	if err != nil {
		return "", nil, err
	}

	return user.Username, user.VehicleList(), nil
}

// AddVehicle appends a vehicle to the token subject's list and returns the updated list.
// Duplicates are kept.
func (g *Gate) AddVehicle(ctx context.Context, accessToken string, in *models.VehicleInput) ([]models.Vehicle, error) {
	user, err := g.subject(ctx, accessToken)
	if err != nil {
		return nil, err
	}

	if err := validation.ValidateVehicle(in); err != nil {
		return nil, newError(KindBadRequest, "Missing vehicle information", err)
	}

	vehicles, err := g.users.AppendVehicle(ctx, user.Username, in.Vehicle())
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return nil, newError(KindNotFound, "User not found", err)
		}
		g.logger.ErrorContext(ctx, "failed to append vehicle", slog.Any("error", err))
		return nil, internal(err)
	}

	g.logger.InfoContext(ctx, "vehicle added",
		slog.String("username", user.Username),
		slog.Int("vehicles", len(vehicles)))

	return vehicles, nil
}

// subject verifies the token and loads the user it names
func (g *Gate) subject(ctx context.Context, accessToken string) (*models.User, error) {
	claims, err := g.Authorize(ctx, accessToken)
	if err != nil {
		return nil, err
	}

	user, err := g.users.GetUserByUsername(ctx, claims.Username)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			g.logger.WarnContext(ctx, "token subject not found", slog.String("username", claims.Username))
			return nil, newError(KindNotFound, "User not found", err)
		}
		g.logger.ErrorContext(ctx, "failed to get user", slog.Any("error", err))
		return nil, internal(err)
	}

	return user, nil
}
