// Package auth implements login and token issuance behind a pluggable
// Strategy, so the HTTP surface does not care how identity is proven.
package auth

import (
	"context"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/hawkker/loyalty/pkg/config"
	"github.com/hawkker/loyalty/pkg/domain/user"
	"github.com/hawkker/loyalty/pkg/repository"
	"github.com/hawkker/loyalty/pkg/utils"
)

type contextKey string

const userContextKey contextKey = "user"

// Strategy proves an identity and mints the credential the API hands back.
type Strategy interface {
	Login(ctx context.Context, email, password string) (*user.User, error)
	GenerateToken(ctx context.Context, u *user.User) (string, error)
	GetCurrentUserID(ctx context.Context) (uuid.UUID, error)
}

type Service struct {
	strategy Strategy
	logger   *slog.Logger
}

func New(strategy Strategy, logger *slog.Logger) *Service {
	return &Service{strategy: strategy, logger: logger}
}

func NewWithJWT(
	uow repository.UnitOfWork,
	cfg *config.Jwt,
	logger *slog.Logger,
) *Service {
	return New(&JWTStrategy{uow: uow, cfg: cfg, logger: logger}, logger)
}

func (s *Service) Login(ctx context.Context, email, password string) (u *user.User, err error) {
	log := s.logger.With("context", "Login")
	u, err = s.strategy.Login(ctx, email, password)
	if err != nil {
		log.Error("Login failed", "email", email, "error", err)
		return
	}
	log.Info("Login successful", "userID", u.ID)
	return
}

func (s *Service) GenerateToken(ctx context.Context, u *user.User) (string, error) {
	token, err := s.strategy.GenerateToken(ctx, u)
	if err != nil {
		s.logger.Error("GenerateToken failed", "userID", u.ID, "error", err)
		return "", err
	}
	return token, nil
}

// GetCurrentUserId extracts the authenticated user id from the parsed token
// the middleware stored on the request.
func (s *Service) GetCurrentUserId(token *jwt.Token) (uuid.UUID, error) {
	return s.strategy.GetCurrentUserID(
		context.WithValue(context.Background(), userContextKey, token),
	)
}

// JWTStrategy signs HS256 tokens carrying the user id and type.
type JWTStrategy struct {
	uow    repository.UnitOfWork
	cfg    *config.Jwt
	logger *slog.Logger
}

func NewJWTStrategy(
	uow repository.UnitOfWork,
	cfg *config.Jwt,
	logger *slog.Logger,
) *JWTStrategy {
	return &JWTStrategy{uow: uow, cfg: cfg, logger: logger}
}

func (s *JWTStrategy) GenerateToken(ctx context.Context, u *user.User) (string, error) {
	token := jwt.New(jwt.SigningMethodHS256)
	claims := token.Claims.(jwt.MapClaims)
	claims["user_id"] = u.ID.String()
	claims["email"] = u.Email
	claims["user_type"] = u.Type.String()
	claims["exp"] = time.Now().Add(s.cfg.Expiry).Unix()
	return token.SignedString([]byte(s.cfg.Secret))
}

func (s *JWTStrategy) Login(ctx context.Context, email, password string) (u *user.User, err error) {
	log := s.logger.With("context", "Login", "email", email)
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		users, err := uow.UserRepository()
		if err != nil {
			return err
		}
		u, err = users.GetByEmail(ctx, email)

		// Always run a hash comparison so a missing user costs the same
		// time as a wrong password.
		const dummyHash = "$2a$14$7zFqzDbD3RrlkMTczbXG9OWZ0FLOXjIxXzSZ.QZxkVXjXcx7QZQiC"
		if err != nil || u == nil {
			_ = utils.CheckPasswordHash(password, dummyHash)
			log.Error("Login failed", "error", user.ErrUserUnauthorized)
			return user.ErrUserUnauthorized
		}
		if !utils.CheckPasswordHash(password, u.Password) {
			log.Error("Login failed", "error", user.ErrUserUnauthorized)
			return user.ErrUserUnauthorized
		}
		return nil
	})
	if err != nil {
		u = nil
	}
	return
}

func (s *JWTStrategy) GetCurrentUserID(ctx context.Context) (uuid.UUID, error) {
	token, ok := ctx.Value(userContextKey).(*jwt.Token)
	if !ok || token == nil {
		return uuid.Nil, user.ErrUserUnauthorized
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, user.ErrUserUnauthorized
	}
	raw, ok := claims["user_id"].(string)
	if !ok {
		return uuid.Nil, user.ErrUserUnauthorized
	}
	return uuid.Parse(raw)
}
