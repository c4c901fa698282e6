// Package user provides business logic for account management.
package user

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/hawkker/loyalty/pkg/domain/user"
	"github.com/hawkker/loyalty/pkg/repository"
)

// Service provides account creation and lookup.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

// New creates a new Service with a UnitOfWork and logger.
func New(
	uow repository.UnitOfWork,
	logger *slog.Logger,
) *Service {
	return &Service{
		uow:    uow,
		logger: logger,
	}
}

// CreateUser creates a new account in a transaction.
func (s *Service) CreateUser(
	ctx context.Context,
	name, email, password string,
	userType user.Type,
) (u *user.User, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		users, err := uow.UserRepository()
		if err != nil {
			return err
		}
		u, err = user.New(name, email, password, userType)
		if err != nil {
			return err
		}
		return users.Create(ctx, u)
	})
	if err != nil {
		s.logger.Error("CreateUser failed", "email", email, "error", err)
		u = nil
	}
	return
}

// GetUser retrieves a user by ID in a transaction.
func (s *Service) GetUser(
	ctx context.Context,
	userID uuid.UUID,
) (u *user.User, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		users, err := uow.UserRepository()
		if err != nil {
			return err
		}
		u, err = users.Get(ctx, userID)
		return err
	})
	if err != nil {
		u = nil
	}
	return
}

// GetUserByEmail retrieves a user by email in a transaction.
func (s *Service) GetUserByEmail(
	ctx context.Context,
	email string,
) (u *user.User, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		users, err := uow.UserRepository()
		if err != nil {
			return err
		}
		u, err = users.GetByEmail(ctx, email)
		return err
	})
	if err != nil {
		u = nil
	}
	return
}
