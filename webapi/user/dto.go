package user

import (
	"time"

	"github.com/google/uuid"

	"github.com/hawkker/loyalty/pkg/domain/user"
)

// CreateUserInput is the request body for POST /user.
type CreateUserInput struct {
	Name     string `json:"name" validate:"required,min=2,max=255"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	UserType string `json:"user_type" validate:"required,oneof=eater vendor"`
}

// UserResponse is the public shape of an account.
type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	UserType  string    `json:"user_type"`
	Coins     int       `json:"coins"`
	CreatedAt time.Time `json:"created_at"`
}

func toResponse(u *user.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		UserType:  u.Type.String(),
		Coins:     u.Coins,
		CreatedAt: u.CreatedAt,
	}
}

func parseType(s string) user.Type {
	if s == "vendor" {
		return user.Vendor
	}
	return user.Eater
}
