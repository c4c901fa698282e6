// Package user holds the domain model of Hawkker accounts: eaters who earn
// and spend coins, vendors who receive them, and staff.
package user

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hawkker/loyalty/pkg/utils"
)

var (
	// ErrUserNotFound is returned when a user cannot be found in the
	// repository.
	ErrUserNotFound = errors.New("user not found")
	// ErrUserUnauthorized is returned when credentials or token claims do
	// not resolve to a valid user.
	ErrUserUnauthorized = errors.New("user unauthorized")
)

// Type distinguishes the kinds of Hawkker accounts.
type Type uint8

const (
	// Eater is a consumer who earns and redeems coins.
	Eater Type = iota
	// Vendor is a food seller credited through redemptions.
	Vendor
	// Admin is a staff account.
	Admin
	// Guest is an anonymous trial account.
	Guest
)

// String implements fmt.Stringer.
func (t Type) String() string {
	switch t {
	case Eater:
		return "eater"
	case Vendor:
		return "vendor"
	case Admin:
		return "admin"
	case Guest:
		return "guest"
	}
	return fmt.Sprintf("user type(%d)", uint8(t))
}

// Valid reports whether t is a known user type.
func (t Type) Valid() bool {
	return t <= Guest
}

// User represents a Hawkker account.
//
// Coins is the cached coin balance: it always equals the sum of signed coin
// deltas of the user's Success ledger entries. It is mutated only inside a
// transaction-creating code path, never directly.
type User struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	Password string    `json:"-"`
	Type     Type      `json:"user_type"`
	Coins    int       `json:"coins"`
	// DietaryPreferenceSet gates the one-time dietary-preference reward.
	DietaryPreferenceSet bool      `json:"is_dietary_preference"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

// New creates a User with a hashed password and a fresh ID.
func New(name, email, password string, userType Type) (*User, error) {
	if name == "" {
		return nil, errors.New("name cannot be empty")
	}
	if !utils.IsEmail(email) {
		return nil, errors.New("invalid email address")
	}
	if len(password) < 8 {
		return nil, errors.New("password must contain at least 8 characters")
	}
	if !userType.Valid() {
		return nil, errors.New("invalid user type")
	}
	hashed, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	return &User{
		ID:        uuid.New(),
		Name:      name,
		Email:     email,
		Password:  hashed,
		Type:      userType,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}
