package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hawkker/loyalty/pkg/utils"
)

func TestNew(t *testing.T) {
	u, err := New("Ada", "ada@example.com", "password123", Eater)
	require.NoError(t, err)

	assert.Equal(t, "Ada", u.Name)
	assert.Equal(t, "ada@example.com", u.Email)
	assert.Equal(t, Eater, u.Type)
	assert.Equal(t, 0, u.Coins)
	assert.False(t, u.DietaryPreferenceSet)
	assert.NotEqual(t, "password123", u.Password)
	assert.True(t, utils.CheckPasswordHash("password123", u.Password))
}

func TestNew_Invalid(t *testing.T) {
	cases := []struct {
		name     string
		userName string
		email    string
		password string
		userType Type
	}{
		{"empty name", "", "a@example.com", "password123", Eater},
		{"bad email", "Ada", "nope", "password123", Eater},
		{"short password", "Ada", "a@example.com", "seven77", Eater},
		{"unknown type", "Ada", "a@example.com", "password123", Type(42)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(tc.userName, tc.email, tc.password, tc.userType)
			assert.Error(t, err)
		})
	}
}

func TestTypeString(t *testing.T) {
	assert.Equal(t, "eater", Eater.String())
	assert.Equal(t, "vendor", Vendor.String())
	assert.Equal(t, "admin", Admin.String())
	assert.Equal(t, "guest", Guest.String())
	assert.Equal(t, "user type(9)", Type(9).String())
}

func TestTypeValid(t *testing.T) {
	assert.True(t, Eater.Valid())
	assert.True(t, Guest.Valid())
	assert.False(t, Type(4).Valid())
}
