package auth_test

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hawkker/loyalty/pkg/domain/user"
	"github.com/hawkker/loyalty/webapi/common"
	"github.com/hawkker/loyalty/webapi/testutils"
)

func TestLoginRoute_BadRequest(t *testing.T) {
	env := testutils.NewEnv(t)

	resp := env.Request(t, "POST", "/auth/login", `{"email":123}`, "")
	defer resp.Body.Close() //nolint: errcheck
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestLoginRoute_ValidationFailed(t *testing.T) {
	env := testutils.NewEnv(t)

	resp := env.Request(t, "POST", "/auth/login", `{"email":"not-an-email","password":"password123"}`, "")
	defer resp.Body.Close() //nolint: errcheck
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestLoginRoute_Unauthorized(t *testing.T) {
	env := testutils.NewEnv(t)

	resp := env.Request(t, "POST", "/auth/login", `{"email":"nobody@example.com","password":"password123"}`, "")
	defer resp.Body.Close() //nolint: errcheck
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestLoginRoute_InvalidPassword(t *testing.T) {
	env := testutils.NewEnv(t)
	u, err := user.New("Grace", "grace@example.com", "password123", user.Eater)
	require.NoError(t, err)
	env.Store.Users[u.ID] = u

	resp := env.Request(t, "POST", "/auth/login", `{"email":"grace@example.com","password":"wrongpassword"}`, "")
	defer resp.Body.Close() //nolint: errcheck
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestLoginRoute_Success(t *testing.T) {
	env := testutils.NewEnv(t)
	u, err := user.New("Grace", "grace@example.com", "password123", user.Eater)
	require.NoError(t, err)
	env.Store.Users[u.ID] = u

	loginBody := fmt.Sprintf(`{"email":%q,"password":"password123"}`, u.Email)
	resp := env.Request(t, "POST", "/auth/login", loginBody, "")
	defer resp.Body.Close() //nolint: errcheck
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var response common.Response
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&response))
	data := response.Data.(map[string]any)
	assert.NotEmpty(t, data["token"])
}
