package eater_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hawkker/loyalty/webapi/common"
	"github.com/hawkker/loyalty/webapi/testutils"
)

func decode(t *testing.T, resp *http.Response) common.Response {
	t.Helper()
	var response common.Response
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&response))
	return response
}

func TestGetBalanceRoute(t *testing.T) {
	env := testutils.NewEnv(t)
	token := env.Token(t, env.Eater)

	resp := env.Request(t, "GET", "/eater/balance", "", token)
	defer resp.Body.Close() //nolint: errcheck
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	response := decode(t, resp)
	data := response.Data.(map[string]any)
	assert.EqualValues(t, 200, data["coins"])
}

func TestGetBalanceRoute_MissingToken(t *testing.T) {
	env := testutils.NewEnv(t)

	resp := env.Request(t, "GET", "/eater/balance", "", "")
	defer resp.Body.Close() //nolint: errcheck
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestGetBalanceRoute_VendorForbidden(t *testing.T) {
	env := testutils.NewEnv(t)
	token := env.Token(t, env.Vendor)

	resp := env.Request(t, "GET", "/eater/balance", "", token)
	defer resp.Body.Close() //nolint: errcheck
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestRequestRedemptionRoute(t *testing.T) {
	env := testutils.NewEnv(t)
	token := env.Token(t, env.Eater)

	resp := env.Request(t, "POST", "/eater/transaction", `{"coins":50}`, token)
	defer resp.Body.Close() //nolint: errcheck
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	response := decode(t, resp)
	data := response.Data.(map[string]any)
	qrID, err := uuid.Parse(data["qr_id"].(string))
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, qrID)
	assert.Equal(t, "pending", data["status"])

	// a pending debit never moves the column
	assert.Equal(t, 200, env.Store.Users[env.Eater.ID].Coins)
}

func TestRequestRedemptionRoute_InsufficientCoins(t *testing.T) {
	env := testutils.NewEnv(t)
	token := env.Token(t, env.Eater)

	resp := env.Request(t, "POST", "/eater/transaction", `{"coins":300}`, token)
	defer resp.Body.Close() //nolint: errcheck
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
	assert.Empty(t, env.Store.Txs)
}

func TestRequestRedemptionRoute_OffStepWithinBounds(t *testing.T) {
	env := testutils.NewEnv(t)
	token := env.Token(t, env.Eater)

	// the incremental value only drives the client picker; any amount
	// inside the min/max bounds is accepted
	resp := env.Request(t, "POST", "/eater/transaction", `{"coins":55}`, token)
	defer resp.Body.Close() //nolint: errcheck
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
}

func TestRequestRedemptionRoute_ValidationFailed(t *testing.T) {
	env := testutils.NewEnv(t)
	token := env.Token(t, env.Eater)

	resp := env.Request(t, "POST", "/eater/transaction", `{"coins":0}`, token)
	defer resp.Body.Close() //nolint: errcheck
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestListTransactionsRoute(t *testing.T) {
	env := testutils.NewEnv(t)
	token := env.Token(t, env.Eater)

	req := env.Request(t, "POST", "/eater/transaction", `{"coins":50}`, token)
	req.Body.Close() //nolint: errcheck

	resp := env.Request(t, "GET", "/eater/transactions", "", token)
	defer resp.Body.Close() //nolint: errcheck
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	response := decode(t, resp)
	entries := response.Data.([]any)
	require.Len(t, entries, 1)
	entry := entries[0].(map[string]any)
	assert.EqualValues(t, 50, entry["coins"])
	assert.Equal(t, "debit", entry["type"])
}

func TestSetDietaryPreferenceRoute_RewardsOnce(t *testing.T) {
	env := testutils.NewEnv(t)
	token := env.Token(t, env.Eater)

	resp := env.Request(t, "POST", "/eater/dietary", "", token)
	resp.Body.Close() //nolint: errcheck
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.Equal(t, 220, env.Store.Users[env.Eater.ID].Coins)

	again := env.Request(t, "POST", "/eater/dietary", "", token)
	defer again.Body.Close() //nolint: errcheck
	assert.Equal(t, fiber.StatusOK, again.StatusCode)
	assert.Equal(t, 220, env.Store.Users[env.Eater.ID].Coins)
}
