package purchase_test

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hawkker/loyalty/webapi/common"
	"github.com/hawkker/loyalty/webapi/testutils"
)

func TestCreatePurchaseRoute(t *testing.T) {
	env := testutils.NewEnv(t)
	token := env.Token(t, env.Eater)

	body := fmt.Sprintf(`{"vendor_id":%q,"amount":"12.50"}`, env.Vendor.ID)
	resp := env.Request(t, "POST", "/purchase", body, token)
	defer resp.Body.Close() //nolint: errcheck
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var response common.Response
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&response))
	data := response.Data.(map[string]any)
	assert.Equal(t, "12.5", data["amount"])
	assert.EqualValues(t, 10, data["reward_coins"])
	assert.NotEmpty(t, data["reward_transaction_id"])

	assert.Equal(t, 210, env.Store.Users[env.Eater.ID].Coins)
	require.Len(t, env.Store.Purchases, 1)
}

func TestCreatePurchaseRoute_BadAmount(t *testing.T) {
	env := testutils.NewEnv(t)
	token := env.Token(t, env.Eater)

	body := fmt.Sprintf(`{"vendor_id":%q,"amount":"free"}`, env.Vendor.ID)
	resp := env.Request(t, "POST", "/purchase", body, token)
	defer resp.Body.Close() //nolint: errcheck
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Empty(t, env.Store.Purchases)
}

func TestCreatePurchaseRoute_VendorForbidden(t *testing.T) {
	env := testutils.NewEnv(t)
	token := env.Token(t, env.Vendor)

	body := fmt.Sprintf(`{"vendor_id":%q,"amount":"12.50"}`, env.Vendor.ID)
	resp := env.Request(t, "POST", "/purchase", body, token)
	defer resp.Body.Close() //nolint: errcheck
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}
