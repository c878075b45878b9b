package inventory_test

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"par-manager/core/server"
	"par-manager/feature/inventory"
	"par-manager/feature/inventory/inventorytest"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newApp(t *testing.T) *fiber.App {
	t.Helper()
	feature := inventory.NewFeature(inventorytest.NewDB(t), zap.NewNop(), nil)
	require.True(t, feature.IsEnabled())
	assert.Equal(t, "inventory", feature.Name())

	app := fiber.New()
	require.NoError(t, feature.Load(app))
	return app
}

func do(t *testing.T, app *fiber.App, method, target string, body any) (int, []byte) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	var out bytes.Buffer
	_, _ = out.ReadFrom(resp.Body)
	return resp.StatusCode, out.Bytes()
}

func TestHandler_ProductLifecycle(t *testing.T) {
	app := newApp(t)

	status, body := do(t, app, "POST", "/entities/locations", map[string]string{"name": "Shelf"})
	require.Equal(t, fiber.StatusCreated, status, string(body))

	status, body = do(t, app, "POST", "/products", map[string]any{"sku": "w-1", "name": "Widget", "par": 5.5})
	require.Equal(t, fiber.StatusCreated, status, string(body))
	var created inventory.Product
	require.NoError(t, json.Unmarshal(body, &created))
	assert.Equal(t, "W-1", created.SKU)

	status, body = do(t, app, "POST", "/products", map[string]any{"sku": "W-1", "name": "Dup"})
	assert.Equal(t, fiber.StatusConflict, status)
	var errBody server.ErrorBody
	require.NoError(t, json.Unmarshal(body, &errBody))
	assert.Equal(t, "sku", errBody.Error.Field)

	status, _ = do(t, app, "PUT", "/products/1/on-hand/1", map[string]any{"qty": 2})
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, _ = do(t, app, "PUT", "/products/1/locations", map[string]any{"location_ids": []int64{1}})
	assert.Equal(t, fiber.StatusNoContent, status)

	status, _ = do(t, app, "PUT", "/products/1/on-hand/1", map[string]any{"qty": 2})
	assert.Equal(t, fiber.StatusNoContent, status)

	status, body = do(t, app, "GET", "/products", nil)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Contains(t, string(body), `"qty":2.0`)

	status, _ = do(t, app, "DELETE", "/entities/locations/1", nil)
	assert.Equal(t, fiber.StatusConflict, status)

	status, _ = do(t, app, "DELETE", "/entities/locations/1?force=true", nil)
	assert.Equal(t, fiber.StatusNoContent, status)

	status, _ = do(t, app, "DELETE", "/products/1", nil)
	assert.Equal(t, fiber.StatusNoContent, status)

	status, _ = do(t, app, "GET", "/products/1", nil)
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestHandler_BadInput(t *testing.T) {
	app := newApp(t)

	status, _ := do(t, app, "GET", "/entities/warehouses", nil)
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, _ = do(t, app, "GET", "/products/abc", nil)
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, _ = do(t, app, "POST", "/products", map[string]any{"sku": "", "name": "x"})
	assert.Equal(t, fiber.StatusBadRequest, status)
}
