package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Entradas-api/internal/application/dto"
	"github.com/jhoicas/Entradas-api/internal/application/inventory"
	"github.com/jhoicas/Entradas-api/internal/application/usecase"
	"github.com/jhoicas/Entradas-api/internal/infrastructure/memory"
	apphttp "github.com/jhoicas/Entradas-api/internal/interfaces/http"
	"github.com/jhoicas/Entradas-api/pkg/config"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

func itoa(n int) string { return strconv.Itoa(n) }

// buildTestApp arma la aplicación Fiber completa sobre el store en memoria.
func buildTestApp() *fiber.App {
	store := memory.NewStore()
	productRepo := memory.NewProductRepository(store)
	receiptRepo := memory.NewReceiptRepository(store)

	productUC := usecase.NewProductUseCase(productRepo)
	receiptUC := inventory.NewReceiptUseCase(
		memory.NewTxRunner(store),
		receiptRepo,
		productRepo,
		config.InventoryConfig{MissingProductPolicy: config.MissingProductSkip},
		nil,
	)

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{ProductUC: productUC, ReceiptUC: receiptUC})
	return app
}

// doJSON lanza una petición con cuerpo JSON y devuelve la respuesta.
func doJSON(t *testing.T, app *fiber.App, method, path string, body any) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// decode deserializa el cuerpo de la respuesta en out.
func decode(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

// createProduct da de alta un producto y devuelve su respuesta.
func createProduct(t *testing.T, app *fiber.App, description string, stock int) dto.ProductResponse {
	t.Helper()
	resp := doJSON(t, app, http.MethodPost, "/api/products/", map[string]any{
		"description": description,
		"cost":        10.00,
		"price":       15.00,
		"stock":       stock,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var out dto.ProductResponse
	decode(t, resp, &out)
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests de productos
// ──────────────────────────────────────────────────────────────────────────────

func TestProductCreate(t *testing.T) {
	app := buildTestApp()

	out := createProduct(t, app, "Teclado", 3)
	assert.NotZero(t, out.ID)
	assert.Equal(t, "Teclado", out.Description)
	assert.Equal(t, 3, out.Stock)
}

func TestProductCreate_Invalido(t *testing.T) {
	app := buildTestApp()

	resp := doJSON(t, app, http.MethodPost, "/api/products/", map[string]any{
		"description": "",
		"cost":        10.00,
		"price":       15.00,
	})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "VALIDATION")
}

func TestProductGetByID(t *testing.T) {
	app := buildTestApp()
	created := createProduct(t, app, "Mouse", 0)

	resp := doJSON(t, app, http.MethodGet, "/api/products/"+itoa(created.ID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out dto.ProductResponse
	decode(t, resp, &out)
	assert.Equal(t, created.ID, out.ID)
}

func TestProductGetByID_Inexistente(t *testing.T) {
	app := buildTestApp()

	resp := doJSON(t, app, http.MethodGet, "/api/products/999", nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestProductUpdate(t *testing.T) {
	app := buildTestApp()
	created := createProduct(t, app, "Mouse", 0)

	resp := doJSON(t, app, http.MethodPut, "/api/products/"+itoa(created.ID), map[string]any{
		"description": "Mouse inalámbrico",
		"cost":        12.00,
		"price":       19.90,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out dto.ProductResponse
	decode(t, resp, &out)
	assert.Equal(t, "Mouse inalámbrico", out.Description)
}

func TestProductUpdate_Inexistente(t *testing.T) {
	app := buildTestApp()

	resp := doJSON(t, app, http.MethodPut, "/api/products/999", map[string]any{
		"description": "Fantasma",
		"cost":        1.00,
		"price":       2.00,
	})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestProductList_Filtro(t *testing.T) {
	app := buildTestApp()
	createProduct(t, app, "Teclado mecánico", 0)
	createProduct(t, app, "Mouse", 0)
	createProduct(t, app, "Teclado numérico", 0)

	resp := doJSON(t, app, http.MethodGet, "/api/products/?q=teclado", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out dto.ProductListResponse
	decode(t, resp, &out)
	assert.Len(t, out.Items, 2)
}

func TestProductDeleteHTTP(t *testing.T) {
	app := buildTestApp()
	created := createProduct(t, app, "Mouse", 0)

	resp := doJSON(t, app, http.MethodDelete, "/api/products/"+itoa(created.ID), nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = doJSON(t, app, http.MethodDelete, "/api/products/"+itoa(created.ID), nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

// Borrar un producto referenciado por una entrada devuelve 409.
func TestProductDelete_Referenciado(t *testing.T) {
	app := buildTestApp()
	created := createProduct(t, app, "Teclado", 0)

	resp := doJSON(t, app, http.MethodPost, "/api/receipts/", map[string]any{
		"date": "2024-06-15T00:00:00Z",
		"items": []map[string]any{
			{"product_id": created.ID, "quantity": 2, "cost": 2.00},
		},
	})
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = doJSON(t, app, http.MethodDelete, "/api/products/"+itoa(created.ID), nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestProductExistsHTTP(t *testing.T) {
	app := buildTestApp()
	created := createProduct(t, app, "Mouse", 0)

	resp := doJSON(t, app, http.MethodHead, "/api/products/"+itoa(created.ID), nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, app, http.MethodHead, "/api/products/999", nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
