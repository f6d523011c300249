package http_test

import (
	"io"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Entradas-api/internal/application/dto"
)

// createReceipt registra una entrada con un solo detalle y la devuelve.
func createReceipt(t *testing.T, app *fiber.App, date string, productID, quantity int, cost float64) dto.ReceiptResponse {
	t.Helper()
	resp := doJSON(t, app, http.MethodPost, "/api/receipts/", map[string]any{
		"date": date,
		"items": []map[string]any{
			{"product_id": productID, "quantity": quantity, "cost": cost},
		},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var out dto.ReceiptResponse
	decode(t, resp, &out)
	return out
}

// stockOf consulta la existencia actual del producto vía la API.
func stockOf(t *testing.T, app *fiber.App, productID int) int {
	t.Helper()
	resp := doJSON(t, app, http.MethodGet, "/api/products/"+itoa(productID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out dto.ProductResponse
	decode(t, resp, &out)
	return out.Stock
}

// Registrar una entrada ajusta el stock y calcula el total en el servidor.
func TestReceiptCreate(t *testing.T) {
	app := buildTestApp()
	p := createProduct(t, app, "Teclado", 10)

	rec := createReceipt(t, app, "2024-06-15T00:00:00Z", p.ID, 5, 2.00)
	assert.NotZero(t, rec.ID)
	assert.True(t, rec.Total.Equal(decimal.NewFromFloat(10.00)), "total = %s", rec.Total)
	assert.Equal(t, 15, stockOf(t, app, p.ID))
}

func TestReceiptCreate_Invalida(t *testing.T) {
	app := buildTestApp()

	resp := doJSON(t, app, http.MethodPost, "/api/receipts/", map[string]any{
		"date":  "2024-06-15T00:00:00Z",
		"items": []map[string]any{},
	})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "VALIDATION")
}

// Modificar reemplaza los detalles y reconcilia: 10 → 15 → 13.
func TestReceiptUpdate(t *testing.T) {
	app := buildTestApp()
	p := createProduct(t, app, "Teclado", 10)
	rec := createReceipt(t, app, "2024-06-15T00:00:00Z", p.ID, 5, 2.00)

	resp := doJSON(t, app, http.MethodPut, "/api/receipts/"+itoa(rec.ID), map[string]any{
		"date": "2024-06-15T00:00:00Z",
		"items": []map[string]any{
			{"product_id": p.ID, "quantity": 3, "cost": 2.00},
		},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out dto.ReceiptResponse
	decode(t, resp, &out)

	assert.True(t, out.Total.Equal(decimal.NewFromFloat(6.00)), "total = %s", out.Total)
	assert.Equal(t, 13, stockOf(t, app, p.ID))
}

func TestReceiptUpdate_Inexistente(t *testing.T) {
	app := buildTestApp()
	p := createProduct(t, app, "Teclado", 10)

	resp := doJSON(t, app, http.MethodPut, "/api/receipts/999", map[string]any{
		"date": "2024-06-15T00:00:00Z",
		"items": []map[string]any{
			{"product_id": p.ID, "quantity": 3, "cost": 2.00},
		},
	})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, 10, stockOf(t, app, p.ID), "sin mutaciones de stock")
}

// Eliminar revierte el stock a su valor previo.
func TestReceiptDelete(t *testing.T) {
	app := buildTestApp()
	p := createProduct(t, app, "Teclado", 10)
	rec := createReceipt(t, app, "2024-06-15T00:00:00Z", p.ID, 5, 2.00)
	require.Equal(t, 15, stockOf(t, app, p.ID))

	resp := doJSON(t, app, http.MethodDelete, "/api/receipts/"+itoa(rec.ID), nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, 10, stockOf(t, app, p.ID))
}

func TestReceiptDelete_Inexistente(t *testing.T) {
	app := buildTestApp()

	resp := doJSON(t, app, http.MethodDelete, "/api/receipts/999", nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

// La consulta individual expande el producto de cada detalle.
func TestReceiptGetByID_ExpandeProductos(t *testing.T) {
	app := buildTestApp()
	p := createProduct(t, app, "Teclado", 0)
	rec := createReceipt(t, app, "2024-06-15T00:00:00Z", p.ID, 2, 3.00)

	resp := doJSON(t, app, http.MethodGet, "/api/receipts/"+itoa(rec.ID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out dto.ReceiptResponse
	decode(t, resp, &out)

	require.Len(t, out.Items, 1)
	require.NotNil(t, out.Items[0].Product)
	assert.Equal(t, "Teclado", out.Items[0].Product.Description)
	assert.True(t, out.Items[0].Subtotal.Equal(decimal.NewFromFloat(6.00)))
}

// El listado viene en fecha descendente y admite rango from/to.
func TestReceiptList(t *testing.T) {
	app := buildTestApp()
	p := createProduct(t, app, "Teclado", 0)
	createReceipt(t, app, "2024-01-01T00:00:00Z", p.ID, 1, 1.00)
	createReceipt(t, app, "2024-03-01T00:00:00Z", p.ID, 1, 1.00)
	createReceipt(t, app, "2024-02-01T00:00:00Z", p.ID, 1, 1.00)

	resp := doJSON(t, app, http.MethodGet, "/api/receipts/", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out dto.ReceiptListResponse
	decode(t, resp, &out)
	require.Len(t, out.Items, 3)
	assert.Equal(t, 3, int(out.Items[0].Date.Month()))
	assert.Equal(t, 2, int(out.Items[1].Date.Month()))
	assert.Equal(t, 1, int(out.Items[2].Date.Month()))

	// Los detalles van incluidos, sin expandir productos.
	require.Len(t, out.Items[0].Items, 1)
	assert.Nil(t, out.Items[0].Items[0].Product)

	resp = doJSON(t, app, http.MethodGet, "/api/receipts/?from=2024-02-01", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var filtered dto.ReceiptListResponse
	decode(t, resp, &filtered)
	assert.Len(t, filtered.Items, 2)
}

func TestReceiptList_FechaInvalida(t *testing.T) {
	app := buildTestApp()

	resp := doJSON(t, app, http.MethodGet, "/api/receipts/?from=ayer", nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestReceiptExistsHTTP(t *testing.T) {
	app := buildTestApp()
	p := createProduct(t, app, "Teclado", 0)
	rec := createReceipt(t, app, "2024-06-15T00:00:00Z", p.ID, 1, 1.00)

	resp := doJSON(t, app, http.MethodHead, "/api/receipts/"+itoa(rec.ID), nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, app, http.MethodHead, "/api/receipts/999", nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
