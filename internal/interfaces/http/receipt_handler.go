package http

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Entradas-api/internal/application/dto"
	"github.com/jhoicas/Entradas-api/internal/application/inventory"
	"github.com/jhoicas/Entradas-api/internal/domain"
	"github.com/jhoicas/Entradas-api/internal/domain/entity"
)

// ReceiptHandler maneja las peticiones HTTP para entradas de mercancía.
type ReceiptHandler struct {
	uc *inventory.ReceiptUseCase
}

// NewReceiptHandler construye el handler.
func NewReceiptHandler(uc *inventory.ReceiptUseCase) *ReceiptHandler {
	return &ReceiptHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar entrada de mercancía
// @Tags         receipts
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SaveReceiptRequest  true  "Entrada con sus detalles"
// @Success      201   {object}  dto.ReceiptResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/receipts [post]
func (h *ReceiptHandler) Create(c *fiber.Ctx) error {
	var in dto.SaveReceiptRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	receipt := in.ToEntity(0)
	if _, err := h.uc.Save(c.UserContext(), receipt); err != nil {
		return receiptError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToReceiptResponse(receipt, nil))
}

// Update godoc
// @Summary      Modificar entrada de mercancía
// @Description  Reemplaza los detalles completos y reconcilia el stock:
// @Description  revierte las cantidades originales y aplica las nuevas.
// @Tags         receipts
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID de la entrada"
// @Param        body  body  dto.SaveReceiptRequest  true  "Entrada con sus detalles"
// @Success      200   {object}  dto.ReceiptResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/receipts/{id} [put]
func (h *ReceiptHandler) Update(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "id inválido"})
	}
	var in dto.SaveReceiptRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	receipt := in.ToEntity(id)
	ok, err := h.uc.Save(c.UserContext(), receipt)
	if err != nil {
		return receiptError(c, err)
	}
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "entrada no encontrada"})
	}
	return c.JSON(dto.ToReceiptResponse(receipt, nil))
}

// GetByID godoc
// @Summary      Obtener entrada por ID (con productos resueltos)
// @Tags         receipts
// @Produce      json
// @Param        id   path  int  true  "ID de la entrada"
// @Success      200  {object}  dto.ReceiptResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/receipts/{id} [get]
func (h *ReceiptHandler) GetByID(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "id inválido"})
	}
	receipt, products, err := h.uc.Find(c.UserContext(), id)
	if err != nil {
		return receiptError(c, err)
	}
	if receipt == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "entrada no encontrada"})
	}
	return c.JSON(dto.ToReceiptResponse(receipt, products))
}

// List godoc
// @Summary      Listar entradas (fecha descendente)
// @Tags         receipts
// @Produce      json
// @Param        from  query  string  false  "Fecha mínima (RFC 3339 o YYYY-MM-DD)"
// @Param        to    query  string  false  "Fecha máxima (RFC 3339 o YYYY-MM-DD)"
// @Success      200   {object}  dto.ReceiptListResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/receipts [get]
func (h *ReceiptHandler) List(c *fiber.Ctx) error {
	from, err := parseDateParam(c.Query("from"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_DATE", Message: "from inválida"})
	}
	to, err := parseDateParam(c.Query("to"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_DATE", Message: "to inválida"})
	}

	// El rango de fechas se compila a un predicado opaco sobre la entidad.
	var pred func(*entity.Receipt) bool
	if from != nil || to != nil {
		pred = func(r *entity.Receipt) bool {
			if from != nil && r.Date.Before(*from) {
				return false
			}
			if to != nil && r.Date.After(*to) {
				return false
			}
			return true
		}
	}

	list, err := h.uc.List(c.UserContext(), pred)
	if err != nil {
		return receiptError(c, err)
	}
	items := make([]dto.ReceiptResponse, 0, len(list))
	for _, r := range list {
		items = append(items, *dto.ToReceiptResponse(r, nil))
	}
	return c.JSON(dto.ReceiptListResponse{Items: items})
}

// Delete godoc
// @Summary      Eliminar entrada (revierte el stock)
// @Tags         receipts
// @Produce      json
// @Param        id   path  int  true  "ID de la entrada"
// @Success      204  "Eliminada"
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/receipts/{id} [delete]
func (h *ReceiptHandler) Delete(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "id inválido"})
	}
	ok, err := h.uc.Delete(c.UserContext(), id)
	if err != nil {
		return receiptError(c, err)
	}
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "entrada no encontrada"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Exists godoc
// @Summary      Verificar existencia de entrada
// @Tags         receipts
// @Param        id   path  int  true  "ID de la entrada"
// @Success      200  "Existe"
// @Failure      404  "No existe"
// @Router       /api/receipts/{id} [head]
func (h *ReceiptHandler) Exists(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil || id <= 0 {
		return c.SendStatus(fiber.StatusBadRequest)
	}
	ok, err := h.uc.Exists(c.UserContext(), id)
	if err != nil {
		return c.SendStatus(fiber.StatusInternalServerError)
	}
	if !ok {
		return c.SendStatus(fiber.StatusNotFound)
	}
	return c.SendStatus(fiber.StatusOK)
}

// parseDateParam acepta RFC 3339 o fecha simple YYYY-MM-DD. Vacío = nil.
func parseDateParam(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return &t, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// receiptError mapea errores de dominio a respuestas HTTP.
func receiptError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrProductNotFound):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "PRODUCT_NOT_FOUND", Message: "un detalle referencia un producto inexistente"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
