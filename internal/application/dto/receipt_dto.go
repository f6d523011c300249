package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Entradas-api/internal/domain/entity"
)

// SaveReceiptItemRequest un detalle de la entrada.
type SaveReceiptItemRequest struct {
	ProductID int             `json:"product_id"`
	Quantity  int             `json:"quantity"`
	Cost      decimal.Decimal `json:"cost"`
}

// SaveReceiptRequest entrada para crear o actualizar una entrada de mercancía.
// El total enviado por el caller se ignora siempre; se recalcula de los detalles.
type SaveReceiptRequest struct {
	Date  time.Time                `json:"date"`
	Items []SaveReceiptItemRequest `json:"items"`
}

// ToEntity convierte el request en la entidad de dominio. id en cero = nueva.
func (in SaveReceiptRequest) ToEntity(id int) *entity.Receipt {
	items := make([]entity.ReceiptItem, 0, len(in.Items))
	for _, it := range in.Items {
		items = append(items, entity.ReceiptItem{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Cost:      it.Cost,
		})
	}
	return &entity.Receipt{ID: id, Date: in.Date, Items: items}
}

// ReceiptItemResponse salida de un detalle. Product viene resuelto solo en
// la consulta individual; es nil en listados y cuando el producto ya no existe.
type ReceiptItemResponse struct {
	ID        int              `json:"id"`
	ProductID int              `json:"product_id"`
	Quantity  int              `json:"quantity"`
	Cost      decimal.Decimal  `json:"cost"`
	Subtotal  decimal.Decimal  `json:"subtotal"`
	Product   *ProductResponse `json:"product,omitempty"`
}

// ReceiptResponse salida de una entrada con sus detalles.
type ReceiptResponse struct {
	ID    int                   `json:"id"`
	Date  time.Time             `json:"date"`
	Total decimal.Decimal       `json:"total"`
	Items []ReceiptItemResponse `json:"items"`
}

// ReceiptListResponse lista de entradas (fecha descendente).
type ReceiptListResponse struct {
	Items []ReceiptResponse `json:"items"`
}

// ToReceiptResponse mapea la entidad a su representación HTTP. products puede
// ser nil (listados); si trae el producto del detalle, se incluye expandido.
func ToReceiptResponse(r *entity.Receipt, products map[int]*entity.Product) *ReceiptResponse {
	if r == nil {
		return nil
	}
	items := make([]ReceiptItemResponse, 0, len(r.Items))
	for _, it := range r.Items {
		resp := ReceiptItemResponse{
			ID:        it.ID,
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Cost:      it.Cost,
			Subtotal:  it.Subtotal(),
		}
		if products != nil {
			resp.Product = ToProductResponse(products[it.ProductID])
		}
		items = append(items, resp)
	}
	return &ReceiptResponse{ID: r.ID, Date: r.Date, Total: r.Total, Items: items}
}
