package entity

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Entradas-api/internal/domain"
)

// Receipt es una entrada de mercancía: un encabezado con fecha y total
// derivado, dueño de una colección de detalles. Los detalles son filas
// planas con FK explícita al producto; no hay punteros de navegación.
type Receipt struct {
	ID    int             `json:"id"` // 0 = nueva
	Date  time.Time       `json:"date"`
	Total decimal.Decimal `json:"total"` // derivado, nunca se confía en el caller
	Items []ReceiptItem   `json:"items"`
}

// ReceiptItem es un detalle de entrada: producto, cantidad y costo unitario.
type ReceiptItem struct {
	ID        int             `json:"id"`
	ReceiptID int             `json:"receipt_id"`
	ProductID int             `json:"product_id"`
	Quantity  int             `json:"quantity"`
	Cost      decimal.Decimal `json:"cost"`
}

// Subtotal devuelve cantidad × costo del detalle.
func (it ReceiptItem) Subtotal() decimal.Decimal {
	return it.Cost.Mul(decimal.NewFromInt(int64(it.Quantity)))
}

// ComputeTotal devuelve la suma de cantidad × costo sobre todos los detalles.
func (r *Receipt) ComputeTotal() decimal.Decimal {
	total := decimal.Zero
	for _, it := range r.Items {
		total = total.Add(it.Subtotal())
	}
	return total
}

// Validate verifica las reglas de campo de la entrada y sus detalles.
func (r *Receipt) Validate() error {
	if r.Date.IsZero() {
		return fmt.Errorf("%w: la fecha es obligatoria", domain.ErrInvalidInput)
	}
	if len(r.Items) == 0 {
		return fmt.Errorf("%w: la entrada requiere al menos un detalle", domain.ErrInvalidInput)
	}
	for i, it := range r.Items {
		if it.ProductID <= 0 {
			return fmt.Errorf("%w: detalle %d sin producto", domain.ErrInvalidInput, i+1)
		}
		if it.Quantity <= 0 {
			return fmt.Errorf("%w: detalle %d con cantidad inválida", domain.ErrInvalidInput, i+1)
		}
		if it.Cost.IsNegative() {
			return fmt.Errorf("%w: detalle %d con costo negativo", domain.ErrInvalidInput, i+1)
		}
	}
	return nil
}

// IsNew indica si la entrada aún no fue persistida.
func (r *Receipt) IsNew() bool {
	return r.ID == 0
}
