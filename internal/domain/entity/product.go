package entity

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Entradas-api/internal/domain"
)

// Product representa un producto del catálogo.
// Stock (existencia) solo lo modifica el motor de entradas; puede quedar
// negativo si se registran salidas externas, el dominio no lo prohíbe.
type Product struct {
	ID          int             `json:"id"`
	Description string          `json:"description"` // obligatoria, máx. 200 caracteres
	Cost        decimal.Decimal `json:"cost"`        // costo unitario, > 0
	Price       decimal.Decimal `json:"price"`       // precio de venta, > 0
	Stock       int             `json:"stock"`       // existencia actual
}

const maxDescriptionLen = 200

// Validate verifica las reglas de campo del producto.
func (p *Product) Validate() error {
	if p.Description == "" {
		return fmt.Errorf("%w: la descripción es obligatoria", domain.ErrInvalidInput)
	}
	if len([]rune(p.Description)) > maxDescriptionLen {
		return fmt.Errorf("%w: la descripción supera %d caracteres", domain.ErrInvalidInput, maxDescriptionLen)
	}
	if !p.Cost.IsPositive() {
		return fmt.Errorf("%w: el costo debe ser mayor a 0", domain.ErrInvalidInput)
	}
	if !p.Price.IsPositive() {
		return fmt.Errorf("%w: el precio debe ser mayor a 0", domain.ErrInvalidInput)
	}
	return nil
}

// IsNew indica si el producto aún no fue persistido (el store asigna el ID).
func (p *Product) IsNew() bool {
	return p.ID == 0
}
