package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Entradas-api/internal/domain/entity"
)

// SaveProductRequest entrada para crear o actualizar un producto.
// ID en cero (u omitido) significa creación.
type SaveProductRequest struct {
	ID          int             `json:"id"`
	Description string          `json:"description"`
	Cost        decimal.Decimal `json:"cost"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
}

// ToEntity convierte el request en la entidad de dominio.
func (in SaveProductRequest) ToEntity() *entity.Product {
	return &entity.Product{
		ID:          in.ID,
		Description: in.Description,
		Cost:        in.Cost,
		Price:       in.Price,
		Stock:       in.Stock,
	}
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID          int             `json:"id"`
	Description string          `json:"description"`
	Cost        decimal.Decimal `json:"cost"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
}

// ProductListResponse lista de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
}

// ToProductResponse mapea la entidad a su representación HTTP.
func ToProductResponse(p *entity.Product) *ProductResponse {
	if p == nil {
		return nil
	}
	return &ProductResponse{
		ID:          p.ID,
		Description: p.Description,
		Cost:        p.Cost,
		Price:       p.Price,
		Stock:       p.Stock,
	}
}
