package repository

import (
	"context"

	"github.com/jhoicas/Entradas-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// GetByID devuelve (nil, nil) cuando el producto no existe.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id int) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) (bool, error)
	Delete(ctx context.Context, id int) (bool, error)
	List(ctx context.Context) ([]*entity.Product, error)
	Exists(ctx context.Context, id int) (bool, error)
	// AdjustStock aplica stock = stock + delta sobre la fila del producto y
	// la deja bloqueada hasta el commit de la transacción en curso.
	// Devuelve false si el producto no existe.
	AdjustStock(ctx context.Context, productID, delta int) (bool, error)
}
