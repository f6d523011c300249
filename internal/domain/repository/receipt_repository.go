package repository

import (
	"context"

	"github.com/jhoicas/Entradas-api/internal/domain/entity"
)

// ReceiptRepository define el puerto de persistencia para Receipt.
// Los detalles viven y mueren con su encabezado: Insert los persiste en
// bloque, Delete los elimina en cascada y ReplaceItems los sustituye
// completos (no hay edición parcial de detalles).
// GetByID devuelve (nil, nil) cuando la entrada no existe.
type ReceiptRepository interface {
	Insert(ctx context.Context, receipt *entity.Receipt) error
	GetByID(ctx context.Context, id int) (*entity.Receipt, error)
	UpdateHeader(ctx context.Context, receipt *entity.Receipt) (bool, error)
	ReplaceItems(ctx context.Context, receiptID int, items []entity.ReceiptItem) error
	Delete(ctx context.Context, id int) (bool, error)
	// List devuelve las entradas con sus detalles, ordenadas por fecha
	// descendente.
	List(ctx context.Context) ([]*entity.Receipt, error)
	Exists(ctx context.Context, id int) (bool, error)
}
