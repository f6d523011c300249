package inventory

import (
	"context"

	"github.com/jhoicas/Entradas-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para el motor de
// entradas: ajustes de stock, detalles y encabezado se confirman juntos.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		receiptRepo repository.ReceiptRepository,
		productRepo repository.ProductRepository,
	) error) error
}
