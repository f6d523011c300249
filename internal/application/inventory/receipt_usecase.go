package inventory

import (
	"context"
	"errors"

	"github.com/jhoicas/Entradas-api/internal/domain"
	"github.com/jhoicas/Entradas-api/internal/domain/entity"
	"github.com/jhoicas/Entradas-api/internal/domain/repository"
	"github.com/jhoicas/Entradas-api/pkg/config"
	"github.com/jhoicas/Entradas-api/pkg/logger"
)

// ReceiptUseCase es el motor de entradas de mercancía. Mantiene el
// invariante de stock: la existencia de cada producto es la suma de las
// cantidades de todos los detalles de entradas persistidas que lo
// referencian. Cada Save/Delete corre completo dentro de una transacción.
type ReceiptUseCase struct {
	txRunner    TxRunner
	receiptRepo repository.ReceiptRepository
	productRepo repository.ProductRepository
	policy      string
	log         *logger.Logger
}

// NewReceiptUseCase construye el caso de uso. receiptRepo y productRepo se
// usan solo en los caminos de lectura (Find/List/Exists); las escrituras
// pasan por txRunner con repos atados a la transacción.
func NewReceiptUseCase(
	txRunner TxRunner,
	receiptRepo repository.ReceiptRepository,
	productRepo repository.ProductRepository,
	invCfg config.InventoryConfig,
	log *logger.Logger,
) *ReceiptUseCase {
	policy := invCfg.MissingProductPolicy
	if policy == "" {
		policy = config.MissingProductSkip
	}
	if log == nil {
		log = logger.Nop()
	}
	return &ReceiptUseCase{
		txRunner:    txRunner,
		receiptRepo: receiptRepo,
		productRepo: productRepo,
		policy:      policy,
		log:         log,
	}
}

// Save crea la entrada si ID es cero, si no la actualiza por ID.
// El total siempre se recalcula de los detalles; nunca se confía en el caller.
// Devuelve (false, nil) si la entrada a actualizar no existe, sin mutar nada.
func (uc *ReceiptUseCase) Save(ctx context.Context, receipt *entity.Receipt) (bool, error) {
	if err := receipt.Validate(); err != nil {
		return false, err
	}
	receipt.Total = receipt.ComputeTotal()

	var err error
	if receipt.IsNew() {
		err = uc.txRunner.Run(ctx, func(
			receiptRepo repository.ReceiptRepository,
			productRepo repository.ProductRepository,
		) error {
			return uc.insert(ctx, receiptRepo, productRepo, receipt)
		})
	} else {
		err = uc.txRunner.Run(ctx, func(
			receiptRepo repository.ReceiptRepository,
			productRepo repository.ProductRepository,
		) error {
			return uc.update(ctx, receiptRepo, productRepo, receipt)
		})
	}
	if errors.Is(err, domain.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// insert persiste encabezado y detalles y suma cada cantidad a la
// existencia del producto referenciado.
func (uc *ReceiptUseCase) insert(
	ctx context.Context,
	receiptRepo repository.ReceiptRepository,
	productRepo repository.ProductRepository,
	receipt *entity.Receipt,
) error {
	if err := receiptRepo.Insert(ctx, receipt); err != nil {
		return err
	}
	for _, it := range receipt.Items {
		if err := uc.adjustStock(ctx, productRepo, it.ProductID, it.Quantity); err != nil {
			return err
		}
	}
	return nil
}

// update revierte el efecto de la versión persistida y aplica la nueva:
// resta las cantidades originales, suma las nuevas, reemplaza los detalles
// completos y actualiza el encabezado. Revertir-y-reaplicar evita calcular
// un diff por detalle entre el set viejo y el nuevo; dos detalles de la
// misma entrada sobre el mismo producto aplican ambos (sin deduplicar).
func (uc *ReceiptUseCase) update(
	ctx context.Context,
	receiptRepo repository.ReceiptRepository,
	productRepo repository.ProductRepository,
	receipt *entity.Receipt,
) error {
	original, err := receiptRepo.GetByID(ctx, receipt.ID)
	if err != nil {
		return err
	}
	if original == nil {
		return domain.ErrNotFound
	}

	for _, it := range original.Items {
		if err := uc.adjustStock(ctx, productRepo, it.ProductID, -it.Quantity); err != nil {
			return err
		}
	}
	for _, it := range receipt.Items {
		if err := uc.adjustStock(ctx, productRepo, it.ProductID, it.Quantity); err != nil {
			return err
		}
	}

	if err := receiptRepo.ReplaceItems(ctx, receipt.ID, receipt.Items); err != nil {
		return err
	}
	ok, err := receiptRepo.UpdateHeader(ctx, receipt)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina la entrada y resta del stock la cantidad de cada detalle.
// Devuelve (false, nil) si la entrada no existe, sin mutar nada.
func (uc *ReceiptUseCase) Delete(ctx context.Context, id int) (bool, error) {
	err := uc.txRunner.Run(ctx, func(
		receiptRepo repository.ReceiptRepository,
		productRepo repository.ProductRepository,
	) error {
		receipt, err := receiptRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if receipt == nil {
			return domain.ErrNotFound
		}
		for _, it := range receipt.Items {
			if err := uc.adjustStock(ctx, productRepo, it.ProductID, -it.Quantity); err != nil {
				return err
			}
		}
		ok, err := receiptRepo.Delete(ctx, id)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrNotFound
		}
		return nil
	})
	if errors.Is(err, domain.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// adjustStock aplica el delta sobre la existencia del producto. Si el
// producto ya no existe, decide según la política configurada: "skip"
// omite el ajuste y deja un warning; "reject" falla la operación completa
// (la transacción hace rollback de todos los ajustes previos).
func (uc *ReceiptUseCase) adjustStock(
	ctx context.Context,
	productRepo repository.ProductRepository,
	productID, delta int,
) error {
	ok, err := productRepo.AdjustStock(ctx, productID, delta)
	if err != nil {
		return err
	}
	if !ok {
		if uc.policy == config.MissingProductReject {
			return domain.ErrProductNotFound
		}
		uc.log.Warn().
			Int("product_id", productID).
			Int("delta", delta).
			Msg("ajuste de stock omitido: el producto ya no existe")
	}
	return nil
}

// Find obtiene una entrada con sus detalles y, para cada detalle, el
// producto referenciado resuelto (nil si ya no existe). Solo lectura.
func (uc *ReceiptUseCase) Find(ctx context.Context, id int) (*entity.Receipt, map[int]*entity.Product, error) {
	receipt, err := uc.receiptRepo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if receipt == nil {
		return nil, nil, nil
	}
	products := make(map[int]*entity.Product, len(receipt.Items))
	for _, it := range receipt.Items {
		if _, seen := products[it.ProductID]; seen {
			continue
		}
		p, err := uc.productRepo.GetByID(ctx, it.ProductID)
		if err != nil {
			return nil, nil, err
		}
		products[it.ProductID] = p
	}
	return receipt, products, nil
}

// List devuelve las entradas (con detalles, sin expandir productos) que
// cumplen el predicado, en orden de fecha descendente. El predicado es
// opaco: solo se aplica. Un predicado nil devuelve todas.
func (uc *ReceiptUseCase) List(ctx context.Context, pred func(*entity.Receipt) bool) ([]*entity.Receipt, error) {
	all, err := uc.receiptRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*entity.Receipt, 0, len(all))
	for _, r := range all {
		if pred == nil || pred(r) {
			out = append(out, r)
		}
	}
	return out, nil
}

// Exists verifica existencia por ID.
func (uc *ReceiptUseCase) Exists(ctx context.Context, id int) (bool, error) {
	return uc.receiptRepo.Exists(ctx, id)
}
