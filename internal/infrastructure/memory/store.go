// Package memory implementa los puertos de persistencia sobre mapas en
// memoria. Se usa en tests de los casos de uso y handlers para no depender
// de PostgreSQL; el TxRunner imita la atomicidad con snapshot/restore.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/jhoicas/Entradas-api/internal/application/inventory"
	"github.com/jhoicas/Entradas-api/internal/domain/entity"
	"github.com/jhoicas/Entradas-api/internal/domain/repository"
)

// Store estado compartido por los repositorios en memoria.
type Store struct {
	mu            sync.Mutex
	products      map[int]entity.Product
	receipts      map[int]entity.Receipt
	nextProductID int
	nextReceiptID int
	nextItemID    int
}

// NewStore crea el store vacío.
func NewStore() *Store {
	return &Store{
		products:      make(map[int]entity.Product),
		receipts:      make(map[int]entity.Receipt),
		nextProductID: 1,
		nextReceiptID: 1,
		nextItemID:    1,
	}
}

type snapshot struct {
	products      map[int]entity.Product
	receipts      map[int]entity.Receipt
	nextProductID int
	nextReceiptID int
	nextItemID    int
}

func copyReceipt(r entity.Receipt) entity.Receipt {
	items := make([]entity.ReceiptItem, len(r.Items))
	copy(items, r.Items)
	r.Items = items
	return r
}

func (s *Store) snapshot() snapshot {
	products := make(map[int]entity.Product, len(s.products))
	for id, p := range s.products {
		products[id] = p
	}
	receipts := make(map[int]entity.Receipt, len(s.receipts))
	for id, r := range s.receipts {
		receipts[id] = copyReceipt(r)
	}
	return snapshot{
		products:      products,
		receipts:      receipts,
		nextProductID: s.nextProductID,
		nextReceiptID: s.nextReceiptID,
		nextItemID:    s.nextItemID,
	}
}

func (s *Store) restore(snap snapshot) {
	s.products = snap.products
	s.receipts = snap.receipts
	s.nextProductID = snap.nextProductID
	s.nextReceiptID = snap.nextReceiptID
	s.nextItemID = snap.nextItemID
}

// referencesProduct indica si algún detalle persistido referencia el producto.
func (s *Store) referencesProduct(productID int) bool {
	for _, r := range s.receipts {
		for _, it := range r.Items {
			if it.ProductID == productID {
				return true
			}
		}
	}
	return false
}

var _ inventory.TxRunner = (*TxRunner)(nil)

// TxRunner versión en memoria: ante un error de fn restaura el estado
// previo completo, imitando el rollback de una transacción real.
type TxRunner struct {
	store *Store
}

// NewTxRunner construye el runner sobre el store.
func NewTxRunner(store *Store) *TxRunner {
	return &TxRunner{store: store}
}

// Run ejecuta fn; si falla, restaura el snapshot tomado al inicio.
func (r *TxRunner) Run(ctx context.Context, fn func(
	receiptRepo repository.ReceiptRepository,
	productRepo repository.ProductRepository,
) error) error {
	r.store.mu.Lock()
	snap := r.store.snapshot()
	r.store.mu.Unlock()
	if err := fn(NewReceiptRepository(r.store), NewProductRepository(r.store)); err != nil {
		r.store.mu.Lock()
		r.store.restore(snap)
		r.store.mu.Unlock()
		return err
	}
	return nil
}

// sortReceiptsByDateDesc ordena por fecha descendente, ID descendente como desempate.
func sortReceiptsByDateDesc(list []*entity.Receipt) {
	sort.Slice(list, func(i, j int) bool {
		if !list[i].Date.Equal(list[j].Date) {
			return list[i].Date.After(list[j].Date)
		}
		return list[i].ID > list[j].ID
	})
}
