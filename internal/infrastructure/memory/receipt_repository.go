package memory

import (
	"context"

	"github.com/jhoicas/Entradas-api/internal/domain/entity"
	"github.com/jhoicas/Entradas-api/internal/domain/repository"
)

var _ repository.ReceiptRepository = (*ReceiptRepo)(nil)

// ReceiptRepo implementación en memoria de ReceiptRepository.
type ReceiptRepo struct {
	s *Store
}

// NewReceiptRepository construye el repositorio sobre el store.
func NewReceiptRepository(s *Store) *ReceiptRepo {
	return &ReceiptRepo{s: s}
}

// Insert asigna IDs al encabezado y sus detalles y los guarda.
func (r *ReceiptRepo) Insert(_ context.Context, receipt *entity.Receipt) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	receipt.ID = r.s.nextReceiptID
	r.s.nextReceiptID++
	for i := range receipt.Items {
		receipt.Items[i].ID = r.s.nextItemID
		r.s.nextItemID++
		receipt.Items[i].ReceiptID = receipt.ID
	}
	r.s.receipts[receipt.ID] = copyReceipt(*receipt)
	return nil
}

// GetByID devuelve una copia de la entrada con sus detalles, o (nil, nil).
func (r *ReceiptRepo) GetByID(_ context.Context, id int) (*entity.Receipt, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rec, ok := r.s.receipts[id]
	if !ok {
		return nil, nil
	}
	cp := copyReceipt(rec)
	return &cp, nil
}

// UpdateHeader actualiza fecha y total del encabezado.
func (r *ReceiptRepo) UpdateHeader(_ context.Context, receipt *entity.Receipt) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rec, ok := r.s.receipts[receipt.ID]
	if !ok {
		return false, nil
	}
	rec.Date = receipt.Date
	rec.Total = receipt.Total
	r.s.receipts[receipt.ID] = rec
	return true, nil
}

// ReplaceItems descarta los detalles persistidos e inserta el set nuevo.
func (r *ReceiptRepo) ReplaceItems(_ context.Context, receiptID int, items []entity.ReceiptItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rec, ok := r.s.receipts[receiptID]
	if !ok {
		return nil
	}
	newItems := make([]entity.ReceiptItem, len(items))
	copy(newItems, items)
	for i := range newItems {
		newItems[i].ID = r.s.nextItemID
		r.s.nextItemID++
		newItems[i].ReceiptID = receiptID
	}
	copy(items, newItems)
	rec.Items = newItems
	r.s.receipts[receiptID] = rec
	return nil
}

// Delete elimina la entrada y, con ella, sus detalles.
func (r *ReceiptRepo) Delete(_ context.Context, id int) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.receipts[id]; !ok {
		return false, nil
	}
	delete(r.s.receipts, id)
	return true, nil
}

// List devuelve las entradas con detalles, fecha descendente.
func (r *ReceiptRepo) List(_ context.Context) ([]*entity.Receipt, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	list := make([]*entity.Receipt, 0, len(r.s.receipts))
	for _, rec := range r.s.receipts {
		cp := copyReceipt(rec)
		list = append(list, &cp)
	}
	sortReceiptsByDateDesc(list)
	return list, nil
}

// Exists verifica existencia por ID.
func (r *ReceiptRepo) Exists(_ context.Context, id int) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	_, ok := r.s.receipts[id]
	return ok, nil
}
