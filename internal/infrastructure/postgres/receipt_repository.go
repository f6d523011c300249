package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Entradas-api/internal/domain/entity"
	"github.com/jhoicas/Entradas-api/internal/domain/repository"
)

var _ repository.ReceiptRepository = (*ReceiptRepo)(nil)

// ReceiptRepo implementación de ReceiptRepository sobre PostgreSQL (usable con pool o tx).
type ReceiptRepo struct {
	q Querier
}

// NewReceiptRepository construye el adaptador de entradas. Pasar pool o tx (Querier).
func NewReceiptRepository(q Querier) *ReceiptRepo {
	return &ReceiptRepo{q: q}
}

// Insert persiste el encabezado y sus detalles; asigna los IDs generados.
func (r *ReceiptRepo) Insert(ctx context.Context, receipt *entity.Receipt) error {
	err := r.q.QueryRow(ctx,
		`INSERT INTO receipts (date, total) VALUES ($1, $2) RETURNING id`,
		receipt.Date, receipt.Total,
	).Scan(&receipt.ID)
	if err != nil {
		return fmt.Errorf("insert receipt: %w", err)
	}
	return r.insertItems(ctx, receipt.ID, receipt.Items)
}

func (r *ReceiptRepo) insertItems(ctx context.Context, receiptID int, items []entity.ReceiptItem) error {
	for i := range items {
		items[i].ReceiptID = receiptID
		err := r.q.QueryRow(ctx,
			`INSERT INTO receipt_items (receipt_id, product_id, quantity, cost)
			 VALUES ($1, $2, $3, $4) RETURNING id`,
			receiptID, items[i].ProductID, items[i].Quantity, items[i].Cost,
		).Scan(&items[i].ID)
		if err != nil {
			return fmt.Errorf("insert receipt item: %w", err)
		}
	}
	return nil
}

// GetByID obtiene el encabezado con sus detalles. Devuelve (nil, nil) si no existe.
func (r *ReceiptRepo) GetByID(ctx context.Context, id int) (*entity.Receipt, error) {
	var rec entity.Receipt
	err := r.q.QueryRow(ctx,
		`SELECT id, date, total FROM receipts WHERE id = $1`, id,
	).Scan(&rec.ID, &rec.Date, &rec.Total)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get receipt: %w", err)
	}
	items, err := r.itemsOf(ctx, id)
	if err != nil {
		return nil, err
	}
	rec.Items = items
	return &rec, nil
}

func (r *ReceiptRepo) itemsOf(ctx context.Context, receiptID int) ([]entity.ReceiptItem, error) {
	rows, err := r.q.Query(ctx,
		`SELECT id, receipt_id, product_id, quantity, cost
		 FROM receipt_items WHERE receipt_id = $1 ORDER BY id`, receiptID)
	if err != nil {
		return nil, fmt.Errorf("list receipt items: %w", err)
	}
	defer rows.Close()
	var items []entity.ReceiptItem
	for rows.Next() {
		var it entity.ReceiptItem
		if err := rows.Scan(&it.ID, &it.ReceiptID, &it.ProductID, &it.Quantity, &it.Cost); err != nil {
			return nil, fmt.Errorf("scan receipt item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// UpdateHeader actualiza fecha y total del encabezado. Devuelve false si no afectó filas.
func (r *ReceiptRepo) UpdateHeader(ctx context.Context, receipt *entity.Receipt) (bool, error) {
	cmd, err := r.q.Exec(ctx,
		`UPDATE receipts SET date = $2, total = $3 WHERE id = $1`,
		receipt.ID, receipt.Date, receipt.Total,
	)
	if err != nil {
		return false, fmt.Errorf("update receipt: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

// ReplaceItems elimina todos los detalles de la entrada e inserta el set nuevo.
// No hay edición parcial de detalles: cada guardado reemplaza la colección completa.
func (r *ReceiptRepo) ReplaceItems(ctx context.Context, receiptID int, items []entity.ReceiptItem) error {
	if _, err := r.q.Exec(ctx,
		`DELETE FROM receipt_items WHERE receipt_id = $1`, receiptID); err != nil {
		return fmt.Errorf("delete receipt items: %w", err)
	}
	return r.insertItems(ctx, receiptID, items)
}

// Delete elimina la entrada; los detalles caen por cascada de la FK.
func (r *ReceiptRepo) Delete(ctx context.Context, id int) (bool, error) {
	cmd, err := r.q.Exec(ctx, `DELETE FROM receipts WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete receipt: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

// List devuelve las entradas con sus detalles, ordenadas por fecha descendente.
func (r *ReceiptRepo) List(ctx context.Context) ([]*entity.Receipt, error) {
	rows, err := r.q.Query(ctx,
		`SELECT id, date, total FROM receipts ORDER BY date DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list receipts: %w", err)
	}
	defer rows.Close()
	var list []*entity.Receipt
	for rows.Next() {
		var rec entity.Receipt
		if err := rows.Scan(&rec.ID, &rec.Date, &rec.Total); err != nil {
			return nil, fmt.Errorf("scan receipt: %w", err)
		}
		list = append(list, &rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, rec := range list {
		items, err := r.itemsOf(ctx, rec.ID)
		if err != nil {
			return nil, err
		}
		rec.Items = items
	}
	return list, nil
}

// Exists verifica si una entrada existe por ID.
func (r *ReceiptRepo) Exists(ctx context.Context, id int) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM receipts WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists receipt: %w", err)
	}
	return exists, nil
}
