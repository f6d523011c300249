package usecase

import (
	"context"

	"github.com/jhoicas/Entradas-api/internal/domain/entity"
	"github.com/jhoicas/Entradas-api/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para productos. El stock no se edita
// aquí salvo por asignación directa; los ajustes los hace el motor de entradas.
type ProductUseCase struct {
	repo repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo}
}

// Save crea el producto si ID es cero, si no lo actualiza por ID.
// Devuelve true si la operación afectó al menos una fila.
func (uc *ProductUseCase) Save(ctx context.Context, product *entity.Product) (bool, error) {
	if err := product.Validate(); err != nil {
		return false, err
	}
	if product.IsNew() {
		if err := uc.repo.Create(ctx, product); err != nil {
			return false, err
		}
		return true, nil
	}
	return uc.repo.Update(ctx, product)
}

// Delete elimina un producto por ID. "No encontrado" es un resultado
// normal (false), no un error.
func (uc *ProductUseCase) Delete(ctx context.Context, id int) (bool, error) {
	existing, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return false, err
	}
	if existing == nil {
		return false, nil
	}
	return uc.repo.Delete(ctx, id)
}

// Find obtiene un producto por ID. Devuelve (nil, nil) si no existe.
func (uc *ProductUseCase) Find(ctx context.Context, id int) (*entity.Product, error) {
	return uc.repo.GetByID(ctx, id)
}

// List devuelve los productos que cumplen el predicado. El predicado es
// opaco para el caso de uso: solo se aplica, nunca se interpreta.
// Un predicado nil devuelve todos. Sin coincidencias, slice vacío.
func (uc *ProductUseCase) List(ctx context.Context, pred func(*entity.Product) bool) ([]*entity.Product, error) {
	all, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*entity.Product, 0, len(all))
	for _, p := range all {
		if pred == nil || pred(p) {
			out = append(out, p)
		}
	}
	return out, nil
}

// Exists verifica existencia por ID.
func (uc *ProductUseCase) Exists(ctx context.Context, id int) (bool, error) {
	return uc.repo.Exists(ctx, id)
}
