package memory

import (
	"context"

	"github.com/jhoicas/Entradas-api/internal/domain"
	"github.com/jhoicas/Entradas-api/internal/domain/entity"
	"github.com/jhoicas/Entradas-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación en memoria de ProductRepository.
type ProductRepo struct {
	s *Store
}

// NewProductRepository construye el repositorio sobre el store.
func NewProductRepository(s *Store) *ProductRepo {
	return &ProductRepo{s: s}
}

// Create asigna el siguiente ID y guarda el producto.
func (r *ProductRepo) Create(_ context.Context, product *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	product.ID = r.s.nextProductID
	r.s.nextProductID++
	r.s.products[product.ID] = *product
	return nil
}

// GetByID devuelve una copia del producto, o (nil, nil) si no existe.
func (r *ProductRepo) GetByID(_ context.Context, id int) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

// Update reemplaza el producto por ID.
func (r *ProductRepo) Update(_ context.Context, product *entity.Product) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.products[product.ID]; !ok {
		return false, nil
	}
	r.s.products[product.ID] = *product
	return true, nil
}

// Delete elimina el producto; falla con ErrConflict si hay detalles que lo referencian.
func (r *ProductRepo) Delete(_ context.Context, id int) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.products[id]; !ok {
		return false, nil
	}
	if r.s.referencesProduct(id) {
		return false, domain.ErrConflict
	}
	delete(r.s.products, id)
	return true, nil
}

// List devuelve todos los productos ordenados por ID.
func (r *ProductRepo) List(_ context.Context) ([]*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	list := make([]*entity.Product, 0, len(r.s.products))
	for id := 1; id < r.s.nextProductID; id++ {
		if p, ok := r.s.products[id]; ok {
			cp := p
			list = append(list, &cp)
		}
	}
	return list, nil
}

// Exists verifica existencia por ID.
func (r *ProductRepo) Exists(_ context.Context, id int) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	_, ok := r.s.products[id]
	return ok, nil
}

// AdjustStock aplica stock += delta. Devuelve false si el producto no existe.
func (r *ProductRepo) AdjustStock(_ context.Context, productID, delta int) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[productID]
	if !ok {
		return false, nil
	}
	p.Stock += delta
	r.s.products[productID] = p
	return true, nil
}
