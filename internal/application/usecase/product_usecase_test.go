package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Entradas-api/internal/application/usecase"
	"github.com/jhoicas/Entradas-api/internal/domain"
	"github.com/jhoicas/Entradas-api/internal/domain/entity"
	"github.com/jhoicas/Entradas-api/internal/infrastructure/memory"
)

func newProductUC() *usecase.ProductUseCase {
	return usecase.NewProductUseCase(memory.NewProductRepository(memory.NewStore()))
}

func producto(desc string) *entity.Product {
	return &entity.Product{
		Description: desc,
		Cost:        decimal.NewFromFloat(10.00),
		Price:       decimal.NewFromFloat(15.00),
	}
}

// Save con ID cero inserta y asigna el ID.
func TestProductSave_Insertar(t *testing.T) {
	uc := newProductUC()

	p := producto("Teclado")
	ok, err := uc.Save(context.Background(), p)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.NotZero(t, p.ID)

	found, err := uc.Find(context.Background(), p.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "Teclado", found.Description)
}

// Save con ID existente actualiza por ID.
func TestProductSave_Actualizar(t *testing.T) {
	uc := newProductUC()

	p := producto("Teclado")
	_, err := uc.Save(context.Background(), p)
	require.NoError(t, err)

	p.Description = "Teclado inalámbrico"
	p.Price = decimal.NewFromFloat(19.90)
	ok, err := uc.Save(context.Background(), p)
	require.NoError(t, err)
	assert.True(t, ok)

	found, err := uc.Find(context.Background(), p.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "Teclado inalámbrico", found.Description)
	assert.True(t, found.Price.Equal(decimal.NewFromFloat(19.90)))
}

// Actualizar un ID inexistente devuelve false sin error.
func TestProductSave_ActualizarInexistente(t *testing.T) {
	uc := newProductUC()

	p := producto("Fantasma")
	p.ID = 999
	ok, err := uc.Save(context.Background(), p)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestProductSave_Invalido(t *testing.T) {
	uc := newProductUC()

	p := producto("")
	_, err := uc.Save(context.Background(), p)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProductDelete(t *testing.T) {
	uc := newProductUC()

	p := producto("Teclado")
	_, err := uc.Save(context.Background(), p)
	require.NoError(t, err)

	ok, err := uc.Delete(context.Background(), p.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	found, err := uc.Find(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Nil(t, found)
}

// "No encontrado" es un resultado normal, no un error.
func TestProductDelete_Inexistente(t *testing.T) {
	uc := newProductUC()

	ok, err := uc.Delete(context.Background(), 42)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestProductFind_Inexistente(t *testing.T) {
	uc := newProductUC()

	found, err := uc.Find(context.Background(), 42)
	require.NoError(t, err)
	assert.Nil(t, found)
}

// List aplica el predicado opaco; nil devuelve todos; sin coincidencias,
// slice vacío.
func TestProductList(t *testing.T) {
	uc := newProductUC()
	ctx := context.Background()

	for _, d := range []string{"Teclado mecánico", "Mouse", "Teclado numérico"} {
		_, err := uc.Save(ctx, producto(d))
		require.NoError(t, err)
	}

	all, err := uc.List(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	teclados, err := uc.List(ctx, func(p *entity.Product) bool {
		return len(p.Description) >= 7 && p.Description[:7] == "Teclado"
	})
	require.NoError(t, err)
	assert.Len(t, teclados, 2)

	none, err := uc.List(ctx, func(*entity.Product) bool { return false })
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestProductExists(t *testing.T) {
	uc := newProductUC()

	p := producto("Teclado")
	_, err := uc.Save(context.Background(), p)
	require.NoError(t, err)

	ok, err := uc.Exists(context.Background(), p.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = uc.Exists(context.Background(), 999)
	require.NoError(t, err)
	assert.False(t, ok)
}
