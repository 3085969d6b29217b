package sales

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/stock"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// memStore estado compartido de los fakes: productos y ventas, con soporte
// de snapshot/rollback para simular la transacción.
type memStore struct {
	products map[string]*entity.Product
	sales    []*entity.Sale

	failSaleInsert bool // fuerza fallo al insertar la venta
}

func newMemStore(products ...*entity.Product) *memStore {
	s := &memStore{products: make(map[string]*entity.Product)}
	for _, p := range products {
		cp := *p
		s.products[p.ID] = &cp
	}
	return s
}

func (s *memStore) snapshot() *memStore {
	cp := &memStore{
		products:       make(map[string]*entity.Product, len(s.products)),
		sales:          append([]*entity.Sale(nil), s.sales...),
		failSaleInsert: s.failSaleInsert,
	}
	for id, p := range s.products {
		pc := *p
		cp.products[id] = &pc
	}
	return cp
}

func (s *memStore) restore(from *memStore) {
	s.products = from.products
	s.sales = from.sales
}

type memProductRepo struct{ store *memStore }

func (r *memProductRepo) Create(p *entity.Product) error { return nil }

func (r *memProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.store.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *memProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	return r.GetByID(id)
}

func (r *memProductRepo) Update(p *entity.Product) error { return nil }

func (r *memProductRepo) UpdateQuantity(productID string, quantity int64) error {
	cur, ok := r.store.products[productID]
	if !ok {
		return domain.ErrNotFound
	}
	cur.Quantity = quantity
	return nil
}

func (r *memProductRepo) ListAll() ([]*entity.Product, error) { return nil, nil }

func (r *memProductRepo) FindByNameContains(query string, limit, offset int) ([]*entity.Product, error) {
	return nil, nil
}

type memSaleRepo struct{ store *memStore }

func (r *memSaleRepo) Create(sale *entity.Sale) error {
	if r.store.failSaleInsert {
		return errors.New("insert sale: falla simulada")
	}
	cp := *sale
	r.store.sales = append(r.store.sales, &cp)
	return nil
}

func (r *memSaleRepo) GetByID(id string) (*entity.Sale, error) {
	for _, s := range r.store.sales {
		if s.ID == id {
			cp := *s
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memSaleRepo) ListByProduct(productID string, limit, offset int) ([]*entity.Sale, error) {
	var out []*entity.Sale
	for _, s := range r.store.sales {
		if s.ProductID == productID {
			cp := *s
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memSaleRepo) List(limit, offset int) ([]*entity.Sale, error) {
	out := make([]*entity.Sale, 0, len(r.store.sales))
	for _, s := range r.store.sales {
		cp := *s
		out = append(out, &cp)
	}
	return out, nil
}

// memTxRunner transacción simulada: snapshot antes de fn, restore si falla.
type memTxRunner struct{ store *memStore }

func (t *memTxRunner) Run(ctx context.Context, fn func(productRepo repository.ProductRepository) error) error {
	snap := t.store.snapshot()
	if err := fn(&memProductRepo{store: t.store}); err != nil {
		t.store.restore(snap)
		return err
	}
	return nil
}

func (t *memTxRunner) RunSale(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	saleRepo repository.SaleRepository,
) error) error {
	snap := t.store.snapshot()
	if err := fn(&memProductRepo{store: t.store}, &memSaleRepo{store: t.store}); err != nil {
		t.store.restore(snap)
		return err
	}
	return nil
}

func newTestUseCase(products ...*entity.Product) (*RecordSaleUseCase, *memStore) {
	store := newMemStore(products...)
	runner := &memTxRunner{store: store}
	ledger := stock.NewLedger(runner)
	uc := NewRecordSaleUseCase(runner, ledger, &memSaleRepo{store: store})
	return uc, store
}

func product(id string, quantity int64, price string) *entity.Product {
	return &entity.Product{
		ID:       id,
		Name:     "Producto " + id,
		Quantity: quantity,
		Price:    decimal.RequireFromString(price),
	}
}

func TestRecordSale(t *testing.T) {
	ctx := context.Background()

	t.Run("venta exitosa debita stock y persiste la venta", func(t *testing.T) {
		uc, store := newTestUseCase(product("p1", 15, "2.50"))

		resp, err := uc.RecordSale(ctx, "p1", 5)
		require.NoError(t, err)

		assert.Equal(t, "p1", resp.ProductID)
		assert.Equal(t, int64(5), resp.Quantity)
		assert.Equal(t, int64(10), resp.RemainingStock)
		assert.True(t, resp.UnitPrice.Equal(decimal.RequireFromString("2.50")))
		assert.True(t, resp.Total.Equal(decimal.RequireFromString("12.50")))
		assert.False(t, resp.CreatedAt.IsZero())

		// Ambos efectos persistidos: stock en 10 y exactamente una venta.
		assert.Equal(t, int64(10), store.products["p1"].Quantity)
		require.Len(t, store.sales, 1)
		assert.Equal(t, int64(5), store.sales[0].Quantity)
	})

	t.Run("venta por el stock completo deja cero", func(t *testing.T) {
		uc, store := newTestUseCase(product("p1", 5, "2.50"))

		resp, err := uc.RecordSale(ctx, "p1", 5)
		require.NoError(t, err)
		assert.Equal(t, int64(0), resp.RemainingStock)
		assert.Equal(t, int64(0), store.products["p1"].Quantity)
	})

	t.Run("stock insuficiente rechaza sin persistir nada", func(t *testing.T) {
		uc, store := newTestUseCase(product("p1", 5, "2.50"))

		resp, err := uc.RecordSale(ctx, "p1", 6)
		require.Error(t, err)
		assert.Nil(t, resp)

		// El rechazo envuelve la causa: ambas son distinguibles con errors.Is.
		assert.ErrorIs(t, err, domain.ErrRejected)
		assert.ErrorIs(t, err, domain.ErrInsufficientStock)

		// Nada cambió: ni stock ni registro de venta.
		assert.Equal(t, int64(5), store.products["p1"].Quantity)
		assert.Empty(t, store.sales)
	})

	t.Run("producto inexistente rechaza", func(t *testing.T) {
		uc, store := newTestUseCase()

		_, err := uc.RecordSale(ctx, "nope", 1)
		assert.ErrorIs(t, err, domain.ErrRejected)
		assert.ErrorIs(t, err, domain.ErrNotFound)
		assert.Empty(t, store.sales)
	})

	t.Run("fallo al insertar la venta revierte el débito", func(t *testing.T) {
		uc, store := newTestUseCase(product("p1", 15, "2.50"))
		store.failSaleInsert = true

		_, err := uc.RecordSale(ctx, "p1", 5)
		require.Error(t, err)

		// Atómico: el débito de stock se revirtió junto con la venta.
		assert.Equal(t, int64(15), store.products["p1"].Quantity)
		assert.Empty(t, store.sales)
	})

	t.Run("entrada inválida", func(t *testing.T) {
		uc, _ := newTestUseCase(product("p1", 15, "2.50"))

		_, err := uc.RecordSale(ctx, "", 1)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)

		_, err = uc.RecordSale(ctx, "p1", 0)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)

		_, err = uc.RecordSale(ctx, "p1", -3)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

// Ventas consecutivas sobre un producto de 15 unidades a 2.50: vender 5 deja
// 10; intentar vender 100 se rechaza y no altera nada.
func TestRecordSaleSequence(t *testing.T) {
	ctx := context.Background()
	uc, store := newTestUseCase(product("p1", 15, "2.50"))

	resp, err := uc.RecordSale(ctx, "p1", 5)
	require.NoError(t, err)
	assert.Equal(t, int64(10), resp.RemainingStock)

	_, err = uc.RecordSale(ctx, "p1", 100)
	require.ErrorIs(t, err, domain.ErrRejected)
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.Equal(t, int64(10), store.products["p1"].Quantity)
	require.Len(t, store.sales, 1)
}

func TestListByProduct(t *testing.T) {
	ctx := context.Background()
	uc, _ := newTestUseCase(product("p1", 20, "3.00"), product("p2", 20, "4.00"))

	_, err := uc.RecordSale(ctx, "p1", 2)
	require.NoError(t, err)
	_, err = uc.RecordSale(ctx, "p1", 3)
	require.NoError(t, err)
	_, err = uc.RecordSale(ctx, "p2", 1)
	require.NoError(t, err)

	out, err := uc.ListByProduct(ctx, "p1", dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, out.Items, 2)
	for _, item := range out.Items {
		assert.Equal(t, "p1", item.ProductID)
	}

	// Sin filtro lista todas.
	out, err = uc.ListByProduct(ctx, "", dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, out.Items, 3)
}
