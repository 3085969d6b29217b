package stock

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// memProductRepo repositorio de productos en memoria para tests.
type memProductRepo struct {
	products map[string]*entity.Product
}

func newMemProductRepo(products ...*entity.Product) *memProductRepo {
	m := &memProductRepo{products: make(map[string]*entity.Product)}
	for _, p := range products {
		cp := *p
		m.products[p.ID] = &cp
	}
	return m
}

func (r *memProductRepo) Create(p *entity.Product) error {
	if _, ok := r.products[p.ID]; ok {
		return domain.ErrDuplicate
	}
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *memProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

// GetForUpdate en memoria no bloquea nada: la serialización la da el
// TxRunner del test, igual que en producción la da la transacción.
func (r *memProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	return r.GetByID(id)
}

func (r *memProductRepo) Update(p *entity.Product) error {
	cur, ok := r.products[p.ID]
	if !ok {
		return domain.ErrNotFound
	}
	cur.Name = p.Name
	cur.Description = p.Description
	cur.Price = p.Price
	cur.UpdatedAt = p.UpdatedAt
	return nil
}

func (r *memProductRepo) UpdateQuantity(productID string, quantity int64) error {
	cur, ok := r.products[productID]
	if !ok {
		return domain.ErrNotFound
	}
	cur.Quantity = quantity
	return nil
}

func (r *memProductRepo) ListAll() ([]*entity.Product, error) {
	out := make([]*entity.Product, 0, len(r.products))
	for _, p := range r.products {
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (r *memProductRepo) FindByNameContains(query string, limit, offset int) ([]*entity.Product, error) {
	return r.ListAll()
}

// memTxRunner serializa las transacciones con un mutex, como lo hace el
// SELECT FOR UPDATE por fila en PostgreSQL (aquí a nivel de catálogo, lo
// cual es más restrictivo pero suficiente para los tests).
type memTxRunner struct {
	mu   sync.Mutex
	repo *memProductRepo
}

func (t *memTxRunner) Run(ctx context.Context, fn func(productRepo repository.ProductRepository) error) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	// Snapshot para simular rollback si fn falla.
	snapshot := make(map[string]*entity.Product, len(t.repo.products))
	for id, p := range t.repo.products {
		cp := *p
		snapshot[id] = &cp
	}
	if err := fn(t.repo); err != nil {
		t.repo.products = snapshot
		return err
	}
	return nil
}

func testProduct(id string, quantity int64, price string) *entity.Product {
	return &entity.Product{
		ID:       id,
		Name:     "Producto " + id,
		Quantity: quantity,
		Price:    decimal.RequireFromString(price),
	}
}

func newTestLedger(products ...*entity.Product) (*Ledger, *memProductRepo) {
	repo := newMemProductRepo(products...)
	return NewLedger(&memTxRunner{repo: repo}), repo
}

func TestLedgerAdjust(t *testing.T) {
	ctx := context.Background()

	t.Run("delta positivo incrementa el stock", func(t *testing.T) {
		ledger, repo := newTestLedger(testProduct("p1", 10, "5.00"))

		p, err := ledger.Adjust(ctx, "p1", 7)
		require.NoError(t, err)
		assert.Equal(t, int64(17), p.Quantity)

		stored, _ := repo.GetByID("p1")
		assert.Equal(t, int64(17), stored.Quantity)
	})

	t.Run("delta negativo descuenta stock", func(t *testing.T) {
		ledger, repo := newTestLedger(testProduct("p1", 10, "5.00"))

		p, err := ledger.Adjust(ctx, "p1", -4)
		require.NoError(t, err)
		assert.Equal(t, int64(6), p.Quantity)

		stored, _ := repo.GetByID("p1")
		assert.Equal(t, int64(6), stored.Quantity)
	})

	t.Run("ajuste que dejaría stock negativo se rechaza completo", func(t *testing.T) {
		ledger, repo := newTestLedger(testProduct("p1", 3, "5.00"))

		p, err := ledger.Adjust(ctx, "p1", -4)
		require.ErrorIs(t, err, domain.ErrInsufficientStock)
		assert.Nil(t, p)

		// Sin aplicación parcial: el stock queda intacto.
		stored, _ := repo.GetByID("p1")
		assert.Equal(t, int64(3), stored.Quantity)
	})

	t.Run("ajuste exacto al stock deja cero", func(t *testing.T) {
		ledger, _ := newTestLedger(testProduct("p1", 5, "5.00"))

		p, err := ledger.Adjust(ctx, "p1", -5)
		require.NoError(t, err)
		assert.Equal(t, int64(0), p.Quantity)
	})

	t.Run("producto inexistente", func(t *testing.T) {
		ledger, _ := newTestLedger()

		_, err := ledger.Adjust(ctx, "nope", 1)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("id vacío", func(t *testing.T) {
		ledger, _ := newTestLedger()

		_, err := ledger.Adjust(ctx, "", 1)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestLedgerDebitCredit(t *testing.T) {
	ctx := context.Background()

	t.Run("debit descuenta, credit suma", func(t *testing.T) {
		ledger, _ := newTestLedger(testProduct("p1", 10, "5.00"))

		p, err := ledger.Debit(ctx, "p1", 3)
		require.NoError(t, err)
		assert.Equal(t, int64(7), p.Quantity)

		p, err = ledger.Credit(ctx, "p1", 5)
		require.NoError(t, err)
		assert.Equal(t, int64(12), p.Quantity)
	})

	t.Run("montos no positivos son inválidos", func(t *testing.T) {
		ledger, _ := newTestLedger(testProduct("p1", 10, "5.00"))

		for _, amount := range []int64{0, -1} {
			_, err := ledger.Debit(ctx, "p1", amount)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)

			_, err = ledger.Credit(ctx, "p1", amount)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		}
	})

	t.Run("debit mayor al stock se rechaza", func(t *testing.T) {
		ledger, repo := newTestLedger(testProduct("p1", 2, "5.00"))

		_, err := ledger.Debit(ctx, "p1", 3)
		require.ErrorIs(t, err, domain.ErrInsufficientStock)

		stored, _ := repo.GetByID("p1")
		assert.Equal(t, int64(2), stored.Quantity)
	})
}

// N créditos concurrentes de 1 unidad deben terminar exactamente en Q+N:
// ningún ajuste puede pisar el efecto de otro.
func TestLedgerConcurrentAdjustments(t *testing.T) {
	const (
		initial = int64(100)
		workers = 50
	)
	ctx := context.Background()
	ledger, repo := newTestLedger(testProduct("p1", initial, "5.00"))

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := ledger.Credit(ctx, "p1", 1)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	stored, _ := repo.GetByID("p1")
	assert.Equal(t, initial+int64(workers), stored.Quantity)
}

// Débitos concurrentes sobre stock limitado: los que alcanzan stock pasan,
// el resto falla con ErrInsufficientStock, y el total debitado nunca excede
// el stock inicial.
func TestLedgerConcurrentDebitsNeverOversell(t *testing.T) {
	const (
		initial = int64(10)
		workers = 25
	)
	ctx := context.Background()
	ledger, repo := newTestLedger(testProduct("p1", initial, "5.00"))

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int64
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := ledger.Debit(ctx, "p1", 1)
			if err != nil {
				assert.ErrorIs(t, err, domain.ErrInsufficientStock)
				return
			}
			mu.Lock()
			succeeded++
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Equal(t, initial, succeeded)
	stored, _ := repo.GetByID("p1")
	assert.Equal(t, int64(0), stored.Quantity)
}
