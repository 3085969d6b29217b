package repository

import "github.com/jhoicas/almacen-api/internal/domain/entity"

// ProductRepository define el puerto de persistencia para Product (DIP).
// La cantidad en stock solo se actualiza vía UpdateQuantity, invocado por el
// libro de stock dentro de una transacción con la fila bloqueada.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	// GetForUpdate bloquea la fila para update (SELECT FOR UPDATE).
	// Solo tiene sentido dentro de una transacción.
	GetForUpdate(id string) (*entity.Product, error)
	Update(product *entity.Product) error
	UpdateQuantity(productID string, quantity int64) error
	ListAll() ([]*entity.Product, error)
	// FindByNameContains busca por substring del nombre, sin distinguir
	// mayúsculas. Query vacío devuelve todo. Orden estable por id ascendente.
	FindByNameContains(query string, limit, offset int) ([]*entity.Product, error)
}
