package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.ShipmentRepository = (*ShipmentRepo)(nil)

// ShipmentRepo implementación del puerto ShipmentRepository sobre PostgreSQL
// (usable con pool o tx). purchase_id tiene constraint UNIQUE: un envío por compra.
type ShipmentRepo struct {
	q Querier
}

// NewShipmentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewShipmentRepository(q Querier) *ShipmentRepo {
	return &ShipmentRepo{q: q}
}

// Create persiste un envío nuevo.
func (r *ShipmentRepo) Create(shipment *entity.Shipment) error {
	query := `
		INSERT INTO shipments (id, purchase_id, status, shipped_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		shipment.ID, shipment.PurchaseID, shipment.Status, shipment.ShippedAt,
		shipment.CreatedAt, shipment.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert shipment: %w", err)
	}
	return nil
}

// GetByID obtiene un envío por ID.
func (r *ShipmentRepo) GetByID(id string) (*entity.Shipment, error) {
	query := `
		SELECT id, purchase_id, status, shipped_at, created_at, updated_at
		FROM shipments WHERE id = $1`
	return r.scanOne(query, id)
}

// GetByPurchase obtiene el envío asociado a una compra (relación 1:1).
func (r *ShipmentRepo) GetByPurchase(purchaseID string) (*entity.Shipment, error) {
	query := `
		SELECT id, purchase_id, status, shipped_at, created_at, updated_at
		FROM shipments WHERE purchase_id = $1`
	return r.scanOne(query, purchaseID)
}

func (r *ShipmentRepo) scanOne(query string, args ...any) (*entity.Shipment, error) {
	var s entity.Shipment
	err := r.q.QueryRow(context.Background(), query, args...).Scan(
		&s.ID, &s.PurchaseID, &s.Status, &s.ShippedAt, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get shipment: %w", err)
	}
	return &s, nil
}

// UpdateStatus actualiza solo status, shipped_at y updated_at. purchase_id es inmutable.
func (r *ShipmentRepo) UpdateStatus(shipment *entity.Shipment) error {
	query := `
		UPDATE shipments SET status = $2, shipped_at = $3, updated_at = $4
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		shipment.ID, shipment.Status, shipment.ShippedAt, shipment.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update shipment status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
