package repository

import (
	"context"
	"time"

	"github.com/tallerpro/taller-inventario/internal/domain/entity"
)

// ReservaRepository define el puerto de persistencia de reservas de stock.
// Las reservas terminales se conservan como historial; no hay Delete.
type ReservaRepository interface {
	Create(ctx context.Context, r *entity.ReservaInventario) error
	GetByID(ctx context.Context, id string) (*entity.ReservaInventario, error)
	GetByIDForUpdate(ctx context.Context, id string) (*entity.ReservaInventario, error)
	// Update persiste estado, motivo, metadata y usuario que resolvió.
	Update(ctx context.Context, r *entity.ReservaInventario) error
	// ListPendientesAnteriores devuelve hasta limit reservas PENDIENTE creadas
	// antes de corte, las más antiguas primero. Lo usa el barrido de caducadas.
	ListPendientesAnteriores(ctx context.Context, corte time.Time, limit int) ([]*entity.ReservaInventario, error)
}
