package repository

import (
	"context"
	"time"

	"github.com/tallerpro/taller-inventario/internal/domain/entity"
)

// MovimientoFiltro acota el listado de movimientos.
type MovimientoFiltro struct {
	ProductoID string
	AlmacenID  string
	Tipo       string
	Desde      *time.Time
	Hasta      *time.Time
}

// MovimientoRepository define el puerto de persistencia de movimientos.
// Los movimientos son append-only: no hay Update ni Delete.
type MovimientoRepository interface {
	Create(ctx context.Context, mov *entity.MovimientoInventario) error
	GetByID(ctx context.Context, id string) (*entity.MovimientoInventario, error)
	List(ctx context.Context, filtro MovimientoFiltro, limit, offset int) ([]*entity.MovimientoInventario, error)
}
