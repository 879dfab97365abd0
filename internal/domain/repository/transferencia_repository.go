package repository

import (
	"context"

	"github.com/tallerpro/taller-inventario/internal/domain/entity"
)

// TransferenciaRepository define el puerto de persistencia de transferencias.
// GetByIDForUpdate bloquea la fila para que dos confirmaciones concurrentes
// no pasen ambas la verificación de estado.
type TransferenciaRepository interface {
	Create(ctx context.Context, t *entity.Transferencia) error
	GetByID(ctx context.Context, id string) (*entity.Transferencia, error)
	GetByIDForUpdate(ctx context.Context, id string) (*entity.Transferencia, error)
	// UpdateEstado persiste estado, motivo de anulación y usuario que resolvió.
	UpdateEstado(ctx context.Context, t *entity.Transferencia) error
}
