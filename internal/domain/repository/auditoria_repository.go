package repository

import (
	"context"

	"github.com/tallerpro/taller-inventario/internal/domain/entity"
)

// AuditoriaRepository define el puerto de escritura del registro de auditoría.
type AuditoriaRepository interface {
	Create(ctx context.Context, reg *entity.RegistroAuditoria) error
}
