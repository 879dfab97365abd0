package postgres

import (
	"context"
	"fmt"

	"github.com/tallerpro/taller-inventario/internal/domain/entity"
	"github.com/tallerpro/taller-inventario/internal/domain/repository"
)

var _ repository.AuditoriaRepository = (*AuditoriaRepo)(nil)

// AuditoriaRepo implementación sobre PostgreSQL (usable con pool o tx).
type AuditoriaRepo struct {
	q Querier
}

// NewAuditoriaRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAuditoriaRepository(q Querier) *AuditoriaRepo {
	return &AuditoriaRepo{q: q}
}

// Create persiste una entrada de auditoría.
func (r *AuditoriaRepo) Create(ctx context.Context, reg *entity.RegistroAuditoria) error {
	query := `
		INSERT INTO auditoria_inventario (id, accion, entidad, entidad_id, usuario_id, detalle, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		reg.ID, reg.Accion, reg.Entidad, reg.EntidadID, reg.UsuarioID, reg.Detalle, reg.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create auditoria: %w", err)
	}
	return nil
}
