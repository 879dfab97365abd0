package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tallerpro/taller-inventario/internal/domain/entity"
	"github.com/tallerpro/taller-inventario/internal/domain/repository"
)

var _ repository.AlmacenRepository = (*AlmacenRepo)(nil)

// AlmacenRepo implementación de AlmacenRepository sobre PostgreSQL (usable
// con pool o tx).
type AlmacenRepo struct {
	q Querier
}

// NewAlmacenRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAlmacenRepository(q Querier) *AlmacenRepo {
	return &AlmacenRepo{q: q}
}

// GetByID obtiene un almacén por ID; nil si no existe.
func (r *AlmacenRepo) GetByID(ctx context.Context, id string) (*entity.Almacen, error) {
	query := `
		SELECT id, nombre, direccion, activo, created_at, updated_at
		FROM almacenes WHERE id = $1`
	var a entity.Almacen
	err := r.q.QueryRow(ctx, query, id).Scan(
		&a.ID, &a.Nombre, &a.Direccion, &a.Activo, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get almacen: %w", err)
	}
	return &a, nil
}

// GetUbicacion obtiene una ubicación de un almacén; nil si no existe.
func (r *AlmacenRepo) GetUbicacion(ctx context.Context, almacenID, ubicacionID string) (*entity.Ubicacion, error) {
	query := `
		SELECT id, almacen_id, nombre, activa, created_at
		FROM ubicaciones WHERE id = $1 AND almacen_id = $2`
	var u entity.Ubicacion
	err := r.q.QueryRow(ctx, query, ubicacionID, almacenID).Scan(
		&u.ID, &u.AlmacenID, &u.Nombre, &u.Activa, &u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get ubicacion: %w", err)
	}
	return &u, nil
}
