package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/tallerpro/taller-inventario/internal/domain/entity"
	"github.com/tallerpro/taller-inventario/internal/domain/repository"
)

var _ repository.MovimientoRepository = (*MovimientoRepo)(nil)

// MovimientoRepo implementación sobre PostgreSQL (usable con pool o tx).
// La tabla es append-only: no hay UPDATE ni DELETE.
type MovimientoRepo struct {
	q Querier
}

// NewMovimientoRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovimientoRepository(q Querier) *MovimientoRepo {
	return &MovimientoRepo{q: q}
}

const movimientoColumns = `id, inventario_id, producto_id, almacen_id, ubicacion_id,
	tipo, cantidad, costo_unitario, referencia, origen_tipo, observaciones,
	evidencia_url, usuario_id, created_at`

// Create persiste un movimiento de inventario.
func (r *MovimientoRepo) Create(ctx context.Context, mov *entity.MovimientoInventario) error {
	if mov.ID == "" {
		mov.ID = uuid.New().String()
	}
	query := `
		INSERT INTO movimientos_inventario (` + movimientoColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(ctx, query,
		mov.ID, mov.InventarioID, mov.ProductoID, mov.AlmacenID, mov.UbicacionID,
		mov.Tipo, mov.Cantidad, mov.CostoUnitario, mov.Referencia, mov.OrigenTipo,
		mov.Observaciones, mov.EvidenciaURL, mov.UsuarioID, mov.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create movimiento: %w", err)
	}
	return nil
}

func scanMovimiento(row pgx.Row) (*entity.MovimientoInventario, error) {
	var m entity.MovimientoInventario
	err := row.Scan(
		&m.ID, &m.InventarioID, &m.ProductoID, &m.AlmacenID, &m.UbicacionID,
		&m.Tipo, &m.Cantidad, &m.CostoUnitario, &m.Referencia, &m.OrigenTipo,
		&m.Observaciones, &m.EvidenciaURL, &m.UsuarioID, &m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// GetByID obtiene un movimiento por ID; nil si no existe.
func (r *MovimientoRepo) GetByID(ctx context.Context, id string) (*entity.MovimientoInventario, error) {
	query := `SELECT ` + movimientoColumns + ` FROM movimientos_inventario WHERE id = $1`
	m, err := scanMovimiento(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movimiento: %w", err)
	}
	return m, nil
}

// List lista movimientos según filtro, los más recientes primero.
func (r *MovimientoRepo) List(ctx context.Context, filtro repository.MovimientoFiltro, limit, offset int) ([]*entity.MovimientoInventario, error) {
	query := `SELECT ` + movimientoColumns + ` FROM movimientos_inventario WHERE 1=1`
	args := []any{}
	pos := 1
	if filtro.ProductoID != "" {
		query += fmt.Sprintf(" AND producto_id = $%d", pos)
		args = append(args, filtro.ProductoID)
		pos++
	}
	if filtro.AlmacenID != "" {
		query += fmt.Sprintf(" AND almacen_id = $%d", pos)
		args = append(args, filtro.AlmacenID)
		pos++
	}
	if filtro.Tipo != "" {
		query += fmt.Sprintf(" AND tipo = $%d", pos)
		args = append(args, filtro.Tipo)
		pos++
	}
	if filtro.Desde != nil {
		query += fmt.Sprintf(" AND created_at >= $%d", pos)
		args = append(args, *filtro.Desde)
		pos++
	}
	if filtro.Hasta != nil {
		query += fmt.Sprintf(" AND created_at <= $%d", pos)
		args = append(args, *filtro.Hasta)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movimientos: %w", err)
	}
	defer rows.Close()

	var list []*entity.MovimientoInventario
	for rows.Next() {
		m, err := scanMovimiento(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movimiento: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}
