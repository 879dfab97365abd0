package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/tallerpro/taller-inventario/internal/domain/entity"
	"github.com/tallerpro/taller-inventario/internal/domain/repository"
)

var _ repository.ReservaRepository = (*ReservaRepo)(nil)

// ReservaRepo implementación sobre PostgreSQL (usable con pool o tx).
type ReservaRepo struct {
	q Querier
}

// NewReservaRepository construye el adaptador. Pasar pool o tx (Querier).
func NewReservaRepository(q Querier) *ReservaRepo {
	return &ReservaRepo{q: q}
}

const reservaColumns = `id, inventario_id, cantidad, estado, motivo, metadata,
	transaccion_id, detalle_transaccion_id, creada_por, resuelta_por,
	created_at, updated_at`

// Create persiste una reserva nueva (estado PENDIENTE).
func (r *ReservaRepo) Create(ctx context.Context, res *entity.ReservaInventario) error {
	query := `
		INSERT INTO reservas_inventario (` + reservaColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		res.ID, res.InventarioID, res.Cantidad, res.Estado, res.Motivo, res.Metadata,
		res.TransaccionID, res.DetalleTransaccionID, res.CreadaPor, res.ResueltaPor,
		res.CreatedAt, res.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create reserva: %w", err)
	}
	return nil
}

func scanReserva(row pgx.Row) (*entity.ReservaInventario, error) {
	var res entity.ReservaInventario
	err := row.Scan(
		&res.ID, &res.InventarioID, &res.Cantidad, &res.Estado, &res.Motivo, &res.Metadata,
		&res.TransaccionID, &res.DetalleTransaccionID, &res.CreadaPor, &res.ResueltaPor,
		&res.CreatedAt, &res.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// GetByID obtiene una reserva por ID; nil si no existe.
func (r *ReservaRepo) GetByID(ctx context.Context, id string) (*entity.ReservaInventario, error) {
	query := `SELECT ` + reservaColumns + ` FROM reservas_inventario WHERE id = $1`
	res, err := scanReserva(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get reserva: %w", err)
	}
	return res, nil
}

// GetByIDForUpdate obtiene la reserva y bloquea su fila.
func (r *ReservaRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.ReservaInventario, error) {
	query := `SELECT ` + reservaColumns + ` FROM reservas_inventario WHERE id = $1 FOR UPDATE`
	res, err := scanReserva(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get reserva for update: %w", err)
	}
	return res, nil
}

// Update persiste estado, motivo, metadata y quién resolvió.
func (r *ReservaRepo) Update(ctx context.Context, res *entity.ReservaInventario) error {
	query := `
		UPDATE reservas_inventario
		SET estado = $2, motivo = $3, metadata = $4, resuelta_por = $5, updated_at = now()
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query, res.ID, res.Estado, res.Motivo, res.Metadata, res.ResueltaPor)
	if err != nil {
		return fmt.Errorf("update reserva: %w", err)
	}
	return nil
}

// ListPendientesAnteriores devuelve hasta limit reservas PENDIENTE creadas
// antes de corte, las más antiguas primero.
func (r *ReservaRepo) ListPendientesAnteriores(ctx context.Context, corte time.Time, limit int) ([]*entity.ReservaInventario, error) {
	query := `
		SELECT ` + reservaColumns + `
		FROM reservas_inventario
		WHERE estado = $1 AND created_at < $2
		ORDER BY created_at ASC
		LIMIT $3`
	rows, err := r.q.Query(ctx, query, entity.ReservaPendiente, corte, limit)
	if err != nil {
		return nil, fmt.Errorf("list reservas pendientes: %w", err)
	}
	defer rows.Close()

	var list []*entity.ReservaInventario
	for rows.Next() {
		res, err := scanReserva(rows)
		if err != nil {
			return nil, fmt.Errorf("scan reserva: %w", err)
		}
		list = append(list, res)
	}
	return list, rows.Err()
}
