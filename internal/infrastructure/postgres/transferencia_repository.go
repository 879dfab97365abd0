package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tallerpro/taller-inventario/internal/domain/entity"
	"github.com/tallerpro/taller-inventario/internal/domain/repository"
)

var _ repository.TransferenciaRepository = (*TransferenciaRepo)(nil)

// TransferenciaRepo implementación sobre PostgreSQL (usable con pool o tx).
type TransferenciaRepo struct {
	q Querier
}

// NewTransferenciaRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTransferenciaRepository(q Querier) *TransferenciaRepo {
	return &TransferenciaRepo{q: q}
}

const transferenciaColumns = `id, producto_id, origen_almacen_id, destino_almacen_id,
	movimiento_envio_id, movimiento_recepcion_id, cantidad, costo_unitario,
	estado, referencia, motivo_anulacion, creada_por, resuelta_por,
	created_at, updated_at`

// Create persiste la transferencia junto a sus dos movimientos enlazados
// (misma transacción del caller).
func (r *TransferenciaRepo) Create(ctx context.Context, t *entity.Transferencia) error {
	query := `
		INSERT INTO transferencias (` + transferenciaColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(ctx, query,
		t.ID, t.ProductoID, t.OrigenAlmacenID, t.DestinoAlmacenID,
		t.MovimientoEnvioID, t.MovimientoRecepcionID, t.Cantidad, t.CostoUnitario,
		t.Estado, t.Referencia, t.MotivoAnulacion, t.CreadaPor, t.ResueltaPor,
		t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create transferencia: %w", err)
	}
	return nil
}

func scanTransferencia(row pgx.Row) (*entity.Transferencia, error) {
	var t entity.Transferencia
	err := row.Scan(
		&t.ID, &t.ProductoID, &t.OrigenAlmacenID, &t.DestinoAlmacenID,
		&t.MovimientoEnvioID, &t.MovimientoRecepcionID, &t.Cantidad, &t.CostoUnitario,
		&t.Estado, &t.Referencia, &t.MotivoAnulacion, &t.CreadaPor, &t.ResueltaPor,
		&t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// GetByID obtiene una transferencia por ID; nil si no existe.
func (r *TransferenciaRepo) GetByID(ctx context.Context, id string) (*entity.Transferencia, error) {
	query := `SELECT ` + transferenciaColumns + ` FROM transferencias WHERE id = $1`
	t, err := scanTransferencia(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transferencia: %w", err)
	}
	return t, nil
}

// GetByIDForUpdate obtiene la transferencia y bloquea su fila.
func (r *TransferenciaRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.Transferencia, error) {
	query := `SELECT ` + transferenciaColumns + ` FROM transferencias WHERE id = $1 FOR UPDATE`
	t, err := scanTransferencia(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transferencia for update: %w", err)
	}
	return t, nil
}

// UpdateEstado persiste estado, motivo de anulación y quién resolvió.
func (r *TransferenciaRepo) UpdateEstado(ctx context.Context, t *entity.Transferencia) error {
	query := `
		UPDATE transferencias
		SET estado = $2, motivo_anulacion = $3, resuelta_por = $4, updated_at = now()
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query, t.ID, t.Estado, t.MotivoAnulacion, t.ResueltaPor)
	if err != nil {
		return fmt.Errorf("update estado transferencia: %w", err)
	}
	return nil
}
