package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tallerpro/taller-inventario/internal/application/inventario"
)

var _ inventario.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con los repositorios atados a la tx
// y hace Commit o Rollback. El nivel de aislamiento por defecto (read
// committed) basta: todos los mutadores bloquean la fila de inventario con
// SELECT FOR UPDATE antes de leerla.
func (r *TxRunner) Run(ctx context.Context, fn func(tx inventario.TxRepos) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	repos := inventario.TxRepos{
		Productos:      NewProductoRepository(tx),
		Almacenes:      NewAlmacenRepository(tx),
		Inventarios:    NewInventarioRepository(tx),
		Movimientos:    NewMovimientoRepository(tx),
		Transferencias: NewTransferenciaRepository(tx),
		Reservas:       NewReservaRepository(tx),
		Auditoria:      NewAuditoriaRepository(tx),
	}

	if err := fn(repos); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
