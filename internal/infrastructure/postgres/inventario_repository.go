package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/tallerpro/taller-inventario/internal/domain"
	"github.com/tallerpro/taller-inventario/internal/domain/entity"
	"github.com/tallerpro/taller-inventario/internal/domain/repository"
)

var _ repository.InventarioRepository = (*InventarioRepo)(nil)

// InventarioRepo implementación de InventarioRepository sobre PostgreSQL
// (usable con pool o tx). La clave lógica es (producto, almacén,
// ubicación-o-null); IS NOT DISTINCT FROM hace que NULL se compare como valor.
type InventarioRepo struct {
	q Querier
}

// NewInventarioRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventarioRepository(q Querier) *InventarioRepo {
	return &InventarioRepo{q: q}
}

const inventarioColumns = `id, producto_id, almacen_id, ubicacion_id,
	stock_disponible, stock_comprometido, stock_minimo, stock_maximo,
	costo_promedio, created_at, updated_at`

func scanInventario(row pgx.Row) (*entity.InventarioProducto, error) {
	var inv entity.InventarioProducto
	err := row.Scan(
		&inv.ID, &inv.ProductoID, &inv.AlmacenID, &inv.UbicacionID,
		&inv.StockDisponible, &inv.StockComprometido, &inv.StockMinimo, &inv.StockMaximo,
		&inv.CostoPromedio, &inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

// Get obtiene la fila de inventario del triple; nil si no existe.
func (r *InventarioRepo) Get(ctx context.Context, productoID, almacenID string, ubicacionID *string) (*entity.InventarioProducto, error) {
	query := `
		SELECT ` + inventarioColumns + `
		FROM inventario_productos
		WHERE producto_id = $1 AND almacen_id = $2 AND ubicacion_id IS NOT DISTINCT FROM $3`
	inv, err := scanInventario(r.q.QueryRow(ctx, query, productoID, almacenID, ubicacionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventario: %w", err)
	}
	return inv, nil
}

// GetForUpdate obtiene la fila del triple y la bloquea (SELECT FOR UPDATE).
func (r *InventarioRepo) GetForUpdate(ctx context.Context, productoID, almacenID string, ubicacionID *string) (*entity.InventarioProducto, error) {
	query := `
		SELECT ` + inventarioColumns + `
		FROM inventario_productos
		WHERE producto_id = $1 AND almacen_id = $2 AND ubicacion_id IS NOT DISTINCT FROM $3
		FOR UPDATE`
	inv, err := scanInventario(r.q.QueryRow(ctx, query, productoID, almacenID, ubicacionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventario for update: %w", err)
	}
	return inv, nil
}

// GetByID obtiene la fila por ID; nil si no existe.
func (r *InventarioRepo) GetByID(ctx context.Context, id string) (*entity.InventarioProducto, error) {
	query := `SELECT ` + inventarioColumns + ` FROM inventario_productos WHERE id = $1`
	inv, err := scanInventario(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventario por id: %w", err)
	}
	return inv, nil
}

// GetByIDForUpdate obtiene la fila por ID y la bloquea.
func (r *InventarioRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.InventarioProducto, error) {
	query := `SELECT ` + inventarioColumns + ` FROM inventario_productos WHERE id = $1 FOR UPDATE`
	inv, err := scanInventario(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventario por id for update: %w", err)
	}
	return inv, nil
}

// Create inserta la fila de inventario (creación perezosa del primer ingreso).
func (r *InventarioRepo) Create(ctx context.Context, inv *entity.InventarioProducto) error {
	query := `
		INSERT INTO inventario_productos (id, producto_id, almacen_id, ubicacion_id,
			stock_disponible, stock_comprometido, stock_minimo, stock_maximo,
			costo_promedio, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		inv.ID, inv.ProductoID, inv.AlmacenID, inv.UbicacionID,
		inv.StockDisponible, inv.StockComprometido, inv.StockMinimo, inv.StockMaximo,
		inv.CostoPromedio, inv.CreatedAt, inv.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			// Dos transacciones crearon el mismo triple a la vez; el caller
			// debe reintentar la operación completa.
			return domain.NewError("CONFLICTO_CONCURRENCIA", 409, "la fila de inventario fue creada por otra operación concurrente")
		}
		return fmt.Errorf("create inventario: %w", err)
	}
	return nil
}

// UpdateStocks persiste stock_disponible, stock_comprometido y costo_promedio.
// El CHECK de no-negatividad de la tabla respalda al invariante verificado en
// el caso de uso.
func (r *InventarioRepo) UpdateStocks(ctx context.Context, inv *entity.InventarioProducto) error {
	query := `
		UPDATE inventario_productos
		SET stock_disponible = $2, stock_comprometido = $3, costo_promedio = $4, updated_at = now()
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query, inv.ID, inv.StockDisponible, inv.StockComprometido, inv.CostoPromedio)
	if err != nil {
		return fmt.Errorf("update stocks inventario: %w", err)
	}
	return nil
}

// SumDisponible suma stock_disponible de todas las filas del producto.
func (r *InventarioRepo) SumDisponible(ctx context.Context, productoID string) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(stock_disponible), 0)
		FROM inventario_productos WHERE producto_id = $1`
	var total decimal.Decimal
	if err := r.q.QueryRow(ctx, query, productoID).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("sum disponible: %w", err)
	}
	return total, nil
}

// ListByProducto lista las filas de inventario de un producto.
func (r *InventarioRepo) ListByProducto(ctx context.Context, productoID string) ([]*entity.InventarioProducto, error) {
	query := `
		SELECT ` + inventarioColumns + `
		FROM inventario_productos WHERE producto_id = $1
		ORDER BY almacen_id, ubicacion_id NULLS FIRST`
	rows, err := r.q.Query(ctx, query, productoID)
	if err != nil {
		return nil, fmt.Errorf("list inventario por producto: %w", err)
	}
	defer rows.Close()
	return collectInventarios(rows)
}

// ListByAlmacen lista las filas de inventario de un almacén con paginación.
func (r *InventarioRepo) ListByAlmacen(ctx context.Context, almacenID string, limit, offset int) ([]*entity.InventarioProducto, error) {
	query := `
		SELECT ` + inventarioColumns + `
		FROM inventario_productos WHERE almacen_id = $1
		ORDER BY producto_id
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, almacenID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list inventario por almacen: %w", err)
	}
	defer rows.Close()
	return collectInventarios(rows)
}

func collectInventarios(rows pgx.Rows) ([]*entity.InventarioProducto, error) {
	var list []*entity.InventarioProducto
	for rows.Next() {
		inv, err := scanInventario(rows)
		if err != nil {
			return nil, fmt.Errorf("scan inventario: %w", err)
		}
		list = append(list, inv)
	}
	return list, rows.Err()
}
