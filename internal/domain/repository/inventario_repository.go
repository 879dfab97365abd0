package repository

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/tallerpro/taller-inventario/internal/domain/entity"
)

// InventarioRepository define el puerto sobre inventario_productos, la fila
// única por (producto, almacén, ubicación-o-null). Los métodos *ForUpdate
// bloquean la fila (SELECT FOR UPDATE) y deben usarse para toda mutación:
// el bloqueo de fila es lo que serializa a los mutadores concurrentes.
type InventarioRepository interface {
	Get(ctx context.Context, productoID, almacenID string, ubicacionID *string) (*entity.InventarioProducto, error)
	GetForUpdate(ctx context.Context, productoID, almacenID string, ubicacionID *string) (*entity.InventarioProducto, error)
	GetByID(ctx context.Context, id string) (*entity.InventarioProducto, error)
	GetByIDForUpdate(ctx context.Context, id string) (*entity.InventarioProducto, error)
	Create(ctx context.Context, inv *entity.InventarioProducto) error
	// UpdateStocks persiste stock_disponible, stock_comprometido y costo_promedio.
	UpdateStocks(ctx context.Context, inv *entity.InventarioProducto) error
	// SumDisponible suma stock_disponible de todas las filas del producto.
	SumDisponible(ctx context.Context, productoID string) (decimal.Decimal, error)
	ListByProducto(ctx context.Context, productoID string) ([]*entity.InventarioProducto, error)
	ListByAlmacen(ctx context.Context, almacenID string, limit, offset int) ([]*entity.InventarioProducto, error)
}
