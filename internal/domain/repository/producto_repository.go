package repository

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/tallerpro/taller-inventario/internal/domain/entity"
)

// ProductoRepository define el puerto de lectura/actualización de productos
// que necesita el motor de inventario. Devuelve nil sin error si no existe.
type ProductoRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Producto, error)
	// UpdateStock escribe la caché desnormalizada productos.stock.
	// Solo la invoca el sincronizador, dentro de la transacción mutadora.
	UpdateStock(ctx context.Context, id string, stock decimal.Decimal) error
}
