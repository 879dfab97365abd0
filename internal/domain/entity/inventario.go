package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventarioProducto es la fila de inventario por (producto, almacén,
// ubicación-o-null): la fuente de verdad del stock actual.
// Invariante: StockDisponible >= 0 y StockComprometido >= 0 en todo momento;
// se verifica antes del commit de cada operación mutadora.
// Se crea de forma perezosa en el primer ingreso o recepción de transferencia
// y nunca se borra físicamente.
type InventarioProducto struct {
	ID                string
	ProductoID        string
	AlmacenID         string
	UbicacionID       *string
	StockDisponible   decimal.Decimal
	StockComprometido decimal.Decimal
	StockMinimo       decimal.Decimal
	StockMaximo       decimal.Decimal
	CostoPromedio     decimal.Decimal // costo unitario promedio ponderado; se recalcula solo en ingresos
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
