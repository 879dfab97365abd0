package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Producto representa un producto o repuesto del taller.
// Stock es la caché desnormalizada: suma de stock_disponible de todas sus
// filas de inventario; la escribe el sincronizador al final de cada operación
// mutadora y nunca es autoritativa.
type Producto struct {
	ID          string
	SKU         string
	Nombre      string
	Descripcion string
	Activo      bool
	Stock       decimal.Decimal
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
