package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de inventario.
const (
	MovimientoIngreso                = "INGRESO"
	MovimientoSalida                 = "SALIDA"
	MovimientoAjustePositivo         = "AJUSTE_POSITIVO"
	MovimientoAjusteNegativo         = "AJUSTE_NEGATIVO"
	MovimientoTransferenciaEnvio     = "TRANSFERENCIA_ENVIO"
	MovimientoTransferenciaRecepcion = "TRANSFERENCIA_RECEPCION"
)

// MovimientoInventario es el registro inmutable (append-only) que justifica
// cada cambio del inventario. Cantidad siempre es positiva; el signo lo da
// el tipo. CostoUnitario aplica a ingresos y a los dos tramos de una
// transferencia; en salidas es el costo promedio vigente al momento.
type MovimientoInventario struct {
	ID            string
	InventarioID  string
	ProductoID    string
	AlmacenID     string
	UbicacionID   *string
	Tipo          string
	Cantidad      decimal.Decimal
	CostoUnitario decimal.Decimal
	Referencia    string // factura, orden de trabajo, nota de ajuste
	OrigenTipo    string // COMPRA, ORDEN_TRABAJO, AJUSTE_MANUAL, TRANSFERENCIA...
	Observaciones string
	EvidenciaURL  string // soporte fotográfico de ajustes
	UsuarioID     string
	CreatedAt     time.Time
}
