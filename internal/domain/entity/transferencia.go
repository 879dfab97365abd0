package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una transferencia entre almacenes.
// PENDIENTE_RECEPCION es el estado inicial; COMPLETADA y ANULADA son terminales.
const (
	TransferenciaPendienteRecepcion = "PENDIENTE_RECEPCION"
	TransferenciaCompletada         = "COMPLETADA"
	TransferenciaAnulada            = "ANULADA"
)

// Transferencia empareja exactamente un movimiento de envío con uno de
// recepción para un traslado en dos fases entre almacenes. El stock sale del
// origen al crearla (no al confirmar); el destino solo materializa stock al
// confirmar la recepción.
type Transferencia struct {
	ID                    string
	ProductoID            string
	OrigenAlmacenID       string
	DestinoAlmacenID      string
	MovimientoEnvioID     string
	MovimientoRecepcionID string
	Cantidad              decimal.Decimal
	CostoUnitario         decimal.Decimal
	Estado                string
	Referencia            string
	MotivoAnulacion       string
	CreadaPor             string
	ResueltaPor           *string // usuario que confirmó o anuló
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// EsTerminal indica si la transferencia ya no admite transiciones.
func (t *Transferencia) EsTerminal() bool {
	return t.Estado == TransferenciaCompletada || t.Estado == TransferenciaAnulada
}
