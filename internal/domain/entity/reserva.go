package entity

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una reserva de stock. PENDIENTE es el inicial; los otros tres
// son terminales: una reserva no se reabre nunca.
const (
	ReservaPendiente  = "PENDIENTE"
	ReservaConfirmada = "CONFIRMADA"
	ReservaLiberada   = "LIBERADA"
	ReservaCancelada  = "CANCELADA"
)

// ReservaInventario compromete una cantidad del stock disponible a favor de
// una transacción futura sin consumirla. Las reservas terminales se conservan
// como historial; nunca se borran.
type ReservaInventario struct {
	ID                   string
	InventarioID         string
	Cantidad             decimal.Decimal
	Estado               string
	Motivo               string
	Metadata             json.RawMessage
	TransaccionID        *string
	DetalleTransaccionID *string
	CreadaPor            string
	ResueltaPor          *string
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// EsTerminal indica si la reserva ya no admite transiciones.
func (r *ReservaInventario) EsTerminal() bool {
	return r.Estado != ReservaPendiente
}
