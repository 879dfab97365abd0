package entity

import (
	"encoding/json"
	"time"
)

// RegistroAuditoria deja constancia de cada operación mutadora del inventario
// (quién, qué entidad, con qué detalle). Se escribe dentro de la misma
// transacción que la operación auditada.
type RegistroAuditoria struct {
	ID        string
	Accion    string // INGRESO, SALIDA, AJUSTE, TRANSFERENCIA_CREADA, RESERVA_LIBERADA...
	Entidad   string // movimiento_inventario, transferencia, reserva_inventario
	EntidadID string
	UsuarioID string
	Detalle   json.RawMessage
	CreatedAt time.Time
}
