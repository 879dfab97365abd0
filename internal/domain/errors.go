package domain

import "fmt"

// Error es el error de dominio del motor de inventario. Transporta el código
// estable que los handlers HTTP traducen a respuesta ({code, message}) y el
// status HTTP sugerido. Se detecta con errors.As(*Error) o se compara por Code.
type Error struct {
	Code       string
	StatusCode int
	Message    string
}

func (e *Error) Error() string { return e.Message }

// Is permite comparar contra los centinelas por Code (errors.Is).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

// NewError construye un error de dominio con mensaje formateado.
func NewError(code string, statusCode int, format string, args ...any) *Error {
	return &Error{Code: code, StatusCode: statusCode, Message: fmt.Sprintf(format, args...)}
}

// Validation construye un error de validación genérico (400).
func Validation(format string, args ...any) *Error {
	return NewError("VALIDACION", 400, format, args...)
}

// Errores de dominio del motor de inventario.
var (
	ErrProductoNoEncontrado      = &Error{Code: "PRODUCTO_NO_ENCONTRADO", StatusCode: 404, Message: "producto no encontrado"}
	ErrProductoInactivo          = &Error{Code: "PRODUCTO_INACTIVO", StatusCode: 400, Message: "el producto está inactivo"}
	ErrAlmacenNoEncontrado       = &Error{Code: "ALMACEN_NO_ENCONTRADO", StatusCode: 404, Message: "almacén no encontrado"}
	ErrAlmacenInactivo           = &Error{Code: "ALMACEN_INACTIVO", StatusCode: 400, Message: "el almacén está inactivo"}
	ErrUbicacionInvalida         = &Error{Code: "UBICACION_INVALIDA", StatusCode: 400, Message: "la ubicación no pertenece al almacén o está inactiva"}
	ErrInventarioNoEncontrado    = &Error{Code: "INVENTARIO_NO_ENCONTRADO", StatusCode: 404, Message: "fila de inventario no encontrada"}
	ErrMovimientoNoEncontrado    = &Error{Code: "MOVIMIENTO_NO_ENCONTRADO", StatusCode: 404, Message: "movimiento de inventario no encontrado"}
	ErrStockInsuficiente         = &Error{Code: "STOCK_INSUFICIENTE", StatusCode: 409, Message: "stock disponible insuficiente"}
	ErrStockOrigenInsuficiente   = &Error{Code: "STOCK_ORIGEN_INSUFICIENTE", StatusCode: 409, Message: "stock insuficiente en el almacén de origen"}
	ErrStockComprometidoInvalido = &Error{Code: "STOCK_COMPROMETIDO_INVALIDO", StatusCode: 409, Message: "el stock comprometido quedaría negativo"}
	ErrReservaNoEncontrada       = &Error{Code: "RESERVA_NO_ENCONTRADA", StatusCode: 404, Message: "reserva no encontrada"}
	ErrReservaNoPendiente        = &Error{Code: "RESERVA_NO_PENDIENTE", StatusCode: 409, Message: "la reserva ya no está pendiente"}
	ErrTransferenciaNoEncontrada = &Error{Code: "TRANSFERENCIA_NO_ENCONTRADA", StatusCode: 404, Message: "transferencia no encontrada"}
	ErrTransferenciaCompletada   = &Error{Code: "TRANSFERENCIA_COMPLETADA", StatusCode: 409, Message: "la transferencia ya fue completada"}
	ErrTransferenciaAnulada      = &Error{Code: "TRANSFERENCIA_ANULADA", StatusCode: 409, Message: "la transferencia fue anulada"}
)
