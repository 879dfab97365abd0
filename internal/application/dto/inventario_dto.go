package dto

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tallerpro/taller-inventario/internal/domain/entity"
)

// Las cantidades y costos se tipan como decimal.Decimal: el unmarshal acepta
// tanto número JSON como string ("12.5") y nunca pasa por float64.

// IngresoRequest body para POST /api/inventario/ingresos.
type IngresoRequest struct {
	ProductoID    string          `json:"producto_id"`
	AlmacenID     string          `json:"almacen_id"`
	UbicacionID   *string         `json:"ubicacion_id,omitempty"`
	Cantidad      decimal.Decimal `json:"cantidad"`
	CostoUnitario decimal.Decimal `json:"costo_unitario"`
	Referencia    string          `json:"referencia,omitempty"`
	Observaciones string          `json:"observaciones,omitempty"`
	OrigenTipo    string          `json:"origen_tipo,omitempty"`
}

// SalidaRequest body para POST /api/inventario/salidas.
type SalidaRequest struct {
	ProductoID    string          `json:"producto_id"`
	AlmacenID     string          `json:"almacen_id"`
	UbicacionID   *string         `json:"ubicacion_id,omitempty"`
	Cantidad      decimal.Decimal `json:"cantidad"`
	Referencia    string          `json:"referencia,omitempty"`
	Observaciones string          `json:"observaciones,omitempty"`
	OrigenTipo    string          `json:"origen_tipo,omitempty"`
}

// AjusteRequest body para POST /api/inventario/ajustes.
type AjusteRequest struct {
	ProductoID    string          `json:"producto_id"`
	AlmacenID     string          `json:"almacen_id"`
	UbicacionID   *string         `json:"ubicacion_id,omitempty"`
	Cantidad      decimal.Decimal `json:"cantidad"`
	EsPositivo    bool            `json:"es_positivo"`
	Motivo        string          `json:"motivo"`
	EvidenciaURL  string          `json:"evidencia_url,omitempty"`
	Referencia    string          `json:"referencia,omitempty"`
	Observaciones string          `json:"observaciones,omitempty"`
}

// TransferenciaRequest body para POST /api/inventario/transferencias.
type TransferenciaRequest struct {
	ProductoID       string          `json:"producto_id"`
	OrigenAlmacenID  string          `json:"origen_almacen_id"`
	DestinoAlmacenID string          `json:"destino_almacen_id"`
	Cantidad         decimal.Decimal `json:"cantidad"`
	Referencia       string          `json:"referencia,omitempty"`
}

// AnularTransferenciaRequest body para POST /api/inventario/transferencias/:id/anular.
type AnularTransferenciaRequest struct {
	Motivo string `json:"motivo,omitempty"`
}

// ReservaRequest body para POST /api/inventario/reservas.
type ReservaRequest struct {
	ProductoID           string          `json:"producto_id"`
	AlmacenID            string          `json:"almacen_id"`
	UbicacionID          *string         `json:"ubicacion_id,omitempty"`
	Cantidad             decimal.Decimal `json:"cantidad"`
	TransaccionID        *string         `json:"transaccion_id,omitempty"`
	DetalleTransaccionID *string         `json:"detalle_transaccion_id,omitempty"`
	Motivo               string          `json:"motivo,omitempty"`
	Metadata             json.RawMessage `json:"metadata,omitempty"`
}

// TransicionReservaRequest body para confirmar/liberar/cancelar una reserva.
type TransicionReservaRequest struct {
	Motivo   string          `json:"motivo,omitempty"`
	Metadata json.RawMessage `json:"metadata,omitempty"`
}

// LiberarCaducadasRequest body para POST /api/inventario/reservas/liberar-caducadas.
type LiberarCaducadasRequest struct {
	Limit    int             `json:"limit,omitempty"`
	TTLHoras int             `json:"ttl_horas,omitempty"`
	Motivo   string          `json:"motivo,omitempty"`
	Metadata json.RawMessage `json:"metadata,omitempty"`
	DryRun   bool            `json:"dry_run,omitempty"`
}

// MovimientoResponse representación HTTP de un movimiento.
type MovimientoResponse struct {
	ID            string          `json:"id"`
	InventarioID  string          `json:"inventario_id"`
	ProductoID    string          `json:"producto_id"`
	AlmacenID     string          `json:"almacen_id"`
	UbicacionID   *string         `json:"ubicacion_id,omitempty"`
	Tipo          string          `json:"tipo"`
	Cantidad      decimal.Decimal `json:"cantidad"`
	CostoUnitario decimal.Decimal `json:"costo_unitario"`
	Referencia    string          `json:"referencia,omitempty"`
	OrigenTipo    string          `json:"origen_tipo,omitempty"`
	Observaciones string          `json:"observaciones,omitempty"`
	UsuarioID     string          `json:"usuario_id"`
	CreatedAt     time.Time       `json:"created_at"`
}

// NewMovimientoResponse mapea la entidad al DTO.
func NewMovimientoResponse(m *entity.MovimientoInventario) MovimientoResponse {
	return MovimientoResponse{
		ID:            m.ID,
		InventarioID:  m.InventarioID,
		ProductoID:    m.ProductoID,
		AlmacenID:     m.AlmacenID,
		UbicacionID:   m.UbicacionID,
		Tipo:          m.Tipo,
		Cantidad:      m.Cantidad,
		CostoUnitario: m.CostoUnitario,
		Referencia:    m.Referencia,
		OrigenTipo:    m.OrigenTipo,
		Observaciones: m.Observaciones,
		UsuarioID:     m.UsuarioID,
		CreatedAt:     m.CreatedAt,
	}
}

// TransferenciaResponse representación HTTP de una transferencia.
type TransferenciaResponse struct {
	ID                    string          `json:"id"`
	ProductoID            string          `json:"producto_id"`
	OrigenAlmacenID       string          `json:"origen_almacen_id"`
	DestinoAlmacenID      string          `json:"destino_almacen_id"`
	MovimientoEnvioID     string          `json:"movimiento_envio_id"`
	MovimientoRecepcionID string          `json:"movimiento_recepcion_id"`
	Cantidad              decimal.Decimal `json:"cantidad"`
	CostoUnitario         decimal.Decimal `json:"costo_unitario"`
	Estado                string          `json:"estado"`
	Referencia            string          `json:"referencia,omitempty"`
	MotivoAnulacion       string          `json:"motivo_anulacion,omitempty"`
	CreadaPor             string          `json:"creada_por"`
	ResueltaPor           *string         `json:"resuelta_por,omitempty"`
	CreatedAt             time.Time       `json:"created_at"`
	UpdatedAt             time.Time       `json:"updated_at"`
}

// NewTransferenciaResponse mapea la entidad al DTO.
func NewTransferenciaResponse(t *entity.Transferencia) TransferenciaResponse {
	return TransferenciaResponse{
		ID:                    t.ID,
		ProductoID:            t.ProductoID,
		OrigenAlmacenID:       t.OrigenAlmacenID,
		DestinoAlmacenID:      t.DestinoAlmacenID,
		MovimientoEnvioID:     t.MovimientoEnvioID,
		MovimientoRecepcionID: t.MovimientoRecepcionID,
		Cantidad:              t.Cantidad,
		CostoUnitario:         t.CostoUnitario,
		Estado:                t.Estado,
		Referencia:            t.Referencia,
		MotivoAnulacion:       t.MotivoAnulacion,
		CreadaPor:             t.CreadaPor,
		ResueltaPor:           t.ResueltaPor,
		CreatedAt:             t.CreatedAt,
		UpdatedAt:             t.UpdatedAt,
	}
}

// ReservaResponse representación HTTP de una reserva.
type ReservaResponse struct {
	ID                   string          `json:"id"`
	InventarioID         string          `json:"inventario_id"`
	Cantidad             decimal.Decimal `json:"cantidad"`
	Estado               string          `json:"estado"`
	Motivo               string          `json:"motivo,omitempty"`
	Metadata             json.RawMessage `json:"metadata,omitempty"`
	TransaccionID        *string         `json:"transaccion_id,omitempty"`
	DetalleTransaccionID *string         `json:"detalle_transaccion_id,omitempty"`
	CreadaPor            string          `json:"creada_por"`
	ResueltaPor          *string         `json:"resuelta_por,omitempty"`
	CreatedAt            time.Time       `json:"created_at"`
	UpdatedAt            time.Time       `json:"updated_at"`
}

// NewReservaResponse mapea la entidad al DTO.
func NewReservaResponse(r *entity.ReservaInventario) ReservaResponse {
	return ReservaResponse{
		ID:                   r.ID,
		InventarioID:         r.InventarioID,
		Cantidad:             r.Cantidad,
		Estado:               r.Estado,
		Motivo:               r.Motivo,
		Metadata:             r.Metadata,
		TransaccionID:        r.TransaccionID,
		DetalleTransaccionID: r.DetalleTransaccionID,
		CreadaPor:            r.CreadaPor,
		ResueltaPor:          r.ResueltaPor,
		CreatedAt:            r.CreatedAt,
		UpdatedAt:            r.UpdatedAt,
	}
}

// StockResponse fila de inventario para GET /api/inventario/stock.
type StockResponse struct {
	ID                string          `json:"id"`
	ProductoID        string          `json:"producto_id"`
	AlmacenID         string          `json:"almacen_id"`
	UbicacionID       *string         `json:"ubicacion_id,omitempty"`
	StockDisponible   decimal.Decimal `json:"stock_disponible"`
	StockComprometido decimal.Decimal `json:"stock_comprometido"`
	StockMinimo       decimal.Decimal `json:"stock_minimo"`
	StockMaximo       decimal.Decimal `json:"stock_maximo"`
	CostoPromedio     decimal.Decimal `json:"costo_promedio"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// NewStockResponse mapea la fila de inventario al DTO.
func NewStockResponse(inv *entity.InventarioProducto) StockResponse {
	return StockResponse{
		ID:                inv.ID,
		ProductoID:        inv.ProductoID,
		AlmacenID:         inv.AlmacenID,
		UbicacionID:       inv.UbicacionID,
		StockDisponible:   inv.StockDisponible,
		StockComprometido: inv.StockComprometido,
		StockMinimo:       inv.StockMinimo,
		StockMaximo:       inv.StockMaximo,
		CostoPromedio:     inv.CostoPromedio,
		UpdatedAt:         inv.UpdatedAt,
	}
}

// ReservaFallida identifica una reserva que el barrido no pudo liberar.
type ReservaFallida struct {
	ReservaID string `json:"reserva_id"`
	Error     string `json:"error"`
}

// LiberarCaducadasResponse resultado del barrido de reservas caducadas.
type LiberarCaducadasResponse struct {
	Encontradas int              `json:"encontradas"`
	Liberadas   int              `json:"liberadas"`
	Errores     []ReservaFallida `json:"errores"`
	Corte       time.Time        `json:"corte"`
	DryRun      bool             `json:"dry_run,omitempty"`
}
