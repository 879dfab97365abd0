package inventario

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tallerpro/taller-inventario/internal/domain"
	"github.com/tallerpro/taller-inventario/internal/domain/entity"
	"github.com/tallerpro/taller-inventario/internal/domain/repository"
	"github.com/tallerpro/taller-inventario/pkg/logger"
)

// Límites duros del barrido de reservas caducadas.
const (
	TTLHorasMaximo   = 720 // 30 días
	LimiteBarridoMax = 500
)

// ReservasConfig valores por defecto del barrido, leídos del entorno
// (INVENTARIO_RESERVA_TTL_HOURS, INVENTARIO_RESERVA_RELEASE_LIMIT).
type ReservasConfig struct {
	TTLHoras      int
	LimiteBarrido int
}

// ReservasUseCase compromete stock disponible a favor de una transacción
// futura sin consumirlo. Máquina de estados: PENDIENTE -> CONFIRMADA |
// LIBERADA | CANCELADA; los tres destinos son terminales.
type ReservasUseCase struct {
	txRunner    TxRunner
	reservaRepo repository.ReservaRepository // lecturas fuera de transacción (barrido)
	cfg         ReservasConfig
	log         *logger.Logger
}

// NewReservasUseCase construye el caso de uso.
func NewReservasUseCase(txRunner TxRunner, reservaRepo repository.ReservaRepository, cfg ReservasConfig, log *logger.Logger) *ReservasUseCase {
	if cfg.TTLHoras <= 0 || cfg.TTLHoras > TTLHorasMaximo {
		cfg.TTLHoras = 48
	}
	if cfg.LimiteBarrido <= 0 || cfg.LimiteBarrido > LimiteBarridoMax {
		cfg.LimiteBarrido = 100
	}
	return &ReservasUseCase{txRunner: txRunner, reservaRepo: reservaRepo, cfg: cfg, log: log}
}

// ReservaInput entrada para ReservarStock.
type ReservaInput struct {
	ProductoID           string
	AlmacenID            string
	UbicacionID          *string
	UsuarioID            string
	Cantidad             decimal.Decimal
	TransaccionID        *string
	DetalleTransaccionID *string
	Motivo               string
	Metadata             json.RawMessage
}

// ReservarStock mueve la cantidad de disponible a comprometido y crea la
// reserva en PENDIENTE. Falla con STOCK_INSUFICIENTE si no alcanza.
func (uc *ReservasUseCase) ReservarStock(ctx context.Context, in ReservaInput) (*entity.ReservaInventario, error) {
	if err := validarCantidad(in.Cantidad, "cantidad"); err != nil {
		return nil, err
	}

	var reserva *entity.ReservaInventario
	err := uc.txRunner.Run(ctx, func(tx TxRepos) error {
		if _, err := validarProducto(ctx, tx, in.ProductoID); err != nil {
			return err
		}
		if _, err := validarAlmacen(ctx, tx, in.AlmacenID); err != nil {
			return err
		}
		if err := validarUbicacion(ctx, tx, in.AlmacenID, in.UbicacionID); err != nil {
			return err
		}

		inv, err := tx.Inventarios.GetForUpdate(ctx, in.ProductoID, in.AlmacenID, in.UbicacionID)
		if err != nil {
			return err
		}
		if inv == nil || inv.StockDisponible.LessThan(in.Cantidad) {
			return domain.ErrStockInsuficiente
		}

		inv.StockDisponible = inv.StockDisponible.Sub(in.Cantidad)
		inv.StockComprometido = inv.StockComprometido.Add(in.Cantidad)
		inv.UpdatedAt = time.Now()
		if err := tx.Inventarios.UpdateStocks(ctx, inv); err != nil {
			return err
		}

		now := time.Now()
		reserva = &entity.ReservaInventario{
			ID:                   uuid.New().String(),
			InventarioID:         inv.ID,
			Cantidad:             in.Cantidad,
			Estado:               entity.ReservaPendiente,
			Motivo:               in.Motivo,
			Metadata:             in.Metadata,
			TransaccionID:        in.TransaccionID,
			DetalleTransaccionID: in.DetalleTransaccionID,
			CreadaPor:            in.UsuarioID,
			CreatedAt:            now,
			UpdatedAt:            now,
		}
		if err := tx.Reservas.Create(ctx, reserva); err != nil {
			return err
		}
		if err := registrarAuditoria(ctx, tx, "RESERVA_CREADA", "reserva_inventario", reserva.ID, in.UsuarioID, map[string]any{
			"producto_id": in.ProductoID,
			"almacen_id":  in.AlmacenID,
			"cantidad":    in.Cantidad.String(),
			"motivo":      in.Motivo,
		}); err != nil {
			return err
		}
		return syncProductoStock(ctx, tx, in.ProductoID)
	})
	if err != nil {
		return nil, err
	}
	return reserva, nil
}

// TransicionInput entrada común a confirmar/liberar/cancelar.
type TransicionInput struct {
	ReservaID string
	UsuarioID string
	Motivo    string
	Metadata  json.RawMessage
}

// ConfirmarReserva saca la cantidad del pool comprometido: el stock se
// consume fuera del motor y deja de estar reservado. Disponible no cambia.
func (uc *ReservasUseCase) ConfirmarReserva(ctx context.Context, in TransicionInput) (*entity.ReservaInventario, error) {
	return uc.cambiarEstado(ctx, in, entity.ReservaConfirmada)
}

// LiberarReserva devuelve la cantidad al pool disponible.
func (uc *ReservasUseCase) LiberarReserva(ctx context.Context, in TransicionInput) (*entity.ReservaInventario, error) {
	return uc.cambiarEstado(ctx, in, entity.ReservaLiberada)
}

// CancelarReserva devuelve la cantidad al pool disponible.
func (uc *ReservasUseCase) CancelarReserva(ctx context.Context, in TransicionInput) (*entity.ReservaInventario, error) {
	return uc.cambiarEstado(ctx, in, entity.ReservaCancelada)
}

// cambiarEstado aplica la transición compartida. Solo se admite desde
// PENDIENTE; si el comprometido resultante quedara negativo se aborta con
// STOCK_COMPROMETIDO_INVALIDO: es un guardián de consistencia, no se recorta
// en silencio.
func (uc *ReservasUseCase) cambiarEstado(ctx context.Context, in TransicionInput, destino string) (*entity.ReservaInventario, error) {
	var reserva *entity.ReservaInventario
	err := uc.txRunner.Run(ctx, func(tx TxRepos) error {
		r, err := tx.Reservas.GetByIDForUpdate(ctx, in.ReservaID)
		if err != nil {
			return err
		}
		if r == nil {
			return domain.ErrReservaNoEncontrada
		}
		if r.Estado != entity.ReservaPendiente {
			return domain.ErrReservaNoPendiente
		}

		inv, err := tx.Inventarios.GetByIDForUpdate(ctx, r.InventarioID)
		if err != nil {
			return err
		}
		if inv == nil {
			// Referencia rota: la reserva apunta a una fila que ya no existe
			return domain.ErrInventarioNoEncontrado
		}

		inv.StockComprometido = inv.StockComprometido.Sub(r.Cantidad)
		if destino == entity.ReservaLiberada || destino == entity.ReservaCancelada {
			inv.StockDisponible = inv.StockDisponible.Add(r.Cantidad)
		}
		if inv.StockComprometido.IsNegative() {
			return domain.ErrStockComprometidoInvalido
		}
		inv.UpdatedAt = time.Now()
		if err := tx.Inventarios.UpdateStocks(ctx, inv); err != nil {
			return err
		}

		r.Estado = destino
		if in.Motivo != "" {
			r.Motivo = in.Motivo
		}
		if len(in.Metadata) > 0 {
			r.Metadata = in.Metadata
		}
		r.ResueltaPor = &in.UsuarioID
		r.UpdatedAt = time.Now()
		if err := tx.Reservas.Update(ctx, r); err != nil {
			return err
		}
		if err := registrarAuditoria(ctx, tx, "RESERVA_"+destino, "reserva_inventario", r.ID, in.UsuarioID, map[string]any{
			"cantidad": r.Cantidad.String(),
			"motivo":   r.Motivo,
		}); err != nil {
			return err
		}
		reserva = r
		return syncProductoStock(ctx, tx, inv.ProductoID)
	})
	if err != nil {
		return nil, err
	}
	return reserva, nil
}

// LiberarCaducadasInput parámetros del barrido; los ceros toman los valores
// por defecto de la configuración.
type LiberarCaducadasInput struct {
	Limit       int
	TTLHoras    int
	Motivo      string
	TriggeredBy string
	Metadata    json.RawMessage
	DryRun      bool
}

// ResultadoBarrido resume el barrido de reservas caducadas.
type ResultadoBarrido struct {
	Encontradas int
	Liberadas   int
	Errores     []ErrorBarrido
	Corte       time.Time
	DryRun      bool
}

// ErrorBarrido identifica una reserva que no pudo liberarse.
type ErrorBarrido struct {
	ReservaID string
	Error     string
}

// LiberarReservasCaducadas libera las reservas PENDIENTE anteriores al corte
// (ahora - ttl), las más antiguas primero. Cada liberación corre en su propia
// transacción: un fallo aislado no revierte las ya confirmadas ni detiene el
// lote. Es la única operación del motor que no nace de una petición; la
// invoca un scheduler externo o el ticker del proceso.
func (uc *ReservasUseCase) LiberarReservasCaducadas(ctx context.Context, in LiberarCaducadasInput) (*ResultadoBarrido, error) {
	ttl := in.TTLHoras
	if ttl <= 0 {
		ttl = uc.cfg.TTLHoras
	}
	if ttl > TTLHorasMaximo {
		ttl = TTLHorasMaximo
	}
	limit := in.Limit
	if limit <= 0 {
		limit = uc.cfg.LimiteBarrido
	}
	if limit > LimiteBarridoMax {
		limit = LimiteBarridoMax
	}
	motivo := in.Motivo
	if motivo == "" {
		motivo = "RESERVA_CADUCADA"
	}
	usuario := in.TriggeredBy
	if usuario == "" {
		usuario = "sistema"
	}

	corte := time.Now().Add(-time.Duration(ttl) * time.Hour)
	pendientes, err := uc.reservaRepo.ListPendientesAnteriores(ctx, corte, limit)
	if err != nil {
		return nil, err
	}

	resultado := &ResultadoBarrido{
		Encontradas: len(pendientes),
		Errores:     []ErrorBarrido{},
		Corte:       corte,
		DryRun:      in.DryRun,
	}
	if in.DryRun {
		return resultado, nil
	}

	for _, r := range pendientes {
		_, err := uc.LiberarReserva(ctx, TransicionInput{
			ReservaID: r.ID,
			UsuarioID: usuario,
			Motivo:    motivo,
			Metadata:  in.Metadata,
		})
		if err != nil {
			resultado.Errores = append(resultado.Errores, ErrorBarrido{ReservaID: r.ID, Error: err.Error()})
			if uc.log != nil {
				uc.log.Warn().Err(err).Str("reserva_id", r.ID).Msg("no se pudo liberar reserva caducada")
			}
			continue
		}
		resultado.Liberadas++
	}

	if uc.log != nil && resultado.Encontradas > 0 {
		uc.log.Info().
			Int("encontradas", resultado.Encontradas).
			Int("liberadas", resultado.Liberadas).
			Int("errores", len(resultado.Errores)).
			Time("corte", corte).
			Msg("barrido de reservas caducadas")
	}
	return resultado, nil
}
