package inventario

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tallerpro/taller-inventario/internal/domain"
	"github.com/tallerpro/taller-inventario/internal/domain/entity"
)

// TransferenciasUseCase orquesta los traslados en dos fases entre almacenes.
// El stock sale del origen al crear la transferencia (no al confirmar): así
// dos transferencias concurrentes no pueden asignarse el mismo stock en
// tránsito. El destino solo materializa stock al confirmar la recepción.
type TransferenciasUseCase struct {
	txRunner TxRunner
}

// NewTransferenciasUseCase construye el caso de uso.
func NewTransferenciasUseCase(txRunner TxRunner) *TransferenciasUseCase {
	return &TransferenciasUseCase{txRunner: txRunner}
}

// TransferenciaInput entrada para CrearTransferencia.
type TransferenciaInput struct {
	ProductoID       string
	OrigenAlmacenID  string
	DestinoAlmacenID string
	UsuarioID        string
	Cantidad         decimal.Decimal
	Referencia       string
}

// CrearTransferencia descuenta el origen, crea los movimientos de envío y
// recepción enlazados y deja la transferencia en PENDIENTE_RECEPCION.
func (uc *TransferenciasUseCase) CrearTransferencia(ctx context.Context, in TransferenciaInput) (*entity.Transferencia, error) {
	if err := validarCantidad(in.Cantidad, "cantidad"); err != nil {
		return nil, err
	}
	if in.OrigenAlmacenID == in.DestinoAlmacenID {
		return nil, domain.Validation("el almacén de origen y destino deben ser distintos")
	}

	var trans *entity.Transferencia
	err := uc.txRunner.Run(ctx, func(tx TxRepos) error {
		if _, err := validarProducto(ctx, tx, in.ProductoID); err != nil {
			return err
		}
		if _, err := validarAlmacen(ctx, tx, in.OrigenAlmacenID); err != nil {
			return err
		}
		if _, err := validarAlmacen(ctx, tx, in.DestinoAlmacenID); err != nil {
			return err
		}

		origen, err := tx.Inventarios.GetForUpdate(ctx, in.ProductoID, in.OrigenAlmacenID, nil)
		if err != nil {
			return err
		}
		if origen == nil || origen.StockDisponible.LessThan(in.Cantidad) {
			return domain.ErrStockOrigenInsuficiente
		}

		// El stock sale del origen ahora; el destino queda en cero hasta confirmar
		origen.StockDisponible = origen.StockDisponible.Sub(in.Cantidad)
		origen.UpdatedAt = time.Now()
		if err := tx.Inventarios.UpdateStocks(ctx, origen); err != nil {
			return err
		}

		destino, _, err := obtenerOCrearInventario(ctx, tx, in.ProductoID, in.DestinoAlmacenID, nil)
		if err != nil {
			return err
		}

		now := time.Now()
		costo := origen.CostoPromedio
		envio := &entity.MovimientoInventario{
			ID:            uuid.New().String(),
			InventarioID:  origen.ID,
			ProductoID:    in.ProductoID,
			AlmacenID:     in.OrigenAlmacenID,
			Tipo:          entity.MovimientoTransferenciaEnvio,
			Cantidad:      in.Cantidad,
			CostoUnitario: costo,
			Referencia:    in.Referencia,
			OrigenTipo:    "TRANSFERENCIA",
			UsuarioID:     in.UsuarioID,
			CreatedAt:     now,
		}
		recepcion := &entity.MovimientoInventario{
			ID:            uuid.New().String(),
			InventarioID:  destino.ID,
			ProductoID:    in.ProductoID,
			AlmacenID:     in.DestinoAlmacenID,
			Tipo:          entity.MovimientoTransferenciaRecepcion,
			Cantidad:      in.Cantidad,
			CostoUnitario: costo,
			Referencia:    in.Referencia,
			OrigenTipo:    "TRANSFERENCIA",
			UsuarioID:     in.UsuarioID,
			CreatedAt:     now,
		}
		if err := tx.Movimientos.Create(ctx, envio); err != nil {
			return err
		}
		if err := tx.Movimientos.Create(ctx, recepcion); err != nil {
			return err
		}

		trans = &entity.Transferencia{
			ID:                    uuid.New().String(),
			ProductoID:            in.ProductoID,
			OrigenAlmacenID:       in.OrigenAlmacenID,
			DestinoAlmacenID:      in.DestinoAlmacenID,
			MovimientoEnvioID:     envio.ID,
			MovimientoRecepcionID: recepcion.ID,
			Cantidad:              in.Cantidad,
			CostoUnitario:         costo,
			Estado:                entity.TransferenciaPendienteRecepcion,
			Referencia:            in.Referencia,
			CreadaPor:             in.UsuarioID,
			CreatedAt:             now,
			UpdatedAt:             now,
		}
		if err := tx.Transferencias.Create(ctx, trans); err != nil {
			return err
		}
		if err := registrarAuditoria(ctx, tx, "TRANSFERENCIA_CREADA", "transferencia", trans.ID, in.UsuarioID, map[string]any{
			"producto_id": in.ProductoID,
			"origen":      in.OrigenAlmacenID,
			"destino":     in.DestinoAlmacenID,
			"cantidad":    in.Cantidad.String(),
		}); err != nil {
			return err
		}
		return syncProductoStock(ctx, tx, in.ProductoID)
	})
	if err != nil {
		return nil, err
	}
	return trans, nil
}

// ConfirmarTransferencia materializa el stock en el destino y pasa la
// transferencia a COMPLETADA. Solo es válida desde PENDIENTE_RECEPCION.
func (uc *TransferenciasUseCase) ConfirmarTransferencia(ctx context.Context, transferenciaID, usuarioID string) (*entity.Transferencia, error) {
	var trans *entity.Transferencia
	err := uc.txRunner.Run(ctx, func(tx TxRepos) error {
		t, err := uc.cargarPendiente(ctx, tx, transferenciaID)
		if err != nil {
			return err
		}

		recepcion, err := tx.Movimientos.GetByID(ctx, t.MovimientoRecepcionID)
		if err != nil {
			return err
		}
		if recepcion == nil {
			return domain.ErrMovimientoNoEncontrado
		}
		inv, err := tx.Inventarios.GetByIDForUpdate(ctx, recepcion.InventarioID)
		if err != nil {
			return err
		}
		if inv == nil {
			return domain.ErrInventarioNoEncontrado
		}
		inv.StockDisponible = inv.StockDisponible.Add(recepcion.Cantidad)
		inv.UpdatedAt = time.Now()
		if err := tx.Inventarios.UpdateStocks(ctx, inv); err != nil {
			return err
		}

		t.Estado = entity.TransferenciaCompletada
		t.ResueltaPor = &usuarioID
		t.UpdatedAt = time.Now()
		if err := tx.Transferencias.UpdateEstado(ctx, t); err != nil {
			return err
		}
		if err := registrarAuditoria(ctx, tx, "TRANSFERENCIA_COMPLETADA", "transferencia", t.ID, usuarioID, map[string]any{
			"cantidad": t.Cantidad.String(),
			"destino":  t.DestinoAlmacenID,
		}); err != nil {
			return err
		}
		trans = t
		return syncProductoStock(ctx, tx, t.ProductoID)
	})
	if err != nil {
		return nil, err
	}
	return trans, nil
}

// AnularTransferencia devuelve el stock al origen y pasa la transferencia a
// ANULADA. Solo es válida desde PENDIENTE_RECEPCION.
func (uc *TransferenciasUseCase) AnularTransferencia(ctx context.Context, transferenciaID, usuarioID, motivo string) (*entity.Transferencia, error) {
	var trans *entity.Transferencia
	err := uc.txRunner.Run(ctx, func(tx TxRepos) error {
		t, err := uc.cargarPendiente(ctx, tx, transferenciaID)
		if err != nil {
			return err
		}

		envio, err := tx.Movimientos.GetByID(ctx, t.MovimientoEnvioID)
		if err != nil {
			return err
		}
		if envio == nil {
			return domain.ErrMovimientoNoEncontrado
		}
		inv, err := tx.Inventarios.GetByIDForUpdate(ctx, envio.InventarioID)
		if err != nil {
			return err
		}
		if inv == nil {
			return domain.ErrInventarioNoEncontrado
		}
		inv.StockDisponible = inv.StockDisponible.Add(envio.Cantidad)
		inv.UpdatedAt = time.Now()
		if err := tx.Inventarios.UpdateStocks(ctx, inv); err != nil {
			return err
		}

		t.Estado = entity.TransferenciaAnulada
		t.MotivoAnulacion = motivo
		t.ResueltaPor = &usuarioID
		t.UpdatedAt = time.Now()
		if err := tx.Transferencias.UpdateEstado(ctx, t); err != nil {
			return err
		}
		if err := registrarAuditoria(ctx, tx, "TRANSFERENCIA_ANULADA", "transferencia", t.ID, usuarioID, map[string]any{
			"cantidad": t.Cantidad.String(),
			"origen":   t.OrigenAlmacenID,
			"motivo":   motivo,
		}); err != nil {
			return err
		}
		trans = t
		return syncProductoStock(ctx, tx, t.ProductoID)
	})
	if err != nil {
		return nil, err
	}
	return trans, nil
}

// cargarPendiente bloquea la transferencia y verifica que siga pendiente.
func (uc *TransferenciasUseCase) cargarPendiente(ctx context.Context, tx TxRepos, transferenciaID string) (*entity.Transferencia, error) {
	t, err := tx.Transferencias.GetByIDForUpdate(ctx, transferenciaID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domain.ErrTransferenciaNoEncontrada
	}
	switch t.Estado {
	case entity.TransferenciaCompletada:
		return nil, domain.ErrTransferenciaCompletada
	case entity.TransferenciaAnulada:
		return nil, domain.ErrTransferenciaAnulada
	}
	return t, nil
}
