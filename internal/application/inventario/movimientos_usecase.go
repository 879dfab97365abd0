package inventario

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tallerpro/taller-inventario/internal/domain"
	"github.com/tallerpro/taller-inventario/internal/domain/entity"
	domInv "github.com/tallerpro/taller-inventario/internal/domain/inventario"
)

// MovimientosUseCase registra ingresos, salidas y ajustes de inventario.
// Cada operación corre dentro de exactamente una transacción: lectura de la
// fila con bloqueo, verificación de invariantes, escritura del movimiento,
// auditoría y re-sincronización del stock del producto. Cualquier error de
// dominio aborta la transacción completa.
type MovimientosUseCase struct {
	txRunner TxRunner
}

// NewMovimientosUseCase construye el caso de uso.
func NewMovimientosUseCase(txRunner TxRunner) *MovimientosUseCase {
	return &MovimientosUseCase{txRunner: txRunner}
}

// IngresoInput entrada para RegistrarIngreso.
type IngresoInput struct {
	ProductoID    string
	AlmacenID     string
	UbicacionID   *string
	UsuarioID     string
	Cantidad      decimal.Decimal
	CostoUnitario decimal.Decimal
	Referencia    string
	Observaciones string
	OrigenTipo    string
}

// SalidaInput entrada para RegistrarSalida.
type SalidaInput struct {
	ProductoID    string
	AlmacenID     string
	UbicacionID   *string
	UsuarioID     string
	Cantidad      decimal.Decimal
	Referencia    string
	Observaciones string
	OrigenTipo    string
}

// AjusteInput entrada para RegistrarAjuste. Motivo es obligatorio.
type AjusteInput struct {
	ProductoID    string
	AlmacenID     string
	UbicacionID   *string
	UsuarioID     string
	Cantidad      decimal.Decimal
	EsPositivo    bool
	Motivo        string
	EvidenciaURL  string
	Referencia    string
	Observaciones string
}

// RegistrarIngreso suma stock disponible, recalcula el costo promedio
// ponderado y crea el movimiento INGRESO. La fila de inventario se crea en
// ceros si es el primer ingreso del triple (producto, almacén, ubicación).
func (uc *MovimientosUseCase) RegistrarIngreso(ctx context.Context, in IngresoInput) (*entity.MovimientoInventario, error) {
	if err := validarCantidad(in.Cantidad, "cantidad"); err != nil {
		return nil, err
	}
	if in.CostoUnitario.IsNegative() {
		return nil, domain.Validation("costo_unitario no puede ser negativo")
	}

	var mov *entity.MovimientoInventario
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

		inv, _, err := obtenerOCrearInventario(ctx, tx, in.ProductoID, in.AlmacenID, in.UbicacionID)
		if err != nil {
			return err
		}

		// El costo promedio solo cambia en ingresos
		inv.CostoPromedio = domInv.CostoPromedio(inv.StockDisponible, inv.CostoPromedio, in.Cantidad, in.CostoUnitario)
		inv.StockDisponible = inv.StockDisponible.Add(in.Cantidad)
		inv.UpdatedAt = time.Now()
		if err := tx.Inventarios.UpdateStocks(ctx, inv); err != nil {
			return err
		}

		mov = &entity.MovimientoInventario{
			ID:            uuid.New().String(),
			InventarioID:  inv.ID,
			ProductoID:    in.ProductoID,
			AlmacenID:     in.AlmacenID,
			UbicacionID:   in.UbicacionID,
			Tipo:          entity.MovimientoIngreso,
			Cantidad:      in.Cantidad,
			CostoUnitario: in.CostoUnitario,
			Referencia:    in.Referencia,
			OrigenTipo:    in.OrigenTipo,
			Observaciones: in.Observaciones,
			UsuarioID:     in.UsuarioID,
			CreatedAt:     time.Now(),
		}
		if err := tx.Movimientos.Create(ctx, mov); err != nil {
			return err
		}
		if err := registrarAuditoria(ctx, tx, "INGRESO", "movimiento_inventario", mov.ID, in.UsuarioID, map[string]any{
			"producto_id": in.ProductoID,
			"almacen_id":  in.AlmacenID,
			"cantidad":    in.Cantidad.String(),
			"costo":       in.CostoUnitario.String(),
			"referencia":  in.Referencia,
		}); err != nil {
			return err
		}
		return syncProductoStock(ctx, tx, in.ProductoID)
	})
	if err != nil {
		return nil, err
	}
	return mov, nil
}

// RegistrarSalida descuenta stock disponible y crea el movimiento SALIDA al
// costo promedio vigente. Falla con STOCK_INSUFICIENTE si la fila no existe
// o no alcanza, dejando el inventario intacto.
func (uc *MovimientosUseCase) RegistrarSalida(ctx context.Context, in SalidaInput) (*entity.MovimientoInventario, error) {
	if err := validarCantidad(in.Cantidad, "cantidad"); err != nil {
		return nil, err
	}

	var mov *entity.MovimientoInventario
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
		inv.UpdatedAt = time.Now()
		if err := tx.Inventarios.UpdateStocks(ctx, inv); err != nil {
			return err
		}

		mov = &entity.MovimientoInventario{
			ID:            uuid.New().String(),
			InventarioID:  inv.ID,
			ProductoID:    in.ProductoID,
			AlmacenID:     in.AlmacenID,
			UbicacionID:   in.UbicacionID,
			Tipo:          entity.MovimientoSalida,
			Cantidad:      in.Cantidad,
			CostoUnitario: inv.CostoPromedio,
			Referencia:    in.Referencia,
			OrigenTipo:    in.OrigenTipo,
			Observaciones: in.Observaciones,
			UsuarioID:     in.UsuarioID,
			CreatedAt:     time.Now(),
		}
		if err := tx.Movimientos.Create(ctx, mov); err != nil {
			return err
		}
		if err := registrarAuditoria(ctx, tx, "SALIDA", "movimiento_inventario", mov.ID, in.UsuarioID, map[string]any{
			"producto_id": in.ProductoID,
			"almacen_id":  in.AlmacenID,
			"cantidad":    in.Cantidad.String(),
			"referencia":  in.Referencia,
		}); err != nil {
			return err
		}
		return syncProductoStock(ctx, tx, in.ProductoID)
	})
	if err != nil {
		return nil, err
	}
	return mov, nil
}

// RegistrarAjuste corrige stock manualmente. El positivo suma sin tocar el
// costo promedio; el negativo exige stock suficiente. Siempre requiere motivo.
func (uc *MovimientosUseCase) RegistrarAjuste(ctx context.Context, in AjusteInput) (*entity.MovimientoInventario, error) {
	if err := validarCantidad(in.Cantidad, "cantidad"); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Motivo) == "" {
		return nil, domain.Validation("motivo es obligatorio para un ajuste")
	}

	var mov *entity.MovimientoInventario
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

		var inv *entity.InventarioProducto
		var tipo string
		if in.EsPositivo {
			var err error
			inv, _, err = obtenerOCrearInventario(ctx, tx, in.ProductoID, in.AlmacenID, in.UbicacionID)
			if err != nil {
				return err
			}
			tipo = entity.MovimientoAjustePositivo
			inv.StockDisponible = inv.StockDisponible.Add(in.Cantidad)
		} else {
			var err error
			inv, err = tx.Inventarios.GetForUpdate(ctx, in.ProductoID, in.AlmacenID, in.UbicacionID)
			if err != nil {
				return err
			}
			if inv == nil || inv.StockDisponible.LessThan(in.Cantidad) {
				return domain.ErrStockInsuficiente
			}
			tipo = entity.MovimientoAjusteNegativo
			inv.StockDisponible = inv.StockDisponible.Sub(in.Cantidad)
		}
		inv.UpdatedAt = time.Now()
		if err := tx.Inventarios.UpdateStocks(ctx, inv); err != nil {
			return err
		}

		mov = &entity.MovimientoInventario{
			ID:            uuid.New().String(),
			InventarioID:  inv.ID,
			ProductoID:    in.ProductoID,
			AlmacenID:     in.AlmacenID,
			UbicacionID:   in.UbicacionID,
			Tipo:          tipo,
			Cantidad:      in.Cantidad,
			CostoUnitario: inv.CostoPromedio,
			Referencia:    in.Referencia,
			OrigenTipo:    "AJUSTE_MANUAL",
			Observaciones: in.Observaciones,
			EvidenciaURL:  in.EvidenciaURL,
			UsuarioID:     in.UsuarioID,
			CreatedAt:     time.Now(),
		}
		if err := tx.Movimientos.Create(ctx, mov); err != nil {
			return err
		}
		if err := registrarAuditoria(ctx, tx, "AJUSTE", "movimiento_inventario", mov.ID, in.UsuarioID, map[string]any{
			"producto_id": in.ProductoID,
			"almacen_id":  in.AlmacenID,
			"cantidad":    in.Cantidad.String(),
			"es_positivo": in.EsPositivo,
			"motivo":      in.Motivo,
		}); err != nil {
			return err
		}
		return syncProductoStock(ctx, tx, in.ProductoID)
	})
	if err != nil {
		return nil, err
	}
	return mov, nil
}
