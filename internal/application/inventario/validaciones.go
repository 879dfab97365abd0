package inventario

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tallerpro/taller-inventario/internal/domain"
	"github.com/tallerpro/taller-inventario/internal/domain/entity"
)

// validarCantidad rechaza cantidades no positivas antes de tocar la BD.
func validarCantidad(cantidad decimal.Decimal, campo string) error {
	if cantidad.LessThanOrEqual(decimal.Zero) {
		return domain.Validation("%s debe ser mayor que cero", campo)
	}
	return nil
}

// validarProducto verifica que el producto exista y esté activo.
func validarProducto(ctx context.Context, tx TxRepos, productoID string) (*entity.Producto, error) {
	if productoID == "" {
		return nil, domain.Validation("producto_id es obligatorio")
	}
	p, err := tx.Productos.GetByID(ctx, productoID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrProductoNoEncontrado
	}
	if !p.Activo {
		return nil, domain.ErrProductoInactivo
	}
	return p, nil
}

// validarAlmacen verifica que el almacén exista y esté activo.
func validarAlmacen(ctx context.Context, tx TxRepos, almacenID string) (*entity.Almacen, error) {
	if almacenID == "" {
		return nil, domain.Validation("almacen_id es obligatorio")
	}
	a, err := tx.Almacenes.GetByID(ctx, almacenID)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, domain.ErrAlmacenNoEncontrado
	}
	if !a.Activo {
		return nil, domain.ErrAlmacenInactivo
	}
	return a, nil
}

// validarUbicacion verifica que, si se indica ubicación, pertenezca al almacén
// y esté activa. Ubicación nil es válida (inventario a nivel de almacén).
func validarUbicacion(ctx context.Context, tx TxRepos, almacenID string, ubicacionID *string) error {
	if ubicacionID == nil || *ubicacionID == "" {
		return nil
	}
	u, err := tx.Almacenes.GetUbicacion(ctx, almacenID, *ubicacionID)
	if err != nil {
		return err
	}
	if u == nil || u.AlmacenID != almacenID || !u.Activa {
		return domain.ErrUbicacionInvalida
	}
	return nil
}

// obtenerOCrearInventario devuelve la fila de inventario bloqueada para update,
// creándola en ceros si no existe (creación perezosa del primer ingreso o
// recepción de transferencia).
func obtenerOCrearInventario(ctx context.Context, tx TxRepos, productoID, almacenID string, ubicacionID *string) (*entity.InventarioProducto, bool, error) {
	inv, err := tx.Inventarios.GetForUpdate(ctx, productoID, almacenID, ubicacionID)
	if err != nil {
		return nil, false, err
	}
	if inv != nil {
		return inv, false, nil
	}
	now := time.Now()
	inv = &entity.InventarioProducto{
		ID:                uuid.New().String(),
		ProductoID:        productoID,
		AlmacenID:         almacenID,
		UbicacionID:       ubicacionID,
		StockDisponible:   decimal.Zero,
		StockComprometido: decimal.Zero,
		StockMinimo:       decimal.Zero,
		StockMaximo:       decimal.Zero,
		CostoPromedio:     decimal.Zero,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := tx.Inventarios.Create(ctx, inv); err != nil {
		return nil, false, err
	}
	return inv, true, nil
}

// registrarAuditoria escribe la entrada de auditoría de la operación, dentro
// de la misma transacción.
func registrarAuditoria(ctx context.Context, tx TxRepos, accion, entidad, entidadID, usuarioID string, detalle any) error {
	raw, err := json.Marshal(detalle)
	if err != nil {
		return fmt.Errorf("serializar detalle de auditoría: %w", err)
	}
	return tx.Auditoria.Create(ctx, &entity.RegistroAuditoria{
		ID:        uuid.New().String(),
		Accion:    accion,
		Entidad:   entidad,
		EntidadID: entidadID,
		UsuarioID: usuarioID,
		Detalle:   raw,
		CreatedAt: time.Now(),
	})
}
