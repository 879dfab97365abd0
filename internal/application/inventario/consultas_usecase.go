package inventario

import (
	"context"

	"github.com/tallerpro/taller-inventario/internal/domain"
	"github.com/tallerpro/taller-inventario/internal/domain/entity"
	"github.com/tallerpro/taller-inventario/internal/domain/repository"
)

// ConsultasUseCase expone las lecturas del inventario (movimientos y stock).
// Corre fuera de transacción, directamente sobre el pool.
type ConsultasUseCase struct {
	movimientoRepo repository.MovimientoRepository
	inventarioRepo repository.InventarioRepository
}

// NewConsultasUseCase construye el caso de uso.
func NewConsultasUseCase(movimientoRepo repository.MovimientoRepository, inventarioRepo repository.InventarioRepository) *ConsultasUseCase {
	return &ConsultasUseCase{movimientoRepo: movimientoRepo, inventarioRepo: inventarioRepo}
}

// ListarMovimientos lista movimientos con filtros y paginación.
func (uc *ConsultasUseCase) ListarMovimientos(ctx context.Context, filtro repository.MovimientoFiltro, limit, offset int) ([]*entity.MovimientoInventario, error) {
	return uc.movimientoRepo.List(ctx, filtro, limit, offset)
}

// ConsultarStock devuelve las filas de inventario de un producto o de un
// almacén. Exige al menos uno de los dos filtros.
func (uc *ConsultasUseCase) ConsultarStock(ctx context.Context, productoID, almacenID string, limit, offset int) ([]*entity.InventarioProducto, error) {
	switch {
	case productoID != "":
		return uc.inventarioRepo.ListByProducto(ctx, productoID)
	case almacenID != "":
		return uc.inventarioRepo.ListByAlmacen(ctx, almacenID, limit, offset)
	default:
		return nil, domain.Validation("indique producto_id o almacen_id")
	}
}
