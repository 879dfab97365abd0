package repository

import (
	"context"

	"github.com/tallerpro/taller-inventario/internal/domain/entity"
)

// AlmacenRepository define el puerto de consulta de almacenes y ubicaciones.
// Devuelve nil sin error si el registro no existe.
type AlmacenRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Almacen, error)
	GetUbicacion(ctx context.Context, almacenID, ubicacionID string) (*entity.Ubicacion, error)
}
