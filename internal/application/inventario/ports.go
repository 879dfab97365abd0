package inventario

import (
	"context"

	"github.com/tallerpro/taller-inventario/internal/domain/repository"
)

// TxRepos agrupa los repositorios atados a una misma transacción de BD.
type TxRepos struct {
	Productos      repository.ProductoRepository
	Almacenes      repository.AlmacenRepository
	Inventarios    repository.InventarioRepository
	Movimientos    repository.MovimientoRepository
	Transferencias repository.TransferenciaRepository
	Reservas       repository.ReservaRepository
	Auditoria      repository.AuditoriaRepository
}

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Todo lo escrito dentro de fn se confirma
// junto o no se confirma nada: es la garantía de atomicidad del motor.
type TxRunner interface {
	Run(ctx context.Context, fn func(tx TxRepos) error) error
}
