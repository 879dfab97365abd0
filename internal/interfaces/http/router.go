package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tallerpro/taller-inventario/internal/application/inventario"
)

// Roles conocidos por el taller. La gestión de usuarios vive fuera de este
// servicio; aquí solo se autoriza por el rol del token.
const (
	RolAdmin     = "admin"
	RolBodeguero = "bodeguero"
	RolMecanico  = "mecanico"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Movimientos    *inventario.MovimientosUseCase
	Transferencias *inventario.TransferenciasUseCase
	Reservas       *inventario.ReservasUseCase
	Consultas      *inventario.ConsultasUseCase
	JWTSecret      string
}

// Router registra las rutas de la API. Todo el inventario requiere Bearer
// Token; las operaciones que mutan stock exigen además rol de bodega.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")
	inv := api.Group("/inventario", AuthMiddleware(deps.JWTSecret))

	invHandler := NewInventarioHandler(deps.Movimientos, deps.Consultas)
	mutador := RequireRol(RolAdmin, RolBodeguero)

	inv.Post("/ingresos", mutador, invHandler.RegistrarIngreso)
	inv.Post("/salidas", mutador, invHandler.RegistrarSalida)
	inv.Post("/ajustes", mutador, invHandler.RegistrarAjuste)
	inv.Get("/movimientos", invHandler.ListarMovimientos)
	inv.Get("/stock", invHandler.ConsultarStock)

	transHandler := NewTransferenciasHandler(deps.Transferencias)
	trans := inv.Group("/transferencias", mutador)
	trans.Post("/", transHandler.Crear)
	trans.Post("/:id/confirmar", transHandler.Confirmar)
	trans.Post("/:id/anular", transHandler.Anular)

	resHandler := NewReservasHandler(deps.Reservas)
	reservas := inv.Group("/reservas")
	reservas.Post("/", resHandler.Reservar)
	reservas.Post("/liberar-caducadas", RequireRol(RolAdmin), resHandler.LiberarCaducadas)
	reservas.Post("/:id/confirmar", resHandler.Confirmar)
	reservas.Post("/:id/liberar", resHandler.Liberar)
	reservas.Post("/:id/cancelar", resHandler.Cancelar)
}
