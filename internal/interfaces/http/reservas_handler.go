package http

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/tallerpro/taller-inventario/internal/application/dto"
	"github.com/tallerpro/taller-inventario/internal/application/inventario"
	"github.com/tallerpro/taller-inventario/internal/domain/entity"
)

// ReservasHandler maneja las peticiones HTTP de reservas de stock (protegido).
type ReservasHandler struct {
	uc *inventario.ReservasUseCase
}

// NewReservasHandler construye el handler.
func NewReservasHandler(uc *inventario.ReservasUseCase) *ReservasHandler {
	return &ReservasHandler{uc: uc}
}

// Reservar godoc
// @Summary      Reservar stock disponible
// @Description  Mueve la cantidad de disponible a comprometido y crea la reserva en PENDIENTE.
// @Tags         reservas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ReservaRequest  true  "producto_id, almacen_id, cantidad"
// @Success      201   {object}  dto.ReservaResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventario/reservas [post]
func (h *ReservasHandler) Reservar(c *fiber.Ctx) error {
	var in dto.ReservaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	r, err := h.uc.ReservarStock(c.Context(), inventario.ReservaInput{
		ProductoID:           in.ProductoID,
		AlmacenID:            in.AlmacenID,
		UbicacionID:          in.UbicacionID,
		UsuarioID:            GetUserID(c),
		Cantidad:             in.Cantidad,
		TransaccionID:        in.TransaccionID,
		DetalleTransaccionID: in.DetalleTransaccionID,
		Motivo:               in.Motivo,
		Metadata:             in.Metadata,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewReservaResponse(r))
}

// Confirmar godoc
// @Summary      Confirmar una reserva pendiente
// @Tags         reservas
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la reserva"
// @Success      200  {object}  dto.ReservaResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/inventario/reservas/{id}/confirmar [post]
func (h *ReservasHandler) Confirmar(c *fiber.Ctx) error {
	return h.transicion(c, h.uc.ConfirmarReserva)
}

// Liberar godoc
// @Summary      Liberar una reserva pendiente
// @Tags         reservas
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la reserva"
// @Success      200  {object}  dto.ReservaResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/inventario/reservas/{id}/liberar [post]
func (h *ReservasHandler) Liberar(c *fiber.Ctx) error {
	return h.transicion(c, h.uc.LiberarReserva)
}

// Cancelar godoc
// @Summary      Cancelar una reserva pendiente
// @Tags         reservas
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la reserva"
// @Success      200  {object}  dto.ReservaResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/inventario/reservas/{id}/cancelar [post]
func (h *ReservasHandler) Cancelar(c *fiber.Ctx) error {
	return h.transicion(c, h.uc.CancelarReserva)
}

// transicion factoriza el parseo común de confirmar/liberar/cancelar.
func (h *ReservasHandler) transicion(c *fiber.Ctx, fn func(ctx context.Context, in inventario.TransicionInput) (*entity.ReservaInventario, error)) error {
	var in dto.TransicionReservaRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
		}
	}
	r, err := fn(c.Context(), inventario.TransicionInput{
		ReservaID: c.Params("id"),
		UsuarioID: GetUserID(c),
		Motivo:    in.Motivo,
		Metadata:  in.Metadata,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewReservaResponse(r))
}

// LiberarCaducadas godoc
// @Summary      Liberar reservas pendientes caducadas
// @Description  Barrido bajo demanda; cada liberación corre en su propia transacción.
// @Tags         reservas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LiberarCaducadasRequest  false  "limit, ttl_horas, motivo, dry_run"
// @Success      200   {object}  dto.LiberarCaducadasResponse
// @Router       /api/inventario/reservas/liberar-caducadas [post]
func (h *ReservasHandler) LiberarCaducadas(c *fiber.Ctx) error {
	var in dto.LiberarCaducadasRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
		}
	}
	res, err := h.uc.LiberarReservasCaducadas(c.Context(), inventario.LiberarCaducadasInput{
		Limit:       in.Limit,
		TTLHoras:    in.TTLHoras,
		Motivo:      in.Motivo,
		TriggeredBy: GetUserID(c),
		Metadata:    in.Metadata,
		DryRun:      in.DryRun,
	})
	if err != nil {
		return respondError(c, err)
	}
	out := dto.LiberarCaducadasResponse{
		Encontradas: res.Encontradas,
		Liberadas:   res.Liberadas,
		Errores:     make([]dto.ReservaFallida, 0, len(res.Errores)),
		Corte:       res.Corte,
		DryRun:      res.DryRun,
	}
	for _, e := range res.Errores {
		out.Errores = append(out.Errores, dto.ReservaFallida{ReservaID: e.ReservaID, Error: e.Error})
	}
	return c.JSON(out)
}
