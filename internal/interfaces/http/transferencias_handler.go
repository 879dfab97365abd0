package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tallerpro/taller-inventario/internal/application/dto"
	"github.com/tallerpro/taller-inventario/internal/application/inventario"
)

// TransferenciasHandler maneja las peticiones HTTP de transferencias (protegido).
type TransferenciasHandler struct {
	uc *inventario.TransferenciasUseCase
}

// NewTransferenciasHandler construye el handler.
func NewTransferenciasHandler(uc *inventario.TransferenciasUseCase) *TransferenciasHandler {
	return &TransferenciasHandler{uc: uc}
}

// Crear godoc
// @Summary      Crear transferencia entre almacenes
// @Description  Descuenta el origen de inmediato y deja la transferencia en PENDIENTE_RECEPCION.
// @Tags         transferencias
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.TransferenciaRequest  true  "producto_id, origen_almacen_id, destino_almacen_id, cantidad"
// @Success      201   {object}  dto.TransferenciaResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventario/transferencias [post]
func (h *TransferenciasHandler) Crear(c *fiber.Ctx) error {
	var in dto.TransferenciaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	t, err := h.uc.CrearTransferencia(c.Context(), inventario.TransferenciaInput{
		ProductoID:       in.ProductoID,
		OrigenAlmacenID:  in.OrigenAlmacenID,
		DestinoAlmacenID: in.DestinoAlmacenID,
		UsuarioID:        GetUserID(c),
		Cantidad:         in.Cantidad,
		Referencia:       in.Referencia,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewTransferenciaResponse(t))
}

// Confirmar godoc
// @Summary      Confirmar recepción de una transferencia
// @Tags         transferencias
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la transferencia"
// @Success      200  {object}  dto.TransferenciaResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/inventario/transferencias/{id}/confirmar [post]
func (h *TransferenciasHandler) Confirmar(c *fiber.Ctx) error {
	t, err := h.uc.ConfirmarTransferencia(c.Context(), c.Params("id"), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewTransferenciaResponse(t))
}

// Anular godoc
// @Summary      Anular una transferencia pendiente
// @Description  Devuelve el stock al almacén de origen.
// @Tags         transferencias
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la transferencia"
// @Param        body  body  dto.AnularTransferenciaRequest  false  "motivo"
// @Success      200   {object}  dto.TransferenciaResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventario/transferencias/{id}/anular [post]
func (h *TransferenciasHandler) Anular(c *fiber.Ctx) error {
	var in dto.AnularTransferenciaRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
		}
	}
	t, err := h.uc.AnularTransferencia(c.Context(), c.Params("id"), GetUserID(c), in.Motivo)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewTransferenciaResponse(t))
}
