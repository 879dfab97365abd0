package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/tallerpro/taller-inventario/internal/application/dto"
	"github.com/tallerpro/taller-inventario/internal/application/inventario"
	"github.com/tallerpro/taller-inventario/internal/domain/repository"
)

// InventarioHandler maneja las peticiones HTTP de movimientos y stock (protegido).
type InventarioHandler struct {
	movimientos *inventario.MovimientosUseCase
	consultas   *inventario.ConsultasUseCase
}

// NewInventarioHandler construye el handler.
func NewInventarioHandler(movimientos *inventario.MovimientosUseCase, consultas *inventario.ConsultasUseCase) *InventarioHandler {
	return &InventarioHandler{movimientos: movimientos, consultas: consultas}
}

// RegistrarIngreso godoc
// @Summary      Registrar ingreso de stock
// @Tags         inventario
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.IngresoRequest  true  "producto_id, almacen_id, cantidad, costo_unitario"
// @Success      201   {object}  dto.MovimientoResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventario/ingresos [post]
func (h *InventarioHandler) RegistrarIngreso(c *fiber.Ctx) error {
	var in dto.IngresoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	mov, err := h.movimientos.RegistrarIngreso(c.Context(), inventario.IngresoInput{
		ProductoID:    in.ProductoID,
		AlmacenID:     in.AlmacenID,
		UbicacionID:   in.UbicacionID,
		UsuarioID:     GetUserID(c),
		Cantidad:      in.Cantidad,
		CostoUnitario: in.CostoUnitario,
		Referencia:    in.Referencia,
		Observaciones: in.Observaciones,
		OrigenTipo:    in.OrigenTipo,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewMovimientoResponse(mov))
}

// RegistrarSalida godoc
// @Summary      Registrar salida de stock
// @Tags         inventario
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SalidaRequest  true  "producto_id, almacen_id, cantidad"
// @Success      201   {object}  dto.MovimientoResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventario/salidas [post]
func (h *InventarioHandler) RegistrarSalida(c *fiber.Ctx) error {
	var in dto.SalidaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	mov, err := h.movimientos.RegistrarSalida(c.Context(), inventario.SalidaInput{
		ProductoID:    in.ProductoID,
		AlmacenID:     in.AlmacenID,
		UbicacionID:   in.UbicacionID,
		UsuarioID:     GetUserID(c),
		Cantidad:      in.Cantidad,
		Referencia:    in.Referencia,
		Observaciones: in.Observaciones,
		OrigenTipo:    in.OrigenTipo,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewMovimientoResponse(mov))
}

// RegistrarAjuste godoc
// @Summary      Registrar ajuste manual de stock
// @Tags         inventario
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AjusteRequest  true  "producto_id, almacen_id, cantidad, es_positivo, motivo"
// @Success      201   {object}  dto.MovimientoResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventario/ajustes [post]
func (h *InventarioHandler) RegistrarAjuste(c *fiber.Ctx) error {
	var in dto.AjusteRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	mov, err := h.movimientos.RegistrarAjuste(c.Context(), inventario.AjusteInput{
		ProductoID:    in.ProductoID,
		AlmacenID:     in.AlmacenID,
		UbicacionID:   in.UbicacionID,
		UsuarioID:     GetUserID(c),
		Cantidad:      in.Cantidad,
		EsPositivo:    in.EsPositivo,
		Motivo:        in.Motivo,
		EvidenciaURL:  in.EvidenciaURL,
		Referencia:    in.Referencia,
		Observaciones: in.Observaciones,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewMovimientoResponse(mov))
}

// ListarMovimientos godoc
// @Summary      Listar movimientos de inventario
// @Tags         inventario
// @Security     Bearer
// @Produce      json
// @Param        producto_id  query  string  false  "Filtrar por producto"
// @Param        almacen_id   query  string  false  "Filtrar por almacén"
// @Param        tipo         query  string  false  "Filtrar por tipo de movimiento"
// @Success      200  {array}  dto.MovimientoResponse
// @Router       /api/inventario/movimientos [get]
func (h *InventarioHandler) ListarMovimientos(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	page.DefaultPage()

	filtro := repository.MovimientoFiltro{
		ProductoID: c.Query("producto_id"),
		AlmacenID:  c.Query("almacen_id"),
		Tipo:       c.Query("tipo"),
	}
	if desde := c.Query("desde"); desde != "" {
		t, err := time.Parse(time.RFC3339, desde)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "desde debe ser RFC3339"})
		}
		filtro.Desde = &t
	}
	if hasta := c.Query("hasta"); hasta != "" {
		t, err := time.Parse(time.RFC3339, hasta)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "hasta debe ser RFC3339"})
		}
		filtro.Hasta = &t
	}

	movs, err := h.consultas.ListarMovimientos(c.Context(), filtro, page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.MovimientoResponse, 0, len(movs))
	for _, m := range movs {
		out = append(out, dto.NewMovimientoResponse(m))
	}
	return c.JSON(fiber.Map{"total": len(out), "movimientos": out})
}

// ConsultarStock godoc
// @Summary      Consultar stock por producto o almacén
// @Tags         inventario
// @Security     Bearer
// @Produce      json
// @Param        producto_id  query  string  false  "Filas de inventario del producto"
// @Param        almacen_id   query  string  false  "Filas de inventario del almacén"
// @Success      200  {array}  dto.StockResponse
// @Router       /api/inventario/stock [get]
func (h *InventarioHandler) ConsultarStock(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	page.DefaultPage()

	filas, err := h.consultas.ConsultarStock(c.Context(), c.Query("producto_id"), c.Query("almacen_id"), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.StockResponse, 0, len(filas))
	for _, inv := range filas {
		out = append(out, dto.NewStockResponse(inv))
	}
	return c.JSON(fiber.Map{"total": len(out), "stock": out})
}
