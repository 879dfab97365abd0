package inventario_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tallerpro/taller-inventario/internal/application/inventario"
	"github.com/tallerpro/taller-inventario/internal/domain"
	"github.com/tallerpro/taller-inventario/internal/domain/entity"
)

const (
	prodID    = "11111111-1111-1111-1111-111111111111"
	alm1ID    = "22222222-2222-2222-2222-222222222221"
	alm2ID    = "22222222-2222-2222-2222-222222222222"
	usuarioID = "33333333-3333-3333-3333-333333333331"
)

// escenarioBase crea un store con un producto activo y dos almacenes activos.
func escenarioBase() *memStore {
	s := nuevoStore()
	s.agregarProducto(prodID, true)
	s.agregarAlmacen(alm1ID, true)
	s.agregarAlmacen(alm2ID, true)
	return s
}

func movimientosUC(s *memStore) *inventario.MovimientosUseCase {
	return inventario.NewMovimientosUseCase(&fakeTxRunner{s})
}

// ──────────────────────────────────────────────────────────────────────────────
// RegistrarIngreso
// ──────────────────────────────────────────────────────────────────────────────

func TestRegistrarIngreso_CreaFilaYPromediaCosto(t *testing.T) {
	s := escenarioBase()
	uc := movimientosUC(s)
	ctx := context.Background()

	// Primer ingreso: crea la fila perezosamente y fija el costo inicial
	mov, err := uc.RegistrarIngreso(ctx, inventario.IngresoInput{
		ProductoID: prodID, AlmacenID: alm1ID, UsuarioID: usuarioID,
		Cantidad: d("10"), CostoUnitario: d("8"), Referencia: "FAC-001",
	})
	require.NoError(t, err)
	require.NotNil(t, mov)
	assert.Equal(t, entity.MovimientoIngreso, mov.Tipo)

	inv := s.inventarioDe(prodID, alm1ID)
	assert.True(t, inv.StockDisponible.Equal(d("10")), "el primer ingreso debe dejar 10 disponibles")
	assert.True(t, inv.CostoPromedio.Equal(d("8")), "sin stock previo el costo promedio es el del ingreso")

	// Segundo ingreso: promedio ponderado (10*8 + 10*12) / 20 = 10
	_, err = uc.RegistrarIngreso(ctx, inventario.IngresoInput{
		ProductoID: prodID, AlmacenID: alm1ID, UsuarioID: usuarioID,
		Cantidad: d("10"), CostoUnitario: d("12"),
	})
	require.NoError(t, err)

	inv = s.inventarioDe(prodID, alm1ID)
	assert.True(t, inv.StockDisponible.Equal(d("20")))
	assert.True(t, inv.CostoPromedio.Equal(d("10")), "el costo promedio ponderado debe ser 10")

	// La caché del producto queda sincronizada y la auditoría registrada
	assert.True(t, s.productos[prodID].Stock.Equal(d("20")), "productos.stock debe reflejar la suma de disponibles")
	assert.Len(t, s.movimientosPorTipo(entity.MovimientoIngreso), 2)
	assert.Len(t, s.auditorias, 2)
}

func TestRegistrarIngreso_CantidadNoPositiva(t *testing.T) {
	s := escenarioBase()
	uc := movimientosUC(s)

	for _, cantidad := range []string{"0", "-3"} {
		_, err := uc.RegistrarIngreso(context.Background(), inventario.IngresoInput{
			ProductoID: prodID, AlmacenID: alm1ID, UsuarioID: usuarioID,
			Cantidad: d(cantidad), CostoUnitario: d("5"),
		})
		require.Error(t, err)
		var de *domain.Error
		require.ErrorAs(t, err, &de)
		assert.Equal(t, "VALIDACION", de.Code)
	}
	assert.Empty(t, s.inventarios, "una cantidad inválida no debe crear inventario")
	assert.Empty(t, s.movimientos)
}

func TestRegistrarIngreso_CostoNegativo(t *testing.T) {
	s := escenarioBase()
	_, err := movimientosUC(s).RegistrarIngreso(context.Background(), inventario.IngresoInput{
		ProductoID: prodID, AlmacenID: alm1ID, UsuarioID: usuarioID,
		Cantidad: d("5"), CostoUnitario: d("-1"),
	})
	var de *domain.Error
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "VALIDACION", de.Code)
}

func TestRegistrarIngreso_ProductoInactivo(t *testing.T) {
	s := escenarioBase()
	s.agregarProducto(prodID, false)

	_, err := movimientosUC(s).RegistrarIngreso(context.Background(), inventario.IngresoInput{
		ProductoID: prodID, AlmacenID: alm1ID, UsuarioID: usuarioID,
		Cantidad: d("5"), CostoUnitario: d("8"),
	})
	assert.ErrorIs(t, err, domain.ErrProductoInactivo)
}

func TestRegistrarIngreso_AlmacenNoEncontrado(t *testing.T) {
	s := escenarioBase()
	_, err := movimientosUC(s).RegistrarIngreso(context.Background(), inventario.IngresoInput{
		ProductoID: prodID, AlmacenID: "no-existe", UsuarioID: usuarioID,
		Cantidad: d("5"), CostoUnitario: d("8"),
	})
	assert.ErrorIs(t, err, domain.ErrAlmacenNoEncontrado)
}

// ──────────────────────────────────────────────────────────────────────────────
// RegistrarSalida
// ──────────────────────────────────────────────────────────────────────────────

func TestRegistrarSalida_DescuentaAlCostoPromedio(t *testing.T) {
	s := escenarioBase()
	s.agregarInventario(prodID, alm1ID, d("10"), decimal.Zero, d("7"))
	uc := movimientosUC(s)

	mov, err := uc.RegistrarSalida(context.Background(), inventario.SalidaInput{
		ProductoID: prodID, AlmacenID: alm1ID, UsuarioID: usuarioID,
		Cantidad: d("4"), Referencia: "OT-105", OrigenTipo: "ORDEN_TRABAJO",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.MovimientoSalida, mov.Tipo)
	assert.True(t, mov.CostoUnitario.Equal(d("7")), "la salida se valora al costo promedio vigente")

	inv := s.inventarioDe(prodID, alm1ID)
	assert.True(t, inv.StockDisponible.Equal(d("6")))
	assert.True(t, inv.CostoPromedio.Equal(d("7")), "una salida no cambia el costo promedio")
	assert.True(t, s.productos[prodID].Stock.Equal(d("6")))
}

func TestRegistrarSalida_StockInsuficiente_DejaInventarioIntacto(t *testing.T) {
	s := escenarioBase()
	s.agregarInventario(prodID, alm1ID, d("2"), decimal.Zero, d("7"))
	uc := movimientosUC(s)

	_, err := uc.RegistrarSalida(context.Background(), inventario.SalidaInput{
		ProductoID: prodID, AlmacenID: alm1ID, UsuarioID: usuarioID, Cantidad: d("5"),
	})
	assert.ErrorIs(t, err, domain.ErrStockInsuficiente)

	inv := s.inventarioDe(prodID, alm1ID)
	assert.True(t, inv.StockDisponible.Equal(d("2")), "la salida fallida no debe tocar el disponible")
	assert.Empty(t, s.movimientos, "no debe quedar movimiento de una salida fallida")
	assert.Empty(t, s.auditorias)
}

func TestRegistrarSalida_SinFilaDeInventario(t *testing.T) {
	s := escenarioBase()
	_, err := movimientosUC(s).RegistrarSalida(context.Background(), inventario.SalidaInput{
		ProductoID: prodID, AlmacenID: alm1ID, UsuarioID: usuarioID, Cantidad: d("1"),
	})
	assert.ErrorIs(t, err, domain.ErrStockInsuficiente,
		"sin fila de inventario la salida equivale a stock cero")
}

func TestRegistrarSalida_UbicacionDeOtroAlmacen(t *testing.T) {
	s := escenarioBase()
	s.agregarUbicacion("ubi-b1", alm2ID, true)
	s.agregarInventario(prodID, alm1ID, d("10"), decimal.Zero, d("5"))

	ubi := "ubi-b1"
	_, err := movimientosUC(s).RegistrarSalida(context.Background(), inventario.SalidaInput{
		ProductoID: prodID, AlmacenID: alm1ID, UbicacionID: &ubi, UsuarioID: usuarioID, Cantidad: d("1"),
	})
	assert.ErrorIs(t, err, domain.ErrUbicacionInvalida)
}

// ──────────────────────────────────────────────────────────────────────────────
// RegistrarAjuste
// ──────────────────────────────────────────────────────────────────────────────

func TestRegistrarAjuste_SinMotivo(t *testing.T) {
	s := escenarioBase()
	_, err := movimientosUC(s).RegistrarAjuste(context.Background(), inventario.AjusteInput{
		ProductoID: prodID, AlmacenID: alm1ID, UsuarioID: usuarioID,
		Cantidad: d("3"), EsPositivo: true, Motivo: "   ",
	})
	var de *domain.Error
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "VALIDACION", de.Code, "un ajuste sin motivo debe rechazarse")
}

func TestRegistrarAjuste_PositivoNoCambiaCosto(t *testing.T) {
	s := escenarioBase()
	s.agregarInventario(prodID, alm1ID, d("5"), decimal.Zero, d("9"))
	uc := movimientosUC(s)

	mov, err := uc.RegistrarAjuste(context.Background(), inventario.AjusteInput{
		ProductoID: prodID, AlmacenID: alm1ID, UsuarioID: usuarioID,
		Cantidad: d("3"), EsPositivo: true, Motivo: "conteo físico",
		EvidenciaURL: "https://fotos.taller/conteo-01.jpg",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.MovimientoAjustePositivo, mov.Tipo)
	assert.Equal(t, "AJUSTE_MANUAL", mov.OrigenTipo)
	assert.Equal(t, "https://fotos.taller/conteo-01.jpg", mov.EvidenciaURL)

	inv := s.inventarioDe(prodID, alm1ID)
	assert.True(t, inv.StockDisponible.Equal(d("8")))
	assert.True(t, inv.CostoPromedio.Equal(d("9")), "el ajuste positivo no recalcula el costo promedio")
}

func TestRegistrarAjuste_PositivoCreaFilaSiNoExiste(t *testing.T) {
	s := escenarioBase()
	uc := movimientosUC(s)

	mov, err := uc.RegistrarAjuste(context.Background(), inventario.AjusteInput{
		ProductoID: prodID, AlmacenID: alm1ID, UsuarioID: usuarioID,
		Cantidad: d("2"), EsPositivo: true, Motivo: "hallazgo en bodega",
	})
	require.NoError(t, err)
	require.NotNil(t, mov)

	inv := s.inventarioDe(prodID, alm1ID)
	assert.True(t, inv.StockDisponible.Equal(d("2")))
	assert.True(t, inv.CostoPromedio.Equal(decimal.Zero))
}

func TestRegistrarAjuste_NegativoInsuficiente(t *testing.T) {
	s := escenarioBase()
	s.agregarInventario(prodID, alm1ID, d("2"), decimal.Zero, d("9"))

	_, err := movimientosUC(s).RegistrarAjuste(context.Background(), inventario.AjusteInput{
		ProductoID: prodID, AlmacenID: alm1ID, UsuarioID: usuarioID,
		Cantidad: d("5"), EsPositivo: false, Motivo: "merma",
	})
	assert.ErrorIs(t, err, domain.ErrStockInsuficiente)
	assert.True(t, s.inventarioDe(prodID, alm1ID).StockDisponible.Equal(d("2")))
}

func TestRegistrarAjuste_NegativoDescuenta(t *testing.T) {
	s := escenarioBase()
	s.agregarInventario(prodID, alm1ID, d("10"), decimal.Zero, d("9"))

	mov, err := movimientosUC(s).RegistrarAjuste(context.Background(), inventario.AjusteInput{
		ProductoID: prodID, AlmacenID: alm1ID, UsuarioID: usuarioID,
		Cantidad: d("4"), EsPositivo: false, Motivo: "rotura en estantería",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.MovimientoAjusteNegativo, mov.Tipo)
	assert.True(t, s.inventarioDe(prodID, alm1ID).StockDisponible.Equal(d("6")))
	assert.True(t, s.productos[prodID].Stock.Equal(d("6")))
}

// ──────────────────────────────────────────────────────────────────────────────
// Sincronización del stock desnormalizado
// ──────────────────────────────────────────────────────────────────────────────

func TestStockProducto_SumaTodosLosAlmacenes(t *testing.T) {
	s := escenarioBase()
	uc := movimientosUC(s)
	ctx := context.Background()

	_, err := uc.RegistrarIngreso(ctx, inventario.IngresoInput{
		ProductoID: prodID, AlmacenID: alm1ID, UsuarioID: usuarioID,
		Cantidad: d("7"), CostoUnitario: d("10"),
	})
	require.NoError(t, err)
	_, err = uc.RegistrarIngreso(ctx, inventario.IngresoInput{
		ProductoID: prodID, AlmacenID: alm2ID, UsuarioID: usuarioID,
		Cantidad: d("3"), CostoUnitario: d("10"),
	})
	require.NoError(t, err)

	assert.True(t, s.productos[prodID].Stock.Equal(d("10")),
		"productos.stock debe ser la suma de disponibles de todos los almacenes")
}

func TestStockProducto_ResincronizarSinCambiosEsIdempotente(t *testing.T) {
	// La sincronización es un recálculo completo (SUM de disponibles), así que
	// correrla de nuevo sin que el disponible cambie no puede mover la caché.
	// Confirmar una reserva dispara exactamente ese caso: toca el comprometido
	// y vuelve a sincronizar, pero el disponible queda igual.
	s := escenarioBase()
	ctx := context.Background()

	_, err := movimientosUC(s).RegistrarIngreso(ctx, inventario.IngresoInput{
		ProductoID: prodID, AlmacenID: alm1ID, UsuarioID: usuarioID,
		Cantidad: d("10"), CostoUnitario: d("3"),
	})
	require.NoError(t, err)

	uc := reservasUC(s)
	r, err := uc.ReservarStock(ctx, inventario.ReservaInput{
		ProductoID: prodID, AlmacenID: alm1ID, UsuarioID: usuarioID, Cantidad: d("4"),
	})
	require.NoError(t, err)

	antes := s.productos[prodID].Stock
	assert.True(t, antes.Equal(d("6")))

	_, err = uc.ConfirmarReserva(ctx, inventario.TransicionInput{ReservaID: r.ID, UsuarioID: usuarioID})
	require.NoError(t, err)

	despues := s.productos[prodID].Stock
	assert.Equal(t, antes.String(), despues.String(),
		"resincronizar sin cambio de disponible debe dejar la caché idéntica")

	suma, err := (&inventarioRepoFake{s}).SumDisponible(ctx, prodID)
	require.NoError(t, err)
	assert.True(t, despues.Equal(suma), "la caché debe seguir igual a SUM(stock_disponible)")
}
