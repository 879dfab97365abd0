package inventario

import "github.com/shopspring/decimal"

// CostoPromedio implementa el costo promedio ponderado (servicio de dominio).
// NuevoCosto = ((StockActual * CostoActual) + (CantIngreso * CostoIngreso)) / (StockActual + CantIngreso)
// Solo se recalcula en ingresos; las salidas no alteran el costo promedio.
func CostoPromedio(stockActual, costoActual, cantIngreso, costoIngreso decimal.Decimal) decimal.Decimal {
	total := stockActual.Add(cantIngreso)
	if total.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	if stockActual.LessThanOrEqual(decimal.Zero) {
		return costoIngreso
	}
	num := stockActual.Mul(costoActual).Add(cantIngreso.Mul(costoIngreso))
	return num.Div(total)
}
