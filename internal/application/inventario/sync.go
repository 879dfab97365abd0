package inventario

import "context"

// syncProductoStock recalcula la suma de stock_disponible de todas las filas
// de inventario del producto y la escribe en productos.stock. Es el último
// paso de toda operación mutadora, dentro de la misma transacción, de modo
// que la caché nunca se observa desfasada tras el commit. Es idempotente.
func syncProductoStock(ctx context.Context, tx TxRepos, productoID string) error {
	total, err := tx.Inventarios.SumDisponible(ctx, productoID)
	if err != nil {
		return err
	}
	return tx.Productos.UpdateStock(ctx, productoID, total)
}
