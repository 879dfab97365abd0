package inventario_test

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tallerpro/taller-inventario/internal/application/inventario"
	"github.com/tallerpro/taller-inventario/internal/domain/entity"
	"github.com/tallerpro/taller-inventario/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria: un memStore compartido hace de base de datos y el
// fakeTxRunner emula la transacción tomando un snapshot antes de ejecutar fn
// y restaurándolo si fn falla. Así los tests pueden afirmar que una operación
// fallida deja el inventario exactamente como estaba.
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	productos      map[string]entity.Producto
	almacenes      map[string]entity.Almacen
	ubicaciones    map[string]entity.Ubicacion
	inventarios    map[string]entity.InventarioProducto
	movimientos    map[string]entity.MovimientoInventario
	transferencias map[string]entity.Transferencia
	reservas       map[string]entity.ReservaInventario
	auditorias     []entity.RegistroAuditoria
}

func nuevoStore() *memStore {
	return &memStore{
		productos:      map[string]entity.Producto{},
		almacenes:      map[string]entity.Almacen{},
		ubicaciones:    map[string]entity.Ubicacion{},
		inventarios:    map[string]entity.InventarioProducto{},
		movimientos:    map[string]entity.MovimientoInventario{},
		transferencias: map[string]entity.Transferencia{},
		reservas:       map[string]entity.ReservaInventario{},
	}
}

func (s *memStore) clone() memStore {
	c := memStore{
		productos:      make(map[string]entity.Producto, len(s.productos)),
		almacenes:      make(map[string]entity.Almacen, len(s.almacenes)),
		ubicaciones:    make(map[string]entity.Ubicacion, len(s.ubicaciones)),
		inventarios:    make(map[string]entity.InventarioProducto, len(s.inventarios)),
		movimientos:    make(map[string]entity.MovimientoInventario, len(s.movimientos)),
		transferencias: make(map[string]entity.Transferencia, len(s.transferencias)),
		reservas:       make(map[string]entity.ReservaInventario, len(s.reservas)),
		auditorias:     append([]entity.RegistroAuditoria(nil), s.auditorias...),
	}
	for k, v := range s.productos {
		c.productos[k] = v
	}
	for k, v := range s.almacenes {
		c.almacenes[k] = v
	}
	for k, v := range s.ubicaciones {
		c.ubicaciones[k] = v
	}
	for k, v := range s.inventarios {
		c.inventarios[k] = v
	}
	for k, v := range s.movimientos {
		c.movimientos[k] = v
	}
	for k, v := range s.transferencias {
		c.transferencias[k] = v
	}
	for k, v := range s.reservas {
		c.reservas[k] = v
	}
	return c
}

// ── Seed helpers ──────────────────────────────────────────────────────────────

func (s *memStore) agregarProducto(id string, activo bool) {
	s.productos[id] = entity.Producto{ID: id, SKU: "SKU-" + id, Nombre: "Producto " + id, Activo: activo}
}

func (s *memStore) agregarAlmacen(id string, activo bool) {
	s.almacenes[id] = entity.Almacen{ID: id, Nombre: "Almacén " + id, Activo: activo}
}

func (s *memStore) agregarUbicacion(id, almacenID string, activa bool) {
	s.ubicaciones[id] = entity.Ubicacion{ID: id, AlmacenID: almacenID, Nombre: "Ubicación " + id, Activa: activa}
}

func (s *memStore) agregarInventario(productoID, almacenID string, disponible, comprometido, costo decimal.Decimal) string {
	id := uuid.New().String()
	s.inventarios[id] = entity.InventarioProducto{
		ID:                id,
		ProductoID:        productoID,
		AlmacenID:         almacenID,
		StockDisponible:   disponible,
		StockComprometido: comprometido,
		CostoPromedio:     costo,
		CreatedAt:         time.Now(),
		UpdatedAt:         time.Now(),
	}
	return id
}

func (s *memStore) agregarReserva(inventarioID string, cantidad decimal.Decimal, estado string, creadaHace time.Duration) string {
	id := uuid.New().String()
	creada := time.Now().Add(-creadaHace)
	s.reservas[id] = entity.ReservaInventario{
		ID:           id,
		InventarioID: inventarioID,
		Cantidad:     cantidad,
		Estado:       estado,
		CreadaPor:    "seed",
		CreatedAt:    creada,
		UpdatedAt:    creada,
	}
	return id
}

// inventarioDe devuelve la fila de inventario de (producto, almacén) sin
// ubicación, o una fila en ceros si no existe.
func (s *memStore) inventarioDe(productoID, almacenID string) entity.InventarioProducto {
	for _, inv := range s.inventarios {
		if inv.ProductoID == productoID && inv.AlmacenID == almacenID && inv.UbicacionID == nil {
			return inv
		}
	}
	return entity.InventarioProducto{}
}

func (s *memStore) movimientosPorTipo(tipo string) []entity.MovimientoInventario {
	var out []entity.MovimientoInventario
	for _, m := range s.movimientos {
		if m.Tipo == tipo {
			out = append(out, m)
		}
	}
	return out
}

// ── Repos fake ────────────────────────────────────────────────────────────────

func claveUbicacion(u *string) string {
	if u == nil {
		return ""
	}
	return *u
}

type productoRepoFake struct{ s *memStore }

func (r *productoRepoFake) GetByID(_ context.Context, id string) (*entity.Producto, error) {
	p, ok := r.s.productos[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *productoRepoFake) UpdateStock(_ context.Context, id string, stock decimal.Decimal) error {
	p := r.s.productos[id]
	p.Stock = stock
	r.s.productos[id] = p
	return nil
}

type almacenRepoFake struct{ s *memStore }

func (r *almacenRepoFake) GetByID(_ context.Context, id string) (*entity.Almacen, error) {
	a, ok := r.s.almacenes[id]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

func (r *almacenRepoFake) GetUbicacion(_ context.Context, _, ubicacionID string) (*entity.Ubicacion, error) {
	u, ok := r.s.ubicaciones[ubicacionID]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

type inventarioRepoFake struct{ s *memStore }

func (r *inventarioRepoFake) Get(_ context.Context, productoID, almacenID string, ubicacionID *string) (*entity.InventarioProducto, error) {
	for _, inv := range r.s.inventarios {
		if inv.ProductoID == productoID && inv.AlmacenID == almacenID && claveUbicacion(inv.UbicacionID) == claveUbicacion(ubicacionID) {
			copia := inv
			return &copia, nil
		}
	}
	return nil, nil
}

func (r *inventarioRepoFake) GetForUpdate(ctx context.Context, productoID, almacenID string, ubicacionID *string) (*entity.InventarioProducto, error) {
	return r.Get(ctx, productoID, almacenID, ubicacionID)
}

func (r *inventarioRepoFake) GetByID(_ context.Context, id string) (*entity.InventarioProducto, error) {
	inv, ok := r.s.inventarios[id]
	if !ok {
		return nil, nil
	}
	return &inv, nil
}

func (r *inventarioRepoFake) GetByIDForUpdate(ctx context.Context, id string) (*entity.InventarioProducto, error) {
	return r.GetByID(ctx, id)
}

func (r *inventarioRepoFake) Create(_ context.Context, inv *entity.InventarioProducto) error {
	r.s.inventarios[inv.ID] = *inv
	return nil
}

func (r *inventarioRepoFake) UpdateStocks(_ context.Context, inv *entity.InventarioProducto) error {
	r.s.inventarios[inv.ID] = *inv
	return nil
}

func (r *inventarioRepoFake) SumDisponible(_ context.Context, productoID string) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, inv := range r.s.inventarios {
		if inv.ProductoID == productoID {
			total = total.Add(inv.StockDisponible)
		}
	}
	return total, nil
}

func (r *inventarioRepoFake) ListByProducto(_ context.Context, productoID string) ([]*entity.InventarioProducto, error) {
	var out []*entity.InventarioProducto
	for _, inv := range r.s.inventarios {
		if inv.ProductoID == productoID {
			copia := inv
			out = append(out, &copia)
		}
	}
	return out, nil
}

func (r *inventarioRepoFake) ListByAlmacen(_ context.Context, almacenID string, _, _ int) ([]*entity.InventarioProducto, error) {
	var out []*entity.InventarioProducto
	for _, inv := range r.s.inventarios {
		if inv.AlmacenID == almacenID {
			copia := inv
			out = append(out, &copia)
		}
	}
	return out, nil
}

type movimientoRepoFake struct{ s *memStore }

func (r *movimientoRepoFake) Create(_ context.Context, mov *entity.MovimientoInventario) error {
	r.s.movimientos[mov.ID] = *mov
	return nil
}

func (r *movimientoRepoFake) GetByID(_ context.Context, id string) (*entity.MovimientoInventario, error) {
	m, ok := r.s.movimientos[id]
	if !ok {
		return nil, nil
	}
	return &m, nil
}

func (r *movimientoRepoFake) List(_ context.Context, filtro repository.MovimientoFiltro, limit, offset int) ([]*entity.MovimientoInventario, error) {
	var out []*entity.MovimientoInventario
	for _, m := range r.s.movimientos {
		if filtro.ProductoID != "" && m.ProductoID != filtro.ProductoID {
			continue
		}
		if filtro.AlmacenID != "" && m.AlmacenID != filtro.AlmacenID {
			continue
		}
		if filtro.Tipo != "" && m.Tipo != filtro.Tipo {
			continue
		}
		copia := m
		out = append(out, &copia)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type transferenciaRepoFake struct{ s *memStore }

func (r *transferenciaRepoFake) Create(_ context.Context, t *entity.Transferencia) error {
	r.s.transferencias[t.ID] = *t
	return nil
}

func (r *transferenciaRepoFake) GetByID(_ context.Context, id string) (*entity.Transferencia, error) {
	t, ok := r.s.transferencias[id]
	if !ok {
		return nil, nil
	}
	return &t, nil
}

func (r *transferenciaRepoFake) GetByIDForUpdate(ctx context.Context, id string) (*entity.Transferencia, error) {
	return r.GetByID(ctx, id)
}

func (r *transferenciaRepoFake) UpdateEstado(_ context.Context, t *entity.Transferencia) error {
	r.s.transferencias[t.ID] = *t
	return nil
}

type reservaRepoFake struct{ s *memStore }

func (r *reservaRepoFake) Create(_ context.Context, res *entity.ReservaInventario) error {
	r.s.reservas[res.ID] = *res
	return nil
}

func (r *reservaRepoFake) GetByID(_ context.Context, id string) (*entity.ReservaInventario, error) {
	res, ok := r.s.reservas[id]
	if !ok {
		return nil, nil
	}
	return &res, nil
}

func (r *reservaRepoFake) GetByIDForUpdate(ctx context.Context, id string) (*entity.ReservaInventario, error) {
	return r.GetByID(ctx, id)
}

func (r *reservaRepoFake) Update(_ context.Context, res *entity.ReservaInventario) error {
	r.s.reservas[res.ID] = *res
	return nil
}

func (r *reservaRepoFake) ListPendientesAnteriores(_ context.Context, corte time.Time, limit int) ([]*entity.ReservaInventario, error) {
	var out []*entity.ReservaInventario
	for _, res := range r.s.reservas {
		if res.Estado == entity.ReservaPendiente && res.CreatedAt.Before(corte) {
			copia := res
			out = append(out, &copia)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type auditoriaRepoFake struct{ s *memStore }

func (r *auditoriaRepoFake) Create(_ context.Context, reg *entity.RegistroAuditoria) error {
	r.s.auditorias = append(r.s.auditorias, *reg)
	return nil
}

// ── TxRunner fake ─────────────────────────────────────────────────────────────

func reposDe(s *memStore) inventario.TxRepos {
	return inventario.TxRepos{
		Productos:      &productoRepoFake{s},
		Almacenes:      &almacenRepoFake{s},
		Inventarios:    &inventarioRepoFake{s},
		Movimientos:    &movimientoRepoFake{s},
		Transferencias: &transferenciaRepoFake{s},
		Reservas:       &reservaRepoFake{s},
		Auditoria:      &auditoriaRepoFake{s},
	}
}

type fakeTxRunner struct{ s *memStore }

// Run emula BEGIN/COMMIT/ROLLBACK: snapshot antes de fn, restauración si falla.
func (r *fakeTxRunner) Run(_ context.Context, fn func(tx inventario.TxRepos) error) error {
	snap := r.s.clone()
	if err := fn(reposDe(r.s)); err != nil {
		*r.s = snap
		return err
	}
	return nil
}

// d construye un decimal desde string; falla el build si el literal es inválido.
func d(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}
