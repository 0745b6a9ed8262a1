package service_test

import (
	"context"
	"sync"
	"time"

	"github.com/santiagozurbrigk/libreria-lowcost/internal/dto"
	"github.com/santiagozurbrigk/libreria-lowcost/internal/model"
	"github.com/santiagozurbrigk/libreria-lowcost/internal/repository"
	"github.com/santiagozurbrigk/libreria-lowcost/internal/worker"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ── In-memory repository stubs ────────────────────────────────────────────────
// DB() returns nil so runTx executes the transaction body directly; the stubs
// replicate the conditional-decrement semantics with a mutex instead of SQL.

type stubProductoRepo struct {
	mu        sync.Mutex
	productos map[uuid.UUID]*model.Producto
}

func newStubProductoRepo() *stubProductoRepo {
	return &stubProductoRepo{productos: make(map[uuid.UUID]*model.Producto)}
}

func (r *stubProductoRepo) seed(p model.Producto) *model.Producto {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.productos[p.ID] = &p
	return &p
}

func (r *stubProductoRepo) stock(id uuid.UUID) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.productos[id].Stock
}

func (r *stubProductoRepo) Create(_ context.Context, p *model.Producto) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p.ID = uuid.New()
	p.CreatedAt = time.Now()
	r.productos[p.ID] = p
	return nil
}

func (r *stubProductoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Producto, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.productos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copia := *p
	return &copia, nil
}

func (r *stubProductoRepo) FindBySKU(_ context.Context, sku string) (*model.Producto, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.productos {
		if p.SKU != nil && *p.SKU == sku {
			copia := *p
			return &copia, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubProductoRepo) FindByBarcode(_ context.Context, barcode string) (*model.Producto, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.productos {
		if p.Barcode != nil && *p.Barcode == barcode {
			copia := *p
			return &copia, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubProductoRepo) List(_ context.Context, filter dto.ProductoFilter) ([]model.Producto, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.Producto, 0, len(r.productos))
	for _, p := range r.productos {
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (r *stubProductoRepo) Update(_ context.Context, p *model.Producto) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.productos[p.ID] = p
	return nil
}

func (r *stubProductoRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.productos, id)
	return nil
}

func (r *stubProductoRepo) DescontarStockTx(_ *gorm.DB, id uuid.UUID, cantidad int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.productos[id]
	if !ok || p.Stock < cantidad {
		return repository.ErrStockInsuficiente
	}
	p.Stock -= cantidad
	return nil
}

func (r *stubProductoRepo) DB() *gorm.DB { return nil }

// ── Pedidos ──────────────────────────────────────────────────────────────────

type stubPedidoRepo struct {
	mu             sync.Mutex
	pedidos        map[uuid.UUID]*model.Pedido
	itemsPorProd   map[uuid.UUID]int
	ventasDiarias  []repository.VentaDiariaRow
	totalHistorico decimal.Decimal

	// clientes mimics the Cliente preload on reads when set.
	clientes *stubClienteRepo
}

func newStubPedidoRepo() *stubPedidoRepo {
	return &stubPedidoRepo{
		pedidos:      make(map[uuid.UUID]*model.Pedido),
		itemsPorProd: make(map[uuid.UUID]int),
	}
}

func (r *stubPedidoRepo) attachCliente(p *model.Pedido) {
	if r.clientes == nil {
		return
	}
	if c, err := r.clientes.FindByID(context.Background(), p.ClienteID); err == nil {
		p.Cliente = c
	}
}

func (r *stubPedidoRepo) DB() *gorm.DB { return nil }

func (r *stubPedidoRepo) CreateTx(_ *gorm.DB, p *model.Pedido) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p.ID = uuid.New()
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	for i := range p.Items {
		p.Items[i].ID = uuid.New()
		p.Items[i].PedidoID = p.ID
		r.itemsPorProd[p.Items[i].ProductoID]++
	}
	r.pedidos[p.ID] = p
	return nil
}

func (r *stubPedidoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Pedido, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.pedidos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copia := *p
	r.attachCliente(&copia)
	return &copia, nil
}

func (r *stubPedidoRepo) List(_ context.Context, filter dto.PedidoFilter) ([]model.Pedido, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.Pedido, 0, len(r.pedidos))
	for _, p := range r.pedidos {
		if filter.Estado != "" && p.Estado != filter.Estado {
			continue
		}
		if filter.ClienteID != "" && p.ClienteID.String() != filter.ClienteID {
			continue
		}
		if filter.CustomerPhone != "" && p.CustomerPhone != filter.CustomerPhone {
			continue
		}
		copia := *p
		r.attachCliente(&copia)
		out = append(out, copia)
	}
	return out, int64(len(out)), nil
}

func (r *stubPedidoRepo) Update(_ context.Context, p *model.Pedido) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.pedidos[p.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	p.UpdatedAt = time.Now()
	r.pedidos[p.ID] = p
	return nil
}

func (r *stubPedidoRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.pedidos[id]; ok {
		for _, item := range p.Items {
			r.itemsPorProd[item.ProductoID]--
		}
	}
	delete(r.pedidos, id)
	return nil
}

func (r *stubPedidoRepo) HasItemsForProducto(_ context.Context, productoID uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.itemsPorProd[productoID] > 0, nil
}

func (r *stubPedidoRepo) SumTotal(_ context.Context) (decimal.Decimal, error) {
	return r.totalHistorico, nil
}

func (r *stubPedidoRepo) SumTotalSince(_ context.Context, since time.Time) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, row := range r.ventasDiarias {
		if !row.Fecha.Before(since) {
			total = total.Add(row.Total)
		}
	}
	return total, nil
}

func (r *stubPedidoRepo) CountByEstado(_ context.Context, estado string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, p := range r.pedidos {
		if p.Estado == estado {
			n++
		}
	}
	return n, nil
}

func (r *stubPedidoRepo) VentasDiarias(_ context.Context, since time.Time) ([]repository.VentaDiariaRow, error) {
	out := make([]repository.VentaDiariaRow, 0, len(r.ventasDiarias))
	for _, row := range r.ventasDiarias {
		if !row.Fecha.Before(since) {
			out = append(out, row)
		}
	}
	return out, nil
}

func (r *stubPedidoRepo) TopProductos(_ context.Context, limit int) ([]repository.TopProductoRow, error) {
	return nil, nil
}

func (r *stubPedidoRepo) TopClientes(_ context.Context, limit int) ([]repository.TopClienteRow, error) {
	return nil, nil
}

// ── Clientes ─────────────────────────────────────────────────────────────────

type stubClienteRepo struct {
	mu       sync.Mutex
	clientes map[uuid.UUID]*model.Cliente
}

func newStubClienteRepo() *stubClienteRepo {
	return &stubClienteRepo{clientes: make(map[uuid.UUID]*model.Cliente)}
}

func (r *stubClienteRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.clientes)
}

func (r *stubClienteRepo) Create(_ context.Context, c *model.Cliente) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c.ID = uuid.New()
	r.clientes[c.ID] = c
	return nil
}

func (r *stubClienteRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Cliente, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.clientes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (r *stubClienteRepo) FindByTelefono(_ context.Context, telefono string) (*model.Cliente, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.clientes {
		if c.Telefono != nil && *c.Telefono == telefono {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubClienteRepo) FindByUsuarioID(_ context.Context, usuarioID uuid.UUID) (*model.Cliente, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.clientes {
		if c.UsuarioID != nil && *c.UsuarioID == usuarioID {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

// ── Usuarios ─────────────────────────────────────────────────────────────────

type stubUsuarioRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*model.Usuario
}

func newStubUsuarioRepo() *stubUsuarioRepo {
	return &stubUsuarioRepo{users: make(map[uuid.UUID]*model.Usuario)}
}

func (r *stubUsuarioRepo) Create(_ context.Context, u *model.Usuario) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u.ID = uuid.New()
	u.CreatedAt = time.Now()
	r.users[u.ID] = u
	return nil
}

func (r *stubUsuarioRepo) FindByEmail(_ context.Context, email string) (*model.Usuario, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUsuarioRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Usuario, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (r *stubUsuarioRepo) List(_ context.Context, filter dto.UsuarioFilter) ([]model.Usuario, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.Usuario, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, int64(len(out)), nil
}

func (r *stubUsuarioRepo) Update(_ context.Context, u *model.Usuario) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[u.ID] = u
	return nil
}

func (r *stubUsuarioRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, id)
	return nil
}

// ── Imágenes ─────────────────────────────────────────────────────────────────

type stubImagenRepo struct {
	mu       sync.Mutex
	imagenes map[uuid.UUID]*model.ProductoImagen
}

func newStubImagenRepo() *stubImagenRepo {
	return &stubImagenRepo{imagenes: make(map[uuid.UUID]*model.ProductoImagen)}
}

func (r *stubImagenRepo) Create(_ context.Context, img *model.ProductoImagen) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	img.ID = uuid.New()
	r.imagenes[img.ID] = img
	return nil
}

func (r *stubImagenRepo) FindByID(_ context.Context, id uuid.UUID) (*model.ProductoImagen, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	img, ok := r.imagenes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return img, nil
}

func (r *stubImagenRepo) ListByProducto(_ context.Context, productoID uuid.UUID) ([]model.ProductoImagen, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.ProductoImagen
	for _, img := range r.imagenes {
		if img.ProductoID == productoID {
			out = append(out, *img)
		}
	}
	return out, nil
}

func (r *stubImagenRepo) MaxDisplayOrder(_ context.Context, productoID uuid.UUID) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	max := -1
	for _, img := range r.imagenes {
		if img.ProductoID == productoID && img.DisplayOrder > max {
			max = img.DisplayOrder
		}
	}
	return max, nil
}

func (r *stubImagenRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.imagenes, id)
	return nil
}

// ── Notificador ──────────────────────────────────────────────────────────────

type stubNotifier struct {
	mu   sync.Mutex
	jobs []worker.NotificacionJob
}

func (n *stubNotifier) EnqueueNotificacion(_ context.Context, job worker.NotificacionJob) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.jobs = append(n.jobs, job)
	return nil
}

func (n *stubNotifier) enqueued() []worker.NotificacionJob {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]worker.NotificacionJob, len(n.jobs))
	copy(out, n.jobs)
	return out
}
