package repository

import (
	"context"
	"time"

	"github.com/santiagozurbrigk/libreria-lowcost/internal/dto"
	"github.com/santiagozurbrigk/libreria-lowcost/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// VentaDiariaRow is one day's aggregate from the daily sales query.
type VentaDiariaRow struct {
	Fecha  time.Time
	Total  decimal.Decimal
	Orders int64
}

// TopProductoRow aggregates sold quantities per product over delivered+paid orders.
type TopProductoRow struct {
	ProductoID    uuid.UUID
	Nombre        string
	SKU           *string
	TotalQuantity int64
}

// TopClienteRow aggregates spend per customer over delivered+paid orders.
type TopClienteRow struct {
	Nombre      string
	Telefono    string
	TotalOrders int64
	TotalSpent  decimal.Decimal
}

type PedidoRepository interface {
	// CreateTx inserts the order header and its items as one row graph
	// inside the given transaction.
	CreateTx(tx *gorm.DB, p *model.Pedido) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Pedido, error)
	List(ctx context.Context, filter dto.PedidoFilter) ([]model.Pedido, int64, error)
	Update(ctx context.Context, p *model.Pedido) error
	// Delete removes the order and its items in one transaction.
	Delete(ctx context.Context, id uuid.UUID) error

	// HasItemsForProducto reports whether any order item references the
	// product; product deletion is blocked while true.
	HasItemsForProducto(ctx context.Context, productoID uuid.UUID) (bool, error)

	// Stats queries for the admin dashboard.
	SumTotal(ctx context.Context) (decimal.Decimal, error)
	SumTotalSince(ctx context.Context, since time.Time) (decimal.Decimal, error)
	CountByEstado(ctx context.Context, estado string) (int64, error)
	VentasDiarias(ctx context.Context, since time.Time) ([]VentaDiariaRow, error)
	TopProductos(ctx context.Context, limit int) ([]TopProductoRow, error)
	TopClientes(ctx context.Context, limit int) ([]TopClienteRow, error)

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type pedidoRepo struct{ db *gorm.DB }

func NewPedidoRepository(db *gorm.DB) PedidoRepository { return &pedidoRepo{db: db} }

func (r *pedidoRepo) DB() *gorm.DB { return r.db }

func (r *pedidoRepo) CreateTx(tx *gorm.DB, p *model.Pedido) error {
	return tx.Create(p).Error
}

func (r *pedidoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Pedido, error) {
	var p model.Pedido
	err := r.db.WithContext(ctx).
		Preload("Cliente.Usuario").
		Preload("Items.Producto").
		First(&p, "id = ?", id).Error
	return &p, err
}

func (r *pedidoRepo) List(ctx context.Context, filter dto.PedidoFilter) ([]model.Pedido, int64, error) {
	var pedidos []model.Pedido
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Pedido{})
	if filter.Estado != "" {
		q = q.Where("estado = ?", filter.Estado)
	}
	if filter.CustomerPhone != "" {
		q = q.Where("customer_phone = ?", filter.CustomerPhone)
	}
	if filter.ClienteID != "" {
		q = q.Where("cliente_id = ?", filter.ClienteID)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("Cliente.Usuario").
		Preload("Items.Producto").
		Order("created_at DESC").
		Limit(filter.Limit).Offset(offset).
		Find(&pedidos).Error
	return pedidos, total, err
}

func (r *pedidoRepo) Update(ctx context.Context, p *model.Pedido) error {
	return r.db.WithContext(ctx).Omit("Items", "Cliente").Save(p).Error
}

func (r *pedidoRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("pedido_id = ?", id).Delete(&model.PedidoItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Pedido{}, "id = ?", id).Error
	})
}

func (r *pedidoRepo) HasItemsForProducto(ctx context.Context, productoID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.PedidoItem{}).
		Where("producto_id = ?", productoID).
		Limit(1).Count(&count).Error
	return count > 0, err
}

// ── Stats ─────────────────────────────────────────────────────────────────────

func (r *pedidoRepo) SumTotal(ctx context.Context) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := r.db.WithContext(ctx).Model(&model.Pedido{}).
		Select("COALESCE(SUM(total), 0)").Scan(&sum).Error
	return sum, err
}

func (r *pedidoRepo) SumTotalSince(ctx context.Context, since time.Time) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := r.db.WithContext(ctx).Model(&model.Pedido{}).
		Where("created_at >= ?", since).
		Select("COALESCE(SUM(total), 0)").Scan(&sum).Error
	return sum, err
}

func (r *pedidoRepo) CountByEstado(ctx context.Context, estado string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Pedido{}).
		Where("estado = ?", estado).Count(&count).Error
	return count, err
}

func (r *pedidoRepo) VentasDiarias(ctx context.Context, since time.Time) ([]VentaDiariaRow, error) {
	var rows []VentaDiariaRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT DATE(created_at) AS fecha,
		       COALESCE(SUM(total), 0) AS total,
		       COUNT(*) AS orders
		FROM pedidos
		WHERE created_at >= ?
		GROUP BY DATE(created_at)
		ORDER BY fecha ASC`, since).Scan(&rows).Error
	return rows, err
}

func (r *pedidoRepo) TopProductos(ctx context.Context, limit int) ([]TopProductoRow, error) {
	var rows []TopProductoRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT p.id AS producto_id, p.nombre, p.sku,
		       SUM(pi.cantidad) AS total_quantity
		FROM pedido_items pi
		JOIN pedidos pe ON pe.id = pi.pedido_id
		JOIN productos p ON p.id = pi.producto_id
		WHERE pe.estado = ? AND pe.is_paid = true
		GROUP BY p.id, p.nombre, p.sku
		ORDER BY total_quantity DESC
		LIMIT ?`, model.EstadoEntregado, limit).Scan(&rows).Error
	return rows, err
}

func (r *pedidoRepo) TopClientes(ctx context.Context, limit int) ([]TopClienteRow, error) {
	var rows []TopClienteRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT pe.customer_name AS nombre,
		       pe.customer_phone AS telefono,
		       COUNT(*) AS total_orders,
		       COALESCE(SUM(pe.total), 0) AS total_spent
		FROM pedidos pe
		WHERE pe.estado = ? AND pe.is_paid = true
		GROUP BY pe.customer_name, pe.customer_phone
		ORDER BY total_spent DESC
		LIMIT ?`, model.EstadoEntregado, limit).Scan(&rows).Error
	return rows, err
}
