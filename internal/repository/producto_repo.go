package repository

import (
	"context"
	"errors"

	"github.com/santiagozurbrigk/libreria-lowcost/internal/dto"
	"github.com/santiagozurbrigk/libreria-lowcost/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrStockInsuficiente is returned by DescontarStockTx when the conditional
// update matches no row, i.e. the product no longer has enough stock.
var ErrStockInsuficiente = errors.New("stock insuficiente")

// ProductoRepository defines the data access contract for products.
// Services depend on this interface, not on the concrete GORM implementation,
// enabling clean unit testing via stubs.
type ProductoRepository interface {
	Create(ctx context.Context, p *model.Producto) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Producto, error)
	FindBySKU(ctx context.Context, sku string) (*model.Producto, error)
	FindByBarcode(ctx context.Context, barcode string) (*model.Producto, error)
	List(ctx context.Context, filter dto.ProductoFilter) ([]model.Producto, int64, error)
	Update(ctx context.Context, p *model.Producto) error
	Delete(ctx context.Context, id uuid.UUID) error

	// DescontarStockTx performs the atomic conditional decrement inside an
	// order transaction: the row is only updated when stock >= cantidad, so
	// two concurrent orders can never drive stock negative.
	DescontarStockTx(tx *gorm.DB, id uuid.UUID, cantidad int) error

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type productoRepo struct{ db *gorm.DB }

func NewProductoRepository(db *gorm.DB) ProductoRepository { return &productoRepo{db: db} }

func (r *productoRepo) Create(ctx context.Context, p *model.Producto) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *productoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Producto, error) {
	var p model.Producto
	err := r.db.WithContext(ctx).Preload("Imagenes", func(db *gorm.DB) *gorm.DB {
		return db.Order("display_order ASC")
	}).First(&p, "id = ?", id).Error
	return &p, err
}

func (r *productoRepo) FindBySKU(ctx context.Context, sku string) (*model.Producto, error) {
	var p model.Producto
	err := r.db.WithContext(ctx).Where("sku = ?", sku).First(&p).Error
	return &p, err
}

func (r *productoRepo) FindByBarcode(ctx context.Context, barcode string) (*model.Producto, error) {
	var p model.Producto
	err := r.db.WithContext(ctx).Where("barcode = ?", barcode).First(&p).Error
	return &p, err
}

func (r *productoRepo) List(ctx context.Context, filter dto.ProductoFilter) ([]model.Producto, int64, error) {
	var productos []model.Producto
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Producto{})
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		q = q.Where("nombre ILIKE ? OR sku ILIKE ? OR barcode ILIKE ?", like, like, like)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("Imagenes", func(db *gorm.DB) *gorm.DB {
		return db.Order("display_order ASC")
	}).Order("created_at DESC").Limit(filter.Limit).Offset(offset).Find(&productos).Error
	return productos, total, err
}

func (r *productoRepo) Update(ctx context.Context, p *model.Producto) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *productoRepo) Delete(ctx context.Context, id uuid.UUID) error {
	// Images are exclusively owned — removed in the same transaction since
	// the schema has no DB-level cascade.
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("producto_id = ?", id).Delete(&model.ProductoImagen{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Producto{}, "id = ?", id).Error
	})
}

func (r *productoRepo) DescontarStockTx(tx *gorm.DB, id uuid.UUID, cantidad int) error {
	res := tx.Model(&model.Producto{}).
		Where("id = ? AND stock >= ?", id, cantidad).
		Update("stock", gorm.Expr("stock - ?", cantidad))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected != 1 {
		return ErrStockInsuficiente
	}
	return nil
}

func (r *productoRepo) DB() *gorm.DB { return r.db }
