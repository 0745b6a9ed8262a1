package repository

import (
	"context"

	"github.com/santiagozurbrigk/libreria-lowcost/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProductoImagenRepository interface {
	Create(ctx context.Context, img *model.ProductoImagen) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.ProductoImagen, error)
	ListByProducto(ctx context.Context, productoID uuid.UUID) ([]model.ProductoImagen, error)
	MaxDisplayOrder(ctx context.Context, productoID uuid.UUID) (int, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type productoImagenRepo struct{ db *gorm.DB }

func NewProductoImagenRepository(db *gorm.DB) ProductoImagenRepository {
	return &productoImagenRepo{db: db}
}

func (r *productoImagenRepo) Create(ctx context.Context, img *model.ProductoImagen) error {
	return r.db.WithContext(ctx).Create(img).Error
}

func (r *productoImagenRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.ProductoImagen, error) {
	var img model.ProductoImagen
	err := r.db.WithContext(ctx).First(&img, "id = ?", id).Error
	return &img, err
}

func (r *productoImagenRepo) ListByProducto(ctx context.Context, productoID uuid.UUID) ([]model.ProductoImagen, error) {
	var imgs []model.ProductoImagen
	err := r.db.WithContext(ctx).
		Where("producto_id = ?", productoID).
		Order("display_order ASC").
		Find(&imgs).Error
	return imgs, err
}

func (r *productoImagenRepo) MaxDisplayOrder(ctx context.Context, productoID uuid.UUID) (int, error) {
	var max *int
	err := r.db.WithContext(ctx).Model(&model.ProductoImagen{}).
		Where("producto_id = ?", productoID).
		Select("MAX(display_order)").Scan(&max).Error
	if err != nil || max == nil {
		return -1, err
	}
	return *max, nil
}

func (r *productoImagenRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.ProductoImagen{}, "id = ?", id).Error
}
