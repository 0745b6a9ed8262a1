package model

import (
	"time"

	"github.com/google/uuid"
)

// ProductoImagen is exclusively owned by its Producto; the lowest
// display_order is the primary image. Deletion is application-enforced
// alongside the owning product (no DB cascade).
type ProductoImagen struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductoID   uuid.UUID `gorm:"type:uuid;not null;index"`
	ImageURL     string    `gorm:"not null"`
	DisplayOrder int       `gorm:"not null;default:0"`
	CreatedAt    time.Time
}

func (ProductoImagen) TableName() string { return "producto_imagenes" }
