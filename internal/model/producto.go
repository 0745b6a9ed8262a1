package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Producto is a catalog item sold through the reservation flow.
// Stock is only mutated by the conditional decrement during order creation
// and by direct staff edits — it never goes negative.
type Producto struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre      string    `gorm:"index;not null"`
	SKU         *string   `gorm:"uniqueIndex"`
	Barcode     *string   `gorm:"index"`
	Descripcion *string
	Precio      decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Stock       int             `gorm:"not null;default:0"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Imagenes []ProductoImagen `gorm:"foreignKey:ProductoID"`
}

func (Producto) TableName() string { return "productos" }
