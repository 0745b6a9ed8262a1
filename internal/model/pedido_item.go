package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PedidoItem captures one product line of a reservation. Precio is the unit
// price at order time, decoupled from the product's current price. Created
// once with the Pedido and immutable thereafter.
type PedidoItem struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PedidoID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductoID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Cantidad   int             `gorm:"not null"`
	Precio     decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	CreatedAt  time.Time

	Producto *Producto `gorm:"foreignKey:ProductoID"`
}

func (PedidoItem) TableName() string { return "pedido_items" }
