package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Estados del ciclo de vida de un pedido. Transitions are forward-only
// (see service.PedidoService); EsPagado is an independent axis.
const (
	EstadoPendiente  = "pendiente"
	EstadoPreparando = "preparando"
	EstadoListo      = "listo"
	EstadoEntregado  = "entregado"
)

// EstadoRank orders the lifecycle states; higher rank = further along.
// Unknown states map to -1.
func EstadoRank(estado string) int {
	switch estado {
	case EstadoPendiente:
		return 0
	case EstadoPreparando:
		return 1
	case EstadoListo:
		return 2
	case EstadoEntregado:
		return 3
	default:
		return -1
	}
}

// Pedido is a customer's reservation of product quantities, fulfilled in
// person. Customer data is denormalized at checkout time so guest orders
// survive independent of the Cliente record. Invariant: Total equals the sum
// of item price×cantidad at creation, within 0.01.
type Pedido struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ClienteID     uuid.UUID `gorm:"type:uuid;not null;index"`
	CustomerName  string    `gorm:"not null"`
	CustomerPhone string    `gorm:"not null"`
	CustomerEmail *string
	Total         decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Estado        string          `gorm:"type:varchar(20);not null;default:'pendiente';index"`
	EsPagado      bool            `gorm:"column:is_paid;not null;default:false"`
	Barcode       *string         `gorm:"index"`
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Cliente *Cliente     `gorm:"foreignKey:ClienteID"`
	Items   []PedidoItem `gorm:"foreignKey:PedidoID"`
}

func (Pedido) TableName() string { return "pedidos" }
