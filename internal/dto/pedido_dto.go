package dto

import "github.com/shopspring/decimal"

// Wire field names match the public API contract (customer_name, status,
// is_paid, …); internal model names stay in Spanish. One status deviation
// from the first version of the API: insufficient stock at checkout returns
// 409 Conflict (it is contention over shared state, retryable after the
// catalog changes), not 400 like the request-shape validation errors.

// ─── Request DTOs ────────────────────────────────────────────────────────────

type ItemPedidoRequest struct {
	ProductoID string          `json:"product_id" validate:"required,uuid"`
	Cantidad   int             `json:"quantity"   validate:"required,min=1"`
	Subtotal   decimal.Decimal `json:"subtotal"   validate:"required,gt=0"`
}

type CrearPedidoRequest struct {
	CustomerName  string              `json:"customer_name"  validate:"required,min=2"`
	CustomerPhone string              `json:"customer_phone" validate:"required,min=8"`
	CustomerEmail *string             `json:"customer_email" validate:"omitempty,email"`
	Items         []ItemPedidoRequest `json:"items"          validate:"required,min=1,dive"`
	Total         decimal.Decimal     `json:"total"          validate:"required,gt=0"`
}

type ActualizarPedidoRequest struct {
	Estado   *string `json:"status"  validate:"omitempty,oneof=pendiente preparando listo entregado"`
	EsPagado *bool   `json:"is_paid"`
}

// ─── Filter / Pagination ─────────────────────────────────────────────────────

// PedidoFilter is bound from the query string of GET /orders.
type PedidoFilter struct {
	Estado        string `form:"status"         validate:"omitempty,oneof=pendiente preparando listo entregado"`
	CustomerPhone string `form:"customer_phone"`
	Page          int    `form:"page,default=1"   validate:"min=1"`
	Limit         int    `form:"limit,default=20" validate:"min=1,max=100"`

	// ClienteID restricts the listing to one client's orders. Set by the
	// handler for cliente-role callers, never bound from the request.
	ClienteID string `form:"-"`
}

type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int   `json:"pages"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ProductoRefResponse struct {
	ID     string  `json:"id"`
	Nombre string  `json:"name"`
	SKU    *string `json:"sku"`
}

type ItemPedidoResponse struct {
	ID       string              `json:"id"`
	Cantidad int                 `json:"quantity"`
	Precio   decimal.Decimal     `json:"price"`
	Producto ProductoRefResponse `json:"product"`
}

type ClientePedidoResponse struct {
	ID        string           `json:"id"`
	Telefono  *string          `json:"phone"`
	Direccion *string          `json:"address"`
	Usuario   *UsuarioResponse `json:"user,omitempty"`
}

type PedidoResponse struct {
	ID            string                 `json:"id"`
	CustomerName  string                 `json:"customer_name"`
	CustomerPhone string                 `json:"customer_phone"`
	CustomerEmail *string                `json:"customer_email"`
	Total         decimal.Decimal        `json:"total"`
	Estado        string                 `json:"status"`
	EsPagado      bool                   `json:"is_paid"`
	Barcode       *string                `json:"barcode"`
	Cliente       *ClientePedidoResponse `json:"client,omitempty"`
	Items         []ItemPedidoResponse   `json:"items"`
	CreatedAt     string                 `json:"created_at"`
	UpdatedAt     string                 `json:"updated_at"`
}

type PedidoListResponse struct {
	Data       []PedidoResponse `json:"data"`
	Pagination Pagination       `json:"pagination"`
}
