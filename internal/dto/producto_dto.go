package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearProductoRequest struct {
	Nombre      string          `json:"name"        validate:"required,min=1,max=200"`
	SKU         *string         `json:"sku"         validate:"omitempty,max=64"`
	Barcode     *string         `json:"barcode"     validate:"omitempty,max=64"`
	Descripcion *string         `json:"description"`
	Precio      decimal.Decimal `json:"price"       validate:"required,gt=0"`
	Stock       int             `json:"stock"       validate:"min=0"`
}

type ActualizarProductoRequest struct {
	Nombre      *string          `json:"name"        validate:"omitempty,min=1,max=200"`
	SKU         *string          `json:"sku"         validate:"omitempty,max=64"`
	Barcode     *string          `json:"barcode"     validate:"omitempty,max=64"`
	Descripcion *string          `json:"description"`
	Precio      *decimal.Decimal `json:"price"       validate:"omitempty,gt=0"`
	Stock       *int             `json:"stock"       validate:"omitempty,min=0"`
}

type AgregarImagenRequest struct {
	ImageURL     string `json:"image_url"     validate:"required,url"`
	DisplayOrder *int   `json:"display_order" validate:"omitempty,min=0"`
}

// ─── Filter / Pagination ─────────────────────────────────────────────────────

type ProductoFilter struct {
	Search string `form:"search"`
	Page   int    `form:"page,default=1"   validate:"min=1"`
	Limit  int    `form:"limit,default=20" validate:"min=1,max=100"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ImagenResponse struct {
	ID           string `json:"id"`
	ImageURL     string `json:"image_url"`
	DisplayOrder int    `json:"display_order"`
}

type ProductoResponse struct {
	ID          string           `json:"id"`
	Nombre      string           `json:"name"`
	SKU         *string          `json:"sku"`
	Barcode     *string          `json:"barcode"`
	Descripcion *string          `json:"description"`
	Precio      decimal.Decimal  `json:"price"`
	Stock       int              `json:"stock"`
	Imagenes    []ImagenResponse `json:"images"`
	CreatedAt   string           `json:"created_at"`
}

type ProductoListResponse struct {
	Data       []ProductoResponse `json:"data"`
	Pagination Pagination         `json:"pagination"`
}
