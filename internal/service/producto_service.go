package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/santiagozurbrigk/libreria-lowcost/internal/apierror"
	"github.com/santiagozurbrigk/libreria-lowcost/internal/dto"
	"github.com/santiagozurbrigk/libreria-lowcost/internal/model"
	"github.com/santiagozurbrigk/libreria-lowcost/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

const (
	barcodeCachePrefix = "cache:producto:barcode:"
	barcodeCacheTTL    = 10 * time.Minute
)

// ProductoService implements catalog management. Barcode lookups (the hot
// path for the in-store scanner) are served through a Redis read-through
// cache; the cache is nil-safe so unit tests can skip it.
type ProductoService struct {
	productos repository.ProductoRepository
	imagenes  repository.ProductoImagenRepository
	pedidos   repository.PedidoRepository
	rdb       *redis.Client
}

func NewProductoService(
	productos repository.ProductoRepository,
	imagenes repository.ProductoImagenRepository,
	pedidos repository.PedidoRepository,
	rdb *redis.Client,
) *ProductoService {
	return &ProductoService{productos: productos, imagenes: imagenes, pedidos: pedidos, rdb: rdb}
}

func (s *ProductoService) Crear(ctx context.Context, req dto.CrearProductoRequest) (*dto.ProductoResponse, error) {
	if req.SKU != nil {
		if err := s.checkSKUDisponible(ctx, *req.SKU, uuid.Nil); err != nil {
			return nil, err
		}
	}

	p := &model.Producto{
		Nombre:      req.Nombre,
		SKU:         req.SKU,
		Barcode:     req.Barcode,
		Descripcion: req.Descripcion,
		Precio:      req.Precio,
		Stock:       req.Stock,
	}
	if err := s.productos.Create(ctx, p); err != nil {
		return nil, err
	}
	resp := toProductoResponse(p)
	return &resp, nil
}

func (s *ProductoService) Obtener(ctx context.Context, id uuid.UUID) (*dto.ProductoResponse, error) {
	p, err := s.productos.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("Producto no encontrado")
		}
		return nil, err
	}
	resp := toProductoResponse(p)
	return &resp, nil
}

func (s *ProductoService) Listar(ctx context.Context, filter dto.ProductoFilter) (*dto.ProductoListResponse, error) {
	productos, total, err := s.productos.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.ProductoResponse, 0, len(productos))
	for i := range productos {
		data = append(data, toProductoResponse(&productos[i]))
	}
	return &dto.ProductoListResponse{
		Data:       data,
		Pagination: buildPagination(filter.Page, filter.Limit, total),
	}, nil
}

func (s *ProductoService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarProductoRequest) (*dto.ProductoResponse, error) {
	p, err := s.productos.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("Producto no encontrado")
		}
		return nil, err
	}

	// Invalidate the old barcode entry before any mutation lands.
	s.invalidarBarcode(ctx, p.Barcode)

	if req.Nombre != nil {
		p.Nombre = *req.Nombre
	}
	if req.SKU != nil {
		if err := s.checkSKUDisponible(ctx, *req.SKU, p.ID); err != nil {
			return nil, err
		}
		p.SKU = req.SKU
	}
	if req.Barcode != nil {
		p.Barcode = req.Barcode
	}
	if req.Descripcion != nil {
		p.Descripcion = req.Descripcion
	}
	if req.Precio != nil {
		p.Precio = *req.Precio
	}
	if req.Stock != nil {
		p.Stock = *req.Stock
	}

	if err := s.productos.Update(ctx, p); err != nil {
		return nil, err
	}
	s.invalidarBarcode(ctx, p.Barcode)

	resp := toProductoResponse(p)
	return &resp, nil
}

// Eliminar removes a product unless any order references it; historical
// order lines must keep their product row.
func (s *ProductoService) Eliminar(ctx context.Context, id uuid.UUID) error {
	p, err := s.productos.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierror.NotFound("Producto no encontrado")
		}
		return err
	}

	referenced, err := s.pedidos.HasItemsForProducto(ctx, id)
	if err != nil {
		return err
	}
	if referenced {
		return apierror.Conflict("El producto tiene pedidos asociados y no puede eliminarse")
	}

	if err := s.productos.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidarBarcode(ctx, p.Barcode)
	return nil
}

// BuscarPorBarcode resolves a product by its scanner barcode, read-through
// cached in Redis.
func (s *ProductoService) BuscarPorBarcode(ctx context.Context, barcode string) (*dto.ProductoResponse, error) {
	if s.rdb != nil {
		if raw, err := s.rdb.Get(ctx, barcodeCachePrefix+barcode).Result(); err == nil {
			var resp dto.ProductoResponse
			if err := json.Unmarshal([]byte(raw), &resp); err == nil {
				return &resp, nil
			}
		}
	}

	p, err := s.productos.FindByBarcode(ctx, barcode)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("Producto no encontrado")
		}
		return nil, err
	}
	resp := toProductoResponse(p)

	if s.rdb != nil {
		if raw, err := json.Marshal(resp); err == nil {
			if err := s.rdb.Set(ctx, barcodeCachePrefix+barcode, raw, barcodeCacheTTL).Err(); err != nil {
				log.Warn().Err(err).Msg("productos: no se pudo cachear el barcode")
			}
		}
	}
	return &resp, nil
}

// ─── Imágenes ────────────────────────────────────────────────────────────────

func (s *ProductoService) AgregarImagen(ctx context.Context, productoID uuid.UUID, req dto.AgregarImagenRequest) (*dto.ImagenResponse, error) {
	if _, err := s.productos.FindByID(ctx, productoID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("Producto no encontrado")
		}
		return nil, err
	}

	order := 0
	if req.DisplayOrder != nil {
		order = *req.DisplayOrder
	} else {
		max, err := s.imagenes.MaxDisplayOrder(ctx, productoID)
		if err != nil {
			return nil, err
		}
		order = max + 1
	}

	img := &model.ProductoImagen{
		ProductoID:   productoID,
		ImageURL:     req.ImageURL,
		DisplayOrder: order,
	}
	if err := s.imagenes.Create(ctx, img); err != nil {
		return nil, err
	}
	resp := toImagenResponse(img)
	return &resp, nil
}

func (s *ProductoService) EliminarImagen(ctx context.Context, productoID, imagenID uuid.UUID) error {
	img, err := s.imagenes.FindByID(ctx, imagenID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierror.NotFound("Imagen no encontrada")
		}
		return err
	}
	if img.ProductoID != productoID {
		return apierror.NotFound("Imagen no encontrada")
	}
	return s.imagenes.Delete(ctx, imagenID)
}

// ─── Helpers ─────────────────────────────────────────────────────────────────

func (s *ProductoService) checkSKUDisponible(ctx context.Context, sku string, selfID uuid.UUID) error {
	if sku == "" {
		return nil
	}
	existing, err := s.productos.FindBySKU(ctx, sku)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	if existing.ID != selfID {
		return apierror.Conflict("El SKU ya esta en uso")
	}
	return nil
}

func (s *ProductoService) invalidarBarcode(ctx context.Context, barcode *string) {
	if s.rdb == nil || barcode == nil || *barcode == "" {
		return
	}
	if err := s.rdb.Del(ctx, barcodeCachePrefix+*barcode).Err(); err != nil {
		log.Warn().Err(err).Msg("productos: no se pudo invalidar el cache de barcode")
	}
}
