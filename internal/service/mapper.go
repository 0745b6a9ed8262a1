package service

import (
	"time"

	"github.com/santiagozurbrigk/libreria-lowcost/internal/dto"
	"github.com/santiagozurbrigk/libreria-lowcost/internal/model"
)

func toUsuarioResponse(u *model.Usuario) dto.UsuarioResponse {
	return dto.UsuarioResponse{
		ID:        u.ID.String(),
		Nombre:    u.Nombre,
		Email:     u.Email,
		Rol:       u.Rol(),
		CreatedAt: u.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func toImagenResponse(img *model.ProductoImagen) dto.ImagenResponse {
	return dto.ImagenResponse{
		ID:           img.ID.String(),
		ImageURL:     img.ImageURL,
		DisplayOrder: img.DisplayOrder,
	}
}

func toProductoResponse(p *model.Producto) dto.ProductoResponse {
	imagenes := make([]dto.ImagenResponse, 0, len(p.Imagenes))
	for i := range p.Imagenes {
		imagenes = append(imagenes, toImagenResponse(&p.Imagenes[i]))
	}
	return dto.ProductoResponse{
		ID:          p.ID.String(),
		Nombre:      p.Nombre,
		SKU:         p.SKU,
		Barcode:     p.Barcode,
		Descripcion: p.Descripcion,
		Precio:      p.Precio,
		Stock:       p.Stock,
		Imagenes:    imagenes,
		CreatedAt:   p.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func toPedidoResponse(p *model.Pedido) dto.PedidoResponse {
	items := make([]dto.ItemPedidoResponse, 0, len(p.Items))
	for i := range p.Items {
		item := &p.Items[i]
		ref := dto.ProductoRefResponse{ID: item.ProductoID.String()}
		if item.Producto != nil {
			ref.Nombre = item.Producto.Nombre
			ref.SKU = item.Producto.SKU
		}
		items = append(items, dto.ItemPedidoResponse{
			ID:       item.ID.String(),
			Cantidad: item.Cantidad,
			Precio:   item.Precio,
			Producto: ref,
		})
	}

	resp := dto.PedidoResponse{
		ID:            p.ID.String(),
		CustomerName:  p.CustomerName,
		CustomerPhone: p.CustomerPhone,
		CustomerEmail: p.CustomerEmail,
		Total:         p.Total,
		Estado:        p.Estado,
		EsPagado:      p.EsPagado,
		Barcode:       p.Barcode,
		Items:         items,
		CreatedAt:     p.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:     p.UpdatedAt.UTC().Format(time.RFC3339),
	}

	if p.Cliente != nil {
		cliente := &dto.ClientePedidoResponse{
			ID:        p.Cliente.ID.String(),
			Telefono:  p.Cliente.Telefono,
			Direccion: p.Cliente.Direccion,
		}
		if p.Cliente.Usuario != nil {
			u := toUsuarioResponse(p.Cliente.Usuario)
			cliente.Usuario = &u
		}
		resp.Cliente = cliente
	}
	return resp
}

func buildPagination(page, limit int, total int64) dto.Pagination {
	pages := int((total + int64(limit) - 1) / int64(limit))
	return dto.Pagination{Page: page, Limit: limit, Total: total, Pages: pages}
}
