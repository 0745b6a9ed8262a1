package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/santiagozurbrigk/libreria-lowcost/internal/apierror"
	"github.com/santiagozurbrigk/libreria-lowcost/internal/dto"
	"github.com/santiagozurbrigk/libreria-lowcost/internal/model"
	"github.com/santiagozurbrigk/libreria-lowcost/internal/repository"
	"github.com/santiagozurbrigk/libreria-lowcost/internal/worker"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// toleranciaCentavo absorbs rounding drift between the client-computed
// subtotals and price×quantity.
var toleranciaCentavo = decimal.New(1, -2)

// Notification event types delivered to n8n.
const (
	EventoPedidoListo     = "order_ready"
	EventoPedidoEntregado = "order_delivered"
)

// Notificador enqueues lifecycle notifications; satisfied by *worker.Dispatcher.
type Notificador interface {
	EnqueueNotificacion(ctx context.Context, job worker.NotificacionJob) error
}

// PedidoService implements the reservation workflow: checkout with atomic
// stock reservation, forward-only lifecycle transitions and async
// notifications on the states customers care about.
type PedidoService struct {
	pedidos   repository.PedidoRepository
	productos repository.ProductoRepository
	clientes  *ClienteService
	notifier  Notificador
}

func NewPedidoService(
	pedidos repository.PedidoRepository,
	productos repository.ProductoRepository,
	clientes *ClienteService,
	notifier Notificador,
) *PedidoService {
	return &PedidoService{pedidos: pedidos, productos: productos, clientes: clientes, notifier: notifier}
}

// lineaPedido is a validated checkout line ready for persistence.
type lineaPedido struct {
	producto *model.Producto
	cantidad int
	precio   decimal.Decimal // unit price derived from the submitted subtotal
}

// Crear runs the checkout. Validation is fail-fast against a snapshot; the
// authoritative stock reservation happens inside the transaction via a
// conditional decrement, so concurrent checkouts can never oversell.
func (s *PedidoService) Crear(ctx context.Context, req dto.CrearPedidoRequest, usuarioID *uuid.UUID) (*dto.PedidoResponse, error) {
	lineas, err := s.validarItems(ctx, req.Items)
	if err != nil {
		return nil, err
	}

	suma := decimal.Zero
	for _, item := range req.Items {
		suma = suma.Add(item.Subtotal)
	}
	if suma.Sub(req.Total).Abs().GreaterThan(toleranciaCentavo) {
		return nil, apierror.Validation("El total no coincide con la suma de los items")
	}

	cliente, err := s.clientes.Resolver(ctx, usuarioID, req.CustomerPhone)
	if err != nil {
		return nil, err
	}

	barcode := generarBarcodePedido()
	pedido := &model.Pedido{
		ClienteID:     cliente.ID,
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		CustomerEmail: req.CustomerEmail,
		Total:         req.Total,
		Estado:        model.EstadoPendiente,
		Barcode:       &barcode,
	}
	for _, l := range lineas {
		pedido.Items = append(pedido.Items, model.PedidoItem{
			ProductoID: l.producto.ID,
			Cantidad:   l.cantidad,
			Precio:     l.precio,
		})
	}

	err = runTx(ctx, s.pedidos.DB(), func(tx *gorm.DB) error {
		for _, l := range lineas {
			if err := s.productos.DescontarStockTx(tx, l.producto.ID, l.cantidad); err != nil {
				if errors.Is(err, repository.ErrStockInsuficiente) {
					return apierror.Conflict(fmt.Sprintf("Stock insuficiente para %s", l.producto.Nombre))
				}
				return err
			}
		}
		return s.pedidos.CreateTx(tx, pedido)
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("pedido_id", pedido.ID.String()).
		Str("cliente_id", cliente.ID.String()).
		Str("total", req.Total.String()).
		Msg("pedidos: pedido creado")

	creado, err := s.pedidos.FindByID(ctx, pedido.ID)
	if err != nil {
		return nil, err
	}
	resp := toPedidoResponse(creado)
	return &resp, nil
}

func (s *PedidoService) validarItems(ctx context.Context, items []dto.ItemPedidoRequest) ([]lineaPedido, error) {
	lineas := make([]lineaPedido, 0, len(items))
	for _, item := range items {
		productoID, err := uuid.Parse(item.ProductoID)
		if err != nil {
			return nil, apierror.Validation("product_id invalido")
		}

		p, err := s.productos.FindByID(ctx, productoID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apierror.NotFound(fmt.Sprintf("Producto %s no encontrado", item.ProductoID))
			}
			return nil, err
		}

		if p.Stock < item.Cantidad {
			return nil, apierror.Conflict(fmt.Sprintf("Stock insuficiente para %s", p.Nombre))
		}

		esperado := p.Precio.Mul(decimal.NewFromInt(int64(item.Cantidad)))
		if item.Subtotal.Sub(esperado).Abs().GreaterThan(toleranciaCentavo) {
			return nil, apierror.Validation(fmt.Sprintf("El subtotal de %s no coincide con el precio vigente", p.Nombre))
		}

		lineas = append(lineas, lineaPedido{
			producto: p,
			cantidad: item.Cantidad,
			precio:   item.Subtotal.Div(decimal.NewFromInt(int64(item.Cantidad))).Round(2),
		})
	}
	return lineas, nil
}

// Obtener returns one order. With soloCliente set (cliente-role callers) the
// order must belong to that client; anything else reads as not found so order
// ids cannot be probed for other customers' data.
func (s *PedidoService) Obtener(ctx context.Context, id uuid.UUID, soloCliente *uuid.UUID) (*dto.PedidoResponse, error) {
	p, err := s.pedidos.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("Pedido no encontrado")
		}
		return nil, err
	}
	if soloCliente != nil && p.ClienteID != *soloCliente {
		return nil, apierror.NotFound("Pedido no encontrado")
	}
	resp := toPedidoResponse(p)
	return &resp, nil
}

func (s *PedidoService) Listar(ctx context.Context, filter dto.PedidoFilter) (*dto.PedidoListResponse, error) {
	pedidos, total, err := s.pedidos.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.PedidoResponse, 0, len(pedidos))
	for i := range pedidos {
		data = append(data, toPedidoResponse(&pedidos[i]))
	}
	return &dto.PedidoListResponse{
		Data:       data,
		Pagination: buildPagination(filter.Page, filter.Limit, total),
	}, nil
}

// Actualizar applies a staff update. Lifecycle transitions are forward-only;
// winding back requires the explicit Reabrir operation. EsPagado moves
// independently of the lifecycle.
func (s *PedidoService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarPedidoRequest) (*dto.PedidoResponse, error) {
	p, err := s.pedidos.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("Pedido no encontrado")
		}
		return nil, err
	}

	estadoAnterior := p.Estado
	if req.Estado != nil && *req.Estado != p.Estado {
		if model.EstadoRank(*req.Estado) < model.EstadoRank(p.Estado) {
			return nil, apierror.Validation("No se puede retroceder el estado del pedido")
		}
		p.Estado = *req.Estado
	}
	if req.EsPagado != nil {
		p.EsPagado = *req.EsPagado
	}

	if err := s.pedidos.Update(ctx, p); err != nil {
		return nil, err
	}

	if p.Estado != estadoAnterior {
		s.notificarCambioEstado(ctx, p)
	}

	resp := toPedidoResponse(p)
	return &resp, nil
}

// notificarCambioEstado enqueues the event for states the customer is told
// about. Delivery is at-most-once: a failed enqueue is logged, never surfaced.
func (s *PedidoService) notificarCambioEstado(ctx context.Context, p *model.Pedido) {
	var tipo string
	switch p.Estado {
	case model.EstadoListo:
		tipo = EventoPedidoListo
	case model.EstadoEntregado:
		tipo = EventoPedidoEntregado
	default:
		return
	}

	job := worker.NotificacionJob{
		Tipo:     tipo,
		PedidoID: p.ID.String(),
		Data:     toPedidoResponse(p),
	}
	if err := s.notifier.EnqueueNotificacion(ctx, job); err != nil {
		log.Error().Err(err).
			Str("pedido_id", p.ID.String()).
			Str("tipo", tipo).
			Msg("pedidos: no se pudo encolar la notificacion")
	}
}

// Reabrir winds a delivered or ready order back to pendiente. It exists so
// the normal update path can stay strictly forward-only.
func (s *PedidoService) Reabrir(ctx context.Context, id uuid.UUID) (*dto.PedidoResponse, error) {
	p, err := s.pedidos.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("Pedido no encontrado")
		}
		return nil, err
	}
	if p.Estado == model.EstadoPendiente {
		return nil, apierror.Validation("El pedido ya esta pendiente")
	}

	p.Estado = model.EstadoPendiente
	if err := s.pedidos.Update(ctx, p); err != nil {
		return nil, err
	}

	log.Info().Str("pedido_id", p.ID.String()).Msg("pedidos: pedido reabierto")
	resp := toPedidoResponse(p)
	return &resp, nil
}

// Eliminar removes the order and its items. Reserved stock is not restored:
// cancellations with restocking are a manual inventory adjustment.
func (s *PedidoService) Eliminar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.pedidos.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierror.NotFound("Pedido no encontrado")
		}
		return err
	}
	return s.pedidos.Delete(ctx, id)
}

// generarBarcodePedido builds the pickup code printed on the receipt.
func generarBarcodePedido() string {
	return fmt.Sprintf("ORD-%d", time.Now().UnixNano()/int64(time.Millisecond))
}
