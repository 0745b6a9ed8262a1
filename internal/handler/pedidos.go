package handler

import (
	"net/http"

	"github.com/santiagozurbrigk/libreria-lowcost/internal/dto"
	"github.com/santiagozurbrigk/libreria-lowcost/internal/middleware"
	"github.com/santiagozurbrigk/libreria-lowcost/internal/model"
	"github.com/santiagozurbrigk/libreria-lowcost/internal/repository"
	"github.com/santiagozurbrigk/libreria-lowcost/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type PedidosHandler struct {
	svc      *service.PedidoService
	clientes repository.ClienteRepository
}

func NewPedidosHandler(svc *service.PedidoService, clientes repository.ClienteRepository) *PedidosHandler {
	return &PedidosHandler{svc: svc, clientes: clientes}
}

// Crear godoc
// @Summary Crear pedido (checkout)
// @Tags pedidos
// @Accept json
// @Produce json
// @Param body body dto.CrearPedidoRequest true "Pedido"
// @Success 201 {object} dto.PedidoResponse
// @Failure 409 {object} apierror.APIError "Stock insuficiente"
// @Router /api/orders [post]
func (h *PedidosHandler) Crear(c *gin.Context) {
	var req dto.CrearPedidoRequest
	if !bindAndValidate(c, &req) {
		return
	}

	// OptionalAuth: a logged-in customer gets the order linked to their account.
	var usuarioID *uuid.UUID
	if claims := middleware.GetClaims(c); claims != nil {
		if id, err := uuid.Parse(claims.UserID); err == nil {
			usuarioID = &id
		}
	}

	resp, err := h.svc.Crear(c.Request.Context(), req, usuarioID)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusCreated, resp)
}

// clientePropio resolves the caller's Cliente when the token carries the
// cliente role. esCliente reports the role; a nil id with esCliente=true
// means the account has never placed an order.
func (h *PedidosHandler) clientePropio(c *gin.Context) (clienteID *uuid.UUID, esCliente bool, err error) {
	claims := middleware.GetClaims(c)
	if claims == nil || claims.Rol != model.RolCliente {
		return nil, false, nil
	}
	usuarioID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, true, err
	}
	cliente, err := h.clientes.FindByUsuarioID(c.Request.Context(), usuarioID)
	if err != nil {
		return nil, true, nil
	}
	return &cliente.ID, true, nil
}

func (h *PedidosHandler) Obtener(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	clienteID, esCliente, err := h.clientePropio(c)
	if err != nil {
		fail(c, err)
		return
	}
	if esCliente && clienteID == nil {
		// No Cliente record means no orders to read.
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Pedido no encontrado"})
		return
	}

	resp, err := h.svc.Obtener(c.Request.Context(), id, clienteID)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, resp)
}

// Listar returns orders. Staff see everything; cliente-role callers only
// their own orders, enforced here by pinning the filter to their Cliente.
func (h *PedidosHandler) Listar(c *gin.Context) {
	var filter dto.PedidoFilter
	if !bindQuery(c, &filter) {
		return
	}

	clienteID, esCliente, err := h.clientePropio(c)
	if err != nil {
		fail(c, err)
		return
	}
	if esCliente {
		if clienteID == nil {
			// No Cliente yet means no orders yet.
			respondList(c, []dto.PedidoResponse{}, dto.Pagination{
				Page: filter.Page, Limit: filter.Limit,
			})
			return
		}
		filter.ClienteID = clienteID.String()
	}

	resp, err := h.svc.Listar(c.Request.Context(), filter)
	if err != nil {
		fail(c, err)
		return
	}
	respondList(c, resp.Data, resp.Pagination)
}

func (h *PedidosHandler) Actualizar(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.ActualizarPedidoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Actualizar(c.Request.Context(), id, req)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, resp)
}

func (h *PedidosHandler) Reabrir(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.Reabrir(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, resp)
}

func (h *PedidosHandler) Eliminar(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Eliminar(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Pedido eliminado")
}
