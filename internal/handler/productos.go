package handler

import (
	"net/http"

	"github.com/santiagozurbrigk/libreria-lowcost/internal/dto"
	"github.com/santiagozurbrigk/libreria-lowcost/internal/service"

	"github.com/gin-gonic/gin"
)

type ProductosHandler struct{ svc *service.ProductoService }

func NewProductosHandler(svc *service.ProductoService) *ProductosHandler {
	return &ProductosHandler{svc: svc}
}

// Listar godoc
// @Summary Catalogo de productos
// @Tags productos
// @Produce json
// @Param search query string false "Busqueda por nombre, sku o barcode"
// @Param page query int false "Pagina"
// @Param limit query int false "Tamano de pagina"
// @Success 200 {object} dto.ProductoListResponse
// @Router /api/products [get]
func (h *ProductosHandler) Listar(c *gin.Context) {
	var filter dto.ProductoFilter
	if !bindQuery(c, &filter) {
		return
	}
	resp, err := h.svc.Listar(c.Request.Context(), filter)
	if err != nil {
		fail(c, err)
		return
	}
	respondList(c, resp.Data, resp.Pagination)
}

func (h *ProductosHandler) Obtener(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.Obtener(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, resp)
}

func (h *ProductosHandler) Crear(c *gin.Context) {
	var req dto.CrearProductoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Crear(c.Request.Context(), req)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusCreated, resp)
}

func (h *ProductosHandler) Actualizar(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.ActualizarProductoRequest
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

func (h *ProductosHandler) Eliminar(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Eliminar(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Producto eliminado")
}

// BuscarPorBarcode serves the in-store scanner.
func (h *ProductosHandler) BuscarPorBarcode(c *gin.Context) {
	barcode := c.Param("barcode")
	if barcode == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Barcode requerido"})
		return
	}
	resp, err := h.svc.BuscarPorBarcode(c.Request.Context(), barcode)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, resp)
}

// ── Imágenes ─────────────────────────────────────────────────────────────────

func (h *ProductosHandler) AgregarImagen(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.AgregarImagenRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AgregarImagen(c.Request.Context(), id, req)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusCreated, resp)
}

func (h *ProductosHandler) EliminarImagen(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	imagenID, ok := parseUUIDParam(c, "imageId")
	if !ok {
		return
	}
	if err := h.svc.EliminarImagen(c.Request.Context(), id, imagenID); err != nil {
		fail(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Imagen eliminada")
}
