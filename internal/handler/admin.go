package handler

import (
	"net/http"
	"strconv"

	"github.com/santiagozurbrigk/libreria-lowcost/internal/service"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct{ svc *service.AdminService }

func NewAdminHandler(svc *service.AdminService) *AdminHandler { return &AdminHandler{svc: svc} }

func periodQuery(c *gin.Context) int {
	period, err := strconv.Atoi(c.DefaultQuery("period", "30"))
	if err != nil || period < 1 || period > 365 {
		return 30
	}
	return period
}

func limitQuery(c *gin.Context) int {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "5"))
	if err != nil || limit < 1 || limit > 50 {
		return 5
	}
	return limit
}

func (h *AdminHandler) VentasStats(c *gin.Context) {
	resp, err := h.svc.VentasStats(c.Request.Context(), periodQuery(c))
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, resp)
}

func (h *AdminHandler) EconomicStats(c *gin.Context) {
	resp, err := h.svc.EconomicStats(c.Request.Context(), periodQuery(c))
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, resp)
}

func (h *AdminHandler) TopProductos(c *gin.Context) {
	resp, err := h.svc.TopProductos(c.Request.Context(), limitQuery(c))
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, resp)
}

func (h *AdminHandler) TopClientes(c *gin.Context) {
	resp, err := h.svc.TopClientes(c.Request.Context(), limitQuery(c))
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, resp)
}

func (h *AdminHandler) Dashboard(c *gin.Context) {
	resp, err := h.svc.Dashboard(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, resp)
}
