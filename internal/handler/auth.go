package handler

import (
	"net/http"

	"github.com/santiagozurbrigk/libreria-lowcost/internal/dto"
	"github.com/santiagozurbrigk/libreria-lowcost/internal/middleware"
	"github.com/santiagozurbrigk/libreria-lowcost/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AuthHandler struct{ svc *service.AuthService }

func NewAuthHandler(svc *service.AuthService) *AuthHandler { return &AuthHandler{svc: svc} }

// Register godoc
// @Summary Registro de cliente
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.RegisterRequest true "Datos de registro"
// @Success 201 {object} dto.LoginResponse
// @Failure 409 {object} apierror.APIError
// @Router /api/auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Register(c.Request.Context(), req)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusCreated, resp)
}

// Login godoc
// @Summary Login de usuario
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.LoginRequest true "Credenciales"
// @Success 200 {object} dto.LoginResponse
// @Failure 401 {object} apierror.APIError
// @Router /api/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Login(c.Request.Context(), req)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, resp)
}

func (h *AuthHandler) Perfil(c *gin.Context) {
	claims := middleware.GetClaims(c)
	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		fail(c, err)
		return
	}
	resp, err := h.svc.Perfil(c.Request.Context(), userID)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, resp)
}

// Logout exists for API symmetry; tokens are stateless so the client just
// discards its copy.
func (h *AuthHandler) Logout(c *gin.Context) {
	respondMessage(c, http.StatusOK, "Sesion cerrada")
}

// ── Usuarios Handler (solo admin) ────────────────────────────────────────────

type UsuariosHandler struct{ svc *service.AuthService }

func NewUsuariosHandler(svc *service.AuthService) *UsuariosHandler {
	return &UsuariosHandler{svc: svc}
}

func (h *UsuariosHandler) Crear(c *gin.Context) {
	var req dto.RegisterRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CrearUsuario(c.Request.Context(), req)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusCreated, resp)
}

func (h *UsuariosHandler) Listar(c *gin.Context) {
	var filter dto.UsuarioFilter
	if !bindQuery(c, &filter) {
		return
	}
	resp, err := h.svc.ListarUsuarios(c.Request.Context(), filter)
	if err != nil {
		fail(c, err)
		return
	}
	respondList(c, resp.Data, resp.Pagination)
}

func (h *UsuariosHandler) Obtener(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.Perfil(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, resp)
}

func (h *UsuariosHandler) Actualizar(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.ActualizarUsuarioRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.ActualizarUsuario(c.Request.Context(), id, req)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, resp)
}

func (h *UsuariosHandler) Eliminar(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	claims := middleware.GetClaims(c)
	actorID, err := uuid.Parse(claims.UserID)
	if err != nil {
		fail(c, err)
		return
	}
	if err := h.svc.EliminarUsuario(c.Request.Context(), id, actorID); err != nil {
		fail(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Usuario eliminado")
}
