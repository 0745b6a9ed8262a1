package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type RegisterRequest struct {
	Nombre   string `json:"name"     validate:"required,min=2,max=100"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Rol      string `json:"role"     validate:"omitempty,oneof=admin empleado cliente"`
}

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
}

type ActualizarUsuarioRequest struct {
	Nombre string `json:"name"  validate:"omitempty,min=2,max=100"`
	Email  string `json:"email" validate:"omitempty,email"`
	Rol    string `json:"role"  validate:"omitempty,oneof=admin empleado cliente"`
}

// ─── Filter ──────────────────────────────────────────────────────────────────

type UsuarioFilter struct {
	Page  int `form:"page,default=1"   validate:"min=1"`
	Limit int `form:"limit,default=20" validate:"min=1,max=100"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type UsuarioResponse struct {
	ID        string `json:"id"`
	Nombre    string `json:"name"`
	Email     string `json:"email"`
	Rol       string `json:"role"`
	CreatedAt string `json:"created_at"`
}

type UsuarioListResponse struct {
	Data       []UsuarioResponse `json:"data"`
	Pagination Pagination        `json:"pagination"`
}

type LoginResponse struct {
	Token string          `json:"token"`
	User  UsuarioResponse `json:"user"`
}
