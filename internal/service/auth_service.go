package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/santiagozurbrigk/libreria-lowcost/internal/apierror"
	"github.com/santiagozurbrigk/libreria-lowcost/internal/dto"
	"github.com/santiagozurbrigk/libreria-lowcost/internal/model"
	"github.com/santiagozurbrigk/libreria-lowcost/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const bcryptCost = 12

// AuthService handles registration, login and account administration.
type AuthService struct {
	usuarios  repository.UsuarioRepository
	jwtSecret []byte
	tokenTTL  time.Duration
}

func NewAuthService(usuarios repository.UsuarioRepository, jwtSecret string, expirationHours int) *AuthService {
	return &AuthService{
		usuarios:  usuarios,
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  time.Duration(expirationHours) * time.Hour,
	}
}

// Register creates an account. Self-registration always yields the cliente
// role; elevated roles are assigned afterwards by an admin.
func (s *AuthService) Register(ctx context.Context, req dto.RegisterRequest) (*dto.LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if _, err := s.usuarios.FindByEmail(ctx, email); err == nil {
		return nil, apierror.Conflict("El email ya esta registrado")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, err
	}

	u := &model.Usuario{
		Nombre:       strings.TrimSpace(req.Nombre),
		Email:        email,
		PasswordHash: string(hash),
		RolID:        model.RolID(model.RolCliente),
	}
	if err := s.usuarios.Create(ctx, u); err != nil {
		return nil, err
	}

	log.Info().Str("email", email).Msg("auth: usuario registrado")
	return s.issueSession(u)
}

// Login verifies credentials and issues a signed token.
func (s *AuthService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	u, err := s.usuarios.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.Unauthorized("Credenciales invalidas")
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return nil, apierror.Unauthorized("Credenciales invalidas")
	}

	return s.issueSession(u)
}

func (s *AuthService) issueSession(u *model.Usuario) (*dto.LoginResponse, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"userId": u.ID.String(),
		"email":  u.Email,
		"role":   u.Rol(),
		"iat":    now.Unix(),
		"exp":    now.Add(s.tokenTTL).Unix(),
	})
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{Token: signed, User: toUsuarioResponse(u)}, nil
}

// Perfil returns the account behind an authenticated session.
func (s *AuthService) Perfil(ctx context.Context, userID uuid.UUID) (*dto.UsuarioResponse, error) {
	u, err := s.usuarios.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("Usuario no encontrado")
		}
		return nil, err
	}
	resp := toUsuarioResponse(u)
	return &resp, nil
}

// ─── Administración de usuarios (solo admin) ─────────────────────────────────

func (s *AuthService) ListarUsuarios(ctx context.Context, filter dto.UsuarioFilter) (*dto.UsuarioListResponse, error) {
	users, total, err := s.usuarios.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.UsuarioResponse, 0, len(users))
	for i := range users {
		data = append(data, toUsuarioResponse(&users[i]))
	}
	return &dto.UsuarioListResponse{
		Data:       data,
		Pagination: buildPagination(filter.Page, filter.Limit, total),
	}, nil
}

// CrearUsuario lets an admin create an account with any role.
func (s *AuthService) CrearUsuario(ctx context.Context, req dto.RegisterRequest) (*dto.UsuarioResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if _, err := s.usuarios.FindByEmail(ctx, email); err == nil {
		return nil, apierror.Conflict("El email ya esta registrado")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, err
	}

	rol := req.Rol
	if rol == "" {
		rol = model.RolCliente
	}
	u := &model.Usuario{
		Nombre:       strings.TrimSpace(req.Nombre),
		Email:        email,
		PasswordHash: string(hash),
		RolID:        model.RolID(rol),
	}
	if err := s.usuarios.Create(ctx, u); err != nil {
		return nil, err
	}
	resp := toUsuarioResponse(u)
	return &resp, nil
}

func (s *AuthService) ActualizarUsuario(ctx context.Context, id uuid.UUID, req dto.ActualizarUsuarioRequest) (*dto.UsuarioResponse, error) {
	u, err := s.usuarios.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("Usuario no encontrado")
		}
		return nil, err
	}

	if req.Nombre != "" {
		u.Nombre = strings.TrimSpace(req.Nombre)
	}
	if req.Email != "" {
		email := strings.ToLower(strings.TrimSpace(req.Email))
		if email != u.Email {
			if _, err := s.usuarios.FindByEmail(ctx, email); err == nil {
				return nil, apierror.Conflict("El email ya esta registrado")
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, err
			}
			u.Email = email
		}
	}
	if req.Rol != "" {
		u.RolID = model.RolID(req.Rol)
	}

	if err := s.usuarios.Update(ctx, u); err != nil {
		return nil, err
	}
	resp := toUsuarioResponse(u)
	return &resp, nil
}

// EliminarUsuario removes an account. An admin cannot delete itself; that
// guard keeps at least the acting admin alive.
func (s *AuthService) EliminarUsuario(ctx context.Context, id, actorID uuid.UUID) error {
	if id == actorID {
		return apierror.Validation("No puedes eliminar tu propia cuenta")
	}
	if _, err := s.usuarios.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierror.NotFound("Usuario no encontrado")
		}
		return err
	}
	return s.usuarios.Delete(ctx, id)
}
