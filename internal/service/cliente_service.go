package service

import (
	"context"
	"errors"

	"github.com/santiagozurbrigk/libreria-lowcost/internal/model"
	"github.com/santiagozurbrigk/libreria-lowcost/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ClienteService resolves the Cliente record an order belongs to.
type ClienteService struct {
	clientes repository.ClienteRepository
}

func NewClienteService(clientes repository.ClienteRepository) *ClienteService {
	return &ClienteService{clientes: clientes}
}

// Resolver finds or creates the client for a checkout. Authenticated callers
// are keyed by their user id; guests are keyed by phone number, so repeat
// guest orders with the same phone reuse one Cliente.
func (s *ClienteService) Resolver(ctx context.Context, usuarioID *uuid.UUID, telefono string) (*model.Cliente, error) {
	if usuarioID != nil {
		c, err := s.clientes.FindByUsuarioID(ctx, *usuarioID)
		if err == nil {
			return c, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		c = &model.Cliente{Telefono: &telefono, UsuarioID: usuarioID}
		if err := s.clientes.Create(ctx, c); err != nil {
			return nil, err
		}
		return c, nil
	}

	c, err := s.clientes.FindByTelefono(ctx, telefono)
	if err == nil {
		return c, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	c = &model.Cliente{Telefono: &telefono}
	if err := s.clientes.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}
