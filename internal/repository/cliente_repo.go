package repository

import (
	"context"

	"github.com/santiagozurbrigk/libreria-lowcost/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ClienteRepository interface {
	Create(ctx context.Context, c *model.Cliente) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Cliente, error)
	FindByTelefono(ctx context.Context, telefono string) (*model.Cliente, error)
	FindByUsuarioID(ctx context.Context, usuarioID uuid.UUID) (*model.Cliente, error)
}

type clienteRepo struct{ db *gorm.DB }

func NewClienteRepository(db *gorm.DB) ClienteRepository { return &clienteRepo{db: db} }

func (r *clienteRepo) Create(ctx context.Context, c *model.Cliente) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *clienteRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Cliente, error) {
	var c model.Cliente
	err := r.db.WithContext(ctx).Preload("Usuario").First(&c, "id = ?", id).Error
	return &c, err
}

func (r *clienteRepo) FindByTelefono(ctx context.Context, telefono string) (*model.Cliente, error) {
	var c model.Cliente
	err := r.db.WithContext(ctx).Where("telefono = ?", telefono).First(&c).Error
	return &c, err
}

func (r *clienteRepo) FindByUsuarioID(ctx context.Context, usuarioID uuid.UUID) (*model.Cliente, error) {
	var c model.Cliente
	err := r.db.WithContext(ctx).Where("usuario_id = ?", usuarioID).First(&c).Error
	return &c, err
}
