package model

import (
	"time"

	"github.com/google/uuid"
)

// Cliente identifies who placed a reservation. Guest checkouts are keyed by
// phone number; registered users get a Cliente linked via UsuarioID on their
// first order. Never deleted by the normal flow.
type Cliente struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Telefono  *string   `gorm:"index"`
	Direccion *string
	UsuarioID *uuid.UUID `gorm:"type:uuid;index"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Usuario *Usuario `gorm:"foreignKey:UsuarioID"`
}

func (Cliente) TableName() string { return "clientes" }
