package model

import (
	"time"

	"github.com/google/uuid"
)

// Roles form a closed set, stored as a small integer.
const (
	RolAdmin    = "admin"
	RolEmpleado = "empleado"
	RolCliente  = "cliente"
)

// Usuario stores registered accounts with role-based access.
// RolID: 1=admin, 2=empleado, 3=cliente (default).
type Usuario struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre       string    `gorm:"column:full_name;not null"`
	Email        string    `gorm:"uniqueIndex;not null"`
	PasswordHash string    `gorm:"not null"`
	RolID        int       `gorm:"not null;default:3"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (Usuario) TableName() string { return "usuarios" }

// Rol returns the role name for the stored id; unknown ids degrade to cliente.
func (u *Usuario) Rol() string { return RolFromID(u.RolID) }

func RolFromID(id int) string {
	switch id {
	case 1:
		return RolAdmin
	case 2:
		return RolEmpleado
	default:
		return RolCliente
	}
}

func RolID(rol string) int {
	switch rol {
	case RolAdmin:
		return 1
	case RolEmpleado:
		return 2
	default:
		return 3
	}
}
