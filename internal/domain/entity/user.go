package entity

import "time"

// Roles de usuario.
const (
	RoleOperador   = "operador"   // fumigador en campo
	RoleSupervisor = "supervisor" // aprueba o rechaza registros
	RoleAdmin      = "admin"      // inventario y cumplimiento
)

// User usuario de la aplicación. ClientIDs acota qué clientes puede operar
// un fumigador; vacío significa sin restricción (supervisores y admins).
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	Role         string
	ClientIDs    []string
	Status       string // active, disabled
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
