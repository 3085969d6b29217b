package entity

import "time"

// Roles de usuario.
const (
	RoleAdmin     = "admin"
	RoleBodeguero = "bodeguero"
	RoleVendedor  = "vendedor"
)

// User representa un usuario de la aplicación. El password se guarda
// hasheado con bcrypt; nunca en texto plano.
type User struct {
	ID           string
	Username     string
	PasswordHash string
	Name         string
	Role         string
	Status       string // active | suspended
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
