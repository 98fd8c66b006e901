package entity

import "time"

// Roles de usuario. El orden importa: staff < manager < admin.
const (
	RoleStaff   = "staff"
	RoleManager = "manager"
	RoleAdmin   = "admin"
)

// User representa un usuario del sistema. El ledger nunca lo consulta:
// recibe el ActorID ya resuelto por el middleware de auth.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	Role         string // staff, manager, admin
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
