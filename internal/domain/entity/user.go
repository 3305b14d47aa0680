package entity

import (
	"strings"
	"time"
)

// Roles válidos para User.
const (
	RoleCustomer     = "Customer"
	RoleUtilityAdmin = "UtilityAdmin"
	RoleSuperAdmin   = "SuperAdmin"
)

// ValidRole verifica que el rol pertenezca al conjunto enumerado.
func ValidRole(role string) bool {
	switch role {
	case RoleCustomer, RoleUtilityAdmin, RoleSuperAdmin:
		return true
	}
	return false
}

// User representa una cuenta del sistema. Un usuario solo puede autenticarse si
// está activado (confirmó su email) Y aprobado (gate administrativo); ambos flags
// se re-verifican en cada request, no solo al hacer login.
type User struct {
	ID                 string
	UtilityID          string // ámbito administrativo de un UtilityAdmin
	Name               string
	Email              string // único, siempre en minúsculas antes de persistir
	PasswordHash       string // bcrypt, nunca plano en dominio después de persistir
	Role               string // Customer, UtilityAdmin, SuperAdmin
	Activated          bool
	ActivatedAt        *time.Time
	Approved           bool
	Deleted            bool // soft delete: el registro se conserva, excluido de queries normales
	PrimaryMobile      string
	CountryCode        string
	TimeZone           string
	ConfirmationToken  string // token de activación por email; vacío tras activar
	ConfirmationSentAt *time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// NormalizeEmail baja a minúsculas y recorta el email antes de persistir o buscar.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// IsUtilityAdmin indica si el usuario administra un ámbito utility.
func (u *User) IsUtilityAdmin() bool { return u.Role == RoleUtilityAdmin }

// IsSuperAdmin indica si el usuario tiene autoridad global.
func (u *User) IsSuperAdmin() bool { return u.Role == RoleSuperAdmin }

// Summary es la vista mínima del usuario que viaja en la respuesta de login.
type Summary struct {
	ID    string
	Email string
	Name  string
	Role  string
}

// Summarize produce el resumen sin campos sensibles.
func (u *User) Summarize() Summary {
	return Summary{ID: u.ID, Email: u.Email, Name: u.Name, Role: u.Role}
}
