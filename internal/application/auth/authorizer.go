package auth

import "github.com/jhoicas/accounts-api/internal/domain/entity"

// Capabilities acciones permitidas para un rol. Las decisiones de autorización se
// toman contra esta tabla, no comparando strings de rol repartidos por el código.
type Capabilities struct {
	DeleteUsers   bool // puede borrar usuarios (soft delete salvo HardDelete)
	HardDelete    bool // el borrado es físico e irreversible
	ApproveUsers  bool // puede aprobar/desaprobar cuentas
	ListCustomers bool // puede listar clientes de su ámbito
}

// roleCapabilities tabla rol → capacidades.
var roleCapabilities = map[string]Capabilities{
	entity.RoleCustomer:     {},
	entity.RoleUtilityAdmin: {DeleteUsers: true, ApproveUsers: true, ListCustomers: true},
	entity.RoleSuperAdmin:   {DeleteUsers: true, HardDelete: true, ApproveUsers: true, ListCustomers: true},
}

// Authorizer predicados puros de rol y ámbito, evaluados antes de toda operación
// mutante. Sin I/O ni estado.
type Authorizer struct{}

// NewAuthorizer construye el authorizer.
func NewAuthorizer() *Authorizer { return &Authorizer{} }

// CapabilitiesFor devuelve la fila de la tabla para el rol (cero si el rol no existe).
func (a *Authorizer) CapabilitiesFor(role string) Capabilities {
	return roleCapabilities[role]
}

// CanDelete indica si el actor puede borrar usuarios.
func (a *Authorizer) CanDelete(actor *entity.User) bool {
	return a.CapabilitiesFor(actor.Role).DeleteUsers
}

// HardDeletes indica si el borrado del actor es físico. SuperAdmin destruye la fila;
// cualquier otro rol autorizado solo marca deleted=true — la asimetría preserva la
// integridad referencial de los datos históricos.
func (a *Authorizer) HardDeletes(actor *entity.User) bool {
	return a.CapabilitiesFor(actor.Role).HardDelete
}

// CanApprove indica si el actor puede aprobar o desaprobar cuentas.
func (a *Authorizer) CanApprove(actor *entity.User) bool {
	return a.CapabilitiesFor(actor.Role).ApproveUsers
}

// CanListCustomers indica si el actor puede listar clientes.
func (a *Authorizer) CanListCustomers(actor *entity.User) bool {
	return a.CapabilitiesFor(actor.Role).ListCustomers
}

// CanManageUtilityScope limita a un UtilityAdmin a usuarios de su misma utility;
// un SuperAdmin actúa sobre cualquiera.
func (a *Authorizer) CanManageUtilityScope(actor, target *entity.User) bool {
	if actor.IsSuperAdmin() {
		return true
	}
	if actor.IsUtilityAdmin() {
		return actor.UtilityID != "" && actor.UtilityID == target.UtilityID
	}
	return false
}
