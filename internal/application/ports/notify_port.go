package ports

import "github.com/jhoicas/accounts-api/internal/domain/entity"

// Mailer puerto de notificaciones por correo. Las implementaciones son best-effort:
// el flujo de cuenta nunca falla porque el mail no salió (el caller loguea y sigue).
type Mailer interface {
	// SendActivation envía el link de activación con el token de confirmación.
	SendActivation(user *entity.User, confirmationToken string) error
	// SendWelcome se envía al completar la activación.
	SendWelcome(user *entity.User) error
	// SendApproved se envía cuando un administrador aprueba la cuenta.
	SendApproved(user *entity.User) error
}
