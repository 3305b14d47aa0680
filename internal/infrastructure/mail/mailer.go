package mail

import (
	"fmt"

	"github.com/jhoicas/accounts-api/internal/application/ports"
	"github.com/jhoicas/accounts-api/internal/domain/entity"
	"github.com/jhoicas/accounts-api/pkg/config"
	"gopkg.in/gomail.v2"
)

var _ ports.Mailer = (*Mailer)(nil)

// Mailer adaptador SMTP para las notificaciones de cuenta (activación, bienvenida,
// aprobación). Los cuerpos son texto plano; el contenido sensible (hash, tokens de
// sesión) nunca viaja por correo — solo el token de confirmación de email.
type Mailer struct {
	cfg     config.SMTPConfig
	baseURL string // host público de la API, para armar el link de activación
}

// NewMailer construye el adaptador con la configuración SMTP.
func NewMailer(cfg config.SMTPConfig, baseURL string) *Mailer {
	return &Mailer{cfg: cfg, baseURL: baseURL}
}

// SendActivation envía el link de activación con el token de confirmación.
func (m *Mailer) SendActivation(user *entity.User, confirmationToken string) error {
	body := fmt.Sprintf(
		"Hola %s,\n\nActive su cuenta siguiendo este link:\n%s/api/v1/users/activate_account/%s\n",
		user.Name, m.baseURL, confirmationToken,
	)
	return m.send(user.Email, "Account Activation", body)
}

// SendWelcome se envía al completar la activación.
func (m *Mailer) SendWelcome(user *entity.User) error {
	body := fmt.Sprintf(
		"Hola %s,\n\nSu cuenta fue activada. Quedará habilitada para iniciar sesión cuando un administrador la apruebe.\n",
		user.Name,
	)
	return m.send(user.Email, "Welcome", body)
}

// SendApproved se envía cuando un administrador aprueba la cuenta.
func (m *Mailer) SendApproved(user *entity.User) error {
	body := fmt.Sprintf(
		"Hola %s,\n\nSu cuenta fue aprobada. Ya puede iniciar sesión en %s.\n",
		user.Name, m.baseURL,
	)
	return m.send(user.Email, "Welcome Aboard, Your account has been approved", body)
}

func (m *Mailer) send(to, subject, body string) error {
	if m.cfg.Host == "" {
		return fmt.Errorf("smtp no configurado")
	}
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.From)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	d := gomail.NewDialer(m.cfg.Host, m.cfg.Port, m.cfg.Username, m.cfg.Password)
	if err := d.DialAndSend(msg); err != nil {
		return fmt.Errorf("enviar mail: %w", err)
	}
	return nil
}
