package email

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/tu-usuario/mercado-b2b/internal/application/auth"
	"github.com/tu-usuario/mercado-b2b/pkg/config"
)

var _ auth.EmailSender = (*Sender)(nil)

// Sender adaptador SMTP (gomail) para los correos de recuperación de contraseña.
type Sender struct {
	cfg config.SMTPConfig
}

// NewSender construye el adaptador con la configuración SMTP.
func NewSender(cfg config.SMTPConfig) *Sender {
	return &Sender{cfg: cfg}
}

// SendOTP envía el código de recuperación al email de la cuenta.
func (s *Sender) SendOTP(to, otp string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.cfg.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", "Código de recuperación de contraseña")
	m.SetBody("text/html", fmt.Sprintf(
		"<p>Tu código de recuperación es <strong>%s</strong>. Vence en 10 minutos.</p>", otp))

	d := gomail.NewDialer(s.cfg.Host, s.cfg.Port, s.cfg.Username, s.cfg.Password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("enviar OTP: %w", err)
	}
	return nil
}
