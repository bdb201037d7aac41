package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/tu-usuario/mercado-b2b/internal/domain"
	"github.com/tu-usuario/mercado-b2b/internal/domain/entity"
	"github.com/tu-usuario/mercado-b2b/internal/domain/repository"

	"golang.org/x/crypto/bcrypt"
)

// otpTTL vigencia del código de recuperación.
const otpTTL = 10 * time.Minute

// EmailSender puerto de envío de correo; el adaptador SMTP vive en infraestructura.
type EmailSender interface {
	SendOTP(to, otp string) error
}

// PasswordResetUseCase recuperación de contraseña por OTP de 6 dígitos
// enviado al email de la cuenta.
type PasswordResetUseCase struct {
	repo   repository.UserRepository
	mailer EmailSender
}

// NewPasswordResetUseCase construye el caso de uso de recuperación.
func NewPasswordResetUseCase(repo repository.UserRepository, mailer EmailSender) *PasswordResetUseCase {
	return &PasswordResetUseCase{repo: repo, mailer: mailer}
}

// RequestReset genera y envía un OTP. Si el email no existe responde igual
// que si existiera, para no revelar qué cuentas están registradas.
func (uc *PasswordResetUseCase) RequestReset(email string) error {
	user, err := uc.repo.GetByEmail(strings.TrimSpace(strings.ToLower(email)))
	if err != nil {
		return nil
	}
	otp, err := generateOTP()
	if err != nil {
		return err
	}
	expiry := time.Now().Add(otpTTL)
	user.ResetOTP = otp
	user.ResetOTPExpiry = &expiry
	user.UpdatedAt = time.Now()
	if err := uc.repo.Update(user); err != nil {
		return err
	}
	return uc.mailer.SendOTP(user.Email, otp)
}

// VerifyOTP comprueba que el OTP sea el emitido y siga vigente.
func (uc *PasswordResetUseCase) VerifyOTP(email, otp string) error {
	user, err := uc.repo.GetByEmail(strings.TrimSpace(strings.ToLower(email)))
	if err != nil {
		return domain.ErrUnauthorized
	}
	return checkOTP(user, otp)
}

// ChangePassword cambia la contraseña con un OTP válido y lo invalida.
func (uc *PasswordResetUseCase) ChangePassword(email, otp, newPassword string) error {
	user, err := uc.repo.GetByEmail(strings.TrimSpace(strings.ToLower(email)))
	if err != nil {
		return domain.ErrUnauthorized
	}
	if err := checkOTP(user, otp); err != nil {
		return err
	}
	if len(newPassword) < 8 {
		return domain.ErrValidation
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hash)
	user.ResetOTP = ""
	user.ResetOTPExpiry = nil
	user.UpdatedAt = time.Now()
	return uc.repo.Update(user)
}

func checkOTP(user *entity.User, otp string) error {
	if user.ResetOTP == "" || user.ResetOTPExpiry == nil {
		return domain.ErrUnauthorized
	}
	if time.Now().After(*user.ResetOTPExpiry) {
		return domain.ErrUnauthorized
	}
	if subtle.ConstantTimeCompare([]byte(user.ResetOTP), []byte(otp)) != 1 {
		return domain.ErrUnauthorized
	}
	return nil
}

func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
