package entity

import (
	"time"

	"github.com/google/uuid"

	"github.com/tu-usuario/mercado-b2b/internal/domain/role"
)

// User representa una cuenta con rol de negocio. Tiene doble identidad:
// ID es la clave interna secuencial (nunca se expone) y UserID es el
// identificador público opaco usado en toda referencia externa.
// El rol se persiste como string libre; la lógica lo normaliza con role.Parse.
type User struct {
	ID           int64
	UserID       uuid.UUID
	Username     string
	Email        string
	PasswordHash string // bcrypt, nunca plano en dominio después de persistir
	FirstName    string
	LastName     string
	Role         string
	CompanyName  string // obligatorio para corporate
	BusinessType string // obligatorio para horeca, supplier y supplier_merchant
	IsActive     bool
	IsVerified   bool

	// Password reset por OTP
	ResetOTP       string
	ResetOTPExpiry *time.Time

	// Borrado lógico: DeletedAt presente <=> borrado
	DeletedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// RoleValue devuelve el rol como variante cerrada (Unknown si no se reconoce).
func (u *User) RoleValue() role.Role {
	return role.Parse(u.Role)
}

// IsDeleted se deriva del timestamp de borrado.
func (u *User) IsDeleted() bool {
	return u.DeletedAt != nil
}

// DeletionTime, SetDeletionTime y SetUsable implementan lifecycle.Record.
// El flag de usabilidad de un User es IsActive.
func (u *User) DeletionTime() *time.Time     { return u.DeletedAt }
func (u *User) SetDeletionTime(t *time.Time) { u.DeletedAt = t }
func (u *User) SetUsable(b bool)             { u.IsActive = b }
