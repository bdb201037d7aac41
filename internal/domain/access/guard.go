// Package access implementa la autorización por operación: combina rol,
// propiedad del registro y estado de borrado lógico en una decisión
// Allow/Deny. No hace I/O; el llamador carga la entidad y pasa un Target.
package access

import (
	"github.com/google/uuid"

	"github.com/tu-usuario/mercado-b2b/internal/domain"
	"github.com/tu-usuario/mercado-b2b/internal/domain/role"
)

// Principal es el sujeto autenticado (o anónimo) que intenta una operación.
type Principal struct {
	ID            uuid.UUID
	Role          role.Role
	Authenticated bool
}

// Anonymous principal sin autenticar (solo lectura de catálogo y registro).
func Anonymous() Principal {
	return Principal{Role: role.Unknown, Authenticated: false}
}

// Operation operación autorizable sobre un producto o un usuario.
type Operation string

const (
	OpViewProduct    Operation = "product.view"
	OpCreateProduct  Operation = "product.create"
	OpUpdateProduct  Operation = "product.update"
	OpDeleteProduct  Operation = "product.delete"
	OpRestoreProduct Operation = "product.restore"

	OpRegisterUser   Operation = "user.register"
	OpUpdateUser     Operation = "user.update"
	OpDeactivateUser Operation = "user.deactivate"
	OpSoftDeleteUser Operation = "user.soft_delete"
	OpHardDeleteUser Operation = "user.hard_delete"
	OpRestoreUser    Operation = "user.restore"
	OpChangeRole     Operation = "user.change_role"
	OpVerifyUser     Operation = "user.verify"
)

// Target describe el registro objetivo de la operación: su dueño (el supplier
// para un producto, el propio usuario para un user), si existe y si está
// borrado lógicamente. Para operaciones sin objetivo (registro) se usa el
// valor cero.
type Target struct {
	OwnerID uuid.UUID
	Exists  bool
	Deleted bool
}

// Decision resultado de la autorización. Reason es nil cuando Allowed.
type Decision struct {
	Allowed bool
	Reason  error
}

// Err devuelve el motivo de denegación, o nil si la operación fue permitida.
func (d Decision) Err() error {
	if d.Allowed {
		return nil
	}
	return d.Reason
}

func allow() Decision          { return Decision{Allowed: true} }
func deny(reason error) Decision { return Decision{Allowed: false, Reason: reason} }

// Guard evalúa la tabla de decisión de autorización. Sin estado; se construye
// una vez y se inyecta en los use cases.
type Guard struct{}

// NewGuard construye el guard.
func NewGuard() *Guard { return &Guard{} }

// Authorize decide si el principal puede ejecutar la operación sobre el
// objetivo. Los motivos de denegación son ErrUnauthorized (sin sesión),
// ErrForbidden (rol o propiedad), ErrNotFound (objetivo ausente o invisible)
// y ErrAlreadyDeleted/ErrNotDeleted (estado inválido para la transición).
func (g *Guard) Authorize(p Principal, op Operation, t Target) Decision {
	switch op {
	case OpViewProduct:
		// Lectura de catálogo: cualquiera, incluso anónimo, pero los
		// productos borrados no son visibles para nadie.
		if !t.Exists || t.Deleted {
			return deny(domain.ErrNotFound)
		}
		return allow()

	case OpCreateProduct:
		if !p.Authenticated {
			return deny(domain.ErrUnauthorized)
		}
		if !p.Role.IsSupplier() {
			return deny(domain.ErrForbidden)
		}
		return allow()

	case OpUpdateProduct, OpDeleteProduct:
		if !p.Authenticated {
			return deny(domain.ErrUnauthorized)
		}
		if !p.Role.IsSupplier() && p.Role != role.Admin {
			return deny(domain.ErrForbidden)
		}
		if p.Role != role.Admin && t.OwnerID != p.ID {
			return deny(domain.ErrForbidden)
		}
		if !t.Exists {
			return deny(domain.ErrNotFound)
		}
		if t.Deleted {
			if op == OpDeleteProduct {
				return deny(domain.ErrAlreadyDeleted)
			}
			return deny(domain.ErrNotFound)
		}
		return allow()

	case OpRestoreProduct:
		if !p.Authenticated {
			return deny(domain.ErrUnauthorized)
		}
		if p.Role != role.Admin {
			return deny(domain.ErrForbidden)
		}
		if !t.Exists {
			return deny(domain.ErrNotFound)
		}
		if !t.Deleted {
			return deny(domain.ErrNotDeleted)
		}
		return allow()

	case OpRegisterUser:
		// Registro abierto; la completitud por rol se valida aparte.
		return allow()

	case OpUpdateUser, OpDeactivateUser, OpSoftDeleteUser, OpHardDeleteUser, OpRestoreUser:
		if !p.Authenticated {
			return deny(domain.ErrUnauthorized)
		}
		// Mutación de usuarios: el propio usuario o un admin.
		if p.Role != role.Admin && t.OwnerID != p.ID {
			return deny(domain.ErrForbidden)
		}
		if !t.Exists {
			return deny(domain.ErrNotFound)
		}
		switch op {
		case OpSoftDeleteUser:
			if t.Deleted {
				return deny(domain.ErrAlreadyDeleted)
			}
		case OpRestoreUser:
			if !t.Deleted {
				return deny(domain.ErrNotDeleted)
			}
		}
		return allow()

	case OpChangeRole, OpVerifyUser:
		if !p.Authenticated {
			return deny(domain.ErrUnauthorized)
		}
		if p.Role != role.Admin {
			return deny(domain.ErrForbidden)
		}
		if !t.Exists {
			return deny(domain.ErrNotFound)
		}
		return allow()

	default:
		return deny(domain.ErrForbidden)
	}
}
