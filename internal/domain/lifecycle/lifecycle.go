// Package lifecycle implementa la máquina de estados Active/Deleted del
// borrado lógico compartida por User y Product. El timestamp de borrado es la
// única fuente de verdad: el booleano is_deleted se deriva de su presencia.
package lifecycle

import (
	"time"

	"github.com/tu-usuario/mercado-b2b/internal/domain"
)

// Record es el contrato mínimo de una entidad con borrado lógico. El flag de
// usabilidad es is_active en User e is_available en Product; la transición
// siempre muta los tres campos como grupo.
type Record interface {
	DeletionTime() *time.Time
	SetDeletionTime(*time.Time)
	SetUsable(bool)
}

// Action acción sobre el ciclo de vida de borrado.
type Action string

const (
	ActionSoftDelete Action = "delete"
	ActionRestore    Action = "restore"
	ActionHardDelete Action = "hard_delete"
)

// IsDeleted deriva el estado Deleted de la presencia del timestamp.
func IsDeleted(r Record) bool {
	return r.DeletionTime() != nil
}

// SoftDelete transiciona Active -> Deleted: marca el timestamp y apaga el
// flag de usabilidad. Devuelve ErrAlreadyDeleted si ya estaba en Deleted.
func SoftDelete(r Record, now time.Time) error {
	if IsDeleted(r) {
		return domain.ErrAlreadyDeleted
	}
	at := now
	r.SetDeletionTime(&at)
	r.SetUsable(false)
	return nil
}

// Restore transiciona Deleted -> Active: limpia el timestamp y reactiva el
// flag de usabilidad. Devuelve ErrNotDeleted si la entidad no estaba borrada.
func Restore(r Record) error {
	if !IsDeleted(r) {
		return domain.ErrNotDeleted
	}
	r.SetDeletionTime(nil)
	r.SetUsable(true)
	return nil
}

// Transition aplica una acción del ciclo de vida. Para ActionHardDelete no hay
// precondición: devuelve removed=true y el llamador elimina el registro del
// almacenamiento (transición terminal e irreversible).
func Transition(r Record, a Action, now time.Time) (removed bool, err error) {
	switch a {
	case ActionSoftDelete:
		return false, SoftDelete(r, now)
	case ActionRestore:
		return false, Restore(r)
	case ActionHardDelete:
		return true, nil
	default:
		return false, domain.ErrInvalidInput
	}
}
