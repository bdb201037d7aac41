package repository

import (
	"github.com/google/uuid"

	"github.com/tu-usuario/mercado-b2b/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
// Las búsquedas usan el UserID público; la clave interna no sale del adaptador.
// Los métodos Get* excluyen usuarios borrados salvo la variante IncludingDeleted.
type UserRepository interface {
	Create(user *entity.User) error
	GetByUserID(userID uuid.UUID) (*entity.User, error)
	GetByUserIDIncludingDeleted(userID uuid.UUID) (*entity.User, error)
	GetByUsername(username string) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
	ExistsByUsername(username string) (bool, error)
	ExistsByEmail(email string) (bool, error)
	Update(user *entity.User) error
	// UpdateDeletionState persiste el grupo deleted_at/is_deleted derivado/is_active
	// en una sola sentencia: ningún observador ve la transición a medias.
	UpdateDeletionState(user *entity.User) error
	HardDelete(userID uuid.UUID) error
	List(limit, offset int) ([]*entity.User, error)
	// Search busca por username o user_id (substring, sin distinguir mayúsculas).
	Search(query string, limit, offset int) ([]*entity.User, error)
	ListActive(limit, offset int) ([]*entity.User, error)
	// ListSuppliers usuarios con rol supplier o supplier_merchant, activos y no borrados.
	ListSuppliers(limit, offset int) ([]*entity.User, error)
}
