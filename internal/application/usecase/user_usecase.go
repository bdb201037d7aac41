package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/tu-usuario/mercado-b2b/internal/application/dto"
	"github.com/tu-usuario/mercado-b2b/internal/domain"
	"github.com/tu-usuario/mercado-b2b/internal/domain/access"
	"github.com/tu-usuario/mercado-b2b/internal/domain/entity"
	"github.com/tu-usuario/mercado-b2b/internal/domain/lifecycle"
	"github.com/tu-usuario/mercado-b2b/internal/domain/repository"
	"github.com/tu-usuario/mercado-b2b/internal/domain/role"
)

// UserUseCase casos de uso de gestión de usuarios: consulta, actualización,
// ciclo de vida (borrado lógico, restauración, borrado físico con cascada)
// y operaciones administrativas (cambio de rol, verificación).
type UserUseCase struct {
	repo  repository.UserRepository
	guard *access.Guard
	tx    TxRunner
}

// NewUserUseCase construye el caso de uso.
func NewUserUseCase(repo repository.UserRepository, guard *access.Guard, tx TxRunner) *UserUseCase {
	return &UserUseCase{repo: repo, guard: guard, tx: tx}
}

// GetByUserID obtiene un usuario por su identificador público.
func (uc *UserUseCase) GetByUserID(userID uuid.UUID) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByUserID(userID)
	if err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// List lista usuarios con paginación.
func (uc *UserUseCase) List(page dto.PageRequest) (*dto.UserListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return toUserListResponse(list, page), nil
}

// Search busca usuarios por username o user_id.
func (uc *UserUseCase) Search(query string, page dto.PageRequest) (*dto.UserListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.Search(query, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return toUserListResponse(list, page), nil
}

// ListActive lista solo usuarios activos.
func (uc *UserUseCase) ListActive(page dto.PageRequest) (*dto.UserListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.ListActive(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return toUserListResponse(list, page), nil
}

// ListSuppliers lista los usuarios con rol supplier o supplier_merchant.
func (uc *UserUseCase) ListSuppliers(page dto.PageRequest) (*dto.UserListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.ListSuppliers(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return toUserListResponse(list, page), nil
}

// Update actualiza un usuario (él mismo o admin). La validación de campos por
// rol se aplica sobre el estado resultante de mezclar lo almacenado con el
// parche, no sobre el parche aislado.
func (uc *UserUseCase) Update(p access.Principal, userID uuid.UUID, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByUserID(userID)
	if err != nil {
		return nil, err
	}
	if d := uc.guard.Authorize(p, access.OpUpdateUser, userTarget(user)); !d.Allowed {
		return nil, d.Err()
	}
	if in.Email != nil && *in.Email != user.Email {
		exists, err := uc.repo.ExistsByEmail(*in.Email)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, domain.ErrEmailAlreadyExists
		}
		user.Email = *in.Email
	}
	if in.FirstName != nil {
		user.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		user.LastName = *in.LastName
	}
	if in.CompanyName != nil {
		user.CompanyName = *in.CompanyName
	}
	if in.BusinessType != nil {
		user.BusinessType = *in.BusinessType
	}
	if err := role.ValidateFields(user.RoleValue(), user.CompanyName, user.BusinessType); err != nil {
		return nil, err
	}
	if in.Password != nil {
		if len(*in.Password) < 8 {
			return nil, domain.ErrValidation
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}
	user.UpdatedAt = time.Now()
	if err := uc.repo.Update(user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// Deactivate apaga la cuenta sin borrarla (él mismo o admin).
func (uc *UserUseCase) Deactivate(p access.Principal, userID uuid.UUID) error {
	return uc.setActive(p, userID, false)
}

// Activate reactiva una cuenta desactivada (él mismo o admin).
func (uc *UserUseCase) Activate(p access.Principal, userID uuid.UUID) error {
	return uc.setActive(p, userID, true)
}

func (uc *UserUseCase) setActive(p access.Principal, userID uuid.UUID, active bool) error {
	user, err := uc.repo.GetByUserID(userID)
	if err != nil {
		return err
	}
	if d := uc.guard.Authorize(p, access.OpDeactivateUser, userTarget(user)); !d.Allowed {
		return d.Err()
	}
	user.IsActive = active
	user.UpdatedAt = time.Now()
	return uc.repo.Update(user)
}

// SoftDelete borra lógicamente un usuario: deleted_at presente e is_active
// apagado como grupo atómico. Su historial y productos quedan intactos.
func (uc *UserUseCase) SoftDelete(p access.Principal, userID uuid.UUID) error {
	user, err := uc.repo.GetByUserIDIncludingDeleted(userID)
	if err != nil {
		return err
	}
	if d := uc.guard.Authorize(p, access.OpSoftDeleteUser, userTarget(user)); !d.Allowed {
		return d.Err()
	}
	if err := lifecycle.SoftDelete(user, time.Now()); err != nil {
		return err
	}
	return uc.repo.UpdateDeletionState(user)
}

// Restore restaura un usuario borrado lógicamente (solo admin).
func (uc *UserUseCase) Restore(p access.Principal, userID uuid.UUID) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByUserIDIncludingDeleted(userID)
	if err != nil {
		return nil, err
	}
	if d := uc.guard.Authorize(p, access.OpRestoreUser, userTarget(user)); !d.Allowed {
		return nil, d.Err()
	}
	if err := lifecycle.Restore(user); err != nil {
		return nil, err
	}
	if err := uc.repo.UpdateDeletionState(user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// HardDelete elimina físicamente un usuario y, en la misma transacción, todos
// los productos de los que es dueño. Irreversible.
func (uc *UserUseCase) HardDelete(ctx context.Context, p access.Principal, userID uuid.UUID) error {
	user, err := uc.repo.GetByUserIDIncludingDeleted(userID)
	if err != nil {
		return err
	}
	if d := uc.guard.Authorize(p, access.OpHardDeleteUser, userTarget(user)); !d.Allowed {
		return d.Err()
	}
	return uc.tx.Run(ctx, func(users repository.UserRepository, products repository.ProductRepository) error {
		if _, err := products.HardDeleteBySupplier(user.UserID); err != nil {
			return err
		}
		return users.HardDelete(user.UserID)
	})
}

// ChangeRole cambia el rol de un usuario (solo admin). El rol admin es
// inmutable y el usuario debe cumplir los campos que exige el rol nuevo.
func (uc *UserUseCase) ChangeRole(p access.Principal, userID uuid.UUID, in dto.ChangeRoleRequest) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByUserID(userID)
	if err != nil {
		return nil, err
	}
	if d := uc.guard.Authorize(p, access.OpChangeRole, userTarget(user)); !d.Allowed {
		return nil, d.Err()
	}
	if user.RoleValue() == role.Admin {
		return nil, domain.ErrRoleImmutable
	}
	newRole := role.Parse(in.Role)
	if !newRole.IsValid() || newRole == role.Admin {
		return nil, domain.ErrValidation
	}
	if err := role.ValidateFields(newRole, user.CompanyName, user.BusinessType); err != nil {
		return nil, err
	}
	user.Role = string(newRole)
	user.UpdatedAt = time.Now()
	if err := uc.repo.Update(user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// Verify marca un usuario como verificado (solo admin).
func (uc *UserUseCase) Verify(p access.Principal, userID uuid.UUID) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByUserID(userID)
	if err != nil {
		return nil, err
	}
	if d := uc.guard.Authorize(p, access.OpVerifyUser, userTarget(user)); !d.Allowed {
		return nil, d.Err()
	}
	user.IsVerified = true
	user.UpdatedAt = time.Now()
	if err := uc.repo.Update(user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

func userTarget(u *entity.User) access.Target {
	if u == nil {
		return access.Target{}
	}
	return access.Target{OwnerID: u.UserID, Exists: true, Deleted: u.IsDeleted()}
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		UserID:       u.UserID.String(),
		Username:     u.Username,
		Email:        u.Email,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Role:         u.Role,
		RoleDisplay:  u.RoleValue().DisplayName(),
		CompanyName:  u.CompanyName,
		BusinessType: u.BusinessType,
		IsActive:     u.IsActive,
		IsVerified:   u.IsVerified,
		IsDeleted:    u.IsDeleted(),
		DeletedAt:    u.DeletedAt,
		CreatedAt:    u.CreatedAt,
	}
}

func toUserListResponse(list []*entity.User, page dto.PageRequest) *dto.UserListResponse {
	items := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		items = append(items, *toUserResponse(u))
	}
	return &dto.UserListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}
}
