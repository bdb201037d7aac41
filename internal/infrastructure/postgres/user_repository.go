package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/tu-usuario/mercado-b2b/internal/domain"
	"github.com/tu-usuario/mercado-b2b/internal/domain/entity"
	"github.com/tu-usuario/mercado-b2b/internal/domain/repository"
	"github.com/tu-usuario/mercado-b2b/internal/domain/role"
)

var _ repository.UserRepository = (*UserRepo)(nil)

const userColumns = `id, user_id, username, email, password_hash, first_name, last_name,
		role, company_name, business_type, is_active, is_verified,
		reset_otp, reset_otp_expiry, deleted_at, created_at, updated_at`

// UserRepo implementación del puerto UserRepository sobre PostgreSQL
// (usable con pool o tx). La clave interna id nunca sale del adaptador;
// toda búsqueda externa entra por el user_id público.
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador. Pasar pool o tx (Querier).
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

// Create persiste un nuevo usuario y captura la clave interna generada.
func (r *UserRepo) Create(user *entity.User) error {
	query := `
		INSERT INTO users (user_id, username, email, password_hash, first_name, last_name,
			role, company_name, business_type, is_active, is_verified, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		user.UserID, user.Username, user.Email, user.PasswordHash, user.FirstName, user.LastName,
		user.Role, user.CompanyName, user.BusinessType, user.IsActive, user.IsVerified,
		user.CreatedAt, user.UpdatedAt,
	).Scan(&user.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByUserID obtiene un usuario no borrado por su identificador público.
func (r *UserRepo) GetByUserID(userID uuid.UUID) (*entity.User, error) {
	return r.getOne(`SELECT `+userColumns+` FROM users WHERE user_id = $1 AND deleted_at IS NULL`, userID)
}

// GetByUserIDIncludingDeleted obtiene un usuario por user_id, borrado o no.
func (r *UserRepo) GetByUserIDIncludingDeleted(userID uuid.UUID) (*entity.User, error) {
	return r.getOne(`SELECT `+userColumns+` FROM users WHERE user_id = $1`, userID)
}

// GetByUsername obtiene un usuario no borrado por username.
func (r *UserRepo) GetByUsername(username string) (*entity.User, error) {
	return r.getOne(`SELECT `+userColumns+` FROM users WHERE username = $1 AND deleted_at IS NULL`, username)
}

// GetByEmail obtiene un usuario no borrado por email.
func (r *UserRepo) GetByEmail(email string) (*entity.User, error) {
	return r.getOne(`SELECT `+userColumns+` FROM users WHERE email = $1 AND deleted_at IS NULL`, email)
}

// ExistsByUsername indica si el username ya está tomado (borrados incluidos:
// un username no se recicla mientras exista la fila).
func (r *UserRepo) ExistsByUsername(username string) (bool, error) {
	return r.exists(`SELECT EXISTS(SELECT 1 FROM users WHERE username = $1)`, username)
}

// ExistsByEmail indica si el email ya está registrado.
func (r *UserRepo) ExistsByEmail(email string) (bool, error) {
	return r.exists(`SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, email)
}

// Update persiste los campos mutables de un usuario.
func (r *UserRepo) Update(user *entity.User) error {
	query := `
		UPDATE users SET email = $2, password_hash = $3, first_name = $4, last_name = $5,
			role = $6, company_name = $7, business_type = $8, is_active = $9, is_verified = $10,
			reset_otp = $11, reset_otp_expiry = $12, updated_at = $13
		WHERE user_id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		user.UserID, user.Email, user.PasswordHash, user.FirstName, user.LastName,
		user.Role, user.CompanyName, user.BusinessType, user.IsActive, user.IsVerified,
		user.ResetOTP, user.ResetOTPExpiry, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// UpdateDeletionState persiste deleted_at e is_active en una sola sentencia:
// ningún lector ve el borrado lógico a medias.
func (r *UserRepo) UpdateDeletionState(user *entity.User) error {
	query := `UPDATE users SET deleted_at = $2, is_active = $3, updated_at = now() WHERE user_id = $1`
	tag, err := r.q.Exec(context.Background(), query, user.UserID, user.DeletedAt, user.IsActive)
	if err != nil {
		return fmt.Errorf("update user deletion state: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// HardDelete elimina físicamente la fila del usuario.
func (r *UserRepo) HardDelete(userID uuid.UUID) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM users WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// List lista usuarios no borrados con paginación.
func (r *UserRepo) List(limit, offset int) ([]*entity.User, error) {
	return r.getMany(`
		SELECT `+userColumns+` FROM users
		WHERE deleted_at IS NULL
		ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
}

// Search busca por username o user_id (substring, sin distinguir mayúsculas).
func (r *UserRepo) Search(query string, limit, offset int) ([]*entity.User, error) {
	return r.getMany(`
		SELECT `+userColumns+` FROM users
		WHERE deleted_at IS NULL
		  AND (username ILIKE '%' || $1 || '%' OR user_id::text ILIKE '%' || $1 || '%')
		ORDER BY username LIMIT $2 OFFSET $3`, query, limit, offset)
}

// ListActive lista usuarios activos no borrados.
func (r *UserRepo) ListActive(limit, offset int) ([]*entity.User, error) {
	return r.getMany(`
		SELECT `+userColumns+` FROM users
		WHERE deleted_at IS NULL AND is_active
		ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
}

// ListSuppliers lista usuarios con rol supplier o supplier_merchant, activos y no borrados.
func (r *UserRepo) ListSuppliers(limit, offset int) ([]*entity.User, error) {
	return r.getMany(`
		SELECT `+userColumns+` FROM users
		WHERE deleted_at IS NULL AND is_active AND role = ANY($1)
		ORDER BY username LIMIT $2 OFFSET $3`,
		[]string{string(role.Supplier), string(role.SupplierMerchant)}, limit, offset)
}

func (r *UserRepo) getOne(query string, args ...any) (*entity.User, error) {
	u, err := scanUser(r.q.QueryRow(context.Background(), query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

func (r *UserRepo) getMany(query string, args ...any) ([]*entity.User, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []*entity.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func scanUser(row pgx.Row) (*entity.User, error) {
	var u entity.User
	err := row.Scan(
		&u.ID, &u.UserID, &u.Username, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName,
		&u.Role, &u.CompanyName, &u.BusinessType, &u.IsActive, &u.IsVerified,
		&u.ResetOTP, &u.ResetOTPExpiry, &u.DeletedAt, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) exists(query string, arg any) (bool, error) {
	var exists bool
	if err := r.q.QueryRow(context.Background(), query, arg).Scan(&exists); err != nil {
		return false, fmt.Errorf("exists: %w", err)
	}
	return exists, nil
}
