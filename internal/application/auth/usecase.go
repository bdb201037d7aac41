package auth

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/tu-usuario/mercado-b2b/internal/application/dto"
	"github.com/tu-usuario/mercado-b2b/internal/domain"
	"github.com/tu-usuario/mercado-b2b/internal/domain/entity"
	"github.com/tu-usuario/mercado-b2b/internal/domain/repository"
	"github.com/tu-usuario/mercado-b2b/internal/domain/role"
	"github.com/tu-usuario/mercado-b2b/pkg/jwt"
)

// UseCase casos de uso de autenticación: registro con validación de campos
// por rol, y login con emisión de JWT.
type UseCase struct {
	repo       repository.UserRepository
	jwtSecret  string
	jwtIssuer  string
	jwtExpMins int
}

// NewUseCase construye el caso de uso de autenticación.
func NewUseCase(repo repository.UserRepository, jwtSecret, jwtIssuer string, jwtExpMins int) *UseCase {
	return &UseCase{repo: repo, jwtSecret: jwtSecret, jwtIssuer: jwtIssuer, jwtExpMins: jwtExpMins}
}

// Register registra un usuario nuevo. El rol se normaliza (desconocido no es
// error de registro, queda como unknown sin privilegios); los campos
// obligatorios del rol se validan sobre la entrada completa.
func (uc *UseCase) Register(in dto.RegisterRequest) (*dto.UserResponse, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(strings.ToLower(in.Email))
	if in.Username == "" || in.Email == "" {
		return nil, domain.ErrInvalidInput
	}
	if len(in.Password) < 8 {
		return nil, domain.ErrValidation
	}
	r := role.Parse(in.Role)
	if err := role.ValidateFields(r, in.CompanyName, in.BusinessType); err != nil {
		return nil, err
	}
	if exists, err := uc.repo.ExistsByUsername(in.Username); err != nil {
		return nil, err
	} else if exists {
		return nil, domain.ErrUsernameExists
	}
	if exists, err := uc.repo.ExistsByEmail(in.Email); err != nil {
		return nil, err
	} else if exists {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	user := &entity.User{
		UserID:       uuid.New(),
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: string(hash),
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		// El rol persiste como string abierto; la lógica lo cierra con role.Parse
		Role: strings.ToLower(strings.TrimSpace(in.Role)),
		CompanyName:  in.CompanyName,
		BusinessType: in.BusinessType,
		IsActive:     true,
		IsVerified:   r.DefaultVerified(),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// Login autentica por username y password y emite un JWT con el UserID
// público. Credenciales malas y usuario inexistente responden igual.
func (uc *UseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.repo.GetByUsername(strings.TrimSpace(in.Username))
	if err != nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if !user.IsActive || user.IsDeleted() {
		return nil, domain.ErrForbidden
	}
	token, err := jwt.Generate(uc.jwtSecret, user.UserID.String(), user.Username, user.Role, uc.jwtIssuer, uc.jwtExpMins)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{Token: token, User: *toUserResponse(user)}, nil
}

func toUserResponse(u *entity.User) *dto.UserResponse {
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
