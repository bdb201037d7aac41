package auth_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/tu-usuario/mercado-b2b/internal/application/auth"
	"github.com/tu-usuario/mercado-b2b/internal/application/dto"
	"github.com/tu-usuario/mercado-b2b/internal/domain"
	"github.com/tu-usuario/mercado-b2b/internal/domain/entity"
	pkgjwt "github.com/tu-usuario/mercado-b2b/pkg/jwt"
)

const (
	testSecret = "auth-test-secret"
	testIssuer = "mercado-b2b-test"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fake del puerto UserRepository (solo lo que usan los casos de uso de auth)
// ──────────────────────────────────────────────────────────────────────────────

type memUserRepo struct {
	byUserID map[uuid.UUID]*entity.User
	nextID   int64
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{byUserID: make(map[uuid.UUID]*entity.User)}
}

func (m *memUserRepo) Create(u *entity.User) error {
	m.nextID++
	u.ID = m.nextID
	cp := *u
	m.byUserID[u.UserID] = &cp
	return nil
}

func (m *memUserRepo) GetByUserID(id uuid.UUID) (*entity.User, error) {
	u, ok := m.byUserID[id]
	if !ok || u.DeletedAt != nil {
		return nil, domain.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *memUserRepo) GetByUserIDIncludingDeleted(id uuid.UUID) (*entity.User, error) {
	u, ok := m.byUserID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *memUserRepo) GetByUsername(username string) (*entity.User, error) {
	for _, u := range m.byUserID {
		if u.Username == username && u.DeletedAt == nil {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (m *memUserRepo) GetByEmail(email string) (*entity.User, error) {
	for _, u := range m.byUserID {
		if u.Email == email && u.DeletedAt == nil {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (m *memUserRepo) ExistsByUsername(username string) (bool, error) {
	_, err := m.GetByUsername(username)
	return err == nil, nil
}

func (m *memUserRepo) ExistsByEmail(email string) (bool, error) {
	_, err := m.GetByEmail(email)
	return err == nil, nil
}

func (m *memUserRepo) Update(u *entity.User) error {
	if _, ok := m.byUserID[u.UserID]; !ok {
		return domain.ErrUserNotFound
	}
	cp := *u
	m.byUserID[u.UserID] = &cp
	return nil
}

func (m *memUserRepo) UpdateDeletionState(u *entity.User) error { return m.Update(u) }
func (m *memUserRepo) HardDelete(id uuid.UUID) error            { delete(m.byUserID, id); return nil }
func (m *memUserRepo) List(int, int) ([]*entity.User, error)    { return nil, nil }
func (m *memUserRepo) Search(string, int, int) ([]*entity.User, error) {
	return nil, nil
}
func (m *memUserRepo) ListActive(int, int) ([]*entity.User, error)    { return nil, nil }
func (m *memUserRepo) ListSuppliers(int, int) ([]*entity.User, error) { return nil, nil }

// fakeMailer registra los OTP enviados en lugar de hablar SMTP.
type fakeMailer struct {
	to, otp string
	sent    int
}

func (f *fakeMailer) SendOTP(to, otp string) error {
	f.to, f.otp = to, otp
	f.sent++
	return nil
}

func newAuthUC(repo *memUserRepo) *auth.UseCase {
	return auth.NewUseCase(repo, testSecret, testIssuer, 60)
}

func registerSupplier(t *testing.T, uc *auth.UseCase) *dto.UserResponse {
	t.Helper()
	out, err := uc.Register(dto.RegisterRequest{
		Username:     "proveedor",
		Email:        "proveedor@example.com",
		Password:     "secreto-123",
		Role:         "supplier",
		BusinessType: "wholesale",
	})
	require.NoError(t, err)
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Register
// ──────────────────────────────────────────────────────────────────────────────

func TestRegister_RolDesconocidoQuedaComoUnknown(t *testing.T) {
	uc := newAuthUC(newMemUserRepo())
	out, err := uc.Register(dto.RegisterRequest{
		Username: "rara",
		Email:    "rara@example.com",
		Password: "secreto-123",
		Role:     "Superuser",
	})
	require.NoError(t, err, "un rol desconocido no es error de registro")
	assert.Equal(t, "superuser", out.Role, "el string original queda almacenado tal cual (normalizado)")
	assert.Equal(t, "Unknown", out.RoleDisplay, "la lógica lo trata como rol sin privilegios")
	assert.False(t, out.IsVerified)
}

func TestRegister_CamposObligatoriosPorRol(t *testing.T) {
	uc := newAuthUC(newMemUserRepo())

	_, err := uc.Register(dto.RegisterRequest{
		Username: "corp", Email: "corp@example.com", Password: "secreto-123",
		Role: "corporate", // sin company_name
	})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = uc.Register(dto.RegisterRequest{
		Username: "rest", Email: "rest@example.com", Password: "secreto-123",
		Role: "horeca", // sin business_type
	})
	assert.ErrorIs(t, err, domain.ErrValidation)

	out, err := uc.Register(dto.RegisterRequest{
		Username: "corp", Email: "corp@example.com", Password: "secreto-123",
		Role: "corporate", CompanyName: "Acme Trading",
	})
	require.NoError(t, err)
	assert.Equal(t, "corporate", out.Role)
}

func TestRegister_Duplicados(t *testing.T) {
	repo := newMemUserRepo()
	uc := newAuthUC(repo)
	registerSupplier(t, uc)

	_, err := uc.Register(dto.RegisterRequest{
		Username: "proveedor", Email: "otro@example.com", Password: "secreto-123", Role: "b2c_visitor",
	})
	assert.ErrorIs(t, err, domain.ErrUsernameExists)

	_, err = uc.Register(dto.RegisterRequest{
		Username: "otra", Email: "proveedor@example.com", Password: "secreto-123", Role: "b2c_visitor",
	})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestRegister_AdminNaceVerificado(t *testing.T) {
	uc := newAuthUC(newMemUserRepo())
	out, err := uc.Register(dto.RegisterRequest{
		Username: "root", Email: "root@example.com", Password: "secreto-123", Role: "admin",
	})
	require.NoError(t, err)
	assert.True(t, out.IsVerified)
	assert.True(t, out.IsActive)
}

func TestRegister_PasswordHasheado(t *testing.T) {
	repo := newMemUserRepo()
	uc := newAuthUC(repo)
	out := registerSupplier(t, uc)

	stored, err := repo.GetByUserID(uuid.MustParse(out.UserID))
	require.NoError(t, err)
	assert.NotEqual(t, "secreto-123", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secreto-123")))
}

// ──────────────────────────────────────────────────────────────────────────────
// Login
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_EmiteJWTConIdentidadPublica(t *testing.T) {
	repo := newMemUserRepo()
	uc := newAuthUC(repo)
	registered := registerSupplier(t, uc)

	out, err := uc.Login(dto.LoginRequest{Username: "proveedor", Password: "secreto-123"})
	require.NoError(t, err)
	require.NotEmpty(t, out.Token)

	userID, username, r, err := pkgjwt.Parse(testSecret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, registered.UserID, userID, "el token lleva el user_id público")
	assert.Equal(t, "proveedor", username)
	assert.Equal(t, "supplier", r)
}

func TestLogin_CredencialesMalas(t *testing.T) {
	repo := newMemUserRepo()
	uc := newAuthUC(repo)
	registerSupplier(t, uc)

	_, err := uc.Login(dto.LoginRequest{Username: "proveedor", Password: "incorrecta"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	// Usuario inexistente responde igual que password incorrecto
	_, err = uc.Login(dto.LoginRequest{Username: "fantasma", Password: "secreto-123"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_CuentaInactiva(t *testing.T) {
	repo := newMemUserRepo()
	uc := newAuthUC(repo)
	out := registerSupplier(t, uc)

	stored, err := repo.GetByUserID(uuid.MustParse(out.UserID))
	require.NoError(t, err)
	stored.IsActive = false
	require.NoError(t, repo.Update(stored))

	_, err = uc.Login(dto.LoginRequest{Username: "proveedor", Password: "secreto-123"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// ──────────────────────────────────────────────────────────────────────────────
// Password reset por OTP
// ──────────────────────────────────────────────────────────────────────────────

func TestPasswordReset_CicloCompleto(t *testing.T) {
	repo := newMemUserRepo()
	uc := newAuthUC(repo)
	registerSupplier(t, uc)

	mailer := &fakeMailer{}
	reset := auth.NewPasswordResetUseCase(repo, mailer)

	require.NoError(t, reset.RequestReset("proveedor@example.com"))
	require.Equal(t, 1, mailer.sent)
	require.Len(t, mailer.otp, 6, "el OTP es de 6 dígitos")
	assert.Equal(t, "proveedor@example.com", mailer.to)

	// OTP incorrecto no pasa
	assert.ErrorIs(t, reset.VerifyOTP("proveedor@example.com", "000000x"), domain.ErrUnauthorized)

	require.NoError(t, reset.VerifyOTP("proveedor@example.com", mailer.otp))
	require.NoError(t, reset.ChangePassword("proveedor@example.com", mailer.otp, "nuevo-secreto-456"))

	// La contraseña nueva funciona y el OTP quedó invalidado
	_, err := uc.Login(dto.LoginRequest{Username: "proveedor", Password: "nuevo-secreto-456"})
	assert.NoError(t, err)
	assert.ErrorIs(t, reset.VerifyOTP("proveedor@example.com", mailer.otp), domain.ErrUnauthorized)
}

func TestPasswordReset_EmailInexistenteNoRevela(t *testing.T) {
	repo := newMemUserRepo()
	mailer := &fakeMailer{}
	reset := auth.NewPasswordResetUseCase(repo, mailer)

	assert.NoError(t, reset.RequestReset("nadie@example.com"),
		"no se revela si el email existe")
	assert.Zero(t, mailer.sent)
}

func TestPasswordReset_OTPExpirado(t *testing.T) {
	repo := newMemUserRepo()
	uc := newAuthUC(repo)
	out := registerSupplier(t, uc)

	mailer := &fakeMailer{}
	reset := auth.NewPasswordResetUseCase(repo, mailer)
	require.NoError(t, reset.RequestReset("proveedor@example.com"))

	// Forzar la expiración hacia el pasado
	stored, err := repo.GetByUserID(uuid.MustParse(out.UserID))
	require.NoError(t, err)
	past := time.Now().Add(-time.Minute)
	stored.ResetOTPExpiry = &past
	require.NoError(t, repo.Update(stored))

	assert.ErrorIs(t, reset.VerifyOTP("proveedor@example.com", mailer.otp), domain.ErrUnauthorized)
}
