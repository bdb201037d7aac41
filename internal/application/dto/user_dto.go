package dto

import "time"

// RegisterRequest entrada para registrar un usuario (password en texto, se hashea en use case).
// CompanyName es obligatorio para corporate; BusinessType para horeca, supplier y supplier_merchant.
type RegisterRequest struct {
	Username     string `json:"username"`
	Email        string `json:"email"`
	Password     string `json:"password"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Role         string `json:"role"`
	CompanyName  string `json:"company_name"`
	BusinessType string `json:"business_type"`
}

// UpdateUserRequest actualización parcial: solo los campos presentes se aplican.
type UpdateUserRequest struct {
	Email        *string `json:"email"`
	FirstName    *string `json:"first_name"`
	LastName     *string `json:"last_name"`
	CompanyName  *string `json:"company_name"`
	BusinessType *string `json:"business_type"`
	Password     *string `json:"password"`
}

// ChangeRoleRequest cambio de rol (solo admin; el rol admin es inmutable).
type ChangeRoleRequest struct {
	Role string `json:"role"`
}

// UserResponse salida de un usuario (sin password; expone solo el UserID público).
type UserResponse struct {
	UserID       string     `json:"user_id"`
	Username     string     `json:"username"`
	Email        string     `json:"email"`
	FirstName    string     `json:"first_name"`
	LastName     string     `json:"last_name"`
	Role         string     `json:"role"`
	RoleDisplay  string     `json:"role_display"`
	CompanyName  string     `json:"company_name,omitempty"`
	BusinessType string     `json:"business_type,omitempty"`
	IsActive     bool       `json:"is_active"`
	IsVerified   bool       `json:"is_verified"`
	IsDeleted    bool       `json:"is_deleted"`
	DeletedAt    *time.Time `json:"deleted_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

// UserListResponse lista paginada de usuarios.
type UserListResponse struct {
	Items []UserResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse salida con token JWT.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// ForgotPasswordRequest solicitud de OTP de password reset.
type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

// VerifyOTPRequest verificación de OTP.
type VerifyOTPRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

// ResetPasswordRequest cambio de password con OTP verificado.
type ResetPasswordRequest struct {
	Email       string `json:"email"`
	OTP         string `json:"otp"`
	NewPassword string `json:"new_password"`
}
