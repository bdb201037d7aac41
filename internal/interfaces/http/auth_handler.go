package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/mercado-b2b/internal/application/auth"
	"github.com/tu-usuario/mercado-b2b/internal/application/dto"
)

// AuthHandler maneja registro, login y recuperación de contraseña (público).
type AuthHandler struct {
	uc    *auth.UseCase
	reset *auth.PasswordResetUseCase
}

// NewAuthHandler construye el handler.
func NewAuthHandler(uc *auth.UseCase, reset *auth.PasswordResetUseCase) *AuthHandler {
	return &AuthHandler{uc: uc, reset: reset}
}

// Register godoc
// @Summary      Registrar usuario
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterRequest  true  "Datos de registro"
// @Success      201   {object}  dto.UserResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Register(in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "Credenciales"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Login(in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ForgotPassword godoc
// @Summary      Solicitar OTP de recuperación
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ForgotPasswordRequest  true  "Email de la cuenta"
// @Success      200   {object}  dto.MessageResponse
// @Router       /api/auth/forgot-password [post]
func (h *AuthHandler) ForgotPassword(c *fiber.Ctx) error {
	var in dto.ForgotPasswordRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.reset.RequestReset(in.Email); err != nil {
		return respondError(c, err)
	}
	// Respuesta idéntica exista o no la cuenta
	return c.JSON(dto.MessageResponse{Message: "si el email está registrado, se envió un código"})
}

// VerifyOTP godoc
// @Summary      Verificar OTP de recuperación
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.VerifyOTPRequest  true  "Email y código"
// @Success      200   {object}  dto.MessageResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/verify-otp [post]
func (h *AuthHandler) VerifyOTP(c *fiber.Ctx) error {
	var in dto.VerifyOTPRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.reset.VerifyOTP(in.Email, in.OTP); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "código válido"})
}

// ResetPassword godoc
// @Summary      Cambiar contraseña con OTP
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ResetPasswordRequest  true  "Email, código y contraseña nueva"
// @Success      200   {object}  dto.MessageResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/reset-password [post]
func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	var in dto.ResetPasswordRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.reset.ChangePassword(in.Email, in.OTP, in.NewPassword); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "contraseña actualizada"})
}
