package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/tu-usuario/mercado-b2b/internal/application/dto"
	"github.com/tu-usuario/mercado-b2b/internal/domain/access"
	"github.com/tu-usuario/mercado-b2b/internal/domain/role"
	"github.com/tu-usuario/mercado-b2b/pkg/jwt"
)

// Locals keys para la identidad del request en Fiber.
const (
	LocalUserID   = "user_id"
	LocalUsername = "username"
	LocalRole     = "role"
)

// AuthMiddleware valida el Bearer Token JWT y extrae la identidad a c.Locals.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		tokenString, ok := bearerToken(authHeader)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		userID, username, userRole, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		c.Locals(LocalUserID, userID)
		c.Locals(LocalUsername, username)
		c.Locals(LocalRole, userRole)
		return c.Next()
	}
}

// OptionalAuthMiddleware extrae la identidad si hay token válido y sigue como
// anónimo si no lo hay. Lo usan las rutas públicas de catálogo: el precio que
// se responde depende del rol del observador, autenticado o no.
func OptionalAuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, ok := bearerToken(c.Get("Authorization"))
		if ok {
			if userID, username, userRole, err := jwt.Parse(jwtSecret, tokenString); err == nil {
				c.Locals(LocalUserID, userID)
				c.Locals(LocalUsername, username)
				c.Locals(LocalRole, userRole)
			}
		}
		return c.Next()
	}
}

// RequireRole exige que el rol del token esté en la lista. Colocar después de AuthMiddleware.
func RequireRole(roles ...role.Role) fiber.Handler {
	allowed := make(map[role.Role]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(c *fiber.Ctx) error {
		if !allowed[role.Parse(GetRole(c))] {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "rol sin permiso para esta operación"})
		}
		return c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}

// GetUserID devuelve el user_id público del contexto (después del middleware de auth).
func GetUserID(c *fiber.Ctx) string {
	v := c.Locals(LocalUserID)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

// GetUsername devuelve el username del contexto.
func GetUsername(c *fiber.Ctx) string {
	v := c.Locals(LocalUsername)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

// GetRole devuelve el rol del contexto.
func GetRole(c *fiber.Ctx) string {
	v := c.Locals(LocalRole)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

// Principal arma el principal del request: anónimo si no hubo token válido.
func Principal(c *fiber.Ctx) access.Principal {
	id, err := uuid.Parse(GetUserID(c))
	if err != nil {
		return access.Anonymous()
	}
	return access.Principal{ID: id, Role: role.Parse(GetRole(c)), Authenticated: true}
}
