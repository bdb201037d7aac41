package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/tu-usuario/mercado-b2b/internal/application/dto"
	"github.com/tu-usuario/mercado-b2b/internal/application/usecase"
)

// UserHandler maneja las peticiones HTTP de gestión de usuarios (protegido).
type UserHandler struct {
	uc *usecase.UserUseCase
}

// NewUserHandler construye el handler.
func NewUserHandler(uc *usecase.UserUseCase) *UserHandler {
	return &UserHandler{uc: uc}
}

func pageFromQuery(c *fiber.Ctx) dto.PageRequest {
	return dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
}

func parseUserID(c *fiber.Ctx) (uuid.UUID, error) {
	return uuid.Parse(c.Params("id"))
}

// Me godoc
// @Summary      Usuario autenticado
// @Tags         users
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.UserResponse
// @Router       /api/users/me [get]
func (h *UserHandler) Me(c *fiber.Ctx) error {
	userID, err := uuid.Parse(GetUserID(c))
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token sin identidad"})
	}
	out, err := h.uc.GetByUserID(userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener usuario por user_id
// @Tags         users
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "user_id público"
// @Success      200  {object}  dto.UserResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/users/{id} [get]
func (h *UserHandler) GetByID(c *fiber.Ctx) error {
	userID, err := parseUserID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "user_id inválido"})
	}
	out, err := h.uc.GetByUserID(userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar usuarios
// @Tags         users
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200     {object}  dto.UserListResponse
// @Router       /api/users [get]
func (h *UserHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(pageFromQuery(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Search godoc
// @Summary      Buscar usuarios por username o user_id
// @Tags         users
// @Security     Bearer
// @Produce      json
// @Param        query  query  string  true  "Texto a buscar"
// @Success      200    {object}  dto.UserListResponse
// @Router       /api/users/search [get]
func (h *UserHandler) Search(c *fiber.Ctx) error {
	out, err := h.uc.Search(c.Query("query"), pageFromQuery(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListActive godoc
// @Summary      Listar usuarios activos
// @Tags         users
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.UserListResponse
// @Router       /api/users/active [get]
func (h *UserHandler) ListActive(c *fiber.Ctx) error {
	out, err := h.uc.ListActive(pageFromQuery(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListSuppliers godoc
// @Summary      Listar suppliers
// @Tags         users
// @Produce      json
// @Success      200  {object}  dto.UserListResponse
// @Router       /api/suppliers [get]
func (h *UserHandler) ListSuppliers(c *fiber.Ctx) error {
	out, err := h.uc.ListSuppliers(pageFromQuery(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar usuario (él mismo o admin)
// @Tags         users
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "user_id público"
// @Param        body  body  dto.UpdateUserRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.UserResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/users/{id} [put]
func (h *UserHandler) Update(c *fiber.Ctx) error {
	userID, err := parseUserID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "user_id inválido"})
	}
	var in dto.UpdateUserRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(Principal(c), userID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Activate godoc
// @Summary      Reactivar cuenta
// @Tags         users
// @Security     Bearer
// @Param        id  path  string  true  "user_id público"
// @Success      200  {object}  dto.MessageResponse
// @Router       /api/users/{id}/activate [post]
func (h *UserHandler) Activate(c *fiber.Ctx) error {
	userID, err := parseUserID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "user_id inválido"})
	}
	if err := h.uc.Activate(Principal(c), userID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "cuenta activada"})
}

// Deactivate godoc
// @Summary      Desactivar cuenta sin borrarla
// @Tags         users
// @Security     Bearer
// @Param        id  path  string  true  "user_id público"
// @Success      200  {object}  dto.MessageResponse
// @Router       /api/users/{id}/deactivate [post]
func (h *UserHandler) Deactivate(c *fiber.Ctx) error {
	userID, err := parseUserID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "user_id inválido"})
	}
	if err := h.uc.Deactivate(Principal(c), userID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "cuenta desactivada"})
}

// Delete godoc
// @Summary      Borrado lógico de usuario
// @Tags         users
// @Security     Bearer
// @Param        id  path  string  true  "user_id público"
// @Success      200  {object}  dto.MessageResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/users/{id} [delete]
func (h *UserHandler) Delete(c *fiber.Ctx) error {
	userID, err := parseUserID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "user_id inválido"})
	}
	if err := h.uc.SoftDelete(Principal(c), userID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "usuario eliminado"})
}

// Restore godoc
// @Summary      Restaurar usuario borrado (solo admin)
// @Tags         users
// @Security     Bearer
// @Param        id  path  string  true  "user_id público"
// @Success      200  {object}  dto.UserResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/users/{id}/restore [post]
func (h *UserHandler) Restore(c *fiber.Ctx) error {
	userID, err := parseUserID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "user_id inválido"})
	}
	out, err := h.uc.Restore(Principal(c), userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// HardDelete godoc
// @Summary      Borrado físico de usuario y sus productos (solo admin)
// @Tags         users
// @Security     Bearer
// @Param        id  path  string  true  "user_id público"
// @Success      200  {object}  dto.MessageResponse
// @Router       /api/users/{id}/hard [delete]
func (h *UserHandler) HardDelete(c *fiber.Ctx) error {
	userID, err := parseUserID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "user_id inválido"})
	}
	if err := h.uc.HardDelete(c.Context(), Principal(c), userID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "usuario eliminado definitivamente"})
}

// ChangeRole godoc
// @Summary      Cambiar rol de usuario (solo admin; admin es inmutable)
// @Tags         users
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "user_id público"
// @Param        body  body  dto.ChangeRoleRequest  true  "Rol nuevo"
// @Success      200   {object}  dto.UserResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/users/{id}/role [put]
func (h *UserHandler) ChangeRole(c *fiber.Ctx) error {
	userID, err := parseUserID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "user_id inválido"})
	}
	var in dto.ChangeRoleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.ChangeRole(Principal(c), userID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Verify godoc
// @Summary      Marcar usuario como verificado (solo admin)
// @Tags         users
// @Security     Bearer
// @Param        id  path  string  true  "user_id público"
// @Success      200  {object}  dto.UserResponse
// @Router       /api/users/{id}/verify [post]
func (h *UserHandler) Verify(c *fiber.Ctx) error {
	userID, err := parseUserID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "user_id inválido"})
	}
	out, err := h.uc.Verify(Principal(c), userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
