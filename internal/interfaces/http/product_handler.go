package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/mercado-b2b/internal/application/dto"
	"github.com/tu-usuario/mercado-b2b/internal/application/usecase"
)

// ProductHandler maneja las peticiones HTTP del catálogo. Las lecturas son
// públicas (con precio resuelto por rol si hay token); las mutaciones exigen
// autenticación.
type ProductHandler struct {
	uc *usecase.ProductUseCase
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *usecase.ProductUseCase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

func parseProductID(c *fiber.Ctx) (uuid.UUID, error) {
	return uuid.Parse(c.Params("id"))
}

// Create godoc
// @Summary      Crear producto (roles supplier)
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductRequest  true  "Datos del producto"
// @Success      201   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(Principal(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener producto (precio según rol del observador)
// @Tags         products
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [get]
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	id, err := parseProductID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "id inválido"})
	}
	out, err := h.uc.GetByID(Principal(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar catálogo
// @Tags         products
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200     {object}  dto.ProductListResponse
// @Router       /api/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(Principal(c), pageFromQuery(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Search godoc
// @Summary      Buscar en el catálogo
// @Tags         products
// @Produce      json
// @Param        query      query  string  false  "Texto (nombre o descripción, EN/AR)"
// @Param        category   query  string  false  "Categoría"
// @Param        supplier   query  string  false  "user_id del supplier"
// @Param        min_price  query  number  false  "Precio mínimo (columna del rol)"
// @Param        max_price  query  number  false  "Precio máximo (columna del rol)"
// @Success      200  {object}  dto.ProductListResponse
// @Router       /api/products/search [get]
func (h *ProductHandler) Search(c *fiber.Ctx) error {
	in := dto.ProductSearchRequest{
		Query:       c.Query("query"),
		Category:    c.Query("category"),
		Supplier:    c.Query("supplier"),
		PageRequest: pageFromQuery(c),
	}
	if raw := c.Query("min_price"); raw != "" {
		d, err := decimal.NewFromString(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "min_price inválido"})
		}
		in.MinPrice = &d
	}
	if raw := c.Query("max_price"); raw != "" {
		d, err := decimal.NewFromString(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "max_price inválido"})
		}
		in.MaxPrice = &d
	}
	if raw := c.Query("available_only"); raw != "" {
		v := raw == "true" || raw == "1"
		in.AvailableOnly = &v
	}
	out, err := h.uc.Search(Principal(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListBySupplier godoc
// @Summary      Listar productos de un supplier
// @Tags         products
// @Produce      json
// @Param        id  path  string  true  "user_id del supplier"
// @Success      200  {object}  dto.ProductListResponse
// @Router       /api/suppliers/{id}/products [get]
func (h *ProductHandler) ListBySupplier(c *fiber.Ctx) error {
	supplierID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "user_id inválido"})
	}
	out, err := h.uc.ListBySupplier(Principal(c), supplierID, pageFromQuery(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar producto (supplier dueño o admin)
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del producto"
// @Param        body  body  dto.UpdateProductRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.ProductResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/products/{id} [put]
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	id, err := parseProductID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "id inválido"})
	}
	var in dto.UpdateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(Principal(c), id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Borrado lógico de producto (supplier dueño o admin)
// @Tags         products
// @Security     Bearer
// @Param        id  path  string  true  "ID del producto"
// @Success      200  {object}  dto.MessageResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [delete]
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id, err := parseProductID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "id inválido"})
	}
	if err := h.uc.Delete(Principal(c), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "producto eliminado"})
}

// Restore godoc
// @Summary      Restaurar producto borrado (solo admin)
// @Tags         products
// @Security     Bearer
// @Param        id  path  string  true  "ID del producto"
// @Success      200  {object}  dto.ProductResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/restore [post]
func (h *ProductHandler) Restore(c *fiber.Ctx) error {
	id, err := parseProductID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "id inválido"})
	}
	out, err := h.uc.Restore(Principal(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// WholesaleQuote godoc
// @Summary      Cotizar una cantidad (precio mayorista si el rol califica)
// @Tags         products
// @Produce      json
// @Param        id        path   string  true  "ID del producto"
// @Param        quantity  query  int     true  "Cantidad"
// @Success      200  {object}  dto.WholesaleQuoteResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/quote [get]
func (h *ProductHandler) WholesaleQuote(c *fiber.Ctx) error {
	id, err := parseProductID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "id inválido"})
	}
	out, err := h.uc.WholesaleQuote(Principal(c), id, c.QueryInt("quantity", 0))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
