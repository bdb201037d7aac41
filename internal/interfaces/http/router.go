package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/mercado-b2b/internal/application/auth"
	"github.com/tu-usuario/mercado-b2b/internal/application/usecase"
	"github.com/tu-usuario/mercado-b2b/internal/domain/role"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC    *auth.UseCase
	ResetUC   *auth.PasswordResetUseCase
	UserUC    *usecase.UserUseCase
	ProductUC *usecase.ProductUseCase
	JWTSecret string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC, deps.ResetUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/forgot-password", authHandler.ForgotPassword)
	authGroup.Post("/verify-otp", authHandler.VerifyOTP)
	authGroup.Post("/reset-password", authHandler.ResetPassword)

	productHandler := NewProductHandler(deps.ProductUC)
	userHandler := NewUserHandler(deps.UserUC)

	// Catálogo: lecturas públicas con auth opcional (el precio depende del rol del token, si lo hay)
	catalog := api.Group("/products", OptionalAuthMiddleware(deps.JWTSecret))
	catalog.Get("/", productHandler.List)
	catalog.Get("/search", productHandler.Search)
	catalog.Get("/:id", productHandler.GetByID)
	catalog.Get("/:id/quote", productHandler.WholesaleQuote)

	// Suppliers (público)
	suppliers := api.Group("/suppliers", OptionalAuthMiddleware(deps.JWTSecret))
	suppliers.Get("/", userHandler.ListSuppliers)
	suppliers.Get("/:id/products", productHandler.ListBySupplier)

	// Mutaciones de catálogo (requieren Bearer Token; la propiedad la decide el guard)
	products := api.Group("/products", AuthMiddleware(deps.JWTSecret))
	products.Post("/", productHandler.Create)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)
	products.Post("/:id/restore", productHandler.Restore)

	// Usuarios (protegido)
	users := api.Group("/users", AuthMiddleware(deps.JWTSecret))
	users.Get("/me", userHandler.Me)
	users.Get("/", RequireRole(role.Admin), userHandler.List)
	users.Get("/search", RequireRole(role.Admin), userHandler.Search)
	users.Get("/active", RequireRole(role.Admin), userHandler.ListActive)
	users.Get("/:id", userHandler.GetByID)
	users.Put("/:id", userHandler.Update)
	users.Post("/:id/activate", userHandler.Activate)
	users.Post("/:id/deactivate", userHandler.Deactivate)
	users.Delete("/:id", userHandler.Delete)
	users.Post("/:id/restore", RequireRole(role.Admin), userHandler.Restore)
	users.Delete("/:id/hard", RequireRole(role.Admin), userHandler.HardDelete)
	users.Put("/:id/role", RequireRole(role.Admin), userHandler.ChangeRole)
	users.Post("/:id/verify", RequireRole(role.Admin), userHandler.Verify)
}
