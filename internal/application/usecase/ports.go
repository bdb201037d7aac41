package usecase

import (
	"context"

	"github.com/tu-usuario/mercado-b2b/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción: los repositorios que recibe
// comparten la misma tx y el commit/rollback lo decide el error devuelto.
type TxRunner interface {
	Run(ctx context.Context, fn func(users repository.UserRepository, products repository.ProductRepository) error) error
}
