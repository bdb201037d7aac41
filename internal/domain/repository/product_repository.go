package repository

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/mercado-b2b/internal/domain/entity"
)

// ProductSearchFilter filtros de búsqueda de catálogo. PriceField es la
// columna de precio del rol del observador; el rango Min/Max se evalúa sobre
// esa columna para que cada rol filtre por el precio que realmente ve.
type ProductSearchFilter struct {
	Query         string // busca en nombre y descripción (EN y AR)
	Category      string
	SupplierID    *uuid.UUID
	PriceField    string
	MinPrice      *decimal.Decimal
	MaxPrice      *decimal.Decimal
	AvailableOnly bool
	Limit         int
	Offset        int
}

// ProductRepository define el puerto de persistencia para Product (DIP).
// Los métodos Get*/List*/Search excluyen productos borrados salvo la variante
// IncludingDeleted (necesaria para restore).
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id uuid.UUID) (*entity.Product, error)
	GetByIDIncludingDeleted(id uuid.UUID) (*entity.Product, error)
	Update(product *entity.Product) error
	// UpdateDeletionState persiste deleted_at e is_available como grupo atómico.
	UpdateDeletionState(product *entity.Product) error
	HardDelete(id uuid.UUID) error
	// HardDeleteBySupplier elimina físicamente todos los productos de un
	// supplier (borrados lógicos incluidos). Devuelve cuántos eliminó.
	HardDeleteBySupplier(supplierID uuid.UUID) (int64, error)
	List(limit, offset int) ([]*entity.Product, error)
	Search(filter ProductSearchFilter) ([]*entity.Product, error)
	ListBySupplier(supplierID uuid.UUID, limit, offset int) ([]*entity.Product, error)
}
