package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/mercado-b2b/internal/domain/pricing"
)

// Product producto del catálogo con nombre bilingüe y cinco niveles de precio
// según el rol del comprador. Pertenece en exclusiva a un supplier (FK por
// UserID público); solo ese supplier o un admin pueden mutarlo.
type Product struct {
	ID            uuid.UUID
	SupplierID    uuid.UUID // UserID público del supplier dueño
	NameEN        string
	NameAR        string
	DescriptionEN string
	DescriptionAR string
	Category      string
	Subcategory   string
	Unit          string          // KG, Package, etc.
	UnitSize      decimal.Decimal // ej. 1.0 para 1 KG, 20.0 para paquete de 20 KG
	Prices        pricing.PriceSet
	StockQuantity int
	IsAvailable   bool

	// Borrado lógico: DeletedAt presente <=> borrado
	DeletedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsDeleted se deriva del timestamp de borrado.
func (p *Product) IsDeleted() bool {
	return p.DeletedAt != nil
}

// DeletionTime, SetDeletionTime y SetUsable implementan lifecycle.Record.
// El flag de usabilidad de un Product es IsAvailable.
func (p *Product) DeletionTime() *time.Time     { return p.DeletedAt }
func (p *Product) SetDeletionTime(t *time.Time) { p.DeletedAt = t }
func (p *Product) SetUsable(b bool)             { p.IsAvailable = b }
