package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/mercado-b2b/internal/domain/role"
)

// ViewKind discrimina entre la vista de un solo precio y la vista completa.
type ViewKind int

const (
	// ViewSingle un único monto según el rol.
	ViewSingle ViewKind = iota
	// ViewFull los cinco montos más la cantidad mínima mayorista (solo Admin).
	ViewFull
)

// PriceView es el resultado de resolver un precio para un rol. Es un tipo
// discriminado: Amount es válido con ViewSingle; Full con ViewFull.
type PriceView struct {
	Kind   ViewKind
	Amount decimal.Decimal
	Full   *PriceSet
}

// IsFull indica si la vista contiene todos los precios (Admin).
func (v PriceView) IsFull() bool { return v.Kind == ViewFull }

// Resolve calcula la vista de precio para un rol. Función pura, nunca falla:
// un rol no reconocido cae al precio de consumidor final.
func Resolve(r role.Role, ps PriceSet) PriceView {
	switch r {
	case role.Admin:
		full := ps
		return PriceView{Kind: ViewFull, Full: &full}
	case role.Corporate, role.StorageClient:
		return PriceView{Kind: ViewSingle, Amount: ps.RetailPriceCorporate}
	case role.HoReCa:
		return PriceView{Kind: ViewSingle, Amount: ps.RetailPriceHoReCa}
	case role.Supplier, role.SupplierMerchant:
		return PriceView{Kind: ViewSingle, Amount: ps.WholesalePrice}
	default:
		// B2CVisitor, no autenticado o rol desconocido
		return PriceView{Kind: ViewSingle, Amount: ps.EndUserPrice}
	}
}

// PriceDisplay vista formateada de precios: Text para un solo precio,
// Full con una línea por campo cuando el rol es Admin.
type PriceDisplay struct {
	Kind ViewKind
	Text string
	Full map[string]string
}

// FormatDisplay devuelve el display de precio para un rol, con la forma
// "<monto> <moneda> per <tamaño> <unidad>". Para Admin formatea los cinco
// montos y anota la cantidad mínima en la línea mayorista.
func FormatDisplay(r role.Role, ps PriceSet, unit string, unitSize decimal.Decimal, currency string) PriceDisplay {
	view := Resolve(r, ps)
	if !view.IsFull() {
		return PriceDisplay{Kind: ViewSingle, Text: formatAmount(view.Amount, currency, unit, unitSize)}
	}
	return PriceDisplay{
		Kind: ViewFull,
		Full: map[string]string{
			"end_user_price":         formatAmount(ps.EndUserPrice, currency, unit, unitSize),
			"retail_price_b2c":       formatAmount(ps.RetailPriceB2C, currency, unit, unitSize),
			"retail_price_corporate": formatAmount(ps.RetailPriceCorporate, currency, unit, unitSize),
			"retail_price_horeca":    formatAmount(ps.RetailPriceHoReCa, currency, unit, unitSize),
			"wholesale_price": fmt.Sprintf("%s (min %d)",
				formatAmount(ps.WholesalePrice, currency, unit, unitSize), ps.WholesaleMinQuantity),
		},
	}
}

func formatAmount(amount decimal.Decimal, currency, unit string, unitSize decimal.Decimal) string {
	return fmt.Sprintf("%s %s per %s %s", amount.StringFixed(2), currency, unitSize.String(), unit)
}

// IsWholesaleEligible indica si un rol con una cantidad dada califica para el
// precio mayorista: solo Supplier, SupplierMerchant y Corporate, y solo si la
// cantidad alcanza el mínimo del producto. Predicado puro.
func IsWholesaleEligible(r role.Role, quantity, minQuantity int) bool {
	switch r {
	case role.Supplier, role.SupplierMerchant, role.Corporate:
		return quantity >= minQuantity
	default:
		return false
	}
}
