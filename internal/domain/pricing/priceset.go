// Package pricing contiene la lógica pura de precios por rol: el conjunto de
// cinco precios de un producto, la resolución del precio visible para cada
// rol, el formato de display y la elegibilidad mayorista.
package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/mercado-b2b/internal/domain"
)

// PriceSet agrupa los cinco montos de precio de un producto más la cantidad
// mínima para precio mayorista.
type PriceSet struct {
	EndUserPrice         decimal.Decimal
	RetailPriceB2C       decimal.Decimal
	RetailPriceCorporate decimal.Decimal
	RetailPriceHoReCa    decimal.Decimal
	WholesalePrice       decimal.Decimal
	WholesaleMinQuantity int
}

// MinRetail devuelve el menor de los tres precios retail.
func (ps PriceSet) MinRetail() decimal.Decimal {
	min := ps.RetailPriceB2C
	if ps.RetailPriceCorporate.LessThan(min) {
		min = ps.RetailPriceCorporate
	}
	if ps.RetailPriceHoReCa.LessThan(min) {
		min = ps.RetailPriceHoReCa
	}
	return min
}

// Validate aplica los invariantes de creación/actualización de un PriceSet:
// montos no negativos con máximo 2 decimales, cantidad mínima positiva y
// wholesale_price <= min(retail_b2c, retail_corporate, retail_horeca).
func (ps PriceSet) Validate() error {
	amounts := map[string]decimal.Decimal{
		"end_user_price":         ps.EndUserPrice,
		"retail_price_b2c":       ps.RetailPriceB2C,
		"retail_price_corporate": ps.RetailPriceCorporate,
		"retail_price_horeca":    ps.RetailPriceHoReCa,
		"wholesale_price":        ps.WholesalePrice,
	}
	for name, d := range amounts {
		if d.IsNegative() {
			return fmt.Errorf("%w: %s no puede ser negativo", domain.ErrValidation, name)
		}
		if d.Exponent() < -2 {
			return fmt.Errorf("%w: %s admite máximo 2 decimales", domain.ErrValidation, name)
		}
	}
	if ps.WholesaleMinQuantity < 1 {
		return fmt.Errorf("%w: wholesale_min_quantity debe ser positivo", domain.ErrValidation)
	}
	if ps.WholesalePrice.GreaterThan(ps.MinRetail()) {
		return fmt.Errorf("%w: wholesale_price debe ser menor o igual a los precios retail", domain.ErrValidation)
	}
	return nil
}
