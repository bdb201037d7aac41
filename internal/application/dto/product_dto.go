package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto (solo roles supplier;
// el supplier dueño se toma del principal, no del cuerpo).
type CreateProductRequest struct {
	NameEN               string          `json:"name_en"`
	NameAR               string          `json:"name_ar"`
	DescriptionEN        string          `json:"description_en"`
	DescriptionAR        string          `json:"description_ar"`
	Category             string          `json:"category"`
	Subcategory          string          `json:"subcategory"`
	Unit                 string          `json:"unit"`
	UnitSize             decimal.Decimal `json:"unit_size"`
	EndUserPrice         decimal.Decimal `json:"end_user_price"`
	RetailPriceB2C       decimal.Decimal `json:"retail_price_b2c"`
	RetailPriceCorporate decimal.Decimal `json:"retail_price_corporate"`
	RetailPriceHoReCa    decimal.Decimal `json:"retail_price_horeca"`
	WholesalePrice       decimal.Decimal `json:"wholesale_price"`
	WholesaleMinQuantity int             `json:"wholesale_min_quantity"`
	StockQuantity        int             `json:"stock_quantity"`
}

// UpdateProductRequest actualización parcial de un producto.
type UpdateProductRequest struct {
	NameEN               *string          `json:"name_en"`
	NameAR               *string          `json:"name_ar"`
	DescriptionEN        *string          `json:"description_en"`
	DescriptionAR        *string          `json:"description_ar"`
	Category             *string          `json:"category"`
	Subcategory          *string          `json:"subcategory"`
	Unit                 *string          `json:"unit"`
	UnitSize             *decimal.Decimal `json:"unit_size"`
	EndUserPrice         *decimal.Decimal `json:"end_user_price"`
	RetailPriceB2C       *decimal.Decimal `json:"retail_price_b2c"`
	RetailPriceCorporate *decimal.Decimal `json:"retail_price_corporate"`
	RetailPriceHoReCa    *decimal.Decimal `json:"retail_price_horeca"`
	WholesalePrice       *decimal.Decimal `json:"wholesale_price"`
	WholesaleMinQuantity *int             `json:"wholesale_min_quantity"`
	StockQuantity        *int             `json:"stock_quantity"`
	IsAvailable          *bool            `json:"is_available"`
}

// PriceSetResponse los cinco precios completos (solo visible para admin).
type PriceSetResponse struct {
	EndUserPrice         decimal.Decimal `json:"end_user_price"`
	RetailPriceB2C       decimal.Decimal `json:"retail_price_b2c"`
	RetailPriceCorporate decimal.Decimal `json:"retail_price_corporate"`
	RetailPriceHoReCa    decimal.Decimal `json:"retail_price_horeca"`
	WholesalePrice       decimal.Decimal `json:"wholesale_price"`
	WholesaleMinQuantity int             `json:"wholesale_min_quantity"`
}

// ProductResponse salida de un producto con el precio resuelto según el rol
// del observador: Price y PriceDisplay para vistas de un solo precio,
// AllPrices y PriceDisplayAll cuando el observador es admin.
type ProductResponse struct {
	ID              string             `json:"id"`
	SupplierID      string             `json:"supplier_id"`
	NameEN          string             `json:"name_en"`
	NameAR          string             `json:"name_ar"`
	DescriptionEN   string             `json:"description_en,omitempty"`
	DescriptionAR   string             `json:"description_ar,omitempty"`
	Category        string             `json:"category,omitempty"`
	Subcategory     string             `json:"subcategory,omitempty"`
	Unit            string             `json:"unit"`
	UnitSize        decimal.Decimal    `json:"unit_size"`
	StockQuantity   int                `json:"stock_quantity"`
	IsAvailable     bool               `json:"is_available"`
	Price           *decimal.Decimal   `json:"price,omitempty"`
	PriceDisplay    string             `json:"price_display,omitempty"`
	AllPrices       *PriceSetResponse  `json:"all_prices,omitempty"`
	PriceDisplayAll map[string]string  `json:"price_display_all,omitempty"`
	CreatedAt       time.Time          `json:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// ProductSearchRequest parámetros de búsqueda del catálogo. El rango de
// precios se evalúa contra el campo de precio del rol del observador.
type ProductSearchRequest struct {
	Query         string           `query:"query"`
	Category      string           `query:"category"`
	Supplier      string           `query:"supplier"` // user_id público del supplier
	MinPrice      *decimal.Decimal `query:"min_price"`
	MaxPrice      *decimal.Decimal `query:"max_price"`
	AvailableOnly *bool            `query:"available_only"`
	PageRequest
}

// WholesaleQuoteResponse cotización mayorista para una cantidad dada.
type WholesaleQuoteResponse struct {
	ProductID         string          `json:"product_id"`
	Quantity          int             `json:"quantity"`
	Price             decimal.Decimal `json:"price"`
	PriceDisplay      string          `json:"price_display"`
	WholesaleEligible bool            `json:"wholesale_eligible"`
	MinQuantity       int             `json:"wholesale_min_quantity"`
}
