package usecase

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/unicode/norm"

	"github.com/tu-usuario/mercado-b2b/internal/application/dto"
	"github.com/tu-usuario/mercado-b2b/internal/domain"
	"github.com/tu-usuario/mercado-b2b/internal/domain/access"
	"github.com/tu-usuario/mercado-b2b/internal/domain/entity"
	"github.com/tu-usuario/mercado-b2b/internal/domain/lifecycle"
	"github.com/tu-usuario/mercado-b2b/internal/domain/pricing"
	"github.com/tu-usuario/mercado-b2b/internal/domain/repository"
	"github.com/tu-usuario/mercado-b2b/internal/domain/role"
)

// ProductUseCase casos de uso del catálogo: CRUD con control de acceso por
// rol/propiedad, borrado lógico y resolución de precio según el observador.
type ProductUseCase struct {
	repo     repository.ProductRepository
	guard    *access.Guard
	currency string
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, guard *access.Guard, currency string) *ProductUseCase {
	return &ProductUseCase{repo: repo, guard: guard, currency: currency}
}

// Create crea un producto. Solo roles supplier; el dueño es el principal.
func (uc *ProductUseCase) Create(p access.Principal, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if d := uc.guard.Authorize(p, access.OpCreateProduct, access.Target{}); !d.Allowed {
		return nil, d.Err()
	}
	if in.NameEN == "" || in.NameAR == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Unit == "" {
		in.Unit = "KG"
	}
	if in.UnitSize.IsZero() {
		in.UnitSize = decimal.NewFromInt(1)
	}
	minQty := in.WholesaleMinQuantity
	if minQty == 0 {
		minQty = 5
	}
	ps := pricing.PriceSet{
		EndUserPrice:         in.EndUserPrice,
		RetailPriceB2C:       in.RetailPriceB2C,
		RetailPriceCorporate: in.RetailPriceCorporate,
		RetailPriceHoReCa:    in.RetailPriceHoReCa,
		WholesalePrice:       in.WholesalePrice,
		WholesaleMinQuantity: minQty,
	}
	if err := ps.Validate(); err != nil {
		return nil, err
	}
	now := time.Now()
	product := &entity.Product{
		ID:            uuid.New(),
		SupplierID:    p.ID,
		NameEN:        in.NameEN,
		NameAR:        in.NameAR,
		DescriptionEN: in.DescriptionEN,
		DescriptionAR: in.DescriptionAR,
		Category:      in.Category,
		Subcategory:   in.Subcategory,
		Unit:          in.Unit,
		UnitSize:      in.UnitSize,
		Prices:        ps,
		StockQuantity: in.StockQuantity,
		IsAvailable:   true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.repo.Create(product); err != nil {
		return nil, err
	}
	return uc.toResponse(product, p), nil
}

// GetByID obtiene un producto visible para el observador (los borrados no
// existen para ningún rol).
func (uc *ProductUseCase) GetByID(p access.Principal, id uuid.UUID) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByIDIncludingDeleted(id)
	if err != nil {
		return nil, err
	}
	if d := uc.guard.Authorize(p, access.OpViewProduct, productTarget(product)); !d.Allowed {
		return nil, d.Err()
	}
	return uc.toResponse(product, p), nil
}

// List lista el catálogo con paginación y precio resuelto por rol.
func (uc *ProductUseCase) List(p access.Principal, page dto.PageRequest) (*dto.ProductListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return uc.toListResponse(list, p, page), nil
}

// Search busca en el catálogo. El rango min/max de precio se evalúa sobre la
// columna de precio del rol del observador; el texto se normaliza a NFC para
// que las búsquedas en árabe no dependan de la forma de composición Unicode.
func (uc *ProductUseCase) Search(p access.Principal, in dto.ProductSearchRequest) (*dto.ProductListResponse, error) {
	in.DefaultPage()
	filter := repository.ProductSearchFilter{
		Query:         norm.NFC.String(strings.TrimSpace(in.Query)),
		Category:      in.Category,
		PriceField:    viewerPriceField(p.Role),
		MinPrice:      in.MinPrice,
		MaxPrice:      in.MaxPrice,
		AvailableOnly: in.AvailableOnly == nil || *in.AvailableOnly,
		Limit:         in.Limit,
		Offset:        in.Offset,
	}
	if in.Supplier != "" {
		supplierID, err := uuid.Parse(in.Supplier)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		filter.SupplierID = &supplierID
	}
	list, err := uc.repo.Search(filter)
	if err != nil {
		return nil, err
	}
	return uc.toListResponse(list, p, in.PageRequest), nil
}

// ListBySupplier lista los productos activos de un supplier.
func (uc *ProductUseCase) ListBySupplier(p access.Principal, supplierID uuid.UUID, page dto.PageRequest) (*dto.ProductListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.ListBySupplier(supplierID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return uc.toListResponse(list, p, page), nil
}

// Update actualiza un producto (supplier dueño o admin). El PriceSet
// resultante de aplicar el parche debe seguir cumpliendo el invariante
// mayorista <= retail.
func (uc *ProductUseCase) Update(p access.Principal, id uuid.UUID, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByIDIncludingDeleted(id)
	if err != nil {
		return nil, err
	}
	if d := uc.guard.Authorize(p, access.OpUpdateProduct, productTarget(product)); !d.Allowed {
		return nil, d.Err()
	}
	if in.NameEN != nil {
		product.NameEN = *in.NameEN
	}
	if in.NameAR != nil {
		product.NameAR = *in.NameAR
	}
	if in.DescriptionEN != nil {
		product.DescriptionEN = *in.DescriptionEN
	}
	if in.DescriptionAR != nil {
		product.DescriptionAR = *in.DescriptionAR
	}
	if in.Category != nil {
		product.Category = *in.Category
	}
	if in.Subcategory != nil {
		product.Subcategory = *in.Subcategory
	}
	if in.Unit != nil {
		product.Unit = *in.Unit
	}
	if in.UnitSize != nil {
		product.UnitSize = *in.UnitSize
	}
	if in.StockQuantity != nil {
		product.StockQuantity = *in.StockQuantity
	}
	if in.IsAvailable != nil {
		product.IsAvailable = *in.IsAvailable
	}

	ps := product.Prices
	if in.EndUserPrice != nil {
		ps.EndUserPrice = *in.EndUserPrice
	}
	if in.RetailPriceB2C != nil {
		ps.RetailPriceB2C = *in.RetailPriceB2C
	}
	if in.RetailPriceCorporate != nil {
		ps.RetailPriceCorporate = *in.RetailPriceCorporate
	}
	if in.RetailPriceHoReCa != nil {
		ps.RetailPriceHoReCa = *in.RetailPriceHoReCa
	}
	if in.WholesalePrice != nil {
		ps.WholesalePrice = *in.WholesalePrice
	}
	if in.WholesaleMinQuantity != nil {
		ps.WholesaleMinQuantity = *in.WholesaleMinQuantity
	}
	if err := ps.Validate(); err != nil {
		return nil, err
	}
	product.Prices = ps
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(product); err != nil {
		return nil, err
	}
	return uc.toResponse(product, p), nil
}

// Delete borra lógicamente un producto (supplier dueño o admin): deleted_at
// presente e is_available apagado, como grupo atómico.
func (uc *ProductUseCase) Delete(p access.Principal, id uuid.UUID) error {
	product, err := uc.repo.GetByIDIncludingDeleted(id)
	if err != nil {
		return err
	}
	if d := uc.guard.Authorize(p, access.OpDeleteProduct, productTarget(product)); !d.Allowed {
		return d.Err()
	}
	if err := lifecycle.SoftDelete(product, time.Now()); err != nil {
		return err
	}
	return uc.repo.UpdateDeletionState(product)
}

// Restore restaura un producto borrado lógicamente (solo admin).
func (uc *ProductUseCase) Restore(p access.Principal, id uuid.UUID) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByIDIncludingDeleted(id)
	if err != nil {
		return nil, err
	}
	if d := uc.guard.Authorize(p, access.OpRestoreProduct, productTarget(product)); !d.Allowed {
		return nil, d.Err()
	}
	if err := lifecycle.Restore(product); err != nil {
		return nil, err
	}
	if err := uc.repo.UpdateDeletionState(product); err != nil {
		return nil, err
	}
	return uc.toResponse(product, p), nil
}

// WholesaleQuote cotiza una cantidad: si el rol califica al mayorista aplica
// wholesale_price; si no, el precio que ese rol ve normalmente.
func (uc *ProductUseCase) WholesaleQuote(p access.Principal, id uuid.UUID, quantity int) (*dto.WholesaleQuoteResponse, error) {
	if quantity < 1 {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.repo.GetByIDIncludingDeleted(id)
	if err != nil {
		return nil, err
	}
	if d := uc.guard.Authorize(p, access.OpViewProduct, productTarget(product)); !d.Allowed {
		return nil, d.Err()
	}
	ps := product.Prices
	eligible := pricing.IsWholesaleEligible(p.Role, quantity, ps.WholesaleMinQuantity)
	var amount decimal.Decimal
	if eligible {
		amount = ps.WholesalePrice
	} else if view := pricing.Resolve(p.Role, ps); view.IsFull() {
		amount = ps.EndUserPrice // admin: precio de referencia
	} else {
		amount = view.Amount
	}
	return &dto.WholesaleQuoteResponse{
		ProductID:         product.ID.String(),
		Quantity:          quantity,
		Price:             amount,
		PriceDisplay:      formatQuote(amount, uc.currency, product.Unit, product.UnitSize),
		WholesaleEligible: eligible,
		MinQuantity:       ps.WholesaleMinQuantity,
	}, nil
}

func formatQuote(amount decimal.Decimal, currency, unit string, unitSize decimal.Decimal) string {
	return amount.StringFixed(2) + " " + currency + " per " + unitSize.String() + " " + unit
}

// viewerPriceField columna de precio para filtros de rango: la del rol del
// observador; admin y anónimos filtran por el precio de consumidor final.
func viewerPriceField(r role.Role) string {
	if f := r.PriceField(); f != role.PriceFieldAll {
		return f
	}
	return role.PriceFieldEndUser
}

func productTarget(p *entity.Product) access.Target {
	if p == nil {
		return access.Target{}
	}
	return access.Target{OwnerID: p.SupplierID, Exists: true, Deleted: p.IsDeleted()}
}

func (uc *ProductUseCase) toListResponse(list []*entity.Product, p access.Principal, page dto.PageRequest) *dto.ProductListResponse {
	items := make([]dto.ProductResponse, 0, len(list))
	for _, product := range list {
		items = append(items, *uc.toResponse(product, p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}
}

// toResponse arma la respuesta con la vista de precio del observador:
// un monto único con su display, o los cinco montos cuando el rol es admin.
func (uc *ProductUseCase) toResponse(product *entity.Product, p access.Principal) *dto.ProductResponse {
	if product == nil {
		return nil
	}
	out := &dto.ProductResponse{
		ID:            product.ID.String(),
		SupplierID:    product.SupplierID.String(),
		NameEN:        product.NameEN,
		NameAR:        product.NameAR,
		DescriptionEN: product.DescriptionEN,
		DescriptionAR: product.DescriptionAR,
		Category:      product.Category,
		Subcategory:   product.Subcategory,
		Unit:          product.Unit,
		UnitSize:      product.UnitSize,
		StockQuantity: product.StockQuantity,
		IsAvailable:   product.IsAvailable,
		CreatedAt:     product.CreatedAt,
		UpdatedAt:     product.UpdatedAt,
	}
	view := pricing.Resolve(p.Role, product.Prices)
	display := pricing.FormatDisplay(p.Role, product.Prices, product.Unit, product.UnitSize, uc.currency)
	if view.IsFull() {
		out.AllPrices = &dto.PriceSetResponse{
			EndUserPrice:         view.Full.EndUserPrice,
			RetailPriceB2C:       view.Full.RetailPriceB2C,
			RetailPriceCorporate: view.Full.RetailPriceCorporate,
			RetailPriceHoReCa:    view.Full.RetailPriceHoReCa,
			WholesalePrice:       view.Full.WholesalePrice,
			WholesaleMinQuantity: view.Full.WholesaleMinQuantity,
		}
		out.PriceDisplayAll = display.Full
	} else {
		amount := view.Amount
		out.Price = &amount
		out.PriceDisplay = display.Text
	}
	return out
}
