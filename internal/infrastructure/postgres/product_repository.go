package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/tu-usuario/mercado-b2b/internal/domain"
	"github.com/tu-usuario/mercado-b2b/internal/domain/entity"
	"github.com/tu-usuario/mercado-b2b/internal/domain/repository"
	"github.com/tu-usuario/mercado-b2b/internal/domain/role"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, supplier_id, name_en, name_ar, description_en, description_ar,
		category, subcategory, unit, unit_size,
		end_user_price, retail_price_b2c, retail_price_corporate, retail_price_horeca,
		wholesale_price, wholesale_min_quantity,
		stock_quantity, is_available, deleted_at, created_at, updated_at`

// priceColumns lista blanca de columnas de precio: la columna dinámica de los
// filtros de rango solo puede venir de aquí, nunca del request.
var priceColumns = map[string]bool{
	role.PriceFieldEndUser:   true,
	role.PriceFieldB2C:       true,
	role.PriceFieldCorporate: true,
	role.PriceFieldHoReCa:    true,
	role.PriceFieldWholesale: true,
}

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL
// (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(product *entity.Product) error {
	query := `
		INSERT INTO products (id, supplier_id, name_en, name_ar, description_en, description_ar,
			category, subcategory, unit, unit_size,
			end_user_price, retail_price_b2c, retail_price_corporate, retail_price_horeca,
			wholesale_price, wholesale_min_quantity,
			stock_quantity, is_available, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.SupplierID, product.NameEN, product.NameAR,
		product.DescriptionEN, product.DescriptionAR,
		product.Category, product.Subcategory, product.Unit, product.UnitSize,
		product.Prices.EndUserPrice, product.Prices.RetailPriceB2C,
		product.Prices.RetailPriceCorporate, product.Prices.RetailPriceHoReCa,
		product.Prices.WholesalePrice, product.Prices.WholesaleMinQuantity,
		product.StockQuantity, product.IsAvailable, product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto no borrado.
func (r *ProductRepo) GetByID(id uuid.UUID) (*entity.Product, error) {
	return r.getOne(`SELECT `+productColumns+` FROM products WHERE id = $1 AND deleted_at IS NULL`, id)
}

// GetByIDIncludingDeleted obtiene un producto, borrado o no.
func (r *ProductRepo) GetByIDIncludingDeleted(id uuid.UUID) (*entity.Product, error) {
	return r.getOne(`SELECT `+productColumns+` FROM products WHERE id = $1`, id)
}

// Update persiste los campos mutables de un producto.
func (r *ProductRepo) Update(product *entity.Product) error {
	query := `
		UPDATE products SET name_en = $2, name_ar = $3, description_en = $4, description_ar = $5,
			category = $6, subcategory = $7, unit = $8, unit_size = $9,
			end_user_price = $10, retail_price_b2c = $11, retail_price_corporate = $12,
			retail_price_horeca = $13, wholesale_price = $14, wholesale_min_quantity = $15,
			stock_quantity = $16, is_available = $17, updated_at = $18
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		product.ID, product.NameEN, product.NameAR, product.DescriptionEN, product.DescriptionAR,
		product.Category, product.Subcategory, product.Unit, product.UnitSize,
		product.Prices.EndUserPrice, product.Prices.RetailPriceB2C,
		product.Prices.RetailPriceCorporate, product.Prices.RetailPriceHoReCa,
		product.Prices.WholesalePrice, product.Prices.WholesaleMinQuantity,
		product.StockQuantity, product.IsAvailable, product.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateDeletionState persiste deleted_at e is_available como grupo atómico.
func (r *ProductRepo) UpdateDeletionState(product *entity.Product) error {
	query := `UPDATE products SET deleted_at = $2, is_available = $3, updated_at = now() WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, product.ID, product.DeletedAt, product.IsAvailable)
	if err != nil {
		return fmt.Errorf("update product deletion state: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// HardDelete elimina físicamente un producto.
func (r *ProductRepo) HardDelete(id uuid.UUID) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// HardDeleteBySupplier elimina los productos de un supplier (borrados lógicos incluidos).
func (r *ProductRepo) HardDeleteBySupplier(supplierID uuid.UUID) (int64, error) {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM products WHERE supplier_id = $1`, supplierID)
	if err != nil {
		return 0, fmt.Errorf("delete products by supplier: %w", err)
	}
	return tag.RowsAffected(), nil
}

// List lista productos no borrados con paginación.
func (r *ProductRepo) List(limit, offset int) ([]*entity.Product, error) {
	return r.getMany(`
		SELECT `+productColumns+` FROM products
		WHERE deleted_at IS NULL
		ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
}

// Search busca en el catálogo. El rango min/max se evalúa sobre la columna de
// precio indicada en el filtro (validada contra la lista blanca).
func (r *ProductRepo) Search(filter repository.ProductSearchFilter) ([]*entity.Product, error) {
	var sb strings.Builder
	sb.WriteString(`SELECT ` + productColumns + ` FROM products WHERE deleted_at IS NULL`)
	args := []any{}

	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.Query != "" {
		p := arg(filter.Query)
		sb.WriteString(fmt.Sprintf(
			` AND (name_en ILIKE '%%' || %[1]s || '%%' OR name_ar ILIKE '%%' || %[1]s || '%%'
			   OR description_en ILIKE '%%' || %[1]s || '%%' OR description_ar ILIKE '%%' || %[1]s || '%%')`, p))
	}
	if filter.Category != "" {
		sb.WriteString(` AND category = ` + arg(filter.Category))
	}
	if filter.SupplierID != nil {
		sb.WriteString(` AND supplier_id = ` + arg(*filter.SupplierID))
	}
	if filter.AvailableOnly {
		sb.WriteString(` AND is_available`)
	}
	if filter.MinPrice != nil || filter.MaxPrice != nil {
		col := filter.PriceField
		if !priceColumns[col] {
			return nil, domain.ErrInvalidInput
		}
		if filter.MinPrice != nil {
			sb.WriteString(` AND ` + col + ` >= ` + arg(*filter.MinPrice))
		}
		if filter.MaxPrice != nil {
			sb.WriteString(` AND ` + col + ` <= ` + arg(*filter.MaxPrice))
		}
	}
	sb.WriteString(` ORDER BY created_at DESC LIMIT ` + arg(filter.Limit) + ` OFFSET ` + arg(filter.Offset))

	return r.getMany(sb.String(), args...)
}

// ListBySupplier lista los productos no borrados de un supplier.
func (r *ProductRepo) ListBySupplier(supplierID uuid.UUID, limit, offset int) ([]*entity.Product, error) {
	return r.getMany(`
		SELECT `+productColumns+` FROM products
		WHERE deleted_at IS NULL AND supplier_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`, supplierID, limit, offset)
}

func (r *ProductRepo) getOne(query string, args ...any) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(context.Background(), query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

func (r *ProductRepo) getMany(query string, args ...any) ([]*entity.Product, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var products []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(
		&p.ID, &p.SupplierID, &p.NameEN, &p.NameAR, &p.DescriptionEN, &p.DescriptionAR,
		&p.Category, &p.Subcategory, &p.Unit, &p.UnitSize,
		&p.Prices.EndUserPrice, &p.Prices.RetailPriceB2C, &p.Prices.RetailPriceCorporate,
		&p.Prices.RetailPriceHoReCa, &p.Prices.WholesalePrice, &p.Prices.WholesaleMinQuantity,
		&p.StockQuantity, &p.IsAvailable, &p.DeletedAt, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
