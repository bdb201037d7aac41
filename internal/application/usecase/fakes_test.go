package usecase_test

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/mercado-b2b/internal/domain"
	"github.com/tu-usuario/mercado-b2b/internal/domain/entity"
	"github.com/tu-usuario/mercado-b2b/internal/domain/repository"
	"github.com/tu-usuario/mercado-b2b/internal/domain/role"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria de los puertos de persistencia
// ──────────────────────────────────────────────────────────────────────────────

type fakeUserRepo struct {
	users  map[uuid.UUID]*entity.User
	nextID int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*entity.User)}
}

func (f *fakeUserRepo) Create(u *entity.User) error {
	for _, existing := range f.users {
		if existing.Username == u.Username || existing.Email == u.Email {
			return domain.ErrDuplicate
		}
	}
	f.nextID++
	u.ID = f.nextID
	cp := *u
	f.users[u.UserID] = &cp
	return nil
}

func (f *fakeUserRepo) GetByUserID(userID uuid.UUID) (*entity.User, error) {
	u, ok := f.users[userID]
	if !ok || u.DeletedAt != nil {
		return nil, domain.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) GetByUserIDIncludingDeleted(userID uuid.UUID) (*entity.User, error) {
	u, ok := f.users[userID]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) GetByUsername(username string) (*entity.User, error) {
	for _, u := range f.users {
		if u.Username == username && u.DeletedAt == nil {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (f *fakeUserRepo) GetByEmail(email string) (*entity.User, error) {
	for _, u := range f.users {
		if u.Email == email && u.DeletedAt == nil {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (f *fakeUserRepo) ExistsByUsername(username string) (bool, error) {
	for _, u := range f.users {
		if u.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserRepo) ExistsByEmail(email string) (bool, error) {
	for _, u := range f.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserRepo) Update(u *entity.User) error {
	if _, ok := f.users[u.UserID]; !ok {
		return domain.ErrUserNotFound
	}
	cp := *u
	f.users[u.UserID] = &cp
	return nil
}

func (f *fakeUserRepo) UpdateDeletionState(u *entity.User) error {
	stored, ok := f.users[u.UserID]
	if !ok {
		return domain.ErrUserNotFound
	}
	stored.DeletedAt = u.DeletedAt
	stored.IsActive = u.IsActive
	return nil
}

func (f *fakeUserRepo) HardDelete(userID uuid.UUID) error {
	if _, ok := f.users[userID]; !ok {
		return domain.ErrUserNotFound
	}
	delete(f.users, userID)
	return nil
}

func (f *fakeUserRepo) List(limit, offset int) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range f.users {
		if u.DeletedAt == nil {
			cp := *u
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeUserRepo) Search(query string, limit, offset int) ([]*entity.User, error) {
	var out []*entity.User
	q := strings.ToLower(query)
	for _, u := range f.users {
		if u.DeletedAt != nil {
			continue
		}
		if strings.Contains(strings.ToLower(u.Username), q) ||
			strings.Contains(strings.ToLower(u.UserID.String()), q) {
			cp := *u
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeUserRepo) ListActive(limit, offset int) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range f.users {
		if u.DeletedAt == nil && u.IsActive {
			cp := *u
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeUserRepo) ListSuppliers(limit, offset int) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range f.users {
		if u.DeletedAt == nil && u.IsActive && role.Parse(u.Role).IsSupplier() {
			cp := *u
			out = append(out, &cp)
		}
	}
	return out, nil
}

type fakeProductRepo struct {
	products map[uuid.UUID]*entity.Product
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[uuid.UUID]*entity.Product)}
}

func (f *fakeProductRepo) Create(p *entity.Product) error {
	cp := *p
	f.products[p.ID] = &cp
	return nil
}

func (f *fakeProductRepo) GetByID(id uuid.UUID) (*entity.Product, error) {
	p, ok := f.products[id]
	if !ok || p.DeletedAt != nil {
		return nil, domain.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProductRepo) GetByIDIncludingDeleted(id uuid.UUID) (*entity.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProductRepo) Update(p *entity.Product) error {
	if _, ok := f.products[p.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *p
	f.products[p.ID] = &cp
	return nil
}

func (f *fakeProductRepo) UpdateDeletionState(p *entity.Product) error {
	stored, ok := f.products[p.ID]
	if !ok {
		return domain.ErrNotFound
	}
	stored.DeletedAt = p.DeletedAt
	stored.IsAvailable = p.IsAvailable
	return nil
}

func (f *fakeProductRepo) HardDelete(id uuid.UUID) error {
	if _, ok := f.products[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.products, id)
	return nil
}

func (f *fakeProductRepo) HardDeleteBySupplier(supplierID uuid.UUID) (int64, error) {
	var n int64
	for id, p := range f.products {
		if p.SupplierID == supplierID {
			delete(f.products, id)
			n++
		}
	}
	return n, nil
}

func (f *fakeProductRepo) List(limit, offset int) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range f.products {
		if p.DeletedAt == nil {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeProductRepo) Search(filter repository.ProductSearchFilter) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range f.products {
		if p.DeletedAt != nil {
			continue
		}
		if filter.AvailableOnly && !p.IsAvailable {
			continue
		}
		if filter.Category != "" && p.Category != filter.Category {
			continue
		}
		if filter.SupplierID != nil && p.SupplierID != *filter.SupplierID {
			continue
		}
		if filter.Query != "" {
			q := strings.ToLower(filter.Query)
			if !strings.Contains(strings.ToLower(p.NameEN), q) &&
				!strings.Contains(p.NameAR, filter.Query) {
				continue
			}
		}
		if filter.MinPrice != nil || filter.MaxPrice != nil {
			price, ok := priceByField(p, filter.PriceField)
			if !ok {
				return nil, domain.ErrInvalidInput
			}
			if filter.MinPrice != nil && price.LessThan(*filter.MinPrice) {
				continue
			}
			if filter.MaxPrice != nil && price.GreaterThan(*filter.MaxPrice) {
				continue
			}
		}
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeProductRepo) ListBySupplier(supplierID uuid.UUID, limit, offset int) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range f.products {
		if p.DeletedAt == nil && p.SupplierID == supplierID {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func priceByField(p *entity.Product, field string) (decimal.Decimal, bool) {
	switch field {
	case role.PriceFieldEndUser:
		return p.Prices.EndUserPrice, true
	case role.PriceFieldB2C:
		return p.Prices.RetailPriceB2C, true
	case role.PriceFieldCorporate:
		return p.Prices.RetailPriceCorporate, true
	case role.PriceFieldHoReCa:
		return p.Prices.RetailPriceHoReCa, true
	case role.PriceFieldWholesale:
		return p.Prices.WholesalePrice, true
	}
	return decimal.Decimal{}, false
}

// fakeTxRunner ejecuta el callback directo contra los fakes (sin transacción real).
type fakeTxRunner struct {
	users    *fakeUserRepo
	products *fakeProductRepo
}

func (f *fakeTxRunner) Run(ctx context.Context, fn func(repository.UserRepository, repository.ProductRepository) error) error {
	return fn(f.users, f.products)
}
