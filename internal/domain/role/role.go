// Package role define el registro cerrado de roles de negocio y sus
// atributos estáticos: campos obligatorios, verificación por defecto y el
// campo de precio que aplica a cada rol. El rol persiste como string libre;
// aquí se normaliza a una variante cerrada con fallback explícito.
package role

import (
	"fmt"
	"strings"

	"github.com/tu-usuario/mercado-b2b/internal/domain"
)

// Role es la clasificación cerrada de un usuario.
type Role string

// Los 7 roles de negocio. Unknown es el fallback para strings no reconocidos.
const (
	Admin            Role = "admin"
	B2CVisitor       Role = "b2c_visitor"
	Corporate        Role = "corporate"
	HoReCa           Role = "horeca"
	Supplier         Role = "supplier"
	SupplierMerchant Role = "supplier_merchant"
	StorageClient    Role = "storage_client"
	Unknown          Role = ""
)

// Requirement indica qué campo extra exige un rol al registrarse.
type Requirement int

const (
	RequireNone Requirement = iota
	RequireCompanyName
	RequireBusinessType
)

// Campos de precio de un Product. PriceFieldAll solo aplica a Admin.
const (
	PriceFieldEndUser   = "end_user_price"
	PriceFieldB2C       = "retail_price_b2c"
	PriceFieldCorporate = "retail_price_corporate"
	PriceFieldHoReCa    = "retail_price_horeca"
	PriceFieldWholesale = "wholesale_price"
	PriceFieldAll       = "all"
)

// All devuelve los roles válidos en orden estable.
func All() []Role {
	return []Role{Admin, B2CVisitor, Corporate, HoReCa, Supplier, SupplierMerchant, StorageClient}
}

// Parse normaliza un string de almacenamiento a una variante cerrada.
// Un valor no reconocido devuelve Unknown; nunca falla.
func Parse(s string) Role {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case Admin:
		return Admin
	case B2CVisitor:
		return B2CVisitor
	case Corporate:
		return Corporate
	case HoReCa:
		return HoReCa
	case Supplier:
		return Supplier
	case SupplierMerchant:
		return SupplierMerchant
	case StorageClient:
		return StorageClient
	default:
		return Unknown
	}
}

// IsValid indica si el rol es una de las 7 variantes conocidas.
func (r Role) IsValid() bool {
	return Parse(string(r)) != Unknown && r != Unknown
}

// DisplayName nombre legible del rol.
func (r Role) DisplayName() string {
	switch r {
	case Admin:
		return "Admin"
	case B2CVisitor:
		return "B2C Visitor"
	case Corporate:
		return "Corporate"
	case HoReCa:
		return "HoReCa"
	case Supplier:
		return "Supplier"
	case SupplierMerchant:
		return "Supplier Merchant"
	case StorageClient:
		return "Storage Client"
	default:
		return "Unknown"
	}
}

// Requirements devuelve el campo obligatorio del rol al registrarse.
func (r Role) Requirements() Requirement {
	switch r {
	case Corporate:
		return RequireCompanyName
	case HoReCa, Supplier, SupplierMerchant:
		return RequireBusinessType
	default:
		return RequireNone
	}
}

// PriceField devuelve el atributo de precio del producto que ve este rol.
// Admin ve todos los precios; un rol no reconocido cae al precio de consumidor final.
func (r Role) PriceField() string {
	switch r {
	case Admin:
		return PriceFieldAll
	case Corporate, StorageClient:
		return PriceFieldCorporate
	case HoReCa:
		return PriceFieldHoReCa
	case Supplier, SupplierMerchant:
		return PriceFieldWholesale
	default:
		// B2CVisitor, Unknown y cualquier otro valor
		return PriceFieldEndUser
	}
}

// DefaultVerified flag de verificación inicial: los admin nacen verificados.
func (r Role) DefaultVerified() bool {
	return r == Admin
}

// IsSupplier indica si el rol puede ser dueño de productos.
func (r Role) IsSupplier() bool {
	return r == Supplier || r == SupplierMerchant
}

// ValidateFields valida la completitud de campos específicos del rol:
// Corporate exige company_name; HoReCa, Supplier y SupplierMerchant exigen
// business_type. Los demás roles no tienen requisitos extra.
func ValidateFields(r Role, companyName, businessType string) error {
	switch r.Requirements() {
	case RequireCompanyName:
		if strings.TrimSpace(companyName) == "" {
			return fmt.Errorf("%w: el rol %s requiere company_name", domain.ErrValidation, r)
		}
	case RequireBusinessType:
		if strings.TrimSpace(businessType) == "" {
			return fmt.Errorf("%w: el rol %s requiere business_type", domain.ErrValidation, r)
		}
	}
	return nil
}
