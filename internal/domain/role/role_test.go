package role_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/mercado-b2b/internal/domain"
	"github.com/tu-usuario/mercado-b2b/internal/domain/role"
)

// TestParse_Normaliza verifica que strings de almacenamiento (con espacios o
// mayúsculas) se normalizan a la variante cerrada correcta.
func TestParse_Normaliza(t *testing.T) {
	cases := []struct {
		in   string
		want role.Role
	}{
		{"admin", role.Admin},
		{"ADMIN", role.Admin},
		{" b2c_visitor ", role.B2CVisitor},
		{"corporate", role.Corporate},
		{"horeca", role.HoReCa},
		{"supplier", role.Supplier},
		{"supplier_merchant", role.SupplierMerchant},
		{"storage_client", role.StorageClient},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, role.Parse(c.in), "input %q", c.in)
	}
}

// TestParse_Desconocido: un rol no reconocido nunca falla, cae a Unknown.
func TestParse_Desconocido(t *testing.T) {
	assert.Equal(t, role.Unknown, role.Parse("superuser"))
	assert.Equal(t, role.Unknown, role.Parse(""))
	assert.False(t, role.Unknown.IsValid())
}

func TestPriceField_TablaPorRol(t *testing.T) {
	cases := map[role.Role]string{
		role.Admin:            role.PriceFieldAll,
		role.B2CVisitor:       role.PriceFieldEndUser,
		role.Corporate:        role.PriceFieldCorporate,
		role.HoReCa:           role.PriceFieldHoReCa,
		role.Supplier:         role.PriceFieldWholesale,
		role.SupplierMerchant: role.PriceFieldWholesale,
		role.StorageClient:    role.PriceFieldCorporate,
		role.Unknown:          role.PriceFieldEndUser,
	}
	for r, want := range cases {
		assert.Equal(t, want, r.PriceField(), "rol %s", r)
	}
}

func TestRequirements_PorRol(t *testing.T) {
	assert.Equal(t, role.RequireCompanyName, role.Corporate.Requirements())
	assert.Equal(t, role.RequireBusinessType, role.HoReCa.Requirements())
	assert.Equal(t, role.RequireBusinessType, role.Supplier.Requirements())
	assert.Equal(t, role.RequireBusinessType, role.SupplierMerchant.Requirements())
	assert.Equal(t, role.RequireNone, role.Admin.Requirements())
	assert.Equal(t, role.RequireNone, role.B2CVisitor.Requirements())
	assert.Equal(t, role.RequireNone, role.StorageClient.Requirements())
}

func TestDefaultVerified_SoloAdmin(t *testing.T) {
	for _, r := range role.All() {
		if r == role.Admin {
			assert.True(t, r.DefaultVerified())
		} else {
			assert.False(t, r.DefaultVerified(), "rol %s", r)
		}
	}
}

// TestValidateFields_Corporate: company_name vacío es error, con valor es Ok.
func TestValidateFields_Corporate(t *testing.T) {
	err := role.ValidateFields(role.Corporate, "", "")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrValidation)

	assert.NoError(t, role.ValidateFields(role.Corporate, "Acme", ""))
}

func TestValidateFields_BusinessType(t *testing.T) {
	for _, r := range []role.Role{role.HoReCa, role.Supplier, role.SupplierMerchant} {
		err := role.ValidateFields(r, "", "  ")
		assert.ErrorIs(t, err, domain.ErrValidation, "rol %s sin business_type debe fallar", r)
		assert.NoError(t, role.ValidateFields(r, "", "restaurant"), "rol %s", r)
	}
}

func TestValidateFields_SinRequisitos(t *testing.T) {
	for _, r := range []role.Role{role.Admin, role.B2CVisitor, role.StorageClient, role.Unknown} {
		assert.NoError(t, role.ValidateFields(r, "", ""), "rol %s", r)
	}
}
