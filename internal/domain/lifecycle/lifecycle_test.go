package lifecycle_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/mercado-b2b/internal/domain"
	"github.com/tu-usuario/mercado-b2b/internal/domain/entity"
	"github.com/tu-usuario/mercado-b2b/internal/domain/lifecycle"
)

// Los tests usan entity.User y entity.Product reales: ambos implementan
// lifecycle.Record y así se verifica el acople flag de usabilidad <-> estado.

func activeUser() *entity.User {
	return &entity.User{Username: "proveedor1", IsActive: true}
}

func TestSoftDelete_TransicionCompleta(t *testing.T) {
	u := activeUser()
	now := time.Now()

	err := lifecycle.SoftDelete(u, now)
	require.NoError(t, err)

	// Los tres campos mutan como grupo: timestamp presente, borrado derivado,
	// flag de usabilidad apagado.
	require.NotNil(t, u.DeletedAt)
	assert.True(t, u.DeletedAt.Equal(now))
	assert.True(t, u.IsDeleted())
	assert.False(t, u.IsActive)
}

func TestSoftDelete_YaBorrado(t *testing.T) {
	u := activeUser()
	require.NoError(t, lifecycle.SoftDelete(u, time.Now()))

	err := lifecycle.SoftDelete(u, time.Now())
	assert.ErrorIs(t, err, domain.ErrAlreadyDeleted)
}

func TestRestore_RoundTrip(t *testing.T) {
	u := activeUser()
	require.NoError(t, lifecycle.SoftDelete(u, time.Now()))
	require.NoError(t, lifecycle.Restore(u))

	// restore(soft_delete(e)) devuelve los flags a su estado original.
	assert.Nil(t, u.DeletedAt)
	assert.False(t, u.IsDeleted())
	assert.True(t, u.IsActive)
}

func TestRestore_NoBorrado(t *testing.T) {
	err := lifecycle.Restore(activeUser())
	assert.ErrorIs(t, err, domain.ErrNotDeleted)
}

func TestTransition_HardDeleteDesdeCualquierEstado(t *testing.T) {
	// Desde Active
	u := activeUser()
	removed, err := lifecycle.Transition(u, lifecycle.ActionHardDelete, time.Now())
	require.NoError(t, err)
	assert.True(t, removed)

	// Desde Deleted
	u2 := activeUser()
	require.NoError(t, lifecycle.SoftDelete(u2, time.Now()))
	removed, err = lifecycle.Transition(u2, lifecycle.ActionHardDelete, time.Now())
	require.NoError(t, err)
	assert.True(t, removed)
}

func TestTransition_AccionDesconocida(t *testing.T) {
	_, err := lifecycle.Transition(activeUser(), lifecycle.Action("purge"), time.Now())
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// El mismo ciclo aplica a Product, con is_available como flag de usabilidad.
func TestSoftDelete_ProductoApagaDisponibilidad(t *testing.T) {
	p := &entity.Product{NameEN: "Rice 20KG", IsAvailable: true}

	require.NoError(t, lifecycle.SoftDelete(p, time.Now()))
	assert.True(t, p.IsDeleted())
	assert.False(t, p.IsAvailable)

	require.NoError(t, lifecycle.Restore(p))
	assert.False(t, p.IsDeleted())
	assert.True(t, p.IsAvailable)
}
