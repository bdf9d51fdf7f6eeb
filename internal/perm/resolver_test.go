package perm_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hamagold/nti-admin/internal/perm"
	"github.com/hamagold/nti-admin/internal/store/inmem"
)

func TestResolveDefaults(t *testing.T) {
	ctx := context.Background()
	r := perm.NewResolver(inmem.New(), nil)

	// Roles with no stored override fall back to the built-in sets.
	assert.True(t, r.Has(ctx, perm.RoleStaff, perm.PermAddStudent))
	assert.True(t, r.Has(ctx, perm.RoleStaff, perm.PermAddPayment))
	assert.False(t, r.Has(ctx, perm.RoleStaff, perm.PermManageAdmins))
	assert.False(t, r.Has(ctx, perm.RoleStaff, perm.PermClearLogs))

	assert.True(t, r.Has(ctx, perm.RoleLocalStaff, perm.PermViewStudents))
	assert.False(t, r.Has(ctx, perm.RoleLocalStaff, perm.PermAddStudent))

	assert.True(t, r.Has(ctx, perm.RoleAdmin, perm.PermDeleteStudent))
	assert.False(t, r.Has(ctx, perm.RoleAdmin, perm.PermManageAdmins))
	assert.False(t, r.Has(ctx, perm.RoleAdmin, perm.PermManagePermissions))
}

func TestSuperadminHasEverything(t *testing.T) {
	ctx := context.Background()
	r := perm.NewResolver(inmem.New(), nil)

	for _, name := range perm.AllNames() {
		assert.True(t, r.Has(ctx, perm.RoleSuperadmin, name), name)
	}
	assert.Len(t, r.Resolve(ctx, perm.RoleSuperadmin), len(perm.AllNames()))
}

func TestHasFailsClosed(t *testing.T) {
	ctx := context.Background()
	r := perm.NewResolver(inmem.New(), nil)

	assert.False(t, r.Has(ctx, "", perm.PermViewStudents))
	assert.False(t, r.Has(ctx, perm.RoleAdmin, ""))
	assert.False(t, r.Has(ctx, "ghost_role", perm.PermViewStudents))
	assert.False(t, r.Has(ctx, perm.RoleAdmin, "launch_missiles"))
}

func TestUpdateRolePermissions(t *testing.T) {
	ctx := context.Background()
	st := inmem.New()
	r := perm.NewResolver(st, nil)

	err := r.Update(ctx, perm.RoleStaff, []string{perm.PermViewStudents, perm.PermViewPayments})
	require.NoError(t, err)

	assert.True(t, r.Has(ctx, perm.RoleStaff, perm.PermViewStudents))
	// Everything outside the new set is revoked, defaults no longer apply.
	assert.False(t, r.Has(ctx, perm.RoleStaff, perm.PermAddStudent))

	// Unknown names are dropped rather than stored.
	err = r.Update(ctx, perm.RoleLocalStaff, []string{perm.PermViewStudents, "no_such_permission"})
	require.NoError(t, err)
	stored, found, err := st.RolePermissions(ctx, perm.RoleLocalStaff)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, []string{perm.PermViewStudents}, stored)
}

func TestUpdateRejectsSuperadminAndUnknownRoles(t *testing.T) {
	ctx := context.Background()
	r := perm.NewResolver(inmem.New(), nil)

	err := r.Update(ctx, perm.RoleSuperadmin, []string{perm.PermViewStudents})
	assert.ErrorIs(t, err, perm.ErrSuperadminLocked)

	err = r.Update(ctx, "ghost_role", []string{perm.PermViewStudents})
	assert.ErrorIs(t, err, perm.ErrUnknownRole)
}

func TestCatalogNamesAreUnique(t *testing.T) {
	seen := make(map[string]bool)
	for _, p := range perm.Catalog() {
		assert.False(t, seen[p.Name], "duplicate permission %s", p.Name)
		assert.NotEmpty(t, p.Category)
		seen[p.Name] = true
	}
}
