package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoutes_Table(t *testing.T) {
	rs := Routes()
	require.Len(t, rs, 5)

	paths := make([]string, len(rs))
	for i, r := range rs {
		paths[i] = r.Path
	}
	assert.Equal(t, []string{"/", "/login", "/adminDashboard", "/vendorDashboard", "/customerDashboard"}, paths)
}

func TestRoutes_ReturnsCopy(t *testing.T) {
	rs := Routes()
	rs[0].Path = "/changed"
	assert.Equal(t, PathHome, Routes()[0].Path)
}

func TestLookupRoute_Protected(t *testing.T) {
	tests := []struct {
		path    string
		view    ViewID
		allowed Role
	}{
		{PathAdminDashboard, ViewAdminDashboard, RoleAdmin},
		{PathVendorDashboard, ViewVendorDashboard, RoleVendor},
		{PathCustomerDashboard, ViewCustomerDashboard, RoleCustomer},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			r, ok := LookupRoute(tt.path)
			require.True(t, ok)
			assert.Equal(t, tt.view, r.View)
			assert.True(t, r.Protected())
			assert.Equal(t, []Role{tt.allowed}, r.Allowed.Roles())
		})
	}
}

func TestLookupRoute_Public(t *testing.T) {
	for _, p := range []string{PathHome, PathLogin} {
		r, ok := LookupRoute(p)
		require.True(t, ok)
		assert.False(t, r.Protected())
	}
}

func TestLookupRoute_UnknownIsEntryDocument(t *testing.T) {
	r, ok := LookupRoute("/adminDashboard/users")
	assert.False(t, ok)
	assert.Equal(t, ViewEntryDocument, r.View)
	assert.False(t, r.Protected())
}

func TestMustRoute_PanicsOnUnknown(t *testing.T) {
	assert.Panics(t, func() { MustRoute("/nope") })
	assert.NotPanics(t, func() { MustRoute(PathLogin) })
}

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "$19.99", FormatPrice(1999))
	assert.Equal(t, "$9.99", FormatPrice(999))
	assert.Equal(t, "$0.05", FormatPrice(5))
	assert.Equal(t, "-$1.50", FormatPrice(-150))
}

func TestFixtures(t *testing.T) {
	users := Users()
	require.Len(t, users, 3)
	assert.Equal(t, RoleAdmin, users[0].Role)

	vp := VendorProducts()
	require.Len(t, vp, 2)
	assert.Equal(t, "$29.99", vp[1].DisplayPrice())

	cp := CatalogProducts()
	require.Len(t, cp, 2)
	assert.Equal(t, "$14.99", cp[1].DisplayPrice())
}
