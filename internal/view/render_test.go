package view

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utafrali/storefront/internal/domain"
)

const footerText = "© 2024 E-Commerce Portal. All rights reserved."

func render(t *testing.T, id domain.ViewID, page Page) string {
	t.Helper()
	r, err := NewRenderer()
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	require.NoError(t, r.Render(rec, http.StatusOK, id, page))
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	return rec.Body.String()
}

// ============================================================================
// Header Tests
// ============================================================================

func TestNavLinks(t *testing.T) {
	tests := []struct {
		role domain.Role
		want []NavLink
	}{
		{domain.RoleNone, []NavLink{}},
		{domain.RoleAdmin, []NavLink{{Label: "Admin Panel", Path: "/adminDashboard"}}},
		{domain.RoleVendor, []NavLink{{Label: "Vendor Panel", Path: "/vendorDashboard"}}},
		{domain.RoleCustomer, []NavLink{{Label: "Shop", Path: "/customerDashboard"}}},
	}
	for _, tt := range tests {
		t.Run(tt.role.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, NavLinks(tt.role))
		})
	}
}

func TestNewHeader_LogoutOnlyWithRole(t *testing.T) {
	assert.False(t, NewHeader(domain.RoleNone).ShowLogout)
	for _, r := range domain.ValidRoles() {
		h := NewHeader(r)
		assert.True(t, h.ShowLogout)
		assert.Len(t, h.Links, 1)
		assert.Equal(t, r.DashboardPath(), h.Links[0].Path)
	}
}

func TestHeader_RecomputedAfterRoleChange(t *testing.T) {
	before := render(t, domain.ViewHome, NewPage(domain.ViewHome, domain.RoleCustomer))
	assert.Contains(t, before, `href="/customerDashboard"`)
	assert.NotContains(t, before, "Admin Panel")

	after := render(t, domain.ViewHome, NewPage(domain.ViewHome, domain.RoleAdmin))
	assert.Contains(t, after, "Admin Panel")
	assert.NotContains(t, after, ">Shop<")

	anonymous := render(t, domain.ViewHome, NewPage(domain.ViewHome, domain.RoleNone))
	assert.NotContains(t, anonymous, "Logout")
	assert.NotContains(t, anonymous, "Panel")
}

// ============================================================================
// Page Tests
// ============================================================================

func TestRender_Home(t *testing.T) {
	body := render(t, domain.ViewHome, NewPage(domain.ViewHome, domain.RoleNone))
	assert.Contains(t, body, "Welcome to E-Commerce Portal")
	assert.Contains(t, body, "Choose Your Role to Get Started")
	assert.Contains(t, body, `href="/login"`)
	assert.Contains(t, body, footerText)
	assert.Contains(t, body, "<title>Home | E-Commerce Portal</title>")
}

func TestRender_LoginDefaultsToCustomer(t *testing.T) {
	body := render(t, domain.ViewLogin, NewPage(domain.ViewLogin, domain.RoleNone))
	assert.Contains(t, body, `action="/login"`)
	assert.Contains(t, body, `name="username"`)
	assert.Contains(t, body, `name="password"`)
	assert.Contains(t, body, `<option value="Customer" selected>`)
	assert.Contains(t, body, `<option value="Admin">`)
	assert.Contains(t, body, `<option value="Vendor">`)
	assert.Equal(t, 2, strings.Count(body, " required>"))
}

func TestRender_LoginKeepsInputAndErrors(t *testing.T) {
	page := NewPage(domain.ViewLogin, domain.RoleNone)
	page.Form = LoginForm{
		Username: "<jane>",
		Role:     domain.RoleVendor,
		Errors:   map[string]string{"role": "must be one of: Admin Vendor Customer"},
	}

	body := render(t, domain.ViewLogin, page)
	assert.Contains(t, body, `value="&lt;jane&gt;"`)
	assert.Contains(t, body, `<option value="Vendor" selected>`)
	assert.Contains(t, body, "must be one of: Admin Vendor Customer")
}

func TestRender_AdminDashboard(t *testing.T) {
	body := render(t, domain.ViewAdminDashboard, NewPage(domain.ViewAdminDashboard, domain.RoleAdmin))
	assert.Contains(t, body, "Admin Dashboard")
	assert.Contains(t, body, "User Management")
	for _, u := range domain.Users() {
		assert.Contains(t, body, u.Name)
	}
}

func TestRender_VendorDashboard(t *testing.T) {
	body := render(t, domain.ViewVendorDashboard, NewPage(domain.ViewVendorDashboard, domain.RoleVendor))
	assert.Contains(t, body, "Product Management")
	assert.Contains(t, body, "$19.99")
	assert.Contains(t, body, "Stock: 5")
}

func TestRender_CustomerDashboard(t *testing.T) {
	body := render(t, domain.ViewCustomerDashboard, NewPage(domain.ViewCustomerDashboard, domain.RoleCustomer))
	assert.Contains(t, body, "Customer Dashboard")
	assert.Contains(t, body, "$14.99")
	assert.Contains(t, body, "Add to Cart")
	assert.Contains(t, body, "pexels-photo-90946.jpeg")
}

func TestRender_StatusCode(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	require.NoError(t, r.Render(rec, http.StatusBadRequest, domain.ViewLogin, NewPage(domain.ViewLogin, domain.RoleNone)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRender_UnknownView(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	err = r.Render(rec, http.StatusOK, domain.ViewEntryDocument, Page{})
	require.Error(t, err)
	assert.Equal(t, 0, rec.Body.Len())
}
