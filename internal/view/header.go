package view

import "github.com/utafrali/storefront/internal/domain"

// Brand is the site name shown in the header and page titles.
const Brand = "E-Commerce Portal"

// NavLink is a single header navigation entry.
type NavLink struct {
	Label string `json:"label"`
	Path  string `json:"path"`
}

// Header is the navigation state computed from the current role. It is rebuilt
// on every render so links always follow the latest session.
type Header struct {
	Brand      string    `json:"brand"`
	Links      []NavLink `json:"links"`
	ShowLogout bool      `json:"show_logout"`
}

// NewHeader builds the header for role.
func NewHeader(role domain.Role) Header {
	return Header{
		Brand:      Brand,
		Links:      NavLinks(role),
		ShowLogout: role.IsSet(),
	}
}

// NavLinks returns the dashboard link for role. Visitors without a role get none.
func NavLinks(role domain.Role) []NavLink {
	switch role {
	case domain.RoleAdmin:
		return []NavLink{{Label: "Admin Panel", Path: domain.PathAdminDashboard}}
	case domain.RoleVendor:
		return []NavLink{{Label: "Vendor Panel", Path: domain.PathVendorDashboard}}
	case domain.RoleCustomer:
		return []NavLink{{Label: "Shop", Path: domain.PathCustomerDashboard}}
	case domain.RoleNone:
		return []NavLink{}
	}
	return []NavLink{}
}
