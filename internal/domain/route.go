package domain

// Paths served by the application shell.
const (
	PathHome              = "/"
	PathLogin             = "/login"
	PathLogout            = "/logout"
	PathAdminDashboard    = "/adminDashboard"
	PathVendorDashboard   = "/vendorDashboard"
	PathCustomerDashboard = "/customerDashboard"
)

// ViewID identifies a page of the application shell.
type ViewID string

// View identifiers.
const (
	ViewHome              ViewID = "home"
	ViewLogin             ViewID = "login"
	ViewAdminDashboard    ViewID = "admin_dashboard"
	ViewVendorDashboard   ViewID = "vendor_dashboard"
	ViewCustomerDashboard ViewID = "customer_dashboard"
	ViewEntryDocument     ViewID = "entry_document"
)

// Route maps a URL path to a view and, for protected views, the roles allowed to see it.
type Route struct {
	Path    string
	View    ViewID
	Allowed RoleSet
}

// Protected reports whether the route is gated by a role set.
func (r Route) Protected() bool {
	return !r.Allowed.Empty()
}

var routes = []Route{
	{Path: PathHome, View: ViewHome},
	{Path: PathLogin, View: ViewLogin},
	{Path: PathAdminDashboard, View: ViewAdminDashboard, Allowed: NewRoleSet(RoleAdmin)},
	{Path: PathVendorDashboard, View: ViewVendorDashboard, Allowed: NewRoleSet(RoleVendor)},
	{Path: PathCustomerDashboard, View: ViewCustomerDashboard, Allowed: NewRoleSet(RoleCustomer)},
}

// Routes returns a copy of the static route table.
func Routes() []Route {
	out := make([]Route, len(routes))
	copy(out, routes)
	return out
}

// LookupRoute resolves an exact path. Unknown paths resolve to the entry document route.
func LookupRoute(path string) (Route, bool) {
	for _, r := range routes {
		if r.Path == path {
			return r, true
		}
	}
	return Route{Path: path, View: ViewEntryDocument}, false
}

// MustRoute returns the route for path and panics if the path is not in the table.
// It is meant for wiring code that refers to the constants above.
func MustRoute(path string) Route {
	r, ok := LookupRoute(path)
	if !ok {
		panic("domain: unknown route " + path)
	}
	return r
}
