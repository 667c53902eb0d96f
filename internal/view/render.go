// Package view renders the server-side application shell.
package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/utafrali/storefront/internal/domain"
)

//go:embed templates/*.html
var templateFS embed.FS

// HeroImage is the background of the home view.
const HeroImage = "https://images.pexels.com/photos/3761509/pexels-photo-3761509.jpeg"

var pageFiles = map[domain.ViewID]string{
	domain.ViewHome:              "templates/home.html",
	domain.ViewLogin:             "templates/login.html",
	domain.ViewAdminDashboard:    "templates/admin_dashboard.html",
	domain.ViewVendorDashboard:   "templates/vendor_dashboard.html",
	domain.ViewCustomerDashboard: "templates/customer_dashboard.html",
}

var pageTitles = map[domain.ViewID]string{
	domain.ViewHome:              "Home",
	domain.ViewLogin:             "Login",
	domain.ViewAdminDashboard:    "Admin Dashboard",
	domain.ViewVendorDashboard:   "Vendor Dashboard",
	domain.ViewCustomerDashboard: "Customer Dashboard",
}

// RoleOption is one entry of the login role selector.
type RoleOption struct {
	Value    string
	Selected bool
}

// LoginForm is the state of the login form.
type LoginForm struct {
	Username string
	Role     domain.Role
	Errors   map[string]string
}

// Options lists the selectable roles with the current choice marked. An unset
// role selects the default.
func (f LoginForm) Options() []RoleOption {
	selected := f.Role
	if !selected.IsSet() {
		selected = domain.DefaultLoginRole
	}
	roles := domain.ValidRoles()
	opts := make([]RoleOption, len(roles))
	for i, r := range roles {
		opts[i] = RoleOption{Value: r.String(), Selected: r == selected}
	}
	return opts
}

// Page is the data passed to every template.
type Page struct {
	Title           string
	Header          Header
	HeroImage       string
	Form            LoginForm
	Users           []domain.User
	VendorProducts  []domain.VendorProduct
	CatalogProducts []domain.CatalogProduct
}

// NewPage builds the page data for view as seen by role. Dashboard fixtures are
// attached only to their own view.
func NewPage(id domain.ViewID, role domain.Role) Page {
	p := Page{
		Title:  pageTitles[id],
		Header: NewHeader(role),
	}
	switch id {
	case domain.ViewHome:
		p.HeroImage = HeroImage
	case domain.ViewAdminDashboard:
		p.Users = domain.Users()
	case domain.ViewVendorDashboard:
		p.VendorProducts = domain.VendorProducts()
	case domain.ViewCustomerDashboard:
		p.CatalogProducts = domain.CatalogProducts()
	case domain.ViewLogin, domain.ViewEntryDocument:
	}
	return p
}

// Renderer executes the parsed view templates.
type Renderer struct {
	pages map[domain.ViewID]*template.Template
}

// NewRenderer parses every view template from the embedded filesystem.
func NewRenderer() (*Renderer, error) {
	r := &Renderer{pages: make(map[domain.ViewID]*template.Template, len(pageFiles))}
	for id, file := range pageFiles {
		tmpl, err := template.New(string(id)).ParseFS(templateFS, "templates/layout.html", file)
		if err != nil {
			return nil, fmt.Errorf("parse %s template: %w", id, err)
		}
		r.pages[id] = tmpl
	}
	return r, nil
}

// Render writes view id with the given status. The page is fully rendered
// before anything is written so a template failure still yields a clean 500.
func (r *Renderer) Render(w http.ResponseWriter, status int, id domain.ViewID, page Page) error {
	tmpl, ok := r.pages[id]
	if !ok {
		return fmt.Errorf("unknown view %q", id)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", page); err != nil {
		return fmt.Errorf("render %s: %w", id, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
	return nil
}
