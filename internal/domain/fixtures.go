package domain

import "fmt"

// User is a display row on the admin dashboard.
type User struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Role Role   `json:"role"`
}

// VendorProduct is a product card on the vendor dashboard. Price is in cents.
type VendorProduct struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Price int64  `json:"price"`
	Stock int    `json:"stock"`
}

// DisplayPrice formats the price for the dashboard.
func (p VendorProduct) DisplayPrice() string {
	return FormatPrice(p.Price)
}

// CatalogProduct is a product card on the customer dashboard. Price is in cents.
type CatalogProduct struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	ImageURL string `json:"image_url"`
}

// DisplayPrice formats the price for the dashboard.
func (p CatalogProduct) DisplayPrice() string {
	return FormatPrice(p.Price)
}

// FormatPrice renders an amount in cents as dollars, e.g. 1999 -> "$19.99".
func FormatPrice(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s$%d.%02d", sign, cents/100, cents%100)
}

// The fixtures below are display data only and are never mutated.

// Users returns the admin dashboard rows.
func Users() []User {
	return []User{
		{ID: 1, Name: "Admin User", Role: RoleAdmin},
		{ID: 2, Name: "Vendor 1", Role: RoleVendor},
		{ID: 3, Name: "Customer 1", Role: RoleCustomer},
	}
}

// VendorProducts returns the vendor dashboard cards.
func VendorProducts() []VendorProduct {
	return []VendorProduct{
		{ID: 1, Name: "Product 1", Price: 1999, Stock: 10},
		{ID: 2, Name: "Product 2", Price: 2999, Stock: 5},
	}
}

// CatalogProducts returns the customer dashboard cards.
func CatalogProducts() []CatalogProduct {
	return []CatalogProduct{
		{ID: 1, Name: "Product A", Price: 999, ImageURL: "https://images.pexels.com/photos/90946/pexels-photo-90946.jpeg"},
		{ID: 2, Name: "Product B", Price: 1499, ImageURL: "https://images.pexels.com/photos/2536965/pexels-photo-2536965.jpeg"},
	}
}
