package domain

import (
	"strings"
)

// Role is the session role that decides which dashboard a visitor may open.
type Role int

// Role constants. RoleNone is the zero value and means no role is stored.
const (
	RoleNone Role = iota
	RoleAdmin
	RoleVendor
	RoleCustomer
)

const (
	labelAdmin    = "Admin"
	labelVendor   = "Vendor"
	labelCustomer = "Customer"
)

// DefaultLoginRole is preselected on the login form.
const DefaultLoginRole = RoleCustomer

// ValidRoles returns the selectable roles in display order.
func ValidRoles() []Role {
	return []Role{RoleAdmin, RoleVendor, RoleCustomer}
}

// String returns the role label ("Admin", "Vendor", "Customer") or "" for RoleNone.
func (r Role) String() string {
	switch r {
	case RoleAdmin:
		return labelAdmin
	case RoleVendor:
		return labelVendor
	case RoleCustomer:
		return labelCustomer
	case RoleNone:
		return ""
	}
	return ""
}

// IsSet reports whether r is one of the three real roles.
func (r Role) IsSet() bool {
	switch r {
	case RoleAdmin, RoleVendor, RoleCustomer:
		return true
	case RoleNone:
		return false
	}
	return false
}

// ParseRole maps a label to a Role. Matching is exact; anything else yields RoleNone, false.
func ParseRole(s string) (Role, bool) {
	switch s {
	case labelAdmin:
		return RoleAdmin, true
	case labelVendor:
		return RoleVendor, true
	case labelCustomer:
		return RoleCustomer, true
	}
	return RoleNone, false
}

// DashboardPath is the lower-cased label followed by "Dashboard", e.g. "/vendorDashboard".
// RoleNone maps to the login page.
func (r Role) DashboardPath() string {
	if !r.IsSet() {
		return PathLogin
	}
	return "/" + strings.ToLower(r.String()) + "Dashboard"
}

// MarshalText encodes the role as its label.
func (r Role) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText decodes a label. Unknown labels decode to RoleNone instead of failing,
// so a malformed stored value reads as "no role".
func (r *Role) UnmarshalText(text []byte) error {
	role, _ := ParseRole(string(text))
	*r = role
	return nil
}

// RoleSet is an immutable set of roles. RoleNone is never a member.
type RoleSet struct {
	bits uint8
}

// NewRoleSet builds a set from the given roles, ignoring RoleNone and unknown values.
func NewRoleSet(roles ...Role) RoleSet {
	var s RoleSet
	for _, r := range roles {
		if r.IsSet() {
			s.bits |= 1 << uint(r)
		}
	}
	return s
}

// Contains reports whether r is a member of the set.
func (s RoleSet) Contains(r Role) bool {
	if !r.IsSet() {
		return false
	}
	return s.bits&(1<<uint(r)) != 0
}

// Empty reports whether the set has no members.
func (s RoleSet) Empty() bool {
	return s.bits == 0
}

// Roles returns the members in display order.
func (s RoleSet) Roles() []Role {
	var out []Role
	for _, r := range ValidRoles() {
		if s.Contains(r) {
			out = append(out, r)
		}
	}
	return out
}

// Labels returns the member labels in display order.
func (s RoleSet) Labels() []string {
	roles := s.Roles()
	labels := make([]string, len(roles))
	for i, r := range roles {
		labels[i] = r.String()
	}
	return labels
}

// String joins the member labels with commas.
func (s RoleSet) String() string {
	return strings.Join(s.Labels(), ",")
}
