package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/utafrali/storefront/internal/domain"
	"github.com/utafrali/storefront/internal/guard"
)

func newCheckAccessCmd() *cobra.Command {
	var (
		path string
		role string
	)

	cmd := &cobra.Command{
		Use:   "check-access",
		Short: "Evaluate the route guard for a path and role",
		Long: `Evaluate the route guard offline and print the decision.

Examples:
  storefront check-access --path /adminDashboard --role Admin
  storefront check-access --path /vendorDashboard`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return checkAccess(cmd.OutOrStdout(), path, role)
		},
	}

	cmd.Flags().StringVar(&path, "path", "", "route path, e.g. /adminDashboard")
	cmd.Flags().StringVar(&role, "role", "", "session role label (Admin, Vendor, Customer); empty means no role")
	_ = cmd.MarkFlagRequired("path")
	return cmd
}

// checkAccess prints the guard decision for path under role. Unknown role
// labels evaluate as no role, the same way a malformed stored role does.
func checkAccess(w io.Writer, path, role string) error {
	current, ok := domain.ParseRole(role)
	if role != "" && !ok {
		fmt.Fprintf(w, "warning: unknown role %q, evaluating as no role\n", role)
	}

	route, known := domain.LookupRoute(path)
	decision := guard.Evaluate(route.Allowed, current)

	fmt.Fprintf(w, "path:     %s\n", path)
	fmt.Fprintf(w, "view:     %s\n", route.View)
	if !known {
		fmt.Fprintln(w, "note:     not in the route table, served by the static fallback")
	}
	fmt.Fprintf(w, "role:     %s\n", labelOrNone(current))
	fmt.Fprintf(w, "decision: %s\n", decision)
	if target := decision.Redirect(); target != "" {
		fmt.Fprintf(w, "redirect: %s\n", target)
	}
	return nil
}

func labelOrNone(r domain.Role) string {
	if !r.IsSet() {
		return "(none)"
	}
	return r.String()
}
