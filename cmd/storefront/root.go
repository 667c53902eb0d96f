package main

import (
	"github.com/spf13/cobra"
)

// newRootCmd builds the storefront command tree. Running the root without a
// subcommand starts the server.
func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "storefront",
		Short: "Role-gated storefront shell",
		Long: `storefront serves the e-commerce portal shell: the home and login pages,
one dashboard per role, the session API and the static asset fallback.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runServe,
	}

	root.AddCommand(newServeCmd())
	root.AddCommand(newRoutesCmd())
	root.AddCommand(newCheckAccessCmd())
	return root
}
