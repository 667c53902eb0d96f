package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/utafrali/storefront/internal/domain"
)

func newRoutesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "routes",
		Short: "Print the route table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return printRoutes(cmd.OutOrStdout(), domain.Routes())
		},
	}
}

func printRoutes(w io.Writer, routes []domain.Route) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "PATH\tVIEW\tALLOWED")
	for _, r := range routes {
		allowed := "-"
		if r.Protected() {
			allowed = r.Allowed.String()
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", r.Path, r.View, allowed)
	}
	return tw.Flush()
}
