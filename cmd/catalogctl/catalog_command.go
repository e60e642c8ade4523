package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newSearchCommand(open opener) *cobra.Command {
	return &cobra.Command{
		Use:   "search <prompt>",
		Short: "Find the 5 movies closest to a free-text prompt",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prompt := strings.Join(args, " ")
			return withCatalog(open, func(c catalog) error {
				results, err := c.Search(cmd.Context(), prompt)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderScored(results))
				return nil
			})
		},
	}
}

func newListCommand(open opener) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every movie in the catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCatalog(open, func(c catalog) error {
				movies, err := c.ListAll(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderMovies(movies))
				return nil
			})
		},
	}
}

func newClearCommand(open opener) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every movie in the catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("refusing to clear the catalog without --yes")
			}
			return withCatalog(open, func(c catalog) error {
				n, err := c.DeleteAll(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d movies\n", n)
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "Confirm the bulk delete")
	return cmd
}
