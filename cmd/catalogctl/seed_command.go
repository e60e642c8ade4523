package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/user/moovie-semantic/internal/model"
)

const maxSeedCount = 1000

func newSeedCommand(open opener) *cobra.Command {
	seedCmd := &cobra.Command{
		Use:   "seed",
		Short: "Add movies to the catalog",
	}

	seedCmd.AddCommand(newSeedTitlesCommand(open))
	seedCmd.AddCommand(newSeedPopularCommand(open))

	return seedCmd
}

func newSeedTitlesCommand(open opener) *cobra.Command {
	return &cobra.Command{
		Use:   "titles <title>...",
		Short: "Seed movies by title (images from TMDB, title-only embedding)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCatalog(open, func(c catalog) error {
				movies, err := c.SeedByTitles(cmd.Context(), args)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderMovies(movies))
				return nil
			})
		},
	}
}

func newSeedPopularCommand(open opener) *cobra.Command {
	var count int
	cmd := &cobra.Command{
		Use:   "popular",
		Short: "Seed popular TMDB movies that have a translation in the configured language",
		RunE: func(cmd *cobra.Command, args []string) error {
			if count <= 0 {
				return fmt.Errorf("--count must be greater than zero")
			}
			if count > maxSeedCount {
				count = maxSeedCount
			}
			return withCatalog(open, func(c catalog) error {
				results := c.SeedPopular(cmd.Context(), count)
				out := cmd.OutOrStdout()
				fmt.Fprintln(out, renderSeedResults(results))
				fmt.Fprintf(out, "Seeded %d of %d requested\n", model.CountSeeded(results), count)
				return nil
			})
		},
	}
	cmd.Flags().IntVarP(&count, "count", "n", 20, "Number of popular movies to seed (max 1000)")
	return cmd
}
