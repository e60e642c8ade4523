package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/user/moovie-semantic/internal/app"
	"github.com/user/moovie-semantic/internal/model"
)

// catalog 命令行用到的目录操作
type catalog interface {
	SeedByTitles(ctx context.Context, titles []string) ([]model.Movie, error)
	SeedPopular(ctx context.Context, count int) []model.SeedResult
	Search(ctx context.Context, prompt string) ([]model.ScoredMovie, error)
	ListAll(ctx context.Context) ([]model.Movie, error)
	DeleteAll(ctx context.Context) (int64, error)
}

// opener 打开目录，返回的 close 用于释放资源
type opener func() (catalog, func(), error)

type appCatalog struct {
	app *app.App
}

func (a appCatalog) SeedByTitles(ctx context.Context, titles []string) ([]model.Movie, error) {
	return a.app.Seeder.SeedByTitles(ctx, titles)
}

func (a appCatalog) SeedPopular(ctx context.Context, count int) []model.SeedResult {
	return a.app.Seeder.SeedPopular(ctx, count)
}

func (a appCatalog) Search(ctx context.Context, prompt string) ([]model.ScoredMovie, error) {
	return a.app.Search.Search(ctx, prompt)
}

func (a appCatalog) ListAll(ctx context.Context) ([]model.Movie, error) {
	return a.app.Repos.Movie.ListAll(ctx)
}

func (a appCatalog) DeleteAll(ctx context.Context) (int64, error) {
	return a.app.Repos.Movie.DeleteAll(ctx)
}

func openApp() (catalog, func(), error) {
	a, err := app.New()
	if err != nil {
		return nil, nil, err
	}
	return appCatalog{app: a}, a.Close, nil
}

// withCatalog 打开目录执行 fn，结束后关闭
func withCatalog(open opener, fn func(c catalog) error) error {
	c, closeFn, err := open()
	if err != nil {
		return err
	}
	defer closeFn()
	return fn(c)
}

func newRootCommand(open opener) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "catalogctl",
		Short:         "Manage the movie catalog: seed from TMDB, search by prompt, list and clear",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.AddCommand(newSeedCommand(open))
	rootCmd.AddCommand(newSearchCommand(open))
	rootCmd.AddCommand(newListCommand(open))
	rootCmd.AddCommand(newClearCommand(open))

	return rootCmd
}
