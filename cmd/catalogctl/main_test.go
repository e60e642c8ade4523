package main

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/user/moovie-semantic/internal/model"
)

type fakeCatalog struct {
	movies    []model.Movie
	seedCount int
	titles    []string
	prompt    string
	deleted   bool
	closed    bool
	searchErr error
}

func (f *fakeCatalog) SeedByTitles(_ context.Context, titles []string) ([]model.Movie, error) {
	f.titles = titles
	out := make([]model.Movie, 0, len(titles))
	for i, t := range titles {
		out = append(out, model.Movie{ID: i + 1, Title: t})
	}
	return out, nil
}

func (f *fakeCatalog) SeedPopular(_ context.Context, count int) []model.SeedResult {
	f.seedCount = count
	id := 9
	msg := "Skipped: movie with same external id already exists."
	return []model.SeedResult{
		{TMDBID: 1, Title: "Duna", Success: true},
		{TMDBID: 2, Title: "Heat", MovieID: &id, Message: &msg},
	}
}

func (f *fakeCatalog) Search(_ context.Context, prompt string) ([]model.ScoredMovie, error) {
	f.prompt = prompt
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	return []model.ScoredMovie{{Movie: model.Movie{ID: 1, Title: "Duna", ReleaseYear: 2021}, Similarity: 0.87654}}, nil
}

func (f *fakeCatalog) ListAll(context.Context) ([]model.Movie, error) { return f.movies, nil }

func (f *fakeCatalog) DeleteAll(context.Context) (int64, error) {
	f.deleted = true
	return int64(len(f.movies)), nil
}

func run(t *testing.T, f *fakeCatalog, args ...string) (string, error) {
	t.Helper()
	open := func() (catalog, func(), error) {
		return f, func() { f.closed = true }, nil
	}
	cmd := newRootCommand(open)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestSeedPopularCommand(t *testing.T) {
	f := &fakeCatalog{}
	out, err := run(t, f, "seed", "popular", "--count", "5000")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if f.seedCount != maxSeedCount {
		t.Errorf("expected count capped at %d, got %d", maxSeedCount, f.seedCount)
	}
	if !strings.Contains(out, "skipped") || !strings.Contains(out, "Seeded 1 of 1000 requested") {
		t.Errorf("unexpected output:\n%s", out)
	}
	if !f.closed {
		t.Error("catalog must be closed after the command")
	}
}

func TestSeedPopularRejectsZero(t *testing.T) {
	f := &fakeCatalog{}
	if _, err := run(t, f, "seed", "popular", "-n", "0"); err == nil {
		t.Fatal("expected error for zero count")
	}
	if f.seedCount != 0 {
		t.Error("seeder must not run")
	}
}

func TestSeedTitlesCommand(t *testing.T) {
	f := &fakeCatalog{}
	out, err := run(t, f, "seed", "titles", "Duna", "Heat")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if len(f.titles) != 2 || !strings.Contains(out, "Heat") {
		t.Errorf("unexpected titles %v output:\n%s", f.titles, out)
	}
}

func TestSearchCommand(t *testing.T) {
	f := &fakeCatalog{}
	out, err := run(t, f, "search", "spice", "in", "the", "desert")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if f.prompt != "spice in the desert" {
		t.Errorf("unexpected prompt %q", f.prompt)
	}
	if !strings.Contains(out, "0.8765") || !strings.Contains(out, "2021") {
		t.Errorf("unexpected output:\n%s", out)
	}

	f.searchErr = errors.New("provider down")
	if _, err := run(t, f, "search", "x"); err == nil {
		t.Error("expected search error to propagate")
	}
}

func TestListAndClearCommands(t *testing.T) {
	f := &fakeCatalog{movies: []model.Movie{{ID: 1, Title: "Duna"}}}
	out, err := run(t, f, "list")
	if err != nil || !strings.Contains(out, "Duna") {
		t.Fatalf("list: %v\n%s", err, out)
	}

	if _, err := run(t, f, "clear"); err == nil || f.deleted {
		t.Fatal("clear without --yes must be refused")
	}
	out, err = run(t, f, "clear", "--yes")
	if err != nil || !f.deleted || !strings.Contains(out, "Deleted 1 movies") {
		t.Fatalf("clear: %v\n%s", err, out)
	}
}

func TestRenderEmpty(t *testing.T) {
	if renderMovies(nil) != "Catalog is empty" {
		t.Error("unexpected empty catalog rendering")
	}
	if renderScored(nil) != "No matches" {
		t.Error("unexpected empty search rendering")
	}
}
