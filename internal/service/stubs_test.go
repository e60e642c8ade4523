package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/user/moovie-semantic/internal/model"
	"github.com/user/moovie-semantic/internal/repository"
)

// memStore 内存版 MovieStore
type memStore struct {
	mu        sync.Mutex
	movies    []model.Movie
	nextID    int
	creates   int
	createErr error
	findErr   error
}

func (s *memStore) Create(_ context.Context, m *model.Movie) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creates++
	if s.createErr != nil {
		return s.createErr
	}
	if m.TMDBID != 0 {
		for _, existing := range s.movies {
			if existing.TMDBID == m.TMDBID {
				return fmt.Errorf("tmdb_id %d: %w", m.TMDBID, repository.ErrDuplicateTMDBID)
			}
		}
	}
	s.nextID++
	m.ID = s.nextID
	s.movies = append(s.movies, *m)
	return nil
}

func (s *memStore) FindByTMDBID(_ context.Context, tmdbID int64) (*model.Movie, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.findErr != nil {
		return nil, s.findErr
	}
	for _, m := range s.movies {
		if m.TMDBID == tmdbID {
			found := m
			return &found, nil
		}
	}
	return nil, nil
}

func (s *memStore) ListAll(_ context.Context) ([]model.Movie, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Movie, len(s.movies))
	copy(out, s.movies)
	return out, nil
}

func (s *memStore) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.movies)
}

// vocab 固定词表，fakeEmbedder 按词频生成向量
var vocab = []string{"desert", "spice", "war", "bank", "heist", "police", "space", "love"}

// fakeEmbedder 确定性的词袋向量
type fakeEmbedder struct {
	mu     sync.Mutex
	calls  []string
	failOn string
}

var errFakeProvider = fmt.Errorf("fake provider down: %w", ErrEmbeddingProvider)

func (e *fakeEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	e.mu.Lock()
	e.calls = append(e.calls, text)
	e.mu.Unlock()

	if e.failOn != "" && strings.Contains(text, e.failOn) {
		return nil, errFakeProvider
	}
	vec := make([]float32, len(vocab))
	for _, word := range strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return r < 'a' || r > 'z'
	}) {
		for i, v := range vocab {
			if word == v {
				vec[i]++
			}
		}
	}
	return vec, nil
}

func (e *fakeEmbedder) callCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.calls)
}

// fakeCatalog 固定返回的候选电影
type fakeCatalog struct {
	mu           sync.Mutex
	poster       *string
	backdrop     *string
	candidates   []model.Candidate
	lookups      int
	popularCalls int
}

func (c *fakeCatalog) LookupImages(_ context.Context, title string) (*string, *string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lookups++
	return c.poster, c.backdrop
}

func (c *fakeCatalog) FetchPopular(_ context.Context, count int) []model.Candidate {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.popularCalls++
	if count < len(c.candidates) {
		return c.candidates[:count]
	}
	return c.candidates
}

func strPtr(s string) *string { return &s }

func floatPtr(f float64) *float64 { return &f }

var errStoreDown = errors.New("connection refused")
