package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/TARUN062005/MERNNETFLIX/internal/domain/movie"
)

// MoviesRepo is a map-backed stand-in for the postgres repo, handy in tests
// and local spikes. Genre embedding is approximated: movies keep whatever
// Genre pointer they were stored with.
type MoviesRepo struct {
	mu    sync.RWMutex
	items map[string]movie.Movie
}

func NewMoviesRepo() *MoviesRepo {
	return &MoviesRepo{
		items: make(map[string]movie.Movie),
	}
}

func (r *MoviesRepo) Create(ctx context.Context, req movie.CreateMovieRequest) (movie.Movie, error) {
	m := movie.NewFromCreateRequest(req)

	r.mu.Lock()
	r.items[m.ID] = m
	r.mu.Unlock()

	return m, nil
}

func (r *MoviesRepo) List(ctx context.Context) ([]movie.Movie, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	output := make([]movie.Movie, 0, len(r.items))

	for _, m := range r.items {
		output = append(output, m)
	}

	return output, nil
}

func (r *MoviesRepo) GetByTitle(ctx context.Context, title string) (movie.Movie, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, m := range r.items {
		if m.Title == title {
			return m, nil
		}
	}

	return movie.Movie{}, movie.ErrNotFound
}

func (r *MoviesRepo) UpdateByTitle(ctx context.Context, title string, req movie.UpdateMovieRequest) (movie.Movie, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, m := range r.items {
		if m.Title != title {
			continue
		}

		m.Title = req.Title
		m.Description = req.Description
		m.Year = req.Year
		m.URL = req.URL
		m.BannerURL = req.BannerURL
		m.GenreID = req.GenreID

		if req.Rating != nil {
			m.Rating = *req.Rating
		}

		m.UpdatedAt = time.Now().UTC()
		r.items[id] = m

		return m, nil
	}

	return movie.Movie{}, movie.ErrNotFound
}

func (r *MoviesRepo) DeleteByTitle(ctx context.Context, title string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, m := range r.items {
		if m.Title == title {
			delete(r.items, id)
			return nil
		}
	}

	return movie.ErrNotFound
}

func (r *MoviesRepo) UpdateRating(ctx context.Context, title string, rating int) (movie.Movie, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, m := range r.items {
		if m.Title == title {
			m.Rating = rating
			m.UpdatedAt = time.Now().UTC()
			r.items[id] = m

			return m, nil
		}
	}

	return movie.Movie{}, movie.ErrNotFound
}

func (r *MoviesRepo) Search(ctx context.Context, query string) ([]movie.Movie, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	q := strings.ToLower(query)
	output := make([]movie.Movie, 0)

	for _, m := range r.items {
		if strings.Contains(strings.ToLower(m.Title), q) {
			output = append(output, m)
		}
	}

	return output, nil
}

func (r *MoviesRepo) ListByGenreName(ctx context.Context, genreName string) ([]movie.Movie, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	output := make([]movie.Movie, 0)

	for _, m := range r.items {
		if m.Genre != nil && m.Genre.Name == genreName {
			output = append(output, m)
		}
	}

	return output, nil
}
