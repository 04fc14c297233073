package handlers_test

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/TARUN062005/MERNNETFLIX/internal/domain/genre"
	"github.com/TARUN062005/MERNNETFLIX/internal/domain/movie"
	"github.com/TARUN062005/MERNNETFLIX/internal/http/handlers"
	"github.com/TARUN062005/MERNNETFLIX/internal/repo/postgres"
	"github.com/gin-gonic/gin"
)

// Fake implementations of the handlers.GenresStore and
// handlers.GenreMovieLister interfaces.

type fakeGenresStore struct {
	createFn func(ctx context.Context, req genre.CreateGenreRequest) (genre.Genre, error)
	listFn   func(ctx context.Context) ([]genre.Genre, error)
	getFn    func(ctx context.Context, name string) (genre.Genre, error)
	updateFn func(ctx context.Context, name string, req genre.UpdateGenreRequest) (genre.Genre, error)
	deleteFn func(ctx context.Context, name string) error
}

func (f *fakeGenresStore) Create(ctx context.Context, req genre.CreateGenreRequest) (genre.Genre, error) {
	if f.createFn != nil {
		return f.createFn(ctx, req)
	}
	return genre.Genre{}, nil
}

func (f *fakeGenresStore) List(ctx context.Context) ([]genre.Genre, error) {
	if f.listFn != nil {
		return f.listFn(ctx)
	}
	return []genre.Genre{}, nil
}

func (f *fakeGenresStore) GetByName(ctx context.Context, name string) (genre.Genre, error) {
	if f.getFn != nil {
		return f.getFn(ctx, name)
	}
	return genre.Genre{}, genre.ErrNotFound
}

func (f *fakeGenresStore) UpdateByName(ctx context.Context, name string, req genre.UpdateGenreRequest) (genre.Genre, error) {
	if f.updateFn != nil {
		return f.updateFn(ctx, name, req)
	}
	return genre.Genre{}, genre.ErrNotFound
}

func (f *fakeGenresStore) DeleteByName(ctx context.Context, name string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, name)
	}
	return genre.ErrNotFound
}

type fakeGenreMovies struct {
	movies []movie.Movie
}

func (f *fakeGenreMovies) ListByGenreName(ctx context.Context, genreName string) ([]movie.Movie, error) {
	return f.movies, nil
}

func newGenresRouter(store *fakeGenresStore, movies *fakeGenreMovies) *gin.Engine {
	if movies == nil {
		movies = &fakeGenreMovies{movies: []movie.Movie{}}
	}

	h := handlers.NewGenresHandler(store, movies)

	r := gin.New()
	r.POST("/genre", h.CreateGenre)
	r.GET("/genreGet", h.ListGenres)
	r.GET("/genre/:name", h.GetGenreByName)
	r.PUT("/genreEdit/:name", h.UpdateGenre)
	r.DELETE("/genreDel/:name", h.DeleteGenre)

	return r
}

func TestCreateGenre(t *testing.T) {
	now := time.Now().UTC()

	tests := []struct {
		name           string
		body           string
		storeSetUp     func(*fakeGenresStore)
		wantStatusCode int
	}{
		{
			name: "success",
			body: `{"name": "Thriller"}`,
			storeSetUp: func(f *fakeGenresStore) {
				f.createFn = func(ctx context.Context, req genre.CreateGenreRequest) (genre.Genre, error) {
					return genre.Genre{ID: "g-1", Name: req.Name, CreatedAt: now, UpdatedAt: now}, nil
				}
			},
			wantStatusCode: http.StatusCreated,
		},
		{
			name:           "validation_error",
			body:           `{"name": ""}`,
			storeSetUp:     func(f *fakeGenresStore) {},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name: "duplicate_name",
			body: `{"name": "Thriller"}`,
			storeSetUp: func(f *fakeGenresStore) {
				f.createFn = func(ctx context.Context, req genre.CreateGenreRequest) (genre.Genre, error) {
					return genre.Genre{}, postgres.ErrGenreNameTaken
				}
			},
			wantStatusCode: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			store := &fakeGenresStore{}
			tt.storeSetUp(store)

			r := newGenresRouter(store, nil)

			w := doJSON(r, http.MethodPost, "/genre", tt.body)

			if w.Code != tt.wantStatusCode {
				t.Fatalf("got status %d, want %d, body=%s", w.Code, tt.wantStatusCode, w.Body.String())
			}
		})
	}
}

func TestGetGenreByName(t *testing.T) {
	store := &fakeGenresStore{
		getFn: func(ctx context.Context, name string) (genre.Genre, error) {
			if name != "Thriller" {
				return genre.Genre{}, genre.ErrNotFound
			}
			return genre.Genre{ID: "g-1", Name: name}, nil
		},
	}

	movies := &fakeGenreMovies{movies: []movie.Movie{{ID: "m-1", Title: "Inception"}}}

	r := newGenresRouter(store, movies)

	w := doJSON(r, http.MethodGet, "/genre/Thriller", "")

	if w.Code != http.StatusOK {
		t.Fatalf("got status %d, body=%s", w.Code, w.Body.String())
	}

	// reads embed the genre's movies
	body := w.Body.String()
	if !containsAll(body, `"name":"Thriller"`, `"movies":[`, `"Inception"`) {
		t.Fatalf("unexpected body: %s", body)
	}

	w = doJSON(r, http.MethodGet, "/genre/Unknown", "")

	if w.Code != http.StatusNotFound {
		t.Fatalf("got status %d for missing genre, want 404", w.Code)
	}
}

func TestDeleteGenre(t *testing.T) {
	tests := []struct {
		name           string
		storeSetUp     func(*fakeGenresStore)
		wantStatusCode int
	}{
		{
			name: "success",
			storeSetUp: func(f *fakeGenresStore) {
				f.deleteFn = func(ctx context.Context, name string) error { return nil }
			},
			wantStatusCode: http.StatusOK,
		},
		{
			name:           "missing",
			storeSetUp:     func(f *fakeGenresStore) {},
			wantStatusCode: http.StatusNotFound,
		},
		{
			name: "still_referenced",
			storeSetUp: func(f *fakeGenresStore) {
				f.deleteFn = func(ctx context.Context, name string) error { return postgres.ErrGenreInUse }
			},
			wantStatusCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			store := &fakeGenresStore{}
			tt.storeSetUp(store)

			r := newGenresRouter(store, nil)

			w := doJSON(r, http.MethodDelete, "/genreDel/Thriller", "")

			if w.Code != tt.wantStatusCode {
				t.Fatalf("got status %d, want %d, body=%s", w.Code, tt.wantStatusCode, w.Body.String())
			}
		})
	}
}

func containsAll(s string, subs ...string) bool {
	for _, sub := range subs {
		if !strings.Contains(s, sub) {
			return false
		}
	}
	return true
}
