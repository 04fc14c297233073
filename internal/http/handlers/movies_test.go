package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/TARUN062005/MERNNETFLIX/internal/http/handlers"
	"github.com/TARUN062005/MERNNETFLIX/internal/repo/memory"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func newMoviesRouter(repo *memory.MoviesRepo) *gin.Engine {
	h := handlers.NewMoviesHandler(repo, nil)

	r := gin.New()
	r.POST("/addMovie", h.CreateMovie)
	r.GET("/viewMovies", h.ListMovies)
	r.GET("/viewMovie/:title", h.GetMovieByTitle)
	r.PUT("/editMovie/:title", h.UpdateMovie)
	r.DELETE("/deleteMovie/:title", h.DeleteMovie)
	r.POST("/rateMovie/:title", h.RateMovie)
	r.POST("/searchMovie", h.SearchMovies)

	return r
}

func seedMovie(t *testing.T, r *gin.Engine, title string) {
	t.Helper()

	body := `{
		"title": "` + title + `",
		"desc": "seed",
		"year": 2020,
		"genreId": "` + uuid.NewString() + `"
	}`

	w := doJSON(r, http.MethodPost, "/addMovie", body)

	if w.Code != http.StatusCreated {
		t.Fatalf("seed failed: status %d, body=%s", w.Code, w.Body.String())
	}
}

func TestCreateMovie(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		wantStatusCode int
	}{
		{
			name: "success",
			body: `{
				"title": "Inception",
				"desc": "Dreams within dreams",
				"year": 2010,
				"url": "https://cdn.example.com/inception.mp4",
				"bannerUrl": "https://cdn.example.com/inception.jpg",
				"genreId": "` + uuid.NewString() + `",
				"rating": 9
			}`,
			wantStatusCode: http.StatusCreated,
		},
		{
			name:           "validation_error",
			body:           `{"title": ""}`,
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name: "bad_genre_id",
			body: `{"title": "X", "year": 2020, "genreId": "not-a-uuid"}`,

			wantStatusCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			r := newMoviesRouter(memory.NewMoviesRepo())

			w := doJSON(r, http.MethodPost, "/addMovie", tt.body)

			if w.Code != tt.wantStatusCode {
				t.Fatalf("got status %d, want %d, body=%s", w.Code, tt.wantStatusCode, w.Body.String())
			}
		})
	}
}

func TestGetMovieByTitle(t *testing.T) {
	r := newMoviesRouter(memory.NewMoviesRepo())
	seedMovie(t, r, "Inception")

	w := doJSON(r, http.MethodGet, "/viewMovie/Inception", "")

	if w.Code != http.StatusOK {
		t.Fatalf("got status %d, body=%s", w.Code, w.Body.String())
	}

	w = doJSON(r, http.MethodGet, "/viewMovie/Unknown", "")

	if w.Code != http.StatusNotFound {
		t.Fatalf("got status %d for missing movie, want 404", w.Code)
	}
}

func TestRateMovie(t *testing.T) {
	r := newMoviesRouter(memory.NewMoviesRepo())
	seedMovie(t, r, "Inception")

	w := doJSON(r, http.MethodPost, "/rateMovie/Inception", `{"rating": 7}`)

	if w.Code != http.StatusOK {
		t.Fatalf("got status %d, body=%s", w.Code, w.Body.String())
	}

	var resp struct {
		Data struct {
			Rating int `json:"rating"`
		} `json:"data"`
	}

	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad response json: %v", err)
	}

	if resp.Data.Rating != 7 {
		t.Fatalf("rating = %d, want 7", resp.Data.Rating)
	}

	w = doJSON(r, http.MethodPost, "/rateMovie/Unknown", `{"rating": 7}`)

	if w.Code != http.StatusNotFound {
		t.Fatalf("got status %d for missing movie, want 404", w.Code)
	}
}

func TestDeleteMovie(t *testing.T) {
	r := newMoviesRouter(memory.NewMoviesRepo())
	seedMovie(t, r, "Inception")

	w := doJSON(r, http.MethodDelete, "/deleteMovie/Inception", "")

	if w.Code != http.StatusOK {
		t.Fatalf("got status %d, body=%s", w.Code, w.Body.String())
	}

	w = doJSON(r, http.MethodGet, "/viewMovie/Inception", "")

	if w.Code != http.StatusNotFound {
		t.Fatalf("deleted movie still fetchable, status %d", w.Code)
	}

	w = doJSON(r, http.MethodDelete, "/deleteMovie/Inception", "")

	if w.Code != http.StatusNotFound {
		t.Fatalf("got status %d for double delete, want 404", w.Code)
	}
}

func TestSearchMovies(t *testing.T) {
	r := newMoviesRouter(memory.NewMoviesRepo())
	seedMovie(t, r, "Inception")
	seedMovie(t, r, "Interstellar")
	seedMovie(t, r, "Dunkirk")

	w := doJSON(r, http.MethodPost, "/searchMovie", `{"query": "in"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("got status %d, body=%s", w.Code, w.Body.String())
	}

	var resp struct {
		Data []struct {
			Title string `json:"title"`
		} `json:"data"`
	}

	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad response json: %v", err)
	}

	if len(resp.Data) != 2 {
		t.Fatalf("search matched %d movies, want 2 (body=%s)", len(resp.Data), w.Body.String())
	}
}

func TestListMoviesETagReplay(t *testing.T) {
	r := newMoviesRouter(memory.NewMoviesRepo())
	seedMovie(t, r, "Inception")

	w := doJSON(r, http.MethodGet, "/viewMovies", "")

	if w.Code != http.StatusOK {
		t.Fatalf("got status %d, body=%s", w.Code, w.Body.String())
	}

	etag := w.Header().Get("ETag")

	if etag == "" {
		t.Fatalf("expected ETag header on catalog list")
	}

	req := httptest.NewRequest(http.MethodGet, "/viewMovies", bytes.NewBufferString(""))
	req.Header.Set("If-None-Match", etag)

	replay := httptest.NewRecorder()
	r.ServeHTTP(replay, req)

	if replay.Code != http.StatusNotModified {
		t.Fatalf("got status %d on matching If-None-Match, want 304", replay.Code)
	}
}
