package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/TARUN062005/MERNNETFLIX/internal/cache"
	"github.com/TARUN062005/MERNNETFLIX/internal/config"
	"github.com/TARUN062005/MERNNETFLIX/internal/domain/movie"
	"github.com/TARUN062005/MERNNETFLIX/internal/repo/postgres"
	"github.com/gin-gonic/gin"
)

type MoviesStore interface {
	Create(ctx context.Context, req movie.CreateMovieRequest) (movie.Movie, error)
	List(ctx context.Context) ([]movie.Movie, error)
	GetByTitle(ctx context.Context, title string) (movie.Movie, error)
	UpdateByTitle(ctx context.Context, title string, req movie.UpdateMovieRequest) (movie.Movie, error)
	DeleteByTitle(ctx context.Context, title string) error
	UpdateRating(ctx context.Context, title string, rating int) (movie.Movie, error)
	Search(ctx context.Context, query string) ([]movie.Movie, error)
	ListByGenreName(ctx context.Context, genreName string) ([]movie.Movie, error)
}

type MoviesHandler struct {
	repo    MoviesStore
	catalog *cache.Catalog // optional, nil disables caching
}

func NewMoviesHandler(repo MoviesStore, catalog *cache.Catalog) *MoviesHandler {
	return &MoviesHandler{
		repo:    repo,
		catalog: catalog,
	}
}

func (h *MoviesHandler) CreateMovie(ctx *gin.Context) {
	var req movie.CreateMovieRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	m, err := h.repo.Create(cctx, req)

	if err != nil {
		if errors.Is(err, postgres.ErrGenreMissing) {
			RespondBadRequest(ctx, "Genre does not exist", nil)
			return
		}

		RespondInternal(ctx, "Could not create movie")
		return
	}

	h.invalidateCatalog(cctx)

	RespondCreated(ctx, "Movie created successfully", m)
}

func (h *MoviesHandler) ListMovies(ctx *gin.Context) {
	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	if h.catalog != nil {
		if movies, ok := h.catalog.GetMovies(cctx); ok {
			RespondJSONWithETag(ctx, http.StatusOK, Envelope{
				Status:  true,
				Message: "Movies fetched successfully",
				Data:    movies,
			})
			return
		}
	}

	movies, err := h.repo.List(cctx)

	if err != nil {
		RespondInternal(ctx, "Could not list movies")
		return
	}

	if h.catalog != nil {
		h.catalog.SetMovies(cctx, movies)
	}

	RespondJSONWithETag(ctx, http.StatusOK, Envelope{
		Status:  true,
		Message: "Movies fetched successfully",
		Data:    movies,
	})
}

func (h *MoviesHandler) GetMovieByTitle(ctx *gin.Context) {
	title := ctx.Param("title")

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	m, err := h.repo.GetByTitle(cctx, title)

	if err != nil {
		if errors.Is(err, movie.ErrNotFound) {
			RespondNotFound(ctx, "Movie not found")
			return
		}

		RespondInternal(ctx, "Could not fetch movie")
		return
	}

	RespondOK(ctx, "Movie fetched successfully", m)
}

func (h *MoviesHandler) UpdateMovie(ctx *gin.Context) {
	title := ctx.Param("title")

	var req movie.UpdateMovieRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	m, err := h.repo.UpdateByTitle(cctx, title, req)

	if err != nil {
		switch {
		case errors.Is(err, movie.ErrNotFound):
			RespondNotFound(ctx, "Movie not found")
		case errors.Is(err, postgres.ErrGenreMissing):
			RespondBadRequest(ctx, "Genre does not exist", nil)
		default:
			RespondInternal(ctx, "Could not update movie")
		}
		return
	}

	h.invalidateCatalog(cctx)

	RespondOK(ctx, "Movie updated successfully", m)
}

func (h *MoviesHandler) DeleteMovie(ctx *gin.Context) {
	title := ctx.Param("title")

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	err := h.repo.DeleteByTitle(cctx, title)

	if err != nil {
		if errors.Is(err, movie.ErrNotFound) {
			RespondNotFound(ctx, "Movie not found")
			return
		}

		RespondInternal(ctx, "Could not delete movie")
		return
	}

	h.invalidateCatalog(cctx)

	RespondOK(ctx, "Movie deleted successfully", nil)
}

func (h *MoviesHandler) RateMovie(ctx *gin.Context) {
	title := ctx.Param("title")

	var req movie.RateMovieRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	m, err := h.repo.UpdateRating(cctx, title, req.Rating)

	if err != nil {
		if errors.Is(err, movie.ErrNotFound) {
			RespondNotFound(ctx, "Movie not found")
			return
		}

		RespondInternal(ctx, "Could not update rating")
		return
	}

	h.invalidateCatalog(cctx)

	RespondOK(ctx, "Rating updated successfully", m)
}

func (h *MoviesHandler) SearchMovies(ctx *gin.Context) {
	var req movie.SearchMoviesRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	movies, err := h.repo.Search(cctx, req.Query)

	if err != nil {
		RespondInternal(ctx, "Could not search movies")
		return
	}

	RespondOK(ctx, "Search results", movies)
}

func (h *MoviesHandler) ListMoviesByGenre(ctx *gin.Context) {
	genreName := ctx.Param("genreName")

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	movies, err := h.repo.ListByGenreName(cctx, genreName)

	if err != nil {
		RespondInternal(ctx, "Could not list movies for genre")
		return
	}

	RespondOK(ctx, "Movies fetched successfully", movies)
}

func (h *MoviesHandler) invalidateCatalog(ctx context.Context) {
	if h.catalog != nil {
		h.catalog.Invalidate(ctx)
	}
}
