package handlers

import (
	"context"
	"errors"
	"time"

	"github.com/TARUN062005/MERNNETFLIX/internal/config"
	"github.com/TARUN062005/MERNNETFLIX/internal/domain/genre"
	"github.com/TARUN062005/MERNNETFLIX/internal/domain/movie"
	"github.com/TARUN062005/MERNNETFLIX/internal/repo/postgres"
	"github.com/gin-gonic/gin"
)

type GenresStore interface {
	Create(ctx context.Context, req genre.CreateGenreRequest) (genre.Genre, error)
	List(ctx context.Context) ([]genre.Genre, error)
	GetByName(ctx context.Context, name string) (genre.Genre, error)
	UpdateByName(ctx context.Context, name string, req genre.UpdateGenreRequest) (genre.Genre, error)
	DeleteByName(ctx context.Context, name string) error
}

// GenreMovieLister embeds each genre's movies on reads.
type GenreMovieLister interface {
	ListByGenreName(ctx context.Context, genreName string) ([]movie.Movie, error)
}

type GenresHandler struct {
	repo   GenresStore
	movies GenreMovieLister
}

func NewGenresHandler(repo GenresStore, movies GenreMovieLister) *GenresHandler {
	return &GenresHandler{
		repo:   repo,
		movies: movies,
	}
}

type genreWithMovies struct {
	genre.Genre
	Movies []movie.Movie `json:"movies"`
}

func (h *GenresHandler) CreateGenre(ctx *gin.Context) {
	var req genre.CreateGenreRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	g, err := h.repo.Create(cctx, req)

	if err != nil {
		if errors.Is(err, postgres.ErrGenreNameTaken) {
			RespondConflict(ctx, "Genre already exists")
			return
		}

		RespondInternal(ctx, "Could not create genre")
		return
	}

	RespondCreated(ctx, "Genre created successfully", g)
}

func (h *GenresHandler) ListGenres(ctx *gin.Context) {
	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	genres, err := h.repo.List(cctx)

	if err != nil {
		RespondInternal(ctx, "Could not list genres")
		return
	}

	output := make([]genreWithMovies, 0, len(genres))

	for _, g := range genres {
		movies, err := h.movies.ListByGenreName(cctx, g.Name)

		if err != nil {
			RespondInternal(ctx, "Could not list genres")
			return
		}

		output = append(output, genreWithMovies{Genre: g, Movies: movies})
	}

	RespondOK(ctx, "Genres fetched successfully", output)
}

func (h *GenresHandler) GetGenreByName(ctx *gin.Context) {
	name := ctx.Param("name")

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	g, err := h.repo.GetByName(cctx, name)

	if err != nil {
		if errors.Is(err, genre.ErrNotFound) {
			RespondNotFound(ctx, "Genre not found")
			return
		}

		RespondInternal(ctx, "Could not fetch genre")
		return
	}

	movies, err := h.movies.ListByGenreName(cctx, g.Name)

	if err != nil {
		RespondInternal(ctx, "Could not fetch genre")
		return
	}

	RespondOK(ctx, "Genre fetched successfully", genreWithMovies{Genre: g, Movies: movies})
}

func (h *GenresHandler) UpdateGenre(ctx *gin.Context) {
	name := ctx.Param("name")

	var req genre.UpdateGenreRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	g, err := h.repo.UpdateByName(cctx, name, req)

	if err != nil {
		switch {
		case errors.Is(err, genre.ErrNotFound):
			RespondNotFound(ctx, "Genre not found")
		case errors.Is(err, postgres.ErrGenreNameTaken):
			RespondConflict(ctx, "Genre already exists")
		default:
			RespondInternal(ctx, "Could not update genre")
		}
		return
	}

	RespondOK(ctx, "Genre updated successfully", g)
}

func (h *GenresHandler) DeleteGenre(ctx *gin.Context) {
	name := ctx.Param("name")

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	err := h.repo.DeleteByName(cctx, name)

	if err != nil {
		switch {
		case errors.Is(err, genre.ErrNotFound):
			RespondNotFound(ctx, "Genre not found")
		case errors.Is(err, postgres.ErrGenreInUse):
			RespondBadRequest(ctx, "Genre still has movies", nil)
		default:
			RespondInternal(ctx, "Could not delete genre")
		}
		return
	}

	RespondOK(ctx, "Genre deleted successfully", nil)
}
