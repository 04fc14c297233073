package movie

import (
	"errors"
	"time"

	"github.com/TARUN062005/MERNNETFLIX/internal/domain/genre"
)

type Movie struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"desc,omitempty"`
	Year        int          `json:"year"`
	URL         string       `json:"url,omitempty"`
	BannerURL   string       `json:"bannerUrl,omitempty"`
	GenreID     string       `json:"genreId"`
	Rating      int          `json:"rating"`
	Genre       *genre.Genre `json:"genre,omitempty"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

var ErrNotFound = errors.New("movie not found")

type CreateMovieRequest struct {
	Title       string `json:"title" binding:"required,min=1,max=200"`
	Description string `json:"desc" binding:"omitempty,max=2000"`
	Year        int    `json:"year" binding:"required,min=1888,max=2100"`
	URL         string `json:"url" binding:"omitempty,url"`
	BannerURL   string `json:"bannerUrl" binding:"omitempty,url"`
	GenreID     string `json:"genreId" binding:"required,uuid"`
	Rating      int    `json:"rating" binding:"omitempty,min=0,max=10"`
}

// Full replacement payload, keyed by the movie's current title in the route.
type UpdateMovieRequest struct {
	Title       string `json:"title" binding:"required,min=1,max=200"`
	Description string `json:"desc" binding:"omitempty,max=2000"`
	Year        int    `json:"year" binding:"required,min=1888,max=2100"`
	URL         string `json:"url" binding:"omitempty,url"`
	BannerURL   string `json:"bannerUrl" binding:"omitempty,url"`
	GenreID     string `json:"genreId" binding:"required,uuid"`
	Rating      *int   `json:"rating" binding:"omitempty,min=0,max=10"`
}

type RateMovieRequest struct {
	Rating int `json:"rating" binding:"required,min=0,max=10"`
}

type SearchMoviesRequest struct {
	Query string `json:"query" binding:"required,min=1,max=200"`
}
