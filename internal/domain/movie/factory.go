package movie

import (
	"time"

	"github.com/google/uuid"
)

func NewFromCreateRequest(req CreateMovieRequest) Movie {
	now := time.Now().UTC()

	return Movie{
		ID:          uuid.NewString(),
		Title:       req.Title,
		Description: req.Description,
		Year:        req.Year,
		URL:         req.URL,
		BannerURL:   req.BannerURL,
		GenreID:     req.GenreID,
		Rating:      req.Rating,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
