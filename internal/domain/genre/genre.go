package genre

import (
	"errors"
	"time"
)

type Genre struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

var ErrNotFound = errors.New("genre not found")

type CreateGenreRequest struct {
	Name string `json:"name" binding:"required,min=2,max=60"`
}

type UpdateGenreRequest struct {
	Name string `json:"name" binding:"required,min=2,max=60"`
}
