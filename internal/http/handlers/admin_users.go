package handlers

import (
	"context"
	"errors"
	"time"

	"github.com/TARUN062005/MERNNETFLIX/internal/config"
	"github.com/TARUN062005/MERNNETFLIX/internal/domain/user"
	"github.com/TARUN062005/MERNNETFLIX/internal/repo/postgres"
	"github.com/gin-gonic/gin"
)

type UsersAdminStore interface {
	List(ctx context.Context) ([]user.User, error)
	Delete(ctx context.Context, id string) error
}

// AdminUsersHandler serves the admin-only account management routes.
type AdminUsersHandler struct {
	users UsersAdminStore
}

func NewAdminUsersHandler(users UsersAdminStore) *AdminUsersHandler {
	return &AdminUsersHandler{users: users}
}

func (h *AdminUsersHandler) ListUsers(ctx *gin.Context) {
	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	users, err := h.users.List(cctx)

	if err != nil {
		RespondInternal(ctx, "Could not list users")
		return
	}

	RespondOK(ctx, "Users fetched successfully", users)
}

func (h *AdminUsersHandler) DeleteUser(ctx *gin.Context) {
	id := ctx.Param("id")

	if id == "" {
		RespondBadRequest(ctx, "User ID is required", nil)
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	err := h.users.Delete(cctx, id)

	if err != nil {
		if errors.Is(err, postgres.ErrUserNotFound) {
			RespondNotFound(ctx, "User not found")
			return
		}

		RespondInternal(ctx, "Failed to delete user")
		return
	}

	RespondOK(ctx, "User deleted successfully", nil)
}
