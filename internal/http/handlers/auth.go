package handlers

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/TARUN062005/MERNNETFLIX/internal/config"
	"github.com/TARUN062005/MERNNETFLIX/internal/domain/user"
	"github.com/TARUN062005/MERNNETFLIX/internal/observability"
	"github.com/TARUN062005/MERNNETFLIX/internal/repo/postgres"
	"github.com/TARUN062005/MERNNETFLIX/internal/security"
	"github.com/gin-gonic/gin"
)

// UsersStore is the credential-store surface the auth flow needs. The
// postgres repo satisfies it; tests fake it.
type UsersStore interface {
	Create(ctx context.Context, name, email, passwordHash string, role user.Role) (user.User, error)
	GetByEmailAndRole(ctx context.Context, email string, role user.Role) (user.User, error)
	GetByID(ctx context.Context, id string) (user.User, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error
}

type TokenIssuer interface {
	GenerateToken(userID, email string, role user.Role) (string, error)
}

type AuthHandler struct {
	users UsersStore
	jwt   TokenIssuer
	prom  *observability.Prom
}

func NewAuthHandler(users UsersStore, jwt TokenIssuer, prom *observability.Prom) *AuthHandler {
	return &AuthHandler{
		users: users,
		jwt:   jwt,
		prom:  prom,
	}
}

type RegisterRequest struct {
	Name     string `json:"name" binding:"required,min=1,max=120"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=8"`
}

type ResetPasswordRequest struct {
	NewPassword string `json:"newPassword" binding:"required,min=8"`
}

// Role is fixed by the route, never by the client.

func (h *AuthHandler) RegisterUser(ctx *gin.Context) {
	h.register(ctx, user.RoleUser, "User created")
}

func (h *AuthHandler) RegisterAdmin(ctx *gin.Context) {
	h.register(ctx, user.RoleAdmin, "Admin created")
}

func (h *AuthHandler) LoginUser(ctx *gin.Context) {
	h.login(ctx, user.RoleUser, "User Login Successful")
}

func (h *AuthHandler) LoginAdmin(ctx *gin.Context) {
	h.login(ctx, user.RoleAdmin, "Login Successful")
}

func (h *AuthHandler) register(ctx *gin.Context, role user.Role, successMsg string) {
	var req RegisterRequest

	if !BindJSON(ctx, &req) {
		h.record("register", role, "rejected")
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)

	defer cancel()

	hash, err := security.HashPassword(req.Password)

	if err != nil {
		h.record("register", role, "error")
		RespondInternal(ctx, "Could not create account")
		return
	}

	u, err := h.users.Create(cctx, req.Name, req.Email, hash, role)

	if err != nil {
		if errors.Is(err, postgres.ErrEmailTaken) {
			h.record("register", role, "rejected")
			RespondConflict(ctx, "Email is already registered")
			return
		}

		h.record("register", role, "error")
		RespondInternal(ctx, "Could not create account")
		return
	}

	h.record("register", role, "ok")
	RespondCreated(ctx, successMsg, u)
}

func (h *AuthHandler) login(ctx *gin.Context, role user.Role, successMsg string) {
	var req LoginRequest

	if !BindJSON(ctx, &req) {
		h.record("login", role, "rejected")
		return
	}

	// short timeout for the DB lookup
	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	foundUser, err := h.users.GetByEmailAndRole(cctx, req.Email, role)

	if err != nil {
		if errors.Is(err, postgres.ErrUserNotFound) {
			// Distinct message from a password mismatch. Legacy behavior,
			// kept on purpose.
			h.record("login", role, "rejected")
			RespondBadRequest(ctx, "User doesn't exist", nil)
			return
		}

		h.record("login", role, "error")
		RespondInternal(ctx, "Could not log in")
		return
	}

	err = security.CheckPassword(foundUser.PasswordHash, req.Password)

	if err != nil {
		h.record("login", role, "rejected")
		RespondBadRequest(ctx, "Wrong Password", nil)
		return
	}

	token, err := h.jwt.GenerateToken(foundUser.ID, foundUser.Email, foundUser.Role)

	if err != nil {
		h.record("login", role, "error")
		RespondInternal(ctx, "Could not generate token")
		return
	}

	h.record("login", role, "ok")
	RespondOK(ctx, successMsg, gin.H{"token": token})
}

// ChangePassword lets an authenticated admin rotate a password after
// re-proving the old one. The route guard has already checked the role.
func (h *AuthHandler) ChangePassword(ctx *gin.Context) {
	id := ctx.Param("id")

	var req ChangePasswordRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	target, err := h.users.GetByID(cctx, id)

	if err != nil {
		if errors.Is(err, postgres.ErrUserNotFound) {
			RespondNotFound(ctx, "Admin not found")
			return
		}

		RespondInternal(ctx, "Could not change password")
		return
	}

	err = security.CheckPassword(target.PasswordHash, req.OldPassword)

	if err != nil {
		RespondBadRequest(ctx, "Old password is incorrect", nil)
		return
	}

	hash, err := security.HashPassword(req.NewPassword)

	if err != nil {
		RespondInternal(ctx, "Could not change password")
		return
	}

	err = h.users.UpdatePassword(cctx, target.ID, hash)

	if err != nil {
		RespondInternal(ctx, "Could not change password")
		return
	}

	RespondOK(ctx, "Password Updated Successfully", nil)
}

// ResetUserPassword is the admin override: no old-password check for the
// target account. Only the guard keeps this behind the admin role.
func (h *AuthHandler) ResetUserPassword(ctx *gin.Context) {
	userID := ctx.Param("userId")

	var req ResetPasswordRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	target, err := h.users.GetByID(cctx, userID)

	if err != nil {
		if errors.Is(err, postgres.ErrUserNotFound) {
			RespondNotFound(ctx, "User not found")
			return
		}

		RespondInternal(ctx, "Could not reset password")
		return
	}

	hash, err := security.HashPassword(req.NewPassword)

	if err != nil {
		RespondInternal(ctx, "Could not reset password")
		return
	}

	err = h.users.UpdatePassword(cctx, target.ID, hash)

	if err != nil {
		RespondInternal(ctx, "Could not reset password")
		return
	}

	RespondOK(ctx, fmt.Sprintf("Password for %s updated successfully", target.Role), nil)
}

func (h *AuthHandler) record(op string, role user.Role, result string) {
	if h.prom == nil {
		return
	}

	h.prom.AuthResults.WithLabelValues(op, role.String(), result).Inc()
}
