package db

import (
	"context"
	"errors"
	"time"

	"github.com/TARUN062005/MERNNETFLIX/internal/config"
	"github.com/TARUN062005/MERNNETFLIX/internal/domain/user"
	"github.com/TARUN062005/MERNNETFLIX/internal/security"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// EnsureAdminUser bootstraps the configured admin account if it does not
// exist yet. No-op when the config leaves the credentials empty.
func EnsureAdminUser(ctx context.Context, pool *pgxpool.Pool, cfg config.Config) error {
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		return nil
	}

	var dummy string

	err := pool.QueryRow(ctx,
		`SELECT id FROM users WHERE email = $1 AND role = $2`,
		cfg.AdminEmail, user.RoleAdmin.String(),
	).Scan(&dummy)

	if err == nil {
		return nil
	}

	if !errors.Is(err, pgx.ErrNoRows) {
		return err
	}

	hash, err := security.HashPassword(cfg.AdminPassword)

	if err != nil {
		return err
	}

	now := time.Now().UTC()

	u := user.User{
		ID:           uuid.NewString(),
		Name:         cfg.AdminName,
		Email:        cfg.AdminEmail,
		PasswordHash: hash,
		Role:         user.RoleAdmin,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	_, err = pool.Exec(ctx,
		`INSERT INTO users (id, name, email, password_hash, role, created_at, updated_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		u.ID, u.Name, u.Email, u.PasswordHash, u.Role.String(), u.CreatedAt, u.UpdatedAt,
	)

	return err
}
