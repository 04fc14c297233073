package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// EnsureSchema creates the tables this service needs. Idempotent, ran once
// at startup. The (email, role) pair is unique: the same address may hold
// one user account and one admin account, and login filters on both.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS users (
			id            UUID PRIMARY KEY,
			name          TEXT NOT NULL,
			email         TEXT NOT NULL,
			password_hash TEXT NOT NULL,
			role          TEXT NOT NULL CHECK (role IN ('user', 'admin')),
			created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE (email, role)
		);

		CREATE TABLE IF NOT EXISTS genres (
			id         UUID PRIMARY KEY,
			name       TEXT NOT NULL UNIQUE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);

		CREATE TABLE IF NOT EXISTS movies (
			id          UUID PRIMARY KEY,
			title       TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			year        INT NOT NULL,
			url         TEXT NOT NULL DEFAULT '',
			banner_url  TEXT NOT NULL DEFAULT '',
			genre_id    UUID NOT NULL REFERENCES genres(id),
			rating      INT NOT NULL DEFAULT 0,
			created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);

		CREATE INDEX IF NOT EXISTS movies_title_idx ON movies (title);
		CREATE INDEX IF NOT EXISTS movies_genre_id_idx ON movies (genre_id);
	`)

	return err
}
