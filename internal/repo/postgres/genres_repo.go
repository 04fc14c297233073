package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/TARUN062005/MERNNETFLIX/internal/domain/genre"
	"github.com/TARUN062005/MERNNETFLIX/internal/observability"
	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrGenreNameTaken = errors.New("genre name already exists")
	ErrGenreInUse     = errors.New("genre still has movies")
)

type GenresRepo struct {
	pool *pgxpool.Pool
	prom *observability.Prom
}

func NewGenresRepo(pool *pgxpool.Pool, prom *observability.Prom) *GenresRepo {
	return &GenresRepo{
		pool: pool,
		prom: prom,
	}
}

func (r *GenresRepo) observe(op string, fn func() error) error {
	if r.prom != nil {
		return r.prom.ObserveDB(op, fn)
	}
	return fn()
}

func (r *GenresRepo) Create(ctx context.Context, req genre.CreateGenreRequest) (genre.Genre, error) {
	now := time.Now().UTC()

	g := genre.Genre{
		ID:        uuid.NewString(),
		Name:      req.Name,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := r.observe("genres.create", func() error {
		_, err := r.pool.Exec(ctx,
			`INSERT INTO genres (id, name, created_at, updated_at) VALUES ($1,$2,$3,$4)`,
			g.ID, g.Name, g.CreatedAt, g.UpdatedAt,
		)
		return err
	})

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return genre.Genre{}, ErrGenreNameTaken
		}

		return genre.Genre{}, err
	}

	return g, nil
}

func (r *GenresRepo) List(ctx context.Context) ([]genre.Genre, error) {
	output := make([]genre.Genre, 0)

	err := r.observe("genres.list", func() error {
		rows, err := r.pool.Query(ctx,
			`SELECT id, name, created_at, updated_at
			 FROM genres
			 ORDER BY name ASC, id ASC`,
		)

		if err != nil {
			return err
		}

		defer rows.Close()

		for rows.Next() {
			var g genre.Genre

			err = rows.Scan(&g.ID, &g.Name, &g.CreatedAt, &g.UpdatedAt)

			if err != nil {
				return err
			}

			output = append(output, g)
		}

		return rows.Err()
	})

	if err != nil {
		return nil, err
	}

	return output, nil
}

func (r *GenresRepo) GetByName(ctx context.Context, name string) (genre.Genre, error) {
	var g genre.Genre

	err := r.observe("genres.get_by_name", func() error {
		return r.pool.QueryRow(ctx,
			`SELECT id, name, created_at, updated_at FROM genres WHERE name = $1`,
			name,
		).Scan(&g.ID, &g.Name, &g.CreatedAt, &g.UpdatedAt)
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return genre.Genre{}, genre.ErrNotFound
		}

		return genre.Genre{}, err
	}

	return g, nil
}

func (r *GenresRepo) UpdateByName(ctx context.Context, name string, req genre.UpdateGenreRequest) (genre.Genre, error) {
	var g genre.Genre

	err := r.observe("genres.update_by_name", func() error {
		return r.pool.QueryRow(ctx,
			`UPDATE genres
			 SET name = $2, updated_at = NOW()
			 WHERE name = $1
			 RETURNING id, name, created_at, updated_at`,
			name, req.Name,
		).Scan(&g.ID, &g.Name, &g.CreatedAt, &g.UpdatedAt)
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return genre.Genre{}, genre.ErrNotFound
		}

		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return genre.Genre{}, ErrGenreNameTaken
		}

		return genre.Genre{}, err
	}

	return g, nil
}

func (r *GenresRepo) DeleteByName(ctx context.Context, name string) error {
	var tag pgconn.CommandTag

	err := r.observe("genres.delete_by_name", func() error {
		var err error
		tag, err = r.pool.Exec(ctx, `DELETE FROM genres WHERE name = $1`, name)
		return err
	})

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation {
			return ErrGenreInUse
		}

		return err
	}

	if tag.RowsAffected() == 0 {
		return genre.ErrNotFound
	}

	return nil
}
