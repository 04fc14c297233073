package postgres

import (
	"context"
	"errors"

	"github.com/TARUN062005/MERNNETFLIX/internal/domain/genre"
	"github.com/TARUN062005/MERNNETFLIX/internal/domain/movie"
	"github.com/TARUN062005/MERNNETFLIX/internal/observability"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrGenreMissing surfaces a create/update that names a genre id with no row
// behind it.
var ErrGenreMissing = errors.New("genre does not exist")

type MoviesRepo struct {
	pool *pgxpool.Pool
	prom *observability.Prom
}

func NewMoviesRepo(pool *pgxpool.Pool, prom *observability.Prom) *MoviesRepo {
	return &MoviesRepo{
		pool: pool,
		prom: prom,
	}
}

func (r *MoviesRepo) observe(op string, fn func() error) error {
	if r.prom != nil {
		return r.prom.ObserveDB(op, fn)
	}
	return fn()
}

const movieWithGenreColumns = `
	m.id, m.title, m.description, m.year, m.url, m.banner_url, m.genre_id, m.rating,
	m.created_at, m.updated_at,
	g.id, g.name, g.created_at, g.updated_at
`

func scanMovieWithGenre(row pgx.Row) (movie.Movie, error) {
	var m movie.Movie
	var g genre.Genre

	err := row.Scan(
		&m.ID, &m.Title, &m.Description, &m.Year, &m.URL, &m.BannerURL, &m.GenreID, &m.Rating,
		&m.CreatedAt, &m.UpdatedAt,
		&g.ID, &g.Name, &g.CreatedAt, &g.UpdatedAt,
	)

	if err != nil {
		return movie.Movie{}, err
	}

	m.Genre = &g

	return m, nil
}

func (r *MoviesRepo) Create(ctx context.Context, req movie.CreateMovieRequest) (movie.Movie, error) {
	m := movie.NewFromCreateRequest(req)

	err := r.observe("movies.create", func() error {
		_, err := r.pool.Exec(ctx,
			`INSERT INTO movies (id, title, description, year, url, banner_url, genre_id, rating, created_at, updated_at)
			 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
			m.ID, m.Title, m.Description, m.Year, m.URL, m.BannerURL, m.GenreID, m.Rating, m.CreatedAt, m.UpdatedAt,
		)
		return err
	})

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation {
			return movie.Movie{}, ErrGenreMissing
		}

		return movie.Movie{}, err
	}

	return r.getByID(ctx, m.ID)
}

func (r *MoviesRepo) List(ctx context.Context) ([]movie.Movie, error) {
	var output []movie.Movie

	err := r.observe("movies.list", func() error {
		rows, err := r.pool.Query(ctx,
			`SELECT `+movieWithGenreColumns+`
			 FROM movies m
			 JOIN genres g ON g.id = m.genre_id
			 ORDER BY m.created_at ASC, m.id ASC`,
		)

		if err != nil {
			return err
		}

		defer rows.Close()

		output, err = collectMovies(rows)
		return err
	})

	if err != nil {
		return nil, err
	}

	return output, nil
}

// re-reads after writes so callers always see the embedded genre
func (r *MoviesRepo) getByID(ctx context.Context, id string) (movie.Movie, error) {
	var m movie.Movie

	err := r.observe("movies.get_by_id", func() error {
		var err error
		m, err = scanMovieWithGenre(r.pool.QueryRow(ctx,
			`SELECT `+movieWithGenreColumns+`
			 FROM movies m
			 JOIN genres g ON g.id = m.genre_id
			 WHERE m.id = $1`,
			id,
		))
		return err
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return movie.Movie{}, movie.ErrNotFound
		}

		return movie.Movie{}, err
	}

	return m, nil
}

// GetByTitle keeps the legacy lookup key: routes address movies by title, not
// id. Duplicate titles resolve to the oldest row so replays are deterministic.
func (r *MoviesRepo) GetByTitle(ctx context.Context, title string) (movie.Movie, error) {
	var m movie.Movie

	err := r.observe("movies.get_by_title", func() error {
		var err error
		m, err = scanMovieWithGenre(r.pool.QueryRow(ctx,
			`SELECT `+movieWithGenreColumns+`
			 FROM movies m
			 JOIN genres g ON g.id = m.genre_id
			 WHERE m.title = $1
			 ORDER BY m.created_at ASC
			 LIMIT 1`,
			title,
		))
		return err
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return movie.Movie{}, movie.ErrNotFound
		}

		return movie.Movie{}, err
	}

	return m, nil
}

func (r *MoviesRepo) UpdateByTitle(ctx context.Context, title string, req movie.UpdateMovieRequest) (movie.Movie, error) {
	existing, err := r.GetByTitle(ctx, title)

	if err != nil {
		return movie.Movie{}, err
	}

	rating := existing.Rating

	if req.Rating != nil {
		rating = *req.Rating
	}

	err = r.observe("movies.update_by_title", func() error {
		_, err := r.pool.Exec(ctx,
			`UPDATE movies
			 SET title = $2,
			     description = $3,
			     year = $4,
			     url = $5,
			     banner_url = $6,
			     genre_id = $7,
			     rating = $8,
			     updated_at = NOW()
			 WHERE id = $1`,
			existing.ID, req.Title, req.Description, req.Year, req.URL, req.BannerURL, req.GenreID, rating,
		)
		return err
	})

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation {
			return movie.Movie{}, ErrGenreMissing
		}

		return movie.Movie{}, err
	}

	return r.getByID(ctx, existing.ID)
}

func (r *MoviesRepo) DeleteByTitle(ctx context.Context, title string) error {
	existing, err := r.GetByTitle(ctx, title)

	if err != nil {
		return err
	}

	var tag pgconn.CommandTag

	err = r.observe("movies.delete_by_title", func() error {
		var err error
		tag, err = r.pool.Exec(ctx, `DELETE FROM movies WHERE id = $1`, existing.ID)
		return err
	})

	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return movie.ErrNotFound
	}

	return nil
}

func (r *MoviesRepo) UpdateRating(ctx context.Context, title string, rating int) (movie.Movie, error) {
	existing, err := r.GetByTitle(ctx, title)

	if err != nil {
		return movie.Movie{}, err
	}

	err = r.observe("movies.update_rating", func() error {
		_, err := r.pool.Exec(ctx,
			`UPDATE movies SET rating = $2, updated_at = NOW() WHERE id = $1`,
			existing.ID, rating,
		)
		return err
	})

	if err != nil {
		return movie.Movie{}, err
	}

	return r.getByID(ctx, existing.ID)
}

func (r *MoviesRepo) Search(ctx context.Context, query string) ([]movie.Movie, error) {
	var output []movie.Movie

	err := r.observe("movies.search", func() error {
		rows, err := r.pool.Query(ctx,
			`SELECT `+movieWithGenreColumns+`
			 FROM movies m
			 JOIN genres g ON g.id = m.genre_id
			 WHERE m.title ILIKE '%' || $1 || '%'
			 ORDER BY m.title ASC, m.id ASC`,
			query,
		)

		if err != nil {
			return err
		}

		defer rows.Close()

		output, err = collectMovies(rows)
		return err
	})

	if err != nil {
		return nil, err
	}

	return output, nil
}

func (r *MoviesRepo) ListByGenreName(ctx context.Context, genreName string) ([]movie.Movie, error) {
	var output []movie.Movie

	err := r.observe("movies.list_by_genre", func() error {
		rows, err := r.pool.Query(ctx,
			`SELECT `+movieWithGenreColumns+`
			 FROM movies m
			 JOIN genres g ON g.id = m.genre_id
			 WHERE g.name = $1
			 ORDER BY m.created_at ASC, m.id ASC`,
			genreName,
		)

		if err != nil {
			return err
		}

		defer rows.Close()

		output, err = collectMovies(rows)
		return err
	})

	if err != nil {
		return nil, err
	}

	return output, nil
}

func collectMovies(rows pgx.Rows) ([]movie.Movie, error) {
	output := make([]movie.Movie, 0)

	for rows.Next() {
		m, err := scanMovieWithGenre(rows)

		if err != nil {
			return nil, err
		}

		output = append(output, m)
	}

	err := rows.Err()

	if err != nil {
		return nil, err
	}

	return output, nil
}
