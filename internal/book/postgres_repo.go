package book

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const selectColumns = `id, isbn, title, author, COALESCE(publication_year, ''), COALESCE(description, '')`

// PostgresRepo is the relational Store. Driver and pool failures come back
// as *UnavailableError; a missing row comes back as ErrNotFound.
type PostgresRepo struct {
	db      *pgxpool.Pool
	timeout time.Duration
}

// NewPostgresRepo wraps a pool that is owned by the caller. A nil pool is
// accepted and makes every call report ErrNoDatabase as unavailable.
func NewPostgresRepo(db *pgxpool.Pool, timeout time.Duration) *PostgresRepo {
	return &PostgresRepo{db: db, timeout: timeout}
}

func (r *PostgresRepo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, r.timeout)
}

func unavailable(op string, err error) error {
	return &UnavailableError{Op: op, Err: err}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBook(row rowScanner, b *Book) error {
	return row.Scan(&b.ID, &b.ISBN, &b.Title, &b.Author, &b.PublicationYear, &b.Description)
}

func (r *PostgresRepo) List(ctx context.Context) ([]Book, error) {
	if r.db == nil {
		return nil, unavailable("list", ErrNoDatabase)
	}

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	rows, err := r.db.Query(timeoutCtx, `SELECT `+selectColumns+` FROM books ORDER BY id DESC`)
	if err != nil {
		return nil, unavailable("list", err)
	}
	defer rows.Close()

	out := []Book{}
	for rows.Next() {
		var b Book
		if err := scanBook(rows, &b); err != nil {
			return nil, unavailable("list", err)
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable("list", err)
	}
	return out, nil
}

func (r *PostgresRepo) Get(ctx context.Context, id int64) (Book, error) {
	if r.db == nil {
		return Book{}, unavailable("get", ErrNoDatabase)
	}
	return r.get(ctx, "get", id)
}

func (r *PostgresRepo) get(ctx context.Context, op string, id int64) (Book, error) {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	var b Book
	err := scanBook(r.db.QueryRow(timeoutCtx, `SELECT `+selectColumns+` FROM books WHERE id = $1`, id), &b)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Book{}, ErrNotFound
		}
		return Book{}, unavailable(op, err)
	}
	return b, nil
}

// Create inserts the row and re-reads it so the caller sees what was stored.
func (r *PostgresRepo) Create(ctx context.Context, in Input) (Book, error) {
	if r.db == nil {
		return Book{}, unavailable("create", ErrNoDatabase)
	}

	const sql = `
		INSERT INTO books (isbn, title, author, publication_year, description)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	var id int64
	if err := r.db.QueryRow(timeoutCtx, sql,
		in.ISBN, in.Title, in.Author, in.PublicationYear, in.Description,
	).Scan(&id); err != nil {
		return Book{}, unavailable("create", err)
	}

	b, err := r.get(ctx, "create", id)
	if errors.Is(err, ErrNotFound) {
		return Book{}, unavailable("create", errors.New("created book could not be read back"))
	}
	return b, err
}

func (r *PostgresRepo) Update(ctx context.Context, id int64, in Input) (Book, error) {
	if r.db == nil {
		return Book{}, unavailable("update", ErrNoDatabase)
	}

	const sql = `
		UPDATE books
		SET isbn = $1, title = $2, author = $3, publication_year = $4, description = $5
		WHERE id = $6`

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	tag, err := r.db.Exec(timeoutCtx, sql,
		in.ISBN, in.Title, in.Author, in.PublicationYear, in.Description, id,
	)
	if err != nil {
		return Book{}, unavailable("update", err)
	}
	if tag.RowsAffected() == 0 {
		return Book{}, ErrNotFound
	}
	return r.get(ctx, "update", id)
}

func (r *PostgresRepo) Delete(ctx context.Context, id int64) error {
	if r.db == nil {
		return unavailable("delete", ErrNoDatabase)
	}

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	tag, err := r.db.Exec(timeoutCtx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		return unavailable("delete", err)
	}
	if tag.RowsAffected() != 1 {
		return ErrNotFound
	}
	return nil
}
