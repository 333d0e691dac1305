package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/Kerhoff/wishlists/internal/repository"
)

// dbtx is satisfied by both *sql.DB and *sql.Tx.
type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type queries struct {
	db dbtx
}

func (q *queries) Wishlists() repository.WishlistRepository {
	return &wishlistRepository{db: q.db}
}

func (q *queries) Items() repository.ItemRepository {
	return &itemRepository{db: q.db}
}

type store struct {
	queries
	pool *sql.DB
}

// NewStore creates a store backed by the given connection pool
func NewStore(db *sql.DB) repository.Store {
	return &store{queries: queries{db: db}, pool: db}
}

func (s *store) WithTx(ctx context.Context, fn func(tx repository.Repositories) error) error {
	tx, err := s.pool.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(&queries{db: tx}); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return errors.Join(err, fmt.Errorf("failed to roll back transaction: %w", rbErr))
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", wrapErr(err))
	}
	return nil
}

func (s *store) Ping(ctx context.Context) error {
	return s.pool.PingContext(ctx)
}

// wrapErr tags integrity constraint violations (SQLSTATE class 23) with
// repository.ErrConstraint.
func wrapErr(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code.Class() == "23" {
		return fmt.Errorf("%w: %w", repository.ErrConstraint, err)
	}
	return err
}

func checkAffected(result sql.Result, what string, id int64) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("%s with ID %d: %w", what, id, repository.ErrNotFound)
	}

	return nil
}
