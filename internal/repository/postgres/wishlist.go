package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Kerhoff/wishlists/internal/models"
)

const wishlistColumns = `id, name, item_id, item_name, quantity, updated_time, note`

type wishlistRepository struct {
	db dbtx
}

type scanner interface {
	Scan(dest ...any) error
}

func scanWishlist(row scanner) (*models.Wishlist, error) {
	w := &models.Wishlist{}
	err := row.Scan(
		&w.ID,
		&w.Name,
		&w.ItemID,
		&w.ItemName,
		&w.Quantity,
		&w.UpdatedTime,
		&w.Note,
	)
	if err != nil {
		return nil, err
	}
	w.UpdatedTime = w.UpdatedTime.UTC()
	return w, nil
}

func (r *wishlistRepository) Create(ctx context.Context, w *models.Wishlist) (*models.Wishlist, error) {
	query := `
		INSERT INTO wishlist (name, item_id, item_name, quantity, updated_time, note)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`

	err := r.db.QueryRowContext(ctx, query,
		w.Name,
		w.ItemID,
		w.ItemName,
		w.Quantity,
		w.UpdatedTime,
		w.Note,
	).Scan(&w.ID)

	if err != nil {
		return nil, fmt.Errorf("failed to create wishlist: %w", wrapErr(err))
	}

	return w, nil
}

func (r *wishlistRepository) Update(ctx context.Context, w *models.Wishlist) (*models.Wishlist, error) {
	query := `
		UPDATE wishlist
		SET name = $2, item_id = $3, item_name = $4, quantity = $5, updated_time = $6, note = $7
		WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query,
		w.ID,
		w.Name,
		w.ItemID,
		w.ItemName,
		w.Quantity,
		w.UpdatedTime,
		w.Note,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update wishlist: %w", wrapErr(err))
	}

	if err := checkAffected(result, "wishlist", w.ID); err != nil {
		return nil, err
	}

	return w, nil
}

func (r *wishlistRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM wishlist WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete wishlist: %w", wrapErr(err))
	}

	return checkAffected(result, "wishlist", id)
}

func (r *wishlistRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM wishlist`); err != nil {
		return fmt.Errorf("failed to delete wishlists: %w", wrapErr(err))
	}
	return nil
}

func (r *wishlistRepository) Find(ctx context.Context, id int64) (*models.Wishlist, error) {
	query := `SELECT ` + wishlistColumns + ` FROM wishlist WHERE id = $1`

	w, err := scanWishlist(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get wishlist by ID: %w", err)
	}

	return w, nil
}

func (r *wishlistRepository) FindByName(ctx context.Context, name string) ([]*models.Wishlist, error) {
	query := `SELECT ` + wishlistColumns + ` FROM wishlist WHERE name = $1 ORDER BY id ASC`
	return r.list(ctx, "failed to query wishlists by name", query, name)
}

func (r *wishlistRepository) All(ctx context.Context) ([]*models.Wishlist, error) {
	query := `SELECT ` + wishlistColumns + ` FROM wishlist ORDER BY id ASC`
	return r.list(ctx, "failed to query wishlists", query)
}

func (r *wishlistRepository) list(ctx context.Context, msg, query string, args ...any) ([]*models.Wishlist, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", msg, err)
	}
	defer rows.Close()

	lists := []*models.Wishlist{}
	for rows.Next() {
		w, err := scanWishlist(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan wishlist: %w", err)
		}
		lists = append(lists, w)
	}

	return lists, rows.Err()
}
