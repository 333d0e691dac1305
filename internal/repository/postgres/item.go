package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Kerhoff/wishlists/internal/models"
)

type itemRepository struct {
	db dbtx
}

func (r *itemRepository) Create(ctx context.Context, item *models.Item) (*models.Item, error) {
	query := `
		INSERT INTO item (wishlist_id, item_name, quantity, note)
		VALUES ($1, $2, $3, $4)
		RETURNING id`

	err := r.db.QueryRowContext(ctx, query,
		item.WishlistID,
		item.ItemName,
		item.Quantity,
		item.Note,
	).Scan(&item.ID)

	if err != nil {
		return nil, fmt.Errorf("failed to create item: %w", wrapErr(err))
	}

	return item, nil
}

func (r *itemRepository) Update(ctx context.Context, item *models.Item) (*models.Item, error) {
	query := `
		UPDATE item
		SET wishlist_id = $2, item_name = $3, quantity = $4, note = $5
		WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query,
		item.ID,
		item.WishlistID,
		item.ItemName,
		item.Quantity,
		item.Note,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update item: %w", wrapErr(err))
	}

	if err := checkAffected(result, "item", item.ID); err != nil {
		return nil, err
	}

	return item, nil
}

func (r *itemRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM item WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete item: %w", wrapErr(err))
	}

	return checkAffected(result, "item", id)
}

func (r *itemRepository) Find(ctx context.Context, id int64) (*models.Item, error) {
	query := `
		SELECT id, wishlist_id, item_name, quantity, note
		FROM item
		WHERE id = $1`

	item := &models.Item{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&item.ID,
		&item.WishlistID,
		&item.ItemName,
		&item.Quantity,
		&item.Note,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get item by ID: %w", err)
	}

	return item, nil
}

func (r *itemRepository) FindByWishlist(ctx context.Context, wishlistID int64) ([]*models.Item, error) {
	query := `
		SELECT id, wishlist_id, item_name, quantity, note
		FROM item
		WHERE wishlist_id = $1
		ORDER BY id ASC`

	rows, err := r.db.QueryContext(ctx, query, wishlistID)
	if err != nil {
		return nil, fmt.Errorf("failed to query items: %w", err)
	}
	defer rows.Close()

	items := []*models.Item{}
	for rows.Next() {
		item := &models.Item{}
		if err := rows.Scan(
			&item.ID,
			&item.WishlistID,
			&item.ItemName,
			&item.Quantity,
			&item.Note,
		); err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		items = append(items, item)
	}

	return items, rows.Err()
}
