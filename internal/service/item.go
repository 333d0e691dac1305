package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Kerhoff/wishlists/internal/models"
	"github.com/Kerhoff/wishlists/internal/repository"
)

// CreateItem adds an item to the wishlist named by item.WishlistID.
func (s *Service) CreateItem(ctx context.Context, item *models.Item) (*models.Item, error) {
	s.logger.Infof("Creating %s", item)

	if item.ID != 0 {
		return nil, stateError("Item id is assigned by the store and must not be set")
	}
	if err := item.Validate(); err != nil {
		observe("item", "create", err)
		return nil, err
	}

	err := s.withTx(ctx, "item", "create", func(tx repository.Repositories) error {
		parent, err := tx.Wishlists().Find(ctx, item.WishlistID)
		if err != nil {
			return err
		}
		if parent == nil {
			return ErrWishlistNotFound
		}
		_, err = tx.Items().Create(ctx, item)
		return err
	})
	if err != nil {
		item.ID = 0
		if !errors.Is(err, ErrWishlistNotFound) {
			s.logger.WithError(err).Errorf("Error creating record: %s", item)
		}
		return nil, err
	}

	return item, nil
}

// UpdateItem saves changes to an item. The item must already belong to
// item.WishlistID.
func (s *Service) UpdateItem(ctx context.Context, item *models.Item) (*models.Item, error) {
	s.logger.Infof("Saving %s", item)

	if item.ID == 0 {
		return nil, stateError("Update called with empty ID field")
	}
	if err := item.Validate(); err != nil {
		observe("item", "update", err)
		return nil, err
	}

	err := s.withTx(ctx, "item", "update", func(tx repository.Repositories) error {
		existing, err := tx.Items().Find(ctx, item.ID)
		if err != nil {
			return err
		}
		if existing == nil || existing.WishlistID != item.WishlistID {
			return ErrItemNotFound
		}
		_, err = tx.Items().Update(ctx, item)
		if errors.Is(err, repository.ErrNotFound) {
			return ErrItemNotFound
		}
		return err
	})
	if err != nil {
		if !errors.Is(err, ErrItemNotFound) {
			s.logger.WithError(err).Errorf("Error updating record: %s", item)
		}
		return nil, err
	}

	return item, nil
}

// DeleteItem removes one item from a wishlist.
func (s *Service) DeleteItem(ctx context.Context, wishlistID, itemID int64) error {
	s.logger.Infof("Deleting item %d from wishlist %d", itemID, wishlistID)

	err := s.withTx(ctx, "item", "delete", func(tx repository.Repositories) error {
		existing, err := tx.Items().Find(ctx, itemID)
		if err != nil {
			return err
		}
		if existing == nil || existing.WishlistID != wishlistID {
			return ErrItemNotFound
		}
		err = tx.Items().Delete(ctx, itemID)
		if errors.Is(err, repository.ErrNotFound) {
			return ErrItemNotFound
		}
		return err
	})
	if err != nil && !errors.Is(err, ErrItemNotFound) {
		s.logger.WithError(err).Errorf("Error deleting item %d", itemID)
	}
	return err
}

// FindItem returns the item with the given id inside the given wishlist, or
// nil when there is none.
func (s *Service) FindItem(ctx context.Context, wishlistID, itemID int64) (*models.Item, error) {
	item, err := s.store.Items().Find(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("failed to find item %d: %w", itemID, err)
	}
	if item == nil || item.WishlistID != wishlistID {
		return nil, nil
	}
	return item, nil
}

// ListItems returns the items of a wishlist, or ErrWishlistNotFound.
func (s *Service) ListItems(ctx context.Context, wishlistID int64) ([]*models.Item, error) {
	parent, err := s.FindWishlist(ctx, wishlistID)
	if err != nil {
		return nil, err
	}
	if parent == nil {
		return nil, ErrWishlistNotFound
	}

	items, err := s.store.Items().FindByWishlist(ctx, wishlistID)
	if err != nil {
		return nil, fmt.Errorf("failed to list items of wishlist %d: %w", wishlistID, err)
	}
	return items, nil
}
