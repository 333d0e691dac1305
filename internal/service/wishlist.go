package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Kerhoff/wishlists/internal/models"
	"github.com/Kerhoff/wishlists/internal/repository"
)

// CreateWishlist persists a new wishlist and assigns its id. updated_time is
// stamped with the current time when the caller left it empty.
func (s *Service) CreateWishlist(ctx context.Context, w *models.Wishlist) (*models.Wishlist, error) {
	s.logger.Infof("Creating %s", w)

	if w.ID != 0 {
		return nil, stateError("Wishlist id is assigned by the store and must not be set")
	}
	if w.UpdatedTime.IsZero() {
		w.UpdatedTime = s.now()
	}
	if err := w.Validate(); err != nil {
		observe("wishlist", "create", err)
		return nil, err
	}

	err := s.withTx(ctx, "wishlist", "create", func(tx repository.Repositories) error {
		_, err := tx.Wishlists().Create(ctx, w)
		return err
	})
	if err != nil {
		w.ID = 0
		s.logger.WithError(err).Errorf("Error creating record: %s", w)
		return nil, err
	}

	return w, nil
}

// UpdateWishlist saves changes to a persisted wishlist and refreshes its
// updated_time.
func (s *Service) UpdateWishlist(ctx context.Context, w *models.Wishlist) (*models.Wishlist, error) {
	s.logger.Infof("Saving %s", w)

	if w.ID == 0 {
		return nil, stateError("Update called with empty ID field")
	}
	w.UpdatedTime = s.now()
	if err := w.Validate(); err != nil {
		observe("wishlist", "update", err)
		return nil, err
	}

	err := s.withTx(ctx, "wishlist", "update", func(tx repository.Repositories) error {
		_, err := tx.Wishlists().Update(ctx, w)
		if errors.Is(err, repository.ErrNotFound) {
			return ErrWishlistNotFound
		}
		return err
	})
	if err != nil {
		if !errors.Is(err, ErrWishlistNotFound) {
			s.logger.WithError(err).Errorf("Error updating record: %s", w)
		}
		return nil, err
	}

	return w, nil
}

// DeleteWishlist removes a wishlist together with all of its items.
func (s *Service) DeleteWishlist(ctx context.Context, id int64) error {
	s.logger.Infof("Deleting wishlist %d", id)

	err := s.withTx(ctx, "wishlist", "delete", func(tx repository.Repositories) error {
		err := tx.Wishlists().Delete(ctx, id)
		if errors.Is(err, repository.ErrNotFound) {
			return ErrWishlistNotFound
		}
		return err
	})
	if err != nil && !errors.Is(err, ErrWishlistNotFound) {
		s.logger.WithError(err).Errorf("Error deleting wishlist %d", id)
	}
	return err
}

// DeleteAllWishlists removes every wishlist and item.
func (s *Service) DeleteAllWishlists(ctx context.Context) error {
	s.logger.Warn("Deleting all wishlists")
	return s.withTx(ctx, "wishlist", "delete_all", func(tx repository.Repositories) error {
		return tx.Wishlists().DeleteAll(ctx)
	})
}

// FindWishlist returns the wishlist with the given id, or nil when there is
// none.
func (s *Service) FindWishlist(ctx context.Context, id int64) (*models.Wishlist, error) {
	s.logger.Infof("Processing lookup for id %d ...", id)

	w, err := s.store.Wishlists().Find(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find wishlist %d: %w", id, err)
	}
	return w, nil
}

// FindWishlistsByName returns the wishlists whose name is exactly name.
func (s *Service) FindWishlistsByName(ctx context.Context, name string) ([]*models.Wishlist, error) {
	s.logger.Infof("Processing name query for %s ...", name)

	lists, err := s.store.Wishlists().FindByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to find wishlists named %q: %w", name, err)
	}
	return lists, nil
}

// AllWishlists returns every wishlist in the store.
func (s *Service) AllWishlists(ctx context.Context) ([]*models.Wishlist, error) {
	s.logger.Info("Processing all Wishlists")

	lists, err := s.store.Wishlists().All(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list wishlists: %w", err)
	}
	return lists, nil
}
