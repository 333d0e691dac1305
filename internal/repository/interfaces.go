package repository

import (
	"context"
	"errors"

	"github.com/Kerhoff/wishlists/internal/models"
)

var (
	// ErrNotFound is returned by Update and Delete when no row matches the id.
	ErrNotFound = errors.New("record not found")
	// ErrConstraint marks integrity violations reported by the store, such as
	// an item pointing at a wishlist that does not exist.
	ErrConstraint = errors.New("constraint violation")
)

// WishlistRepository defines the interface for wishlist data operations.
// Find returns nil, nil when no wishlist has the given id.
type WishlistRepository interface {
	Create(ctx context.Context, wishlist *models.Wishlist) (*models.Wishlist, error)
	Update(ctx context.Context, wishlist *models.Wishlist) (*models.Wishlist, error)
	Delete(ctx context.Context, id int64) error
	DeleteAll(ctx context.Context) error
	Find(ctx context.Context, id int64) (*models.Wishlist, error)
	FindByName(ctx context.Context, name string) ([]*models.Wishlist, error)
	All(ctx context.Context) ([]*models.Wishlist, error)
}

// ItemRepository defines the interface for item data operations.
// Find returns nil, nil when no item has the given id.
type ItemRepository interface {
	Create(ctx context.Context, item *models.Item) (*models.Item, error)
	Update(ctx context.Context, item *models.Item) (*models.Item, error)
	Delete(ctx context.Context, id int64) error
	Find(ctx context.Context, id int64) (*models.Item, error)
	FindByWishlist(ctx context.Context, wishlistID int64) ([]*models.Item, error)
}

// Repositories is a handle bound either to the store itself or to a single
// transaction.
type Repositories interface {
	Wishlists() WishlistRepository
	Items() ItemRepository
}

// Store is the backing database. Repositories returned directly by the store
// run every call on its own; WithTx hands fn a handle bound to one
// transaction, committed when fn returns nil and rolled back when fn returns
// an error or panics.
type Store interface {
	Repositories
	WithTx(ctx context.Context, fn func(tx Repositories) error) error
	Ping(ctx context.Context) error
}
