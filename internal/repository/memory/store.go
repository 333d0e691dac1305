// Package memory implements repository.Store on plain maps. Transactions
// run against a copy of the data that replaces the original on commit, so a
// failed or panicking transaction leaves nothing behind.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/Kerhoff/wishlists/internal/models"
	"github.com/Kerhoff/wishlists/internal/repository"
)

type state struct {
	nextWishlistID int64
	nextItemID     int64
	wishlists      map[int64]*models.Wishlist
	items          map[int64]*models.Item
}

func newState() *state {
	return &state{
		wishlists: make(map[int64]*models.Wishlist),
		items:     make(map[int64]*models.Item),
	}
}

func (s *state) clone() *state {
	c := &state{
		nextWishlistID: s.nextWishlistID,
		nextItemID:     s.nextItemID,
		wishlists:      make(map[int64]*models.Wishlist, len(s.wishlists)),
		items:          make(map[int64]*models.Item, len(s.items)),
	}
	for id, w := range s.wishlists {
		c.wishlists[id] = copyWishlist(w)
	}
	for id, item := range s.items {
		c.items[id] = copyItem(item)
	}
	return c
}

// Store keeps wishlists and items in memory.
type Store struct {
	mu    sync.Mutex
	state *state
}

// New returns an empty store.
func New() *Store {
	return &Store{state: newState()}
}

var _ repository.Store = (*Store)(nil)

func (s *Store) Wishlists() repository.WishlistRepository {
	return &wishlistRepository{handle{store: s}}
}

func (s *Store) Items() repository.ItemRepository {
	return &itemRepository{handle{store: s}}
}

func (s *Store) WithTx(ctx context.Context, fn func(tx repository.Repositories) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	work := s.state.clone()
	if err := fn(&txRepositories{handle{tx: work}}); err != nil {
		return err
	}
	s.state = work
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}

// handle runs operations either directly on the store, under its lock, or
// on a transaction's private copy.
type handle struct {
	store *Store
	tx    *state
}

func (h handle) do(ctx context.Context, fn func(st *state) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if h.tx != nil {
		return fn(h.tx)
	}
	h.store.mu.Lock()
	defer h.store.mu.Unlock()
	return fn(h.store.state)
}

type txRepositories struct {
	handle
}

func (t *txRepositories) Wishlists() repository.WishlistRepository {
	return &wishlistRepository{t.handle}
}

func (t *txRepositories) Items() repository.ItemRepository {
	return &itemRepository{t.handle}
}

type wishlistRepository struct {
	handle
}

func (r *wishlistRepository) Create(ctx context.Context, w *models.Wishlist) (*models.Wishlist, error) {
	err := r.do(ctx, func(st *state) error {
		st.nextWishlistID++
		w.ID = st.nextWishlistID
		st.wishlists[w.ID] = copyWishlist(w)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return w, nil
}

func (r *wishlistRepository) Update(ctx context.Context, w *models.Wishlist) (*models.Wishlist, error) {
	err := r.do(ctx, func(st *state) error {
		if _, ok := st.wishlists[w.ID]; !ok {
			return fmt.Errorf("wishlist with ID %d: %w", w.ID, repository.ErrNotFound)
		}
		st.wishlists[w.ID] = copyWishlist(w)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return w, nil
}

func (r *wishlistRepository) Delete(ctx context.Context, id int64) error {
	return r.do(ctx, func(st *state) error {
		if _, ok := st.wishlists[id]; !ok {
			return fmt.Errorf("wishlist with ID %d: %w", id, repository.ErrNotFound)
		}
		delete(st.wishlists, id)
		for itemID, item := range st.items {
			if item.WishlistID == id {
				delete(st.items, itemID)
			}
		}
		return nil
	})
}

func (r *wishlistRepository) DeleteAll(ctx context.Context) error {
	return r.do(ctx, func(st *state) error {
		st.wishlists = make(map[int64]*models.Wishlist)
		st.items = make(map[int64]*models.Item)
		return nil
	})
}

func (r *wishlistRepository) Find(ctx context.Context, id int64) (*models.Wishlist, error) {
	var found *models.Wishlist
	err := r.do(ctx, func(st *state) error {
		if w, ok := st.wishlists[id]; ok {
			found = copyWishlist(w)
		}
		return nil
	})
	return found, err
}

func (r *wishlistRepository) FindByName(ctx context.Context, name string) ([]*models.Wishlist, error) {
	return r.filter(ctx, func(w *models.Wishlist) bool {
		return w.Name != nil && *w.Name == name
	})
}

func (r *wishlistRepository) All(ctx context.Context) ([]*models.Wishlist, error) {
	return r.filter(ctx, func(*models.Wishlist) bool { return true })
}

func (r *wishlistRepository) filter(ctx context.Context, keep func(*models.Wishlist) bool) ([]*models.Wishlist, error) {
	lists := []*models.Wishlist{}
	err := r.do(ctx, func(st *state) error {
		for _, w := range st.wishlists {
			if keep(w) {
				lists = append(lists, copyWishlist(w))
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(lists, func(i, j int) bool { return lists[i].ID < lists[j].ID })
	return lists, nil
}

type itemRepository struct {
	handle
}

func (r *itemRepository) Create(ctx context.Context, item *models.Item) (*models.Item, error) {
	err := r.do(ctx, func(st *state) error {
		if _, ok := st.wishlists[item.WishlistID]; !ok {
			return fmt.Errorf("wishlist with ID %d does not exist: %w", item.WishlistID, repository.ErrConstraint)
		}
		st.nextItemID++
		item.ID = st.nextItemID
		st.items[item.ID] = copyItem(item)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (r *itemRepository) Update(ctx context.Context, item *models.Item) (*models.Item, error) {
	err := r.do(ctx, func(st *state) error {
		if _, ok := st.items[item.ID]; !ok {
			return fmt.Errorf("item with ID %d: %w", item.ID, repository.ErrNotFound)
		}
		if _, ok := st.wishlists[item.WishlistID]; !ok {
			return fmt.Errorf("wishlist with ID %d does not exist: %w", item.WishlistID, repository.ErrConstraint)
		}
		st.items[item.ID] = copyItem(item)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (r *itemRepository) Delete(ctx context.Context, id int64) error {
	return r.do(ctx, func(st *state) error {
		if _, ok := st.items[id]; !ok {
			return fmt.Errorf("item with ID %d: %w", id, repository.ErrNotFound)
		}
		delete(st.items, id)
		return nil
	})
}

func (r *itemRepository) Find(ctx context.Context, id int64) (*models.Item, error) {
	var found *models.Item
	err := r.do(ctx, func(st *state) error {
		if item, ok := st.items[id]; ok {
			found = copyItem(item)
		}
		return nil
	})
	return found, err
}

func (r *itemRepository) FindByWishlist(ctx context.Context, wishlistID int64) ([]*models.Item, error) {
	items := []*models.Item{}
	err := r.do(ctx, func(st *state) error {
		for _, item := range st.items {
			if item.WishlistID == wishlistID {
				items = append(items, copyItem(item))
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items, nil
}

func copyWishlist(w *models.Wishlist) *models.Wishlist {
	c := *w
	c.Name = copyPtr(w.Name)
	c.ItemID = copyPtr(w.ItemID)
	c.ItemName = copyPtr(w.ItemName)
	c.Quantity = copyPtr(w.Quantity)
	c.Note = copyPtr(w.Note)
	return &c
}

func copyItem(item *models.Item) *models.Item {
	c := *item
	return &c
}

func copyPtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
