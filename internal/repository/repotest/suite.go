// Package repotest holds a compliance suite every repository.Store
// implementation must pass.
package repotest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kerhoff/wishlists/internal/models"
	"github.com/Kerhoff/wishlists/internal/repository"
)

// Run exercises the store returned by makeStore. makeStore must return an
// empty store.
func Run(t *testing.T, makeStore func(t *testing.T) repository.Store) {
	t.Helper()

	tests := []struct {
		name string
		fn   func(t *testing.T, s repository.Store)
	}{
		{"CreateAndFind", testCreateAndFind},
		{"FindMissing", testFindMissing},
		{"Update", testUpdate},
		{"UpdateMissing", testUpdateMissing},
		{"FindByName", testFindByName},
		{"All", testAll},
		{"DeleteCascadesToItems", testDeleteCascades},
		{"ItemLifecycle", testItemLifecycle},
		{"ItemRequiresWishlist", testItemRequiresWishlist},
		{"RollbackOnError", testRollbackOnError},
		{"RollbackOnPanic", testRollbackOnPanic},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.fn(t, makeStore(t))
		})
	}
}

func ptr[T any](v T) *T { return &v }

// NewWishlist returns a transient wishlist with every field populated.
func NewWishlist(name string) *models.Wishlist {
	return &models.Wishlist{
		Name:        ptr(name),
		ItemID:      ptr(int64(1)),
		ItemName:    ptr("Mug"),
		Quantity:    ptr(int64(2)),
		UpdatedTime: time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
		Note:        ptr("for the office"),
	}
}

func create(t *testing.T, s repository.Store, w *models.Wishlist) *models.Wishlist {
	t.Helper()
	created, err := s.Wishlists().Create(context.Background(), w)
	require.NoError(t, err)
	require.NotZero(t, created.ID)
	return created
}

func testCreateAndFind(t *testing.T, s repository.Store) {
	ctx := context.Background()
	w := create(t, s, NewWishlist("Gifts"))

	got, err := s.Wishlists().Find(ctx, w.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, w.ID, got.ID)
	assert.Equal(t, *w.Name, *got.Name)
	assert.Equal(t, *w.ItemID, *got.ItemID)
	assert.Equal(t, *w.ItemName, *got.ItemName)
	assert.Equal(t, *w.Quantity, *got.Quantity)
	assert.True(t, w.UpdatedTime.Equal(got.UpdatedTime))
	assert.Equal(t, *w.Note, *got.Note)

	sparse := create(t, s, &models.Wishlist{UpdatedTime: time.Now().UTC()})
	got, err = s.Wishlists().Find(ctx, sparse.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Nil(t, got.Name)
	assert.Nil(t, got.ItemID)
	assert.Nil(t, got.Quantity)
	assert.Nil(t, got.Note)
}

func testFindMissing(t *testing.T, s repository.Store) {
	ctx := context.Background()

	w, err := s.Wishlists().Find(ctx, 424242)
	assert.NoError(t, err)
	assert.Nil(t, w)

	item, err := s.Items().Find(ctx, 424242)
	assert.NoError(t, err)
	assert.Nil(t, item)
}

func testUpdate(t *testing.T, s repository.Store) {
	ctx := context.Background()
	w := create(t, s, NewWishlist("Gifts"))

	w.Name = ptr("Birthday")
	w.Quantity = nil
	_, err := s.Wishlists().Update(ctx, w)
	require.NoError(t, err)

	got, err := s.Wishlists().Find(ctx, w.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Birthday", *got.Name)
	assert.Nil(t, got.Quantity)
}

func testUpdateMissing(t *testing.T, s repository.Store) {
	w := NewWishlist("Ghost")
	w.ID = 424242

	_, err := s.Wishlists().Update(context.Background(), w)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	err = s.Wishlists().Delete(context.Background(), 424242)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func testFindByName(t *testing.T, s repository.Store) {
	ctx := context.Background()
	books := create(t, s, NewWishlist("Books"))
	create(t, s, NewWishlist("book"))
	create(t, s, NewWishlist("Books and more"))

	found, err := s.Wishlists().FindByName(ctx, "Books")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, books.ID, found[0].ID)

	none, err := s.Wishlists().FindByName(ctx, "Nothing")
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func testAll(t *testing.T, s repository.Store) {
	ctx := context.Background()

	all, err := s.Wishlists().All(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	create(t, s, NewWishlist("One"))
	create(t, s, NewWishlist("Two"))

	all, err = s.Wishlists().All(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func testDeleteCascades(t *testing.T, s repository.Store) {
	ctx := context.Background()
	w := create(t, s, NewWishlist("Gifts"))
	other := create(t, s, NewWishlist("Other"))

	var ids []int64
	for _, name := range []string{"Mug", "Pen", "Lamp"} {
		item, err := s.Items().Create(ctx, &models.Item{WishlistID: w.ID, ItemName: name, Quantity: 1})
		require.NoError(t, err)
		ids = append(ids, item.ID)
	}
	kept, err := s.Items().Create(ctx, &models.Item{WishlistID: other.ID, ItemName: "Book", Quantity: 1})
	require.NoError(t, err)

	require.NoError(t, s.Wishlists().Delete(ctx, w.ID))

	for _, id := range ids {
		item, err := s.Items().Find(ctx, id)
		require.NoError(t, err)
		assert.Nil(t, item, "item %d survived its wishlist", id)
	}
	got, err := s.Items().Find(ctx, kept.ID)
	require.NoError(t, err)
	assert.NotNil(t, got)
}

func testItemLifecycle(t *testing.T, s repository.Store) {
	ctx := context.Background()
	w := create(t, s, NewWishlist("Gifts"))

	item, err := s.Items().Create(ctx, &models.Item{WishlistID: w.ID, ItemName: "Mug", Quantity: 2})
	require.NoError(t, err)
	require.NotZero(t, item.ID)

	items, err := s.Items().FindByWishlist(ctx, w.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Mug", items[0].ItemName)
	assert.Equal(t, "", items[0].Note)

	item.Quantity = 5
	item.Note = "blue"
	_, err = s.Items().Update(ctx, item)
	require.NoError(t, err)

	got, err := s.Items().Find(ctx, item.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, int64(5), got.Quantity)
	assert.Equal(t, "blue", got.Note)

	require.NoError(t, s.Items().Delete(ctx, item.ID))
	got, err = s.Items().Find(ctx, item.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	assert.ErrorIs(t, s.Items().Delete(ctx, item.ID), repository.ErrNotFound)
}

func testItemRequiresWishlist(t *testing.T, s repository.Store) {
	_, err := s.Items().Create(context.Background(), &models.Item{WishlistID: 424242, ItemName: "Mug", Quantity: 1})
	assert.ErrorIs(t, err, repository.ErrConstraint)
}

func testRollbackOnError(t *testing.T, s repository.Store) {
	ctx := context.Background()
	boom := errors.New("boom")

	err := s.WithTx(ctx, func(tx repository.Repositories) error {
		if _, err := tx.Wishlists().Create(ctx, NewWishlist("Doomed")); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	found, err := s.Wishlists().FindByName(ctx, "Doomed")
	require.NoError(t, err)
	assert.Empty(t, found)

	err = s.WithTx(ctx, func(tx repository.Repositories) error {
		_, err := tx.Wishlists().Create(ctx, NewWishlist("Kept"))
		return err
	})
	require.NoError(t, err)

	found, err = s.Wishlists().FindByName(ctx, "Kept")
	require.NoError(t, err)
	assert.Len(t, found, 1)
}

func testRollbackOnPanic(t *testing.T, s repository.Store) {
	ctx := context.Background()

	assert.Panics(t, func() {
		_ = s.WithTx(ctx, func(tx repository.Repositories) error {
			if _, err := tx.Wishlists().Create(ctx, NewWishlist("Panicked")); err != nil {
				return err
			}
			panic("boom")
		})
	})

	found, err := s.Wishlists().FindByName(ctx, "Panicked")
	require.NoError(t, err)
	assert.Empty(t, found)
}
