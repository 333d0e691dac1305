package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kerhoff/wishlists/internal/models"
	"github.com/Kerhoff/wishlists/internal/repository"
	"github.com/Kerhoff/wishlists/internal/repository/memory"
	"github.com/Kerhoff/wishlists/internal/repository/repotest"
	"github.com/Kerhoff/wishlists/pkg/logger"
)

var fixedNow = time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC)

func newService(store repository.Store) *Service {
	svc := New(store, logger.Discard())
	svc.now = func() time.Time { return fixedNow }
	return svc
}

// brokenStore fails every transaction as an unreachable database would.
type brokenStore struct {
	repository.Store
	err error
}

func (b *brokenStore) WithTx(context.Context, func(repository.Repositories) error) error {
	return b.err
}

func TestCreateWishlist_ThenFind(t *testing.T) {
	ctx := context.Background()
	svc := newService(memory.New())

	in := repotest.NewWishlist("Gifts")
	created, err := svc.CreateWishlist(ctx, in)
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	got, err := svc.FindWishlist(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, created.Serialize(), got.Serialize())
}

func TestCreateWishlist_StampsMissingTime(t *testing.T) {
	svc := newService(memory.New())

	w := repotest.NewWishlist("Gifts")
	w.UpdatedTime = time.Time{}
	created, err := svc.CreateWishlist(context.Background(), w)
	require.NoError(t, err)
	assert.Equal(t, fixedNow, created.UpdatedTime)
}

func TestCreateWishlist_KeepsGivenTime(t *testing.T) {
	svc := newService(memory.New())

	w := repotest.NewWishlist("Gifts")
	created, err := svc.CreateWishlist(context.Background(), w)
	require.NoError(t, err)
	assert.Equal(t, "Mon, 01 Jan 2024 00:00:00 GMT", created.Serialize()["updated_time"])
}

func TestCreateWishlist_RejectsPresetID(t *testing.T) {
	svc := newService(memory.New())

	w := repotest.NewWishlist("Gifts")
	w.ID = 10
	_, err := svc.CreateWishlist(context.Background(), w)

	var verr *models.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, models.KindConstraint, verr.Kind)
}

func TestCreateWishlist_WrapsStoreFailure(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	svc := newService(&brokenStore{Store: memory.New(), err: cause})

	w := repotest.NewWishlist("Gifts")
	_, err := svc.CreateWishlist(context.Background(), w)
	require.Error(t, err)

	var verr *models.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, models.KindPersistence, verr.Kind)
	assert.ErrorIs(t, err, cause)
	assert.Zero(t, w.ID)
}

func TestCreateWishlist_ValidatesLengths(t *testing.T) {
	store := memory.New()
	svc := newService(store)

	long := make([]byte, models.MaxNameLength+1)
	for i := range long {
		long[i] = 'a'
	}
	w := repotest.NewWishlist(string(long))
	_, err := svc.CreateWishlist(context.Background(), w)

	var verr *models.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, models.KindConstraint, verr.Kind)

	all, err := svc.AllWishlists(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestUpdateWishlist(t *testing.T) {
	ctx := context.Background()
	svc := newService(memory.New())

	w, err := svc.CreateWishlist(ctx, repotest.NewWishlist("Gifts"))
	require.NoError(t, err)

	renamed := "Birthday"
	w.Name = &renamed
	_, err = svc.UpdateWishlist(ctx, w)
	require.NoError(t, err)

	got, err := svc.FindWishlist(ctx, w.ID)
	require.NoError(t, err)
	assert.Equal(t, "Birthday", *got.Name)
	assert.Equal(t, fixedNow, got.UpdatedTime)
}

func TestUpdateWishlist_RequiresID(t *testing.T) {
	svc := newService(memory.New())

	_, err := svc.UpdateWishlist(context.Background(), repotest.NewWishlist("Gifts"))
	var verr *models.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "Update called with empty ID field", verr.Error())
}

func TestUpdateWishlist_Missing(t *testing.T) {
	svc := newService(memory.New())

	w := repotest.NewWishlist("Gifts")
	w.ID = 99
	_, err := svc.UpdateWishlist(context.Background(), w)
	assert.ErrorIs(t, err, ErrWishlistNotFound)
}

func TestDeleteWishlist_CascadesToItems(t *testing.T) {
	ctx := context.Background()
	svc := newService(memory.New())

	w, err := svc.CreateWishlist(ctx, repotest.NewWishlist("Gifts"))
	require.NoError(t, err)

	var items []*models.Item
	for _, name := range []string{"Mug", "Pen"} {
		item, err := svc.CreateItem(ctx, &models.Item{WishlistID: w.ID, ItemName: name, Quantity: 1})
		require.NoError(t, err)
		items = append(items, item)
	}

	require.NoError(t, svc.DeleteWishlist(ctx, w.ID))

	for _, item := range items {
		got, err := svc.FindItem(ctx, w.ID, item.ID)
		require.NoError(t, err)
		assert.Nil(t, got)
	}
	assert.ErrorIs(t, svc.DeleteWishlist(ctx, w.ID), ErrWishlistNotFound)
}

func TestFindWishlistsByName_Exact(t *testing.T) {
	ctx := context.Background()
	svc := newService(memory.New())

	_, err := svc.CreateWishlist(ctx, repotest.NewWishlist("Books"))
	require.NoError(t, err)
	_, err = svc.CreateWishlist(ctx, repotest.NewWishlist("book"))
	require.NoError(t, err)

	found, err := svc.FindWishlistsByName(ctx, "Books")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Books", *found[0].Name)
}

func TestDeleteAllWishlists(t *testing.T) {
	ctx := context.Background()
	svc := newService(memory.New())

	_, err := svc.CreateWishlist(ctx, repotest.NewWishlist("One"))
	require.NoError(t, err)
	require.NoError(t, svc.DeleteAllWishlists(ctx))

	all, err := svc.AllWishlists(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestItems(t *testing.T) {
	ctx := context.Background()
	svc := newService(memory.New())

	gifts, err := svc.CreateWishlist(ctx, repotest.NewWishlist("Gifts"))
	require.NoError(t, err)
	other, err := svc.CreateWishlist(ctx, repotest.NewWishlist("Other"))
	require.NoError(t, err)

	item, err := svc.CreateItem(ctx, &models.Item{WishlistID: gifts.ID, ItemName: "Mug", Quantity: 2})
	require.NoError(t, err)

	items, err := svc.ListItems(ctx, gifts.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, item.ID, items[0].ID)

	items, err = svc.ListItems(ctx, other.ID)
	require.NoError(t, err)
	assert.Empty(t, items)

	_, err = svc.ListItems(ctx, 999)
	assert.ErrorIs(t, err, ErrWishlistNotFound)

	got, err := svc.FindItem(ctx, other.ID, item.ID)
	require.NoError(t, err)
	assert.Nil(t, got, "item must not be visible through another wishlist")

	item.Quantity = 7
	_, err = svc.UpdateItem(ctx, item)
	require.NoError(t, err)
	got, err = svc.FindItem(ctx, gifts.ID, item.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, int64(7), got.Quantity)

	moved := *item
	moved.WishlistID = other.ID
	_, err = svc.UpdateItem(ctx, &moved)
	assert.ErrorIs(t, err, ErrItemNotFound)

	assert.ErrorIs(t, svc.DeleteItem(ctx, other.ID, item.ID), ErrItemNotFound)
	require.NoError(t, svc.DeleteItem(ctx, gifts.ID, item.ID))
	assert.ErrorIs(t, svc.DeleteItem(ctx, gifts.ID, item.ID), ErrItemNotFound)
}

func TestCreateItem_MissingWishlist(t *testing.T) {
	svc := newService(memory.New())

	item := &models.Item{WishlistID: 42, ItemName: "Mug", Quantity: 1}
	_, err := svc.CreateItem(context.Background(), item)
	assert.ErrorIs(t, err, ErrWishlistNotFound)
	assert.Zero(t, item.ID)
}

func TestCreateItem_Validates(t *testing.T) {
	svc := newService(memory.New())

	_, err := svc.CreateItem(context.Background(), &models.Item{WishlistID: 1, Quantity: 1})
	var verr *models.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Error(), "item_name is required")
}

func TestOutcome(t *testing.T) {
	assert.Equal(t, "ok", outcome(nil))
	assert.Equal(t, "not_found", outcome(ErrItemNotFound))
	assert.Equal(t, "persistence", outcome(models.NewPersistenceError(errors.New("x"))))
	assert.Equal(t, "error", outcome(errors.New("x")))
}
