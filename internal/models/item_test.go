package models

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestItem_Deserialize(t *testing.T) {
	var item Item
	require.NoError(t, item.Deserialize(decode(t, `{"item_name":"Mug","quantity":3,"note":"blue"}`)))

	assert.Equal(t, "Mug", item.ItemName)
	assert.Equal(t, int64(3), item.Quantity)
	assert.Equal(t, "blue", item.Note)
}

func TestItem_DeserializeDefaultsNote(t *testing.T) {
	var item Item
	require.NoError(t, item.Deserialize(decode(t, `{"item_name":"Mug","quantity":3}`)))
	assert.Equal(t, "", item.Note)

	require.NoError(t, item.Deserialize(decode(t, `{"item_name":"Mug","quantity":3,"note":null}`)))
	assert.Equal(t, "", item.Note)
}

func TestItem_DeserializeIgnoresIdentity(t *testing.T) {
	item := Item{ID: 9, WishlistID: 2}
	require.NoError(t, item.Deserialize(decode(t, `{"id":100,"wishlist_id":100,"item_name":"Mug","quantity":1}`)))

	assert.Equal(t, int64(9), item.ID)
	assert.Equal(t, int64(2), item.WishlistID)
}

func TestItem_DeserializeErrors(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		kind    ErrorKind
		message string
	}{
		{"missing quantity", `{"item_name":"Mug"}`, KindMissingKey, "Invalid Items in the Wishlist: missing quantity"},
		{"missing item_name", `{"quantity":1}`, KindMissingKey, "Invalid Items in the Wishlist: missing item_name"},
		{"not an object", `"Mug"`, KindBadData, "Invalid Items in the Wishlist: body of request contained bad or no data (expected a JSON object, got string)"},
		{"null quantity", `{"item_name":"Mug","quantity":null}`, KindInvalidAttribute, "Invalid attribute: quantity"},
		{"numeric name", `{"item_name":5,"quantity":1}`, KindInvalidAttribute, "Invalid attribute: item_name"},
		{"numeric note", `{"item_name":"Mug","quantity":1,"note":5}`, KindInvalidAttribute, "Invalid attribute: note"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var item Item
			err := item.Deserialize(decode(t, tt.body))

			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.kind, verr.Kind)
			assert.Equal(t, tt.message, verr.Error())
		})
	}
}

func TestItem_SerializeRoundTrip(t *testing.T) {
	var item Item
	require.NoError(t, item.Deserialize(decode(t, `{"item_name":"Mug","quantity":2,"note":"gift"}`)))
	item.ID = 5
	item.WishlistID = 1

	assert.Equal(t, map[string]any{
		"id":          int64(5),
		"wishlist_id": int64(1),
		"item_name":   "Mug",
		"quantity":    int64(2),
		"note":        "gift",
	}, item.Serialize())
}

func TestItem_Validate(t *testing.T) {
	assert.NoError(t, (&Item{WishlistID: 1, ItemName: "Mug", Quantity: 1}).Validate())

	err := (&Item{ItemName: strings.Repeat("m", MaxNameLength+1)}).Validate()
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, KindConstraint, verr.Kind)
	assert.Contains(t, verr.Error(), "wishlist_id is required")
	assert.Contains(t, verr.Error(), "item_name exceeds 100 characters")
}
