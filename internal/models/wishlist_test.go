package models

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func giftsMapping() map[string]any {
	return map[string]any{
		"name":         "Gifts",
		"item_id":      json.Number("1"),
		"item_name":    "Mug",
		"quantity":     json.Number("2"),
		"updated_time": "Mon, 01 Jan 2024 00:00:00 GMT",
		"note":         "",
	}
}

func decode(t *testing.T, body string) any {
	t.Helper()
	dec := json.NewDecoder(strings.NewReader(body))
	dec.UseNumber()
	var v any
	require.NoError(t, dec.Decode(&v))
	return v
}

func TestWishlist_Deserialize(t *testing.T) {
	var w Wishlist
	require.NoError(t, w.Deserialize(giftsMapping()))

	require.NotNil(t, w.Name)
	assert.Equal(t, "Gifts", *w.Name)
	require.NotNil(t, w.ItemID)
	assert.Equal(t, int64(1), *w.ItemID)
	require.NotNil(t, w.ItemName)
	assert.Equal(t, "Mug", *w.ItemName)
	require.NotNil(t, w.Quantity)
	assert.Equal(t, int64(2), *w.Quantity)
	assert.Equal(t, time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC), w.UpdatedTime)
	require.NotNil(t, w.Note)
	assert.Equal(t, "", *w.Note)
	assert.Zero(t, w.ID)
}

func TestWishlist_DeserializeNulls(t *testing.T) {
	var w Wishlist
	err := w.Deserialize(decode(t, `{"name":null,"item_id":null,"item_name":null,"quantity":null,"updated_time":null,"note":null}`))
	require.NoError(t, err)

	assert.Nil(t, w.Name)
	assert.Nil(t, w.ItemID)
	assert.Nil(t, w.ItemName)
	assert.Nil(t, w.Quantity)
	assert.True(t, w.UpdatedTime.IsZero())
	assert.Nil(t, w.Note)
}

func TestWishlist_SerializeRoundTrip(t *testing.T) {
	in := giftsMapping()

	var w Wishlist
	require.NoError(t, w.Deserialize(in))
	out := w.Serialize()

	assert.Equal(t, "Gifts", out["name"])
	assert.Equal(t, int64(1), out["item_id"])
	assert.Equal(t, "Mug", out["item_name"])
	assert.Equal(t, int64(2), out["quantity"])
	assert.Equal(t, in["updated_time"], out["updated_time"])
	assert.Equal(t, "", out["note"])
	assert.Contains(t, out, "id")
}

func TestWishlist_SerializeNullTime(t *testing.T) {
	w := Wishlist{ID: 3}
	out := w.Serialize()

	v, ok := out["updated_time"]
	require.True(t, ok)
	assert.Nil(t, v)
	assert.Nil(t, out["name"])
}

func TestWishlist_SerializeConvertsToUTC(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	w := Wishlist{UpdatedTime: time.Date(2024, time.March, 5, 14, 30, 0, 0, loc)}

	assert.Equal(t, "Tue, 05 Mar 2024 12:30:00 GMT", w.Serialize()["updated_time"])
}

func TestWishlist_DeserializeErrors(t *testing.T) {
	tests := []struct {
		name    string
		data    any
		kind    ErrorKind
		key     string
		message string
	}{
		{
			name: "missing quantity",
			data: func() any {
				m := giftsMapping()
				delete(m, "quantity")
				return m
			}(),
			kind:    KindMissingKey,
			key:     "quantity",
			message: "Invalid Wishlist: missing quantity",
		},
		{
			name: "missing note",
			data: func() any {
				m := giftsMapping()
				delete(m, "note")
				return m
			}(),
			kind:    KindMissingKey,
			key:     "note",
			message: "Invalid Wishlist: missing note",
		},
		{
			name:    "array body",
			data:    []any{"Gifts"},
			kind:    KindBadData,
			message: "Invalid Wishlist: body of request contained bad or no data (expected a JSON object, got array)",
		},
		{
			name:    "no body",
			data:    nil,
			kind:    KindBadData,
			message: "Invalid Wishlist: body of request contained bad or no data (expected a JSON object, got null)",
		},
		{
			name: "quantity is a string",
			data: func() any {
				m := giftsMapping()
				m["quantity"] = "two"
				return m
			}(),
			kind:    KindInvalidAttribute,
			key:     "quantity",
			message: "Invalid attribute: quantity",
		},
		{
			name: "fractional item_id",
			data: func() any {
				m := giftsMapping()
				m["item_id"] = json.Number("1.5")
				return m
			}(),
			kind:    KindInvalidAttribute,
			key:     "item_id",
			message: "Invalid attribute: item_id",
		},
		{
			name: "unparsable updated_time",
			data: func() any {
				m := giftsMapping()
				m["updated_time"] = "yesterday"
				return m
			}(),
			kind:    KindInvalidAttribute,
			key:     "updated_time",
			message: "Invalid attribute: updated_time",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var w Wishlist
			err := w.Deserialize(tt.data)
			require.Error(t, err)

			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.kind, verr.Kind)
			assert.Equal(t, tt.key, verr.Key)
			assert.Equal(t, tt.message, verr.Error())
		})
	}
}

func TestWishlist_DeserializeAcceptsRFC3339(t *testing.T) {
	m := giftsMapping()
	m["updated_time"] = "2024-01-01T02:00:00+02:00"

	var w Wishlist
	require.NoError(t, w.Deserialize(m))
	assert.Equal(t, "Mon, 01 Jan 2024 00:00:00 GMT", w.Serialize()["updated_time"])
}

func TestWishlist_Validate(t *testing.T) {
	name := strings.Repeat("n", MaxNameLength+1)
	note := strings.Repeat("x", MaxNoteLength+1)
	w := Wishlist{Name: &name, Note: &note}

	err := w.Validate()
	require.Error(t, err)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, KindConstraint, verr.Kind)
	assert.Contains(t, verr.Error(), "name exceeds 100 characters")
	assert.Contains(t, verr.Error(), "note exceeds 1000 characters")
	assert.Contains(t, verr.Error(), "updated_time is required")

	ok := "Gifts"
	valid := Wishlist{Name: &ok, UpdatedTime: time.Now()}
	assert.NoError(t, valid.Validate())
}

func TestWishlist_String(t *testing.T) {
	name := "Gifts"
	w := Wishlist{ID: 4, Name: &name}
	assert.Equal(t, "<Wishlist Gifts id=[4]>", w.String())
}
