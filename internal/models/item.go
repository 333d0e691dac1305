package models

import (
	"fmt"
	"unicode/utf8"

	"github.com/hashicorp/go-multierror"
)

const itemPrefix = "Invalid Items in the Wishlist"

// Item is a single product entry owned by exactly one wishlist.
type Item struct {
	ID         int64  `json:"id" db:"id"`
	WishlistID int64  `json:"wishlist_id" db:"wishlist_id"`
	ItemName   string `json:"item_name" db:"item_name"`
	Quantity   int64  `json:"quantity" db:"quantity"`
	Note       string `json:"note" db:"note"`
}

func (i *Item) String() string {
	return fmt.Sprintf("<Item %s in Wishlist %d>", i.ItemName, i.WishlistID)
}

// Serialize returns every field of the item as a flat mapping.
func (i *Item) Serialize() map[string]any {
	return map[string]any{
		"id":          i.ID,
		"wishlist_id": i.WishlistID,
		"item_name":   i.ItemName,
		"quantity":    i.Quantity,
		"note":        i.Note,
	}
}

// Deserialize populates the item from a mapping. item_name and quantity are
// required; note defaults to the empty string. The owning wishlist is taken
// from the request path, never from the body.
func (i *Item) Deserialize(data any) error {
	m, ok := data.(map[string]any)
	if !ok {
		return badDataError(itemPrefix, data)
	}
	f := fields(m)

	name, err := f.requiredString(itemPrefix, "item_name")
	if err != nil {
		return err
	}
	quantity, err := f.requiredInt(itemPrefix, "quantity")
	if err != nil {
		return err
	}
	note := ""
	if _, ok := m["note"]; ok {
		n, err := f.optionalString(itemPrefix, "note")
		if err != nil {
			return err
		}
		if n != nil {
			note = *n
		}
	}

	i.ItemName = name
	i.Quantity = quantity
	i.Note = note
	return nil
}

// Validate checks the required fields and length limits.
func (i *Item) Validate() error {
	var errs *multierror.Error
	if i.WishlistID == 0 {
		errs = multierror.Append(errs, fmt.Errorf("wishlist_id is required"))
	}
	if i.ItemName == "" {
		errs = multierror.Append(errs, fmt.Errorf("item_name is required"))
	}
	if utf8.RuneCountInString(i.ItemName) > MaxNameLength {
		errs = multierror.Append(errs, fmt.Errorf("item_name exceeds %d characters", MaxNameLength))
	}
	if utf8.RuneCountInString(i.Note) > MaxNoteLength {
		errs = multierror.Append(errs, fmt.Errorf("note exceeds %d characters", MaxNoteLength))
	}
	return constraintErrors(itemPrefix, errs)
}
