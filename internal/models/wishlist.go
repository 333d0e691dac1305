package models

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/hashicorp/go-multierror"
)

const (
	// MaxNameLength bounds wishlist names and item names.
	MaxNameLength = 100
	// MaxNoteLength bounds notes on wishlists and items.
	MaxNoteLength = 1000
)

const wishlistPrefix = "Invalid Wishlist"

// Wishlist is a named collection of items. ItemID, ItemName and Quantity
// describe an optional default item stored on the wishlist row itself.
type Wishlist struct {
	ID          int64     `json:"id" db:"id"`
	Name        *string   `json:"name" db:"name"`
	ItemID      *int64    `json:"item_id" db:"item_id"`
	ItemName    *string   `json:"item_name" db:"item_name"`
	Quantity    *int64    `json:"quantity" db:"quantity"`
	UpdatedTime time.Time `json:"updated_time" db:"updated_time"`
	Note        *string   `json:"note" db:"note"`
}

func (w *Wishlist) String() string {
	name := ""
	if w.Name != nil {
		name = *w.Name
	}
	return fmt.Sprintf("<Wishlist %s id=[%d]>", name, w.ID)
}

// Serialize returns every field of the wishlist as a flat mapping.
func (w *Wishlist) Serialize() map[string]any {
	return map[string]any{
		"id":           w.ID,
		"name":         optional(w.Name),
		"item_id":      optional(w.ItemID),
		"item_name":    optional(w.ItemName),
		"quantity":     optional(w.Quantity),
		"updated_time": FormatTime(w.UpdatedTime),
		"note":         optional(w.Note),
	}
}

// Deserialize populates the wishlist from a mapping shaped like the output
// of Serialize. The id key is ignored. Every other key must be present,
// although its value may be null.
func (w *Wishlist) Deserialize(data any) error {
	m, ok := data.(map[string]any)
	if !ok {
		return badDataError(wishlistPrefix, data)
	}
	f := fields(m)

	name, err := f.optionalString(wishlistPrefix, "name")
	if err != nil {
		return err
	}
	itemID, err := f.optionalInt(wishlistPrefix, "item_id")
	if err != nil {
		return err
	}
	itemName, err := f.optionalString(wishlistPrefix, "item_name")
	if err != nil {
		return err
	}
	quantity, err := f.optionalInt(wishlistPrefix, "quantity")
	if err != nil {
		return err
	}
	updated, err := f.optionalTime(wishlistPrefix, "updated_time")
	if err != nil {
		return err
	}
	note, err := f.optionalString(wishlistPrefix, "note")
	if err != nil {
		return err
	}

	w.Name = name
	w.ItemID = itemID
	w.ItemName = itemName
	w.Quantity = quantity
	w.UpdatedTime = updated
	w.Note = note
	return nil
}

// Validate checks field lengths and that updated_time is set.
func (w *Wishlist) Validate() error {
	var errs *multierror.Error
	if w.Name != nil && utf8.RuneCountInString(*w.Name) > MaxNameLength {
		errs = multierror.Append(errs, fmt.Errorf("name exceeds %d characters", MaxNameLength))
	}
	if w.ItemName != nil && utf8.RuneCountInString(*w.ItemName) > MaxNameLength {
		errs = multierror.Append(errs, fmt.Errorf("item_name exceeds %d characters", MaxNameLength))
	}
	if w.Note != nil && utf8.RuneCountInString(*w.Note) > MaxNoteLength {
		errs = multierror.Append(errs, fmt.Errorf("note exceeds %d characters", MaxNoteLength))
	}
	if w.UpdatedTime.IsZero() {
		errs = multierror.Append(errs, fmt.Errorf("updated_time is required"))
	}
	return constraintErrors(wishlistPrefix, errs)
}
