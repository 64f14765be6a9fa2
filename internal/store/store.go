// ABOUTME: Store interface and data types for to-do item persistence
// ABOUTME: Defines the Item struct, merge patches, and the Store interface

package store

import (
	"context"
	"errors"
)

// ErrNotFound is returned when no item matches a requested uid
var ErrNotFound = errors.New("item not found")

// Item represents a single to-do item.
// Description is a pointer so an absent description round-trips as JSON null,
// matching the nullable column in storage.
type Item struct {
	UID         int64   `json:"uid"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Completed   bool    `json:"completed"`
}

// ItemPatch describes a partial update to an item.
// Nil fields are left at their current stored values.
type ItemPatch struct {
	Name        *string
	Description *string
	Completed   *bool
}

// Store defines the interface for item persistence
type Store interface {
	// ListItems returns every stored item
	ListItems(ctx context.Context) ([]*Item, error)

	// GetItem retrieves an item by uid. Returns ErrNotFound if no row matches.
	GetItem(ctx context.Context, uid int64) (*Item, error)

	// CreateItem persists a new item and assigns its UID
	CreateItem(ctx context.Context, item *Item) error

	// UpdateItem replaces all mutable fields of the item matching item.UID.
	// Returns ErrNotFound if no row matches.
	UpdateItem(ctx context.Context, item *Item) error

	// PatchItem merges the patch over the stored item and returns the result.
	// Returns ErrNotFound if no row matches.
	PatchItem(ctx context.Context, uid int64, patch ItemPatch) (*Item, error)

	// DeleteItem removes the item matching uid. Returns ErrNotFound if no row matched.
	DeleteItem(ctx context.Context, uid int64) error

	// Close releases any resources held by the store
	Close() error
}
