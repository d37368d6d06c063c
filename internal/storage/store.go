// Package storage provides abstractions for persistent inventory storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/stockroom/internal/models"
)

// ErrNotFound is returned when a targeted entity does not exist. Callers
// can rely on it to distinguish "acted on nothing" from "succeeded".
var ErrNotFound = errors.New("not found")

// ErrUnavailable is returned when the storage backend cannot be reached.
// Only the read path recovers from it (by falling back to the seed
// dataset); write paths propagate it.
var ErrUnavailable = errors.New("storage unavailable")

// Store defines the persistence contract for the three inventory
// collections. This abstraction allows swapping storage backends without
// changing the service layer.
//
// Multi-collection methods (SaveItemAndBill, SaveItemAndUser, UpdateBill,
// UpdateUser) must apply all of their writes in a single transaction, so
// a partial failure can never leave the collections inconsistent.
type Store interface {
	// Load returns the full snapshot of all three collections.
	Load(ctx context.Context) (models.Snapshot, error)

	// GetItem retrieves one item with its sub-items.
	// Returns ErrNotFound if the ID is unknown.
	GetItem(ctx context.Context, id string) (*models.Item, error)

	// FindItemBySubItem retrieves the item owning the given sub-item ID.
	// Returns ErrNotFound if no item owns it.
	FindItemBySubItem(ctx context.Context, subItemID string) (*models.Item, error)

	// ItemNameExists reports whether an item with the given name exists,
	// compared case-insensitively.
	ItemNameExists(ctx context.Context, name string) (bool, error)

	// InsertItem persists a new item at the front of the list order.
	InsertItem(ctx context.Context, item *models.Item) error

	// SaveItem overwrites an existing item and its full sub-item list.
	// Returns ErrNotFound if the item does not exist.
	SaveItem(ctx context.Context, item *models.Item) error

	// DeleteItem removes an item and all of its sub-items.
	// Returns ErrNotFound if the item does not exist.
	DeleteItem(ctx context.Context, id string) error

	// GetBill retrieves a bill by number. Returns ErrNotFound if absent.
	GetBill(ctx context.Context, billNumber string) (*models.Bill, error)

	// SaveItemAndBill saves an item and upserts a bill in one
	// transaction. A nil bill saves the item alone.
	SaveItemAndBill(ctx context.Context, item *models.Item, bill *models.Bill) error

	// SaveItemAndUser saves an item and upserts a user in one
	// transaction.
	SaveItemAndUser(ctx context.Context, item *models.Item, user *models.User) error

	// UpdateBill replaces the bill stored under originalNumber. When the
	// number itself changed, every sub-item referencing the old number
	// is rewritten to the new one in the same transaction.
	// Returns ErrNotFound if no bill has originalNumber.
	UpdateBill(ctx context.Context, originalNumber string, bill models.Bill) error

	// GetUser retrieves a user by person ID. Returns ErrNotFound if
	// absent.
	GetUser(ctx context.Context, personID string) (*models.User, error)

	// UpdateUser replaces the user record and propagates name, phone and
	// department onto every assignment referencing the person ID, in one
	// transaction. Returns ErrNotFound if the user does not exist.
	UpdateUser(ctx context.Context, user models.User) error

	// ReplaceItems, ReplaceBills and ReplaceUsers overwrite an entire
	// collection. Used by seeding, legacy migration and snapshot import.
	ReplaceItems(ctx context.Context, items []models.Item) error
	ReplaceBills(ctx context.Context, bills []models.Bill) error
	ReplaceUsers(ctx context.Context, users []models.User) error

	// Close releases any resources held by the store.
	Close() error
}
