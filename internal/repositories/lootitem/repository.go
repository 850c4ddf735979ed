// Package lootitem provides persistence for generated loot items.
//
// Items are written once per content hash and never updated. Both
// implementations make insert-if-absent atomic in the store itself so two
// processes saving the same item end up with a single record.
package lootitem

//go:generate mockgen -destination=mock/mock_repository.go -package=lootitemmock github.com/KirkDiggler/rpg-loot/internal/repositories/lootitem Repository

import (
	"context"

	"github.com/KirkDiggler/rpg-loot/internal/entities/loot"
	"github.com/KirkDiggler/rpg-loot/internal/errors"
)

// Repository defines the interface for loot item persistence
type Repository interface {
	// InsertIfAbsent stores the item unless one with the same hash exists.
	// An existing item is returned unchanged with Created false.
	// Returns errors.InvalidArgument for a missing hash
	// Returns errors.Unavailable for storage failures
	InsertIfAbsent(ctx context.Context, input InsertIfAbsentInput) (*InsertIfAbsentOutput, error)

	// GetByID retrieves an item by its surrogate id
	// Returns errors.NotFound if no item has the id
	GetByID(ctx context.Context, input GetByIDInput) (*GetOutput, error)

	// GetByHash retrieves an item by its content hash
	// Returns errors.NotFound if no item has the hash
	GetByHash(ctx context.Context, input GetByHashInput) (*GetOutput, error)

	// ListByTier lists items of one tier, newest first
	ListByTier(ctx context.Context, input ListByTierInput) (*ListOutput, error)

	// ListBySetName lists items tagged with a set, newest first
	ListBySetName(ctx context.Context, input ListBySetNameInput) (*ListOutput, error)

	// ListAll lists every item, newest first
	ListAll(ctx context.Context, input ListAllInput) (*ListOutput, error)

	// CountAll returns the number of stored items
	CountAll(ctx context.Context, input CountAllInput) (*CountOutput, error)

	// CountByTier returns the number of stored items of one tier
	CountByTier(ctx context.Context, input CountByTierInput) (*CountOutput, error)
}

// InsertIfAbsentInput defines the input for storing an item
type InsertIfAbsentInput struct {
	Item loot.LootItem
	Hash string
}

// InsertIfAbsentOutput defines the output for storing an item
type InsertIfAbsentOutput struct {
	Item    *loot.StoredItem
	Created bool
}

// GetByIDInput defines the input for a lookup by id
type GetByIDInput struct {
	ID string
}

// GetByHashInput defines the input for a lookup by hash
type GetByHashInput struct {
	Hash string
}

// GetOutput defines the output for point lookups
type GetOutput struct {
	Item *loot.StoredItem
}

// ListByTierInput defines the input for listing one tier.
// A Limit of zero returns every match.
type ListByTierInput struct {
	Tier  loot.Tier
	Limit int
}

// ListBySetNameInput defines the input for listing one set
type ListBySetNameInput struct {
	SetName string
	Limit   int
}

// ListAllInput defines the input for listing every item
type ListAllInput struct {
	Limit int
}

// ListOutput defines the output for list operations
type ListOutput struct {
	Items []*loot.StoredItem
}

// CountAllInput defines the input for counting every item
type CountAllInput struct{}

// CountByTierInput defines the input for counting one tier
type CountByTierInput struct {
	Tier loot.Tier
}

// CountOutput defines the output for count operations
type CountOutput struct {
	Count int64
}

const (
	// Error messages
	errHashEmpty    = "hash cannot be empty"
	errIDEmpty      = "id cannot be empty"
	errSetNameEmpty = "set name cannot be empty"
)

func validateInsert(input InsertIfAbsentInput) error {
	if input.Hash == "" {
		return errors.InvalidArgument(errHashEmpty)
	}
	return nil
}

func validateTier(tier loot.Tier) error {
	if !tier.IsValid() {
		return errors.InvalidArgumentf("unknown tier %q", tier)
	}
	return nil
}

func validateLimit(limit int) error {
	if limit < 0 {
		return errors.InvalidArgument("limit cannot be negative")
	}
	return nil
}

// storageError marks a store failure as unavailable
func storageError(err error, message string) error {
	if err == nil {
		return nil
	}
	return errors.WrapWithCode(err, errors.CodeUnavailable, message)
}
