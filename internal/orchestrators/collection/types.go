package collection

import (
	"github.com/KirkDiggler/rpg-loot/internal/entities/loot"
	"github.com/KirkDiggler/rpg-loot/internal/orchestrators/generation"
)

// SaveIfAbsentInput defines the request for saving one item
type SaveIfAbsentInput struct {
	Item *loot.LootItem
}

// SaveIfAbsentOutput defines the response for saving one item.
// Created is false when an item with the same identity was already stored;
// Item is then the existing record, unchanged.
type SaveIfAbsentOutput struct {
	Item    *loot.StoredItem
	Created bool
}

// GenerateAndSaveInput defines the request for a generate-and-save batch
type GenerateAndSaveInput struct {
	Request loot.GenerationRequest
}

// GenerateSetAndSaveInput defines the request for a generate-and-save set
type GenerateSetAndSaveInput struct {
	SetName   string
	Tier      loot.Tier
	ItemTypes []loot.ItemType
	Model     string
}

// BatchOutput defines the response for batch saves
type BatchOutput struct {
	// Results hold one entry per generated item, in generation order
	Results  []*SaveIfAbsentOutput
	Failures []*generation.AttemptFailure
	Counts   Counts
}

// Counts summarizes a batch
type Counts struct {
	Requested  int
	Generated  int
	Saved      int
	Duplicates int
	Failed     int
}

// ListInput defines the request for listing stored items.
// Tier and SetName are optional filters; a Limit of zero lists everything.
type ListInput struct {
	Tier    loot.Tier
	SetName string
	Limit   int
}

// ListOutput defines the response for listing stored items, newest first
type ListOutput struct {
	Items []*loot.StoredItem
}

// GetInput defines the request for one stored item
type GetInput struct {
	ID string
}

// GetOutput defines the response for one stored item
type GetOutput struct {
	Item *loot.StoredItem
}

// StatsInput defines the request for collection statistics
type StatsInput struct{}

// StatsOutput defines the response for collection statistics.
// ByTier has an entry for every tier, including empty ones.
type StatsOutput struct {
	Total  int64
	ByTier map[loot.Tier]int64
}
