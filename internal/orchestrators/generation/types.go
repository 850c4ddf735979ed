package generation

import "github.com/KirkDiggler/rpg-loot/internal/entities/loot"

// GenerateInput defines the request for a generation batch
type GenerateInput struct {
	Request loot.GenerationRequest
}

// GenerateOutput defines the response for a generation batch.
// Items are in attempt order and may be fewer than the requested count.
type GenerateOutput struct {
	Items []*loot.LootItem
	// Attempts is the number of attempts that ran; it is below the requested
	// count only when the context was canceled
	Attempts int
	Failures []*AttemptFailure
}

// GenerateSetInput defines the request for generating a themed set
type GenerateSetInput struct {
	SetName   string
	Tier      loot.Tier
	ItemTypes []loot.ItemType
	Model     string
}

// GenerateSetOutput defines the response for a set, in item type order
type GenerateSetOutput struct {
	Items    []*loot.LootItem
	Failures []*AttemptFailure
}

// AttemptFailure records one attempt that produced no item
type AttemptFailure struct {
	// Attempt is 1-based within the batch, or the position in the set
	Attempt  int
	ItemType loot.ItemType
	SubType  string
	Err      error
}
