package loot

import "time"

// MagicalProperty is a named enchantment on an item
type MagicalProperty struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Magnitude   *float64 `json:"magnitude,omitempty"`
}

// LootItem is a fully reconciled, schema-valid generated item
type LootItem struct {
	Name              string            `json:"name"`
	Type              ItemType          `json:"type"`
	SubType           string            `json:"subType"`
	Tier              Tier              `json:"tier"`
	Description       string            `json:"description"`
	Stats             StatBlock         `json:"stats"`
	MagicalProperties []MagicalProperty `json:"magicalProperties"`
	Lore              string            `json:"lore,omitempty"`
	SetName           string            `json:"setName,omitempty"`

	// Rarity is a 0-100 score inside the tier's rarity band
	Rarity int `json:"rarity"`
}

// StoredItem is a persisted LootItem. It is created once per content hash and
// never mutated afterwards.
type StoredItem struct {
	LootItem

	ID        string    `json:"id"`
	Hash      string    `json:"hash"`
	CreatedAt time.Time `json:"createdAt"`
}
