package testutils

import (
	"github.com/KirkDiggler/rpg-loot/internal/entities/loot"
)

// TestItemName is the default name for item fixtures
const TestItemName = "Flameheart"

// ItemBuilder builds LootItem fixtures with sensible defaults
type ItemBuilder struct {
	item loot.LootItem
}

// NewItemBuilder starts from a valid Gold sword
func NewItemBuilder() *ItemBuilder {
	return &ItemBuilder{
		item: loot.LootItem{
			Name:        TestItemName,
			Type:        loot.ItemTypeWeapon,
			SubType:     "Sword",
			Tier:        loot.TierGold,
			Description: "A blade that never cools.",
			Stats: loot.ShapeStats(loot.ItemTypeWeapon, map[string]float64{
				loot.StatDamage:     30,
				loot.StatDurability: 180,
				loot.StatWeight:     3.25,
			}),
			MagicalProperties: []loot.MagicalProperty{
				{Name: "Ember", Description: "Burns on hit"},
			},
			Lore:   "Forged in the caldera of Mount Vey.",
			Rarity: 42,
		},
	}
}

// WithName sets the item name
func (b *ItemBuilder) WithName(name string) *ItemBuilder {
	b.item.Name = name
	return b
}

// WithTier sets the tier
func (b *ItemBuilder) WithTier(tier loot.Tier) *ItemBuilder {
	b.item.Tier = tier
	return b
}

// WithArmor turns the fixture into a helmet with nested resistances
func (b *ItemBuilder) WithArmor() *ItemBuilder {
	b.item.Type = loot.ItemTypeArmor
	b.item.SubType = "Helmet"
	b.item.Stats = loot.ShapeStats(loot.ItemTypeArmor, map[string]float64{
		loot.StatDefense:        14,
		loot.StatFireResistance: 6,
		loot.StatWeight:         4.5,
	})
	return b
}

// WithSetName tags the item with a set
func (b *ItemBuilder) WithSetName(name string) *ItemBuilder {
	b.item.SetName = name
	return b
}

// WithRarity sets the rolled rarity
func (b *ItemBuilder) WithRarity(rarity int) *ItemBuilder {
	b.item.Rarity = rarity
	return b
}

// Build returns a copy of the item
func (b *ItemBuilder) Build() loot.LootItem {
	item := b.item
	item.MagicalProperties = append([]loot.MagicalProperty{}, b.item.MagicalProperties...)
	item.Stats = loot.ShapeStats(item.Type, item.Stats.Flatten())
	return item
}
