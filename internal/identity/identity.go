// Package identity computes the content hash used to detect duplicate items
package identity

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sort"

	"github.com/KirkDiggler/rpg-loot/internal/entities/loot"
)

// canonicalItem fixes field order for hashing. Rarity is left out so two
// rolls of the same item share an identity.
type canonicalItem struct {
	Name              string                 `json:"name"`
	Type              loot.ItemType          `json:"type"`
	SubType           string                 `json:"subType"`
	Tier              loot.Tier              `json:"tier"`
	Description       string                 `json:"description"`
	Stats             loot.StatBlock         `json:"stats"`
	MagicalProperties []loot.MagicalProperty `json:"magicalProperties"`
	Lore              string                 `json:"lore"`
	SetName           string                 `json:"setName"`
}

// Compute returns the hex SHA-256 of the item's canonical form
func Compute(item loot.LootItem) string {
	props := make([]loot.MagicalProperty, len(item.MagicalProperties))
	copy(props, item.MagicalProperties)
	sort.SliceStable(props, func(i, j int) bool {
		if props[i].Name != props[j].Name {
			return props[i].Name < props[j].Name
		}
		return props[i].Description < props[j].Description
	})

	data, err := json.Marshal(canonicalItem{
		Name:              item.Name,
		Type:              item.Type,
		SubType:           item.SubType,
		Tier:              item.Tier,
		Description:       item.Description,
		Stats:             item.Stats,
		MagicalProperties: props,
		Lore:              item.Lore,
		SetName:           item.SetName,
	})
	if err != nil {
		// Only strings, numbers and float maps reach the encoder; a NaN stat is
		// the one value it rejects and the schema never lets one through.
		data = []byte(item.Name)
	}

	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
