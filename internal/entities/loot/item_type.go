package loot

import "strings"

// ItemType is the top-level item category
type ItemType string

// Item types
const (
	ItemTypeWeapon     ItemType = "Weapon"
	ItemTypeArmor      ItemType = "Armor"
	ItemTypeAccessory  ItemType = "Accessory"
	ItemTypeConsumable ItemType = "Consumable"
	ItemTypeMaterial   ItemType = "Material"
	ItemTypeRune       ItemType = "Rune"
	ItemTypeArtifact   ItemType = "Artifact"
)

// subTypes lists the subtype domain per item type. For closed types the list is
// the whole domain; for Rune and Artifact it only seeds random selection.
var subTypes = map[ItemType][]string{
	ItemTypeWeapon:     {"Sword", "Axe", "Mace", "Dagger", "Spear", "Bow", "Crossbow", "Staff", "Wand", "Hammer"},
	ItemTypeArmor:      {"Helmet", "Chestplate", "Gauntlets", "Greaves", "Boots", "Shield", "Robe", "Cloak"},
	ItemTypeAccessory:  {"Ring", "Amulet", "Bracelet", "Belt", "Earring", "Charm"},
	ItemTypeConsumable: {"Potion", "Elixir", "Scroll", "Food", "Bomb"},
	ItemTypeMaterial:   {"Ore", "Gem", "Herb", "Hide", "Essence", "Wood", "Cloth"},
	ItemTypeRune:       {"Rune of Power", "Rune of Warding", "Rune of Haste", "Elemental Rune", "Arcane Rune"},
	ItemTypeArtifact:   {"Relic", "Tome", "Orb", "Idol", "Crown"},
}

// String returns the string representation of the item type
func (t ItemType) String() string {
	return string(t)
}

// IsValid checks if the item type is known
func (t ItemType) IsValid() bool {
	_, ok := subTypes[t]
	return ok
}

// HasOpenSubTypes reports whether the type accepts free-text subtypes
func (t ItemType) HasOpenSubTypes() bool {
	return t == ItemTypeRune || t == ItemTypeArtifact
}

// SubTypes returns a copy of the subtype list for the item type
func (t ItemType) SubTypes() []string {
	list := subTypes[t]
	out := make([]string, len(list))
	copy(out, list)
	return out
}

// NormalizeSubType resolves a subtype against the item type's domain.
// Closed domains match case-insensitively and return the canonical spelling.
// Open domains accept any non-empty text.
func (t ItemType) NormalizeSubType(subType string) (string, bool) {
	subType = strings.TrimSpace(subType)
	if subType == "" || !t.IsValid() {
		return "", false
	}

	for _, candidate := range subTypes[t] {
		if strings.EqualFold(candidate, subType) {
			return candidate, true
		}
	}

	if t.HasOpenSubTypes() {
		return subType, true
	}
	return "", false
}

// AllItemTypes returns every item type
func AllItemTypes() []ItemType {
	return []ItemType{
		ItemTypeWeapon,
		ItemTypeArmor,
		ItemTypeAccessory,
		ItemTypeConsumable,
		ItemTypeMaterial,
		ItemTypeRune,
		ItemTypeArtifact,
	}
}

// ItemTypeFromString converts a case-insensitive name to an ItemType
func ItemTypeFromString(s string) (ItemType, bool) {
	for _, itemType := range AllItemTypes() {
		if strings.EqualFold(string(itemType), strings.TrimSpace(s)) {
			return itemType, true
		}
	}
	return "", false
}

// ItemTypeForSubType finds the closed-domain item type a subtype belongs to
func ItemTypeForSubType(subType string) (ItemType, bool) {
	for _, itemType := range AllItemTypes() {
		if itemType.HasOpenSubTypes() {
			continue
		}
		if _, ok := itemType.NormalizeSubType(subType); ok {
			return itemType, true
		}
	}
	return "", false
}
