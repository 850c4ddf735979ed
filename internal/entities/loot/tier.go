// Package loot holds the loot item domain: tiers, item types, subtypes and the
// generated and stored item entities.
package loot

import "strings"

// Tier is a power bracket that governs stat magnitude and rarity band
type Tier string

// Tiers in ascending power order
const (
	TierBronze    Tier = "Bronze"
	TierSilver    Tier = "Silver"
	TierGold      Tier = "Gold"
	TierPlatinum  Tier = "Platinum"
	TierLegendary Tier = "Legendary"
	TierCelestial Tier = "Celestial"
)

var tierMultipliers = map[Tier]float64{
	TierBronze:    1,
	TierSilver:    1.5,
	TierGold:      2,
	TierPlatinum:  3,
	TierLegendary: 5,
	TierCelestial: 10,
}

// String returns the string representation of the tier
func (t Tier) String() string {
	return string(t)
}

// IsValid checks if the tier is one of the known tiers
func (t Tier) IsValid() bool {
	_, ok := tierMultipliers[t]
	return ok
}

// Multiplier returns the tier's power multiplier, 0 for an unknown tier
func (t Tier) Multiplier() float64 {
	return tierMultipliers[t]
}

// Rank returns the tier's position in ascending order, -1 for an unknown tier
func (t Tier) Rank() int {
	for i, tier := range AllTiers() {
		if tier == t {
			return i
		}
	}
	return -1
}

// AllTiers returns all tiers from Bronze to Celestial
func AllTiers() []Tier {
	return []Tier{
		TierBronze,
		TierSilver,
		TierGold,
		TierPlatinum,
		TierLegendary,
		TierCelestial,
	}
}

// TierFromString converts a case-insensitive name to a Tier
func TierFromString(s string) (Tier, bool) {
	for _, tier := range AllTiers() {
		if strings.EqualFold(string(tier), strings.TrimSpace(s)) {
			return tier, true
		}
	}
	return "", false
}
