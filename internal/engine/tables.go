package engine

import "github.com/KirkDiggler/rpg-loot/internal/entities/loot"

// Range is an inclusive numeric bound
type Range struct {
	Min float64
	Max float64
}

// Contains reports whether v lies inside the range
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// RarityRange is an inclusive rarity percentage band
type RarityRange struct {
	Min int
	Max int
}

// Contains reports whether rarity lies inside the band
func (r RarityRange) Contains(rarity int) bool {
	return rarity >= r.Min && rarity <= r.Max
}

// Rarity bands overlap at the edges on purpose so adjacent tiers blend.
var rarityRanges = map[loot.Tier]RarityRange{
	loot.TierBronze:    {Min: 5, Max: 25},
	loot.TierSilver:    {Min: 20, Max: 40},
	loot.TierGold:      {Min: 35, Max: 60},
	loot.TierPlatinum:  {Min: 55, Max: 75},
	loot.TierLegendary: {Min: 70, Max: 90},
	loot.TierCelestial: {Min: 85, Max: 100},
}

// RangesFor returns a copy of the stat ranges for an item type at a tier.
// Rune and Artifact have no table entry and get an empty map.
func RangesFor(itemType loot.ItemType, tier loot.Tier) map[string]Range {
	src := statRanges[itemType][tier]
	out := make(map[string]Range, len(src))
	for name, r := range src {
		out[name] = r
	}
	return out
}

// RarityRangeFor returns the rarity band for a tier
func RarityRangeFor(tier loot.Tier) RarityRange {
	return rarityRanges[tier]
}

// Stat ranges by item type, then tier. Every bound is non-decreasing from
// Bronze to Celestial.
var statRanges = map[loot.ItemType]map[loot.Tier]map[string]Range{
	loot.ItemTypeWeapon: {
		loot.TierBronze: {
			loot.StatDamage:         {5, 12},
			loot.StatAttackSpeed:    {80, 100},
			loot.StatCriticalChance: {1, 5},
			loot.StatCriticalDamage: {120, 150},
			loot.StatRange:          {1, 1.5},
			loot.StatAccuracy:       {60, 75},
			loot.StatDurability:     {50, 100},
			loot.StatWeight:         {1, 5},
			loot.StatValue:          {10, 50},
		},
		loot.TierSilver: {
			loot.StatDamage:         {8, 18},
			loot.StatAttackSpeed:    {85, 105},
			loot.StatCriticalChance: {3, 8},
			loot.StatCriticalDamage: {130, 165},
			loot.StatRange:          {1, 2},
			loot.StatAccuracy:       {65, 80},
			loot.StatDurability:     {75, 150},
			loot.StatWeight:         {1, 5.5},
			loot.StatValue:          {25, 100},
		},
		loot.TierGold: {
			loot.StatDamage:         {10, 24},
			loot.StatAttackSpeed:    {90, 110},
			loot.StatCriticalChance: {5, 12},
			loot.StatCriticalDamage: {140, 180},
			loot.StatRange:          {1.25, 2.5},
			loot.StatAccuracy:       {70, 85},
			loot.StatDurability:     {100, 200},
			loot.StatWeight:         {1, 6},
			loot.StatValue:          {60, 250},
		},
		loot.TierPlatinum: {
			loot.StatDamage:         {15, 36},
			loot.StatAttackSpeed:    {95, 120},
			loot.StatCriticalChance: {8, 16},
			loot.StatCriticalDamage: {150, 200},
			loot.StatRange:          {1.5, 3},
			loot.StatAccuracy:       {75, 90},
			loot.StatDurability:     {150, 300},
			loot.StatWeight:         {1.2, 6.5},
			loot.StatValue:          {150, 600},
		},
		loot.TierLegendary: {
			loot.StatDamage:         {25, 60},
			loot.StatAttackSpeed:    {100, 130},
			loot.StatCriticalChance: {12, 22},
			loot.StatCriticalDamage: {175, 250},
			loot.StatRange:          {2, 4},
			loot.StatAccuracy:       {80, 95},
			loot.StatDurability:     {250, 500},
			loot.StatWeight:         {1.5, 7},
			loot.StatValue:          {500, 2000},
		},
		loot.TierCelestial: {
			loot.StatDamage:         {50, 120},
			loot.StatAttackSpeed:    {110, 150},
			loot.StatCriticalChance: {18, 30},
			loot.StatCriticalDamage: {200, 300},
			loot.StatRange:          {2.5, 5},
			loot.StatAccuracy:       {85, 100},
			loot.StatDurability:     {500, 1000},
			loot.StatWeight:         {2, 8},
			loot.StatValue:          {2000, 10000},
		},
	},
	loot.ItemTypeArmor: {
		loot.TierBronze: {
			loot.StatDefense:             {3, 8},
			loot.StatMagicResistance:     {0, 5},
			loot.StatFireResistance:      {0, 5},
			loot.StatIceResistance:       {0, 5},
			loot.StatLightningResistance: {0, 5},
			loot.StatPoisonResistance:    {0, 5},
			loot.StatDurability:          {60, 120},
			loot.StatWeight:              {2, 10},
			loot.StatValue:               {15, 60},
		},
		loot.TierSilver: {
			loot.StatDefense:             {5, 12},
			loot.StatMagicResistance:     {2, 8},
			loot.StatFireResistance:      {0, 8},
			loot.StatIceResistance:       {0, 8},
			loot.StatLightningResistance: {0, 8},
			loot.StatPoisonResistance:    {0, 8},
			loot.StatDurability:          {90, 180},
			loot.StatWeight:              {2, 11},
			loot.StatValue:               {35, 120},
		},
		loot.TierGold: {
			loot.StatDefense:             {6, 16},
			loot.StatMagicResistance:     {4, 12},
			loot.StatFireResistance:      {2, 12},
			loot.StatIceResistance:       {2, 12},
			loot.StatLightningResistance: {2, 12},
			loot.StatPoisonResistance:    {2, 12},
			loot.StatDurability:          {120, 240},
			loot.StatWeight:              {2.5, 12},
			loot.StatValue:               {80, 300},
		},
		loot.TierPlatinum: {
			loot.StatDefense:             {9, 24},
			loot.StatMagicResistance:     {6, 18},
			loot.StatFireResistance:      {5, 18},
			loot.StatIceResistance:       {5, 18},
			loot.StatLightningResistance: {5, 18},
			loot.StatPoisonResistance:    {5, 18},
			loot.StatDurability:          {180, 360},
			loot.StatWeight:              {3, 13},
			loot.StatValue:               {200, 750},
		},
		loot.TierLegendary: {
			loot.StatDefense:             {15, 40},
			loot.StatMagicResistance:     {10, 30},
			loot.StatFireResistance:      {10, 28},
			loot.StatIceResistance:       {10, 28},
			loot.StatLightningResistance: {10, 28},
			loot.StatPoisonResistance:    {10, 28},
			loot.StatDurability:          {300, 600},
			loot.StatWeight:              {3.5, 14},
			loot.StatValue:               {600, 2500},
		},
		loot.TierCelestial: {
			loot.StatDefense:             {30, 80},
			loot.StatMagicResistance:     {20, 50},
			loot.StatFireResistance:      {20, 45},
			loot.StatIceResistance:       {20, 45},
			loot.StatLightningResistance: {20, 45},
			loot.StatPoisonResistance:    {20, 45},
			loot.StatDurability:          {600, 1200},
			loot.StatWeight:              {4, 15},
			loot.StatValue:               {2500, 12000},
		},
	},
	loot.ItemTypeAccessory: {
		loot.TierBronze: {
			loot.StatMagicPower:  {2, 6},
			loot.StatHealthBonus: {5, 20},
			loot.StatManaBonus:   {5, 20},
			loot.StatLuck:        {1, 3},
			loot.StatDurability:  {30, 60},
			loot.StatWeight:      {0.1, 0.5},
			loot.StatValue:       {20, 80},
		},
		loot.TierSilver: {
			loot.StatMagicPower:  {3, 9},
			loot.StatHealthBonus: {8, 30},
			loot.StatManaBonus:   {8, 30},
			loot.StatLuck:        {1, 5},
			loot.StatDurability:  {45, 90},
			loot.StatWeight:      {0.1, 0.5},
			loot.StatValue:       {50, 150},
		},
		loot.TierGold: {
			loot.StatMagicPower:  {4, 12},
			loot.StatHealthBonus: {10, 40},
			loot.StatManaBonus:   {10, 40},
			loot.StatLuck:        {2, 6},
			loot.StatDurability:  {60, 120},
			loot.StatWeight:      {0.1, 0.6},
			loot.StatValue:       {120, 400},
		},
		loot.TierPlatinum: {
			loot.StatMagicPower:  {6, 18},
			loot.StatHealthBonus: {15, 60},
			loot.StatManaBonus:   {15, 60},
			loot.StatLuck:        {3, 9},
			loot.StatDurability:  {90, 180},
			loot.StatWeight:      {0.1, 0.6},
			loot.StatValue:       {300, 1000},
		},
		loot.TierLegendary: {
			loot.StatMagicPower:  {10, 30},
			loot.StatHealthBonus: {25, 100},
			loot.StatManaBonus:   {25, 100},
			loot.StatLuck:        {5, 15},
			loot.StatDurability:  {150, 300},
			loot.StatWeight:      {0.2, 0.8},
			loot.StatValue:       {1000, 4000},
		},
		loot.TierCelestial: {
			loot.StatMagicPower:  {20, 60},
			loot.StatHealthBonus: {50, 200},
			loot.StatManaBonus:   {50, 200},
			loot.StatLuck:        {10, 25},
			loot.StatDurability:  {300, 600},
			loot.StatWeight:      {0.2, 1},
			loot.StatValue:       {4000, 20000},
		},
	},
	loot.ItemTypeConsumable: {
		loot.TierBronze: {
			loot.StatPotency:  {10, 25},
			loot.StatDuration: {10, 30},
			loot.StatCharges:  {1, 1},
			loot.StatWeight:   {0.1, 0.5},
			loot.StatValue:    {5, 20},
		},
		loot.TierSilver: {
			loot.StatPotency:  {15, 40},
			loot.StatDuration: {15, 45},
			loot.StatCharges:  {1, 2},
			loot.StatWeight:   {0.1, 0.5},
			loot.StatValue:    {10, 40},
		},
		loot.TierGold: {
			loot.StatPotency:  {20, 50},
			loot.StatDuration: {20, 60},
			loot.StatCharges:  {1, 2},
			loot.StatWeight:   {0.1, 0.5},
			loot.StatValue:    {25, 100},
		},
		loot.TierPlatinum: {
			loot.StatPotency:  {30, 75},
			loot.StatDuration: {30, 90},
			loot.StatCharges:  {1, 3},
			loot.StatWeight:   {0.1, 0.6},
			loot.StatValue:    {60, 250},
		},
		loot.TierLegendary: {
			loot.StatPotency:  {50, 125},
			loot.StatDuration: {45, 150},
			loot.StatCharges:  {2, 4},
			loot.StatWeight:   {0.2, 0.8},
			loot.StatValue:    {200, 800},
		},
		loot.TierCelestial: {
			loot.StatPotency:  {100, 250},
			loot.StatDuration: {60, 300},
			loot.StatCharges:  {3, 5},
			loot.StatWeight:   {0.2, 1},
			loot.StatValue:    {800, 4000},
		},
	},
	loot.ItemTypeMaterial: {
		loot.TierBronze: {
			loot.StatPurity:          {10, 40},
			loot.StatMagicalAffinity: {1, 10},
			loot.StatWeight:          {0.5, 3},
			loot.StatValue:           {2, 10},
		},
		loot.TierSilver: {
			loot.StatPurity:          {25, 55},
			loot.StatMagicalAffinity: {5, 20},
			loot.StatWeight:          {0.5, 3},
			loot.StatValue:           {5, 25},
		},
		loot.TierGold: {
			loot.StatPurity:          {40, 70},
			loot.StatMagicalAffinity: {10, 35},
			loot.StatWeight:          {0.5, 3},
			loot.StatValue:           {15, 60},
		},
		loot.TierPlatinum: {
			loot.StatPurity:          {55, 85},
			loot.StatMagicalAffinity: {20, 50},
			loot.StatWeight:          {0.5, 3.5},
			loot.StatValue:           {40, 150},
		},
		loot.TierLegendary: {
			loot.StatPurity:          {70, 95},
			loot.StatMagicalAffinity: {35, 75},
			loot.StatWeight:          {0.5, 4},
			loot.StatValue:           {120, 500},
		},
		loot.TierCelestial: {
			loot.StatPurity:          {85, 100},
			loot.StatMagicalAffinity: {60, 100},
			loot.StatWeight:          {0.5, 5},
			loot.StatValue:           {500, 2500},
		},
	},
}
