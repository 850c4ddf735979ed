package loot

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
)

// Stat names shared by every item type
const (
	StatDurability = "durability"
	StatWeight     = "weight"
	StatValue      = "value"
)

// Weapon stats
const (
	StatDamage         = "damage"
	StatAttackSpeed    = "attackSpeed"
	StatCriticalChance = "criticalChance"
	StatCriticalDamage = "criticalDamage"
	StatRange          = "range"
	StatAccuracy       = "accuracy"
)

// Armor stats. The four elemental resistances are flat in model output and
// nested under elementalResistance in a shaped StatBlock.
const (
	StatDefense             = "defense"
	StatMagicResistance     = "magicResistance"
	StatFireResistance      = "fireResistance"
	StatIceResistance       = "iceResistance"
	StatLightningResistance = "lightningResistance"
	StatPoisonResistance    = "poisonResistance"

	// ElementalResistanceKey is the nested object holding armor resistances
	ElementalResistanceKey = "elementalResistance"
)

// Accessory stats
const (
	StatMagicPower  = "magicPower"
	StatHealthBonus = "healthBonus"
	StatManaBonus   = "manaBonus"
	StatLuck        = "luck"
)

// Consumable stats
const (
	StatPotency  = "potency"
	StatDuration = "duration"
	StatCharges  = "charges"
)

// Material stats
const (
	StatPurity          = "purity"
	StatMagicalAffinity = "magicalAffinity"
)

var elementalResistances = map[string]string{
	StatFireResistance:      "fire",
	StatIceResistance:       "ice",
	StatLightningResistance: "lightning",
	StatPoisonResistance:    "poison",
}

type statShape struct {
	required []string
	optional []string
}

var baseStats = []string{StatDurability, StatWeight, StatValue}

// Types missing from this map (Rune, Artifact) have an open shape.
var statShapes = map[ItemType]statShape{
	ItemTypeWeapon: {
		required: []string{StatDamage},
		optional: []string{StatAttackSpeed, StatCriticalChance, StatCriticalDamage, StatRange, StatAccuracy},
	},
	ItemTypeArmor: {
		required: []string{StatDefense},
		optional: []string{
			StatMagicResistance, StatFireResistance, StatIceResistance,
			StatLightningResistance, StatPoisonResistance,
		},
	},
	ItemTypeAccessory: {
		optional: []string{StatMagicPower, StatHealthBonus, StatManaBonus, StatLuck},
	},
	ItemTypeConsumable: {
		optional: []string{StatPotency, StatDuration, StatCharges},
	},
	ItemTypeMaterial: {
		optional: []string{StatPurity, StatMagicalAffinity},
	},
}

// RequiredStats returns the stats an item of the given type must carry
func RequiredStats(t ItemType) []string {
	return append([]string(nil), statShapes[t].required...)
}

// AllowedStats returns every legal flat stat name for the type, sorted.
// Returns nil for open-shaped types.
func AllowedStats(t ItemType) []string {
	shape, ok := statShapes[t]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(baseStats)+len(shape.required)+len(shape.optional))
	names = append(names, baseStats...)
	names = append(names, shape.required...)
	names = append(names, shape.optional...)
	sort.Strings(names)
	return names
}

// HasClosedStats reports whether the type restricts which stats it may carry
func HasClosedStats(t ItemType) bool {
	_, ok := statShapes[t]
	return ok
}

// IsStatAllowed reports whether a flat stat name is legal for the type
func IsStatAllowed(t ItemType, name string) bool {
	if !HasClosedStats(t) {
		return true
	}
	for _, allowed := range AllowedStats(t) {
		if allowed == name {
			return true
		}
	}
	return false
}

// ElementalResistance maps a flat resistance stat to its nested element key
func ElementalResistance(name string) (string, bool) {
	element, ok := elementalResistances[name]
	return element, ok
}

// RoundStat applies stat precision: range and weight keep two decimals,
// everything else rounds to the nearest integer.
func RoundStat(name string, v float64) float64 {
	if name == StatRange || name == StatWeight {
		return math.Round(v*100) / 100
	}
	return math.Round(v)
}

// StatBlock holds an item's numeric attributes in the shape required by its type
type StatBlock struct {
	Values              map[string]float64
	ElementalResistance map[string]float64
}

// ShapeStats builds a StatBlock from a flat stat map. Keys that are not legal
// for a closed-shape type are dropped, values are rounded, and Armor's
// elemental resistances are nested.
func ShapeStats(t ItemType, flat map[string]float64) StatBlock {
	block := StatBlock{Values: make(map[string]float64, len(flat))}
	for name, v := range flat {
		if name == ElementalResistanceKey || !IsStatAllowed(t, name) {
			continue
		}
		v = RoundStat(name, v)
		if element, ok := elementalResistances[name]; ok && t == ItemTypeArmor {
			if block.ElementalResistance == nil {
				block.ElementalResistance = make(map[string]float64, len(elementalResistances))
			}
			block.ElementalResistance[element] = v
			continue
		}
		block.Values[name] = v
	}
	return block
}

// Get returns a top-level stat value
func (b StatBlock) Get(name string) (float64, bool) {
	v, ok := b.Values[name]
	return v, ok
}

// Flatten returns the stats as a flat map using the flat resistance names
func (b StatBlock) Flatten() map[string]float64 {
	flat := make(map[string]float64, len(b.Values)+len(b.ElementalResistance))
	for name, v := range b.Values {
		flat[name] = v
	}
	for flatName, element := range elementalResistances {
		if v, ok := b.ElementalResistance[element]; ok {
			flat[flatName] = v
		}
	}
	return flat
}

// Len returns the number of stats including nested resistances
func (b StatBlock) Len() int {
	return len(b.Values) + len(b.ElementalResistance)
}

// MarshalJSON writes the stats as one object with resistances nested
func (b StatBlock) MarshalJSON() ([]byte, error) {
	out := make(map[string]interface{}, len(b.Values)+1)
	for name, v := range b.Values {
		out[name] = v
	}
	if len(b.ElementalResistance) > 0 {
		out[ElementalResistanceKey] = b.ElementalResistance
	}
	return json.Marshal(out)
}

// UnmarshalJSON reads the shape written by MarshalJSON
func (b *StatBlock) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	block := StatBlock{Values: make(map[string]float64, len(raw))}
	for name, value := range raw {
		if name == ElementalResistanceKey {
			if err := json.Unmarshal(value, &block.ElementalResistance); err != nil {
				return fmt.Errorf("stat %s: %w", name, err)
			}
			continue
		}
		var v float64
		if err := json.Unmarshal(value, &v); err != nil {
			return fmt.Errorf("stat %s: %w", name, err)
		}
		block.Values[name] = v
	}
	*b = block
	return nil
}
