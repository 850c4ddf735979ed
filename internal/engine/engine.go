// Package engine holds the loot rules: stat and rarity tables plus the random
// rolls that turn them into baseline stats, rarity scores and subtype picks.
package engine

//go:generate mockgen -destination=mock/mock_engine.go -package=enginemock github.com/KirkDiggler/rpg-loot/internal/engine Engine

import (
	"math"
	"sort"

	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/rpg-loot/internal/entities/loot"
	"github.com/KirkDiggler/rpg-loot/internal/errors"
)

// Engine rolls the random parts of an item
type Engine interface {
	// RollBaseline rolls one value per stat in the item type's ranges at the tier
	RollBaseline(itemType loot.ItemType, tier loot.Tier) (map[string]float64, error)

	// RollRarity rolls a uniform rarity inside the tier's band
	RollRarity(tier loot.Tier) (int, error)

	// PickSubType picks a uniform subtype from the item type's list
	PickSubType(itemType loot.ItemType) (string, error)

	// PickItemType picks a uniform item type
	PickItemType() (loot.ItemType, error)
}

// Config holds the dependencies for the engine
type Config struct {
	DiceRoller dice.Roller
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config cannot be nil")
	}

	vb := errors.NewValidationBuilder()
	if c.DiceRoller == nil {
		vb.RequiredField("DiceRoller")
	}
	return vb.Build()
}

type engine struct {
	roller dice.Roller
}

// New creates an engine backed by the given dice roller
func New(cfg *Config) (Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &engine{roller: cfg.DiceRoller}, nil
}

// intBetween rolls a uniform integer in [lo, hi] with a single die
func (e *engine) intBetween(lo, hi int) (int, error) {
	if hi < lo {
		return 0, errors.InvalidArgumentf("invalid roll bounds [%d, %d]", lo, hi)
	}
	if hi == lo {
		return lo, nil
	}

	face, err := e.roller.Roll(hi - lo + 1)
	if err != nil {
		return 0, errors.Wrap(err, "failed to roll die")
	}
	return lo + face - 1, nil
}

// hundredthsBetween rolls a value in [lo, hi] at two decimal places
func (e *engine) hundredthsBetween(lo, hi float64) (float64, error) {
	v, err := e.intBetween(int(math.Round(lo*100)), int(math.Round(hi*100)))
	if err != nil {
		return 0, err
	}
	return float64(v) / 100, nil
}

func (e *engine) RollBaseline(itemType loot.ItemType, tier loot.Tier) (map[string]float64, error) {
	ranges := RangesFor(itemType, tier)

	// Roll in name order so a seeded roller gives repeatable baselines.
	names := make([]string, 0, len(ranges))
	for name := range ranges {
		names = append(names, name)
	}
	sort.Strings(names)

	baseline := make(map[string]float64, len(ranges))
	for _, name := range names {
		r := ranges[name]
		var (
			v   float64
			err error
		)
		if name == loot.StatRange || name == loot.StatWeight {
			v, err = e.hundredthsBetween(r.Min, r.Max)
		} else {
			var n int
			n, err = e.intBetween(int(math.Ceil(r.Min)), int(math.Floor(r.Max)))
			v = float64(n)
		}
		if err != nil {
			return nil, errors.Wrapf(err, "failed to roll %s", name)
		}
		baseline[name] = v
	}

	return baseline, nil
}

func (e *engine) RollRarity(tier loot.Tier) (int, error) {
	if !tier.IsValid() {
		return 0, errors.InvalidArgumentf("unknown tier %q", tier)
	}

	band := RarityRangeFor(tier)
	rarity, err := e.intBetween(band.Min, band.Max)
	if err != nil {
		return 0, errors.Wrap(err, "failed to roll rarity")
	}
	return rarity, nil
}

func (e *engine) PickSubType(itemType loot.ItemType) (string, error) {
	options := itemType.SubTypes()
	if len(options) == 0 {
		return "", errors.InvalidArgumentf("unknown item type %q", itemType)
	}

	i, err := e.intBetween(0, len(options)-1)
	if err != nil {
		return "", errors.Wrap(err, "failed to pick subtype")
	}
	return options[i], nil
}

func (e *engine) PickItemType() (loot.ItemType, error) {
	options := loot.AllItemTypes()

	i, err := e.intBetween(0, len(options)-1)
	if err != nil {
		return "", errors.Wrap(err, "failed to pick item type")
	}
	return options[i], nil
}
