package engine_test

import (
	"fmt"
	"testing"

	"github.com/KirkDiggler/rpg-toolkit/dice"
	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-loot/internal/engine"
	"github.com/KirkDiggler/rpg-loot/internal/entities/loot"
)

// fixedRoller always lands on the same face, clamped to the die size
type fixedRoller struct {
	face int
	err  error
}

func (r *fixedRoller) Roll(size int) (int, error) {
	if r.err != nil {
		return 0, r.err
	}
	if r.face > size {
		return size, nil
	}
	return r.face, nil
}

func (r *fixedRoller) RollN(count, size int) ([]int, error) {
	out := make([]int, count)
	for i := range out {
		v, err := r.Roll(size)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

type EngineTestSuite struct {
	suite.Suite
}

func TestEngineSuite(t *testing.T) {
	suite.Run(t, new(EngineTestSuite))
}

func (s *EngineTestSuite) TestNewRequiresRoller() {
	_, err := engine.New(&engine.Config{})
	s.Require().Error(err)
	s.Assert().Contains(err.Error(), "DiceRoller")

	_, err = engine.New(nil)
	s.Require().Error(err)
}

func (s *EngineTestSuite) TestStatRangesAreMonotonicAcrossTiers() {
	tiers := loot.AllTiers()
	for _, itemType := range loot.AllItemTypes() {
		if !loot.HasClosedStats(itemType) {
			continue
		}
		for name := range engine.RangesFor(itemType, loot.TierBronze) {
			for i := 1; i < len(tiers); i++ {
				prev, ok := engine.RangesFor(itemType, tiers[i-1])[name]
				s.Require().True(ok, "%s %s missing at %s", itemType, name, tiers[i-1])
				cur, ok := engine.RangesFor(itemType, tiers[i])[name]
				s.Require().True(ok, "%s %s missing at %s", itemType, name, tiers[i])

				s.Assert().LessOrEqual(prev.Min, cur.Min, "%s %s min drops from %s to %s", itemType, name, tiers[i-1], tiers[i])
				s.Assert().LessOrEqual(prev.Max, cur.Max, "%s %s max drops from %s to %s", itemType, name, tiers[i-1], tiers[i])
			}
		}
	}
}

func (s *EngineTestSuite) TestStatRangesCoverEveryTier() {
	for _, itemType := range loot.AllItemTypes() {
		for _, tier := range loot.AllTiers() {
			ranges := engine.RangesFor(itemType, tier)
			if !loot.HasClosedStats(itemType) {
				s.Assert().Empty(ranges, "%s should have no table entry", itemType)
				continue
			}

			s.Assert().GreaterOrEqual(len(ranges), 4, "%s at %s", itemType, tier)
			s.Assert().LessOrEqual(len(ranges), 9, "%s at %s", itemType, tier)
			for name, r := range ranges {
				s.Assert().LessOrEqual(r.Min, r.Max, "%s %s at %s", itemType, name, tier)
				s.Assert().True(loot.IsStatAllowed(itemType, name), "%s not legal for %s", name, itemType)
			}
			for _, required := range loot.RequiredStats(itemType) {
				s.Assert().Contains(ranges, required, "%s at %s", itemType, tier)
			}
		}
	}
}

func (s *EngineTestSuite) TestRangesForReturnsCopy() {
	ranges := engine.RangesFor(loot.ItemTypeWeapon, loot.TierGold)
	ranges[loot.StatDamage] = engine.Range{Min: -1, Max: -1}

	s.Assert().Equal(engine.Range{Min: 10, Max: 24}, engine.RangesFor(loot.ItemTypeWeapon, loot.TierGold)[loot.StatDamage])
}

func (s *EngineTestSuite) TestRarityRanges() {
	expected := map[loot.Tier]engine.RarityRange{
		loot.TierBronze:    {Min: 5, Max: 25},
		loot.TierSilver:    {Min: 20, Max: 40},
		loot.TierGold:      {Min: 35, Max: 60},
		loot.TierPlatinum:  {Min: 55, Max: 75},
		loot.TierLegendary: {Min: 70, Max: 90},
		loot.TierCelestial: {Min: 85, Max: 100},
	}
	for tier, band := range expected {
		s.Assert().Equal(band, engine.RarityRangeFor(tier), tier.String())
	}
}

func (s *EngineTestSuite) TestRollRarityStaysInBand() {
	e, err := engine.New(&engine.Config{DiceRoller: dice.DefaultRoller})
	s.Require().NoError(err)

	for _, tier := range loot.AllTiers() {
		band := engine.RarityRangeFor(tier)
		for i := 0; i < 200; i++ {
			rarity, err := e.RollRarity(tier)
			s.Require().NoError(err)
			s.Require().True(band.Contains(rarity), "%s rolled %d outside %v", tier, rarity, band)
		}
	}
}

func (s *EngineTestSuite) TestRollRarityEdges() {
	low, err := engine.New(&engine.Config{DiceRoller: &fixedRoller{face: 1}})
	s.Require().NoError(err)
	high, err := engine.New(&engine.Config{DiceRoller: &fixedRoller{face: 1000}})
	s.Require().NoError(err)

	rarity, err := low.RollRarity(loot.TierGold)
	s.Require().NoError(err)
	s.Assert().Equal(35, rarity)

	rarity, err = high.RollRarity(loot.TierGold)
	s.Require().NoError(err)
	s.Assert().Equal(60, rarity)

	_, err = low.RollRarity(loot.Tier("Tin"))
	s.Assert().Error(err)
}

func (s *EngineTestSuite) TestRollBaselineWithinRanges() {
	e, err := engine.New(&engine.Config{DiceRoller: dice.DefaultRoller})
	s.Require().NoError(err)

	for _, itemType := range loot.AllItemTypes() {
		for _, tier := range loot.AllTiers() {
			s.Run(fmt.Sprintf("%s/%s", itemType, tier), func() {
				ranges := engine.RangesFor(itemType, tier)
				baseline, err := e.RollBaseline(itemType, tier)
				s.Require().NoError(err)
				s.Require().Len(baseline, len(ranges))

				for name, v := range baseline {
					s.Assert().True(ranges[name].Contains(v), "%s=%v outside %v", name, v, ranges[name])
					s.Assert().Equal(loot.RoundStat(name, v), v, "%s not at stat precision", name)
				}
			})
		}
	}
}

func (s *EngineTestSuite) TestRollBaselineUsesHundredthsForRangeAndWeight() {
	e, err := engine.New(&engine.Config{DiceRoller: &fixedRoller{face: 2}})
	s.Require().NoError(err)

	baseline, err := e.RollBaseline(loot.ItemTypeWeapon, loot.TierBronze)
	s.Require().NoError(err)

	s.Assert().Equal(1.01, baseline[loot.StatRange])
	s.Assert().Equal(1.01, baseline[loot.StatWeight])
	s.Assert().Equal(float64(6), baseline[loot.StatDamage])
}

func (s *EngineTestSuite) TestRollBaselineSurfacesRollerError() {
	e, err := engine.New(&engine.Config{DiceRoller: &fixedRoller{err: fmt.Errorf("dice lost")}})
	s.Require().NoError(err)

	_, err = e.RollBaseline(loot.ItemTypeArmor, loot.TierSilver)
	s.Require().Error(err)
	s.Assert().Contains(err.Error(), "dice lost")
}

func (s *EngineTestSuite) TestPickSubType() {
	e, err := engine.New(&engine.Config{DiceRoller: &fixedRoller{face: 1}})
	s.Require().NoError(err)

	subType, err := e.PickSubType(loot.ItemTypeArmor)
	s.Require().NoError(err)
	s.Assert().Equal("Helmet", subType)

	_, err = e.PickSubType(loot.ItemType("Shoe"))
	s.Assert().Error(err)
}

func (s *EngineTestSuite) TestPickItemType() {
	e, err := engine.New(&engine.Config{DiceRoller: &fixedRoller{face: 1000}})
	s.Require().NoError(err)

	itemType, err := e.PickItemType()
	s.Require().NoError(err)
	s.Assert().Equal(loot.ItemTypeArtifact, itemType)
}
