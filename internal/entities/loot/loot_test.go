package loot_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-loot/internal/entities/loot"
	"github.com/KirkDiggler/rpg-loot/internal/errors"
)

type LootTestSuite struct {
	suite.Suite
}

func TestLootSuite(t *testing.T) {
	suite.Run(t, new(LootTestSuite))
}

func (s *LootTestSuite) TestTierOrdering() {
	s.Assert().Equal(0, loot.TierBronze.Rank())
	s.Assert().Equal(5, loot.TierCelestial.Rank())
	s.Assert().Equal(-1, loot.Tier("Tin").Rank())

	multipliers := make([]float64, 0, len(loot.AllTiers()))
	for _, tier := range loot.AllTiers() {
		multipliers = append(multipliers, tier.Multiplier())
	}
	s.Assert().Equal([]float64{1, 1.5, 2, 3, 5, 10}, multipliers)
}

func (s *LootTestSuite) TestFromString() {
	tier, ok := loot.TierFromString(" gold ")
	s.Assert().True(ok)
	s.Assert().Equal(loot.TierGold, tier)

	_, ok = loot.TierFromString("mythril")
	s.Assert().False(ok)

	itemType, ok := loot.ItemTypeFromString("ARMOR")
	s.Assert().True(ok)
	s.Assert().Equal(loot.ItemTypeArmor, itemType)
}

func (s *LootTestSuite) TestNormalizeSubType() {
	testCases := []struct {
		name     string
		itemType loot.ItemType
		subType  string
		expected string
		ok       bool
	}{
		{"canonical spelling", loot.ItemTypeWeapon, "sword", "Sword", true},
		{"wrong domain", loot.ItemTypeWeapon, "Helmet", "", false},
		{"empty", loot.ItemTypeArmor, "  ", "", false},
		{"open domain suggestion", loot.ItemTypeRune, "arcane rune", "Arcane Rune", true},
		{"open domain free text", loot.ItemTypeArtifact, "Chalice", "Chalice", true},
		{"unknown type", loot.ItemType("Shoe"), "Boot", "", false},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			got, ok := tc.itemType.NormalizeSubType(tc.subType)
			s.Assert().Equal(tc.ok, ok)
			s.Assert().Equal(tc.expected, got)
		})
	}
}

func (s *LootTestSuite) TestRequestRejectsSubTypeFromAnotherDomain() {
	_, err := loot.GenerationRequest{
		Tier:     loot.TierGold,
		Count:    1,
		ItemType: loot.ItemTypeWeapon,
		SubType:  "Helmet",
	}.Normalize()

	s.Require().Error(err)
	s.Assert().True(errors.IsInvalidArgument(err))
	fields := errors.GetMeta(err)["validation_errors"].(map[string][]string)
	s.Assert().Equal([]string{`"Helmet" is not a Weapon subtype`}, fields["subType"])
}

func (s *LootTestSuite) TestRequestValidation() {
	testCases := []struct {
		name   string
		req    loot.GenerationRequest
		fields []string
	}{
		{
			name:   "count below one",
			req:    loot.GenerationRequest{Tier: loot.TierBronze, Count: 0},
			fields: []string{"count"},
		},
		{
			name:   "missing tier",
			req:    loot.GenerationRequest{Count: 1},
			fields: []string{"tier"},
		},
		{
			name:   "unknown tier and type",
			req:    loot.GenerationRequest{Tier: "Tin", Count: 1, ItemType: "Shoe"},
			fields: []string{"tier", "itemType"},
		},
		{
			name:   "free text subtype without type",
			req:    loot.GenerationRequest{Tier: loot.TierGold, Count: 1, SubType: "Chalice"},
			fields: []string{"subType"},
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			_, err := tc.req.Normalize()
			s.Require().Error(err)
			s.Assert().True(errors.IsInvalidArgument(err))

			fields := errors.GetMeta(err)["validation_errors"].(map[string][]string)
			for _, field := range tc.fields {
				s.Assert().Contains(fields, field)
			}
		})
	}
}

func (s *LootTestSuite) TestRequestNormalize() {
	req, err := loot.GenerationRequest{
		Tier:    loot.TierSilver,
		Count:   2,
		SubType: "dagger",
		SetName: "  Ashen Vigil ",
	}.Normalize()

	s.Require().NoError(err)
	s.Assert().Equal(loot.ItemTypeWeapon, req.ItemType)
	s.Assert().Equal("Dagger", req.SubType)
	s.Assert().Equal("Ashen Vigil", req.SetName)
}

func (s *LootTestSuite) TestShapeStatsNestsArmorResistances() {
	block := loot.ShapeStats(loot.ItemTypeArmor, map[string]float64{
		loot.StatDefense:          12.4,
		loot.StatFireResistance:   7.6,
		loot.StatPoisonResistance: 3,
		loot.StatWeight:           4.256,
		loot.StatDamage:           40,
	})

	s.Assert().Equal(map[string]float64{
		loot.StatDefense: 12,
		loot.StatWeight:  4.26,
	}, block.Values)
	s.Assert().Equal(map[string]float64{"fire": 8, "poison": 3}, block.ElementalResistance)
	s.Assert().Equal(4, block.Len())

	flat := block.Flatten()
	s.Assert().Equal(float64(8), flat[loot.StatFireResistance])
	s.Assert().NotContains(flat, "fire")
}

func (s *LootTestSuite) TestShapeStatsKeepsOpenShape() {
	block := loot.ShapeStats(loot.ItemTypeRune, map[string]float64{"spellPower": 14.7, loot.StatRange: 2.556})

	s.Assert().Equal(map[string]float64{"spellPower": 15, loot.StatRange: 2.56}, block.Values)
	s.Assert().Nil(block.ElementalResistance)
}

func (s *LootTestSuite) TestStatBlockJSON() {
	block := loot.ShapeStats(loot.ItemTypeArmor, map[string]float64{
		loot.StatDefense:       10,
		loot.StatIceResistance: 5,
	})

	data, err := json.Marshal(block)
	s.Require().NoError(err)
	s.Assert().JSONEq(`{"defense":10,"elementalResistance":{"ice":5}}`, string(data))

	var decoded loot.StatBlock
	s.Require().NoError(json.Unmarshal(data, &decoded))
	s.Assert().Equal(block, decoded)

	s.Assert().Error(json.Unmarshal([]byte(`{"defense":"high"}`), &decoded))
}

func (s *LootTestSuite) TestAllowedStats() {
	s.Assert().Equal([]string{
		loot.StatCharges, loot.StatDurability, loot.StatDuration,
		loot.StatPotency, loot.StatValue, loot.StatWeight,
	}, loot.AllowedStats(loot.ItemTypeConsumable))
	s.Assert().Nil(loot.AllowedStats(loot.ItemTypeArtifact))
	s.Assert().Equal([]string{loot.StatDamage}, loot.RequiredStats(loot.ItemTypeWeapon))
}
