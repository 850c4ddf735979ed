package main

import (
	"strings"

	"github.com/KirkDiggler/rpg-loot/internal/entities/loot"
	"github.com/KirkDiggler/rpg-loot/internal/errors"
)

// defaultSetTypes is the piece list used when set is run without --types
var defaultSetTypes = []string{"weapon", "armor", "accessory"}

func parseTier(raw string) (loot.Tier, error) {
	if strings.TrimSpace(raw) == "" {
		return "", nil
	}
	tier, ok := loot.TierFromString(raw)
	if !ok {
		return "", errors.InvalidArgumentf("unknown tier %q", raw)
	}
	return tier, nil
}

func parseItemType(raw string) (loot.ItemType, error) {
	if strings.TrimSpace(raw) == "" {
		return "", nil
	}
	itemType, ok := loot.ItemTypeFromString(raw)
	if !ok {
		return "", errors.InvalidArgumentf("unknown item type %q", raw)
	}
	return itemType, nil
}

func parseItemTypes(raw []string) ([]loot.ItemType, error) {
	types := make([]loot.ItemType, 0, len(raw))
	for _, entry := range raw {
		if strings.TrimSpace(entry) == "" {
			continue
		}
		itemType, err := parseItemType(entry)
		if err != nil {
			return nil, err
		}
		types = append(types, itemType)
	}
	if len(types) == 0 {
		return nil, errors.InvalidArgument("at least one item type is required")
	}
	return types, nil
}
