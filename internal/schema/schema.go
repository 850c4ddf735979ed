// Package schema builds the JSON schemas for loot items: the response format
// sent to the text generation service and the item schema every reconciled
// item must satisfy.
package schema

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"sort"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/KirkDiggler/rpg-loot/internal/engine"
	"github.com/KirkDiggler/rpg-loot/internal/entities/loot"
	"github.com/KirkDiggler/rpg-loot/internal/errors"
)

const (
	responseSchemaURL = "https://rpg-loot.local/schemas/loot-response.json"
	itemSchemaURL     = "https://rpg-loot.local/schemas/loot-item.json"

	nonBlankPattern = `\S`
)

// Validator checks model responses and assembled items against their schemas
type Validator struct {
	response *jsonschema.Schema
	item     *jsonschema.Schema
}

// NewValidator compiles the response and item schemas
func NewValidator() (*Validator, error) {
	compiler := jsonschema.NewCompiler()

	if err := addResource(compiler, responseSchemaURL, responseSchema(false)); err != nil {
		return nil, err
	}
	if err := addResource(compiler, itemSchemaURL, itemSchema()); err != nil {
		return nil, err
	}

	response, err := compiler.Compile(responseSchemaURL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to compile response schema")
	}
	item, err := compiler.Compile(itemSchemaURL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to compile item schema")
	}

	return &Validator{response: response, item: item}, nil
}

// addResource round-trips the document through JSON so the compiler sees
// plain JSON values
func addResource(compiler *jsonschema.Compiler, url string, doc map[string]interface{}) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return errors.Wrapf(err, "failed to marshal schema %s", url)
	}
	parsed, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return errors.Wrapf(err, "failed to parse schema %s", url)
	}
	if err := compiler.AddResource(url, parsed); err != nil {
		return errors.Wrapf(err, "failed to add schema %s", url)
	}
	return nil
}

// ValidateResponse checks raw model output against the permissive response shape.
// Returns errors.MalformedResponse when the text is not JSON or does not fit.
func (v *Validator) ValidateResponse(data []byte) error {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return errors.MalformedResponsef("response is not valid JSON: %v", err)
	}

	if err := v.response.Validate(doc); err != nil {
		violations := collectViolations(err)
		return errors.MalformedResponsef("response does not match the expected shape: %s", strings.Join(violations, "; ")).
			WithMeta("violations", violations)
	}
	return nil
}

// ValidateItem checks an assembled item against the item schema.
// Returns errors.SchemaViolation listing each failing location.
func (v *Validator) ValidateItem(item loot.LootItem) error {
	if item.MagicalProperties == nil {
		item.MagicalProperties = []loot.MagicalProperty{}
	}

	data, err := json.Marshal(item)
	if err != nil {
		return errors.Wrap(err, "failed to marshal item")
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return errors.Wrap(err, "failed to decode item")
	}

	if err := v.item.Validate(doc); err != nil {
		violations := collectViolations(err)
		return errors.SchemaViolationf("item does not match the %s schema: %s", item.Type, strings.Join(violations, "; ")).
			WithMeta("violations", violations)
	}
	return nil
}

// ResponseFormat returns the target shape descriptor sent with each
// generation call
func ResponseFormat() json.RawMessage {
	data, err := json.Marshal(responseSchema(true))
	if err != nil {
		// The schema is built from static maps of strings and numbers.
		panic(fmt.Sprintf("schema: failed to marshal response format: %v", err))
	}
	return data
}

func collectViolations(err error) []string {
	var verr *jsonschema.ValidationError
	if !stderrors.As(err, &verr) {
		return []string{err.Error()}
	}

	var out []string
	var walk func(e *jsonschema.ValidationError)
	walk = func(e *jsonschema.ValidationError) {
		if len(e.Causes) == 0 {
			out = append(out, formatViolation(e))
			return
		}
		for _, cause := range e.Causes {
			walk(cause)
		}
	}
	walk(verr)

	sort.Strings(out)
	return out
}

func formatViolation(e *jsonschema.ValidationError) string {
	location := "/" + strings.Join(e.InstanceLocation, "/")

	keyword := "schema"
	if e.ErrorKind != nil {
		if path := e.ErrorKind.KeywordPath(); len(path) > 0 {
			keyword = strings.Join(path, ".")
		}
	}
	return fmt.Sprintf("%s: %s", location, keyword)
}

func stringSchema() map[string]interface{} {
	return map[string]interface{}{"type": "string"}
}

func nonBlankString() map[string]interface{} {
	return map[string]interface{}{"type": "string", "pattern": nonBlankPattern}
}

func magicalPropertySchema() map[string]interface{} {
	return map[string]interface{}{
		"type":     "object",
		"required": []string{"name", "description"},
		"properties": map[string]interface{}{
			"name":        nonBlankString(),
			"description": stringSchema(),
			"magnitude":   map[string]interface{}{"type": "number"},
		},
	}
}

func tierNames() []string {
	names := make([]string, 0, len(loot.AllTiers()))
	for _, tier := range loot.AllTiers() {
		names = append(names, tier.String())
	}
	return names
}

func itemTypeNames() []string {
	names := make([]string, 0, len(loot.AllItemTypes()))
	for _, t := range loot.AllItemTypes() {
		names = append(names, t.String())
	}
	return names
}

// responseSchema describes what the model is asked to return. The strict
// form adds enums as hints for the model; the permissive form only checks
// presence and JSON types because type, subType, tier and rarity are
// overridden during reconciliation anyway.
func responseSchema(strict bool) map[string]interface{} {
	typeField := stringSchema()
	tierField := stringSchema()
	rarityField := map[string]interface{}{"type": "number"}
	if strict {
		typeField["enum"] = itemTypeNames()
		tierField["enum"] = tierNames()
		rarityField = map[string]interface{}{"type": "integer", "minimum": 0, "maximum": 100}
	}

	return map[string]interface{}{
		"$schema":  "https://json-schema.org/draft/2020-12/schema",
		"type":     "object",
		"required": []string{"name", "type", "subType", "tier", "description", "stats", "rarity"},
		"properties": map[string]interface{}{
			"name":        stringSchema(),
			"type":        typeField,
			"subType":     stringSchema(),
			"tier":        tierField,
			"description": stringSchema(),
			"stats": map[string]interface{}{
				"type":                 "object",
				"additionalProperties": map[string]interface{}{"type": "number"},
			},
			"magicalProperties": map[string]interface{}{
				"type":  "array",
				"items": magicalPropertySchema(),
			},
			"lore":    stringSchema(),
			"setName": stringSchema(),
			"rarity":  rarityField,
		},
	}
}

func statValueSchema() map[string]interface{} {
	return map[string]interface{}{"type": "number", "minimum": 0}
}

func statsSchema(itemType loot.ItemType) map[string]interface{} {
	if !loot.HasClosedStats(itemType) {
		return map[string]interface{}{
			"type":                 "object",
			"additionalProperties": statValueSchema(),
		}
	}

	props := map[string]interface{}{}
	elements := map[string]interface{}{}
	for _, name := range loot.AllowedStats(itemType) {
		if element, ok := loot.ElementalResistance(name); ok && itemType == loot.ItemTypeArmor {
			elements[element] = statValueSchema()
			continue
		}
		props[name] = statValueSchema()
	}
	if len(elements) > 0 {
		props[loot.ElementalResistanceKey] = map[string]interface{}{
			"type":                 "object",
			"properties":           elements,
			"additionalProperties": false,
		}
	}

	out := map[string]interface{}{
		"type":                 "object",
		"properties":           props,
		"additionalProperties": false,
	}
	if required := loot.RequiredStats(itemType); len(required) > 0 {
		out["required"] = required
	}
	return out
}

func itemSchema() map[string]interface{} {
	var rules []interface{}

	for _, itemType := range loot.AllItemTypes() {
		props := map[string]interface{}{"stats": statsSchema(itemType)}
		if !itemType.HasOpenSubTypes() {
			props["subType"] = map[string]interface{}{"enum": itemType.SubTypes()}
		}
		rules = append(rules, map[string]interface{}{
			"if": map[string]interface{}{
				"properties": map[string]interface{}{"type": map[string]interface{}{"const": itemType.String()}},
			},
			"then": map[string]interface{}{"properties": props},
		})
	}

	for _, tier := range loot.AllTiers() {
		band := engine.RarityRangeFor(tier)
		rules = append(rules, map[string]interface{}{
			"if": map[string]interface{}{
				"properties": map[string]interface{}{"tier": map[string]interface{}{"const": tier.String()}},
			},
			"then": map[string]interface{}{
				"properties": map[string]interface{}{
					"rarity": map[string]interface{}{"minimum": band.Min, "maximum": band.Max},
				},
			},
		})
	}

	return map[string]interface{}{
		"$schema": "https://json-schema.org/draft/2020-12/schema",
		"type":    "object",
		"required": []string{
			"name", "type", "subType", "tier", "description", "stats", "magicalProperties", "rarity",
		},
		"properties": map[string]interface{}{
			"name":        nonBlankString(),
			"type":        map[string]interface{}{"enum": itemTypeNames()},
			"subType":     nonBlankString(),
			"tier":        map[string]interface{}{"enum": tierNames()},
			"description": nonBlankString(),
			"stats":       map[string]interface{}{"type": "object"},
			"magicalProperties": map[string]interface{}{
				"type":  "array",
				"items": magicalPropertySchema(),
			},
			"lore":    stringSchema(),
			"setName": stringSchema(),
			"rarity":  map[string]interface{}{"type": "integer", "minimum": 0, "maximum": 100},
		},
		"allOf": rules,
	}
}
