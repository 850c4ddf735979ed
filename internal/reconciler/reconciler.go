// Package reconciler turns raw model output into a validated LootItem.
//
// Model output is never trusted as-is. The request decides type, tier and
// subtype, stats are merged field by field over a rolled baseline, rarity is
// always re-rolled inside the tier band, and the assembled item must pass the
// item schema before it is returned.
package reconciler

//go:generate mockgen -destination=mock/mock_reconciler.go -package=reconcilermock github.com/KirkDiggler/rpg-loot/internal/reconciler Reconciler

import (
	"encoding/json"
	"strings"

	"github.com/KirkDiggler/rpg-loot/internal/engine"
	"github.com/KirkDiggler/rpg-loot/internal/entities/loot"
	"github.com/KirkDiggler/rpg-loot/internal/errors"
)

// Reconciler merges a model response with the request that produced it
type Reconciler interface {
	// Reconcile returns errors.MalformedResponse when raw does not parse into
	// the response shape and errors.SchemaViolation when the assembled item
	// fails validation.
	Reconcile(raw string, req loot.GenerationRequest, subType string) (*loot.LootItem, error)
}

// SchemaValidator checks raw responses and assembled items
type SchemaValidator interface {
	ValidateResponse(data []byte) error
	ValidateItem(item loot.LootItem) error
}

// Config holds the dependencies for the reconciler
type Config struct {
	Engine    engine.Engine
	Validator SchemaValidator
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config cannot be nil")
	}

	vb := errors.NewValidationBuilder()
	if c.Engine == nil {
		vb.RequiredField("Engine")
	}
	if c.Validator == nil {
		vb.RequiredField("Validator")
	}
	return vb.Build()
}

type reconciler struct {
	engine    engine.Engine
	validator SchemaValidator
}

// New creates a reconciler
func New(cfg *Config) (Reconciler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &reconciler{
		engine:    cfg.Engine,
		validator: cfg.Validator,
	}, nil
}

// modelResponse is the loosely typed shape the model is asked to return.
// type, tier, subType and rarity are read only to check the shape.
type modelResponse struct {
	Name              string                 `json:"name"`
	Type              string                 `json:"type"`
	SubType           string                 `json:"subType"`
	Tier              string                 `json:"tier"`
	Description       string                 `json:"description"`
	Stats             map[string]float64     `json:"stats"`
	MagicalProperties []loot.MagicalProperty `json:"magicalProperties"`
	Lore              string                 `json:"lore"`
	SetName           string                 `json:"setName"`
	Rarity            float64                `json:"rarity"`
}

func (r *reconciler) Reconcile(raw string, req loot.GenerationRequest, subType string) (*loot.LootItem, error) {
	if !req.ItemType.IsValid() {
		return nil, errors.InvalidArgumentf("item type must be resolved before reconciling, got %q", req.ItemType)
	}

	response, err := r.parse(raw)
	if err != nil {
		return nil, err
	}

	baseline, err := r.engine.RollBaseline(req.ItemType, req.Tier)
	if err != nil {
		return nil, errors.Wrap(err, "failed to roll baseline stats")
	}
	rarity, err := r.engine.RollRarity(req.Tier)
	if err != nil {
		return nil, errors.Wrap(err, "failed to roll rarity")
	}

	item := &loot.LootItem{
		Name:              strings.TrimSpace(response.Name),
		Type:              req.ItemType,
		SubType:           resolveSubType(response.SubType, subType),
		Tier:              req.Tier,
		Description:       strings.TrimSpace(response.Description),
		Stats:             loot.ShapeStats(req.ItemType, mergeStats(baseline, response.Stats)),
		MagicalProperties: response.MagicalProperties,
		Lore:              strings.TrimSpace(response.Lore),
		SetName:           strings.TrimSpace(response.SetName),
		Rarity:            rarity,
	}
	if item.MagicalProperties == nil {
		item.MagicalProperties = []loot.MagicalProperty{}
	}
	if req.SetName != "" {
		item.SetName = req.SetName
	}

	if err := r.validator.ValidateItem(*item); err != nil {
		return nil, err
	}
	return item, nil
}

func (r *reconciler) parse(raw string) (*modelResponse, error) {
	body := stripFences(raw)
	if body == "" {
		return nil, errors.MalformedResponse("response is empty")
	}

	if err := r.validator.ValidateResponse([]byte(body)); err != nil {
		return nil, err
	}

	var response modelResponse
	if err := json.Unmarshal([]byte(body), &response); err != nil {
		return nil, errors.MalformedResponsef("failed to decode response: %v", err)
	}
	return &response, nil
}

// resolveSubType prefers the subtype chosen for the attempt
func resolveSubType(fromModel, resolved string) string {
	if resolved != "" {
		return resolved
	}
	return strings.TrimSpace(fromModel)
}

// mergeStats overlays model values onto the baseline one key at a time
func mergeStats(baseline, fromModel map[string]float64) map[string]float64 {
	merged := make(map[string]float64, len(baseline)+len(fromModel))
	for name, v := range baseline {
		merged[name] = v
	}
	for name, v := range fromModel {
		merged[name] = v
	}
	return merged
}

// stripFences removes a surrounding markdown code fence, with or without a
// language tag
func stripFences(raw string) string {
	text := strings.TrimSpace(raw)
	if !strings.HasPrefix(text, "```") {
		return text
	}

	text = strings.TrimPrefix(text, "```")
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		text = text[i+1:]
	} else {
		text = strings.TrimPrefix(text, "json")
	}
	text = strings.TrimSpace(text)
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}
