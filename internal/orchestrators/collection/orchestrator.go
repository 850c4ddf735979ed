// Package collection saves generated items without duplicates and answers
// queries over the stored collection
package collection

import (
	"context"
	"strings"

	"github.com/KirkDiggler/rpg-loot/internal/entities/loot"
	"github.com/KirkDiggler/rpg-loot/internal/errors"
	"github.com/KirkDiggler/rpg-loot/internal/identity"
	"github.com/KirkDiggler/rpg-loot/internal/logger"
	"github.com/KirkDiggler/rpg-loot/internal/metrics"
	"github.com/KirkDiggler/rpg-loot/internal/orchestrators/generation"
	"github.com/KirkDiggler/rpg-loot/internal/repositories/lootitem"
)

// Service defines the interface for collection operations
type Service interface {
	// SaveIfAbsent stores the item unless an identical one exists.
	// Returns errors.Unavailable when the store cannot be reached.
	SaveIfAbsent(ctx context.Context, input *SaveIfAbsentInput) (*SaveIfAbsentOutput, error)

	// GenerateAndSave runs a generation batch and saves every item it yields.
	// Failed attempts are counted; a storage failure aborts the batch.
	GenerateAndSave(ctx context.Context, input *GenerateAndSaveInput) (*BatchOutput, error)

	// GenerateSetAndSave does the same for a themed set
	GenerateSetAndSave(ctx context.Context, input *GenerateSetAndSaveInput) (*BatchOutput, error)

	List(ctx context.Context, input *ListInput) (*ListOutput, error)
	Get(ctx context.Context, input *GetInput) (*GetOutput, error)
	Stats(ctx context.Context, input *StatsInput) (*StatsOutput, error)
}

// Config holds the dependencies for the collection orchestrator
type Config struct {
	Generation generation.Service
	Repository lootitem.Repository

	// Metrics (optional)
	Metrics *metrics.Metrics
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config cannot be nil")
	}

	vb := errors.NewValidationBuilder()
	if c.Generation == nil {
		vb.RequiredField("Generation")
	}
	if c.Repository == nil {
		vb.RequiredField("Repository")
	}
	return vb.Build()
}

type orchestrator struct {
	generation generation.Service
	repo       lootitem.Repository
	metrics    *metrics.Metrics
}

// NewOrchestrator creates a new collection orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &orchestrator{
		generation: cfg.Generation,
		repo:       cfg.Repository,
		metrics:    cfg.Metrics,
	}, nil
}

func (o *orchestrator) SaveIfAbsent(ctx context.Context, input *SaveIfAbsentInput) (*SaveIfAbsentOutput, error) {
	if input == nil || input.Item == nil {
		return nil, errors.InvalidArgument("item is required")
	}

	hash := identity.Compute(*input.Item)
	out, err := o.repo.InsertIfAbsent(ctx, lootitem.InsertIfAbsentInput{
		Item: *input.Item,
		Hash: hash,
	})
	if err != nil {
		if errors.IsInvalidArgument(err) {
			return nil, err
		}
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to save item")
	}

	o.metrics.RecordSave(out.Created)
	logger.FromContext(ctx).DebugContext(ctx, "item saved",
		"item_id", out.Item.ID,
		"hash", hash,
		"created", out.Created)

	return &SaveIfAbsentOutput{Item: out.Item, Created: out.Created}, nil
}

func (o *orchestrator) GenerateAndSave(ctx context.Context, input *GenerateAndSaveInput) (*BatchOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	generated, err := o.generation.Generate(ctx, &generation.GenerateInput{Request: input.Request})
	if err != nil {
		return nil, err
	}

	return o.saveAll(ctx, input.Request.Count, generated.Items, generated.Failures)
}

func (o *orchestrator) GenerateSetAndSave(ctx context.Context, input *GenerateSetAndSaveInput) (*BatchOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	generated, err := o.generation.GenerateSet(ctx, &generation.GenerateSetInput{
		SetName:   input.SetName,
		Tier:      input.Tier,
		ItemTypes: input.ItemTypes,
		Model:     input.Model,
	})
	if err != nil {
		return nil, err
	}

	return o.saveAll(ctx, len(input.ItemTypes), generated.Items, generated.Failures)
}

// saveAll stores items in order and stops at the first storage failure
func (o *orchestrator) saveAll(ctx context.Context, requested int, items []*loot.LootItem, failures []*generation.AttemptFailure) (*BatchOutput, error) {
	output := &BatchOutput{
		Results:  make([]*SaveIfAbsentOutput, 0, len(items)),
		Failures: failures,
		Counts: Counts{
			Requested: requested,
			Generated: len(items),
			Failed:    len(failures),
		},
	}

	// Saves run even after cancellation so already generated items are kept.
	saveCtx := context.WithoutCancel(ctx)
	for _, item := range items {
		saved, err := o.SaveIfAbsent(saveCtx, &SaveIfAbsentInput{Item: item})
		if err != nil {
			return nil, err
		}

		output.Results = append(output.Results, saved)
		if saved.Created {
			output.Counts.Saved++
		} else {
			output.Counts.Duplicates++
		}
	}

	logger.FromContext(ctx).InfoContext(ctx, "batch saved",
		"requested", output.Counts.Requested,
		"generated", output.Counts.Generated,
		"saved", output.Counts.Saved,
		"duplicates", output.Counts.Duplicates,
		"failed", output.Counts.Failed)

	return output, nil
}

func (o *orchestrator) List(ctx context.Context, input *ListInput) (*ListOutput, error) {
	if input == nil {
		input = &ListInput{}
	}
	if input.Limit < 0 {
		return nil, errors.InvalidArgument("limit cannot be negative")
	}
	if input.Tier != "" && !input.Tier.IsValid() {
		return nil, errors.InvalidArgumentf("unknown tier %q", input.Tier)
	}

	setName := strings.TrimSpace(input.SetName)

	var (
		out *lootitem.ListOutput
		err error
	)
	switch {
	case setName != "" && input.Tier != "":
		// No combined index; filter the set listing by tier.
		out, err = o.repo.ListBySetName(ctx, lootitem.ListBySetNameInput{SetName: setName})
		if err == nil {
			out.Items = filterTier(out.Items, input.Tier, input.Limit)
		}
	case setName != "":
		out, err = o.repo.ListBySetName(ctx, lootitem.ListBySetNameInput{SetName: setName, Limit: input.Limit})
	case input.Tier != "":
		out, err = o.repo.ListByTier(ctx, lootitem.ListByTierInput{Tier: input.Tier, Limit: input.Limit})
	default:
		out, err = o.repo.ListAll(ctx, lootitem.ListAllInput{Limit: input.Limit})
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to list items")
	}

	return &ListOutput{Items: out.Items}, nil
}

func filterTier(items []*loot.StoredItem, tier loot.Tier, limit int) []*loot.StoredItem {
	filtered := make([]*loot.StoredItem, 0, len(items))
	for _, item := range items {
		if item.Tier != tier {
			continue
		}
		filtered = append(filtered, item)
		if limit > 0 && len(filtered) == limit {
			break
		}
	}
	return filtered
}

func (o *orchestrator) Get(ctx context.Context, input *GetInput) (*GetOutput, error) {
	if input == nil || strings.TrimSpace(input.ID) == "" {
		return nil, errors.InvalidArgument("id is required")
	}

	out, err := o.repo.GetByID(ctx, lootitem.GetByIDInput{ID: strings.TrimSpace(input.ID)})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get item %s", input.ID)
	}
	return &GetOutput{Item: out.Item}, nil
}

func (o *orchestrator) Stats(ctx context.Context, _ *StatsInput) (*StatsOutput, error) {
	total, err := o.repo.CountAll(ctx, lootitem.CountAllInput{})
	if err != nil {
		return nil, errors.Wrap(err, "failed to count items")
	}

	byTier := make(map[loot.Tier]int64, len(loot.AllTiers()))
	for _, tier := range loot.AllTiers() {
		count, err := o.repo.CountByTier(ctx, lootitem.CountByTierInput{Tier: tier})
		if err != nil {
			return nil, errors.Wrapf(err, "failed to count %s items", tier)
		}
		byTier[tier] = count.Count
	}

	return &StatsOutput{Total: total.Count, ByTier: byTier}, nil
}
