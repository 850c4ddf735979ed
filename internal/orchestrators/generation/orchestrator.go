// Package generation runs best-effort generation batches against the text
// generation service
package generation

//go:generate mockgen -destination=mock/mock_service.go -package=generationmock github.com/KirkDiggler/rpg-loot/internal/orchestrators/generation Service

import (
	"context"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/KirkDiggler/rpg-loot/internal/clients/textgen"
	"github.com/KirkDiggler/rpg-loot/internal/engine"
	"github.com/KirkDiggler/rpg-loot/internal/entities/loot"
	"github.com/KirkDiggler/rpg-loot/internal/errors"
	"github.com/KirkDiggler/rpg-loot/internal/logger"
	"github.com/KirkDiggler/rpg-loot/internal/metrics"
	"github.com/KirkDiggler/rpg-loot/internal/prompt"
	"github.com/KirkDiggler/rpg-loot/internal/reconciler"
	"github.com/KirkDiggler/rpg-loot/internal/schema"
)

// Service defines the interface for generation operations
type Service interface {
	// Generate runs request.Count independent attempts. A failed attempt is
	// logged and skipped; only a malformed request returns an error.
	Generate(ctx context.Context, input *GenerateInput) (*GenerateOutput, error)

	// GenerateSet runs one single-item batch per item type with the set name
	// fixed, skipping types whose attempt failed
	GenerateSet(ctx context.Context, input *GenerateSetInput) (*GenerateSetOutput, error)
}

// Config holds the dependencies for the generation orchestrator
type Config struct {
	TextGen    textgen.Client
	Engine     engine.Engine
	Reconciler reconciler.Reconciler

	// Concurrency bounds attempts in flight per batch (optional, defaults to 1)
	Concurrency int
	// Metrics (optional)
	Metrics *metrics.Metrics
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config cannot be nil")
	}

	vb := errors.NewValidationBuilder()
	if c.TextGen == nil {
		vb.RequiredField("TextGen")
	}
	if c.Engine == nil {
		vb.RequiredField("Engine")
	}
	if c.Reconciler == nil {
		vb.RequiredField("Reconciler")
	}
	if c.Concurrency < 0 {
		vb.InvalidField("Concurrency", "cannot be negative")
	}
	return vb.Build()
}

type orchestrator struct {
	textGen     textgen.Client
	engine      engine.Engine
	reconciler  reconciler.Reconciler
	concurrency int
	metrics     *metrics.Metrics
}

// NewOrchestrator creates a new generation orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	concurrency := cfg.Concurrency
	if concurrency == 0 {
		concurrency = 1
	}

	return &orchestrator{
		textGen:     cfg.TextGen,
		engine:      cfg.Engine,
		reconciler:  cfg.Reconciler,
		concurrency: concurrency,
		metrics:     cfg.Metrics,
	}, nil
}

// outcome is the result slot for one attempt
type outcome struct {
	ran     bool
	item    *loot.LootItem
	failure *AttemptFailure
}

func (o *orchestrator) Generate(ctx context.Context, input *GenerateInput) (*GenerateOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	req, err := input.Request.Normalize()
	if err != nil {
		return nil, err
	}

	outcomes := o.runAttempts(ctx, req)

	output := &GenerateOutput{
		Items:    []*loot.LootItem{},
		Failures: []*AttemptFailure{},
	}
	for _, oc := range outcomes {
		if !oc.ran {
			continue
		}
		output.Attempts++
		if oc.failure != nil {
			output.Failures = append(output.Failures, oc.failure)
			continue
		}
		output.Items = append(output.Items, oc.item)
	}

	log := logger.FromContext(ctx)
	if ctx.Err() != nil {
		log.InfoContext(ctx, "generation batch interrupted",
			"requested", req.Count,
			"attempts", output.Attempts,
			"generated", len(output.Items))
	} else {
		log.InfoContext(ctx, "generation batch finished",
			"tier", req.Tier,
			"requested", req.Count,
			"generated", len(output.Items),
			"failed", len(output.Failures))
	}

	return output, nil
}

// runAttempts fills one slot per attempt so results keep attempt order
// whatever the completion order
func (o *orchestrator) runAttempts(ctx context.Context, req loot.GenerationRequest) []outcome {
	outcomes := make([]outcome, req.Count)

	if o.concurrency == 1 {
		for i := range outcomes {
			if ctx.Err() != nil {
				break
			}
			outcomes[i] = o.attempt(ctx, req, i+1)
		}
		return outcomes
	}

	var g errgroup.Group
	g.SetLimit(o.concurrency)
	for i := range outcomes {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			outcomes[i] = o.attempt(ctx, req, i+1)
			return nil
		})
	}
	// Attempts never return errors; failures live in their slot.
	_ = g.Wait()

	return outcomes
}

// attempt runs one prompt, call and reconcile cycle
func (o *orchestrator) attempt(ctx context.Context, req loot.GenerationRequest, n int) outcome {
	start := time.Now()

	item, itemType, subType, err := o.produce(ctx, req)
	o.metrics.RecordAttempt(err == nil, time.Since(start))
	if err == nil {
		return outcome{ran: true, item: item}
	}

	failed := errors.GenerationFailed(err, "generation attempt failed").
		WithMeta("attempt", n).
		WithMeta("item_type", itemType.String())

	logger.FromContext(ctx).WarnContext(ctx, "generation attempt failed",
		"attempt", n,
		"item_type", itemType,
		"sub_type", subType,
		"error", err)

	return outcome{
		ran: true,
		failure: &AttemptFailure{
			Attempt:  n,
			ItemType: itemType,
			SubType:  subType,
			Err:      failed,
		},
	}
}

func (o *orchestrator) produce(ctx context.Context, req loot.GenerationRequest) (*loot.LootItem, loot.ItemType, string, error) {
	itemType := req.ItemType
	if itemType == "" {
		picked, err := o.engine.PickItemType()
		if err != nil {
			return nil, "", "", err
		}
		itemType = picked
	}

	subType := req.SubType
	if subType == "" {
		picked, err := o.engine.PickSubType(itemType)
		if err != nil {
			return nil, itemType, "", err
		}
		subType = picked
	}

	attemptReq := req
	attemptReq.Count = 1
	attemptReq.ItemType = itemType
	attemptReq.SubType = subType

	resp, err := o.textGen.Generate(ctx, &textgen.GenerateInput{
		Model:  req.Model,
		Prompt: prompt.Build(attemptReq, subType),
		Format: schema.ResponseFormat(),
	})
	if err != nil {
		return nil, itemType, subType, err
	}

	item, err := o.reconciler.Reconcile(resp.Text, attemptReq, subType)
	if err != nil {
		return nil, itemType, subType, err
	}
	return item, itemType, subType, nil
}

func (o *orchestrator) GenerateSet(ctx context.Context, input *GenerateSetInput) (*GenerateSetOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	requests, err := setRequests(input)
	if err != nil {
		return nil, err
	}

	output := &GenerateSetOutput{
		Items:    []*loot.LootItem{},
		Failures: []*AttemptFailure{},
	}
	for i, req := range requests {
		if ctx.Err() != nil {
			break
		}

		result, err := o.Generate(ctx, &GenerateInput{Request: req})
		if err != nil {
			return nil, err
		}
		output.Items = append(output.Items, result.Items...)
		for _, f := range result.Failures {
			f.Attempt = i + 1
			output.Failures = append(output.Failures, f)
		}
	}

	logger.FromContext(ctx).InfoContext(ctx, "set generation finished",
		"set_name", input.SetName,
		"tier", input.Tier,
		"requested", len(requests),
		"generated", len(output.Items))

	return output, nil
}

// setRequests validates every piece up front so no call is made for a bad set
func setRequests(input *GenerateSetInput) ([]loot.GenerationRequest, error) {
	vb := errors.NewValidationBuilder()
	setName := strings.TrimSpace(input.SetName)
	if setName == "" {
		vb.RequiredField("setName")
	}
	if len(input.ItemTypes) == 0 {
		vb.RequiredField("itemTypes")
	}
	for i, itemType := range input.ItemTypes {
		if itemType == "" {
			vb.Fieldf("itemTypes", "entry %d is empty", i)
		}
	}
	if err := vb.Build(); err != nil {
		return nil, err
	}

	requests := make([]loot.GenerationRequest, 0, len(input.ItemTypes))
	for _, itemType := range input.ItemTypes {
		req, err := loot.GenerationRequest{
			Tier:     input.Tier,
			Count:    1,
			ItemType: itemType,
			SetName:  setName,
			Model:    input.Model,
		}.Normalize()
		if err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}
	return requests, nil
}
