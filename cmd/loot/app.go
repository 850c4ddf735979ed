package main

import (
	"context"
	"log/slog"

	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/rpg-loot/internal/clients/textgen"
	"github.com/KirkDiggler/rpg-loot/internal/config"
	"github.com/KirkDiggler/rpg-loot/internal/engine"
	"github.com/KirkDiggler/rpg-loot/internal/errors"
	"github.com/KirkDiggler/rpg-loot/internal/metrics"
	"github.com/KirkDiggler/rpg-loot/internal/orchestrators/collection"
	"github.com/KirkDiggler/rpg-loot/internal/orchestrators/generation"
	"github.com/KirkDiggler/rpg-loot/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-loot/internal/pkg/idgen"
	"github.com/KirkDiggler/rpg-loot/internal/reconciler"
	"github.com/KirkDiggler/rpg-loot/internal/redis"
	"github.com/KirkDiggler/rpg-loot/internal/repositories/lootitem"
	"github.com/KirkDiggler/rpg-loot/internal/schema"
)

// app holds the wired services for one command run
type app struct {
	textGen    textgen.Client
	generation generation.Service
	collection collection.Service
	metrics    *metrics.Metrics

	closers []func() error
}

// newApp wires the generation pipeline and, when withStore is set, the
// configured store and the collection service on top of it
func newApp(ctx context.Context, cfg *config.Config, withStore bool) (*app, error) {
	a := &app{metrics: metrics.New()}

	textGen, err := textgen.New(&textgen.Config{
		BaseURL:        cfg.OllamaHost,
		Model:          cfg.Model,
		Timeout:        cfg.Timeout,
		ModelsCacheTTL: cfg.ModelsCacheTTL,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create text generation client")
	}
	a.textGen = textGen

	eng, err := engine.New(&engine.Config{DiceRoller: dice.DefaultRoller})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create engine")
	}

	validator, err := schema.NewValidator()
	if err != nil {
		return nil, errors.Wrap(err, "failed to compile item schema")
	}

	rec, err := reconciler.New(&reconciler.Config{Engine: eng, Validator: validator})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create reconciler")
	}

	a.generation, err = generation.NewOrchestrator(&generation.Config{
		TextGen:     textGen,
		Engine:      eng,
		Reconciler:  rec,
		Concurrency: cfg.Concurrency,
		Metrics:     a.metrics,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create generation orchestrator")
	}

	if !withStore {
		return a, nil
	}

	repo, err := a.openRepository(ctx, cfg)
	if err != nil {
		a.Close()
		return nil, err
	}

	a.collection, err = collection.NewOrchestrator(&collection.Config{
		Generation: a.generation,
		Repository: repo,
		Metrics:    a.metrics,
	})
	if err != nil {
		a.Close()
		return nil, errors.Wrap(err, "failed to create collection orchestrator")
	}

	return a, nil
}

func (a *app) openRepository(ctx context.Context, cfg *config.Config) (lootitem.Repository, error) {
	ids := idgen.NewUUID("loot")
	clk := clock.New()

	switch cfg.Store {
	case config.StoreRedis:
		client, err := redis.NewClientFromURL(cfg.RedisURL, &redis.Options{})
		if err != nil {
			return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to create redis client")
		}
		a.closers = append(a.closers, client.Close)

		if err := client.Ping(ctx).Err(); err != nil {
			return nil, errors.WrapWithCodef(err, errors.CodeUnavailable, "redis is not reachable at %s", cfg.RedisURL)
		}

		return lootitem.NewRedis(&lootitem.RedisConfig{
			Client:      client,
			IDGenerator: ids,
			Clock:       clk,
		})

	default:
		db, err := lootitem.OpenDB(ctx, cfg.Store, cfg.DatabaseDSN)
		if err != nil {
			return nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to access database handle")
		}
		a.closers = append(a.closers, sqlDB.Close)

		return lootitem.NewSQL(&lootitem.SQLConfig{
			DB:          db,
			IDGenerator: ids,
			Clock:       clk,
		})
	}
}

// Close releases store connections
func (a *app) Close() {
	for _, closeFn := range a.closers {
		if err := closeFn(); err != nil {
			slog.Warn("failed to close store connection", "error", err)
		}
	}
	a.closers = nil
}

// flushMetrics exports the run's counters when a path was given
func (a *app) flushMetrics(ctx context.Context, path string) {
	if path == "" {
		return
	}
	if err := a.metrics.WriteTextfile(path); err != nil {
		slog.WarnContext(ctx, "failed to write metrics file",
			"path", path,
			"error", err)
	}
}

// probe fails fast when the model cannot answer
func (a *app) probe(ctx context.Context, cfg *config.Config) error {
	if a.textGen.Ping(ctx, cfg.Model) {
		return nil
	}
	return errors.Unavailablef(
		"model %q did not answer at %s; start the service (ollama serve) and install the model (ollama pull %s)",
		cfg.Model, cfg.OllamaHost, cfg.Model)
}
