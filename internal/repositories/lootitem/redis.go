package lootitem

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/rpg-loot/internal/entities/loot"
	"github.com/KirkDiggler/rpg-loot/internal/errors"
	"github.com/KirkDiggler/rpg-loot/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-loot/internal/pkg/idgen"
	redisclient "github.com/KirkDiggler/rpg-loot/internal/redis"
)

const (
	itemKeyPrefix = "loot:item:"
	hashKeyPrefix = "loot:hash:"
	tierKeyPrefix = "loot:tier:"
	setKeyPrefix  = "loot:set:"
	allItemsKey   = "loot:items"
	sequenceKey   = "loot:seq"

	// A concurrent writer may hold the hash claim before its item is written.
	pendingItemRetries = 5
	pendingItemBackoff = 20 * time.Millisecond
)

// RedisConfig contains configuration for the Redis loot item repository
type RedisConfig struct {
	Client      redisclient.Client
	IDGenerator idgen.Generator
	Clock       clock.Clock
}

// Validate validates the RedisConfig
func (cfg *RedisConfig) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}

	vb := errors.NewValidationBuilder()
	if cfg.Client == nil {
		vb.RequiredField("Client")
	}
	if cfg.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}
	if cfg.Clock == nil {
		vb.RequiredField("Clock")
	}
	return vb.Build()
}

type redisRepository struct {
	client redisclient.Client
	idGen  idgen.Generator
	clock  clock.Clock
}

var _ Repository = (*redisRepository)(nil)

// NewRedis creates a new Redis-backed loot item repository
func NewRedis(cfg *RedisConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &redisRepository{
		client: cfg.Client,
		idGen:  cfg.IDGenerator,
		clock:  cfg.Clock,
	}, nil
}

// InsertIfAbsent claims the hash with SETNX, then writes the item and its
// indexes in one transaction. The sorted-set score is a store-wide sequence
// so listings stay newest first even when timestamps collide.
func (r *redisRepository) InsertIfAbsent(ctx context.Context, input InsertIfAbsentInput) (*InsertIfAbsentOutput, error) {
	if err := validateInsert(input); err != nil {
		return nil, err
	}

	id := r.idGen.Generate()
	claimed, err := r.client.SetNX(ctx, hashKeyPrefix+input.Hash, id, 0).Result()
	if err != nil {
		return nil, storageError(err, "failed to claim item hash")
	}
	if !claimed {
		existing, err := r.waitForHash(ctx, input.Hash)
		if err != nil {
			return nil, err
		}
		return &InsertIfAbsentOutput{Item: existing, Created: false}, nil
	}

	stored := &loot.StoredItem{
		LootItem:  input.Item,
		ID:        id,
		Hash:      input.Hash,
		CreatedAt: r.clock.Now(),
	}
	data, err := json.Marshal(stored)
	if err != nil {
		r.releaseClaim(ctx, input.Hash)
		return nil, errors.Wrap(err, "failed to marshal item")
	}

	seq, err := r.client.Incr(ctx, sequenceKey).Result()
	if err != nil {
		r.releaseClaim(ctx, input.Hash)
		return nil, storageError(err, "failed to allocate item sequence")
	}

	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		member := redis.Z{Score: float64(seq), Member: id}
		pipe.Set(ctx, itemKeyPrefix+id, data, 0)
		pipe.ZAdd(ctx, allItemsKey, member)
		pipe.ZAdd(ctx, tierKeyPrefix+string(stored.Tier), member)
		if stored.SetName != "" {
			pipe.ZAdd(ctx, setKeyPrefix+stored.SetName, member)
		}
		return nil
	})
	if err != nil {
		r.releaseClaim(ctx, input.Hash)
		return nil, storageError(err, "failed to store item")
	}

	slog.DebugContext(ctx, "stored loot item",
		"item_id", id,
		"hash", input.Hash,
		"tier", stored.Tier)

	return &InsertIfAbsentOutput{Item: stored, Created: true}, nil
}

// releaseClaim drops a hash claim whose item could not be written
func (r *redisRepository) releaseClaim(ctx context.Context, hash string) {
	if err := r.client.Del(ctx, hashKeyPrefix+hash).Err(); err != nil {
		slog.WarnContext(ctx, "failed to release hash claim",
			"hash", hash,
			"error", err)
	}
}

func (r *redisRepository) waitForHash(ctx context.Context, hash string) (*loot.StoredItem, error) {
	for attempt := 0; ; attempt++ {
		out, err := r.GetByHash(ctx, GetByHashInput{Hash: hash})
		if err == nil {
			return out.Item, nil
		}
		if !errors.IsNotFound(err) || attempt == pendingItemRetries {
			return nil, err
		}

		timer := time.NewTimer(pendingItemBackoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, errors.FromContext(ctx.Err())
		case <-timer.C:
		}
	}
}

func (r *redisRepository) GetByID(ctx context.Context, input GetByIDInput) (*GetOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errIDEmpty)
	}

	data, err := r.client.Get(ctx, itemKeyPrefix+input.ID).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf("item %s not found", input.ID)
		}
		return nil, storageError(err, "failed to get item")
	}

	item, err := decodeItem(data)
	if err != nil {
		return nil, err
	}
	return &GetOutput{Item: item}, nil
}

func (r *redisRepository) GetByHash(ctx context.Context, input GetByHashInput) (*GetOutput, error) {
	if input.Hash == "" {
		return nil, errors.InvalidArgument(errHashEmpty)
	}

	id, err := r.client.Get(ctx, hashKeyPrefix+input.Hash).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf("item with hash %s not found", input.Hash)
		}
		return nil, storageError(err, "failed to resolve item hash")
	}

	out, err := r.GetByID(ctx, GetByIDInput{ID: id})
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, errors.NotFoundf("item with hash %s not found", input.Hash)
		}
		return nil, err
	}
	return out, nil
}

func (r *redisRepository) ListByTier(ctx context.Context, input ListByTierInput) (*ListOutput, error) {
	if err := validateTier(input.Tier); err != nil {
		return nil, err
	}
	if err := validateLimit(input.Limit); err != nil {
		return nil, err
	}
	return r.listIndex(ctx, tierKeyPrefix+string(input.Tier), input.Limit)
}

func (r *redisRepository) ListBySetName(ctx context.Context, input ListBySetNameInput) (*ListOutput, error) {
	if input.SetName == "" {
		return nil, errors.InvalidArgument(errSetNameEmpty)
	}
	if err := validateLimit(input.Limit); err != nil {
		return nil, err
	}
	return r.listIndex(ctx, setKeyPrefix+input.SetName, input.Limit)
}

func (r *redisRepository) ListAll(ctx context.Context, input ListAllInput) (*ListOutput, error) {
	if err := validateLimit(input.Limit); err != nil {
		return nil, err
	}
	return r.listIndex(ctx, allItemsKey, input.Limit)
}

func (r *redisRepository) listIndex(ctx context.Context, key string, limit int) (*ListOutput, error) {
	stop := int64(-1)
	if limit > 0 {
		stop = int64(limit - 1)
	}

	ids, err := r.client.ZRevRange(ctx, key, 0, stop).Result()
	if err != nil {
		return nil, storageError(err, "failed to read item index")
	}
	if len(ids) == 0 {
		return &ListOutput{Items: []*loot.StoredItem{}}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = itemKeyPrefix + id
	}
	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, storageError(err, "failed to read items")
	}

	items := make([]*loot.StoredItem, 0, len(values))
	for i, value := range values {
		data, ok := value.(string)
		if !ok {
			slog.WarnContext(ctx, "indexed item missing",
				"index", key,
				"item_id", ids[i])
			continue
		}
		item, err := decodeItem(data)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return &ListOutput{Items: items}, nil
}

func (r *redisRepository) CountAll(ctx context.Context, _ CountAllInput) (*CountOutput, error) {
	count, err := r.client.ZCard(ctx, allItemsKey).Result()
	if err != nil {
		return nil, storageError(err, "failed to count items")
	}
	return &CountOutput{Count: count}, nil
}

func (r *redisRepository) CountByTier(ctx context.Context, input CountByTierInput) (*CountOutput, error) {
	if err := validateTier(input.Tier); err != nil {
		return nil, err
	}

	count, err := r.client.ZCard(ctx, tierKeyPrefix+string(input.Tier)).Result()
	if err != nil {
		return nil, storageError(err, "failed to count items")
	}
	return &CountOutput{Count: count}, nil
}

func decodeItem(data string) (*loot.StoredItem, error) {
	var item loot.StoredItem
	if err := json.Unmarshal([]byte(data), &item); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal item")
	}
	return &item, nil
}
