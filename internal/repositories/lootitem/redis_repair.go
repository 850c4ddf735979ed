package lootitem

import (
	"context"

	redis "github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/rpg-loot/internal/errors"
	redisclient "github.com/KirkDiggler/rpg-loot/internal/redis"
)

const scanBatchSize = 200

// FindOrphanedClaims returns hash claim keys whose item was never written,
// which happens when a writer stops between claiming the hash and storing the
// item. A claim held by a writer that is still running looks the same, so
// run this only while no generation is in progress.
func FindOrphanedClaims(ctx context.Context, client redisclient.Client) ([]string, error) {
	var orphaned []string

	iter := client.Scan(ctx, 0, hashKeyPrefix+"*", scanBatchSize).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()

		id, err := client.Get(ctx, key).Result()
		if err == redis.Nil {
			continue
		}
		if err != nil {
			return nil, storageError(err, "failed to read hash claim")
		}

		exists, err := client.Exists(ctx, itemKeyPrefix+id).Result()
		if err != nil {
			return nil, storageError(err, "failed to check claimed item")
		}
		if exists == 0 {
			orphaned = append(orphaned, key)
		}
	}
	if err := iter.Err(); err != nil {
		return nil, storageError(err, "failed to scan hash claims")
	}

	return orphaned, nil
}

// ReleaseClaims deletes hash claim keys and returns how many were removed
func ReleaseClaims(ctx context.Context, client redisclient.Client, keys []string) (int64, error) {
	if len(keys) == 0 {
		return 0, nil
	}
	for _, key := range keys {
		if len(key) <= len(hashKeyPrefix) || key[:len(hashKeyPrefix)] != hashKeyPrefix {
			return 0, errors.InvalidArgumentf("%q is not a hash claim key", key)
		}
	}

	removed, err := client.Del(ctx, keys...).Result()
	if err != nil {
		return 0, storageError(err, "failed to release hash claims")
	}
	return removed, nil
}
