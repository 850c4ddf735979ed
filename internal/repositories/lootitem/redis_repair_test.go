package lootitem_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/rpg-loot/internal/identity"
	"github.com/KirkDiggler/rpg-loot/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-loot/internal/pkg/idgen"
	"github.com/KirkDiggler/rpg-loot/internal/repositories/lootitem"
	"github.com/KirkDiggler/rpg-loot/internal/testutils"
)

func TestOrphanedClaims(t *testing.T) {
	ctx := context.Background()
	client, mr, cleanup := testutils.CreateTestRedisClient(t)
	defer cleanup()

	repo, err := lootitem.NewRedis(&lootitem.RedisConfig{
		Client:      client,
		IDGenerator: idgen.NewSequential("loot"),
		Clock:       clock.NewStepping(testStart, time.Second),
	})
	require.NoError(t, err)

	item := testutils.NewItemBuilder().Build()
	_, err = repo.InsertIfAbsent(ctx, lootitem.InsertIfAbsentInput{Item: item, Hash: identity.Compute(item)})
	require.NoError(t, err)

	require.NoError(t, mr.Set("loot:hash:deadbeef", "loot_99"))

	orphaned, err := lootitem.FindOrphanedClaims(ctx, client)
	require.NoError(t, err)
	assert.Equal(t, []string{"loot:hash:deadbeef"}, orphaned)

	removed, err := lootitem.ReleaseClaims(ctx, client, orphaned)
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	orphaned, err = lootitem.FindOrphanedClaims(ctx, client)
	require.NoError(t, err)
	assert.Empty(t, orphaned)

	// Real claims are left alone.
	got, err := repo.GetByHash(ctx, lootitem.GetByHashInput{Hash: identity.Compute(item)})
	require.NoError(t, err)
	assert.Equal(t, "loot_1", got.Item.ID)
}

func TestReleaseClaimsRejectsOtherKeys(t *testing.T) {
	client, _, cleanup := testutils.CreateTestRedisClient(t)
	defer cleanup()

	_, err := lootitem.ReleaseClaims(context.Background(), client, []string{"loot:item:loot_1"})
	assert.Error(t, err)

	removed, err := lootitem.ReleaseClaims(context.Background(), client, nil)
	require.NoError(t, err)
	assert.Zero(t, removed)
}
