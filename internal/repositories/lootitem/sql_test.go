package lootitem_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/rpg-loot/internal/identity"
	mockclock "github.com/KirkDiggler/rpg-loot/internal/pkg/clock/mock"
	idgenmock "github.com/KirkDiggler/rpg-loot/internal/pkg/idgen/mock"
	"github.com/KirkDiggler/rpg-loot/internal/repositories/lootitem"
	"github.com/KirkDiggler/rpg-loot/internal/testutils"
)

func TestSQLStampsIDAndTime(t *testing.T) {
	ctrl := gomock.NewController(t)
	ids := idgenmock.NewMockGenerator(ctrl)
	clk := mockclock.NewMockClock(ctrl)

	ctx := context.Background()
	db, err := lootitem.OpenDB(ctx, lootitem.DriverSQLite, filepath.Join(t.TempDir(), "loot.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	repo, err := lootitem.NewSQL(&lootitem.SQLConfig{DB: db, IDGenerator: ids, Clock: clk})
	require.NoError(t, err)

	// A local-zone timestamp is stored and returned as UTC.
	stamped := time.Date(2024, 6, 1, 11, 30, 0, 0, time.FixedZone("CEST", 2*60*60))
	ids.EXPECT().Generate().Return("loot_0f3a")
	clk.EXPECT().Now().Return(stamped)

	item := testutils.NewItemBuilder().Build()
	out, err := repo.InsertIfAbsent(ctx, lootitem.InsertIfAbsentInput{Item: item, Hash: identity.Compute(item)})
	require.NoError(t, err)
	assert.Equal(t, "loot_0f3a", out.Item.ID)

	got, err := repo.GetByID(ctx, lootitem.GetByIDInput{ID: "loot_0f3a"})
	require.NoError(t, err)
	assert.True(t, stamped.Equal(got.Item.CreatedAt))
	assert.Equal(t, time.UTC, got.Item.CreatedAt.Location())
}
