package idgen_test

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/rpg-loot/internal/pkg/idgen"
)

func TestSequentialGenerator(t *testing.T) {
	gen := idgen.NewSequential("loot")
	assert.Equal(t, "loot_1", gen.Generate())
	assert.Equal(t, "loot_2", gen.Generate())

	bare := idgen.NewSequential("")
	assert.Equal(t, "1", bare.Generate())
}

func TestUUIDGenerator(t *testing.T) {
	gen := idgen.NewUUID("loot")

	id := gen.Generate()
	require.True(t, strings.HasPrefix(id, "loot_"))
	_, err := uuid.Parse(strings.TrimPrefix(id, "loot_"))
	assert.NoError(t, err)
	assert.NotEqual(t, id, gen.Generate())
}
