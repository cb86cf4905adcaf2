package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sitewire-labs/cableroute/internal/core/domain"
)

func TestConfigStore_EngineDefaults(t *testing.T) {
	store := NewConfigStore()

	cfg, err := store.Engine(context.Background())

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultEngineConfig(), cfg)
}

func TestConfigStore_SetEngine_RejectsInvalid(t *testing.T) {
	store := NewConfigStore()

	cfg := domain.DefaultEngineConfig()
	cfg.GridSize = 0

	assert.ErrorIs(t, store.SetEngine(cfg), domain.ErrInvalidConfig)
}

func TestConfigStore_Templates(t *testing.T) {
	store := NewConfigStore()
	ctx := context.Background()

	tmpl := domain.DefaultCostTemplate()
	tmpl.ID = "prime-2026"
	tmpl.MaterialMultiplier = 1.2
	require.NoError(t, store.AddTemplate(tmpl))

	got, err := store.Template(ctx, "prime-2026")
	require.NoError(t, err)
	assert.Equal(t, 1.2, got.MaterialMultiplier)

	all, err := store.Templates(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestConfigStore_Template_NotFound(t *testing.T) {
	store := NewConfigStore()

	_, err := store.Template(context.Background(), "missing")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestConfigStore_AddTemplate_RejectsInvalid(t *testing.T) {
	store := NewConfigStore()

	tmpl := domain.DefaultCostTemplate()
	tmpl.InstallationMultiplier = -1

	assert.ErrorIs(t, store.AddTemplate(tmpl), domain.ErrInvalidConfig)
}
