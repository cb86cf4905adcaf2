package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sitewire-labs/cableroute/internal/adapters/driven/storage/memory"
	"github.com/sitewire-labs/cableroute/internal/core/domain"
)

func TestEstimateCmd_Use(t *testing.T) {
	assert.Equal(t, "estimate [route-id]", estimateCmd.Use)
}

func TestEstimateCmd_PrintsTakeoff(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	seedRoute("route-1")

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"estimate", "route-1"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "CBL-SWA-PVC-25")
	assert.Contains(t, buf.String(), "SUP-STD")
	assert.Contains(t, buf.String(), "Total:")
}

func TestEstimateCmd_NamedTemplate(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	seedRoute("route-1")

	store := configStore.(*memory.ConfigStore)
	require.NoError(t, store.AddTemplate(domain.CostTemplate{
		ID:                     "prime-2026",
		Name:                   "Prime contract 2026",
		LaborRate:              15,
		MaterialMultiplier:     1.2,
		InstallationMultiplier: 1.1,
		SupportsMultiplier:     1,
	}))

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"estimate", "route-1", "--template", "prime-2026"})
	defer func() {
		rootCmd.SetArgs(nil)
		estimateTemplate = ""
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "Labour:")
}

func TestEstimateCmd_TemplateNotFound(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	seedRoute("route-1")

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"estimate", "route-1", "--template", "missing"})
	defer func() {
		rootCmd.SetArgs(nil)
		estimateTemplate = ""
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "cost template missing not found")
}
