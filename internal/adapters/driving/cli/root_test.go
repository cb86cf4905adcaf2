package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sitewire-labs/cableroute/internal/adapters/driven/storage/memory"
	"github.com/sitewire-labs/cableroute/internal/core/domain"
	"github.com/sitewire-labs/cableroute/internal/core/services"
)

// setupTestServices wires the commands against in-memory adapters and
// returns a cleanup restoring whatever was there before.
func setupTestServices() func() {
	oldRouteStore := routeStore
	oldVersionStore := versionStore
	oldConfigStore := configStore
	oldConverter := converterService
	oldClash := clashService
	oldCompliance := complianceService
	oldEstimator := estimatorService
	oldVersions := versionService

	cfg := memory.NewConfigStore()
	routes := memory.NewRouteStore()
	versions := memory.NewVersionStore()

	routeStore = routes
	versionStore = versions
	configStore = cfg
	converterService = services.NewConverter(cfg)
	clashService = services.NewClashService(cfg)
	estimatorService = services.NewEstimator(cfg)
	versionService = services.NewVersionService(routes, versions)

	compliance := services.NewComplianceService()
	for _, rule := range services.DefaultRules(domain.DefaultEngineConfig().Electrical) {
		if err := compliance.Register(rule); err != nil {
			panic(err)
		}
	}
	complianceService = compliance

	return func() {
		routeStore = oldRouteStore
		versionStore = oldVersionStore
		configStore = oldConfigStore
		converterService = oldConverter
		clashService = oldClash
		complianceService = oldCompliance
		estimatorService = oldEstimator
		versionService = oldVersions
	}
}

// seedRoute saves a simple 10m route under a fixed ID.
func seedRoute(id string) domain.CableRoute {
	route := domain.CableRoute{
		ID:   id,
		Name: "DB-1 to AHU-3",
		Points: []domain.RoutePoint{
			{ID: "p1", Point3D: domain.Point3D{X: 0, Y: 0}},
			{ID: "p2", Point3D: domain.Point3D{X: 10, Y: 0}},
		},
		CableType: domain.CablePVCSWA,
		Diameter:  25,
		Metrics: domain.RouteMetrics{
			TotalLength:  10,
			SupportCount: 7,
			Complexity:   domain.ComplexityLow,
		},
	}
	if err := routeStore.Save(context.Background(), route); err != nil {
		panic(err)
	}
	return route
}

func TestRootCmd_Use(t *testing.T) {
	assert.Equal(t, "cableroute", rootCmd.Use)
}

func TestRootCmd_HasSubcommands(t *testing.T) {
	commands := rootCmd.Commands()
	commandNames := make([]string, 0, len(commands))
	for _, cmd := range commands {
		commandNames = append(commandNames, cmd.Name())
	}

	assert.Contains(t, commandNames, "convert")
	assert.Contains(t, commandNames, "plan")
	assert.Contains(t, commandNames, "route")
	assert.Contains(t, commandNames, "clashes")
	assert.Contains(t, commandNames, "check")
	assert.Contains(t, commandNames, "estimate")
	assert.Contains(t, commandNames, "versions")
	assert.Contains(t, commandNames, "version")
}
