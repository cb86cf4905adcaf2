// Package cli implements the cobra command tree that drives the
// routing engine. It is an external consumer of the core: everything
// it does goes through the driving ports, wired here against the file
// config and sqlite storage adapters.
package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	configfile "github.com/sitewire-labs/cableroute/internal/adapters/driven/config/file"
	"github.com/sitewire-labs/cableroute/internal/adapters/driven/storage/memory"
	"github.com/sitewire-labs/cableroute/internal/adapters/driven/storage/sqlite"
	"github.com/sitewire-labs/cableroute/internal/core/ports/driven"
	"github.com/sitewire-labs/cableroute/internal/core/ports/driving"
	"github.com/sitewire-labs/cableroute/internal/core/services"
	"github.com/sitewire-labs/cableroute/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// Services are wired once in setupServices; tests inject their own.
var (
	routeStore        driven.RouteStore
	versionStore      driven.VersionStore
	configStore       driven.ConfigStore
	converterService  driving.ConverterService
	clashService      driving.ClashDetector
	complianceService driving.ComplianceService
	estimatorService  driving.Estimator
	versionService    driving.VersionService

	storeCloser io.Closer
)

var (
	flagConfig  string
	flagDataDir string
	flagVerbose bool
	flagMemory  bool
)

var rootCmd = &cobra.Command{
	Use:   "cableroute",
	Short: "Design and validate cable routes",
	Long: `Cable route design and validation engine.

Converts sketched supply lines into engineered cable routes, finds
obstacle-avoiding paths, detects clashes against building elements,
checks electrical compliance, and prices the result.`,
	SilenceUsage:      true,
	PersistentPreRunE: setupServices,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to the engine config file (default ~/.cableroute/config.toml)")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "directory for the route database (default ~/.cableroute/data)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().BoolVar(&flagMemory, "memory", false, "use in-memory storage instead of the route database")
}

// Execute runs the command tree and releases storage afterwards.
func Execute() error {
	defer func() {
		if storeCloser != nil {
			_ = storeCloser.Close()
		}
	}()
	return rootCmd.Execute()
}

// setupServices wires the adapters and services behind the commands.
// Already-wired services (tests, embedding callers) are left alone.
func setupServices(_ *cobra.Command, _ []string) error {
	logger.SetVerbose(flagVerbose)
	if servicesConfigured() {
		return nil
	}

	fileStore, err := configfile.NewConfigStore(flagConfig)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	configStore = fileStore

	if flagMemory {
		routeStore = memory.NewRouteStore()
		versionStore = memory.NewVersionStore()
	} else {
		store, err := sqlite.NewStore(flagDataDir)
		if err != nil {
			return fmt.Errorf("opening route database: %w", err)
		}
		routeStore = store.RouteStore()
		versionStore = store.VersionStore()
		storeCloser = store
	}

	converterService = services.NewConverter(configStore)
	clashService = services.NewClashService(configStore)
	estimatorService = services.NewEstimator(configStore)
	versionService = services.NewVersionService(routeStore, versionStore)

	if err := rebuildComplianceService(); err != nil {
		return err
	}

	// Threshold tuning during a design session takes effect on the
	// next command; the built-in rules re-snapshot their parameters on
	// each reload.
	if err := fileStore.Watch(func() {
		if err := rebuildComplianceService(); err != nil {
			logger.Warn("config reload: %v", err)
		}
	}); err != nil {
		logger.Warn("config watch unavailable: %v", err)
	}

	return nil
}

func servicesConfigured() bool {
	return converterService != nil && clashService != nil &&
		complianceService != nil && estimatorService != nil &&
		versionService != nil
}

// rebuildComplianceService snapshots the current electrical rule
// parameters into a fresh rule set.
func rebuildComplianceService() error {
	cfg, err := configStore.Engine(context.Background())
	if err != nil {
		return fmt.Errorf("loading engine config: %w", err)
	}

	svc := services.NewComplianceService()
	for _, rule := range services.DefaultRules(cfg.Electrical) {
		if err := svc.Register(rule); err != nil {
			return fmt.Errorf("registering rule %s: %w", rule.Code(), err)
		}
	}
	complianceService = svc
	return nil
}
