package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/pelletier/go-toml/v2"

	"github.com/sitewire-labs/cableroute/internal/core/domain"
	"github.com/sitewire-labs/cableroute/internal/core/ports/driven"
	"github.com/sitewire-labs/cableroute/internal/logger"
)

// Ensure ConfigStore implements the interface.
var _ driven.ConfigStore = (*ConfigStore)(nil)

// ConfigStore is a TOML-file implementation of driven.ConfigStore.
type ConfigStore struct {
	mu        sync.RWMutex
	filePath  string
	engine    domain.EngineConfig
	templates map[string]domain.CostTemplate

	watcher *fsnotify.Watcher
	done    chan struct{}
}

// fileConfig mirrors the TOML layout. Absent keys keep their
// pre-populated defaults, so projects only override what they tune.
type fileConfig struct {
	Engine struct {
		GridSize float64 `toml:"grid_size"`

		Complexity struct {
			LowMaxBends   int     `toml:"low_max_bends"`
			LowMaxLength  float64 `toml:"low_max_length_m"`
			HighMinBends  int     `toml:"high_min_bends"`
			HighMinLength float64 `toml:"high_min_length_m"`
		} `toml:"complexity"`

		Severity struct {
			CriticalMM float64 `toml:"critical_mm"`
			WarningMM  float64 `toml:"warning_mm"`
		} `toml:"severity"`

		Electrical struct {
			ArmouredDeratingFactor float64 `toml:"armoured_derating_factor"`
			VoltageDropPerAmpMetre float64 `toml:"voltage_drop_mv_per_a_m"`
			MaxVoltageDropPercent  float64 `toml:"max_voltage_drop_percent"`
			MinRouteLength         float64 `toml:"min_route_length_m"`
			MaxRouteLength         float64 `toml:"max_route_length_m"`
			MaxBendsBeforeWarning  int     `toml:"max_bends_before_warning"`
		} `toml:"electrical"`

		Takeoff struct {
			WastageFactor       float64 `toml:"wastage_factor"`
			SupportSpacing      float64 `toml:"support_spacing_m"`
			CableUnitPrice      float64 `toml:"cable_unit_price"`
			SupportUnitPrice    float64 `toml:"support_unit_price"`
			InstallRatePerMetre float64 `toml:"install_rate_per_m"`
			BendSurcharge       float64 `toml:"bend_surcharge"`
		} `toml:"takeoff"`
	} `toml:"engine"`

	Templates []struct {
		ID                     string  `toml:"id"`
		Name                   string  `toml:"name"`
		LaborRate              float64 `toml:"labor_rate"`
		MaterialMultiplier     float64 `toml:"material_multiplier"`
		InstallationMultiplier float64 `toml:"installation_multiplier"`
		SupportsMultiplier     float64 `toml:"supports_multiplier"`
	} `toml:"templates"`
}

// NewConfigStore creates a TOML config store. If configPath is empty,
// defaults to ~/.cableroute/config.toml. A missing file is not an
// error: the store serves the engine defaults.
func NewConfigStore(configPath string) (*ConfigStore, error) {
	if configPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		configPath = filepath.Join(home, ".cableroute", "config.toml")
	}

	s := &ConfigStore{
		filePath:  configPath,
		engine:    domain.DefaultEngineConfig(),
		templates: make(map[string]domain.CostTemplate),
	}

	if err := s.Load(); err != nil && !os.IsNotExist(err) {
		return nil, err
	}

	return s, nil
}

// Path returns the configuration file path.
func (s *ConfigStore) Path() string {
	return s.filePath
}

// Load re-reads the configuration file, replacing the store's state.
// Malformed files leave the previous state untouched.
func (s *ConfigStore) Load() error {
	data, err := os.ReadFile(s.filePath)
	if err != nil {
		return err
	}

	raw := defaultFileConfig()
	if err := toml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("parsing %s: %w", s.filePath, err)
	}

	engine := toEngineConfig(raw)
	if err := engine.Validate(); err != nil {
		return fmt.Errorf("loading %s: %w", s.filePath, err)
	}

	templates := make(map[string]domain.CostTemplate, len(raw.Templates))
	for _, t := range raw.Templates {
		tmpl := domain.CostTemplate{
			ID:                     t.ID,
			Name:                   t.Name,
			LaborRate:              t.LaborRate,
			MaterialMultiplier:     t.MaterialMultiplier,
			InstallationMultiplier: t.InstallationMultiplier,
			SupportsMultiplier:     t.SupportsMultiplier,
		}
		if tmpl.ID == "" {
			return fmt.Errorf("loading %s: template without id: %w", s.filePath, domain.ErrInvalidConfig)
		}
		if err := tmpl.Validate(); err != nil {
			return fmt.Errorf("loading %s: template %s: %w", s.filePath, tmpl.ID, err)
		}
		templates[tmpl.ID] = tmpl
	}

	s.mu.Lock()
	s.engine = engine
	s.templates = templates
	s.mu.Unlock()
	return nil
}

// Engine returns the current engine configuration.
func (s *ConfigStore) Engine(_ context.Context) (domain.EngineConfig, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.engine, nil
}

// Templates returns all configured cost templates.
func (s *ConfigStore) Templates(_ context.Context) ([]domain.CostTemplate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]domain.CostTemplate, 0, len(s.templates))
	for _, tmpl := range s.templates {
		result = append(result, tmpl)
	}
	return result, nil
}

// Template retrieves a cost template by ID.
func (s *ConfigStore) Template(_ context.Context, id string) (*domain.CostTemplate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	tmpl, ok := s.templates[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &tmpl, nil
}

// Watch reloads the configuration on file writes and invokes onReload
// after each successful reload. Call Close to stop watching.
func (s *ConfigStore) Watch(onReload func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("starting config watcher: %w", err)
	}
	// Watch the directory: editors replace files on save, which drops
	// a watch registered on the file itself.
	if err := watcher.Add(filepath.Dir(s.filePath)); err != nil {
		watcher.Close()
		return fmt.Errorf("watching %s: %w", filepath.Dir(s.filePath), err)
	}

	s.watcher = watcher
	s.done = make(chan struct{})

	go func() {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Name != s.filePath {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
					continue
				}
				if err := s.Load(); err != nil {
					logger.Warn("config reload failed, keeping previous configuration: %v", err)
					continue
				}
				logger.Info("configuration reloaded from %s", s.filePath)
				if onReload != nil {
					onReload()
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("config watcher error: %v", err)
			case <-s.done:
				return
			}
		}
	}()

	return nil
}

// Close stops the configuration watcher, if one is running.
func (s *ConfigStore) Close() error {
	if s.watcher == nil {
		return nil
	}
	close(s.done)
	return s.watcher.Close()
}

// defaultFileConfig returns the TOML mirror pre-populated with the
// engine defaults.
func defaultFileConfig() fileConfig {
	defaults := domain.DefaultEngineConfig()

	var raw fileConfig
	raw.Engine.GridSize = defaults.GridSize
	raw.Engine.Complexity.LowMaxBends = defaults.Complexity.LowMaxBends
	raw.Engine.Complexity.LowMaxLength = defaults.Complexity.LowMaxLength
	raw.Engine.Complexity.HighMinBends = defaults.Complexity.HighMinBends
	raw.Engine.Complexity.HighMinLength = defaults.Complexity.HighMinLength
	raw.Engine.Severity.CriticalMM = defaults.Severity.CriticalMM
	raw.Engine.Severity.WarningMM = defaults.Severity.WarningMM
	raw.Engine.Electrical.ArmouredDeratingFactor = defaults.Electrical.ArmouredDeratingFactor
	raw.Engine.Electrical.VoltageDropPerAmpMetre = defaults.Electrical.VoltageDropPerAmpMetre
	raw.Engine.Electrical.MaxVoltageDropPercent = defaults.Electrical.MaxVoltageDropPercent
	raw.Engine.Electrical.MinRouteLength = defaults.Electrical.MinRouteLength
	raw.Engine.Electrical.MaxRouteLength = defaults.Electrical.MaxRouteLength
	raw.Engine.Electrical.MaxBendsBeforeWarning = defaults.Electrical.MaxBendsBeforeWarning
	raw.Engine.Takeoff.WastageFactor = defaults.Takeoff.WastageFactor
	raw.Engine.Takeoff.SupportSpacing = defaults.Takeoff.SupportSpacing
	raw.Engine.Takeoff.CableUnitPrice = defaults.Takeoff.CableUnitPrice
	raw.Engine.Takeoff.SupportUnitPrice = defaults.Takeoff.SupportUnitPrice
	raw.Engine.Takeoff.InstallRatePerMetre = defaults.Takeoff.InstallRatePerMetre
	raw.Engine.Takeoff.BendSurcharge = defaults.Takeoff.BendSurcharge
	return raw
}

// toEngineConfig converts the TOML mirror to the domain type.
func toEngineConfig(raw fileConfig) domain.EngineConfig {
	return domain.EngineConfig{
		GridSize: raw.Engine.GridSize,
		Complexity: domain.ComplexityThresholds{
			LowMaxBends:   raw.Engine.Complexity.LowMaxBends,
			LowMaxLength:  raw.Engine.Complexity.LowMaxLength,
			HighMinBends:  raw.Engine.Complexity.HighMinBends,
			HighMinLength: raw.Engine.Complexity.HighMinLength,
		},
		Severity: domain.SeverityBands{
			CriticalMM: raw.Engine.Severity.CriticalMM,
			WarningMM:  raw.Engine.Severity.WarningMM,
		},
		Electrical: domain.ElectricalRuleParams{
			ArmouredDeratingFactor: raw.Engine.Electrical.ArmouredDeratingFactor,
			VoltageDropPerAmpMetre: raw.Engine.Electrical.VoltageDropPerAmpMetre,
			MaxVoltageDropPercent:  raw.Engine.Electrical.MaxVoltageDropPercent,
			MinRouteLength:         raw.Engine.Electrical.MinRouteLength,
			MaxRouteLength:         raw.Engine.Electrical.MaxRouteLength,
			MaxBendsBeforeWarning:  raw.Engine.Electrical.MaxBendsBeforeWarning,
		},
		Takeoff: domain.TakeoffParams{
			WastageFactor:       raw.Engine.Takeoff.WastageFactor,
			SupportSpacing:      raw.Engine.Takeoff.SupportSpacing,
			CableUnitPrice:      raw.Engine.Takeoff.CableUnitPrice,
			SupportUnitPrice:    raw.Engine.Takeoff.SupportUnitPrice,
			InstallRatePerMetre: raw.Engine.Takeoff.InstallRatePerMetre,
			BendSurcharge:       raw.Engine.Takeoff.BendSurcharge,
		},
	}
}
