package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/sitewire-labs/cableroute/internal/core/domain"
	"github.com/sitewire-labs/cableroute/internal/core/ports/driven"
)

// Ensure ConfigStore implements the interface.
var _ driven.ConfigStore = (*ConfigStore)(nil)

// ConfigStore is an in-memory implementation of driven.ConfigStore.
// It starts from the engine defaults; tests and embedding callers
// override what they need.
type ConfigStore struct {
	mu        sync.RWMutex
	engine    domain.EngineConfig
	templates map[string]domain.CostTemplate
}

// NewConfigStore creates a config store holding the engine defaults.
func NewConfigStore() *ConfigStore {
	return &ConfigStore{
		engine:    domain.DefaultEngineConfig(),
		templates: make(map[string]domain.CostTemplate),
	}
}

// SetEngine replaces the engine configuration. Malformed configuration
// is rejected here, mirroring the load-time validation of the file
// adapter.
func (s *ConfigStore) SetEngine(cfg domain.EngineConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.engine = cfg
	return nil
}

// AddTemplate registers a cost template.
func (s *ConfigStore) AddTemplate(tmpl domain.CostTemplate) error {
	if err := tmpl.Validate(); err != nil {
		return fmt.Errorf("template %s: %w", tmpl.ID, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.templates[tmpl.ID] = tmpl
	return nil
}

// Engine returns the current engine configuration.
func (s *ConfigStore) Engine(_ context.Context) (domain.EngineConfig, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.engine, nil
}

// Templates returns all registered cost templates.
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
