package service

import (
	"fmt"
	"sync"

	"github.com/olusolaa/halyard-bootstrap/internal/core/domain"
	"github.com/olusolaa/halyard-bootstrap/internal/core/ports"
	"github.com/olusolaa/halyard-bootstrap/internal/errors"
)

// ConfiguratorRegistry holds one configurator per provider and hands them
// back in domain.ProviderOrder.
type ConfiguratorRegistry struct {
	mu            sync.RWMutex
	configurators map[domain.Provider]ports.ProviderConfigurator
}

func NewConfiguratorRegistry() *ConfiguratorRegistry {
	return &ConfiguratorRegistry{
		configurators: make(map[domain.Provider]ports.ProviderConfigurator),
	}
}

func (r *ConfiguratorRegistry) Register(c ports.ProviderConfigurator) error {
	if c == nil {
		return errors.New(errors.CodeInternal, "attempted to register nil provider configurator")
	}
	provider := c.Provider()
	if provider == "" {
		return errors.New(errors.CodeInternal, "provider configurator name cannot be empty")
	}
	if !knownProvider(provider) {
		return errors.New(errors.CodeInternal, fmt.Sprintf("provider '%s' has no place in the configuration order", provider))
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.configurators[provider]; exists {
		return errors.New(errors.CodeInternal, fmt.Sprintf("provider configurator '%s' already registered", provider))
	}
	r.configurators[provider] = c
	return nil
}

func (r *ConfiguratorRegistry) Get(provider domain.Provider) (ports.ProviderConfigurator, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, exists := r.configurators[provider]
	if !exists {
		return nil, errors.New(errors.CodeConfigValidation, fmt.Sprintf("provider configurator '%s' not found", provider))
	}
	return c, nil
}

// Ordered returns the registered configurators in configuration order.
func (r *ConfiguratorRegistry) Ordered() []ports.ProviderConfigurator {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]ports.ProviderConfigurator, 0, len(r.configurators))
	for _, p := range domain.ProviderOrder {
		if c, ok := r.configurators[p]; ok {
			out = append(out, c)
		}
	}
	return out
}

func knownProvider(p domain.Provider) bool {
	for _, known := range domain.ProviderOrder {
		if p == known {
			return true
		}
	}
	return false
}
