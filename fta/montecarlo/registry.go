package montecarlo

import (
	"fmt"
	"sync"
)

// DriverRegistry manages the registration and creation of Monte-Carlo
// execution strategies ("serial", "static", "chan"), mirroring the
// teacher's RunnerRegistry shape (name-keyed factories behind a
// RWMutex) with backend runners swapped for MC execution strategies.
type DriverRegistry struct {
	mu        sync.RWMutex
	factories map[string]DriverFactory
}

var defaultRegistry = NewDriverRegistry()

// NewDriverRegistry creates a new, empty driver registry.
func NewDriverRegistry() *DriverRegistry {
	return &DriverRegistry{factories: make(map[string]DriverFactory)}
}

// Register registers a driver factory under name. Thread-safe, so it
// can be called from init().
func (r *DriverRegistry) Register(name string, factory DriverFactory) error {
	if name == "" {
		return fmt.Errorf("montecarlo: driver name cannot be empty")
	}
	if factory == nil {
		return fmt.Errorf("montecarlo: driver factory cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[name]; exists {
		return fmt.Errorf("montecarlo: driver %q is already registered", name)
	}
	r.factories[name] = factory
	return nil
}

// MustRegister is like Register but panics on failure.
func (r *DriverRegistry) MustRegister(name string, factory DriverFactory) {
	if err := r.Register(name, factory); err != nil {
		panic(fmt.Sprintf("montecarlo: failed to register driver %q: %v", name, err))
	}
}

// Create instantiates the driver registered under name.
func (r *DriverRegistry) Create(name string) (Driver, error) {
	r.mu.RLock()
	factory, exists := r.factories[name]
	r.mu.RUnlock()

	if !exists {
		return nil, fmt.Errorf("montecarlo: unknown driver: %q", name)
	}
	driver := factory()
	if driver == nil {
		return nil, fmt.Errorf("montecarlo: driver factory for %q returned nil", name)
	}
	return driver, nil
}

// ListDrivers returns every registered driver name.
func (r *DriverRegistry) ListDrivers() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	return names
}

// Unregister removes a driver from the registry, returning whether it
// was present.
func (r *DriverRegistry) Unregister(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, exists := r.factories[name]
	if exists {
		delete(r.factories, name)
	}
	return exists
}

func init() {
	defaultRegistry.MustRegister("serial", func() Driver { return &SerialDriver{} })
	defaultRegistry.MustRegister("static", func() Driver { return &StaticDriver{} })
	defaultRegistry.MustRegister("chan", func() Driver { return &ChanDriver{} })
}

// RegisterDriver registers a driver factory with the default registry.
func RegisterDriver(name string, factory DriverFactory) error {
	return defaultRegistry.Register(name, factory)
}

// CreateDriver creates a driver from the default registry.
func CreateDriver(name string) (Driver, error) {
	return defaultRegistry.Create(name)
}

// ListDrivers lists every driver registered with the default registry.
func ListDrivers() []string {
	return defaultRegistry.ListDrivers()
}

// GetDefaultRegistry returns the default driver registry.
func GetDefaultRegistry() *DriverRegistry {
	return defaultRegistry
}
