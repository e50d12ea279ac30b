package backend

import (
	"sync"

	"github.com/flintkit/flint"
	"github.com/flintkit/flint/config"
)

// Factory creates a new backend instance.
type Factory func() GraphicsBackend

// registry holds registered backends.
var (
	registryMu sync.RWMutex
	backends   = make(map[string]Factory)
	// Priority order for backend selection (first available wins).
	// Native window systems beat ebiten; software is the fallback.
	backendPriority = []string{BackendX11, BackendGDI, BackendEbiten, BackendSoftware}
)

// Register registers a backend factory with the given name. This is
// typically called from init() functions in backend packages. If a
// backend with the same name is already registered, it is replaced.
func Register(name string, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	backends[name] = factory
}

// Unregister removes a backend from the registry. This is useful for
// testing.
func Unregister(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(backends, name)
}

// Available returns a list of registered backend names.
func Available() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	return names
}

// IsRegistered checks if a backend with the given name is registered.
func IsRegistered(name string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := backends[name]
	return ok
}

// Get returns a backend instance by name. Returns nil if the backend
// is not registered.
func Get(name string) GraphicsBackend {
	registryMu.RLock()
	defer registryMu.RUnlock()

	factory, ok := backends[name]
	if !ok {
		return nil
	}
	return factory()
}

// Default returns the best available backend: the one named by the
// toolkit options file or FLINT_BACKEND when set and registered,
// otherwise the first registered backend in priority order. Returns
// nil if no backends are registered.
func Default() GraphicsBackend {
	if name := config.Current().Backend; name != "" {
		if b := Get(name); b != nil {
			return b
		}
		flint.Logger().Warn("backend: configured backend not registered",
			"backend", name)
	}

	registryMu.RLock()
	defer registryMu.RUnlock()

	for _, name := range backendPriority {
		if factory, ok := backends[name]; ok {
			if b := factory(); b != nil {
				return b
			}
		}
	}

	// Fallback: return first available.
	for _, factory := range backends {
		if b := factory(); b != nil {
			return b
		}
	}

	return nil
}

// MustDefault returns the default backend or panics.
func MustDefault() GraphicsBackend {
	b := Default()
	if b == nil {
		panic("backend: no backend available")
	}
	return b
}

// InitDefault initializes and returns the default backend.
func InitDefault() (GraphicsBackend, error) {
	b := Default()
	if b == nil {
		return nil, ErrBackendNotAvailable
	}
	if err := b.Init(); err != nil {
		return nil, err
	}
	flint.Logger().Info("backend: initialized", "backend", b.Name())
	return b, nil
}
