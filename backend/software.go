package backend

import (
	"github.com/flintkit/flint"
)

// SoftwareBackend is the CPU rendering backend. Its devices draw into
// flint.Pixmap buffers with exact per-pixel clipping; it has no
// native resources and never fails to initialize, which makes it the
// registry's fallback.
type SoftwareBackend struct {
	initialized bool
}

// init registers the software backend on package import.
func init() {
	Register(BackendSoftware, func() GraphicsBackend {
		return &SoftwareBackend{}
	})
}

// NewSoftwareBackend creates a new software rendering backend.
func NewSoftwareBackend() *SoftwareBackend {
	return &SoftwareBackend{}
}

// Name returns the backend identifier.
func (b *SoftwareBackend) Name() string {
	return BackendSoftware
}

// Init initializes the backend.
func (b *SoftwareBackend) Init() error {
	b.initialized = true
	return nil
}

// Close releases all backend resources.
func (b *SoftwareBackend) Close() {
	b.initialized = false
}

// NewDevice creates a device drawing into a fresh pixmap of the given
// size. Retrieve the pixels via flint.(*ImageDevice).Pixmap().
func (b *SoftwareBackend) NewDevice(width, height int) (flint.Device, error) {
	if !b.initialized {
		return nil, ErrNotInitialized
	}
	return flint.NewImageDevice(flint.NewPixmap(width, height)), nil
}
