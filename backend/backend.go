package backend

import (
	"errors"

	"github.com/flintkit/flint"
)

// Common backend errors.
var (
	// ErrBackendNotAvailable is returned when a requested backend is
	// not available.
	ErrBackendNotAvailable = errors.New("backend: not available")

	// ErrNotInitialized is returned when operations are called before
	// Init.
	ErrNotInitialized = errors.New("backend: not initialized")
)

// GraphicsBackend is the interface for native graphics systems. It
// abstracts surface and device creation, allowing the toolkit to
// render through multiple native systems (software, X11, GDI, ebiten)
// behind one widget-facing drawing contract.
//
// Backends must be registered via Register() and are selected via
// Get() or Default(). The device a backend creates is bound to one
// surface for its lifetime; the driver built on top of it is never
// switched to another backend mid-draw.
type GraphicsBackend interface {
	// Name returns the backend identifier (e.g. "software", "x11").
	Name() string

	// Init initializes the backend (native display connection,
	// library handles). It must be called before NewDevice.
	Init() error

	// Close releases all backend resources. The backend should not be
	// used after Close is called.
	Close()

	// NewDevice creates a drawing device backed by an offscreen
	// surface of the given size in device pixels. On-screen surfaces
	// are created through backend-specific constructors.
	NewDevice(width, height int) (flint.Device, error)
}

// Names of the backends this module ships.
const (
	// BackendSoftware is the CPU rendering backend drawing into a
	// flint.Pixmap. Always available.
	BackendSoftware = "software"
	// BackendX11 renders through the X11 protocol (linux only).
	BackendX11 = "x11"
	// BackendGDI renders through Windows GDI (windows only).
	BackendGDI = "gdi"
	// BackendEbiten renders into ebiten images (GPU-composited).
	BackendEbiten = "ebiten"
)
