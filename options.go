package flint

// Option configures a Driver during creation.
//
// Example:
//
//	// Surface at 150% display scaling:
//	drv := flint.New(dev, flint.WithScale(1.5))
type Option func(*driverOptions)

// driverOptions holds optional configuration for Driver creation.
type driverOptions struct {
	scale float64
	color Color
}

// defaultOptions returns the default driver options: unscaled, black.
func defaultOptions() driverOptions {
	return driverOptions{
		scale: 1,
		color: Black,
	}
}

// WithScale sets the logical-to-device scale factor for the surface.
// Factors at or below zero fall back to 1.
func WithScale(f float64) Option {
	return func(o *driverOptions) {
		o.scale = f
	}
}

// WithColor sets the initial drawing color.
func WithColor(c Color) Option {
	return func(o *driverOptions) {
		o.color = c
	}
}
