// Package loader provides the plugin-like feature loading system.
//
// Each feature implements the Feature interface:
//
//	type Feature interface {
//	    Name() string
//	    IsEnabled() bool
//	    Load(app fiber.Router) error
//	}
//
// The Manager keeps features in registration order; LoadAll mounts the
// enabled ones and stops at the first failure. The gallery feature is the
// only one registered by `fnum serve` today.
package loader
