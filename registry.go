package overlay

import "sync"

// Driver identifier constants for the drivers shipped with this module.
const (
	// IdentWGPU is the identifier of the WebGPU driver.
	IdentWGPU = "wgpu"
	// IdentSoftware is the identifier of the CPU fallback driver.
	IdentSoftware = "software"
)

// registry holds registered drivers.
var (
	driversMu sync.RWMutex
	drivers   []Driver
	// Priority order for driver selection (first compatible wins).
	// GPU backends come first, the software rasterizer is the fallback.
	driverPriority = []string{IdentWGPU, IdentSoftware}
)

// RegisterDriver registers a driver. This is typically called from
// init() functions in driver packages. Registering a driver with an
// identifier that is already registered replaces the previous one.
func RegisterDriver(d Driver) {
	if d == nil {
		return
	}
	driversMu.Lock()
	defer driversMu.Unlock()
	for i, existing := range drivers {
		if existing.Ident() == d.Ident() {
			drivers[i] = d
			propagateLogger(d, Logger())
			return
		}
	}
	drivers = append(drivers, d)
	propagateLogger(d, Logger())
}

// UnregisterDriver removes a driver from the registry.
// This is useful for testing.
func UnregisterDriver(ident string) {
	driversMu.Lock()
	defer driversMu.Unlock()
	for i, d := range drivers {
		if d.Ident() == ident {
			drivers = append(drivers[:i], drivers[i+1:]...)
			return
		}
	}
}

// DriverExists reports whether a driver with the given identifier is
// registered.
func DriverExists(ident string) bool {
	driversMu.RLock()
	defer driversMu.RUnlock()
	for _, d := range drivers {
		if d.Ident() == ident {
			return true
		}
	}
	return false
}

// RegisteredDrivers returns the registered drivers in selection order:
// the fixed priority list first, then any remaining drivers in
// registration order.
func RegisteredDrivers() []Driver {
	driversMu.RLock()
	defer driversMu.RUnlock()

	ordered := make([]Driver, 0, len(drivers))
	seen := make(map[string]bool, len(drivers))
	for _, ident := range driverPriority {
		for _, d := range drivers {
			if d.Ident() == ident {
				ordered = append(ordered, d)
				seen[ident] = true
			}
		}
	}
	for _, d := range drivers {
		if !seen[d.Ident()] {
			ordered = append(ordered, d)
		}
	}
	return ordered
}

// selectDriver walks candidates in order and binds the first one that
// both matches the active video backend identifier and initializes
// successfully. There is no best-fit scoring beyond ordering.
func selectDriver(candidates []Driver, videoIdent string, videoCtx any, isThreaded bool) (Driver, error) {
	for _, d := range candidates {
		if !d.Compatible(videoIdent) {
			continue
		}
		if err := d.Init(videoCtx, isThreaded); err != nil {
			Logger().Warn("overlay: driver init failed",
				"driver", d.Ident(), "video", videoIdent, "err", err)
			continue
		}
		Logger().Info("overlay: driver bound", "driver", d.Ident(), "video", videoIdent)
		return d, nil
	}
	return nil, ErrNoDriver
}
